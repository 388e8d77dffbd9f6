// Package types holds the wire and domain types shared by the relay client,
// the request builders and the signer.
package types

import "time"

// Scheme selects how a client submits batches to the relayer. A client is
// bound to exactly one scheme for its lifetime.
type Scheme string

const (
	SchemeSafe  Scheme = "SAFE"
	SchemeProxy Scheme = "PROXY"
)

// SubmissionType tags the signed request body sent to the relayer.
type SubmissionType string

const (
	SubmissionSafe       SubmissionType = "SAFE"
	SubmissionProxy      SubmissionType = "PROXY"
	SubmissionSafeCreate SubmissionType = "SAFE-CREATE"
)

// ZeroAddress is the canonical zero-value address, used for unset payment
// and refund fields.
const ZeroAddress = "0x0000000000000000000000000000000000000000"

// Transaction is a single call target as supplied by the caller. Value
// defaults to "0" when empty.
type Transaction struct {
	To    string `json:"to"`
	Data  string `json:"data"`
	Value string `json:"value"`
}

// OperationType is the Safe execution mode for a call.
type OperationType uint8

const (
	OperationCall         OperationType = 0
	OperationDelegateCall OperationType = 1
)

// SafeTransaction is a batch element annotated for the Safe scheme.
type SafeTransaction struct {
	To        string        `json:"to"`
	Operation OperationType `json:"operation"`
	Data      string        `json:"data"`
	Value     string        `json:"value"`
}

// CallType is the proxy contract's call mode for a batch element.
type CallType uint8

const (
	CallTypeInvalid      CallType = 0
	CallTypeCall         CallType = 1
	CallTypeDelegateCall CallType = 2
)

// ProxyTransaction is a batch element annotated for the Proxy scheme.
type ProxyTransaction struct {
	To       string   `json:"to"`
	TypeCode CallType `json:"typeCode"`
	Data     string   `json:"data"`
	Value    string   `json:"value"`
}

// NoncePayload is the relayer-issued nonce for an (address, scheme) pair.
// Nonces are monotonically increasing and consumed exactly once.
type NoncePayload struct {
	Nonce int64 `json:"nonce"`
}

// RelayPayload is the relay identity and nonce the relayer assigns for a
// Proxy submission. Fetched immediately before building the request.
type RelayPayload struct {
	Address string `json:"address"`
	Nonce   int64  `json:"nonce"`
}

// DeployedResponse reports whether a wallet contract exists at an address.
type DeployedResponse struct {
	Deployed bool `json:"deployed"`
}

// SignatureParams carries the scheme-specific fields the relayer needs to
// reconstruct the signed message. Unused fields are omitted on the wire.
type SignatureParams struct {
	GasPrice string `json:"gasPrice,omitempty"`

	// Proxy relay-hub fields.
	RelayerFee string `json:"relayerFee,omitempty"`
	GasLimit   string `json:"gasLimit,omitempty"`
	RelayHub   string `json:"relayHub,omitempty"`
	Relay      string `json:"relay,omitempty"`

	// Safe execution fields.
	Operation      string `json:"operation,omitempty"`
	SafeTxnGas     string `json:"safeTxnGas,omitempty"`
	BaseGas        string `json:"baseGas,omitempty"`
	GasToken       string `json:"gasToken,omitempty"`
	RefundReceiver string `json:"refundReceiver,omitempty"`

	// Safe deployment fields.
	PaymentToken    string `json:"paymentToken,omitempty"`
	Payment         string `json:"payment,omitempty"`
	PaymentReceiver string `json:"paymentReceiver,omitempty"`
}

// SubmitRequest is the fully signed, transport-ready submission body. It is
// never mutated after a builder returns it.
type SubmitRequest struct {
	Type            string          `json:"type"`
	From            string          `json:"from"`
	To              string          `json:"to"`
	ProxyWallet     string          `json:"proxyWallet,omitempty"`
	Data            string          `json:"data"`
	Nonce           string          `json:"nonce,omitempty"`
	Signature       string          `json:"signature"`
	SignatureParams SignatureParams `json:"signatureParams"`
	Metadata        string          `json:"metadata,omitempty"`
}

// SafeSubmissionArgs are the inputs to the Safe transaction builder.
type SafeSubmissionArgs struct {
	From         string
	Nonce        int64
	ChainID      int64
	Transactions []SafeTransaction
}

// SafeDeploymentArgs are the inputs to the Safe deployment builder. Payment
// fields default to a zero amount and the zero address when the caller pays
// no relayer fee.
type SafeDeploymentArgs struct {
	From            string
	ChainID         int64
	PaymentToken    string
	Payment         string
	PaymentReceiver string
}

// ProxySubmissionArgs are the inputs to the Proxy transaction builder. Data
// is the batch already flattened into a single proxy call payload.
type ProxySubmissionArgs struct {
	From     string
	Nonce    int64
	GasPrice string
	GasLimit string
	Data     string
	Relay    string
}

// RelayerTransactionState is one value of the relayer's state vocabulary.
// The vocabulary is defined server-side; the constants below are the states
// the relayer is known to emit, but callers may match on any string.
type RelayerTransactionState string

const (
	StateNew       RelayerTransactionState = "STATE_NEW"
	StateExecuted  RelayerTransactionState = "STATE_EXECUTED"
	StateMined     RelayerTransactionState = "STATE_MINED"
	StateInvalid   RelayerTransactionState = "STATE_INVALID"
	StateConfirmed RelayerTransactionState = "STATE_CONFIRMED"
	StateFailed    RelayerTransactionState = "STATE_FAILED"
)

// RelayerTransaction is the relayer's record of a submitted transaction.
type RelayerTransaction struct {
	TransactionID   string    `json:"transactionID"`
	TransactionHash string    `json:"transactionHash"`
	From            string    `json:"from"`
	To              string    `json:"to"`
	ProxyAddress    string    `json:"proxyAddress"`
	Data            string    `json:"data"`
	Nonce           string    `json:"nonce"`
	Value           string    `json:"value"`
	State           string    `json:"state"`
	Type            string    `json:"type"`
	Metadata        string    `json:"metadata"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// RelayerTransactionResponse is the synchronous acknowledgement returned by
// the relayer on submission.
type RelayerTransactionResponse struct {
	TransactionID   string `json:"transactionID"`
	State           string `json:"state"`
	TransactionHash string `json:"transactionHash"`
}

// SafeContracts is the per-chain contract set for the Safe scheme.
type SafeContracts struct {
	Factory      string
	Multisend    string
	InitCodeHash string
}

// Valid reports whether the Safe scheme is fully configured. A partially
// populated config counts as unsupported.
func (c SafeContracts) Valid() bool {
	return c.Factory != "" && c.Multisend != "" && c.InitCodeHash != ""
}

// ProxyContracts is the per-chain contract set for the Proxy scheme.
type ProxyContracts struct {
	RelayHub     string
	Factory      string
	InitCodeHash string
}

// Valid reports whether the Proxy scheme is fully configured.
func (c ProxyContracts) Valid() bool {
	return c.RelayHub != "" && c.Factory != "" && c.InitCodeHash != ""
}

// ContractConfig is the full contract table for one chain.
type ContractConfig struct {
	Safe  SafeContracts
	Proxy ProxyContracts
}
