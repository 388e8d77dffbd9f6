package txbuilder

import (
	"fmt"
	"math/big"
	"strconv"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"

	"github.com/zekikos/builder-relayer-client/internal/encoding"
	"github.com/zekikos/builder-relayer-client/internal/ethutil"
	"github.com/zekikos/builder-relayer-client/pkg/signer"
	"github.com/zekikos/builder-relayer-client/pkg/types"
)

// safeTxHash computes the EIP-712 SafeTx struct hash binding the aggregated
// transaction to the Safe's address, the chain and the relayer nonce.
func safeTxHash(chainID int64, safeAddress string, tx types.SafeTransaction, nonce int64) ([]byte, error) {
	value, err := ethutil.ParseBig(tx.Value)
	if err != nil {
		return nil, fmt.Errorf("invalid value: %w", err)
	}

	typedData := apitypes.TypedData{
		Types: apitypes.Types{
			"EIP712Domain": {
				{Name: "chainId", Type: "uint256"},
				{Name: "verifyingContract", Type: "address"},
			},
			"SafeTx": {
				{Name: "to", Type: "address"},
				{Name: "value", Type: "uint256"},
				{Name: "data", Type: "bytes"},
				{Name: "operation", Type: "uint8"},
				{Name: "safeTxGas", Type: "uint256"},
				{Name: "baseGas", Type: "uint256"},
				{Name: "gasPrice", Type: "uint256"},
				{Name: "gasToken", Type: "address"},
				{Name: "refundReceiver", Type: "address"},
				{Name: "nonce", Type: "uint256"},
			},
		},
		PrimaryType: "SafeTx",
		Domain: apitypes.TypedDataDomain{
			ChainId:           (*math.HexOrDecimal256)(big.NewInt(chainID)),
			VerifyingContract: safeAddress,
		},
		Message: apitypes.TypedDataMessage{
			"to":             tx.To,
			"value":          (*math.HexOrDecimal256)(value),
			"data":           tx.Data,
			"operation":      (*math.HexOrDecimal256)(big.NewInt(int64(tx.Operation))),
			"safeTxGas":      (*math.HexOrDecimal256)(big.NewInt(0)),
			"baseGas":        (*math.HexOrDecimal256)(big.NewInt(0)),
			"gasPrice":       (*math.HexOrDecimal256)(big.NewInt(0)),
			"gasToken":       types.ZeroAddress,
			"refundReceiver": types.ZeroAddress,
			"nonce":          (*math.HexOrDecimal256)(big.NewInt(nonce)),
		},
	}

	hash, _, err := apitypes.TypedDataAndHash(typedData)
	if err != nil {
		return nil, fmt.Errorf("hash safe tx: %w", err)
	}
	return hash, nil
}

// BuildSafeSubmission aggregates the batch into one Safe execution and signs
// it. The whole batch executes atomically on-chain.
func BuildSafeSubmission(s signer.Signer, args types.SafeSubmissionArgs, cfg types.SafeContracts, metadata string) (*types.SubmitRequest, error) {
	tx, err := encoding.AggregateSafeBatch(args.Transactions, cfg.Multisend)
	if err != nil {
		return nil, err
	}
	safeAddress, err := DeriveSafeAddress(args.From, cfg)
	if err != nil {
		return nil, err
	}

	hash, err := safeTxHash(args.ChainID, safeAddress, tx, args.Nonce)
	if err != nil {
		return nil, err
	}
	sig, err := s.SignMessage(hash)
	if err != nil {
		return nil, fmt.Errorf("sign safe tx: %w", err)
	}
	packedSig, err := ethutil.PackSafeSignature(sig)
	if err != nil {
		return nil, err
	}

	return &types.SubmitRequest{
		Type:        string(types.SubmissionSafe),
		From:        args.From,
		To:          tx.To,
		ProxyWallet: safeAddress,
		Data:        tx.Data,
		Nonce:       strconv.FormatInt(args.Nonce, 10),
		Signature:   packedSig,
		SignatureParams: types.SignatureParams{
			GasPrice:       "0",
			Operation:      strconv.Itoa(int(tx.Operation)),
			SafeTxnGas:     "0",
			BaseGas:        "0",
			GasToken:       types.ZeroAddress,
			RefundReceiver: types.ZeroAddress,
		},
		Metadata: metadata,
	}, nil
}
