package relay

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/zekikos/builder-relayer-client/internal/encoding"
	"github.com/zekikos/builder-relayer-client/internal/txbuilder"
	"github.com/zekikos/builder-relayer-client/pkg/types"
)

// Execute submits a batch of transactions through the client's scheme. The
// batch is ordered; the relayer executes it in order, and under the Safe
// scheme atomically. Each call consumes one fresh relayer nonce.
func (c *Client) Execute(ctx context.Context, txns []types.Transaction, metadata string) (*TransactionHandle, error) {
	if c.signer == nil {
		return nil, types.ErrSignerUnavailable
	}
	if len(txns) == 0 {
		return nil, types.ErrEmptyBatch
	}

	switch c.scheme {
	case types.SchemeSafe:
		batch := make([]types.SafeTransaction, 0, len(txns))
		for _, tx := range txns {
			batch = append(batch, types.SafeTransaction{
				To:        tx.To,
				Operation: types.OperationCall,
				Data:      tx.Data,
				Value:     defaultValue(tx.Value),
			})
		}
		return c.executeSafe(ctx, batch, metadata)
	case types.SchemeProxy:
		batch := make([]types.ProxyTransaction, 0, len(txns))
		for _, tx := range txns {
			batch = append(batch, types.ProxyTransaction{
				To:       tx.To,
				TypeCode: types.CallTypeCall,
				Data:     tx.Data,
				Value:    defaultValue(tx.Value),
			})
		}
		return c.executeProxy(ctx, batch, metadata)
	default:
		return nil, fmt.Errorf("%w: %q", types.ErrUnknownScheme, c.scheme)
	}
}

func (c *Client) executeSafe(ctx context.Context, batch []types.SafeTransaction, metadata string) (*TransactionHandle, error) {
	if !c.contracts.Safe.Valid() {
		return nil, types.ErrSchemeNotConfigured
	}
	safe, err := c.ExpectedSafe()
	if err != nil {
		return nil, err
	}
	deployed, err := c.GetDeployed(ctx, safe)
	if err != nil {
		return nil, err
	}
	if !deployed {
		return nil, types.ErrSafeNotDeployed
	}

	nonce, err := c.GetNonce(ctx, safe, types.SchemeSafe)
	if err != nil {
		return nil, err
	}

	request, err := txbuilder.BuildSafeSubmission(c.signer, types.SafeSubmissionArgs{
		From:         c.signer.Address().Hex(),
		Nonce:        nonce.Nonce,
		ChainID:      c.chainID,
		Transactions: batch,
	}, c.contracts.Safe, metadata)
	if err != nil {
		return nil, err
	}
	return c.submit(ctx, request)
}

func (c *Client) executeProxy(ctx context.Context, batch []types.ProxyTransaction, metadata string) (*TransactionHandle, error) {
	if !c.contracts.Proxy.Valid() {
		return nil, types.ErrSchemeNotConfigured
	}
	from := c.signer.Address().Hex()
	relayPayload, err := c.GetRelayPayload(ctx, from, types.SchemeProxy)
	if err != nil {
		return nil, err
	}

	data, err := encoding.EncodeProxyBatch(batch)
	if err != nil {
		return nil, err
	}

	request, err := txbuilder.BuildProxySubmission(ctx, c.signer, c.estimator, types.ProxySubmissionArgs{
		From:     from,
		Nonce:    relayPayload.Nonce,
		GasPrice: "0",
		Data:     data,
		Relay:    relayPayload.Address,
	}, c.contracts.Proxy, metadata)
	if err != nil {
		return nil, err
	}
	return c.submit(ctx, request)
}

// Deploy submits a Safe deployment with no relayer payment. It refuses to
// deploy twice rather than silently succeeding.
func (c *Client) Deploy(ctx context.Context) (*TransactionHandle, error) {
	if c.signer == nil {
		return nil, types.ErrSignerUnavailable
	}
	if !c.contracts.Safe.Valid() {
		return nil, types.ErrSchemeNotConfigured
	}
	safe, err := c.ExpectedSafe()
	if err != nil {
		return nil, err
	}
	deployed, err := c.GetDeployed(ctx, safe)
	if err != nil {
		return nil, err
	}
	if deployed {
		return nil, types.ErrSafeDeployed
	}

	request, err := txbuilder.BuildSafeDeployment(c.signer, c.contracts.Safe, types.SafeDeploymentArgs{
		From:            c.signer.Address().Hex(),
		ChainID:         c.chainID,
		PaymentToken:    types.ZeroAddress,
		Payment:         "0",
		PaymentReceiver: types.ZeroAddress,
	})
	if err != nil {
		return nil, err
	}
	return c.submit(ctx, request)
}

func (c *Client) submit(ctx context.Context, request *types.SubmitRequest) (*TransactionHandle, error) {
	payload, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("encode submission: %w", err)
	}

	var resp types.RelayerTransactionResponse
	if err := c.sendAuthed(ctx, http.MethodPost, EndpointSubmit, string(payload), &resp); err != nil {
		return nil, err
	}
	return &TransactionHandle{
		TransactionID:   resp.TransactionID,
		State:           resp.State,
		TransactionHash: resp.TransactionHash,
		client:          c,
	}, nil
}

func defaultValue(value string) string {
	if value == "" {
		return "0"
	}
	return value
}
