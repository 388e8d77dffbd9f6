package relay

import (
	"context"
	"time"

	"github.com/zekikos/builder-relayer-client/pkg/types"
)

// TransactionHandle wraps the relayer's submission acknowledgement together
// with a non-owning reference back to the client, so callers can poll later
// without re-supplying configuration. The client outlives any handle it
// issues.
type TransactionHandle struct {
	TransactionID   string
	State           string
	TransactionHash string

	client *Client
}

// Transaction fetches the relayer's current records for this submission.
func (h *TransactionHandle) Transaction(ctx context.Context) ([]types.RelayerTransaction, error) {
	return h.client.GetTransaction(ctx, h.TransactionID)
}

// Poll polls this submission with explicit targets and budget.
func (h *TransactionHandle) Poll(ctx context.Context, targetStates []types.RelayerTransactionState, failState types.RelayerTransactionState, maxPolls int, pollFrequency time.Duration) (*types.RelayerTransaction, error) {
	return h.client.PollUntilState(ctx, h.TransactionID, targetStates, failState, maxPolls, pollFrequency)
}

// Wait polls with defaults until the transaction is mined or confirmed,
// treating STATE_FAILED as terminal. A nil record with a nil error means the
// outcome is still unknown.
func (h *TransactionHandle) Wait(ctx context.Context) (*types.RelayerTransaction, error) {
	return h.client.PollUntilState(
		ctx,
		h.TransactionID,
		[]types.RelayerTransactionState{types.StateMined, types.StateConfirmed},
		types.StateFailed,
		0,
		0,
	)
}
