package relay

import (
	"context"
	"time"

	"github.com/zekikos/builder-relayer-client/pkg/types"
)

const (
	defaultMaxPolls      = 10
	defaultPollFrequency = 2 * time.Second
	minPollFrequency     = time.Second
)

// PollUntilState polls the relayer until the transaction reaches one of the
// target states, reaches failState, or the attempt budget runs out.
//
// A match returns the record. A fail-state observation and budget exhaustion
// both return (nil, nil): no result is deliberately ambiguous, since the
// transaction may still resolve server-side after the last attempt. Network
// errors from an individual poll propagate immediately.
func (c *Client) PollUntilState(ctx context.Context, transactionID string, targetStates []types.RelayerTransactionState, failState types.RelayerTransactionState, maxPolls int, pollFrequency time.Duration) (*types.RelayerTransaction, error) {
	targets := make(map[string]struct{}, len(targetStates))
	for _, s := range targetStates {
		targets[string(s)] = struct{}{}
	}

	if maxPolls <= 0 {
		maxPolls = defaultMaxPolls
	}
	switch {
	case pollFrequency <= 0:
		pollFrequency = defaultPollFrequency
	case pollFrequency < minPollFrequency:
		pollFrequency = minPollFrequency
	}

	for attempt := 1; attempt <= maxPolls; attempt++ {
		txns, err := c.GetTransaction(ctx, transactionID)
		if err != nil {
			return nil, err
		}
		if len(txns) > 0 {
			txn := txns[0]
			if _, ok := targets[txn.State]; ok {
				return &txn, nil
			}
			if failState != "" && txn.State == string(failState) {
				c.log.Warnw("transaction failed on-chain",
					"transactionID", transactionID, "transactionHash", txn.TransactionHash)
				return nil, nil
			}
		}

		if attempt == maxPolls {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(pollFrequency):
		}
	}

	c.log.Warnw("polling budget exhausted without a terminal state",
		"transactionID", transactionID, "attempts", maxPolls)
	return nil, nil
}
