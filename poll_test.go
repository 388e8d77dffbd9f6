package relay

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zekikos/builder-relayer-client/pkg/types"
)

// newPollClient returns a client whose transaction endpoint walks through
// the given states, one per poll, repeating the last one afterwards. An
// empty state yields an empty record list for that poll.
func newPollClient(t *testing.T, states []string, calls *int) *Client {
	t.Helper()
	stub := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		require.Equal(t, EndpointTransaction, req.URL.Path)
		i := *calls
		*calls++
		if i >= len(states) {
			i = len(states) - 1
		}
		if states[i] == "" {
			return newResponse(http.StatusOK, `[]`), nil
		}
		body := fmt.Sprintf(`[{"transactionID":"tx-1","state":%q,"transactionHash":"0xabc"}]`, states[i])
		return newResponse(http.StatusOK, body), nil
	})

	client, err := New("https://relayer.test", 137, types.SchemeSafe,
		WithHTTPClient(&http.Client{Transport: stub}))
	require.NoError(t, err)
	return client
}

func TestPollUntilState_MatchesOnThirdAttempt(t *testing.T) {
	t.Parallel()

	calls := 0
	client := newPollClient(t, []string{"pending", "pending", "confirmed"}, &calls)

	record, err := client.PollUntilState(context.Background(), "tx-1",
		[]types.RelayerTransactionState{"confirmed"}, "failed", 3, time.Second)
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, "confirmed", record.State)
	assert.Equal(t, 3, calls, "must stop on the matching attempt, no fourth call")
}

func TestPollUntilState_FailStateReturnsNothing(t *testing.T) {
	t.Parallel()

	calls := 0
	client := newPollClient(t, []string{"pending", "failed"}, &calls)

	record, err := client.PollUntilState(context.Background(), "tx-1",
		[]types.RelayerTransactionState{"confirmed"}, "failed", 3, time.Second)
	require.NoError(t, err)
	assert.Nil(t, record)
	assert.Equal(t, 2, calls, "fail state is terminal on the attempt it is observed")
}

func TestPollUntilState_TimeoutAfterExactBudget(t *testing.T) {
	t.Parallel()

	calls := 0
	client := newPollClient(t, []string{"pending"}, &calls)

	record, err := client.PollUntilState(context.Background(), "tx-1",
		[]types.RelayerTransactionState{"confirmed"}, "failed", 3, time.Second)
	require.NoError(t, err, "timeout is a soft outcome, not an error")
	assert.Nil(t, record)
	assert.Equal(t, 3, calls, "exactly maxPolls attempts, never a fourth")
}

func TestPollUntilState_NoSleepAfterFinalAttempt(t *testing.T) {
	t.Parallel()

	calls := 0
	client := newPollClient(t, []string{""}, &calls)

	start := time.Now()
	record, err := client.PollUntilState(context.Background(), "tx-1",
		[]types.RelayerTransactionState{"confirmed"}, "failed", 1, time.Second)
	elapsed := time.Since(start)

	require.NoError(t, err)
	assert.Nil(t, record)
	assert.Less(t, elapsed, 250*time.Millisecond, "final attempt must not sleep")
}

func TestPollUntilState_ContextCancelInterruptsWait(t *testing.T) {
	t.Parallel()

	calls := 0
	client := newPollClient(t, []string{"pending"}, &calls)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := client.PollUntilState(ctx, "tx-1",
		[]types.RelayerTransactionState{"confirmed"}, "failed", 3, time.Second)
	elapsed := time.Since(start)

	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, elapsed, 400*time.Millisecond)
}

func TestPollUntilState_EmptyRecordsStayPending(t *testing.T) {
	t.Parallel()

	calls := 0
	client := newPollClient(t, []string{"", "", "confirmed"}, &calls)

	record, err := client.PollUntilState(context.Background(), "tx-1",
		[]types.RelayerTransactionState{"confirmed"}, "failed", 5, time.Second)
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, 3, calls)
}

func TestPollUntilState_TransportErrorPropagates(t *testing.T) {
	t.Parallel()

	stub := roundTripFunc(func(*http.Request) (*http.Response, error) {
		return newResponse(http.StatusInternalServerError, `{"error":"boom"}`), nil
	})
	client, err := New("https://relayer.test", 137, types.SchemeSafe,
		WithHTTPClient(&http.Client{Transport: stub}))
	require.NoError(t, err)

	_, err = client.PollUntilState(context.Background(), "tx-1",
		[]types.RelayerTransactionState{"confirmed"}, "", 3, time.Second)
	require.Error(t, err)
	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
}
