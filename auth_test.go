package relay

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zekikos/builder-relayer-client/pkg/types"
)

func TestBuilderAuthValid(t *testing.T) {
	t.Parallel()

	var nilAuth *BuilderAuth
	assert.False(t, nilAuth.Valid())
	assert.False(t, (&BuilderAuth{}).Valid())
	assert.False(t, (&BuilderAuth{Local: &BuilderCredentials{Key: "k"}}).Valid())
	assert.False(t, (&BuilderAuth{Remote: &RemoteAuthConfig{}}).Valid())

	assert.True(t, validBuilderAuth().Valid())
	assert.True(t, (&BuilderAuth{Remote: &RemoteAuthConfig{Host: "https://signer.test"}}).Valid())
}

func TestLocalHeaders_SignatureCoversTimestampMethodPathBody(t *testing.T) {
	t.Parallel()

	auth := validBuilderAuth()
	headers, err := auth.Headers(context.Background(), http.MethodPost, EndpointSubmit, `{"type":"SAFE"}`)
	require.NoError(t, err)

	timestamp := headers.Get(HeaderBuilderTimestamp)
	require.NotEmpty(t, timestamp)
	assert.Equal(t, "test-key", headers.Get(HeaderBuilderAPIKey))
	assert.Equal(t, "test-pass", headers.Get(HeaderBuilderPassphrase))

	// Recompute the signature from the emitted timestamp.
	expected, err := SignHMAC(auth.Local.Secret, timestamp+http.MethodPost+EndpointSubmit+`{"type":"SAFE"}`)
	require.NoError(t, err)
	assert.Equal(t, expected, headers.Get(HeaderBuilderSignature))
}

func TestLocalHeaders_IncompleteCredentialsError(t *testing.T) {
	t.Parallel()

	auth := &BuilderAuth{Local: &BuilderCredentials{Key: "k", Secret: "c2VjcmV0"}}
	_, err := auth.Headers(context.Background(), http.MethodGet, EndpointTransactions, "")
	require.ErrorIs(t, err, types.ErrMissingBuilderAuth)
}

func TestSignHMAC_DeterministicAndSecretAlphabetTolerant(t *testing.T) {
	t.Parallel()

	first, err := SignHMAC("c2VjcmV0", "message")
	require.NoError(t, err)
	second, err := SignHMAC("c2VjcmV0", "message")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// Same key material without padding decodes identically.
	unpadded, err := SignHMAC("c2VjcmV0IQ", "message")
	require.NoError(t, err)
	padded, err := SignHMAC("c2VjcmV0IQ==", "message")
	require.NoError(t, err)
	assert.Equal(t, padded, unpadded)

	_, err = SignHMAC("%%%not-base64%%%", "message")
	require.Error(t, err)
}

type doerFunc func(req *http.Request) (*http.Response, error)

func (f doerFunc) Do(req *http.Request) (*http.Response, error) {
	return f(req)
}

func TestRemoteHeaders_ForwardsSignedHeaders(t *testing.T) {
	t.Parallel()

	var seenBody map[string]string
	remote := doerFunc(func(req *http.Request) (*http.Response, error) {
		assert.Equal(t, "Bearer remote-token", req.Header.Get("Authorization"))
		raw, _ := io.ReadAll(req.Body)
		require.NoError(t, json.Unmarshal(raw, &seenBody))

		resp, _ := json.Marshal(map[string]string{
			HeaderBuilderAPIKey:     "remote-key",
			HeaderBuilderPassphrase: "remote-pass",
			HeaderBuilderSignature:  "remote-sig",
			HeaderBuilderTimestamp:  "1700000000000",
		})
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader(string(resp))),
		}, nil
	})

	auth := &BuilderAuth{Remote: &RemoteAuthConfig{
		Host:       "https://signer.test/headers",
		Token:      "remote-token",
		HTTPClient: remote,
	}}

	headers, err := auth.Headers(context.Background(), http.MethodPost, EndpointSubmit, `{"a":1}`)
	require.NoError(t, err)
	assert.Equal(t, "remote-key", headers.Get(HeaderBuilderAPIKey))
	assert.Equal(t, "remote-sig", headers.Get(HeaderBuilderSignature))
	assert.Equal(t, http.MethodPost, seenBody["method"])
	assert.Equal(t, EndpointSubmit, seenBody["path"])
	assert.Equal(t, `{"a":1}`, seenBody["body"])
}

func TestRemoteHeaders_MissingHeaderIsError(t *testing.T) {
	t.Parallel()

	remote := doerFunc(func(*http.Request) (*http.Response, error) {
		resp, _ := json.Marshal(map[string]string{
			HeaderBuilderAPIKey: "remote-key",
		})
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader(string(resp))),
		}, nil
	})

	auth := &BuilderAuth{Remote: &RemoteAuthConfig{Host: "https://signer.test", HTTPClient: remote}}
	_, err := auth.Headers(context.Background(), http.MethodGet, EndpointTransactions, "")
	require.ErrorContains(t, err, "missing")
}
