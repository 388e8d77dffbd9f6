// Package relay is a client for an off-chain gasless relayer: the relayer
// pays gas for batches of on-chain operations submitted through either a
// Safe multisig wallet or a lightweight forwarding proxy contract.
package relay

import (
	"context"
	"net/http"
	"strings"

	"github.com/zekikos/builder-relayer-client/internal/txbuilder"
	"github.com/zekikos/builder-relayer-client/pkg/log"
	"github.com/zekikos/builder-relayer-client/pkg/signer"
	"github.com/zekikos/builder-relayer-client/pkg/types"
)

// Client coordinates relayer submissions for one signer on one chain under
// one scheme. The scheme and signer are fixed at construction.
//
// A Client is safe for sequential reuse. Two overlapping Execute calls for
// the same address race on nonce acquisition (each fetches the current nonce
// independently); callers that submit concurrently must serialize per
// address themselves.
type Client struct {
	baseURL    string
	chainID    int64
	scheme     types.Scheme
	contracts  types.ContractConfig
	transport  *Transport
	httpClient *http.Client
	signer     signer.Signer
	estimator  signer.GasEstimator
	auth       *BuilderAuth
	log        log.Logger
}

// Option configures a Client at construction time.
type Option func(*Client)

// WithSigner attaches the signing capability. Required for Execute and
// Deploy; read-only queries work without it.
func WithSigner(s signer.Signer) Option {
	return func(c *Client) { c.signer = s }
}

// WithBuilderAuth attaches a builder identity for request attribution.
func WithBuilderAuth(a *BuilderAuth) Option {
	return func(c *Client) { c.auth = a }
}

// WithGasEstimator attaches an RPC-backed gas estimator for Proxy
// submissions.
func WithGasEstimator(e signer.GasEstimator) Option {
	return func(c *Client) { c.estimator = e }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger attaches a logger; the default discards everything.
func WithLogger(l log.Logger) Option {
	return func(c *Client) { c.log = l }
}

// New builds a client for the given relayer URL, chain and scheme. An empty
// scheme defaults to Safe. Construction fails if the chain has no contract
// table at all; per-scheme validity is checked when a scheme operation runs.
func New(relayerURL string, chainID int64, scheme types.Scheme, opts ...Option) (*Client, error) {
	if scheme == "" {
		scheme = types.SchemeSafe
	}
	contracts, err := ContractsForChain(chainID)
	if err != nil {
		return nil, err
	}

	c := &Client{
		baseURL:   strings.TrimRight(relayerURL, "/"),
		chainID:   chainID,
		scheme:    scheme,
		contracts: contracts,
		log:       log.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.transport = NewTransport(c.httpClient, c.log)
	return c, nil
}

// ChainID returns the chain the client is bound to.
func (c *Client) ChainID() int64 {
	return c.chainID
}

// Scheme returns the submission scheme the client is bound to.
func (c *Client) Scheme() types.Scheme {
	return c.scheme
}

// GetNonce fetches the relayer nonce for an (address, scheme) pair. Nonces
// are issued server-side and must be consumed exactly once.
func (c *Client) GetNonce(ctx context.Context, address string, scheme types.Scheme) (types.NoncePayload, error) {
	var resp types.NoncePayload
	err := c.get(ctx, EndpointNonce, map[string]string{"address": address, "type": string(scheme)}, &resp)
	return resp, err
}

// GetRelayPayload fetches the relay identity and nonce for a Proxy
// submission.
func (c *Client) GetRelayPayload(ctx context.Context, address string, scheme types.Scheme) (types.RelayPayload, error) {
	var resp types.RelayPayload
	err := c.get(ctx, EndpointRelayPayload, map[string]string{"address": address, "type": string(scheme)}, &resp)
	return resp, err
}

// GetTransaction fetches the relayer's records for a transaction id. The
// relayer may return zero, one or several records; callers treat the first
// as authoritative and an empty slice as not yet known.
func (c *Client) GetTransaction(ctx context.Context, transactionID string) ([]types.RelayerTransaction, error) {
	var resp []types.RelayerTransaction
	err := c.get(ctx, EndpointTransaction, map[string]string{"id": transactionID}, &resp)
	return resp, err
}

// GetTransactions lists the builder's transactions. Requires a builder
// identity; the relayer rejects unattributed requests.
func (c *Client) GetTransactions(ctx context.Context) ([]types.RelayerTransaction, error) {
	var resp []types.RelayerTransaction
	err := c.sendAuthed(ctx, http.MethodGet, EndpointTransactions, "", &resp)
	return resp, err
}

// GetDeployed reports whether a wallet contract exists at the address.
func (c *Client) GetDeployed(ctx context.Context, address string) (bool, error) {
	var resp types.DeployedResponse
	err := c.get(ctx, EndpointDeployed, map[string]string{"address": address}, &resp)
	return resp.Deployed, err
}

// ExpectedSafe derives the signer's Safe address. The derivation is pure:
// the same owner and chain always produce the same address.
func (c *Client) ExpectedSafe() (string, error) {
	if c.signer == nil {
		return "", types.ErrSignerUnavailable
	}
	return txbuilder.DeriveSafeAddress(c.signer.Address().Hex(), c.contracts.Safe)
}

func (c *Client) get(ctx context.Context, path string, params map[string]string, out any) error {
	return c.transport.Do(ctx, http.MethodGet, c.baseURL+path, &RequestOptions{Params: params}, out)
}

// sendAuthed sends a request with builder attribution headers when a valid
// identity is configured. Header computation failures degrade to an
// unauthenticated request; the relayer is the final arbiter.
func (c *Client) sendAuthed(ctx context.Context, method, path, body string, out any) error {
	opts := &RequestOptions{Headers: http.Header{}}
	if c.auth.Valid() {
		headers, err := c.auth.Headers(ctx, method, path, body)
		if err != nil {
			c.log.Warnw("builder auth headers unavailable, sending unauthenticated",
				"method", method, "path", path, "err", err)
		} else {
			for k, values := range headers {
				for _, v := range values {
					opts.Headers.Add(k, v)
				}
			}
		}
	}
	if body != "" {
		opts.Body = []byte(body)
	}
	return c.transport.Do(ctx, method, c.baseURL+path, opts, out)
}
