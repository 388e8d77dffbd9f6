package relay

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/zekikos/builder-relayer-client/pkg/types"
)

// Builder attribution header names.
//
// #nosec G101 -- header names, not credentials.
const (
	HeaderBuilderAPIKey     = "POLY_BUILDER_API_KEY"
	HeaderBuilderPassphrase = "POLY_BUILDER_PASSPHRASE"
	HeaderBuilderSignature  = "POLY_BUILDER_SIGNATURE"
	HeaderBuilderTimestamp  = "POLY_BUILDER_TIMESTAMP"
)

// BuilderCredentials is a local builder identity. The secret is base64
// encoded; any of the standard alphabets is accepted.
type BuilderCredentials struct {
	Key        string
	Secret     string
	Passphrase string
}

// HTTPDoer executes HTTP requests against a remote header-signing service.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// RemoteAuthConfig points at a service that computes attribution headers on
// the builder's behalf, keeping the secret off this host.
type RemoteAuthConfig struct {
	Host       string
	Token      string
	HTTPClient HTTPDoer
}

// BuilderAuth computes per-request attribution headers from either a local
// identity or a remote signing service. Authentication is additive headers
// only; there is no session state.
type BuilderAuth struct {
	Local  *BuilderCredentials
	Remote *RemoteAuthConfig
}

// Valid reports whether the identity is complete enough to produce headers.
// An invalid identity is skipped, not an error: the request simply goes out
// unauthenticated.
func (a *BuilderAuth) Valid() bool {
	if a == nil {
		return false
	}
	if a.Local != nil {
		return a.Local.Key != "" && a.Local.Secret != "" && a.Local.Passphrase != ""
	}
	if a.Remote != nil {
		return a.Remote.Host != ""
	}
	return false
}

// Headers computes the attribution headers for one request. The signature
// covers timestamp, method, path and the serialized body.
func (a *BuilderAuth) Headers(ctx context.Context, method, path, body string) (http.Header, error) {
	if a == nil {
		return nil, types.ErrMissingBuilderAuth
	}
	if a.Local != nil {
		return a.localHeaders(method, path, body)
	}
	if a.Remote != nil {
		return a.remoteHeaders(ctx, method, path, body)
	}
	return nil, types.ErrMissingBuilderAuth
}

func (a *BuilderAuth) localHeaders(method, path, body string) (http.Header, error) {
	creds := a.Local
	if creds.Key == "" || creds.Secret == "" || creds.Passphrase == "" {
		return nil, types.ErrMissingBuilderAuth
	}

	timestamp := time.Now().UnixMilli()
	message := strconv.FormatInt(timestamp, 10) + method + path + body
	sig, err := SignHMAC(creds.Secret, message)
	if err != nil {
		return nil, err
	}

	headers := http.Header{}
	headers.Set(HeaderBuilderAPIKey, creds.Key)
	headers.Set(HeaderBuilderPassphrase, creds.Passphrase)
	headers.Set(HeaderBuilderTimestamp, strconv.FormatInt(timestamp, 10))
	headers.Set(HeaderBuilderSignature, sig)
	return headers, nil
}

func (a *BuilderAuth) remoteHeaders(ctx context.Context, method, path, body string) (http.Header, error) {
	remote := a.Remote
	if remote.Host == "" {
		return nil, types.ErrMissingBuilderAuth
	}
	if ctx == nil {
		ctx = context.Background()
	}

	raw, err := json.Marshal(map[string]string{
		"method": method,
		"path":   path,
		"body":   body,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal signing request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, remote.Host, bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("build signing request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if remote.Token != "" {
		req.Header.Set("Authorization", "Bearer "+remote.Token)
	}

	client := remote.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("remote signing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("remote signer returned status %d", resp.StatusCode)
	}

	var rawHeaders map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&rawHeaders); err != nil {
		return nil, fmt.Errorf("decode remote signer response: %w", err)
	}

	headers := http.Header{}
	for _, name := range []string{HeaderBuilderAPIKey, HeaderBuilderPassphrase, HeaderBuilderSignature, HeaderBuilderTimestamp} {
		value := rawHeaders[name]
		if value == "" {
			return nil, fmt.Errorf("remote signer response missing %s", name)
		}
		headers.Set(name, value)
	}
	return headers, nil
}

// SignHMAC computes the base64url HMAC-SHA256 attribution signature.
func SignHMAC(secret, message string) (string, error) {
	key, err := decodeSecret(secret)
	if err != nil {
		return "", err
	}
	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(message))
	return base64.URLEncoding.EncodeToString(mac.Sum(nil)), nil
}

func decodeSecret(secret string) ([]byte, error) {
	encodings := []*base64.Encoding{
		base64.URLEncoding,
		base64.RawURLEncoding,
		base64.StdEncoding,
		base64.RawStdEncoding,
	}
	var err error
	for _, enc := range encodings {
		var decoded []byte
		if decoded, err = enc.DecodeString(secret); err == nil {
			return decoded, nil
		}
	}
	return nil, fmt.Errorf("invalid base64 secret: %w", err)
}
