package types

import "errors"

var (
	// ErrSignerUnavailable is returned by operations that need a signer when
	// none is attached to the client.
	ErrSignerUnavailable = errors.New("a signer is required for this operation")

	// ErrEmptyBatch is returned by Execute before any network call when the
	// batch has no transactions.
	ErrEmptyBatch = errors.New("transaction batch is empty")

	// ErrSafeDeployed is returned by Deploy when the Safe already exists.
	ErrSafeDeployed = errors.New("safe already deployed")

	// ErrSafeNotDeployed is returned by Execute on the Safe scheme when the
	// Safe has not been deployed yet.
	ErrSafeNotDeployed = errors.New("safe not deployed")

	// ErrUnsupportedChain is returned when no contract table exists for the
	// requested chain id.
	ErrUnsupportedChain = errors.New("chain is not supported")

	// ErrSchemeNotConfigured is returned when the contract table for the
	// chain is missing or partial for the client's scheme.
	ErrSchemeNotConfigured = errors.New("scheme is not configured on this chain")

	// ErrUnknownScheme is returned when dispatch encounters a scheme tag
	// outside the closed SAFE/PROXY set.
	ErrUnknownScheme = errors.New("unknown relay scheme")

	// ErrMissingBuilderAuth is returned by header computation when the
	// builder identity is absent or incomplete.
	ErrMissingBuilderAuth = errors.New("builder credentials are not configured")
)
