package relay

import (
	"github.com/zekikos/builder-relayer-client/internal/txbuilder"
)

// DeriveSafeAddress returns the deterministic Safe address for an owner on a
// supported chain.
func DeriveSafeAddress(chainID int64, owner string) (string, error) {
	config, err := ContractsForChain(chainID)
	if err != nil {
		return "", err
	}
	return txbuilder.DeriveSafeAddress(owner, config.Safe)
}

// DeriveProxyAddress returns the deterministic proxy wallet address for an
// owner on a supported chain.
func DeriveProxyAddress(chainID int64, owner string) (string, error) {
	config, err := ContractsForChain(chainID)
	if err != nil {
		return "", err
	}
	return txbuilder.DeriveProxyAddress(owner, config.Proxy)
}
