// Package txbuilder constructs the signed, scheme-specific submission
// payloads the relayer accepts. Builders are pure apart from invoking the
// signer; a failed build leaves no state behind.
package txbuilder

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/zekikos/builder-relayer-client/pkg/types"
)

// DeriveSafeAddress computes the CREATE2 address of an owner's Safe. For a
// fixed (owner, factory, init code hash) the result never changes.
func DeriveSafeAddress(owner string, cfg types.SafeContracts) (string, error) {
	if !cfg.Valid() {
		return "", types.ErrSchemeNotConfigured
	}
	padded := common.LeftPadBytes(common.HexToAddress(owner).Bytes(), 32)
	salt := crypto.Keccak256(padded)
	initCodeHash, err := hexutil.Decode(cfg.InitCodeHash)
	if err != nil {
		return "", fmt.Errorf("invalid safe init code hash: %w", err)
	}
	addr := crypto.CreateAddress2(common.HexToAddress(cfg.Factory), common.BytesToHash(salt), initCodeHash)
	return addr.Hex(), nil
}

// DeriveProxyAddress computes the CREATE2 address of an owner's proxy
// wallet. The proxy factory salts with the raw 20-byte owner address.
func DeriveProxyAddress(owner string, cfg types.ProxyContracts) (string, error) {
	if !cfg.Valid() {
		return "", types.ErrSchemeNotConfigured
	}
	salt := crypto.Keccak256(common.HexToAddress(owner).Bytes())
	initCodeHash, err := hexutil.Decode(cfg.InitCodeHash)
	if err != nil {
		return "", fmt.Errorf("invalid proxy init code hash: %w", err)
	}
	addr := crypto.CreateAddress2(common.HexToAddress(cfg.Factory), common.BytesToHash(salt), initCodeHash)
	return addr.Hex(), nil
}
