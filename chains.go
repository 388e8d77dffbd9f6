package relay

import (
	"github.com/zekikos/builder-relayer-client/pkg/types"
)

// Per-chain contract tables. A scheme whose entry is partial is treated as
// unsupported on that chain; see types.SafeContracts.Valid and
// types.ProxyContracts.Valid.
var contractsByChain = map[int64]types.ContractConfig{
	// Polygon mainnet.
	137: {
		Safe: types.SafeContracts{
			Factory:      "0xaacFeEa03eb1561C4e67d661e40682Bd20E3541b",
			Multisend:    "0xA238CBeb142c10Ef7Ad8442C6D1f9E89e07e7761",
			InitCodeHash: "0x2bce2fe450ed09ac9b0d4bbec4dbf15ab15af15209a3fbcfd4f3f488dd8b1e43",
		},
		Proxy: types.ProxyContracts{
			RelayHub:     "0xD216153c06E857cD7f72665E0aF1d7D82172F494",
			Factory:      "0xaB45c5A4B0c941a2F231C04C3f49182e1A254052",
			InitCodeHash: "0x8fa3d527a51014a2d9a9b6d02c4e6edca36c8efd03c14cbc2573e2bb2c12a3d1",
		},
	},
	// Amoy testnet; the Proxy scheme is not deployed there.
	80002: {
		Safe: types.SafeContracts{
			Factory:      "0xaacFeEa03eb1561C4e67d661e40682Bd20E3541b",
			Multisend:    "0xA238CBeb142c10Ef7Ad8442C6D1f9E89e07e7761",
			InitCodeHash: "0x2bce2fe450ed09ac9b0d4bbec4dbf15ab15af15209a3fbcfd4f3f488dd8b1e43",
		},
	},
}

// ContractsForChain resolves the contract table for a chain id.
func ContractsForChain(chainID int64) (types.ContractConfig, error) {
	config, ok := contractsByChain[chainID]
	if !ok {
		return types.ContractConfig{}, types.ErrUnsupportedChain
	}
	return config, nil
}
