package encoding

import (
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/zekikos/builder-relayer-client/internal/ethutil"
	"github.com/zekikos/builder-relayer-client/pkg/types"
)

const proxyABIJSON = `[{"constant":false,"inputs":[{"components":[{"name":"typeCode","type":"uint8"},{"name":"to","type":"address"},{"name":"value","type":"uint256"},{"name":"data","type":"bytes"}],"name":"calls","type":"tuple[]"}],"name":"proxy","outputs":[{"name":"returnValues","type":"bytes[]"}],"payable":true,"stateMutability":"payable","type":"function"}]`

var proxyABI abi.ABI

func init() {
	if err := json.Unmarshal([]byte(proxyABIJSON), &proxyABI); err != nil {
		panic(fmt.Sprintf("invalid proxy abi: %v", err))
	}
}

type proxyCall struct {
	TypeCode uint8
	To       common.Address
	Value    *big.Int
	Data     []byte
}

// EncodeProxyBatch flattens a batch into a single proxy(calls[]) call
// payload. The on-chain proxy contract unpacks and executes the calls in
// order.
func EncodeProxyBatch(txns []types.ProxyTransaction) (string, error) {
	calls := make([]proxyCall, 0, len(txns))
	for _, tx := range txns {
		value, err := ethutil.ParseBig(tx.Value)
		if err != nil {
			return "", fmt.Errorf("invalid value: %w", err)
		}
		data, err := ethutil.HexBytes(tx.Data)
		if err != nil {
			return "", fmt.Errorf("invalid data: %w", err)
		}
		calls = append(calls, proxyCall{
			TypeCode: uint8(tx.TypeCode),
			To:       common.HexToAddress(tx.To),
			Value:    value,
			Data:     data,
		})
	}

	packed, err := proxyABI.Pack("proxy", calls)
	if err != nil {
		return "", fmt.Errorf("pack proxy calls: %w", err)
	}
	return hexutil.Encode(packed), nil
}
