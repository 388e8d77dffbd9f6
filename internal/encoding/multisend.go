// Package encoding flattens transaction batches into the single call
// payloads the Safe multisend and Proxy contracts execute on-chain. Both
// encodings are deterministic and order-preserving.
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

const multisendABIJSON = `[{"constant":false,"inputs":[{"internalType":"bytes","name":"transactions","type":"bytes"}],"name":"multiSend","outputs":[],"payable":false,"stateMutability":"nonpayable","type":"function"}]`

var multisendABI abi.ABI

func init() {
	if err := json.Unmarshal([]byte(multisendABIJSON), &multisendABI); err != nil {
		panic(fmt.Sprintf("invalid multisend abi: %v", err))
	}
}

// AggregateSafeBatch folds a batch into one SafeTransaction: a single
// element passes through untouched, anything larger becomes a delegatecall
// into the multisend contract.
func AggregateSafeBatch(txns []types.SafeTransaction, multisendAddress string) (types.SafeTransaction, error) {
	if len(txns) == 1 {
		return txns[0], nil
	}
	packed, err := packMultisend(txns)
	if err != nil {
		return types.SafeTransaction{}, err
	}
	data, err := multisendABI.Pack("multiSend", packed)
	if err != nil {
		return types.SafeTransaction{}, fmt.Errorf("pack multisend: %w", err)
	}
	return types.SafeTransaction{
		To:        multisendAddress,
		Operation: types.OperationDelegateCall,
		Data:      hexutil.Encode(data),
		Value:     "0",
	}, nil
}

// packMultisend produces the multisend contract's packed layout per element:
// operation (1) || to (20) || value (32) || data length (32) || data.
func packMultisend(txns []types.SafeTransaction) ([]byte, error) {
	var out []byte
	for _, tx := range txns {
		value, err := ethutil.ParseBig(tx.Value)
		if err != nil {
			return nil, fmt.Errorf("invalid value: %w", err)
		}
		data, err := ethutil.HexBytes(tx.Data)
		if err != nil {
			return nil, fmt.Errorf("invalid data: %w", err)
		}

		out = append(out, byte(tx.Operation))
		out = append(out, common.HexToAddress(tx.To).Bytes()...)
		out = append(out, ethutil.PadLeft32(value.Bytes())...)
		out = append(out, ethutil.PadLeft32(big.NewInt(int64(len(data))).Bytes())...)
		out = append(out, data...)
	}
	return out, nil
}
