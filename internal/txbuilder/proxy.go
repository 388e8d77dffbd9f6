package txbuilder

import (
	"context"
	"fmt"
	"math/big"
	"strconv"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/zekikos/builder-relayer-client/internal/ethutil"
	"github.com/zekikos/builder-relayer-client/pkg/signer"
	"github.com/zekikos/builder-relayer-client/pkg/types"
)

// defaultProxyGasLimit is used when no estimator is available or estimation
// fails. The relay hub refunds unused gas, so overshooting is safe.
const defaultProxyGasLimit = 10_000_000

// proxyTxHash computes the relay hub's signed-message digest: a keccak over
// the "rlx:"-prefixed concatenation of every field the hub verifies.
func proxyTxHash(args types.ProxySubmissionArgs, to, relayerFee, gasLimit, relayHub string) ([]byte, error) {
	data, err := ethutil.HexBytes(args.Data)
	if err != nil {
		return nil, fmt.Errorf("decode data: %w", err)
	}
	fee, err := ethutil.ParseBig(relayerFee)
	if err != nil {
		return nil, fmt.Errorf("invalid relayer fee: %w", err)
	}
	gasPrice, err := ethutil.ParseBig(args.GasPrice)
	if err != nil {
		return nil, fmt.Errorf("invalid gas price: %w", err)
	}
	gas, err := ethutil.ParseBig(gasLimit)
	if err != nil {
		return nil, fmt.Errorf("invalid gas limit: %w", err)
	}

	var msg []byte
	msg = append(msg, []byte("rlx:")...)
	msg = append(msg, common.HexToAddress(args.From).Bytes()...)
	msg = append(msg, common.HexToAddress(to).Bytes()...)
	msg = append(msg, data...)
	msg = append(msg, ethutil.PadLeft32(fee.Bytes())...)
	msg = append(msg, ethutil.PadLeft32(gasPrice.Bytes())...)
	msg = append(msg, ethutil.PadLeft32(gas.Bytes())...)
	msg = append(msg, ethutil.PadLeft32(big.NewInt(args.Nonce).Bytes())...)
	msg = append(msg, common.HexToAddress(relayHub).Bytes()...)
	msg = append(msg, common.HexToAddress(args.Relay).Bytes()...)

	return crypto.Keccak256(msg), nil
}

// BuildProxySubmission signs a pre-encoded batch payload for execution
// through the proxy factory. The gas limit comes from the caller, then the
// estimator, then the default.
func BuildProxySubmission(ctx context.Context, s signer.Signer, estimator signer.GasEstimator, args types.ProxySubmissionArgs, cfg types.ProxyContracts, metadata string) (*types.SubmitRequest, error) {
	proxyWallet, err := DeriveProxyAddress(args.From, cfg)
	if err != nil {
		return nil, err
	}

	gasLimit := args.GasLimit
	if gasLimit == "" || gasLimit == "0" {
		gasLimit = strconv.Itoa(defaultProxyGasLimit)
		if estimator != nil {
			if estimated, err := estimateGas(ctx, estimator, args, cfg.Factory); err == nil {
				gasLimit = estimated
			}
		}
	}

	const relayerFee = "0"
	hash, err := proxyTxHash(args, cfg.Factory, relayerFee, gasLimit, cfg.RelayHub)
	if err != nil {
		return nil, err
	}
	sig, err := s.SignMessage(hash)
	if err != nil {
		return nil, fmt.Errorf("sign proxy tx: %w", err)
	}

	return &types.SubmitRequest{
		Type:        string(types.SubmissionProxy),
		From:        args.From,
		To:          cfg.Factory,
		ProxyWallet: proxyWallet,
		Data:        args.Data,
		Nonce:       strconv.FormatInt(args.Nonce, 10),
		Signature:   hexutil.Encode(sig),
		SignatureParams: types.SignatureParams{
			GasPrice:   args.GasPrice,
			GasLimit:   gasLimit,
			RelayerFee: relayerFee,
			RelayHub:   cfg.RelayHub,
			Relay:      args.Relay,
		},
		Metadata: metadata,
	}, nil
}

func estimateGas(ctx context.Context, estimator signer.GasEstimator, args types.ProxySubmissionArgs, to string) (string, error) {
	data, err := ethutil.HexBytes(args.Data)
	if err != nil {
		return "", err
	}
	toAddr := common.HexToAddress(to)
	gas, err := estimator.EstimateGas(ctx, ethereum.CallMsg{
		From: common.HexToAddress(args.From),
		To:   &toAddr,
		Data: data,
	})
	if err != nil {
		return "", err
	}
	return strconv.FormatUint(gas, 10), nil
}
