package txbuilder

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"

	"github.com/zekikos/builder-relayer-client/internal/ethutil"
	"github.com/zekikos/builder-relayer-client/pkg/signer"
	"github.com/zekikos/builder-relayer-client/pkg/types"
)

// safeFactoryDomainName is the EIP-712 domain name the Safe factory
// verifies deployment signatures against.
const safeFactoryDomainName = "Polymarket Contract Proxy Factory"

// BuildSafeDeployment signs a CreateProxy request against the Safe factory.
// It is independent of any transaction batch.
func BuildSafeDeployment(s signer.Signer, cfg types.SafeContracts, args types.SafeDeploymentArgs) (*types.SubmitRequest, error) {
	payment, err := ethutil.ParseBig(args.Payment)
	if err != nil {
		return nil, fmt.Errorf("invalid payment: %w", err)
	}

	domain := apitypes.TypedDataDomain{
		Name:              safeFactoryDomainName,
		ChainId:           (*math.HexOrDecimal256)(big.NewInt(args.ChainID)),
		VerifyingContract: cfg.Factory,
	}
	typesMap := apitypes.Types{
		"EIP712Domain": {
			{Name: "name", Type: "string"},
			{Name: "chainId", Type: "uint256"},
			{Name: "verifyingContract", Type: "address"},
		},
		"CreateProxy": {
			{Name: "paymentToken", Type: "address"},
			{Name: "payment", Type: "uint256"},
			{Name: "paymentReceiver", Type: "address"},
		},
	}
	message := apitypes.TypedDataMessage{
		"paymentToken":    args.PaymentToken,
		"payment":         (*math.HexOrDecimal256)(payment),
		"paymentReceiver": args.PaymentReceiver,
	}

	sig, err := s.SignTypedData(&domain, typesMap, message, "CreateProxy")
	if err != nil {
		return nil, fmt.Errorf("sign safe deployment: %w", err)
	}

	safeAddress, err := DeriveSafeAddress(args.From, cfg)
	if err != nil {
		return nil, err
	}

	return &types.SubmitRequest{
		Type:        string(types.SubmissionSafeCreate),
		From:        args.From,
		To:          cfg.Factory,
		ProxyWallet: safeAddress,
		Data:        "0x",
		Signature:   hexutil.Encode(sig),
		SignatureParams: types.SignatureParams{
			PaymentToken:    args.PaymentToken,
			Payment:         args.Payment,
			PaymentReceiver: args.PaymentReceiver,
		},
	}, nil
}
