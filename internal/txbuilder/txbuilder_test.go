package txbuilder

import (
	"context"
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zekikos/builder-relayer-client/pkg/signer"
	"github.com/zekikos/builder-relayer-client/pkg/types"
)

var (
	testSafeContracts = types.SafeContracts{
		Factory:      "0x3333333333333333333333333333333333333333",
		Multisend:    "0x4444444444444444444444444444444444444444",
		InitCodeHash: "0x1111111111111111111111111111111111111111111111111111111111111111",
	}
	testProxyContracts = types.ProxyContracts{
		RelayHub:     "0x5555555555555555555555555555555555555555",
		Factory:      "0x6666666666666666666666666666666666666666",
		InitCodeHash: "0x2222222222222222222222222222222222222222222222222222222222222222",
	}
)

func newTestSigner(t *testing.T) signer.Signer {
	t.Helper()
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	s, err := signer.NewPrivateKeySigner(common.Bytes2Hex(crypto.FromECDSA(key)))
	require.NoError(t, err)
	return s
}

// failingSigner errors on every signing call.
type failingSigner struct{}

func (failingSigner) Address() common.Address {
	return common.HexToAddress("0x1234567890123456789012345678901234567890")
}

func (failingSigner) SignMessage([]byte) ([]byte, error) {
	return nil, errors.New("hsm offline")
}

func (failingSigner) SignTypedData(*apitypes.TypedDataDomain, apitypes.Types, apitypes.TypedDataMessage, string) ([]byte, error) {
	return nil, errors.New("hsm offline")
}

func TestDeriveSafeAddress_PureAndConfigGated(t *testing.T) {
	t.Parallel()

	owner := "0x1234567890123456789012345678901234567890"

	_, err := DeriveSafeAddress(owner, types.SafeContracts{})
	require.ErrorIs(t, err, types.ErrSchemeNotConfigured)

	first, err := DeriveSafeAddress(owner, testSafeContracts)
	require.NoError(t, err)
	second, err := DeriveSafeAddress(owner, testSafeContracts)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.True(t, common.IsHexAddress(first))

	other, err := DeriveSafeAddress("0x0000000000000000000000000000000000000001", testSafeContracts)
	require.NoError(t, err)
	assert.NotEqual(t, first, other)
}

func TestDeriveProxyAddress_PureAndConfigGated(t *testing.T) {
	t.Parallel()

	owner := "0x1234567890123456789012345678901234567890"

	_, err := DeriveProxyAddress(owner, types.ProxyContracts{})
	require.ErrorIs(t, err, types.ErrSchemeNotConfigured)

	first, err := DeriveProxyAddress(owner, testProxyContracts)
	require.NoError(t, err)
	second, err := DeriveProxyAddress(owner, testProxyContracts)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.True(t, common.IsHexAddress(first))
}

func TestBuildSafeSubmission_SingleTransaction(t *testing.T) {
	t.Parallel()

	s := newTestSigner(t)
	args := types.SafeSubmissionArgs{
		From:    s.Address().Hex(),
		Nonce:   5,
		ChainID: 137,
		Transactions: []types.SafeTransaction{
			{To: "0x2791Bca1f2de4661ED88A30C99A7a9449Aa84174", Operation: types.OperationCall, Data: "0x", Value: "0"},
		},
	}

	req, err := BuildSafeSubmission(s, args, testSafeContracts, "meta")
	require.NoError(t, err)

	assert.Equal(t, string(types.SubmissionSafe), req.Type)
	assert.Equal(t, args.From, req.From)
	assert.Equal(t, "0x2791Bca1f2de4661ED88A30C99A7a9449Aa84174", req.To, "single tx passes through unaggregated")
	assert.Equal(t, "5", req.Nonce)
	assert.Equal(t, "0", req.SignatureParams.Operation)
	assert.Equal(t, types.ZeroAddress, req.SignatureParams.GasToken)
	assert.Equal(t, "meta", req.Metadata)
	assert.NotEmpty(t, req.Signature)

	expectedSafe, err := DeriveSafeAddress(args.From, testSafeContracts)
	require.NoError(t, err)
	assert.Equal(t, expectedSafe, req.ProxyWallet)
}

func TestBuildSafeSubmission_BatchAggregatesIntoMultisend(t *testing.T) {
	t.Parallel()

	s := newTestSigner(t)
	args := types.SafeSubmissionArgs{
		From:    s.Address().Hex(),
		Nonce:   0,
		ChainID: 137,
		Transactions: []types.SafeTransaction{
			{To: "0x1111111111111111111111111111111111111111", Operation: types.OperationCall, Data: "0x", Value: "0"},
			{To: "0x2222222222222222222222222222222222222222", Operation: types.OperationCall, Data: "0xdead", Value: "0"},
		},
	}

	req, err := BuildSafeSubmission(s, args, testSafeContracts, "")
	require.NoError(t, err)
	assert.Equal(t, testSafeContracts.Multisend, req.To)
	assert.Equal(t, "1", req.SignatureParams.Operation, "multisend executes as a delegatecall")
}

func TestBuildSafeSubmission_SignerFailureLeavesNoRequest(t *testing.T) {
	t.Parallel()

	args := types.SafeSubmissionArgs{
		From:    "0x1234567890123456789012345678901234567890",
		ChainID: 137,
		Transactions: []types.SafeTransaction{
			{To: "0x1111111111111111111111111111111111111111", Data: "0x", Value: "0"},
		},
	}

	req, err := BuildSafeSubmission(failingSigner{}, args, testSafeContracts, "")
	require.Error(t, err)
	assert.Nil(t, req)
}

func TestBuildSafeDeployment(t *testing.T) {
	t.Parallel()

	s := newTestSigner(t)
	args := types.SafeDeploymentArgs{
		From:            s.Address().Hex(),
		ChainID:         137,
		PaymentToken:    types.ZeroAddress,
		Payment:         "0",
		PaymentReceiver: types.ZeroAddress,
	}

	req, err := BuildSafeDeployment(s, testSafeContracts, args)
	require.NoError(t, err)

	assert.Equal(t, string(types.SubmissionSafeCreate), req.Type)
	assert.Equal(t, testSafeContracts.Factory, req.To)
	assert.Equal(t, "0x", req.Data)
	assert.Empty(t, req.Nonce, "deployments carry no relayer nonce")
	assert.Equal(t, "0", req.SignatureParams.Payment)
	assert.Equal(t, types.ZeroAddress, req.SignatureParams.PaymentToken)
	assert.NotEmpty(t, req.Signature)
}

func TestBuildSafeDeployment_InvalidPayment(t *testing.T) {
	t.Parallel()

	s := newTestSigner(t)
	_, err := BuildSafeDeployment(s, testSafeContracts, types.SafeDeploymentArgs{
		From:    s.Address().Hex(),
		ChainID: 137,
		Payment: "not-a-number",
	})
	require.ErrorContains(t, err, "invalid payment")
}

type fixedEstimator uint64

func (e fixedEstimator) EstimateGas(context.Context, ethereum.CallMsg) (uint64, error) {
	return uint64(e), nil
}

type brokenEstimator struct{}

func (brokenEstimator) EstimateGas(context.Context, ethereum.CallMsg) (uint64, error) {
	return 0, errors.New("rpc unavailable")
}

func TestBuildProxySubmission(t *testing.T) {
	t.Parallel()

	s := newTestSigner(t)
	args := types.ProxySubmissionArgs{
		From:     s.Address().Hex(),
		Nonce:    7,
		GasPrice: "0",
		Data:     "0xdeadbeef",
		Relay:    "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
	}

	req, err := BuildProxySubmission(context.Background(), s, fixedEstimator(21000), args, testProxyContracts, "meta")
	require.NoError(t, err)

	assert.Equal(t, string(types.SubmissionProxy), req.Type)
	assert.Equal(t, testProxyContracts.Factory, req.To)
	assert.Equal(t, "7", req.Nonce)
	assert.Equal(t, "21000", req.SignatureParams.GasLimit)
	assert.Equal(t, "0", req.SignatureParams.RelayerFee)
	assert.Equal(t, testProxyContracts.RelayHub, req.SignatureParams.RelayHub)
	assert.Equal(t, args.Relay, req.SignatureParams.Relay)
	assert.NotEmpty(t, req.Signature)
}

func TestBuildProxySubmission_GasLimitFallbacks(t *testing.T) {
	t.Parallel()

	s := newTestSigner(t)
	args := types.ProxySubmissionArgs{
		From:     s.Address().Hex(),
		GasPrice: "0",
		Data:     "0x",
		Relay:    "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
	}

	// No estimator: default limit.
	req, err := BuildProxySubmission(context.Background(), s, nil, args, testProxyContracts, "")
	require.NoError(t, err)
	assert.Equal(t, "10000000", req.SignatureParams.GasLimit)

	// Failing estimator: default limit, not an error.
	req, err = BuildProxySubmission(context.Background(), s, brokenEstimator{}, args, testProxyContracts, "")
	require.NoError(t, err)
	assert.Equal(t, "10000000", req.SignatureParams.GasLimit)

	// Explicit caller limit wins over the estimator.
	args.GasLimit = "123456"
	req, err = BuildProxySubmission(context.Background(), s, fixedEstimator(21000), args, testProxyContracts, "")
	require.NoError(t, err)
	assert.Equal(t, "123456", req.SignatureParams.GasLimit)
}

func TestBuildProxySubmission_UnconfiguredScheme(t *testing.T) {
	t.Parallel()

	s := newTestSigner(t)
	_, err := BuildProxySubmission(context.Background(), s, nil, types.ProxySubmissionArgs{
		From: s.Address().Hex(),
	}, types.ProxyContracts{}, "")
	require.ErrorIs(t, err, types.ErrSchemeNotConfigured)
}
