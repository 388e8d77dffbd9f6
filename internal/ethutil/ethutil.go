// Package ethutil has small helpers for the hex strings and 256-bit
// quantities that flow through signed relayer requests.
package ethutil

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// ParseBig parses a decimal or 0x-prefixed quantity. Empty input parses as
// zero, matching the "unset means 0" convention of the wire format.
func ParseBig(value string) (*big.Int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return new(big.Int), nil
	}
	base := 10
	if strings.HasPrefix(value, "0x") || strings.HasPrefix(value, "0X") {
		base = 0
	}
	v, ok := new(big.Int).SetString(value, base)
	if !ok {
		return nil, fmt.Errorf("invalid integer: %q", value)
	}
	return v, nil
}

// PadLeft32 left-pads b to 32 bytes, truncating from the left if longer.
func PadLeft32(b []byte) []byte {
	if len(b) >= 32 {
		return b[len(b)-32:]
	}
	out := make([]byte, 32)
	copy(out[32-len(b):], b)
	return out
}

// HexBytes decodes a hex string with or without a 0x prefix. Empty input
// decodes to an empty slice.
func HexBytes(s string) ([]byte, error) {
	if s == "" {
		return []byte{}, nil
	}
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		return hexutil.Decode(s)
	}
	return hex.DecodeString(s)
}

// PackSafeSignature re-encodes a 65-byte ECDSA signature into the Safe
// contract's expected layout: r || s || v, with v shifted by 4 to mark an
// eth_sign style signature.
func PackSafeSignature(sig []byte) (string, error) {
	if len(sig) != 65 {
		return "", fmt.Errorf("invalid signature length: expected 65 bytes, got %d", len(sig))
	}
	v := sig[64]
	switch v {
	case 0, 1:
		v += 31
	case 27, 28:
		v += 4
	default:
		return "", fmt.Errorf("invalid signature recovery byte: %d", v)
	}

	packed := make([]byte, 65)
	copy(packed[0:32], PadLeft32(sig[0:32]))
	copy(packed[32:64], PadLeft32(sig[32:64]))
	packed[64] = v
	return hexutil.Encode(packed), nil
}
