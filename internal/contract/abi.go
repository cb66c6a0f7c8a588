package contract

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
)

// Selector computes the 4-byte method selector for a canonical
// signature like "mint(uint256)".
func Selector(sig string) [4]byte {
	var sel [4]byte
	copy(sel[:], crypto.Keccak256([]byte(sig))[:4])
	return sel
}

// EncodeCall builds 0x-prefixed calldata for a signature with either no
// arguments or a single uint256 argument.
func EncodeCall(sig string, arg *uint256.Int) (string, error) {
	sel := Selector(sig)
	data := append([]byte{}, sel[:]...)

	switch {
	case strings.HasSuffix(sig, "()"):
		if arg != nil {
			return "", fmt.Errorf("%s takes no arguments", sig)
		}
	case strings.HasSuffix(sig, "(uint256)"):
		if arg == nil {
			return "", fmt.Errorf("%s requires a uint256 argument", sig)
		}
		word := arg.Bytes32()
		data = append(data, word[:]...)
	default:
		return "", fmt.Errorf("unsupported signature %q", sig)
	}

	return hexutil.Encode(data), nil
}

// DecodeString decodes a solidity `string` return value
// (offset word, length word, then the bytes).
func DecodeString(ret []byte) (string, error) {
	if len(ret) < 64 {
		return "", fmt.Errorf("string return too short (%d bytes)", len(ret))
	}

	offset, err := wordToUint64(ret[:32])
	if err != nil {
		return "", fmt.Errorf("string offset: %w", err)
	}
	if offset+32 > uint64(len(ret)) {
		return "", fmt.Errorf("string offset %d out of range", offset)
	}

	length, err := wordToUint64(ret[offset : offset+32])
	if err != nil {
		return "", fmt.Errorf("string length: %w", err)
	}
	start := offset + 32
	if start+length > uint64(len(ret)) {
		return "", fmt.Errorf("string length %d out of range", length)
	}

	return string(ret[start : start+length]), nil
}

// DecodeUint256 decodes a single uint256 return word.
func DecodeUint256(ret []byte) (*uint256.Int, error) {
	if len(ret) < 32 {
		return nil, fmt.Errorf("uint256 return too short (%d bytes)", len(ret))
	}
	v := new(uint256.Int)
	v.SetBytes(ret[:32])
	return v, nil
}

// wordToUint64 reads a 32-byte ABI word that must fit in uint64.
func wordToUint64(word []byte) (uint64, error) {
	for _, b := range word[:24] {
		if b != 0 {
			return 0, fmt.Errorf("word exceeds uint64")
		}
	}
	var v uint64
	for _, b := range word[24:32] {
		v = v<<8 | uint64(b)
	}
	return v, nil
}
