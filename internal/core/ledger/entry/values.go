package entry

import (
	"encoding/binary"
	"fmt"
)

// AmountSize is the serialized size of an amount entry.
const AmountSize = 8

// EncodeAmount serializes an amount as 8 big-endian bytes.
func EncodeAmount(amount uint64) []byte {
	buf := make([]byte, AmountSize)
	binary.BigEndian.PutUint64(buf, amount)
	return buf
}

// DecodeAmount parses an amount entry. A nil slice is the absent entry and
// decodes to zero.
func DecodeAmount(data []byte) (uint64, error) {
	if data == nil {
		return 0, nil
	}
	if len(data) != AmountSize {
		return 0, fmt.Errorf("corrupted amount entry: %d bytes", len(data))
	}
	return binary.BigEndian.Uint64(data), nil
}

// EncodeFlag serializes a boolean entry.
func EncodeFlag(flag bool) []byte {
	if flag {
		return []byte{1}
	}
	return []byte{0}
}

// DecodeFlag parses a boolean entry. Absent means false.
func DecodeFlag(data []byte) (bool, error) {
	switch {
	case data == nil:
		return false, nil
	case len(data) != 1:
		return false, fmt.Errorf("corrupted flag entry: %d bytes", len(data))
	default:
		return data[0] == 1, nil
	}
}
