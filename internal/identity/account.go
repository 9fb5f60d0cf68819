// Package identity defines the caller identities the ledger keys its state by,
// and the secp256k1 key handling a host uses to authenticate them.
package identity

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/decred/dcrd/crypto/ripemd160"
)

// AccountIDSize is the size of an account ID in bytes.
const AccountIDSize = 20

// ErrMalformedAccountID is returned when an account ID string does not decode
// to exactly AccountIDSize bytes.
var ErrMalformedAccountID = errors.New("malformed account id")

// AccountID is an opaque, already-authenticated caller identity.
type AccountID [AccountIDSize]byte

// CalcAccountID computes the account ID from a public key as
// RIPEMD160(SHA256(publicKey)).
func CalcAccountID(publicKey []byte) AccountID {
	sha256Hash := sha256.Sum256(publicKey)

	ripemd160Hasher := ripemd160.New()
	ripemd160Hasher.Write(sha256Hash[:])
	ripemd160Hash := ripemd160Hasher.Sum(nil)

	var result AccountID
	copy(result[:], ripemd160Hash)
	return result
}

// ParseAccountID decodes a 40 character hex string, with or without a 0x prefix.
func ParseAccountID(s string) (AccountID, error) {
	var id AccountID
	raw, err := hex.DecodeString(strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X"))
	if err != nil {
		return id, fmt.Errorf("%w: %v", ErrMalformedAccountID, err)
	}
	if len(raw) != AccountIDSize {
		return id, fmt.Errorf("%w: got %d bytes", ErrMalformedAccountID, len(raw))
	}
	copy(id[:], raw)
	return id, nil
}

// MustParseAccountID is like ParseAccountID but panics on error.
func MustParseAccountID(s string) AccountID {
	id, err := ParseAccountID(s)
	if err != nil {
		panic(err)
	}
	return id
}

// String returns the lowercase hex form of the account ID.
func (id AccountID) String() string {
	return hex.EncodeToString(id[:])
}

// IsZero reports whether the account ID is all zeroes.
func (id AccountID) IsZero() bool {
	return id == AccountID{}
}

// MarshalText implements encoding.TextMarshaler.
func (id AccountID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *AccountID) UnmarshalText(text []byte) error {
	parsed, err := ParseAccountID(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
