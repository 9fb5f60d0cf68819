package identity

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	crypto "github.com/LeJamon/tokendex/internal/crypto/common"
)

var (
	ErrInvalidPublicKey = errors.New("invalid public key")
	ErrInvalidSignature = errors.New("invalid signature")
)

// KeyPair is a secp256k1 signing key and the account it controls.
type KeyPair struct {
	private *btcec.PrivateKey
}

// DeriveKeyPair deterministically derives a key pair from a seed. The same seed
// always yields the same account.
func DeriveKeyPair(seed []byte) *KeyPair {
	scalar := crypto.Sha512Half(seed)
	private, _ := btcec.PrivKeyFromBytes(scalar[:])
	return &KeyPair{private: private}
}

// KeyPairFromHex loads a key pair from a hex encoded 32 byte private key.
func KeyPairFromHex(privateKeyHex string) (*KeyPair, error) {
	raw, err := hex.DecodeString(privateKeyHex)
	if err != nil {
		return nil, fmt.Errorf("failed to decode private key: %w", err)
	}
	if len(raw) != 32 {
		return nil, fmt.Errorf("private key must be 32 bytes, got %d", len(raw))
	}
	private, _ := btcec.PrivKeyFromBytes(raw)
	return &KeyPair{private: private}, nil
}

// PublicKey returns the 33 byte compressed public key.
func (k *KeyPair) PublicKey() []byte {
	return k.private.PubKey().SerializeCompressed()
}

// PrivateKeyHex returns the hex encoded private key scalar.
func (k *KeyPair) PrivateKeyHex() string {
	return hex.EncodeToString(k.private.Serialize())
}

// AccountID returns the account controlled by this key pair.
func (k *KeyPair) AccountID() AccountID {
	return CalcAccountID(k.PublicKey())
}

// Sign returns a DER encoded ECDSA signature over sha256(message).
func (k *KeyPair) Sign(message []byte) []byte {
	digest := sha256.Sum256(message)
	return ecdsa.Sign(k.private, digest[:]).Serialize()
}

// Verify checks a DER signature over sha256(message) and returns the account
// that produced it.
func Verify(publicKey, message, signature []byte) (AccountID, error) {
	pub, err := secp256k1.ParsePubKey(publicKey)
	if err != nil {
		return AccountID{}, fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
	}
	sig, err := ecdsa.ParseDERSignature(signature)
	if err != nil {
		return AccountID{}, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	digest := sha256.Sum256(message)
	if !sig.Verify(digest[:], pub) {
		return AccountID{}, ErrInvalidSignature
	}
	return CalcAccountID(pub.SerializeCompressed()), nil
}
