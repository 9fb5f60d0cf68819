package testing

import (
	"github.com/LeJamon/tokendex/internal/identity"
)

// Account represents a test account with keypair and identity information.
type Account struct {
	// Name is a human-readable identifier for the account (used for debugging).
	Name string

	// PublicKey is the compressed secp256k1 public key (33 bytes).
	PublicKey []byte

	// ID is the 20-byte account ID derived from the public key.
	ID identity.AccountID

	keys *identity.KeyPair
}

// NewAccount creates a new test account with a deterministic keypair derived from the name.
// Using the same name will always produce the same account, making tests reproducible.
func NewAccount(name string) *Account {
	keys := identity.DeriveKeyPair([]byte(name))
	return &Account{
		Name:      name,
		PublicKey: keys.PublicKey(),
		ID:        keys.AccountID(),
		keys:      keys,
	}
}

// Sign signs message with the account key.
func (a *Account) Sign(message []byte) []byte {
	return a.keys.Sign(message)
}

// KeyPair returns the account key pair.
func (a *Account) KeyPair() *identity.KeyPair {
	return a.keys
}

// String returns the account name and ID.
func (a *Account) String() string {
	return a.Name + "(" + a.ID.String() + ")"
}
