package tx

import (
	"github.com/LeJamon/tokendex/internal/core/ledger/keylet"
)

// ReadView provides read-only access to ledger state
type ReadView interface {
	// Read returns the entry data, or nil with no error if the entry is absent
	Read(k keylet.Keylet) ([]byte, error)

	// Exists reports whether an entry is present
	Exists(k keylet.Keylet) (bool, error)
}

// LedgerView provides read and write access to ledger state
type LedgerView interface {
	ReadView

	// Insert adds a new entry; it fails if the entry already exists
	Insert(k keylet.Keylet, data []byte) error

	// Update replaces an existing entry
	Update(k keylet.Keylet, data []byte) error

	// Erase removes an entry
	Erase(k keylet.Keylet) error
}

// Change is one committed modification of ledger state.
// Data is nil when the entry is erased.
type Change struct {
	Keylet keylet.Keylet
	Data   []byte
}

// IsErase reports whether the change removes the entry
func (c Change) IsErase() bool {
	return c.Data == nil
}

// BaseView is the durable state the engine commits to. Commit must apply
// every change or none of them.
type BaseView interface {
	ReadView
	Commit(changes []Change) error
}
