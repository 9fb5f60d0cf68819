package keylet

import (
	"encoding/binary"

	"github.com/LeJamon/tokendex/internal/core/ledger/entry"
	crypto "github.com/LeJamon/tokendex/internal/crypto/common"
)

// Space identifiers for keylet generation
const (
	spaceApproval uint16 = 'a' // Operator approval
	spaceBalance  uint16 = 'b' // Asset balance
	spaceLPToken  uint16 = 'l' // Liquidity provider share balance
	spacePool     uint16 = 'P' // AMM pool (singleton)
	spaceSequence uint16 = 's' // Account transaction sequence
)

// Keylet represents an addressable location in the ledger state.
// It combines a type identifier with a 256-bit key.
type Keylet struct {
	Type entry.Type
	Key  [32]byte
}

// indexHash computes a keylet key by hashing the space and provided data.
func indexHash(space uint16, data ...[]byte) [32]byte {
	spaceBytes := make([]byte, 2)
	binary.BigEndian.PutUint16(spaceBytes, space)

	inputs := make([][]byte, 0, len(data)+1)
	inputs = append(inputs, spaceBytes)
	inputs = append(inputs, data...)

	return crypto.Sha512Half(inputs...)
}

// Balance returns the keylet for an account's balance of one asset.
func Balance(assetID uint64, account [20]byte) Keylet {
	idBytes := make([]byte, 8)
	binary.BigEndian.PutUint64(idBytes, assetID)
	return Keylet{
		Type: entry.TypeBalance,
		Key:  indexHash(spaceBalance, idBytes, account[:]),
	}
}

// Approval returns the keylet for the approval an owner granted to an operator.
func Approval(owner, operator [20]byte) Keylet {
	return Keylet{
		Type: entry.TypeApproval,
		Key:  indexHash(spaceApproval, owner[:], operator[:]),
	}
}

// LPBalance returns the keylet for an account's liquidity provider shares.
func LPBalance(account [20]byte) Keylet {
	return Keylet{
		Type: entry.TypeLPBalance,
		Key:  indexHash(spaceLPToken, account[:]),
	}
}

// Pool returns the keylet for the singleton pool record.
func Pool() Keylet {
	// Singleton - no additional data needed
	return Keylet{
		Type: entry.TypePool,
		Key:  indexHash(spacePool),
	}
}

// AccountSequence returns the keylet for the next sequence an account's
// transaction must carry.
func AccountSequence(account [20]byte) Keylet {
	return Keylet{
		Type: entry.TypeSequence,
		Key:  indexHash(spaceSequence, account[:]),
	}
}
