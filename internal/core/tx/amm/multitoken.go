package amm

//go:generate mockgen -source=multitoken.go -destination=mock_multitoken_test.go -package=amm

import "github.com/LeJamon/tokendex/internal/identity"

// MultiToken is the asset ledger capability the pool is built on.
// token.Ledger satisfies it.
type MultiToken interface {
	// Balance returns the amount of assetID held by account
	Balance(assetID uint64, account identity.AccountID) (uint64, error)

	// TransferTo moves amount of assetID between two accounts
	TransferTo(from, to identity.AccountID, assetID, amount uint64) error
}
