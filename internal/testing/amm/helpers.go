// Package amm provides test helpers for pool transaction testing.
package amm

import (
	"testing"

	coreAmm "github.com/LeJamon/tokendex/internal/core/tx/amm"
	jtx "github.com/LeJamon/tokendex/internal/testing"
)

// Standard pool assets
const (
	AssetA uint64 = 0
	AssetB uint64 = 1
)

// AMMTestEnv wraps TestEnv with pool-specific helpers.
type AMMTestEnv struct {
	*jtx.TestEnv
	T *testing.T

	// Standard test accounts
	Alice *jtx.Account
	Bob   *jtx.Account
	Carol *jtx.Account

	// PoolAccount holds the reserves
	PoolAccount *jtx.Account
}

// NewAMMTestEnv creates a new pool test environment with standard accounts.
func NewAMMTestEnv(t *testing.T, opts ...jtx.EnvOption) *AMMTestEnv {
	t.Helper()

	return &AMMTestEnv{
		TestEnv:     jtx.NewTestEnv(t, opts...),
		T:           t,
		Alice:       jtx.NewAccount("alice"),
		Bob:         jtx.NewAccount("bob"),
		Carol:       jtx.NewAccount("carol"),
		PoolAccount: jtx.NewAccount("pool"),
	}
}

// Fund mints amount of both pool assets to alice, bob and carol.
func (e *AMMTestEnv) Fund(amount uint64) {
	e.T.Helper()
	for _, acc := range []*jtx.Account{e.Alice, e.Bob, e.Carol} {
		e.Mint(acc, AssetA, amount)
		e.Mint(acc, AssetB, amount)
	}
}

// CreatePool initializes the pool from alice and fails the test on error.
func (e *AMMTestEnv) CreatePool(amountA, amountB uint64) {
	e.T.Helper()
	jtx.RequireTxSuccess(e.T, e.Submit(e.Alice, PoolInit(e.PoolAccount, amountA, amountB)))
}

// PoolInit builds a PoolInit over the standard assets.
func PoolInit(pool *jtx.Account, amountA, amountB uint64) *coreAmm.PoolInit {
	return coreAmm.NewPoolInit(pool.ID, AssetA, amountA, AssetB, amountB)
}

// Reserves returns the pool account's balances of both assets.
func (e *AMMTestEnv) Reserves() (uint64, uint64) {
	e.T.Helper()
	return e.Balance(e.PoolAccount, AssetA), e.Balance(e.PoolAccount, AssetB)
}

// RequireLPSupplyConsistent checks that the pool supply equals the sum of
// the LP balances of the given holders.
func (e *AMMTestEnv) RequireLPSupplyConsistent(holders ...*jtx.Account) {
	e.T.Helper()

	pool := e.Pool()
	if pool == nil {
		e.T.Fatalf("pool is not initialized")
	}

	var sum uint64
	for _, h := range holders {
		sum += e.LPBalance(h)
	}
	if sum != pool.LPTotalSupply {
		e.T.Fatalf("LP supply %d does not match holder total %d", pool.LPTotalSupply, sum)
	}
}
