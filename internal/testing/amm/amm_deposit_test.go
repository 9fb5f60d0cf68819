package amm_test

import (
	"testing"

	"github.com/LeJamon/tokendex/internal/core/tx"
	coreAmm "github.com/LeJamon/tokendex/internal/core/tx/amm"
	jtx "github.com/LeJamon/tokendex/internal/testing"
	"github.com/LeJamon/tokendex/internal/testing/amm"
	"github.com/stretchr/testify/assert"
)

// TestDeposit adds liquidity at exactly the pool ratio.
func TestDeposit(t *testing.T) {
	env := amm.NewAMMTestEnv(t)
	env.Fund(10_000_000)
	env.CreatePool(9_000_000, 9_000_000)

	jtx.AssertBalanceChange(t, env.TestEnv, env.PoolAccount, amm.AssetA, 100_000, func() {
		jtx.AssertBalanceChange(t, env.TestEnv, env.PoolAccount, amm.AssetB, 100_000, func() {
			result := env.Submit(env.Bob, coreAmm.NewDeposit(100_000, 100_000))
			jtx.RequireTxSuccess(t, result)
			assert.Equal(t, coreAmm.Deposited{Caller: env.Bob.ID, AmountA: 100_000, AmountB: 100_000, LPMinted: 100_000}, result.Event)
		})
	})

	jtx.RequireBalance(t, env.TestEnv, env.Bob, amm.AssetA, 9_900_000)
	jtx.RequireBalance(t, env.TestEnv, env.Bob, amm.AssetB, 9_900_000)
	jtx.RequireLPBalance(t, env.TestEnv, env.Bob, 100_000)
	assert.Equal(t, uint64(9_100_000), env.Pool().LPTotalSupply)
	env.RequireLPSupplyConsistent(env.Alice, env.Bob, env.Carol)
}

func TestDepositTakesOnlyRequiredB(t *testing.T) {
	env := amm.NewAMMTestEnv(t)
	env.Fund(10_000_000)
	env.CreatePool(1_000_000, 2_000_000)

	// required_b = 2,000,000 * 1,000 / 1,000,000 = 2,000
	jtx.AssertBalanceChange(t, env.TestEnv, env.Bob, amm.AssetB, -2_000, func() {
		result := env.Submit(env.Bob, coreAmm.NewDeposit(1_000, 5_000))
		jtx.RequireTxSuccess(t, result)
		assert.Equal(t, uint64(2_000), result.Event.(coreAmm.Deposited).AmountB)
	})
	jtx.RequireLPBalance(t, env.TestEnv, env.Bob, 1_000)
}

func TestDepositRatioMismatch(t *testing.T) {
	env := amm.NewAMMTestEnv(t)
	env.Fund(10_000_000)
	env.CreatePool(1_000_000, 2_000_000)

	jtx.AssertNoBalanceChange(t, env.TestEnv, env.Bob, amm.AssetA, func() {
		jtx.RequireTxFail(t, env.Submit(env.Bob, coreAmm.NewDeposit(1_000, 1_999)), tx.TecRATIO_MISMATCH)
	})
	jtx.RequireLPBalance(t, env.TestEnv, env.Bob, 0)
}

func TestDepositUnfunded(t *testing.T) {
	env := amm.NewAMMTestEnv(t)
	env.Fund(1_000)
	env.CreatePool(500, 500)

	jtx.RequireTxFail(t, env.Submit(env.Bob, coreAmm.NewDeposit(1_001, 1_001)), tx.TecINSUFFICIENT_BALANCE)
	assert.Equal(t, uint64(500), env.Pool().LPTotalSupply)
}
