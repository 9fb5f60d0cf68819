// Package amm implements a single two-asset constant-product pool on top of
// the asset ledger.
//
// The pool owns no balances itself: reserves are the pool account's ledger
// balances of the two pool assets, moved only through MultiToken.
package amm

import (
	"github.com/LeJamon/tokendex/internal/core/safemath"
	"github.com/LeJamon/tokendex/internal/core/tx"
	"github.com/LeJamon/tokendex/internal/identity"
)

// Engine applies pool operations
type Engine struct {
	tokens     MultiToken
	registry   *Registry
	feePercent uint64
}

// NewEngine creates a pool engine. feePercent must not exceed 100.
func NewEngine(tokens MultiToken, registry *Registry, feePercent uint64) *Engine {
	return &Engine{
		tokens:     tokens,
		registry:   registry,
		feePercent: feePercent,
	}
}

// Init creates the pool, seeding it with amountA and amountB from caller.
// The caller receives amountA LP shares.
func (e *Engine) Init(caller, poolAccount identity.AccountID, assetA, amountA, assetB, amountB uint64) (*PoolInitialized, error) {
	if assetA == assetB {
		return nil, tx.TemBAD_POOL_ASSETS
	}

	existing, err := e.registry.Pool()
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, tx.TecPOOL_EXISTS
	}

	if err := e.tokens.TransferTo(caller, poolAccount, assetA, amountA); err != nil {
		return nil, err
	}
	if err := e.tokens.TransferTo(caller, poolAccount, assetB, amountB); err != nil {
		return nil, err
	}

	pool := &Pool{
		Account:       poolAccount,
		AssetA:        assetA,
		AssetB:        assetB,
		LPTotalSupply: amountA,
	}
	if err := e.registry.SetPool(pool); err != nil {
		return nil, err
	}
	if err := e.registry.SetLPBalance(caller, amountA); err != nil {
		return nil, err
	}

	return &PoolInitialized{
		Caller:      caller,
		PoolAccount: poolAccount,
		AssetA:      assetA,
		AmountA:     amountA,
		AssetB:      assetB,
		AmountB:     amountB,
		LPMinted:    amountA,
	}, nil
}

// Swap sells inputAmount of inputAsset to the pool for the other pool asset.
// The price comes from the reserves before the trade.
func (e *Engine) Swap(caller identity.AccountID, inputAsset, inputAmount uint64) (*Swapped, error) {
	pool, err := e.pool()
	if err != nil {
		return nil, err
	}

	outputAsset, ok := pool.Other(inputAsset)
	if !ok {
		return nil, tx.TecUNKNOWN_ASSET
	}

	inReserve, err := e.tokens.Balance(inputAsset, pool.Account)
	if err != nil {
		return nil, err
	}
	outReserve, err := e.tokens.Balance(outputAsset, pool.Account)
	if err != nil {
		return nil, err
	}

	output, err := SwapOutput(inReserve, outReserve, inputAmount, e.feePercent)
	if err != nil {
		return nil, err
	}

	if err := e.tokens.TransferTo(caller, pool.Account, inputAsset, inputAmount); err != nil {
		return nil, err
	}
	if err := e.tokens.TransferTo(pool.Account, caller, outputAsset, output); err != nil {
		return nil, err
	}

	return &Swapped{
		Caller:       caller,
		InputAsset:   inputAsset,
		InputAmount:  inputAmount,
		OutputAsset:  outputAsset,
		OutputAmount: output,
	}, nil
}

// Deposit adds liquidity at the current reserve ratio. amountB is an upper
// bound: only the matching amount of asset B is taken.
func (e *Engine) Deposit(caller identity.AccountID, amountA, amountB uint64) (*Deposited, error) {
	pool, err := e.pool()
	if err != nil {
		return nil, err
	}

	reserveA, reserveB, err := e.reserves(pool)
	if err != nil {
		return nil, err
	}

	requiredB, err := RequiredB(reserveA, reserveB, amountA)
	if err != nil {
		return nil, err
	}
	if amountB < requiredB {
		return nil, tx.TecRATIO_MISMATCH
	}

	minted, err := LPMinted(amountA, pool.LPTotalSupply, reserveA)
	if err != nil {
		return nil, err
	}
	supply, err := safemath.Add(pool.LPTotalSupply, minted)
	if err != nil {
		return nil, err
	}
	held, err := e.registry.LPBalance(caller)
	if err != nil {
		return nil, err
	}
	// held <= supply, so this cannot overflow once supply fits
	held += minted

	if err := e.tokens.TransferTo(caller, pool.Account, pool.AssetA, amountA); err != nil {
		return nil, err
	}
	if err := e.tokens.TransferTo(caller, pool.Account, pool.AssetB, requiredB); err != nil {
		return nil, err
	}

	if err := e.registry.SetLPBalance(caller, held); err != nil {
		return nil, err
	}
	pool.LPTotalSupply = supply
	if err := e.registry.SetPool(pool); err != nil {
		return nil, err
	}

	return &Deposited{
		Caller:   caller,
		AmountA:  amountA,
		AmountB:  requiredB,
		LPMinted: minted,
	}, nil
}

// Withdraw redeems all of caller's LP shares for their part of both reserves
func (e *Engine) Withdraw(caller identity.AccountID) (*Withdrawn, error) {
	pool, err := e.pool()
	if err != nil {
		return nil, err
	}

	lp, err := e.registry.LPBalance(caller)
	if err != nil {
		return nil, err
	}
	if lp == 0 {
		return nil, tx.TecNO_LIQUIDITY
	}

	reserveA, reserveB, err := e.reserves(pool)
	if err != nil {
		return nil, err
	}

	amountA, err := Share(reserveA, lp, pool.LPTotalSupply)
	if err != nil {
		return nil, err
	}
	amountB, err := Share(reserveB, lp, pool.LPTotalSupply)
	if err != nil {
		return nil, err
	}
	supply, err := safemath.Sub(pool.LPTotalSupply, lp)
	if err != nil {
		return nil, err
	}

	if err := e.tokens.TransferTo(pool.Account, caller, pool.AssetA, amountA); err != nil {
		return nil, err
	}
	if err := e.tokens.TransferTo(pool.Account, caller, pool.AssetB, amountB); err != nil {
		return nil, err
	}

	if err := e.registry.SetLPBalance(caller, 0); err != nil {
		return nil, err
	}
	pool.LPTotalSupply = supply
	if err := e.registry.SetPool(pool); err != nil {
		return nil, err
	}

	return &Withdrawn{
		Caller:   caller,
		AmountA:  amountA,
		AmountB:  amountB,
		LPBurned: lp,
	}, nil
}

func (e *Engine) pool() (*Pool, error) {
	pool, err := e.registry.Pool()
	if err != nil {
		return nil, err
	}
	if pool == nil {
		return nil, tx.TecPOOL_UNINITIALIZED
	}
	return pool, nil
}

func (e *Engine) reserves(pool *Pool) (uint64, uint64, error) {
	reserveA, err := e.tokens.Balance(pool.AssetA, pool.Account)
	if err != nil {
		return 0, 0, err
	}
	reserveB, err := e.tokens.Balance(pool.AssetB, pool.Account)
	if err != nil {
		return 0, 0, err
	}
	return reserveA, reserveB, nil
}
