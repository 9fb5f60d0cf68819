package amm

import (
	"github.com/LeJamon/tokendex/internal/core/tx"
	"github.com/LeJamon/tokendex/internal/identity"
)

// PoolInit creates the pool and seeds it from the submitting account
type PoolInit struct {
	tx.BaseTx

	PoolAccount identity.AccountID `json:"PoolAccount"`
	AssetA      uint64             `json:"AssetA"`
	AmountA     uint64             `json:"AmountA"`
	AssetB      uint64             `json:"AssetB"`
	AmountB     uint64             `json:"AmountB"`
}

// NewPoolInit creates a PoolInit transaction
func NewPoolInit(poolAccount identity.AccountID, assetA, amountA, assetB, amountB uint64) *PoolInit {
	return &PoolInit{
		BaseTx:      *tx.NewBaseTx(tx.TypePoolInit),
		PoolAccount: poolAccount,
		AssetA:      assetA,
		AmountA:     amountA,
		AssetB:      assetB,
		AmountB:     amountB,
	}
}

// Validate rejects a pool pairing an asset with itself
func (p *PoolInit) Validate() error {
	if p.AssetA == p.AssetB {
		return tx.TemBAD_POOL_ASSETS
	}
	return nil
}

func (p *PoolInit) Apply(ctx *tx.ApplyContext) tx.Result {
	ev, err := engineFor(ctx).Init(ctx.AccountID, p.PoolAccount, p.AssetA, p.AmountA, p.AssetB, p.AmountB)
	if err != nil {
		return tx.ResultFromError(err)
	}
	ctx.Emit(*ev)
	return tx.TesSUCCESS
}
