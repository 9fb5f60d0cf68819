package amm

import "github.com/LeJamon/tokendex/internal/core/tx"

// Swap sells an amount of one pool asset for the other
type Swap struct {
	tx.BaseTx

	AssetID uint64 `json:"AssetID"`
	Amount  uint64 `json:"Amount"`
}

// NewSwap creates a Swap transaction
func NewSwap(assetID, amount uint64) *Swap {
	return &Swap{
		BaseTx:  *tx.NewBaseTx(tx.TypeSwap),
		AssetID: assetID,
		Amount:  amount,
	}
}

func (s *Swap) Validate() error { return nil }

func (s *Swap) Apply(ctx *tx.ApplyContext) tx.Result {
	ev, err := engineFor(ctx).Swap(ctx.AccountID, s.AssetID, s.Amount)
	if err != nil {
		return tx.ResultFromError(err)
	}
	ctx.Emit(*ev)
	return tx.TesSUCCESS
}
