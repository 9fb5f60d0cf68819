package amm

import "github.com/LeJamon/tokendex/internal/core/tx"

// Deposit adds liquidity to the pool. AmountB is the most of asset B the
// submitter is willing to add.
type Deposit struct {
	tx.BaseTx

	AmountA uint64 `json:"AmountA"`
	AmountB uint64 `json:"AmountB"`
}

// NewDeposit creates a Deposit transaction
func NewDeposit(amountA, amountB uint64) *Deposit {
	return &Deposit{
		BaseTx:  *tx.NewBaseTx(tx.TypeDeposit),
		AmountA: amountA,
		AmountB: amountB,
	}
}

func (d *Deposit) Validate() error { return nil }

func (d *Deposit) Apply(ctx *tx.ApplyContext) tx.Result {
	ev, err := engineFor(ctx).Deposit(ctx.AccountID, d.AmountA, d.AmountB)
	if err != nil {
		return tx.ResultFromError(err)
	}
	ctx.Emit(*ev)
	return tx.TesSUCCESS
}
