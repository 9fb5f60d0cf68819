package amm

import "github.com/LeJamon/tokendex/internal/core/tx"

// Withdraw redeems all of the submitter's LP shares
type Withdraw struct {
	tx.BaseTx
}

// NewWithdraw creates a Withdraw transaction
func NewWithdraw() *Withdraw {
	return &Withdraw{BaseTx: *tx.NewBaseTx(tx.TypeWithdraw)}
}

func (w *Withdraw) Validate() error { return nil }

func (w *Withdraw) Apply(ctx *tx.ApplyContext) tx.Result {
	ev, err := engineFor(ctx).Withdraw(ctx.AccountID)
	if err != nil {
		return tx.ResultFromError(err)
	}
	ctx.Emit(*ev)
	return tx.TesSUCCESS
}
