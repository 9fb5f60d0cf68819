package amm

import (
	"github.com/LeJamon/tokendex/internal/core/tx"
	"github.com/LeJamon/tokendex/internal/core/tx/token"
)

func init() {
	tx.Register(tx.TypePoolInit, func() tx.Transaction {
		return &PoolInit{BaseTx: *tx.NewBaseTx(tx.TypePoolInit)}
	})
	tx.Register(tx.TypeSwap, func() tx.Transaction {
		return &Swap{BaseTx: *tx.NewBaseTx(tx.TypeSwap)}
	})
	tx.Register(tx.TypeDeposit, func() tx.Transaction {
		return &Deposit{BaseTx: *tx.NewBaseTx(tx.TypeDeposit)}
	})
	tx.Register(tx.TypeWithdraw, func() tx.Transaction {
		return &Withdraw{BaseTx: *tx.NewBaseTx(tx.TypeWithdraw)}
	})
}

// engineFor builds a pool engine over the transaction's staged view
func engineFor(ctx *tx.ApplyContext) *Engine {
	return NewEngine(token.NewLedger(ctx.View), NewRegistry(ctx.View), ctx.Config.FeePercent)
}
