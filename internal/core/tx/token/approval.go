package token

import (
	"github.com/LeJamon/tokendex/internal/core/tx"
	"github.com/LeJamon/tokendex/internal/identity"
)

func init() {
	tx.Register(tx.TypeSetApproval, func() tx.Transaction {
		return &SetApproval{BaseTx: *tx.NewBaseTx(tx.TypeSetApproval)}
	})
}

// SetApproval grants or revokes an operator's right to move the submitting
// account's balances
type SetApproval struct {
	tx.BaseTx

	Operator identity.AccountID `json:"Operator"`
	Approved bool               `json:"Approved"`
}

// NewSetApproval creates a SetApproval transaction
func NewSetApproval(operator identity.AccountID, approved bool) *SetApproval {
	return &SetApproval{
		BaseTx:   *tx.NewBaseTx(tx.TypeSetApproval),
		Operator: operator,
		Approved: approved,
	}
}

func (s *SetApproval) Validate() error { return nil }

func (s *SetApproval) Apply(ctx *tx.ApplyContext) tx.Result {
	if err := NewLedger(ctx.View).SetApproval(ctx.AccountID, s.Operator, s.Approved); err != nil {
		return tx.ResultFromError(err)
	}

	ctx.Emit(ApprovalForAllEvent{
		Owner:    ctx.AccountID,
		Operator: s.Operator,
		Approved: s.Approved,
	})
	return tx.TesSUCCESS
}
