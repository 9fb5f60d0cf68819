package token

import (
	"github.com/LeJamon/tokendex/internal/core/tx"
	"github.com/LeJamon/tokendex/internal/identity"
)

func init() {
	tx.Register(tx.TypeTransfer, func() tx.Transaction {
		return &Transfer{BaseTx: *tx.NewBaseTx(tx.TypeTransfer)}
	})
	tx.Register(tx.TypeTransferFrom, func() tx.Transaction {
		return &TransferFrom{BaseTx: *tx.NewBaseTx(tx.TypeTransferFrom)}
	})
}

// Transfer moves an asset from the submitting account to Destination
type Transfer struct {
	tx.BaseTx

	Destination identity.AccountID `json:"Destination"`
	AssetID     uint64             `json:"AssetID"`
	Amount      uint64             `json:"Amount"`
}

// NewTransfer creates a Transfer transaction
func NewTransfer(destination identity.AccountID, assetID, amount uint64) *Transfer {
	return &Transfer{
		BaseTx:      *tx.NewBaseTx(tx.TypeTransfer),
		Destination: destination,
		AssetID:     assetID,
		Amount:      amount,
	}
}

func (t *Transfer) Validate() error { return nil }

func (t *Transfer) Apply(ctx *tx.ApplyContext) tx.Result {
	err := NewLedger(ctx.View).TransferTo(ctx.AccountID, t.Destination, t.AssetID, t.Amount)
	if err != nil {
		return tx.ResultFromError(err)
	}

	ctx.Emit(TransferSingleEvent{
		Operator: ctx.AccountID,
		From:     ctx.AccountID,
		To:       t.Destination,
		AssetID:  t.AssetID,
		Amount:   t.Amount,
	})
	return tx.TesSUCCESS
}

// TransferFrom moves an asset out of Owner's account. The submitting account
// is the operator and must be approved by Owner.
type TransferFrom struct {
	tx.BaseTx

	Owner       identity.AccountID `json:"Owner"`
	Destination identity.AccountID `json:"Destination"`
	AssetID     uint64             `json:"AssetID"`
	Amount      uint64             `json:"Amount"`
}

// NewTransferFrom creates a TransferFrom transaction
func NewTransferFrom(owner, destination identity.AccountID, assetID, amount uint64) *TransferFrom {
	return &TransferFrom{
		BaseTx:      *tx.NewBaseTx(tx.TypeTransferFrom),
		Owner:       owner,
		Destination: destination,
		AssetID:     assetID,
		Amount:      amount,
	}
}

func (t *TransferFrom) Validate() error { return nil }

func (t *TransferFrom) Apply(ctx *tx.ApplyContext) tx.Result {
	err := NewLedger(ctx.View).TransferFrom(ctx.AccountID, t.Owner, t.Destination, t.AssetID, t.Amount)
	if err != nil {
		return tx.ResultFromError(err)
	}

	ctx.Emit(TransferSingleEvent{
		Operator: ctx.AccountID,
		From:     t.Owner,
		To:       t.Destination,
		AssetID:  t.AssetID,
		Amount:   t.Amount,
	})
	return tx.TesSUCCESS
}
