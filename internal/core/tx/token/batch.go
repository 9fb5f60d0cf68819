package token

import (
	"github.com/LeJamon/tokendex/internal/core/tx"
	"github.com/LeJamon/tokendex/internal/identity"
)

func init() {
	tx.Register(tx.TypeTransferBatch, func() tx.Transaction {
		return &TransferBatch{BaseTx: *tx.NewBaseTx(tx.TypeTransferBatch)}
	})
	tx.Register(tx.TypeTransferBatchFrom, func() tx.Transaction {
		return &TransferBatchFrom{BaseTx: *tx.NewBaseTx(tx.TypeTransferBatchFrom)}
	})
}

// TransferBatch moves several assets from the submitting account to
// Destination in one step
type TransferBatch struct {
	tx.BaseTx

	Destination identity.AccountID `json:"Destination"`
	AssetIDs    []uint64           `json:"AssetIDs"`
	Amounts     []uint64           `json:"Amounts"`
}

// NewTransferBatch creates a TransferBatch transaction
func NewTransferBatch(destination identity.AccountID, assetIDs, amounts []uint64) *TransferBatch {
	return &TransferBatch{
		BaseTx:      *tx.NewBaseTx(tx.TypeTransferBatch),
		Destination: destination,
		AssetIDs:    assetIDs,
		Amounts:     amounts,
	}
}

func (t *TransferBatch) Validate() error {
	if len(t.AssetIDs) != len(t.Amounts) {
		return tx.TecLENGTH_MISMATCH
	}
	return nil
}

func (t *TransferBatch) Apply(ctx *tx.ApplyContext) tx.Result {
	err := NewLedger(ctx.View).TransferBatch(ctx.AccountID, t.Destination, t.AssetIDs, t.Amounts)
	if err != nil {
		return tx.ResultFromError(err)
	}

	ctx.Emit(TransferBatchEvent{
		Operator: ctx.AccountID,
		From:     ctx.AccountID,
		To:       t.Destination,
		AssetIDs: t.AssetIDs,
		Amounts:  t.Amounts,
	})
	return tx.TesSUCCESS
}

// TransferBatchFrom moves several assets out of Owner's account on behalf of
// the submitting operator
type TransferBatchFrom struct {
	tx.BaseTx

	Owner       identity.AccountID `json:"Owner"`
	Destination identity.AccountID `json:"Destination"`
	AssetIDs    []uint64           `json:"AssetIDs"`
	Amounts     []uint64           `json:"Amounts"`
}

// NewTransferBatchFrom creates a TransferBatchFrom transaction
func NewTransferBatchFrom(owner, destination identity.AccountID, assetIDs, amounts []uint64) *TransferBatchFrom {
	return &TransferBatchFrom{
		BaseTx:      *tx.NewBaseTx(tx.TypeTransferBatchFrom),
		Owner:       owner,
		Destination: destination,
		AssetIDs:    assetIDs,
		Amounts:     amounts,
	}
}

func (t *TransferBatchFrom) Validate() error {
	if len(t.AssetIDs) != len(t.Amounts) {
		return tx.TecLENGTH_MISMATCH
	}
	return nil
}

func (t *TransferBatchFrom) Apply(ctx *tx.ApplyContext) tx.Result {
	err := NewLedger(ctx.View).TransferBatchFrom(ctx.AccountID, t.Owner, t.Destination, t.AssetIDs, t.Amounts)
	if err != nil {
		return tx.ResultFromError(err)
	}

	ctx.Emit(TransferBatchEvent{
		Operator: ctx.AccountID,
		From:     t.Owner,
		To:       t.Destination,
		AssetIDs: t.AssetIDs,
		Amounts:  t.Amounts,
	})
	return tx.TesSUCCESS
}
