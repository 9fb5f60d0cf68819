package token

import (
	"github.com/LeJamon/tokendex/internal/core/tx"
)

func init() {
	tx.Register(tx.TypeMint, func() tx.Transaction {
		return &Mint{BaseTx: *tx.NewBaseTx(tx.TypeMint)}
	})
	tx.Register(tx.TypeMintBatch, func() tx.Transaction {
		return &MintBatch{BaseTx: *tx.NewBaseTx(tx.TypeMintBatch)}
	})
}

// Mint credits the submitting account with new units of an asset
type Mint struct {
	tx.BaseTx

	AssetID uint64 `json:"AssetID"`
	Amount  uint64 `json:"Amount"`
}

// NewMint creates a Mint transaction
func NewMint(assetID, amount uint64) *Mint {
	return &Mint{
		BaseTx:  *tx.NewBaseTx(tx.TypeMint),
		AssetID: assetID,
		Amount:  amount,
	}
}

func (m *Mint) Validate() error { return nil }

func (m *Mint) Apply(ctx *tx.ApplyContext) tx.Result {
	if err := NewLedger(ctx.View).Mint(ctx.AccountID, m.AssetID, m.Amount); err != nil {
		return tx.ResultFromError(err)
	}

	ctx.Emit(MintSingleEvent{
		Account: ctx.AccountID,
		AssetID: m.AssetID,
		Amount:  m.Amount,
	})
	return tx.TesSUCCESS
}

// MintBatch credits the submitting account with several assets at once
type MintBatch struct {
	tx.BaseTx

	AssetIDs []uint64 `json:"AssetIDs"`
	Amounts  []uint64 `json:"Amounts"`
}

// NewMintBatch creates a MintBatch transaction
func NewMintBatch(assetIDs, amounts []uint64) *MintBatch {
	return &MintBatch{
		BaseTx:   *tx.NewBaseTx(tx.TypeMintBatch),
		AssetIDs: assetIDs,
		Amounts:  amounts,
	}
}

func (m *MintBatch) Validate() error {
	if len(m.AssetIDs) != len(m.Amounts) {
		return tx.TecLENGTH_MISMATCH
	}
	return nil
}

func (m *MintBatch) Apply(ctx *tx.ApplyContext) tx.Result {
	if err := NewLedger(ctx.View).MintBatch(ctx.AccountID, m.AssetIDs, m.Amounts); err != nil {
		return tx.ResultFromError(err)
	}

	ctx.Emit(MintBatchEvent{
		Account:  ctx.AccountID,
		AssetIDs: m.AssetIDs,
		Amounts:  m.Amounts,
	})
	return tx.TesSUCCESS
}
