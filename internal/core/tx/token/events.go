package token

import "github.com/LeJamon/tokendex/internal/identity"

// Event type names
const (
	EventMintSingle     = "MintSingle"
	EventMintBatch      = "MintBatch"
	EventTransferSingle = "TransferSingle"
	EventTransferBatch  = "TransferBatch"
	EventApprovalForAll = "ApprovalForAll"
)

// MintSingleEvent is emitted by Mint
type MintSingleEvent struct {
	Account identity.AccountID `json:"account"`
	AssetID uint64             `json:"asset_id"`
	Amount  uint64             `json:"amount"`
}

func (MintSingleEvent) EventType() string { return EventMintSingle }

// MintBatchEvent is emitted by MintBatch
type MintBatchEvent struct {
	Account  identity.AccountID `json:"account"`
	AssetIDs []uint64           `json:"asset_ids"`
	Amounts  []uint64           `json:"amounts"`
}

func (MintBatchEvent) EventType() string { return EventMintBatch }

// TransferSingleEvent is emitted by Transfer and TransferFrom. Operator is the
// account that submitted the transaction.
type TransferSingleEvent struct {
	Operator identity.AccountID `json:"operator"`
	From     identity.AccountID `json:"from"`
	To       identity.AccountID `json:"to"`
	AssetID  uint64             `json:"asset_id"`
	Amount   uint64             `json:"amount"`
}

func (TransferSingleEvent) EventType() string { return EventTransferSingle }

// TransferBatchEvent is emitted by TransferBatch and TransferBatchFrom
type TransferBatchEvent struct {
	Operator identity.AccountID `json:"operator"`
	From     identity.AccountID `json:"from"`
	To       identity.AccountID `json:"to"`
	AssetIDs []uint64           `json:"asset_ids"`
	Amounts  []uint64           `json:"amounts"`
}

func (TransferBatchEvent) EventType() string { return EventTransferBatch }

// ApprovalForAllEvent is emitted by SetApproval
type ApprovalForAllEvent struct {
	Owner    identity.AccountID `json:"owner"`
	Operator identity.AccountID `json:"operator"`
	Approved bool               `json:"approved"`
}

func (ApprovalForAllEvent) EventType() string { return EventApprovalForAll }
