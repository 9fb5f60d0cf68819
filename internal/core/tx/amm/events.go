package amm

import "github.com/LeJamon/tokendex/internal/identity"

// Event type names
const (
	EventPoolInitialized = "PoolInitialized"
	EventSwapped         = "Swapped"
	EventDeposited       = "Deposited"
	EventWithdrawn       = "Withdrawn"
)

// PoolInitialized is emitted by Init
type PoolInitialized struct {
	Caller      identity.AccountID `json:"caller"`
	PoolAccount identity.AccountID `json:"pool_account"`
	AssetA      uint64             `json:"asset_a_id"`
	AmountA     uint64             `json:"amount_a"`
	AssetB      uint64             `json:"asset_b_id"`
	AmountB     uint64             `json:"amount_b"`
	LPMinted    uint64             `json:"lp_minted"`
}

func (PoolInitialized) EventType() string { return EventPoolInitialized }

// Swapped is emitted by Swap
type Swapped struct {
	Caller       identity.AccountID `json:"caller"`
	InputAsset   uint64             `json:"input_asset_id"`
	InputAmount  uint64             `json:"input_amount"`
	OutputAsset  uint64             `json:"output_asset_id"`
	OutputAmount uint64             `json:"output_amount"`
}

func (Swapped) EventType() string { return EventSwapped }

// Deposited is emitted by Deposit. AmountB is the amount actually taken.
type Deposited struct {
	Caller   identity.AccountID `json:"caller"`
	AmountA  uint64             `json:"amount_a"`
	AmountB  uint64             `json:"amount_b"`
	LPMinted uint64             `json:"lp_minted"`
}

func (Deposited) EventType() string { return EventDeposited }

// Withdrawn is emitted by Withdraw
type Withdrawn struct {
	Caller   identity.AccountID `json:"caller"`
	AmountA  uint64             `json:"amount_a"`
	AmountB  uint64             `json:"amount_b"`
	LPBurned uint64             `json:"lp_burned"`
}

func (Withdrawn) EventType() string { return EventWithdrawn }
