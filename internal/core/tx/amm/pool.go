package amm

import (
	"fmt"

	"github.com/LeJamon/tokendex/internal/core/ledger/entry"
	"github.com/LeJamon/tokendex/internal/core/ledger/keylet"
	"github.com/LeJamon/tokendex/internal/core/tx"
	"github.com/LeJamon/tokendex/internal/identity"
	"github.com/ugorji/go/codec"
)

// Pool is the singleton AMM pool record
type Pool struct {
	// Account is the custodial account holding the reserves
	Account identity.AccountID `json:"pool_account"`

	AssetA uint64 `json:"asset_a_id"`
	AssetB uint64 `json:"asset_b_id"`

	// LPTotalSupply equals the sum of every LP balance
	LPTotalSupply uint64 `json:"lp_total_supply"`
}

// Other returns the pool asset paired with assetID
func (p *Pool) Other(assetID uint64) (uint64, bool) {
	switch assetID {
	case p.AssetA:
		return p.AssetB, true
	case p.AssetB:
		return p.AssetA, true
	default:
		return 0, false
	}
}

// poolRecord is the stored form of Pool
type poolRecord struct {
	Account       []byte `codec:"account"`
	AssetA        uint64 `codec:"asset_a"`
	AssetB        uint64 `codec:"asset_b"`
	LPTotalSupply uint64 `codec:"lp_total_supply"`
}

var msgpackHandle codec.MsgpackHandle

func encodePool(p *Pool) ([]byte, error) {
	rec := poolRecord{
		Account:       p.Account[:],
		AssetA:        p.AssetA,
		AssetB:        p.AssetB,
		LPTotalSupply: p.LPTotalSupply,
	}

	var buf []byte
	if err := codec.NewEncoderBytes(&buf, &msgpackHandle).Encode(&rec); err != nil {
		return nil, fmt.Errorf("encode pool: %w", err)
	}
	return buf, nil
}

func decodePool(data []byte) (*Pool, error) {
	var rec poolRecord
	if err := codec.NewDecoderBytes(data, &msgpackHandle).Decode(&rec); err != nil {
		return nil, fmt.Errorf("decode pool: %w", err)
	}
	if len(rec.Account) != len(identity.AccountID{}) {
		return nil, fmt.Errorf("decode pool: account is %d bytes", len(rec.Account))
	}

	p := &Pool{
		AssetA:        rec.AssetA,
		AssetB:        rec.AssetB,
		LPTotalSupply: rec.LPTotalSupply,
	}
	copy(p.Account[:], rec.Account)
	return p, nil
}

// Registry stores the pool record and LP share balances
type Registry struct {
	view tx.LedgerView
}

// NewRegistry creates a Registry over view
func NewRegistry(view tx.LedgerView) *Registry {
	return &Registry{view: view}
}

// Pool returns the pool record, or nil if the pool is not initialized
func (r *Registry) Pool() (*Pool, error) {
	data, err := r.view.Read(keylet.Pool())
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}
	return decodePool(data)
}

// SetPool stores the pool record
func (r *Registry) SetPool(p *Pool) error {
	data, err := encodePool(p)
	if err != nil {
		return err
	}
	return r.write(keylet.Pool(), data)
}

// LPBalance returns the LP shares held by account, 0 if absent
func (r *Registry) LPBalance(account identity.AccountID) (uint64, error) {
	data, err := r.view.Read(keylet.LPBalance(account))
	if err != nil {
		return 0, err
	}
	return entry.DecodeAmount(data)
}

// SetLPBalance stores account's LP shares. Zero is stored, not erased.
func (r *Registry) SetLPBalance(account identity.AccountID, amount uint64) error {
	return r.write(keylet.LPBalance(account), entry.EncodeAmount(amount))
}

func (r *Registry) write(k keylet.Keylet, data []byte) error {
	exists, err := r.view.Exists(k)
	if err != nil {
		return err
	}
	if exists {
		return r.view.Update(k, data)
	}
	return r.view.Insert(k, data)
}
