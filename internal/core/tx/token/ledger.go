// Package token implements the multi-asset ledger: per-(asset, account)
// balances, per-(owner, operator) approvals, and the mint, transfer and
// batch operations over them.
//
// Every operation reads and writes through a tx.LedgerView. Failures are
// returned as tx.Result values wrapped in error; state is only written once
// every check of an operation has passed.
package token

import (
	"fmt"

	"github.com/LeJamon/tokendex/internal/core/ledger/entry"
	"github.com/LeJamon/tokendex/internal/core/ledger/keylet"
	"github.com/LeJamon/tokendex/internal/core/safemath"
	"github.com/LeJamon/tokendex/internal/core/tx"
	"github.com/LeJamon/tokendex/internal/identity"
)

// Ledger is the asset ledger over a ledger view
type Ledger struct {
	view tx.LedgerView
}

// NewLedger creates a Ledger reading and writing through view
func NewLedger(view tx.LedgerView) *Ledger {
	return &Ledger{view: view}
}

// Balance returns the balance of assetID held by account, 0 if absent
func (l *Ledger) Balance(assetID uint64, account identity.AccountID) (uint64, error) {
	return readAmount(l.view, keylet.Balance(assetID, account))
}

// Approved reports whether owner has approved operator
func (l *Ledger) Approved(owner, operator identity.AccountID) (bool, error) {
	data, err := l.view.Read(keylet.Approval(owner, operator))
	if err != nil {
		return false, err
	}
	return entry.DecodeFlag(data)
}

// SetApproval overwrites the approval owner grants operator
func (l *Ledger) SetApproval(owner, operator identity.AccountID, approved bool) error {
	return writeEntry(l.view, keylet.Approval(owner, operator), entry.EncodeFlag(approved))
}

// Mint credits amount of assetID to account
func (l *Ledger) Mint(account identity.AccountID, assetID, amount uint64) error {
	return l.MintBatch(account, []uint64{assetID}, []uint64{amount})
}

// MintBatch credits amounts[i] of assetIDs[i] to account for every i.
// Either every credit is applied or none is.
func (l *Ledger) MintBatch(account identity.AccountID, assetIDs, amounts []uint64) error {
	if len(assetIDs) != len(amounts) {
		return tx.TecLENGTH_MISMATCH
	}

	p := newProjection(l.view)
	for i, assetID := range assetIDs {
		if err := p.credit(keylet.Balance(assetID, account), amounts[i]); err != nil {
			return err
		}
	}
	return p.flush()
}

// TransferTo moves amount of assetID from one account to another
func (l *Ledger) TransferTo(from, to identity.AccountID, assetID, amount uint64) error {
	return l.TransferBatch(from, to, []uint64{assetID}, []uint64{amount})
}

// TransferFrom moves amount of assetID from one account to another on behalf
// of operator, who must be approved by from.
func (l *Ledger) TransferFrom(operator, from, to identity.AccountID, assetID, amount uint64) error {
	return l.TransferBatchFrom(operator, from, to, []uint64{assetID}, []uint64{amount})
}

// TransferBatch moves amounts[i] of assetIDs[i] from one account to another
// for every i. Every element is checked against the balances left by the
// elements before it, and nothing is written unless all of them pass.
func (l *Ledger) TransferBatch(from, to identity.AccountID, assetIDs, amounts []uint64) error {
	if len(assetIDs) != len(amounts) {
		return tx.TecLENGTH_MISMATCH
	}

	p := newProjection(l.view)
	for i, assetID := range assetIDs {
		if err := p.move(assetID, from, to, amounts[i]); err != nil {
			return err
		}
	}
	return p.flush()
}

// TransferBatchFrom is TransferBatch performed by an approved operator
func (l *Ledger) TransferBatchFrom(operator, from, to identity.AccountID, assetIDs, amounts []uint64) error {
	if len(assetIDs) != len(amounts) {
		return tx.TecLENGTH_MISMATCH
	}

	approved, err := l.Approved(from, operator)
	if err != nil {
		return err
	}
	if !approved {
		return tx.TecNOT_APPROVED
	}

	return l.TransferBatch(from, to, assetIDs, amounts)
}

// projection tracks the balances a batch would leave behind so that every
// element is validated before anything is written.
type projection struct {
	view     tx.LedgerView
	values   map[[32]byte]uint64
	original map[[32]byte]uint64
	order    []keylet.Keylet
}

func newProjection(view tx.LedgerView) *projection {
	return &projection{
		view:     view,
		values:   make(map[[32]byte]uint64),
		original: make(map[[32]byte]uint64),
	}
}

func (p *projection) get(k keylet.Keylet) (uint64, error) {
	if v, ok := p.values[k.Key]; ok {
		return v, nil
	}
	v, err := readAmount(p.view, k)
	if err != nil {
		return 0, err
	}
	p.values[k.Key] = v
	p.original[k.Key] = v
	p.order = append(p.order, k)
	return v, nil
}

func (p *projection) set(k keylet.Keylet, v uint64) {
	p.values[k.Key] = v
}

func (p *projection) credit(k keylet.Keylet, amount uint64) error {
	current, err := p.get(k)
	if err != nil {
		return err
	}
	next, err := safemath.Add(current, amount)
	if err != nil {
		return tx.TefARITHMETIC_OVERFLOW
	}
	p.set(k, next)
	return nil
}

func (p *projection) move(assetID uint64, from, to identity.AccountID, amount uint64) error {
	fromKey := keylet.Balance(assetID, from)
	balance, err := p.get(fromKey)
	if err != nil {
		return err
	}
	if balance < amount {
		return tx.TecINSUFFICIENT_BALANCE
	}
	if from == to {
		return nil
	}

	p.set(fromKey, balance-amount)
	return p.credit(keylet.Balance(assetID, to), amount)
}

// flush writes every changed balance in first-touch order
func (p *projection) flush() error {
	for _, k := range p.order {
		v := p.values[k.Key]
		if v == p.original[k.Key] {
			continue
		}
		if err := writeEntry(p.view, k, entry.EncodeAmount(v)); err != nil {
			return err
		}
	}
	return nil
}

func readAmount(view tx.ReadView, k keylet.Keylet) (uint64, error) {
	data, err := view.Read(k)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", k.Type, err)
	}
	return entry.DecodeAmount(data)
}

// writeEntry inserts or updates k
func writeEntry(view tx.LedgerView, k keylet.Keylet, data []byte) error {
	exists, err := view.Exists(k)
	if err != nil {
		return err
	}
	if exists {
		return view.Update(k, data)
	}
	return view.Insert(k, data)
}
