package tx

import (
	"fmt"

	"github.com/LeJamon/tokendex/internal/core/ledger/entry"
	"github.com/LeJamon/tokendex/internal/core/ledger/keylet"
	"github.com/LeJamon/tokendex/internal/core/safemath"
	"github.com/LeJamon/tokendex/internal/identity"
)

// FirstSequence is the sequence carried by an account's first transaction
const FirstSequence uint64 = 1

// AccountSequence returns the sequence the next transaction from account
// must carry
func AccountSequence(view ReadView, account identity.AccountID) (uint64, error) {
	k := keylet.AccountSequence(account)
	data, err := view.Read(k)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", k.Type, err)
	}
	if data == nil {
		return FirstSequence, nil
	}
	return entry.DecodeAmount(data)
}

// checkSequence compares seq with the caller's next sequence
func checkSequence(view ReadView, account identity.AccountID, seq uint64) (Result, error) {
	next, err := AccountSequence(view, account)
	if err != nil {
		return TefINTERNAL, err
	}
	switch {
	case seq < next:
		return TefPAST_SEQ, nil
	case seq > next:
		return TerPRE_SEQ, nil
	default:
		return TesSUCCESS, nil
	}
}

// consumeSequence advances the caller's next sequence past seq
func consumeSequence(view LedgerView, account identity.AccountID, seq uint64) error {
	next, err := safemath.Add(seq, 1)
	if err != nil {
		return err
	}

	k := keylet.AccountSequence(account)
	exists, err := view.Exists(k)
	if err != nil {
		return err
	}
	if exists {
		return view.Update(k, entry.EncodeAmount(next))
	}
	return view.Insert(k, entry.EncodeAmount(next))
}
