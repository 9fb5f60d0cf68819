package tx

import (
	"errors"

	"github.com/LeJamon/tokendex/internal/core/ledger/entry"
	"github.com/LeJamon/tokendex/internal/core/ledger/keylet"
)

// mapView is a BaseView held in a plain map.
type mapView struct {
	data      map[[32]byte][]byte
	commits   int
	commitErr error
}

func newMapView() *mapView {
	return &mapView{data: make(map[[32]byte][]byte)}
}

func (m *mapView) Read(k keylet.Keylet) ([]byte, error) {
	return m.data[k.Key], nil
}

func (m *mapView) Exists(k keylet.Keylet) (bool, error) {
	_, ok := m.data[k.Key]
	return ok, nil
}

func (m *mapView) Commit(changes []Change) error {
	if m.commitErr != nil {
		return m.commitErr
	}
	m.commits++
	for _, c := range changes {
		if c.IsErase() {
			delete(m.data, c.Keylet.Key)
		} else {
			m.data[c.Keylet.Key] = c.Data
		}
	}
	return nil
}

func testKeylet(b byte) keylet.Keylet {
	return keylet.Keylet{Type: entry.TypeBalance, Key: [32]byte{b}}
}

type testEvent struct {
	Name string
}

func (e testEvent) EventType() string { return e.Name }

// writeTx inserts one entry and emits an event, or fails with result.
type writeTx struct {
	BaseTx
	Key     byte   `json:"Key"`
	Value   string `json:"Value"`
	result  Result
	events  int
	invalid error
}

func (w *writeTx) Validate() error { return w.invalid }

func (w *writeTx) Apply(ctx *ApplyContext) Result {
	if err := ctx.View.Insert(testKeylet(w.Key), []byte(w.Value)); err != nil {
		return TefINTERNAL
	}
	if w.result != TesSUCCESS {
		return w.result
	}
	for i := 0; i < w.events; i++ {
		ctx.Emit(testEvent{Name: "Written"})
	}
	return TesSUCCESS
}

var errTestCommit = errors.New("disk full")

// seqTx returns a BaseTx carrying seq
func seqTx(seq uint64) BaseTx {
	base := NewBaseTx(TypeMint)
	base.SetSequence(seq)
	return *base
}
