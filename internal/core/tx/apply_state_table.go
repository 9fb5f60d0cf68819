package tx

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/LeJamon/tokendex/internal/core/ledger/keylet"
)

// Action represents the type of modification to a ledger entry
type Action int

const (
	// ActionCache means the entry was read but not modified
	ActionCache Action = iota
	// ActionInsert means a new entry was created
	ActionInsert
	// ActionModify means an existing entry was modified
	ActionModify
	// ActionErase means an entry was deleted
	ActionErase
)

// TrackedEntry represents a ledger entry being tracked for changes
type TrackedEntry struct {
	Keylet   keylet.Keylet
	Action   Action
	Original []byte // Original state (nil for inserts)
	Current  []byte // Current state
}

// ApplyStateTable stages the reads and writes of one transaction on top of
// a base view. Nothing reaches the base until the engine commits Changes.
type ApplyStateTable struct {
	base  ReadView
	items map[[32]byte]*TrackedEntry
}

// NewApplyStateTable creates a new ApplyStateTable wrapping the given base view
func NewApplyStateTable(base ReadView) *ApplyStateTable {
	return &ApplyStateTable{
		base:  base,
		items: make(map[[32]byte]*TrackedEntry),
	}
}

// Read reads a ledger entry, tracking it as cached
func (t *ApplyStateTable) Read(k keylet.Keylet) ([]byte, error) {
	if entry, exists := t.items[k.Key]; exists {
		if entry.Action == ActionErase {
			return nil, nil
		}
		return entry.Current, nil
	}

	data, err := t.base.Read(k)
	if err != nil {
		return nil, err
	}

	// Only track entries that exist in the base
	if data != nil {
		t.items[k.Key] = &TrackedEntry{
			Keylet:   k,
			Action:   ActionCache,
			Original: data,
			Current:  data,
		}
	}

	return data, nil
}

// Exists checks if an entry exists
func (t *ApplyStateTable) Exists(k keylet.Keylet) (bool, error) {
	if entry, exists := t.items[k.Key]; exists {
		return entry.Action != ActionErase, nil
	}
	return t.base.Exists(k)
}

// Insert adds a new entry
func (t *ApplyStateTable) Insert(k keylet.Keylet, data []byte) error {
	if entry, exists := t.items[k.Key]; exists {
		if entry.Action != ActionErase {
			return fmt.Errorf("entry %s already exists", k.Type)
		}
		// Re-inserting a deleted entry becomes a modify
		entry.Action = ActionModify
		entry.Current = data
		return nil
	}

	exists, err := t.base.Exists(k)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("entry %s already exists", k.Type)
	}

	t.items[k.Key] = &TrackedEntry{
		Keylet:  k,
		Action:  ActionInsert,
		Current: data,
	}
	return nil
}

// Update modifies an existing entry
func (t *ApplyStateTable) Update(k keylet.Keylet, data []byte) error {
	if entry, exists := t.items[k.Key]; exists {
		if entry.Action == ActionErase {
			return fmt.Errorf("entry %s not found (deleted)", k.Type)
		}
		if entry.Action == ActionCache {
			entry.Action = ActionModify
		}
		// For insert, keep it as insert with new data
		entry.Current = data
		return nil
	}

	original, err := t.base.Read(k)
	if err != nil {
		return err
	}
	if original == nil {
		return fmt.Errorf("entry %s not found", k.Type)
	}

	t.items[k.Key] = &TrackedEntry{
		Keylet:   k,
		Action:   ActionModify,
		Original: original,
		Current:  data,
	}
	return nil
}

// Erase removes an entry
func (t *ApplyStateTable) Erase(k keylet.Keylet) error {
	if entry, exists := t.items[k.Key]; exists {
		switch entry.Action {
		case ActionErase:
			return fmt.Errorf("entry %s already deleted", k.Type)
		case ActionInsert:
			// Inserting then deleting = no change
			delete(t.items, k.Key)
		default:
			entry.Action = ActionErase
		}
		return nil
	}

	original, err := t.base.Read(k)
	if err != nil {
		return err
	}
	if original == nil {
		return fmt.Errorf("entry %s not found", k.Type)
	}

	t.items[k.Key] = &TrackedEntry{
		Keylet:   k,
		Action:   ActionErase,
		Original: original,
		Current:  original,
	}
	return nil
}

// Changes returns the net modifications staged in the table, ordered by key.
// Reads and updates that restore the original bytes are left out.
func (t *ApplyStateTable) Changes() []Change {
	changes := make([]Change, 0, len(t.items))
	for _, entry := range t.items {
		switch entry.Action {
		case ActionCache:
			continue
		case ActionModify:
			if bytes.Equal(entry.Original, entry.Current) {
				continue
			}
			changes = append(changes, Change{Keylet: entry.Keylet, Data: entry.Current})
		case ActionInsert:
			changes = append(changes, Change{Keylet: entry.Keylet, Data: entry.Current})
		case ActionErase:
			changes = append(changes, Change{Keylet: entry.Keylet})
		}
	}

	sort.Slice(changes, func(i, j int) bool {
		return bytes.Compare(changes[i].Keylet.Key[:], changes[j].Keylet.Key[:]) < 0
	})
	return changes
}
