package tx

import (
	"errors"
	"fmt"
	"sync"

	jsoniter "github.com/json-iterator/go"
)

// ErrUnknownTransactionType is returned when a transaction type is unknown
var ErrUnknownTransactionType = errors.New("unknown transaction type")

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var (
	registryMu sync.RWMutex
	registry   = make(map[Type]func() Transaction)
)

// Register associates a constructor with a transaction type. Transaction
// packages call it from init; registering a type twice panics.
func Register(txType Type, constructor func() Transaction) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := registry[txType]; exists {
		panic(fmt.Sprintf("transaction type %s registered twice", txType))
	}
	registry[txType] = constructor
}

// NewFromType creates a new transaction of the given type
func NewFromType(txType Type) (Transaction, error) {
	registryMu.RLock()
	constructor, ok := registry[txType]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTransactionType, txType)
	}
	return constructor(), nil
}

// FromJSON creates a Transaction from a JSON object
func FromJSON(data []byte) (Transaction, error) {
	// First, unmarshal to get the TransactionType
	var raw struct {
		TransactionType string `json:"TransactionType"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	txType, ok := TypeFromName(raw.TransactionType)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTransactionType, raw.TransactionType)
	}

	tx, err := NewFromType(txType)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(data, tx); err != nil {
		return nil, err
	}

	return tx, nil
}
