package tx

import "fmt"

// Type represents a transaction type
type Type uint16

const (
	TypeMint Type = iota + 1
	TypeMintBatch
	TypeSetApproval
	TypeTransfer
	TypeTransferFrom
	TypeTransferBatch
	TypeTransferBatchFrom
	TypePoolInit
	TypeSwap
	TypeDeposit
	TypeWithdraw
)

var typeNames = map[Type]string{
	TypeMint:              "Mint",
	TypeMintBatch:         "MintBatch",
	TypeSetApproval:       "SetApproval",
	TypeTransfer:          "Transfer",
	TypeTransferFrom:      "TransferFrom",
	TypeTransferBatch:     "TransferBatch",
	TypeTransferBatchFrom: "TransferBatchFrom",
	TypePoolInit:          "PoolInit",
	TypeSwap:              "Swap",
	TypeDeposit:           "Deposit",
	TypeWithdraw:          "Withdraw",
}

var nameToType = func() map[string]Type {
	m := make(map[string]Type, len(typeNames))
	for t, name := range typeNames {
		m[name] = t
	}
	return m
}()

// String returns the transaction type name
func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Unknown(%d)", uint16(t))
}

// TypeFromName returns the transaction type for a name
func TypeFromName(name string) (Type, bool) {
	t, ok := nameToType[name]
	return t, ok
}

// MarshalText encodes the type by name.
func (t Type) MarshalText() ([]byte, error) {
	if _, ok := typeNames[t]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownTransactionType, uint16(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText decodes a type name.
func (t *Type) UnmarshalText(text []byte) error {
	parsed, ok := TypeFromName(string(text))
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTransactionType, string(text))
	}
	*t = parsed
	return nil
}
