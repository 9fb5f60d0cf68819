package tx

// Transaction is the interface that all transaction types must implement
type Transaction interface {
	// TxType returns the transaction type
	TxType() Type

	// Validate checks the transaction fields without reading state.
	// A returned Result is reported as is; any other error becomes temMALFORMED.
	Validate() error

	// Apply runs the transaction against the staged view in ctx.
	// A successful Apply emits exactly one event through ctx.
	Apply(ctx *ApplyContext) Result

	// GetSequence returns the caller sequence the transaction consumes
	GetSequence() uint64

	// SetSequence sets the caller sequence before signing
	SetSequence(seq uint64)
}

// BaseTx holds the fields common to every transaction
type BaseTx struct {
	TransactionType Type `json:"TransactionType"`

	// Sequence must equal the caller's next sequence. A signed transaction
	// applies at most once.
	Sequence uint64 `json:"Sequence"`
}

// NewBaseTx creates a BaseTx of the given type
func NewBaseTx(txType Type) *BaseTx {
	return &BaseTx{TransactionType: txType}
}

// TxType returns the transaction type
func (b *BaseTx) TxType() Type {
	return b.TransactionType
}

// GetSequence returns the caller sequence
func (b *BaseTx) GetSequence() uint64 {
	return b.Sequence
}

// SetSequence sets the caller sequence
func (b *BaseTx) SetSequence(seq uint64) {
	b.Sequence = seq
}
