package tx

import (
	"errors"
	"fmt"

	"github.com/LeJamon/tokendex/internal/core/safemath"
)

// Result represents a transaction result code
type Result int

// Result codes are grouped by category:
// tes succeeded, tec failed a ledger-state check, ter may succeed later,
// tef hit an arithmetic or internal fault or can never apply, tem was
// malformed before it touched state.
const (
	// tesSUCCESS (0)
	TesSUCCESS Result = 0

	// tec codes (100-199): rejected by a check against current state
	TecINSUFFICIENT_BALANCE Result = 100
	TecLENGTH_MISMATCH      Result = 101
	TecNOT_APPROVED         Result = 102
	TecRATIO_MISMATCH       Result = 103
	TecNO_LIQUIDITY         Result = 104
	TecPOOL_UNINITIALIZED   Result = 105
	TecPOOL_EXISTS          Result = 106
	TecUNKNOWN_ASSET        Result = 107

	// ter codes (-99 to -1): not applied, may apply once state catches up
	TerPRE_SEQ Result = -92

	// tef codes (-199 to -100): arithmetic preconditions and internal faults
	TefINTERNAL            Result = -199
	TefARITHMETIC_OVERFLOW Result = -198
	TefDIVISION_BY_ZERO    Result = -197
	TefPAST_SEQ            Result = -190

	// tem codes (-299 to -200): malformed transaction
	TemMALFORMED       Result = -299
	TemBAD_POOL_ASSETS Result = -298
	TemBAD_SEQUENCE    Result = -297
)

// String returns the string representation of the result
func (r Result) String() string {
	switch r {
	case TesSUCCESS:
		return "tesSUCCESS"
	case TecINSUFFICIENT_BALANCE:
		return "tecINSUFFICIENT_BALANCE"
	case TecLENGTH_MISMATCH:
		return "tecLENGTH_MISMATCH"
	case TecNOT_APPROVED:
		return "tecNOT_APPROVED"
	case TecRATIO_MISMATCH:
		return "tecRATIO_MISMATCH"
	case TecNO_LIQUIDITY:
		return "tecNO_LIQUIDITY"
	case TecPOOL_UNINITIALIZED:
		return "tecPOOL_UNINITIALIZED"
	case TecPOOL_EXISTS:
		return "tecPOOL_EXISTS"
	case TecUNKNOWN_ASSET:
		return "tecUNKNOWN_ASSET"
	case TerPRE_SEQ:
		return "terPRE_SEQ"
	case TefINTERNAL:
		return "tefINTERNAL"
	case TefARITHMETIC_OVERFLOW:
		return "tefARITHMETIC_OVERFLOW"
	case TefDIVISION_BY_ZERO:
		return "tefDIVISION_BY_ZERO"
	case TefPAST_SEQ:
		return "tefPAST_SEQ"
	case TemMALFORMED:
		return "temMALFORMED"
	case TemBAD_POOL_ASSETS:
		return "temBAD_POOL_ASSETS"
	case TemBAD_SEQUENCE:
		return "temBAD_SEQUENCE"
	default:
		return fmt.Sprintf("unknown(%d)", int(r))
	}
}

// Message returns a human-readable message for the result
func (r Result) Message() string {
	switch r {
	case TesSUCCESS:
		return "The transaction was applied."
	case TecINSUFFICIENT_BALANCE:
		return "Insufficient balance to move the requested amount."
	case TecLENGTH_MISMATCH:
		return "Asset id and amount lists differ in length."
	case TecNOT_APPROVED:
		return "Operator is not approved by the owner."
	case TecRATIO_MISMATCH:
		return "Deposit does not match the pool ratio."
	case TecNO_LIQUIDITY:
		return "Account holds no liquidity provider shares."
	case TecPOOL_UNINITIALIZED:
		return "The pool has not been initialized."
	case TecPOOL_EXISTS:
		return "The pool is already initialized."
	case TecUNKNOWN_ASSET:
		return "Asset is not one of the pool assets."
	case TerPRE_SEQ:
		return "Missing/inapplicable prior transaction."
	case TefINTERNAL:
		return "Internal error."
	case TefARITHMETIC_OVERFLOW:
		return "Arithmetic overflow."
	case TefDIVISION_BY_ZERO:
		return "Division by zero: the pool reserve is empty."
	case TefPAST_SEQ:
		return "This sequence number has already passed."
	case TemMALFORMED:
		return "Malformed transaction."
	case TemBAD_POOL_ASSETS:
		return "Pool assets must be distinct."
	case TemBAD_SEQUENCE:
		return "Transaction Sequence is missing or zero."
	default:
		return "Unknown result."
	}
}

// Error makes Result usable as an error value.
func (r Result) Error() string {
	return r.String() + ": " + r.Message()
}

// IsSuccess returns true if the result indicates success
func (r Result) IsSuccess() bool {
	return r == TesSUCCESS
}

// IsTec returns true if this is a tec (state check) code
func (r Result) IsTec() bool {
	return r >= 100 && r < 200
}

// IsTer returns true if this is a ter (retry) code
func (r Result) IsTer() bool {
	return r >= -99 && r <= -1
}

// IsTef returns true if this is a tef (failure) code
func (r Result) IsTef() bool {
	return r >= -199 && r <= -100
}

// IsTem returns true if this is a tem (malformed) code
func (r Result) IsTem() bool {
	return r >= -299 && r <= -200
}

// ResultFromError maps an error returned by ledger code to a result code.
// A nil error is success and unrecognised errors are internal faults.
func ResultFromError(err error) Result {
	if err == nil {
		return TesSUCCESS
	}

	var r Result
	if errors.As(err, &r) {
		return r
	}

	switch {
	case errors.Is(err, safemath.ErrOverflow), errors.Is(err, safemath.ErrUnderflow):
		return TefARITHMETIC_OVERFLOW
	case errors.Is(err, safemath.ErrDivisionByZero):
		return TefDIVISION_BY_ZERO
	default:
		return TefINTERNAL
	}
}
