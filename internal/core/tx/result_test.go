package tx

import (
	"errors"
	"fmt"
	"testing"

	"github.com/LeJamon/tokendex/internal/core/safemath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultCategories(t *testing.T) {
	assert.True(t, TesSUCCESS.IsSuccess())
	assert.True(t, TecINSUFFICIENT_BALANCE.IsTec())
	assert.True(t, TecUNKNOWN_ASSET.IsTec())
	assert.True(t, TefARITHMETIC_OVERFLOW.IsTef())
	assert.True(t, TefDIVISION_BY_ZERO.IsTef())
	assert.True(t, TemBAD_POOL_ASSETS.IsTem())
	assert.True(t, TemBAD_SEQUENCE.IsTem())
	assert.True(t, TefPAST_SEQ.IsTef())
	assert.True(t, TerPRE_SEQ.IsTer())
	assert.False(t, TerPRE_SEQ.IsTef())
	assert.False(t, TemMALFORMED.IsTec())
	assert.Equal(t, "tecNOT_APPROVED", TecNOT_APPROVED.String())
	assert.Equal(t, "unknown(42)", Result(42).String())
}

func TestResultFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Result
	}{
		{"nil", nil, TesSUCCESS},
		{"result", TecRATIO_MISMATCH, TecRATIO_MISMATCH},
		{"wrapped result", fmt.Errorf("deposit: %w", TecNO_LIQUIDITY), TecNO_LIQUIDITY},
		{"overflow", safemath.ErrOverflow, TefARITHMETIC_OVERFLOW},
		{"underflow", safemath.ErrUnderflow, TefARITHMETIC_OVERFLOW},
		{"division", fmt.Errorf("swap: %w", safemath.ErrDivisionByZero), TefDIVISION_BY_ZERO},
		{"storage", errors.New("io error"), TefINTERNAL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResultFromError(tt.err))
		})
	}
}

func TestResultIsError(t *testing.T) {
	var err error = TecPOOL_EXISTS
	require.ErrorIs(t, fmt.Errorf("init: %w", err), TecPOOL_EXISTS)
	assert.Contains(t, err.Error(), "tecPOOL_EXISTS")
}

func TestTypeNames(t *testing.T) {
	for typ, name := range typeNames {
		got, ok := TypeFromName(name)
		require.True(t, ok, name)
		assert.Equal(t, typ, got)
		assert.Equal(t, name, typ.String())
	}

	_, ok := TypeFromName("Payment")
	assert.False(t, ok)
}
