// Package safemath provides checked uint64 arithmetic for ledger amounts.
//
// Every operation either returns the exact result or an error; nothing wraps.
// Every intermediate must fit in 64 bits, including the product inside
// MulDiv: a product wider than 64 bits fails with ErrOverflow even when the
// quotient would fit. uint256 is used only to detect the overflow.
package safemath

import (
	"errors"

	"github.com/holiman/uint256"
)

var (
	// ErrOverflow is returned when a result does not fit in 64 bits.
	ErrOverflow = errors.New("arithmetic overflow")

	// ErrUnderflow is returned when a subtraction would go below zero.
	ErrUnderflow = errors.New("arithmetic underflow")

	// ErrDivisionByZero is returned when a divisor is zero.
	ErrDivisionByZero = errors.New("division by zero")
)

// Add returns a + b.
func Add(a, b uint64) (uint64, error) {
	sum := new(uint256.Int).Add(uint256.NewInt(a), uint256.NewInt(b))
	if !sum.IsUint64() {
		return 0, ErrOverflow
	}
	return sum.Uint64(), nil
}

// Sub returns a - b.
func Sub(a, b uint64) (uint64, error) {
	if b > a {
		return 0, ErrUnderflow
	}
	return a - b, nil
}

// Mul returns a * b.
func Mul(a, b uint64) (uint64, error) {
	product := new(uint256.Int).Mul(uint256.NewInt(a), uint256.NewInt(b))
	if !product.IsUint64() {
		return 0, ErrOverflow
	}
	return product.Uint64(), nil
}

// MulDiv returns floor(a * b / c). It fails with ErrOverflow when a * b does
// not fit in 64 bits, whatever c is.
func MulDiv(a, b, c uint64) (uint64, error) {
	product, err := Mul(a, b)
	if err != nil {
		return 0, err
	}
	if c == 0 {
		return 0, ErrDivisionByZero
	}
	return product / c, nil
}
