package amm

import "github.com/LeJamon/tokendex/internal/core/safemath"

// SwapOutput returns the amount paid out for input units sold into a pool
// holding inReserve and outReserve, after a feePercent cut:
//
//	raw = floor(outReserve * input / (inReserve + input))
//	out = floor(raw * (100 - feePercent) / 100)
func SwapOutput(inReserve, outReserve, input, feePercent uint64) (uint64, error) {
	denominator, err := safemath.Add(inReserve, input)
	if err != nil {
		return 0, err
	}
	raw, err := safemath.MulDiv(outReserve, input, denominator)
	if err != nil {
		return 0, err
	}
	keep, err := safemath.Sub(100, feePercent)
	if err != nil {
		return 0, err
	}
	return safemath.MulDiv(raw, keep, 100)
}

// RequiredB returns the amount of asset B that matches amountA at the
// current reserve ratio: floor(reserveB * amountA / reserveA)
func RequiredB(reserveA, reserveB, amountA uint64) (uint64, error) {
	return safemath.MulDiv(reserveB, amountA, reserveA)
}

// LPMinted returns the shares issued for depositing amountA:
// floor(amountA * lpTotalSupply / reserveA)
func LPMinted(amountA, lpTotalSupply, reserveA uint64) (uint64, error) {
	return safemath.MulDiv(amountA, lpTotalSupply, reserveA)
}

// Share returns the part of reserve owned by lp shares:
// floor(reserve * lp / lpTotalSupply)
func Share(reserve, lp, lpTotalSupply uint64) (uint64, error) {
	return safemath.MulDiv(reserve, lp, lpTotalSupply)
}
