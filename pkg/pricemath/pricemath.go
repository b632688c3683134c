// Package pricemath converts the AMM's Q64.64 sqrt-price and tick index
// representations into arbitrary-precision decimal prices. The sqrt-price ->
// decimal-price step uses arbitrary-precision decimals (the ratio to 2^64 is
// taken to 40 decimal places) and no float64, since f64 cannot losslessly
// represent the range; the tick factors are derived with 256-bit big.Float.
package pricemath

import (
	"fmt"
	"math/big"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"lukechampine.com/uint128"
)

// MinTickIndex and MaxTickIndex bound the Whirlpool tick range.
const (
	MinTickIndex = -443636
	MaxTickIndex = 443636
)

// SerializationPrecision is the number of significant digits a decimal price
// is rounded to on serialization.
const SerializationPrecision = 10

// q64 is the process-wide cached Q64.64 scale (2^64), initialized once on
// first use. Thread-safety of the lazy init is
// provided by sync.Once even though this pipeline is single-threaded today.
var (
	q64Once  sync.Once
	q64Value decimal.Decimal
)

func q64() decimal.Decimal {
	q64Once.Do(func() {
		q64Value = decimal.NewFromBigInt(new(big.Int).Lsh(big.NewInt(1), 64), 0)
	})
	return q64Value
}

// tickBitFactors[i] holds sqrt(1.0001^(2^i)) expressed in Q64.64 fixed point,
// computed once, on first use, via the same bit-decomposition "lookup-table
// multiply" scheme the AMM uses to derive sqrt_price from a tick index
// without repeated exponentiation.
var (
	tickBitFactorsOnce sync.Once
	tickBitFactors     [20]*big.Int
)

func initTickBitFactors() {
	tickBitFactorsOnce.Do(func() {
		base := new(big.Float).SetPrec(256).SetFloat64(1.0001)
		scale := new(big.Float).SetPrec(256).SetInt(new(big.Int).Lsh(big.NewInt(1), 64))
		exp := 1
		for i := range tickBitFactors {
			// power = 1.0001^(2^i)
			power := new(big.Float).SetPrec(256).Copy(base)
			for j := 0; j < exp-1; j++ {
				power.Mul(power, base)
			}
			sqrtPower := new(big.Float).SetPrec(256).Sqrt(power)
			scaled := new(big.Float).SetPrec(256).Mul(sqrtPower, scale)
			i64, _ := scaled.Int(nil)
			tickBitFactors[i] = i64
			exp *= 2
		}
	})
}

// SqrtPriceFromTickIndex computes the Q64.64 sqrt_price for a tick index
// using the canonical bit-decomposition multiply: the magnitude of tick is
// read bit by bit, multiplying in the precomputed per-bit factor whenever
// that bit is set, then inverting the result for negative ticks.
func SqrtPriceFromTickIndex(tick int32) (uint128.Uint128, error) {
	if tick < MinTickIndex || tick > MaxTickIndex {
		return uint128.Zero, fmt.Errorf("pricemath: tick %d out of range [%d, %d]", tick, MinTickIndex, MaxTickIndex)
	}
	initTickBitFactors()

	abs := tick
	if abs < 0 {
		abs = -abs
	}

	result := new(big.Int).Lsh(big.NewInt(1), 64) // Q64.64 one, before scaling
	q64Int := new(big.Int).Lsh(big.NewInt(1), 64)

	for i := 0; abs != 0 && i < len(tickBitFactors); i++ {
		if abs&1 != 0 {
			result.Mul(result, tickBitFactors[i])
			result.Div(result, q64Int)
		}
		abs >>= 1
	}

	if tick < 0 {
		// sqrt_price(-tick) = 2^128 / sqrt_price(tick), staying in Q64.64.
		numerator := new(big.Int).Lsh(big.NewInt(1), 128)
		result.Div(numerator, result)
	}

	hi, lo := splitBigInt(result)
	return uint128.Uint128{Lo: lo, Hi: hi}, nil
}

func splitBigInt(v *big.Int) (hi, lo uint64) {
	mask := new(big.Int).SetUint64(^uint64(0))
	loBig := new(big.Int).And(v, mask)
	hiBig := new(big.Int).Rsh(v, 64)
	return hiBig.Uint64(), loBig.Uint64()
}

// DecimalPriceFromSqrtPrice computes decimal_price = (sqrt_price/2^64)^2 *
// 10^(decimalsA-decimalsB), rounded to SerializationPrecision significant
// digits.
func DecimalPriceFromSqrtPrice(sqrtPrice uint128.Uint128, decimalsA, decimalsB uint8) decimal.Decimal {
	sqrtDec := decimal.NewFromBigInt(sqrtPrice.Big(), 0)
	ratio := sqrtDec.DivRound(q64(), 40)
	price := ratio.Mul(ratio)

	shift := int32(decimalsA) - int32(decimalsB)
	price = price.Shift(shift)

	return roundSignificant(price, SerializationPrecision)
}

// TickIndexToDecimalPrice converts a tick index to its decimal price by
// first deriving the Q64.64 sqrt_price, then applying the sqrt-price form.
func TickIndexToDecimalPrice(tick int32, decimalsA, decimalsB uint8) (decimal.Decimal, error) {
	sqrtPrice, err := SqrtPriceFromTickIndex(tick)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return DecimalPriceFromSqrtPrice(sqrtPrice, decimalsA, decimalsB), nil
}

// roundSignificant rounds d to n significant digits, matching the
// scientific-notation serialization precision used on the wire.
func roundSignificant(d decimal.Decimal, n int32) decimal.Decimal {
	if d.IsZero() {
		return d
	}
	coeff := new(big.Int).Abs(d.Coefficient())
	digits := int32(len(coeff.String()))
	// roundPlaces is the number of fractional digits of the VALUE (not the
	// coefficient) that keeps exactly n significant digits: the value's
	// order of magnitude is (digits-1+exponent), so round to
	// n-1-(digits-1+exponent) = n-digits-exponent decimal places.
	roundPlaces := n - digits - d.Exponent()
	return d.Round(roundPlaces)
}

// FormatScientific renders d in scientific notation at SerializationPrecision
// significant digits ("1.000000000e0"), the wire format for decimal prices.
func FormatScientific(d decimal.Decimal) string {
	rd := roundSignificant(d, SerializationPrecision)
	if rd.IsZero() {
		return fmt.Sprintf("0.%se0", strings.Repeat("0", SerializationPrecision-1))
	}

	neg := rd.Sign() < 0
	coeff := new(big.Int).Abs(rd.Coefficient())
	digits := coeff.String()
	if len(digits) < int(SerializationPrecision) {
		digits += strings.Repeat("0", int(SerializationPrecision)-len(digits))
	} else if len(digits) > int(SerializationPrecision) {
		digits = digits[:SerializationPrecision]
	}

	totalExp := (len(digits) - 1) + int(rd.Exponent())
	mantissa := digits[:1] + "." + digits[1:]
	sign := ""
	if neg {
		sign = "-"
	}
	return fmt.Sprintf("%s%se%d", sign, mantissa, totalExp)
}

// ParseScientific parses a decimal price previously serialized by
// FormatScientific.
func ParseScientific(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}
