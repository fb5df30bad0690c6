package arith

import (
	"math/big"
	"strings"

	"github.com/relicsql/valuecore/pkg/engerr"
	"github.com/relicsql/valuecore/pkg/sqltype"
)

// DecimalScale is the implicit power-of-ten multiplier every Decimal's
// Int128 is scaled by.
const DecimalScale = 12

var scaleFactor = new(big.Int).Exp(big.NewInt(10), big.NewInt(DecimalScale), nil)

// decimalAbsMax enforces "whole part fits in 26 digits": the scaled
// integer's absolute value must stay below 10^38 - 10^26.
var decimalAbsMax = new(big.Int).Sub(
	new(big.Int).Exp(big.NewInt(10), big.NewInt(38), nil),
	new(big.Int).Exp(big.NewInt(10), big.NewInt(26), nil),
)

// Decimal is a signed fixed-point number: Scaled holds value * 10^12 as
// a two's-complement Int128.
type Decimal struct {
	Scaled Int128
}

var DecimalNull = Decimal{Scaled: Int128Min}

func (d Decimal) IsNull() bool {
	return d.Scaled == DecimalNull.Scaled
}

func checkRange(v *big.Int) error {
	abs := new(big.Int).Abs(v)
	if abs.Cmp(decimalAbsMax) >= 0 {
		flag := engerr.Overflow
		if v.Sign() < 0 {
			flag = engerr.Underflow
		}
		return &engerr.NumericOutOfRangeError{Value: v.String(), To: sqltype.Decimal, Flags: flag}
	}
	return nil
}

func fromChecked(v *big.Int) (Decimal, error) {
	if err := checkRange(v); err != nil {
		return Decimal{}, err
	}
	scaled, ok := FromBigInt(v)
	if !ok {
		return Decimal{}, &engerr.NumericOutOfRangeError{Value: v.String(), To: sqltype.Decimal, Flags: engerr.Overflow}
	}
	return Decimal{Scaled: scaled}, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// FromString parses a decimal literal, preserving up to scale-12
// fractional digits and discarding any further precision.
func FromString(s string) (Decimal, error) {
	text := strings.TrimSpace(s)
	t := text
	neg := false
	switch {
	case strings.HasPrefix(t, "-"):
		neg = true
		t = t[1:]
	case strings.HasPrefix(t, "+"):
		t = t[1:]
	}
	whole, frac := t, ""
	if i := strings.IndexByte(t, '.'); i >= 0 {
		whole, frac = t[:i], t[i+1:]
	}
	if whole == "" {
		whole = "0"
	}
	if len(frac) > DecimalScale {
		frac = frac[:DecimalScale]
	}
	for len(frac) < DecimalScale {
		frac += "0"
	}
	if !isDigits(whole) || !isDigits(frac) {
		return Decimal{}, &engerr.InvalidFormatError{Text: s, Target: sqltype.Decimal}
	}
	v, ok := new(big.Int).SetString(whole+frac, 10)
	if !ok {
		return Decimal{}, &engerr.InvalidFormatError{Text: s, Target: sqltype.Decimal}
	}
	if neg {
		v.Neg(v)
	}
	return fromChecked(v)
}

// String renders the decimal, trimming trailing fractional zeros but
// dropping the decimal point entirely when the fraction is exactly zero.
func (d Decimal) String() string {
	b := d.Scaled.BigInt()
	neg := b.Sign() < 0
	abs := new(big.Int).Abs(b)
	s := abs.String()
	for len(s) <= DecimalScale {
		s = "0" + s
	}
	whole := s[:len(s)-DecimalScale]
	frac := strings.TrimRight(s[len(s)-DecimalScale:], "0")
	var sb strings.Builder
	if neg {
		sb.WriteByte('-')
	}
	sb.WriteString(whole)
	if frac != "" {
		sb.WriteByte('.')
		sb.WriteString(frac)
	}
	return sb.String()
}

func (d Decimal) Cmp(o Decimal) int {
	return d.Scaled.Cmp(o.Scaled)
}

// IntegerPart truncates the fractional digits toward zero and returns
// the whole-number part, for callers casting Decimal down to an
// integer Kind.
func (d Decimal) IntegerPart() *big.Int {
	return new(big.Int).Quo(d.Scaled.BigInt(), scaleFactor)
}

func DecimalFromInt64(v int64) (Decimal, error) {
	return fromChecked(new(big.Int).Mul(big.NewInt(v), scaleFactor))
}

func (d Decimal) Float64() float64 {
	f := new(big.Float).SetInt(d.Scaled.BigInt())
	f.Quo(f, new(big.Float).SetInt(scaleFactor))
	r, _ := f.Float64()
	return r
}

func DecimalFromFloat64(v float64) (Decimal, error) {
	bf := big.NewFloat(v)
	bf.Mul(bf, new(big.Float).SetInt(scaleFactor))
	bi, _ := bf.Int(nil)
	return fromChecked(bi)
}

func (d Decimal) Add(o Decimal) (Decimal, error) {
	return fromChecked(new(big.Int).Add(d.Scaled.BigInt(), o.Scaled.BigInt()))
}

func (d Decimal) Sub(o Decimal) (Decimal, error) {
	return fromChecked(new(big.Int).Sub(d.Scaled.BigInt(), o.Scaled.BigInt()))
}

// Mul and Div stage through a 256-bit big.Int intermediate: multiplying
// two scale-12 operands yields a scale-24 product that must be divided
// back down by 10^12 before range-checking, and dividing must scale the
// numerator up by 10^12 before dividing, both of which can transiently
// exceed 128 bits.
func (d Decimal) Mul(o Decimal) (Decimal, error) {
	prod := new(big.Int).Mul(d.Scaled.BigInt(), o.Scaled.BigInt())
	prod.Quo(prod, scaleFactor)
	return fromChecked(prod)
}

func (d Decimal) Div(o Decimal) (Decimal, error) {
	if o.Scaled.IsZero() {
		return Decimal{}, &engerr.NumericOutOfRangeError{To: sqltype.Decimal, DivideZero: true}
	}
	num := new(big.Int).Mul(d.Scaled.BigInt(), scaleFactor)
	q := new(big.Int).Quo(num, o.Scaled.BigInt())
	return fromChecked(q)
}
