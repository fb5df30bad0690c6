// Package cast implements every castAsKind conversion the engine
// supports, one matrix cell per (source Kind, destination Kind) pair.
// NULL always casts to a typed NULL of the destination Kind without
// touching the matrix; everything else either succeeds with a
// converted Value or fails with a typed error from pkg/engerr.
package cast

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/relicsql/valuecore/pkg/arith"
	"github.com/relicsql/valuecore/pkg/engerr"
	"github.com/relicsql/valuecore/pkg/sqltype"
	"github.com/relicsql/valuecore/pkg/value"
)

// Options tunes the two cast matrix cells left to the caller's
// discretion.
type Options struct {
	// AllowNonStandardTimestampCasts permits Double->Timestamp and
	// Decimal->Timestamp, both routed through an intermediate BigInt
	// cast. These two cells are a documented oddity inherited from the
	// matrix, not a casual convenience, so they stay off unless a
	// caller opts in.
	AllowNonStandardTimestampCasts bool
}

// DefaultOptions leaves every opt-in cast disabled.
var DefaultOptions = Options{}

var timestampLayouts = []string{
	"2006-01-02 15:04:05.999999",
	"2006-01-02T15:04:05.999999Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02",
}

// CastAs converts v to the destination Kind, or returns a typed error
// describing why it can't.
func CastAs(v value.Value, to sqltype.Kind, opts Options) (value.Value, error) {
	if v.IsNull() {
		return value.NullOf(to), nil
	}
	from := v.Kind()
	if from == to {
		return identity(v, to), nil
	}
	switch to {
	case sqltype.TinyInt, sqltype.SmallInt, sqltype.Integer, sqltype.BigInt:
		return castToInteger(v, to)
	case sqltype.Timestamp:
		return castToTimestamp(v, opts)
	case sqltype.Double:
		return castToDouble(v)
	case sqltype.Decimal:
		return castToDecimal(v)
	case sqltype.Varchar:
		return castToVarchar(v)
	case sqltype.Varbinary:
		return castToVarbinary(v)
	default:
		return value.Value{}, &engerr.TypeMismatchError{From: from, To: to}
	}
}

// identity copies a value whose Kind is unchanged; Varchar/Varbinary
// get a temp-pooled copy, every fixed-width Kind is returned as-is.
func identity(v value.Value, to sqltype.Kind) value.Value {
	switch to {
	case sqltype.Varchar:
		return value.TempString(v.Bytes())
	case sqltype.Varbinary:
		return value.TempBinary(v.Bytes())
	default:
		return v
	}
}

// isIntegerFamilyCastSource is narrower than sqltype.Kind.IsIntegerFamily:
// Address is deliberately excluded, because it has no cast rule of its
// own (it is an opaque internal integer, never a user-facing scalar).
func isIntegerFamilyCastSource(k sqltype.Kind) bool {
	switch k {
	case sqltype.TinyInt, sqltype.SmallInt, sqltype.Integer, sqltype.BigInt, sqltype.Timestamp:
		return true
	default:
		return false
	}
}

func intRange(k sqltype.Kind) (int64, int64) {
	switch k {
	case sqltype.TinyInt:
		return math.MinInt8, math.MaxInt8
	case sqltype.SmallInt:
		return math.MinInt16, math.MaxInt16
	case sqltype.Integer:
		return math.MinInt32, math.MaxInt32
	case sqltype.BigInt:
		return math.MinInt64, math.MaxInt64
	default:
		panic("cast: intRange of non-integer kind " + k.String())
	}
}

func narrowInt(val int64, from, to sqltype.Kind) (value.Value, error) {
	lo, hi := intRange(to)
	switch {
	case val < lo:
		return value.Value{}, &engerr.NumericOutOfRangeError{Value: strconv.FormatInt(val, 10), From: from, To: to, Flags: engerr.Underflow}
	case val > hi:
		return value.Value{}, &engerr.NumericOutOfRangeError{Value: strconv.FormatInt(val, 10), From: from, To: to, Flags: engerr.Overflow}
	}
	switch to {
	case sqltype.TinyInt:
		return value.FromI8(int8(val)), nil
	case sqltype.SmallInt:
		return value.FromI16(int16(val)), nil
	case sqltype.Integer:
		return value.FromI32(int32(val)), nil
	default:
		return value.FromI64(val), nil
	}
}

func narrowFloatToInt(t float64, from, to sqltype.Kind) (value.Value, error) {
	lo, hi := intRange(to)
	if t < float64(lo) || t > float64(hi) {
		flag := engerr.Overflow
		if t < float64(lo) {
			flag = engerr.Underflow
		}
		return value.Value{}, &engerr.NumericOutOfRangeError{Value: strconv.FormatFloat(t, 'f', -1, 64), From: from, To: to, Flags: flag}
	}
	return narrowInt(int64(t), from, to)
}

func rangeErrorBig(whole *big.Int, from, to sqltype.Kind) error {
	flag := engerr.Overflow
	if whole.Sign() < 0 {
		flag = engerr.Underflow
	}
	return &engerr.NumericOutOfRangeError{Value: whole.String(), From: from, To: to, Flags: flag}
}

func annotateFrom(err error, from sqltype.Kind) error {
	if e, ok := err.(*engerr.NumericOutOfRangeError); ok {
		e.From = from
	}
	return err
}

func castToInteger(v value.Value, to sqltype.Kind) (value.Value, error) {
	from := v.Kind()
	switch {
	case isIntegerFamilyCastSource(from):
		return narrowInt(v.AsI64(), from, to)
	case from == sqltype.Double:
		f := v.AsF64()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			flag := engerr.Overflow
			if f < 0 {
				flag = engerr.Underflow
			}
			return value.Value{}, &engerr.NumericOutOfRangeError{Value: fmt.Sprintf("%v", f), From: from, To: to, Flags: flag}
		}
		return narrowFloatToInt(math.Trunc(f), from, to)
	case from == sqltype.Decimal:
		whole := v.AsDecimal().IntegerPart()
		if !whole.IsInt64() {
			return value.Value{}, rangeErrorBig(whole, from, to)
		}
		return narrowInt(whole.Int64(), from, to)
	case from == sqltype.Varchar:
		s := strings.TrimRight(string(v.Bytes()), " \t\r\n")
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return value.Value{}, &engerr.InvalidFormatError{Text: string(v.Bytes()), Target: to}
		}
		return narrowInt(n, from, to)
	default:
		return value.Value{}, &engerr.TypeMismatchError{From: from, To: to}
	}
}

func parseTimestamp(raw []byte) (value.Value, error) {
	s := strings.TrimSpace(string(raw))
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return value.FromTimestamp(t.UTC().UnixMicro()), nil
		}
	}
	return value.Value{}, &engerr.InvalidFormatError{Text: s, Target: sqltype.Timestamp}
}

func castToTimestamp(v value.Value, opts Options) (value.Value, error) {
	from := v.Kind()
	switch {
	case isIntegerFamilyCastSource(from):
		return value.FromTimestamp(v.AsI64()), nil
	case from == sqltype.Double, from == sqltype.Decimal:
		if !opts.AllowNonStandardTimestampCasts {
			return value.Value{}, &engerr.TypeMismatchError{From: from, To: sqltype.Timestamp}
		}
		iv, err := castToInteger(v, sqltype.BigInt)
		if err != nil {
			return value.Value{}, err
		}
		return value.FromTimestamp(iv.AsI64()), nil
	case from == sqltype.Varchar:
		return parseTimestamp(v.Bytes())
	default:
		return value.Value{}, &engerr.TypeMismatchError{From: from, To: sqltype.Timestamp}
	}
}

func castToDouble(v value.Value) (value.Value, error) {
	from := v.Kind()
	switch {
	case isIntegerFamilyCastSource(from):
		return value.FromF64(float64(v.AsI64())), nil
	case from == sqltype.Decimal:
		return value.FromF64(v.AsDecimal().Float64()), nil
	case from == sqltype.Varchar:
		s := strings.TrimSpace(string(v.Bytes()))
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return value.Value{}, &engerr.InvalidFormatError{Text: string(v.Bytes()), Target: sqltype.Double}
		}
		return value.FromF64(f), nil
	default:
		return value.Value{}, &engerr.TypeMismatchError{From: from, To: sqltype.Double}
	}
}

// decimalAbsBound is the 10^26 ceiling Double->Decimal range-checks
// against before ever formatting the float, matching the matrix's
// "check |v| < 10^26, then format" ordering.
const decimalAbsBound = 1e26

func castToDecimal(v value.Value) (value.Value, error) {
	from := v.Kind()
	switch {
	case isIntegerFamilyCastSource(from):
		d, err := arith.DecimalFromInt64(v.AsI64())
		if err != nil {
			return value.Value{}, annotateFrom(err, from)
		}
		return value.FromDecimal(d), nil
	case from == sqltype.Double:
		f := v.AsF64()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			flag := engerr.Overflow
			if f < 0 {
				flag = engerr.Underflow
			}
			return value.Value{}, &engerr.NumericOutOfRangeError{Value: fmt.Sprintf("%v", f), From: from, To: sqltype.Decimal, Flags: flag}
		}
		if math.Abs(f) >= decimalAbsBound {
			flag := engerr.Overflow
			if f < 0 {
				flag = engerr.Underflow
			}
			return value.Value{}, &engerr.NumericOutOfRangeError{Value: strconv.FormatFloat(f, 'f', -1, 64), From: from, To: sqltype.Decimal, Flags: flag}
		}
		// Round-trip through a fixed-point decimal string instead of a
		// big.Float multiply so the last digit matches what a human
		// reading "%.12f" of this float would expect.
		d, err := arith.FromString(strconv.FormatFloat(f, 'f', arith.DecimalScale, 64))
		if err != nil {
			return value.Value{}, annotateFrom(err, from)
		}
		return value.FromDecimal(d), nil
	case from == sqltype.Varchar:
		d, err := arith.FromString(strings.TrimSpace(string(v.Bytes())))
		if err != nil {
			return value.Value{}, annotateFrom(err, from)
		}
		return value.FromDecimal(d), nil
	default:
		return value.Value{}, &engerr.TypeMismatchError{From: from, To: sqltype.Decimal}
	}
}

func formatTimestamp(us int64) string {
	return time.UnixMicro(us).UTC().Format("2006-01-02 15:04:05.999999")
}

// formatDouble renders f in the engine's minimal scientific notation:
// a capital E, no leading zero or explicit sign on the exponent, no
// trailing zeros in the mantissa, and the literal "0E0" for zero.
func formatDouble(f float64) string {
	if f == 0 {
		return "0E0"
	}
	if math.IsNaN(f) {
		return "NaN"
	}
	if math.IsInf(f, 1) {
		return "Inf"
	}
	if math.IsInf(f, -1) {
		return "-Inf"
	}
	s := strconv.FormatFloat(f, 'E', -1, 64)
	mantissa, exp, _ := strings.Cut(s, "E")
	neg := strings.HasPrefix(exp, "-")
	exp = strings.TrimLeft(strings.TrimPrefix(strings.TrimPrefix(exp, "-"), "+"), "0")
	if exp == "" {
		exp = "0"
	}
	if neg {
		exp = "-" + exp
	}
	return mantissa + "E" + exp
}

func castToVarchar(v value.Value) (value.Value, error) {
	from := v.Kind()
	switch from {
	case sqltype.TinyInt, sqltype.SmallInt, sqltype.Integer, sqltype.BigInt:
		return value.TempString([]byte(strconv.FormatInt(v.AsI64(), 10))), nil
	case sqltype.Timestamp:
		return value.TempString([]byte(formatTimestamp(v.AsI64()))), nil
	case sqltype.Double:
		return value.TempString([]byte(formatDouble(v.AsF64()))), nil
	case sqltype.Decimal:
		return value.TempString([]byte(v.AsDecimal().String())), nil
	case sqltype.Varbinary:
		return value.TempString(v.Bytes()), nil
	default:
		return value.Value{}, &engerr.TypeMismatchError{From: from, To: sqltype.Varchar}
	}
}

// castToVarbinary only ever runs for mismatched source Kinds: the
// identity cell (Varbinary->Varbinary) is handled before dispatch, and
// the matrix rejects every other source.
func castToVarbinary(v value.Value) (value.Value, error) {
	return value.Value{}, &engerr.TypeMismatchError{From: v.Kind(), To: sqltype.Varbinary}
}
