// Package compare implements the engine's total order across Kinds: a
// NULL-aware entry point for sort/index/group-by, and a NULL-free entry
// point for predicates that have already handled NULL themselves.
package compare

import (
	"bytes"
	"math"

	"github.com/relicsql/valuecore/pkg/arith"
	"github.com/relicsql/valuecore/pkg/sqltype"
	"github.com/relicsql/valuecore/pkg/value"
)

// Compare gives NULL < non-NULL and NULL == NULL.
func Compare(a, b value.Value) int {
	if a.IsNull() && b.IsNull() {
		return 0
	}
	if a.IsNull() {
		return -1
	}
	if b.IsNull() {
		return 1
	}
	return CompareWithoutNull(a, b)
}

// CompareWithoutNull compares two values the caller guarantees are
// non-NULL. Cross-kind numeric comparisons promote exactly once, through
// sqltype.PromoteComparison, except Double against Decimal, which
// compares both sides as float64.
func CompareWithoutNull(a, b value.Value) int {
	ak, bk := a.Kind(), b.Kind()

	if ak == sqltype.Array && bk == sqltype.Array {
		return compareArray(a, b)
	}
	if (ak == sqltype.Varchar || ak == sqltype.Varbinary) && (bk == sqltype.Varchar || bk == sqltype.Varbinary) {
		return bytes.Compare(a.Bytes(), b.Bytes())
	}
	if ak == sqltype.Boolean && bk == sqltype.Boolean {
		return compareInt(boolInt(a), boolInt(b))
	}
	if numericOrTimestamp(ak) && numericOrTimestamp(bk) {
		return compareNumeric(a, b)
	}
	panic("compare: incomparable kinds " + ak.String() + " and " + bk.String())
}

func numericOrTimestamp(k sqltype.Kind) bool {
	return k.IsNumeric() || k == sqltype.Timestamp
}

func boolInt(v value.Value) int64 {
	if v.AsBool() {
		return 1
	}
	return 0
}

func compareInt(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// compareFloat gives NaN == NaN and NaN < every non-NaN value,
// deliberately diverging from IEEE-754 so the engine has a total order.
func compareFloat(a, b float64) int {
	aNaN, bNaN := math.IsNaN(a), math.IsNaN(b)
	switch {
	case aNaN && bNaN:
		return 0
	case aNaN:
		return -1
	case bNaN:
		return 1
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareNumeric(a, b value.Value) int {
	switch sqltype.PromoteComparison(a.Kind(), b.Kind()) {
	case sqltype.Decimal:
		if a.Kind() == sqltype.Double || b.Kind() == sqltype.Double {
			return compareFloat(toFloat(a), toFloat(b))
		}
		return toDecimal(a).Cmp(toDecimal(b))
	case sqltype.Double:
		return compareFloat(toFloat(a), toFloat(b))
	case sqltype.BigInt:
		return compareInt(a.AsI64(), b.AsI64())
	default:
		panic("compare: unresolved numeric promotion between " + a.Kind().String() + " and " + b.Kind().String())
	}
}

func toDecimal(v value.Value) arith.Decimal {
	if v.Kind() == sqltype.Decimal {
		return v.AsDecimal()
	}
	d, _ := arith.DecimalFromInt64(v.AsI64())
	return d
}

func toFloat(v value.Value) float64 {
	switch v.Kind() {
	case sqltype.Double:
		return v.AsF64()
	case sqltype.Decimal:
		return v.AsDecimal().Float64()
	default:
		return float64(v.AsI64())
	}
}

// compareArray is lexicographic by element, then by length -- a
// homogeneous Array has no comparison rule of its own, so it borrows the
// same "equal prefix, shorter wins" rule strings use.
func compareArray(a, b value.Value) int {
	ae, be := a.ArrayElements(), b.ArrayElements()
	n := len(ae)
	if len(be) < n {
		n = len(be)
	}
	for i := 0; i < n; i++ {
		if c := Compare(ae[i], be[i]); c != 0 {
			return c
		}
	}
	return compareInt(int64(len(ae)), int64(len(be)))
}

func Equal(a, b value.Value) bool        { return Compare(a, b) == 0 }
func NotEqual(a, b value.Value) bool     { return Compare(a, b) != 0 }
func Less(a, b value.Value) bool         { return Compare(a, b) < 0 }
func LessEqual(a, b value.Value) bool    { return Compare(a, b) <= 0 }
func Greater(a, b value.Value) bool      { return Compare(a, b) > 0 }
func GreaterEqual(a, b value.Value) bool { return Compare(a, b) >= 0 }
