package arith

import (
	"math"

	"github.com/relicsql/valuecore/pkg/engerr"
	"github.com/relicsql/valuecore/pkg/sqltype"
)

// Int64Null is the NULL sentinel for BigInt/Timestamp Values.
const Int64Null int64 = math.MinInt64

func overflow(k sqltype.Kind) error {
	return &engerr.NumericOutOfRangeError{To: k, Flags: engerr.Overflow}
}

func underflow(k sqltype.Kind) error {
	return &engerr.NumericOutOfRangeError{To: k, Flags: engerr.Underflow}
}

// AddInt64 checks for overflow before computing, the standard
// signed-overflow predicate: a+b overflows iff b>0 and a>MaxInt64-b, or
// b<0 and a<MinInt64-b.
func AddInt64(a, b int64) (int64, error) {
	if b > 0 && a > math.MaxInt64-b {
		return 0, overflow(sqltype.BigInt)
	}
	if b < 0 && a < math.MinInt64-b {
		return 0, underflow(sqltype.BigInt)
	}
	return a + b, nil
}

func SubInt64(a, b int64) (int64, error) {
	if b == math.MinInt64 {
		if a >= 0 {
			return 0, overflow(sqltype.BigInt)
		}
		return a - b, nil
	}
	return AddInt64(a, -b)
}

// MulInt64 treats MinInt64 as overflow on either operand even though it
// is a legal BigInt value, so a genuine MinInt64 input is never mistaken
// for an overflowed result downstream.
func MulInt64(a, b int64) (int64, error) {
	if a == Int64Null || b == Int64Null {
		return 0, overflow(sqltype.BigInt)
	}
	if a == 0 || b == 0 {
		return 0, nil
	}
	if (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return 0, overflow(sqltype.BigInt)
	}
	neg := false
	aAbs, bAbs := a, b
	if aAbs < 0 {
		aAbs = -aAbs
		neg = !neg
	}
	if bAbs < 0 {
		bAbs = -bAbs
		neg = !neg
	}
	if aAbs > math.MaxInt64/bAbs {
		if neg {
			return 0, underflow(sqltype.BigInt)
		}
		return 0, overflow(sqltype.BigInt)
	}
	return a * b, nil
}

func DivInt64(a, b int64) (int64, error) {
	if b == 0 {
		return 0, &engerr.DivisionByZeroError{}
	}
	if a == math.MinInt64 && b == -1 {
		return 0, overflow(sqltype.BigInt)
	}
	return a / b, nil
}
