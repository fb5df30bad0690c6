package arith

import (
	"math"

	"github.com/relicsql/valuecore/pkg/engerr"
	"github.com/relicsql/valuecore/pkg/sqltype"
)

// Float64Null is the NULL sentinel for Double Values: any value at or
// below this threshold reads back as NULL.
const Float64Null float64 = -1.7976931348623157e+308

// checkFloat rejects NaN and infinity results, using value > MaxFloat64
// (rather than math.IsInf) as the over/underflow test since that is the
// robust check under fast-math builds the op is meant to survive.
func checkFloat(v float64) (float64, error) {
	if math.IsNaN(v) {
		return 0, overflow(sqltype.Double)
	}
	if v > math.MaxFloat64 {
		return 0, overflow(sqltype.Double)
	}
	if v < -math.MaxFloat64 {
		return 0, underflow(sqltype.Double)
	}
	return v, nil
}

func AddFloat64(a, b float64) (float64, error) { return checkFloat(a + b) }
func SubFloat64(a, b float64) (float64, error) { return checkFloat(a - b) }
func MulFloat64(a, b float64) (float64, error) { return checkFloat(a * b) }

func DivFloat64(a, b float64) (float64, error) {
	if b == 0 {
		return 0, &engerr.DivisionByZeroError{}
	}
	return checkFloat(a / b)
}
