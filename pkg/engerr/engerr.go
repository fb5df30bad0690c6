// Package engerr defines the typed error values the engine raises instead
// of silently coercing. Each error kind wraps the context the caller needs
// to recover (the value, the Kind conversion attempted, the overflow
// direction) without resorting to string-matching.
package engerr

import (
	"fmt"

	"github.com/relicsql/valuecore/pkg/sqltype"
)

// TypeMismatchError reports a binary operation or cast for which no
// promotion or conversion rule exists (sqltype.PromoteNumeric/PromoteComparison
// returning Invalid, or a cast matrix cell marked "reject").
type TypeMismatchError struct {
	From, To sqltype.Kind
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("type mismatch: cannot convert %s to %s", e.From, e.To)
}

// RangeFlag distinguishes which direction a NumericOutOfRangeError failed
// in. Callers that report diagnostics to a user rely on telling these apart.
type RangeFlag int

const (
	Overflow RangeFlag = 1 << iota
	Underflow
)

func (f RangeFlag) String() string {
	switch f {
	case Overflow:
		return "overflow"
	case Underflow:
		return "underflow"
	default:
		return fmt.Sprintf("RangeFlag(%d)", int(f))
	}
}

// NumericOutOfRangeError reports a value that does not fit the
// destination Kind's range. Decimal divide-by-zero also files under this
// kind, with DivideZero set, rather than getting a separate type.
type NumericOutOfRangeError struct {
	Value      string
	From, To   sqltype.Kind
	Flags      RangeFlag
	DivideZero bool
}

func (e *NumericOutOfRangeError) Error() string {
	if e.DivideZero {
		return "division by zero"
	}
	return fmt.Sprintf("numeric out of range: %s (%s -> %s, %s)", e.Value, e.From, e.To, e.Flags)
}

// DivisionByZeroError is raised by pkg/arith's integer and double
// division. Decimal division by zero is reported as a
// NumericOutOfRangeError with DivideZero set instead.
type DivisionByZeroError struct{}

func (e *DivisionByZeroError) Error() string { return "division by zero" }

// ObjectTooLargeError reports a variable-length object that does not fit
// the destination tuple slot's max length.
type ObjectTooLargeError struct {
	Actual, Max int
	Kind        sqltype.Kind
}

func (e *ObjectTooLargeError) Error() string {
	return fmt.Sprintf("object too large: %d bytes exceeds max %d for %s", e.Actual, e.Max, e.Kind)
}

// InvalidFormatError reports a parse failure (timestamp/decimal/number
// from string).
type InvalidFormatError struct {
	Text   string
	Target sqltype.Kind
}

func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("invalid format for %s: %q", e.Target, e.Text)
}

// UnsupportedOperationError reports an operation the engine deliberately
// does not implement (e.g. writing a NULL Boolean into fixed-width tuple
// storage, which has no NULL sentinel for it).
type UnsupportedOperationError struct {
	Msg string
}

func (e *UnsupportedOperationError) Error() string { return e.Msg }
