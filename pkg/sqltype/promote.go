package sqltype

// PromoteNumeric resolves the result Kind of a binary arithmetic or
// comparison operation between two operand Kinds:
//
//	1. Decimal wins over any other numeric/timestamp partner.
//	2. Otherwise Double wins over any integer-family partner.
//	3. Otherwise (both integer-family, including Timestamp) -> BigInt.
//
// Any other combination (an object kind, Boolean, Array, ... on either
// side) is not a numeric promotion and yields Invalid; callers report
// that as a type-mismatch error.
func PromoteNumeric(a, b Kind) Kind {
	if a == Decimal || b == Decimal {
		if numericOrTimestamp(a) && numericOrTimestamp(b) {
			return Decimal
		}
		return Invalid
	}
	if a == Double || b == Double {
		if numericOrTimestamp(a) && numericOrTimestamp(b) {
			return Double
		}
		return Invalid
	}
	if a.IsIntegerFamily() && b.IsIntegerFamily() {
		return BigInt
	}
	return Invalid
}

func numericOrTimestamp(k Kind) bool {
	return k.IsNumeric() || k == Timestamp
}

// PromoteComparison resolves the Kind each side of a comparison is
// converted to before the actual compare. It reuses the exact same
// lattice as PromoteNumeric: cross-kind comparison promotes exactly once
// to the wider of the two numeric domains.
func PromoteComparison(a, b Kind) Kind {
	return PromoteNumeric(a, b)
}
