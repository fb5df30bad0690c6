package sqltype

import (
	"fmt"
	"strings"
)

// Kind is the closed enumeration of scalar kinds the engine knows how to
// hold, compare, cast and hash: the four integer widths, Double, Decimal,
// Timestamp, Boolean, Varchar/Varbinary, the opaque integer Address, a
// homogeneous Array container, and the two bookkeeping kinds Null and
// Invalid.
type Kind int

const (
	Invalid Kind = iota
	Null
	TinyInt
	SmallInt
	Integer
	BigInt
	Timestamp
	Double
	Decimal
	Boolean
	Varchar
	Varbinary
	Address
	Array
)

var kindNames = map[Kind]string{
	Invalid:   "INVALID",
	Null:      "NULL",
	TinyInt:   "TINYINT",
	SmallInt:  "SMALLINT",
	Integer:   "INTEGER",
	BigInt:    "BIGINT",
	Timestamp: "TIMESTAMP",
	Double:    "DOUBLE",
	Decimal:   "DECIMAL",
	Boolean:   "BOOLEAN",
	Varchar:   "VARCHAR",
	Varbinary: "VARBINARY",
	Address:   "ADDRESS",
	Array:     "ARRAY",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	panic(fmt.Sprintf("sqltype: unhandled kind %d", int(k)))
}

// ParseKind looks up a Kind by its String() name, case-insensitively, for
// callers (cmd/valuectl's flags) that take a kind as text.
func ParseKind(name string) (Kind, error) {
	upper := strings.ToUpper(name)
	for k, s := range kindNames {
		if s == upper {
			return k, nil
		}
	}
	return Invalid, fmt.Errorf("sqltype: unknown kind %q", name)
}

// IsObject reports whether values of this Kind carry variable-length
// payload bytes (owned either by a tuple or by a Varlen handle) rather
// than being stored entirely inline in the Value's own typed fields.
func (k Kind) IsObject() bool {
	switch k {
	case Varchar, Varbinary, Array:
		return true
	default:
		return false
	}
}

// IsIntegerFamily reports whether the Kind promotes like a plain integer.
// Timestamp counts as integer-family: it promotes and arithmetics like a
// BigInt count of microseconds.
func (k Kind) IsIntegerFamily() bool {
	switch k {
	case TinyInt, SmallInt, Integer, BigInt, Timestamp, Address:
		return true
	default:
		return false
	}
}

func (k Kind) IsNumeric() bool {
	return k.IsIntegerFamily() || k == Double || k == Decimal
}

// FixedSize returns the tuple-storage byte width of a fixed-width Kind.
// Object kinds (Varchar, Varbinary, Array) have no fixed size; callers
// must go through pkg/lenprefix and pkg/tuplecodec instead.
func (k Kind) FixedSize() int {
	switch k {
	case TinyInt, Boolean:
		return 1
	case SmallInt:
		return 2
	case Integer:
		return 4
	case BigInt, Timestamp, Double, Address:
		return 8
	case Decimal:
		return 16
	case Null, Invalid:
		return 0
	default:
		panic(fmt.Sprintf("sqltype: %s has no fixed tuple size", k))
	}
}
