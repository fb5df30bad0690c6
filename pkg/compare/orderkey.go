package compare

import (
	"encoding/binary"
	"math"

	"github.com/relicsql/valuecore/pkg/sqltype"
	"github.com/relicsql/valuecore/pkg/value"
)

const signBit64 = uint64(1) << 63

// OrderKey renders v as a byte string for callers (this package's tests)
// that want to hand values to a byte-ordered container instead of
// calling Compare as a less-function directly. NULL's key sorts before
// every other key, and for two scalar values of the same Kind the key
// order matches Compare, except that -0.0 and +0.0 get distinct keys.
// Keys of different Kinds are not ordered by Compare's cross-kind
// promotion (an Integer 5 and a Double 2.5 use unrelated encodings), and
// Array keys are the text of String().
func OrderKey(v value.Value) []byte {
	if v.IsNull() {
		return []byte{0x00}
	}
	switch v.Kind() {
	case sqltype.Boolean:
		if v.AsBool() {
			return []byte{0x02, 0x01}
		}
		return []byte{0x02, 0x00}
	case sqltype.TinyInt, sqltype.SmallInt, sqltype.Integer, sqltype.BigInt, sqltype.Timestamp, sqltype.Address:
		buf := make([]byte, 9)
		buf[0] = 0x02
		binary.BigEndian.PutUint64(buf[1:], uint64(v.AsI64())^signBit64)
		return buf
	case sqltype.Double:
		buf := make([]byte, 9)
		buf[0] = 0x02
		copy(buf[1:], orderKeyFloatBits(v.AsF64()))
		return buf
	case sqltype.Decimal:
		d := v.AsDecimal()
		buf := make([]byte, 17)
		buf[0] = 0x02
		binary.BigEndian.PutUint64(buf[1:9], uint64(d.Scaled.Upper)^signBit64)
		binary.BigEndian.PutUint64(buf[9:], d.Scaled.Lower)
		return buf
	case sqltype.Varchar, sqltype.Varbinary:
		return append([]byte{0x02}, v.Bytes()...)
	default:
		return append([]byte{0x02}, []byte(v.String())...)
	}
}

// orderKeyFloatBits maps a float64 to an order-preserving 8-byte key,
// reserving the all-zero key for NaN so it sorts below every non-NaN
// value, matching compareFloat's NaN-least rule.
func orderKeyFloatBits(f float64) []byte {
	buf := make([]byte, 8)
	if math.IsNaN(f) {
		return buf
	}
	bits := math.Float64bits(f)
	if bits&signBit64 != 0 {
		bits = ^bits
	} else {
		bits |= signBit64
	}
	binary.BigEndian.PutUint64(buf, bits)
	return buf
}
