// Package tuplecodec (de)serializes Values to and from a row's byte
// storage. Fixed-width Kinds occupy exactly Kind.FixedSize() bytes and
// signal NULL with a sentinel value baked into those bytes; inlined
// objects carry their own length prefix and are zero-padded out to the
// column's declared max length; non-inlined objects live behind a
// Varlen handle the tuple stores instead of bytes.
package tuplecodec

import (
	"encoding/binary"
	"math"

	"github.com/relicsql/valuecore/pkg/arith"
	"github.com/relicsql/valuecore/pkg/engerr"
	"github.com/relicsql/valuecore/pkg/lenprefix"
	"github.com/relicsql/valuecore/pkg/sqltype"
	"github.com/relicsql/valuecore/pkg/value"
	"github.com/relicsql/valuecore/pkg/varlen"
)

// InitFromTupleStorage reads a Value out of a fixed-width or inlined
// object slot. For a fixed-width Kind, slot must be exactly
// k.FixedSize() bytes. For an inlined object, slot must be exactly
// lenprefix.Width(maxLen, false)+maxLen bytes, the column's full
// declared slot width.
func InitFromTupleStorage(slot []byte, k sqltype.Kind, inlined bool) value.Value {
	if k.IsObject() {
		if !inlined {
			panic("tuplecodec: non-inlined object must go through InitFromHandleSlot")
		}
		return initInlinedObject(slot, k)
	}
	return initFixed(slot, k)
}

// InitFromHandleSlot reads a Value out of a non-inlined object's tuple
// cell, which holds a *varlen.Varlen rather than inline bytes. A nil
// handle is NULL.
func InitFromHandleSlot(handle *varlen.Varlen, k sqltype.Kind) value.Value {
	if handle == nil {
		return value.NullOf(k)
	}
	return value.FromHandle(k, handle)
}

// SerializeToTupleStorage writes v into a fixed-width or inlined
// object slot, sized the same way InitFromTupleStorage expects to read
// it back. maxLen and inBytes only apply to inlined objects: maxLen is
// the column's declared maximum, and inBytes selects whether that
// maximum is measured in bytes or UTF-8 code points.
func SerializeToTupleStorage(slot []byte, v value.Value, inlined bool, maxLen int, inBytes bool) error {
	if !v.Kind().IsObject() {
		return serializeFixed(slot, v)
	}
	if !inlined {
		panic("tuplecodec: non-inlined object must go through SerializeToHandleSlot")
	}
	data := v.Bytes()
	if err := checkObjectSize(data, v.Kind(), maxLen, inBytes); err != nil {
		return err
	}
	n := copy(slot, lenprefix.Encode(nil, len(data), v.IsNull()))
	n += copy(slot[n:], data)
	for ; n < len(slot); n++ {
		slot[n] = 0
	}
	return nil
}

// SerializeToHandleSlot allocates a handle from pool (the temp pool
// when pool is nil) sized to v's bytes, copies them in, and returns
// the handle for the caller to store in its own tuple cell. A NULL v
// returns a nil handle, per "a null handle is a NULL value".
func SerializeToHandleSlot(v value.Value, maxLen int, inBytes bool, pool varlen.Pool) (*varlen.Varlen, error) {
	if v.IsNull() {
		return nil, nil
	}
	data := v.Bytes()
	if err := checkObjectSize(data, v.Kind(), maxLen, inBytes); err != nil {
		return nil, err
	}
	h := varlen.Create(len(data), pool)
	copy(h.Bytes(), data)
	return h, nil
}

// SlotWidth reports the total byte width InitFromTupleStorage and
// SerializeToTupleStorage expect for an inlined object column declared
// with the given max length.
func SlotWidth(maxLen int) int {
	return lenprefix.Width(maxLen, false) + maxLen
}

func checkObjectSize(data []byte, k sqltype.Kind, maxLen int, inBytes bool) error {
	n := len(data)
	if !inBytes {
		n = utf8CodepointCount(data)
	}
	if n > maxLen {
		return &engerr.ObjectTooLargeError{Actual: n, Max: maxLen, Kind: k}
	}
	return nil
}

// utf8CodepointCount counts bytes whose top two bits are not 10 --
// every byte that starts a code point rather than continuing one.
func utf8CodepointCount(b []byte) int {
	n := 0
	for _, c := range b {
		if c&0xC0 != 0x80 {
			n++
		}
	}
	return n
}

func initInlinedObject(slot []byte, k sqltype.Kind) value.Value {
	length, isNull, width := lenprefix.Decode(slot)
	if isNull {
		return value.NullOf(k)
	}
	data := slot[width : width+length]
	if k == sqltype.Varchar {
		return value.BorrowedString(data)
	}
	return value.BorrowedBinary(data)
}

func initFixed(slot []byte, k sqltype.Kind) value.Value {
	switch k {
	case sqltype.TinyInt:
		raw := int8(slot[0])
		if raw == math.MinInt8 {
			return value.NullOf(k)
		}
		return value.FromI8(raw)
	case sqltype.Boolean:
		return value.FromBool(slot[0] != 0)
	case sqltype.SmallInt:
		raw := int16(binary.LittleEndian.Uint16(slot))
		if raw == math.MinInt16 {
			return value.NullOf(k)
		}
		return value.FromI16(raw)
	case sqltype.Integer:
		raw := int32(binary.LittleEndian.Uint32(slot))
		if raw == math.MinInt32 {
			return value.NullOf(k)
		}
		return value.FromI32(raw)
	case sqltype.BigInt:
		raw := int64(binary.LittleEndian.Uint64(slot))
		if raw == math.MinInt64 {
			return value.NullOf(k)
		}
		return value.FromI64(raw)
	case sqltype.Timestamp:
		raw := int64(binary.LittleEndian.Uint64(slot))
		if raw == math.MinInt64 {
			return value.NullOf(k)
		}
		return value.FromTimestamp(raw)
	case sqltype.Address:
		return value.FromAddress(binary.LittleEndian.Uint64(slot))
	case sqltype.Double:
		f := math.Float64frombits(binary.LittleEndian.Uint64(slot))
		if f <= -math.MaxFloat64 {
			return value.NullOf(k)
		}
		return value.FromF64(f)
	case sqltype.Decimal:
		d := arith.Decimal{Scaled: arith.Int128FromLittleEndianBytes(slot)}
		if d.IsNull() {
			return value.NullOf(k)
		}
		return value.FromDecimal(d)
	default:
		panic("tuplecodec: " + k.String() + " is not a fixed-width kind")
	}
}

func serializeFixed(slot []byte, v value.Value) error {
	switch v.Kind() {
	case sqltype.TinyInt:
		val := int8(math.MinInt8)
		if !v.IsNull() {
			val = v.AsI8()
		}
		slot[0] = byte(val)
	case sqltype.Boolean:
		if v.IsNull() {
			return &engerr.UnsupportedOperationError{Msg: "tuplecodec: Boolean has no NULL sentinel in fixed-width storage"}
		}
		if v.AsBool() {
			slot[0] = 1
		} else {
			slot[0] = 0
		}
	case sqltype.SmallInt:
		val := int16(math.MinInt16)
		if !v.IsNull() {
			val = v.AsI16()
		}
		binary.LittleEndian.PutUint16(slot, uint16(val))
	case sqltype.Integer:
		val := int32(math.MinInt32)
		if !v.IsNull() {
			val = v.AsI32()
		}
		binary.LittleEndian.PutUint32(slot, uint32(val))
	case sqltype.BigInt:
		val := int64(math.MinInt64)
		if !v.IsNull() {
			val = v.AsI64()
		}
		binary.LittleEndian.PutUint64(slot, uint64(val))
	case sqltype.Timestamp:
		val := int64(math.MinInt64)
		if !v.IsNull() {
			val = v.AsTimestamp()
		}
		binary.LittleEndian.PutUint64(slot, uint64(val))
	case sqltype.Address:
		var val uint64
		if !v.IsNull() {
			val = v.AsAddress()
		}
		binary.LittleEndian.PutUint64(slot, val)
	case sqltype.Double:
		f := arith.Float64Null
		if !v.IsNull() {
			f = v.AsF64()
		}
		binary.LittleEndian.PutUint64(slot, math.Float64bits(f))
	case sqltype.Decimal:
		d := arith.DecimalNull
		if !v.IsNull() {
			d = v.AsDecimal()
		}
		buf := d.Scaled.LittleEndianBytes()
		copy(slot, buf[:])
	default:
		return &engerr.UnsupportedOperationError{Msg: "tuplecodec: " + v.Kind().String() + " is not a fixed-width kind"}
	}
	return nil
}
