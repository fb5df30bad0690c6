// Package wireformat implements the two byte-stream encodings values
// cross a process boundary in: the parameter (wire) format, where every
// value is self-describing (a kind byte, then the value, with NULL
// written as the Kind's sentinel or, for Varchar/Varbinary, as length
// -1), and the export format, where NULLs come from a caller-supplied
// validity bitmap instead of being encoded per value.
package wireformat

import (
	"math"

	"github.com/relicsql/valuecore/pkg/arith"
	"github.com/relicsql/valuecore/pkg/engerr"
	"github.com/relicsql/valuecore/pkg/sqltype"
	"github.com/relicsql/valuecore/pkg/util"
	"github.com/relicsql/valuecore/pkg/value"
)

// WriteParam writes v as (kind byte, value) to serial.
func WriteParam(v value.Value, serial util.Serialize) error {
	if err := util.WriteFixed(uint8(v.Kind()), serial); err != nil {
		return err
	}
	return writeValueBody(v, serial)
}

// ReadParam reads a (kind byte, value) pair from deserial.
func ReadParam(deserial util.Deserialize) (value.Value, error) {
	var kb uint8
	if err := util.ReadFixed(&kb, deserial); err != nil {
		return value.Value{}, err
	}
	return readValueBody(sqltype.Kind(kb), deserial)
}

func writeValueBody(v value.Value, serial util.Serialize) error {
	switch v.Kind() {
	case sqltype.TinyInt:
		val := int8(math.MinInt8)
		if !v.IsNull() {
			val = v.AsI8()
		}
		return util.WriteFixed(val, serial)
	case sqltype.SmallInt:
		val := int16(math.MinInt16)
		if !v.IsNull() {
			val = v.AsI16()
		}
		return util.WriteFixed(val, serial)
	case sqltype.Integer:
		val := int32(math.MinInt32)
		if !v.IsNull() {
			val = v.AsI32()
		}
		return util.WriteFixed(val, serial)
	case sqltype.BigInt:
		val := int64(math.MinInt64)
		if !v.IsNull() {
			val = v.AsI64()
		}
		return util.WriteFixed(val, serial)
	case sqltype.Timestamp:
		val := int64(math.MinInt64)
		if !v.IsNull() {
			val = v.AsTimestamp()
		}
		return util.WriteFixed(val, serial)
	case sqltype.Double:
		f := arith.Float64Null
		if !v.IsNull() {
			f = v.AsF64()
		}
		return util.WriteFixed(math.Float64bits(f), serial)
	case sqltype.Decimal:
		d := arith.DecimalNull
		if !v.IsNull() {
			d = v.AsDecimal()
		}
		limbs := d.Scaled.BigEndianLimbs()
		return serial.WriteData(limbs[:], len(limbs))
	case sqltype.Boolean:
		if v.IsNull() {
			return &engerr.UnsupportedOperationError{Msg: "wireformat: Boolean has no wire-format NULL sentinel"}
		}
		return util.WriteFixed(v.AsBool(), serial)
	case sqltype.Varchar, sqltype.Varbinary:
		if v.IsNull() {
			return util.WriteFixed(int32(-1), serial)
		}
		data := v.Bytes()
		if err := util.WriteFixed(int32(len(data)), serial); err != nil {
			return err
		}
		return serial.WriteData(data, len(data))
	case sqltype.Array:
		return writeArrayBody(v, serial)
	default:
		return &engerr.UnsupportedOperationError{Msg: "wireformat: " + v.Kind().String() + " has no wire encoding"}
	}
}

func writeArrayBody(v value.Value, serial util.Serialize) error {
	elemKind := v.ArrayElemKind()
	if err := util.WriteFixed(uint8(elemKind), serial); err != nil {
		return err
	}
	elems := v.ArrayElements()
	if err := util.WriteFixed(int16(len(elems)), serial); err != nil {
		return err
	}
	for _, e := range elems {
		if err := writeValueBody(e, serial); err != nil {
			return err
		}
	}
	return nil
}

func readValueBody(k sqltype.Kind, deserial util.Deserialize) (value.Value, error) {
	switch k {
	case sqltype.TinyInt:
		var raw int8
		if err := util.ReadFixed(&raw, deserial); err != nil {
			return value.Value{}, err
		}
		if raw == math.MinInt8 {
			return value.NullOf(k), nil
		}
		return value.FromI8(raw), nil
	case sqltype.SmallInt:
		var raw int16
		if err := util.ReadFixed(&raw, deserial); err != nil {
			return value.Value{}, err
		}
		if raw == math.MinInt16 {
			return value.NullOf(k), nil
		}
		return value.FromI16(raw), nil
	case sqltype.Integer:
		var raw int32
		if err := util.ReadFixed(&raw, deserial); err != nil {
			return value.Value{}, err
		}
		if raw == math.MinInt32 {
			return value.NullOf(k), nil
		}
		return value.FromI32(raw), nil
	case sqltype.BigInt:
		var raw int64
		if err := util.ReadFixed(&raw, deserial); err != nil {
			return value.Value{}, err
		}
		if raw == math.MinInt64 {
			return value.NullOf(k), nil
		}
		return value.FromI64(raw), nil
	case sqltype.Timestamp:
		var raw int64
		if err := util.ReadFixed(&raw, deserial); err != nil {
			return value.Value{}, err
		}
		if raw == math.MinInt64 {
			return value.NullOf(k), nil
		}
		return value.FromTimestamp(raw), nil
	case sqltype.Double:
		var bits uint64
		if err := util.ReadFixed(&bits, deserial); err != nil {
			return value.Value{}, err
		}
		f := math.Float64frombits(bits)
		if f <= -math.MaxFloat64 {
			return value.NullOf(k), nil
		}
		return value.FromF64(f), nil
	case sqltype.Decimal:
		var limbs [16]byte
		if err := deserial.ReadData(limbs[:], 16); err != nil {
			return value.Value{}, err
		}
		d := arith.Decimal{Scaled: arith.Int128FromBigEndianLimbs(limbs[:])}
		if d.IsNull() {
			return value.NullOf(k), nil
		}
		return value.FromDecimal(d), nil
	case sqltype.Boolean:
		var b bool
		if err := util.ReadFixed(&b, deserial); err != nil {
			return value.Value{}, err
		}
		return value.FromBool(b), nil
	case sqltype.Varchar, sqltype.Varbinary:
		var n int32
		if err := util.ReadFixed(&n, deserial); err != nil {
			return value.Value{}, err
		}
		if n < 0 {
			return value.NullOf(k), nil
		}
		buf := make([]byte, n)
		if n > 0 {
			if err := deserial.ReadData(buf, int(n)); err != nil {
				return value.Value{}, err
			}
		}
		if k == sqltype.Varchar {
			return value.BorrowedString(buf), nil
		}
		return value.BorrowedBinary(buf), nil
	case sqltype.Array:
		return readArrayBody(deserial)
	default:
		return value.Value{}, &engerr.UnsupportedOperationError{Msg: "wireformat: " + k.String() + " has no wire encoding"}
	}
}

func readArrayBody(deserial util.Deserialize) (value.Value, error) {
	var ekb uint8
	if err := util.ReadFixed(&ekb, deserial); err != nil {
		return value.Value{}, err
	}
	elemKind := sqltype.Kind(ekb)
	var count int16
	if err := util.ReadFixed(&count, deserial); err != nil {
		return value.Value{}, err
	}
	arr := value.ArrayOf(int(count), elemKind)
	elems := make([]value.Value, count)
	for i := range elems {
		e, err := readValueBody(elemKind, deserial)
		if err != nil {
			return value.Value{}, err
		}
		elems[i] = e
	}
	if err := arr.SetArrayElements(elems); err != nil {
		return value.Value{}, err
	}
	return arr, nil
}

// WriteExport writes v to serial in the export format: no NULL tag is
// written (the caller's bitmap carries that), and Decimal is prefixed
// by (scale byte, byte-count byte) ahead of its two network-order
// limbs. Calling this for a logically-NULL row (per the caller's own
// bitmap) is the caller's mistake to avoid, not this function's to
// detect -- the whole point of the bitmap is that the engine writes
// nothing for NULL.
func WriteExport(v value.Value, serial util.Serialize) error {
	switch v.Kind() {
	case sqltype.TinyInt:
		return util.WriteFixed(v.AsI8(), serial)
	case sqltype.SmallInt:
		return util.WriteFixed(v.AsI16(), serial)
	case sqltype.Integer:
		return util.WriteFixed(v.AsI32(), serial)
	case sqltype.BigInt:
		return util.WriteFixed(v.AsI64(), serial)
	case sqltype.Timestamp:
		return util.WriteFixed(v.AsTimestamp(), serial)
	case sqltype.Double:
		return util.WriteFixed(math.Float64bits(v.AsF64()), serial)
	case sqltype.Decimal:
		d := v.AsDecimal()
		if err := util.WriteFixed(uint8(arith.DecimalScale), serial); err != nil {
			return err
		}
		if err := util.WriteFixed(uint8(16), serial); err != nil {
			return err
		}
		limbs := d.Scaled.BigEndianLimbs()
		return serial.WriteData(limbs[:], len(limbs))
	case sqltype.Boolean:
		return util.WriteFixed(v.AsBool(), serial)
	case sqltype.Varchar, sqltype.Varbinary:
		data := v.Bytes()
		if err := util.WriteFixed(int32(len(data)), serial); err != nil {
			return err
		}
		return serial.WriteData(data, len(data))
	case sqltype.Array:
		return writeExportArray(v, serial)
	default:
		return &engerr.UnsupportedOperationError{Msg: "wireformat: " + v.Kind().String() + " has no export encoding"}
	}
}

func writeExportArray(v value.Value, serial util.Serialize) error {
	elemKind := v.ArrayElemKind()
	if err := util.WriteFixed(uint8(elemKind), serial); err != nil {
		return err
	}
	elems := v.ArrayElements()
	if err := util.WriteFixed(int16(len(elems)), serial); err != nil {
		return err
	}
	for _, e := range elems {
		if err := WriteExport(e, serial); err != nil {
			return err
		}
	}
	return nil
}

// ReadExport is WriteExport's counterpart: the caller passes k and
// whether its own bitmap says this row is valid. An invalid row
// decodes to NULL without reading any bytes.
func ReadExport(k sqltype.Kind, valid bool, deserial util.Deserialize) (value.Value, error) {
	if !valid {
		return value.NullOf(k), nil
	}
	switch k {
	case sqltype.TinyInt:
		var v int8
		err := util.ReadFixed(&v, deserial)
		return value.FromI8(v), err
	case sqltype.SmallInt:
		var v int16
		err := util.ReadFixed(&v, deserial)
		return value.FromI16(v), err
	case sqltype.Integer:
		var v int32
		err := util.ReadFixed(&v, deserial)
		return value.FromI32(v), err
	case sqltype.BigInt:
		var v int64
		err := util.ReadFixed(&v, deserial)
		return value.FromI64(v), err
	case sqltype.Timestamp:
		var v int64
		err := util.ReadFixed(&v, deserial)
		return value.FromTimestamp(v), err
	case sqltype.Double:
		var bits uint64
		if err := util.ReadFixed(&bits, deserial); err != nil {
			return value.Value{}, err
		}
		return value.FromF64(math.Float64frombits(bits)), nil
	case sqltype.Decimal:
		var scale, byteCount uint8
		if err := util.ReadFixed(&scale, deserial); err != nil {
			return value.Value{}, err
		}
		if err := util.ReadFixed(&byteCount, deserial); err != nil {
			return value.Value{}, err
		}
		var limbs [16]byte
		if err := deserial.ReadData(limbs[:], 16); err != nil {
			return value.Value{}, err
		}
		return value.FromDecimal(arith.Decimal{Scaled: arith.Int128FromBigEndianLimbs(limbs[:])}), nil
	case sqltype.Boolean:
		var v bool
		err := util.ReadFixed(&v, deserial)
		return value.FromBool(v), err
	case sqltype.Varchar, sqltype.Varbinary:
		var n int32
		if err := util.ReadFixed(&n, deserial); err != nil {
			return value.Value{}, err
		}
		buf := make([]byte, n)
		if n > 0 {
			if err := deserial.ReadData(buf, int(n)); err != nil {
				return value.Value{}, err
			}
		}
		if k == sqltype.Varchar {
			return value.BorrowedString(buf), nil
		}
		return value.BorrowedBinary(buf), nil
	case sqltype.Array:
		return readExportArray(deserial)
	default:
		return value.Value{}, &engerr.UnsupportedOperationError{Msg: "wireformat: " + k.String() + " has no export encoding"}
	}
}

func readExportArray(deserial util.Deserialize) (value.Value, error) {
	var ekb uint8
	if err := util.ReadFixed(&ekb, deserial); err != nil {
		return value.Value{}, err
	}
	elemKind := sqltype.Kind(ekb)
	var count int16
	if err := util.ReadFixed(&count, deserial); err != nil {
		return value.Value{}, err
	}
	arr := value.ArrayOf(int(count), elemKind)
	elems := make([]value.Value, count)
	for i := range elems {
		e, err := ReadExport(elemKind, true, deserial)
		if err != nil {
			return value.Value{}, err
		}
		elems[i] = e
	}
	if err := arr.SetArrayElements(elems); err != nil {
		return value.Value{}, err
	}
	return arr, nil
}
