package wireformat

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/relicsql/valuecore/pkg/sqltype"
	"github.com/relicsql/valuecore/pkg/util"
	"github.com/relicsql/valuecore/pkg/value"
)

func roundTripParam(t *testing.T, v value.Value) value.Value {
	var buf util.BufSerialize
	assert.NoError(t, WriteParam(v, &buf))
	deserial := &util.BufDeserialize{Buf: buf.Buf}
	got, err := ReadParam(deserial)
	assert.NoError(t, err)
	return got
}

func TestParamRoundTripScalars(t *testing.T) {
	got := roundTripParam(t, value.FromI32(-123))
	assert.Equal(t, int32(-123), got.AsI32())

	got = roundTripParam(t, value.FromI64(1<<50))
	assert.Equal(t, int64(1<<50), got.AsI64())

	got = roundTripParam(t, value.FromF64(3.25))
	assert.Equal(t, 3.25, got.AsF64())

	got = roundTripParam(t, value.TrueV())
	assert.True(t, got.AsBool())

	got = roundTripParam(t, value.BorrowedString([]byte("hello")))
	assert.Equal(t, "hello", string(got.Bytes()))
}

func TestParamRoundTripNulls(t *testing.T) {
	for _, k := range []sqltype.Kind{sqltype.TinyInt, sqltype.SmallInt, sqltype.Integer, sqltype.BigInt, sqltype.Timestamp, sqltype.Double, sqltype.Decimal, sqltype.Varchar} {
		got := roundTripParam(t, value.NullOf(k))
		assert.True(t, got.IsNull(), "Kind %s should round trip NULL", k)
	}
}

func TestParamBooleanNullRejected(t *testing.T) {
	var buf util.BufSerialize
	err := WriteParam(value.NullOf(sqltype.Boolean), &buf)
	assert.Error(t, err)
}

func TestParamDecimalRoundTripPreservesScale(t *testing.T) {
	d, err := value.DecimalFromStr("98765.432100000001")
	assert.NoError(t, err)
	got := roundTripParam(t, d)
	assert.Equal(t, d.AsDecimal().String(), got.AsDecimal().String())
}

func TestParamArrayRoundTrip(t *testing.T) {
	arr := value.ArrayOf(3, sqltype.Integer)
	assert.NoError(t, arr.SetArrayElements([]value.Value{
		value.FromI32(1), value.NullOf(sqltype.Integer), value.FromI32(3),
	}))
	got := roundTripParam(t, arr)
	assert.Equal(t, sqltype.Integer, got.ArrayElemKind())
	elems := got.ArrayElements()
	assert.Len(t, elems, 3)
	assert.Equal(t, int32(1), elems[0].AsI32())
	assert.True(t, elems[1].IsNull())
	assert.Equal(t, int32(3), elems[2].AsI32())
}

func TestParamNestedArrayRoundTrip(t *testing.T) {
	inner := value.ArrayOf(2, sqltype.Double)
	assert.NoError(t, inner.SetArrayElements([]value.Value{value.FromF64(1.5), value.FromF64(2.5)}))
	outer := value.ArrayOf(1, sqltype.Array)
	assert.NoError(t, outer.SetArrayElements([]value.Value{inner}))

	got := roundTripParam(t, outer)
	elems := got.ArrayElements()
	assert.Len(t, elems, 1)
	assert.Equal(t, sqltype.Double, elems[0].ArrayElemKind())
	assert.Equal(t, 1.5, elems[0].ArrayElements()[0].AsF64())
}

func TestExportRoundTripWithBitmap(t *testing.T) {
	values := []value.Value{value.FromI32(10), value.NullOf(sqltype.Integer), value.FromI32(30)}
	var bm util.Bitmap
	bm.Init(len(values))
	bm.SetInvalid(1, len(values))

	var buf util.BufSerialize
	for i, v := range values {
		if bm.RowIsValid(uint64(i)) {
			assert.NoError(t, WriteExport(v, &buf))
		}
	}

	deserial := &util.BufDeserialize{Buf: buf.Buf}
	for i := range values {
		got, err := ReadExport(sqltype.Integer, bm.RowIsValid(uint64(i)), deserial)
		assert.NoError(t, err)
		if i == 1 {
			assert.True(t, got.IsNull())
		} else {
			assert.Equal(t, values[i].AsI32(), got.AsI32())
		}
	}
}

func TestExportDecimalRoundTrip(t *testing.T) {
	d, err := value.DecimalFromStr("-42.000000000007")
	assert.NoError(t, err)

	var buf util.BufSerialize
	assert.NoError(t, WriteExport(d, &buf))

	deserial := &util.BufDeserialize{Buf: buf.Buf}
	got, err := ReadExport(sqltype.Decimal, true, deserial)
	assert.NoError(t, err)
	assert.Equal(t, d.AsDecimal().String(), got.AsDecimal().String())
}

func TestExportVarcharRoundTrip(t *testing.T) {
	v := value.BorrowedString([]byte("export me"))
	var buf util.BufSerialize
	assert.NoError(t, WriteExport(v, &buf))

	deserial := &util.BufDeserialize{Buf: buf.Buf}
	got, err := ReadExport(sqltype.Varchar, true, deserial)
	assert.NoError(t, err)
	assert.Equal(t, "export me", string(got.Bytes()))
}

func TestExportArrayRoundTrip(t *testing.T) {
	arr := value.ArrayOf(2, sqltype.BigInt)
	assert.NoError(t, arr.SetArrayElements([]value.Value{value.FromI64(7), value.FromI64(8)}))

	var buf util.BufSerialize
	assert.NoError(t, WriteExport(arr, &buf))

	deserial := &util.BufDeserialize{Buf: buf.Buf}
	got, err := ReadExport(sqltype.Array, true, deserial)
	assert.NoError(t, err)
	elems := got.ArrayElements()
	assert.Len(t, elems, 2)
	assert.Equal(t, int64(7), elems[0].AsI64())
	assert.Equal(t, int64(8), elems[1].AsI64())
}
