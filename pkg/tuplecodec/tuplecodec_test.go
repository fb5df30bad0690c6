package tuplecodec

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/relicsql/valuecore/pkg/engerr"
	"github.com/relicsql/valuecore/pkg/sqltype"
	"github.com/relicsql/valuecore/pkg/value"
	"github.com/relicsql/valuecore/pkg/varlen"
)

func roundTripFixed(t *testing.T, k sqltype.Kind, v value.Value) value.Value {
	slot := make([]byte, k.FixedSize())
	assert.NoError(t, SerializeToTupleStorage(slot, v, false, 0, false))
	return InitFromTupleStorage(slot, k, false)
}

func TestFixedWidthRoundTrip(t *testing.T) {
	got := roundTripFixed(t, sqltype.Integer, value.FromI32(-7))
	assert.Equal(t, int32(-7), got.AsI32())

	got = roundTripFixed(t, sqltype.BigInt, value.FromI64(1<<40))
	assert.Equal(t, int64(1<<40), got.AsI64())

	got = roundTripFixed(t, sqltype.Boolean, value.TrueV())
	assert.True(t, got.AsBool())
}

func TestFixedWidthNullSentinelRoundTrip(t *testing.T) {
	for _, k := range []sqltype.Kind{sqltype.TinyInt, sqltype.SmallInt, sqltype.Integer, sqltype.BigInt, sqltype.Timestamp, sqltype.Double, sqltype.Decimal} {
		got := roundTripFixed(t, k, value.NullOf(k))
		assert.True(t, got.IsNull(), "Kind %s should round trip NULL", k)
	}
}

func TestDecimalRoundTripPreservesScale(t *testing.T) {
	d, err := value.DecimalFromStr("1234.567890123456")
	assert.NoError(t, err)
	got := roundTripFixed(t, sqltype.Decimal, d)
	assert.Equal(t, d.AsDecimal().String(), got.AsDecimal().String())
}

func TestBooleanHasNoFixedSentinel(t *testing.T) {
	slot := make([]byte, 1)
	err := SerializeToTupleStorage(slot, value.NullOf(sqltype.Boolean), false, 0, false)
	assert.Error(t, err)
}

func TestInlinedObjectRoundTrip(t *testing.T) {
	maxLen := 10
	slot := make([]byte, SlotWidth(maxLen))
	v := value.BorrowedString([]byte("hello"))
	assert.NoError(t, SerializeToTupleStorage(slot, v, true, maxLen, true))
	got := InitFromTupleStorage(slot, sqltype.Varchar, true)
	assert.False(t, got.IsNull())
	assert.Equal(t, "hello", string(got.Bytes()))
	assert.True(t, got.SourceInlined())
}

func TestInlinedObjectNullRoundTrip(t *testing.T) {
	maxLen := 10
	slot := make([]byte, SlotWidth(maxLen))
	assert.NoError(t, SerializeToTupleStorage(slot, value.NullOf(sqltype.Varchar), true, maxLen, true))
	got := InitFromTupleStorage(slot, sqltype.Varchar, true)
	assert.True(t, got.IsNull())
}

func TestInlinedObjectZeroPadsTail(t *testing.T) {
	maxLen := 10
	slot := make([]byte, SlotWidth(maxLen))
	for i := range slot {
		slot[i] = 0xFF
	}
	v := value.BorrowedString([]byte("ab"))
	assert.NoError(t, SerializeToTupleStorage(slot, v, true, maxLen, true))
	for i := 3; i < len(slot); i++ {
		assert.Equal(t, byte(0), slot[i], "byte %d should be zero-padded", i)
	}
}

func TestInlinedObjectTooLargeByByteCount(t *testing.T) {
	slot := make([]byte, SlotWidth(4))
	err := SerializeToTupleStorage(slot, value.BorrowedString([]byte("hello")), true, 4, true)
	assert.Error(t, err)
	var tooLarge *engerr.ObjectTooLargeError
	assert.ErrorAs(t, err, &tooLarge)
}

func TestInlinedObjectSizeCheckedByCodepointsNotBytes(t *testing.T) {
	// "héllo" is 5 code points but 6 bytes (é is 2 bytes in UTF-8).
	s := "héllo"
	slot := make([]byte, SlotWidth(8))
	err := SerializeToTupleStorage(slot, value.BorrowedString([]byte(s)), true, 5, false)
	assert.NoError(t, err)
	err = SerializeToTupleStorage(slot, value.BorrowedString([]byte(s)), true, 5, true)
	assert.Error(t, err)
}

func TestHandleSlotRoundTrip(t *testing.T) {
	pool := varlen.NewSlabPool(nil)
	v := value.BorrowedBinary([]byte("payload bytes"))
	h, err := SerializeToHandleSlot(v, 100, true, pool)
	assert.NoError(t, err)
	assert.NotNil(t, h)

	got := InitFromHandleSlot(h, sqltype.Varbinary)
	assert.False(t, got.IsNull())
	assert.False(t, got.SourceInlined())
	assert.Equal(t, "payload bytes", string(got.Bytes()))
}

func TestHandleSlotNullIsNilHandle(t *testing.T) {
	h, err := SerializeToHandleSlot(value.NullOf(sqltype.Varchar), 100, true, nil)
	assert.NoError(t, err)
	assert.Nil(t, h)

	got := InitFromHandleSlot(nil, sqltype.Varchar)
	assert.True(t, got.IsNull())
}

func TestHandleSlotTooLarge(t *testing.T) {
	_, err := SerializeToHandleSlot(value.BorrowedBinary(make([]byte, 20)), 8, true, nil)
	assert.Error(t, err)
	var tooLarge *engerr.ObjectTooLargeError
	assert.ErrorAs(t, err, &tooLarge)
}
