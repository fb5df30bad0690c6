// Package value implements the engine's uniform scalar container: one
// Go type that holds every Kind the engine knows about, tracking whether
// its variable-length payload (if any) is borrowed from a tuple or
// shares ownership of a pool handle.
package value

import (
	"fmt"
	"math"

	clone "github.com/huandu/go-clone"
	"github.com/xlab/treeprint"

	"github.com/relicsql/valuecore/pkg/arith"
	"github.com/relicsql/valuecore/pkg/engerr"
	"github.com/relicsql/valuecore/pkg/sqltype"
	"github.com/relicsql/valuecore/pkg/varlen"
)

// Value is the engine's scalar container. Its fixed-width payload is one
// of i64/f64/dec depending on Kind; its variable-length payload is
// either objBytes (borrowed from a tuple, sourceInlined true) or handle
// (shared ownership of a pool allocation, sourceInlined false) for
// Varchar/Varbinary, or arr for Array.
type Value struct {
	kind          sqltype.Kind
	isNull        bool
	sourceInlined bool

	i64 int64
	f64 float64
	dec arith.Decimal

	objBytes []byte
	handle   *varlen.Varlen
	objLen   int32
	lenOfLen uint8

	arr *arrayPayload
}

type arrayPayload struct {
	elemKind sqltype.Kind
	elems    []Value
}

func lengthOfLength(n int) uint8 {
	if n <= 63 {
		return 1
	}
	return 4
}

// --- construction ---

func Null() Value {
	return Value{kind: sqltype.Null, isNull: true}
}

func NullOf(k sqltype.Kind) Value {
	return Value{kind: k, isNull: true}
}

func TrueV() Value  { return Value{kind: sqltype.Boolean, i64: 1} }
func FalseV() Value { return Value{kind: sqltype.Boolean, i64: 0} }

func FromBool(b bool) Value {
	if b {
		return TrueV()
	}
	return FalseV()
}

func FromI8(v int8) Value  { return Value{kind: sqltype.TinyInt, i64: int64(v)} }
func FromI16(v int16) Value { return Value{kind: sqltype.SmallInt, i64: int64(v)} }
func FromI32(v int32) Value { return Value{kind: sqltype.Integer, i64: int64(v)} }
func FromI64(v int64) Value { return Value{kind: sqltype.BigInt, i64: v} }
func FromF64(v float64) Value { return Value{kind: sqltype.Double, f64: v} }
func FromTimestamp(v int64) Value { return Value{kind: sqltype.Timestamp, i64: v} }
func FromAddress(v uint64) Value  { return Value{kind: sqltype.Address, i64: int64(v)} }

func FromDecimal(d arith.Decimal) Value {
	if d.IsNull() {
		return NullOf(sqltype.Decimal)
	}
	return Value{kind: sqltype.Decimal, dec: d}
}

func DecimalFromStr(s string) (Value, error) {
	d, err := arith.FromString(s)
	if err != nil {
		return Value{}, err
	}
	return FromDecimal(d), nil
}

// fromBytesObject builds an owning (non-inlined) Varchar/Varbinary Value
// whose bytes live in pool, writing a fresh handle sized to hold data.
func fromBytesObject(k sqltype.Kind, data []byte, pool varlen.Pool) Value {
	h := varlen.Create(len(data), pool)
	copy(h.Bytes(), data)
	return Value{
		kind:     k,
		handle:   h,
		objLen:   int32(len(data)),
		lenOfLen: lengthOfLength(len(data)),
	}
}

// TempString builds a Varchar Value whose bytes are copied into the
// process-wide temp pool. It is invalidated by the next TempPool reset.
func TempString(data []byte) Value {
	return fromBytesObject(sqltype.Varchar, data, varlen.TempPool)
}

func TempBinary(data []byte) Value {
	return fromBytesObject(sqltype.Varbinary, data, varlen.TempPool)
}

// BorrowedString builds a Varchar Value that borrows bytes owned by a
// tuple; it must not outlive that tuple and must never be freed.
func BorrowedString(data []byte) Value {
	return Value{
		kind:          sqltype.Varchar,
		sourceInlined: true,
		objBytes:      data,
		objLen:        int32(len(data)),
		lenOfLen:      lengthOfLength(len(data)),
	}
}

func BorrowedBinary(data []byte) Value {
	return Value{
		kind:          sqltype.Varbinary,
		sourceInlined: true,
		objBytes:      data,
		objLen:        int32(len(data)),
		lenOfLen:      lengthOfLength(len(data)),
	}
}

// FromHandle wraps an already-allocated Varlen handle as a non-inlined
// Varchar/Varbinary Value without copying its bytes. A nil handle is
// NULL. The handle's own length becomes the Value's cached object
// length -- unlike the tuple-storage model this mirrors, a Go slice
// already carries its length, so there is no separate prefix to parse
// out of the handle's payload.
func FromHandle(k sqltype.Kind, h *varlen.Varlen) Value {
	if h == nil {
		return NullOf(k)
	}
	return Value{kind: k, handle: h, objLen: int32(h.Len()), lenOfLen: lengthOfLength(h.Len())}
}

// ArrayOf allocates a fixed-length, homogeneously-typed array of NULLs of
// elemKind; SetArrayElements fills it in afterward.
func ArrayOf(length int, elemKind sqltype.Kind) Value {
	elems := make([]Value, length)
	for i := range elems {
		elems[i] = NullOf(elemKind)
	}
	return Value{
		kind: sqltype.Array,
		arr:  &arrayPayload{elemKind: elemKind, elems: elems},
	}
}

// --- inspection ---

func (v Value) Kind() sqltype.Kind { return v.kind }
func (v Value) IsNull() bool       { return v.isNull }

func (v Value) IsNaN() bool {
	return !v.isNull && v.kind == sqltype.Double && math.IsNaN(v.f64)
}

func (v Value) IsTrue() bool {
	return v.kind == sqltype.Boolean && !v.isNull && v.i64 != 0
}

func (v Value) IsFalse() bool {
	return v.kind == sqltype.Boolean && !v.isNull && v.i64 == 0
}

func (v Value) IsZero() bool {
	if v.isNull {
		return false
	}
	switch v.kind {
	case sqltype.Double:
		return v.f64 == 0
	case sqltype.Decimal:
		return v.dec.Scaled.IsZero()
	default:
		if v.kind.IsIntegerFamily() {
			return v.i64 == 0
		}
		return false
	}
}

// --- mutation ---

func (v *Value) SetNull() {
	v.isNull = true
}

// SetArrayElements fills an Array Value's fixed-length slots. The length
// was fixed at ArrayOf time; callers must supply exactly that many
// values, all of the array's element Kind or NULL.
func (v *Value) SetArrayElements(values []Value) error {
	if v.kind != sqltype.Array || v.arr == nil {
		return &engerr.UnsupportedOperationError{Msg: "SetArrayElements on a non-Array value"}
	}
	if len(values) != len(v.arr.elems) {
		return &engerr.UnsupportedOperationError{
			Msg: fmt.Sprintf("array length fixed at %d elements, got %d", len(v.arr.elems), len(values)),
		}
	}
	for _, e := range values {
		if !e.isNull && e.kind != v.arr.elemKind {
			return &engerr.TypeMismatchError{From: e.kind, To: v.arr.elemKind}
		}
	}
	copy(v.arr.elems, values)
	return nil
}

func (v Value) ArrayElements() []Value {
	if v.arr == nil {
		return nil
	}
	return v.arr.elems
}

func (v Value) ArrayElemKind() sqltype.Kind {
	if v.arr == nil {
		return sqltype.Invalid
	}
	return v.arr.elemKind
}

// --- lifecycle ---

// Clone deep-copies an Array Value's element slice so the copy no longer
// aliases the original's backing slice; every other Kind is already
// copy-safe by value (a shared Varlen handle is fine to alias, that is
// the point of shared ownership).
func (v Value) Clone() Value {
	if v.kind == sqltype.Array && v.arr != nil {
		v.arr = clone.Clone(v.arr).(*arrayPayload)
	}
	return v
}

// Free releases a non-inlined object's pool handle. It is idempotent and
// a no-op for inlined, fixed-width, or already-freed values.
func (v *Value) Free() {
	if v.sourceInlined || v.handle == nil {
		return
	}
	varlen.Destroy(v.handle)
	v.handle = nil
}

// --- accessors (typed getters return the NULL sentinel when v.IsNull()) ---

func (v Value) AsI8() int8 {
	if v.isNull {
		return math.MinInt8
	}
	return int8(v.i64)
}

func (v Value) AsI16() int16 {
	if v.isNull {
		return math.MinInt16
	}
	return int16(v.i64)
}

func (v Value) AsI32() int32 {
	if v.isNull {
		return math.MinInt32
	}
	return int32(v.i64)
}

func (v Value) AsI64() int64 {
	if v.isNull {
		return arith.Int64Null
	}
	return v.i64
}

func (v Value) AsTimestamp() int64 { return v.AsI64() }

func (v Value) AsAddress() uint64 {
	if v.isNull {
		return 0
	}
	return uint64(v.i64)
}

func (v Value) AsF64() float64 {
	if v.isNull {
		return arith.Float64Null
	}
	return v.f64
}

func (v Value) AsBool() bool {
	return !v.isNull && v.i64 != 0
}

func (v Value) AsDecimal() arith.Decimal {
	if v.isNull {
		return arith.DecimalNull
	}
	return v.dec
}

// Bytes returns the object's payload bytes (not including the length
// prefix), or nil for NULL or a non-object Kind.
func (v Value) Bytes() []byte {
	if v.isNull {
		return nil
	}
	switch v.kind {
	case sqltype.Varchar, sqltype.Varbinary:
		if v.sourceInlined {
			return v.objBytes
		}
		if v.handle == nil {
			return nil
		}
		return v.handle.Bytes()
	default:
		return nil
	}
}

func (v Value) Len() int {
	if v.isNull {
		return 0
	}
	return int(v.objLen)
}

func (v Value) LengthOfLength() uint8 { return v.lenOfLen }

func (v Value) SourceInlined() bool { return v.sourceInlined }

func (v Value) String() string {
	if v.isNull {
		return "NULL"
	}
	switch v.kind {
	case sqltype.TinyInt, sqltype.SmallInt, sqltype.Integer, sqltype.BigInt, sqltype.Timestamp, sqltype.Address:
		return fmt.Sprintf("%d", v.i64)
	case sqltype.Boolean:
		return fmt.Sprintf("%v", v.i64 != 0)
	case sqltype.Double:
		return fmt.Sprintf("%v", v.f64)
	case sqltype.Decimal:
		return v.dec.String()
	case sqltype.Varchar, sqltype.Varbinary:
		return string(v.Bytes())
	case sqltype.Array:
		return v.Tree()
	default:
		return v.kind.String()
	}
}

// Tree renders an Array Value (recursively) as an indented debug tree;
// for any other Kind it is just the one-line String().
func (v Value) Tree() string {
	t := treeprint.New()
	v.buildTree(t)
	return t.String()
}

func (v Value) buildTree(t treeprint.Tree) {
	if v.kind != sqltype.Array || v.arr == nil {
		t.SetValue(v.scalarString())
		return
	}
	t.SetValue(fmt.Sprintf("ARRAY[%d] of %s", len(v.arr.elems), v.arr.elemKind))
	for i, e := range v.arr.elems {
		branch := t.AddBranch(fmt.Sprintf("[%d]", i))
		e.buildTree(branch)
	}
}

func (v Value) scalarString() string {
	if v.isNull {
		return "NULL"
	}
	switch v.kind {
	case sqltype.TinyInt, sqltype.SmallInt, sqltype.Integer, sqltype.BigInt, sqltype.Timestamp, sqltype.Address:
		return fmt.Sprintf("%d", v.i64)
	case sqltype.Boolean:
		return fmt.Sprintf("%v", v.i64 != 0)
	case sqltype.Double:
		return fmt.Sprintf("%v", v.f64)
	case sqltype.Decimal:
		return v.dec.String()
	case sqltype.Varchar, sqltype.Varbinary:
		return string(v.Bytes())
	default:
		return v.kind.String()
	}
}
