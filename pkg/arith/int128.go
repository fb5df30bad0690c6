// Package arith implements the engine's numeric operations: overflow
// checked 64-bit integer arithmetic, NaN/Inf-guarded double arithmetic,
// and 128-bit fixed-point decimal arithmetic at scale 12.
package arith

import (
	"encoding/binary"
	"math"
	"math/big"
)

// Int128 is a signed 128-bit two's-complement integer, split the way
// hugeint.go split it: Upper holds the signed high 64 bits, Lower the
// unsigned low 64 bits, so the represented value is Upper*2^64 + Lower.
type Int128 struct {
	Upper int64
	Lower uint64
}

var (
	two64     = new(big.Int).Lsh(big.NewInt(1), 64)
	maxInt128 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 127), big.NewInt(1))
	minInt128 = new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 127))
)

// Int128Min is the sentinel Decimal null value uses for its scaled
// integer: the most negative representable Int128.
var Int128Min = Int128{Upper: math.MinInt64, Lower: 0}

func FromInt64(v int64) Int128 {
	if v < 0 {
		return Int128{Upper: -1, Lower: uint64(v)}
	}
	return Int128{Upper: 0, Lower: uint64(v)}
}

// BigInt widens h into an arbitrary-precision integer for the 256-bit
// intermediate math decimal multiply/divide need.
func (h Int128) BigInt() *big.Int {
	r := new(big.Int).Lsh(big.NewInt(h.Upper), 64)
	r.Add(r, new(big.Int).SetUint64(h.Lower))
	return r
}

// FromBigInt narrows b into an Int128, reporting false if b does not fit
// in 128 bits signed.
func FromBigInt(b *big.Int) (Int128, bool) {
	if b.Cmp(minInt128) < 0 || b.Cmp(maxInt128) > 0 {
		return Int128{}, false
	}
	q, m := new(big.Int), new(big.Int)
	q.DivMod(b, two64, m)
	return Int128{Upper: q.Int64(), Lower: m.Uint64()}, true
}

func (h Int128) String() string {
	return h.BigInt().String()
}

func (h Int128) IsZero() bool {
	return h.Upper == 0 && h.Lower == 0
}

func (h Int128) Sign() int {
	if h.Upper < 0 {
		return -1
	}
	if h.Upper == 0 && h.Lower == 0 {
		return 0
	}
	return 1
}

func (h Int128) Equal(o Int128) bool {
	return h.Upper == o.Upper && h.Lower == o.Lower
}

func (h Int128) Cmp(o Int128) int {
	if h.Upper != o.Upper {
		if h.Upper < o.Upper {
			return -1
		}
		return 1
	}
	if h.Lower != o.Lower {
		if h.Lower < o.Lower {
			return -1
		}
		return 1
	}
	return 0
}

// Neg negates h, panicking on the one value (Int128Min) whose negation
// does not fit in 128 bits.
func (h Int128) Neg() Int128 {
	if h == Int128Min {
		panic("arith: Int128 negate overflow")
	}
	if h.Lower == 0 {
		return Int128{Upper: -h.Upper, Lower: 0}
	}
	return Int128{Upper: ^h.Upper, Lower: ^h.Lower + 1}
}

// Add returns lhs+rhs and whether it fit in 128 bits, following the same
// carry-then-signed-overflow-check shape as hugeint.go's AddInplace. A
// sum equal to Int128Min (the Decimal NULL sentinel) also reports false.
func (lhs Int128) Add(rhs Int128) (Int128, bool) {
	lower := lhs.Lower + rhs.Lower
	carry := int64(0)
	if lower < lhs.Lower {
		carry = 1
	}
	var upper int64
	if rhs.Upper >= 0 {
		if lhs.Upper > math.MaxInt64-rhs.Upper-carry {
			return Int128{}, false
		}
		upper = lhs.Upper + carry + rhs.Upper
	} else {
		if lhs.Upper < math.MinInt64-rhs.Upper-carry {
			return Int128{}, false
		}
		upper = lhs.Upper + carry + rhs.Upper
	}
	r := Int128{Upper: upper, Lower: lower}
	if r == Int128Min {
		return Int128{}, false
	}
	return r, true
}

func (lhs Int128) Sub(rhs Int128) (Int128, bool) {
	if rhs == Int128Min {
		return Int128{}, false
	}
	return lhs.Add(rhs.Neg())
}

// Mul and QuoRem stage through math/big: hugeint.go left these as stubs,
// and Decimal's own multiply/divide already require a 256-bit
// intermediate, so there is no native 128-bit path worth hand-rolling
// here too.
func (lhs Int128) Mul(rhs Int128) (Int128, bool) {
	return FromBigInt(new(big.Int).Mul(lhs.BigInt(), rhs.BigInt()))
}

func (lhs Int128) QuoRem(rhs Int128) (q, r Int128, ok bool) {
	if rhs.IsZero() {
		return Int128{}, Int128{}, false
	}
	qq := new(big.Int).Quo(lhs.BigInt(), rhs.BigInt())
	rr := new(big.Int).Rem(lhs.BigInt(), rhs.BigInt())
	q, ok1 := FromBigInt(qq)
	r, ok2 := FromBigInt(rr)
	return q, r, ok1 && ok2
}

// LittleEndianBytes renders h as 16 bytes, lower limb first and each
// limb little-endian -- the layout a fixed-width Decimal tuple slot
// uses.
func (h Int128) LittleEndianBytes() [16]byte {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[0:8], h.Lower)
	binary.LittleEndian.PutUint64(buf[8:16], uint64(h.Upper))
	return buf
}

// Int128FromLittleEndianBytes reads the layout LittleEndianBytes
// writes back out of b[:16].
func Int128FromLittleEndianBytes(b []byte) Int128 {
	return Int128{
		Lower: binary.LittleEndian.Uint64(b[0:8]),
		Upper: int64(binary.LittleEndian.Uint64(b[8:16])),
	}
}

// BigEndianLimbs renders h as 16 bytes in network byte order with the
// limb order reversed (high limb first), the layout the export wire
// format's Decimal cells use.
func (h Int128) BigEndianLimbs() [16]byte {
	var buf [16]byte
	binary.BigEndian.PutUint64(buf[0:8], uint64(h.Upper))
	binary.BigEndian.PutUint64(buf[8:16], h.Lower)
	return buf
}

// Int128FromBigEndianLimbs reads the layout BigEndianLimbs writes back
// out of b[:16].
func Int128FromBigEndianLimbs(b []byte) Int128 {
	return Int128{
		Upper: int64(binary.BigEndian.Uint64(b[0:8])),
		Lower: binary.BigEndian.Uint64(b[8:16]),
	}
}
