// Package valuehash implements MurmurHash3_x64_128 over Value payloads,
// with a NULL sentinel and an incremental combiner for composite keys.
package valuehash

import (
	"encoding/binary"
	"math"

	"github.com/relicsql/valuecore/pkg/sqltype"
	"github.com/relicsql/valuecore/pkg/value"
)

// NullHash is the sentinel combined-hash value for a NULL Value, chosen
// the way the rest of this package's finalizer mixing constants are:
// an odd 64-bit value unlikely to collide with a real data hash.
const NullHash uint64 = 0xbf58476d1ce4e5b9

const (
	c1 = 0x87c37b91114253d5
	c2 = 0x4cf5ad432745937f
)

func rotl64(x uint64, r uint) uint64 {
	return (x << r) | (x >> (64 - r))
}

func fmix64(k uint64) uint64 {
	k ^= k >> 33
	k *= 0xff51afd7ed558ccd
	k ^= k >> 33
	k *= 0xc4ceb9fe1a85ec53
	k ^= k >> 33
	return k
}

// Hash128 computes MurmurHash3_x64_128 of data with the given seed,
// returning the two 64-bit halves of the 128-bit digest.
func Hash128(data []byte, seed uint32) (h1, h2 uint64) {
	length := len(data)
	nblocks := length / 16
	h1, h2 = uint64(seed), uint64(seed)

	for i := 0; i < nblocks; i++ {
		block := data[i*16 : i*16+16]
		k1 := binary.LittleEndian.Uint64(block[0:8])
		k2 := binary.LittleEndian.Uint64(block[8:16])

		k1 *= c1
		k1 = rotl64(k1, 31)
		k1 *= c2
		h1 ^= k1

		h1 = rotl64(h1, 27)
		h1 += h2
		h1 = h1*5 + 0x52dce729

		k2 *= c2
		k2 = rotl64(k2, 33)
		k2 *= c1
		h2 ^= k2

		h2 = rotl64(h2, 31)
		h2 += h1
		h2 = h2*5 + 0x38495ab5
	}

	tail := data[nblocks*16:]
	var k1, k2 uint64
	switch len(tail) {
	case 15:
		k2 ^= uint64(tail[14]) << 48
		fallthrough
	case 14:
		k2 ^= uint64(tail[13]) << 40
		fallthrough
	case 13:
		k2 ^= uint64(tail[12]) << 32
		fallthrough
	case 12:
		k2 ^= uint64(tail[11]) << 24
		fallthrough
	case 11:
		k2 ^= uint64(tail[10]) << 16
		fallthrough
	case 10:
		k2 ^= uint64(tail[9]) << 8
		fallthrough
	case 9:
		k2 ^= uint64(tail[8])
		k2 *= c2
		k2 = rotl64(k2, 33)
		k2 *= c1
		h2 ^= k2
		fallthrough
	case 8:
		k1 ^= uint64(tail[7]) << 56
		fallthrough
	case 7:
		k1 ^= uint64(tail[6]) << 48
		fallthrough
	case 6:
		k1 ^= uint64(tail[5]) << 40
		fallthrough
	case 5:
		k1 ^= uint64(tail[4]) << 32
		fallthrough
	case 4:
		k1 ^= uint64(tail[3]) << 24
		fallthrough
	case 3:
		k1 ^= uint64(tail[2]) << 16
		fallthrough
	case 2:
		k1 ^= uint64(tail[1]) << 8
		fallthrough
	case 1:
		k1 ^= uint64(tail[0])
		k1 *= c1
		k1 = rotl64(k1, 31)
		k1 *= c2
		h1 ^= k1
	}

	h1 ^= uint64(length)
	h2 ^= uint64(length)
	h1 += h2
	h2 += h1
	h1 = fmix64(h1)
	h2 = fmix64(h2)
	h1 += h2
	h2 += h1
	return h1, h2
}

// Combine is hash_combine: it folds h into an accumulating seed for a
// composite key made of several hashed fields, one Combine call per
// field, seeded at NullHash or 0 depending on whether the caller wants
// an empty composite to be distinguishable from an all-NULL one.
func Combine(seed, h uint64) uint64 {
	seed ^= h + 0x9e3779b97f4a7c15 + (seed << 6) + (seed >> 2)
	return seed
}

// Of hashes a single Value into one 64-bit digest: the two Hash128
// halves combined with Combine so the result stays collision-resistant
// at a fraction of 128 bits' storage cost, matching how composite keys
// fold one field's hash into the next.
func Of(v value.Value) uint64 {
	if v.IsNull() {
		return NullHash
	}
	switch v.Kind() {
	case sqltype.TinyInt, sqltype.SmallInt, sqltype.Integer, sqltype.BigInt, sqltype.Timestamp, sqltype.Address:
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], uint64(v.AsI64()))
		h1, h2 := Hash128(buf[:], 0)
		return Combine(h1, h2)
	case sqltype.Boolean:
		var buf [8]byte
		if v.AsBool() {
			buf[0] = 1
		}
		h1, h2 := Hash128(buf[:], 0)
		return Combine(h1, h2)
	case sqltype.Double:
		f := v.AsF64()
		bits := math.Float64bits(f)
		if math.IsNaN(f) {
			// NaN's bit pattern is not canonical across producers;
			// hashing it is unstable, so fall back to a fixed pattern
			// any NaN maps to.
			bits = 0x7ff8000000000000
		}
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], bits)
		h1, h2 := Hash128(buf[:], 0)
		return Combine(h1, h2)
	case sqltype.Decimal:
		d := v.AsDecimal()
		limbs := d.Scaled.LittleEndianBytes()
		h1, h2 := Hash128(limbs[:], 0)
		return Combine(h1, h2)
	case sqltype.Varchar, sqltype.Varbinary:
		h1, h2 := Hash128(v.Bytes(), 0)
		return Combine(h1, h2)
	case sqltype.Array:
		seed := uint64(0)
		for _, e := range v.ArrayElements() {
			seed = Combine(seed, Of(e))
		}
		return seed
	default:
		h1, h2 := Hash128(nil, 0)
		return Combine(h1, h2)
	}
}
