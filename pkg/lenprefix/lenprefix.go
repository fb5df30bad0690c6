// Package lenprefix implements the compact length prefix that precedes
// every variable-length object stored inline in a tuple or in a Varlen
// payload: one byte for short objects, four for long ones, with a NULL
// bit and a continuation bit folded into the high bits of the first
// byte.
package lenprefix

import "encoding/binary"

const (
	nullBit         = 0x40
	continuationBit = 0x80
	maskTopTwoBits  = 0xC0

	// ShortMax is the largest length that fits the one-byte form.
	ShortMax = 63
	// LongMax is the largest length the four-byte form can carry (30
	// usable bits).
	LongMax = 1<<30 - 1
)

// Width reports how many bytes Encode will produce for a NULL object or
// an object of the given length.
func Width(length int, isNull bool) int {
	if isNull {
		return 1
	}
	if length <= ShortMax {
		return 1
	}
	return 4
}

// Encode appends the length prefix for length (ignored when isNull) to
// dst and returns the result.
func Encode(dst []byte, length int, isNull bool) []byte {
	if isNull {
		return append(dst, nullBit)
	}
	if length <= ShortMax {
		return append(dst, byte(length))
	}
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], uint32(length)|continuationBit<<24)
	return append(dst, buf[:]...)
}

// Decode reads a length prefix starting at data[0], returning the
// decoded length (0 when isNull), whether it was NULL, and the prefix's
// width in bytes.
func Decode(data []byte) (length int, isNull bool, width int) {
	b0 := data[0]
	if b0&continuationBit == 0 {
		if b0 == nullBit {
			return 0, true, 1
		}
		return int(b0), false, 1
	}
	v := binary.BigEndian.Uint32(data[:4])
	v &^= maskTopTwoBits << 24
	return int(v), false, 4
}
