// Package strmatch implements a UTF-8 code-point iterator and a SQL
// LIKE-style pattern matcher over it. No escape character is supported:
// '%' and '_' are always wildcards.
package strmatch

import "unicode/utf8"

// Iterator decodes one code point at a time out of a byte range without
// reading past the end of it.
type Iterator struct {
	data []byte
	pos  int
}

func NewIterator(data []byte) *Iterator {
	return &Iterator{data: data}
}

// Pos reports the iterator's current byte offset into data.
func (it *Iterator) Pos() int { return it.pos }

// Done reports whether the iterator has consumed every byte.
func (it *Iterator) Done() bool { return it.pos >= len(it.data) }

// Next decodes the code point at the current position and advances past
// it, returning false once the iterator is exhausted. Decoding works off
// a window of at most six bytes copied into a scratch buffer, ample
// slack over the four bytes a well-formed UTF-8 code point ever needs,
// so a short final window at the end of data never panics.
func (it *Iterator) Next() (rune, bool) {
	if it.Done() {
		return 0, false
	}
	var scratch [6]byte
	n := copy(scratch[:], it.data[it.pos:])
	r, size := utf8.DecodeRune(scratch[:n])
	it.pos += size
	return r, true
}

// Like reports whether value matches pattern under SQL LIKE semantics:
// '%' matches zero or more code points, '_' matches exactly one, and
// any other code point must match literally.
func Like(value, pattern []byte) bool {
	return likeFrom(value, pattern)
}

func likeFrom(value, pattern []byte) bool {
	if len(pattern) == 0 {
		return len(value) == 0
	}

	pr, psize := utf8.DecodeRune(pattern)
	switch pr {
	case '%':
		rest := pattern[psize:]
		if len(rest) == 0 {
			return true
		}
		// Fast skip: if the next pattern code point after '%' is a
		// literal, advance the value cursor until it matches before
		// recursing, instead of recursing at every suffix position.
		nextR, nextSize := utf8.DecodeRune(rest)
		if nextR != '%' && nextR != '_' {
			v := value
			for len(v) > 0 {
				vr, vsize := utf8.DecodeRune(v)
				if vr == nextR {
					if likeFrom(v[vsize:], rest[nextSize:]) {
						return true
					}
				}
				v = v[vsize:]
			}
			return false
		}
		for v := value; ; {
			if likeFrom(v, rest) {
				return true
			}
			if len(v) == 0 {
				return false
			}
			_, vsize := utf8.DecodeRune(v)
			v = v[vsize:]
		}
	case '_':
		if len(value) == 0 {
			return false
		}
		_, vsize := utf8.DecodeRune(value)
		return likeFrom(value[vsize:], pattern[psize:])
	default:
		if len(value) == 0 {
			return false
		}
		vr, vsize := utf8.DecodeRune(value)
		if vr != pr {
			return false
		}
		return likeFrom(value[vsize:], pattern[psize:])
	}
}
