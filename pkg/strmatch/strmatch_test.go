package strmatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIteratorDecodesASCII(t *testing.T) {
	it := NewIterator([]byte("abc"))
	var got []rune
	for {
		r, ok := it.Next()
		if !ok {
			break
		}
		got = append(got, r)
	}
	assert.Equal(t, []rune{'a', 'b', 'c'}, got)
}

func TestIteratorDecodesMultibyte(t *testing.T) {
	it := NewIterator([]byte("héllo"))
	var got []rune
	for {
		r, ok := it.Next()
		if !ok {
			break
		}
		got = append(got, r)
	}
	assert.Equal(t, []rune("héllo"), got)
}

func TestLikeEmptyPattern(t *testing.T) {
	assert.True(t, Like(nil, nil))
	assert.False(t, Like([]byte("a"), nil))
}

func TestLikeLiteral(t *testing.T) {
	assert.True(t, Like([]byte("hello"), []byte("hello")))
	assert.False(t, Like([]byte("hello"), []byte("hellp")))
}

func TestLikePercent(t *testing.T) {
	assert.True(t, Like([]byte("hello"), []byte("%")))
	assert.True(t, Like([]byte("hello"), []byte("h%o")))
	assert.True(t, Like([]byte("hello"), []byte("%llo")))
	assert.True(t, Like([]byte("hello"), []byte("he%")))
	assert.False(t, Like([]byte("hello"), []byte("h%x")))
	assert.True(t, Like([]byte(""), []byte("%")))
}

func TestLikeUnderscore(t *testing.T) {
	assert.True(t, Like([]byte("hello"), []byte("h_llo")))
	assert.False(t, Like([]byte("hello"), []byte("h_lo")))
	assert.False(t, Like([]byte(""), []byte("_")))
}

func TestLikeCombined(t *testing.T) {
	assert.True(t, Like([]byte("hello world"), []byte("h%_world")))
	assert.True(t, Like([]byte("aaa"), []byte("%a%a%")))
	assert.True(t, Like([]byte("aab"), []byte("%a%a%")))
}

func TestLikeMultibyteCodepoints(t *testing.T) {
	assert.True(t, Like([]byte("héllo"), []byte("h_llo")))
	assert.True(t, Like([]byte("héllo"), []byte("%llo")))
}

func TestLikeMultiplePercent(t *testing.T) {
	assert.True(t, Like([]byte("abcdef"), []byte("%c%f")))
	assert.False(t, Like([]byte("abcdef"), []byte("%c%z")))
}
