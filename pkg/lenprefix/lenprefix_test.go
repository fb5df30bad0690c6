package lenprefix

import (
	"bytes"
	"testing"
)

func TestShortBoundary(t *testing.T) {
	got := Encode(nil, 63, false)
	if !bytes.Equal(got, []byte{0x3F}) {
		t.Fatalf("Encode(63) = %x, want 3f", got)
	}
	length, isNull, width := Decode(got)
	if length != 63 || isNull || width != 1 {
		t.Fatalf("Decode(3f) = %d,%v,%d", length, isNull, width)
	}
}

func TestLongBoundary(t *testing.T) {
	got := Encode(nil, 64, false)
	if !bytes.Equal(got, []byte{0x80, 0x00, 0x00, 0x40}) {
		t.Fatalf("Encode(64) = %x, want 80000040", got)
	}
	length, isNull, width := Decode(got)
	if length != 64 || isNull || width != 4 {
		t.Fatalf("Decode = %d,%v,%d", length, isNull, width)
	}
}

func TestNullPrefix(t *testing.T) {
	got := Encode(nil, 0, true)
	if !bytes.Equal(got, []byte{0x40}) {
		t.Fatalf("Encode(null) = %x, want 40", got)
	}
	_, isNull, width := Decode(got)
	if !isNull || width != 1 {
		t.Fatalf("Decode(null) isNull=%v width=%d", isNull, width)
	}
}

func TestRoundTripAcrossRange(t *testing.T) {
	lengths := []int{0, 1, 62, 63, 64, 65, 1000, 1 << 20, LongMax}
	for _, l := range lengths {
		enc := Encode(nil, l, false)
		got, isNull, width := Decode(enc)
		if got != l || isNull || width != Width(l, false) {
			t.Errorf("round trip %d: got %d isNull=%v width=%d", l, got, isNull, width)
		}
	}
}
