package sqltype

import "testing"

func TestFixedSize(t *testing.T) {
	cases := map[Kind]int{
		TinyInt:   1,
		Boolean:   1,
		SmallInt:  2,
		Integer:   4,
		BigInt:    8,
		Timestamp: 8,
		Double:    8,
		Address:   8,
		Decimal:   16,
	}
	for k, want := range cases {
		if got := k.FixedSize(); got != want {
			t.Errorf("%s.FixedSize() = %d, want %d", k, got, want)
		}
	}
}

func TestPromoteNumeric(t *testing.T) {
	if got := PromoteNumeric(Integer, Decimal); got != Decimal {
		t.Errorf("Integer x Decimal = %s, want Decimal", got)
	}
	if got := PromoteNumeric(Integer, Double); got != Double {
		t.Errorf("Integer x Double = %s, want Double", got)
	}
	if got := PromoteNumeric(Integer, BigInt); got != BigInt {
		t.Errorf("Integer x BigInt = %s, want BigInt", got)
	}
	if got := PromoteNumeric(Timestamp, SmallInt); got != BigInt {
		t.Errorf("Timestamp x SmallInt = %s, want BigInt", got)
	}
	if got := PromoteNumeric(Varchar, Integer); got != Invalid {
		t.Errorf("Varchar x Integer = %s, want Invalid", got)
	}
}

func TestIsObject(t *testing.T) {
	for _, k := range []Kind{Varchar, Varbinary, Array} {
		if !k.IsObject() {
			t.Errorf("%s.IsObject() = false, want true", k)
		}
	}
	for _, k := range []Kind{TinyInt, Boolean, Decimal, Double, Null} {
		if k.IsObject() {
			t.Errorf("%s.IsObject() = true, want false", k)
		}
	}
}

func TestParseKindRoundTripsEveryName(t *testing.T) {
	for k := range kindNames {
		if k == Invalid {
			continue
		}
		got, err := ParseKind(k.String())
		if err != nil {
			t.Fatalf("ParseKind(%q) returned error: %v", k.String(), err)
		}
		if got != k {
			t.Errorf("ParseKind(%q) = %s, want %s", k.String(), got, k)
		}
	}
}

func TestParseKindCaseInsensitiveAndUnknown(t *testing.T) {
	if got, err := ParseKind("integer"); err != nil || got != Integer {
		t.Errorf("ParseKind(%q) = %s, %v; want Integer, nil", "integer", got, err)
	}
	if _, err := ParseKind("not-a-kind"); err == nil {
		t.Errorf("ParseKind(%q) = nil error, want error", "not-a-kind")
	}
}
