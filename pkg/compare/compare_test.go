package compare

import (
	"math"
	"sort"
	"testing"

	"github.com/tidwall/btree"

	"github.com/relicsql/valuecore/pkg/value"
)

func mustArray(t *testing.T, elems ...value.Value) value.Value {
	t.Helper()
	arr := value.ArrayOf(len(elems), elems[0].Kind())
	if err := arr.SetArrayElements(elems); err != nil {
		t.Fatalf("SetArrayElements: %v", err)
	}
	return arr
}

func TestNullOrdering(t *testing.T) {
	n := value.Null()
	five := value.FromI32(5)
	if Compare(n, n) != 0 {
		t.Fatal("NULL should equal NULL")
	}
	if Compare(n, five) >= 0 {
		t.Fatal("NULL should sort before non-NULL")
	}
	if Compare(five, n) <= 0 {
		t.Fatal("non-NULL should sort after NULL")
	}
}

func TestNaNTotalOrder(t *testing.T) {
	nan1 := value.FromF64(math.NaN())
	nan2 := value.FromF64(math.NaN())
	x := value.FromF64(1.0)
	if Compare(nan1, nan2) != 0 {
		t.Fatal("NaN should equal NaN")
	}
	if Compare(nan1, x) >= 0 {
		t.Fatal("NaN should sort below any non-NaN")
	}
	if Compare(x, nan1) <= 0 {
		t.Fatal("non-NaN should sort above NaN")
	}
}

func TestCrossKindPromotion(t *testing.T) {
	i := value.FromI32(2)
	d, _ := value.DecimalFromStr("2.0")
	if Compare(i, d) != 0 {
		t.Fatalf("2 (int) should equal 2.0 (decimal)")
	}
	f := value.FromF64(2.0)
	if Compare(i, f) != 0 {
		t.Fatalf("2 (int) should equal 2.0 (double)")
	}
	if Compare(f, d) != 0 {
		t.Fatalf("2.0 (double) should equal 2.0 (decimal)")
	}
}

func TestVarcharVarbinaryComparison(t *testing.T) {
	a := value.TempString([]byte("abc"))
	b := value.TempBinary([]byte("abd"))
	if !Less(a, b) {
		t.Fatal("abc should be < abd")
	}
	if !Greater(value.TempString([]byte("abcd")), value.TempString([]byte("abc"))) {
		t.Fatal("equal prefix: longer string should sort after shorter")
	}
}

func TestArrayComparison(t *testing.T) {
	a123 := mustArray(t, value.FromI32(1), value.FromI32(2), value.FromI32(3))
	a456 := mustArray(t, value.FromI32(4), value.FromI32(5), value.FromI32(6))
	if Equal(a123, a456) {
		t.Fatal("[1,2,3] should not equal [4,5,6]")
	}
	if !Less(a123, a456) {
		t.Fatal("[1,2,3] should sort before [4,5,6]")
	}

	a12 := mustArray(t, value.FromI32(1), value.FromI32(2))
	a12x := mustArray(t, value.FromI32(1), value.FromI32(2))
	if !Equal(a12, a12x) {
		t.Fatal("arrays with identical elements should compare equal")
	}

	a120 := mustArray(t, value.FromI32(1), value.FromI32(2), value.FromI32(0))
	if !Less(a12, a120) {
		t.Fatal("[1,2] should sort before [1,2,0]: equal prefix, shorter wins")
	}
}

func TestSymmetry(t *testing.T) {
	cases := [][2]value.Value{
		{value.FromI32(1), value.FromI32(2)},
		{value.FromF64(1.5), value.FromF64(1.5)},
		{value.TempString([]byte("a")), value.TempString([]byte("b"))},
	}
	for _, c := range cases {
		if Compare(c[0], c[1]) < 0 && Compare(c[1], c[0]) <= 0 {
			t.Fatalf("antisymmetry violated for %v, %v", c[0], c[1])
		}
	}
}

// TestOrderKeyBTreeScanMatchesSortedKeys loads OrderKey byte strings into
// a real ordered container and checks that its scan order agrees with a
// plain sort.Strings of the same keys.
func TestOrderKeyBTreeScanMatchesSortedKeys(t *testing.T) {
	vals := []value.Value{
		value.FromI32(5), value.FromI32(-3), value.FromI32(0),
		value.FromF64(2.5), value.FromF64(-1.5),
	}
	type item struct {
		v   value.Value
		key []byte
	}
	items := make([]item, len(vals))
	for i, v := range vals {
		items[i] = item{v: v, key: OrderKey(v)}
	}
	tree := btree.NewBTreeG[string](func(a, b string) bool { return a < b })
	for _, it := range items {
		tree.Set(string(it.key))
	}
	var fromTree []string
	tree.Scan(func(s string) bool {
		fromTree = append(fromTree, s)
		return true
	})

	sortedKeys := make([]string, len(items))
	for i, it := range items {
		sortedKeys[i] = string(it.key)
	}
	sort.Strings(sortedKeys)

	if len(fromTree) != len(sortedKeys) {
		t.Fatalf("btree scan length mismatch")
	}
	for i := range fromTree {
		if fromTree[i] != sortedKeys[i] {
			t.Fatalf("btree order diverges from sorted keys at %d", i)
		}
	}
}
