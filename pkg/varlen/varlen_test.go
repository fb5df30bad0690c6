package varlen

import "testing"

func TestCreateDestroyRoundTrip(t *testing.T) {
	pool := NewSlabPool(nil)
	h := Create(10, pool)
	if h.Len() != 10 {
		t.Fatalf("Len() = %d, want 10", h.Len())
	}
	copy(h.Bytes(), []byte("helloworld"))
	if string(h.Bytes()) != "helloworld" {
		t.Fatalf("Bytes() = %q", h.Bytes())
	}
	Destroy(h)
	if h.Bytes() != nil {
		t.Fatalf("destroyed handle still reports bytes")
	}
}

func TestFreeIntoWrongPoolPanics(t *testing.T) {
	poolA := NewSlabPool(nil)
	poolB := NewSlabPool(nil)
	h := poolA.Alloc(16)

	defer func() {
		if recover() == nil {
			t.Fatalf("expected Free into a different pool to panic")
		}
	}()
	poolB.Free(h)
}

func TestDestroyNilIsNoop(t *testing.T) {
	Destroy(nil)
	var h *Varlen
	Destroy(h)
}

func TestSlabPoolReusesFreedSlab(t *testing.T) {
	pool := NewSlabPool(nil)
	a := pool.Alloc(100)
	backing := a.Bytes()
	pool.Free(a)
	b := pool.Alloc(90)
	if &backing[0] != &b.Bytes()[0] {
		t.Fatalf("expected SlabPool to reuse the freed size-class bucket")
	}
}

func TestSlabPoolResetClearsFreeList(t *testing.T) {
	pool := NewSlabPool(nil)
	a := pool.Alloc(16)
	pool.Free(a)
	pool.Reset()
	b := pool.Alloc(16)
	if b == nil || b.Len() != 16 {
		t.Fatalf("Alloc after Reset failed")
	}
}

func TestNilVarlenAccessorsAreSafe(t *testing.T) {
	var h *Varlen
	if h.Len() != 0 {
		t.Fatalf("nil Varlen.Len() should be 0")
	}
	if h.Bytes() != nil {
		t.Fatalf("nil Varlen.Bytes() should be nil")
	}
}

func TestCreateWithNilPoolUsesTempPool(t *testing.T) {
	h := Create(4, nil)
	defer Destroy(h)
	if h.pool != TempPool {
		t.Fatalf("Create(n, nil) should allocate from TempPool")
	}
}
