// Package varlen implements the owning handle and pool contract that a
// Value's variable-length object bytes are drawn from when they cannot be
// borrowed from a tuple in place.
package varlen

import (
	treemap "github.com/liyue201/gostl/ds/map"

	"github.com/relicsql/valuecore/pkg/util"
)

// Varlen is an owning handle to a pool-allocated byte run. Its payload is
// addressed only through Bytes(); callers never retain a bare []byte
// across a Pool.Reset, since Reset may hand that backing array to a
// later, unrelated allocation.
type Varlen struct {
	buf  []byte
	pool Pool
}

func (v *Varlen) Bytes() []byte {
	if v == nil {
		return nil
	}
	return v.buf
}

func (v *Varlen) Len() int {
	if v == nil {
		return 0
	}
	return len(v.buf)
}

// Pool is the allocator contract a non-inlined object's bytes are drawn
// from and returned to. Allocations survive until Reset or the handle's
// own Destroy; a Pool is not safe for concurrent use by itself -- callers
// serialize access per executor context (e.g. with util.ReentryLock).
type Pool interface {
	Alloc(minBytes int) *Varlen
	Free(h *Varlen)
	Reset()
}

// Create allocates a handle with a payload of at least minBytes. A nil
// pool means "use the process-wide temp pool".
func Create(minBytes int, pool Pool) *Varlen {
	if pool == nil {
		pool = TempPool
	}
	return pool.Alloc(minBytes)
}

// Destroy releases h back to the pool it came from. It is idempotent on a
// nil or already-destroyed handle.
func Destroy(h *Varlen) {
	if h == nil || h.pool == nil {
		return
	}
	h.pool.Free(h)
}

// SlabPool is a size-classed Pool: frees are bucketed by next-power-of-two
// size and reused by later allocations of the same class
// instead of going back to the underlying allocator every time.
type SlabPool struct {
	mu    *util.ReentryLock
	alloc util.BytesAllocator
	free  *treemap.Map[int, [][]byte]
}

func NewSlabPool(alloc util.BytesAllocator) *SlabPool {
	if alloc == nil {
		alloc = util.GAlloc
	}
	cmp := func(a, b int) int { return a - b }
	return &SlabPool{
		mu:    util.NewReentryLock(),
		alloc: alloc,
		free:  treemap.New[int, [][]byte](cmp),
	}
}

func sizeClass(n int) int {
	if n <= 0 {
		return 1
	}
	return int(util.NextPowerOfTwo(uint64(n)))
}

func (p *SlabPool) Alloc(minBytes int) *Varlen {
	p.mu.Lock()
	defer p.mu.Unlock()
	if minBytes <= 0 {
		minBytes = 1
	}
	cls := sizeClass(minBytes)
	if bucket, err := p.free.Get(cls); err == nil && len(bucket) > 0 {
		buf := bucket[len(bucket)-1]
		bucket = bucket[:len(bucket)-1]
		p.free.Insert(cls, bucket)
		for i := range buf {
			buf[i] = 0
		}
		return &Varlen{buf: buf[:minBytes], pool: p}
	}
	buf := p.alloc.Alloc(cls)
	return &Varlen{buf: buf[:minBytes], pool: p}
}

func (p *SlabPool) Free(h *Varlen) {
	if h == nil {
		return
	}
	util.AssertFunc(h.pool == p, "varlen: handle freed into a pool that did not allocate it")
	p.mu.Lock()
	defer p.mu.Unlock()
	full := h.buf[:cap(h.buf)]
	cls := sizeClass(cap(h.buf))
	bucket, err := p.free.Get(cls)
	if err != nil {
		bucket = nil
	}
	bucket = append(bucket, full)
	p.free.Insert(cls, bucket)
	h.buf = nil
	h.pool = nil
}

func (p *SlabPool) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.free.Clear()
}

var _ Pool = (*SlabPool)(nil)

// TempPool is the process-wide scratch pool. Values built through a
// "temp string/binary" factory or a string-valued cast point into it and
// are invalidated by the next TempPool.Reset() -- callers reset it
// between query scopes.
var TempPool Pool = NewSlabPool(nil)
