// Package batch gives callers a couple of concrete ways to slice a
// value.Value workload across goroutines themselves. The engine's own
// operations never spawn goroutines or check a context; a caller that
// wants cancellation or parallelism applies it at this layer, over a
// slice of independent Values, here with golang.org/x/sync/errgroup.
package batch

import (
	"context"
	"sort"

	"github.com/tidwall/btree"
	"golang.org/x/sync/errgroup"

	"github.com/relicsql/valuecore/pkg/compare"
	"github.com/relicsql/valuecore/pkg/value"
)

// Map runs fn over every element of items using up to workers
// goroutines, stopping and returning the first error (and cancelling
// ctx for the other workers) if any call fails. workers <= 0 is treated
// as 1.
func Map(ctx context.Context, items []value.Value, workers int, fn func(context.Context, value.Value) (value.Value, error)) ([]value.Value, error) {
	if workers <= 0 {
		workers = 1
	}
	results := make([]value.Value, len(items))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, item := range items {
		i, item := i, item
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r, err := fn(gctx, item)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// OrderedSet is a sorted, deduplicated collection of Values ordered by
// compare.Less (compare.Compare's total order), backed by a tidwall/btree B-tree
// rather than a slice-and-sort so repeated inserts stay sub-quadratic.
type OrderedSet struct {
	tree *btree.BTreeG[value.Value]
}

func NewOrderedSet() *OrderedSet {
	return &OrderedSet{
		tree: btree.NewBTreeG[value.Value](func(a, b value.Value) bool {
			return compare.Less(a, b)
		}),
	}
}

func (s *OrderedSet) Insert(v value.Value) {
	s.tree.Set(v)
}

func (s *OrderedSet) Contains(v value.Value) bool {
	_, ok := s.tree.Get(v)
	return ok
}

func (s *OrderedSet) Len() int {
	return s.tree.Len()
}

// Values returns every element in ascending order.
func (s *OrderedSet) Values() []value.Value {
	out := make([]value.Value, 0, s.tree.Len())
	s.tree.Scan(func(v value.Value) bool {
		out = append(out, v)
		return true
	})
	return out
}

// SortKeys sorts a slice of Values with compare.Less, useful when a caller wants the same total order as OrderedSet without
// paying for deduplication.
func SortKeys(values []value.Value) {
	sort.Slice(values, func(i, j int) bool {
		return compare.Less(values[i], values[j])
	})
}
