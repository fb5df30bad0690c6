package batch

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/relicsql/valuecore/pkg/value"
)

func TestMapAppliesFunctionToEveryItem(t *testing.T) {
	items := []value.Value{value.FromI32(1), value.FromI32(2), value.FromI32(3)}
	got, err := Map(context.Background(), items, 2, func(_ context.Context, v value.Value) (value.Value, error) {
		return value.FromI32(v.AsI32() * 2), nil
	})
	assert.NoError(t, err)
	assert.Len(t, got, 3)
	assert.Equal(t, int32(2), got[0].AsI32())
	assert.Equal(t, int32(4), got[1].AsI32())
	assert.Equal(t, int32(6), got[2].AsI32())
}

func TestMapPropagatesFirstError(t *testing.T) {
	items := []value.Value{value.FromI32(1), value.FromI32(0), value.FromI32(3)}
	boom := errors.New("boom")
	_, err := Map(context.Background(), items, 3, func(_ context.Context, v value.Value) (value.Value, error) {
		if v.AsI32() == 0 {
			return value.Value{}, boom
		}
		return v, nil
	})
	assert.ErrorIs(t, err, boom)
}

func TestMapDefaultsWorkersToOne(t *testing.T) {
	items := []value.Value{value.FromI32(1)}
	got, err := Map(context.Background(), items, 0, func(_ context.Context, v value.Value) (value.Value, error) {
		return v, nil
	})
	assert.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestOrderedSetDedupesAndSorts(t *testing.T) {
	s := NewOrderedSet()
	s.Insert(value.FromI32(3))
	s.Insert(value.FromI32(1))
	s.Insert(value.FromI32(2))
	s.Insert(value.FromI32(1))

	assert.Equal(t, 3, s.Len())
	vals := s.Values()
	assert.Equal(t, int32(1), vals[0].AsI32())
	assert.Equal(t, int32(2), vals[1].AsI32())
	assert.Equal(t, int32(3), vals[2].AsI32())
}

func TestOrderedSetContains(t *testing.T) {
	s := NewOrderedSet()
	s.Insert(value.FromI32(5))
	assert.True(t, s.Contains(value.FromI32(5)))
	assert.False(t, s.Contains(value.FromI32(6)))
}

func TestSortKeysMatchesTotalOrder(t *testing.T) {
	values := []value.Value{value.FromI32(5), value.FromI32(-1), value.FromI32(3)}
	SortKeys(values)
	assert.Equal(t, int32(-1), values[0].AsI32())
	assert.Equal(t, int32(3), values[1].AsI32())
	assert.Equal(t, int32(5), values[2].AsI32())
}
