package store

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryPrependNewestFirst(t *testing.T) {
	h := NewHistory[int](5)

	for i := 1; i <= 3; i++ {
		h.Prepend(i)
	}

	assert.Equal(t, []int{3, 2, 1}, h.Items())

	latest, err := h.Latest()
	require.NoError(t, err)
	assert.Equal(t, 3, latest)
}

func TestHistoryDropsOldest(t *testing.T) {
	h := NewHistory[int](100)

	for i := 1; i <= 250; i++ {
		h.Prepend(i)
		want := i
		if want > 100 {
			want = 100
		}
		require.Equal(t, want, h.Len())
	}

	items := h.Items()
	assert.Equal(t, 250, items[0])
	assert.Equal(t, 151, items[len(items)-1])
}

func TestHistoryEmpty(t *testing.T) {
	h := NewHistory[string](0)

	_, err := h.Latest()
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, DefaultCapacity, h.Capacity())
	assert.Empty(t, h.Items())
}

func TestHistoryItemsIsCopy(t *testing.T) {
	h := NewHistory[int](3)
	h.Prepend(1)

	items := h.Items()
	items[0] = 42

	latest, err := h.Latest()
	require.NoError(t, err)
	assert.Equal(t, 1, latest)
}

func TestHistoryConcurrentPrepend(t *testing.T) {
	h := NewHistory[int](10)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(v int) {
			defer wg.Done()
			h.Prepend(v)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 10, h.Len())
}
