package cache

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSingularGetSet(t *testing.T) {
	c := NewSingular[int]("answer")

	var got int
	assert.ErrorIs(t, c.Get(&got), ErrNotFound)

	require.NoError(t, c.Set(42, time.Minute))
	require.NoError(t, c.Get(&got))
	assert.Equal(t, 42, got)

	require.NoError(t, c.Delete())
	assert.ErrorIs(t, c.Get(&got), ErrNotFound)
}

func TestSingularMutexGetSetSingleFlight(t *testing.T) {
	c := NewSingular[string]("expensive")

	var calls int32
	valueFunc := func() (string, error) {
		atomic.AddInt32(&calls, 1)
		time.Sleep(10 * time.Millisecond)
		return "computed", nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var dest string
			assert.NoError(t, c.MutexGetSet(&dest, valueFunc, time.Minute))
			assert.Equal(t, "computed", dest)
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 1, atomic.LoadInt32(&calls), "valueFunc must run once under contention")
}
