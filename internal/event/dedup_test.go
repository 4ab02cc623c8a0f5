package event

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDeduplicator_SeenAndMark(t *testing.T) {
	dedup := NewDeduplicator(2 * time.Hour)

	assert.False(t, dedup.Seen("evt-1"))

	dedup.Mark("evt-1")
	assert.True(t, dedup.Seen("evt-1"))
	assert.False(t, dedup.Seen("evt-2"))
}

func TestDeduplicator_ExpiredEntriesAreForgotten(t *testing.T) {
	dedup := NewDeduplicator(2 * time.Hour)

	now := time.Now()
	dedup.nowFn = func() time.Time { return now }
	dedup.Mark("evt-1")

	// Inside the retention window the id is a duplicate.
	dedup.nowFn = func() time.Time { return now.Add(time.Hour) }
	assert.True(t, dedup.Seen("evt-1"))

	// Past the retention window the id is treated as new again.
	dedup.nowFn = func() time.Time { return now.Add(3 * time.Hour) }
	assert.False(t, dedup.Seen("evt-1"))
}

func TestDeduplicator_FilterNew(t *testing.T) {
	dedup := NewDeduplicator(2 * time.Hour)
	dedup.Mark("evt-2")

	fresh := dedup.FilterNew([]string{"evt-1", "evt-2", "evt-3", "evt-1"})
	assert.Equal(t, []string{"evt-1", "evt-3"}, fresh)
}

func TestDeduplicator_FilterNew_DoesNotMark(t *testing.T) {
	dedup := NewDeduplicator(2 * time.Hour)

	// Filtering must not record ids: only acked events are marked, so an
	// un-acked event stays eligible for reprocessing on redelivery.
	dedup.FilterNew([]string{"evt-1"})
	assert.False(t, dedup.Seen("evt-1"))
}

func TestDeduplicator_Sweep(t *testing.T) {
	dedup := NewDeduplicator(2 * time.Hour)

	now := time.Now()
	dedup.nowFn = func() time.Time { return now }
	dedup.Mark("evt-old")

	dedup.nowFn = func() time.Time { return now.Add(3 * time.Hour) }
	dedup.Mark("evt-new")

	remaining := dedup.Sweep()
	assert.Equal(t, 1, remaining)
	assert.True(t, dedup.Seen("evt-new"))
	assert.False(t, dedup.Seen("evt-old"))
}

func TestDeduplicator_ConcurrentAccess(t *testing.T) {
	dedup := NewDeduplicator(2 * time.Hour)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			dedup.Mark("evt-shared")
			dedup.Seen("evt-shared")
			dedup.FilterNew([]string{"evt-shared", "evt-other"})
			dedup.Sweep()
		}()
	}
	wg.Wait()

	assert.True(t, dedup.Seen("evt-shared"))
}
