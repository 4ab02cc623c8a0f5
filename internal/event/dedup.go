// Package event provides inbound event deduplication and the received-event
// audit trail.
package event

import (
	"sync"
	"time"
)

// Deduplicator remembers processed event ids for a bounded retention window.
// It is a performance optimization for at-least-once delivery: losing the
// cache on restart only causes redundant no-op reprocessing, the order
// transition graph is the real safety net against double side effects.
type Deduplicator struct {
	mu        sync.Mutex
	processed map[string]time.Time
	retention time.Duration
	nowFn     func() time.Time
}

// NewDeduplicator creates a Deduplicator with the given retention window.
// The retention must cover the remote's maximum redelivery window.
func NewDeduplicator(retention time.Duration) *Deduplicator {
	return &Deduplicator{
		processed: make(map[string]time.Time),
		retention: retention,
		nowFn:     time.Now,
	}
}

// Seen reports whether the event id was marked as processed inside the
// retention window. Expired entries are purged on access.
func (d *Deduplicator) Seen(id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	processedAt, ok := d.processed[id]
	if !ok {
		return false
	}
	if d.nowFn().Sub(processedAt) > d.retention {
		delete(d.processed, id)
		return false
	}
	return true
}

// Mark records an event id as processed. Only acked ids should be marked so
// that un-acked events are reprocessed on redelivery.
func (d *Deduplicator) Mark(id string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.processed[id] = d.nowFn()
}

// FilterNew returns the ids from the batch that have not been processed yet,
// preserving order. Duplicate ids inside the same batch are collapsed.
func (d *Deduplicator) FilterNew(ids []string) []string {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.nowFn()
	fresh := make([]string, 0, len(ids))
	inBatch := make(map[string]struct{}, len(ids))

	for _, id := range ids {
		if _, dup := inBatch[id]; dup {
			continue
		}
		if processedAt, ok := d.processed[id]; ok {
			if now.Sub(processedAt) <= d.retention {
				continue
			}
			delete(d.processed, id)
		}
		inBatch[id] = struct{}{}
		fresh = append(fresh, id)
	}

	return fresh
}

// Sweep drops all entries older than the retention window and returns the
// number of remaining entries.
func (d *Deduplicator) Sweep() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.nowFn()
	for id, processedAt := range d.processed {
		if now.Sub(processedAt) > d.retention {
			delete(d.processed, id)
		}
	}
	return len(d.processed)
}
