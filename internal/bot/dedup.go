package bot

import (
	"sync"
	"time"
)

const (
	dedupTTL        = 10 * time.Minute
	dedupMaxEntries = 4096
)

// dedup remembers recently processed update ids so a redelivered
// webhook update is handled at most once. Telegram update ids are
// positive; id 0 (never issued by the API) is passed through.
type dedup struct {
	mu   sync.Mutex
	seen map[int]time.Time
}

func newDedup() *dedup {
	return &dedup{seen: make(map[int]time.Time)}
}

// firstSeen reports whether id has not been processed within the TTL,
// and records it.
func (d *dedup) firstSeen(id int) bool {
	if id == 0 {
		return true
	}
	now := time.Now()

	d.mu.Lock()
	defer d.mu.Unlock()

	if at, ok := d.seen[id]; ok && now.Sub(at) < dedupTTL {
		return false
	}
	if len(d.seen) >= dedupMaxEntries {
		d.sweep(now)
	}
	d.seen[id] = now
	return true
}

// sweep drops expired entries; caller holds the lock.
func (d *dedup) sweep(now time.Time) {
	for id, at := range d.seen {
		if now.Sub(at) >= dedupTTL {
			delete(d.seen, id)
		}
	}
	// Everything still fresh: evict arbitrarily to stay bounded.
	if len(d.seen) >= dedupMaxEntries {
		for id := range d.seen {
			delete(d.seen, id)
			if len(d.seen) < dedupMaxEntries/2 {
				break
			}
		}
	}
}
