package search

import (
	"sync"
	"time"
)

// sessionCacheCap bounds the session dedup cache at 500 entries, FIFO
// eviction.
const sessionCacheCap = 500

// enrichedRecord is the small set of card-derived fields the session cache
// keeps per tender, avoiding a second Portal Client round-trip for a tender
// that reappears in any later Run of the same Service.
type enrichedRecord struct {
	Price              *float64
	CustomerName       string
	CustomerRegion     string
	CustomerCity       string
	CustomerAddress    string
	SubmissionDeadline *time.Time
}

// sessionCache is a fixed-capacity, FIFO-evicting map keyed by tender
// number. This is deliberately not pkg/cache.TTL: that wrapper evicts on
// expiry, not on a size bound, and here we want the opposite — no expiry
// but a hard cap on entry count. One sessionCache belongs to each Service
// and is shared by every Run of it (Instant Search requests and Monitoring
// Loop passes alike), so an entry stays until FIFO eviction. No
// available library offers a bounded FIFO map, so this is a small hand-rolled
// structure rather than a misapplied TTL cache.
type sessionCache struct {
	mu    sync.Mutex
	data  map[string]enrichedRecord
	order []string
}

func newSessionCache() *sessionCache {
	return &sessionCache{data: make(map[string]enrichedRecord, sessionCacheCap)}
}

func (c *sessionCache) get(tenderNumber string) (enrichedRecord, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	rec, ok := c.data[tenderNumber]
	return rec, ok
}

func (c *sessionCache) put(tenderNumber string, rec enrichedRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.data[tenderNumber]; !exists {
		if len(c.order) >= sessionCacheCap {
			oldest := c.order[0]
			c.order = c.order[1:]
			delete(c.data, oldest)
		}
		c.order = append(c.order, tenderNumber)
	}
	c.data[tenderNumber] = rec
}
