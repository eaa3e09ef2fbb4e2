package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSessionCache_GetMiss(t *testing.T) {
	c := newSessionCache()
	_, ok := c.get("unknown")
	assert.False(t, ok)
}

func TestSessionCache_PutThenGet(t *testing.T) {
	c := newSessionCache()
	price := 1000.0
	c.put("t1", enrichedRecord{Price: &price, CustomerName: "ООО Ромашка"})

	rec, ok := c.get("t1")
	assert.True(t, ok)
	assert.Equal(t, "ООО Ромашка", rec.CustomerName)
	assert.Equal(t, &price, rec.Price)
}

// Beyond sessionCacheCap entries, the oldest is evicted (FIFO).
func TestSessionCache_FIFOEvictionAtCapacity(t *testing.T) {
	c := newSessionCache()
	for i := 0; i < sessionCacheCap; i++ {
		c.put(numberFor(i), enrichedRecord{CustomerName: numberFor(i)})
	}

	_, ok := c.get(numberFor(0))
	assert.True(t, ok)

	c.put("overflow", enrichedRecord{CustomerName: "overflow"})

	_, ok = c.get(numberFor(0))
	assert.False(t, ok, "oldest entry should have been evicted")

	_, ok = c.get("overflow")
	assert.True(t, ok)
}

func numberFor(i int) string {
	return "tender-" + string(rune('A'+i%26)) + string(rune('0'+i/26))
}
