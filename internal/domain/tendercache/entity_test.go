package tendercache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHashContent_Deterministic(t *testing.T) {
	h1 := HashContent("number|name|description")
	h2 := HashContent("number|name|description")
	assert.Equal(t, h1, h2)
}

func TestHashContent_DiffersOnContentChange(t *testing.T) {
	h1 := HashContent("number|name|description")
	h2 := HashContent("number|name|different description")
	assert.NotEqual(t, h1, h2)
}

func TestEntry_IsStale(t *testing.T) {
	now := time.Date(2026, 7, 31, 12, 0, 0, 0, time.UTC)
	e := Entry{LastSeen: now.Add(-25 * time.Hour)}
	assert.True(t, e.IsStale(now, 24*time.Hour))

	e2 := Entry{LastSeen: now.Add(-1 * time.Hour)}
	assert.False(t, e2.IsStale(now, 24*time.Hour))
}
