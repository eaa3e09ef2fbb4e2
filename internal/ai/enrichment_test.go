package ai

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/nikoly240702/tender-sniper/pkg/cache"
)

func TestEnricher_Summarize_NoBackendReturnsEmpty(t *testing.T) {
	e := NewEnricher(nil, cache.New(time.Minute, time.Minute), testLogger())
	assert.Equal(t, "", e.Summarize(context.Background(), "ctx", "some documentation text"))
}

func TestEnricher_Summarize_EmptyDocTextReturnsEmpty(t *testing.T) {
	e := NewEnricher(nil, cache.New(time.Minute, time.Minute), testLogger())
	assert.Equal(t, "", e.Summarize(context.Background(), "ctx", ""))
}

func TestEnricher_Extract_NoBackendReturnsZeroValue(t *testing.T) {
	e := NewEnricher(nil, cache.New(time.Minute, time.Minute), testLogger())
	docs := e.Extract(context.Background(), "ctx", "some documentation text")
	assert.Equal(t, ExtractedDocs{}, docs)
}

func TestEnricher_Extract_NoBackendIgnoresPrimedCache(t *testing.T) {
	c := cache.New(time.Minute, time.Minute)
	e := NewEnricher(nil, c, testLogger())

	// The cache is primed for this exact input, but Extract checks
	// Configured() before the cache lookup, so a nil client always
	// short-circuits to the zero value regardless of what's cached; this
	// documents that ordering.
	key := "extract:" + cacheDigest("ctx", "some documentation text")
	c.Set(key, ExtractedDocs{Summary: "cached summary"}, time.Minute)

	docs := e.Extract(context.Background(), "ctx", "some documentation text")
	assert.Equal(t, ExtractedDocs{}, docs)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "hello", truncate("hello", 10))
	assert.Equal(t, "hel", truncate("hello", 3))
}
