package ai

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nikoly240702/tender-sniper/internal/domain/filter"
	"github.com/nikoly240702/tender-sniper/internal/domain/tender"
	"github.com/nikoly240702/tender-sniper/pkg/cache"
)

func mustAITender(t *testing.T, number, name string) *tender.Tender {
	t.Helper()
	tn, err := tender.NewTender(number, name, "https://zakupki.gov.ru/"+number, time.Now())
	require.NoError(t, err)
	return tn
}

func mustAIFilter(t *testing.T) *filter.Filter {
	t.Helper()
	f, err := filter.New("user-1", "test filter", []string{"компьютер"}, nil)
	require.NoError(t, err)
	return f
}

// No AI backend configured (nil *Client) fails open with source=fallback.
func TestChecker_Check_NoBackendFallsOpen(t *testing.T) {
	quota := NewQuotaTracker(flatDailyCap(10))
	relevanceCache := cache.New(time.Minute, time.Minute)
	checker := NewChecker(nil, quota, relevanceCache, testLogger())

	tn := mustAITender(t, "1", "Поставка компьютеров")
	f := mustAIFilter(t)

	result := checker.Check(context.Background(), "user-1", "basic", tn, f)
	assert.True(t, result.IsRelevant)
	assert.Equal(t, SourceFallback, result.Source)
}

// Quota exhausted short-circuits before any cache lookup or AI call, and
// fails open.
func TestChecker_Check_QuotaExhaustedFailsOpen(t *testing.T) {
	quota := NewQuotaTracker(flatDailyCap(0))
	relevanceCache := cache.New(time.Minute, time.Minute)
	checker := NewChecker(nil, quota, relevanceCache, testLogger())

	tn := mustAITender(t, "1", "Поставка компьютеров")
	f := mustAIFilter(t)

	result := checker.Check(context.Background(), "user-1", "basic", tn, f)
	assert.True(t, result.IsRelevant)
	assert.Equal(t, SourceQuotaExceeded, result.Source)
	assert.Equal(t, 0, result.QuotaRemaining)
}

// A cache hit is served directly, relabeled source=cache, without touching
// the (nil) AI backend.
func TestChecker_Check_CacheHit(t *testing.T) {
	quota := NewQuotaTracker(flatDailyCap(10))
	relevanceCache := cache.New(time.Minute, time.Minute)
	checker := NewChecker(nil, quota, relevanceCache, testLogger())

	tn := mustAITender(t, "1", "Поставка компьютеров")
	f := mustAIFilter(t)

	key := relevanceCacheKey(tn.Name, f.AIIntent)
	relevanceCache.Set(key, RelevanceResult{IsRelevant: false, Confidence: 90, Reason: "test"}, time.Minute)

	result := checker.Check(context.Background(), "user-1", "basic", tn, f)
	assert.False(t, result.IsRelevant)
	assert.Equal(t, SourceCache, result.Source)
	assert.Equal(t, "test", result.Reason)
}

func testLogger() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
