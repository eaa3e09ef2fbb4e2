package ai

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/nikoly240702/tender-sniper/internal/domain/filter"
	"github.com/nikoly240702/tender-sniper/internal/domain/tender"
	"github.com/nikoly240702/tender-sniper/pkg/cache"
)

// relevanceCacheTTL is the 24h relevance-cache lifetime, keyed by
// hash(tender_name|filter_intent).
const relevanceCacheTTL = 24 * time.Hour

// confidenceOverrideThreshold: an AI verdict of relevant=true below this
// confidence is downgraded to not-relevant. Only applies to
// source=ai; fallback/quota_exceeded/error verdicts bypass this entirely —
// there is nothing to doubt the confidence of when no AI call was made.
const confidenceOverrideThreshold = 85

// Checker is the AI Relevance Checker (C3): given a tender and a filter
// whose SmartMatcher score landed in the ambiguous band, decides whether an
// LLM call confirms or refutes the match.
type Checker struct {
	client *Client
	quota  *QuotaTracker
	cache  *cache.TTL
	log    *zap.SugaredLogger
}

func NewChecker(client *Client, quota *QuotaTracker, relevanceCache *cache.TTL, log *zap.SugaredLogger) *Checker {
	return &Checker{client: client, quota: quota, cache: relevanceCache, log: log}
}

// Check runs the full decision chain:
//  1. quota exhausted → fallback, fail open, source=quota_exceeded
//  2. cache hit → source=cache
//  3. no AI backend configured → fallback, fail open, source=fallback
//  4. AI call → confidence<85 on a "relevant" verdict is downgraded, source=ai
//  5. AI call error → fallback, fail open, source=error
//
// "Fail open" means IsRelevant=true: a tender that already passed SmartMatcher
// is never hidden from the user just because the AI collaborator is
// unavailable — false negatives here cost a missed tender, which is worse
// than an extra notification.
func (c *Checker) Check(ctx context.Context, userID, tier string, t *tender.Tender, f *filter.Filter) RelevanceResult {
	now := time.Now()

	if c.quota.Exhausted(userID, tier, now) {
		return RelevanceResult{IsRelevant: true, Source: SourceQuotaExceeded, QuotaRemaining: 0}
	}
	remaining := c.quota.Remaining(userID, tier, now)

	key := relevanceCacheKey(t.Name, f.AIIntent)
	if cached, ok := c.cache.Get(key); ok {
		result := cached.(RelevanceResult)
		result.Source = SourceCache
		result.QuotaRemaining = remaining
		return result
	}

	if !c.client.Configured() {
		return RelevanceResult{IsRelevant: true, Source: SourceFallback, QuotaRemaining: remaining}
	}

	result, err := c.callAI(ctx, t, f)
	if err != nil {
		c.log.Warnw("ai relevance check failed, failing open", "tender", t.Number, "error", err)
		return RelevanceResult{IsRelevant: true, Source: SourceError, QuotaRemaining: remaining}
	}

	c.quota.Increment(userID, now)
	result.QuotaRemaining = remaining - 1
	if result.QuotaRemaining < 0 {
		result.QuotaRemaining = 0
	}

	c.cache.Set(key, result, relevanceCacheTTL)
	return result
}

func (c *Checker) callAI(ctx context.Context, t *tender.Tender, f *filter.Filter) (RelevanceResult, error) {
	intent := f.AIIntent
	if intent == "" {
		intent = f.Name
	}

	tenderContext := ""
	if t.CustomerName != "" {
		tenderContext = fmt.Sprintf("\nЗаказчик: %s", t.CustomerName)
	}

	prompt := fmt.Sprintf(relevanceUserPromptTemplate, intent, strings.Join(f.Keywords, ", "), t.Name, tenderContext)

	raw, err := c.client.complete(ctx, "ai.relevance", relevanceSystemPrompt, prompt, 300)
	if err != nil {
		return RelevanceResult{}, err
	}

	var resp relevanceResponse
	if err := extractJSON(raw, &resp); err != nil {
		return RelevanceResult{}, err
	}

	isRelevant := resp.Relevant
	if isRelevant && resp.Confidence < confidenceOverrideThreshold {
		isRelevant = false
	}

	return RelevanceResult{
		IsRelevant: isRelevant,
		Confidence: resp.Confidence,
		Reason:     resp.Reason,
		Source:     SourceAI,
	}, nil
}

func relevanceCacheKey(tenderName, filterIntent string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(tenderName) + "|" + strings.ToLower(filterIntent)))
	return hex.EncodeToString(sum[:])
}
