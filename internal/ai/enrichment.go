package ai

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/nikoly240702/tender-sniper/pkg/cache"
)

// enrichmentCacheTTL matches the original's 7-day documentation-summary
// cache lifetime — summaries are derived from static tender
// documents that don't change once published, so a long TTL is safe.
const enrichmentCacheTTL = 7 * 24 * time.Hour

const (
	maxInputChars = 15000 // truncation bound per ai_summarizer.py MAX_INPUT_CHARS
	summaryTokens = 500
	extractTokens = 800
)

// Enricher is the AI Enrichment (C4) use case: summarizes downloaded tender
// documentation and extracts structured fields from it, both best-effort —
// callers treat any error as "no enrichment available", never a hard failure
// of the pipeline.
type Enricher struct {
	client *Client
	cache  *cache.TTL
	log    *zap.SugaredLogger
}

func NewEnricher(client *Client, enrichmentCache *cache.TTL, log *zap.SugaredLogger) *Enricher {
	return &Enricher{client: client, cache: enrichmentCache, log: log}
}

// Summarize produces the fixed-format Russian summary (📋/💰/📅/⚠️/🚩) the
// original renders for every enriched tender. Returns "" if no AI
// backend is configured or the documentation text is empty — never an error,
// since a missing summary degrades the notification, it doesn't break it.
func (e *Enricher) Summarize(ctx context.Context, tenderContext, docText string) string {
	if !e.client.Configured() || docText == "" {
		return ""
	}
	docText = truncate(docText, maxInputChars)

	key := "summary:" + cacheDigest(tenderContext, docText)
	if cached, ok := e.cache.Get(key); ok {
		return cached.(string)
	}

	prompt := fmt.Sprintf(summaryUserPromptTemplate, tenderContext, docText)
	raw, err := e.client.complete(ctx, "ai.summarize", summarySystemPrompt, prompt, summaryTokens)
	if err != nil {
		e.log.Warnw("ai summarize failed", "error", err)
		return ""
	}

	e.cache.Set(key, raw, enrichmentCacheTTL)
	return raw
}

// Extract pulls structured fields (requirements, deadlines, contacts) out of
// downloaded documentation text. Returns a zero
// ExtractedDocs, not an error, when no backend is configured or the call
// fails — the caller proceeds with whatever it already has.
func (e *Enricher) Extract(ctx context.Context, tenderContext, docText string) ExtractedDocs {
	if !e.client.Configured() || docText == "" {
		return ExtractedDocs{}
	}
	docText = truncate(docText, maxInputChars)

	key := "extract:" + cacheDigest(tenderContext, docText)
	if cached, ok := e.cache.Get(key); ok {
		return cached.(ExtractedDocs)
	}

	prompt := fmt.Sprintf(extractUserPromptTemplate, tenderContext, docText)
	raw, err := e.client.complete(ctx, "ai.extract", extractSystemPrompt, prompt, extractTokens)
	if err != nil {
		e.log.Warnw("ai extract failed", "error", err)
		return ExtractedDocs{}
	}

	var resp extractResponse
	if err := extractJSON(raw, &resp); err != nil {
		e.log.Warnw("ai extract response not parseable", "error", err)
		return ExtractedDocs{}
	}

	docs := ExtractedDocs{
		Requirements:   resp.Requirements,
		Deadlines:      resp.Deadlines,
		ContactDetails: resp.ContactDetails,
		Summary:        resp.Summary,
	}
	e.cache.Set(key, docs, enrichmentCacheTTL)
	return docs
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}

func cacheDigest(parts ...string) string {
	sum := sha256.Sum256([]byte(fmt.Sprint(parts)))
	return hex.EncodeToString(sum[:])
}
