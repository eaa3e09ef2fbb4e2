// Package search implements Instant Search (C7): a synchronous, one-shot
// run of the same discovery pipeline the Monitoring Loop runs periodically,
// producing an HTML report instead of push notifications.
package search

import (
	"context"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/nikoly240702/tender-sniper/internal/ai"
	"github.com/nikoly240702/tender-sniper/internal/domain/filter"
	"github.com/nikoly240702/tender-sniper/internal/domain/tender"
	"github.com/nikoly240702/tender-sniper/internal/matching"
	"github.com/nikoly240702/tender-sniper/internal/portal"
)

// aiCheckSkipThreshold: a SmartMatcher score at or above this is confident
// enough on its own — the AI Relevance Checker is skipped.
const aiCheckSkipThreshold = 85

// variantResultMultiplier caps each transliteration variant's RSS pull at
// max_tenders × 1.5.
const variantResultMultiplier = 1.5

// Result is one matched tender plus the scoring evidence, ready for the
// Report Generator.
type Result struct {
	Tender *tender.Tender
	Match  matching.Match
}

// Service runs Instant Search against the Portal Client, optionally
// consulting the AI Relevance Checker per survivor.
type Service struct {
	portal  *portal.Client
	checker *ai.Checker
	log     *zap.SugaredLogger
	cache   *sessionCache
}

func NewService(portalClient *portal.Client, checker *ai.Checker, log *zap.SugaredLogger) *Service {
	return &Service{portal: portalClient, checker: checker, log: log, cache: newSessionCache()}
}

// Run executes the seven-step search algorithm: transliterate, fetch,
// dedupe + cheap filter, pre-score, enrich survivors, re-score, sort + cap.
// aiEnabled gates step 5's AI Relevance Checker call; userID/tier are only
// used when aiEnabled is true.
func (s *Service) Run(ctx context.Context, f *filter.Filter, maxTenders int, aiEnabled bool, userID, tier string) ([]Result, error) {
	now := time.Now()

	candidates, err := s.fetchVariants(ctx, f, maxTenders)
	if err != nil {
		return nil, err
	}

	deduped := dedupeByNumber(candidates)
	cheaplyFiltered := applyCheapFilters(deduped, f, now)

	preScoreFilter := f.WithoutRegions()
	type scored struct {
		t *tender.Tender
		m matching.Match
	}
	var survivors []scored
	for _, t := range cheaplyFiltered {
		m, reject := matching.MatchTender(t, preScoreFilter, now)
		if reject != "" || m == nil || m.Score < 1 {
			continue
		}
		survivors = append(survivors, scored{t: t, m: *m})
	}

	noticeType := noticeTypeFor(f.LawType)
	results := make([]Result, 0, len(survivors))
	for _, sv := range survivors {
		t := s.enrichCached(ctx, sv.t, noticeType)

		finalMatch, reject := matching.MatchTender(t, f, now)
		if reject != "" || finalMatch == nil {
			continue
		}

		if aiEnabled && s.checker != nil && finalMatch.Score < aiCheckSkipThreshold {
			verdict := s.checker.Check(ctx, userID, tier, t, f)
			if !verdict.IsRelevant {
				continue
			}
		}

		results = append(results, Result{Tender: t, Match: *finalMatch})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Match.Score > results[j].Match.Score
	})
	if maxTenders > 0 && len(results) > maxTenders {
		results = results[:maxTenders]
	}
	return results, nil
}

func (s *Service) fetchVariants(ctx context.Context, f *filter.Filter, maxTenders int) ([]*tender.Tender, error) {
	perVariantCap := int(float64(maxTenders) * variantResultMultiplier)
	if perVariantCap < maxTenders {
		perVariantCap = maxTenders
	}

	var all []*tender.Tender
	for _, keyword := range f.Keywords {
		for _, variant := range Variants(keyword) {
			q := portal.SearchQuery{
				Keyword:    variant,
				PriceMin:   f.PriceMin,
				PriceMax:   f.PriceMax,
				MaxResults: perVariantCap,
				LawType:    f.LawType,
				Stage:      f.Stage,
				OKPD2Codes: f.OKPD2Codes,
			}
			if len(f.TenderTypes) == 1 {
				q.TenderType = f.TenderTypes[0]
			}

			tenders, err := s.portal.SearchRSS(ctx, q)
			if err != nil {
				s.log.Warnw("instant search variant failed", "keyword", variant, "error", err)
				continue
			}
			all = append(all, tenders...)
		}
	}
	return all, nil
}

func (s *Service) enrichCached(ctx context.Context, t *tender.Tender, noticeType string) *tender.Tender {
	if rec, ok := s.cache.get(t.Number); ok {
		t.ApplyEnrichment(rec.Price, rec.CustomerName, rec.CustomerRegion, rec.CustomerCity, rec.CustomerAddress, rec.SubmissionDeadline)
		return t
	}

	enriched := s.portal.EnrichFromCard(ctx, t, noticeType)
	s.cache.put(enriched.Number, enrichedRecord{
		Price:              enriched.Price,
		CustomerName:       enriched.CustomerName,
		CustomerRegion:     enriched.CustomerRegion,
		CustomerCity:       enriched.CustomerCity,
		CustomerAddress:    enriched.CustomerAddress,
		SubmissionDeadline: enriched.SubmissionDeadline,
	})
	return enriched
}

func dedupeByNumber(tenders []*tender.Tender) []*tender.Tender {
	seen := make(map[string]struct{}, len(tenders))
	out := make([]*tender.Tender, 0, len(tenders))
	for _, t := range tenders {
		if _, ok := seen[t.Number]; ok {
			continue
		}
		seen[t.Number] = struct{}{}
		out = append(out, t)
	}
	return out
}

// applyCheapFilters runs the filters cheap enough to apply straight off the
// RSS feed: exclude keywords, keyword presence, deadline sanity,
// min_deadline_days, customer
// keywords — all cheap because they only need RSS-stage fields, no card
// enrichment.
func applyCheapFilters(tenders []*tender.Tender, f *filter.Filter, now time.Time) []*tender.Tender {
	out := make([]*tender.Tender, 0, len(tenders))
	for _, t := range tenders {
		text := t.SearchableText()

		excluded := false
		for _, ex := range f.ExcludeKeywords {
			if strings.Contains(text, strings.ToLower(ex)) {
				excluded = true
				break
			}
		}
		if excluded {
			continue
		}

		hasKeyword := false
		for _, kw := range f.Keywords {
			if strings.Contains(text, strings.ToLower(kw)) {
				hasKeyword = true
				break
			}
		}
		if !hasKeyword {
			continue
		}

		if f.MinDeadlineDays > 0 && t.SubmissionDeadline != nil {
			if t.SubmissionDeadline.Before(now.Add(time.Duration(f.MinDeadlineDays) * 24 * time.Hour)) {
				continue
			}
		}

		if len(f.CustomerKeywords) > 0 {
			matchedCustomer := false
			for _, ck := range f.CustomerKeywords {
				if strings.Contains(text, strings.ToLower(ck)) {
					matchedCustomer = true
					break
				}
			}
			if !matchedCustomer {
				continue
			}
		}

		if f.PublicationDays > 0 && t.DaysSincePublished(now) > f.PublicationDays {
			continue
		}

		out = append(out, t)
	}
	return out
}

// noticeTypeFor picks the portal card's notice-type path segment for a
// filter's law type — indicative only, same caveat as
// internal/portal/url.go's region-code handling.
func noticeTypeFor(lawType filter.LawType) string {
	if lawType == filter.Law223FZ {
		return "223"
	}
	return "ea44"
}
