package portal

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"
	"go.uber.org/zap"

	"github.com/nikoly240702/tender-sniper/configs"
	"github.com/nikoly240702/tender-sniper/internal/apperr"
	"github.com/nikoly240702/tender-sniper/internal/domain/tender"
	"github.com/nikoly240702/tender-sniper/pkg/breaker"
	"github.com/nikoly240702/tender-sniper/pkg/ratelimit"
)

// Client translates a filter + keyword into an RSS search and enriches a
// chosen tender from its HTML card. One Client instance is shared by
// every Monitoring Loop worker; concurrency is bounded internally.
type Client struct {
	cfg configs.PortalConfig
	log *zap.SugaredLogger

	limiter *ratelimit.Limiter
	sem     *ratelimit.Semaphore
	breaker *breaker.Breaker
}

func New(cfg configs.PortalConfig, log *zap.SugaredLogger) *Client {
	return &Client{
		cfg:     cfg,
		log:     log,
		limiter: ratelimit.New(float64(cfg.MaxConcurrent), cfg.MaxConcurrent),
		sem:     ratelimit.NewSemaphore(cfg.MaxConcurrent),
		breaker: breaker.New(breaker.Config{
			Name:             "portal",
			MaxRequests:      1,
			Interval:         time.Minute,
			Timeout:          30 * time.Second,
			ConsecutiveTrips: 5,
		}),
	}
}

// SearchRSS performs one RSS query and returns the parsed tenders.
// Retries transient failures up to 3 times with exponential backoff base
// 2s before surfacing a *apperr.Error.
func (c *Client) SearchRSS(ctx context.Context, q SearchQuery) ([]*tender.Tender, error) {
	reqURL := buildRSSURL(c.cfg.BaseURL, q)

	raw, err := c.doWithRetry(ctx, "portal.searchRSS", func(ctx context.Context) ([]byte, error) {
		return c.fetch(ctx, reqURL, c.cfg.RSSTimeout)
	})
	if err != nil {
		return nil, err
	}

	var feed rssFeed
	if unmarshalErr := xml.Unmarshal(raw, &feed); unmarshalErr != nil {
		return nil, apperr.New(apperr.KindParse, "portal.searchRSS", unmarshalErr)
	}

	out := make([]*tender.Tender, 0, len(feed.Channel.Items))
	for _, item := range feed.Channel.Items {
		t, parseErr := itemToTender(item)
		if parseErr != nil {
			c.log.Warnw("skipping malformed RSS item", "link", item.Link, "error", parseErr)
			continue
		}
		out = append(out, t)
		if q.MaxResults > 0 && len(out) >= q.MaxResults {
			break
		}
	}
	return out, nil
}

// EnrichFromCard fetches t's HTML card and extracts price, deadline,
// customer fields. On failure the input is returned unmodified with
// EnrichmentAttempted=true and a warning logged, never an error — enrichment
// failure must not abort the pipeline for one tender.
func (c *Client) EnrichFromCard(ctx context.Context, t *tender.Tender, noticeType string) *tender.Tender {
	reqURL := cardURL(c.cfg.BaseURL, noticeType, t.Number)

	price, customer, region, city, address, deadline, err := c.fetchCard(ctx, reqURL)
	if err != nil {
		c.log.Warnw("card enrichment failed, leaving tender unmodified", "number", t.Number, "error", err)
		t.ApplyEnrichment(nil, "", "", "", "", nil)
		return t
	}

	t.ApplyEnrichment(price, customer, region, city, address, deadline)
	return t
}

func (c *Client) fetchCard(ctx context.Context, reqURL string) (price *float64, customer, region, city, address string, deadline *time.Time, err error) {
	raw, err := c.doWithRetry(ctx, "portal.enrichFromCard", func(ctx context.Context) ([]byte, error) {
		return c.fetch(ctx, reqURL, c.cfg.CardTimeout)
	})
	if err != nil {
		return nil, "", "", "", "", nil, err
	}

	doc, parseErr := goquery.NewDocumentFromReader(bytes.NewReader(raw))
	if parseErr != nil {
		return nil, "", "", "", "", nil, apperr.New(apperr.KindParse, "portal.enrichFromCard", parseErr)
	}

	// Card markup is a label/value row list; selectors are
	// implementation-specific, so rows are matched by their label
	// text rather than a fixed CSS class that the portal may rename.
	doc.Find(".section__info, .cardMainInfo__content").Each(func(_ int, row *goquery.Selection) {
		label := strings.ToLower(strings.TrimSpace(row.Find(".section__title, .cardMainInfo__title").Text()))
		value := strings.TrimSpace(row.Find(".section__value, .cardMainInfo__content").Text())
		if label == "" || value == "" {
			return
		}
		switch {
		case strings.Contains(label, "начальная") || strings.Contains(label, "цена"):
			if p, ok := parsePrice(value); ok {
				price = &p
			}
		case strings.Contains(label, "заказчик") || strings.Contains(label, "организация"):
			customer = value
		case strings.Contains(label, "регион"):
			region = value
		case strings.Contains(label, "город") || strings.Contains(label, "населенный"):
			city = value
		case strings.Contains(label, "адрес"):
			address = value
		case strings.Contains(label, "подачи") || strings.Contains(label, "окончания"):
			if d, ok := parseDeadline(value); ok {
				deadline = &d
			}
		}
	})

	return price, customer, region, city, address, deadline, nil
}

// fetch performs a single bounded, rate-limited HTTP GET and returns the raw
// body, classifying the failure mode as Network or Quota.
func (c *Client) fetch(ctx context.Context, reqURL string, timeout time.Duration) ([]byte, error) {
	if err := c.sem.Acquire(ctx); err != nil {
		return nil, apperr.New(apperr.KindNetwork, "portal.fetch", err)
	}
	defer c.sem.Release()

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, apperr.New(apperr.KindNetwork, "portal.fetch", err)
	}

	col := colly.NewCollector(colly.UserAgent(c.cfg.UserAgent))
	col.SetRequestTimeout(timeout)
	if c.cfg.ProxyURL != "" {
		if err := col.SetProxy(c.cfg.ProxyURL); err != nil {
			return nil, apperr.New(apperr.KindConfig, "portal.fetch", err)
		}
	}

	var body []byte
	var statusCode int
	col.OnResponse(func(r *colly.Response) {
		body = r.Body
		statusCode = r.StatusCode
	})
	col.OnError(func(r *colly.Response, _ error) {
		if r != nil {
			statusCode = r.StatusCode
		}
	})

	visitErr := col.Visit(reqURL)
	if statusCode == http.StatusTooManyRequests {
		return nil, apperr.New(apperr.KindQuotaExceeded, "portal.fetch", fmt.Errorf("rate limited: HTTP %d", statusCode))
	}
	if visitErr != nil {
		return nil, apperr.New(apperr.KindNetwork, "portal.fetch", visitErr)
	}
	if statusCode >= 500 {
		return nil, apperr.New(apperr.KindNetwork, "portal.fetch", fmt.Errorf("upstream error: HTTP %d", statusCode))
	}

	return body, nil
}

// doWithRetry retries fn up to 3 times with exponential backoff base 2s on
// Network/Quota errors, wrapped in the circuit breaker.
func (c *Client) doWithRetry(ctx context.Context, op string, fn func(ctx context.Context) ([]byte, error)) ([]byte, error) {
	maxRetries := c.cfg.MaxRetries
	backoff := c.cfg.RetryBase

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		result, err := c.breaker.Execute(ctx, func(ctx context.Context) (any, error) {
			return fn(ctx)
		})
		if err == nil {
			return result.([]byte), nil
		}
		lastErr = err

		if !isRetryable(err) || attempt == maxRetries {
			break
		}

		c.log.Warnw("portal request failed, retrying", "op", op, "attempt", attempt+1, "error", err)
		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return nil, apperr.New(apperr.KindNetwork, op, ctx.Err())
		}
		backoff *= 2
	}

	if ae, ok := lastErr.(*apperr.Error); ok {
		return nil, ae
	}
	return nil, apperr.New(apperr.KindNetwork, op, lastErr)
}

func isRetryable(err error) bool {
	kind := apperr.KindOf(err)
	return kind == apperr.KindNetwork || kind == apperr.KindQuotaExceeded
}

func itemToTender(item rssItem) (*tender.Tender, error) {
	number := regNumberFromLink(item.Link)
	if number == "" {
		return nil, fmt.Errorf("no regNumber in link %q", item.Link)
	}

	published, err := parsePubDate(item.PubDate)
	if err != nil {
		return nil, fmt.Errorf("bad pubDate %q: %w", item.PubDate, err)
	}

	t, err := tender.NewTender(number, item.Title, item.Link, published)
	if err != nil {
		return nil, err
	}
	t.Description = item.Description
	return t, nil
}

// parsePubDate parses RFC 2822 date format used by RSS 2.0.
func parsePubDate(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC1123Z, time.RFC1123, "Mon, 2 Jan 2006 15:04:05 -0700"} {
		if t, err := time.Parse(layout, strings.TrimSpace(s)); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format")
}

func parsePrice(text string) (float64, bool) {
	cleaned := strings.NewReplacer(" ", "", " ", "", "₽", "", "руб.", "", ",", ".").Replace(text)
	v, err := strconv.ParseFloat(strings.TrimSpace(cleaned), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func parseDeadline(text string) (time.Time, bool) {
	for _, layout := range []string{"02.01.2006 15:04", "02.01.2006"} {
		if t, err := time.Parse(layout, strings.TrimSpace(text)); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
