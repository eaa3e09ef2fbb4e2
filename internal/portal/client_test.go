package portal

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikoly240702/tender-sniper/configs"
	"github.com/nikoly240702/tender-sniper/pkg/logger"
)

const sampleRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <item>
      <title>Поставка компьютеров</title>
      <link>https://zakupki.gov.ru/epz/order/notice/printForm/view.html?regNumber=0123456789012345678</link>
      <pubDate>Mon, 02 Jan 2006 15:04:05 +0300</pubDate>
      <description>&lt;p&gt;Начальная цена: 2500000 руб.&lt;/p&gt;</description>
    </item>
    <item>
      <title>Без номера</title>
      <link>https://zakupki.gov.ru/no-reg-number</link>
      <pubDate>Mon, 02 Jan 2006 15:04:05 +0300</pubDate>
      <description></description>
    </item>
  </channel>
</rss>`

func testPortalConfig(baseURL string) configs.PortalConfig {
	return configs.PortalConfig{
		BaseURL:           baseURL,
		UserAgent:         "tender-sniper-test",
		MaxConcurrent:     4,
		MaxRetries:        3,
		RetryBase:         10 * time.Millisecond,
		RSSTimeout:        time.Second,
		CardTimeout:       time.Second,
		MaxTendersPerPoll: 100,
	}
}

func TestClient_SearchRSS_ParsesItemsAndSkipsMalformed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(sampleRSS))
	}))
	defer srv.Close()

	c := New(testPortalConfig(srv.URL), logger.Noop())
	tenders, err := c.SearchRSS(context.Background(), SearchQuery{Keyword: "компьютер", MaxResults: 10})

	require.NoError(t, err)
	require.Len(t, tenders, 1)
	assert.Equal(t, "0123456789012345678", tenders[0].Number)
	assert.Equal(t, "Поставка компьютеров", tenders[0].Name)
}

func TestClient_SearchRSS_ZeroMaxResultsMeansNoCap(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(sampleRSS))
	}))
	defer srv.Close()

	c := New(testPortalConfig(srv.URL), logger.Noop())
	tenders, err := c.SearchRSS(context.Background(), SearchQuery{Keyword: "компьютер", MaxResults: 0})

	require.NoError(t, err)
	require.Len(t, tenders, 1)
}

func TestClient_SearchRSS_MalformedFeedReturnsParseError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not xml at all"))
	}))
	defer srv.Close()

	c := New(testPortalConfig(srv.URL), logger.Noop())
	_, err := c.SearchRSS(context.Background(), SearchQuery{Keyword: "x"})

	require.Error(t, err)
}

func TestClient_SearchRSS_RetriesOnServerErrorThenSucceeds(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 2 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(sampleRSS))
	}))
	defer srv.Close()

	cfg := testPortalConfig(srv.URL)
	c := New(cfg, logger.Noop())
	tenders, err := c.SearchRSS(context.Background(), SearchQuery{Keyword: "компьютер"})

	require.NoError(t, err)
	require.Len(t, tenders, 1)
	assert.GreaterOrEqual(t, attempts, 2)
}

func TestParsePubDate_RFC2822(t *testing.T) {
	got, err := parsePubDate("Mon, 02 Jan 2006 15:04:05 +0300")
	require.NoError(t, err)
	assert.Equal(t, 2006, got.Year())
}

func TestParsePrice(t *testing.T) {
	v, ok := parsePrice("2 500 000 руб.")
	require.True(t, ok)
	assert.Equal(t, 2500000.0, v)
}

func TestParseDeadline(t *testing.T) {
	d, ok := parseDeadline("15.03.2026")
	require.True(t, ok)
	assert.Equal(t, 2026, d.Year())
}
