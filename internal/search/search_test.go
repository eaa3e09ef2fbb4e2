package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikoly240702/tender-sniper/internal/domain/filter"
	"github.com/nikoly240702/tender-sniper/internal/domain/tender"
)

func mustSearchTender(t *testing.T, number, name string, published time.Time) *tender.Tender {
	t.Helper()
	tn, err := tender.NewTender(number, name, "https://zakupki.gov.ru/"+number, published)
	require.NoError(t, err)
	return tn
}

func mustSearchFilter(t *testing.T, keywords, exclude []string) *filter.Filter {
	t.Helper()
	f, err := filter.New("user-1", "test", keywords, exclude)
	require.NoError(t, err)
	return f
}

func TestDedupeByNumber(t *testing.T) {
	now := time.Now()
	t1 := mustSearchTender(t, "1", "первый", now)
	t2 := mustSearchTender(t, "1", "дубликат", now)
	t3 := mustSearchTender(t, "2", "второй", now)

	out := dedupeByNumber([]*tender.Tender{t1, t2, t3})
	require.Len(t, out, 2)
	assert.Equal(t, "1", out[0].Number)
	assert.Equal(t, "2", out[1].Number)
}

func TestApplyCheapFilters_ExcludeKeyword(t *testing.T) {
	now := time.Now()
	tn := mustSearchTender(t, "1", "Поставка серверов Dell", now)
	f := mustSearchFilter(t, []string{"сервер"}, []string{"Dell"})

	out := applyCheapFilters([]*tender.Tender{tn}, f, now)
	assert.Empty(t, out)
}

func TestApplyCheapFilters_RequiresKeywordPresence(t *testing.T) {
	now := time.Now()
	tn := mustSearchTender(t, "1", "Поставка мебели", now)
	f := mustSearchFilter(t, []string{"сервер"}, nil)

	out := applyCheapFilters([]*tender.Tender{tn}, f, now)
	assert.Empty(t, out)
}

func TestApplyCheapFilters_PublicationDaysBound(t *testing.T) {
	now := time.Now()
	recent := mustSearchTender(t, "1", "Поставка серверов", now.Add(-1*24*time.Hour))
	old := mustSearchTender(t, "2", "Поставка серверов", now.Add(-10*24*time.Hour))
	f := mustSearchFilter(t, []string{"сервер"}, nil)
	f.PublicationDays = 5

	out := applyCheapFilters([]*tender.Tender{recent, old}, f, now)
	require.Len(t, out, 1)
	assert.Equal(t, "1", out[0].Number)
}

func TestApplyCheapFilters_CustomerKeywordRequired(t *testing.T) {
	now := time.Now()
	tn := mustSearchTender(t, "1", "Поставка серверов", now)
	tn.CustomerName = "Министерство обороны"
	f := mustSearchFilter(t, []string{"сервер"}, nil)
	f.CustomerKeywords = []string{"администрация"}

	out := applyCheapFilters([]*tender.Tender{tn}, f, now)
	assert.Empty(t, out)
}

func TestNoticeTypeFor(t *testing.T) {
	assert.Equal(t, "223", noticeTypeFor(filter.Law223FZ))
	assert.Equal(t, "ea44", noticeTypeFor(filter.Law44FZ))
}
