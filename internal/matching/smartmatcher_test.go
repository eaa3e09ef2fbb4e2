package matching

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikoly240702/tender-sniper/internal/domain/filter"
	"github.com/nikoly240702/tender-sniper/internal/domain/tender"
)

func mustTender(t *testing.T, number, name, description string, published time.Time) *tender.Tender {
	t.Helper()
	tn, err := tender.NewTender(number, name, "https://zakupki.gov.ru/"+number, published)
	require.NoError(t, err)
	tn.Description = description
	return tn
}

func mustFilter(t *testing.T, keywords, exclude []string) *filter.Filter {
	t.Helper()
	f, err := filter.New("user-1", "test filter", keywords, exclude)
	require.NoError(t, err)
	return f
}

// S1: a simple keyword match scores within bounds and carries evidence.
func TestMatchTender_SimpleMatch(t *testing.T) {
	now := time.Date(2026, 7, 30, 12, 0, 0, 0, time.UTC)
	tn := mustTender(t, "0173200001426000001", "Поставка компьютерной техники для нужд администрации", "", now)
	f := mustFilter(t, []string{"компьютер"}, nil)

	match, reason := MatchTender(tn, f, now)
	require.NotNil(t, match)
	assert.Empty(t, reason)
	assert.GreaterOrEqual(t, match.Score, 0)
	assert.LessOrEqual(t, match.Score, 100)
	assert.NotEmpty(t, match.MatchedKeywords)
}

// A long keyword that fails both the exact word-boundary match and the
// left-anchored prefix match still scores via its truncated root: "принтеры"
// (8 runes) roots down to "принте" (len-2, floored at 5) and that root
// left-anchor-matches "принтер" in the tender text.
func TestMatchTender_RootPrefixPartialMatch(t *testing.T) {
	now := time.Now()
	tn := mustTender(t, "1", "Поставка принтер лазерных для офиса", "", now)
	f := mustFilter(t, []string{"принтеры"}, nil)

	match, reason := MatchTender(tn, f, now)
	require.NotNil(t, match)
	assert.Empty(t, reason)
	assert.Contains(t, match.MatchedKeywords, "принтеры (частичное)")
}

// S2: exclude keyword takes precedence over an otherwise-strong match.
func TestMatchTender_ExcludeKeywordRejects(t *testing.T) {
	now := time.Now()
	tn := mustTender(t, "1", "Поставка серверов Dell для дата-центра", "", now)
	f := mustFilter(t, []string{"сервер"}, []string{"Dell"})

	match, reason := MatchTender(tn, f, now)
	assert.Nil(t, match)
	assert.Equal(t, RejectExcludeKeyword, reason)
}

// S3: compound phrase bonus fires on a synonym of the phrase, not just the
// verbatim phrase.
func TestMatchTender_CompoundPhraseSynonym(t *testing.T) {
	now := time.Now()
	tn := mustTender(t, "2", "Поставка службы каталогов Active Directory", "", now)
	f := mustFilter(t, []string{"служба каталогов"}, nil)

	match, reason := MatchTender(tn, f, now)
	require.NotNil(t, match)
	assert.Empty(t, reason)
	assert.GreaterOrEqual(t, match.Score, 35)
}

// S4: negative pattern overrides what would otherwise be a keyword match —
// "военная служба по контракту" must not match a filter on "служба".
func TestMatchTender_NegativePatternOverridesKeyword(t *testing.T) {
	now := time.Now()
	tn := mustTender(t, "3", "Привлечение граждан на военную службу по контракту", "", now)
	f := mustFilter(t, []string{"служба"}, nil)

	match, reason := MatchTender(tn, f, now)
	assert.Nil(t, match)
	assert.Equal(t, RejectNegativePattern, reason)
}

// Price bounds are inclusive.
func TestMatchTender_PriceBoundsInclusive(t *testing.T) {
	now := time.Now()
	price := 100.0
	tn := mustTender(t, "4", "Поставка компьютеров", "", now)
	tn.Price = &price
	min, max := 100.0, 200.0
	f := mustFilter(t, []string{"компьютер"}, nil)
	f.PriceMin = &min
	f.PriceMax = &max

	match, reason := MatchTender(tn, f, now)
	assert.NotNil(t, match)
	assert.Empty(t, reason)
}

func TestMatchTender_PriceOutOfBandRejects(t *testing.T) {
	now := time.Now()
	price := 99.0
	tn := mustTender(t, "5", "Поставка компьютеров", "", now)
	tn.Price = &price
	min, max := 100.0, 200.0
	f := mustFilter(t, []string{"компьютер"}, nil)
	f.PriceMin = &min
	f.PriceMax = &max

	match, reason := MatchTender(tn, f, now)
	assert.Nil(t, match)
	assert.Equal(t, RejectPriceOutOfBand, reason)
}

// A short (<4 rune) keyword like "пк" must word-boundary match "ПК" but
// not match as a substring of "папки".
func TestWordBoundaryMatch_ShortKeyword(t *testing.T) {
	assert.True(t, wordBoundaryMatch("пк", "Поставка ПК для офиса"))
	assert.False(t, wordBoundaryMatch("пк", "Поставка папки для документов"))
}

// Longer keywords (≥4 runes) anchor on the left only, so "сервер" matches
// as a prefix of "серверного" (morphological inflection) but must not match
// when it isn't preceded by a word boundary, as in "видеосерверов". Go's regexp
// \b (ASCII \w) would mis-handle these non-ASCII boundaries — this exercises
// the manual boundary computation instead.
func TestWordBoundaryMatch_CyrillicBoundaries(t *testing.T) {
	assert.True(t, wordBoundaryMatch("сервер", "Поставка серверного оборудования"))
	assert.False(t, wordBoundaryMatch("сервер", "Поставка видеосерверов и тушёнки"))
}

// Recency bonus is +10 for today, 0 for 4 days ago.
func TestMatchTender_RecencyBonus(t *testing.T) {
	now := time.Date(2026, 7, 30, 0, 0, 0, 0, time.UTC)

	todayTender := mustTender(t, "6", "Поставка компьютеров", "", now)
	f := mustFilter(t, []string{"компьютер"}, nil)
	matchToday, _ := MatchTender(todayTender, f, now)
	require.NotNil(t, matchToday)

	oldTender := mustTender(t, "7", "Поставка компьютеров", "", now.Add(-4*24*time.Hour))
	matchOld, _ := MatchTender(oldTender, f, now)
	require.NotNil(t, matchOld)

	assert.Equal(t, matchOld.Score+10, matchToday.Score)
}

// S8: archive-stage filters only accept tenders whose deadline has passed.
func TestMatchTender_ArchiveStage(t *testing.T) {
	now := time.Now()
	past := now.Add(-48 * time.Hour)
	tn := mustTender(t, "8", "Поставка компьютеров", "", now.Add(-72*time.Hour))
	tn.SubmissionDeadline = &past
	f := mustFilter(t, []string{"компьютер"}, nil)
	f.Stage = filter.StageArchive

	match, reason := MatchTender(tn, f, now)
	assert.NotNil(t, match)
	assert.Empty(t, reason)

	future := now.Add(48 * time.Hour)
	tn2 := mustTender(t, "9", "Поставка компьютеров", "", now)
	tn2.SubmissionDeadline = &future
	match2, reason2 := MatchTender(tn2, f, now)
	assert.Nil(t, match2)
	assert.Equal(t, RejectStage, reason2)
}

// A goods-only filter rejects service-indicator language in the tender
// name.
func TestMatchTender_GoodsOnlyRejectsServiceIndicator(t *testing.T) {
	now := time.Now()
	tn := mustTender(t, "10", "Техническое обслуживание компьютерной техники", "", now)
	f := mustFilter(t, []string{"компьютер"}, nil)
	f.TenderTypes = []filter.TenderType{filter.TenderTypeGoods}

	match, reason := MatchTender(tn, f, now)
	assert.Nil(t, match)
	assert.Equal(t, RejectGoodsOnlyService, reason)
}

// A filter with no meaningful keywords left after stop-word stripping scores
// nil rather than matching everything.
func TestMatchTender_OnlyStopWordsRejectsAsNoKeywords(t *testing.T) {
	now := time.Now()
	tn := mustTender(t, "11", "Оказание услуг по обслуживанию систем", "", now)
	f := mustFilter(t, []string{"услуга", "система", "обслуживание"}, nil)

	match, reason := MatchTender(tn, f, now)
	assert.Nil(t, match)
	assert.Equal(t, RejectNoKeywords, reason)
}

// Region hard-reject only fires when both the filter and the tender name a
// region; an unknown tender region must never be rejected on that basis.
func TestMatchTender_UnknownRegionNeverRejects(t *testing.T) {
	now := time.Now()
	tn := mustTender(t, "12", "Поставка компьютеров", "", now)
	f := mustFilter(t, []string{"компьютер"}, nil)
	f.Regions = []string{"Москва"}

	match, reason := MatchTender(tn, f, now)
	assert.NotNil(t, match)
	assert.Empty(t, reason)
}

func TestMatchTender_KnownRegionMismatchRejects(t *testing.T) {
	now := time.Now()
	tn := mustTender(t, "13", "Поставка компьютеров", "", now)
	tn.CustomerRegion = "Свердловская область"
	f := mustFilter(t, []string{"компьютер"}, nil)
	f.Regions = []string{"Москва"}

	match, reason := MatchTender(tn, f, now)
	assert.Nil(t, match)
	assert.Equal(t, RejectRegionMismatch, reason)
}
