package report

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikoly240702/tender-sniper/internal/matching"
)

func TestFormatPrice_Nil(t *testing.T) {
	assert.Equal(t, "не указана", formatPrice(nil))
}

func TestFormatPrice_ThousandsSeparated(t *testing.T) {
	price := 1234567.0
	assert.Equal(t, "1 234 567 ₽", formatPrice(&price))
}

func TestFormatPrice_SmallValue(t *testing.T) {
	price := 99.0
	assert.Equal(t, "99 ₽", formatPrice(&price))
}

func TestGenerator_Render_IncludesCardsAndOmitsRejected(t *testing.T) {
	g, err := NewGenerator()
	require.NoError(t, err)

	data := Data{
		FilterName:  "моя закупка",
		GeneratedAt: time.Now(),
		Cards: []Card{
			{Number: "1", Name: "Поставка серверов", URL: "https://zakupki.gov.ru/1", Score: 80, MatchedKeywords: []string{"сервер"}},
		},
		Rejected: []RejectedCard{
			{Number: "2", Name: "Поставка мебели", Reason: matching.RejectNoKeywords},
		},
	}

	html, err := g.Render(data)
	require.NoError(t, err)
	assert.Contains(t, html, "Поставка серверов")
	assert.NotContains(t, html, "Поставка мебели")
}

func TestGenerator_RenderDebugReport_IncludesRejected(t *testing.T) {
	g, err := NewGenerator()
	require.NoError(t, err)

	data := Data{
		FilterName:  "моя закупка",
		GeneratedAt: time.Now(),
		Cards: []Card{
			{Number: "1", Name: "Поставка серверов", URL: "https://zakupki.gov.ru/1", Score: 80},
		},
	}
	rejected := []RejectedCard{
		{Number: "2", Name: "Поставка мебели", Reason: matching.RejectNoKeywords},
	}

	html, err := g.RenderDebugReport(data, rejected)
	require.NoError(t, err)
	assert.Contains(t, html, "Поставка серверов")
	assert.Contains(t, html, "Поставка мебели")
	assert.True(t, strings.Contains(html, string(matching.RejectNoKeywords)))
}

func TestRejectionSummary_CountsByReason(t *testing.T) {
	rejected := []RejectedCard{
		{Number: "1", Reason: matching.RejectNoKeywords},
		{Number: "2", Reason: matching.RejectNoKeywords},
		{Number: "3", Reason: matching.RejectPriceOutOfBand},
	}

	summary := RejectionSummary(rejected)
	assert.Equal(t, 2, summary[matching.RejectNoKeywords])
	assert.Equal(t, 1, summary[matching.RejectPriceOutOfBand])
}
