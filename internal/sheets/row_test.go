package sheets

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikoly240702/tender-sniper/internal/ai"
	"github.com/nikoly240702/tender-sniper/internal/domain/tender"
	"github.com/nikoly240702/tender-sniper/internal/matching"
)

func TestBuildRow_WithoutAI(t *testing.T) {
	tn, err := tender.NewTender("1", "Поставка серверов", "https://zakupki.gov.ru/1", time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	price := 1500000.0
	tn.Price = &price
	tn.CustomerName = "ООО Ромашка"
	tn.CustomerRegion = "Москва"

	m := matching.Match{Score: 90, RedFlags: []string{"короткий срок"}}

	row := BuildRow(tn, m, "мой фильтр", nil)

	assert.Equal(t, "https://zakupki.gov.ru/1", row.Link)
	assert.Equal(t, "Поставка серверов", row.Name)
	assert.Equal(t, "ООО Ромашка", row.Customer)
	assert.Equal(t, "Москва", row.Region)
	assert.Equal(t, "02.01.2026", row.Published)
	assert.Equal(t, "мой фильтр", row.FilterName)
	assert.Equal(t, "90", row.Score)
	assert.Equal(t, "короткий срок", row.RedFlags)
	assert.Equal(t, "1 500 000 ₽", row.Price)
	assert.Nil(t, row.AI)
}

func TestBuildRow_WithAIDocs(t *testing.T) {
	tn, err := tender.NewTender("1", "Поставка серверов", "https://zakupki.gov.ru/1", time.Now())
	require.NoError(t, err)
	m := matching.Match{Score: 70}
	docs := &ai.ExtractedDocs{
		Requirements: []string{"лицензия ФСТЭК"},
		Deadlines:    []string{"до 30.08.2026"},
		Summary:      "краткое содержание",
	}

	row := BuildRow(tn, m, "фильтр", docs)

	require.NotNil(t, row.AI)
	assert.Equal(t, "лицензия ФСТЭК", row.AI.Licenses)
	assert.Equal(t, "до 30.08.2026", row.AI.DeliveryDate)
	assert.Equal(t, "краткое содержание", row.AI.Summary)
}

func TestHeaders_IncludeAI(t *testing.T) {
	withAI := headers(true)
	withoutAI := headers(false)

	assert.Greater(t, len(withAI), len(withoutAI))
	assert.Equal(t, statusHeader, withAI[len(withAI)-1])
	assert.Equal(t, statusHeader, withoutAI[len(withoutAI)-1])
}

func TestRowValues_PadsAIColumnsWhenNilButRequested(t *testing.T) {
	row := Row{Link: "l", Name: "n"}
	values := row.values(true)

	// base 10 columns + 7 AI columns + 1 status column
	assert.Len(t, values, 18)
	assert.Equal(t, "", values[len(values)-1])
}
