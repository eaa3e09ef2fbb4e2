package portal

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nikoly240702/tender-sniper/internal/domain/filter"
)

func TestBuildRSSURL_IncludesKeywordAndPriceBand(t *testing.T) {
	priceMin := 100000.0
	priceMax := 5000000.0
	q := SearchQuery{
		Keyword:  "компьютер",
		PriceMin: &priceMin,
		PriceMax: &priceMax,
		Regions:  []string{"Москва"},
		Stage:    filter.StageSubmission,
	}

	got := buildRSSURL("https://zakupki.gov.ru", q)

	assert.Contains(t, got, "searchString=")
	assert.Contains(t, got, "priceFromGeneral=100000.00")
	assert.Contains(t, got, "priceToGeneral=5000000.00")
	assert.Contains(t, got, "purchaseStage=submission")
}

func TestBuildRSSURL_ArchiveStageAndSingleTenderType(t *testing.T) {
	q := SearchQuery{
		Keyword:    "принтер",
		Stage:      filter.StageArchive,
		TenderType: filter.TenderTypeGoods,
		LawType:    filter.Law44FZ,
	}

	got := buildRSSURL("https://zakupki.gov.ru/", q)

	assert.Contains(t, got, "purchaseStage=archive")
	assert.Contains(t, got, "tenderType=goods")
	assert.Contains(t, got, "fz44=on")
	assert.NotContains(t, got, "fz223=on")
}

func TestRegNumberFromLink(t *testing.T) {
	link := "https://zakupki.gov.ru/epz/order/notice/printForm/view.html?regNumber=0123456789012345678"
	assert.Equal(t, "0123456789012345678", regNumberFromLink(link))
}

func TestRegNumberFromLink_Missing(t *testing.T) {
	assert.Equal(t, "", regNumberFromLink("https://zakupki.gov.ru/no-reg-number"))
}

func TestCardURL(t *testing.T) {
	got := cardURL("https://zakupki.gov.ru", "printForm", "0123456789012345678")
	assert.Contains(t, got, "/epz/order/notice/printForm/view/common-info.html")
	assert.Contains(t, got, "regNumber=0123456789012345678")
}
