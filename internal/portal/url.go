package portal

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/nikoly240702/tender-sniper/internal/domain/filter"
)

// buildRSSURL constructs the RSS search URL against the portal's search
// template. Region codes and the exact law-specific parameter keys are not
// documented in the
// source; region names are sent verbatim under
// okato — matching the portal's tolerant query parsing observed in the
// original scraper rather than a hard-coded region-code table.
func buildRSSURL(baseURL string, q SearchQuery) string {
	v := url.Values{}
	v.Set("searchString", q.Keyword)
	v.Set("morphology", "on")
	v.Set("recordsPerPage", "_"+strconv.Itoa(recordsPerPage(q.MaxResults)))

	if q.PriceMin != nil {
		v.Set("priceFromGeneral", strconv.FormatFloat(*q.PriceMin, 'f', 2, 64))
	}
	if q.PriceMax != nil {
		v.Set("priceToGeneral", strconv.FormatFloat(*q.PriceMax, 'f', 2, 64))
	}
	for _, code := range q.OKPD2Codes {
		v.Add("okved2IdsCodes", code)
	}
	for _, region := range q.Regions {
		v.Add("okato", region)
	}

	switch q.LawType {
	case filter.Law44FZ:
		v.Set("fz44", "on")
	case filter.Law223FZ:
		v.Set("fz223", "on")
	default:
		v.Set("fz44", "on")
		v.Set("fz223", "on")
	}

	switch q.Stage {
	case filter.StageArchive:
		v.Set("purchaseStage", "archive")
	default:
		v.Set("purchaseStage", "submission")
	}

	switch q.TenderType {
	case filter.TenderTypeGoods, filter.TenderTypeServices, filter.TenderTypeWorks:
		v.Set("tenderType", string(q.TenderType))
	}

	return fmt.Sprintf("%s/epz/order/extendedsearch/results/rss?%s", strings.TrimRight(baseURL, "/"), v.Encode())
}

// recordsPerPage clamps the RSS page size to the portal's accepted steps.
func recordsPerPage(maxResults int) int {
	switch {
	case maxResults <= 10:
		return 10
	case maxResults <= 20:
		return 20
	case maxResults <= 50:
		return 50
	default:
		return 100
	}
}

// cardURL constructs the portal card URL.
func cardURL(baseURL, noticeType, regNumber string) string {
	v := url.Values{}
	v.Set("regNumber", regNumber)
	return fmt.Sprintf("%s/epz/order/notice/%s/view/common-info.html?%s",
		strings.TrimRight(baseURL, "/"), noticeType, v.Encode())
}

// regNumberFromLink extracts the registration number from a portal item
// link's regNumber query parameter — the RSS item's stable identifier.
func regNumberFromLink(link string) string {
	u, err := url.Parse(link)
	if err != nil {
		return ""
	}
	return u.Query().Get("regNumber")
}
