// Package portal implements the Portal Client (C1): RSS search against
// zakupki.gov.ru and HTML card enrichment of a chosen tender.
package portal

import (
	"encoding/xml"

	"github.com/nikoly240702/tender-sniper/internal/domain/filter"
)

// SearchQuery is one RSS search request: a filter's price/region/law/stage
// constraints plus a single keyword and at most one tender type — mixed-type
// filters are issued as multiple calls by the caller.
type SearchQuery struct {
	Keyword    string
	PriceMin   *float64
	PriceMax   *float64
	Regions    []string
	MaxResults int
	TenderType filter.TenderType // empty = all types
	LawType    filter.LawType
	Stage      filter.PurchaseStage
	OKPD2Codes []string
}

// rssFeed mirrors the RSS 2.0 schema: channel/item with title, link,
// pubDate (RFC 2822), and an HTML description.
type rssFeed struct {
	XMLName xml.Name   `xml:"rss"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Items []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	PubDate     string `xml:"pubDate"`
	Description string `xml:"description"`
}
