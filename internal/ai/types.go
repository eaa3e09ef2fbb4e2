// Package ai implements the LLM collaborator's three provider-agnostic
// operations: Intent, Relevance, Extract — plus the AI Relevance
// Checker (C3), AI Enrichment (C4), and Query Expander (C9) use cases that
// sit on top of them.
package ai

// RelevanceSource is the closed enum of where a relevance verdict came from.
type RelevanceSource string

const (
	SourceAI            RelevanceSource = "ai"
	SourceCache         RelevanceSource = "cache"
	SourceQuotaExceeded RelevanceSource = "quota_exceeded"
	SourceError         RelevanceSource = "error"
	SourceFallback      RelevanceSource = "fallback"
)

// RelevanceResult is the AI Relevance Checker's output.
type RelevanceResult struct {
	IsRelevant     bool
	Confidence     int
	Reason         string
	Source         RelevanceSource
	QuotaRemaining int
}

// ExtractedDocs is the AI Enrichment (C4) documentation-extraction output.
type ExtractedDocs struct {
	Requirements   []string
	Deadlines      []string
	ContactDetails string
	Summary        string
}

// relevanceResponse is the JSON shape requested from the LLM collaborator
// for the Relevance operation: "{relevant: bool, confidence: 0..100,
// reason: string}".
type relevanceResponse struct {
	Relevant   bool   `json:"relevant"`
	Confidence int    `json:"confidence"`
	Reason     string `json:"reason"`
}

// intentResponse is the JSON shape requested for Query Expander: the
// intent paragraph plus up to 5 related-term suggestions.
type intentResponse struct {
	Intent       string   `json:"intent"`
	RelatedTerms []string `json:"related_terms"`
}

// extractResponse is the JSON shape requested for the Extract operation.
type extractResponse struct {
	Requirements   []string `json:"requirements"`
	Deadlines      []string `json:"deadlines"`
	ContactDetails string   `json:"contact_details"`
	Summary        string   `json:"summary"`
}
