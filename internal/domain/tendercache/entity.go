// Package tendercache models the content-addressed record used to skip
// re-enrichment and re-scoring of unchanged tenders.
package tendercache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Entry records that a tender's scoring-relevant fields were last seen with
// a given content hash. A cache hit (same number, same hash) implies the
// tender snapshot is byte-equal for the fields SmartMatcher scores against.
type Entry struct {
	TenderNumber string
	ContentHash  string
	LastSeen     time.Time
	TimesMatched int
}

// HashContent derives the content hash from a tender's scoring fields, as
// produced by tender.Tender.ScoringFields(). Kept outside the tender package
// so that package stays free of a hashing dependency.
func HashContent(scoringFields string) string {
	sum := sha256.Sum256([]byte(scoringFields))
	return hex.EncodeToString(sum[:])
}

// IsStale reports whether the entry is older than ttl and should be treated
// as a miss.
func (e Entry) IsStale(now time.Time, ttl time.Duration) bool {
	return now.Sub(e.LastSeen) > ttl
}
