package matching

import (
	"math"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/nikoly240702/tender-sniper/internal/domain/filter"
	"github.com/nikoly240702/tender-sniper/internal/domain/tender"
)

// MatchTender scores a tender against a filter: hard-reject rules fire
// first, in priority order, then soft scoring runs. A nil Match means hard
// reject or "no meaningful signal"; reason explains why, for the debug
// report.
func MatchTender(t *tender.Tender, f *filter.Filter, now time.Time) (*Match, RejectReason) {
	text := t.SearchableText()

	// --- hard reject 1: exclude keywords, word-boundary ---
	for _, excl := range f.ExcludeKeywords {
		if wordBoundaryMatch(excl, text) {
			return nil, RejectExcludeKeyword
		}
	}

	// --- hard reject 2: negative patterns ---
	lowerText := strings.ToLower(text)
	for _, pattern := range negativePatterns {
		if strings.Contains(lowerText, pattern) {
			return nil, RejectNegativePattern
		}
	}

	// --- hard reject 3: price band ---
	if t.Price != nil {
		if f.PriceMin != nil && *t.Price < *f.PriceMin {
			return nil, RejectPriceOutOfBand
		}
		if f.PriceMax != nil && *t.Price > *f.PriceMax {
			return nil, RejectPriceOutOfBand
		}
	}

	// --- hard reject 4: regions — only when both sides are known ---
	if len(f.Regions) > 0 && t.CustomerRegion != "" {
		matched := false
		region := strings.ToLower(t.CustomerRegion)
		for _, r := range f.Regions {
			if strings.Contains(region, strings.ToLower(r)) {
				matched = true
				break
			}
		}
		if !matched {
			return nil, RejectRegionMismatch
		}
	}

	// --- hard reject 5: goods-only filter vs. service-indicator phrase ---
	if f.RestrictsGoodsOnly() {
		name := strings.ToLower(t.Name)
		for _, phrase := range serviceIndicatorPhrases {
			if strings.Contains(name, phrase) {
				return nil, RejectGoodsOnlyService
			}
		}
	}

	// --- hard reject 6: stage gate ---
	if t.SubmissionDeadline != nil {
		switch f.Stage {
		case filter.StageSubmission, "":
			if t.SubmissionDeadline.Before(now) {
				return nil, RejectStage
			}
		case filter.StageArchive:
			if !t.SubmissionDeadline.Before(now) {
				return nil, RejectStage
			}
		}
	}

	// --- hard reject 7: publication age ---
	if f.PublicationDays > 0 {
		if now.Sub(t.PublishedDate) > time.Duration(f.PublicationDays)*24*time.Hour {
			return nil, RejectTooOld
		}
	}

	return softScore(t, f, text, now)
}

// softScore runs the weighted scoring passes: keyword and phrase matches,
// brand/abbreviation synonyms, and price-centrality and recency bonuses.
func softScore(t *tender.Tender, f *filter.Filter, text string, now time.Time) (*Match, RejectReason) {
	compoundsFound, remaining := extractCompoundPhrases(f.Keywords)

	meaningful := make([]string, 0, len(remaining))
	for _, kw := range remaining {
		norm := strings.ToLower(strings.TrimSpace(kw))
		if norm == "" || stopWords[norm] {
			continue
		}
		meaningful = append(meaningful, kw)
	}

	totalPrepared := len(compoundsFound) + len(meaningful)
	if totalPrepared == 0 {
		return nil, RejectNoKeywords
	}

	score := 0
	var matchedKeywords []string

	for _, phrase := range compoundsFound {
		if strings.Contains(text, phrase.Phrase) {
			score += 35
			matchedKeywords = append(matchedKeywords, "📌 "+phrase.Phrase)
		}
		for _, syn := range phrase.Synonyms {
			if strings.Contains(text, strings.ToLower(syn)) {
				score += 35
				matchedKeywords = append(matchedKeywords, "📌 "+phrase.Phrase+" (синоним: "+syn+")")
				break
			}
		}
	}

	matchedCount := 0
	for _, kw := range meaningful {
		norm := strings.ToLower(strings.TrimSpace(kw))

		if utf8.RuneCountInString(norm) < 4 {
			if wordBoundaryMatch(norm, text) {
				score += 25
				matchedKeywords = append(matchedKeywords, kw)
				matchedCount++
			}
			continue
		}

		if wordBoundaryMatchPrefix(norm, text) {
			score += 25
			matchedKeywords = append(matchedKeywords, kw)
			matchedCount++
			continue
		}

		normRunes := utf8.RuneCountInString(norm)
		rootLen := normRunes - 2
		if rootLen < 5 {
			rootLen = 5
		}
		if rootLen < normRunes {
			root := string([]rune(norm)[:rootLen])
			if wordBoundaryMatchPrefix(root, text) {
				score += 18
				matchedKeywords = append(matchedKeywords, kw+" (частичное)")
				matchedCount++
				continue
			}
		}

		if matchAlternatives(norm, synonyms[norm], text, kw, "синоним", 20, &score, &matchedKeywords) {
			matchedCount++
			continue
		}
		if matchAlternatives(norm, brandSynonyms[norm], text, kw, "бренд", 22, &score, &matchedKeywords) {
			matchedCount++
			continue
		}
		if matchAlternatives(norm, abbreviations[norm], text, kw, "аббр", 22, &score, &matchedKeywords) {
			matchedCount++
			continue
		}
	}

	if len(matchedKeywords) == 0 {
		return nil, RejectNoMatch
	}

	matchedTotal := matchedCount
	for _, phrase := range compoundsFound {
		if strings.Contains(text, phrase.Phrase) {
			matchedTotal++
		} else {
			for _, syn := range phrase.Synonyms {
				if strings.Contains(text, strings.ToLower(syn)) {
					matchedTotal++
					break
				}
			}
		}
	}

	ratio := float64(matchedTotal) / float64(totalPrepared)
	if totalPrepared >= 3 && ratio < 0.3 {
		score -= int(float64(score) * 0.3)
	} else if ratio >= 0.7 {
		score += int(float64(score) * 0.2)
	}

	// Step 5 — bonuses.
	if f.PriceMin != nil && f.PriceMax != nil && t.Price != nil && *f.PriceMax > *f.PriceMin {
		mid := (*f.PriceMin + *f.PriceMax) / 2
		deviation := math.Abs(*t.Price-mid) / (*f.PriceMax - *f.PriceMin)
		bonus := int(math.Round((1 - 2*deviation) * 20))
		if bonus > 20 {
			bonus = 20
		}
		if bonus < 0 {
			bonus = 0
		}
		score += bonus
	}

	daysOld := t.DaysSincePublished(now)
	if daysOld == 0 {
		score += 10
	} else if daysOld <= 3 {
		score += 5
	}

	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}

	match := &Match{
		Score:           score,
		MatchedKeywords: matchedKeywords,
		RedFlags:        redFlags(t, f, now),
	}
	return match, ""
}

// matchAlternatives tries each alternate spelling in alts against text; on
// first hit it records score+label and returns true.
func matchAlternatives(norm string, alts []string, text, originalKeyword, label string, points int, score *int, matched *[]string) bool {
	for _, alt := range alts {
		if wordBoundaryMatch(alt, text) {
			*score += points
			*matched = append(*matched, originalKeyword+" ("+label+": "+alt+")")
			return true
		}
	}
	return false
}

// extractCompoundPhrases splits a filter's keyword list into recognized
// compound phrases and the remaining single keywords.
func extractCompoundPhrases(keywords []string) ([]compoundPhrase, []string) {
	var found []compoundPhrase
	var remaining []string

	for _, kw := range keywords {
		norm := strings.ToLower(strings.TrimSpace(kw))
		matchedAsWhole := false
		for _, cp := range compoundPhrases {
			if norm == cp.Phrase {
				found = append(found, cp)
				matchedAsWhole = true
				break
			}
		}
		if matchedAsWhole {
			continue
		}

		matchedAsSubstring := false
		for _, cp := range compoundPhrases {
			if strings.Contains(norm, cp.Phrase) {
				found = append(found, cp)
				matchedAsSubstring = true
				leftover := strings.TrimSpace(strings.Replace(norm, cp.Phrase, "", 1))
				for _, word := range strings.Fields(leftover) {
					if utf8.RuneCountInString(word) >= 3 && !stopWords[word] {
						remaining = append(remaining, word)
					}
				}
				break
			}
		}
		if !matchedAsSubstring {
			remaining = append(remaining, kw)
		}
	}

	return found, remaining
}

// redFlags attaches warnings surfaced by the Report Generator and
// Notification Store.
func redFlags(t *tender.Tender, f *filter.Filter, now time.Time) []string {
	var flags []string

	if t.SubmissionDeadline != nil {
		remaining := t.SubmissionDeadline.Sub(now)
		if remaining > 0 && remaining < 3*24*time.Hour {
			flags = append(flags, "дедлайн менее 3 дней")
		}
	}

	if t.Price != nil && f.PriceMin != nil && f.PriceMax != nil && *f.PriceMax > *f.PriceMin {
		mid := (*f.PriceMin + *f.PriceMax) / 2
		halfRange := (*f.PriceMax - *f.PriceMin) / 2
		if halfRange > 0 && math.Abs(*t.Price-mid)/halfRange > 1.5 {
			flags = append(flags, "цена сильно вне диапазона фильтра")
		}
	}

	if t.CustomerRegion == "" {
		flags = append(flags, "регион заказчика неизвестен")
	}

	return flags
}

// wordBoundaryMatch anchors short keywords (<4 runes) on both sides, and
// longer keywords on the left only. Go's regexp \b is
// ASCII-only (\w = [0-9A-Za-z_]) and would silently fail to bound Cyrillic
// text, so boundaries are computed manually against Unicode letters/digits.
func wordBoundaryMatch(keyword, text string) bool {
	norm := strings.ToLower(strings.TrimSpace(keyword))
	if norm == "" {
		return false
	}
	return findBoundedMatch(norm, strings.ToLower(text), utf8.RuneCountInString(norm) < 4)
}

// wordBoundaryMatchPrefix anchors only on the left, regardless of keyword
// length — used for the "prefix-of-word" rule.
func wordBoundaryMatchPrefix(keyword, text string) bool {
	norm := strings.ToLower(strings.TrimSpace(keyword))
	if norm == "" {
		return false
	}
	return findBoundedMatch(norm, strings.ToLower(text), false)
}

func findBoundedMatch(needle, haystack string, anchorRight bool) bool {
	start := 0
	for {
		idx := strings.Index(haystack[start:], needle)
		if idx == -1 {
			return false
		}
		idx += start

		leftOK := idx == 0 || !isWordRune(runeBefore(haystack, idx))
		rightOK := true
		if anchorRight {
			end := idx + len(needle)
			rightOK = end == len(haystack) || !isWordRune(runeAt(haystack, end))
		}
		if leftOK && rightOK {
			return true
		}

		_, size := utf8.DecodeRuneInString(haystack[idx:])
		start = idx + size
		if start >= len(haystack) {
			return false
		}
	}
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func runeBefore(s string, byteIdx int) rune {
	r, _ := utf8.DecodeLastRuneInString(s[:byteIdx])
	return r
}

func runeAt(s string, byteIdx int) rune {
	r, _ := utf8.DecodeRuneInString(s[byteIdx:])
	return r
}
