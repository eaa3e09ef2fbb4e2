package filter

import (
	"strings"
	"time"
)

// Filter is a user-defined persistent search specification.
// Mutated only by its owning user; soft-deactivated (IsActive=false), never
// deleted, when the user disables it.
type Filter struct {
	ID     string
	UserID string

	Name string

	Keywords        []string // non-empty positive keywords
	ExcludeKeywords []string

	PriceMin *float64
	PriceMax *float64

	Regions []string // official region names

	TenderTypes []TenderType // subset of {goods, services, works}; empty = all
	LawType     LawType
	Stage       PurchaseStage

	OKPD2Codes []string

	MinDeadlineDays int // reject tenders whose deadline is closer than this

	CustomerKeywords []string
	PublicationDays  int // max age in days for discovered tenders; 0 = unbounded

	IsActive bool

	// AIIntent is regenerated (by the Query Expander, C9) whenever Name,
	// Keywords, or ExcludeKeywords change; immutable between edits otherwise.
	AIIntent string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// New constructs a Filter with defaults applied (stage=submission) and
// validates its invariants.
func New(userID, name string, keywords, excludeKeywords []string) (*Filter, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}

	cleanKeywords := cleanList(keywords)
	if len(cleanKeywords) == 0 {
		return nil, ErrNoKeywords
	}

	now := time.Now()
	return &Filter{
		UserID:          userID,
		Name:            name,
		Keywords:        cleanKeywords,
		ExcludeKeywords: cleanList(excludeKeywords),
		Stage:           DefaultPurchaseStage,
		LawType:         LawBoth,
		IsActive:        true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// Validate checks the cross-field invariants: price_min ≤ price_max when
// both set, and a non-empty keyword list.
func (f *Filter) Validate() error {
	if len(cleanList(f.Keywords)) == 0 {
		return ErrNoKeywords
	}
	if f.PriceMin != nil && f.PriceMax != nil && *f.PriceMin > *f.PriceMax {
		return ErrInvalidPriceBand
	}
	for _, tt := range f.TenderTypes {
		if !tt.Valid() {
			return ErrInvalidTenderType
		}
	}
	if !f.LawType.Valid() {
		return ErrInvalidLawType
	}
	if !f.Stage.Valid() {
		return ErrInvalidStage
	}
	return nil
}

// KeywordsChanged reports whether editing name/keywords/exclusions requires
// regenerating AIIntent.
func (f *Filter) KeywordsChanged(newName string, newKeywords, newExclude []string) bool {
	if strings.TrimSpace(newName) != f.Name {
		return true
	}
	return !stringSliceEqual(f.Keywords, cleanList(newKeywords)) ||
		!stringSliceEqual(f.ExcludeKeywords, cleanList(newExclude))
}

// Deactivate soft-disables the filter; it is never deleted.
func (f *Filter) Deactivate() {
	f.IsActive = false
	f.UpdatedAt = time.Now()
}

// RestrictsGoodsOnly reports whether TenderTypes narrows to exactly {goods},
// the condition that triggers SmartMatcher hard-reject rule 5.
func (f *Filter) RestrictsGoodsOnly() bool {
	return len(f.TenderTypes) == 1 && f.TenderTypes[0] == TenderTypeGoods
}

// WithoutRegions returns a shallow copy with Regions cleared, used by
// Instant Search's pre-score pass.
func (f *Filter) WithoutRegions() *Filter {
	clone := *f
	clone.Regions = nil
	return &clone
}

func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

func stringSliceEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
