package ai

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueryExpander_GenerateIntent_NoBackendReturnsEmpty(t *testing.T) {
	q := NewQueryExpander(nil, testLogger())
	intent := q.GenerateIntent(context.Background(), "my filter", []string{"компьютер"}, nil)
	assert.Equal(t, "", intent)
}

// Non-Premium tiers always get the static dictionary, capped at 5.
func TestQueryExpander_Recommend_NonPremiumUsesStaticCapped(t *testing.T) {
	q := NewQueryExpander(nil, testLogger())
	recs := q.Recommend(context.Background(), []string{"сервер", "компьютер"}, false)

	assert.Equal(t, RecommendationSourceStatic, recs.Source)
	assert.False(t, recs.IsPremium)
	assert.LessOrEqual(t, len(recs.Terms), nonPremiumRecommendationLimit)
	assert.NotEmpty(t, recs.Terms)
}

// Premium with no AI backend configured falls back to static, capped at 15.
func TestQueryExpander_Recommend_PremiumNoBackendFallsBackToStatic(t *testing.T) {
	q := NewQueryExpander(nil, testLogger())
	recs := q.Recommend(context.Background(), []string{"сервер"}, true)

	assert.Equal(t, RecommendationSourceStatic, recs.Source)
	assert.True(t, recs.IsPremium)
	assert.LessOrEqual(t, len(recs.Terms), premiumRecommendationLimit)
}

func TestStaticRecommendations_ExcludesInputKeywords(t *testing.T) {
	recs := staticRecommendations([]string{"ноутбук"})
	for _, r := range recs {
		assert.NotEqual(t, "ноутбук", r)
	}
	assert.Contains(t, recs, "компьютер")
}

func TestStaticRecommendations_SubstringMatchContributes(t *testing.T) {
	recs := staticRecommendations([]string{"серверное"})
	assert.NotEmpty(t, recs)
}

func TestCapRecommendations(t *testing.T) {
	terms := []string{"a", "b", "c"}
	assert.Equal(t, []string{"a", "b"}, capRecommendations(terms, 2))
	assert.Equal(t, terms, capRecommendations(terms, 10))
}
