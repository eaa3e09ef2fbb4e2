package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVariants_LatinTypedAsCyrillic(t *testing.T) {
	variants := Variants("cthdth") // physically the same keys as "сервер"
	assert.Contains(t, variants, "cthdth")
	assert.Contains(t, variants, "сервер")
}

func TestVariants_CyrillicTypedAsLatin(t *testing.T) {
	variants := Variants("сервер")
	assert.Contains(t, variants, "сервер")
	assert.Contains(t, variants, "cthdth")
}

func TestVariants_CapsAtThree(t *testing.T) {
	variants := Variants("сервер")
	assert.LessOrEqual(t, len(variants), 3)
}

func TestVariants_NoMatchingRunesYieldsOnlyItself(t *testing.T) {
	variants := Variants("123")
	assert.Equal(t, []string{"123"}, variants)
}

func TestVariants_PreservesCase(t *testing.T) {
	variants := Variants("Cthdth")
	assert.Contains(t, variants, "Сервер")
}
