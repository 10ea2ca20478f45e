package bank

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_Whitespace(t *testing.T) {
	testCases := []struct {
		name string
		in   string
		want string
	}{
		{"collapses runs", "Lean   Portfolio\t Management", "lean portfolio management"},
		{"trims ends", "  Scrum Master  ", "scrum master"},
		{"carriage returns", "Iteración\rPlanning", "iteración planning"},
		{"non breaking space", "Lean Budgets", "lean budgets"},
		{"zero width runes", "Va​lor‌ con‍tinuo\uFEFF", "valor continuo"},
		{"thin spaces", "PI Planning Board", "pi planning board"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Normalize(tc.in))
		})
	}
}

func TestNormalize_CaseAndPunctuation(t *testing.T) {
	assert.Equal(t, "value stream", Normalize("Value Stream."))
	assert.Equal(t, "value stream", Normalize("VALUE STREAM;"))
	assert.Equal(t, "value stream", Normalize("Value Stream.;:"))
	// interior punctuation survives
	assert.Equal(t, "lean-agile, de verdad", Normalize("Lean-Agile, de verdad"))
}

func TestNormalize_Unicode(t *testing.T) {
	// NFKC folds compatibility forms before comparison
	assert.Equal(t, Normalize("ﬂow"), Normalize("flow"))
	assert.Equal(t, "qué es un art", Normalize("Qué es un ART:"))
	assert.Equal(t, "josé ángel", Normalize("JOSÉ ÁNGEL"))
	// question marks are not trailing punctuation for matching purposes
	assert.Equal(t, "¿qué es un art?", Normalize("¿Qué es un ART?"))
}

func TestNormalize_Empty(t *testing.T) {
	assert.Equal(t, "", Normalize(""))
	assert.Equal(t, "", Normalize("   "))
	assert.Equal(t, "", Normalize(".;:"))
}
