package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuggestAboveThreshold(t *testing.T) {
	t.Parallel()

	e := NewSuggestionEngine(nil, 60, 6)

	assert.Empty(t, e.Suggest("React Docker AWS", 60))
	assert.Empty(t, e.Suggest("React Docker AWS", 92.5))
}

func TestSuggestRulesFireInDeclarationOrder(t *testing.T) {
	t.Parallel()

	e := NewSuggestionEngine(nil, 60, 6)
	got := e.Suggest("Kubernetes, Docker, AWS and React", 10)

	require.Len(t, got, 3)
	assert.Contains(t, got[0], "React")
	assert.Contains(t, got[1], "cloud")
	assert.Contains(t, got[2], "Kubernetes")
}

func TestSuggestGenericFallback(t *testing.T) {
	t.Parallel()

	e := NewSuggestionEngine(nil, 60, 6)
	assert.Equal(t, []string{genericSuggestion}, e.Suggest("Comptable senior, bilans et fiscalité", 20))
}

func TestSuggestMatchesWholeTokens(t *testing.T) {
	t.Parallel()

	e := NewSuggestionEngine(nil, 60, 6)
	// "context" and "nodes" contain rule keywords as substrings only.
	assert.Equal(t, []string{genericSuggestion}, e.Suggest("context nodes", 0))
}

func TestSuggestCap(t *testing.T) {
	t.Parallel()

	e := NewSuggestionEngine(nil, 60, 6)
	got := e.Suggest("react node python sql aws docker nlp java jenkins tensorflow", 0)

	require.Len(t, got, 6)
	assert.Equal(t, DefaultSuggestionRules[0].Suggestion, got[0])
	assert.Equal(t, DefaultSuggestionRules[5].Suggestion, got[5])
}

func TestSuggestCustomRules(t *testing.T) {
	t.Parallel()

	rules := []SuggestionRule{{
		Name:       "rust",
		Predicate:  anyOf("rust"),
		Suggestion: "Contribuer à un projet Rust open source.",
	}}
	e := NewSuggestionEngine(rules, 50, 6)

	assert.Equal(t, []string{"Contribuer à un projet Rust open source."}, e.Suggest("Rust backend", 49.99))
	assert.Empty(t, e.Suggest("Rust backend", 50))
}
