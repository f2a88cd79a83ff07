package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenizeDropsStopwordsAndDuplicates(t *testing.T) {
	t.Parallel()

	got := Tokenize("The Python developer and the Python engineer, pour les données")

	assert.Equal(t, TokenSet{
		"python":    {},
		"developer": {},
		"engineer":  {},
		"donnees":   {},
	}, got)
}

func TestTokenizeEmpty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, Tokenize(""))
	assert.Empty(t, Tokenize("the and of le la de"))
}

func TestOrderedTokensKeepsFirstOccurrence(t *testing.T) {
	t.Parallel()

	got := OrderedTokens("Docker, Kubernetes and docker compose on AWS")
	assert.Equal(t, []string{"docker", "kubernetes", "compose", "aws"}, got)
}

func TestTokenSetHasAny(t *testing.T) {
	t.Parallel()

	s := Tokenize("react developer")
	assert.True(t, s.HasAny("vue", "react"))
	assert.False(t, s.HasAny("next", "angular"))
	assert.False(t, s.HasAny())
}

func TestJaccard(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{name: "both empty", a: "", b: "", want: 0},
		{name: "one empty", a: "python", b: "", want: 0},
		{name: "identical", a: "python sql", b: "SQL, Python", want: 100},
		{name: "disjoint", a: "photoshop", b: "kubernetes", want: 0},
		{name: "half", a: "python sql", b: "python", want: 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tt.want, Jaccard(Tokenize(tt.a), Tokenize(tt.b)), 1e-9)
		})
	}
}
