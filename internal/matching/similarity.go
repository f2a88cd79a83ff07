package matching

import (
	"context"
	"strings"

	"alfredoptarigan/cv-matcher/internal/models"
)

// Strategy scores the similarity of two texts.
type Strategy interface {
	Method() models.Method
	// Score compares two texts and returns a value in [0,100].
	Score(ctx context.Context, a, b string) (float64, error)
	// TermSimilarity compares two short terms (skills) and returns a value in [0,1].
	TermSimilarity(ctx context.Context, a, b string) (float64, error)
}

// warmer is implemented by strategies that benefit from seeing every text up front.
type warmer interface {
	Warm(ctx context.Context, texts []string) error
}

// JaccardStrategy compares token sets. It needs no backend and never fails.
type JaccardStrategy struct{}

func (JaccardStrategy) Method() models.Method {
	return models.MethodJaccard
}

func (JaccardStrategy) Score(_ context.Context, a, b string) (float64, error) {
	return Jaccard(Tokenize(a), Tokenize(b)), nil
}

// TermSimilarity treats spelling variants that only differ by separators as
// identical ("Node.js", "node js", "NodeJS").
func (JaccardStrategy) TermSimilarity(_ context.Context, a, b string) (float64, error) {
	na, nb := Normalize(a), Normalize(b)
	if na == "" || nb == "" {
		return 0, nil
	}
	if strings.ReplaceAll(na, " ", "") == strings.ReplaceAll(nb, " ", "") {
		return 1, nil
	}
	return Jaccard(Tokenize(na), Tokenize(nb)) / 100, nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
