package matching

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"alfredoptarigan/cv-matcher/internal/models"
)

// Embedder turns a text into a fixed-dimension vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// EmbeddingStrategy scores texts by cosine similarity of their embeddings.
// A strategy instance memoizes vectors and is meant to live for one match.
type EmbeddingStrategy struct {
	embedder    Embedder
	concurrency int

	mu      sync.Mutex
	vectors map[string][]float32
}

func NewEmbeddingStrategy(embedder Embedder, concurrency int) *EmbeddingStrategy {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &EmbeddingStrategy{
		embedder:    embedder,
		concurrency: concurrency,
		vectors:     make(map[string][]float32),
	}
}

func (s *EmbeddingStrategy) Method() models.Method {
	return models.MethodEmbedding
}

// Score returns the cosine similarity rescaled from [-1,1] to [0,100].
func (s *EmbeddingStrategy) Score(ctx context.Context, a, b string) (float64, error) {
	sim, err := s.similarity(ctx, a, b)
	if err != nil {
		return 0, err
	}
	return sim * 100, nil
}

func (s *EmbeddingStrategy) TermSimilarity(ctx context.Context, a, b string) (float64, error) {
	return s.similarity(ctx, a, b)
}

// Warm embeds every distinct text concurrently so later lookups hit the memo.
func (s *EmbeddingStrategy) Warm(ctx context.Context, texts []string) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	seen := make(map[string]struct{}, len(texts))
	for _, text := range texts {
		key := strings.TrimSpace(text)
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		g.Go(func() error {
			_, err := s.vector(gctx, key)
			return err
		})
	}

	return g.Wait()
}

func (s *EmbeddingStrategy) similarity(ctx context.Context, a, b string) (float64, error) {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	if a == "" || b == "" {
		return 0, nil
	}

	va, err := s.vector(ctx, a)
	if err != nil {
		return 0, err
	}
	vb, err := s.vector(ctx, b)
	if err != nil {
		return 0, err
	}

	cos, err := cosine(va, vb)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBackendUnavailable, err)
	}

	return clamp((cos+1)/2, 0, 1), nil
}

func (s *EmbeddingStrategy) vector(ctx context.Context, key string) ([]float32, error) {
	s.mu.Lock()
	v, ok := s.vectors[key]
	s.mu.Unlock()
	if ok {
		return v, nil
	}

	v, err := s.embedder.Embed(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBackendUnavailable, err)
	}
	if len(v) == 0 {
		return nil, fmt.Errorf("%w: empty embedding", ErrBackendUnavailable)
	}

	s.mu.Lock()
	s.vectors[key] = v
	s.mu.Unlock()

	return v, nil
}

func cosine(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("embedding dimensions differ: %d != %d", len(a), len(b))
	}

	var dot, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}

	if na == 0 || nb == 0 {
		return 0, errors.New("zero-norm embedding")
	}

	cos := dot / (math.Sqrt(na) * math.Sqrt(nb))
	if math.IsNaN(cos) {
		return 0, errors.New("embedding produced NaN similarity")
	}
	return clamp(cos, -1, 1), nil
}
