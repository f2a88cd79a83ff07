package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	defaultChunkSize    = 8000
	defaultChunkOverlap = 200
	// sharedCallTimeout bounds a backend call that outlives the request which started it.
	sharedCallTimeout = 30 * time.Second
)

// CachedEmbedder resolves embeddings from the cache first and falls back to
// the Gemini backend. Identical concurrent requests share one backend call.
type CachedEmbedder struct {
	backend   GeminiService
	cache     EmbeddingCache
	chunker   TextChuncker
	chunkSize int
	overlap   int
	timeout   time.Duration
	group     singleflight.Group
	logger    *zap.Logger
}

// NewCachedEmbedder accepts a nil cache, in which case every call reaches the backend.
func NewCachedEmbedder(backend GeminiService, cache EmbeddingCache, chunker TextChuncker, chunkSize int, logger *zap.Logger) *CachedEmbedder {
	if chunker == nil {
		chunker = NewTextChunker()
	}
	if chunkSize <= 0 {
		chunkSize = defaultChunkSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &CachedEmbedder{
		backend:   backend,
		cache:     cache,
		chunker:   chunker,
		chunkSize: chunkSize,
		overlap:   min(defaultChunkOverlap, chunkSize/4),
		timeout:   sharedCallTimeout,
		logger:    logger,
	}
}

// Embed implements matching.Embedder.
//
// Concurrent calls for the same text share one backend call. That call is
// detached from the caller that started it and bounded by its own timeout,
// so one request giving up never fails the others. Each caller still returns
// as soon as its own ctx is done.
func (e *CachedEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.New("cannot embed empty text")
	}

	shared := context.WithoutCancel(ctx)
	ch := e.group.DoChan(e.backend.Model()+"\x00"+text, func() (any, error) {
		sctx, cancel := context.WithTimeout(shared, e.timeout)
		defer cancel()
		return e.embed(sctx, text)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			e.logger.Debug("embedding request deduplicated", zap.Int("chars", utf8.RuneCountInString(text)))
		}
		return res.Val.([]float32), nil
	}
}

func (e *CachedEmbedder) embed(ctx context.Context, text string) ([]float32, error) {
	model := e.backend.Model()

	if e.cache != nil {
		vec, ok, err := e.cache.Get(ctx, model, text)
		switch {
		case err != nil:
			e.logger.Warn("embedding cache lookup failed", zap.Error(err))
		case ok:
			return vec, nil
		}
	}

	vec, err := e.generate(ctx, text)
	if err != nil {
		return nil, err
	}

	if e.cache != nil {
		if err := e.cache.Put(ctx, model, text, vec); err != nil {
			e.logger.Warn("embedding cache write failed", zap.Error(err))
		}
	}

	return vec, nil
}

// generate embeds long texts chunk by chunk and mean-pools the chunk vectors.
func (e *CachedEmbedder) generate(ctx context.Context, text string) ([]float32, error) {
	if utf8.RuneCountInString(text) <= e.chunkSize {
		return e.backend.GenerateEmbedding(ctx, text)
	}

	chunks := e.chunker.ChunkText(text, e.chunkSize, e.overlap)
	if len(chunks) == 0 {
		return nil, errors.New("chunking produced no text")
	}

	e.logger.Debug("embedding long text in chunks", zap.Int("chunks", len(chunks)))

	var sum []float64
	for i, chunk := range chunks {
		vec, err := e.backend.GenerateEmbedding(ctx, chunk)
		if err != nil {
			return nil, fmt.Errorf("chunk %d/%d: %w", i+1, len(chunks), err)
		}
		if sum == nil {
			sum = make([]float64, len(vec))
		}
		if len(vec) != len(sum) {
			return nil, fmt.Errorf("chunk %d/%d: embedding has %d dimensions, expected %d", i+1, len(chunks), len(vec), len(sum))
		}
		for j, x := range vec {
			sum[j] += float64(x)
		}
	}

	mean := make([]float32, len(sum))
	for j, x := range sum {
		mean[j] = float32(x / float64(len(chunks)))
	}
	return mean, nil
}
