package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"alfredoptarigan/cv-matcher/internal/config"
	"alfredoptarigan/cv-matcher/internal/matching"
)

const cacheInitTimeout = 10 * time.Second

// NewEmbedderFromConfig wires Gemini and the optional Qdrant cache.
//
// It returns a nil Embedder when no API key is configured, which keeps the
// engine on Jaccard scoring. An unreachable Qdrant only disables the cache.
// The returned func releases the cache connection and is never nil.
func NewEmbedderFromConfig(ctx context.Context, cfg *config.Config, logger *zap.Logger) (matching.Embedder, func()) {
	noop := func() {}
	if !cfg.EmbeddingEnabled() {
		logger.Warn("GEMINI_API_KEY not set, embedding similarity disabled")
		return nil, noop
	}

	gemini := NewGeminiService(GeminiConfig{
		APIKey:            cfg.Gemini.APIKey,
		EmbedModel:        cfg.Gemini.EmbedModel,
		RequestsPerSecond: cfg.Gemini.RequestsPerSecond,
		Burst:             cfg.Gemini.Burst,
		MaxInputChars:     cfg.Gemini.MaxInputChars,
	}, logger.Named("gemini"))

	cache := openCache(ctx, cfg.Qdrant, logger)

	embedder := NewCachedEmbedder(gemini, cache, NewTextChunker(), cfg.Gemini.MaxInputChars, logger.Named("embedder"))
	if cache == nil {
		return embedder, noop
	}
	return embedder, func() {
		if err := cache.Close(); err != nil {
			logger.Warn("closing embedding cache", zap.Error(err))
		}
	}
}

func openCache(ctx context.Context, qc config.QdrantConfig, logger *zap.Logger) EmbeddingCache {
	if qc.URL == "" {
		return nil
	}

	cache, err := NewQdrantService(QdrantConfig{
		URL:        qc.URL,
		APIKey:     qc.APIKey,
		Collection: qc.Collection,
		VectorSize: qc.VectorSize,
	}, logger.Named("qdrant"))
	if err != nil {
		logger.Warn("qdrant unavailable, embedding cache disabled", zap.Error(err))
		return nil
	}

	initCtx, cancel := context.WithTimeout(ctx, cacheInitTimeout)
	defer cancel()

	if err := cache.InitCollection(initCtx); err != nil {
		logger.Warn("qdrant collection init failed, embedding cache disabled", zap.Error(err))
		_ = cache.Close()
		return nil
	}
	return cache
}
