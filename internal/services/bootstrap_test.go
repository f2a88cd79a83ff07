package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"alfredoptarigan/cv-matcher/internal/config"
)

func TestNewEmbedderFromConfigWithoutKey(t *testing.T) {
	t.Parallel()

	embedder, closeFn := NewEmbedderFromConfig(context.Background(), &config.Config{}, zap.NewNop())

	assert.Nil(t, embedder)
	assert.NotNil(t, closeFn)
	closeFn()
}

func TestNewEmbedderFromConfigWithoutCache(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{
		Gemini: config.GeminiConfig{
			APIKey:        "test-key",
			EmbedModel:    "text-embedding-004",
			MaxInputChars: 8000,
		},
	}

	embedder, closeFn := NewEmbedderFromConfig(context.Background(), cfg, zap.NewNop())

	cached, ok := embedder.(*CachedEmbedder)
	if assert.True(t, ok) {
		assert.Nil(t, cached.cache)
	}
	closeFn()
}
