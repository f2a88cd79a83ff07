package config

import (
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/cv-matcher/internal/matching"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"PORT", "ENV", "GEMINI_API_KEY", "QDRANT_URL", "MATCHING_WEIGHT_SKILLS", "LOG_JSON"} {
		t.Setenv(key, "")
	}
}

func TestLoadWithDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadWith(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Server.Port)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "text-embedding-004", cfg.Gemini.EmbedModel)
	assert.False(t, cfg.EmbeddingEnabled())
	assert.Empty(t, cfg.Qdrant.URL)
	assert.Equal(t, uint64(768), cfg.Qdrant.VectorSize)
	assert.Equal(t, 5*time.Second, cfg.Matching.EmbeddingTimeout)

	engineCfg := cfg.EngineConfig()
	assert.Equal(t, matching.DefaultWeights, engineCfg.Weights)
	assert.Equal(t, 0.6, engineCfg.CoverageThreshold)
	assert.Equal(t, 25, engineCfg.MaxMissingKeywords)

	_, err = matching.NewEngine(engineCfg, nil, nil)
	assert.NoError(t, err)
}

func TestLoadWithEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8080")
	t.Setenv("ENV", "production")
	t.Setenv("GEMINI_API_KEY", "secret")
	t.Setenv("QDRANT_URL", "http://qdrant:6334")
	t.Setenv("LOG_JSON", "true")

	cfg, err := LoadWith(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.False(t, cfg.IsDevelopment())
	assert.True(t, cfg.EmbeddingEnabled())
	assert.Equal(t, "http://qdrant:6334", cfg.Qdrant.URL)
	assert.True(t, cfg.Log.JSON)
}

func TestLoadWithFile(t *testing.T) {
	clearEnv(t)

	v := viper.New()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(strings.NewReader(`
matching:
  weight_global: 0.5
  weight_skills: 0.5
  weight_experience: 0
  weight_education: 0
  embedding_timeout: 2s
gemini:
  embed_model: gemini-embedding-001
`)))

	cfg, err := LoadWith(v)
	require.NoError(t, err)

	assert.Equal(t, "gemini-embedding-001", cfg.Gemini.EmbedModel)
	assert.Equal(t, 2*time.Second, cfg.Matching.EmbeddingTimeout)
	assert.Equal(t, matching.Weights{Global: 0.5, Skills: 0.5}, cfg.EngineConfig().Weights)
}

func TestLoadWithEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("MATCHING_WEIGHT_SKILLS", "0.25")

	v := viper.New()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(strings.NewReader("matching:\n  weight_skills: 0.5\n")))

	cfg, err := LoadWith(v)
	require.NoError(t, err)
	assert.Equal(t, 0.25, cfg.Matching.WeightSkills)
}

func TestLoadWithRejectsInvalidValues(t *testing.T) {
	clearEnv(t)

	v := viper.New()
	v.Set("server.body_limit", 0)

	_, err := LoadWith(v)
	assert.Error(t, err)
}
