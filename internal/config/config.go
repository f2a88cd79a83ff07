package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"alfredoptarigan/cv-matcher/internal/matching"
)

type Config struct {
	Server   ServerConfig
	Gemini   GeminiConfig
	Qdrant   QdrantConfig
	Matching MatchingConfig
	Log      LogConfig
}

type ServerConfig struct {
	Port         string
	Env          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	BodyLimit    int
}

type GeminiConfig struct {
	APIKey            string
	EmbedModel        string
	RequestsPerSecond float64
	Burst             int
	MaxInputChars     int
}

// QdrantConfig locates the embedding cache. An empty URL disables it.
type QdrantConfig struct {
	URL        string
	APIKey     string
	Collection string
	VectorSize uint64
}

type MatchingConfig struct {
	WeightGlobal         float64
	WeightSkills         float64
	WeightExperience     float64
	WeightEducation      float64
	CoverageThreshold    float64
	TopSkillMatches      int
	MaxMissingKeywords   int
	MaxSuggestions       int
	SuggestionThreshold  float64
	EmbeddingTimeout     time.Duration
	EmbeddingConcurrency int
}

type LogConfig struct {
	JSON  bool
	Debug bool
}

var defaults = map[string]any{
	"port":                 "3000",
	"env":                  "development",
	"server.read_timeout":  "30s",
	"server.write_timeout": "30s",
	"server.body_limit":    12 * 1024 * 1024,

	"gemini.api_key":             "",
	"gemini.embed_model":         "text-embedding-004",
	"gemini.requests_per_second": 5.0,
	"gemini.burst":               5,
	"gemini.max_input_chars":     8000,

	"qdrant.url":         "",
	"qdrant.api_key":     "",
	"qdrant.collection":  "cv_matcher_embeddings",
	"qdrant.vector_size": 768,

	"matching.weight_global":         0.4,
	"matching.weight_skills":         0.35,
	"matching.weight_experience":     0.15,
	"matching.weight_education":      0.10,
	"matching.coverage_threshold":    0.6,
	"matching.top_skill_matches":     3,
	"matching.max_missing_keywords":  25,
	"matching.max_suggestions":       6,
	"matching.suggestion_threshold":  60.0,
	"matching.embedding_timeout":     "5s",
	"matching.embedding_concurrency": 4,

	"log.json":  false,
	"log.debug": false,
}

// Load reads .env, then the optional file named by MATCHER_CONFIG, then the environment.
func Load() (*Config, error) {
	// a missing .env is fine, the environment may already be populated
	_ = godotenv.Load()

	v := viper.New()
	if path := os.Getenv("MATCHER_CONFIG"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	return LoadWith(v)
}

// LoadWith builds a Config from v. Environment variables are matched by
// upper-casing keys and replacing dots with underscores (gemini.api_key ->
// GEMINI_API_KEY).
func LoadWith(v *viper.Viper) (*Config, error) {
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		Server: ServerConfig{
			Port:         v.GetString("port"),
			Env:          v.GetString("env"),
			ReadTimeout:  v.GetDuration("server.read_timeout"),
			WriteTimeout: v.GetDuration("server.write_timeout"),
			BodyLimit:    v.GetInt("server.body_limit"),
		},
		Gemini: GeminiConfig{
			APIKey:            v.GetString("gemini.api_key"),
			EmbedModel:        v.GetString("gemini.embed_model"),
			RequestsPerSecond: v.GetFloat64("gemini.requests_per_second"),
			Burst:             v.GetInt("gemini.burst"),
			MaxInputChars:     v.GetInt("gemini.max_input_chars"),
		},
		Qdrant: QdrantConfig{
			URL:        v.GetString("qdrant.url"),
			APIKey:     v.GetString("qdrant.api_key"),
			Collection: v.GetString("qdrant.collection"),
			VectorSize: v.GetUint64("qdrant.vector_size"),
		},
		Matching: MatchingConfig{
			WeightGlobal:         v.GetFloat64("matching.weight_global"),
			WeightSkills:         v.GetFloat64("matching.weight_skills"),
			WeightExperience:     v.GetFloat64("matching.weight_experience"),
			WeightEducation:      v.GetFloat64("matching.weight_education"),
			CoverageThreshold:    v.GetFloat64("matching.coverage_threshold"),
			TopSkillMatches:      v.GetInt("matching.top_skill_matches"),
			MaxMissingKeywords:   v.GetInt("matching.max_missing_keywords"),
			MaxSuggestions:       v.GetInt("matching.max_suggestions"),
			SuggestionThreshold:  v.GetFloat64("matching.suggestion_threshold"),
			EmbeddingTimeout:     v.GetDuration("matching.embedding_timeout"),
			EmbeddingConcurrency: v.GetInt("matching.embedding_concurrency"),
		},
		Log: LogConfig{
			JSON:  v.GetBool("log.json"),
			Debug: v.GetBool("log.debug"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	var errs []error
	if c.Server.Port == "" {
		errs = append(errs, errors.New("port must not be empty"))
	}
	if c.Server.BodyLimit <= 0 {
		errs = append(errs, errors.New("server.body_limit must be positive"))
	}
	if c.Qdrant.URL != "" && c.Qdrant.VectorSize == 0 {
		errs = append(errs, errors.New("qdrant.vector_size must be positive"))
	}
	return errors.Join(errs...)
}

// IsDevelopment reports whether internal error details may be exposed.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Server.Env, "development")
}

// EmbeddingEnabled reports whether a Gemini key is configured.
func (c *Config) EmbeddingEnabled() bool {
	return c.Gemini.APIKey != ""
}

// EngineConfig converts the matching settings for matching.NewEngine, which validates them.
func (c *Config) EngineConfig() matching.Config {
	m := c.Matching
	cfg := matching.DefaultConfig()
	cfg.Weights = matching.Weights{
		Global:     m.WeightGlobal,
		Skills:     m.WeightSkills,
		Experience: m.WeightExperience,
		Education:  m.WeightEducation,
	}
	cfg.CoverageThreshold = m.CoverageThreshold
	cfg.TopSkillMatches = m.TopSkillMatches
	cfg.MaxMissingKeywords = m.MaxMissingKeywords
	cfg.MaxSuggestions = m.MaxSuggestions
	cfg.SuggestionThreshold = m.SuggestionThreshold
	cfg.EmbeddingTimeout = m.EmbeddingTimeout
	cfg.EmbeddingConcurrency = m.EmbeddingConcurrency
	return cfg
}
