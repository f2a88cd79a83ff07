package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// ErrMissingAPIKey is returned on first use when no Gemini API key is configured.
var ErrMissingAPIKey = errors.New("gemini api key is not configured")

const similarityTaskType = "SEMANTIC_SIMILARITY"

type GeminiService interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
	Model() string
}

// GeminiConfig configures the embedding client.
type GeminiConfig struct {
	APIKey            string
	EmbedModel        string
	RequestsPerSecond float64
	Burst             int
	MaxInputChars     int
}

// embedClient is the subset of *genai.Models used here.
type embedClient interface {
	EmbedContent(ctx context.Context, model string, contents []*genai.Content, config *genai.EmbedContentConfig) (*genai.EmbedContentResponse, error)
}

type geminiService struct {
	client     func() (embedClient, error)
	embedModel string
	maxChars   int
	limiter    *rate.Limiter
	logger     *zap.Logger
}

// NewGeminiService does not dial: the genai client is created once, on the first embedding request.
func NewGeminiService(cfg GeminiConfig, logger *zap.Logger) GeminiService {
	apiKey := cfg.APIKey
	return newGeminiService(cfg, logger, func() (embedClient, error) {
		if apiKey == "" {
			return nil, ErrMissingAPIKey
		}

		client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create gemini client: %w", err)
		}
		return client.Models, nil
	})
}

func newGeminiService(cfg GeminiConfig, logger *zap.Logger, dial func() (embedClient, error)) *geminiService {
	if cfg.EmbedModel == "" {
		cfg.EmbedModel = "text-embedding-004"
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}

	return &geminiService{
		client:     sync.OnceValues(dial),
		embedModel: cfg.EmbedModel,
		maxChars:   cfg.MaxInputChars,
		limiter:    rate.NewLimiter(limit, cfg.Burst),
		logger:     logger,
	}
}

func (g *geminiService) Model() string {
	return g.embedModel
}

// GenerateEmbedding implements GeminiService.
func (g *geminiService) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	text = truncateRunes(strings.TrimSpace(text), g.maxChars)
	if text == "" {
		return nil, errors.New("cannot embed empty text")
	}

	client, err := g.client()
	if err != nil {
		return nil, err
	}

	if err := g.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("embedding rate limit wait: %w", err)
	}

	result, err := client.EmbedContent(ctx, g.embedModel, genai.Text(text), &genai.EmbedContentConfig{
		TaskType: similarityTaskType,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate embedding: %w", err)
	}

	if result == nil || len(result.Embeddings) == 0 || result.Embeddings[0] == nil || len(result.Embeddings[0].Values) == 0 {
		return nil, fmt.Errorf("empty embedding result")
	}

	g.logger.Debug("embedding generated",
		zap.String("model", g.embedModel),
		zap.Int("chars", utf8.RuneCountInString(text)),
		zap.Int("dims", len(result.Embeddings[0].Values)),
	)

	return result.Embeddings[0].Values, nil
}

func truncateRunes(s string, max int) string {
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max])
}
