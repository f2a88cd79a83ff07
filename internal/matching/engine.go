package matching

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"alfredoptarigan/cv-matcher/internal/models"
)

// Config holds every tunable of the engine.
type Config struct {
	Weights              Weights
	CoverageThreshold    float64
	TopSkillMatches      int
	MaxMissingKeywords   int
	MaxSuggestions       int
	SuggestionThreshold  float64
	EmbeddingTimeout     time.Duration
	EmbeddingConcurrency int
	// SuggestionRules replaces DefaultSuggestionRules when non-nil.
	SuggestionRules []SuggestionRule
}

func DefaultConfig() Config {
	return Config{
		Weights:              DefaultWeights,
		CoverageThreshold:    0.6,
		TopSkillMatches:      3,
		MaxMissingKeywords:   25,
		MaxSuggestions:       6,
		SuggestionThreshold:  60,
		EmbeddingTimeout:     5 * time.Second,
		EmbeddingConcurrency: 4,
	}
}

func (c Config) validate() error {
	if err := c.Weights.validate(); err != nil {
		return err
	}
	if c.CoverageThreshold < 0 || c.CoverageThreshold > 1 {
		return fmt.Errorf("%w: coverage threshold must be in [0,1], got %v", ErrInvalidConfig, c.CoverageThreshold)
	}
	if c.TopSkillMatches < 0 || c.MaxMissingKeywords < 0 || c.MaxSuggestions < 0 {
		return fmt.Errorf("%w: limits must be non-negative", ErrInvalidConfig)
	}
	if c.EmbeddingTimeout <= 0 {
		return fmt.Errorf("%w: embedding timeout must be positive", ErrInvalidConfig)
	}
	return nil
}

// Engine scores CV/job pairs. It holds no per-request state and is safe for
// concurrent use.
type Engine struct {
	cfg         Config
	embedder    Embedder
	suggestions *SuggestionEngine
	logger      *zap.Logger
}

// NewEngine validates cfg. A nil embedder restricts the engine to Jaccard scoring.
func NewEngine(cfg Config, embedder Embedder, logger *zap.Logger) (*Engine, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Engine{
		cfg:         cfg,
		embedder:    embedder,
		suggestions: NewSuggestionEngine(cfg.SuggestionRules, cfg.SuggestionThreshold, cfg.MaxSuggestions),
		logger:      logger,
	}, nil
}

// EmbeddingEnabled reports whether an embedding backend is configured.
func (e *Engine) EmbeddingEnabled() bool {
	return e.embedder != nil
}

// scored is the strategy-dependent part of a result.
type scored struct {
	sections models.SectionalScores
	skills   models.SkillAnalysis
	method   models.Method
}

// Match scores in against the configured weights. Embedding failures degrade
// to Jaccard scoring; only invalid input and caller cancellation are returned.
func (e *Engine) Match(ctx context.Context, in Input) (*models.MatchResult, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	sec := buildSections(in)
	strategy := e.strategyFor(in)

	var (
		res scored
		err error
	)
	if strategy.Method() == models.MethodEmbedding {
		ectx, cancel := context.WithTimeout(ctx, e.cfg.EmbeddingTimeout)
		res, err = e.score(ectx, strategy, sec)
		cancel()

		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			e.logger.Warn("embedding scoring failed, falling back to jaccard",
				zap.Error(err),
				zap.Bool("timeout", errors.Is(err, context.DeadlineExceeded)),
			)
			strategy = JaccardStrategy{}
		}
	}

	if strategy.Method() == models.MethodJaccard {
		res, err = e.score(ctx, strategy, sec)
		if err != nil {
			return nil, fmt.Errorf("failed to score sections: %w", err)
		}
	}

	score := round(aggregate(res.sections, sec.availability(), e.cfg.Weights), 2)

	result := &models.MatchResult{
		Score:           score,
		SimilarityLevel: LevelForScore(score),
		SectionalScores: roundSections(res.sections),
		SkillAnalysis:   roundAnalysis(res.skills),
		MissingKeywords: MissingKeywords(sec.cvGlobal, sec.jobGlobal, e.cfg.MaxMissingKeywords),
		Suggestions:     e.suggestions.Suggest(sec.jobGlobal, score),
		Method:          res.method,
	}

	e.logger.Debug("match computed",
		zap.Float64("score", result.Score),
		zap.String("level", string(result.SimilarityLevel)),
		zap.String("method", string(result.Method)),
		zap.Int("job_skills", len(sec.jobSkills)),
		zap.Int("cv_skills", len(sec.cvSkills)),
	)

	return result, nil
}

// strategyFor picks embedding scoring when a backend exists and the caller
// supplied structured entities. Free-text pairs always use Jaccard.
func (e *Engine) strategyFor(in Input) Strategy {
	if e.embedder != nil && in.structured() {
		return NewEmbeddingStrategy(e.embedder, e.cfg.EmbeddingConcurrency)
	}
	return JaccardStrategy{}
}

func (e *Engine) score(ctx context.Context, strategy Strategy, sec sections) (scored, error) {
	if w, ok := strategy.(warmer); ok {
		if err := w.Warm(ctx, sec.texts()); err != nil {
			return scored{}, fmt.Errorf("failed to warm embeddings: %w", err)
		}
	}

	var (
		out scored
		err error
	)
	out.method = strategy.Method()

	if out.sections.Global, err = strategy.Score(ctx, sec.cvGlobal, sec.jobGlobal); err != nil {
		return scored{}, fmt.Errorf("global section: %w", err)
	}

	out.skills, err = MatchSkills(ctx, strategy, sec.jobSkills, sec.cvSkills, SkillOptions{
		CoverageThreshold: e.cfg.CoverageThreshold,
		TopN:              e.cfg.TopSkillMatches,
	})
	if err != nil {
		return scored{}, fmt.Errorf("skills section: %w", err)
	}
	out.sections.Skills = SkillsScore(out.skills)

	avail := sec.availability()
	if avail.experience {
		if out.sections.Experience, err = strategy.Score(ctx, sec.cvExperience, sec.jobExperience); err != nil {
			return scored{}, fmt.Errorf("experience section: %w", err)
		}
	}
	if avail.education {
		if out.sections.Education, err = strategy.Score(ctx, sec.cvEducation, sec.jobEducation); err != nil {
			return scored{}, fmt.Errorf("education section: %w", err)
		}
	}

	return out, nil
}

func roundSections(s models.SectionalScores) models.SectionalScores {
	return models.SectionalScores{
		Global:     round(clamp(s.Global, 0, 100), 2),
		Skills:     round(clamp(s.Skills, 0, 100), 2),
		Experience: round(clamp(s.Experience, 0, 100), 2),
		Education:  round(clamp(s.Education, 0, 100), 2),
	}
}

func roundAnalysis(a models.SkillAnalysis) models.SkillAnalysis {
	matches := make([]models.SkillMatch, len(a.TopSkillMatches))
	for i, m := range a.TopSkillMatches {
		m.Similarity = round(m.Similarity, 4)
		matches[i] = m
	}
	return models.SkillAnalysis{
		AverageSkillSimilarity: round(a.AverageSkillSimilarity, 2),
		SkillCoverage:          round(a.SkillCoverage, 2),
		TopSkillMatches:        matches,
	}
}
