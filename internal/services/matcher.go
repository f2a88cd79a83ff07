package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"alfredoptarigan/cv-matcher/internal/matching"
	"alfredoptarigan/cv-matcher/internal/models"
)

type MatchService interface {
	Match(ctx context.Context, req *models.MatchRequest) (*models.MatchResult, error)
	EmbeddingEnabled() bool
}

type matchService struct {
	engine *matching.Engine
	logger *zap.Logger
}

func NewMatchService(engine *matching.Engine, logger *zap.Logger) MatchService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &matchService{engine: engine, logger: logger}
}

func (s *matchService) Match(ctx context.Context, req *models.MatchRequest) (*models.MatchResult, error) {
	start := time.Now()

	result, err := s.engine.Match(ctx, matching.Input{
		CVText:  req.CVText,
		JobText: req.JobText,
		CV:      req.CV,
		Job:     req.Job,
	})
	if err != nil {
		s.logger.Debug("match failed", zap.Error(err), zap.Duration("duration", time.Since(start)))
		return nil, err
	}

	s.logger.Info("match completed",
		zap.Float64("score", result.Score),
		zap.String("level", string(result.SimilarityLevel)),
		zap.String("method", string(result.Method)),
		zap.Bool("structured", req.CV != nil || req.Job != nil),
		zap.Duration("duration", time.Since(start)),
	)

	return result, nil
}

func (s *matchService) EmbeddingEnabled() bool {
	return s.engine.EmbeddingEnabled()
}
