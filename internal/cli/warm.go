package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"alfredoptarigan/cv-matcher/internal/logger"
	"alfredoptarigan/cv-matcher/internal/matching"
	"alfredoptarigan/cv-matcher/internal/services"
)

var errEmbeddingDisabled = errors.New("embedding is disabled, set GEMINI_API_KEY")

func newWarmCmd(load configLoader) *cobra.Command {
	var extra []string

	cmd := &cobra.Command{
		Use:   "warm",
		Short: "Pre-compute embeddings of the known skills into the Qdrant cache",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			if !cfg.EmbeddingEnabled() {
				return errEmbeddingDisabled
			}

			lg, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
			if err != nil {
				return fmt.Errorf("creating a logger: %w", err)
			}
			defer lg.Sync() //nolint:errcheck

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			if cfg.Qdrant.URL == "" {
				lg.Warn("QDRANT_URL not set, embeddings will not be persisted")
			}

			embedder, closeCache := services.NewEmbedderFromConfig(ctx, cfg, lg)
			defer closeCache()

			names := skillNames(extra)
			start := time.Now()

			strategy := matching.NewEmbeddingStrategy(embedder, cfg.Matching.EmbeddingConcurrency)
			if err := strategy.Warm(ctx, names); err != nil {
				return fmt.Errorf("warming skill embeddings: %w", err)
			}

			lg.Info("skill embeddings warmed",
				zap.Int("skills", len(names)),
				zap.Duration("duration", time.Since(start)),
			)
			fmt.Fprintf(cmd.OutOrStdout(), "warmed %d skill embeddings\n", len(names))
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&extra, "skill", nil, "an additional skill to embed (repeatable)")
	return cmd
}

// skillNames lists every lexicon skill followed by the extra ones.
func skillNames(extra []string) []string {
	names := make([]string, 0, len(matching.Lexicon)+len(extra))
	for _, s := range matching.Lexicon {
		names = append(names, s.Name)
	}
	return append(names, extra...)
}
