package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"alfredoptarigan/cv-matcher/internal/config"
	"alfredoptarigan/cv-matcher/internal/logger"
	"alfredoptarigan/cv-matcher/internal/matching"
	"alfredoptarigan/cv-matcher/internal/models"
	"alfredoptarigan/cv-matcher/internal/services"
)

type configLoader func() (*config.Config, error)

type matchOptions struct {
	cvPath    string
	jobPath   string
	format    string
	cvSkills  []string
	jobSkills []string
	jaccard   bool
}

func newMatchCmd(load configLoader) *cobra.Command {
	opts := &matchOptions{}

	cmd := &cobra.Command{
		Use:   "match",
		Short: "Score a CV file against a job posting file",
		Long: "Score a CV against a job posting. Both files may be PDF, .txt or .md.\n" +
			"Skill lists given with --cv-skill/--job-skill enable per-skill matching.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMatch(cmd, load, opts)
		},
	}

	cmd.Flags().StringVar(&opts.cvPath, "cv", "", "path to the CV document")
	cmd.Flags().StringVar(&opts.jobPath, "job", "", "path to the job posting document")
	cmd.Flags().StringVarP(&opts.format, "format", "o", "text", "output format: text or json")
	cmd.Flags().StringSliceVar(&opts.cvSkills, "cv-skill", nil, "a skill listed on the CV (repeatable)")
	cmd.Flags().StringSliceVar(&opts.jobSkills, "job-skill", nil, "a skill required by the job (repeatable)")
	cmd.Flags().BoolVar(&opts.jaccard, "jaccard", false, "skip embeddings and use token overlap only")

	_ = cmd.MarkFlagRequired("cv")
	_ = cmd.MarkFlagRequired("job")

	return cmd
}

func runMatch(cmd *cobra.Command, load configLoader, opts *matchOptions) error {
	format := strings.ToLower(opts.format)
	if format != "text" && format != "json" {
		return fmt.Errorf("unknown format %q, expected text or json", opts.format)
	}

	cfg, err := load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	lg, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		return fmt.Errorf("creating a logger: %w", err)
	}
	defer lg.Sync() //nolint:errcheck

	loader := services.NewDocumentLoader()
	cvDoc, err := loader.Load(opts.cvPath)
	if err != nil {
		return fmt.Errorf("loading cv: %w", err)
	}
	jobDoc, err := loader.Load(opts.jobPath)
	if err != nil {
		return fmt.Errorf("loading job: %w", err)
	}
	lg.Debug("documents loaded",
		zap.Int("cv_pages", cvDoc.PageCount),
		zap.Int("job_pages", jobDoc.PageCount),
		zap.String("cv_preview", logger.TruncateForLog(cvDoc.Text, 80)),
	)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var embedder matching.Embedder
	if !opts.jaccard {
		var closeCache func()
		embedder, closeCache = services.NewEmbedderFromConfig(ctx, cfg, lg)
		defer closeCache()
	}

	engine, err := matching.NewEngine(cfg.EngineConfig(), embedder, lg.Named("engine"))
	if err != nil {
		return fmt.Errorf("invalid matching config: %w", err)
	}

	req := &models.MatchRequest{CVText: cvDoc.Text, JobText: jobDoc.Text}
	if len(opts.cvSkills) > 0 {
		req.CV = &models.ParsedCV{Skills: opts.cvSkills}
	}
	if len(opts.jobSkills) > 0 {
		req.Job = &models.ParsedJob{RequiredSkills: opts.jobSkills}
	}

	result, err := services.NewMatchService(engine, lg.Named("match")).Match(ctx, req)
	if err != nil {
		if errors.Is(err, matching.ErrInvalidInput) {
			return fmt.Errorf("both documents must contain text: %w", err)
		}
		return err
	}

	out := cmd.OutOrStdout()
	if format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	_, err = fmt.Fprint(out, matching.RenderReport(result))
	return err
}
