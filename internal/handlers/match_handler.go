package handlers

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"alfredoptarigan/cv-matcher/internal/logger"
	"alfredoptarigan/cv-matcher/internal/matching"
	"alfredoptarigan/cv-matcher/internal/models"
	"alfredoptarigan/cv-matcher/internal/services"
)

const (
	msgTextsRequired  = "Textes requis"
	msgInvalidRequest = "Requête invalide"
	msgMatchFailed    = "Erreur calcul matching"
	msgInvalidFormat  = "Format invalide"
)

type MatchHandler struct {
	matchService services.MatchService
	validate     *validator.Validate
	logger       *zap.Logger
	exposeErrors bool
}

// NewMatchHandler builds the handler. exposeErrors adds the internal error
// text to 500 responses and must stay off outside development.
func NewMatchHandler(
	matchService services.MatchService,
	validate *validator.Validate,
	logger *zap.Logger,
	exposeErrors bool,
) *MatchHandler {
	return &MatchHandler{
		matchService: matchService,
		validate:     validate,
		logger:       logger,
		exposeErrors: exposeErrors,
	}
}

// HandleMatch handles POST /match
func (h *MatchHandler) HandleMatch(c *fiber.Ctx) error {
	result, ok, err := h.match(c, "match")
	if !ok {
		return err
	}
	return c.JSON(result)
}

// HandleReport handles POST /report. It scores the pair like /match and
// returns the similarity report as a text attachment, or as JSON next to the
// result when format=json.
func (h *MatchHandler) HandleReport(c *fiber.Ctx) error {
	format := strings.ToLower(c.Query("format", "text"))
	if format != "text" && format != "json" {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{Error: msgInvalidFormat})
	}

	result, ok, err := h.match(c, "report")
	if !ok {
		return err
	}

	report := matching.RenderReport(result)
	if format == "json" {
		return c.JSON(models.ReportResponse{Report: report, Result: result})
	}

	c.Set(fiber.HeaderContentDisposition, `attachment; filename="rapport-matching.txt"`)
	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.SendString(report)
}

// match parses, validates and scores the request. When ok is false the error
// response has already been written and err is what the handler returns.
func (h *MatchHandler) match(c *fiber.Ctx, route string) (*models.MatchResult, bool, error) {
	var req models.MatchRequest

	if err := c.BodyParser(&req); err != nil {
		return nil, false, c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{Error: msgInvalidRequest})
	}

	if err := h.validate.Struct(&req); err != nil {
		return nil, false, c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{Error: msgTextsRequired})
	}

	log := h.logger.With(zap.String("request_id", requestID(c)), zap.String("route", route))
	log.Debug("match request received",
		zap.String("cv_preview", logger.TruncateForLog(req.CVText, 60)),
		zap.String("job_preview", logger.TruncateForLog(req.JobText, 60)),
	)

	ctx, cancel := requestContext(c)
	defer cancel()

	result, err := h.matchService.Match(ctx, &req)
	if err != nil {
		if errors.Is(err, matching.ErrInvalidInput) {
			return nil, false, c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{Error: msgTextsRequired})
		}

		log.Error("match computation failed", zap.Error(err))

		resp := models.ErrorResponse{Error: msgMatchFailed}
		if h.exposeErrors {
			resp.Detail = err.Error()
		}
		return nil, false, c.Status(fiber.StatusInternalServerError).JSON(resp)
	}

	return result, true, nil
}

// requestContext derives the context of one match from the user context.
// fasthttp does not report client disconnects, so besides the user context
// only a server shutdown cancels it.
func requestContext(c *fiber.Ctx) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(c.UserContext())
	stop := context.AfterFunc(c.Context(), cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}
