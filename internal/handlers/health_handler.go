package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/cv-matcher/internal/models"
	"alfredoptarigan/cv-matcher/internal/services"
)

type HealthHandler struct {
	matchService services.MatchService
}

func NewHealthHandler(matchService services.MatchService) *HealthHandler {
	return &HealthHandler{matchService: matchService}
}

// HandleHealth handles GET /health
func (h *HealthHandler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(models.HealthResponse{
		Status:    "healthy",
		Time:      time.Now().UTC().Format(time.RFC3339),
		Embedding: h.matchService.EmbeddingEnabled(),
	})
}
