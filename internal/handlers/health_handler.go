package handlers

import (
	"github.com/gofiber/fiber/v2"

	"talentsync/resume-matcher/internal/models"
	"talentsync/resume-matcher/internal/services"
)

type HealthHandler struct {
	embedder services.Embedder
}

func NewHealthHandler(embedder services.Embedder) *HealthHandler {
	return &HealthHandler{embedder: embedder}
}

func (h *HealthHandler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(models.HealthResponse{
		Status:              "healthy",
		ModelLoaded:         h.embedder != nil,
		EmbeddingDimensions: services.EmbeddingDimensions,
	})
}
