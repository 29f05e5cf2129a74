package handlers

import (
	"github.com/gofiber/fiber/v2"

	"talentsync/resume-matcher/internal/logger"
	"talentsync/resume-matcher/internal/models"
	"talentsync/resume-matcher/internal/services"
)

type EmbeddingHandler struct {
	embedding services.EmbeddingService
}

func NewEmbeddingHandler(embedding services.EmbeddingService) *EmbeddingHandler {
	return &EmbeddingHandler{embedding: embedding}
}

func (h *EmbeddingHandler) HandleGenerateTextEmbedding(c *fiber.Ctx) error {
	var req models.TextInput
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	embedding, err := h.embedding.GenerateEmbedding(c.Context(), req.Text)
	if err != nil {
		return err
	}

	return c.JSON(models.EmbeddingResponse{
		Embedding:  embedding,
		Dimensions: len(embedding),
		TextLength: len(req.Text),
	})
}

func (h *EmbeddingHandler) HandleGenerateJobEmbedding(c *fiber.Ctx) error {
	var job models.JobPosting
	if err := c.BodyParser(&job); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if job.Role == "" || job.Description == "" || job.Requirements == "" {
		return services.NewValidationError("role, description and requirements are required")
	}

	jobText := h.embedding.ComposeJobText(&job)

	embedding, err := h.embedding.GenerateEmbedding(c.Context(), jobText)
	if err != nil {
		return err
	}

	logger.Info().Str("role", job.Role).Int("text_length", len(jobText)).Msg("generated job embedding")

	return c.JSON(models.JobEmbeddingResponse{
		Success: true,
		Data: models.JobEmbeddingData{
			Embedding:           embedding,
			EmbeddingDimensions: len(embedding),
			JobText:             jobText,
			TextLength:          len(jobText),
		},
	})
}
