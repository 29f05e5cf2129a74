package handlers

import (
	"github.com/gofiber/fiber/v2"

	"talentsync/resume-matcher/internal/logger"
	"talentsync/resume-matcher/internal/models"
	"talentsync/resume-matcher/internal/services"
)

type MatchHandler struct {
	matcher services.MatcherService
}

func NewMatchHandler(matcher services.MatcherService) *MatchHandler {
	return &MatchHandler{matcher: matcher}
}

func (h *MatchHandler) HandleFindMatchingJobs(c *fiber.Ctx) error {
	var req models.MatchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	candidates := make([]services.JobCandidate, 0, len(req.JobEmbeddings))
	for _, payload := range req.JobEmbeddings {
		candidates = append(candidates, services.JobCandidate{
			Embedding: embeddingFromPayload(payload),
			Payload:   payload,
		})
	}

	matches, err := h.matcher.RankJobs(req.ResumeEmbedding, candidates)
	if err != nil {
		return err
	}

	results := make([]map[string]any, 0, len(matches))
	for _, match := range matches {
		result := make(map[string]any, len(match.Payload)+3)
		for key, value := range match.Payload {
			result[key] = value
		}
		result["similarity_score"] = match.Score
		result["similarity_percentage"] = match.Percentage
		result["match_quality"] = match.Quality
		results = append(results, result)
	}

	logger.Info().Int("candidates", len(req.JobEmbeddings)).Int("matched", len(results)).Msg("ranked jobs against resume")

	return c.JSON(models.MatchResponse{
		Matches:   results,
		TotalJobs: len(results),
	})
}

// embeddingFromPayload pulls the "embedding" field out of a job object.
// Anything malformed yields a vector of the wrong length, which the
// matcher then skips.
func embeddingFromPayload(payload map[string]any) []float32 {
	raw, ok := payload["embedding"].([]any)
	if !ok {
		return nil
	}

	embedding := make([]float32, 0, len(raw))
	for _, component := range raw {
		value, ok := component.(float64)
		if !ok {
			return nil
		}
		embedding = append(embedding, float32(value))
	}

	return embedding
}
