package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"talentsync/resume-matcher/internal/logger"
	"talentsync/resume-matcher/internal/models"
)

// EmbeddingDimensions is the fixed length of every vector produced by
// the embedding capability. The whole matching pipeline assumes it.
const EmbeddingDimensions = 384

// maxEmbeddingTextBytes caps what is sent to the embedding capability;
// longer texts are truncated.
const maxEmbeddingTextBytes = 40000

// Embedder is the narrow interface over the external embedding
// capability. It is loaded once at startup and must be safe for
// concurrent stateless calls.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

type EmbeddingService interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
	ComposeResumeText(text string, profile *models.ResumeProfile) string
	ComposeJobText(job *models.JobPosting) string
}

type embeddingService struct {
	embedder Embedder
}

func NewEmbeddingService(embedder Embedder) EmbeddingService {
	return &embeddingService{embedder: embedder}
}

// GenerateEmbedding implements EmbeddingService. Unlike PDF extraction
// this stage never degrades: capability failures surface as processing
// errors with the cause attached.
func (s *embeddingService) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	clean := CollapseWhitespace(text)
	if clean == "" {
		return nil, NewValidationError("empty text provided")
	}

	if len(clean) > maxEmbeddingTextBytes {
		clean = clean[:maxEmbeddingTextBytes]
	}

	embedding, err := s.embedder.Embed(ctx, clean)
	if err != nil {
		logger.Error().Err(err).Int("text_length", len(clean)).Msg("embedding generation failed")
		return nil, &ProcessingError{Stage: "embedding generation", Err: err}
	}

	if len(embedding) != EmbeddingDimensions {
		return nil, &ProcessingError{
			Stage: "embedding generation",
			Err:   fmt.Errorf("capability returned %d dimensions, want %d", len(embedding), EmbeddingDimensions),
		}
	}

	logger.Debug().Int("dimensions", len(embedding)).Int("text_length", len(clean)).Msg("generated embedding")

	return embedding, nil
}

// ComposeResumeText implements EmbeddingService. The embedded text
// combines the raw resume with a flattened restatement of the extracted
// signal so the vector reflects both.
func (s *embeddingService) ComposeResumeText(text string, profile *models.ResumeProfile) string {
	degrees := make([]string, 0, len(profile.Education))
	for _, entry := range profile.Education {
		degrees = append(degrees, entry.Degree)
	}

	roles := make([]string, 0, len(profile.Experience))
	for _, entry := range profile.Experience {
		roles = append(roles, entry.Role)
	}

	parts := []string{
		"Resume Content: " + text,
		"Skills: " + strings.Join(profile.Skills, ", "),
		"Education: " + strings.Join(degrees, ", "),
		"Experience: " + strings.Join(roles, ", "),
	}

	return strings.Join(parts, "\n")
}

// ComposeJobText implements EmbeddingService. Field order is fixed;
// optional fields are appended only when present.
func (s *embeddingService) ComposeJobText(job *models.JobPosting) string {
	parts := []string{
		"Job Role: " + job.Role,
		"Description: " + job.Description,
		"Requirements: " + job.Requirements,
	}

	if job.Location != "" {
		parts = append(parts, "Location: "+job.Location)
	}
	if job.WorkMode != "" {
		parts = append(parts, "Work Mode: "+job.WorkMode)
	}
	if job.JobType != "" {
		parts = append(parts, "Job Type: "+job.JobType)
	}
	if job.DurationMonths > 0 {
		parts = append(parts, "Duration: "+strconv.Itoa(job.DurationMonths)+" months")
	}
	if job.CompanyName != "" {
		parts = append(parts, "Company: "+job.CompanyName)
	}

	return strings.Join(parts, "\n")
}
