package services

import (
	"math"
	"sort"

	"talentsync/resume-matcher/internal/logger"
)

const (
	QualityHigh   = "High"
	QualityMedium = "Medium"
	QualityLow    = "Low"
)

// JobCandidate is one job to rank: its embedding plus whatever payload
// the caller attached. The payload is never inspected, only echoed.
type JobCandidate struct {
	Embedding []float32
	Payload   map[string]any
}

type JobMatch struct {
	Payload    map[string]any
	Score      float64
	Percentage float64
	Quality    string
}

type MatcherService interface {
	RankJobs(resumeEmbedding []float32, jobs []JobCandidate) ([]JobMatch, error)
}

type matcherService struct{}

func NewMatcherService() MatcherService {
	return &matcherService{}
}

// RankJobs implements MatcherService. A bad reference vector fails the
// whole call; a bad candidate vector only drops that candidate.
func (m *matcherService) RankJobs(resumeEmbedding []float32, jobs []JobCandidate) ([]JobMatch, error) {
	if len(resumeEmbedding) != EmbeddingDimensions {
		return nil, NewValidationError("resume embedding must have %d dimensions, got %d", EmbeddingDimensions, len(resumeEmbedding))
	}

	matches := make([]JobMatch, 0, len(jobs))

	for _, job := range jobs {
		if len(job.Embedding) != EmbeddingDimensions {
			logger.Warn().Int("dimensions", len(job.Embedding)).Msg("skipping job with invalid embedding dimensions")
			continue
		}

		score := CosineSimilarity(resumeEmbedding, job.Embedding)
		percentage := score * 100

		matches = append(matches, JobMatch{
			Payload:    job.Payload,
			Score:      score,
			Percentage: percentage,
			Quality:    MatchQuality(percentage),
		})
	}

	// Stable so equal scores keep their input order, making rankings
	// reproducible.
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	return matches, nil
}

// CosineSimilarity returns the directional alignment of two vectors in
// [-1, 1], accumulated in float64. When either vector has zero
// magnitude the similarity is defined as 0.
func CosineSimilarity(a, b []float32) float64 {
	var dot, magA, magB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		magA += float64(a[i]) * float64(a[i])
		magB += float64(b[i]) * float64(b[i])
	}

	if magA == 0 || magB == 0 {
		return 0
	}

	return dot / (math.Sqrt(magA) * math.Sqrt(magB))
}

// MatchQuality buckets a similarity percentage.
func MatchQuality(percentage float64) string {
	switch {
	case percentage >= 70:
		return QualityHigh
	case percentage >= 50:
		return QualityMedium
	default:
		return QualityLow
	}
}
