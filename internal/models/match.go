package models

// MatchRequest carries one resume embedding and the jobs to rank it
// against. Each job object is opaque apart from its "embedding" key and
// is echoed back untouched in the match list.
type MatchRequest struct {
	ResumeEmbedding []float32        `json:"resume_embedding"`
	JobEmbeddings   []map[string]any `json:"job_embeddings"`
}

type MatchResponse struct {
	Matches   []map[string]any `json:"matches"`
	TotalJobs int              `json:"total_jobs"`
}

type HealthResponse struct {
	Status              string `json:"status"`
	ModelLoaded         bool   `json:"model_loaded"`
	EmbeddingDimensions int    `json:"embedding_dimensions"`
}
