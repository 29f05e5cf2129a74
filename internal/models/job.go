package models

// JobPosting is the caller-supplied description of an open position.
// Role, description and requirements are required; the rest is optional
// and only folded into the embedding text when present.
type JobPosting struct {
	Role           string `json:"role"`
	Description    string `json:"description"`
	Requirements   string `json:"requirements"`
	Location       string `json:"location,omitempty"`
	WorkMode       string `json:"work_mode,omitempty"`
	JobType        string `json:"job_type,omitempty"`
	DurationMonths int    `json:"duration_months,omitempty"`
	CompanyName    string `json:"company_name,omitempty"`
}

type JobEmbeddingResponse struct {
	Success bool             `json:"success"`
	Data    JobEmbeddingData `json:"data"`
}

type JobEmbeddingData struct {
	Embedding           []float32 `json:"embedding"`
	EmbeddingDimensions int       `json:"embedding_dimensions"`
	JobText             string    `json:"job_text"`
	TextLength          int       `json:"text_length"`
}

type EmbeddingResponse struct {
	Embedding  []float32 `json:"embedding"`
	Dimensions int       `json:"dimensions"`
	TextLength int       `json:"text_length"`
}
