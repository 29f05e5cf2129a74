package models

// EducationEntry is a single heuristic hit from the resume's education
// section. Institution is always "Unknown": degree lines and institution
// lines are matched independently and never cross-referenced.
type EducationEntry struct {
	Degree      string `json:"degree"`
	Year        string `json:"year,omitempty"`
	Institution string `json:"institution"`
}

// ExperienceEntry is a single heuristic hit from the resume's work
// history. Company is always "Unknown" for the same reason.
type ExperienceEntry struct {
	Role     string `json:"role"`
	Duration string `json:"duration,omitempty"`
	Company  string `json:"company"`
}

// ResumeProfile holds everything the extractor recovered from one
// resume. Skills are deduplicated; the entry lists may contain false
// positives since all extraction is pattern-based.
type ResumeProfile struct {
	Text       string            `json:"text"`
	Skills     []string          `json:"skills"`
	Education  []EducationEntry  `json:"education"`
	Experience []ExperienceEntry `json:"experience"`
	Contact    map[string]string `json:"contact_info"`
}

type TextInput struct {
	Text string `json:"text"`
}

type ParseResumeResponse struct {
	Success bool             `json:"success"`
	Data    ParsedResumeData `json:"data"`
}

type ParsedResumeData struct {
	ParsedText          string            `json:"parsed_text"`
	Skills              []string          `json:"skills"`
	Education           []EducationEntry  `json:"education"`
	Experience          []ExperienceEntry `json:"experience"`
	ContactInfo         map[string]string `json:"contact_info"`
	Embedding           []float32         `json:"embedding"`
	EmbeddingDimensions int               `json:"embedding_dimensions"`
	TextLength          int               `json:"text_length"`
}

type ExtractResumeDataResponse struct {
	Skills     []string `json:"skills"`
	Education  []string `json:"education"`
	Experience []string `json:"experience"`
	TextLength int      `json:"text_length"`
}
