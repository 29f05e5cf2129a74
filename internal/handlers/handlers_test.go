package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talentsync/resume-matcher/internal/models"
	"talentsync/resume-matcher/internal/services"
)

type stubEmbedder struct {
	err error
}

func (s *stubEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	if s.err != nil {
		return nil, s.err
	}
	v := make([]float32, services.EmbeddingDimensions)
	for i := range v {
		v[i] = float32((len(text)+i)%13) / 13
	}
	return v, nil
}

func newTestApp() *fiber.App {
	embedder := &stubEmbedder{}
	embeddingService := services.NewEmbeddingService(embedder)

	resumeHandler := NewResumeHandler(
		services.NewPDFParserService(),
		services.NewResumeExtractorService(),
		embeddingService,
		10<<20,
	)
	embeddingHandler := NewEmbeddingHandler(embeddingService)
	matchHandler := NewMatchHandler(services.NewMatcherService())
	healthHandler := NewHealthHandler(embedder)

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	api := app.Group("/api/v1")
	api.Get("/health", healthHandler.HandleHealth)
	api.Post("/parse-resume", resumeHandler.HandleParseResume)
	api.Post("/extract-resume-data", resumeHandler.HandleExtractResumeData)
	api.Post("/generate-job-embedding", embeddingHandler.HandleGenerateJobEmbedding)
	api.Post("/generate-text-embedding", embeddingHandler.HandleGenerateTextEmbedding)
	api.Post("/find-matching-jobs", matchHandler.HandleFindMatchingJobs)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body any) *http.Response {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func TestHealthEndpoint(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var health models.HealthResponse
	decodeJSON(t, resp, &health)

	assert.Equal(t, "healthy", health.Status)
	assert.True(t, health.ModelLoaded)
	assert.Equal(t, services.EmbeddingDimensions, health.EmbeddingDimensions)
}

func TestGenerateTextEmbedding(t *testing.T) {
	app := newTestApp()

	resp := postJSON(t, app, "/api/v1/generate-text-embedding", models.TextInput{Text: "a short blurb about Go services"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body models.EmbeddingResponse
	decodeJSON(t, resp, &body)

	assert.Len(t, body.Embedding, services.EmbeddingDimensions)
	assert.Equal(t, services.EmbeddingDimensions, body.Dimensions)
	assert.Equal(t, len("a short blurb about Go services"), body.TextLength)
}

func TestGenerateTextEmbeddingRejectsEmptyText(t *testing.T) {
	app := newTestApp()

	resp := postJSON(t, app, "/api/v1/generate-text-embedding", models.TextInput{Text: "   "})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGenerateTextEmbeddingCapabilityFailure(t *testing.T) {
	embeddingService := services.NewEmbeddingService(&stubEmbedder{err: fmt.Errorf("model unavailable")})
	embeddingHandler := NewEmbeddingHandler(embeddingService)

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Post("/api/v1/generate-text-embedding", embeddingHandler.HandleGenerateTextEmbedding)

	resp := postJSON(t, app, "/api/v1/generate-text-embedding", models.TextInput{Text: "some text"})
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestGenerateJobEmbedding(t *testing.T) {
	app := newTestApp()

	job := models.JobPosting{
		Role:         "Platform Engineer",
		Description:  "Keep the deployment pipeline healthy.",
		Requirements: "Go, Kubernetes",
		Location:     "Remote",
	}

	resp := postJSON(t, app, "/api/v1/generate-job-embedding", job)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body models.JobEmbeddingResponse
	decodeJSON(t, resp, &body)

	assert.True(t, body.Success)
	assert.Len(t, body.Data.Embedding, services.EmbeddingDimensions)
	assert.Contains(t, body.Data.JobText, "Platform Engineer")
	assert.Contains(t, body.Data.JobText, "Keep the deployment pipeline healthy.")
	assert.Contains(t, body.Data.JobText, "Location: Remote")
	assert.Equal(t, len(body.Data.JobText), body.Data.TextLength)
}

func TestGenerateJobEmbeddingRequiresCoreFields(t *testing.T) {
	app := newTestApp()

	resp := postJSON(t, app, "/api/v1/generate-job-embedding", models.JobPosting{Role: "Engineer"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestFindMatchingJobs(t *testing.T) {
	app := newTestApp()

	resume := make([]float32, services.EmbeddingDimensions)
	resume[0] = 1

	aligned := make([]any, services.EmbeddingDimensions)
	orthogonal := make([]any, services.EmbeddingDimensions)
	for i := range aligned {
		aligned[i] = 0.0
		orthogonal[i] = 0.0
	}
	aligned[0] = 1.0
	orthogonal[1] = 1.0

	req := models.MatchRequest{
		ResumeEmbedding: resume,
		JobEmbeddings: []map[string]any{
			{"job_id": "far", "embedding": orthogonal},
			{"job_id": "close", "embedding": aligned, "company": "Acme"},
			{"job_id": "broken", "embedding": []any{1.0, 2.0}},
		},
	}

	resp := postJSON(t, app, "/api/v1/find-matching-jobs", req)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body models.MatchResponse
	decodeJSON(t, resp, &body)

	// The short-embedding job is dropped without failing the batch.
	require.Equal(t, 2, body.TotalJobs)
	require.Len(t, body.Matches, 2)

	assert.Equal(t, "close", body.Matches[0]["job_id"])
	assert.Equal(t, "Acme", body.Matches[0]["company"])
	assert.Equal(t, "High", body.Matches[0]["match_quality"])
	assert.InDelta(t, 1.0, body.Matches[0]["similarity_score"].(float64), 1e-9)
	assert.InDelta(t, 100.0, body.Matches[0]["similarity_percentage"].(float64), 1e-7)

	assert.Equal(t, "far", body.Matches[1]["job_id"])
	assert.Equal(t, "Low", body.Matches[1]["match_quality"])
}

func TestFindMatchingJobsRejectsBadResumeVector(t *testing.T) {
	app := newTestApp()

	resp := postJSON(t, app, "/api/v1/find-matching-jobs", models.MatchRequest{
		ResumeEmbedding: []float32{1, 2, 3},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestExtractResumeData(t *testing.T) {
	app := newTestApp()

	resp := postJSON(t, app, "/api/v1/extract-resume-data", models.TextInput{
		Text: "Skills: Python, React, Docker\nSoftware Engineer, 4 years",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body models.ExtractResumeDataResponse
	decodeJSON(t, resp, &body)

	assert.ElementsMatch(t, []string{"Python", "React", "Docker"}, body.Skills)
	assert.NotEmpty(t, body.Experience)
	assert.Equal(t, len("Skills: Python, React, Docker\nSoftware Engineer, 4 years"), body.TextLength)
}

func postFile(t *testing.T, app *fiber.App, filename string, data []byte) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/parse-resume", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestParseResumeRejectsNonPDFExtension(t *testing.T) {
	app := newTestApp()

	resp := postFile(t, app, "resume.txt", []byte("plain text resume"))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestParseResumeRejectsGarbagePayload(t *testing.T) {
	app := newTestApp()

	resp := postFile(t, app, "resume.pdf", []byte(strings.Repeat("junk ", 100)))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestParseResumeScannedPDFGetsPlaceholderAndEmbedding(t *testing.T) {
	app := newTestApp()

	// A valid single-page PDF whose page carries no extractable text.
	resp := postFile(t, app, "scan.pdf", buildEmptyPagePDF())
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body models.ParseResumeResponse
	decodeJSON(t, resp, &body)

	assert.True(t, body.Success)
	assert.Equal(t, services.PlaceholderNoText, body.Data.ParsedText)
	assert.Len(t, body.Data.Embedding, services.EmbeddingDimensions)
	assert.Equal(t, services.EmbeddingDimensions, body.Data.EmbeddingDimensions)
	assert.Empty(t, body.Data.Skills)
}

// buildEmptyPagePDF writes a structurally valid PDF with one empty
// page, computing xref offsets as objects are appended.
func buildEmptyPagePDF() []byte {
	var buf bytes.Buffer
	var offsets []int

	addObject := func(body string) {
		offsets = append(offsets, buf.Len())
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", len(offsets), body)
	}

	buf.WriteString("%PDF-1.4\n")
	addObject("<< /Type /Catalog /Pages 2 0 R >>")
	addObject("<< /Type /Pages /Kids [3 0 R] /Count 1 >>")
	addObject("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents 4 0 R >>")
	addObject("<< /Length 0 >>\nstream\n\nendstream")

	xrefOffset := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(offsets)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, offset := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offset)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(offsets)+1, xrefOffset)

	return buf.Bytes()
}
