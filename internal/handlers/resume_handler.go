package handlers

import (
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"talentsync/resume-matcher/internal/logger"
	"talentsync/resume-matcher/internal/models"
	"talentsync/resume-matcher/internal/services"
)

// minResumeText is the shortest extracted text accepted as a resume.
// The extraction placeholders are longer than this on purpose.
const minResumeText = 50

type ResumeHandler struct {
	pdfParser   services.PDFParserService
	extractor   services.ResumeExtractorService
	embedding   services.EmbeddingService
	maxFileSize int64
}

func NewResumeHandler(
	pdfParser services.PDFParserService,
	extractor services.ResumeExtractorService,
	embedding services.EmbeddingService,
	maxFileSize int64,
) *ResumeHandler {
	return &ResumeHandler{
		pdfParser:   pdfParser,
		extractor:   extractor,
		embedding:   embedding,
		maxFileSize: maxFileSize,
	}
}

func (h *ResumeHandler) HandleParseResume(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No file uploaded. Please upload a PDF resume as 'file'.",
		})
	}

	if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".pdf") {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Only PDF files are supported",
		})
	}

	if fileHeader.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Resume file too large",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return &services.ProcessingError{Stage: "resume upload", Err: err}
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return &services.ProcessingError{Stage: "resume upload", Err: err}
	}

	uploadID := uuid.New()
	logger.Info().
		Str("upload_id", uploadID.String()).
		Str("filename", fileHeader.Filename).
		Int("size", len(data)).
		Msg("parsing resume")

	content, err := h.pdfParser.ExtractText(data)
	if err != nil {
		return err
	}

	if len(strings.TrimSpace(content.Text)) < minResumeText {
		return services.NewValidationError("PDF appears to be empty or contains insufficient text")
	}

	profile := h.extractor.ExtractProfile(content.Text)

	composed := h.embedding.ComposeResumeText(content.Text, profile)
	embedding, err := h.embedding.GenerateEmbedding(c.Context(), composed)
	if err != nil {
		return err
	}

	logger.Info().
		Str("upload_id", uploadID.String()).
		Int("skills", len(profile.Skills)).
		Int("education", len(profile.Education)).
		Int("experience", len(profile.Experience)).
		Msg("resume parsed")

	return c.JSON(models.ParseResumeResponse{
		Success: true,
		Data: models.ParsedResumeData{
			ParsedText:          content.Text,
			Skills:              orEmpty(profile.Skills),
			Education:           orEmpty(profile.Education),
			Experience:          orEmpty(profile.Experience),
			ContactInfo:         profile.Contact,
			Embedding:           embedding,
			EmbeddingDimensions: len(embedding),
			TextLength:          len(content.Text),
		},
	})
}

func (h *ResumeHandler) HandleExtractResumeData(c *fiber.Ctx) error {
	var req models.TextInput
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	skills := h.extractor.ExtractSkills(req.Text)
	education := h.extractor.ExtractEducation(req.Text)
	experience := h.extractor.ExtractExperience(req.Text)

	degrees := make([]string, 0, len(education))
	for _, entry := range education {
		degrees = append(degrees, entry.Degree)
	}

	roles := make([]string, 0, len(experience))
	for _, entry := range experience {
		roles = append(roles, entry.Role)
	}

	logger.Info().
		Int("skills", len(skills)).
		Int("education", len(degrees)).
		Int("experience", len(roles)).
		Int("text_length", len(req.Text)).
		Msg("extracted resume data")

	return c.JSON(models.ExtractResumeDataResponse{
		Skills:     orEmpty(skills),
		Education:  degrees,
		Experience: roles,
		TextLength: len(req.Text),
	})
}

// orEmpty keeps JSON arrays as [] instead of null when nothing matched.
func orEmpty[T any](values []T) []T {
	if values == nil {
		return []T{}
	}
	return values
}
