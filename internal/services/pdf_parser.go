package services

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"

	"talentsync/resume-matcher/internal/logger"
)

const (
	// minPDFSize is the smallest payload we are willing to hand to the
	// parser; anything shorter cannot be a real PDF.
	minPDFSize = 50

	// minReadableText is the shortest collapsed text considered usable.
	minReadableText = 5
)

// Placeholder texts substituted when a structurally valid PDF yields no
// usable text. Substitution instead of failure is deliberate: the rest
// of the pipeline always receives some text to embed.
const (
	PlaceholderNoText = "Document uploaded - content could not be extracted automatically. Please ensure this is a text-based PDF."
	PlaceholderFailed = "Document uploaded - automatic text extraction failed. Please try uploading a different PDF file."
)

type PDFParserService interface {
	ExtractText(data []byte) (*PDFContent, error)
}

type PDFContent struct {
	Text          string
	PageCount     int
	PagesWithText int
	PageSuccess   []bool
}

type pdfParserService struct {
	lenientFallback bool
}

type PDFParserOption func(*pdfParserService)

// WithLenientFallback controls whether unreadable-but-valid PDFs
// degrade to a placeholder text (the default) or fail hard.
func WithLenientFallback(enabled bool) PDFParserOption {
	return func(p *pdfParserService) {
		p.lenientFallback = enabled
	}
}

func NewPDFParserService(options ...PDFParserOption) PDFParserService {
	p := &pdfParserService{lenientFallback: true}
	for _, option := range options {
		option(p)
	}
	return p
}

// ExtractText implements PDFParserService.
func (p *pdfParserService) ExtractText(data []byte) (content *PDFContent, err error) {
	if len(data) < minPDFSize {
		return nil, NewValidationError("invalid or empty PDF file")
	}

	// Malformed PDFs can panic deep inside the parser. Once the payload
	// passed the size check, extraction must not hard-fail the caller.
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if !p.lenientFallback {
			content, err = nil, &ProcessingError{Stage: "pdf extraction", Err: fmt.Errorf("parser panic: %v", r)}
			return
		}
		logger.Error().Interface("panic", r).Msg("PDF parser panicked, substituting placeholder text")
		content, err = &PDFContent{Text: PlaceholderFailed}, nil
	}()

	reader, parseErr := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if parseErr != nil {
		logger.Warn().Err(parseErr).Msg("standard PDF parsing failed, retrying in lenient mode")

		reader, parseErr = pdf.NewReaderEncrypted(bytes.NewReader(data), int64(len(data)), func() string { return "" })
		if parseErr != nil {
			logger.Error().Err(parseErr).Int("size", len(data)).Msg("lenient PDF parsing also failed")
			return nil, NewValidationError("cannot parse PDF file: %v", parseErr)
		}
	}

	totalPages := reader.NumPage()
	if totalPages == 0 {
		return nil, NewValidationError("PDF file contains no pages")
	}

	var textBuilder strings.Builder
	pageSuccess := make([]bool, totalPages)
	pagesWithText := 0

	for pageIndex := 1; pageIndex <= totalPages; pageIndex++ {
		page := reader.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		pageText, pageErr := page.GetPlainText(nil)
		if pageErr != nil {
			logger.Warn().Int("page", pageIndex).Err(pageErr).Msg("skipping unreadable page")
			continue
		}

		if strings.TrimSpace(pageText) != "" {
			textBuilder.WriteString(pageText)
			textBuilder.WriteString("\n")
			pageSuccess[pageIndex-1] = true
			pagesWithText++
		}
	}

	text := CollapseWhitespace(textBuilder.String())

	if len(text) < minReadableText {
		if pagesWithText == 0 {
			if !p.lenientFallback {
				return nil, &ProcessingError{Stage: "pdf extraction", Err: fmt.Errorf("no text could be extracted from %d pages", totalPages)}
			}
			logger.Warn().Int("pages", totalPages).Msg("no text could be extracted from PDF, substituting placeholder text")
			return &PDFContent{Text: PlaceholderNoText, PageCount: totalPages}, nil
		}
		return nil, NewValidationError("PDF appears to contain minimal readable text")
	}

	logger.Info().Int("chars", len(text)).Int("pages", pagesWithText).Int("total_pages", totalPages).Msg("extracted text from PDF")

	return &PDFContent{
		Text:          text,
		PageCount:     totalPages,
		PagesWithText: pagesWithText,
		PageSuccess:   pageSuccess,
	}, nil
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// CollapseWhitespace normalizes any whitespace run to a single space
// and trims the ends. Extraction and embedding share this so both
// stages see identical text.
func CollapseWhitespace(text string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(text, " "))
}
