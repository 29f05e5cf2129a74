package services

import (
	"regexp"
	"strings"

	"talentsync/resume-matcher/internal/models"
)

// All extraction below is heuristic pattern matching over plain text.
// There is no grammar and no precision/recall guarantee; callers get a
// best-effort view of the document.

const unknownField = "Unknown"

type skillRule struct {
	Category string
	Pattern  *regexp.Regexp
}

// skillRules is the declarative table of recognized technologies, one
// disjunction per category. Matches are whole-token and keep the casing
// found in the document.
var skillRules = []skillRule{
	{"languages", regexp.MustCompile(`(?i)\b(?:JavaScript|TypeScript|Python|Java|C\+\+|C#|Go|Rust|PHP|Ruby|Swift|Kotlin|Scala|HTML|CSS)\b`)},
	{"frameworks", regexp.MustCompile(`(?i)\b(?:React|Angular|Vue|Next\.?js|Express|Django|Flask|Spring|Laravel|Rails|Bootstrap|Tailwind)\b`)},
	{"databases", regexp.MustCompile(`(?i)\b(?:MongoDB|PostgreSQL|MySQL|Redis|Cassandra|DynamoDB|Elasticsearch|SQLite)\b`)},
	{"cloud", regexp.MustCompile(`(?i)\b(?:AWS|Azure|GCP|Docker|Kubernetes|Jenkins|GitLab|GitHub|Terraform|CI/CD)\b`)},
	{"tools", regexp.MustCompile(`(?i)\b(?:Git|Linux|Node\.?js|REST|GraphQL|API|JSON|XML|SASS|Webpack|npm|yarn)\b`)},
}

// skillsSectionPattern finds a dedicated skills section so mentions
// there are picked up even when the document scan missed them.
var skillsSectionPattern = regexp.MustCompile(`(?i)(?:skills?|technologies?|technical skills?)[:\s]+(.*?)(?:\n\n|\n[A-Z]|$)`)

// educationRules match degree-keyword lines and institution-keyword
// lines independently; each hit is captured through end of line.
var educationRules = []*regexp.Regexp{
	regexp.MustCompile(`(?im)(?:Bachelor|Master|PhD|Doctorate|B\.?[A-Z]+|M\.?[A-Z]+|BS|MS|MBA|B\.Tech|M\.Tech)[^\n]*`),
	regexp.MustCompile(`(?im)(?:University|College|Institute)[^\n]*`),
}

// experienceRules match named job titles and generic role nouns, each
// captured through end of line.
var experienceRules = []*regexp.Regexp{
	regexp.MustCompile(`(?im)(?:Software Engineer|Developer|Data Scientist|Product Manager|Designer|Analyst|Intern|Lead|Senior|Junior)[^\n]*`),
	regexp.MustCompile(`(?im)(?:Engineer|Manager|Specialist|Coordinator|Executive)[^\n]*`),
}

var (
	yearPattern     = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)
	durationPattern = regexp.MustCompile(`(?i)\b\d+\s+(?:years?|months?)\b`)
)

// One pattern per contact channel; only the first match is kept.
var contactPatterns = map[string]*regexp.Regexp{
	"email":    regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`),
	"phone":    regexp.MustCompile(`\+?[1-9][\d\s\-()]{8,}`),
	"github":   regexp.MustCompile(`(?i)github\.com/[\w\-.]+`),
	"linkedin": regexp.MustCompile(`(?i)linkedin\.com/in/[\w\-.]+`),
}

type ResumeExtractorService interface {
	ExtractProfile(text string) *models.ResumeProfile
	ExtractSkills(text string) []string
	ExtractEducation(text string) []models.EducationEntry
	ExtractExperience(text string) []models.ExperienceEntry
	ExtractContact(text string) map[string]string
}

type resumeExtractorService struct{}

func NewResumeExtractorService() ResumeExtractorService {
	return &resumeExtractorService{}
}

// ExtractProfile implements ResumeExtractorService.
func (e *resumeExtractorService) ExtractProfile(text string) *models.ResumeProfile {
	return &models.ResumeProfile{
		Text:       text,
		Skills:     e.ExtractSkills(text),
		Education:  e.ExtractEducation(text),
		Experience: e.ExtractExperience(text),
		Contact:    e.ExtractContact(text),
	}
}

// ExtractSkills implements ResumeExtractorService. It unions matches
// from the whole document with a second scan of any dedicated skills
// section; the second pass only ever adds to the set.
func (e *resumeExtractorService) ExtractSkills(text string) []string {
	seen := make(map[string]struct{})
	var skills []string

	addMatches := func(scope string) {
		for _, rule := range skillRules {
			for _, match := range rule.Pattern.FindAllString(scope, -1) {
				if _, ok := seen[match]; ok {
					continue
				}
				seen[match] = struct{}{}
				skills = append(skills, match)
			}
		}
	}

	addMatches(text)

	if section := skillsSectionPattern.FindStringSubmatch(text); section != nil {
		addMatches(section[1])
	}

	return skills
}

// ExtractEducation implements ResumeExtractorService.
func (e *resumeExtractorService) ExtractEducation(text string) []models.EducationEntry {
	var education []models.EducationEntry

	for _, rule := range educationRules {
		for _, match := range rule.FindAllString(text, -1) {
			education = append(education, models.EducationEntry{
				Degree:      strings.TrimSpace(match),
				Year:        yearPattern.FindString(match),
				Institution: unknownField,
			})
		}
	}

	return education
}

// ExtractExperience implements ResumeExtractorService.
func (e *resumeExtractorService) ExtractExperience(text string) []models.ExperienceEntry {
	var experience []models.ExperienceEntry

	for _, rule := range experienceRules {
		for _, match := range rule.FindAllString(text, -1) {
			experience = append(experience, models.ExperienceEntry{
				Role:     strings.TrimSpace(match),
				Duration: durationPattern.FindString(match),
				Company:  unknownField,
			})
		}
	}

	return experience
}

// ExtractContact implements ResumeExtractorService. At most one value
// per channel; channels with no match are absent from the map.
func (e *resumeExtractorService) ExtractContact(text string) map[string]string {
	contact := make(map[string]string)

	for channel, pattern := range contactPatterns {
		if match := pattern.FindString(text); match != "" {
			contact[channel] = match
		}
	}

	return contact
}
