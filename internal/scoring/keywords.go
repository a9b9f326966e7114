package scoring

import (
	"math"
	"regexp"
	"strings"
)

//nolint:gochecknoglobals // fixed vocabularies
var (
	technicalTerms = []string{
		"javascript", "python", "java", "react", "angular", "vue", "node.js", "express",
		"html", "css", "sql", "mongodb", "postgresql", "mysql", "git", "github", "docker",
		"aws", "azure", "gcp", "rest", "api", "json", "xml", "agile", "scrum", "oop",
		"data structures", "algorithms", "testing", "ci/cd", "linux", "bash", "typescript",
	}

	softTerms = []string{
		"communication", "teamwork", "leadership", "problem solving", "critical thinking",
		"adaptability", "creativity", "attention to detail", "time management", "collaboration",
	}

	formatTerms = []string{
		"header", "contact", "phone", "email", "address", "linkedin", "github", "website",
		"summary", "objective", "experience", "education", "skills", "certifications",
		"awards", "projects", "volunteer", "professional",
	}

	experienceIndicators = []string{"experience", "work", "employment", "job", "position", "role"}
	educationIndicators  = []string{"education", "degree", "university", "college", "school", "diploma"}

	contactPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`),
		regexp.MustCompile(`(\+?\d{1,3}[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`),
		regexp.MustCompile(`(?i)linkedin\.com`),
		regexp.MustCompile(`(?i)github\.com`),
	}
)

// Weights of the keyword score components.
const (
	weightFormatting = 0.25
	weightDensity    = 0.30
	weightExperience = 0.10
	weightEducation  = 0.08
	weightSkills     = 0.12
	weightContact    = 0.15

	experiencePoints = 20
	educationPoints  = 15
	skillsPoints     = 15
)

// KeywordAnalysis is the deterministic rule-engine view of a résumé.
type KeywordAnalysis struct {
	TechnicalMatches     int      `json:"technicalMatches" yaml:"technicalMatches"`
	SoftMatches          int      `json:"softMatches" yaml:"softMatches"`
	FormatMatches        int      `json:"formatMatches" yaml:"formatMatches"`
	ContactMatches       int      `json:"contactMatches" yaml:"contactMatches"`
	KeywordDensity       float64  `json:"keywordDensity" yaml:"keywordDensity"`
	MatchedTechnical     []string `json:"matchedTechnical" yaml:"matchedTechnical"`
	MatchedSoft          []string `json:"matchedSoft" yaml:"matchedSoft"`
	MatchedFormats       []string `json:"matchedFormats" yaml:"matchedFormats"`
	HasExperienceSection bool     `json:"hasExperienceSection" yaml:"hasExperienceSection"`
	HasEducationSection  bool     `json:"hasEducationSection" yaml:"hasEducationSection"`
	HasSkillsSection     bool     `json:"hasSkillsSection" yaml:"hasSkillsSection"`
	TotalWords           int      `json:"totalWords" yaml:"totalWords"`
	Score                int      `json:"score" yaml:"score"`
	Feedback             string   `json:"feedback" yaml:"feedback"`
}

// Skills returns the matched technical and soft terms, in that order.
func (k KeywordAnalysis) Skills() []string {
	skills := make([]string, 0, len(k.MatchedTechnical)+len(k.MatchedSoft))
	skills = append(skills, k.MatchedTechnical...)
	return append(skills, k.MatchedSoft...)
}

// AnalyzeKeywords runs the rule engine over the raw résumé text. It makes no
// external calls and returns the same analysis for the same text.
func AnalyzeKeywords(text string) KeywordAnalysis {
	lower := strings.ToLower(text)

	matchedTechnical := matchTerms(lower, technicalTerms)
	matchedSoft := matchTerms(lower, softTerms)
	matchedFormats := matchTerms(lower, formatTerms)

	k := KeywordAnalysis{
		TechnicalMatches:     len(matchedTechnical),
		SoftMatches:          len(matchedSoft),
		FormatMatches:        len(matchedFormats),
		MatchedTechnical:     matchedTechnical,
		MatchedSoft:          matchedSoft,
		MatchedFormats:       matchedFormats,
		HasExperienceSection: containsAny(lower, experienceIndicators),
		HasEducationSection:  containsAny(lower, educationIndicators),
		HasSkillsSection:     strings.Contains(lower, "skills"),
		TotalWords:           len(strings.Fields(text)),
	}

	for _, pattern := range contactPatterns {
		if pattern.MatchString(text) {
			k.ContactMatches++
		}
	}

	density := 0.0
	if k.TotalWords > 0 {
		density = float64(k.TechnicalMatches+k.SoftMatches) / float64(k.TotalWords) * 100
	}
	k.KeywordDensity = math.Round(density*100) / 100

	k.Score = keywordScore(k, density)
	k.Feedback = keywordFeedback(k)

	return k
}

func keywordScore(k KeywordAnalysis, density float64) int {
	formatting := formattingScore(k.FormatMatches)
	if k.TotalWords == 0 {
		formatting = 0
	}

	densityScore := math.Min(100, density*10)

	experience := 0.0
	if k.HasExperienceSection {
		experience = experiencePoints
	}

	education := 0.0
	if k.HasEducationSection {
		education = educationPoints
	}

	skills := 0.0
	if k.HasSkillsSection {
		skills = skillsPoints
	}

	total := formatting*weightFormatting +
		densityScore*weightDensity +
		experience*weightExperience +
		education*weightEducation +
		skills*weightSkills +
		contactScore(k.ContactMatches)*weightContact

	return clampScore(math.Round(total))
}

func formattingScore(matches int) float64 {
	switch {
	case matches >= 5:
		return 100
	case matches >= 4:
		return 80
	case matches >= 3:
		return 60
	case matches >= 2:
		return 40
	default:
		return 20
	}
}

func contactScore(matches int) float64 {
	switch {
	case matches >= 2:
		return 10
	case matches == 1:
		return 5
	default:
		return 0
	}
}

func keywordFeedback(k KeywordAnalysis) string {
	parts := make([]string, 0, 8)

	switch {
	case k.Score >= 85:
		parts = append(parts, "Excellent! Your resume has strong ATS compatibility.")
	case k.Score >= 70:
		parts = append(parts, "Good resume with decent ATS compatibility.")
	case k.Score >= 50:
		parts = append(parts, "Average resume with room for improvement.")
	default:
		parts = append(parts, "Low ATS compatibility. Significant improvements needed.")
	}

	if k.TechnicalMatches < 5 {
		parts = append(parts, "Consider adding more technical skills relevant to your target positions.")
	}
	if k.SoftMatches < 3 {
		parts = append(parts, "Include more soft skills to demonstrate interpersonal abilities.")
	}
	if !k.HasExperienceSection {
		parts = append(parts, "Add an experience/work section to showcase your professional background.")
	}
	if !k.HasEducationSection {
		parts = append(parts, "Include an education section to highlight your academic qualifications.")
	}
	if !k.HasSkillsSection {
		parts = append(parts, "Add a dedicated skills section to clearly list your technical and soft skills.")
	}
	if k.ContactMatches < 2 {
		parts = append(parts, "Ensure your contact information (email, phone, LinkedIn/GitHub) is clearly visible.")
	}

	switch {
	case k.TotalWords < 300:
		parts = append(parts, "Your resume might be too brief. Consider adding more details about your experiences and accomplishments.")
	case k.TotalWords > 600:
		parts = append(parts, "Your resume might be too lengthy. Focus on the most relevant and impactful information.")
	}

	if k.FormatMatches < 4 {
		parts = append(parts, "Improve resume formatting with clear sections and standard headings.")
	}

	return strings.Join(parts, " ")
}

// matchTerms returns the terms found in lower, in vocabulary order.
func matchTerms(lower string, terms []string) []string {
	matched := make([]string, 0, len(terms))
	for _, term := range terms {
		if strings.Contains(lower, term) {
			matched = append(matched, term)
		}
	}
	return matched
}

func containsAny(lower string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}

func clampScore(v float64) int {
	switch {
	case math.IsNaN(v) || v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return int(v)
	}
}
