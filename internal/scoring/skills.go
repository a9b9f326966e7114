package scoring

import (
	"net/url"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Skill category names. Technical skills are grouped by domain; soft skills
// share one bucket and unknown terms land in CategoryOther.
const (
	CategoryProgramming = "programming"
	CategoryWebDev      = "web_dev"
	CategoryDataScience = "data_science"
	CategoryCloud       = "cloud"
	CategoryDatabases   = "databases"
	CategoryDevOps      = "devops"
	CategorySoft        = "soft"
	CategoryOther       = "other"
)

const (
	searchURL            = "https://www.google.com/search?q=learn+"
	maxResourcesPerSkill = 2
)

//nolint:gochecknoglobals // fixed taxonomy
var (
	skillTaxonomy = buildTaxonomy(map[string][]string{
		CategoryProgramming: {"python", "java", "javascript", "typescript", "c++", "c#", "go", "rust", "php", "ruby"},
		CategoryWebDev: {
			"html", "css", "react", "angular", "vue", "node", "node.js", "express", "frontend", "backend",
			"full stack", "full-stack", "fullstack", "rest", "api", "graphql",
		},
		CategoryDataScience: {"r", "pandas", "numpy", "machine learning", "data", "data structures", "algorithms"},
		CategoryCloud:       {"aws", "azure", "gcp", "docker", "kubernetes"},
		CategoryDatabases:   {"sql", "mysql", "postgresql", "postgres", "mongodb", "redis"},
		CategoryDevOps:      {"jenkins", "git", "github", "ci/cd", "linux", "bash"},
		CategorySoft:        append([]string{"work ethic"}, softTerms...),
	})

	learningCatalog = map[string][]LearningResource{
		"python": {
			{Title: "Python for Data Science", Platform: "Coursera", URL: "https://coursera.org/python-ds", Duration: "4 weeks", Difficulty: "beginner"},
			{Title: "Python Programming Bootcamp", Platform: "Udemy", URL: "https://udemy.com/python-bootcamp", Duration: "6 weeks", Difficulty: "beginner"},
		},
		"javascript": {
			{Title: "JavaScript: Understanding the Weird Parts", Platform: "Udemy", URL: "https://udemy.com/js-weird-parts", Duration: "6 weeks", Difficulty: "intermediate"},
			{Title: "The Complete JavaScript Course", Platform: "Udemy", URL: "https://udemy.com/js-complete", Duration: "8 weeks", Difficulty: "beginner"},
		},
		"react": {
			{Title: "React - The Complete Guide", Platform: "Udemy", URL: "https://udemy.com/react-complete", Duration: "6 weeks", Difficulty: "intermediate"},
			{Title: "Full Stack Open", Platform: "University", URL: "https://fullstackopen.com", Duration: "12 weeks", Difficulty: "intermediate"},
		},
		"aws": {
			{Title: "AWS Certified Solutions Architect", Platform: "A Cloud Guru", URL: "https://acloudguru.com/aws-sa", Duration: "8 weeks", Difficulty: "intermediate"},
			{Title: "AWS Fundamentals", Platform: "Coursera", URL: "https://coursera.org/aws-fundamentals", Duration: "4 weeks", Difficulty: "beginner"},
		},
		"machine learning": {
			{Title: "Machine Learning by Andrew Ng", Platform: "Coursera", URL: "https://coursera.org/ml", Duration: "10 weeks", Difficulty: "intermediate"},
			{Title: "Python for Machine Learning", Platform: "Udemy", URL: "https://udemy.com/python-ml", Duration: "8 weeks", Difficulty: "intermediate"},
		},
		"communication": {
			{Title: "Communication Skills for Engineers", Platform: "Coursera", URL: "https://coursera.org/comm-skills-eng", Duration: "4 weeks", Difficulty: "beginner"},
			{Title: "Technical Writing", Platform: "Udemy", URL: "https://udemy.com/tech-writing", Duration: "3 weeks", Difficulty: "beginner"},
		},
		"leadership": {
			{Title: "Leadership Principles", Platform: "Harvard Online", URL: "https://online.hbs.edu/leadership", Duration: "6 weeks", Difficulty: "advanced"},
			{Title: "Management Fundamentals", Platform: "Coursera", URL: "https://coursera.org/management", Duration: "5 weeks", Difficulty: "intermediate"},
		},
	}
)

// LearningResource points at a course that closes one skill gap.
type LearningResource struct {
	Skill      string `json:"skill" yaml:"skill"`
	Title      string `json:"title" yaml:"title"`
	Platform   string `json:"platform" yaml:"platform"`
	URL        string `json:"url" yaml:"url"`
	Duration   string `json:"duration" yaml:"duration"`
	Difficulty string `json:"difficulty" yaml:"difficulty"`
}

func buildTaxonomy(groups map[string][]string) map[string]string {
	taxonomy := make(map[string]string)
	for category, skills := range groups {
		for _, skill := range skills {
			taxonomy[skill] = category
		}
	}
	return taxonomy
}

// SkillCategory returns the category of a single skill term.
func SkillCategory(skill string) string {
	if category, ok := skillTaxonomy[strings.ToLower(strings.TrimSpace(skill))]; ok {
		return category
	}
	return CategoryOther
}

// CategorizeSkills groups skills by SkillCategory, keeping input order inside
// each group. The result is never nil.
func CategorizeSkills(skills []string) map[string][]string {
	grouped := make(map[string][]string)
	for _, skill := range skills {
		category := SkillCategory(skill)
		grouped[category] = append(grouped[category], skill)
	}
	return grouped
}

// Recommendations lists up to two catalog courses per gap, in gap order.
// Gaps without a catalog entry get a generic search link.
func Recommendations(gaps []string) []LearningResource {
	out := make([]LearningResource, 0, len(gaps))
	for _, gap := range gaps {
		skill := strings.ToLower(strings.TrimSpace(gap))
		if skill == "" {
			continue
		}

		resources, ok := learningCatalog[skill]
		if !ok {
			out = append(out, LearningResource{
				Skill:      gap,
				Title:      "Learn " + cases.Title(language.English).String(skill),
				Platform:   "Multiple Platforms",
				URL:        searchURL + url.QueryEscape(skill),
				Duration:   "Variable",
				Difficulty: "Variable",
			})
			continue
		}

		for _, r := range resources[:min(maxResourcesPerSkill, len(resources))] {
			r.Skill = gap
			out = append(out, r)
		}
	}
	return out
}
