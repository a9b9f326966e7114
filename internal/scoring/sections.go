package scoring

import (
	"regexp"
	"strings"

	"github.com/spigell/ats-scorer/internal/utils"
)

// Section length caps, in characters.
const (
	maxSkillsSection     = 600
	maxExperienceSection = 1200
	maxProjectsSection   = 800
)

//nolint:gochecknoglobals // fixed header synonyms
var (
	skillsHeaders     = headerPatterns("skills", "technical skills", "core competencies", "expertise", "technologies")
	experienceHeaders = headerPatterns("experience", "work experience", "employment", "professional experience", "career")
	projectsHeaders   = headerPatterns("projects", "personal projects", "side projects", "key projects")

	blankLine      = regexp.MustCompile(`\n[ \t\r]*\n`)
	skillsFallback = regexp.MustCompile(`(?i)(?:javascript|python|react|node|java|sql|html|css|aws|docker|git)[^.\n]*`)
)

// ResumeSections holds heuristic fragments of a résumé. Fragments may
// overlap and any of them may be empty.
type ResumeSections struct {
	Skills     string `json:"skills"`
	Experience string `json:"experience"`
	Projects   string `json:"projects"`
	Full       string `json:"full"`
}

// SegmentSections slices text into skills, experience and projects fragments.
// Within a header group the first synonym present in the text wins.
func SegmentSections(text string) ResumeSections {
	sections := ResumeSections{
		Skills:     extractSection(text, skillsHeaders, maxSkillsSection),
		Experience: extractSection(text, experienceHeaders, maxExperienceSection),
		Projects:   extractSection(text, projectsHeaders, maxProjectsSection),
		Full:       text,
	}

	if sections.Skills == "" {
		if mentions := skillsFallback.FindAllString(text, -1); len(mentions) > 0 {
			sections.Skills = utils.TruncateRunes(strings.Join(mentions, " "), maxSkillsSection)
		}
	}

	return sections
}

func extractSection(text string, headers []*regexp.Regexp, maxLen int) string {
	for _, header := range headers {
		loc := header.FindStringIndex(text)
		if loc == nil {
			continue
		}

		end := len(text)
		if boundary := blankLine.FindStringIndex(text[loc[1]:]); boundary != nil {
			end = loc[1] + boundary[0]
		}

		chunk := utils.TruncateRunes(text[loc[0]:end], maxLen)
		return collapseSpaces(chunk)
	}
	return ""
}

func headerPatterns(headers ...string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, 0, len(headers))
	for _, header := range headers {
		patterns = append(patterns, regexp.MustCompile(`(?i)`+regexp.QuoteMeta(header)))
	}
	return patterns
}
