package scoring

import (
	"fmt"
	"strings"

	"github.com/spigell/ats-scorer/internal/utils"
)

const (
	explainedStrengths = 5
	explainedGaps      = 5

	closingTip = "Use clear section headings, quantify achievements where possible, and tailor keywords to the role."
)

// Explain renders a recruiter-style paragraph for a blended score.
func Explain(score int, role *string, matchPct *int, strengths, gaps []string, hadJobDescription bool) string {
	parts := make([]string, 0, 5)
	parts = append(parts, bandSentence(score, role))

	if hadJobDescription && matchPct != nil {
		parts = append(parts, fmt.Sprintf("Match to the job description: %d%%.", *matchPct))
	}
	if len(strengths) > 0 {
		parts = append(parts, fmt.Sprintf("Strengths include: %s.", strings.Join(utils.FirstN(strengths, explainedStrengths), ", ")))
	}
	if len(gaps) > 0 {
		parts = append(parts, fmt.Sprintf("Consider adding or highlighting: %s to improve ATS and recruiter match.",
			strings.Join(utils.FirstN(gaps, explainedGaps), ", ")))
	}

	parts = append(parts, closingTip)
	return strings.Join(parts, " ")
}

func bandSentence(score int, role *string) string {
	name := func(fallback string) string {
		if role != nil && *role != "" {
			return *role
		}
		return fallback
	}

	switch {
	case score >= 80:
		return fmt.Sprintf("Your resume shows strong alignment with %s.", name("your target role"))
	case score >= 60:
		return fmt.Sprintf("Your resume has solid relevance to %s, with room to strengthen key areas.", name("the role"))
	case score >= 40:
		return fmt.Sprintf("Your resume has moderate fit for %s. Highlighting more relevant experience and skills will improve your score.", name("the role"))
	default:
		return fmt.Sprintf("Your resume would benefit from clearer alignment with %s and more relevant keywords and experience.", name("the target role"))
	}
}
