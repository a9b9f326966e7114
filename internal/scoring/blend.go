package scoring

import (
	"math"
	"strings"
)

// Category weights of the blended score.
const (
	weightSkillsCategory     = 0.40
	weightExperienceCategory = 0.25
	weightProjectsCategory   = 0.20
	weightStructureCategory  = 0.15

	semanticShare = 0.6
	keywordShare  = 0.4
)

// Components are per-category scores on a 0-100 scale.
type Components struct {
	Skills     float64 `json:"skills" yaml:"skills"`
	Experience float64 `json:"experience" yaml:"experience"`
	Projects   float64 `json:"projects" yaml:"projects"`
	Structure  float64 `json:"structure" yaml:"structure"`
}

// KeywordComponents maps a keyword analysis to category scores.
func KeywordComponents(text string, k KeywordAnalysis) Components {
	experience := 20.0
	if k.HasExperienceSection {
		experience = 80
	}

	projects := 40.0
	if strings.Contains(strings.ToLower(text), "project") {
		projects = 70
	}

	return Components{
		Skills:     math.Min(100, float64(k.TechnicalMatches+k.SoftMatches)*8),
		Experience: math.Min(100, experience+float64(k.FormatMatches)*2),
		Projects:   projects,
		Structure:  math.Min(100, float64(k.FormatMatches)*15+float64(k.ContactMatches)*10),
	}
}

// Blend mixes section similarities with keyword components and returns the
// final score in [0,100].
func Blend(sim SectionSimilarities, kw Components) int {
	skills := sim.Skills*100*semanticShare + kw.Skills*keywordShare
	experience := sim.Experience*100*semanticShare + kw.Experience*keywordShare
	projects := sim.Projects*100*semanticShare + kw.Projects*keywordShare
	structure := math.Min(100, sim.Structure*100)*semanticShare + kw.Structure*keywordShare

	weighted := skills*weightSkillsCategory +
		experience*weightExperienceCategory +
		projects*weightProjectsCategory +
		structure*weightStructureCategory

	return clampScore(math.Round(math.Max(0, math.Min(100, weighted))))
}
