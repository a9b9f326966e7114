package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSkillCategory(t *testing.T) {
	tests := map[string]string{
		"Python":           CategoryProgramming,
		"full stack":       CategoryWebDev,
		"graphql":          CategoryWebDev,
		"machine learning": CategoryDataScience,
		" AWS ":            CategoryCloud,
		"postgres":         CategoryDatabases,
		"ci/cd":            CategoryDevOps,
		"teamwork":         CategorySoft,
		"work ethic":       CategorySoft,
		"microservices":    CategoryOther,
	}

	for skill, want := range tests {
		assert.Equal(t, want, SkillCategory(skill), skill)
	}
}

func TestCategorizeSkills(t *testing.T) {
	got := CategorizeSkills([]string{"aws", "python", "docker", "agile", "go"})

	assert.Equal(t, map[string][]string{
		CategoryCloud:       {"aws", "docker"},
		CategoryProgramming: {"python", "go"},
		CategoryOther:       {"agile"},
	}, got)

	assert.NotNil(t, CategorizeSkills(nil))
	assert.Empty(t, CategorizeSkills(nil))
}

func TestRecommendations(t *testing.T) {
	got := Recommendations([]string{"AWS", "  ", "machine learning", "restful apis"})

	require.Len(t, got, 5)

	assert.Equal(t, "AWS", got[0].Skill)
	assert.Equal(t, "AWS Certified Solutions Architect", got[0].Title)
	assert.Equal(t, "AWS Fundamentals", got[1].Title)
	assert.Equal(t, "Machine Learning by Andrew Ng", got[2].Title)
	assert.Equal(t, "machine learning", got[3].Skill)

	assert.Equal(t, LearningResource{
		Skill:      "restful apis",
		Title:      "Learn Restful Apis",
		Platform:   "Multiple Platforms",
		URL:        "https://www.google.com/search?q=learn+restful+apis",
		Duration:   "Variable",
		Difficulty: "Variable",
	}, got[4])

	assert.NotNil(t, Recommendations(nil))
	assert.Empty(t, Recommendations(nil))
}

func TestRecommendationsDoNotShareCatalog(t *testing.T) {
	first := Recommendations([]string{"react"})
	first[0].Title = "changed"

	second := Recommendations([]string{"react"})
	assert.Equal(t, "React - The Complete Guide", second[0].Title)
}
