package scoring

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeKeywordsSample(t *testing.T) {
	k := AnalyzeKeywords(sampleResume)

	assert.Equal(t, []string{"javascript", "java", "react", "node.js"}, k.MatchedTechnical)
	assert.Equal(t, []string{"communication"}, k.MatchedSoft)
	assert.Equal(t, []string{"experience", "skills"}, k.MatchedFormats)
	assert.Equal(t, 13, k.TotalWords)
	assert.Equal(t, 0, k.ContactMatches)
	assert.InDelta(t, 38.46, k.KeywordDensity, 0.001)
	assert.True(t, k.HasExperienceSection)
	assert.True(t, k.HasEducationSection)
	assert.True(t, k.HasSkillsSection)
	assert.Equal(t, 45, k.Score)

	assert.True(t, strings.HasPrefix(k.Feedback, "Low ATS compatibility."))
	assert.Contains(t, k.Feedback, "Include more soft skills")
	assert.Contains(t, k.Feedback, "might be too brief")
	assert.NotContains(t, k.Feedback, "Add an experience/work section")
}

func TestAnalyzeKeywordsEmpty(t *testing.T) {
	for _, text := range []string{"", "   \n\t "} {
		k := AnalyzeKeywords(text)

		assert.Equal(t, 0, k.Score)
		assert.Equal(t, 0, k.TotalWords)
		assert.Zero(t, k.KeywordDensity)
		assert.Empty(t, k.MatchedTechnical)
		assert.NotNil(t, k.MatchedTechnical)
		assert.True(t, strings.HasPrefix(k.Feedback, "Low ATS compatibility."))
	}
}

func TestAnalyzeKeywordsDeterministic(t *testing.T) {
	first := AnalyzeKeywords(sampleResume)
	for i := 0; i < 5; i++ {
		require.Equal(t, first, AnalyzeKeywords(sampleResume))
	}
}

func TestAnalyzeKeywordsContacts(t *testing.T) {
	text := "Contact: jane.doe@example.com, (555) 123-4567, linkedin.com/in/jane, github.com/jane"
	k := AnalyzeKeywords(text)

	assert.Equal(t, 4, k.ContactMatches)
	assert.NotContains(t, k.Feedback, "contact information")
}

func TestAnalyzeKeywordsStrongResume(t *testing.T) {
	text := strings.Repeat("word ", 290) + `
Summary. Contact: jane@example.com github.com/jane
Experience: python, docker, aws, linux, sql, git
Education: university degree
Skills: communication, teamwork, leadership`

	k := AnalyzeKeywords(text)

	assert.GreaterOrEqual(t, k.FormatMatches, 5)
	assert.Equal(t, 2, k.ContactMatches)
	assert.Equal(t, 3, k.SoftMatches)
	assert.Greater(t, k.Score, 0)
	assert.LessOrEqual(t, k.Score, 100)
	assert.NotContains(t, k.Feedback, "too brief")
	assert.NotContains(t, k.Feedback, "Include more soft skills")
	assert.NotContains(t, k.Feedback, "Improve resume formatting")
}

func TestFormattingScore(t *testing.T) {
	tests := []struct {
		matches int
		want    float64
	}{
		{0, 20}, {1, 20}, {2, 40}, {3, 60}, {4, 80}, {5, 100}, {18, 100},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formattingScore(tt.matches), "matches=%d", tt.matches)
	}
}

func TestSkills(t *testing.T) {
	k := KeywordAnalysis{MatchedTechnical: []string{"go", "sql"}, MatchedSoft: []string{"teamwork"}}
	assert.Equal(t, []string{"go", "sql", "teamwork"}, k.Skills())
	assert.Equal(t, []string{}, KeywordAnalysis{}.Skills())
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "", Normalize(" \n\t "))
	assert.Equal(t, "a b c", Normalize("  a \n\n b\tc "))

	long := strings.Repeat("é", MaxEmbeddingText+10)
	assert.Equal(t, MaxEmbeddingText, len([]rune(Normalize(long))))
}
