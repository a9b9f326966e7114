package scoring

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/ats-scorer/internal/logger"
)

type panickingEmbedder struct{ fakeEmbedder }

func (p *panickingEmbedder) Embed(context.Context, string) ([]float32, error) {
	panic("boom")
}

func assertKeywordOnly(t *testing.T, res Result) {
	t.Helper()

	assert.Equal(t, SourceKeyword, res.ScoreSource)
	assert.Nil(t, res.BestFitRole)
	assert.Nil(t, res.JobMatchPercentage)
	assert.NotNil(t, res.SkillGaps)
	assert.Empty(t, res.SkillGaps)
	assert.NotNil(t, res.StrengthAreas)
	assert.Empty(t, res.StrengthAreas)
	assert.NotNil(t, res.GapCategories)
	assert.Empty(t, res.GapCategories)
	assert.NotNil(t, res.StrengthCategories)
	assert.Empty(t, res.StrengthCategories)
	assert.NotNil(t, res.Recommendations)
	assert.Empty(t, res.Recommendations)
	assert.Empty(t, res.AIExplanation)
	assert.Equal(t, res.Keywords.Score, res.ATSScore)
	assert.Equal(t, res.Keywords.Feedback, res.Feedback)
}

func TestScoreWithoutEmbedder(t *testing.T) {
	engine := NewEngine(nil)

	res := engine.Score(context.Background(), Request{ResumeText: sampleResume})

	assertKeywordOnly(t, res)
	assert.False(t, engine.AIEnabled())
	assert.Equal(t, 45, res.ATSScore)
	assert.Equal(t, []string{"javascript", "java", "react", "node.js", "communication"}, res.Skills)
	require.Len(t, res.Trace, 2)
	assert.Equal(t, StageReport{Stage: StageKeyword, Outcome: StateOK}, res.Trace[0])
	assert.Equal(t, StageSemantic, res.Trace[1].Stage)
	assert.Equal(t, StateSkipped, res.Trace[1].Outcome)
}

func TestScoreEmptyResume(t *testing.T) {
	res := NewEngine(constantEmbedder(1)).Score(context.Background(), Request{ResumeText: ""})

	assertKeywordOnly(t, res)
	assert.Equal(t, 0, res.ATSScore)
	assert.Equal(t, StateFailed, res.Trace[1].Outcome)
}

func TestScoreFallsBackWhenProviderFails(t *testing.T) {
	res := NewEngine(failingEmbedder(errProviderDown)).Score(context.Background(), Request{ResumeText: sampleResume})

	assertKeywordOnly(t, res)
	assert.Equal(t, 45, res.ATSScore)
	assert.Equal(t, StateFailed, res.Trace[1].Outcome)
	assert.Contains(t, res.Trace[1].Reason, "provider down")
}

func TestScoreRecoversPanics(t *testing.T) {
	res := NewEngine(&panickingEmbedder{}).Score(context.Background(), Request{ResumeText: sampleResume})

	assertKeywordOnly(t, res)
	last := res.Trace[len(res.Trace)-1]
	assert.Equal(t, StateFailed, last.Outcome)
	assert.Contains(t, last.Reason, "boom")
}

func TestScoreRecoversParallelSectionPanics(t *testing.T) {
	sections := SegmentSections(sampleResume)
	panicky := map[string]bool{}
	for _, text := range []string{sections.Skills, sections.Experience, sections.Projects} {
		if text != "" {
			panicky[Normalize(text)] = true
		}
	}
	emb := &fakeEmbedder{vectorFor: func(text string) ([]float32, error) {
		if panicky[text] {
			panic("section boom")
		}
		return []float32{1, 0}, nil
	}}

	res := NewEngine(emb, WithParallelSections(true)).Score(context.Background(), Request{ResumeText: sampleResume})

	assert.Equal(t, SourceAI, res.ScoreSource)
	assert.Equal(t, StateOK, res.Trace[1].Outcome)
}

func TestScoreRoleMode(t *testing.T) {
	emb := constantEmbedder(0.3, 0.4)

	res := NewEngine(emb).Score(context.Background(), Request{ResumeText: sampleResume})

	assert.Equal(t, SourceAI, res.ScoreSource)
	assert.Equal(t, 71, res.ATSScore)
	require.NotNil(t, res.BestFitRole)
	assert.Equal(t, "Frontend Developer", *res.BestFitRole)
	require.NotNil(t, res.JobMatchPercentage)
	assert.Equal(t, 100, *res.JobMatchPercentage)
	assert.Len(t, res.SkillGaps, maxSkillGaps)
	assert.Equal(t, "frontend", res.SkillGaps[0])
	assert.Equal(t, []string{"javascript", "java", "react", "node.js"}, res.StrengthAreas)
	assert.Equal(t, res.AIExplanation, res.Feedback)
	assert.Contains(t, res.AIExplanation, "Your resume has solid relevance to Frontend Developer")
	assert.NotContains(t, res.AIExplanation, "Match to the job description")

	stages := make([]string, 0, len(res.Trace))
	for _, r := range res.Trace {
		stages = append(stages, r.Stage)
		assert.Equal(t, StateOK, r.Outcome, r.Stage)
	}
	assert.Equal(t, []string{StageKeyword, StageSemantic, StageMatch, StageBlend}, stages)
}

func TestScoreJobDescriptionMode(t *testing.T) {
	jd := "We need Python, Kubernetes and React developers for backend work."

	res := NewEngine(constantEmbedder(1)).Score(context.Background(), Request{
		ResumeText:     sampleResume,
		JobDescription: jd,
	})

	assert.Equal(t, SourceAI, res.ScoreSource)
	assert.Nil(t, res.BestFitRole)
	assert.Equal(t, 100, *res.JobMatchPercentage)
	assert.Equal(t, []string{"python", "kubernetes", "backend"}, res.SkillGaps)
	assert.Contains(t, res.AIExplanation, "Match to the job description: 100%.")
	assert.Contains(t, res.AIExplanation, "Consider adding or highlighting: python, kubernetes, backend")

	assert.Equal(t, map[string][]string{
		CategoryProgramming: {"python"},
		CategoryCloud:       {"kubernetes"},
		CategoryWebDev:      {"backend"},
	}, res.GapCategories)
	assert.Equal(t, []string{"react", "node.js"}, res.StrengthCategories[CategoryWebDev])
	require.Len(t, res.Recommendations, 4)
	assert.Equal(t, "Python for Data Science", res.Recommendations[0].Title)
	assert.Equal(t, "Learn Kubernetes", res.Recommendations[2].Title)
}

func TestScoreJobDescriptionFailureKeepsSemantic(t *testing.T) {
	emb := &fakeEmbedder{vectorFor: func(text string) ([]float32, error) {
		if text == "Go developer" {
			return nil, errProviderDown
		}
		return []float32{1}, nil
	}}

	res := NewEngine(emb).Score(context.Background(), Request{ResumeText: sampleResume, JobDescription: "Go developer"})

	assert.Equal(t, SourceAI, res.ScoreSource)
	assert.Nil(t, res.JobMatchPercentage)
	assert.Empty(t, res.SkillGaps)
	assert.NotEmpty(t, res.StrengthAreas)
	assert.Equal(t, StateFailed, res.Trace[2].Outcome)
}

func TestScoreReusesKeywords(t *testing.T) {
	prior := AnalyzeKeywords(sampleResume)
	prior.Score = 12

	res := NewEngine(nil).Score(context.Background(), Request{ResumeText: sampleResume, Keywords: &prior})

	assert.Equal(t, 12, res.ATSScore)
	assert.Equal(t, "reused prior analysis", res.Trace[0].Reason)
}

func TestScoreClampsReusedKeywords(t *testing.T) {
	for given, want := range map[int]int{150: 100, -5: 0} {
		prior := AnalyzeKeywords(sampleResume)
		prior.Score = given

		res := NewEngine(nil).Score(context.Background(), Request{ResumeText: sampleResume, Keywords: &prior})

		assertKeywordOnly(t, res)
		assert.Equal(t, want, res.ATSScore, "given %d", given)
	}
}

func TestScoreCachesRoleEmbeddings(t *testing.T) {
	emb := constantEmbedder(1, 1)
	engine := NewEngine(emb, WithParallelSections(true))

	engine.Score(context.Background(), Request{ResumeText: sampleResume})
	first := emb.callCount()
	engine.Score(context.Background(), Request{ResumeText: sampleResume})

	assert.Equal(t, 3+len(DefaultRoles()), first)
	assert.Equal(t, first+3, emb.callCount())
}

func TestScoreLogsOutcome(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)

	NewEngine(nil, WithLogger(zap.New(core))).Score(context.Background(), Request{ResumeText: sampleResume})

	entries := observed.FilterMessage("resume scored").All()
	require.Len(t, entries, 1)
	ctx := entries[0].ContextMap()
	assert.Equal(t, string(SourceKeyword), ctx[logger.FieldScoreSource])
	assert.Equal(t, int64(45), ctx[logger.FieldATSScore])
}

func TestScoreBoundsProperty(t *testing.T) {
	texts := []string{
		"",
		sampleResume,
		"projects projects projects experience skills education github.com linkedin.com a@b.co",
	}
	engines := []*Engine{NewEngine(nil), NewEngine(constantEmbedder(1, 2)), NewEngine(failingEmbedder(errProviderDown))}

	for _, engine := range engines {
		for _, text := range texts {
			res := engine.Score(context.Background(), Request{ResumeText: text})
			assert.GreaterOrEqual(t, res.ATSScore, 0)
			assert.LessOrEqual(t, res.ATSScore, 100)
			if res.ScoreSource == SourceKeyword {
				assert.Nil(t, res.BestFitRole)
				assert.Empty(t, res.SkillGaps)
			}
		}
	}
}
