package scoring

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestAnalyzerSkipsWithoutEmbedder(t *testing.T) {
	out := NewAnalyzer(nil, false, zap.NewNop()).Analyze(context.Background(), sampleResume)

	assert.Equal(t, StateSkipped, out.State)
	assert.NotEmpty(t, out.Reason)
}

func TestAnalyzerFailsOnBlankResume(t *testing.T) {
	emb := constantEmbedder(1)

	out := NewAnalyzer(emb, false, nil).Analyze(context.Background(), " \n ")

	assert.Equal(t, StateFailed, out.State)
	assert.Zero(t, emb.callCount())
}

func TestAnalyzerFailsWhenResumeEmbeddingFails(t *testing.T) {
	out := NewAnalyzer(failingEmbedder(errProviderDown), false, nil).Analyze(context.Background(), sampleResume)

	assert.Equal(t, StateFailed, out.State)
	assert.Contains(t, out.Reason, "provider down")
}

func TestAnalyzerSectionSimilarities(t *testing.T) {
	for _, parallel := range []bool{false, true} {
		emb := constantEmbedder(1, 2, 3)

		out := NewAnalyzer(emb, parallel, nil).Analyze(context.Background(), sampleResume)

		require.True(t, out.OK())
		sims := out.Value.Similarities
		assert.InDelta(t, 1, sims.Skills, 1e-9)
		assert.InDelta(t, 1, sims.Experience, 1e-9)
		assert.InDelta(t, defaultSectionSimilarity, sims.Projects, 1e-9)
		assert.InDelta(t, 0.7, sims.Structure, 1e-9)
		assert.Equal(t, 3, emb.callCount(), "parallel=%v", parallel)
	}
}

func TestAnalyzerSectionFailureUsesDefault(t *testing.T) {
	full := Normalize(sampleResume)
	emb := &fakeEmbedder{vectorFor: func(text string) ([]float32, error) {
		if text == full {
			return []float32{1, 0}, nil
		}
		return nil, errProviderDown
	}}

	out := NewAnalyzer(emb, false, nil).Analyze(context.Background(), sampleResume)

	require.True(t, out.OK())
	assert.InDelta(t, defaultSectionSimilarity, out.Value.Similarities.Skills, 1e-9)
	assert.InDelta(t, defaultSectionSimilarity, out.Value.Similarities.Experience, 1e-9)
}

func TestStructureSimilarity(t *testing.T) {
	long := strings.Repeat("x", 501)

	assert.InDelta(t, 0.4, structureSimilarity("short"), 1e-9)
	assert.InDelta(t, 0.7, structureSimilarity(long), 1e-9)
	assert.InDelta(t, 0.7, structureSimilarity("my skills"), 1e-9)
	assert.InDelta(t, 0.4, structureSimilarity("My Skills"), 1e-9)
	assert.InDelta(t, 1.0, structureSimilarity(long+" experience"), 1e-9)
}

func TestAnalyzerRecoversSectionPanics(t *testing.T) {
	full := Normalize(sampleResume)
	emb := &fakeEmbedder{vectorFor: func(text string) ([]float32, error) {
		if text == full {
			return []float32{1, 0}, nil
		}
		panic("section boom")
	}}

	for _, parallel := range []bool{false, true} {
		out := NewAnalyzer(emb, parallel, nil).Analyze(context.Background(), sampleResume)

		require.True(t, out.OK(), "parallel=%v", parallel)
		assert.InDelta(t, defaultSectionSimilarity, out.Value.Similarities.Skills, 1e-9)
		assert.InDelta(t, defaultSectionSimilarity, out.Value.Similarities.Experience, 1e-9)
	}
}
