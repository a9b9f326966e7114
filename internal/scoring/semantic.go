package scoring

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/ats-scorer/internal/ai"
	"github.com/spigell/ats-scorer/internal/logger"
)

const (
	defaultSectionSimilarity = 0.5

	structureBase      = 0.4
	structureLongBonus = 0.3
	structureHeadBonus = 0.3
	structureLongText  = 500
)

var errBlankResume = errors.New("resume text is blank")

// SectionSimilarities are cosine similarities between the whole résumé and
// its fragments, each in [0,1].
type SectionSimilarities struct {
	Skills     float64 `json:"skills" yaml:"skills"`
	Experience float64 `json:"experience" yaml:"experience"`
	Projects   float64 `json:"projects" yaml:"projects"`
	Structure  float64 `json:"structure" yaml:"structure"`
}

// SemanticAnalysis is the embedding view of a résumé.
type SemanticAnalysis struct {
	ResumeEmbedding []float32
	Sections        ResumeSections
	Similarities    SectionSimilarities
}

// Analyzer embeds a résumé and its sections.
type Analyzer struct {
	embedder ai.Embedder
	parallel bool
	logger   *zap.Logger
}

// NewAnalyzer returns an analyzer over embedder. A nil embedder makes every
// analysis a skip.
func NewAnalyzer(embedder ai.Embedder, parallel bool, log *zap.Logger) *Analyzer {
	return &Analyzer{
		embedder: embedder,
		parallel: parallel,
		logger:   logger.WithFields(log, zap.String("component", "semantic")),
	}
}

// Analyze embeds the full résumé and its sections. It fails only when the
// full résumé cannot be embedded; section failures fall back to a neutral
// similarity.
func (a *Analyzer) Analyze(ctx context.Context, text string) Outcome[SemanticAnalysis] {
	if !ai.Available(a.embedder) {
		return Skipped[SemanticAnalysis]("no embedding provider configured")
	}

	normalized := Normalize(text)
	if normalized == "" {
		return Failed[SemanticAnalysis](errBlankResume)
	}

	resumeVec, err := a.embedder.Embed(ctx, normalized)
	if err == nil && len(resumeVec) == 0 {
		err = ai.ErrEmptyEmbedding
	}
	if err != nil {
		a.logger.Warn("resume embedding failed, falling back to keyword scoring", zap.Error(err))
		return Failed[SemanticAnalysis](fmt.Errorf("embed resume: %w", err))
	}

	sections := SegmentSections(text)
	sims := SectionSimilarities{
		Skills:     defaultSectionSimilarity,
		Experience: defaultSectionSimilarity,
		Projects:   defaultSectionSimilarity,
		Structure:  structureSimilarity(sections.Full),
	}

	jobs := []struct {
		name string
		text string
		dst  *float64
	}{
		{name: "skills", text: sections.Skills, dst: &sims.Skills},
		{name: "experience", text: sections.Experience, dst: &sims.Experience},
		{name: "projects", text: sections.Projects, dst: &sims.Projects},
	}

	var g errgroup.Group
	for _, job := range jobs {
		if job.text == "" {
			continue
		}

		run := func() error {
			if sim, ok := a.sectionSimilarity(ctx, job.name, job.text, resumeVec); ok {
				*job.dst = sim
			}
			return nil
		}

		if a.parallel {
			g.Go(run)
			continue
		}
		_ = run()
	}
	_ = g.Wait()

	a.logger.Debug("section similarities computed",
		zap.Float64("skills", sims.Skills),
		zap.Float64("experience", sims.Experience),
		zap.Float64("projects", sims.Projects),
		zap.Float64("structure", sims.Structure),
	)

	return Ok(SemanticAnalysis{
		ResumeEmbedding: resumeVec,
		Sections:        sections,
		Similarities:    sims,
	})
}

// sectionSimilarity treats a panicking embedder like a failed one so a
// section goroutine never takes the process down.
func (a *Analyzer) sectionSimilarity(ctx context.Context, name, text string, resumeVec []float32) (sim float64, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Warn("section embedding panicked", zap.String("section", name), zap.Any("panic", r))
			sim, ok = 0, false
		}
	}()

	vec, err := a.embedder.Embed(ctx, Normalize(text))
	if err != nil || len(vec) == 0 {
		a.logger.Debug("section embedding unavailable", zap.String("section", name), zap.Error(err))
		return 0, false
	}
	return CosineSimilarity(resumeVec, vec), true
}

func structureSimilarity(full string) float64 {
	sim := structureBase
	if utf8.RuneCountInString(full) > structureLongText {
		sim += structureLongBonus
	}
	if strings.Contains(full, "experience") || strings.Contains(full, "skills") {
		sim += structureHeadBonus
	}
	return sim
}
