// Package scoring turns résumé text into an ATS score. The keyword rule
// engine always runs; an embedding provider, when configured, refines the
// score with semantic similarities.
package scoring

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/ats-scorer/internal/ai"
	"github.com/spigell/ats-scorer/internal/logger"
	"github.com/spigell/ats-scorer/internal/utils"
)

// Engine orchestrates keyword and semantic scoring.
type Engine struct {
	embedder ai.Embedder
	roles    *RoleCache
	parallel bool
	logger   *zap.Logger

	analyzer *Analyzer
	matcher  *Matcher
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine logger.
func WithLogger(log *zap.Logger) Option {
	return func(e *Engine) { e.logger = log }
}

// WithRoleCache replaces the default in-memory role cache.
func WithRoleCache(c *RoleCache) Option {
	return func(e *Engine) { e.roles = c }
}

// WithParallelSections embeds résumé sections concurrently.
func WithParallelSections(parallel bool) Option {
	return func(e *Engine) { e.parallel = parallel }
}

// NewEngine builds an engine. A nil embedder yields keyword-only scoring.
func NewEngine(embedder ai.Embedder, opts ...Option) *Engine {
	e := &Engine{embedder: embedder}
	for _, opt := range opts {
		opt(e)
	}

	e.logger = logger.WithFields(e.logger)
	if embedder != nil {
		e.logger = logger.WithCommonFields(e.logger, embedder.Provider(), embedder.Model())
	}
	if e.roles == nil {
		e.roles = NewRoleCache(DefaultRoles(), nil, e.logger)
	}

	e.analyzer = NewAnalyzer(embedder, e.parallel, e.logger)
	e.matcher = NewMatcher(embedder, e.roles, e.logger)

	return e
}

// AIEnabled reports whether the semantic path can run.
func (e *Engine) AIEnabled() bool {
	return ai.Available(e.embedder)
}

// Roles returns the role catalog.
func (e *Engine) Roles() []RoleTemplate {
	return e.roles.Roles()
}

// Keywords runs the rule engine only.
func (e *Engine) Keywords(text string) KeywordAnalysis {
	return AnalyzeKeywords(text)
}

// Score never fails: any semantic problem yields the keyword-only result.
func (e *Engine) Score(ctx context.Context, req Request) (res Result) {
	start := time.Now()
	trace := make([]StageReport, 0, 4)

	var keywords KeywordAnalysis
	if req.Keywords != nil {
		keywords = *req.Keywords
		keywords.Score = clampScore(float64(keywords.Score))
		trace = append(trace, StageReport{Stage: StageKeyword, Outcome: StateOK, Reason: "reused prior analysis"})
	} else {
		keywords = AnalyzeKeywords(req.ResumeText)
		trace = append(trace, Ok(keywords).Report(StageKeyword))
	}

	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("semantic scoring panicked, falling back to keyword scoring", zap.Any("panic", r))
			res = keywordResult(keywords, append(trace, StageReport{
				Stage:   StageSemantic,
				Outcome: StateFailed,
				Reason:  fmt.Sprintf("panic: %v", r),
			}))
		}
		e.logger.Info("resume scored",
			append(logger.ScoreFields(string(res.ScoreSource), res.ATSScore),
				zap.Duration("elapsed", time.Since(start)))...,
		)
	}()

	semantic := e.analyzer.Analyze(ctx, req.ResumeText)
	trace = append(trace, semantic.Report(StageSemantic))
	if !semantic.OK() {
		return keywordResult(keywords, trace)
	}

	match := e.matcher.Match(ctx, req.ResumeText, semantic.Value.ResumeEmbedding, req.JobDescription)
	trace = append(trace, match.Report(StageMatch))

	score := Blend(semantic.Value.Similarities, KeywordComponents(req.ResumeText, keywords))
	trace = append(trace, Ok(score).Report(StageBlend))

	strengths := utils.FirstN(keywords.MatchedTechnical, maxStrengthAreas)
	gaps := match.Value.SkillGaps
	if gaps == nil {
		gaps = []string{}
	}

	explanation := Explain(score, match.Value.BestFitRole, match.Value.JobMatchPercentage,
		strengths, gaps, strings.TrimSpace(req.JobDescription) != "")

	return Result{
		ATSScore:           score,
		Feedback:           explanation,
		BestFitRole:        match.Value.BestFitRole,
		JobMatchPercentage: match.Value.JobMatchPercentage,
		SkillGaps:          gaps,
		StrengthAreas:      strengths,
		GapCategories:      CategorizeSkills(gaps),
		StrengthCategories: CategorizeSkills(strengths),
		Recommendations:    Recommendations(gaps),
		AIExplanation:      explanation,
		ScoreSource:        SourceAI,
		Skills:             keywords.Skills(),
		Keywords:           keywords,
		Trace:              trace,
	}
}
