package scoring

import (
	"context"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/spigell/ats-scorer/internal/ai"
	"github.com/spigell/ats-scorer/internal/logger"
	"github.com/spigell/ats-scorer/internal/utils"
)

const (
	maxSkillGaps     = 10
	maxStrengthAreas = 8
	minRoleTermLen   = 4
)

//nolint:gochecknoglobals // fixed gap catalog
var (
	jobGapPattern = regexp.MustCompile(`\b(?:javascript|python|react|node|java|sql|aws|docker|api|frontend|backend|full.?stack|data|machine learning|typescript|html|css|mongodb|postgres|rest|agile|scrum|graphql|kubernetes)\b`)
	roleTermSplit = regexp.MustCompile(`[\s,]+`)
)

var errNoRoleEmbeddings = errors.New("no role embeddings available")

// Match is the job or role comparison of a résumé.
type Match struct {
	BestFitRole        *string
	JobMatchPercentage *int
	SkillGaps          []string
}

// Matcher compares a résumé vector against a job description or the role
// catalog.
type Matcher struct {
	embedder ai.Embedder
	roles    *RoleCache
	logger   *zap.Logger
}

// NewMatcher returns a matcher that falls back to roles when no job
// description is given.
func NewMatcher(embedder ai.Embedder, roles *RoleCache, log *zap.Logger) *Matcher {
	return &Matcher{
		embedder: embedder,
		roles:    roles,
		logger:   logger.WithFields(log, zap.String("component", "matcher")),
	}
}

// Match runs job-description mode when jobDescription is non-blank and
// role-template mode otherwise. A failed outcome carries an empty Match.
func (m *Matcher) Match(ctx context.Context, resumeText string, resumeVec []float32, jobDescription string) Outcome[Match] {
	if strings.TrimSpace(jobDescription) != "" {
		return m.matchJob(ctx, resumeText, resumeVec, jobDescription)
	}
	return m.matchRole(ctx, resumeText, resumeVec)
}

func (m *Matcher) matchJob(ctx context.Context, resumeText string, resumeVec []float32, jobDescription string) Outcome[Match] {
	vec, err := m.embedder.Embed(ctx, Normalize(jobDescription))
	if err == nil && len(vec) == 0 {
		err = ai.ErrEmptyEmbedding
	}
	if err != nil {
		m.logger.Warn("job description embedding failed", zap.Error(err))
		return failedMatch(fmt.Errorf("embed job description: %w", err))
	}

	pct := percentage(CosineSimilarity(resumeVec, vec))
	return Ok(Match{
		JobMatchPercentage: &pct,
		SkillGaps:          JobSkillGaps(resumeText, jobDescription),
	})
}

func (m *Matcher) matchRole(ctx context.Context, resumeText string, resumeVec []float32) Outcome[Match] {
	if m.roles == nil {
		return failedMatch(errNoRoleEmbeddings)
	}

	embeddings := m.roles.Embeddings(ctx, m.embedder)
	if len(embeddings) == 0 {
		return failedMatch(errNoRoleEmbeddings)
	}

	var (
		best    *RoleTemplate
		bestSim float64
	)
	for i := range embeddings {
		sim := CosineSimilarity(resumeVec, embeddings[i].Vector)
		if sim > bestSim {
			bestSim = sim
			best = &embeddings[i].Role
		}
	}

	if best == nil {
		return Ok(Match{SkillGaps: []string{}})
	}

	name := best.Name
	pct := percentage(bestSim)
	m.logger.Debug("best fit role selected", zap.String("role", name), zap.Float64("similarity", bestSim))

	return Ok(Match{
		BestFitRole:        &name,
		JobMatchPercentage: &pct,
		SkillGaps:          RoleSkillGaps(resumeText, best.Description),
	})
}

// JobSkillGaps lists catalog terms mentioned in the job description but
// absent from the résumé, in order of first appearance.
func JobSkillGaps(resumeText, jobDescription string) []string {
	mentioned := strings.ToLower(resumeText)

	gaps := make([]string, 0, maxSkillGaps)
	for _, term := range jobGapPattern.FindAllString(strings.ToLower(jobDescription), -1) {
		if !strings.Contains(mentioned, term) {
			gaps = append(gaps, term)
		}
	}
	return utils.FirstN(utils.Dedup(gaps), maxSkillGaps)
}

// RoleSkillGaps lists description terms longer than three characters that
// the résumé does not mention.
func RoleSkillGaps(resumeText, description string) []string {
	mentioned := strings.ToLower(resumeText)

	gaps := make([]string, 0, maxSkillGaps)
	for _, term := range roleTermSplit.Split(strings.ToLower(description), -1) {
		term = strings.TrimRight(term, ".")
		if utf8.RuneCountInString(term) < minRoleTermLen || strings.Contains(mentioned, term) {
			continue
		}
		gaps = append(gaps, term)
	}
	return utils.FirstN(utils.Dedup(gaps), maxSkillGaps)
}

func failedMatch(err error) Outcome[Match] {
	out := Failed[Match](err)
	out.Value.SkillGaps = []string{}
	return out
}

func percentage(sim float64) int {
	return int(math.Round(sim * 100))
}
