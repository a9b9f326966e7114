package scoring

// Source names the path that produced a score.
type Source string

const (
	SourceAI      Source = "ai"
	SourceKeyword Source = "keyword"
)

// Request is one scoring call. Keywords, when set, is reused instead of
// running the rule engine again.
type Request struct {
	ResumeText     string
	JobDescription string
	Keywords       *KeywordAnalysis
}

// Result is the outcome of a scoring call. Every field is always present;
// optional values are nil pointers.
type Result struct {
	ATSScore           int                 `json:"atsScore" yaml:"atsScore"`
	Feedback           string              `json:"feedback" yaml:"feedback"`
	BestFitRole        *string             `json:"bestFitRole" yaml:"bestFitRole"`
	JobMatchPercentage *int                `json:"jobMatchPercentage" yaml:"jobMatchPercentage"`
	SkillGaps          []string            `json:"skillGaps" yaml:"skillGaps"`
	StrengthAreas      []string            `json:"strengthAreas" yaml:"strengthAreas"`
	GapCategories      map[string][]string `json:"gapCategories" yaml:"gapCategories"`
	StrengthCategories map[string][]string `json:"strengthCategories" yaml:"strengthCategories"`
	Recommendations    []LearningResource  `json:"learningRecommendations" yaml:"learningRecommendations"`
	AIExplanation      string              `json:"aiExplanation" yaml:"aiExplanation"`
	ScoreSource        Source              `json:"scoreSource" yaml:"scoreSource"`
	Skills             []string            `json:"skills" yaml:"skills"`
	Keywords           KeywordAnalysis     `json:"keywords" yaml:"keywords"`
	Trace              []StageReport       `json:"trace" yaml:"trace"`
}

func keywordResult(k KeywordAnalysis, trace []StageReport) Result {
	return Result{
		ATSScore:           clampScore(float64(k.Score)),
		Feedback:           k.Feedback,
		SkillGaps:          []string{},
		StrengthAreas:      []string{},
		GapCategories:      map[string][]string{},
		StrengthCategories: map[string][]string{},
		Recommendations:    []LearningResource{},
		ScoreSource:        SourceKeyword,
		Skills:             k.Skills(),
		Keywords:           k,
		Trace:              trace,
	}
}
