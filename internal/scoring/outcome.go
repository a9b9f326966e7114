package scoring

// State tags the result of a pipeline stage.
type State string

const (
	StateOK      State = "ok"
	StateSkipped State = "skipped"
	StateFailed  State = "failed"
)

// Stage names recorded in the trace.
const (
	StageKeyword  = "keyword"
	StageSemantic = "semantic"
	StageMatch    = "match"
	StageBlend    = "blend"
)

// Outcome is the tagged result of a stage: a value when OK, a reason
// otherwise.
type Outcome[T any] struct {
	State  State
	Value  T
	Reason string
}

// Ok wraps a successful value.
func Ok[T any](v T) Outcome[T] {
	return Outcome[T]{State: StateOK, Value: v}
}

// Skipped marks a stage that did not run.
func Skipped[T any](reason string) Outcome[T] {
	return Outcome[T]{State: StateSkipped, Reason: reason}
}

// Failed marks a stage that ran and failed.
func Failed[T any](err error) Outcome[T] {
	reason := "unknown error"
	if err != nil {
		reason = err.Error()
	}
	return Outcome[T]{State: StateFailed, Reason: reason}
}

// OK reports whether the stage produced a value.
func (o Outcome[T]) OK() bool {
	return o.State == StateOK
}

// Report converts the outcome into a trace entry.
func (o Outcome[T]) Report(stage string) StageReport {
	return StageReport{Stage: stage, Outcome: o.State, Reason: o.Reason}
}

// StageReport is one trace entry of a scoring run.
type StageReport struct {
	Stage   string `json:"stage" yaml:"stage"`
	Outcome State  `json:"outcome" yaml:"outcome"`
	Reason  string `json:"reason,omitempty" yaml:"reason,omitempty"`
}
