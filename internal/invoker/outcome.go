package invoker

// Outcome classifies how a stage invocation ended.
type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomeSpawnFailed
	OutcomeToolFailed
	OutcomeNotFound
	OutcomeUnknown
	OutcomeUnsupported
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeSpawnFailed:
		return "spawn-failed"
	case OutcomeToolFailed:
		return "tool-failed"
	case OutcomeNotFound:
		return "not-found"
	case OutcomeUnknown:
		return "unknown"
	case OutcomeUnsupported:
		return "unsupported"
	default:
		return "invalid"
	}
}

// Result holds the exit status and classification of one invocation.
type Result struct {
	Command  Command
	ExitCode int
	Outcome  Outcome
}

// OK reports whether the invocation succeeded.
func (r *Result) OK() bool {
	return r != nil && r.Outcome == OutcomeSuccess
}
