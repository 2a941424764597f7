package core

// Outcome is how a single run of the pipeline ended
type Outcome int

const (
	OutcomeNoCommand Outcome = iota
	OutcomeDangerous
	OutcomeDeclined
	OutcomeExecuted
	OutcomeTimedOut
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNoCommand:
		return "no_command"
	case OutcomeDangerous:
		return "dangerous"
	case OutcomeDeclined:
		return "declined"
	case OutcomeExecuted:
		return "executed"
	case OutcomeTimedOut:
		return "timed_out"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}
