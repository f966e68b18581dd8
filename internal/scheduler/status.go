package scheduler

// Status represents the state of a scheduler invocation
type Status int

const (
	// StatusIdle indicates no invocation has started yet
	StatusIdle Status = iota
	// StatusRunning indicates an invocation is in progress
	StatusRunning
	// StatusCompleted indicates every requested task finished successfully
	StatusCompleted
	// StatusFailed indicates the invocation stopped on its first failure
	StatusFailed
)

// String returns a string representation of the Status
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusRunning:
		return "running"
	case StatusCompleted:
		return "completed"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}
