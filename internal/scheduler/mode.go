package scheduler

import (
	"fmt"
	"strings"
)

// Mode selects how the requested task names are executed
type Mode int

const (
	// ModeSequence runs the names one after another in list order
	ModeSequence Mode = iota
	// ModeParallel runs every name as an independent concurrent group
	ModeParallel
)

// String returns a string representation of the Mode
func (m Mode) String() string {
	switch m {
	case ModeSequence:
		return "sequence"
	case ModeParallel:
		return "parallel"
	default:
		return "unknown"
	}
}

// ParseMode converts "sequence" or "parallel" into a Mode
func ParseMode(value string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "sequence":
		return ModeSequence, nil
	case "parallel":
		return ModeParallel, nil
	default:
		return ModeSequence, fmt.Errorf("unknown execution mode '%s'", value)
	}
}
