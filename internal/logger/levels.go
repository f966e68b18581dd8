package logger

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// Verbosity controls which notifications reach the terminal
type Verbosity string

const (
	VerbosityNone   Verbosity = "none"
	VerbosityError  Verbosity = "error"
	VerbosityWarn   Verbosity = "warn"
	VerbosityNotice Verbosity = "notice"
	VerbosityInfo   Verbosity = "info"
	VerbosityAll    Verbosity = "all"
)

// Verbosities lists the accepted names from quietest to loudest
var Verbosities = []Verbosity{
	VerbosityNone,
	VerbosityError,
	VerbosityWarn,
	VerbosityNotice,
	VerbosityInfo,
	VerbosityAll,
}

// ParseVerbosity converts a level name into a Verbosity
func ParseVerbosity(name string) (Verbosity, error) {
	normalized := Verbosity(strings.ToLower(strings.TrimSpace(name)))
	for _, v := range Verbosities {
		if v == normalized {
			return v, nil
		}
	}
	return VerbosityNotice, fmt.Errorf("unknown level '%s'", name)
}

// Level maps the verbosity onto a logrus level. Notice is logrus Info, so
// "info" and "all" open up Debug and Trace entries.
func (v Verbosity) Level() logrus.Level {
	switch v {
	case VerbosityNone:
		return logrus.PanicLevel
	case VerbosityError:
		return logrus.ErrorLevel
	case VerbosityWarn:
		return logrus.WarnLevel
	case VerbosityInfo:
		return logrus.DebugLevel
	case VerbosityAll:
		return logrus.TraceLevel
	default:
		return logrus.InfoLevel
	}
}

// String implements fmt.Stringer
func (v Verbosity) String() string {
	return string(v)
}
