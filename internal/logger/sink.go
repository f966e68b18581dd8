package logger

import (
	"time"

	"github.com/maxkimambo/spin/internal/utils"
)

// Sink writes task notifications through a UnifiedLogger. Time and Log are
// shown from verbosity notice; Info, Warn and Error use their own levels.
type Sink struct {
	logger *UnifiedLogger
	clock  utils.Clock
}

// NewSink creates a sink over logger
func NewSink(logger *UnifiedLogger) *Sink {
	return &Sink{logger: logger, clock: time.Now}
}

// withClock returns a copy of the sink stamping time notifications with clock
func (s *Sink) withClock(clock utils.Clock) *Sink {
	return &Sink{logger: s.logger, clock: clock}
}

// Time logs msg prefixed with the current [HH:MM:SS]
func (s *Sink) Time(msg string) {
	aside := "[" + utils.Timestamp(s.clock()) + "]"
	s.logger.Info(msg, append(WithAside(aside, StyleBold), WithLogType(UserLog))...)
}

// Log logs msg as is
func (s *Sink) Log(msg string) {
	s.logger.Info(msg, WithLogType(UserLog))
}

// Info logs msg with a blue "info" prefix, shown from verbosity info up
func (s *Sink) Info(msg string) {
	s.logger.Debug(msg, append(WithAside("info", StyleBlue), WithLogType(UserLog))...)
}

// Warn logs msg with a cyan "warn" prefix
func (s *Sink) Warn(msg string) {
	s.logger.Warn(msg, append(WithAside("warn", StyleCyan), WithLogType(UserLog))...)
}

// Error logs msg with a red "error" prefix
func (s *Sink) Error(msg string) {
	s.logger.Error(msg, append(WithAside("error", StyleRed), WithLogType(UserLog))...)
}
