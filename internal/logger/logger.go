package logger

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
)

var (
	// log is the unified logger instance used by the package-level helpers
	log *UnifiedLogger

	// sink is the notification sink handed to the scheduler
	sink *Sink

	// current is the verbosity of the last Setup
	current = VerbosityNotice
)

// init ensures loggers are never nil
func init() {
	log = GetLogger()
	sink = NewSink(log)
}

// Options configures Setup
type Options struct {
	Verbosity Verbosity
	JSON      bool
	// Stdout and Stderr default to the process streams
	Stdout io.Writer
	Stderr io.Writer
	// Colors forces colour output on or off; nil detects a terminal
	Colors *bool
}

// Setup configures the global logger for the CLI: user notifications on
// stdout, warnings, errors and operational details on stderr.
func Setup(opts Options) {
	stdout, stderr := opts.Stdout, opts.Stderr
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	colors := IsTerminal(stdout) && IsTerminal(stderr)
	if opts.Colors != nil {
		colors = *opts.Colors
	}

	verbosity := opts.Verbosity
	if verbosity == "" {
		verbosity = VerbosityNotice
	}

	hook := NewOutputRouterHook()
	hook.UserWriter = stdout
	hook.OpWriter = stderr

	if opts.JSON {
		hook.UserFormatter = &logrus.JSONFormatter{}
		hook.OpFormatter = &logrus.JSONFormatter{}
	} else {
		hook.UserFormatter = &CLIFormatter{
			DisableTimestamp: true,
			DisableLevel:     true,
			DisableColors:    !colors,
		}

		// Op formatter - detailed output when everything is requested
		if verbosity == VerbosityAll {
			hook.OpFormatter = &logrus.TextFormatter{
				FullTimestamp: true,
				ForceColors:   colors,
				DisableColors: !colors,
			}
		} else {
			hook.OpFormatter = &CLIFormatter{
				DisableTimestamp: true,
				DisableLevel:     false,
				DisableColors:    !colors,
			}
		}
	}

	current = verbosity

	// Output handled by the hook
	log.Configure(io.Discard, verbosity.Level(), &logrus.JSONFormatter{})
	log.ReplaceHooks(hook)
}

// IsTerminal reports whether w is a terminal
func IsTerminal(w io.Writer) bool {
	for {
		wrapper, ok := w.(interface{ Unwrap() io.Writer })
		if !ok {
			break
		}
		w = wrapper.Unwrap()
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// CurrentVerbosity returns the verbosity applied by the last Setup
func CurrentVerbosity() Verbosity {
	return current
}

// TaskSink returns the sink that receives scheduler notifications
func TaskSink() *Sink {
	return sink
}

// Convenience methods that delegate to the unified logger

// Debug logs an operational debug message
func Debug(msg string, fields ...Field) {
	log.Debug(msg, append(fields, WithLogType(OpLog))...)
}

// Debugf logs a formatted operational debug message
func Debugf(format string, args ...interface{}) {
	log.Debugf(format, args...)
}

// Warn logs an operational warning
func Warn(msg string, fields ...Field) {
	log.Warn(msg, append(fields, WithLogType(OpLog))...)
}

// WithFieldsMap creates an operational entry with fields from a map
func WithFieldsMap(fields map[string]interface{}) *logrus.Entry {
	return log.WithFieldsMap(fields)
}
