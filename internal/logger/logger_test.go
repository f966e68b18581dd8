package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupBuffers(t *testing.T, verbosity Verbosity, jsonLogs bool) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	colors := false
	Setup(Options{
		Verbosity: verbosity,
		JSON:      jsonLogs,
		Stdout:    &stdout,
		Stderr:    &stderr,
		Colors:    &colors,
	})
	t.Cleanup(func() {
		Setup(Options{Verbosity: VerbosityNotice})
	})
	return &stdout, &stderr
}

func fixedClock() time.Time {
	return time.Date(2024, 1, 2, 9, 5, 7, 0, time.Local)
}

func TestLoggerInitialization(t *testing.T) {
	assert.NotNil(t, TaskSink())
	assert.Same(t, GetLogger(), GetLogger())
}

func TestParseVerbosity(t *testing.T) {
	for _, v := range Verbosities {
		got, err := ParseVerbosity(strings.ToUpper(string(v)))
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}

	_, err := ParseVerbosity("loud")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown level 'loud'")
}

func TestVerbosityLevel(t *testing.T) {
	assert.Equal(t, logrus.PanicLevel, VerbosityNone.Level())
	assert.Equal(t, logrus.ErrorLevel, VerbosityError.Level())
	assert.Equal(t, logrus.WarnLevel, VerbosityWarn.Level())
	assert.Equal(t, logrus.InfoLevel, VerbosityNotice.Level())
	assert.Equal(t, logrus.DebugLevel, VerbosityInfo.Level())
	assert.Equal(t, logrus.TraceLevel, VerbosityAll.Level())
	assert.Equal(t, logrus.InfoLevel, Verbosity("").Level())
}

func TestSinkRouting(t *testing.T) {
	stdout, stderr := setupBuffers(t, VerbosityInfo, false)
	s := TaskSink().withClock(fixedClock)

	s.Time("Starting 'build'...")
	s.Log("plain")
	s.Info("details")
	s.Warn("careful")
	s.Error("boom")

	assert.Equal(t, "[09:05:07] Starting 'build'...\nplain\ninfo details\n", stdout.String())
	assert.Equal(t, "warn careful\nerror boom\n", stderr.String())
}

func TestSinkVerbosityFiltering(t *testing.T) {
	tests := []struct {
		verbosity Verbosity
		stdout    []string
		stderr    []string
	}{
		{VerbosityNone, nil, nil},
		{VerbosityError, nil, []string{"error boom"}},
		{VerbosityWarn, nil, []string{"warn careful", "error boom"}},
		{VerbosityNotice, []string{"plain"}, []string{"warn careful", "error boom"}},
		{VerbosityInfo, []string{"plain", "info details"}, []string{"warn careful", "error boom"}},
		{VerbosityAll, []string{"plain", "info details"}, []string{"warn careful", "error boom"}},
	}

	for _, tt := range tests {
		t.Run(tt.verbosity.String(), func(t *testing.T) {
			stdout, stderr := setupBuffers(t, tt.verbosity, false)
			s := TaskSink()

			s.Log("plain")
			s.Info("details")
			s.Warn("careful")
			s.Error("boom")

			assert.Equal(t, tt.stdout, lines(stdout))
			assert.Equal(t, tt.stderr, lines(stderr))
		})
	}
}

func TestOperationalLogsGoToStderr(t *testing.T) {
	stdout, stderr := setupBuffers(t, VerbosityInfo, false)

	Debug("loading spinfile", Field{Key: "path", Value: "Spinfile.yml"})
	Warn("ignoring entry")

	assert.Empty(t, stdout.String())
	assert.Equal(t, "DEBUG: loading spinfile path=Spinfile.yml\nWARNING: ignoring entry\n", stderr.String())
}

func TestDebugHiddenAtNotice(t *testing.T) {
	stdout, stderr := setupBuffers(t, VerbosityNotice, false)

	Debugf("resolved %d tasks", 3)

	assert.Empty(t, stdout.String())
	assert.Empty(t, stderr.String())
}

func TestJSONOutput(t *testing.T) {
	stdout, _ := setupBuffers(t, VerbosityNotice, true)

	TaskSink().withClock(fixedClock).Time("Finished 'build' in 0.01s")

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &payload))
	assert.Equal(t, "Finished 'build' in 0.01s", payload["msg"])
	assert.Equal(t, "[09:05:07]", payload[fieldAside])
	assert.Equal(t, "user", payload[fieldLogType])
	assert.Equal(t, "info", payload["level"])
}

func TestCLIFormatterColors(t *testing.T) {
	entry := logrus.NewEntry(logrus.New())
	entry.Level = logrus.ErrorLevel
	entry.Message = "boom"
	entry.Data = logrus.Fields{fieldAside: "error", fieldAsideStyle: string(StyleRed)}

	plain, err := (&CLIFormatter{DisableTimestamp: true, DisableLevel: true, DisableColors: true}).Format(entry)
	require.NoError(t, err)
	assert.Equal(t, "error boom\n", string(plain))

	colored, err := (&CLIFormatter{DisableTimestamp: true, DisableLevel: true}).Format(entry)
	require.NoError(t, err)
	assert.Equal(t, "\033[31merror\033[0m boom\n", string(colored))
}

func TestStyleApply(t *testing.T) {
	assert.Equal(t, "x", StylePlain.Apply("x"))
	assert.Equal(t, "\033[1mx\033[0m", StyleBold.Apply("x"))
	assert.Equal(t, "\033[36mx\033[0m", StyleCyan.Apply("x"))
}

func lines(b *bytes.Buffer) []string {
	text := strings.TrimRight(b.String(), "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}
