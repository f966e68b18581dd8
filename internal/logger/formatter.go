package logger

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

// Style names the ANSI style applied to an aside
type Style string

const (
	StylePlain Style = ""
	StyleBold  Style = "bold"
	StyleBlue  Style = "blue"
	StyleCyan  Style = "cyan"
	StyleRed   Style = "red"
)

const resetColor = "\033[0m"

var styleCodes = map[Style]string{
	StyleBold: "\033[1m",
	StyleBlue: "\033[34m",
	StyleCyan: "\033[36m",
	StyleRed:  "\033[31m",
}

// Apply wraps text in the style's escape codes
func (s Style) Apply(text string) string {
	code, ok := styleCodes[s]
	if !ok {
		return text
	}
	return code + text + resetColor
}

// CLIFormatter provides clean output for CLI applications
type CLIFormatter struct {
	DisableTimestamp bool
	DisableLevel     bool
	DisableColors    bool
}

// Format implements logrus.Formatter
func (f *CLIFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b bytes.Buffer

	if !f.DisableTimestamp {
		b.WriteString(entry.Time.Format("2006-01-02 15:04:05"))
		b.WriteString(" ")
	}

	// Include level for operational logs
	if !f.DisableLevel {
		level := strings.ToUpper(entry.Level.String())
		if !f.DisableColors {
			level = levelStyle(entry.Level).Apply(level)
		}
		b.WriteString(level)
		b.WriteString(": ")
	}

	if aside, ok := entry.Data[fieldAside].(string); ok && aside != "" {
		if !f.DisableColors {
			style, _ := entry.Data[fieldAsideStyle].(string)
			aside = Style(style).Apply(aside)
		}
		b.WriteString(aside)
		b.WriteString(" ")
	}

	b.WriteString(entry.Message)

	// Add fields (excluding internal ones)
	keys := make([]string, 0, len(entry.Data))
	for k := range entry.Data {
		if k == fieldLogType || k == fieldAside || k == fieldAsideStyle {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteString(fmt.Sprintf(" %s=%v", k, entry.Data[k]))
	}

	b.WriteByte('\n')
	return b.Bytes(), nil
}

func levelStyle(level logrus.Level) Style {
	switch level {
	case logrus.PanicLevel, logrus.FatalLevel, logrus.ErrorLevel:
		return StyleRed
	case logrus.WarnLevel:
		return StyleCyan
	case logrus.InfoLevel:
		return StyleBlue
	default:
		return StylePlain
	}
}
