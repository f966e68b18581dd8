package utils

import (
	"fmt"
	"sort"
	"strings"
)

// ReportBuilder provides a fluent interface for building the plain-text
// context reports printed by --info
type ReportBuilder struct {
	lines     []string
	separator string
	width     int
}

// NewReportBuilder creates a new report builder
func NewReportBuilder() *ReportBuilder {
	return &ReportBuilder{
		lines:     []string{},
		separator: "=",
		width:     40,
	}
}

// Header adds a header with separator
func (rb *ReportBuilder) Header(text string) *ReportBuilder {
	rb.lines = append(rb.lines, text, strings.Repeat(rb.separator, rb.width))
	return rb
}

// Section adds a section header
func (rb *ReportBuilder) Section(title string) *ReportBuilder {
	rb.lines = append(rb.lines, fmt.Sprintf("\n%s", title))
	return rb
}

// AddKeyValue adds a key-value pair, rendering empty values as "-"
func (rb *ReportBuilder) AddKeyValue(key, value string) *ReportBuilder {
	if value == "" {
		value = "-"
	}
	rb.lines = append(rb.lines, fmt.Sprintf("%s: %s", key, value))
	return rb
}

// AddBullet adds a bulleted line
func (rb *ReportBuilder) AddBullet(text string) *ReportBuilder {
	rb.lines = append(rb.lines, fmt.Sprintf("• %s", text))
	return rb
}

// AddMap adds one bullet per entry, sorted by key
func (rb *ReportBuilder) AddMap(values map[string]string) *ReportBuilder {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		rb.AddBullet(fmt.Sprintf("%s=%s", key, values[key]))
	}
	return rb
}

// Build returns the built report as a string
func (rb *ReportBuilder) Build() string {
	return strings.Join(rb.lines, "\n")
}
