package errors

import (
	"fmt"
	"strings"
)

// ErrorCategory represents the category of error
type ErrorCategory string

const (
	// ErrorCategoryResolution represents failures to map a task name to a definition
	ErrorCategoryResolution ErrorCategory = "RESOLUTION"
	// ErrorCategoryExecution represents failures raised by task logic
	ErrorCategoryExecution ErrorCategory = "EXECUTION"
	// ErrorCategoryScheduler represents failures surfaced by the scheduler itself
	ErrorCategoryScheduler ErrorCategory = "SCHEDULER"
	// ErrorCategoryConfiguration represents spinfile and CLI configuration errors
	ErrorCategoryConfiguration ErrorCategory = "CONFIGURATION"
)

// TaskError represents a structured error with context and troubleshooting information
type TaskError struct {
	Category        ErrorCategory
	Code            string
	Message         string
	Operation       string
	Context         map[string]interface{}
	Troubleshooting []string
	OriginalError   error
}

// Error implements the error interface. Context and troubleshooting steps are
// left to FormatForCLI so that wrapped errors stay on one line.
func (e *TaskError) Error() string {
	if e.OriginalError == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.OriginalError)
}

// Unwrap returns the original error for error chain compatibility
func (e *TaskError) Unwrap() error {
	return e.OriginalError
}

// NewTaskError creates a new task error with the specified parameters
func NewTaskError(category ErrorCategory, code, message, operation string) *TaskError {
	return &TaskError{
		Category:        category,
		Code:            code,
		Message:         message,
		Operation:       operation,
		Context:         make(map[string]interface{}),
		Troubleshooting: []string{},
	}
}

// WithContext adds context information to the error
func (e *TaskError) WithContext(key string, value interface{}) *TaskError {
	e.Context[key] = value
	return e
}

// WithTroubleshooting adds troubleshooting steps to the error
func (e *TaskError) WithTroubleshooting(steps ...string) *TaskError {
	e.Troubleshooting = append(e.Troubleshooting, steps...)
	return e
}

// WithOriginalError adds the original error to the task error
func (e *TaskError) WithOriginalError(err error) *TaskError {
	e.OriginalError = err
	return e
}

// Common error constructors

// NewResolutionError creates a new resolution error
func NewResolutionError(code, message, operation string) *TaskError {
	return NewTaskError(ErrorCategoryResolution, code, message, operation)
}

// NewExecutionError creates a new execution error
func NewExecutionError(code, message, operation string) *TaskError {
	return NewTaskError(ErrorCategoryExecution, code, message, operation)
}

// NewSchedulerError creates a new scheduler error
func NewSchedulerError(code, message, operation string) *TaskError {
	return NewTaskError(ErrorCategoryScheduler, code, message, operation)
}

// NewConfigurationError creates a new configuration error
func NewConfigurationError(code, message, operation string) *TaskError {
	return NewTaskError(ErrorCategoryConfiguration, code, message, operation)
}

// PanicError carries a value recovered from a panicking task.
type PanicError struct {
	Value interface{}
}

func (p *PanicError) Error() string {
	if err, ok := p.Value.(error); ok {
		return "panic: " + err.Error()
	}
	return fmt.Sprintf("panic: %v", p.Value)
}

// Unwrap exposes the panic value when it was itself an error.
func (p *PanicError) Unwrap() error {
	err, _ := p.Value.(error)
	return err
}

func quoteList(items []string) string {
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = "'" + item + "'"
	}
	return strings.Join(quoted, ", ")
}
