package errors

import (
	stderrors "errors"
	"fmt"
)

// Common error codes
const (
	// Resolution error codes
	CodeTaskNotFound = "001"

	// Execution error codes
	CodeTaskFailed   = "001"
	CodeTaskPanicked = "002"

	// Scheduler error codes
	CodeGroupFailed = "001"

	// Configuration error codes
	CodeSpinfileNotFound = "001"
	CodeSpinfileInvalid  = "002"
	CodeEnvFile          = "003"
	CodeInvalidOption    = "004"
)

// NewTaskNotFoundError creates an error for a name with no runnable definition
func NewTaskNotFoundError(name string) *TaskError {
	return NewResolutionError(CodeTaskNotFound,
		fmt.Sprintf("Task '%s' not found", name),
		"Task resolution").
		WithContext("task", name).
		WithTroubleshooting(
			"Check the task name for typos",
			"Run 'spin --tasks' to list the tasks defined in the spinfile",
			"Compound names joined with '+' are only split in parallel mode (-p)",
		)
}

// NewTaskExecutionError wraps a failure raised by the task's own logic
func NewTaskExecutionError(name string, originalErr error) *TaskError {
	code := CodeTaskFailed
	var panicErr *PanicError
	if stderrors.As(originalErr, &panicErr) {
		code = CodeTaskPanicked
	}
	return NewExecutionError(code,
		fmt.Sprintf("Task '%s' failed", name),
		"Task execution").
		WithContext("task", name).
		WithOriginalError(originalErr)
}

// NewAggregateFailureError wraps the first failure settled by a parallel group
func NewAggregateFailureError(group string, originalErr error) *TaskError {
	return NewSchedulerError(CodeGroupFailed,
		fmt.Sprintf("Parallel group '%s' failed", group),
		"Parallel execution").
		WithContext("group", group).
		WithOriginalError(originalErr).
		WithTroubleshooting(
			"Other groups were allowed to finish; only the first failure is reported",
			"Re-run the failing group on its own to isolate the problem",
		)
}

// NewSpinfileNotFoundError creates an error for a missing spinfile
func NewSpinfileNotFoundError(dir string, candidates []string) *TaskError {
	return NewConfigurationError(CodeSpinfileNotFound,
		"No spinfile found",
		"Spinfile discovery").
		WithContext("searched_from", dir).
		WithTroubleshooting(
			fmt.Sprintf("Create one of %s in the project root", quoteList(candidates)),
			"Point to an explicit file with --spinfile",
		)
}

// NewSpinfileInvalidError creates an error for a spinfile that cannot be parsed
func NewSpinfileInvalidError(path string, originalErr error) *TaskError {
	return NewConfigurationError(CodeSpinfileInvalid,
		fmt.Sprintf("Invalid spinfile '%s'", path),
		"Spinfile loading").
		WithContext("spinfile", path).
		WithOriginalError(originalErr).
		WithTroubleshooting(
			"Validate the YAML syntax of the spinfile",
			"Every task needs a non-empty 'run' command",
		)
}

// NewEnvFileError creates an error for an unreadable env file
func NewEnvFileError(path string, originalErr error) *TaskError {
	return NewConfigurationError(CodeEnvFile,
		fmt.Sprintf("Failed to read env file '%s'", path),
		"Spinfile loading").
		WithContext("env_file", path).
		WithOriginalError(originalErr)
}

// NewInvalidOptionError creates an error for a malformed CLI option
func NewInvalidOptionError(flag, value string) *TaskError {
	return NewConfigurationError(CodeInvalidOption,
		fmt.Sprintf("Invalid value for --%s: '%s'", flag, value),
		"Option parsing").
		WithContext("flag", flag).
		WithContext("value", value).
		WithTroubleshooting("Use --help to see available options and examples")
}

// IsTaskNotFound reports whether err is, or wraps, a TaskNotFound error
func IsTaskNotFound(err error) bool {
	return hasCategory(err, ErrorCategoryResolution)
}

// IsExecutionError reports whether err is, or wraps, a task execution error
func IsExecutionError(err error) bool {
	return hasCategory(err, ErrorCategoryExecution)
}

// IsAggregateFailure reports whether err is a parallel group failure
func IsAggregateFailure(err error) bool {
	return hasCategory(err, ErrorCategoryScheduler)
}

// IsConfigurationError reports whether err comes from spinfile or CLI configuration
func IsConfigurationError(err error) bool {
	return hasCategory(err, ErrorCategoryConfiguration)
}

func hasCategory(err error, category ErrorCategory) bool {
	for err != nil {
		var taskErr *TaskError
		if !stderrors.As(err, &taskErr) {
			return false
		}
		if taskErr.Category == category {
			return true
		}
		err = taskErr.OriginalError
	}
	return false
}
