package task

import "context"

// Kind identifies the calling convention of a Definition.
type Kind int

const (
	// KindDirect tasks return their outcome as a Result.
	KindDirect Kind = iota
	// KindCallback tasks report their outcome through a Done callback.
	KindCallback
)

// String returns a string representation of the Kind
func (k Kind) String() string {
	switch k {
	case KindDirect:
		return "direct"
	case KindCallback:
		return "callback"
	default:
		return "unknown"
	}
}

// Definition is a raw task implementation registered under a name.
// It is one of DirectFunc or CallbackFunc.
type Definition interface {
	Kind() Kind
	valid() bool
}

// DirectFunc is a task that returns a value, a future or a stream.
// A non-nil error fails the task.
type DirectFunc func(ctx context.Context, opts Options) (Result, error)

// Kind implements Definition
func (DirectFunc) Kind() Kind { return KindDirect }

func (f DirectFunc) valid() bool { return f != nil }

// Done completes a callback task. A non-nil err fails the task, otherwise
// value is its result. Only the first call counts.
type Done func(err error, value any)

// CallbackFunc is a task that signals completion by calling done, either
// before returning or later from another goroutine.
type CallbackFunc func(ctx context.Context, opts Options, done Done)

// Kind implements Definition
func (CallbackFunc) Kind() Kind { return KindCallback }

func (f CallbackFunc) valid() bool { return f != nil }

// Func adapts a plain blocking function into a DirectFunc.
func Func(fn func(ctx context.Context, opts Options) (any, error)) DirectFunc {
	if fn == nil {
		return nil
	}
	return func(ctx context.Context, opts Options) (Result, error) {
		value, err := fn(ctx, opts)
		if err != nil {
			return Result{}, err
		}
		return Value(value), nil
	}
}
