package task

import (
	"context"
	"sync"

	spinerrors "github.com/maxkimambo/spin/internal/errors"
)

// Runnable is a resolved task with a single uniform entry point.
type Runnable struct {
	name string
	def  Definition
}

// Name returns the name the task was resolved under.
func (r *Runnable) Name() string {
	return r.name
}

// Run invokes the definition once and waits for it to settle. Failures raised
// by the task, including panics, come back as TaskExecutionError values that
// wrap the original error.
func (r *Runnable) Run(ctx context.Context, opts Options) (value any, err error) {
	defer func() {
		if p := recover(); p != nil {
			value, err = nil, spinerrors.NewTaskExecutionError(r.name, &spinerrors.PanicError{Value: p})
		}
	}()

	switch def := r.def.(type) {
	case CallbackFunc:
		value, err = runCallback(ctx, def, opts)
	case DirectFunc:
		value, err = runDirect(ctx, def, opts)
	}

	if err != nil {
		return nil, spinerrors.NewTaskExecutionError(r.name, err)
	}
	return value, nil
}

func runDirect(ctx context.Context, def DirectFunc, opts Options) (any, error) {
	result, err := def(ctx, opts)
	if err != nil {
		return nil, err
	}
	return result.await(ctx)
}

func runCallback(ctx context.Context, def CallbackFunc, opts Options) (any, error) {
	settled := make(chan Outcome, 1)
	var once sync.Once
	done := func(err error, value any) {
		once.Do(func() {
			settled <- Outcome{Value: value, Err: err}
		})
	}

	var outcome Outcome
	panicked := invokeCallback(ctx, def, opts, done)
	select {
	case outcome = <-settled:
		// a panic after done keeps the settled outcome
	default:
		if panicked != nil {
			once.Do(func() {})
			return nil, &spinerrors.PanicError{Value: panicked}
		}
		// not settled synchronously, wait for a later call
		select {
		case outcome = <-settled:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if outcome.Err != nil {
		return nil, outcome.Err
	}
	return outcome.Value, nil
}

// invokeCallback calls def and returns the value of any panic it raised
func invokeCallback(ctx context.Context, def CallbackFunc, opts Options, done Done) (panicked any) {
	defer func() {
		panicked = recover()
	}()
	def(ctx, opts, done)
	return nil
}
