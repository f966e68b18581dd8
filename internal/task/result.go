package task

import (
	"bytes"
	"context"
	"io"
)

// ResultKind tags the variant held by a Result.
type ResultKind int

const (
	// ResultValue holds a ready value (possibly nil).
	ResultValue ResultKind = iota
	// ResultFuture holds a channel that delivers the outcome later.
	ResultFuture
	// ResultStream holds a reader that is drained to end-of-stream.
	ResultStream
)

// Outcome is the settled state of a future.
type Outcome struct {
	Value any
	Err   error
}

// Result is what a DirectFunc hands back. The zero Result is a nil value.
type Result struct {
	kind   ResultKind
	value  any
	future <-chan Outcome
	stream io.Reader
}

// Value wraps an already computed value.
func Value(v any) Result {
	return Result{kind: ResultValue, value: v}
}

// Future wraps a channel that delivers exactly one Outcome. A channel closed
// without sending resolves to nil.
func Future(ch <-chan Outcome) Result {
	return Result{kind: ResultFuture, future: ch}
}

// Stream wraps a reader. End-of-stream resolves the task with everything read;
// a read error fails it. Readers that implement io.Closer are closed afterwards.
func Stream(r io.Reader) Result {
	return Result{kind: ResultStream, stream: r}
}

// Kind reports the variant held by r.
func (r Result) Kind() ResultKind {
	return r.kind
}

// await settles the result into a value or an error.
func (r Result) await(ctx context.Context) (any, error) {
	switch r.kind {
	case ResultFuture:
		if r.future == nil {
			return nil, nil
		}
		select {
		case outcome, ok := <-r.future:
			if !ok {
				return nil, nil
			}
			return outcome.Value, outcome.Err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	case ResultStream:
		return drain(r.stream)
	default:
		return r.value, nil
	}
}

func drain(r io.Reader) (out []byte, err error) {
	if r == nil {
		return nil, nil
	}
	if closer, ok := r.(io.Closer); ok {
		defer func() {
			if cerr := closer.Close(); cerr != nil && err == nil {
				out, err = nil, cerr
			}
		}()
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
