package scheduler

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	spinerrors "github.com/maxkimambo/spin/internal/errors"
	"github.com/maxkimambo/spin/internal/task"
	"github.com/maxkimambo/spin/internal/utils"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultTask runs when no task names are requested
	DefaultTask = "default"
)

// Sink receives the scheduler's progress notifications
type Sink interface {
	Time(msg string)
	Log(msg string)
	Error(msg string)
}

type nopSink struct{}

func (nopSink) Time(string)  {}
func (nopSink) Log(string)   {}
func (nopSink) Error(string) {}

// Option configures a Scheduler
type Option func(*Scheduler)

// WithSink sets the notification sink. A nil sink discards notifications.
func WithSink(sink Sink) Option {
	return func(s *Scheduler) {
		if sink != nil {
			s.sink = sink
		}
	}
}

// WithClock overrides the clock used for timing notifications
func WithClock(clock utils.Clock) Option {
	return func(s *Scheduler) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// Scheduler executes requested task names against a registry
type Scheduler struct {
	registry task.Registry
	sink     Sink
	clock    utils.Clock

	mutex  sync.RWMutex
	status Status
}

// New creates a Scheduler over registry
func New(registry task.Registry, opts ...Option) *Scheduler {
	s := &Scheduler{
		registry: registry,
		sink:     nopSink{},
		clock:    time.Now,
		status:   StatusIdle,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Status returns the state of the latest invocation
func (s *Scheduler) Status() Status {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.status
}

func (s *Scheduler) transition(status Status) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.status = status
}

// Run executes requested under mode. An empty request runs DefaultTask.
// The first failure is returned as is; on success a completion notice with
// the total duration is logged.
func (s *Scheduler) Run(ctx context.Context, requested []string, opts task.Options, mode Mode) error {
	names := requested
	if len(names) == 0 {
		names = []string{DefaultTask}
	}

	s.transition(StatusRunning)
	timer := utils.NewTimer(s.clock)

	var err error
	switch mode {
	case ModeParallel:
		err = s.RunParallel(ctx, names, opts)
	case ModeSequence:
		err = s.RunSequence(ctx, names, opts)
	default:
		err = fmt.Errorf("unknown execution mode %d", mode)
	}

	if err != nil {
		s.transition(StatusFailed)
		return err
	}

	s.transition(StatusCompleted)
	s.sink.Log(fmt.Sprintf("✨  Done in %ss", timer.Stop().Seconds()))
	return nil
}

// RunSequence resolves and runs names one at a time in list order. It stops
// at the first failure; names after it are never resolved.
func (s *Scheduler) RunSequence(ctx context.Context, names []string, opts task.Options) error {
	for _, name := range names {
		if err := s.runOne(ctx, name, opts); err != nil {
			return err
		}
	}
	return nil
}

// RunParallel runs every name as its own concurrent group. Names containing
// task.GroupSeparator run their members as an inner sequence. It waits for all
// groups to settle and reports the first failure, wrapped with its group.
func (s *Scheduler) RunParallel(ctx context.Context, names []string, opts task.Options) error {
	var (
		group    errgroup.Group
		once     sync.Once
		firstErr error
	)

	for _, name := range names {
		group.Go(func() error {
			err := s.runGroup(ctx, name, opts)
			if err != nil {
				once.Do(func() {
					firstErr = spinerrors.NewAggregateFailureError(name, err)
				})
			}
			return err
		})
	}

	if err := group.Wait(); err != nil {
		return firstErr
	}
	return nil
}

func (s *Scheduler) runGroup(ctx context.Context, name string, opts task.Options) error {
	if strings.Contains(name, task.GroupSeparator) {
		return s.RunSequence(ctx, strings.Split(name, task.GroupSeparator), opts)
	}
	return s.runOne(ctx, name, opts)
}

// runOne resolves name and runs it between timed start and finish notices
func (s *Scheduler) runOne(ctx context.Context, name string, opts task.Options) error {
	runnable, err := task.Resolve(name, s.registry)
	if err != nil {
		return err
	}

	timer := utils.NewTimer(s.clock)
	s.sink.Time(fmt.Sprintf("Starting '%s'...", runnable.Name()))

	if _, err := runnable.Run(ctx, opts); err != nil {
		return err
	}

	s.sink.Time(fmt.Sprintf("Finished '%s' in %ss", runnable.Name(), timer.Stop().Seconds()))
	return nil
}
