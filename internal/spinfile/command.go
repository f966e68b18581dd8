package spinfile

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/shlex"
	"github.com/maxkimambo/spin/internal/logger"
	"github.com/maxkimambo/spin/internal/task"
	"github.com/maxkimambo/spin/internal/utils"
)

// OptionEnvPrefix prefixes task options exported to commands.
const OptionEnvPrefix = "SPIN_OPT_"

// Executor turns spinfile tasks into runnable command definitions.
type Executor struct {
	// Stdout receives command output as it streams; nil discards it.
	Stdout io.Writer
	// Stderr receives command errors; nil discards them.
	Stderr io.Writer
	// Environ is the base environment, os.Environ by default.
	Environ func() []string
}

// NewExecutor creates an executor wired to the process streams
func NewExecutor() *Executor {
	return &Executor{
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Environ: os.Environ,
	}
}

// Registry builds a task registry holding one command definition per task.
func (e *Executor) Registry(sf *Spinfile) (task.Registry, error) {
	env, err := sf.Environment()
	if err != nil {
		return nil, err
	}

	registry := make(task.Registry, len(sf.Tasks))
	for name, spec := range sf.Tasks {
		registry[name] = e.command(sf.Dir(), spec, env)
	}

	logger.Debug("Loaded spinfile",
		logger.Field{Key: "path", Value: sf.Path},
		logger.Field{Key: "tasks", Value: len(registry)})
	return registry, nil
}

func (e *Executor) command(baseDir string, spec TaskSpec, shared map[string]string) task.DirectFunc {
	return func(ctx context.Context, opts task.Options) (task.Result, error) {
		args, err := splitCommand(spec.Run)
		if err != nil {
			return task.Result{}, err
		}

		cmd := exec.CommandContext(ctx, args[0], args[1:]...)
		cmd.Dir = resolveDir(baseDir, spec.Dir)
		cmd.Env = e.environment(shared, spec.Env, opts)
		cmd.Stderr = writerOrDiscard(e.Stderr)

		stdout, err := cmd.StdoutPipe()
		if err != nil {
			return task.Result{}, fmt.Errorf("failed to capture output of %s: %w", args[0], err)
		}

		logger.Debug("Running command",
			logger.Field{Key: "command", Value: spec.Run},
			logger.Field{Key: "dir", Value: cmd.Dir})

		if err := cmd.Start(); err != nil {
			return task.Result{}, fmt.Errorf("failed to start %s: %w", args[0], err)
		}

		return task.Stream(&commandStream{
			reader:  io.TeeReader(stdout, writerOrDiscard(e.Stdout)),
			cmd:     cmd,
			command: spec.Run,
		}), nil
	}
}

func (e *Executor) environment(shared, local map[string]string, opts task.Options) []string {
	var env []string
	if e.Environ != nil {
		env = append(env, e.Environ()...)
	}
	// exec keeps the last value of duplicated keys
	for _, vars := range []map[string]string{shared, local} {
		for k, v := range vars {
			env = append(env, k+"="+v)
		}
	}
	for _, key := range opts.Keys() {
		env = append(env, utils.EnvKey(OptionEnvPrefix, key)+"="+opts.String(key))
	}
	return env
}

// splitCommand splits a command line with shell word rules
func splitCommand(command string) ([]string, error) {
	parts, err := shlex.Split(command)
	if err != nil {
		return nil, fmt.Errorf("failed to parse command: %w", err)
	}
	if len(parts) == 0 {
		return nil, fmt.Errorf("command cannot be empty after parsing")
	}
	if strings.HasPrefix(parts[0], "-") {
		return nil, fmt.Errorf("command name cannot start with dash")
	}
	return parts, nil
}

func resolveDir(baseDir, dir string) string {
	if dir == "" {
		return baseDir
	}
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(baseDir, dir)
}

func writerOrDiscard(w io.Writer) io.Writer {
	if w == nil {
		return io.Discard
	}
	return w
}

// commandStream yields a command's stdout. Closing it waits for the command,
// so a non-zero exit surfaces as the stream's error.
type commandStream struct {
	reader  io.Reader
	cmd     *exec.Cmd
	command string

	once sync.Once
	err  error
}

func (s *commandStream) Read(p []byte) (int, error) {
	return s.reader.Read(p)
}

func (s *commandStream) Close() error {
	s.once.Do(func() {
		if err := s.cmd.Wait(); err != nil {
			s.err = fmt.Errorf("command '%s' failed: %w", s.command, err)
		}
	})
	return s.err
}
