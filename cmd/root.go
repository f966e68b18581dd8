package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	spinerrors "github.com/maxkimambo/spin/internal/errors"
	"github.com/maxkimambo/spin/internal/logger"
	"github.com/maxkimambo/spin/internal/scheduler"
	"github.com/maxkimambo/spin/internal/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides for every flag, e.g. SPIN_PARALLEL
const EnvPrefix = "SPIN"

var version = "v0.1.0"

// Execute runs the spin command against the process arguments
func Execute() error {
	// Errors raised before flag parsing completes still need a configured logger
	logger.Setup(logger.Options{})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return execute(ctx, NewRootCmd())
}

// execute runs rootCmd and reports its failure through the task sink
func execute(ctx context.Context, rootCmd *cobra.Command) error {
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		reportError(rootCmd, err)
	}
	return err
}

// NewRootCmd builds the spin command with its own flag and env bindings
func NewRootCmd() *cobra.Command {
	var cfg *viper.Viper

	rootCmd := &cobra.Command{
		Use:   "spin [flags] [tasks...]",
		Short: "Run the tasks of a spinfile in sequence or in parallel",
		Long: `Spin runs the tasks declared in a spinfile, one after the other or concurrently.

A spinfile (Spinfile.yml, Spinfile.yaml, spinfile.yml or spinfile.yaml) is looked up
from the current directory upwards unless --spinfile is given. Without task names
the task called "default" runs.

In parallel mode every name starts at once. Names joined with '+' run as a
sequence inside their parallel group.`,
		Example: `  # Run commands in sequence
  spin clean build test

  # Run clean & build in sequence, and lint in parallel
  spin -p clean+build lint

  # Pass options to tasks, exported as SPIN_OPT_<KEY>
  spin build --opt target=linux --opt release`,
		Args:          cobra.ArbitraryArgs,
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings(cmd, cfg)
			if err != nil {
				return err
			}
			// Notifications and command output share the streams across parallel tasks
			cmd.SetOut(utils.NewSyncWriter(cmd.OutOrStdout()))
			cmd.SetErr(utils.NewSyncWriter(cmd.ErrOrStderr()))

			logger.Setup(logger.Options{
				Verbosity: settings.Verbosity,
				JSON:      settings.JSON,
				Stdout:    cmd.OutOrStdout(),
				Stderr:    cmd.ErrOrStderr(),
			})
			logger.Debugf("Resolved verbosity %s", settings.Verbosity)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings(cmd, cfg)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cmd, settings, args)
		},
	}

	flags := rootCmd.Flags()
	flags.BoolP("parallel", "p", false, "Run in parallel mode, same as --mode parallel")
	flags.String("mode", scheduler.ModeSequence.String(), "Execution mode (sequence|parallel)")
	flags.String("spinfile", "", "Alternative spinfile to use")
	flags.Bool("tasks", false, "Display available tasks")
	flags.Bool("info", false, "Display contextual information")
	flags.StringArray("opt", nil, "Task option as key=value, exported to commands as SPIN_OPT_<KEY> (repeatable)")
	flags.Bool("silent", false, "Disable all logging")
	flags.BoolP("verbose", "v", false, "Enable all logging")
	flags.Bool("debug", false, "Enable all logging")
	flags.String("verbosity", string(logger.VerbosityNotice),
		fmt.Sprintf("Logging level (%s)", joinVerbosities()))
	flags.Bool("json", false, "Output logs in JSON format")

	cfg = newConfig(flags)

	return rootCmd
}

// newConfig layers SPIN_* environment variables under the command line flags
func newConfig(flags *pflag.FlagSet) *viper.Viper {
	cfg := viper.New()
	cfg.SetEnvPrefix(EnvPrefix)
	cfg.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	cfg.AutomaticEnv()
	_ = cfg.BindPFlags(flags)
	return cfg
}

// reportError logs a failed run. Full troubleshooting output is only shown
// when every message is requested.
func reportError(cmd *cobra.Command, err error) {
	logger.TaskSink().Error(err.Error())
	logger.WithFieldsMap(map[string]interface{}{
		"code":       spinerrors.GetErrorCode(err),
		"user_error": spinerrors.IsUserError(err),
	}).Debug(spinerrors.DisplayErrorSummary(err))
	if logger.CurrentVerbosity() == logger.VerbosityAll && spinerrors.ShouldDisplayTroubleshooting(err) {
		fmt.Fprintln(cmd.ErrOrStderr(), spinerrors.FormatForCLI(err))
	}
}

func joinVerbosities() string {
	names := make([]string, len(logger.Verbosities))
	for i, v := range logger.Verbosities {
		names[i] = v.String()
	}
	return strings.Join(names, "|")
}
