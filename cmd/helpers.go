package cmd

import (
	spinerrors "github.com/maxkimambo/spin/internal/errors"
	"github.com/maxkimambo/spin/internal/logger"
	"github.com/maxkimambo/spin/internal/scheduler"
	"github.com/maxkimambo/spin/internal/task"
	"github.com/maxkimambo/spin/internal/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Settings is the resolved command line configuration of one invocation
type Settings struct {
	Mode      scheduler.Mode
	Spinfile  string
	ListTasks bool
	Info      bool
	Options   map[string]string
	Verbosity logger.Verbosity
	JSON      bool
}

// loadSettings reads flags, falling back to SPIN_* environment variables
func loadSettings(cmd *cobra.Command, cfg *viper.Viper) (*Settings, error) {
	verbosity, err := resolveVerbosity(cfg)
	if err != nil {
		return nil, err
	}
	mode, err := resolveMode(cfg)
	if err != nil {
		return nil, err
	}

	rawOptions := cfg.GetStringSlice("opt")
	if cmd.Flags().Changed("opt") {
		rawOptions, _ = cmd.Flags().GetStringArray("opt")
	}
	options := make(map[string]string, len(rawOptions))
	for _, raw := range rawOptions {
		key, value, err := utils.ParseKeyValue(raw)
		if err != nil {
			return nil, spinerrors.NewInvalidOptionError("opt", raw).
				WithOriginalError(err).
				WithTroubleshooting("Pass options as --opt key=value")
		}
		options[key] = value
	}

	return &Settings{
		Mode:      mode,
		Spinfile:  cfg.GetString("spinfile"),
		ListTasks: cfg.GetBool("tasks"),
		Info:      cfg.GetBool("info"),
		Options:   options,
		Verbosity: verbosity,
		JSON:      cfg.GetBool("json"),
	}, nil
}

// resolveVerbosity applies --silent, then --verbose/--debug/--info, then --verbosity
func resolveVerbosity(cfg *viper.Viper) (logger.Verbosity, error) {
	switch {
	case cfg.GetBool("silent"):
		return logger.VerbosityNone, nil
	case cfg.GetBool("verbose"), cfg.GetBool("debug"), cfg.GetBool("info"):
		return logger.VerbosityAll, nil
	}

	name := cfg.GetString("verbosity")
	verbosity, err := logger.ParseVerbosity(name)
	if err != nil {
		return "", spinerrors.NewInvalidOptionError("verbosity", name).
			WithTroubleshooting("Use one of: " + joinVerbosities())
	}
	return verbosity, nil
}

// resolveMode lets --parallel override --mode
func resolveMode(cfg *viper.Viper) (scheduler.Mode, error) {
	if cfg.GetBool("parallel") {
		return scheduler.ModeParallel, nil
	}

	name := cfg.GetString("mode")
	mode, err := scheduler.ParseMode(name)
	if err != nil {
		return scheduler.ModeSequence, spinerrors.NewInvalidOptionError("mode", name).
			WithOriginalError(err).
			WithTroubleshooting("Use one of: sequence|parallel")
	}
	return mode, nil
}

// taskOptions builds the immutable options handed to every task
func (s *Settings) taskOptions() task.Options {
	return task.NewOptions(s.Options)
}
