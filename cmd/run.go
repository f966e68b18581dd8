package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/maxkimambo/spin/internal/logger"
	"github.com/maxkimambo/spin/internal/scheduler"
	"github.com/maxkimambo/spin/internal/spinfile"
	"github.com/maxkimambo/spin/internal/utils"
	"github.com/spf13/cobra"
)

// run locates and loads the spinfile, then lists, describes or runs tasks
func run(ctx context.Context, cmd *cobra.Command, settings *Settings, args []string) error {
	path, findErr := locateSpinfile(settings.Spinfile)

	if settings.Info {
		printInfo(cmd.OutOrStdout(), settings, path, args)
		return nil
	}
	if findErr != nil {
		return findErr
	}

	sf, err := spinfile.Load(path)
	if err != nil {
		return err
	}

	sink := logger.TaskSink()
	sink.Log("Using spinfile " + path)
	if len(sf.Tasks) == 0 {
		sink.Warn("Spinfile " + path + " defines no tasks")
	}

	if settings.ListTasks {
		printTasks(cmd.OutOrStdout(), sf)
		return nil
	}

	executor := spinfile.NewExecutor()
	executor.Stdout = cmd.OutOrStdout()
	executor.Stderr = cmd.ErrOrStderr()
	registry, err := executor.Registry(sf)
	if err != nil {
		return err
	}

	sink.Info(fmt.Sprintf("Running %d task group(s) in %s mode with %d option(s)",
		max(len(args), 1), settings.Mode, len(settings.Options)))

	runner := scheduler.New(registry, scheduler.WithSink(sink))
	err = runner.Run(ctx, args, settings.taskOptions(), settings.Mode)
	logger.Debug("Scheduler finished", logger.Field{Key: "status", Value: runner.Status().String()})
	return err
}

func locateSpinfile(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to determine working directory: %w", err)
	}
	return spinfile.Find(cwd)
}

func printTasks(w io.Writer, sf *spinfile.Spinfile) {
	fmt.Fprintf(w, "Tasks for %s\n", sf.Path)
	if len(sf.Tasks) == 0 {
		fmt.Fprintln(w, "No tasks defined")
		return
	}

	descriptions := sf.Descriptions()
	table := utils.NewTableFormatter([]string{"TASK", "DESCRIPTION"})
	table.Plain = !logger.IsTerminal(w)
	for _, name := range sf.Names() {
		table.AddRow(name, utils.Truncate(descriptions[name], 60))
	}
	fmt.Fprint(w, table.String())
}

func printInfo(w io.Writer, settings *Settings, path string, args []string) {
	cwd, _ := os.Getwd()

	report := utils.NewReportBuilder().
		Header("Spin context").
		AddKeyValue("Version", version).
		AddKeyValue("CLI arguments", strings.Join(os.Args[1:], " ")).
		AddKeyValue("CWD", cwd).
		AddKeyValue("Searching for", strings.Join(spinfile.Candidates, ", ")).
		AddKeyValue("Found spinfile at", path)
	if path != "" {
		report.AddKeyValue("Spinfile base dir", (&spinfile.Spinfile{Path: path}).Dir())
	}
	report.
		AddKeyValue("Mode", settings.Mode.String()).
		AddKeyValue("Verbosity", settings.Verbosity.String()).
		AddKeyValue("Requested tasks", strings.Join(args, " "))

	if len(settings.Options) > 0 {
		report.Section("Task options")
		report.AddMap(settings.Options)
	}

	fmt.Fprintln(w, report.Build())
}
