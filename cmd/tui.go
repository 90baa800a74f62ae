package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh/spinner"
	"github.com/desertthunder/statsweb/internal/tasks"
	"github.com/desertthunder/statsweb/internal/ui"
	"github.com/mattn/go-isatty"
)

// fetching runs action behind a spinner when printing to a terminal.
func (r *Runner) fetching(ctx context.Context, title string, action func(context.Context) error) error {
	if r.output != os.Stdout || !isatty.IsTerminal(os.Stdout.Fd()) {
		return action(ctx)
	}
	return spinner.New().Title(title).Context(ctx).ActionWithErr(action).Run()
}

// warmTUI runs a warming pass inside the interactive progress view.
func (r *Runner) warmTUI(ctx context.Context, warmer *tasks.Warmer, tags []string, ids []int, opts tasks.WarmOpts, logFile string) error {
	// Logs would tear the TUI rendering
	out, closeLog, err := logOutput(logFile)
	if err != nil {
		return err
	}
	defer closeLog()
	r.logger.SetOutput(out)

	r.logger.Info("warming cache", "jobs", describeJobs(tags, ids), "workers", opts.NumWorkers)

	model := ui.NewModel(ctx, warmer, tags, ids, opts)
	p := tea.NewProgram(model, tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	summary, err := model.Summary()
	if err != nil {
		return fmt.Errorf("cache warm interrupted: %w", err)
	}
	return r.writePlain("%s\n", ui.Summary(summary))
}
