package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"abstractc/internal/driver"
	"abstractc/internal/source"
	"abstractc/internal/ui"
)

type expandDirOutcome struct {
	fileSet *source.FileSet
	results []driver.Result
	err     error
}

// runExpandDirWithUI expands dir in the background while a progress view
// renders its events. files must be the ListSourceFiles order of dir.
func runExpandDirWithUI(ctx context.Context, title, dir string, files []string, opts driver.Options) (*source.FileSet, []driver.Result, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan expandDirOutcome, 1)

	go func() {
		opts.Progress = driver.ChannelSink{Ch: events}
		fs, results, err := driver.ExpandDir(ctx, dir, opts)
		outcomeCh <- expandDirOutcome{fileSet: fs, results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	if uiErr != nil {
		// модель больше не читает канал, не даём воркерам застрять
		go func() {
			for range events {
			}
		}()
	}
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.fileSet, outcome.results, uiErr
	}
	return outcome.fileSet, outcome.results, outcome.err
}
