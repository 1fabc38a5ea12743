package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"abstractc/internal/diag"
	"abstractc/internal/diagfmt"
	"abstractc/internal/driver"
	"abstractc/internal/observ"
	"abstractc/internal/source"
)

const cacheApp = "abstractc"

// driverOptions builds pipeline options from merged settings.
func driverOptions(s expandSettings, timer *observ.Timer) (driver.Options, error) {
	opts := driver.Options{
		MaxDiagnostics: s.maxDiagnostics,
		Jobs:           s.jobs,
		Logger:         logger,
		Timer:          timer,
	}
	if s.diskCache {
		cache, err := driver.OpenDiskCache(cacheApp)
		if err != nil {
			return opts, fmt.Errorf("failed to open disk cache: %w", err)
		}
		opts.Cache = cache
	}
	return opts, nil
}

// printPrettyDiagnostics renders bag to stderr the way every subcommand does
// when no --format is requested.
func printPrettyDiagnostics(cmd *cobra.Command, bag *diag.Bag, fs *source.FileSet) {
	if bag == nil || bag.Len() == 0 {
		return
	}
	diagfmt.Pretty(os.Stderr, bag, fs, diagfmt.PrettyOpts{
		Color:     useColor(cmd, os.Stderr),
		Context:   2,
		ShowNotes: true,
	})
}

// collectBag merges the per-file bags in result order.
func collectBag(results []driver.Result, limit int) *diag.Bag {
	bag := diag.NewBag(limit)
	for i := range results {
		bag.Merge(results[i].Bag)
	}
	return bag
}

func countFailed(results []driver.Result) int {
	n := 0
	for i := range results {
		if results[i].Failed() {
			n++
		}
	}
	return n
}

// isDir reports whether path names an existing directory.
func isDir(path string) (bool, error) {
	st, err := os.Stat(path)
	if err != nil {
		return false, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	return st.IsDir(), nil
}

func logResult(res *driver.Result) {
	if logger == nil {
		return
	}
	logger.Debug("expanded",
		zap.String("path", res.Path),
		zap.Int("expansions", len(res.Expansions)),
		zap.Int("diagnostics", res.Bag.Len()),
		zap.Bool("cached", res.Cached),
	)
}
