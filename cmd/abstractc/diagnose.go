package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"abstractc/internal/diag"
	"abstractc/internal/diagfmt"
	"abstractc/internal/driver"
	"abstractc/internal/source"
)

var diagCmd = &cobra.Command{
	Use:   "diag [flags] <file.swift|directory>",
	Short: "Report misplaced abstract class markers",
	Long:  `Run the expansion rules without writing output and report every diagnostic`,
	Args:  cobra.ExactArgs(1),
	RunE:  runDiagnose,
}

func init() {
	diagCmd.Flags().String("format", "pretty", "output format (pretty|json|short)")
	diagCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	diagCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	diagCmd.Flags().Bool("suggest", false, "include fix suggestions in output")
	diagCmd.Flags().Bool("preview", false, "preview fix edits")
	diagCmd.Flags().String("path-mode", "auto", "how to print file paths (auto|absolute|relative|basename)")
	diagCmd.Flags().Bool("disk-cache", false, "reuse results from the persistent disk cache")
}

// runDiagnose expands the target in memory and prints its diagnostics in the
// chosen format. The process exits with status 1 when any error was reported.
func runDiagnose(cmd *cobra.Command, args []string) error {
	defer dumpTraceOnPanic()

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	withNotes, err := cmd.Flags().GetBool("with-notes")
	if err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	suggest, err := cmd.Flags().GetBool("suggest")
	if err != nil {
		return fmt.Errorf("failed to get suggest flag: %w", err)
	}
	preview, err := cmd.Flags().GetBool("preview")
	if err != nil {
		return fmt.Errorf("failed to get preview flag: %w", err)
	}
	pathModeStr, err := cmd.Flags().GetString("path-mode")
	if err != nil {
		return fmt.Errorf("failed to get path-mode flag: %w", err)
	}
	pathMode, ok := diagfmt.ParsePathMode(pathModeStr)
	if !ok {
		return fmt.Errorf("unknown path-mode value: %s", pathModeStr)
	}

	settings, err := readExpandSettings(cmd)
	if err != nil {
		return err
	}
	timer := newTimer(cmd)
	opts, err := driverOptions(settings, timer)
	if err != nil {
		return err
	}

	fs, bag, err := diagnoseTarget(cmd, args[0], settings, opts)
	if err != nil {
		return err
	}
	bag.Sort()

	switch format {
	case "pretty":
		diagfmt.Pretty(os.Stdout, bag, fs, diagfmt.PrettyOpts{
			Color:       useColor(cmd, os.Stdout),
			Context:     2,
			PathMode:    pathMode,
			ShowNotes:   withNotes,
			ShowFixes:   suggest || preview,
			ShowPreview: preview,
		})
	case "json":
		err = diagfmt.JSON(os.Stdout, bag, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         pathMode,
			Max:              settings.maxDiagnostics,
			IncludeNotes:     withNotes,
			IncludeFixes:     suggest || preview,
			IncludePreviews:  preview,
		})
	case "short":
		err = diagfmt.Short(os.Stdout, bag, fs, withNotes)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	if err != nil {
		return err
	}
	printTimings(os.Stderr, timer)

	if bag.HasErrors() {
		return &exitError{code: 1}
	}
	return nil
}

func diagnoseTarget(cmd *cobra.Command, target string, s expandSettings, opts driver.Options) (*source.FileSet, *diag.Bag, error) {
	dir, err := isDir(target)
	if err != nil {
		return nil, nil, err
	}
	if dir {
		fs, results, err := driver.ExpandDir(cmd.Context(), target, opts)
		if err != nil {
			return nil, nil, err
		}
		return fs, collectBag(results, s.maxDiagnostics), nil
	}
	fs := source.NewFileSet()
	res, err := driver.ExpandFile(cmd.Context(), fs, target, opts)
	if err != nil {
		return nil, nil, err
	}
	logResult(res)
	return fs, res.Bag, nil
}
