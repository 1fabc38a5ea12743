package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"abstractc/internal/diagfmt"
	"abstractc/internal/driver"
	"abstractc/internal/source"
)

var expandCmd = &cobra.Command{
	Use:   "expand [flags] <file.swift|directory>",
	Short: "Expand abstract class markers",
	Long: `Expand rewrites the abstract class markers of a source file and prints the
result. For a directory every *.swift file is expanded in parallel and written
to <name>.expanded.swift, or under --output when given.`,
	Args: cobra.ExactArgs(1),
	RunE: runExpand,
}

func init() {
	expandCmd.Flags().String("emit", "source", "output kind (source|tree|msgpack)")
	expandCmd.Flags().StringP("output", "o", "", "write expanded files under this directory")
	expandCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	expandCmd.Flags().Int("decl-jobs", 0, "expand top-level declarations of one file concurrently (>1 enables)")
	expandCmd.Flags().String("ui", "auto", "progress UI for directories (auto|on|off)")
	expandCmd.Flags().Bool("disk-cache", false, "reuse results from the persistent disk cache")
}

func runExpand(cmd *cobra.Command, args []string) error {
	defer dumpTraceOnPanic()

	settings, err := readExpandSettings(cmd)
	if err != nil {
		return err
	}
	declJobs, err := cmd.Flags().GetInt("decl-jobs")
	if err != nil {
		return fmt.Errorf("failed to get decl-jobs flag: %w", err)
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiValue)
	if err != nil {
		return err
	}

	timer := newTimer(cmd)
	opts, err := driverOptions(settings, timer)
	if err != nil {
		return err
	}
	opts.DeclJobs = declJobs
	opts.NeedTree = settings.emit == emitTree || settings.emit == emitMsgpack

	target := args[0]
	dir, err := isDir(target)
	if err != nil {
		return err
	}

	var failed int
	if dir {
		failed, err = expandDirectory(cmd, target, settings, opts, mode)
	} else {
		failed, err = expandSingle(cmd, target, settings, opts)
	}
	if err != nil {
		return err
	}
	printTimings(os.Stderr, timer)
	if failed > 0 {
		return &exitError{code: 1}
	}
	return nil
}

func expandSingle(cmd *cobra.Command, path string, s expandSettings, opts driver.Options) (int, error) {
	fs := source.NewFileSet()
	res, err := driver.ExpandFile(cmd.Context(), fs, path, opts)
	if err != nil {
		return 0, err
	}
	logResult(res)
	printPrettyDiagnostics(cmd, res.Bag, fs)

	failed := 0
	if res.Failed() {
		failed = 1
	}
	switch s.emit {
	case emitTree:
		tree := res.Expanded
		if tree == nil {
			tree = res.Tree
		}
		return failed, diagfmt.FormatTree(os.Stdout, tree, fs)
	case emitMsgpack:
		return failed, driver.EncodeArtifact(os.Stdout, res)
	}

	if s.outDir == "" {
		_, err = os.Stdout.Write(res.Output)
		return failed, err
	}
	if res.Failed() {
		return failed, nil
	}
	dst, err := driver.WriteOutput(res, filepath.Dir(path), s.outDir)
	if err != nil {
		return failed, err
	}
	if !quiet(cmd) {
		fmt.Fprintf(os.Stderr, "wrote %s\n", dst)
	}
	return failed, nil
}

func expandDirectory(cmd *cobra.Command, dir string, s expandSettings, opts driver.Options, mode uiMode) (int, error) {
	var (
		fs      *source.FileSet
		results []driver.Result
		err     error
	)
	if wantsProgressView(mode, s.emit, quiet(cmd), os.Stdout) {
		files, listErr := driver.ListSourceFiles(dir)
		if listErr != nil {
			return 0, listErr
		}
		fs, results, err = runExpandDirWithUI(cmd.Context(), "expanding "+dir, dir, files, opts)
	} else {
		fs, results, err = driver.ExpandDir(cmd.Context(), dir, opts)
	}
	if err != nil {
		return 0, err
	}
	for i := range results {
		logResult(&results[i])
	}
	printPrettyDiagnostics(cmd, collectBag(results, s.maxDiagnostics), fs)

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()
	for i := range results {
		res := &results[i]
		switch s.emit {
		case emitTree:
			tree := res.Expanded
			if tree == nil {
				tree = res.Tree
			}
			if tree == nil {
				continue
			}
			if err := diagfmt.FormatTree(out, tree, fs); err != nil {
				return 0, err
			}
		case emitMsgpack:
			if err := driver.EncodeArtifact(out, res); err != nil {
				return 0, err
			}
		default:
			if res.Failed() {
				continue
			}
			dst, err := driver.WriteOutput(res, dir, s.outDir)
			if err != nil {
				return 0, err
			}
			if !quiet(cmd) {
				fmt.Fprintf(out, "wrote %s\n", dst)
			}
		}
	}
	return countFailed(results), nil
}

func quiet(cmd *cobra.Command) bool {
	q, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	return q
}
