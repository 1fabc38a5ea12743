package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"abstractc/internal/driver"
	"abstractc/internal/source"
	"abstractc/internal/vm"
)

var runCmd = &cobra.Command{
	Use:   "run [flags] <file.swift>",
	Short: "Expand a file and execute it in the reference runtime",
	Long: `Run expands the markers of a file and executes the result. A fired
construction guard or an unimplemented abstract method stops the program with
"Fatal error: <message>" and exit status 1.`,
	Args: cobra.ExactArgs(1),
	RunE: runExecution,
}

func init() {
	runCmd.Flags().Bool("backtrace", false, "print the location and call stack of a fatal error")
}

func runExecution(cmd *cobra.Command, args []string) error {
	defer dumpTraceOnPanic()

	backtrace, err := cmd.Flags().GetBool("backtrace")
	if err != nil {
		return fmt.Errorf("failed to get backtrace flag: %w", err)
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

	fs := source.NewFileSet()
	res, err := driver.Run(cmd.Context(), fs, args[0], os.Stdout, opts)
	if res != nil {
		printPrettyDiagnostics(cmd, res.Bag, fs)
	}
	printTimings(os.Stderr, timer)

	var fatal *vm.FatalError
	var vmErr *vm.VMError
	switch {
	case err == nil:
		return nil
	case errors.Is(err, driver.ErrHasErrors):
		return &exitError{code: 1}
	case errors.As(err, &fatal), errors.As(err, &vmErr):
		if backtrace {
			fmt.Fprint(os.Stderr, vm.FormatWithFiles(err, fs))
		} else {
			fmt.Fprintln(os.Stderr, err.Error())
		}
		return &exitError{code: 1}
	default:
		return err
	}
}
