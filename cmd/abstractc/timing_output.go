package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"abstractc/internal/observ"
)

// newTimer returns a Timer when --timings is on, nil otherwise. A nil Timer
// is inert in the driver.
func newTimer(cmd *cobra.Command) *observ.Timer {
	show, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil || !show {
		return nil
	}
	return observ.NewTimer()
}

func printTimings(out io.Writer, timer *observ.Timer) {
	if out == nil || timer == nil {
		return
	}
	if _, err := fmt.Fprint(out, timer.Summary()); err != nil {
		panic(err)
	}
}
