package driver

import (
	"context"
	"errors"
	"io"
	"time"

	"go.uber.org/zap"

	"abstractc/internal/source"
	"abstractc/internal/vm"
)

// ErrHasErrors is returned by Run when the file did not expand cleanly; the
// diagnostics are in the returned Result.
var ErrHasErrors = errors.New("expansion reported errors")

// Run expands path and executes it in the reference runtime. A runtime trap
// comes back as *vm.FatalError.
func Run(ctx context.Context, fs *source.FileSet, path string, out io.Writer, opts Options) (*Result, error) {
	opts.NeedTree = true
	res, err := ExpandFile(ctx, fs, path, opts)
	if err != nil {
		return nil, err
	}
	if res.Failed() {
		return res, ErrHasErrors
	}

	started := time.Now()
	emit(opts.Progress, Event{File: res.Path, Stage: StageRun, Status: StatusWorking})
	done := opts.Timer.Track("run")
	err = vm.New(vm.Options{Out: out}).Run(ctx, res.Expanded)
	done("")
	if err != nil {
		opts.logger().Debug("run failed", zap.String("path", res.Path), zap.Error(err))
		emit(opts.Progress, Event{File: res.Path, Stage: StageRun, Status: StatusError, Err: err})
		return res, err
	}
	emit(opts.Progress, Event{File: res.Path, Stage: StageRun, Status: StatusDone, Elapsed: time.Since(started)})
	return res, nil
}
