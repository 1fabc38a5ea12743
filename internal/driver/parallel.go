package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"abstractc/internal/diag"
	"abstractc/internal/source"
	"abstractc/internal/trace"
)

// SourceExt is the extension of files picked up in directory mode.
const SourceExt = ".swift"

// ListSourceFiles возвращает отсортированный список всех *.swift файлов в директории.
// Already expanded outputs (*.expanded.swift) are skipped.
func ListSourceFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(path, SourceExt) && !strings.HasSuffix(path, ".expanded"+SourceExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// ExpandDir expands every source file under dir in parallel. Results are in
// ListSourceFiles order; a file that failed to load carries an IO diagnostic.
func ExpandDir(ctx context.Context, dir string, opts Options) (*source.FileSet, []Result, error) {
	files, err := ListSourceFiles(dir)
	if err != nil {
		return nil, nil, err
	}
	fileSet := source.NewFileSetWithBase(dir)
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeDriver, "expand-dir", trace.CurrentSpan(ctx).SpanID).WithExtra("dir", dir)
	defer span.End("")
	ctx = trace.WithSpan(ctx, span)

	// FileSet не потокобезопасен на запись: всё грузим до запуска воркеров
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error)
	for _, path := range files {
		id, err := fileSet.Load(path)
		if err != nil {
			loadErrors[path] = err
			continue
		}
		fileIDs[path] = id
		emit(opts.Progress, Event{File: path, Status: StatusQueued})
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	opts.logger().Debug("expanding directory",
		zap.String("dir", dir),
		zap.Int("files", len(files)),
		zap.Int("jobs", jobs),
	)

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	results := make([]Result, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if loadErr, failed := loadErrors[path]; failed {
				bag := diag.NewBag(opts.MaxDiagnostics)
				bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{}, "failed to load file: "+loadErr.Error()))
				results[i] = Result{Path: path, Bag: bag}
				emit(opts.Progress, Event{File: path, Stage: StageParse, Status: StatusError, Err: loadErr})
				return nil
			}
			res, err := processFile(gctx, fileSet.Get(fileIDs[path]), opts)
			if err != nil {
				return err
			}
			results[i] = *res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}
