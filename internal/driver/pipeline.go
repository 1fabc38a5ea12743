package driver

import (
	"context"
	"fmt"
	"time"

	"fortio.org/safecast"
	"go.uber.org/zap"

	"abstractc/internal/ast"
	"abstractc/internal/diag"
	"abstractc/internal/macro"
	"abstractc/internal/observ"
	"abstractc/internal/parser"
	"abstractc/internal/rewrite"
	"abstractc/internal/source"
	"abstractc/internal/trace"
)

// Options configures the pipeline.
type Options struct {
	MaxDiagnostics int // 0 — без ограничений
	Jobs           int // directory workers; 0 means GOMAXPROCS
	DeclJobs       int // >1 expands top-level declarations of one file concurrently

	Cache    *DiskCache // nil disables the disk cache
	NeedTree bool       // callers that inspect Result.Tree/Expanded bypass the cache

	Logger   *zap.Logger
	Progress ProgressSink
	Timer    *observ.Timer // shared across files; nil disables timings
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

// Result is the outcome of expanding one file.
type Result struct {
	Path   string
	FileID source.FileID

	Tree       *ast.File // as parsed; nil on a cache hit
	Expanded   *ast.File // with expansions applied; nil when Bag has errors or on a cache hit
	Expansions []macro.Expansion
	Output     []byte // expanded source, or the original source when Bag has errors
	Bag        *diag.Bag
	Cached     bool
}

// Failed reports whether the file produced errors. Its Output is the original source then.
func (r *Result) Failed() bool {
	return r.Bag.HasErrors()
}

// ExpandSource expands content registered in fs as a virtual file.
func ExpandSource(ctx context.Context, fs *source.FileSet, name string, content []byte, opts Options) (*Result, error) {
	id := fs.AddVirtual(name, content)
	return processFile(ctx, fs.Get(id), opts)
}

// ExpandFile loads path into fs and expands it.
func ExpandFile(ctx context.Context, fs *source.FileSet, path string, opts Options) (*Result, error) {
	id, err := fs.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return processFile(ctx, fs.Get(id), opts)
}

// processFile runs parse -> expand -> rewrite on one loaded file. Source
// problems end up in Result.Bag; the error is reserved for cancellation and
// internal failures.
func processFile(ctx context.Context, file *source.File, opts Options) (*Result, error) {
	log := opts.logger().With(zap.String("path", file.Path))
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeFile, "file", trace.CurrentSpan(ctx).SpanID).WithExtra("path", file.Path)
	defer span.End("")
	ctx = trace.WithSpan(ctx, span)
	started := time.Now()

	res := &Result{Path: file.Path, FileID: file.ID, Bag: diag.NewBag(opts.MaxDiagnostics)}

	var key Digest
	useCache := opts.Cache != nil && !opts.NeedTree
	if useCache {
		key = cacheKey(file)
		var payload DiskPayload
		hit, err := opts.Cache.Get(key, &payload)
		if err != nil {
			log.Warn("disk cache read failed", zap.Error(err))
		}
		if hit {
			res.Output = payload.Output
			res.Cached = true
			restoreDiagnostics(&payload, file.ID, res.Bag)
			log.Debug("cache hit", zap.String("key", key.String()))
			emit(opts.Progress, Event{File: file.Path, Stage: StageRewrite, Status: StatusCached, Elapsed: time.Since(started)})
			return res, nil
		}
	}

	maxErrors, err := safecast.Conv[uint](max(opts.MaxDiagnostics, 0))
	if err != nil {
		return nil, fmt.Errorf("maxDiagnostics overflow: %w", err)
	}
	// правило, сработавшее дважды на одном маркере, даёт одну диагностику
	rep := diag.NewDedupReporter(diag.BagReporter{Bag: res.Bag})

	emit(opts.Progress, Event{File: file.Path, Stage: StageParse, Status: StatusWorking})
	done := opts.Timer.Track("parse")
	pass := trace.Begin(tracer, trace.ScopePass, "parse", span.ID())
	res.Tree = parser.ParseFile(file, parser.Options{Reporter: rep, MaxErrors: maxErrors})
	pass.End("")
	done("")

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	emit(opts.Progress, Event{File: file.Path, Stage: StageExpand, Status: StatusWorking})
	done = opts.Timer.Track("expand")
	if opts.DeclJobs > 1 {
		res.Expansions, err = macro.ExpandParallel(ctx, res.Tree, opts.DeclJobs, rep)
		if err != nil {
			done("cancelled")
			return nil, err
		}
	} else {
		pass = trace.Begin(tracer, trace.ScopePass, "expand", span.ID())
		res.Expansions = macro.Expand(res.Tree, rep)
		pass.End("")
	}
	done("")

	if res.Bag.HasErrors() {
		// при любой ошибке исходник остаётся как был
		res.Output = file.Content
		log.Debug("expansion failed", zap.Int("diagnostics", res.Bag.Len()))
		emit(opts.Progress, Event{File: file.Path, Stage: StageExpand, Status: StatusError, Elapsed: time.Since(started)})
		storeResult(opts.Cache, useCache, key, res, log)
		return res, nil
	}

	emit(opts.Progress, Event{File: file.Path, Stage: StageRewrite, Status: StatusWorking})
	done = opts.Timer.Track("rewrite")
	pass = trace.Begin(tracer, trace.ScopePass, "rewrite", span.ID())
	res.Output, err = rewrite.Rewrite(file, res.Tree, res.Expansions)
	if err == nil {
		res.Expanded = rewrite.ApplyTree(res.Tree, res.Expansions)
	}
	pass.End("")
	done("")
	if err != nil {
		emit(opts.Progress, Event{File: file.Path, Stage: StageRewrite, Status: StatusError, Err: err})
		return nil, fmt.Errorf("rewrite %s: %w", file.Path, err)
	}

	log.Debug("expanded",
		zap.Int("expansions", len(res.Expansions)),
		zap.Duration("elapsed", time.Since(started)),
	)
	emit(opts.Progress, Event{File: file.Path, Stage: StageRewrite, Status: StatusDone, Elapsed: time.Since(started)})
	storeResult(opts.Cache, useCache, key, res, log)
	return res, nil
}

func storeResult(cache *DiskCache, enabled bool, key Digest, res *Result, log *zap.Logger) {
	if !enabled {
		return
	}
	if err := cache.Put(key, resultToDiskPayload(res)); err != nil {
		log.Warn("disk cache write failed", zap.Error(err))
	}
}
