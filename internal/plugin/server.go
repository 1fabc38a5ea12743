package plugin

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"abstractc/internal/ast"
	"abstractc/internal/diag"
	"abstractc/internal/macro"
	"abstractc/internal/parser"
	"abstractc/internal/rewrite"
	"abstractc/internal/source"
	"abstractc/internal/trace"
)

// Options configures Serve.
type Options struct {
	MaxFrame       int
	MaxDiagnostics int
	Logger         *zap.Logger
}

// Serve answers requests from r on w until the host closes the stream, sends
// OpShutdown, or ctx is cancelled between requests. A clean end of stream is
// not an error.
func Serve(ctx context.Context, r io.Reader, w io.Writer, opts Options) error {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	fr := NewFrameReader(r, opts.MaxFrame)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		var req Request
		if err := fr.Read(&req); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		log.Debug("request", zap.Uint64("id", req.ID), zap.String("op", req.Op), zap.String("path", req.Path))

		resp := handle(ctx, &req, opts)
		if err := WriteFrame(w, resp); err != nil {
			return fmt.Errorf("plugin: write response %d: %w", req.ID, err)
		}
		if req.Op == OpShutdown {
			return nil
		}
	}
}

func handle(ctx context.Context, req *Request, opts Options) *Response {
	span := trace.Begin(trace.FromContext(ctx), trace.ScopeFile, req.Op, trace.CurrentSpan(ctx).SpanID)
	defer span.End("")

	resp := &Response{ID: req.ID}
	switch req.Op {
	case OpPing, OpShutdown:
	case OpExpandFile, OpExpandMarker:
		name := req.Path
		if name == "" {
			name = "<plugin>"
		}
		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual(name, req.Source))
		bag := diag.NewBag(opts.MaxDiagnostics)
		rep := diag.NewDedupReporter(diag.BagReporter{Bag: bag})
		tree := parser.ParseFile(file, parser.Options{Reporter: rep})

		if req.Op == OpExpandFile {
			expandFile(resp, file, tree, rep, bag)
		} else if err := expandMarker(resp, tree, req.MarkerOffset, rep); err != nil {
			resp.Error = err.Error()
		}
		resp.Diagnostics = toWireDiagnostics(bag.Items())
	default:
		resp.Error = fmt.Sprintf("unknown op %q", req.Op)
	}
	return resp
}

func expandFile(resp *Response, file *source.File, tree *ast.File, rep diag.Reporter, bag *diag.Bag) {
	exps := macro.Expand(tree, rep)
	for _, e := range exps {
		resp.Expansions = append(resp.Expansions, toWireExpansion(e))
	}
	if bag.HasErrors() {
		resp.Output = file.Content
		return
	}
	out, err := rewrite.Rewrite(file, tree, exps)
	if err != nil {
		resp.Error = err.Error()
		return
	}
	resp.Output = out
}

// expandMarker locates the declaration carrying the marker at offset and
// runs exactly that one rule.
func expandMarker(resp *Response, tree *ast.File, offset uint32, rep diag.Reporter) error {
	var (
		target *ast.Decl
		marker ast.Attr
		lexCtx ast.Context
	)
	ast.Walk(tree.Decls, nil, func(d *ast.Decl, ctx ast.Context) bool {
		for _, a := range d.Attrs {
			if a.Span.Start == offset {
				target, marker, lexCtx = d, a, ctx
			}
		}
		return target == nil
	})
	if target == nil || !macro.IsMarker(marker) {
		return fmt.Errorf("no marker at offset %d", offset)
	}
	if exp, ok := macro.Dispatch(target, lexCtx, marker, rep); ok {
		resp.Expansions = append(resp.Expansions, toWireExpansion(exp))
	}
	return nil
}
