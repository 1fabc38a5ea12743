package trace

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Tracer is the main interface for emitting trace events.
type Tracer interface {
	// Emit records a trace event. Must be goroutine-safe.
	Emit(ev *Event)
	Flush() error
	Close() error
	Level() Level
	Enabled() bool
}

// Config holds tracer configuration.
type Config struct {
	Level      Level
	Format     Format
	Output     io.Writer // если nil, используется OutputPath
	OutputPath string    // "-" или пусто — stderr
	RingSize   int       // >0: дополнительно держать последние события в памяти
}

// New creates a Tracer based on cfg. With LevelOff it returns Nop.
func New(cfg Config) (Tracer, error) {
	if cfg.Level == LevelOff {
		return Nop, nil
	}
	format := cfg.Format
	if format == FormatAuto {
		format = FormatText
		if strings.HasSuffix(cfg.OutputPath, ".ndjson") || strings.HasSuffix(cfg.OutputPath, ".jsonl") {
			format = FormatNDJSON
		}
	}
	var w io.Writer = cfg.Output
	if w == nil {
		if cfg.OutputPath == "" || cfg.OutputPath == "-" {
			w = os.Stderr
		} else {
			f, err := os.Create(cfg.OutputPath)
			if err != nil {
				return nil, fmt.Errorf("failed to open trace output: %w", err)
			}
			w = f
		}
	}
	stream := NewStreamTracer(w, cfg.Level, format)
	if cfg.RingSize <= 0 {
		return stream, nil
	}
	return &teeTracer{stream: stream, ring: NewRingTracer(cfg.RingSize, cfg.Level)}, nil
}

// teeTracer пишет в поток и параллельно копит события в кольце для дампа при панике.
type teeTracer struct {
	stream *StreamTracer
	ring   *RingTracer
}

func (t *teeTracer) Emit(ev *Event) {
	t.stream.Emit(ev)
	t.ring.Emit(ev)
}

func (t *teeTracer) Flush() error  { return t.stream.Flush() }
func (t *teeTracer) Close() error  { return t.stream.Close() }
func (t *teeTracer) Level() Level  { return t.stream.Level() }
func (t *teeTracer) Enabled() bool { return t.stream.Enabled() }

// Ring returns the in-memory buffer of tr, if it keeps one.
func Ring(tr Tracer) *RingTracer {
	switch t := tr.(type) {
	case *RingTracer:
		return t
	case *teeTracer:
		return t.ring
	}
	return nil
}
