package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

type emitKind string

const (
	emitSource  emitKind = "source"
	emitTree    emitKind = "tree"
	emitMsgpack emitKind = "msgpack"
)

func parseEmitKind(value string) (emitKind, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "source":
		return emitSource, nil
	case "tree":
		return emitTree, nil
	case "msgpack":
		return emitMsgpack, nil
	default:
		return "", fmt.Errorf("invalid emit value %q (expected source|tree|msgpack)", value)
	}
}

// expandSettings — итоговые настройки после слияния флагов и abstractc.toml.
type expandSettings struct {
	maxDiagnostics int
	jobs           int
	emit           emitKind
	outDir         string
	diskCache      bool
}

// mergeManifest fills every setting whose flag was not given explicitly
// from cfg. changed reports whether a flag was set on the command line.
func (s *expandSettings) mergeManifest(m *projectManifest, changed func(name string) bool) error {
	if m == nil {
		return nil
	}
	cfg := m.Config
	if !changed("max-diagnostics") && cfg.Expand.MaxDiagnostics > 0 {
		s.maxDiagnostics = cfg.Expand.MaxDiagnostics
	}
	if !changed("jobs") && cfg.Expand.Jobs > 0 {
		s.jobs = cfg.Expand.Jobs
	}
	if !changed("emit") && cfg.Expand.Emit != "" {
		kind, err := parseEmitKind(cfg.Expand.Emit)
		if err != nil {
			return err
		}
		s.emit = kind
	}
	if !changed("output") && cfg.Output.Dir != "" {
		s.outDir = m.resolve(cfg.Output.Dir)
	}
	if !changed("disk-cache") && cfg.Cache.Enabled {
		s.diskCache = true
	}
	return nil
}

// readExpandSettings collects the flags shared by expand, diag and run.
// Flags a command does not define keep their zero value.
func readExpandSettings(cmd *cobra.Command) (expandSettings, error) {
	var s expandSettings
	var err error

	s.maxDiagnostics, err = cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return s, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	flags := cmd.Flags()
	if flags.Lookup("jobs") != nil {
		if s.jobs, err = flags.GetInt("jobs"); err != nil {
			return s, fmt.Errorf("failed to get jobs flag: %w", err)
		}
	}
	if flags.Lookup("emit") != nil {
		emit, err := flags.GetString("emit")
		if err != nil {
			return s, fmt.Errorf("failed to get emit flag: %w", err)
		}
		if s.emit, err = parseEmitKind(emit); err != nil {
			return s, err
		}
	}
	if flags.Lookup("output") != nil {
		if s.outDir, err = flags.GetString("output"); err != nil {
			return s, fmt.Errorf("failed to get output flag: %w", err)
		}
	}
	if flags.Lookup("disk-cache") != nil {
		if s.diskCache, err = flags.GetBool("disk-cache"); err != nil {
			return s, fmt.Errorf("failed to get disk-cache flag: %w", err)
		}
	}

	changed := func(name string) bool {
		if f := flags.Lookup(name); f != nil {
			return f.Changed
		}
		return false
	}
	if err := s.mergeManifest(manifest, changed); err != nil {
		return s, err
	}
	return s, nil
}
