package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"abstractc/internal/trace"
)

const manifestName = "abstractc.toml"

type projectManifest struct {
	Path   string
	Root   string
	Config projectConfig
}

type projectConfig struct {
	Expand expandConfig `toml:"expand"`
	Output outputConfig `toml:"output"`
	Trace  traceConfig  `toml:"trace"`
	Cache  cacheConfig  `toml:"cache"`
}

type expandConfig struct {
	Jobs           int    `toml:"jobs"`
	MaxDiagnostics int    `toml:"max_diagnostics"`
	Emit           string `toml:"emit"`
}

type outputConfig struct {
	Dir string `toml:"dir"`
}

type traceConfig struct {
	Level  string `toml:"level"`
	Output string `toml:"output"`
}

type cacheConfig struct {
	Enabled bool `toml:"enabled"`
}

func defaultProjectConfig() projectConfig {
	return projectConfig{
		Expand: expandConfig{Jobs: 0, MaxDiagnostics: 100, Emit: "source"},
		Output: outputConfig{Dir: "expanded"},
		Trace:  traceConfig{Level: "off"},
		Cache:  cacheConfig{Enabled: false},
	}
}

// resolve makes a manifest-relative path absolute.
func (m *projectManifest) resolve(p string) string {
	if p == "" || p == "-" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(m.Root, filepath.FromSlash(p))
}

func findManifest(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, manifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

func loadProjectManifest(startDir string) (*projectManifest, bool, error) {
	manifestPath, ok, err := findManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := loadProjectConfig(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return &projectManifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}

func loadProjectConfig(path string) (projectConfig, error) {
	var cfg projectConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return projectConfig{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return projectConfig{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if meta.IsDefined("expand", "jobs") && cfg.Expand.Jobs < 0 {
		return projectConfig{}, fmt.Errorf("%s: [expand].jobs must be >= 0", path)
	}
	if meta.IsDefined("expand", "max_diagnostics") && cfg.Expand.MaxDiagnostics < 0 {
		return projectConfig{}, fmt.Errorf("%s: [expand].max_diagnostics must be >= 0", path)
	}
	if meta.IsDefined("expand", "emit") {
		if _, err := parseEmitKind(cfg.Expand.Emit); err != nil {
			return projectConfig{}, fmt.Errorf("%s: [expand].emit: %w", path, err)
		}
	}
	if meta.IsDefined("trace", "level") {
		if _, err := trace.ParseLevel(cfg.Trace.Level); err != nil {
			return projectConfig{}, fmt.Errorf("%s: [trace].level: %w", path, err)
		}
	}
	return cfg, nil
}
