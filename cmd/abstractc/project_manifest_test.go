package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"abstractc/internal/driver"
	"abstractc/internal/source"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestFindManifestWalksUp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, manifestName), "[expand]\njobs = 2\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	m, ok, err := loadProjectManifest(nested)
	if err != nil || !ok {
		t.Fatalf("loadProjectManifest: ok=%v err=%v", ok, err)
	}
	if m.Root != root {
		t.Errorf("Root = %q, want %q", m.Root, root)
	}
	if m.Config.Expand.Jobs != 2 {
		t.Errorf("jobs = %d, want 2", m.Config.Expand.Jobs)
	}
}

func TestLoadProjectConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"syntax", "[expand\n", "failed to parse TOML"},
		{"unknown key", "[expand]\nworkers = 3\n", "unknown keys: expand.workers"},
		{"negative jobs", "[expand]\njobs = -1\n", "[expand].jobs must be >= 0"},
		{"bad emit", "[expand]\nemit = \"yaml\"\n", "invalid emit value"},
		{"bad trace level", "[trace]\nlevel = \"loud\"\n", "[trace].level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), manifestName)
			writeFile(t, path, tt.content)
			_, err := loadProjectConfig(path)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("err = %v, want substring %q", err, tt.wantErr)
			}
		})
	}
}

func TestInitProject(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "demo")

	created, err := initProject(dir)
	if err != nil {
		t.Fatalf("initProject: %v", err)
	}
	if diff := cmp.Diff([]string{manifestName, "main.swift"}, created); diff != "" {
		t.Errorf("created (-want +got):\n%s", diff)
	}

	cfg, err := loadProjectConfig(filepath.Join(dir, manifestName))
	if err != nil {
		t.Fatalf("written manifest does not load: %v", err)
	}
	if diff := cmp.Diff(defaultProjectConfig(), cfg); diff != "" {
		t.Errorf("config (-want +got):\n%s", diff)
	}

	if _, err := initProject(dir); err == nil || !strings.Contains(err.Error(), "already initialized") {
		t.Errorf("second init err = %v", err)
	}
}

func TestDefaultMainSourceRuns(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.swift")
	writeFile(t, path, defaultMainSource)

	var out bytes.Buffer
	res, err := driver.Run(context.Background(), source.NewFileSet(), path, &out, driver.Options{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Bag.Len() != 0 {
		t.Errorf("unexpected diagnostics: %d", res.Bag.Len())
	}
	if got := out.String(); got != "I am a square\n" {
		t.Errorf("output = %q", got)
	}
}
