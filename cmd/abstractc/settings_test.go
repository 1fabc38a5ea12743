package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseEmitKind(t *testing.T) {
	tests := []struct {
		in      string
		want    emitKind
		wantErr bool
	}{
		{"", emitSource, false},
		{"Source", emitSource, false},
		{"tree", emitTree, false},
		{" msgpack ", emitMsgpack, false},
		{"tokens", "", true},
	}
	for _, tt := range tests {
		got, err := parseEmitKind(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("parseEmitKind(%q) = %q, %v", tt.in, got, err)
		}
	}
}

func TestMergeManifest(t *testing.T) {
	m := &projectManifest{
		Root: "/proj",
		Config: projectConfig{
			Expand: expandConfig{Jobs: 4, MaxDiagnostics: 7, Emit: "tree"},
			Output: outputConfig{Dir: "out"},
			Cache:  cacheConfig{Enabled: true},
		},
	}

	t.Run("manifest fills unset flags", func(t *testing.T) {
		s := expandSettings{maxDiagnostics: 100, emit: emitSource}
		if err := s.mergeManifest(m, func(string) bool { return false }); err != nil {
			t.Fatal(err)
		}
		want := expandSettings{
			maxDiagnostics: 7,
			jobs:           4,
			emit:           emitTree,
			outDir:         filepath.Join("/proj", "out"),
			diskCache:      true,
		}
		if diff := cmp.Diff(want, s, cmp.AllowUnexported(expandSettings{})); diff != "" {
			t.Errorf("settings (-want +got):\n%s", diff)
		}
	})

	t.Run("explicit flags win", func(t *testing.T) {
		s := expandSettings{maxDiagnostics: 1, jobs: 2, emit: emitMsgpack, outDir: "x"}
		changed := map[string]bool{"max-diagnostics": true, "jobs": true, "emit": true, "output": true}
		if err := s.mergeManifest(m, func(name string) bool { return changed[name] }); err != nil {
			t.Fatal(err)
		}
		want := expandSettings{maxDiagnostics: 1, jobs: 2, emit: emitMsgpack, outDir: "x", diskCache: true}
		if diff := cmp.Diff(want, s, cmp.AllowUnexported(expandSettings{})); diff != "" {
			t.Errorf("settings (-want +got):\n%s", diff)
		}
	})

	t.Run("nil manifest", func(t *testing.T) {
		s := expandSettings{jobs: 3}
		if err := s.mergeManifest(nil, nil); err != nil || s.jobs != 3 {
			t.Errorf("s = %+v, err = %v", s, err)
		}
	})
}

func TestReadUIMode(t *testing.T) {
	for in, want := range map[string]uiMode{"": uiModeAuto, "AUTO": uiModeAuto, "on": uiModeOn, " off ": uiModeOff, "False": uiModeOff} {
		got, err := readUIMode(in)
		if err != nil || got != want {
			t.Errorf("readUIMode(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := readUIMode("sometimes"); err == nil {
		t.Error("expected error for invalid mode")
	}
	if !wantsProgressView(uiModeOn, emitSource, false, os.Stdout) || wantsProgressView(uiModeOff, emitSource, false, os.Stdout) {
		t.Error("explicit modes must not depend on the terminal")
	}
	if wantsProgressView(uiModeOn, emitTree, false, os.Stdout) {
		t.Error("progress view must stay off when the result goes to stdout")
	}
	if wantsProgressView(uiModeOn, emitSource, true, os.Stdout) {
		t.Error("--quiet must suppress the progress view")
	}
}

func TestBuildLogger(t *testing.T) {
	if _, err := buildLogger("loud", false); err == nil {
		t.Error("expected error for invalid level")
	}
	l, err := buildLogger("debug", true)
	if err != nil {
		t.Fatal(err)
	}
	if l.Core().Enabled(-1) {
		t.Error("quiet logger must not enable debug")
	}
}
