package version

import (
	"strings"
	"testing"
)

func TestPlain(t *testing.T) {
	orig := Suffix
	defer func() { Suffix = orig }()

	tests := []struct {
		suffix string
		want   string
	}{
		{"dev", "0.1.0-dev"},
		{"", "0.1.0"},
		{"rc.1", "0.1.0-rc.1"},
	}
	for _, tt := range tests {
		Suffix = tt.suffix
		if got := Plain(); got != tt.want {
			t.Errorf("Plain() with suffix %q = %q, want %q", tt.suffix, got, tt.want)
		}
	}
}

func TestColored(t *testing.T) {
	if got := Colored(false); got != Plain() {
		t.Errorf("Colored(false) = %q, want %q", got, Plain())
	}
	if got := Colored(true); !strings.Contains(got, "\x1b[") {
		t.Errorf("Colored(true) has no escape codes: %q", got)
	}
}

func TestDescribe(t *testing.T) {
	origCommit, origDate := GitCommit, BuildDate
	defer func() { GitCommit, BuildDate = origCommit, origDate }()

	GitCommit, BuildDate = "", ""
	if got := Describe(false); got != "abstractc "+Plain() {
		t.Errorf("Describe = %q", got)
	}

	GitCommit, BuildDate = "abc123", "2024-01-15"
	got := Describe(false)
	for _, want := range []string{"commit: abc123", "built:  2024-01-15"} {
		if !strings.Contains(got, want) {
			t.Errorf("Describe = %q, missing %q", got, want)
		}
	}
}
