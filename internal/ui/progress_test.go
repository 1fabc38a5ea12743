package ui

import (
	"strings"
	"testing"

	"abstractc/internal/driver"
)

func TestApplyEventTracksStatus(t *testing.T) {
	m := NewProgressModel("expand", []string{"a.swift", "b.swift"}, nil).(*progressModel)

	m.applyEvent(driver.Event{File: "a.swift", Stage: driver.StageExpand, Status: driver.StatusWorking})
	if got := m.items[0].status; got != "expanding" {
		t.Fatalf("status = %q, want expanding", got)
	}
	if got := m.percent(); got != 0.25 {
		t.Fatalf("percent = %v, want 0.25", got)
	}

	m.applyEvent(driver.Event{File: "a.swift", Stage: driver.StageRewrite, Status: driver.StatusDone})
	m.applyEvent(driver.Event{File: "b.swift", Stage: driver.StageParse, Status: driver.StatusError})
	m.applyEvent(driver.Event{File: "b.swift", Stage: driver.StageParse, Status: driver.StatusError})
	m.applyEvent(driver.Event{File: "unknown.swift", Status: driver.StatusDone})

	if m.failed != 1 {
		t.Fatalf("failed = %d, want 1", m.failed)
	}
	if got := m.percent(); got != 1 {
		t.Fatalf("percent = %v, want 1", got)
	}
}

func TestRunLevelEventSetsStageLabel(t *testing.T) {
	m := NewProgressModel("expand", []string{"a.swift"}, nil).(*progressModel)
	m.applyEvent(driver.Event{Stage: driver.StageRun, Status: driver.StatusWorking})
	if m.stageLabel != "running" {
		t.Fatalf("stageLabel = %q", m.stageLabel)
	}
}

func TestViewAfterDone(t *testing.T) {
	events := make(chan driver.Event)
	close(events)
	m := NewProgressModel("expand", []string{"a.swift"}, events).(*progressModel)
	m.applyEvent(driver.Event{File: "a.swift", Status: driver.StatusCached})

	msg := m.listenForEvent()()
	if _, ok := msg.(doneMsg); !ok {
		t.Fatalf("msg = %T, want doneMsg", msg)
	}
	m.Update(msg)

	view := m.View()
	for _, want := range []string{"done: expand", "cached", "a.swift"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short.swift", 20, "short.swift"},
		{"some/long/path/file.swift", 10, "some/lo..."},
		{"abcdef", 3, "abc"},
		{"日本語のファイル.swift", 9, "日本語..."},
		{"日本語のファイル.swift", 10, "日本語..."},
		{"abc", 0, "abc"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}
