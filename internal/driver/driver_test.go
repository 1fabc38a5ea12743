package driver

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"

	"abstractc/internal/diag"
	"abstractc/internal/observ"
	"abstractc/internal/source"
	"abstractc/internal/vm"
)

const misplaced = "@abstract\nfunc f() {}\n"

func readFixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("..", "..", "testdata", name))
	if err != nil {
		t.Fatalf("read %s: %v", name, err)
	}
	return data
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestExpandSourceClientGolden(t *testing.T) {
	timer := observ.NewTimer()
	res, err := ExpandSource(context.Background(), source.NewFileSet(), "client.swift", readFixture(t, "client.swift"), Options{Timer: timer})
	if err != nil {
		t.Fatalf("ExpandSource: %v", err)
	}
	if res.Failed() {
		t.Fatalf("unexpected diagnostics: %+v", res.Bag.Items())
	}
	if diff := cmp.Diff(string(readFixture(t, "client.expanded.swift")), string(res.Output)); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
	if len(res.Expansions) != 4 {
		t.Errorf("expansions = %d, want 4", len(res.Expansions))
	}
	if res.Expanded == nil || res.Tree == nil {
		t.Fatalf("trees must be set on success")
	}
	var names []string
	for _, p := range timer.Report().Phases {
		names = append(names, p.Name)
	}
	if diff := cmp.Diff([]string{"parse", "expand", "rewrite"}, names); diff != "" {
		t.Errorf("phases (-want +got):\n%s", diff)
	}
}

func TestExpandSourceErrorKeepsOriginal(t *testing.T) {
	res, err := ExpandSource(context.Background(), source.NewFileSet(), "bad.swift", []byte(misplaced), Options{})
	if err != nil {
		t.Fatalf("ExpandSource: %v", err)
	}
	if !res.Failed() {
		t.Fatalf("expected errors")
	}
	if string(res.Output) != misplaced {
		t.Errorf("output = %q, want original", res.Output)
	}
	if res.Expanded != nil {
		t.Errorf("Expanded must be nil on errors")
	}
	items := res.Bag.Items()
	if len(items) != 1 || items[0].Code != diag.AbstractOutsideClass {
		t.Errorf("diagnostics = %+v", items)
	}
}

func TestDeclJobsMatchesSequential(t *testing.T) {
	defer goleak.VerifyNone(t)
	src := readFixture(t, "client.swift")
	seq, err := ExpandSource(context.Background(), source.NewFileSet(), "c.swift", src, Options{})
	if err != nil {
		t.Fatal(err)
	}
	par, err := ExpandSource(context.Background(), source.NewFileSet(), "c.swift", src, Options{DeclJobs: 4})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(string(seq.Output), string(par.Output)); diff != "" {
		t.Errorf("parallel output differs (-seq +par):\n%s", diff)
	}
}

func TestDiskCache(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatalf("OpenDiskCacheAt: %v", err)
	}
	ctx := context.Background()

	for _, src := range []string{string(readFixture(t, "client.swift")), "class A {\n" + misplaced + "}\n"} {
		first, err := ExpandSource(ctx, source.NewFileSet(), "f.swift", []byte(src), Options{Cache: cache})
		if err != nil {
			t.Fatal(err)
		}
		if first.Cached {
			t.Fatalf("first run must miss the cache")
		}
		second, err := ExpandSource(ctx, source.NewFileSet(), "f.swift", []byte(src), Options{Cache: cache})
		if err != nil {
			t.Fatal(err)
		}
		if !second.Cached {
			t.Fatalf("second run must hit the cache")
		}
		if !bytes.Equal(first.Output, second.Output) {
			t.Errorf("cached output differs:\n%s\n---\n%s", first.Output, second.Output)
		}
		if diff := cmp.Diff(first.Bag.Items(), second.Bag.Items()); diff != "" {
			t.Errorf("cached diagnostics differ (-fresh +cached):\n%s", diff)
		}

		tree, err := ExpandSource(ctx, source.NewFileSet(), "f.swift", []byte(src), Options{Cache: cache, NeedTree: true})
		if err != nil {
			t.Fatal(err)
		}
		if tree.Cached || tree.Tree == nil {
			t.Errorf("NeedTree must bypass the cache")
		}
	}

	if err := cache.DropAll(); err != nil {
		t.Fatalf("DropAll: %v", err)
	}
	again, err := ExpandSource(ctx, source.NewFileSet(), "f.swift", readFixture(t, "client.swift"), Options{Cache: cache})
	if err != nil {
		t.Fatal(err)
	}
	if again.Cached {
		t.Errorf("DropAll must invalidate entries")
	}
}

type recordingSink struct {
	mu     sync.Mutex
	events []Event
}

func (s *recordingSink) OnEvent(ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

func (s *recordingSink) final() map[string]Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]Status)
	for _, ev := range s.events {
		out[ev.File] = ev.Status
	}
	return out
}

func TestExpandDir(t *testing.T) {
	defer goleak.VerifyNone(t)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.swift"), "@abstractClass\nclass A {}\n")
	writeFile(t, filepath.Join(dir, "b.swift"), misplaced)
	writeFile(t, filepath.Join(dir, "sub", "c.swift"), "class C {}\n")
	writeFile(t, filepath.Join(dir, "a.expanded.swift"), "ignored")
	writeFile(t, filepath.Join(dir, ".hidden", "d.swift"), "ignored")
	writeFile(t, filepath.Join(dir, "notes.txt"), "ignored")

	sink := &recordingSink{}
	_, results, err := ExpandDir(context.Background(), dir, Options{Jobs: 2, Progress: sink})
	if err != nil {
		t.Fatalf("ExpandDir: %v", err)
	}

	var got []string
	for _, r := range results {
		rel, _ := filepath.Rel(dir, r.Path)
		got = append(got, filepath.ToSlash(rel))
	}
	if diff := cmp.Diff([]string{"a.swift", "b.swift", "sub/c.swift"}, got); diff != "" {
		t.Fatalf("files (-want +got):\n%s", diff)
	}

	wantA := "class A {\n    init() {\n        if type(of: self) == A.self {\n            fatalError(\"Cannot instantiate abstract class 'A' directly\")\n        }\n    }\n}\n"
	if string(results[0].Output) != wantA {
		t.Errorf("a.swift output:\n%s", results[0].Output)
	}
	if !results[1].Failed() || string(results[1].Output) != misplaced {
		t.Errorf("b.swift must fail and keep its source")
	}
	if results[2].Failed() || string(results[2].Output) != "class C {}\n" {
		t.Errorf("c.swift must pass through unchanged: %q", results[2].Output)
	}

	final := sink.final()
	for i, want := range []Status{StatusDone, StatusError, StatusDone} {
		if final[results[i].Path] != want {
			t.Errorf("%s final status = %s, want %s", results[i].Path, final[results[i].Path], want)
		}
	}
}

func TestExpandDirCancelled(t *testing.T) {
	defer goleak.VerifyNone(t)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.swift"), "class A {}\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, _, err := ExpandDir(ctx, dir, Options{}); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestOutputPath(t *testing.T) {
	base := filepath.FromSlash("/src")
	tests := []struct {
		name    string
		src     string
		out     string
		want    string
		wantErr error
	}{
		{"next to source", "/src/a.swift", "", "/src/a.expanded.swift", nil},
		{"mirrored", "/src/sub/a.swift", "/out", "/out/sub/a.swift", nil},
		{"outside base", "/elsewhere/a.swift", "/out", "", ErrOutsideBase},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := OutputPath(filepath.FromSlash(tt.src), base, filepath.FromSlash(tt.out))
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if filepath.ToSlash(got) != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWriteOutput(t *testing.T) {
	dir := t.TempDir()
	res := &Result{Path: filepath.Join(dir, "pkg", "a.swift"), Output: []byte("class A {}\n"), Bag: diag.NewBag(0)}
	out := filepath.Join(dir, "out")
	dst, err := WriteOutput(res, dir, out)
	if err != nil {
		t.Fatalf("WriteOutput: %v", err)
	}
	if dst != filepath.Join(out, "pkg", "a.swift") {
		t.Errorf("dst = %s", dst)
	}
	data, err := os.ReadFile(dst)
	if err != nil || string(data) != "class A {}\n" {
		t.Errorf("written = %q, %v", data, err)
	}
}

func TestArtifact(t *testing.T) {
	res, err := ExpandSource(context.Background(), source.NewFileSet(), "client.swift", readFixture(t, "client.swift"), Options{NeedTree: true})
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := EncodeArtifact(&buf, res); err != nil {
		t.Fatalf("EncodeArtifact: %v", err)
	}
	art, err := DecodeArtifact(&buf)
	if err != nil {
		t.Fatalf("DecodeArtifact: %v", err)
	}
	if art.Path != "client.swift" || art.Failed || art.Output != string(res.Output) {
		t.Errorf("artifact = %+v", art)
	}
	if art.Tree == nil || len(art.Tree.Decls) != len(res.Expanded.Decls) {
		t.Fatalf("tree was not carried over")
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	client := filepath.Join(dir, "client.swift")
	writeFile(t, client, string(readFixture(t, "client.swift")))
	trap := filepath.Join(dir, "trap.swift")
	writeFile(t, trap, "@abstractClass\nclass Shape {}\nlet s = Shape()\n")
	bad := filepath.Join(dir, "bad.swift")
	writeFile(t, bad, misplaced)

	var out bytes.Buffer
	if _, err := Run(context.Background(), source.NewFileSet(), client, &out, Options{}); err != nil {
		t.Fatalf("Run(client): %v", err)
	}
	if out.String() != "Car started\n" {
		t.Errorf("client output = %q", out.String())
	}

	_, err := Run(context.Background(), source.NewFileSet(), trap, &out, Options{})
	var fatal *vm.FatalError
	if !errors.As(err, &fatal) || fatal.Message != "Cannot instantiate abstract class 'Shape' directly" {
		t.Errorf("Run(trap) err = %v", err)
	}

	res, err := Run(context.Background(), source.NewFileSet(), bad, &out, Options{})
	if !errors.Is(err, ErrHasErrors) || res == nil || res.Bag.Len() != 1 {
		t.Errorf("Run(bad) = %v, %v", res, err)
	}
}
