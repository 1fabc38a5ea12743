package diag

import (
	"strings"
	"testing"

	"abstractc/internal/source"
)

func TestBagLimitAndSort(t *testing.T) {
	bag := NewBag(2)
	r := BagReporter{Bag: bag}
	r.Report(AbstractOutsideClass, SevError, source.Span{Start: 20, End: 29}, "late", nil, nil)
	r.Report(AbstractInitOutsideClass, SevError, source.Span{Start: 3, End: 16}, "early", nil, nil)
	r.Report(AbstractOnNonFunction, SevError, source.Span{Start: 1, End: 2}, "dropped", nil, nil)

	if bag.Len() != 2 {
		t.Fatalf("Len = %d, want 2", bag.Len())
	}
	bag.Sort()
	if got := bag.Items()[0].Message; got != "early" {
		t.Errorf("first after sort = %q, want early", got)
	}
	if !bag.HasErrors() {
		t.Errorf("expected HasErrors")
	}
}

func TestUnlimitedBag(t *testing.T) {
	bag := NewBag(0)
	for i := 0; i < 200; i++ {
		if !bag.Add(NewError(AbstractOutsideClass, source.Span{}, "x")) {
			t.Fatalf("Add #%d rejected by unlimited bag", i)
		}
	}
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(10)
	r := NewDedupReporter(BagReporter{Bag: bag})
	sp := source.Span{File: 0, Start: 4, End: 13}
	ReportError(r, AbstractOutsideAbstractClass, sp, AbstractOutsideAbstractClass.Title()).Emit()
	ReportError(r, AbstractOutsideAbstractClass, sp, AbstractOutsideAbstractClass.Title()).Emit()
	if bag.Len() != 1 {
		t.Fatalf("Len = %d, want 1", bag.Len())
	}
}

func TestReportBuilderEmitsOnce(t *testing.T) {
	bag := NewBag(10)
	b := ReportError(BagReporter{Bag: bag}, AbstractOnNonFunction, source.Span{}, "m").
		WithNote(source.Span{Start: 1, End: 2}, "declared here")
	b.Emit()
	b.Emit()
	if bag.Len() != 1 {
		t.Fatalf("Len = %d, want 1", bag.Len())
	}
	if n := len(bag.Items()[0].Notes); n != 1 {
		t.Errorf("notes = %d, want 1", n)
	}
}

func TestCodeNames(t *testing.T) {
	tests := []struct {
		code Code
		name string
		id   string
	}{
		{AbstractInitOnNonInitializer, "abstractInitOnNonInitializer", "MAC3001"},
		{AbstractInitOutsideClass, "abstractInitOutsideClass", "MAC3002"},
		{AbstractInitOutsideAbstractClass, "abstractInitOutsideAbstractClass", "MAC3003"},
		{AbstractOnNonFunction, "abstractOnNonFunction", "MAC3004"},
		{AbstractOutsideClass, "abstractOutsideClass", "MAC3005"},
		{AbstractOutsideAbstractClass, "abstractOutsideAbstractClass", "MAC3006"},
		{SynUnexpectedToken, "SYN2001", "SYN2001"},
	}
	for _, tt := range tests {
		if got := tt.code.Name(); got != tt.name {
			t.Errorf("Name(%d) = %q, want %q", tt.code, got, tt.name)
		}
		if got := tt.code.ID(); got != tt.id {
			t.Errorf("ID(%d) = %q, want %q", tt.code, got, tt.id)
		}
	}
	if c, ok := CodeByName("abstractOutsideClass"); !ok || c != AbstractOutsideClass {
		t.Errorf("CodeByName = %v,%v", c, ok)
	}
	d := NewError(AbstractOutsideClass, source.Span{}, "")
	if got := d.QualifiedID(); got != "abstract.abstractOutsideClass" {
		t.Errorf("QualifiedID = %q", got)
	}
}

func TestFormatShortDiagnostics(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("v.swift", []byte("class V {\n  @abstract func f() {}\n}"))
	d := NewError(AbstractOutsideAbstractClass, source.Span{File: id, Start: 12, End: 21}, AbstractOutsideAbstractClass.Title())
	got := FormatShortDiagnostics([]Diagnostic{d}, fs, false)
	want := "v.swift:2:3: ERROR abstractOutsideAbstractClass: @abstract can only be used inside @abstractClass\n"
	if got != want {
		t.Errorf("got %q\nwant %q", got, want)
	}
	if !strings.HasSuffix(got, "\n") {
		t.Errorf("missing trailing newline")
	}
}

func TestSeverityOf(t *testing.T) {
	for b, want := range map[uint8]Severity{0: SevInfo, 1: SevWarning, 2: SevError, 7: SevError, 255: SevError} {
		if got := SeverityOf(b); got != want {
			t.Errorf("SeverityOf(%d) = %v, want %v", b, got, want)
		}
	}
	if SevError.String() != "ERROR" || Severity(9).String() != "UNKNOWN" {
		t.Errorf("labels: %s %s", SevError, Severity(9))
	}
}
