package vm

import (
	"fmt"
	"strings"

	"abstractc/internal/source"
)

// PanicCode identifies the type of VM panic.
type PanicCode int

// Stable panic codes - do not change values.
const (
	PanicUnknownName   PanicCode = 1001 // VM1001: неизвестная переменная, класс или функция
	PanicUnknownMethod PanicCode = 1002 // VM1002: метод не найден в цепочке классов
	PanicNoInitializer PanicCode = 1003 // VM1003: нет подходящего init
	PanicTypeMismatch  PanicCode = 1004 // VM1004: операция над значением не того вида
	PanicStackOverflow PanicCode = 1005 // VM1005: слишком глубокая рекурсия
	PanicSyntax        PanicCode = 1006 // VM1006: оператор не разобрался
	PanicUnimplemented PanicCode = 1999 // VM1999: конструкция вне поддерживаемого подмножества
)

func (c PanicCode) String() string {
	return fmt.Sprintf("VM%d", c)
}

// BacktraceFrame represents one frame in the backtrace.
type BacktraceFrame struct {
	FuncName string
	Span     source.Span
}

// VMError is an internal failure: the program left the supported subset or
// referenced something that does not exist.
type VMError struct {
	Code      PanicCode
	Message   string
	Span      source.Span
	Backtrace []BacktraceFrame
}

func (p *VMError) Error() string {
	return fmt.Sprintf("panic %s: %s", p.Code, p.Message)
}

// FatalError is a program trap: a fired construction guard, an abstract
// method stub, or an explicit fatalError call. It is not recoverable.
type FatalError struct {
	Message   string
	Span      source.Span
	Backtrace []BacktraceFrame
}

func (f *FatalError) Error() string {
	return "Fatal error: " + f.Message
}

// FormatWithFiles renders a VM failure with resolved file:line:col locations.
func FormatWithFiles(err error, files *source.FileSet) string {
	var (
		sb    strings.Builder
		span  source.Span
		trace []BacktraceFrame
	)
	switch e := err.(type) {
	case *FatalError:
		span, trace = e.Span, e.Backtrace
	case *VMError:
		span, trace = e.Span, e.Backtrace
	default:
		return err.Error() + "\n"
	}
	sb.WriteString(err.Error() + "\n")
	sb.WriteString("at " + formatSpan(span, files) + "\n")
	if len(trace) > 0 {
		sb.WriteString("backtrace:\n")
		for i, frame := range trace {
			fmt.Fprintf(&sb, "  %d: %s at %s\n", i, frame.FuncName, formatSpan(frame.Span, files))
		}
	}
	return sb.String()
}

func formatSpan(span source.Span, files *source.FileSet) string {
	if files == nil || (span.Start == 0 && span.End == 0) {
		return "<no-span>"
	}
	file := files.Get(span.File)
	if file == nil {
		return "<no-span>"
	}
	start, _ := files.Resolve(span)
	return fmt.Sprintf("%s:%d:%d", file.Path, start.Line, start.Col)
}

func (vm *VM) backtrace() []BacktraceFrame {
	out := make([]BacktraceFrame, len(vm.Stack))
	for i := len(vm.Stack) - 1; i >= 0; i-- {
		f := vm.Stack[i]
		out[len(vm.Stack)-1-i] = BacktraceFrame{FuncName: f.Name, Span: f.Span}
	}
	return out
}

func (vm *VM) currentSpan() source.Span {
	if len(vm.Stack) == 0 {
		return source.Span{}
	}
	return vm.Stack[len(vm.Stack)-1].Span
}

func (vm *VM) errorf(code PanicCode, format string, args ...any) *VMError {
	return &VMError{
		Code:      code,
		Message:   fmt.Sprintf(format, args...),
		Span:      vm.currentSpan(),
		Backtrace: vm.backtrace(),
	}
}

func (vm *VM) fatal(msg string) *FatalError {
	return &FatalError{Message: msg, Span: vm.currentSpan(), Backtrace: vm.backtrace()}
}
