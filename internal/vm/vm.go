package vm

import (
	"context"
	"io"
	"os"
	"strconv"

	"abstractc/internal/ast"
	"abstractc/internal/diag"
	"abstractc/internal/lexer"
	"abstractc/internal/source"
	"abstractc/internal/token"
	"abstractc/internal/trace"
)

// Options configures a VM.
type Options struct {
	Out      io.Writer // print target; os.Stdout if nil
	MaxDepth int       // call depth limit; 0 means 512
}

// Frame is an activation record: a method, an initializer or the top level.
type Frame struct {
	Name   string
	Span   source.Span
	Self   *Object
	Class  *Class // класс, чей код исполняется (для super)
	Locals map[string]Value

	calledInit bool // тело уже делегировало super.init/self.init
	returned   bool
	ret        Value
}

// VM executes one expanded file.
type VM struct {
	opts    Options
	Classes map[string]*Class
	Funcs   map[string]*ast.Decl
	Globals map[string]Value
	Stack   []*Frame

	scratch *source.FileSet
	toks    map[string][]token.Token
}

func New(opts Options) *VM {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = 512
	}
	return &VM{
		opts:    opts,
		Classes: make(map[string]*Class),
		Funcs:   make(map[string]*ast.Decl),
		Globals: make(map[string]Value),
		scratch: source.NewFileSet(),
		toks:    make(map[string][]token.Token),
	}
}

// Run loads the declarations of file and executes its top-level statements
// in order. A trap is returned as *FatalError, anything outside the supported
// subset as *VMError.
func (vm *VM) Run(ctx context.Context, file *ast.File) error {
	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "run", trace.CurrentSpan(ctx).SpanID)
	defer span.End("")

	vm.Load(file)
	main := &Frame{Name: "<main>", Locals: vm.Globals}
	vm.Stack = append(vm.Stack, main)
	defer func() { vm.Stack = vm.Stack[:0] }()

	for _, d := range file.Decls {
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.Kind != ast.DeclOther {
			continue
		}
		switch d.Keyword {
		case "let", "var", "":
			main.Span = d.Span
			if err := vm.execStmt(main, d.Text); err != nil {
				return err
			}
		}
	}
	return nil
}

// Load registers classes (nested ones under their qualified name as well)
// and top-level functions, then links parents by name.
func (vm *VM) Load(file *ast.File) {
	var register func(decls []*ast.Decl, prefix string)
	register = func(decls []*ast.Decl, prefix string) {
		for _, d := range decls {
			switch {
			case d.Kind == ast.DeclClass:
				c := newClass(d, d.Name)
				vm.Classes[prefix+d.Name] = c
				if _, taken := vm.Classes[d.Name]; !taken {
					vm.Classes[d.Name] = c
				}
				register(d.Members, prefix+d.Name+".")
			case d.Kind == ast.DeclMethod && prefix == "":
				vm.Funcs[d.Name] = d
			}
		}
	}
	register(file.Decls, "")
	for _, c := range vm.Classes {
		if p := c.Decl.Parent(); p != "" {
			c.Parent = vm.Classes[p] // протоколы и внешние типы просто не находятся
		}
	}
}

func (vm *VM) push(f *Frame) error {
	if len(vm.Stack) >= vm.opts.MaxDepth {
		return vm.errorf(PanicStackOverflow, "call depth exceeds %d", vm.opts.MaxDepth)
	}
	vm.Stack = append(vm.Stack, f)
	return nil
}

func (vm *VM) pop() {
	vm.Stack = vm.Stack[:len(vm.Stack)-1]
}

// execBody runs statements until the end or a return.
func (vm *VM) execBody(f *Frame, body *ast.Body) error {
	if body == nil {
		return vm.errorf(PanicUnimplemented, "%s has no body", f.Name)
	}
	for _, s := range body.Stmts {
		if !s.Span.Empty() {
			f.Span = s.Span
		}
		switch s.Kind {
		case ast.StmtGuard:
			target, ok := vm.Classes[s.Class]
			if !ok {
				return vm.errorf(PanicUnknownName, "unknown class %q in guard", s.Class)
			}
			// точное сравнение идентичности класса, не IsSubclassOf
			if f.Self != nil && f.Self.Class == target {
				return vm.fatal(s.Message)
			}
		case ast.StmtFatal:
			return vm.fatal(s.Message)
		default:
			if err := vm.execStmt(f, s.Text); err != nil {
				return err
			}
		}
		if f.returned {
			break
		}
	}
	return nil
}

// Construct allocates an instance of cls and runs its initializer chain.
func (vm *VM) Construct(cls *Class, args []Arg) (*Object, error) {
	obj := &Object{Class: cls, Fields: make(map[string]Value)}
	if err := vm.initFields(obj); err != nil {
		return nil, err
	}
	if err := vm.runInit(obj, cls, args); err != nil {
		return nil, err
	}
	return obj, nil
}

// initFields вычисляет значения по умолчанию хранимых свойств, от корня к листу.
func (vm *VM) initFields(obj *Object) error {
	var chain []*Class
	for c := obj.Class; c != nil; c = c.Parent {
		chain = append(chain, c)
	}
	for i := len(chain) - 1; i >= 0; i-- {
		c := chain[i]
		for _, fd := range c.Fields {
			parts := splitTopLevel(fd.Text, '=')
			if len(parts) < 2 || fd.Name == "" {
				obj.Fields[fd.Name] = Value{}
				continue
			}
			f := &Frame{Name: c.Name + "." + fd.Name, Span: fd.Span, Self: obj, Class: c, Locals: map[string]Value{}}
			if err := vm.push(f); err != nil {
				return err
			}
			v, err := vm.evalText(f, parts[len(parts)-1])
			vm.pop()
			if err != nil {
				return err
			}
			obj.Fields[fd.Name] = v
		}
	}
	return nil
}

// runInit selects the initializer of cls matching args. A class without
// initializers inherits its parent's; a designated initializer that does not
// delegate explicitly ends with an implicit super.init().
func (vm *VM) runInit(obj *Object, cls *Class, args []Arg) error {
	ctor := cls.findInit(labelsOf(args))
	if ctor == nil {
		if len(cls.Inits) == 0 {
			if cls.Parent != nil {
				return vm.runInit(obj, cls.Parent, args)
			}
			if len(args) == 0 {
				return nil
			}
		}
		return vm.errorf(PanicNoInitializer, "%s has no initializer init(%s)", cls.Name, labelList(args))
	}
	f := &Frame{Name: cls.Name + ".init", Span: ctor.Span, Self: obj, Class: cls}
	if err := vm.bindParams(f, ctor, args); err != nil {
		return err
	}
	if err := vm.push(f); err != nil {
		return err
	}
	err := vm.execBody(f, ctor.Body)
	vm.pop()
	if err != nil {
		return err
	}
	if !f.calledInit && cls.Parent != nil {
		return vm.runInit(obj, cls.Parent, nil)
	}
	return nil
}

// CallMethod dispatches name starting at from (dynamic: obj.Class; super: parent).
func (vm *VM) CallMethod(obj *Object, from *Class, name string, args []Arg) (Value, error) {
	decl, owner := from.LookupMethod(name)
	if decl == nil {
		return Value{}, vm.errorf(PanicUnknownMethod, "%s has no method %q", from.Name, name)
	}
	f := &Frame{Name: owner.Name + "." + name, Span: decl.Span, Self: obj, Class: owner}
	return vm.invoke(f, decl, args)
}

func (vm *VM) callFunc(decl *ast.Decl, args []Arg) (Value, error) {
	return vm.invoke(&Frame{Name: decl.Name, Span: decl.Span}, decl, args)
}

func (vm *VM) invoke(f *Frame, decl *ast.Decl, args []Arg) (Value, error) {
	if err := vm.bindParams(f, decl, args); err != nil {
		return Value{}, err
	}
	if err := vm.push(f); err != nil {
		return Value{}, err
	}
	defer vm.pop()
	if err := vm.execBody(f, decl.Body); err != nil {
		return Value{}, err
	}
	return f.ret, nil
}

func (vm *VM) bindParams(f *Frame, decl *ast.Decl, args []Arg) error {
	params := paramsOf(decl)
	if !sameLabels(params, labelsOf(args)) {
		return vm.errorf(PanicNoInitializer, "%s expects (%s), got (%s)", f.Name, paramLabels(params), labelList(args))
	}
	f.Locals = make(map[string]Value, len(params))
	for i, p := range params {
		if i < len(args) {
			f.Locals[p.Name] = args[i].Value
			continue
		}
		v, err := vm.evalText(f, p.Default)
		if err != nil {
			return err
		}
		f.Locals[p.Name] = v
	}
	return nil
}

// tokens лексирует текст оператора; результат кешируется по тексту.
func (vm *VM) tokens(text string) ([]token.Token, error) {
	if toks, ok := vm.toks[text]; ok {
		return toks, nil
	}
	file := vm.scratch.Get(vm.scratch.AddVirtual("<stmt:"+strconv.Itoa(len(vm.toks))+">", []byte(text)))
	bag := diag.NewBag(1)
	toks := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}}).All()
	if bag.HasErrors() {
		return nil, vm.errorf(PanicSyntax, "%s in %q", bag.Items()[0].Message, text)
	}
	vm.toks[text] = toks
	return toks, nil
}
