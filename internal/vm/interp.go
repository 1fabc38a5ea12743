package vm

import (
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"abstractc/internal/token"
)

// Arg is a call argument with its label ("" when unlabeled).
type Arg struct {
	Label string
	Value Value
}

func labelsOf(args []Arg) []string {
	out := make([]string, len(args))
	for i, a := range args {
		out[i] = a.Label
	}
	return out
}

func labelList(args []Arg) string {
	return joinLabels(labelsOf(args))
}

func paramLabels(params []param) string {
	labels := make([]string, len(params))
	for i, p := range params {
		labels[i] = p.Label
	}
	return joinLabels(labels)
}

func joinLabels(labels []string) string {
	var sb strings.Builder
	for _, l := range labels {
		if l == "" {
			l = "_"
		}
		sb.WriteString(l + ":")
	}
	return sb.String()
}

// interp разбирает и сразу исполняет один оператор или выражение.
type interp struct {
	vm    *VM
	frame *Frame
	toks  []token.Token
	pos   int
}

func (vm *VM) newInterp(f *Frame, text string) (*interp, error) {
	toks, err := vm.tokens(text)
	if err != nil {
		return nil, err
	}
	return &interp{vm: vm, frame: f, toks: toks}, nil
}

// evalText evaluates a complete expression.
func (vm *VM) evalText(f *Frame, text string) (Value, error) {
	in, err := vm.newInterp(f, text)
	if err != nil {
		return Value{}, err
	}
	v, err := in.expr()
	if err != nil {
		return Value{}, err
	}
	return v, in.expectEnd()
}

// execStmt executes one statement: a binding, an assignment, return, or an
// expression evaluated for its effects.
func (vm *VM) execStmt(f *Frame, text string) error {
	in, err := vm.newInterp(f, text)
	if err != nil {
		return err
	}
	first := in.peek()
	switch {
	case first.Kind == token.KwLet || first.Kind == token.KwVar:
		return in.binding()
	case first.IsIdentText("return"):
		in.pos++
		if in.at(token.EOF) {
			f.returned = true
			return nil
		}
		v, err := in.expr()
		if err != nil {
			return err
		}
		f.ret, f.returned = v, true
		return in.expectEnd()
	}
	if eq := in.assignIndex(); eq > 0 {
		return in.assignment(eq)
	}
	if _, err := in.expr(); err != nil {
		return err
	}
	return in.expectEnd()
}

func (in *interp) peek() token.Token {
	if in.pos >= len(in.toks) {
		return in.toks[len(in.toks)-1]
	}
	return in.toks[in.pos]
}

func (in *interp) at(k token.Kind) bool { return in.peek().Kind == k }

func (in *interp) next() token.Token {
	tok := in.peek()
	if tok.Kind != token.EOF {
		in.pos++
	}
	return tok
}

func (in *interp) expect(k token.Kind, what string) (token.Token, error) {
	if !in.at(k) {
		return token.Token{}, in.vm.errorf(PanicSyntax, "expected %s, found %q", what, in.peek().Text)
	}
	return in.next(), nil
}

func (in *interp) expectEnd() error {
	if !in.at(token.EOF) {
		return in.vm.errorf(PanicUnimplemented, "unsupported construct near %q", in.peek().Text)
	}
	return nil
}

// binding: let|var name [: Type] [= expr]
func (in *interp) binding() error {
	in.next()
	name, err := in.expect(token.Ident, "binding name")
	if err != nil {
		return err
	}
	for !in.atOr(token.Assign, token.EOF) {
		in.next() // аннотация типа
	}
	var v Value
	if in.at(token.Assign) {
		in.next()
		if v, err = in.expr(); err != nil {
			return err
		}
	}
	in.frame.Locals[name.Text] = v
	return in.expectEnd()
}

func (in *interp) atOr(kinds ...token.Kind) bool {
	for _, k := range kinds {
		if in.at(k) {
			return true
		}
	}
	return false
}

// assignIndex returns the position of a depth-0 '=' or -1.
func (in *interp) assignIndex() int {
	depth := 0
	for i, tok := range in.toks {
		switch tok.Kind {
		case token.LParen, token.LBracket, token.LBrace:
			depth++
		case token.RParen, token.RBracket, token.RBrace:
			depth--
		case token.Assign:
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// assignment: name = expr | target.field = expr
func (in *interp) assignment(eq int) error {
	in.pos = eq + 1
	v, err := in.expr()
	if err != nil {
		return err
	}
	if err := in.expectEnd(); err != nil {
		return err
	}
	lhs := in.toks[:eq]
	last := lhs[len(lhs)-1]
	if last.Kind != token.Ident {
		return in.vm.errorf(PanicUnimplemented, "unsupported assignment target")
	}
	if len(lhs) == 1 {
		return in.assignName(last.Text, v)
	}
	if len(lhs) < 3 || lhs[len(lhs)-2].Kind != token.Dot {
		return in.vm.errorf(PanicUnimplemented, "unsupported assignment target")
	}
	sub := &interp{vm: in.vm, frame: in.frame, toks: append(append([]token.Token(nil), lhs[:len(lhs)-2]...), in.toks[len(in.toks)-1])}
	target, err := sub.postfix()
	if err != nil {
		return err
	}
	if err := sub.expectEnd(); err != nil {
		return err
	}
	if target.Kind != VKObject {
		return in.vm.errorf(PanicTypeMismatch, "cannot assign field %q of %s", last.Text, target)
	}
	target.Obj.Fields[last.Text] = v
	return nil
}

func (in *interp) assignName(name string, v Value) error {
	f := in.frame
	if _, ok := f.Locals[name]; ok {
		f.Locals[name] = v
		return nil
	}
	if f.Self != nil {
		if _, ok := f.Self.Fields[name]; ok {
			f.Self.Fields[name] = v
			return nil
		}
	}
	if _, ok := in.vm.Globals[name]; ok {
		in.vm.Globals[name] = v
		return nil
	}
	return in.vm.errorf(PanicUnknownName, "assignment to undeclared %q", name)
}

// expr := postfix (('+' | '==' | '!=') postfix)*
func (in *interp) expr() (Value, error) {
	left, err := in.postfix()
	if err != nil {
		return Value{}, err
	}
	for in.at(token.Operator) {
		op := in.peek().Text
		if op != "+" && op != "==" && op != "!=" {
			break
		}
		in.next()
		right, err := in.postfix()
		if err != nil {
			return Value{}, err
		}
		switch op {
		case "+":
			if left.Kind == VKInt && right.Kind == VKInt {
				left = IntValue(left.Int + right.Int)
			} else {
				left = StringValue(left.String() + right.String())
			}
		case "==":
			left = BoolValue(left == right)
		case "!=":
			left = BoolValue(left != right)
		}
	}
	return left, nil
}

// postfix := primary ('.' name [args])*
func (in *interp) postfix() (Value, error) {
	tok := in.peek()
	if tok.IsIdentText("super") || (tok.IsIdentText("self") && in.peekAt(1).Kind == token.Dot && in.peekAt(2).Kind == token.KwInit) {
		return in.delegation()
	}
	v, err := in.primary()
	if err != nil {
		return Value{}, err
	}
	for in.at(token.Dot) {
		in.next()
		name := in.next()
		if name.Kind != token.Ident {
			return Value{}, in.vm.errorf(PanicSyntax, "expected member name after '.'")
		}
		if v.Kind != VKObject {
			return Value{}, in.vm.errorf(PanicTypeMismatch, "member %q of %s", name.Text, v)
		}
		if in.at(token.LParen) {
			args, err := in.args()
			if err != nil {
				return Value{}, err
			}
			if v, err = in.vm.CallMethod(v.Obj, v.Obj.Class, name.Text, args); err != nil {
				return Value{}, err
			}
			continue
		}
		fv, ok := v.Obj.Fields[name.Text]
		if !ok {
			return Value{}, in.vm.errorf(PanicUnknownName, "%s has no property %q", v.Obj.Class.Name, name.Text)
		}
		v = fv
	}
	return v, nil
}

func (in *interp) peekAt(n int) token.Token {
	if in.pos+n >= len(in.toks) {
		return in.toks[len(in.toks)-1]
	}
	return in.toks[in.pos+n]
}

// delegation: super.init(...), self.init(...), super.m(...)
func (in *interp) delegation() (Value, error) {
	recv := in.next().Text
	f := in.frame
	if f.Self == nil || f.Class == nil {
		return Value{}, in.vm.errorf(PanicUnknownName, "%q outside of a class", recv)
	}
	if _, err := in.expect(token.Dot, "'.'"); err != nil {
		return Value{}, err
	}
	name := in.next()
	args, err := in.args()
	if err != nil {
		return Value{}, err
	}
	from := f.Class
	if recv == "super" {
		from = f.Class.Parent
		if from == nil {
			return Value{}, in.vm.errorf(PanicUnknownName, "%s has no superclass", f.Class.Name)
		}
	}
	if name.Kind == token.KwInit {
		f.calledInit = true
		return Value{}, in.vm.runInit(f.Self, from, args)
	}
	return in.vm.CallMethod(f.Self, from, name.Text, args)
}

func (in *interp) primary() (Value, error) {
	tok := in.next()
	switch tok.Kind {
	case token.StringLit:
		s, err := in.vm.decodeString(in.frame, tok.Text)
		return StringValue(s), err
	case token.IntLit:
		n, err := strconv.ParseInt(strings.ReplaceAll(tok.Text, "_", ""), 0, 64)
		if err != nil {
			return Value{}, in.vm.errorf(PanicSyntax, "bad integer %q", tok.Text)
		}
		return IntValue(n), nil
	case token.LParen:
		v, err := in.expr()
		if err != nil {
			return Value{}, err
		}
		_, err = in.expect(token.RParen, "')'")
		return v, err
	case token.Ident:
		if in.at(token.LParen) {
			return in.call(tok.Text)
		}
		return in.lookup(tok.Text)
	}
	return Value{}, in.vm.errorf(PanicUnimplemented, "unsupported expression %q", tok.Text)
}

func (in *interp) lookup(name string) (Value, error) {
	f := in.frame
	switch name {
	case "true", "false":
		return BoolValue(name == "true"), nil
	case "nil":
		return Value{}, nil
	case "self":
		if f.Self == nil {
			return Value{}, in.vm.errorf(PanicUnknownName, "self outside of a class")
		}
		return ObjectValue(f.Self), nil
	}
	if v, ok := f.Locals[name]; ok {
		return v, nil
	}
	if f.Self != nil {
		if v, ok := f.Self.Fields[name]; ok {
			return v, nil
		}
	}
	if v, ok := in.vm.Globals[name]; ok {
		return v, nil
	}
	return Value{}, in.vm.errorf(PanicUnknownName, "unknown name %q", name)
}

// call: Class(...), print(...), fatalError(...), func(...), implicit self.m(...)
func (in *interp) call(name string) (Value, error) {
	args, err := in.args()
	if err != nil {
		return Value{}, err
	}
	vm := in.vm
	if cls, ok := vm.Classes[name]; ok {
		obj, err := vm.Construct(cls, args)
		if err != nil {
			return Value{}, err
		}
		return ObjectValue(obj), nil
	}
	switch name {
	case "print":
		parts := make([]string, len(args))
		for i, a := range args {
			parts[i] = a.Value.String()
		}
		line := norm.NFC.String(strings.Join(parts, " ")) + "\n"
		if _, err := io.WriteString(vm.opts.Out, line); err != nil {
			return Value{}, err
		}
		return Value{}, nil
	case "fatalError":
		msg := ""
		if len(args) > 0 {
			msg = args[0].Value.String()
		}
		return Value{}, vm.fatal(msg)
	}
	if fn, ok := vm.Funcs[name]; ok {
		return vm.callFunc(fn, args)
	}
	if self := in.frame.Self; self != nil {
		if m, _ := self.Class.LookupMethod(name); m != nil {
			return vm.CallMethod(self, self.Class, name, args)
		}
	}
	return Value{}, vm.errorf(PanicUnknownName, "unknown function %q", name)
}

// args: '(' [label ':'] expr {',' [label ':'] expr} ')'
func (in *interp) args() ([]Arg, error) {
	if _, err := in.expect(token.LParen, "'('"); err != nil {
		return nil, err
	}
	var out []Arg
	for !in.at(token.RParen) {
		var a Arg
		if in.at(token.Ident) && in.peekAt(1).Kind == token.Colon {
			a.Label = in.next().Text
			in.next()
		}
		v, err := in.expr()
		if err != nil {
			return nil, err
		}
		a.Value = v
		out = append(out, a)
		if !in.at(token.Comma) {
			break
		}
		in.next()
	}
	_, err := in.expect(token.RParen, "')'")
	return out, err
}

// decodeString снимает кавычки, раскрывает escape-последовательности и \(expr).
func (vm *VM) decodeString(f *Frame, lit string) (string, error) {
	body := lit
	if strings.HasPrefix(body, `"""`) {
		body = strings.TrimSuffix(strings.TrimPrefix(body, `"""`), `"""`)
		body = strings.TrimPrefix(body, "\n")
		body = strings.TrimSuffix(body, "\n")
	} else {
		body = strings.TrimSuffix(strings.TrimPrefix(body, `"`), `"`)
	}
	var sb strings.Builder
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' || i+1 >= len(body) {
			sb.WriteByte(c)
			continue
		}
		i++
		switch body[i] {
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		case '0':
			sb.WriteByte(0)
		case '(':
			end := matchParen(body, i)
			if end < 0 {
				return "", vm.errorf(PanicSyntax, "unterminated interpolation in %s", lit)
			}
			v, err := vm.evalText(f, body[i+1:end])
			if err != nil {
				return "", err
			}
			sb.WriteString(v.String())
			i = end
		default:
			sb.WriteByte(body[i])
		}
	}
	return sb.String(), nil
}

// matchParen returns the index of the ')' closing the '(' at open.
func matchParen(s string, open int) int {
	depth := 0
	inStr := false
	for i := open; i < len(s); i++ {
		switch c := s[i]; {
		case inStr:
			if c == '\\' {
				i++
			} else if c == '"' {
				inStr = false
			}
		case c == '"':
			inStr = true
		case c == '(':
			depth++
		case c == ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
