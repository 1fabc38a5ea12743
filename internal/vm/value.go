package vm

import "strconv"

// ValueKind tags a runtime value.
type ValueKind uint8

const (
	VKNil ValueKind = iota
	VKString
	VKInt
	VKBool
	VKObject
)

// Value is a runtime value.
type Value struct {
	Kind ValueKind
	Str  string
	Int  int64
	Obj  *Object
}

func StringValue(s string) Value  { return Value{Kind: VKString, Str: s} }
func IntValue(n int64) Value      { return Value{Kind: VKInt, Int: n} }
func ObjectValue(o *Object) Value { return Value{Kind: VKObject, Obj: o} }

func BoolValue(b bool) Value {
	if b {
		return Value{Kind: VKBool, Int: 1}
	}
	return Value{Kind: VKBool}
}

// String renders a value the way print does.
func (v Value) String() string {
	switch v.Kind {
	case VKString:
		return v.Str
	case VKInt:
		return strconv.FormatInt(v.Int, 10)
	case VKBool:
		return strconv.FormatBool(v.Int != 0)
	case VKObject:
		return v.Obj.Class.Name
	}
	return "nil"
}

// Object is an instance of a class. Class is the identity token of the exact
// dynamic type; it is set at allocation and never changes.
type Object struct {
	Class  *Class
	Fields map[string]Value
}
