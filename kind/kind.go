// Package kind models the static types of golite programs.
//
// A Kind is one of Undefined, Basic, *Defined, *Array, *Slice, *Struct or
// Underscore. A nil Kind means "no value" and is produced by calls to
// functions without a result.
package kind

import (
	"strconv"
	"strings"
)

type Kind interface {
	isKind()
}

// Undefined is the kind of an expression that has not been checked yet.
type Undefined struct{}

// Underscore is the kind of the blank identifier. It matches any kind and is
// never the kind of a runtime value.
type Underscore struct{}

type Basic int

const (
	Int Basic = iota + 1
	Float
	Rune
	String
	Bool
)

// Defined is a named type. Every use of the name refers to the same *Defined,
// so two named kinds are identical only when they are the same pointer.
type Defined struct {
	Name       string
	Underlying Kind // nil while the declaration is being resolved
}

type Array struct {
	Elem Kind
	Len  int64
}

type Slice struct {
	Elem Kind
}

type Field struct {
	Name string
	Kind Kind
}

type Struct struct {
	Fields []Field
}

func (Undefined) isKind()  {}
func (Underscore) isKind() {}
func (Basic) isKind()      {}
func (*Defined) isKind()   {}
func (*Array) isKind()     {}
func (*Slice) isKind()     {}
func (*Struct) isKind()    {}

func (b Basic) String() string {
	switch b {
	case Int:
		return "int"
	case Float:
		return "float64"
	case Rune:
		return "rune"
	case String:
		return "string"
	case Bool:
		return "bool"
	default:
		return "basic(" + strconv.Itoa(int(b)) + ")"
	}
}

// FieldByName returns the field called name and whether it exists.
func (s *Struct) FieldByName(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name && name != "_" {
			return f, true
		}
	}
	return Field{}, false
}

// Resolve follows Defined kinds to the first kind that is not Defined.
// A named type whose underlying kind is still pending resolves to Undefined.
func Resolve(k Kind) Kind {
	for {
		d, ok := k.(*Defined)
		if !ok {
			return k
		}
		if d.Underlying == nil {
			return Undefined{}
		}
		k = d.Underlying
	}
}

// AreIdentical reports whether a and b denote the same kind. Named kinds are
// compared by identity, composite kinds component-wise. Underscore is
// identical to every kind.
func AreIdentical(a, b Kind) bool {
	if a == nil || b == nil {
		return false
	}
	if _, ok := a.(Underscore); ok {
		return true
	}
	if _, ok := b.(Underscore); ok {
		return true
	}
	switch a := a.(type) {
	case Basic:
		b, ok := b.(Basic)
		return ok && a == b
	case *Defined:
		b, ok := b.(*Defined)
		return ok && a == b
	case *Array:
		b, ok := b.(*Array)
		return ok && a.Len == b.Len && AreIdentical(a.Elem, b.Elem)
	case *Slice:
		b, ok := b.(*Slice)
		return ok && AreIdentical(a.Elem, b.Elem)
	case *Struct:
		b, ok := b.(*Struct)
		if !ok || len(a.Fields) != len(b.Fields) {
			return false
		}
		for i := range a.Fields {
			if a.Fields[i].Name != b.Fields[i].Name || !AreIdentical(a.Fields[i].Kind, b.Fields[i].Kind) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func IsComparable(k Kind) bool {
	switch k := Resolve(k).(type) {
	case Basic:
		return true
	case *Array:
		return IsComparable(k.Elem)
	case *Struct:
		for _, f := range k.Fields {
			if !IsComparable(f.Kind) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func IsOrdered(k Kind) bool {
	b, ok := Resolve(k).(Basic)
	return ok && b != Bool
}

func IsNumeric(k Kind) bool {
	b, ok := Resolve(k).(Basic)
	return ok && (b == Int || b == Float || b == Rune)
}

func IsInteger(k Kind) bool {
	b, ok := Resolve(k).(Basic)
	return ok && (b == Int || b == Rune)
}

func IsFloat(k Kind) bool {
	b, ok := Resolve(k).(Basic)
	return ok && b == Float
}

func IsBoolean(k Kind) bool {
	b, ok := Resolve(k).(Basic)
	return ok && b == Bool
}

func IsString(k Kind) bool {
	b, ok := Resolve(k).(Basic)
	return ok && b == String
}

// IsBasic reports whether k resolves to one of the predeclared basic kinds.
func IsBasic(k Kind) bool {
	_, ok := Resolve(k).(Basic)
	return ok
}

// IsComposite reports whether values of k have value semantics that need a
// deep copy when they are duplicated.
func IsComposite(k Kind) bool {
	switch Resolve(k).(type) {
	case *Array, *Struct:
		return true
	default:
		return false
	}
}

func AreComparable(a, b Kind) bool {
	return AreIdentical(a, b) && IsComparable(a) && IsComparable(b)
}

func AreOrdered(a, b Kind) bool {
	return AreIdentical(a, b) && IsOrdered(a) && IsOrdered(b)
}

// AreNumeric reports whether both operands are numeric. They need not be
// identical.
func AreNumeric(a, b Kind) bool {
	return IsNumeric(a) && IsNumeric(b)
}

// AreIntegers reports whether both operands are integers. Shift operands use
// this: the count need not have the kind of the shifted value.
func AreIntegers(a, b Kind) bool {
	return IsInteger(a) && IsInteger(b)
}

// IsConvertible reports whether a value of kind from can be converted to kind
// to with a conversion expression to(x).
func IsConvertible(to, from Kind) bool {
	if AreIdentical(Resolve(to), Resolve(from)) {
		return true
	}
	if IsNumeric(to) && IsNumeric(from) {
		return true
	}
	return IsString(to) && IsInteger(from)
}

// Format renders k the way diagnostics show it.
func Format(k Kind) string {
	var sb strings.Builder
	writeKind(&sb, k)
	return sb.String()
}

func writeKind(sb *strings.Builder, k Kind) {
	switch k := k.(type) {
	case nil:
		sb.WriteString("no value")
	case Undefined:
		sb.WriteString("undefined")
	case Underscore:
		sb.WriteString("_")
	case Basic:
		sb.WriteString(k.String())
	case *Defined:
		sb.WriteString(k.Name)
	case *Array:
		sb.WriteString("[")
		sb.WriteString(strconv.FormatInt(k.Len, 10))
		sb.WriteString("]")
		writeKind(sb, k.Elem)
	case *Slice:
		sb.WriteString("[]")
		writeKind(sb, k.Elem)
	case *Struct:
		sb.WriteString("struct{")
		for i, f := range k.Fields {
			if i > 0 {
				sb.WriteString("; ")
			}
			sb.WriteString(f.Name)
			sb.WriteString(" ")
			writeKind(sb, f.Kind)
		}
		sb.WriteString("}")
	}
}
