package symtab

import (
	"strings"

	"github.com/strager/golite/kind"
)

// Declaration is what a name stands for: one of Variable, Constant, Type,
// Function, Dummy or Builtin.
type Declaration interface {
	declaration()
	String() string
}

type Variable struct {
	Kind kind.Kind
}

type Constant struct {
	Kind kind.Kind
}

type Type struct {
	Kind kind.Kind
}

// Function is a function signature. Result is nil for functions without a
// result.
type Function struct {
	Params []kind.Kind
	Result kind.Kind
}

// Dummy stands in for a function whose signature has not been evaluated yet.
type Dummy struct{}

// Builtin is one of the predeclared functions append, len and cap.
type Builtin struct {
	Name string
}

func (Variable) declaration() {}
func (Constant) declaration() {}
func (Type) declaration()     {}
func (Function) declaration() {}
func (Dummy) declaration()    {}
func (Builtin) declaration()  {}

func (d Variable) String() string { return "var " + kind.Format(d.Kind) }
func (d Constant) String() string { return "const " + kind.Format(d.Kind) }
func (d Type) String() string     { return "type " + kind.Format(d.Kind) }
func (Dummy) String() string      { return "func ?" }
func (d Builtin) String() string  { return "builtin " + d.Name }

func (d Function) String() string {
	var sb strings.Builder
	sb.WriteString("func(")
	for i, p := range d.Params {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(kind.Format(p))
	}
	sb.WriteString(")")
	if d.Result != nil {
		sb.WriteString(" ")
		sb.WriteString(kind.Format(d.Result))
	}
	return sb.String()
}
