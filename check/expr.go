package check

import (
	"github.com/strager/golite/ast"
	"github.com/strager/golite/diag"
	"github.com/strager/golite/kind"
	"github.com/strager/golite/symtab"
)

// value checks e and requires it to produce a value.
func (c *checker) value(e ast.Expr) (kind.Kind, error) {
	k, err := c.expr(e)
	if err != nil {
		return nil, err
	}
	if k == nil {
		call := e.(*ast.Call)
		return nil, diag.Errorf(e.Pos(), "%s() (no value) used as value", call.Fun.Name)
	}
	return k, nil
}

// expr computes the kind of e, records it on e and returns it. A nil kind
// without an error is a call to a function without a result.
func (c *checker) expr(e ast.Expr) (kind.Kind, error) {
	k, err := c.exprKind(e)
	if err != nil {
		return nil, err
	}
	e.SetKind(k)
	return k, nil
}

func (c *checker) exprKind(e ast.Expr) (kind.Kind, error) {
	switch e := e.(type) {
	case *ast.IntLit:
		return kind.Int, nil
	case *ast.FloatLit:
		return kind.Float, nil
	case *ast.RuneLit:
		return kind.Rune, nil
	case *ast.StringLit:
		return kind.String, nil
	case *ast.Ident:
		return identKind(e)
	case *ast.Binary:
		x, err := c.value(e.X)
		if err != nil {
			return nil, err
		}
		y, err := c.value(e.Y)
		if err != nil {
			return nil, err
		}
		x, y = unify(e.Op, e.X, e.Y, x, y)
		return binaryKind(e.Op, x, y, e.Line)
	case *ast.Unary:
		x, err := c.value(e.X)
		if err != nil {
			return nil, err
		}
		return unaryKind(e.Op, x, e.Line)
	case *ast.Call:
		return c.call(e)
	case *ast.Index:
		x, err := c.value(e.X)
		if err != nil {
			return nil, err
		}
		i, err := c.value(e.Index)
		if err != nil {
			return nil, err
		}
		if !kind.IsInteger(i) {
			return nil, diag.Errorf(e.Line, "invalid index of type %s", kind.Format(i))
		}
		switch x := kind.Resolve(x).(type) {
		case *kind.Array:
			return x.Elem, nil
		case *kind.Slice:
			return x.Elem, nil
		}
		return nil, diag.Errorf(e.Line, "cannot index value of type %s", kind.Format(x))
	case *ast.Selector:
		x, err := c.value(e.X)
		if err != nil {
			return nil, err
		}
		if e.Field == "_" {
			return nil, diag.Errorf(e.Line, "cannot refer to blank field")
		}
		if s, ok := kind.Resolve(x).(*kind.Struct); ok {
			if f, ok := s.FieldByName(e.Field); ok {
				return f.Kind, nil
			}
		}
		return nil, diag.Errorf(e.Line, "%s undefined (type %s has no field %s)", e.Field, kind.Format(x), e.Field)
	default:
		panic("unknown expression")
	}
}

func identKind(e *ast.Ident) (kind.Kind, error) {
	switch d := e.Symbol.Decl.(type) {
	case symtab.Variable:
		if _, ok := d.Kind.(kind.Undefined); ok {
			return nil, diag.Errorf(e.Line, "%s used before its type is known", e.Name)
		}
		return d.Kind, nil
	case symtab.Constant:
		return d.Kind, nil
	case symtab.Type:
		return nil, diag.Errorf(e.Line, "type %s is not an expression", e.Name)
	default:
		return nil, diag.Errorf(e.Line, "cannot use function %s as value", e.Name)
	}
}

func mismatch(op string, x, y kind.Kind, line int) error {
	if !kind.AreIdentical(x, y) {
		return diag.Errorf(line, "invalid operation: %s (mismatched types %s and %s)", op, kind.Format(x), kind.Format(y))
	}
	return diag.Errorf(line, "invalid operation: operator %s not defined on type %s", op, kind.Format(x))
}

// binaryKind returns the kind of x op y. Comparisons produce bool; every
// other operator produces the kind of its left operand.
func binaryKind(op string, x, y kind.Kind, line int) (kind.Kind, error) {
	ok := false
	switch op {
	case "&&", "||":
		ok = kind.AreIdentical(x, y) && kind.IsBoolean(x)
	case "==", "!=":
		if kind.AreComparable(x, y) {
			return kind.Bool, nil
		}
	case "<", "<=", ">", ">=":
		if kind.AreOrdered(x, y) {
			return kind.Bool, nil
		}
	case "+":
		ok = kind.AreIdentical(x, y) && (kind.IsNumeric(x) || kind.IsString(x))
	case "-", "*", "/":
		ok = kind.AreIdentical(x, y) && kind.IsNumeric(x)
	case "%", "&", "|", "^", "&^":
		ok = kind.AreIdentical(x, y) && kind.IsInteger(x)
	case "<<", ">>":
		ok = kind.AreIntegers(x, y)
	default:
		return nil, diag.Errorf(line, "unsupported operator %s", op)
	}
	if !ok {
		return nil, mismatch(op, x, y, line)
	}
	return x, nil
}

func unaryKind(op string, x kind.Kind, line int) (kind.Kind, error) {
	ok := false
	switch op {
	case "+", "-":
		ok = kind.IsNumeric(x)
	case "!":
		ok = kind.IsBoolean(x)
	case "^":
		ok = kind.IsInteger(x)
	}
	if !ok {
		return nil, diag.Errorf(line, "invalid operation: operator %s not defined on type %s", op, kind.Format(x))
	}
	return x, nil
}

func (c *checker) args(call *ast.Call) ([]kind.Kind, error) {
	var kinds []kind.Kind
	for _, arg := range call.Args {
		k, err := c.value(arg)
		if err != nil {
			return nil, err
		}
		kinds = append(kinds, k)
	}
	return kinds, nil
}

func (c *checker) call(e *ast.Call) (kind.Kind, error) {
	args, err := c.args(e)
	if err != nil {
		return nil, err
	}
	name := e.Fun.Name
	switch d := e.Fun.Symbol.Decl.(type) {
	case symtab.Function:
		e.Mode = ast.CallFunction
		if len(args) != len(d.Params) {
			return nil, diag.Errorf(e.Line, "wrong number of arguments in call to %s: have %d, want %d", name, len(args), len(d.Params))
		}
		for i, arg := range args {
			if !assignableTo(e.Args[i], arg, d.Params[i]) {
				return nil, diag.Errorf(e.Args[i].Pos(), "cannot use value of type %s as type %s in argument to %s", kind.Format(arg), kind.Format(d.Params[i]), name)
			}
		}
		return d.Result, nil
	case symtab.Type:
		e.Mode = ast.CallConversion
		if len(args) != 1 {
			return nil, diag.Errorf(e.Line, "wrong number of arguments in conversion to %s", name)
		}
		if !kind.IsConvertible(d.Kind, args[0]) {
			return nil, diag.Errorf(e.Line, "cannot convert value of type %s to type %s", kind.Format(args[0]), kind.Format(d.Kind))
		}
		return d.Kind, nil
	case symtab.Builtin:
		return builtin(e, d.Name, args)
	default:
		return nil, diag.Errorf(e.Line, "cannot call non-function %s", name)
	}
}

func builtin(e *ast.Call, name string, args []kind.Kind) (kind.Kind, error) {
	switch name {
	case "append":
		e.Mode = ast.CallAppend
		if len(args) != 2 {
			return nil, diag.Errorf(e.Line, "append expects 2 arguments, found %d", len(args))
		}
		s, ok := kind.Resolve(args[0]).(*kind.Slice)
		if !ok {
			return nil, diag.Errorf(e.Line, "invalid argument: first argument to append must be a slice; have type %s", kind.Format(args[0]))
		}
		if !assignableTo(e.Args[1], args[1], s.Elem) {
			return nil, diag.Errorf(e.Args[1].Pos(), "cannot use value of type %s as type %s in argument to append", kind.Format(args[1]), kind.Format(s.Elem))
		}
		return args[0], nil
	case "len", "cap":
		e.Mode = ast.CallLen
		if name == "cap" {
			e.Mode = ast.CallCap
		}
		if len(args) != 1 {
			return nil, diag.Errorf(e.Line, "%s expects 1 argument, found %d", name, len(args))
		}
		switch kind.Resolve(args[0]).(type) {
		case *kind.Array, *kind.Slice:
			return kind.Int, nil
		}
		if name == "len" && kind.IsString(args[0]) {
			return kind.Int, nil
		}
		return nil, diag.Errorf(e.Line, "invalid argument: value of type %s for built-in %s", kind.Format(args[0]), name)
	default:
		panic("unknown builtin " + name)
	}
}
