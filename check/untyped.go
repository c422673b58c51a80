package check

import (
	"math"

	"github.com/strager/golite/ast"
	"github.com/strager/golite/kind"
	"github.com/strager/golite/symtab"
)

// untyped reports whether e is built only from literals and the predeclared
// constants, so that its kind still follows the context it is used in.
func untyped(e ast.Expr) bool {
	switch e := e.(type) {
	case *ast.IntLit, *ast.FloatLit, *ast.RuneLit, *ast.StringLit:
		return true
	case *ast.Ident:
		if e.Symbol == nil {
			return false
		}
		_, ok := e.Symbol.Decl.(symtab.Constant)
		return ok
	case *ast.Unary:
		return untyped(e.X)
	case *ast.Binary:
		switch e.Op {
		case "==", "!=", "<", "<=", ">", ">=":
			return false
		}
		return untyped(e.X) && untyped(e.Y)
	default:
		return false
	}
}

func fitsUntyped(e ast.Expr, k kind.Kind) bool {
	switch e := e.(type) {
	case *ast.IntLit, *ast.RuneLit:
		return kind.IsNumeric(k)
	case *ast.FloatLit:
		return kind.IsFloat(k) || kind.IsInteger(k) && e.Value == math.Trunc(e.Value)
	case *ast.StringLit:
		return kind.IsString(k)
	case *ast.Ident:
		return kind.IsBoolean(k)
	case *ast.Unary:
		_, err := unaryKind(e.Op, k, e.Line)
		return err == nil && fitsUntyped(e.X, k)
	case *ast.Binary:
		_, err := binaryKind(e.Op, k, k, e.Line)
		return err == nil && fitsUntyped(e.X, k) && fitsUntyped(e.Y, k)
	default:
		return false
	}
}

func setUntyped(e ast.Expr, k kind.Kind) {
	switch e := e.(type) {
	case *ast.Unary:
		setUntyped(e.X, k)
	case *ast.Binary:
		setUntyped(e.X, k)
		setUntyped(e.Y, k)
	}
	e.SetKind(k)
}

// convertUntyped gives the untyped expression e the kind k if every literal
// in it can be represented in k.
func convertUntyped(e ast.Expr, k kind.Kind) bool {
	if !untyped(e) || !fitsUntyped(e, k) {
		return false
	}
	setUntyped(e, k)
	return true
}

// assignableTo reports whether e, of kind v, may be stored in a location of
// kind target.
func assignableTo(e ast.Expr, v, target kind.Kind) bool {
	return kind.AreIdentical(v, target) || convertUntyped(e, target)
}

// unify gives an untyped operand the kind of the other operand. When both
// are untyped the operand of the higher rank wins: float over rune over int.
func unify(op string, xe, ye ast.Expr, x, y kind.Kind) (kind.Kind, kind.Kind) {
	if op == "<<" || op == ">>" || kind.AreIdentical(x, y) {
		return x, y
	}
	xu, yu := untyped(xe), untyped(ye)
	switch {
	case xu && !yu:
		if convertUntyped(xe, y) {
			x = y
		}
	case yu && !xu:
		if convertUntyped(ye, x) {
			y = x
		}
	case xu && yu:
		switch {
		case kind.IsFloat(x) && convertUntyped(ye, x):
			y = x
		case kind.IsFloat(y) && convertUntyped(xe, y):
			x = y
		case x == kind.Rune && convertUntyped(ye, x):
			y = x
		case y == kind.Rune && convertUntyped(xe, y):
			x = y
		}
	}
	return x, y
}
