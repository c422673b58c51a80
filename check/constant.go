package check

import (
	"math"
	"math/big"

	"github.com/strager/golite/ast"
	"github.com/strager/golite/diag"
	"github.com/strager/golite/kind"
)

// Precision of float constants. Constant arithmetic is exact for integers.
const floatPrec = 512

// Left shifts of a nonzero constant by more than this always overflow.
const maxShift = 512

var (
	minInt = big.NewInt(math.MinInt32)
	maxInt = big.NewInt(math.MaxInt32)
)

// constants checks the constant expressions in n. The value of a constant
// must be representable in its kind. So must the operands of /, % and >>
// and every shift count, since the generated program wraps integers to 32
// bits before those operators see them. Integer division by a constant zero
// is rejected.
func constants(n ast.Node) error {
	var err error
	ast.Inspect(n, func(n ast.Node) bool {
		if err != nil {
			return false
		}
		switch n := n.(type) {
		case *ast.OpAssign:
			err = checkDivisor(n.Op, n.Lhs.KindOf(), n.Rhs, n.Line)
		case *ast.Binary:
			if untyped(n) {
				err = constant(n)
				return false
			}
			err = checkDivisor(n.Op, n.Kind, n.Y, n.Line)
			if err == nil && (n.Op == "<<" || n.Op == ">>") && untyped(n.Y) {
				err = checkShiftCount(n.Y)
			}
		case ast.Expr:
			if untyped(n) {
				err = constant(n)
				return false
			}
		}
		return err == nil
	})
	return err
}

// constant evaluates the constant expression e and checks that its value
// fits its kind.
func constant(e ast.Expr) error {
	v, err := eval(e)
	if err != nil {
		return err
	}
	return fits(e, v)
}

// eval returns the exact value of the constant expression e: a *big.Int
// for integer kinds, a *big.Float for float64, and nil otherwise.
func eval(e ast.Expr) (any, error) {
	switch e := e.(type) {
	case *ast.IntLit:
		return number(e.Kind, big.NewInt(e.Value)), nil
	case *ast.RuneLit:
		return number(e.Kind, big.NewInt(int64(e.Value))), nil
	case *ast.FloatLit:
		return number(e.Kind, new(big.Float).SetPrec(floatPrec).SetFloat64(e.Value)), nil
	case *ast.Unary:
		x, err := eval(e.X)
		if err != nil {
			return nil, err
		}
		switch x := x.(type) {
		case *big.Int:
			switch e.Op {
			case "-":
				return new(big.Int).Neg(x), nil
			case "^":
				return new(big.Int).Not(x), nil
			}
			return x, nil
		case *big.Float:
			if e.Op == "-" {
				return new(big.Float).Neg(x), nil
			}
			return x, nil
		}
		return nil, nil
	case *ast.Binary:
		return evalBinary(e)
	default:
		return nil, nil
	}
}

func evalBinary(e *ast.Binary) (any, error) {
	x, err := eval(e.X)
	if err != nil {
		return nil, err
	}
	y, err := eval(e.Y)
	if err != nil {
		return nil, err
	}
	if x == nil || y == nil {
		return nil, nil
	}

	switch e.Op {
	case "<<", ">>":
		return shift(e, x, y)
	case "/", "%":
		if err := fits(e.X, x); err != nil {
			return nil, err
		}
		if err := fits(e.Y, y); err != nil {
			return nil, err
		}
		if sign(y) == 0 {
			return nil, diag.Errorf(e.Line, "invalid operation: division by zero")
		}
	}

	switch x := x.(type) {
	case *big.Int:
		y, ok := y.(*big.Int)
		if !ok {
			return nil, nil
		}
		z := new(big.Int)
		switch e.Op {
		case "+":
			return z.Add(x, y), nil
		case "-":
			return z.Sub(x, y), nil
		case "*":
			return z.Mul(x, y), nil
		case "/":
			return z.Quo(x, y), nil
		case "%":
			return z.Rem(x, y), nil
		case "&":
			return z.And(x, y), nil
		case "|":
			return z.Or(x, y), nil
		case "^":
			return z.Xor(x, y), nil
		case "&^":
			return z.AndNot(x, y), nil
		}
	case *big.Float:
		y, ok := y.(*big.Float)
		if !ok {
			return nil, nil
		}
		z := new(big.Float).SetPrec(floatPrec)
		switch e.Op {
		case "+":
			return z.Add(x, y), nil
		case "-":
			return z.Sub(x, y), nil
		case "*":
			return z.Mul(x, y), nil
		case "/":
			return z.Quo(x, y), nil
		}
	}
	return nil, nil
}

func shift(e *ast.Binary, x, y any) (any, error) {
	xi, ok := x.(*big.Int)
	if !ok {
		return nil, nil
	}
	count, ok := y.(*big.Int)
	if !ok {
		return nil, nil
	}
	if err := countInRange(e.Y, count); err != nil {
		return nil, err
	}
	n := uint(count.Uint64())
	if e.Op == ">>" {
		if err := fits(e.X, xi); err != nil {
			return nil, err
		}
		return new(big.Int).Rsh(xi, n), nil
	}
	if n > maxShift && xi.Sign() != 0 {
		return nil, diag.Errorf(e.Line, "constant shift overflow")
	}
	return new(big.Int).Lsh(xi, n), nil
}

// checkShiftCount checks a constant count shifting a non-constant operand.
func checkShiftCount(count ast.Expr) error {
	v, err := eval(count)
	if err != nil {
		return err
	}
	if c, ok := v.(*big.Int); ok {
		return countInRange(count, c)
	}
	return nil
}

func countInRange(count ast.Expr, v *big.Int) error {
	if v.Sign() < 0 {
		return diag.Errorf(count.Pos(), "invalid shift count %s", v)
	}
	return fits(count, v)
}

// checkDivisor rejects integer division of a non-constant operand by a
// constant zero.
func checkDivisor(op string, k kind.Kind, y ast.Expr, line int) error {
	if (op != "/" && op != "%") || !kind.IsInteger(k) || !untyped(y) {
		return nil
	}
	v, err := eval(y)
	if err != nil {
		return err
	}
	if v != nil && sign(v) == 0 {
		return diag.Errorf(line, "invalid operation: division by zero")
	}
	return nil
}

// number converts v to the representation of kind k.
func number(k kind.Kind, v any) any {
	switch {
	case kind.IsInteger(k):
		if f, ok := v.(*big.Float); ok {
			i, _ := f.Int(nil)
			return i
		}
	case kind.IsFloat(k):
		if i, ok := v.(*big.Int); ok {
			return new(big.Float).SetPrec(floatPrec).SetInt(i)
		}
	default:
		return nil
	}
	return v
}

func sign(v any) int {
	switch v := v.(type) {
	case *big.Int:
		return v.Sign()
	case *big.Float:
		return v.Sign()
	}
	return 1
}

func fits(e ast.Expr, v any) error {
	switch v := v.(type) {
	case *big.Int:
		if v.Cmp(minInt) < 0 || v.Cmp(maxInt) > 0 {
			return diag.Errorf(e.Pos(), "constant %s overflows %s", v, kind.Format(e.KindOf()))
		}
	case *big.Float:
		if f, _ := v.Float64(); math.IsInf(f, 0) {
			return diag.Errorf(e.Pos(), "constant %s overflows %s", v.Text('g', 6), kind.Format(e.KindOf()))
		}
	}
	return nil
}
