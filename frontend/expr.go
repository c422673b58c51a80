package frontend

import (
	goast "go/ast"
	"go/token"
	"strconv"

	"github.com/strager/golite/ast"
	"github.com/strager/golite/diag"
)

func (c *converter) exprs(list []goast.Expr) ([]ast.Expr, error) {
	var out []ast.Expr
	for _, e := range list {
		x, err := c.expr(e)
		if err != nil {
			return nil, err
		}
		out = append(out, x)
	}
	return out, nil
}

func (c *converter) expr(e goast.Expr) (ast.Expr, error) {
	line := c.line(e.Pos())
	switch e := e.(type) {
	case *goast.Ident:
		return c.ident(e), nil
	case *goast.BasicLit:
		return c.basicLit(e)
	case *goast.ParenExpr:
		return c.expr(e.X)
	case *goast.BinaryExpr:
		x, err := c.expr(e.X)
		if err != nil {
			return nil, err
		}
		y, err := c.expr(e.Y)
		if err != nil {
			return nil, err
		}
		return &ast.Binary{Line: c.line(e.OpPos), Op: e.Op.String(), X: x, Y: y}, nil
	case *goast.UnaryExpr:
		switch e.Op {
		case token.ADD, token.SUB, token.NOT, token.XOR:
		default:
			return nil, c.unsupported(e, "unary operator "+e.Op.String())
		}
		x, err := c.expr(e.X)
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Line: line, Op: e.Op.String(), X: x}, nil
	case *goast.CallExpr:
		if e.Ellipsis.IsValid() {
			return nil, c.unsupported(e, "variadic call")
		}
		fun, ok := unparen(e.Fun).(*goast.Ident)
		if !ok {
			return nil, c.unsupported(e.Fun, "call target")
		}
		if fun.Name == "print" || fun.Name == "println" {
			return nil, diag.Errorf(line, "%s(...) used as value", fun.Name)
		}
		args, err := c.exprs(e.Args)
		if err != nil {
			return nil, err
		}
		return &ast.Call{Line: line, Fun: c.ident(fun), Args: args}, nil
	case *goast.IndexExpr:
		x, err := c.expr(e.X)
		if err != nil {
			return nil, err
		}
		index, err := c.expr(e.Index)
		if err != nil {
			return nil, err
		}
		return &ast.Index{Line: line, X: x, Index: index}, nil
	case *goast.SelectorExpr:
		x, err := c.expr(e.X)
		if err != nil {
			return nil, err
		}
		return &ast.Selector{Line: line, X: x, Field: e.Sel.Name}, nil
	case *goast.SliceExpr:
		return nil, c.unsupported(e, "slice expression")
	case *goast.CompositeLit:
		return nil, c.unsupported(e, "composite literal")
	case *goast.FuncLit:
		return nil, c.unsupported(e, "function literal")
	case *goast.StarExpr:
		return nil, c.unsupported(e, "pointer indirection")
	case *goast.TypeAssertExpr:
		return nil, c.unsupported(e, "type assertion")
	default:
		return nil, c.unsupported(e, "expression")
	}
}

func unparen(e goast.Expr) goast.Expr {
	for {
		p, ok := e.(*goast.ParenExpr)
		if !ok {
			return e
		}
		e = p.X
	}
}

func (c *converter) basicLit(lit *goast.BasicLit) (ast.Expr, error) {
	line := c.line(lit.Pos())
	switch lit.Kind {
	case token.INT:
		v, err := strconv.ParseInt(lit.Value, 0, 64)
		if err != nil {
			return nil, diag.Errorf(line, "integer literal %s overflows int", lit.Value)
		}
		return &ast.IntLit{Line: line, Value: v}, nil
	case token.FLOAT:
		v, err := strconv.ParseFloat(lit.Value, 64)
		if err != nil {
			return nil, diag.Errorf(line, "invalid float literal %s", lit.Value)
		}
		return &ast.FloatLit{Line: line, Value: v}, nil
	case token.CHAR:
		s, err := strconv.Unquote(lit.Value)
		if err != nil {
			return nil, diag.Errorf(line, "invalid rune literal %s", lit.Value)
		}
		r := []rune(s)
		if len(r) != 1 {
			return nil, diag.Errorf(line, "invalid rune literal %s", lit.Value)
		}
		return &ast.RuneLit{Line: line, Value: r[0]}, nil
	case token.STRING:
		s, err := strconv.Unquote(lit.Value)
		if err != nil {
			return nil, diag.Errorf(line, "invalid string literal %s", lit.Value)
		}
		return &ast.StringLit{Line: line, Value: s}, nil
	default:
		return nil, c.unsupported(lit, "imaginary literal")
	}
}
