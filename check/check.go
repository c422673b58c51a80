// Package check computes the kind of every expression in a resolved program
// and validates operators, assignments, calls and statements against the
// kind predicates.
package check

import (
	"github.com/strager/golite/ast"
	"github.com/strager/golite/diag"
	"github.com/strager/golite/kind"
	"github.com/strager/golite/symtab"
)

type checker struct {
	result kind.Kind // result of the function being checked
}

// Program checks prog, which must have been resolved. Global variables are
// checked before function bodies so that bodies see their inferred kinds.
// Constant values are checked once the kinds of a declaration are final.
func Program(prog *ast.Program) error {
	c := &checker{}
	for _, decl := range prog.Decls {
		if d, ok := decl.(*ast.VarDecl); ok {
			if err := c.varDecl(d); err != nil {
				return err
			}
			if err := constants(d); err != nil {
				return err
			}
		}
	}
	for _, decl := range prog.Decls {
		if d, ok := decl.(*ast.FuncDecl); ok {
			if err := c.funcDecl(d); err != nil {
				return err
			}
			if err := constants(d.Body); err != nil {
				return err
			}
		}
	}
	return initOrder(prog)
}

func (c *checker) funcDecl(d *ast.FuncDecl) error {
	c.result = d.Name.Symbol.Decl.(symtab.Function).Result
	return c.stmts(d.Body.Stmts)
}

func (c *checker) stmts(stmts []ast.Stmt) error {
	for _, s := range stmts {
		if err := c.stmt(s); err != nil {
			return err
		}
	}
	return nil
}

func (c *checker) optionalStmt(s ast.Stmt) error {
	if s == nil {
		return nil
	}
	return c.stmt(s)
}

func (c *checker) stmt(s ast.Stmt) error {
	switch s := s.(type) {
	case *ast.Block:
		return c.stmts(s.Stmts)
	case *ast.VarDecl:
		return c.varDecl(s)
	case *ast.TypeDecl, *ast.Break, *ast.Continue, *ast.Empty:
		return nil
	case *ast.ExprStmt:
		return c.exprStmt(s)
	case *ast.Assign:
		return c.assign(s)
	case *ast.OpAssign:
		return c.opAssign(s)
	case *ast.ShortVarDecl:
		return c.shortVarDecl(s)
	case *ast.IncDec:
		k, err := c.value(s.X)
		if err != nil {
			return err
		}
		if err := c.assignable(s.X); err != nil {
			return err
		}
		if !kind.IsNumeric(k) {
			return diag.Errorf(s.Line, "invalid operation: %s of non-numeric type %s", incDecOp(s), kind.Format(k))
		}
		return nil
	case *ast.Print:
		for _, arg := range s.Args {
			k, err := c.value(arg)
			if err != nil {
				return err
			}
			if !kind.IsBasic(k) {
				return diag.Errorf(arg.Pos(), "cannot print value of type %s", kind.Format(k))
			}
		}
		return nil
	case *ast.Return:
		return c.returnStmt(s)
	case *ast.If:
		return c.ifStmt(s)
	case *ast.Switch:
		return c.switchStmt(s)
	case *ast.For:
		if err := c.optionalStmt(s.Init); err != nil {
			return err
		}
		if s.Cond != nil {
			if err := c.condition(s.Cond); err != nil {
				return err
			}
		}
		if err := c.optionalStmt(s.Post); err != nil {
			return err
		}
		return c.stmts(s.Body.Stmts)
	default:
		panic("unknown statement")
	}
}

func incDecOp(s *ast.IncDec) string {
	if s.Inc {
		return "++"
	}
	return "--"
}

func (c *checker) exprStmt(s *ast.ExprStmt) error {
	call, ok := s.X.(*ast.Call)
	if !ok {
		return diag.Errorf(s.Line, "expression statement must be a function call")
	}
	if _, err := c.expr(call); err != nil {
		return err
	}
	if call.Mode != ast.CallFunction {
		return diag.Errorf(s.Line, "%s(...) is not used", call.Fun.Name)
	}
	return nil
}

func (c *checker) varDecl(d *ast.VarDecl) error {
	var declared kind.Kind
	if d.Type != nil {
		declared = d.Names[0].Symbol.Decl.(symtab.Variable).Kind
	}
	for i, name := range d.Names {
		k := declared
		if len(d.Values) > 0 {
			v, err := c.value(d.Values[i])
			if err != nil {
				return err
			}
			if declared == nil {
				k = v
			} else if !assignableTo(d.Values[i], v, declared) {
				return diag.Errorf(d.Values[i].Pos(), "cannot use value of type %s as type %s in variable declaration", kind.Format(v), kind.Format(declared))
			}
		}
		if name.Name != "_" {
			name.Symbol.Decl = symtab.Variable{Kind: k}
		}
		name.Kind = k
	}
	return nil
}

func (c *checker) shortVarDecl(d *ast.ShortVarDecl) error {
	for i, name := range d.Names {
		v, err := c.value(d.Values[i])
		if err != nil {
			return err
		}
		switch {
		case name.Name == "_":
			name.Kind = kind.Underscore{}
		case d.New[i]:
			name.Symbol.Decl = symtab.Variable{Kind: v}
			name.Kind = v
		default:
			decl, ok := name.Symbol.Decl.(symtab.Variable)
			if !ok {
				return diag.Errorf(name.Line, "cannot assign to %s", name.Name)
			}
			if !assignableTo(d.Values[i], v, decl.Kind) {
				return diag.Errorf(name.Line, "cannot use value of type %s as type %s in assignment", kind.Format(v), kind.Format(decl.Kind))
			}
			name.Kind = decl.Kind
		}
	}
	return nil
}

func (c *checker) assign(s *ast.Assign) error {
	for i, lhs := range s.Lhs {
		v, err := c.value(s.Rhs[i])
		if err != nil {
			return err
		}
		if id, ok := lhs.(*ast.Ident); ok && id.Name == "_" {
			id.Kind = kind.Underscore{}
			continue
		}
		l, err := c.value(lhs)
		if err != nil {
			return err
		}
		if err := c.assignable(lhs); err != nil {
			return err
		}
		if !assignableTo(s.Rhs[i], v, l) {
			return diag.Errorf(s.Line, "cannot use value of type %s as type %s in assignment", kind.Format(v), kind.Format(l))
		}
	}
	return nil
}

func (c *checker) opAssign(s *ast.OpAssign) error {
	l, err := c.value(s.Lhs)
	if err != nil {
		return err
	}
	if err := c.assignable(s.Lhs); err != nil {
		return err
	}
	r, err := c.value(s.Rhs)
	if err != nil {
		return err
	}
	if s.Op != "<<" && s.Op != ">>" && convertUntyped(s.Rhs, l) {
		r = l
	}
	k, err := binaryKind(s.Op, l, r, s.Line)
	if err != nil {
		return err
	}
	if !kind.AreIdentical(k, l) {
		return diag.Errorf(s.Line, "cannot use value of type %s as type %s in assignment", kind.Format(k), kind.Format(l))
	}
	return nil
}

// assignable reports an error unless e denotes a variable, an element of an
// addressable array, an element of a slice, or a field of an addressable
// struct.
func (c *checker) assignable(e ast.Expr) error {
	switch e := e.(type) {
	case *ast.Ident:
		if _, ok := e.Symbol.Decl.(symtab.Variable); ok {
			return nil
		}
		return diag.Errorf(e.Line, "cannot assign to %s", e.Name)
	case *ast.Index:
		if _, ok := kind.Resolve(e.X.KindOf()).(*kind.Slice); ok {
			return nil
		}
		return c.assignable(e.X)
	case *ast.Selector:
		return c.assignable(e.X)
	default:
		return diag.Errorf(e.Pos(), "cannot assign to expression")
	}
}

func (c *checker) returnStmt(s *ast.Return) error {
	if c.result == nil {
		if s.Value != nil {
			return diag.Errorf(s.Line, "too many return values")
		}
		return nil
	}
	if s.Value == nil {
		return diag.Errorf(s.Line, "not enough return values")
	}
	v, err := c.value(s.Value)
	if err != nil {
		return err
	}
	if !assignableTo(s.Value, v, c.result) {
		return diag.Errorf(s.Line, "cannot use value of type %s as type %s in return statement", kind.Format(v), kind.Format(c.result))
	}
	return nil
}

func (c *checker) condition(e ast.Expr) error {
	k, err := c.value(e)
	if err != nil {
		return err
	}
	if !kind.IsBoolean(k) {
		return diag.Errorf(e.Pos(), "non-boolean condition of type %s", kind.Format(k))
	}
	return nil
}

func (c *checker) ifStmt(s *ast.If) error {
	if err := c.optionalStmt(s.Init); err != nil {
		return err
	}
	if err := c.condition(s.Cond); err != nil {
		return err
	}
	if err := c.stmts(s.Then.Stmts); err != nil {
		return err
	}
	return c.optionalStmt(s.Else)
}

func (c *checker) switchStmt(s *ast.Switch) error {
	if err := c.optionalStmt(s.Init); err != nil {
		return err
	}
	var tag kind.Kind
	if s.Tag != nil {
		k, err := c.value(s.Tag)
		if err != nil {
			return err
		}
		if !kind.IsComparable(k) {
			return diag.Errorf(s.Line, "cannot switch on value of type %s", kind.Format(k))
		}
		tag = k
	}
	for _, cc := range s.Cases {
		for _, e := range cc.Exprs {
			k, err := c.value(e)
			if err != nil {
				return err
			}
			if tag == nil {
				if !kind.IsBoolean(k) {
					return diag.Errorf(e.Pos(), "invalid case of type %s in switch without expression", kind.Format(k))
				}
			} else if !kind.AreComparable(tag, k) && !(convertUntyped(e, tag) && kind.IsComparable(tag)) {
				return diag.Errorf(e.Pos(), "invalid case of type %s in switch on %s", kind.Format(k), kind.Format(tag))
			}
		}
		if err := c.stmts(cc.Body); err != nil {
			return err
		}
	}
	return nil
}
