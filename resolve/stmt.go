package resolve

import (
	"github.com/strager/golite/ast"
	"github.com/strager/golite/diag"
	"github.com/strager/golite/kind"
	"github.com/strager/golite/symtab"
)

func (r *resolver) stmts(stmts []ast.Stmt) error {
	for _, s := range stmts {
		if err := r.stmt(s); err != nil {
			return err
		}
	}
	return nil
}

func (r *resolver) block(b *ast.Block) error {
	r.st.EnterScope()
	defer r.st.ExitScope()
	return r.stmts(b.Stmts)
}

func (r *resolver) optionalStmt(s ast.Stmt) error {
	if s == nil {
		return nil
	}
	return r.stmt(s)
}

func (r *resolver) stmt(s ast.Stmt) error {
	switch s := s.(type) {
	case *ast.Block:
		return r.block(s)
	case *ast.VarDecl:
		return r.varDecl(s)
	case *ast.TypeDecl:
		def, err := r.declareType(s)
		if err != nil {
			return err
		}
		if err := r.defineType(s); err != nil {
			return err
		}
		return checkRecursion(def, s.Line)
	case *ast.ExprStmt:
		return r.expr(s.X)
	case *ast.Assign:
		for _, l := range s.Lhs {
			if err := r.target(l); err != nil {
				return err
			}
		}
		return r.exprs(s.Rhs)
	case *ast.OpAssign:
		if err := r.expr(s.Lhs); err != nil {
			return err
		}
		return r.expr(s.Rhs)
	case *ast.ShortVarDecl:
		return r.shortVarDecl(s)
	case *ast.IncDec:
		return r.expr(s.X)
	case *ast.Print:
		return r.exprs(s.Args)
	case *ast.Return:
		if s.Value == nil {
			return nil
		}
		return r.expr(s.Value)
	case *ast.If:
		return r.ifStmt(s)
	case *ast.Switch:
		r.st.EnterScope()
		defer r.st.ExitScope()
		if err := r.optionalStmt(s.Init); err != nil {
			return err
		}
		if s.Tag != nil {
			if err := r.expr(s.Tag); err != nil {
				return err
			}
		}
		for _, c := range s.Cases {
			if err := r.exprs(c.Exprs); err != nil {
				return err
			}
			r.st.EnterScope()
			err := r.stmts(c.Body)
			r.st.ExitScope()
			if err != nil {
				return err
			}
		}
		return nil
	case *ast.For:
		r.st.EnterScope()
		defer r.st.ExitScope()
		if err := r.optionalStmt(s.Init); err != nil {
			return err
		}
		if s.Cond != nil {
			if err := r.expr(s.Cond); err != nil {
				return err
			}
		}
		if err := r.optionalStmt(s.Post); err != nil {
			return err
		}
		return r.block(s.Body)
	case *ast.Break, *ast.Continue, *ast.Empty:
		return nil
	default:
		panic("unknown statement")
	}
}

func (r *resolver) ifStmt(s *ast.If) error {
	r.st.EnterScope()
	defer r.st.ExitScope()
	if err := r.optionalStmt(s.Init); err != nil {
		return err
	}
	if err := r.expr(s.Cond); err != nil {
		return err
	}
	if err := r.block(s.Then); err != nil {
		return err
	}
	switch e := s.Else.(type) {
	case nil:
		return nil
	case *ast.Block:
		return r.block(e)
	case *ast.If:
		return r.ifStmt(e)
	default:
		panic("unknown else branch")
	}
}

// varDecl resolves the initializers before declaring the names, so that
// var x = x refers to an outer x.
func (r *resolver) varDecl(d *ast.VarDecl) error {
	if err := r.exprs(d.Values); err != nil {
		return err
	}
	var k kind.Kind = kind.Undefined{}
	if d.Type != nil {
		declared, err := r.typeExpr(d.Type)
		if err != nil {
			return err
		}
		k = declared
	}
	for _, name := range d.Names {
		sym, err := r.st.Declare(symtab.Variable{Kind: k}, name.Name, name.Line)
		if err != nil {
			return err
		}
		name.Symbol = sym
	}
	return nil
}

func (r *resolver) shortVarDecl(d *ast.ShortVarDecl) error {
	if err := r.exprs(d.Values); err != nil {
		return err
	}
	d.New = make([]bool, len(d.Names))
	seen := map[string]bool{}
	anyNew := false
	for i, name := range d.Names {
		if name.Name == "_" {
			name.Symbol = blankSymbol(name.Line)
			continue
		}
		if seen[name.Name] {
			return diag.Errorf(name.Line, "%s repeated on left side of :=", name.Name)
		}
		seen[name.Name] = true
		if existing := r.st.LookupLocal(name.Name); existing != nil {
			name.Symbol = existing
			continue
		}
		sym, err := r.st.Declare(symtab.Variable{Kind: kind.Undefined{}}, name.Name, name.Line)
		if err != nil {
			return err
		}
		name.Symbol = sym
		d.New[i] = true
		anyNew = true
	}
	if !anyNew {
		return diag.Errorf(d.Line, "no new variables on left side of :=")
	}
	return nil
}

func blankSymbol(line int) *symtab.Symbol {
	return &symtab.Symbol{Name: "_", Line: line, Renamed: "_", Decl: symtab.Variable{Kind: kind.Underscore{}}}
}

// target resolves the left side of an assignment, where _ is allowed.
func (r *resolver) target(e ast.Expr) error {
	if id, ok := e.(*ast.Ident); ok && id.Name == "_" {
		id.Symbol = blankSymbol(id.Line)
		return nil
	}
	return r.expr(e)
}

func (r *resolver) exprs(exprs []ast.Expr) error {
	for _, e := range exprs {
		if err := r.expr(e); err != nil {
			return err
		}
	}
	return nil
}

func (r *resolver) expr(e ast.Expr) error {
	switch e := e.(type) {
	case *ast.Ident:
		sym, err := r.st.Lookup(e.Name, e.Line)
		if err != nil {
			return err
		}
		e.Symbol = sym
		return nil
	case *ast.IntLit, *ast.FloatLit, *ast.RuneLit, *ast.StringLit:
		return nil
	case *ast.Binary:
		if err := r.expr(e.X); err != nil {
			return err
		}
		return r.expr(e.Y)
	case *ast.Unary:
		return r.expr(e.X)
	case *ast.Call:
		if err := r.expr(e.Fun); err != nil {
			return err
		}
		return r.exprs(e.Args)
	case *ast.Index:
		if err := r.expr(e.X); err != nil {
			return err
		}
		return r.expr(e.Index)
	case *ast.Selector:
		return r.expr(e.X)
	default:
		panic("unknown expression")
	}
}
