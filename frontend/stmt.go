package frontend

import (
	goast "go/ast"
	"go/token"
	"strings"

	"github.com/strager/golite/ast"
	"github.com/strager/golite/diag"
)

func (c *converter) block(b *goast.BlockStmt) (*ast.Block, error) {
	stmts, err := c.stmts(b.List)
	if err != nil {
		return nil, err
	}
	return &ast.Block{Line: c.line(b.Pos()), Stmts: stmts}, nil
}

func (c *converter) stmts(list []goast.Stmt) ([]ast.Stmt, error) {
	var out []ast.Stmt
	for _, s := range list {
		if decl, ok := s.(*goast.DeclStmt); ok {
			gen, ok := decl.Decl.(*goast.GenDecl)
			if !ok {
				return nil, c.unsupported(decl, "declaration")
			}
			stmts, err := c.genDecl(gen)
			if err != nil {
				return nil, err
			}
			out = append(out, stmts...)
			continue
		}
		stmt, err := c.stmt(s)
		if err != nil {
			return nil, err
		}
		out = append(out, stmt)
	}
	return out, nil
}

// simpleStmt converts the optional init and post statements of if, switch
// and for.
func (c *converter) simpleStmt(s goast.Stmt) (ast.Stmt, error) {
	if s == nil {
		return nil, nil
	}
	return c.stmt(s)
}

func (c *converter) stmt(s goast.Stmt) (ast.Stmt, error) {
	line := c.line(s.Pos())
	switch s := s.(type) {
	case *goast.BlockStmt:
		return c.block(s)
	case *goast.EmptyStmt:
		return &ast.Empty{Line: line}, nil
	case *goast.ExprStmt:
		if p, err := c.printCall(s.X); p != nil || err != nil {
			return p, err
		}
		x, err := c.expr(s.X)
		if err != nil {
			return nil, err
		}
		if _, ok := x.(*ast.Call); !ok {
			return nil, diag.Errorf(line, "expression statement must be a function call")
		}
		return &ast.ExprStmt{Line: line, X: x}, nil
	case *goast.AssignStmt:
		return c.assign(s)
	case *goast.IncDecStmt:
		x, err := c.expr(s.X)
		if err != nil {
			return nil, err
		}
		return &ast.IncDec{Line: line, X: x, Inc: s.Tok == token.INC}, nil
	case *goast.ReturnStmt:
		ret := &ast.Return{Line: line}
		switch len(s.Results) {
		case 0:
		case 1:
			v, err := c.expr(s.Results[0])
			if err != nil {
				return nil, err
			}
			ret.Value = v
		default:
			return nil, c.unsupported(s, "multiple return values")
		}
		return ret, nil
	case *goast.IfStmt:
		return c.ifStmt(s)
	case *goast.SwitchStmt:
		return c.switchStmt(s)
	case *goast.ForStmt:
		return c.forStmt(s)
	case *goast.BranchStmt:
		if s.Label != nil {
			return nil, c.unsupported(s, "labeled "+s.Tok.String())
		}
		switch s.Tok {
		case token.BREAK:
			return &ast.Break{Line: line}, nil
		case token.CONTINUE:
			return &ast.Continue{Line: line}, nil
		default:
			return nil, c.unsupported(s, s.Tok.String())
		}
	case *goast.RangeStmt:
		return nil, c.unsupported(s, "range loop")
	case *goast.LabeledStmt:
		return nil, c.unsupported(s, "label")
	case *goast.DeferStmt:
		return nil, c.unsupported(s, "defer")
	case *goast.GoStmt:
		return nil, c.unsupported(s, "go statement")
	default:
		return nil, c.unsupported(s, "statement")
	}
}

// printCall recognizes print(...) and println(...) statements. It returns
// nil and no error for any other expression.
func (c *converter) printCall(e goast.Expr) (*ast.Print, error) {
	call, ok := e.(*goast.CallExpr)
	if !ok || call.Ellipsis.IsValid() {
		return nil, nil
	}
	fun, ok := call.Fun.(*goast.Ident)
	if !ok || (fun.Name != "print" && fun.Name != "println") {
		return nil, nil
	}
	args, err := c.exprs(call.Args)
	if err != nil {
		return nil, err
	}
	return &ast.Print{Line: c.line(call.Pos()), Args: args, Newline: fun.Name == "println"}, nil
}

func (c *converter) assign(s *goast.AssignStmt) (ast.Stmt, error) {
	line := c.line(s.Pos())
	rhs, err := c.exprs(s.Rhs)
	if err != nil {
		return nil, err
	}
	switch s.Tok {
	case token.DEFINE:
		decl := &ast.ShortVarDecl{Line: line, Values: rhs}
		for _, l := range s.Lhs {
			id, ok := l.(*goast.Ident)
			if !ok {
				return nil, diag.Errorf(line, "non-name on left side of :=")
			}
			decl.Names = append(decl.Names, c.ident(id))
		}
		if len(decl.Names) != len(rhs) {
			return nil, diag.Errorf(line, "assignment mismatch: %d variables but %d values", len(decl.Names), len(rhs))
		}
		return decl, nil
	case token.ASSIGN:
		lhs, err := c.exprs(s.Lhs)
		if err != nil {
			return nil, err
		}
		if len(lhs) != len(rhs) {
			return nil, diag.Errorf(line, "assignment mismatch: %d variables but %d values", len(lhs), len(rhs))
		}
		return &ast.Assign{Line: line, Lhs: lhs, Rhs: rhs}, nil
	default:
		if len(s.Lhs) != 1 || len(rhs) != 1 {
			return nil, diag.Errorf(line, "assignment operation %s requires single-valued expressions", s.Tok)
		}
		lhs, err := c.expr(s.Lhs[0])
		if err != nil {
			return nil, err
		}
		op := strings.TrimSuffix(s.Tok.String(), "=")
		return &ast.OpAssign{Line: line, Op: op, Lhs: lhs, Rhs: rhs[0]}, nil
	}
}

func (c *converter) ifStmt(s *goast.IfStmt) (*ast.If, error) {
	init, err := c.simpleStmt(s.Init)
	if err != nil {
		return nil, err
	}
	cond, err := c.expr(s.Cond)
	if err != nil {
		return nil, err
	}
	then, err := c.block(s.Body)
	if err != nil {
		return nil, err
	}
	out := &ast.If{Line: c.line(s.Pos()), Init: init, Cond: cond, Then: then}
	switch e := s.Else.(type) {
	case nil:
	case *goast.BlockStmt:
		out.Else, err = c.block(e)
	case *goast.IfStmt:
		out.Else, err = c.ifStmt(e)
	default:
		err = c.unsupported(e, "else branch")
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *converter) switchStmt(s *goast.SwitchStmt) (*ast.Switch, error) {
	init, err := c.simpleStmt(s.Init)
	if err != nil {
		return nil, err
	}
	out := &ast.Switch{Line: c.line(s.Pos()), Init: init}
	if s.Tag != nil {
		if out.Tag, err = c.expr(s.Tag); err != nil {
			return nil, err
		}
	}
	for _, clause := range s.Body.List {
		cc := clause.(*goast.CaseClause)
		exprs, err := c.exprs(cc.List)
		if err != nil {
			return nil, err
		}
		for _, stmt := range cc.Body {
			if br, ok := stmt.(*goast.BranchStmt); ok && br.Tok == token.FALLTHROUGH {
				return nil, c.unsupported(br, "fallthrough")
			}
		}
		body, err := c.stmts(cc.Body)
		if err != nil {
			return nil, err
		}
		out.Cases = append(out.Cases, &ast.CaseClause{
			Line:    c.line(cc.Pos()),
			Exprs:   exprs,
			Default: cc.List == nil,
			Body:    body,
		})
	}
	return out, nil
}

func (c *converter) forStmt(s *goast.ForStmt) (*ast.For, error) {
	init, err := c.simpleStmt(s.Init)
	if err != nil {
		return nil, err
	}
	post, err := c.simpleStmt(s.Post)
	if err != nil {
		return nil, err
	}
	if _, ok := post.(*ast.ShortVarDecl); ok {
		return nil, diag.Errorf(c.line(s.Post.Pos()), "cannot declare in post statement of for loop")
	}
	out := &ast.For{Line: c.line(s.Pos()), Init: init, Post: post}
	if s.Cond != nil {
		if out.Cond, err = c.expr(s.Cond); err != nil {
			return nil, err
		}
	}
	if out.Body, err = c.block(s.Body); err != nil {
		return nil, err
	}
	return out, nil
}
