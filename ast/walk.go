package ast

// Inspect calls f for node and, while f returns true, for each of its
// children in source order.
func Inspect(node Node, f func(Node) bool) {
	if node == nil || !f(node) {
		return
	}
	switch n := node.(type) {
	case *Program:
		for _, d := range n.Decls {
			Inspect(d, f)
		}
	case *ArrayType:
		Inspect(n.Elem, f)
	case *SliceType:
		Inspect(n.Elem, f)
	case *StructType:
		for _, field := range n.Fields {
			Inspect(field, f)
		}
	case *FieldDecl:
		Inspect(n.Type, f)
	case *VarDecl:
		for _, name := range n.Names {
			Inspect(name, f)
		}
		if n.Type != nil {
			Inspect(n.Type, f)
		}
		inspectExprs(n.Values, f)
	case *TypeDecl:
		Inspect(n.Name, f)
		Inspect(n.Type, f)
	case *Param:
		Inspect(n.Name, f)
		Inspect(n.Type, f)
	case *FuncDecl:
		Inspect(n.Name, f)
		for _, p := range n.Params {
			Inspect(p, f)
		}
		if n.Result != nil {
			Inspect(n.Result, f)
		}
		Inspect(n.Body, f)
	case *Block:
		inspectStmts(n.Stmts, f)
	case *ExprStmt:
		Inspect(n.X, f)
	case *Assign:
		inspectExprs(n.Lhs, f)
		inspectExprs(n.Rhs, f)
	case *OpAssign:
		Inspect(n.Lhs, f)
		Inspect(n.Rhs, f)
	case *ShortVarDecl:
		for _, name := range n.Names {
			Inspect(name, f)
		}
		inspectExprs(n.Values, f)
	case *IncDec:
		Inspect(n.X, f)
	case *Print:
		inspectExprs(n.Args, f)
	case *Return:
		if n.Value != nil {
			Inspect(n.Value, f)
		}
	case *If:
		if n.Init != nil {
			Inspect(n.Init, f)
		}
		Inspect(n.Cond, f)
		Inspect(n.Then, f)
		if n.Else != nil {
			Inspect(n.Else, f)
		}
	case *Switch:
		if n.Init != nil {
			Inspect(n.Init, f)
		}
		if n.Tag != nil {
			Inspect(n.Tag, f)
		}
		for _, c := range n.Cases {
			Inspect(c, f)
		}
	case *CaseClause:
		inspectExprs(n.Exprs, f)
		inspectStmts(n.Body, f)
	case *For:
		if n.Init != nil {
			Inspect(n.Init, f)
		}
		if n.Cond != nil {
			Inspect(n.Cond, f)
		}
		if n.Post != nil {
			Inspect(n.Post, f)
		}
		Inspect(n.Body, f)
	case *Binary:
		Inspect(n.X, f)
		Inspect(n.Y, f)
	case *Unary:
		Inspect(n.X, f)
	case *Call:
		Inspect(n.Fun, f)
		inspectExprs(n.Args, f)
	case *Index:
		Inspect(n.X, f)
		Inspect(n.Index, f)
	case *Selector:
		Inspect(n.X, f)
	}
}

func inspectExprs(exprs []Expr, f func(Node) bool) {
	for _, e := range exprs {
		Inspect(e, f)
	}
}

func inspectStmts(stmts []Stmt, f func(Node) bool) {
	for _, s := range stmts {
		Inspect(s, f)
	}
}

// Pos makes *Program a Node so that Inspect can start from it.
func (p *Program) Pos() int { return 1 }
