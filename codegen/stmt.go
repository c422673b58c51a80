package codegen

import (
	"strings"

	"github.com/strager/golite/ast"
	"github.com/strager/golite/kind"
)

func (g *Generator) stmt(s ast.Stmt) {
	switch s := s.(type) {
	case *ast.Block:
		g.emit("{")
		g.body(s.Stmts)
		g.emit("}")
	case *ast.VarDecl:
		g.varDecl(s)
	case *ast.TypeDecl, *ast.Empty:
	case *ast.ExprStmt:
		pre, _ := g.expr(s.X)
		g.emitAll(pre)
	case *ast.Assign:
		g.assign(s)
	case *ast.OpAssign:
		pre, t := g.target(s.Lhs, hasCall(s.Rhs))
		g.emitAll(pre)
		vpre, v := g.expr(s.Rhs)
		g.emitAll(vpre)
		g.emit(t.write(binaryCall(s.Op, s.Lhs.KindOf(), t.read, v, s.Line)))
	case *ast.IncDec:
		op := "-"
		if s.Inc {
			op = "+"
		}
		pre, t := g.target(s.X, false)
		g.emitAll(pre)
		g.emit(t.write(binaryCall(op, s.X.KindOf(), t.read, "1", s.Line)))
	case *ast.ShortVarDecl:
		g.shortVarDecl(s)
	case *ast.Print:
		g.print(s)
	case *ast.Return:
		if s.Value == nil {
			g.emit("return;")
			return
		}
		pre, v := g.value(s.Value)
		g.emitAll(pre)
		g.emit("return " + v + ";")
	case *ast.If:
		g.ifStmt(s)
	case *ast.Switch:
		g.switchStmt(s)
	case *ast.For:
		g.forStmt(s)
	case *ast.Break:
		g.emit("break;")
	case *ast.Continue:
		if loop := g.loops[len(g.loops)-1]; loop.Post != nil {
			g.stmt(loop.Post)
		}
		g.emit("continue;")
	default:
		panic("unknown statement")
	}
}

// hasCall reports whether lowering e hoists a call.
func hasCall(e ast.Expr) bool {
	found := false
	ast.Inspect(e, func(n ast.Node) bool {
		if c, ok := n.(*ast.Call); ok && (c.Mode == ast.CallFunction || c.Mode == ast.CallAppend) {
			found = true
		}
		return !found
	})
	return found
}

func isBlankExpr(e ast.Expr) bool {
	id, ok := e.(*ast.Ident)
	return ok && id.Name == "_"
}

// discard emits the evaluation of a value that is not stored anywhere. Only
// values computed by a helper can fail, so only those are kept.
func (g *Generator) discard(pre []string, v string) {
	g.emitAll(pre)
	if strings.Contains(v, "(") {
		g.emit(v + ";")
	}
}

// snapshot saves v in a temporary unless reading it again is equivalent.
func (g *Generator) snapshot(v string) ([]string, string) {
	if simple(v) {
		return nil, v
	}
	t := g.temp()
	return []string{"const " + t + " = " + v + ";"}, t
}

func (g *Generator) varDecl(d *ast.VarDecl) {
	for i, name := range d.Names {
		var pre []string
		var v string
		if len(d.Values) > 0 {
			pre, v = g.value(d.Values[i])
		} else {
			v = zero(name.Kind)
		}
		if isBlank(name.Symbol) {
			if len(d.Values) > 0 {
				g.discard(pre, v)
			}
			continue
		}
		g.emitAll(pre)
		g.emitf("let %s = %s;", name.Symbol.Renamed, v)
	}
}

func (g *Generator) shortVarDecl(d *ast.ShortVarDecl) {
	values := make([]string, len(d.Values))
	for i, e := range d.Values {
		pre, v := g.value(e)
		g.emitAll(pre)
		if len(d.Values) > 1 {
			var spre []string
			spre, v = g.snapshot(v)
			g.emitAll(spre)
		}
		values[i] = v
	}
	for i, name := range d.Names {
		switch {
		case isBlank(name.Symbol):
			if len(d.Values) == 1 {
				g.discard(nil, values[i])
			}
		case d.New[i]:
			g.emitf("let %s = %s;", name.Symbol.Renamed, values[i])
		default:
			g.emitf("%s = %s;", name.Symbol.Renamed, values[i])
		}
	}
}

// target is the left side of an assignment.
type target struct {
	read  string                // reads the current value
	write func(v string) string // stores v
}

// target lowers the assignable expression e. With snapshot set, index
// operands and slices are saved first, so evaluating the right side cannot
// change which element is written.
func (g *Generator) target(e ast.Expr, snapshot bool) ([]string, target) {
	switch e := e.(type) {
	case *ast.Ident:
		name := e.Symbol.Renamed
		return nil, target{
			read:  name,
			write: func(v string) string { return name + " = " + v + ";" },
		}
	case *ast.Selector:
		pre, base := g.container(e.X, snapshot)
		path := base + "." + fieldKey(e.Field)
		return pre, target{
			read:  path,
			write: func(v string) string { return path + " = " + v + ";" },
		}
	case *ast.Index:
		pre, base := g.container(e.X, snapshot)
		ipre, i := g.index(e.Index, snapshot)
		pre = append(pre, ipre...)
		line := e.Line
		return pre, target{
			read:  indexGet(base, i, line),
			write: func(v string) string { return indexSet(base, i, v, line) },
		}
	default:
		panic("unassignable expression")
	}
}

func (g *Generator) index(e ast.Expr, snapshot bool) ([]string, string) {
	pre, i := g.expr(e)
	if snapshot {
		spre, t := g.snapshot(i)
		pre = append(pre, spre...)
		i = t
	}
	return pre, i
}

// container lowers the array, slice or struct holding an assigned element
// or field. Arrays and structs are named by the path to their storage, so
// the write lands in the variable itself. Slices share their elements and
// are evaluated like any other operand.
func (g *Generator) container(e ast.Expr, snapshot bool) ([]string, string) {
	if _, ok := kind.Resolve(e.KindOf()).(*kind.Slice); ok {
		pre, v := g.expr(e)
		if snapshot {
			spre, t := g.snapshot(v)
			pre = append(pre, spre...)
			v = t
		}
		return pre, v
	}
	switch e := e.(type) {
	case *ast.Ident:
		return nil, e.Symbol.Renamed
	case *ast.Selector:
		pre, base := g.container(e.X, snapshot)
		return pre, base + "." + fieldKey(e.Field)
	case *ast.Index:
		pre, base := g.container(e.X, snapshot)
		ipre, i := g.index(e.Index, snapshot)
		return append(pre, ipre...), indexGet(base, i, e.Line)
	default:
		return g.expr(e)
	}
}

// assign lowers lhs... = rhs... in two phases: every index operand on the
// left and every value on the right is evaluated, then the stores happen
// from left to right.
func (g *Generator) assign(s *ast.Assign) {
	if len(s.Lhs) == 1 {
		lhs, rhs := s.Lhs[0], s.Rhs[0]
		if isBlankExpr(lhs) {
			g.discard(g.expr(rhs))
			return
		}
		pre, t := g.target(lhs, hasCall(rhs))
		g.emitAll(pre)
		vpre, v := g.value(rhs)
		g.emitAll(vpre)
		g.emit(t.write(v))
		return
	}

	targets := make([]*target, len(s.Lhs))
	for i, lhs := range s.Lhs {
		if isBlankExpr(lhs) {
			continue
		}
		pre, t := g.target(lhs, true)
		g.emitAll(pre)
		targets[i] = &t
	}
	values := make([]string, len(s.Rhs))
	for i, rhs := range s.Rhs {
		pre, v := g.value(rhs)
		g.emitAll(pre)
		t := g.temp()
		g.emitf("const %s = %s;", t, v)
		values[i] = t
	}
	for i, t := range targets {
		if t != nil {
			g.emit(t.write(values[i]))
		}
	}
}

func (g *Generator) print(s *ast.Print) {
	var calls []string
	for i, arg := range s.Args {
		pre, v := g.expr(arg)
		g.emitAll(pre)
		if len(s.Args) > 1 && strings.Contains(v, "(") {
			var spre []string
			spre, v = g.snapshot(v)
			g.emitAll(spre)
		}
		if s.Newline && i > 0 {
			calls = append(calls, "print_space();")
		}
		if kind.IsFloat(arg.KindOf()) {
			calls = append(calls, "print_float("+v+");")
		} else {
			calls = append(calls, "print_value("+v+");")
		}
	}
	if s.Newline {
		calls = append(calls, "print_newline();")
	}
	g.emitAll(calls)
}

func (g *Generator) ifStmt(s *ast.If) {
	if s.Init != nil {
		g.emit("{")
		g.indent++
		g.stmt(s.Init)
	}
	pre, cond := g.expr(s.Cond)
	g.emitAll(pre)
	g.emitf("if (%s) {", cond)
	g.body(s.Then.Stmts)
	g.elseBranch(s.Else)
	if s.Init != nil {
		g.indent--
		g.emit("}")
	}
}

// elseBranch closes the then-branch of an if and emits its else branch. An
// else-if whose condition hoists statements becomes an else block holding
// those statements and the nested if.
func (g *Generator) elseBranch(e ast.Stmt) {
	switch e := e.(type) {
	case nil:
		g.emit("}")
	case *ast.Block:
		g.emit("} else {")
		g.body(e.Stmts)
		g.emit("}")
	case *ast.If:
		if e.Init == nil && !hasCall(e.Cond) {
			_, cond := g.expr(e.Cond)
			g.emitf("} else if (%s) {", cond)
			g.body(e.Then.Stmts)
			g.elseBranch(e.Else)
			return
		}
		g.emit("} else {")
		g.indent++
		g.ifStmt(e)
		g.indent--
		g.emit("}")
	default:
		panic("unknown else branch")
	}
}

func (g *Generator) switchStmt(s *ast.Switch) {
	if s.Init != nil {
		g.emit("{")
		g.indent++
		g.stmt(s.Init)
	}
	tag := ""
	composite := false
	if s.Tag != nil {
		pre, v := g.expr(s.Tag)
		g.emitAll(pre)
		tag = g.temp()
		g.emitf("const %s = %s;", tag, v)
		composite = !kind.IsBasic(s.Tag.KindOf())
	}
	if tag == "" || composite {
		g.emit("switch (true) {")
	} else {
		g.emitf("switch (%s) {", tag)
	}
	g.indent++
	for _, cc := range s.Cases {
		var labels []string
		if cc.Default {
			labels = append(labels, "default:")
		}
		for _, e := range cc.Exprs {
			pre, v := g.expr(e)
			if len(pre) > 0 {
				v = iife(pre, v)
			}
			if composite {
				v = "binary_Eq(" + tag + ", " + v + ")"
			}
			labels = append(labels, "case "+v+":")
		}
		labels[len(labels)-1] += " {"
		g.emitAll(labels)
		g.indent++
		for _, st := range cc.Body {
			g.stmt(st)
		}
		g.emit("break;")
		g.indent--
		g.emit("}")
	}
	g.indent--
	g.emit("}")
	if s.Init != nil {
		g.indent--
		g.emit("}")
	}
}

func (g *Generator) forStmt(s *ast.For) {
	if s.Init != nil {
		g.emit("{")
		g.indent++
		g.stmt(s.Init)
	}
	g.emit("while (true) {")
	g.indent++
	if s.Cond != nil {
		pre, cond := g.expr(s.Cond)
		g.emitAll(pre)
		g.emitf("if (!(%s)) break;", cond)
	}
	g.loops = append(g.loops, s)
	for _, st := range s.Body.Stmts {
		g.stmt(st)
	}
	g.loops = g.loops[:len(g.loops)-1]
	if s.Post != nil {
		g.stmt(s.Post)
	}
	g.indent--
	g.emit("}")
	if s.Init != nil {
		g.indent--
		g.emit("}")
	}
}
