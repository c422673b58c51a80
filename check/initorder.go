package check

import (
	"github.com/strager/golite/ast"
	"github.com/strager/golite/diag"
	"github.com/strager/golite/symtab"
)

// initVar is one package variable and the package variables its
// initializer refers to, directly or through the functions it mentions.
type initVar struct {
	decl *ast.VarDecl
	deps map[*symtab.Symbol]bool
}

// initOrder sets prog.Inits. Variables are initialized the way Go does it:
// repeatedly the earliest variable in declaration order that does not
// depend on an uninitialized variable.
func initOrder(prog *ast.Program) error {
	funcs := map[*symtab.Symbol]*ast.FuncDecl{}
	globals := map[*symtab.Symbol]bool{}
	var pending []*initVar
	for _, decl := range prog.Decls {
		switch d := decl.(type) {
		case *ast.FuncDecl:
			if d.Name.Symbol != nil {
				funcs[d.Name.Symbol] = d
			}
		case *ast.VarDecl:
			for i, name := range d.Names {
				v := &ast.VarDecl{Line: d.Line, Names: []*ast.Ident{name}, Type: d.Type}
				if len(d.Values) > 0 {
					v.Values = []ast.Expr{d.Values[i]}
				}
				if name.Symbol != nil && name.Symbol.Renamed != "_" {
					globals[name.Symbol] = true
				}
				pending = append(pending, &initVar{decl: v})
			}
		}
	}

	for _, v := range pending {
		v.deps = map[*symtab.Symbol]bool{}
		seen := map[*ast.FuncDecl]bool{}
		var visit func(ast.Node)
		visit = func(n ast.Node) {
			ast.Inspect(n, func(n ast.Node) bool {
				id, ok := n.(*ast.Ident)
				if !ok || id.Symbol == nil {
					return true
				}
				if globals[id.Symbol] {
					v.deps[id.Symbol] = true
				} else if fn := funcs[id.Symbol]; fn != nil && !seen[fn] {
					seen[fn] = true
					visit(fn.Body)
				}
				return true
			})
		}
		for _, e := range v.decl.Values {
			visit(e)
		}
	}

	order := append([]*initVar(nil), pending...)
	initialized := map[*symtab.Symbol]bool{}
	prog.Inits = nil
	for len(pending) > 0 {
		next := -1
		for i, v := range pending {
			if ready(v, initialized) {
				next = i
				break
			}
		}
		if next < 0 {
			name := cycleMember(pending[0], order, initialized).decl.Names[0]
			return diag.Errorf(name.Line, "initialization cycle for %s", name.Name)
		}
		v := pending[next]
		prog.Inits = append(prog.Inits, v.decl)
		initialized[v.decl.Names[0].Symbol] = true
		pending = append(pending[:next], pending[next+1:]...)
	}
	return nil
}

// cycleMember follows uninitialized dependencies from v, in declaration
// order, until it reaches a variable a second time. That variable is on a
// cycle.
func cycleMember(v *initVar, order []*initVar, initialized map[*symtab.Symbol]bool) *initVar {
	seen := map[*initVar]bool{}
	for !seen[v] {
		seen[v] = true
		for _, dep := range order {
			sym := dep.decl.Names[0].Symbol
			if v.deps[sym] && !initialized[sym] {
				v = dep
				break
			}
		}
	}
	return v
}

func ready(v *initVar, initialized map[*symtab.Symbol]bool) bool {
	for dep := range v.deps {
		if !initialized[dep] {
			return false
		}
	}
	return true
}
