// Package codegen lowers a checked program to JavaScript.
//
// Every expression lowers to a list of statements that must run first (pre)
// and an effect-free expression that yields its value (post). Calls are
// always hoisted into pre, so the order in which pre statements are emitted
// is the order in which the source evaluates its calls.
package codegen

import (
	_ "embed"
	"fmt"
	"strconv"
	"strings"

	"github.com/strager/golite/ast"
	"github.com/strager/golite/symtab"
)

// Runtime is the default program header. It defines every helper the
// generated code calls.
//
//go:embed runtime.js
var Runtime string

type Generator struct {
	out    strings.Builder
	indent int
	temps  int
	blanks int
	loops  []*ast.For // enclosing loops, innermost last
	inits  []string
}

// Generate returns the JavaScript program for prog: header, then the
// package variables in initialization order, then the functions, then the
// init calls, then the call to main. Function declarations are hoisted, so
// variable initializers may call any of them.
func Generate(prog *ast.Program, header string) string {
	g := &Generator{}
	g.out.WriteString(header)
	if header != "" && !strings.HasSuffix(header, "\n") {
		g.out.WriteByte('\n')
	}
	for _, d := range prog.Inits {
		g.varDecl(d)
	}
	for _, decl := range prog.Decls {
		switch d := decl.(type) {
		case *ast.FuncDecl:
			g.funcDecl(d)
		case *ast.VarDecl, *ast.TypeDecl:
		default:
			panic("unknown declaration")
		}
	}
	for _, name := range g.inits {
		g.emit(name + "();")
	}
	g.emit("main();")
	return g.out.String()
}

func (g *Generator) emit(s string) {
	for i := 0; i < g.indent; i++ {
		g.out.WriteString("  ")
	}
	g.out.WriteString(s)
	g.out.WriteByte('\n')
}

func (g *Generator) emitf(format string, args ...any) {
	g.emit(fmt.Sprintf(format, args...))
}

func (g *Generator) emitAll(stmts []string) {
	for _, s := range stmts {
		g.emit(s)
	}
}

func (g *Generator) temp() string {
	g.temps++
	return "$t" + strconv.Itoa(g.temps)
}

// name returns the target identifier of a declared symbol. Blank symbols get
// a fresh name that nothing refers to.
func (g *Generator) name(sym *symtab.Symbol) string {
	if sym.Renamed == "_" {
		g.blanks++
		return "$blank" + strconv.Itoa(g.blanks)
	}
	return sym.Renamed
}

func (g *Generator) funcDecl(d *ast.FuncDecl) {
	var name string
	switch d.Name.Name {
	case "_":
		return
	case "init":
		name = "init$" + strconv.Itoa(len(g.inits))
		g.inits = append(g.inits, name)
	default:
		name = d.Name.Symbol.Renamed
	}
	var params []string
	for _, p := range d.Params {
		params = append(params, g.name(p.Name.Symbol))
	}
	g.emitf("function %s(%s) {", name, strings.Join(params, ", "))
	g.body(d.Body.Stmts)
	g.emit("}")
}

func (g *Generator) body(stmts []ast.Stmt) {
	g.indent++
	for _, s := range stmts {
		g.stmt(s)
	}
	g.indent--
}
