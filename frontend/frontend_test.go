package frontend

import (
	"testing"

	"github.com/go-test/deep"
	"github.com/nalgeon/be"

	"github.com/strager/golite/ast"
)

func id(line int, name string) *ast.Ident {
	return &ast.Ident{Line: line, Name: name}
}

func typeName(line int, name string) *ast.TypeName {
	return &ast.TypeName{Line: line, Name: name}
}

// parseBody parses stmt as the body of main. The statement starts on line 4.
func parseBody(t *testing.T, stmt string) []ast.Stmt {
	t.Helper()
	prog, err := Parse("test.go", []byte("package main\n\nfunc main() {\n"+stmt+"\n}\n"))
	be.Err(t, err, nil)
	be.Equal(t, len(prog.Decls), 1)
	return prog.Decls[0].(*ast.FuncDecl).Body.Stmts
}

func TestParseFunction(t *testing.T) {
	prog, err := Parse("test.go", []byte("package main\n\nfunc add(a, b int) int {\n\treturn a + b\n}\n"))
	be.Err(t, err, nil)
	be.Equal(t, prog.Package, "main")
	be.Equal(t, len(prog.Decls), 1)

	fn := prog.Decls[0].(*ast.FuncDecl)
	be.Equal(t, fn.Line, 3)
	be.Equal(t, fn.Name.Name, "add")
	if diff := deep.Equal(fn.Params, []*ast.Param{
		{Line: 3, Name: id(3, "a"), Type: typeName(3, "int")},
		{Line: 3, Name: id(3, "b"), Type: typeName(3, "int")},
	}); diff != nil {
		t.Error(diff)
	}
	if diff := deep.Equal(fn.Result, ast.TypeExpr(typeName(3, "int"))); diff != nil {
		t.Error(diff)
	}
	if diff := deep.Equal(fn.Body.Stmts, []ast.Stmt{
		&ast.Return{Line: 4, Value: &ast.Binary{Line: 4, Op: "+", X: id(4, "a"), Y: id(4, "b")}},
	}); diff != nil {
		t.Error(diff)
	}
}

func TestParseFunctionWithoutResult(t *testing.T) {
	prog, err := Parse("test.go", []byte("package main\n\nfunc main() {\n}\n"))
	be.Err(t, err, nil)
	fn := prog.Decls[0].(*ast.FuncDecl)
	be.Equal(t, fn.Result, nil)
	be.Equal(t, len(fn.Params), 0)
	be.Equal(t, len(fn.Body.Stmts), 0)
}

func TestGroupedDeclarationsAreFlattened(t *testing.T) {
	prog, err := Parse("test.go", []byte("package main\n\nvar (\n\ta int\n\tb = 2\n)\n\ntype (\n\tt1 int\n\tt2 []t1\n)\n"))
	be.Err(t, err, nil)
	be.Equal(t, len(prog.Decls), 4)

	if diff := deep.Equal(prog.Decls[0], ast.Decl(&ast.VarDecl{Line: 4, Names: []*ast.Ident{id(4, "a")}, Type: typeName(4, "int")})); diff != nil {
		t.Error(diff)
	}
	if diff := deep.Equal(prog.Decls[1], ast.Decl(&ast.VarDecl{Line: 5, Names: []*ast.Ident{id(5, "b")}, Values: []ast.Expr{&ast.IntLit{Line: 5, Value: 2}}})); diff != nil {
		t.Error(diff)
	}
	if diff := deep.Equal(prog.Decls[2], ast.Decl(&ast.TypeDecl{Line: 9, Name: id(9, "t1"), Type: typeName(9, "int")})); diff != nil {
		t.Error(diff)
	}
	if diff := deep.Equal(prog.Decls[3], ast.Decl(&ast.TypeDecl{Line: 10, Name: id(10, "t2"), Type: &ast.SliceType{Line: 10, Elem: typeName(10, "t1")}})); diff != nil {
		t.Error(diff)
	}
}

func TestParseStructType(t *testing.T) {
	prog, err := Parse("test.go", []byte("package main\n\ntype point struct {\n\tx, y int\n\t_    [2]bool\n}\n"))
	be.Err(t, err, nil)
	decl := prog.Decls[0].(*ast.TypeDecl)
	be.Equal(t, decl.Line, 3)
	st := decl.Type.(*ast.StructType)
	be.Equal(t, st.Line, 3)
	if diff := deep.Equal(st.Fields, []*ast.FieldDecl{
		{Line: 4, Names: []string{"x", "y"}, Type: typeName(4, "int")},
		{Line: 5, Names: []string{"_"}, Type: &ast.ArrayType{Line: 5, Len: 2, Elem: typeName(5, "bool")}},
	}); diff != nil {
		t.Error(diff)
	}
}

func TestParseStatements(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want ast.Stmt
	}{
		{
			"short variable declaration",
			"x := 1",
			&ast.ShortVarDecl{Line: 4, Names: []*ast.Ident{id(4, "x")}, Values: []ast.Expr{&ast.IntLit{Line: 4, Value: 1}}},
		},
		{
			"parallel assignment",
			"x, y = y, x",
			&ast.Assign{Line: 4, Lhs: []ast.Expr{id(4, "x"), id(4, "y")}, Rhs: []ast.Expr{id(4, "y"), id(4, "x")}},
		},
		{
			"index assignment",
			"a[i] = -b",
			&ast.Assign{
				Line: 4,
				Lhs:  []ast.Expr{&ast.Index{Line: 4, X: id(4, "a"), Index: id(4, "i")}},
				Rhs:  []ast.Expr{&ast.Unary{Line: 4, Op: "-", X: id(4, "b")}},
			},
		},
		{
			"field assignment",
			"p.x = 0",
			&ast.Assign{Line: 4, Lhs: []ast.Expr{&ast.Selector{Line: 4, X: id(4, "p"), Field: "x"}}, Rhs: []ast.Expr{&ast.IntLit{Line: 4}}},
		},
		{
			"op-assign",
			"x += 2",
			&ast.OpAssign{Line: 4, Op: "+", Lhs: id(4, "x"), Rhs: &ast.IntLit{Line: 4, Value: 2}},
		},
		{
			"and-not assign",
			"x &^= y",
			&ast.OpAssign{Line: 4, Op: "&^", Lhs: id(4, "x"), Rhs: id(4, "y")},
		},
		{"increment", "x++", &ast.IncDec{Line: 4, X: id(4, "x"), Inc: true}},
		{"decrement", "x--", &ast.IncDec{Line: 4, X: id(4, "x")}},
		{
			"println with literals",
			"println(\"a\\tb\", '\\n', 1.5)",
			&ast.Print{Line: 4, Newline: true, Args: []ast.Expr{
				&ast.StringLit{Line: 4, Value: "a\tb"},
				&ast.RuneLit{Line: 4, Value: '\n'},
				&ast.FloatLit{Line: 4, Value: 1.5},
			}},
		},
		{"print without arguments", "print()", &ast.Print{Line: 4}},
		{
			"call statement",
			"f(0x10, (y))",
			&ast.ExprStmt{Line: 4, X: &ast.Call{Line: 4, Fun: id(4, "f"), Args: []ast.Expr{&ast.IntLit{Line: 4, Value: 16}, id(4, "y")}}},
		},
		{
			"variable without value",
			"var s []int",
			&ast.VarDecl{Line: 4, Names: []*ast.Ident{id(4, "s")}, Type: &ast.SliceType{Line: 4, Elem: typeName(4, "int")}},
		},
		{
			"array variable",
			"var a, b [3]float64",
			&ast.VarDecl{Line: 4, Names: []*ast.Ident{id(4, "a"), id(4, "b")}, Type: &ast.ArrayType{Line: 4, Len: 3, Elem: typeName(4, "float64")}},
		},
		{"bare return", "return", &ast.Return{Line: 4}},
		{"nested block", "{\n}", &ast.Block{Line: 4}},
		{"infinite loop", "for {\n}", &ast.For{Line: 4, Body: &ast.Block{Line: 4}}},
		{
			"while loop",
			"for x {\n\tbreak\n}",
			&ast.For{Line: 4, Cond: id(4, "x"), Body: &ast.Block{Line: 4, Stmts: []ast.Stmt{&ast.Break{Line: 5}}}},
		},
		{
			"three-clause loop",
			"for i := 0; i < 3; i++ {\n\tcontinue\n}",
			&ast.For{
				Line: 4,
				Init: &ast.ShortVarDecl{Line: 4, Names: []*ast.Ident{id(4, "i")}, Values: []ast.Expr{&ast.IntLit{Line: 4}}},
				Cond: &ast.Binary{Line: 4, Op: "<", X: id(4, "i"), Y: &ast.IntLit{Line: 4, Value: 3}},
				Post: &ast.IncDec{Line: 4, X: id(4, "i"), Inc: true},
				Body: &ast.Block{Line: 4, Stmts: []ast.Stmt{&ast.Continue{Line: 5}}},
			},
		},
		{
			"else if",
			"if x {\n} else if y {\n}",
			&ast.If{
				Line: 4,
				Cond: id(4, "x"),
				Then: &ast.Block{Line: 4},
				Else: &ast.If{Line: 5, Cond: id(5, "y"), Then: &ast.Block{Line: 5}},
			},
		},
		{
			"if with init",
			"if y := 1; y {\n} else {\n}",
			&ast.If{
				Line: 4,
				Init: &ast.ShortVarDecl{Line: 4, Names: []*ast.Ident{id(4, "y")}, Values: []ast.Expr{&ast.IntLit{Line: 4, Value: 1}}},
				Cond: id(4, "y"),
				Then: &ast.Block{Line: 4},
				Else: &ast.Block{Line: 5},
			},
		},
		{
			"expressionless switch",
			"switch {\ncase x:\n\tbreak\ndefault:\n}",
			&ast.Switch{Line: 4, Cases: []*ast.CaseClause{
				{Line: 5, Exprs: []ast.Expr{id(5, "x")}, Body: []ast.Stmt{&ast.Break{Line: 6}}},
				{Line: 7, Default: true},
			}},
		},
		{
			"switch with tag",
			"switch x {\ncase 1, 2:\n}",
			&ast.Switch{Line: 4, Tag: id(4, "x"), Cases: []*ast.CaseClause{
				{Line: 5, Exprs: []ast.Expr{&ast.IntLit{Line: 5, Value: 1}, &ast.IntLit{Line: 5, Value: 2}}},
			}},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			stmts := parseBody(t, test.src)
			be.Equal(t, len(stmts), 1)
			if diff := deep.Equal(stmts[0], test.want); diff != nil {
				t.Error(diff)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"syntax error", "package main\n\nfunc main() {\n\tprintln(1 +)\n}\n", "line 4: expected operand, found ')'"},
		{"import", "package main\n\nimport \"fmt\"\n", "line 3: unsupported import"},
		{"method", "package main\n\nfunc (t T) m() {\n}\n", "line 3: unsupported method"},
		{"multiple results", "package main\n\nfunc f() (int, int) {\n\treturn 1, 2\n}\n", "line 3: unsupported multiple return values"},
		{"named result", "package main\n\nfunc f() (r int) {\n\treturn\n}\n", "line 3: unsupported named result"},
		{"pointer type", "package main\n\nvar p *int\n", "line 3: unsupported pointer type"},
		{"map type", "package main\n\nvar m map[string]int\n", "line 3: unsupported map type"},
		{"constant", "package main\n\nconst c = 1\n", "line 3: unsupported const declaration"},
		{"array length expression", "package main\n\nvar a [2 + 1]int\n", "line 3: unsupported array length expression"},
		{"declaration count", "package main\n\nvar a, b = 1\n", "line 3: assignment mismatch: 2 variables but 1 values"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Parse("test.go", []byte(test.src))
			if err == nil {
				t.Fatal("expected an error")
			}
			be.Equal(t, err.Error(), test.want)
		})
	}
}

func TestUnsupportedStatements(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"range loop", "for i := range s {\n}", "line 4: unsupported range loop"},
		{"composite literal", "x := []int{1}", "line 4: unsupported composite literal"},
		{"address of", "p := &x", "line 4: unsupported unary operator &"},
		{"address in print", "println(&x)", "line 4: unsupported unary operator &"},
		{"slice expression", "s = s[1:]", "line 4: unsupported slice expression"},
		{"function literal", "f := func() {}", "line 4: unsupported function literal"},
		{"defer", "defer f()", "line 4: unsupported defer"},
		{"go statement", "go f()", "line 4: unsupported go statement"},
		{"label", "loop:\n\tfor {\n\t}", "line 4: unsupported label"},
		{"fallthrough", "switch {\ncase true:\n\tfallthrough\ndefault:\n}", "line 6: unsupported fallthrough"},
		{"local constant", "const c = 1", "line 4: unsupported const declaration"},
		{"expression statement", "x + 1", "line 4: expression statement must be a function call"},
		{"print as value", "y := println(1)", "line 4: println(...) used as value"},
		{"define mismatch", "x, y := 1", "line 4: assignment mismatch: 2 variables but 1 values"},
		{"variadic call", "f(s...)", "line 4: unsupported variadic call"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Parse("test.go", []byte("package main\n\nfunc main() {\n"+test.src+"\n}\n"))
			if err == nil {
				t.Fatal("expected an error")
			}
			be.Equal(t, err.Error(), test.want)
		})
	}
}
