// Package frontend reads golite source text. The language is a subset of Go,
// so the text is parsed with go/parser and the resulting go/ast tree is
// converted into the compiler's own syntax tree.
package frontend

import (
	"errors"
	goast "go/ast"
	"go/parser"
	"go/scanner"
	"go/token"
	"strconv"

	"github.com/strager/golite/ast"
	"github.com/strager/golite/diag"
)

// Parse converts the source of one file into a Program.
func Parse(filename string, src []byte) (*ast.Program, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, filename, src, parser.SkipObjectResolution)
	if err != nil {
		var list scanner.ErrorList
		if errors.As(err, &list) && len(list) > 0 {
			return nil, diag.Errorf(list[0].Pos.Line, "%s", list[0].Msg)
		}
		return nil, err
	}

	c := &converter{fset: fset}
	prog, err := c.file(file)
	if err != nil {
		return nil, err
	}
	return prog, nil
}

type converter struct {
	fset *token.FileSet
}

func (c *converter) line(pos token.Pos) int {
	return c.fset.Position(pos).Line
}

func (c *converter) unsupported(node goast.Node, what string) error {
	return diag.Errorf(c.line(node.Pos()), "unsupported %s", what)
}

func (c *converter) file(file *goast.File) (*ast.Program, error) {
	prog := &ast.Program{Package: file.Name.Name}
	for _, decl := range file.Decls {
		switch d := decl.(type) {
		case *goast.GenDecl:
			stmts, err := c.genDecl(d)
			if err != nil {
				return nil, err
			}
			for _, s := range stmts {
				prog.Decls = append(prog.Decls, s.(ast.Decl))
			}
		case *goast.FuncDecl:
			fn, err := c.funcDecl(d)
			if err != nil {
				return nil, err
			}
			prog.Decls = append(prog.Decls, fn)
		default:
			return nil, c.unsupported(decl, "declaration")
		}
	}
	return prog, nil
}

func (c *converter) genDecl(d *goast.GenDecl) ([]ast.Stmt, error) {
	var out []ast.Stmt
	switch d.Tok {
	case token.VAR:
		for _, spec := range d.Specs {
			vs := spec.(*goast.ValueSpec)
			decl := &ast.VarDecl{Line: c.line(vs.Pos())}
			for _, name := range vs.Names {
				decl.Names = append(decl.Names, c.ident(name))
			}
			if vs.Type != nil {
				typ, err := c.typeExpr(vs.Type)
				if err != nil {
					return nil, err
				}
				decl.Type = typ
			}
			values, err := c.exprs(vs.Values)
			if err != nil {
				return nil, err
			}
			decl.Values = values
			if len(values) != 0 && len(values) != len(decl.Names) {
				return nil, diag.Errorf(decl.Line, "assignment mismatch: %d variables but %d values", len(decl.Names), len(values))
			}
			out = append(out, decl)
		}
	case token.TYPE:
		for _, spec := range d.Specs {
			ts := spec.(*goast.TypeSpec)
			if ts.TypeParams != nil {
				return nil, c.unsupported(ts, "generic type")
			}
			if ts.Assign.IsValid() {
				return nil, c.unsupported(ts, "type alias")
			}
			typ, err := c.typeExpr(ts.Type)
			if err != nil {
				return nil, err
			}
			out = append(out, &ast.TypeDecl{Line: c.line(ts.Pos()), Name: c.ident(ts.Name), Type: typ})
		}
	case token.IMPORT:
		return nil, c.unsupported(d, "import")
	default:
		return nil, c.unsupported(d, d.Tok.String()+" declaration")
	}
	return out, nil
}

func (c *converter) funcDecl(d *goast.FuncDecl) (*ast.FuncDecl, error) {
	if d.Recv != nil {
		return nil, c.unsupported(d, "method")
	}
	if d.Type.TypeParams != nil {
		return nil, c.unsupported(d, "generic function")
	}
	if d.Body == nil {
		return nil, diag.Errorf(c.line(d.Pos()), "missing function body")
	}
	fn := &ast.FuncDecl{Line: c.line(d.Pos()), Name: c.ident(d.Name)}
	for _, field := range d.Type.Params.List {
		typ, err := c.typeExpr(field.Type)
		if err != nil {
			return nil, err
		}
		if len(field.Names) == 0 {
			return nil, c.unsupported(field, "unnamed parameter")
		}
		for _, name := range field.Names {
			fn.Params = append(fn.Params, &ast.Param{Line: c.line(name.Pos()), Name: c.ident(name), Type: typ})
		}
	}
	if results := d.Type.Results; results != nil {
		if len(results.List) != 1 || len(results.List[0].Names) > 1 {
			return nil, c.unsupported(results, "multiple return values")
		}
		if len(results.List[0].Names) == 1 {
			return nil, c.unsupported(results, "named result")
		}
		typ, err := c.typeExpr(results.List[0].Type)
		if err != nil {
			return nil, err
		}
		fn.Result = typ
	}
	body, err := c.block(d.Body)
	if err != nil {
		return nil, err
	}
	fn.Body = body
	return fn, nil
}

func (c *converter) ident(id *goast.Ident) *ast.Ident {
	return &ast.Ident{Line: c.line(id.Pos()), Name: id.Name}
}

func (c *converter) typeExpr(e goast.Expr) (ast.TypeExpr, error) {
	line := c.line(e.Pos())
	switch e := e.(type) {
	case *goast.Ident:
		return &ast.TypeName{Line: line, Name: e.Name}, nil
	case *goast.ParenExpr:
		return c.typeExpr(e.X)
	case *goast.ArrayType:
		elem, err := c.typeExpr(e.Elt)
		if err != nil {
			return nil, err
		}
		if e.Len == nil {
			return &ast.SliceType{Line: line, Elem: elem}, nil
		}
		lit, ok := e.Len.(*goast.BasicLit)
		if !ok || lit.Kind != token.INT {
			return nil, c.unsupported(e.Len, "array length expression")
		}
		n, err := strconv.ParseInt(lit.Value, 0, 64)
		if err != nil {
			return nil, diag.Errorf(line, "invalid array length %s", lit.Value)
		}
		return &ast.ArrayType{Line: line, Len: n, Elem: elem}, nil
	case *goast.StructType:
		st := &ast.StructType{Line: line}
		for _, field := range e.Fields.List {
			if len(field.Names) == 0 {
				return nil, c.unsupported(field, "embedded field")
			}
			typ, err := c.typeExpr(field.Type)
			if err != nil {
				return nil, err
			}
			fd := &ast.FieldDecl{Line: c.line(field.Pos()), Type: typ}
			for _, name := range field.Names {
				fd.Names = append(fd.Names, name.Name)
			}
			st.Fields = append(st.Fields, fd)
		}
		return st, nil
	case *goast.StarExpr:
		return nil, c.unsupported(e, "pointer type")
	case *goast.MapType:
		return nil, c.unsupported(e, "map type")
	case *goast.SelectorExpr:
		return nil, c.unsupported(e, "qualified type")
	default:
		return nil, c.unsupported(e, "type")
	}
}
