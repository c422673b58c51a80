// Package resolve builds the symbol table for a program. It declares every
// name in the scope where it appears, evaluates declared kinds from type
// syntax, and binds every identifier use to the symbol it refers to.
package resolve

import (
	"github.com/strager/golite/ast"
	"github.com/strager/golite/diag"
	"github.com/strager/golite/kind"
	"github.com/strager/golite/symtab"
)

type resolver struct {
	st *symtab.SymbolTable
}

// Program resolves prog against the package scope of st.
//
// Top-level types and functions are declared before anything else is
// evaluated, so they may be used before their declaration. Global variables
// are declared in source order, and function bodies are walked last.
func Program(prog *ast.Program, st *symtab.SymbolTable) error {
	r := &resolver{st: st}

	type namedType struct {
		decl *ast.TypeDecl
		def  *kind.Defined
	}
	var types []namedType

	for _, decl := range prog.Decls {
		switch d := decl.(type) {
		case *ast.TypeDecl:
			def, err := r.declareType(d)
			if err != nil {
				return err
			}
			types = append(types, namedType{d, def})
		case *ast.FuncDecl:
			if d.Name.Name == "init" {
				continue
			}
			sym, err := st.Declare(symtab.Dummy{}, d.Name.Name, d.Line)
			if err != nil {
				return err
			}
			d.Name.Symbol = sym
		}
	}

	for _, decl := range prog.Decls {
		var err error
		switch d := decl.(type) {
		case *ast.TypeDecl:
			err = r.defineType(d)
		case *ast.FuncDecl:
			err = r.signature(d)
		case *ast.VarDecl:
			err = r.varDecl(d)
		}
		if err != nil {
			return err
		}
	}

	for _, t := range types {
		if err := checkRecursion(t.def, t.decl.Line); err != nil {
			return err
		}
	}

	for _, decl := range prog.Decls {
		if d, ok := decl.(*ast.FuncDecl); ok {
			if err := r.funcBody(d); err != nil {
				return err
			}
		}
	}

	if sym := st.LookupLocal("main"); sym == nil {
		return diag.Errorf(1, "function main is undeclared in the main package")
	}
	st.Finish()
	return nil
}

func (r *resolver) declareType(d *ast.TypeDecl) (*kind.Defined, error) {
	def := &kind.Defined{Name: d.Name.Name}
	sym, err := r.st.Declare(symtab.Type{Kind: def}, d.Name.Name, d.Line)
	if err != nil {
		return nil, err
	}
	d.Name.Symbol = sym
	return def, nil
}

func (r *resolver) defineType(d *ast.TypeDecl) error {
	k, err := r.typeExpr(d.Type)
	if err != nil {
		return err
	}
	d.Name.Symbol.Decl.(symtab.Type).Kind.(*kind.Defined).Underlying = k
	return nil
}

func (r *resolver) signature(d *ast.FuncDecl) error {
	var params []kind.Kind
	for _, p := range d.Params {
		k, err := r.typeExpr(p.Type)
		if err != nil {
			return err
		}
		params = append(params, k)
	}
	var result kind.Kind
	if d.Result != nil {
		k, err := r.typeExpr(d.Result)
		if err != nil {
			return err
		}
		result = k
	}

	switch d.Name.Name {
	case "_":
		d.Name.Symbol.Decl = symtab.Function{Params: params, Result: result}
		return nil
	case "init":
		sym, err := r.st.Declare(symtab.Function{Params: params, Result: result}, "init", d.Line)
		if err != nil {
			return err
		}
		d.Name.Symbol = sym
		return nil
	}
	_, err := r.st.UpgradeDummy(d.Name.Name, params, result, d.Line)
	return err
}

func (r *resolver) funcBody(d *ast.FuncDecl) error {
	fn := d.Name.Symbol.Decl.(symtab.Function)
	r.st.EnterFunction(fn.Result)
	defer r.st.ExitScope()

	for i, p := range d.Params {
		sym, err := r.st.Declare(symtab.Variable{Kind: fn.Params[i]}, p.Name.Name, p.Line)
		if err != nil {
			return err
		}
		p.Name.Symbol = sym
	}
	// The body shares the scope of the parameters.
	return r.stmts(d.Body.Stmts)
}

// checkRecursion rejects named types that contain themselves without a
// slice in between, as such values would be infinitely large.
func checkRecursion(def *kind.Defined, line int) error {
	var visit func(k kind.Kind, path map[*kind.Defined]bool) error
	visit = func(k kind.Kind, path map[*kind.Defined]bool) error {
		switch k := k.(type) {
		case *kind.Defined:
			if path[k] {
				return diag.Errorf(line, "invalid recursive type %s", def.Name)
			}
			if k.Underlying == nil {
				return nil
			}
			path[k] = true
			defer delete(path, k)
			return visit(k.Underlying, path)
		case *kind.Array:
			return visit(k.Elem, path)
		case *kind.Struct:
			for _, f := range k.Fields {
				if err := visit(f.Kind, path); err != nil {
					return err
				}
			}
		}
		return nil
	}
	return visit(def, map[*kind.Defined]bool{})
}

// typeExpr evaluates type syntax in the current scope.
func (r *resolver) typeExpr(t ast.TypeExpr) (kind.Kind, error) {
	switch t := t.(type) {
	case *ast.TypeName:
		if t.Name == "_" {
			return nil, diag.Errorf(t.Line, "cannot use _ as type")
		}
		sym, err := r.st.Lookup(t.Name, t.Line)
		if err != nil {
			return nil, err
		}
		decl, ok := sym.Decl.(symtab.Type)
		if !ok {
			return nil, diag.Errorf(t.Line, "%s is not a type", t.Name)
		}
		t.Symbol = sym
		return decl.Kind, nil
	case *ast.ArrayType:
		elem, err := r.typeExpr(t.Elem)
		if err != nil {
			return nil, err
		}
		return &kind.Array{Elem: elem, Len: t.Len}, nil
	case *ast.SliceType:
		elem, err := r.typeExpr(t.Elem)
		if err != nil {
			return nil, err
		}
		return &kind.Slice{Elem: elem}, nil
	case *ast.StructType:
		st := &kind.Struct{}
		seen := map[string]bool{}
		for _, fd := range t.Fields {
			k, err := r.typeExpr(fd.Type)
			if err != nil {
				return nil, err
			}
			for _, name := range fd.Names {
				if name != "_" {
					if seen[name] {
						return nil, diag.Errorf(fd.Line, "duplicate field %s", name)
					}
					seen[name] = true
				}
				st.Fields = append(st.Fields, kind.Field{Name: name, Kind: k})
			}
		}
		return st, nil
	default:
		panic("unknown type syntax")
	}
}
