// Package compiler runs the passes of golite in order: parse, resolve names,
// check kinds and generate JavaScript.
package compiler

import (
	"io"

	"github.com/strager/golite/ast"
	"github.com/strager/golite/check"
	"github.com/strager/golite/codegen"
	"github.com/strager/golite/frontend"
	"github.com/strager/golite/resolve"
	"github.com/strager/golite/symtab"
)

type Options struct {
	// Trace receives every scope of the symbol table in the order the scopes
	// were closed. It is written once checking is done, so variables show
	// their inferred kinds.
	Trace io.Writer
	// Header replaces the embedded runtime when not empty.
	Header string
}

// Check parses, resolves and checks src. The returned program carries the
// symbol of every identifier and the kind of every expression.
func Check(filename string, src []byte, opts Options) (*ast.Program, error) {
	prog, err := frontend.Parse(filename, src)
	if err != nil {
		return nil, err
	}
	st := symtab.NewSymbolTable()
	if opts.Trace != nil {
		st.RecordScopes()
	}
	err = resolve.Program(prog, st)
	if err == nil {
		err = check.Program(prog)
	}
	if opts.Trace != nil {
		st.WriteScopes(opts.Trace)
	}
	if err != nil {
		return nil, err
	}
	return prog, nil
}

// Compile returns the JavaScript program for src, or the first error found.
func Compile(filename string, src []byte, opts Options) (string, error) {
	prog, err := Check(filename, src, opts)
	if err != nil {
		return "", err
	}
	header := opts.Header
	if header == "" {
		header = codegen.Runtime
	}
	return codegen.Generate(prog, header), nil
}
