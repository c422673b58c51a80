// Package symtab implements the lexically scoped symbol table.
//
// Scopes form a stack: the universe scope with the predeclared names, the
// package scope, then one frame per block being walked. Every declaration
// except the blank identifier, top-level main and init, and predeclared names
// receives a program-wide unique renamed identifier of the form name_N.
package symtab

import (
	"fmt"
	"io"
	"strconv"

	"github.com/strager/golite/diag"
	"github.com/strager/golite/kind"
)

const (
	universeLevel = 0
	packageLevel  = 1
)

// Symbol is a declared name.
type Symbol struct {
	Name    string
	Line    int
	Renamed string
	Decl    Declaration
}

// Counter hands out rename suffixes. One Counter is shared by every scope of
// a table.
type Counter struct {
	last int
}

func (c *Counter) Next() int {
	c.last++
	return c.last
}

// Scope is one frame of the scope stack.
type Scope struct {
	Level      int
	InFunction bool
	Result     kind.Kind // expected return kind; nil for void functions
	symbols    map[string]*Symbol
	order      []*Symbol
}

func newScope(level int) *Scope {
	return &Scope{Level: level, symbols: make(map[string]*Symbol)}
}

// Symbols returns the symbols of the scope in declaration order.
func (s *Scope) Symbols() []*Symbol {
	return s.order
}

func (s *Scope) insert(sym *Symbol) {
	s.symbols[sym.Name] = sym
	s.order = append(s.order, sym)
}

type SymbolTable struct {
	scopes  []*Scope
	counter *Counter
	trace   io.Writer
	record  bool
	closed  []*Scope // scopes left so far, when recording
}

// NewSymbolTable returns a table positioned in the package scope.
func NewSymbolTable() *SymbolTable {
	return NewSymbolTableWithCounter(&Counter{})
}

// NewSymbolTableWithCounter is NewSymbolTable drawing rename suffixes from
// counter.
func NewSymbolTableWithCounter(counter *Counter) *SymbolTable {
	st := &SymbolTable{counter: counter}
	universe := newScope(universeLevel)
	for _, b := range []kind.Basic{kind.Int, kind.Float, kind.Rune, kind.String, kind.Bool} {
		universe.insert(&Symbol{Name: b.String(), Renamed: b.String(), Decl: Type{Kind: b}})
	}
	for _, name := range []string{"true", "false"} {
		universe.insert(&Symbol{Name: name, Renamed: name, Decl: Constant{Kind: kind.Bool}})
	}
	for _, name := range []string{"append", "len", "cap"} {
		universe.insert(&Symbol{Name: name, Renamed: name, Decl: Builtin{Name: name}})
	}
	st.scopes = []*Scope{universe, newScope(packageLevel)}
	return st
}

// SetTrace makes the table print every scope it leaves to w.
func (st *SymbolTable) SetTrace(w io.Writer) {
	st.trace = w
}

// RecordScopes makes the table keep every scope it leaves for WriteScopes.
func (st *SymbolTable) RecordScopes() {
	st.record = true
}

// WriteScopes prints the recorded scopes in the order they were left. Each
// symbol shows its declaration as it is now, so kinds inferred after
// resolution appear.
func (st *SymbolTable) WriteScopes(w io.Writer) {
	for _, scope := range st.closed {
		printScope(w, scope)
	}
}

func (st *SymbolTable) Current() *Scope {
	return st.scopes[len(st.scopes)-1]
}

// IsTopLevel reports whether declarations currently go to the package scope.
func (st *SymbolTable) IsTopLevel() bool {
	return st.Current().Level == packageLevel
}

// EnterScope pushes a block scope. It inherits the function context of its
// parent.
func (st *SymbolTable) EnterScope() {
	parent := st.Current()
	scope := newScope(parent.Level + 1)
	scope.InFunction = parent.InFunction
	scope.Result = parent.Result
	st.scopes = append(st.scopes, scope)
}

// EnterFunction pushes the scope of a function body returning result.
func (st *SymbolTable) EnterFunction(result kind.Kind) {
	scope := newScope(st.Current().Level + 1)
	scope.InFunction = true
	scope.Result = result
	st.scopes = append(st.scopes, scope)
}

// ExitScope pops the innermost scope.
func (st *SymbolTable) ExitScope() {
	scope := st.Current()
	if scope.Level <= packageLevel {
		panic("ExitScope without matching EnterScope")
	}
	st.leave(scope)
	st.scopes = st.scopes[:len(st.scopes)-1]
}

// Finish leaves the package scope, printing or recording it.
func (st *SymbolTable) Finish() {
	st.leave(st.scopes[packageLevel])
}

func (st *SymbolTable) leave(scope *Scope) {
	if st.trace != nil {
		printScope(st.trace, scope)
	}
	if st.record {
		st.closed = append(st.closed, scope)
	}
}

func printScope(w io.Writer, scope *Scope) {
	fmt.Fprintf(w, "scope level %d:\n", scope.Level)
	for _, sym := range scope.order {
		fmt.Fprintf(w, "  %s -> %s (%s)\n", sym.Name, sym.Renamed, sym.Decl)
	}
}

// Declare adds name to the innermost scope and returns its symbol.
func (st *SymbolTable) Declare(decl Declaration, name string, line int) (*Symbol, error) {
	if name == "_" {
		return &Symbol{Name: name, Line: line, Renamed: name, Decl: decl}, nil
	}

	scope := st.Current()
	if scope.Level == packageLevel && (name == "init" || name == "main") {
		switch d := decl.(type) {
		case Function:
			if err := checkSpecialSignature(name, d, line); err != nil {
				return nil, err
			}
		case Dummy:
		default:
			return nil, diag.Errorf(line, "cannot declare %s - must be func", name)
		}
		if name == "init" {
			return &Symbol{Name: name, Line: line, Renamed: name, Decl: decl}, nil
		}
	}

	if prev, ok := scope.symbols[name]; ok {
		return nil, diag.Errorf(line, "%s redeclared in this block (previous declaration at line %d)", name, prev.Line)
	}

	renamed := name
	if !(scope.Level == packageLevel && name == "main") {
		renamed = name + "_" + strconv.Itoa(st.counter.Next())
	}
	sym := &Symbol{Name: name, Line: line, Renamed: renamed, Decl: decl}
	scope.insert(sym)
	return sym, nil
}

// Lookup finds the innermost declaration of name.
func (st *SymbolTable) Lookup(name string, line int) (*Symbol, error) {
	if name == "_" {
		return nil, diag.Errorf(line, "cannot use _ as value")
	}
	for i := len(st.scopes) - 1; i >= 0; i-- {
		if sym, ok := st.scopes[i].symbols[name]; ok {
			return sym, nil
		}
	}
	return nil, diag.Errorf(line, "undeclared identifier: %s", name)
}

// LookupLocal finds name in the innermost scope only.
func (st *SymbolTable) LookupLocal(name string) *Symbol {
	return st.Current().symbols[name]
}

// UpgradeDummy replaces the Dummy declared for name with its signature. The
// symbol keeps its renamed identifier.
func (st *SymbolTable) UpgradeDummy(name string, params []kind.Kind, result kind.Kind, line int) (*Symbol, error) {
	fn := Function{Params: params, Result: result}
	if err := checkSpecialSignature(name, fn, line); err != nil && st.IsTopLevel() {
		return nil, err
	}
	sym := st.Current().symbols[name]
	if sym == nil {
		return nil, diag.Errorf(line, "undeclared identifier: %s", name)
	}
	if _, ok := sym.Decl.(Dummy); !ok {
		return nil, diag.Errorf(line, "%s is not a forward declaration", name)
	}
	sym.Decl = fn
	return sym, nil
}

func checkSpecialSignature(name string, fn Function, line int) error {
	if name != "init" && name != "main" {
		return nil
	}
	if len(fn.Params) != 0 || fn.Result != nil {
		return diag.Errorf(line, "func %s must have no arguments and no return values", name)
	}
	return nil
}
