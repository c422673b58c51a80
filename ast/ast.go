// Package ast defines the syntax tree consumed by the semantic passes.
//
// The tree is built by the front end and read by every later pass. The
// symbol-table constructor fills in Symbol fields and the checker fills in
// the Kind of every expression; a nil Kind means the expression has not been
// checked (or, after checking, that a call produces no value).
package ast

import (
	"github.com/strager/golite/kind"
	"github.com/strager/golite/symtab"
)

type Node interface {
	Pos() int // source line
}

type Expr interface {
	Node
	KindOf() kind.Kind
	SetKind(kind.Kind)
}

type Stmt interface {
	Node
	stmtNode()
}

// Decl is a top-level declaration.
type Decl interface {
	Node
	declNode()
}

type TypeExpr interface {
	Node
	typeNode()
}

type Program struct {
	Package string
	Decls   []Decl

	// Inits lists the package variables in initialization order, one name
	// per declaration. It is set by the checker.
	Inits []*VarDecl
}

// ----------------------------------------------------------------------------
// Type syntax

type TypeName struct {
	Line   int
	Name   string
	Symbol *symtab.Symbol
}

type ArrayType struct {
	Line int
	Len  int64
	Elem TypeExpr
}

type SliceType struct {
	Line int
	Elem TypeExpr
}

type StructType struct {
	Line   int
	Fields []*FieldDecl
}

type FieldDecl struct {
	Line  int
	Names []string
	Type  TypeExpr
}

// ----------------------------------------------------------------------------
// Declarations

type VarDecl struct {
	Line   int
	Names  []*Ident
	Type   TypeExpr // nil when inferred from Values
	Values []Expr   // empty for zero-initialized variables
}

type TypeDecl struct {
	Line int
	Name *Ident
	Type TypeExpr
}

type Param struct {
	Line int
	Name *Ident
	Type TypeExpr
}

type FuncDecl struct {
	Line   int
	Name   *Ident
	Params []*Param
	Result TypeExpr // nil for functions without a result
	Body   *Block
}

// ----------------------------------------------------------------------------
// Statements

type Block struct {
	Line  int
	Stmts []Stmt
}

type ExprStmt struct {
	Line int
	X    Expr
}

// Assign is lhs[0], lhs[1], ... = rhs[0], rhs[1], ...
type Assign struct {
	Line int
	Lhs  []Expr
	Rhs  []Expr
}

// OpAssign is lhs op= rhs. Op is the binary operator without the '='.
type OpAssign struct {
	Line int
	Op   string
	Lhs  Expr
	Rhs  Expr
}

// ShortVarDecl is names := values. New[i] reports whether Names[i] declares
// a variable rather than assigning to one already declared in the same scope.
type ShortVarDecl struct {
	Line   int
	Names  []*Ident
	Values []Expr
	New    []bool
}

type IncDec struct {
	Line int
	X    Expr
	Inc  bool
}

// Print is print(args...) or, with Newline, println(args...).
type Print struct {
	Line    int
	Args    []Expr
	Newline bool
}

type Return struct {
	Line  int
	Value Expr // nil for a bare return
}

type If struct {
	Line int
	Init Stmt // may be nil
	Cond Expr
	Then *Block
	Else Stmt // nil, *Block or *If
}

type Switch struct {
	Line  int
	Init  Stmt // may be nil
	Tag   Expr // nil for an expressionless switch
	Cases []*CaseClause
}

type CaseClause struct {
	Line    int
	Exprs   []Expr
	Default bool
	Body    []Stmt
}

// For covers all three loop forms. Init, Cond and Post may each be nil.
type For struct {
	Line int
	Init Stmt
	Cond Expr
	Post Stmt
	Body *Block
}

type Break struct {
	Line int
}

type Continue struct {
	Line int
}

type Empty struct {
	Line int
}

// ----------------------------------------------------------------------------
// Expressions

type Ident struct {
	Line   int
	Name   string
	Symbol *symtab.Symbol
	Kind   kind.Kind
}

type IntLit struct {
	Line  int
	Value int64
	Kind  kind.Kind
}

type FloatLit struct {
	Line  int
	Value float64
	Kind  kind.Kind
}

type RuneLit struct {
	Line  int
	Value rune
	Kind  kind.Kind
}

type StringLit struct {
	Line  int
	Value string
	Kind  kind.Kind
}

type Binary struct {
	Line int
	Op   string
	X    Expr
	Y    Expr
	Kind kind.Kind
}

type Unary struct {
	Line int
	Op   string
	X    Expr
	Kind kind.Kind
}

type CallMode int

const (
	CallUnknown CallMode = iota
	CallFunction
	CallConversion
	CallAppend
	CallLen
	CallCap
)

type Call struct {
	Line int
	Fun  *Ident
	Args []Expr
	Mode CallMode // set by the checker
	Kind kind.Kind
}

type Index struct {
	Line  int
	X     Expr
	Index Expr
	Kind  kind.Kind
}

type Selector struct {
	Line  int
	X     Expr
	Field string
	Kind  kind.Kind
}

func (n *TypeName) Pos() int     { return n.Line }
func (n *ArrayType) Pos() int    { return n.Line }
func (n *SliceType) Pos() int    { return n.Line }
func (n *StructType) Pos() int   { return n.Line }
func (n *FieldDecl) Pos() int    { return n.Line }
func (n *VarDecl) Pos() int      { return n.Line }
func (n *TypeDecl) Pos() int     { return n.Line }
func (n *Param) Pos() int        { return n.Line }
func (n *FuncDecl) Pos() int     { return n.Line }
func (n *Block) Pos() int        { return n.Line }
func (n *ExprStmt) Pos() int     { return n.Line }
func (n *Assign) Pos() int       { return n.Line }
func (n *OpAssign) Pos() int     { return n.Line }
func (n *ShortVarDecl) Pos() int { return n.Line }
func (n *IncDec) Pos() int       { return n.Line }
func (n *Print) Pos() int        { return n.Line }
func (n *Return) Pos() int       { return n.Line }
func (n *If) Pos() int           { return n.Line }
func (n *Switch) Pos() int       { return n.Line }
func (n *CaseClause) Pos() int   { return n.Line }
func (n *For) Pos() int          { return n.Line }
func (n *Break) Pos() int        { return n.Line }
func (n *Continue) Pos() int     { return n.Line }
func (n *Empty) Pos() int        { return n.Line }
func (n *Ident) Pos() int        { return n.Line }
func (n *IntLit) Pos() int       { return n.Line }
func (n *FloatLit) Pos() int     { return n.Line }
func (n *RuneLit) Pos() int      { return n.Line }
func (n *StringLit) Pos() int    { return n.Line }
func (n *Binary) Pos() int       { return n.Line }
func (n *Unary) Pos() int        { return n.Line }
func (n *Call) Pos() int         { return n.Line }
func (n *Index) Pos() int        { return n.Line }
func (n *Selector) Pos() int     { return n.Line }

func (*TypeName) typeNode()   {}
func (*ArrayType) typeNode()  {}
func (*SliceType) typeNode()  {}
func (*StructType) typeNode() {}

func (*VarDecl) declNode()  {}
func (*TypeDecl) declNode() {}
func (*FuncDecl) declNode() {}

func (*VarDecl) stmtNode()      {}
func (*TypeDecl) stmtNode()     {}
func (*Block) stmtNode()        {}
func (*ExprStmt) stmtNode()     {}
func (*Assign) stmtNode()       {}
func (*OpAssign) stmtNode()     {}
func (*ShortVarDecl) stmtNode() {}
func (*IncDec) stmtNode()       {}
func (*Print) stmtNode()        {}
func (*Return) stmtNode()       {}
func (*If) stmtNode()           {}
func (*Switch) stmtNode()       {}
func (*For) stmtNode()          {}
func (*Break) stmtNode()        {}
func (*Continue) stmtNode()     {}
func (*Empty) stmtNode()        {}

func (n *Ident) KindOf() kind.Kind     { return n.Kind }
func (n *IntLit) KindOf() kind.Kind    { return n.Kind }
func (n *FloatLit) KindOf() kind.Kind  { return n.Kind }
func (n *RuneLit) KindOf() kind.Kind   { return n.Kind }
func (n *StringLit) KindOf() kind.Kind { return n.Kind }
func (n *Binary) KindOf() kind.Kind    { return n.Kind }
func (n *Unary) KindOf() kind.Kind     { return n.Kind }
func (n *Call) KindOf() kind.Kind      { return n.Kind }
func (n *Index) KindOf() kind.Kind     { return n.Kind }
func (n *Selector) KindOf() kind.Kind  { return n.Kind }

func (n *Ident) SetKind(k kind.Kind)     { n.Kind = k }
func (n *IntLit) SetKind(k kind.Kind)    { n.Kind = k }
func (n *FloatLit) SetKind(k kind.Kind)  { n.Kind = k }
func (n *RuneLit) SetKind(k kind.Kind)   { n.Kind = k }
func (n *StringLit) SetKind(k kind.Kind) { n.Kind = k }
func (n *Binary) SetKind(k kind.Kind)    { n.Kind = k }
func (n *Unary) SetKind(k kind.Kind)     { n.Kind = k }
func (n *Call) SetKind(k kind.Kind)      { n.Kind = k }
func (n *Index) SetKind(k kind.Kind)     { n.Kind = k }
func (n *Selector) SetKind(k kind.Kind)  { n.Kind = k }
