package ast

import (
	"strconv"
	"strings"

	"github.com/strager/golite/kind"
)

// SExpr renders a node as an S-expression. Identifiers show their renamed
// name once resolved and every expression shows its kind, so the output
// describes what the later passes see.
func SExpr(n Node) string {
	var sb strings.Builder
	writeNode(&sb, n)
	return sb.String()
}

func writeQuoted(sb *strings.Builder, s string) {
	sb.WriteByte('"')
	sb.WriteString(strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s))
	sb.WriteByte('"')
}

// list writes (head items...). Items are Nodes, strings (written as
// symbols) or nil (written as the symbol nil).
func list(sb *strings.Builder, head string, items ...any) {
	sb.WriteByte('(')
	sb.WriteString(head)
	for _, item := range items {
		sb.WriteByte(' ')
		switch item := item.(type) {
		case string:
			sb.WriteString(item)
		case kind.Kind:
			writeQuoted(sb, kind.Format(item))
		case Node:
			writeNode(sb, item)
		case nil:
			sb.WriteString("nil")
		default:
			panic("cannot render item")
		}
	}
	sb.WriteByte(')')
}

func symbolName(id *Ident) string {
	if id.Symbol != nil {
		return id.Symbol.Renamed
	}
	return id.Name
}

func quoted(s string) string {
	var sb strings.Builder
	writeQuoted(&sb, s)
	return sb.String()
}

func exprItems(exprs []Expr) []any {
	items := make([]any, len(exprs))
	for i, e := range exprs {
		items[i] = e
	}
	return items
}

func stmtItems(stmts []Stmt) []any {
	items := make([]any, len(stmts))
	for i, s := range stmts {
		items[i] = s
	}
	return items
}

func optional(s Stmt) any {
	if s == nil {
		return nil
	}
	return s
}

func writeNode(sb *strings.Builder, n Node) {
	switch n := n.(type) {
	case *Program:
		items := make([]any, len(n.Decls))
		for i, d := range n.Decls {
			items[i] = d
		}
		list(sb, "program", items...)
	case *TypeName:
		sb.WriteString(quoted(n.Name))
	case *ArrayType:
		list(sb, "array", strconv.FormatInt(n.Len, 10), n.Elem)
	case *SliceType:
		list(sb, "slice", n.Elem)
	case *StructType:
		items := make([]any, len(n.Fields))
		for i, f := range n.Fields {
			items[i] = f
		}
		list(sb, "struct", items...)
	case *FieldDecl:
		items := make([]any, 0, len(n.Names)+1)
		for _, name := range n.Names {
			items = append(items, name)
		}
		list(sb, "field", append(items, n.Type)...)
	case *VarDecl:
		items := []any{}
		for _, name := range n.Names {
			items = append(items, symbolName(name))
		}
		if n.Type != nil {
			items = append(items, n.Type)
		}
		list(sb, "var", append(items, exprItems(n.Values)...)...)
	case *TypeDecl:
		list(sb, "type", symbolName(n.Name), n.Type)
	case *Param:
		list(sb, "param", symbolName(n.Name), n.Type)
	case *FuncDecl:
		params := make([]any, len(n.Params))
		for i, p := range n.Params {
			params[i] = p
		}
		var result any
		if n.Result != nil {
			result = n.Result
		}
		sb.WriteString("(func " + symbolName(n.Name) + " ")
		list(sb, "params", params...)
		sb.WriteByte(' ')
		if result == nil {
			sb.WriteString("nil")
		} else {
			writeNode(sb, n.Result)
		}
		sb.WriteByte(' ')
		writeNode(sb, n.Body)
		sb.WriteByte(')')
	case *Block:
		list(sb, "block", stmtItems(n.Stmts)...)
	case *ExprStmt:
		list(sb, "expr", n.X)
	case *Assign:
		sb.WriteString("(assign ")
		list(sb, "lhs", exprItems(n.Lhs)...)
		sb.WriteByte(' ')
		list(sb, "rhs", exprItems(n.Rhs)...)
		sb.WriteByte(')')
	case *OpAssign:
		list(sb, "op-assign", quoted(n.Op), n.Lhs, n.Rhs)
	case *ShortVarDecl:
		names := make([]any, len(n.Names))
		for i, name := range n.Names {
			names[i] = symbolName(name)
		}
		sb.WriteString("(define ")
		list(sb, "names", names...)
		sb.WriteByte(' ')
		list(sb, "values", exprItems(n.Values)...)
		sb.WriteByte(')')
	case *IncDec:
		if n.Inc {
			list(sb, "inc", n.X)
		} else {
			list(sb, "dec", n.X)
		}
	case *Print:
		head := "print"
		if n.Newline {
			head = "println"
		}
		list(sb, head, exprItems(n.Args)...)
	case *Return:
		if n.Value == nil {
			list(sb, "return")
		} else {
			list(sb, "return", n.Value)
		}
	case *If:
		var els any
		if n.Else != nil {
			els = n.Else
		}
		list(sb, "if", optional(n.Init), n.Cond, n.Then, els)
	case *Switch:
		var tag any
		if n.Tag != nil {
			tag = n.Tag
		}
		items := []any{optional(n.Init), tag}
		for _, c := range n.Cases {
			items = append(items, c)
		}
		list(sb, "switch", items...)
	case *CaseClause:
		if n.Default {
			list(sb, "default", stmtItems(n.Body)...)
			return
		}
		sb.WriteString("(case ")
		list(sb, "exprs", exprItems(n.Exprs)...)
		for _, s := range n.Body {
			sb.WriteByte(' ')
			writeNode(sb, s)
		}
		sb.WriteByte(')')
	case *For:
		var cond any
		if n.Cond != nil {
			cond = n.Cond
		}
		list(sb, "for", optional(n.Init), cond, optional(n.Post), n.Body)
	case *Break:
		list(sb, "break")
	case *Continue:
		list(sb, "continue")
	case *Empty:
		list(sb, "empty")
	case *Ident:
		list(sb, "ident", kindItem(n.Kind), symbolName(n))
	case *IntLit:
		list(sb, "lit", kindItem(n.Kind), strconv.FormatInt(n.Value, 10))
	case *FloatLit:
		list(sb, "lit", kindItem(n.Kind), quoted(strconv.FormatFloat(n.Value, 'g', -1, 64)))
	case *RuneLit:
		list(sb, "lit", kindItem(n.Kind), strconv.Itoa(int(n.Value)))
	case *StringLit:
		list(sb, "lit", kindItem(n.Kind), quoted(n.Value))
	case *Binary:
		list(sb, "binary", kindItem(n.Kind), quoted(n.Op), n.X, n.Y)
	case *Unary:
		list(sb, "unary", kindItem(n.Kind), quoted(n.Op), n.X)
	case *Call:
		head := "call"
		switch n.Mode {
		case CallConversion:
			head = "convert"
		case CallAppend:
			head = "append"
		case CallLen:
			head = "len"
		case CallCap:
			head = "cap"
		}
		list(sb, head, append([]any{kindItem(n.Kind), symbolName(n.Fun)}, exprItems(n.Args)...)...)
	case *Index:
		list(sb, "index", kindItem(n.Kind), n.X, n.Index)
	case *Selector:
		list(sb, "field", kindItem(n.Kind), n.X, n.Field)
	default:
		panic("unknown node")
	}
}

// kindItem renders an expression kind. A nil kind, which every expression
// has before checking, shows as "no value".
func kindItem(k kind.Kind) any {
	if k == nil {
		return quoted("no value")
	}
	return k
}
