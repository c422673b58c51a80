package codegen

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/strager/golite/ast"
	"github.com/strager/golite/kind"
	"github.com/strager/golite/symtab"
)

var binaryHelpers = map[string]string{
	"+":  "Add",
	"-":  "Sub",
	"*":  "Mul",
	"/":  "Div",
	"%":  "Mod",
	"&":  "And",
	"|":  "Or",
	"^":  "Xor",
	"&^": "AndNot",
	"<<": "Shl",
	">>": "Shr",
	"==": "Eq",
	"!=": "Neq",
	"<":  "Lt",
	"<=": "Leq",
	">":  "Gt",
	">=": "Geq",
}

// Helpers with a separate integer version, which wraps to 32 bits and
// truncates division.
var intSpecialized = map[string]bool{"Add": true, "Sub": true, "Mul": true, "Div": true, "Mod": true}

// Helpers that can fail at run time and so need the source line.
var needsLine = map[string]bool{"Div_int": true, "Mod_int": true, "Shl": true, "Shr": true}

// binaryCall returns the helper call computing x op y for operands of kind k.
func binaryCall(op string, k kind.Kind, x, y string, line int) string {
	helper := binaryHelpers[op]
	if intSpecialized[helper] && kind.IsInteger(k) {
		helper += "_int"
	}
	args := x + ", " + y
	if needsLine[helper] {
		args += ", " + strconv.Itoa(line)
	}
	return "binary_" + helper + "(" + args + ")"
}

func unaryCall(op string, k kind.Kind, x string) string {
	var helper string
	switch op {
	case "-":
		helper = "Neg"
		if kind.IsInteger(k) {
			helper = "Neg_int"
		}
	case "+":
		helper = "Plus"
	case "!":
		helper = "Not"
	case "^":
		helper = "BitNot"
	default:
		panic("unknown unary operator " + op)
	}
	return "unary_" + helper + "(" + x + ")"
}

// iife wraps pre and post in a closure called on the spot, so the pre
// statements run only where the expression is evaluated.
func iife(pre []string, post string) string {
	return "(() => { " + strings.Join(pre, " ") + " return " + post + "; })()"
}

// fresh reports whether e produces a value that nothing else refers to.
func fresh(e ast.Expr) bool {
	c, ok := e.(*ast.Call)
	return ok && c.Mode == ast.CallFunction
}

// value lowers e for storing somewhere new. Arrays and structs are copied.
func (g *Generator) value(e ast.Expr) ([]string, string) {
	pre, post := g.expr(e)
	if kind.IsComposite(e.KindOf()) && !fresh(e) {
		post = "deepCopy(" + post + ")"
	}
	return pre, post
}

func (g *Generator) expr(e ast.Expr) ([]string, string) {
	switch e := e.(type) {
	case *ast.IntLit:
		if kind.IsFloat(e.Kind) {
			return nil, strconv.FormatInt(e.Value, 10)
		}
		return nil, strconv.FormatInt(int64(int32(e.Value)), 10)
	case *ast.FloatLit:
		if kind.IsInteger(e.Kind) {
			return nil, strconv.FormatInt(int64(int32(int64(e.Value))), 10)
		}
		return nil, strconv.FormatFloat(e.Value, 'g', -1, 64)
	case *ast.RuneLit:
		return nil, strconv.Itoa(int(e.Value))
	case *ast.StringLit:
		return nil, quote(e.Value)
	case *ast.Ident:
		return nil, e.Symbol.Renamed
	case *ast.Binary:
		return g.binary(e)
	case *ast.Unary:
		pre, x := g.expr(e.X)
		return pre, unaryCall(e.Op, e.X.KindOf(), x)
	case *ast.Call:
		return g.call(e)
	case *ast.Index:
		pre, x := g.expr(e.X)
		ipre, i := g.expr(e.Index)
		return append(pre, ipre...), indexGet(x, i, e.Line)
	case *ast.Selector:
		pre, x := g.expr(e.X)
		return pre, x + "." + fieldKey(e.Field)
	default:
		panic("unknown expression")
	}
}

func (g *Generator) binary(e *ast.Binary) ([]string, string) {
	pre, x := g.expr(e.X)
	ypre, y := g.expr(e.Y)
	switch e.Op {
	case "&&", "||":
		op := " " + e.Op + " "
		if len(ypre) == 0 {
			return pre, "(" + x + op + y + ")"
		}
		return pre, "(" + x + op + iife(ypre, y) + ")"
	}
	return append(pre, ypre...), binaryCall(e.Op, e.X.KindOf(), x, y, e.Line)
}

func (g *Generator) call(e *ast.Call) ([]string, string) {
	var pre, args []string
	for _, arg := range e.Args {
		var p []string
		var v string
		if e.Mode == ast.CallFunction || e.Mode == ast.CallAppend {
			p, v = g.value(arg)
		} else {
			p, v = g.expr(arg)
		}
		pre = append(pre, p...)
		args = append(args, v)
	}

	var call string
	switch e.Mode {
	case ast.CallFunction:
		call = e.Fun.Symbol.Renamed + "(" + strings.Join(args, ", ") + ")"
		if e.Kind == nil {
			return append(pre, call+";"), ""
		}
	case ast.CallAppend:
		call = "builtin_append(" + args[0] + ", " + args[1] + ")"
	case ast.CallLen:
		return pre, "builtin_len(" + args[0] + ")"
	case ast.CallCap:
		return pre, "builtin_cap(" + args[0] + ")"
	case ast.CallConversion:
		return pre, conversion(e.Kind, e.Args[0].KindOf(), args[0])
	default:
		panic("unchecked call")
	}
	t := g.temp()
	return append(pre, "const "+t+" = "+call+";"), t
}

func conversion(to, from kind.Kind, v string) string {
	switch {
	case kind.IsString(to) && kind.IsInteger(from):
		return "convert_string(" + v + ")"
	case kind.IsInteger(to) && kind.IsFloat(from):
		return "convert_int(" + v + ")"
	default:
		return v
	}
}

func indexGet(x, i string, line int) string {
	return "index_get(" + x + ", " + i + ", " + strconv.Itoa(line) + ")"
}

func indexSet(x, i, v string, line int) string {
	return "index_set(" + x + ", " + i + ", " + v + ", " + strconv.Itoa(line) + ");"
}

// fieldKey is the property name of a struct field. The prefix keeps field
// names clear of properties every JavaScript object already has.
func fieldKey(name string) string {
	return "$" + name
}

func quote(s string) string {
	b, err := json.Marshal(s)
	if err != nil {
		panic(err)
	}
	return string(b)
}

// simple reports whether post can be evaluated again later with the same
// result.
func simple(post string) bool {
	if strings.HasPrefix(post, "$t") {
		return true
	}
	_, err := strconv.ParseFloat(post, 64)
	return err == nil
}

// zero returns an expression creating the zero value of k.
func zero(k kind.Kind) string {
	switch k := kind.Resolve(k).(type) {
	case kind.Basic:
		switch k {
		case kind.String:
			return `""`
		case kind.Bool:
			return "false"
		default:
			return "0"
		}
	case *kind.Array:
		elem := zero(k.Elem)
		if k.Len <= 4 {
			elems := make([]string, k.Len)
			for i := range elems {
				elems[i] = elem
			}
			return "[" + strings.Join(elems, ", ") + "]"
		}
		if strings.HasPrefix(elem, "{") {
			elem = "(" + elem + ")"
		}
		return "Array.from({length: " + strconv.FormatInt(k.Len, 10) + "}, () => " + elem + ")"
	case *kind.Slice:
		return "make_slice()"
	case *kind.Struct:
		var fields []string
		for _, f := range k.Fields {
			if f.Name == "_" {
				continue
			}
			fields = append(fields, fieldKey(f.Name)+": "+zero(f.Kind))
		}
		if len(fields) == 0 {
			return "{}"
		}
		return "{" + strings.Join(fields, ", ") + "}"
	default:
		panic("no zero value for " + kind.Format(k))
	}
}

func isBlank(sym *symtab.Symbol) bool {
	return sym == nil || sym.Renamed == "_"
}
