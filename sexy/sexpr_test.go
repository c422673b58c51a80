package sexy

import (
	"strings"
	"testing"

	"github.com/nalgeon/be"
)

func TestParseSymbol(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"hello", "hello"},
		{"x_1", "x_1"},
		{"op-assign", "op-assign"},
		{"_", "_"},
		{"init$0", "init$0"},
		{"-", "-"},
	}

	for _, test := range tests {
		result, err := Parse(test.input)
		be.Err(t, err, nil)

		be.Equal(t, result.Type, NodeSymbol)
		be.Equal(t, result.Text, test.expected)
		be.Equal(t, result.String(), test.expected)
	}
}

func TestParseString(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		output   string
	}{
		{`"hello"`, "hello", `"hello"`},
		{`"[]int"`, "[]int", `"[]int"`},
		{`""`, "", `""`},
		{`"test\"quote"`, `test"quote`, `"test\"quote"`},
		{`"test\\backslash"`, `test\backslash`, `"test\\backslash"`},
		{`"héllo"`, "héllo", `"héllo"`},
	}

	for _, test := range tests {
		result, err := Parse(test.input)
		be.Err(t, err, nil)

		be.Equal(t, result.Type, NodeString)
		be.Equal(t, result.Text, test.expected)
		be.Equal(t, result.String(), test.output)
	}
}

func TestParseInteger(t *testing.T) {
	for _, input := range []string{"42", "0", "-123", "+456"} {
		result, err := Parse(input)
		be.Err(t, err, nil)

		be.Equal(t, result.Type, NodeInteger)
		be.Equal(t, result.Text, input)
		be.Equal(t, result.String(), input)
	}
}

func TestParseEllipsis(t *testing.T) {
	result, err := Parse("...")
	be.Err(t, err, nil)

	be.Equal(t, result.Type, NodeEllipsis)
	be.Equal(t, result.String(), "...")
}

func TestParseList(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"()", "()"},
		{"(hello)", "(hello)"},
		{"(1 2 3)", "(1 2 3)"},
		{`(binary "int" "+" (lit "int" 1) (ident "int" x_1))`, `(binary "int" "+" (lit "int" 1) (ident "int" x_1))`},
		{"(block ...)", "(block ...)"},
		{"(  spaced\n\t(out ) )", "(spaced (out))"},
	}

	for _, test := range tests {
		result, err := Parse(test.input)
		be.Err(t, err, nil)

		be.Equal(t, result.Type, NodeList)
		be.Equal(t, result.String(), test.expected)
	}
}

func TestParseComments(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"; comment\nhello", "hello"},
		{"hello ; trailing comment", "hello"},
		{"(test ; inline comment\n world)", "(test world)"},
	}

	for _, test := range tests {
		result, err := Parse(test.input)
		be.Err(t, err, nil)
		be.Equal(t, result.String(), test.expected)
	}
}

func TestLexerErrors(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{`"unterminated string`, "unterminated string"},
		{`"invalid \escape"`, "invalid escape sequence"},
		{".", "unexpected character '.'"},
		{"..", "expected '...'"},
		{"@", "unexpected character '@'"},
		{"[", "unexpected character '['"},
		{"{", "unexpected character '{'"},
	}

	for _, test := range tests {
		_, err := Parse(test.input)
		be.True(t, err != nil)
		be.True(t, strings.Contains(err.Error(), test.expected))
	}
}

func TestParserErrors(t *testing.T) {
	tests := []string{
		"",            // nothing at all
		"(",           // unclosed list
		"(hello",      // unclosed list with content
		")",           // stray close
		"hello world", // extra tokens after main expression
		"42 extra",    // extra tokens after integer
		"(test) more", // extra tokens after list
	}

	for _, test := range tests {
		_, err := Parse(test)
		be.True(t, err != nil)
	}
}

func TestNodeTypeHelpers(t *testing.T) {
	be.True(t, NewSymbol("x").IsAtom())
	be.True(t, NewString("x").IsAtom())
	be.True(t, NewInteger("1").IsAtom())
	be.True(t, NewEllipsis().IsAtom())
	be.True(t, !NewList().IsAtom())
	be.Equal(t, NewList(NewSymbol("a"), NewInteger("1"), NewString("b")).String(), `(a 1 "b")`)
}

func mustParse(t *testing.T, input string) *Node {
	t.Helper()
	n, err := Parse(input)
	be.Err(t, err, nil)
	return n
}

func TestMatch(t *testing.T) {
	tests := []struct {
		pattern string
		actual  string
	}{
		{"x", "x"},
		{`"int"`, `"int"`},
		{"...", "(anything (at all))"},
		{"(a ...)", "(a)"},
		{"(a ...)", "(a b c)"},
		{"(... c)", "(a b c)"},
		{"(a ... c)", "(a c)"},
		{"(a ... c ... e)", "(a b c d e)"},
		{"(block ... (return ...))", `(block (expr 1) (return (lit "int" 2)))`},
		{"(f (g ...) ...)", "(f (g 1 2) (h))"},
	}

	for _, test := range tests {
		t.Run(test.pattern, func(t *testing.T) {
			be.Err(t, Match(mustParse(t, test.pattern), mustParse(t, test.actual)), nil)
		})
	}
}

func TestMatchFailures(t *testing.T) {
	tests := []struct {
		pattern string
		actual  string
		want    string
	}{
		{"x", "y", "at root: expected x, got y"},
		{"1", `"1"`, `at root: expected integer 1, got string "1"`},
		{"(a b)", "(a c)", "at root[1]: expected b, got c"},
		{"(a b)", "(a)", "at root: expected b at index 1, got end of list"},
		{"(a)", "(a b)", "at root: unexpected b at index 1"},
		{"(a (b c))", "(a (b d))", "at root[1][1]: expected c, got d"},
		{"(a ... z)", "(a b c)", "at root[1]: expected z, got b"},
	}

	for _, test := range tests {
		t.Run(test.pattern, func(t *testing.T) {
			err := Match(mustParse(t, test.pattern), mustParse(t, test.actual))
			if err == nil {
				t.Fatalf("expected %s not to match %s", test.pattern, test.actual)
			}
			be.Equal(t, err.Error(), test.want)
		})
	}
}
