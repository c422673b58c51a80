package compiler

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/nalgeon/be"
	"github.com/strager/golite/codegen"
)

func TestCompileIncludesRuntime(t *testing.T) {
	js, err := Compile("test.go", []byte("package main\nfunc main() {}\n"), Options{})
	be.Err(t, err, nil)
	be.True(t, strings.HasPrefix(js, codegen.Runtime))
	be.True(t, strings.HasSuffix(js, "function main() {\n}\nmain();\n"))
}

func TestCompileWithHeader(t *testing.T) {
	js, err := Compile("test.go", []byte("package main\nfunc main() {}\n"), Options{Header: "// custom\n"})
	be.Err(t, err, nil)
	be.Equal(t, js, "// custom\nfunction main() {\n}\nmain();\n")
}

func TestCompileReportsFirstError(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"syntax", "package main\nfunc main() {\n\tx :=\n}\n", "line 4: expected operand, found '}'"},
		{"undeclared", "package main\nfunc main() {\n\tprintln(y)\n\tprintln(z)\n}\n", "line 3: undeclared identifier: y"},
		{"kinds", "package main\nfunc main() {\n\tx := 1 + \"a\"\n\t_ = x\n}\n", "line 3: invalid operation: + (mismatched types int and string)"},
		{"no main", "package main\n", "line 1: function main is undeclared in the main package"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Compile("test.go", []byte(test.src), Options{})
			if err == nil {
				t.Fatal("expected an error")
			}
			be.Equal(t, err.Error(), test.want)
		})
	}
}

func TestCheckTracesScopes(t *testing.T) {
	var trace bytes.Buffer
	_, err := Check("test.go", []byte("package main\nvar g int\nfunc main() {\n\tx := g\n\t_ = x\n}\n"), Options{Trace: &trace})
	be.Err(t, err, nil)
	be.Equal(t, trace.String(), `scope level 2:
  x -> x_2 (var int)
scope level 1:
  main -> main (func())
  g -> g_1 (var int)
`)
}

func TestTraceIsWrittenWhenCheckingFails(t *testing.T) {
	var trace bytes.Buffer
	src := `package main
func main() {
	s := "a"
	_ = s + 1
}
`
	_, err := Check("test.go", []byte(src), Options{Trace: &trace})
	if err == nil {
		t.Fatal("expected an error")
	}
	be.True(t, strings.HasPrefix(err.Error(), "line 4: "))
	be.True(t, strings.Contains(trace.String(), "scope level 2:\n  s -> s_1 (var string)\n"))
}

func requireNode(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath(DefaultNode); err != nil {
		t.Skip("node is not installed")
	}
}

// execute compiles and runs src, returning its standard output and error.
func execute(t *testing.T, src string) (string, string, error) {
	t.Helper()
	requireNode(t)
	js, err := Compile("test.go", []byte(src), Options{})
	be.Err(t, err, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	var stdout, stderr bytes.Buffer
	err = Run(ctx, DefaultNode, js, &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func TestRunPrograms(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"hello", `println("hello", 1, true)`, "hello 1 true\n"},
		{"print without separators", `print("a", 1, 'b')`, "a198"},
		{"float format", "println(1.5, -0.25, 1e21)", "+1.500000e+000 -2.500000e-001 +1.000000e+021\n"},
		{"integer wraps to 32 bits", "x := 2147483647\nx++\nprintln(x)", "-2147483648\n"},
		{"integer division truncates", "println(7/2, -7/2, 7%3, -7%3)", "3 -3 1 -1\n"},
		{"shift", "x := 1\nprintln(x<<4, -16>>2, x<<40)", "16 -4 0\n"},
		{"string length counts bytes", `println(len("héllo"))`, "6\n"},
		{"string concatenation", `s := "a"` + "\ns += \"b\"\nprintln(s + \"c\")", "abc\n"},
		{"conversions", "f := 3.9\nprintln(int(f), string(rune(65)), float64(2)/4)", "3 A +5.000000e-001\n"},
		{"array copy", "var a [2]int\nb := a\nb[0] = 1\nprintln(a[0], b[0])", "0 1\n"},
		{"zero values", "var a [2]bool\nvar s string\nvar f float64\nprintln(a[1], s == \"\", f)", "false true +0.000000e+000\n"},
		{"for loop with continue", "for i := 0; i < 5; i++ {\nif i%2 == 0 {\ncontinue\n}\nprint(i)\n}", "13"},
		{"while loop", "n := 0\nfor n < 3 {\nn++\n}\nprintln(n)", "3\n"},
		{"switch falls out", "x := 3\nswitch {\ncase x > 2:\nprintln(\"big\")\ncase x > 1:\nprintln(\"medium\")\ndefault:\nprintln(\"small\")\n}", "big\n"},
		{"switch break", "switch 1 {\ncase 1:\nprint(\"a\")\nbreak\nprint(\"b\")\n}\nprintln()", "a\n"},
		{"shadowing", "x := 1\n{\nx := 2\nprint(x)\n}\nprintln(x)", "21\n"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			stdout, stderr, err := execute(t, "package main\nfunc main() {\n"+test.body+"\n}\n")
			be.Err(t, err, nil)
			be.Equal(t, stderr, "")
			be.Equal(t, stdout, test.want)
		})
	}
}

func TestRunProgramWithDeclarations(t *testing.T) {
	stdout, _, err := execute(t, `package main

type point struct {
	x, y int
}

var origin point

func moved(p point, dx int) point {
	p.x += dx
	return p
}

func sum(xs []int) int {
	total := 0
	for i := 0; i < len(xs); i++ {
		total += xs[i]
	}
	return total
}

func init() {
	origin.y = 7
}

func main() {
	p := moved(origin, 3)
	println(origin.x, p.x, p.y, p == origin)

	var xs []int
	for i := 1; i <= 4; i++ {
		xs = append(xs, i)
	}
	ys := xs
	ys[0] = 10
	println(sum(xs), len(xs), cap(xs))

	a, b := 1, 2
	a, b = b, a
	println(a, b)
}
`)
	be.Err(t, err, nil)
	be.Equal(t, stdout, "0 3 7 false\n19 4 4\n2 1\n")
}

func TestRunEvaluationOrder(t *testing.T) {
	stdout, _, err := execute(t, `package main

var calls int

func next(tag string) int {
	calls++
	print(tag)
	return calls
}

func f() bool {
	print("f")
	return true
}

func main() {
	x := next("a") + next("b")*next("c")
	println("", x)
	if false && f() {
	}
	if true || f() {
	}
	println()
}
`)
	be.Err(t, err, nil)
	be.Equal(t, stdout, "abc 7\n\n")
}

func TestRunReportsPanics(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		stdout string
		stderr string
	}{
		{
			"index out of range",
			"var a [3]int\nprint(\"before\")\ni := 5\na[i] = 1",
			"before",
			"Error: line 6: index out of range [5] with length 3\n",
		},
		{
			"slice out of range",
			"var s []int\ns = append(s, 1)\nprintln(s[1])",
			"",
			"Error: line 5: index out of range [1] with length 1\n",
		},
		{
			"divide by zero",
			"x := 0\nprintln(1 / x)",
			"",
			"Error: line 4: integer divide by zero\n",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			stdout, stderr, err := execute(t, "package main\nfunc main() {\n"+test.body+"\n}\n")
			var exitErr *exec.ExitError
			if !errors.As(err, &exitErr) {
				t.Fatalf("expected an exit error, got %v", err)
			}
			be.Equal(t, exitErr.ExitCode(), 1)
			be.Equal(t, stdout, test.stdout)
			be.Equal(t, stderr, test.stderr)
		})
	}
}
