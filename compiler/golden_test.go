package compiler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nalgeon/be"
	"github.com/strager/golite/ast"
	"github.com/strager/golite/codegen"
	"github.com/strager/golite/sexy"
)

// goldenSource returns the program a test case describes. An expression is
// printed by main, on line 4.
func goldenSource(tc sexy.TestCase) string {
	if tc.InputType == sexy.InputTypeExpr {
		return "package main\n\nfunc main() {\n\tprintln(" + tc.Input + ")\n}\n"
	}
	return tc.Input + "\n"
}

// goldenTree returns the tree ast assertions are matched against.
func goldenTree(tc sexy.TestCase, prog *ast.Program) ast.Node {
	if tc.InputType != sexy.InputTypeExpr {
		return prog
	}
	main := prog.Decls[len(prog.Decls)-1].(*ast.FuncDecl)
	return main.Body.Stmts[0].(*ast.Print).Args[0]
}

func TestGolden(t *testing.T) {
	testFiles, err := filepath.Glob("testdata/*_test.md")
	be.Err(t, err, nil)
	be.True(t, len(testFiles) > 0)

	for _, testFile := range testFiles {
		testName := strings.TrimSuffix(filepath.Base(testFile), ".md")
		t.Run(testName, func(t *testing.T) {
			content, err := os.ReadFile(testFile)
			be.Err(t, err, nil)
			testCases, err := sexy.ExtractTestCases(string(content))
			be.Err(t, err, nil)

			for _, tc := range testCases {
				t.Run(tc.Name, func(t *testing.T) {
					runGoldenCase(t, testFile, tc)
				})
			}
		})
	}
}

func runGoldenCase(t *testing.T, testFile string, tc sexy.TestCase) {
	src := goldenSource(tc)
	var trace bytes.Buffer
	prog, checkErr := Check("test.go", []byte(src), Options{Trace: &trace})

	for _, assertion := range tc.Assertions {
		where := fmt.Sprintf("%s:%d", testFile, assertion.Line)
		if assertion.Type == sexy.AssertionTypeCompileError {
			if checkErr == nil {
				t.Fatalf("%s: expected a compile error", where)
			}
			equalAt(t, where, "Error: "+checkErr.Error(), assertion.Content)
			continue
		}
		if checkErr != nil {
			t.Fatalf("%s: %v", where, checkErr)
		}

		switch assertion.Type {
		case sexy.AssertionTypeAST:
			actual, err := sexy.Parse(ast.SExpr(goldenTree(tc, prog)))
			be.Err(t, err, nil)
			if err := sexy.Match(assertion.ParsedSexy, actual); err != nil {
				t.Errorf("%s: %v\nactual: %s", where, err, actual)
			}
		case sexy.AssertionTypeJS:
			js := codegen.Generate(prog, "")
			if !strings.Contains(js, assertion.Content) {
				t.Errorf("%s: generated code does not contain:\n%s\n\ngenerated code:\n%s", where, assertion.Content, js)
			}
		case sexy.AssertionTypeScopes:
			equalAt(t, where, strings.TrimRight(trace.String(), "\n"), assertion.Content)
		case sexy.AssertionTypeExecute, sexy.AssertionTypeRuntimeError:
			stdout, stderr, err := runGolden(t, prog)
			if assertion.Type == sexy.AssertionTypeExecute {
				be.Err(t, err, nil)
				equalAt(t, where, strings.TrimSuffix(stdout, "\n"), assertion.Content)
				continue
			}
			var exitErr *exec.ExitError
			if !errors.As(err, &exitErr) {
				t.Fatalf("%s: expected the program to fail, got %v", where, err)
			}
			equalAt(t, where, strings.TrimSuffix(stderr, "\n"), assertion.Content)
		default:
			t.Fatalf("%s: unsupported assertion %s", where, assertion.Type)
		}
	}
}

func runGolden(t *testing.T, prog *ast.Program) (string, string, error) {
	t.Helper()
	requireNode(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	var stdout, stderr bytes.Buffer
	err := Run(ctx, DefaultNode, codegen.Generate(prog, codegen.Runtime), &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func equalAt(t *testing.T, where, got, want string) {
	t.Helper()
	if got != want {
		t.Errorf("%s:\ngot:\n%s\n\nwant:\n%s", where, got, want)
	}
}
