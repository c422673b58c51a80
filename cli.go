package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/strager/golite/ast"
	"github.com/strager/golite/compiler"
	"github.com/strager/golite/config"
)

func showUsage(w io.Writer) {
	fmt.Fprintf(w, `golite - A subset of Go that compiles to JavaScript

Usage:
    golite <command> [arguments]

Commands:
    run <file>      Compile a .go file and execute it with node
    build <file>    Compile a .go file to JavaScript
    eval <code>     Evaluate inline golite statements
    check <file>    Parse and type-check a .go file
    config          Print the settings in effect
    help            Show this help message

Examples:
    golite run examples/primes.go
    golite build -o program.js hello.go
    golite eval 'println(6 * 7)'
    golite check -v myfile.go

Settings are read from %s in the working directory when it exists.
Use "golite <command> -h" for more information about a command.
`, config.FileName)
}

// cli holds what every command shares.
type cli struct {
	stdout io.Writer
	stderr io.Writer
}

// exitError carries the exit status of a program run by the run and eval
// commands.
type exitError struct {
	code int
}

func (e exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

// commonFlags are the flags every compiling command accepts.
type commonFlags struct {
	verbose    *bool
	trace      *bool
	configPath *string
}

func (c *cli) flagSet(name, usage, description string) (*flag.FlagSet, commonFlags) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	flags := commonFlags{
		verbose:    fs.Bool("v", false, "Show verbose compilation details"),
		trace:      fs.Bool("trace", false, "Print every scope of the symbol table"),
		configPath: fs.String("config", "", "Settings file (default: "+config.FileName+" if present)"),
	}
	fs.Usage = func() {
		fmt.Fprintf(c.stderr, "Usage: golite %s\n", usage)
		fmt.Fprintf(c.stderr, "%s\n\n", description)
		fmt.Fprintf(c.stderr, "Flags:\n")
		fs.PrintDefaults()
	}
	return fs, flags
}

// parseArgs parses args and requires exactly one positional argument.
func (c *cli) parseArgs(fs *flag.FlagSet, args []string, what string) (string, error) {
	if err := fs.Parse(args); err != nil {
		return "", err
	}
	if fs.NArg() != 1 {
		fmt.Fprintf(c.stderr, "Error: expected exactly one %s argument\n", what)
		fs.Usage()
		return "", flag.ErrHelp
	}
	return fs.Arg(0), nil
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	return config.Find(".")
}

// options turns the settings and flags into compiler options.
func (c *cli) options(cfg *config.Config, flags commonFlags) (compiler.Options, error) {
	header, err := cfg.Header()
	if err != nil {
		return compiler.Options{}, err
	}
	opts := compiler.Options{Header: header}
	if *flags.trace || cfg.TraceScopes {
		opts.Trace = c.stderr
	}
	return opts, nil
}

// compile reads the settings and compiles src.
func (c *cli) compile(filename string, src []byte, flags commonFlags) (string, *config.Config, error) {
	cfg, err := loadConfig(*flags.configPath)
	if err != nil {
		return "", nil, err
	}
	opts, err := c.options(cfg, flags)
	if err != nil {
		return "", nil, err
	}
	js, err := compiler.Compile(filename, src, opts)
	if err != nil {
		return "", nil, err
	}
	if *flags.verbose {
		fmt.Fprintf(c.stderr, "Generated %d bytes of JavaScript\n", len(js))
	}
	return js, cfg, nil
}

func (c *cli) execute(cfg *config.Config, js string, verbose bool) error {
	if verbose {
		fmt.Fprintf(c.stderr, "Executing with %s...\n", cfg.Node)
	}
	err := compiler.Run(context.Background(), cfg.Node, js, c.stdout, c.stderr)
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		// The program has reported its own error.
		return exitError{code: exitErr.ExitCode()}
	}
	if err != nil {
		return fmt.Errorf("running %s: %w", cfg.Node, err)
	}
	return nil
}

func readSource(filename string) ([]byte, error) {
	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", filename, err)
	}
	return src, nil
}

func (c *cli) runCommand(args []string) error {
	fs, flags := c.flagSet("run", "run [-v] [-trace] [-config file] <file>", "Compile a .go file and execute it with node")
	filename, err := c.parseArgs(fs, args, "file")
	if err != nil {
		return err
	}
	if *flags.verbose {
		fmt.Fprintf(c.stderr, "Compiling %s...\n", filename)
	}
	src, err := readSource(filename)
	if err != nil {
		return err
	}
	js, cfg, err := c.compile(filename, src, flags)
	if err != nil {
		return err
	}
	return c.execute(cfg, js, *flags.verbose)
}

func (c *cli) buildCommand(args []string) error {
	fs, flags := c.flagSet("build", "build [-o output] [-v] [-trace] [-config file] <file>", "Compile a .go file to JavaScript")
	output := fs.String("o", "", "Output file path (default: standard output)")
	filename, err := c.parseArgs(fs, args, "file")
	if err != nil {
		return err
	}
	if *flags.verbose {
		fmt.Fprintf(c.stderr, "Compiling %s...\n", filename)
	}
	src, err := readSource(filename)
	if err != nil {
		return err
	}
	js, _, err := c.compile(filename, src, flags)
	if err != nil {
		return err
	}
	if *output == "" {
		_, err := io.WriteString(c.stdout, js)
		return err
	}
	if err := os.WriteFile(*output, []byte(js), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", *output, err)
	}
	fmt.Fprintf(c.stdout, "Generated %s (%d bytes)\n", *output, len(js))
	return nil
}

// evalSource turns inline code into a program. Statements are placed in
// main unless the code is a complete file.
func evalSource(code string) []byte {
	if strings.HasPrefix(strings.TrimSpace(code), "package ") {
		return []byte(code)
	}
	return []byte("package main\n\nfunc main() {\n" + code + "\n}\n")
}

func (c *cli) evalCommand(args []string) error {
	fs, flags := c.flagSet("eval", "eval [-v] [-trace] [-config file] <code>", "Evaluate inline golite statements")
	code, err := c.parseArgs(fs, args, "code")
	if err != nil {
		return err
	}
	if *flags.verbose {
		fmt.Fprintf(c.stderr, "Evaluating: %s\n", code)
	}
	js, cfg, err := c.compile("eval.go", evalSource(code), flags)
	if err != nil {
		return err
	}
	return c.execute(cfg, js, *flags.verbose)
}

func (c *cli) checkCommand(args []string) error {
	fs, flags := c.flagSet("check", "check [-v] [-trace] [-config file] <file>", "Parse and type-check a .go file")
	filename, err := c.parseArgs(fs, args, "file")
	if err != nil {
		return err
	}
	if *flags.verbose {
		fmt.Fprintf(c.stderr, "Checking %s...\n", filename)
	}
	src, err := readSource(filename)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(*flags.configPath)
	if err != nil {
		return err
	}
	opts, err := c.options(cfg, flags)
	if err != nil {
		return err
	}
	prog, err := compiler.Check(filename, src, opts)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.stdout, "%s: no errors found\n", filename)
	if *flags.verbose {
		fmt.Fprintf(c.stdout, "AST: %s\n", ast.SExpr(prog))
	}
	return nil
}

func (c *cli) configCommand(args []string) error {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	configPath := fs.String("config", "", "Settings file (default: "+config.FileName+" if present)")
	fs.Usage = func() {
		fmt.Fprintf(c.stderr, "Usage: golite config [-config file]\n")
		fmt.Fprintf(c.stderr, "Print the settings in effect\n\n")
		fmt.Fprintf(c.stderr, "Flags:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	return cfg.Encode(c.stdout)
}

// run executes the command line args and returns the exit status.
func run(args []string, stdout, stderr io.Writer) int {
	c := &cli{stdout: stdout, stderr: stderr}
	if len(args) < 1 {
		showUsage(stderr)
		return 1
	}

	command, rest := args[0], args[1:]
	var err error
	switch command {
	case "run":
		err = c.runCommand(rest)
	case "build":
		err = c.buildCommand(rest)
	case "eval":
		err = c.evalCommand(rest)
	case "check":
		err = c.checkCommand(rest)
	case "config":
		err = c.configCommand(rest)
	case "help", "-h", "--help":
		showUsage(stdout)
		return 0
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n\n", command)
		showUsage(stderr)
		return 1
	}

	var exit exitError
	switch {
	case err == nil:
		return 0
	case errors.As(err, &exit):
		return exit.code
	case errors.Is(err, flag.ErrHelp):
		// Usage has been printed.
		return 1
	default:
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
