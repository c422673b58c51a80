package compiler

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// DefaultNode is the JavaScript interpreter used when none is configured.
const DefaultNode = "node"

// Run executes a generated program with the node binary. A program that
// exits with a non-zero status yields an *exec.ExitError.
func Run(ctx context.Context, node, program string, stdout, stderr io.Writer) error {
	if node == "" {
		node = DefaultNode
	}
	f, err := os.CreateTemp("", "golite-*.js")
	if err != nil {
		return fmt.Errorf("creating program file: %w", err)
	}
	defer os.Remove(f.Name())
	if _, err := f.WriteString(program); err != nil {
		f.Close()
		return fmt.Errorf("writing program file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("writing program file: %w", err)
	}

	cmd := exec.CommandContext(ctx, node, f.Name())
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return cmd.Run()
}
