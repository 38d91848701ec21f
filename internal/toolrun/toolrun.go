package toolrun

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// ToolError reports an external tool that ran but exited non-zero.
type ToolError struct {
	Tool     string
	Args     []string
	ExitCode int
	Output   string // combined stdout+stderr, surfaced verbatim to the user
}

func (e *ToolError) Error() string {
	return fmt.Sprintf("%s %s exited with status %d", e.Tool, strings.Join(e.Args, " "), e.ExitCode)
}

// Runner executes external tools in a working directory.
type Runner struct {
	// Stdout and Stderr can be set for testing; defaults to os.Stdout/os.Stderr.
	Stdout io.Writer
	Stderr io.Writer
}

// Output captures the result of a tool execution.
type Output struct {
	Stdout string
	Stderr string
}

// LookPath reports whether the named tool is available on PATH.
func LookPath(tool string) (string, error) {
	path, err := exec.LookPath(tool)
	if err != nil {
		return "", fmt.Errorf("%s is not installed or not on PATH: %w", tool, err)
	}
	return path, nil
}

// Run executes tool with args in dir, streaming output to the configured
// writers while capturing it. A non-zero exit returns *ToolError; other
// failures (tool missing, context canceled) return a wrapped error.
func (r *Runner) Run(ctx context.Context, dir, tool string, args ...string) (*Output, error) {
	bin, err := LookPath(tool)
	if err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Dir = dir
	cmd.Env = os.Environ()

	stdout := r.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	stderr := r.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = io.MultiWriter(stdout, &stdoutBuf)
	cmd.Stderr = io.MultiWriter(stderr, &stderrBuf)

	err = cmd.Run()

	output := &Output{
		Stdout: stdoutBuf.String(),
		Stderr: stderrBuf.String(),
	}

	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return output, &ToolError{
				Tool:     tool,
				Args:     args,
				ExitCode: exitErr.ExitCode(),
				Output:   output.Stdout + output.Stderr,
			}
		}
		return output, fmt.Errorf("executing %s: %w", tool, err)
	}

	return output, nil
}

// Version runs `tool versionArg` and returns the first line of output,
// used by doctor checks to compare against minimum versions.
func Version(ctx context.Context, tool, versionArg string) (string, error) {
	var buf bytes.Buffer
	runner := &Runner{Stdout: &buf, Stderr: io.Discard}
	if _, err := runner.Run(ctx, "", tool, versionArg); err != nil {
		return "", err
	}
	line, _, _ := strings.Cut(buf.String(), "\n")
	return strings.TrimSpace(line), nil
}
