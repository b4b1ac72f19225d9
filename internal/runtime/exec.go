package runtime

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
)

// ExecRunner runs commands with os/exec.
type ExecRunner struct {
	// Stdout and Stderr receive the live command output. Nil discards it;
	// the output is captured in Output either way.
	Stdout io.Writer
	Stderr io.Writer
}

// Run executes name with args in dir. A non-zero exit is reported as
// *ExitError together with the captured output.
func (r *ExecRunner) Run(ctx context.Context, dir string, name string, args ...string) (*Output, error) {
	bin, err := exec.LookPath(name)
	if err != nil {
		return nil, fmt.Errorf("%s not found on PATH: %w", name, err)
	}

	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Dir = dir

	stdout := r.Stdout
	if stdout == nil {
		stdout = io.Discard
	}
	stderr := r.Stderr
	if stderr == nil {
		stderr = io.Discard
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
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			output.ExitCode = exitErr.ExitCode()
			return output, &ExitError{
				Command:  CommandLine(name, args...),
				ExitCode: output.ExitCode,
				Stderr:   output.Stderr,
			}
		}
		return output, fmt.Errorf("executing %s: %w", CommandLine(name, args...), err)
	}

	return output, nil
}
