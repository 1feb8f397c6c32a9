package testrun

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"
)

// defaultWaitDelay bounds how long Run waits for output pipes after the
// command is killed.
const defaultWaitDelay = 2 * time.Second

// Output is what a finished command produced.
type Output struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// Executor runs an external command. A non-zero exit is reported through
// Output.ExitCode; err is reserved for commands that could not run at all
// or were stopped because ctx ended.
type Executor interface {
	Run(ctx context.Context, name string, args ...string) (Output, error)
}

// CommandExecutor runs commands with os/exec in Dir. When ctx ends the
// command's whole process group is killed, so test binaries started by
// go test go with it.
type CommandExecutor struct {
	Dir string
	// WaitDelay caps the wait for pipes held open by leftover children.
	// Zero means defaultWaitDelay.
	WaitDelay time.Duration
}

// Run implements Executor.
func (e CommandExecutor) Run(ctx context.Context, name string, args ...string) (Output, error) {
	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = e.Dir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = e.WaitDelay
	if cmd.WaitDelay <= 0 {
		cmd.WaitDelay = defaultWaitDelay
	}
	killProcessGroup(cmd)

	err := cmd.Run()
	out := Output{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return out, fmt.Errorf("%s stopped: %w", name, ctxErr)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		out.ExitCode = exitErr.ExitCode()
		return out, nil
	}
	return out, err
}
