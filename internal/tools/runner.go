package tools

import (
	"bytes"
	"context"
	"os/exec"
	"time"
)

// DefaultWaitDelay bounds how long Run waits for output after ctx is done.
const DefaultWaitDelay = 2 * time.Second

// RunOptions configures one external command. Dir is the working directory;
// empty means the current one.
type RunOptions struct {
	Dir string
}

// RunResult is the captured output of a finished command.
type RunResult struct {
	Stdout []byte
	Stderr []byte
}

// Runner executes package manager commands.
type Runner interface {
	Run(ctx context.Context, command string, args []string, opts RunOptions) (RunResult, error)
}

// CmdRunner runs commands with os/exec and buffers their output. The process
// is killed when ctx is done. A descendant still holding the output pipes is
// abandoned after WaitDelay, or DefaultWaitDelay when zero.
type CmdRunner struct {
	WaitDelay time.Duration
}

var _ Runner = CmdRunner{}

func (r CmdRunner) Run(ctx context.Context, command string, args []string, opts RunOptions) (RunResult, error) {
	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, command, args...)
	cmd.Dir = opts.Dir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = r.WaitDelay
	if cmd.WaitDelay <= 0 {
		cmd.WaitDelay = DefaultWaitDelay
	}

	err := cmd.Run()
	return RunResult{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}, err
}
