package upscale

import (
	"context"
	"os/exec"
)

// CommandRunner starts an external process and waits for it to exit.
type CommandRunner interface {
	// Run executes name with args and returns its combined stdout and stderr.
	// A non-nil error is returned for start failures and non-zero exits.
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands with os/exec. The process is killed when ctx is
// cancelled.
type ExecRunner struct{}

// Run implements CommandRunner.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}
