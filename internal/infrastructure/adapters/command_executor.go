package adapters

import (
	"bytes"
	"context"
	goerrors "errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"ospf6-agent/internal/domain/errors"
	"ospf6-agent/internal/domain/interfaces"

	"github.com/sirupsen/logrus"
)

// RealCommandExecutor is a CommandExecutor that runs commands on the local host
type RealCommandExecutor struct {
	logger *logrus.Logger
}

// NewRealCommandExecutor creates a new RealCommandExecutor
func NewRealCommandExecutor(logger *logrus.Logger) interfaces.CommandExecutor {
	return &RealCommandExecutor{logger: logger}
}

// Execute runs a command and returns its stdout. A non-zero exit status is a
// SYSTEM error carrying stderr.
func (e *RealCommandExecutor) Execute(ctx context.Context, command string, args ...string) ([]byte, error) {
	stdout, stderr, code, err := e.run(ctx, command, args...)
	if err != nil {
		return nil, errors.NewSystemError(
			fmt.Sprintf("command execution failed: %s", commandLine(command, args)),
			err,
		)
	}
	if code != 0 {
		return nil, errors.NewSystemError(
			fmt.Sprintf("command execution failed: %s", commandLine(command, args)),
			fmt.Errorf("exit status %d, stderr: %s", code, strings.TrimSpace(stderr)),
		)
	}
	return stdout, nil
}

// ExecuteUnchecked runs a command and reports its exit code instead of failing on it
func (e *RealCommandExecutor) ExecuteUnchecked(ctx context.Context, command string, args ...string) ([]byte, int, error) {
	stdout, _, code, err := e.run(ctx, command, args...)
	if err != nil {
		return nil, -1, errors.NewSystemError(
			fmt.Sprintf("command execution failed: %s", commandLine(command, args)),
			err,
		)
	}
	return stdout, code, nil
}

// ExecuteWithTimeout executes a command with timeout. A zero timeout leaves
// the command unbounded.
func (e *RealCommandExecutor) ExecuteWithTimeout(ctx context.Context, timeout time.Duration, command string, args ...string) ([]byte, error) {
	if timeout <= 0 {
		return e.Execute(ctx, command, args...)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	output, err := e.Execute(ctx, command, args...)
	if err != nil {
		// Convert to timeout error when context deadline exceeded
		if ctx.Err() == context.DeadlineExceeded {
			return nil, errors.NewTimeoutError(
				fmt.Sprintf("command execution timeout: %s (timeout: %v)", commandLine(command, args), timeout),
			)
		}
		return nil, err
	}

	return output, nil
}

// run returns a non-nil error only when the process could not be started or
// waited for; exit codes are reported separately.
func (e *RealCommandExecutor) run(ctx context.Context, command string, args ...string) ([]byte, string, int, error) {
	cmd := exec.CommandContext(ctx, command, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	e.logger.WithField("command", commandLine(command, args)).Debug("Executing command")

	err := cmd.Run()
	if err != nil {
		var exitErr *exec.ExitError
		if goerrors.As(err, &exitErr) && ctx.Err() == nil {
			return stdout.Bytes(), stderr.String(), exitErr.ExitCode(), nil
		}
		return nil, stderr.String(), -1, err
	}
	return stdout.Bytes(), stderr.String(), 0, nil
}

func commandLine(command string, args []string) string {
	if len(args) == 0 {
		return command
	}
	return command + " " + strings.Join(args, " ")
}
