package quagga

import (
	"context"

	"ospf6-agent/internal/domain/errors"
	"ospf6-agent/internal/domain/interfaces"
)

// DaemonNotRunningMessage is reported when ospf6d has no pid file
const DaemonNotRunningMessage = "OSPFv3 process is not running. Unable to execute command"

// PidFileChecker treats ospf6d as running when its pid file exists
type PidFileChecker struct {
	fileSystem interfaces.FileSystem
	pidFile    string
}

// NewPidFileChecker creates a new PidFileChecker
func NewPidFileChecker(fs interfaces.FileSystem, pidFile string) *PidFileChecker {
	return &PidFileChecker{fileSystem: fs, pidFile: pidFile}
}

func (c *PidFileChecker) CheckRunning(ctx context.Context) error {
	if !c.fileSystem.Exists(c.pidFile) {
		return errors.NewPreconditionError(DaemonNotRunningMessage, nil)
	}
	return nil
}

// RemotePidFileChecker checks the pid file with "test -e" through a command
// executor, for switches driven over SSH
type RemotePidFileChecker struct {
	executor interfaces.CommandExecutor
	pidFile  string
}

// NewRemotePidFileChecker creates a new RemotePidFileChecker
func NewRemotePidFileChecker(executor interfaces.CommandExecutor, pidFile string) *RemotePidFileChecker {
	return &RemotePidFileChecker{executor: executor, pidFile: pidFile}
}

func (c *RemotePidFileChecker) CheckRunning(ctx context.Context) error {
	_, code, err := c.executor.ExecuteUnchecked(ctx, "test", "-e", c.pidFile)
	if err != nil {
		return errors.NewSystemError("failed to check ospf6d pid file", err)
	}
	if code != 0 {
		return errors.NewPreconditionError(DaemonNotRunningMessage, nil)
	}
	return nil
}

var (
	_ interfaces.DaemonChecker = (*PidFileChecker)(nil)
	_ interfaces.DaemonChecker = (*RemotePidFileChecker)(nil)
)
