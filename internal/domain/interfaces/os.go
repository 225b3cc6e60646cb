package interfaces

import (
	"context"
	"os"
	"time"
)

// CommandExecutor runs external commands
type CommandExecutor interface {
	// Execute runs the command and fails on a non-zero exit status
	Execute(ctx context.Context, command string, args ...string) ([]byte, error)

	// ExecuteUnchecked runs the command and returns its output and exit code
	// without treating a non-zero exit as an error
	ExecuteUnchecked(ctx context.Context, command string, args ...string) ([]byte, int, error)

	// ExecuteWithTimeout runs the command with a deadline; a zero timeout means none
	ExecuteWithTimeout(ctx context.Context, timeout time.Duration, command string, args ...string) ([]byte, error)
}

// FileSystem abstracts the file operations used by the agent
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte, perm os.FileMode) error
	Exists(path string) bool
	MkdirAll(path string, perm os.FileMode) error
	Remove(path string) error
	ListFiles(path string) ([]string, error)
}

// PlatformDetector identifies the network operating system
type PlatformDetector interface {
	DetectPlatform() (PlatformType, error)
}

// PlatformType is the detected network operating system
type PlatformType string

const (
	PlatformCumulus PlatformType = "cumulus-linux"
	PlatformGeneric PlatformType = "generic"
)
