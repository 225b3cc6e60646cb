package quagga

import (
	"context"
	"errors"
	"testing"

	domainErrors "ospf6-agent/internal/domain/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPidFile = "/var/run/quagga/ospf6d.pid"

func TestPidFileChecker_CheckRunning(t *testing.T) {
	tests := []struct {
		name    string
		exists  bool
		wantErr bool
	}{
		{name: "pid file present", exists: true},
		{name: "pid file missing", exists: false, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := new(MockFileSystem)
			fs.On("Exists", testPidFile).Return(tt.exists)

			err := NewPidFileChecker(fs, testPidFile).CheckRunning(context.Background())

			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, domainErrors.IsPreconditionError(err))
				assert.Equal(t, DaemonNotRunningMessage, domainErrors.UserMessage(err))
			} else {
				assert.NoError(t, err)
			}
			fs.AssertExpectations(t)
		})
	}
}

func TestRemotePidFileChecker_CheckRunning(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		code     int
		execErr  error
		checkErr func(error) bool
	}{
		{name: "running", code: 0},
		{name: "not running", code: 1, checkErr: domainErrors.IsPreconditionError},
		{name: "connection failure", code: -1, execErr: errors.New("ssh: handshake failed"), checkErr: domainErrors.IsSystemError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			executor := new(MockCommandExecutor)
			executor.On("ExecuteUnchecked", ctx, "test", "-e", testPidFile).Return(nil, tt.code, tt.execErr)

			err := NewRemotePidFileChecker(executor, testPidFile).CheckRunning(ctx)

			if tt.checkErr == nil {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.True(t, tt.checkErr(err))
			}
		})
	}
}
