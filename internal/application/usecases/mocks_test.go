package usecases

import (
	"context"
	"time"

	"ospf6-agent/internal/domain/interfaces"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"
)

type MockCommandExecutor struct {
	mock.Mock
}

func (m *MockCommandExecutor) Execute(ctx context.Context, command string, args ...string) ([]byte, error) {
	argList := []interface{}{ctx, command}
	for _, arg := range args {
		argList = append(argList, arg)
	}
	mockArgs := m.Called(argList...)
	if mockArgs.Get(0) == nil {
		return nil, mockArgs.Error(1)
	}
	return mockArgs.Get(0).([]byte), mockArgs.Error(1)
}

func (m *MockCommandExecutor) ExecuteUnchecked(ctx context.Context, command string, args ...string) ([]byte, int, error) {
	argList := []interface{}{ctx, command}
	for _, arg := range args {
		argList = append(argList, arg)
	}
	mockArgs := m.Called(argList...)
	var output []byte
	if mockArgs.Get(0) != nil {
		output = mockArgs.Get(0).([]byte)
	}
	return output, mockArgs.Int(1), mockArgs.Error(2)
}

func (m *MockCommandExecutor) ExecuteWithTimeout(ctx context.Context, timeout time.Duration, command string, args ...string) ([]byte, error) {
	argList := []interface{}{ctx, timeout, command}
	for _, arg := range args {
		argList = append(argList, arg)
	}
	mockArgs := m.Called(argList...)
	if mockArgs.Get(0) == nil {
		return nil, mockArgs.Error(1)
	}
	return mockArgs.Get(0).([]byte), mockArgs.Error(1)
}

type MockDaemonChecker struct {
	mock.Mock
}

func (m *MockDaemonChecker) CheckRunning(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type MockRunningConfigReader struct {
	mock.Mock
}

func (m *MockRunningConfigReader) ReadRunningConfig(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

type MockConfigSaver struct {
	mock.Mock
}

func (m *MockConfigSaver) SaveConfig(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type MockAddressInspector struct {
	mock.Mock
}

func (m *MockAddressInspector) HasIPv6Address(ctx context.Context, ifaceName string) (bool, error) {
	args := m.Called(ctx, ifaceName)
	return args.Bool(0), args.Error(1)
}

type MockBackupService struct {
	mock.Mock
}

func (m *MockBackupService) CreateBackup(ctx context.Context, scope string, content []byte) (string, error) {
	args := m.Called(ctx, scope, content)
	return args.String(0), args.Error(1)
}

func (m *MockBackupService) ListBackups(scope string) ([]string, error) {
	args := m.Called(scope)
	return args.Get(0).([]string), args.Error(1)
}

type MockRunHistory struct {
	mock.Mock
}

func (m *MockRunHistory) RecordRun(ctx context.Context, record interfaces.RunRecord) error {
	return m.Called(ctx, record).Error(0)
}

func (m *MockRunHistory) GetRecentRuns(ctx context.Context, nodeName string, limit int) ([]interfaces.RunRecord, error) {
	args := m.Called(ctx, nodeName, limit)
	return args.Get(0).([]interfaces.RunRecord), args.Error(1)
}

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	return logger
}

func boolPtr(b bool) *bool { return &b }
