package adapters

import (
	"os"
	"testing"

	"ospf6-agent/internal/domain/interfaces"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockFileSystem is a mock FileSystem for adapter tests
type MockFileSystem struct {
	mock.Mock
}

func (m *MockFileSystem) ReadFile(path string) ([]byte, error) {
	args := m.Called(path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockFileSystem) WriteFile(path string, data []byte, perm os.FileMode) error {
	args := m.Called(path, data, perm)
	return args.Error(0)
}

func (m *MockFileSystem) Exists(path string) bool {
	args := m.Called(path)
	return args.Bool(0)
}

func (m *MockFileSystem) MkdirAll(path string, perm os.FileMode) error {
	args := m.Called(path, perm)
	return args.Error(0)
}

func (m *MockFileSystem) Remove(path string) error {
	args := m.Called(path)
	return args.Error(0)
}

func (m *MockFileSystem) ListFiles(path string) ([]string, error) {
	args := m.Called(path)
	return args.Get(0).([]string), args.Error(1)
}

func TestRealPlatformDetector_DetectPlatform(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		readError   error
		expected    interfaces.PlatformType
		expectError bool
	}{
		{
			name:     "Cumulus Linux",
			content:  "NAME=\"Cumulus Linux\"\nVERSION_ID=3.7.15\nID=cumulus-linux\nID_LIKE=debian\n",
			expected: interfaces.PlatformCumulus,
		},
		{
			name:     "Debian host running Quagga",
			content:  "PRETTY_NAME=\"Debian GNU/Linux 10 (buster)\"\nID=debian\n",
			expected: interfaces.PlatformGeneric,
		},
		{
			name:     "missing ID field",
			content:  "NAME=Unknown\n",
			expected: interfaces.PlatformGeneric,
		},
		{
			name:        "unreadable file",
			readError:   os.ErrNotExist,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockFS := new(MockFileSystem)
			if tt.readError != nil {
				mockFS.On("ReadFile", OSReleasePath).Return(nil, tt.readError)
			} else {
				mockFS.On("ReadFile", OSReleasePath).Return([]byte(tt.content), nil)
			}

			detector := NewRealPlatformDetector(mockFS)
			result, err := detector.DetectPlatform()

			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, result)
			}
			mockFS.AssertExpectations(t)
		})
	}
}
