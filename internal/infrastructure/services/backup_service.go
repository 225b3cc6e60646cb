package services

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"ospf6-agent/internal/domain/constants"
	"ospf6-agent/internal/domain/errors"
	"ospf6-agent/internal/domain/interfaces"

	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
)

const backupPrefix = "ospf6_"

// BackupService keeps snapshots of the Quagga running config taken before
// commands are emitted
type BackupService struct {
	fileSystem interfaces.FileSystem
	clock      clockwork.Clock
	logger     *logrus.Logger
	backupDir  string
	maxBackups int
}

// NewBackupService creates a new BackupService
func NewBackupService(
	fs interfaces.FileSystem,
	clock clockwork.Clock,
	logger *logrus.Logger,
	backupDir string,
) interfaces.BackupService {
	return &BackupService{
		fileSystem: fs,
		clock:      clock,
		logger:     logger,
		backupDir:  backupDir,
		maxBackups: constants.MaxBackupsPerScope,
	}
}

// CreateBackup writes ospf6_<scope>_<timestamp>.conf and prunes the oldest
// snapshots of the same scope
func (s *BackupService) CreateBackup(ctx context.Context, scope string, content []byte) (string, error) {
	if err := s.fileSystem.MkdirAll(s.backupDir, 0755); err != nil {
		return "", errors.NewSystemError("failed to create backup directory", err)
	}

	timestamp := s.clock.Now().Format("20060102_150405")
	backupPath := filepath.Join(s.backupDir, fmt.Sprintf("%s%s_%s.conf", backupPrefix, scope, timestamp))

	if err := s.fileSystem.WriteFile(backupPath, content, constants.ConfigFilePermission); err != nil {
		return "", errors.NewSystemError("failed to write backup file", err)
	}

	s.logger.WithFields(logrus.Fields{
		"scope":       scope,
		"backup_path": backupPath,
	}).Info("Running config snapshot created")

	s.prune(scope)

	return backupPath, nil
}

// ListBackups returns the snapshot file names of a scope, oldest first
func (s *BackupService) ListBackups(scope string) ([]string, error) {
	if !s.fileSystem.Exists(s.backupDir) {
		return []string{}, nil
	}

	files, err := s.fileSystem.ListFiles(s.backupDir)
	if err != nil {
		return nil, errors.NewSystemError("failed to read backup directory", err)
	}

	var backups []string
	prefix := backupPrefix + scope + "_"
	for _, file := range files {
		if strings.HasPrefix(file, prefix) && strings.HasSuffix(file, ".conf") {
			backups = append(backups, file)
		}
	}

	// Timestamps in the names sort chronologically
	sort.Strings(backups)

	return backups, nil
}

func (s *BackupService) prune(scope string) {
	backups, err := s.ListBackups(scope)
	if err != nil {
		s.logger.WithError(err).Warn("Failed to list snapshots for pruning")
		return
	}

	for len(backups) > s.maxBackups {
		oldest := filepath.Join(s.backupDir, backups[0])
		if err := s.fileSystem.Remove(oldest); err != nil {
			s.logger.WithError(err).WithField("path", oldest).Warn("Failed to remove old snapshot")
		}
		backups = backups[1:]
	}
}
