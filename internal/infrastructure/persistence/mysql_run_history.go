package persistence

import (
	"context"
	"database/sql"
	"time"

	"ospf6-agent/internal/domain/errors"
	"ospf6-agent/internal/domain/interfaces"
	"ospf6-agent/internal/infrastructure/config"
	"ospf6-agent/internal/infrastructure/metrics"
	"ospf6-agent/pkg/utils"

	"github.com/go-sql-driver/mysql"
	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
)

const createRunsTable = `
	CREATE TABLE IF NOT EXISTS ospf6_runs (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		node_name VARCHAR(255) NOT NULL,
		scope VARCHAR(16) NOT NULL,
		target VARCHAR(64) NOT NULL,
		changed TINYINT(1) NOT NULL,
		failed TINYINT(1) NOT NULL,
		message TEXT NOT NULL,
		commands INT NOT NULL,
		duration_ms BIGINT NOT NULL,
		started_at DATETIME(3) NOT NULL,
		INDEX idx_ospf6_runs_node (node_name, started_at)
	)`

// MySQLRunHistory is a MySQL based RunHistoryRepository
type MySQLRunHistory struct {
	db     *sql.DB
	logger *logrus.Logger
}

// NewMySQLRunHistory creates a new MySQLRunHistory
func NewMySQLRunHistory(db *sql.DB, logger *logrus.Logger) *MySQLRunHistory {
	return &MySQLRunHistory{
		db:     db,
		logger: logger,
	}
}

var _ interfaces.RunHistoryRepository = (*MySQLRunHistory)(nil)

// BuildDSN renders the go-sql-driver DSN for the run history database
func BuildDSN(cfg config.DatabaseConfig) string {
	dsn := mysql.NewConfig()
	dsn.User = cfg.User
	dsn.Passwd = cfg.Password
	dsn.Net = "tcp"
	dsn.Addr = cfg.Host + ":" + cfg.Port
	dsn.DBName = cfg.Database
	dsn.ParseTime = true
	dsn.Loc = time.UTC
	return dsn.FormatDSN()
}

// OpenDB opens the run history database and pings it, retrying with backoff
func OpenDB(ctx context.Context, clock clockwork.Clock, cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("mysql", BuildDSN(cfg))
	if err != nil {
		return nil, errors.NewSystemError("failed to open run history database", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.MaxLifetime)

	err = utils.RetryWithBackoff(ctx, clock, utils.DefaultRetryConfig, func() error {
		return db.PingContext(ctx)
	})
	if err != nil {
		db.Close()
		metrics.SetDBConnectionStatus(false)
		return nil, errors.NewSystemError("failed to connect to run history database", err)
	}

	metrics.SetDBConnectionStatus(true)
	return db, nil
}

// EnsureSchema creates the ospf6_runs table when missing
func (r *MySQLRunHistory) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createRunsTable); err != nil {
		return errors.NewSystemError("failed to create ospf6_runs table", err)
	}
	return nil
}

// Ping checks the database connection
func (r *MySQLRunHistory) Ping(ctx context.Context) error {
	err := r.db.PingContext(ctx)
	metrics.SetDBConnectionStatus(err == nil)
	return err
}

// RecordRun stores one finished run
func (r *MySQLRunHistory) RecordRun(ctx context.Context, record interfaces.RunRecord) error {
	start := time.Now()
	defer func() {
		metrics.RecordDBQuery("record_run", time.Since(start).Seconds())
	}()

	query := `
		INSERT INTO ospf6_runs
			(node_name, scope, target, changed, failed, message, commands, duration_ms, started_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		record.NodeName,
		record.Scope,
		record.Target,
		record.Changed,
		record.Failed,
		record.Message,
		record.Commands,
		record.Duration.Milliseconds(),
		record.StartedAt.UTC(),
	)
	if err != nil {
		return errors.NewSystemError("failed to record run", err)
	}

	r.logger.WithFields(logrus.Fields{
		"scope":   record.Scope,
		"target":  record.Target,
		"changed": record.Changed,
		"failed":  record.Failed,
	}).Debug("Run recorded")

	return nil
}

// GetRecentRuns returns the latest runs for a node, newest first
func (r *MySQLRunHistory) GetRecentRuns(ctx context.Context, nodeName string, limit int) ([]interfaces.RunRecord, error) {
	start := time.Now()
	defer func() {
		metrics.RecordDBQuery("recent_runs", time.Since(start).Seconds())
	}()

	query := `
		SELECT node_name, scope, target, changed, failed, message, commands, duration_ms, started_at
		FROM ospf6_runs
		WHERE node_name = ?
		ORDER BY started_at DESC, id DESC
		LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, query, nodeName, limit)
	if err != nil {
		return nil, errors.NewSystemError("failed to query run history", err)
	}
	defer rows.Close()

	var records []interfaces.RunRecord
	for rows.Next() {
		var record interfaces.RunRecord
		var durationMs int64

		if err := rows.Scan(
			&record.NodeName,
			&record.Scope,
			&record.Target,
			&record.Changed,
			&record.Failed,
			&record.Message,
			&record.Commands,
			&durationMs,
			&record.StartedAt,
		); err != nil {
			r.logger.WithError(err).Error("Failed to scan run history row")
			continue
		}

		record.Duration = time.Duration(durationMs) * time.Millisecond
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.NewSystemError("failed to iterate run history", err)
	}

	return records, nil
}
