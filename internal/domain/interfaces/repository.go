package interfaces

import (
	"context"
	"time"
)

// RunRecord is the persisted outcome of one reconciliation run
type RunRecord struct {
	NodeName  string
	Scope     string
	Target    string
	Changed   bool
	Failed    bool
	Message   string
	Commands  int
	Duration  time.Duration
	StartedAt time.Time
}

// RunHistoryRepository stores reconciliation outcomes
type RunHistoryRepository interface {
	// RecordRun stores one finished run
	RecordRun(ctx context.Context, record RunRecord) error

	// GetRecentRuns returns the latest runs for a node, newest first
	GetRecentRuns(ctx context.Context, nodeName string, limit int) ([]RunRecord, error)
}
