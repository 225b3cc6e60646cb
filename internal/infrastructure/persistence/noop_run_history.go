package persistence

import (
	"context"

	"ospf6-agent/internal/domain/interfaces"
)

// NoopRunHistory discards run records when no database is configured
type NoopRunHistory struct{}

// NewNoopRunHistory creates a new NoopRunHistory
func NewNoopRunHistory() *NoopRunHistory {
	return &NoopRunHistory{}
}

var _ interfaces.RunHistoryRepository = (*NoopRunHistory)(nil)

func (NoopRunHistory) RecordRun(context.Context, interfaces.RunRecord) error { return nil }

func (NoopRunHistory) GetRecentRuns(context.Context, string, int) ([]interfaces.RunRecord, error) {
	return nil, nil
}
