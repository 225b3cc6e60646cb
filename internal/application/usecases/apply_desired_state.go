package usecases

import (
	"context"
	"fmt"

	"ospf6-agent/internal/domain/entities"
	"ospf6-agent/internal/domain/errors"
	"ospf6-agent/internal/domain/interfaces"

	"github.com/sirupsen/logrus"
)

// ApplyDesiredStateUseCase reconciles every entry of a desired-state document,
// one after another
type ApplyDesiredStateUseCase struct {
	daemonChecker interfaces.DaemonChecker
	reconciler    Reconciler
	logger        *logrus.Logger
}

// Reconciler runs a single reconciliation
type Reconciler interface {
	Execute(ctx context.Context, input ReconcileInput) (*ReconcileOutput, error)
}

// NewApplyDesiredStateUseCase creates a new ApplyDesiredStateUseCase
func NewApplyDesiredStateUseCase(
	daemonChecker interfaces.DaemonChecker,
	reconciler Reconciler,
	logger *logrus.Logger,
) *ApplyDesiredStateUseCase {
	return &ApplyDesiredStateUseCase{
		daemonChecker: daemonChecker,
		reconciler:    reconciler,
		logger:        logger,
	}
}

// ApplyDesiredStateInput carries the entries of one polling cycle
type ApplyDesiredStateInput struct {
	Entries []entities.DesiredEntry
}

// EntryResult is the outcome of one entry
type EntryResult struct {
	Target string
	Report entities.Report
}

// ApplyDesiredStateOutput summarises one cycle
type ApplyDesiredStateOutput struct {
	DaemonRunning bool
	TotalCount    int
	ChangedCount  int
	FailedCount   int
	Results       []EntryResult
}

// Execute reconciles the entries in order. A failing entry does not stop the
// following ones; the returned error reports how many failed.
func (uc *ApplyDesiredStateUseCase) Execute(ctx context.Context, input ApplyDesiredStateInput) (*ApplyDesiredStateOutput, error) {
	output := &ApplyDesiredStateOutput{TotalCount: len(input.Entries)}

	if err := uc.daemonChecker.CheckRunning(ctx); err != nil {
		output.FailedCount = len(input.Entries)
		return output, err
	}
	output.DaemonRunning = true

	for _, entry := range input.Entries {
		if ctx.Err() != nil {
			return output, ctx.Err()
		}

		target := entry.Request.Target()
		result, err := uc.reconciler.Execute(ctx, ReconcileInput{
			Request:    entry.Request,
			SaveConfig: entry.SaveConfig,
		})
		if err != nil {
			output.FailedCount++
			output.Results = append(output.Results, EntryResult{
				Target: target,
				Report: entities.FailedReport(errors.UserMessage(err)),
			})
			continue
		}

		if result.Report.Changed {
			output.ChangedCount++
		}
		output.Results = append(output.Results, EntryResult{Target: target, Report: result.Report})
	}

	if output.ChangedCount > 0 || output.FailedCount > 0 {
		uc.logger.WithFields(logrus.Fields{
			"total":   output.TotalCount,
			"changed": output.ChangedCount,
			"failed":  output.FailedCount,
		}).Info("Desired state applied")
	}

	if output.FailedCount > 0 {
		return output, errors.NewSystemError(
			fmt.Sprintf("%d of %d desired-state entries failed", output.FailedCount, output.TotalCount), nil)
	}
	return output, nil
}
