package usecases

import (
	"context"
	"time"

	"ospf6-agent/internal/domain/entities"
	"ospf6-agent/internal/domain/errors"
	"ospf6-agent/internal/domain/interfaces"
	"ospf6-agent/internal/domain/services"
	"ospf6-agent/internal/infrastructure/metrics"

	"github.com/sirupsen/logrus"
)

// CommandEmitter executes the command of each discrepancy in order and
// records the outcome in a ChangeResult
type CommandEmitter struct {
	executor interfaces.CommandExecutor
	builder  *services.CommandBuilder
	timeout  time.Duration
	logger   *logrus.Logger
}

// NewCommandEmitter creates a new CommandEmitter
func NewCommandEmitter(
	executor interfaces.CommandExecutor,
	builder *services.CommandBuilder,
	timeout time.Duration,
	logger *logrus.Logger,
) *CommandEmitter {
	return &CommandEmitter{
		executor: executor,
		builder:  builder,
		timeout:  timeout,
		logger:   logger,
	}
}

// Emit runs one command per discrepancy and stops at the first failure.
// Commands that already ran stay applied and remain recorded in result.
func (e *CommandEmitter) Emit(ctx context.Context, discrepancies []entities.Discrepancy, result *entities.ChangeResult) (int, error) {
	executed := 0

	for _, d := range discrepancies {
		cmd, err := e.builder.Build(d)
		if err != nil {
			return executed, err
		}

		logger := e.logger.WithFields(logrus.Fields{
			"action":  d.Action.String(),
			"command": cmd.String(),
		})

		if _, err := e.executor.ExecuteWithTimeout(ctx, e.timeout, cmd.Name, cmd.Args...); err != nil {
			metrics.RecordCommand(d.Action.String(), "failed")
			logger.WithError(err).Error("cl-ospf6 command failed")
			if errors.IsTimeoutError(err) {
				return executed, err
			}
			return executed, errors.NewSystemError("failed to execute "+cmd.String(), err)
		}

		executed++
		metrics.RecordCommand(d.Action.String(), "success")
		result.Record(d.Message())
		logger.Info(d.Message())
	}

	return executed, nil
}
