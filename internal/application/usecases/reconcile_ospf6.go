package usecases

import (
	"context"
	"fmt"
	"strings"

	"ospf6-agent/internal/domain/entities"
	"ospf6-agent/internal/domain/errors"
	"ospf6-agent/internal/domain/interfaces"
	"ospf6-agent/internal/domain/services"
	"ospf6-agent/internal/infrastructure/metrics"

	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
)

// SavingConfigMessage is appended to the report once the config is persisted
const SavingConfigMessage = "Saving Config"

// ReconcileOSPF6UseCase brings the live ospf6d configuration in line with one
// request
type ReconcileOSPF6UseCase struct {
	daemonChecker    interfaces.DaemonChecker
	configReader     interfaces.RunningConfigReader
	configSaver      interfaces.ConfigSaver
	addressInspector interfaces.AddressInspector
	emitter          *CommandEmitter
	backupService    interfaces.BackupService
	runHistory       interfaces.RunHistoryRepository
	clock            clockwork.Clock
	nodeName         string
	logger           *logrus.Logger
}

// NewReconcileOSPF6UseCase creates a new ReconcileOSPF6UseCase. backup may be
// nil to disable snapshots.
func NewReconcileOSPF6UseCase(
	daemonChecker interfaces.DaemonChecker,
	configReader interfaces.RunningConfigReader,
	configSaver interfaces.ConfigSaver,
	addressInspector interfaces.AddressInspector,
	emitter *CommandEmitter,
	backup interfaces.BackupService,
	runHistory interfaces.RunHistoryRepository,
	clock clockwork.Clock,
	nodeName string,
	logger *logrus.Logger,
) *ReconcileOSPF6UseCase {
	return &ReconcileOSPF6UseCase{
		daemonChecker:    daemonChecker,
		configReader:     configReader,
		configSaver:      configSaver,
		addressInspector: addressInspector,
		emitter:          emitter,
		backupService:    backup,
		runHistory:       runHistory,
		clock:            clock,
		nodeName:         nodeName,
		logger:           logger,
	}
}

// ReconcileInput is the input of one reconciliation
type ReconcileInput struct {
	Request    entities.Request
	SaveConfig bool
}

// ReconcileOutput is the result of a successful reconciliation
type ReconcileOutput struct {
	Report        entities.Report
	Discrepancies []entities.Discrepancy
	Commands      int
}

// Execute runs one reconciliation. On error the commands already executed
// stay applied.
func (uc *ReconcileOSPF6UseCase) Execute(ctx context.Context, input ReconcileInput) (*ReconcileOutput, error) {
	if input.Request == nil {
		return nil, errors.NewValidationError("no request given", nil)
	}

	start := uc.clock.Now()
	scope := string(input.Request.Scope())
	logger := uc.logger.WithFields(logrus.Fields{
		"scope":  scope,
		"target": input.Request.Target(),
	})

	var result entities.ChangeResult
	output, err := uc.reconcile(ctx, input, &result, logger)

	duration := uc.clock.Since(start)
	record := interfaces.RunRecord{
		NodeName:  uc.nodeName,
		Scope:     scope,
		Target:    input.Request.Target(),
		Changed:   result.Changed(),
		Duration:  duration,
		StartedAt: start,
	}

	if err != nil {
		metrics.RecordRun(scope, metrics.ResultFailed, duration.Seconds())
		metrics.RecordError(string(errors.TypeOf(err)))
		record.Failed = true
		record.Message = errors.UserMessage(err)
		if output != nil {
			record.Commands = output.Commands
		}
		uc.recordHistory(ctx, record)
		logger.WithError(err).Error("OSPFv3 reconciliation failed")
		return nil, err
	}

	runResult := metrics.ResultUnchanged
	if output.Report.Changed {
		runResult = metrics.ResultChanged
	}
	metrics.RecordRun(scope, runResult, duration.Seconds())

	record.Message = output.Report.Msg
	record.Commands = output.Commands
	uc.recordHistory(ctx, record)

	logger.WithFields(logrus.Fields{
		"changed":  output.Report.Changed,
		"commands": output.Commands,
		"duration": duration,
	}).Info("OSPFv3 reconciliation finished")

	return output, nil
}

func (uc *ReconcileOSPF6UseCase) reconcile(ctx context.Context, input ReconcileInput, result *entities.ChangeResult, logger *logrus.Entry) (*ReconcileOutput, error) {
	if err := uc.daemonChecker.CheckRunning(ctx); err != nil {
		return nil, err
	}

	text, err := uc.configReader.ReadRunningConfig(ctx)
	if err != nil {
		return nil, err
	}
	runningConfig := services.ParseRunningConfig(text)

	if req, ok := input.Request.(entities.InterfaceRequest); ok {
		if err := uc.checkInterfacePrerequisites(ctx, req, runningConfig); err != nil {
			return nil, err
		}
	}

	discrepancies, err := services.Resolve(input.Request, runningConfig)
	if err != nil {
		return nil, err
	}

	logger.WithField("discrepancies", len(discrepancies)).Debug("Desired state resolved")

	if len(discrepancies) > 0 {
		uc.snapshot(ctx, input.Request, text)
	}

	output := &ReconcileOutput{Discrepancies: discrepancies}

	output.Commands, err = uc.emitter.Emit(ctx, discrepancies, result)
	if err != nil {
		return output, err
	}

	if input.SaveConfig && result.Changed() {
		if err := uc.configSaver.SaveConfig(ctx); err != nil {
			return output, err
		}
		result.Record(SavingConfigMessage)
	}

	output.Report = result.Report()
	return output, nil
}

func (uc *ReconcileOSPF6UseCase) checkInterfacePrerequisites(ctx context.Context, req entities.InterfaceRequest, cfg entities.RunningConfig) error {
	if _, err := services.LookupInterface(req.Interface, cfg); err != nil {
		return err
	}

	hasAddress, err := uc.addressInspector.HasIPv6Address(ctx, req.Interface)
	if err != nil {
		return err
	}
	if !hasAddress {
		return errors.NewPreconditionError(fmt.Sprintf(
			"interface %s does not have an IPv6 address configured. Required for OSPFv3 to work",
			req.Interface), nil)
	}
	return nil
}

// snapshot failures never abort the run
func (uc *ReconcileOSPF6UseCase) snapshot(ctx context.Context, req entities.Request, text string) {
	if uc.backupService == nil {
		return
	}

	scope := string(entities.ScopeGlobal)
	if ifReq, ok := req.(entities.InterfaceRequest); ok {
		scope = strings.ToLower(ifReq.Interface)
	}

	if _, err := uc.backupService.CreateBackup(ctx, scope, []byte(text)); err != nil {
		metrics.RecordSnapshot("failed")
		uc.logger.WithError(err).WithField("scope", scope).Warn("Failed to snapshot running config")
		return
	}
	metrics.RecordSnapshot("success")
}

// recordHistory failures never abort the run
func (uc *ReconcileOSPF6UseCase) recordHistory(ctx context.Context, record interfaces.RunRecord) {
	if uc.runHistory == nil {
		return
	}
	if err := uc.runHistory.RecordRun(ctx, record); err != nil {
		uc.logger.WithError(err).Warn("Failed to record run history")
	}
}
