package main

import (
	"context"
	goerrors "errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"ospf6-agent/internal/application/polling"
	"ospf6-agent/internal/application/usecases"
	"ospf6-agent/internal/domain/errors"
	"ospf6-agent/internal/infrastructure/config"
	"ospf6-agent/internal/infrastructure/container"
	"ospf6-agent/internal/infrastructure/metrics"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newAgentCmd() *cobra.Command {
	var desiredFile string

	cmd := &cobra.Command{
		Use:   "agent",
		Short: "Reconcile a desired-state file on every polling cycle",
		Long: `Run as a daemon: load the desired-state YAML on every cycle and reconcile
its entries one after another. Health is served on / and metrics on /metrics.

  ospf6-agent agent --desired /etc/ospf6-agent/desired.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			appContainer, logger, err := bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			defer closeContainer(appContainer, logger)

			if desiredFile == "" {
				desiredFile = appContainer.GetConfig().Agent.DesiredStateFile
			}
			if desiredFile == "" {
				return errors.NewValidationError("desired-state file required: use --desired or set DESIRED_STATE_FILE", nil)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return NewAgent(appContainer, desiredFile, logger).Run(ctx)
		},
	}

	cmd.Flags().StringVar(&desiredFile, "desired", "", "desired-state YAML file (default $DESIRED_STATE_FILE)")
	return cmd
}

// Agent is the long-running reconciliation loop
type Agent struct {
	container    *container.Container
	desiredFile  string
	logger       *logrus.Logger
	applyUseCase *usecases.ApplyDesiredStateUseCase
	loader       *config.DesiredStateLoader
	healthServer *http.Server
}

// NewAgent creates a new Agent
func NewAgent(appContainer *container.Container, desiredFile string, logger *logrus.Logger) *Agent {
	return &Agent{
		container:    appContainer,
		desiredFile:  desiredFile,
		logger:       logger,
		applyUseCase: appContainer.GetApplyDesiredStateUseCase(),
		loader:       appContainer.GetDesiredStateLoader(),
	}
}

// Run polls until ctx is cancelled
func (a *Agent) Run(ctx context.Context) error {
	cfg := a.container.GetConfig()

	platform := a.container.GetPlatform()
	a.logger.WithField("platform", platform).Info("Platform detected")
	metrics.SetAgentInfo(version, string(platform), cfg.Agent.NodeName)

	a.startHealthServer(cfg.Health.Port)
	defer a.shutdown()

	controller := polling.NewPollingController(a.strategy(cfg.Agent), a.container.GetClock(), a.logger)

	a.logger.WithFields(logrus.Fields{
		"desired_file": a.desiredFile,
		"node_name":    cfg.Agent.NodeName,
	}).Info("OSPFv3 agent started")

	err := controller.Start(ctx, a.processDesiredState)
	if goerrors.Is(err, context.Canceled) {
		a.logger.Info("Received shutdown signal")
		return nil
	}
	return err
}

func (a *Agent) strategy(cfg config.AgentConfig) polling.Strategy {
	if cfg.MaxPollInterval > cfg.PollInterval {
		a.logger.WithFields(logrus.Fields{
			"base_interval": cfg.PollInterval,
			"max_interval":  cfg.MaxPollInterval,
			"multiplier":    cfg.BackoffMultiplier,
		}).Info("Exponential backoff polling enabled")
		return polling.NewExponentialBackoffStrategy(cfg.PollInterval, cfg.MaxPollInterval, cfg.BackoffMultiplier, a.logger)
	}

	a.logger.WithField("interval", cfg.PollInterval).Info("Fixed interval polling enabled")
	return polling.NewFixedStrategy(cfg.PollInterval)
}

// processDesiredState is one polling cycle. The file is reloaded every time
// so edits apply without a restart.
func (a *Agent) processDesiredState(ctx context.Context) error {
	defer a.container.CheckRunHistory(ctx)

	state, err := a.loader.Load(a.desiredFile)
	if err != nil {
		return err
	}
	entries, err := state.Entries()
	if err != nil {
		return err
	}

	output, err := a.applyUseCase.Execute(ctx, usecases.ApplyDesiredStateInput{Entries: entries})

	healthService := a.container.GetHealthService()
	if output.DaemonRunning {
		healthService.UpdateDaemonStatus(true, nil)
	} else {
		healthService.UpdateDaemonStatus(false, err)
	}
	for _, result := range output.Results {
		healthService.RecordRun(result.Report.Changed, result.Report.Failed)
	}
	for _, result := range output.Results {
		if result.Report.Failed {
			a.logger.WithFields(logrus.Fields{
				"target": result.Target,
				"msg":    result.Report.Msg,
			}).Warn("Desired-state entry failed")
		}
	}

	return err
}

func (a *Agent) startHealthServer(port string) {
	mux := http.NewServeMux()
	mux.Handle("/", a.container.GetHealthService())
	mux.Handle("/metrics", promhttp.Handler())

	a.healthServer = &http.Server{
		Addr:              ":" + port,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		a.logger.WithField("port", port).Info("Health check server started (with /metrics)")
		if err := a.healthServer.ListenAndServe(); err != http.ErrServerClosed {
			a.logger.WithError(err).Error("Health check server failed")
		}
	}()
}

func (a *Agent) shutdown() {
	if a.healthServer == nil {
		return
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := a.healthServer.Shutdown(shutdownCtx); err != nil {
		a.logger.WithError(err).Error("Failed to shutdown health check server")
	}
}
