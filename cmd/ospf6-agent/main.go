// ospf6-agent reconciles the OSPFv3 configuration of a Quagga ospf6d daemon.
//
// Usage:
//
//	ospf6-agent apply --interface swp1 --area 0.0.0.0   One reconciliation, JSON report on stdout
//	ospf6-agent agent --desired /etc/ospf6/desired.yaml Reconcile a desired-state file on every poll
//	ospf6-agent history                                 Show recent runs of this node
//	ospf6-agent backups <scope>                         List running-config snapshots
package main

import (
	"context"
	goerrors "errors"
	"fmt"
	"os"

	"ospf6-agent/internal/domain/constants"
	"ospf6-agent/internal/infrastructure/config"
	"ospf6-agent/internal/infrastructure/container"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

var envFile string

// errReported marks a failure whose report was already written to stdout
var errReported = goerrors.New("failure already reported")

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !goerrors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:               "ospf6-agent",
		Short:             "Idempotent OSPFv3 configuration for Quagga ospf6d",
		SilenceUsage:      true,
		SilenceErrors:     true,
		CompletionOptions: cobra.CompletionOptions{HiddenDefaultCmd: true},
	}

	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", defaultEnvFile(), "env file preloaded before reading the environment")

	rootCmd.AddCommand(
		newApplyCmd(),
		newAgentCmd(),
		newHistoryCmd(),
		newBackupsCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

func defaultEnvFile() string {
	if v := os.Getenv("OSPF6_ENV_FILE"); v != "" {
		return v
	}
	return constants.DefaultEnvFile
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "ospf6-agent %s\n", version)
		},
	}
}

// newLogger builds the JSON logger on stderr so stdout only carries reports
func newLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stderr)
	logger.SetLevel(logrus.InfoLevel)
	return logger
}

func setLogLevel(logger *logrus.Logger, level string) {
	if level == "" {
		return
	}
	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		logger.WithError(err).Warnf("Unknown LOG_LEVEL value: %s. Using default Info level.", level)
		logger.SetLevel(logrus.InfoLevel)
		return
	}
	logger.SetLevel(logLevel)
}

// bootstrap loads the configuration and builds the dependency container
func bootstrap(ctx context.Context) (*container.Container, *logrus.Logger, error) {
	logger := newLogger()

	cfg, err := config.NewEnvironmentConfigLoader(envFile).Load()
	if err != nil {
		return nil, logger, err
	}
	setLogLevel(logger, cfg.LogLevel)

	appContainer, err := container.NewContainer(ctx, cfg, logger)
	if err != nil {
		return nil, logger, err
	}
	return appContainer, logger, nil
}

func closeContainer(appContainer *container.Container, logger *logrus.Logger) {
	if err := appContainer.Close(); err != nil {
		logger.WithError(err).Error("Failed to cleanup container")
	}
}
