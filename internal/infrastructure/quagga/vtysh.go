package quagga

import (
	"context"
	"time"

	"ospf6-agent/internal/domain/errors"
	"ospf6-agent/internal/domain/interfaces"

	"github.com/sirupsen/logrus"
)

const (
	showRunningConfig = "show running-config"
	writeMemory       = "wr mem"
)

// VtyshClient reads and persists the Quagga configuration through vtysh
type VtyshClient struct {
	executor  interfaces.CommandExecutor
	vtyshPath string
	timeout   time.Duration
	logger    *logrus.Logger
}

// NewVtyshClient creates a new VtyshClient
func NewVtyshClient(executor interfaces.CommandExecutor, vtyshPath string, timeout time.Duration, logger *logrus.Logger) *VtyshClient {
	return &VtyshClient{
		executor:  executor,
		vtyshPath: vtyshPath,
		timeout:   timeout,
		logger:    logger,
	}
}

var (
	_ interfaces.RunningConfigReader = (*VtyshClient)(nil)
	_ interfaces.ConfigSaver         = (*VtyshClient)(nil)
)

// ReadRunningConfig returns the output of "show running-config"
func (c *VtyshClient) ReadRunningConfig(ctx context.Context) (string, error) {
	output, err := c.executor.ExecuteWithTimeout(ctx, c.timeout, c.vtyshPath, "-c", showRunningConfig)
	if err != nil {
		return "", errors.NewSystemError("failed to read Quagga running config", err)
	}

	c.logger.WithField("bytes", len(output)).Debug("Read Quagga running config")
	return string(output), nil
}

// SaveConfig writes the running configuration to the startup configuration
func (c *VtyshClient) SaveConfig(ctx context.Context) error {
	if _, err := c.executor.ExecuteWithTimeout(ctx, c.timeout, c.vtyshPath, "-c", writeMemory); err != nil {
		return errors.NewSystemError("failed to save Quagga config", err)
	}

	c.logger.Info("Quagga config saved")
	return nil
}
