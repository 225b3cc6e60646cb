package container

import (
	"context"
	"database/sql"

	"ospf6-agent/internal/application/usecases"
	"ospf6-agent/internal/domain/interfaces"
	"ospf6-agent/internal/domain/services"
	"ospf6-agent/internal/infrastructure/adapters"
	"ospf6-agent/internal/infrastructure/config"
	"ospf6-agent/internal/infrastructure/health"
	"ospf6-agent/internal/infrastructure/persistence"
	"ospf6-agent/internal/infrastructure/quagga"
	infraServices "ospf6-agent/internal/infrastructure/services"

	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
)

// Container wires the agent's dependencies
type Container struct {
	config *config.Config
	logger *logrus.Logger

	// infrastructure adapters
	fileSystem       interfaces.FileSystem
	commandExecutor  interfaces.CommandExecutor
	sshExecutor      *adapters.SSHCommandExecutor
	clock            clockwork.Clock
	platformDetector interfaces.PlatformDetector

	// services
	healthService      *health.HealthService
	collaborators      *quagga.Collaborators
	backupService      interfaces.BackupService
	desiredStateLoader *config.DesiredStateLoader

	// run history
	db           *sql.DB
	mysqlHistory *persistence.MySQLRunHistory
	runHistory   interfaces.RunHistoryRepository

	// use cases
	reconcileUseCase         *usecases.ReconcileOSPF6UseCase
	applyDesiredStateUseCase *usecases.ApplyDesiredStateUseCase
}

// NewContainer creates a new Container. The run history database is only
// opened when DB_HOST is configured.
func NewContainer(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*Container, error) {
	container := &Container{
		config: cfg,
		logger: logger,
	}

	if err := container.initializeInfrastructure(ctx); err != nil {
		container.Close()
		return nil, err
	}

	container.initializeServices()
	container.initializeUseCases()

	return container, nil
}

func (c *Container) initializeInfrastructure(ctx context.Context) error {
	c.fileSystem = adapters.NewRealFileSystem()
	c.clock = clockwork.NewRealClock()
	c.platformDetector = adapters.NewRealPlatformDetector(c.fileSystem)

	if c.config.Remote.Enabled() {
		c.sshExecutor = adapters.NewSSHCommandExecutor(adapters.SSHConfig{
			Host:     c.config.Remote.Host,
			Port:     c.config.Remote.Port,
			User:     c.config.Remote.User,
			Password: c.config.Remote.Password,
			Timeout:  c.config.Remote.Timeout,
		}, c.logger)
		c.commandExecutor = c.sshExecutor
	} else {
		c.commandExecutor = adapters.NewRealCommandExecutor(c.logger)
	}

	if !c.config.Database.Enabled() {
		c.runHistory = persistence.NewNoopRunHistory()
		return nil
	}

	db, err := persistence.OpenDB(ctx, c.clock, c.config.Database)
	if err != nil {
		return err
	}
	c.db = db

	c.mysqlHistory = persistence.NewMySQLRunHistory(db, c.logger)
	if err := c.mysqlHistory.EnsureSchema(ctx); err != nil {
		return err
	}
	c.runHistory = c.mysqlHistory

	return nil
}

func (c *Container) initializeServices() {
	c.healthService = health.NewHealthService(c.clock, c.logger)
	if c.mysqlHistory != nil {
		c.healthService.EnableRunHistory()
		c.healthService.UpdateDBHealth(true, nil)
	}

	factory := quagga.NewCollaboratorFactory(
		quagga.Options{
			CLOSPF6Path:    c.config.Quagga.CLOSPF6Path,
			VtyshPath:      c.config.Quagga.VtyshPath,
			IfqueryPath:    c.config.Quagga.IfqueryPath,
			IPPath:         c.config.Quagga.IPPath,
			PidFile:        c.config.Quagga.PidFile,
			AddressSource:  c.config.Agent.AddressSource,
			CommandTimeout: c.config.Agent.CommandTimeout,
			Remote:         c.config.Remote.Enabled(),
		},
		c.platformDetector,
		c.commandExecutor,
		c.fileSystem,
		c.logger,
	)
	c.collaborators = factory.Create()
	c.healthService.SetPlatform(string(c.collaborators.Platform))

	if c.config.Agent.BackupDirectory != "" {
		c.backupService = infraServices.NewBackupService(
			c.fileSystem,
			c.clock,
			c.logger,
			c.config.Agent.BackupDirectory,
		)
	}

	c.desiredStateLoader = config.NewDesiredStateLoader(c.fileSystem)
}

func (c *Container) initializeUseCases() {
	emitter := usecases.NewCommandEmitter(
		c.commandExecutor,
		services.NewCommandBuilder(c.config.Quagga.CLOSPF6Path),
		c.config.Agent.CommandTimeout,
		c.logger,
	)

	c.reconcileUseCase = usecases.NewReconcileOSPF6UseCase(
		c.collaborators.DaemonChecker,
		c.collaborators.ConfigReader,
		c.collaborators.ConfigSaver,
		c.collaborators.AddressInspector,
		emitter,
		c.backupService,
		c.runHistory,
		c.clock,
		c.config.Agent.NodeName,
		c.logger,
	)

	c.applyDesiredStateUseCase = usecases.NewApplyDesiredStateUseCase(
		c.collaborators.DaemonChecker,
		c.reconcileUseCase,
		c.logger,
	)
}

// GetConfig returns the configuration
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetClock returns the clock shared by all components
func (c *Container) GetClock() clockwork.Clock {
	return c.clock
}

// GetPlatform returns the platform the collaborators were built for
func (c *Container) GetPlatform() interfaces.PlatformType {
	return c.collaborators.Platform
}

// GetHealthService returns the health service
func (c *Container) GetHealthService() *health.HealthService {
	return c.healthService
}

// GetDesiredStateLoader returns the desired-state document loader
func (c *Container) GetDesiredStateLoader() *config.DesiredStateLoader {
	return c.desiredStateLoader
}

// GetBackupService returns the snapshot service, nil when snapshots are disabled
func (c *Container) GetBackupService() interfaces.BackupService {
	return c.backupService
}

// GetRunHistory returns the run history repository
func (c *Container) GetRunHistory() interfaces.RunHistoryRepository {
	return c.runHistory
}

// GetReconcileUseCase returns the single-request reconciliation use case
func (c *Container) GetReconcileUseCase() *usecases.ReconcileOSPF6UseCase {
	return c.reconcileUseCase
}

// GetApplyDesiredStateUseCase returns the desired-state use case
func (c *Container) GetApplyDesiredStateUseCase() *usecases.ApplyDesiredStateUseCase {
	return c.applyDesiredStateUseCase
}

// CheckRunHistory pings the run history database and updates the health
// status. It is a no-op without a database.
func (c *Container) CheckRunHistory(ctx context.Context) {
	if c.mysqlHistory == nil {
		return
	}
	err := c.mysqlHistory.Ping(ctx)
	c.healthService.UpdateDBHealth(err == nil, err)
	if err != nil {
		c.logger.WithError(err).Warn("Run history database unreachable")
	}
}

// Close releases the database and the SSH connection
func (c *Container) Close() error {
	var firstErr error
	if c.db != nil {
		if err := c.db.Close(); err != nil {
			firstErr = err
		}
		c.db = nil
	}
	if c.sshExecutor != nil {
		if err := c.sshExecutor.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
