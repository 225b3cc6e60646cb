package config

import (
	goerrors "errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"ospf6-agent/internal/domain/constants"
	"ospf6-agent/internal/domain/errors"

	"github.com/joho/godotenv"
)

// Config is a struct that holds application configuration
type Config struct {
	LogLevel string
	Quagga   QuaggaConfig
	Agent    AgentConfig
	Remote   RemoteConfig
	Database DatabaseConfig
	Health   HealthConfig
	Metrics  MetricsConfig
}

// QuaggaConfig locates the Quagga tooling on the switch
type QuaggaConfig struct {
	CLOSPF6Path string
	VtyshPath   string
	IfqueryPath string
	IPPath      string
	PidFile     string
}

// AgentConfig is a struct that holds agent configuration
type AgentConfig struct {
	NodeName          string
	PollInterval      time.Duration
	MaxPollInterval   time.Duration
	BackoffMultiplier float64
	CommandTimeout    time.Duration
	BackupDirectory   string
	DesiredStateFile  string
	AddressSource     string
}

// RemoteConfig describes the SSH connection used when driving a remote switch
type RemoteConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Timeout  time.Duration
}

// Enabled reports whether commands should run over SSH
func (r RemoteConfig) Enabled() bool {
	return r.Host != ""
}

// DatabaseConfig is a struct that holds the run history database configuration
type DatabaseConfig struct {
	Host         string
	Port         string
	User         string
	Password     string
	Database     string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  time.Duration
}

// Enabled reports whether run history should be recorded
func (d DatabaseConfig) Enabled() bool {
	return d.Host != ""
}

// HealthConfig is a struct that holds health check configuration
type HealthConfig struct {
	Port string
}

// MetricsConfig holds the node_exporter textfile used by one-shot runs
type MetricsConfig struct {
	TextfilePath string
}

// ConfigLoader is an interface for loading configuration
type ConfigLoader interface {
	Load() (*Config, error)
}

// EnvironmentConfigLoader loads configuration from environment variables,
// optionally preloaded from an env file
type EnvironmentConfigLoader struct {
	envFile string
}

// NewEnvironmentConfigLoader creates a new EnvironmentConfigLoader. Variables
// already set in the environment win over the env file.
func NewEnvironmentConfigLoader(envFile string) ConfigLoader {
	return &EnvironmentConfigLoader{envFile: envFile}
}

// Load loads configuration from environment variables
func (l *EnvironmentConfigLoader) Load() (*Config, error) {
	if l.envFile != "" {
		if err := godotenv.Load(l.envFile); err != nil && !goerrors.Is(err, fs.ErrNotExist) {
			return nil, errors.NewValidationError("failed to load env file "+l.envFile, err)
		}
	}

	hostname, _ := os.Hostname()

	config := &Config{
		LogLevel: getEnvOrDefault("LOG_LEVEL", constants.DefaultLogLevel),
		Quagga: QuaggaConfig{
			CLOSPF6Path: getEnvOrDefault("CL_OSPF6_PATH", constants.CLOSPF6Path),
			VtyshPath:   getEnvOrDefault("VTYSH_PATH", constants.VtyshPath),
			IfqueryPath: getEnvOrDefault("IFQUERY_PATH", constants.IfqueryPath),
			IPPath:      getEnvOrDefault("IP_PATH", constants.IPPath),
			PidFile:     getEnvOrDefault("OSPF6D_PID_FILE", constants.OSPF6DPidFile),
		},
		Agent: AgentConfig{
			NodeName:          getEnvOrDefault("NODE_NAME", hostname),
			PollInterval:      getEnvDurationOrDefault("POLL_INTERVAL", 30*time.Second),
			MaxPollInterval:   getEnvDurationOrDefault("MAX_POLL_INTERVAL", 5*time.Minute),
			BackoffMultiplier: getEnvFloatOrDefault("BACKOFF_MULTIPLIER", 2.0),
			CommandTimeout:    getEnvDurationOrDefault("COMMAND_TIMEOUT", 0),
			BackupDirectory:   getEnvOrDefault("BACKUP_DIR", constants.DefaultBackupDir),
			DesiredStateFile:  os.Getenv("DESIRED_STATE_FILE"),
			AddressSource:     getEnvOrDefault("ADDRESS_SOURCE", constants.AddressSourceIP),
		},
		Remote: RemoteConfig{
			Host:     os.Getenv("SSH_HOST"),
			Port:     getEnvIntOrDefault("SSH_PORT", constants.DefaultSSHPort),
			User:     os.Getenv("SSH_USER"),
			Password: os.Getenv("SSH_PASSWORD"),
			Timeout:  getEnvDurationOrDefault("SSH_TIMEOUT", 10*time.Second),
		},
		Database: DatabaseConfig{
			Host:         os.Getenv("DB_HOST"),
			Port:         getEnvOrDefault("DB_PORT", constants.DefaultDBPort),
			User:         getEnvOrDefault("DB_USER", "root"),
			Password:     os.Getenv("DB_PASSWORD"),
			Database:     getEnvOrDefault("DB_NAME", constants.DefaultDBName),
			MaxOpenConns: getEnvIntOrDefault("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns: getEnvIntOrDefault("DB_MAX_IDLE_CONNS", 5),
			MaxLifetime:  getEnvDurationOrDefault("DB_MAX_LIFETIME", 5*time.Minute),
		},
		Health: HealthConfig{
			Port: getEnvOrDefault("HEALTH_PORT", constants.DefaultHealthPort),
		},
		Metrics: MetricsConfig{
			TextfilePath: os.Getenv("METRICS_TEXTFILE"),
		},
	}

	if err := l.validate(config); err != nil {
		return nil, err
	}

	return config, nil
}

// validate validates the configuration
func (l *EnvironmentConfigLoader) validate(config *Config) error {
	if config.Quagga.CLOSPF6Path == "" || config.Quagga.VtyshPath == "" {
		return errors.NewValidationError("Quagga tool paths not configured", nil)
	}
	if config.Quagga.PidFile == "" {
		return errors.NewValidationError("ospf6d pid file not configured", nil)
	}

	if config.Agent.PollInterval <= 0 {
		return errors.NewValidationError("invalid polling interval", nil)
	}
	if config.Agent.MaxPollInterval < config.Agent.PollInterval {
		return errors.NewValidationError("max polling interval shorter than polling interval", nil)
	}
	if config.Agent.CommandTimeout < 0 {
		return errors.NewValidationError("invalid command timeout", nil)
	}
	switch config.Agent.AddressSource {
	case constants.AddressSourceIP, constants.AddressSourceNetlink:
	default:
		return errors.NewValidationError("invalid address source: "+config.Agent.AddressSource, nil)
	}

	if config.Remote.Enabled() && config.Remote.User == "" {
		return errors.NewValidationError("SSH user not configured", nil)
	}

	if config.Database.Enabled() {
		if config.Database.Port == "" {
			return errors.NewValidationError("database port not configured", nil)
		}
		if config.Database.User == "" {
			return errors.NewValidationError("database user not configured", nil)
		}
		if config.Database.Database == "" {
			return errors.NewValidationError("database name not configured", nil)
		}
	}

	if config.Health.Port == "" {
		return errors.NewValidationError("health check port not configured", nil)
	}

	return nil
}

// Environment variable helper functions

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
