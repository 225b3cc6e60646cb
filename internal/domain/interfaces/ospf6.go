package interfaces

import (
	"context"
)

// DaemonChecker verifies that ospf6d is running
type DaemonChecker interface {
	CheckRunning(ctx context.Context) error
}

// RunningConfigReader returns the raw routing daemon running configuration
type RunningConfigReader interface {
	ReadRunningConfig(ctx context.Context) (string, error)
}

// ConfigSaver persists the running configuration to the startup configuration
type ConfigSaver interface {
	SaveConfig(ctx context.Context) error
}

// AddressInspector reports whether an interface carries an IPv6 address
type AddressInspector interface {
	HasIPv6Address(ctx context.Context, ifaceName string) (bool, error)
}

// AddressLister lists the addresses configured on an interface, as CIDR strings
type AddressLister interface {
	ListAddresses(ctx context.Context, ifaceName string) ([]string, error)
}

// BackupService keeps snapshots of the running configuration taken before changes
type BackupService interface {
	CreateBackup(ctx context.Context, scope string, content []byte) (string, error)
	ListBackups(scope string) ([]string, error)
}
