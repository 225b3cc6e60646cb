package constants

// Quagga paths
const (
	CLOSPF6Path   = "/usr/bin/cl-ospf6"
	VtyshPath     = "/usr/bin/vtysh"
	IfqueryPath   = "/sbin/ifquery"
	IPPath        = "/sbin/ip"
	OSPF6DPidFile = "/var/run/quagga/ospf6d.pid"

	DefaultBackupDir = "/var/lib/ospf6-agent/backups"
	DefaultEnvFile   = "/etc/default/ospf6-agent"
)

// Address sources for the IPv6 address fallback
const (
	AddressSourceIP      = "ip"
	AddressSourceNetlink = "netlink"
)

const (
	ConfigFilePermission = 0644

	// Snapshots kept per scope
	MaxBackupsPerScope = 10
)

// Defaults
const (
	DefaultDBPort = "3306"
	DefaultDBName = "ospf6"

	DefaultPollInterval = "30s"
	DefaultLogLevel     = "info"
	DefaultHealthPort   = "8080"
	DefaultSSHPort      = 22
)
