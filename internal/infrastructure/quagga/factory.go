package quagga

import (
	"time"

	"ospf6-agent/internal/domain/constants"
	"ospf6-agent/internal/domain/interfaces"

	"github.com/sirupsen/logrus"
)

// Options selects the binaries and the address source used by the collaborators
type Options struct {
	CLOSPF6Path    string
	VtyshPath      string
	IfqueryPath    string
	IPPath         string
	PidFile        string
	AddressSource  string
	CommandTimeout time.Duration
	Remote         bool
}

// Collaborators bundles everything a reconciliation needs from the switch
type Collaborators struct {
	Platform         interfaces.PlatformType
	DaemonChecker    interfaces.DaemonChecker
	ConfigReader     interfaces.RunningConfigReader
	ConfigSaver      interfaces.ConfigSaver
	AddressInspector interfaces.AddressInspector
}

// CollaboratorFactory builds the Quagga collaborators for the local host or a
// remote switch
type CollaboratorFactory struct {
	options          Options
	platformDetector interfaces.PlatformDetector
	commandExecutor  interfaces.CommandExecutor
	fileSystem       interfaces.FileSystem
	logger           *logrus.Logger
}

// NewCollaboratorFactory creates a new CollaboratorFactory
func NewCollaboratorFactory(
	options Options,
	platformDetector interfaces.PlatformDetector,
	executor interfaces.CommandExecutor,
	fs interfaces.FileSystem,
	logger *logrus.Logger,
) *CollaboratorFactory {
	return &CollaboratorFactory{
		options:          options,
		platformDetector: platformDetector,
		commandExecutor:  executor,
		fileSystem:       fs,
		logger:           logger,
	}
}

// Create builds the collaborators. Platform detection failures are logged
// and reported as generic.
func (f *CollaboratorFactory) Create() *Collaborators {
	platform := f.detectPlatform()

	vtysh := NewVtyshClient(f.commandExecutor, f.options.VtyshPath, f.options.CommandTimeout, f.logger)

	return &Collaborators{
		Platform:         platform,
		DaemonChecker:    f.createDaemonChecker(),
		ConfigReader:     vtysh,
		ConfigSaver:      vtysh,
		AddressInspector: f.createAddressInspector(platform),
	}
}

func (f *CollaboratorFactory) detectPlatform() interfaces.PlatformType {
	if f.options.Remote || f.platformDetector == nil {
		return interfaces.PlatformGeneric
	}

	platform, err := f.platformDetector.DetectPlatform()
	if err != nil {
		f.logger.WithError(err).Warn("Platform detection failed, assuming generic")
		return interfaces.PlatformGeneric
	}

	f.logger.WithField("platform", platform).Debug("Platform detected")
	return platform
}

func (f *CollaboratorFactory) createDaemonChecker() interfaces.DaemonChecker {
	if f.options.Remote {
		return NewRemotePidFileChecker(f.commandExecutor, f.options.PidFile)
	}
	return NewPidFileChecker(f.fileSystem, f.options.PidFile)
}

func (f *CollaboratorFactory) createAddressInspector(platform interfaces.PlatformType) interfaces.AddressInspector {
	var fallback interfaces.AddressLister
	if f.options.AddressSource == constants.AddressSourceNetlink && !f.options.Remote {
		fallback = NewNetlinkAddressLister()
	} else {
		fallback = NewIPAddressLister(f.commandExecutor, f.options.IPPath)
	}

	// Generic hosts skip ifquery unless ifupdown2 is installed.
	ifqueryPath := f.options.IfqueryPath
	if platform != interfaces.PlatformCumulus && !f.options.Remote && !f.fileSystem.Exists(ifqueryPath) {
		ifqueryPath = ""
	}

	return NewIfqueryAddressInspector(f.commandExecutor, ifqueryPath, fallback, f.logger)
}
