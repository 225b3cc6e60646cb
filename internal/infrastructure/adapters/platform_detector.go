package adapters

import (
	"bufio"
	"strings"

	"ospf6-agent/internal/domain/errors"
	"ospf6-agent/internal/domain/interfaces"
)

// OSReleasePath is where the platform identity is read from
const OSReleasePath = "/etc/os-release"

// RealPlatformDetector reads /etc/os-release to tell Cumulus Linux apart from
// other hosts running Quagga
type RealPlatformDetector struct {
	fileSystem interfaces.FileSystem
	path       string
}

// NewRealPlatformDetector creates a new RealPlatformDetector
func NewRealPlatformDetector(fs interfaces.FileSystem) interfaces.PlatformDetector {
	return &RealPlatformDetector{
		fileSystem: fs,
		path:       OSReleasePath,
	}
}

// DetectPlatform returns the current platform type. Hosts without an ID field
// are treated as generic.
func (d *RealPlatformDetector) DetectPlatform() (interfaces.PlatformType, error) {
	releaseInfo, err := d.parseOSRelease()
	if err != nil {
		return "", errors.NewSystemError("platform detection failed: cannot read "+d.path, err)
	}

	if releaseInfo["ID"] == string(interfaces.PlatformCumulus) {
		return interfaces.PlatformCumulus, nil
	}
	return interfaces.PlatformGeneric, nil
}

func (d *RealPlatformDetector) parseOSRelease() (map[string]string, error) {
	content, err := d.fileSystem.ReadFile(d.path)
	if err != nil {
		return nil, err
	}

	releaseInfo := make(map[string]string)
	scanner := bufio.NewScanner(strings.NewReader(string(content)))
	for scanner.Scan() {
		key, value, ok := strings.Cut(scanner.Text(), "=")
		if !ok {
			continue
		}
		releaseInfo[strings.TrimSpace(key)] = strings.Trim(strings.TrimSpace(value), `"`)
	}

	return releaseInfo, scanner.Err()
}
