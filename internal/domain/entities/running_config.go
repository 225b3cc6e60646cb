package entities

import "strings"

// RunningConfig is a parsed snapshot of the ospf6d running configuration.
// It is rebuilt from scratch on every run and never mutated after parsing.
type RunningConfig struct {
	// Global holds the lines of the "router ospf6" block, excluding area
	// cross-references which are attributed to their interface instead.
	Global []string

	// Interfaces is keyed by interface name
	Interfaces map[string]*InterfaceConfig
}

// InterfaceConfig holds the lines scoped to one interface plus the lines
// inferred from the router block that reference it.
type InterfaceConfig struct {
	Name  string
	Lines []string

	// Classified facets, first match wins
	Area         string
	HasArea      bool
	PointToPoint bool
	Passive      bool
}

// NewRunningConfig returns an empty RunningConfig
func NewRunningConfig() RunningConfig {
	return RunningConfig{
		Global:     []string{},
		Interfaces: map[string]*InterfaceConfig{},
	}
}

// GlobalLine returns the first router-level line starting with prefix
func (c RunningConfig) GlobalLine(prefix string) (string, bool) {
	for _, line := range c.Global {
		if strings.HasPrefix(line, prefix) {
			return line, true
		}
	}
	return "", false
}

// Interface returns the configuration of the named interface
func (c RunningConfig) Interface(name string) (*InterfaceConfig, bool) {
	iface, ok := c.Interfaces[strings.ToLower(name)]
	return iface, ok
}

// InterfaceNames returns interface names in no particular order
func (c RunningConfig) InterfaceNames() []string {
	names := make([]string, 0, len(c.Interfaces))
	for name := range c.Interfaces {
		names = append(names, name)
	}
	return names
}
