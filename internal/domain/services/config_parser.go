package services

import (
	"bufio"
	"regexp"
	"strings"

	"ospf6-agent/internal/domain/entities"
)

var (
	routerOSPF6Regexp  = regexp.MustCompile(`^router\s+ospf6`)
	interfaceRegexp    = regexp.MustCompile(`^interface\s+(\w+)$`)
	passiveRefRegexp   = regexp.MustCompile(`^\s*passive-interface\s+(\w+)`)
	areaRefRegexp      = regexp.MustCompile(`^interface\s+(\w+)\s+(area\s+[0-9.]+)`)
	areaLineRegexp     = regexp.MustCompile(`^area\s+([0-9.]+)`)
	pointToPointRegexp = regexp.MustCompile(`ipv6\s+ospf\s+network\s+point-to-point`)
)

// PassiveMarker is the line synthesized on an interface that the router block
// lists as passive
const PassiveMarker = "passive-interface"

// ParseRunningConfig converts "show running-config" output into a RunningConfig.
// Unrecognized text is ignored; parsing never fails.
func ParseRunningConfig(text string) entities.RunningConfig {
	cfg := entities.NewRunningConfig()
	var inGlobal, inInterface bool
	var current *entities.InterfaceConfig

	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.ToLower(strings.TrimSpace(scanner.Text()))

		// blank lines and lone "!" separators close every open block
		if len(line) <= 1 {
			inGlobal, inInterface = false, false
			continue
		}

		if routerOSPF6Regexp.MatchString(line) {
			inGlobal = true
			continue
		}

		if m := interfaceRegexp.FindStringSubmatch(line); m != nil {
			current = &entities.InterfaceConfig{Name: m[1], Lines: []string{}}
			cfg.Interfaces[m[1]] = current
			inInterface = true
			continue
		}

		// an interface block takes precedence until it is closed
		if inInterface {
			current.Lines = append(current.Lines, line)
			continue
		}
		if inGlobal {
			parseGlobalLine(&cfg, line)
		}
	}

	for _, iface := range cfg.Interfaces {
		classifyInterface(iface)
	}
	return cfg
}

// parseGlobalLine attributes cross-references to their interface. Area
// assignments are kept out of the global block; passive-interface lines
// stay in it as well.
func parseGlobalLine(cfg *entities.RunningConfig, line string) {
	if m := passiveRefRegexp.FindStringSubmatch(line); m != nil {
		if iface, ok := cfg.Interfaces[m[1]]; ok {
			iface.Lines = append(iface.Lines, PassiveMarker)
		}
	}
	if m := areaRefRegexp.FindStringSubmatch(line); m != nil {
		if iface, ok := cfg.Interfaces[m[1]]; ok {
			iface.Lines = append(iface.Lines, m[2])
		}
		return
	}
	cfg.Global = append(cfg.Global, line)
}

func classifyInterface(iface *entities.InterfaceConfig) {
	for _, line := range iface.Lines {
		if !iface.HasArea {
			if m := areaLineRegexp.FindStringSubmatch(line); m != nil {
				iface.Area = m[1]
				iface.HasArea = true
			}
		}
		if pointToPointRegexp.MatchString(line) {
			iface.PointToPoint = true
		}
		if strings.Contains(line, PassiveMarker) {
			iface.Passive = true
		}
	}
}
