package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleRunningConfig = `Building configuration...

Current configuration:
!
hostname leaf1
log file /var/log/quagga/quagga.log
!
interface lo
 link-detect
!
interface swp1
 ipv6 nd suppress-ra
 ipv6 ospf network point-to-point
!
interface swp2
 link-detect
!
interface swp3
 Description Uplink
!
router ospf6
 router-id 10.1.1.1
 passive-interface swp2
 interface swp1 area 0.0.0.0
 interface swp2 area 0.0.0.1
 interface swp99 area 0.0.0.0
 redistribute connected
!
line vty
!
end
`

func TestParseRunningConfig(t *testing.T) {
	cfg := ParseRunningConfig(sampleRunningConfig)

	t.Run("global block keeps router lines and drops area cross-references", func(t *testing.T) {
		assert.Equal(t, []string{
			"router-id 10.1.1.1",
			"passive-interface swp2",
			"redistribute connected",
		}, cfg.Global)
	})

	t.Run("every interface block is captured", func(t *testing.T) {
		assert.ElementsMatch(t, []string{"lo", "swp1", "swp2", "swp3"}, cfg.InterfaceNames())
	})

	t.Run("interface lines include synthesized entries", func(t *testing.T) {
		swp1, ok := cfg.Interface("swp1")
		require.True(t, ok)
		assert.Equal(t, []string{
			"ipv6 nd suppress-ra",
			"ipv6 ospf network point-to-point",
			"area 0.0.0.0",
		}, swp1.Lines)
		assert.True(t, swp1.HasArea)
		assert.Equal(t, "0.0.0.0", swp1.Area)
		assert.True(t, swp1.PointToPoint)
		assert.False(t, swp1.Passive)

		swp2, ok := cfg.Interface("swp2")
		require.True(t, ok)
		assert.Equal(t, []string{"link-detect", "passive-interface", "area 0.0.0.1"}, swp2.Lines)
		assert.Equal(t, "0.0.0.1", swp2.Area)
		assert.True(t, swp2.Passive)
		assert.False(t, swp2.PointToPoint)
	})

	t.Run("lines are lower-cased", func(t *testing.T) {
		swp3, ok := cfg.Interface("swp3")
		require.True(t, ok)
		assert.Equal(t, []string{"description uplink"}, swp3.Lines)
		assert.False(t, swp3.HasArea)
	})

	t.Run("cross-references to unknown interfaces are dropped", func(t *testing.T) {
		_, ok := cfg.Interface("swp99")
		assert.False(t, ok)
	})

	t.Run("router-id lookup by prefix", func(t *testing.T) {
		line, ok := cfg.GlobalLine("router-id ")
		assert.True(t, ok)
		assert.Equal(t, "router-id 10.1.1.1", line)
	})
}

func TestParseRunningConfig_Edges(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		cfg := ParseRunningConfig("")
		assert.Empty(t, cfg.Global)
		assert.Empty(t, cfg.Interfaces)
	})

	t.Run("garbage input degrades to empty structures", func(t *testing.T) {
		cfg := ParseRunningConfig("% Unknown command.\nvtysh: connection refused\n")
		assert.Empty(t, cfg.Global)
		assert.Empty(t, cfg.Interfaces)
	})

	t.Run("blank line closes the router block", func(t *testing.T) {
		cfg := ParseRunningConfig("router ospf6\n router-id 1.1.1.1\n\n router-id 2.2.2.2\n")
		assert.Equal(t, []string{"router-id 1.1.1.1"}, cfg.Global)
	})

	t.Run("interface names with dots are not interface blocks", func(t *testing.T) {
		cfg := ParseRunningConfig("interface swp1.100\n link-detect\n!\n")
		assert.Empty(t, cfg.Interfaces)
	})

	t.Run("whitespace tolerant headers", func(t *testing.T) {
		cfg := ParseRunningConfig("interface   swp5\n!\nROUTER   OSPF6\n  Interface swp5   area 0.0.0.2\n!\n")
		swp5, ok := cfg.Interface("swp5")
		require.True(t, ok)
		assert.Equal(t, "0.0.0.2", swp5.Area)
		assert.Empty(t, cfg.Global)
	})

	t.Run("first area wins", func(t *testing.T) {
		cfg := ParseRunningConfig("interface swp1\n!\nrouter ospf6\n interface swp1 area 0.0.0.1\n interface swp1 area 0.0.0.2\n!\n")
		swp1, ok := cfg.Interface("swp1")
		require.True(t, ok)
		assert.Equal(t, []string{"area 0.0.0.1", "area 0.0.0.2"}, swp1.Lines)
		assert.Equal(t, "0.0.0.1", swp1.Area)
	})

	t.Run("interface lookup is case insensitive", func(t *testing.T) {
		cfg := ParseRunningConfig("interface SWP7\n!\n")
		_, ok := cfg.Interface("Swp7")
		assert.True(t, ok)
	})
}

func TestParseRunningConfig_RoundTrip(t *testing.T) {
	first := ParseRunningConfig(sampleRunningConfig)
	discrepancies, err := Resolve(globalRequest("10.1.1.1"), first)
	require.NoError(t, err)
	require.Empty(t, discrepancies)

	second := ParseRunningConfig(sampleRunningConfig)
	assert.Equal(t, first, second)
}
