package config

import (
	"os"
	"path/filepath"
	"testing"

	"ospf6-agent/internal/domain/entities"
	domainErrors "ospf6-agent/internal/domain/errors"
	"ospf6-agent/internal/infrastructure/adapters"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDesiredState = `saveconfig: true
global:
  router_id: 10.1.1.1
interfaces:
  - interface: swp1
    point2point: true
  - interface: swp2
    area: 0.0.0.1
    passive: false
  - interface: swp3
    state: absent
`

func writeDesiredState(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "desired.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDesiredStateLoader_Load(t *testing.T) {
	loader := NewDesiredStateLoader(adapters.NewRealFileSystem())

	state, err := loader.Load(writeDesiredState(t, sampleDesiredState))
	require.NoError(t, err)

	entries, err := state.Entries()
	require.NoError(t, err)
	require.Len(t, entries, 4)

	assert.Equal(t, entities.GlobalRequest{RouterID: "10.1.1.1"}, entries[0].Request)
	assert.True(t, entries[0].SaveConfig)

	p2p := true
	assert.Equal(t, entities.InterfaceRequest{
		Interface:    "swp1",
		Area:         entities.DefaultArea,
		State:        entities.StatePresent,
		PointToPoint: &p2p,
	}, entries[1].Request)

	swp2 := entries[2].Request.(entities.InterfaceRequest)
	assert.Equal(t, "0.0.0.1", swp2.Area)
	require.NotNil(t, swp2.Passive)
	assert.False(t, *swp2.Passive)
	assert.Nil(t, swp2.PointToPoint)

	assert.Equal(t, entities.StateAbsent, entries[3].Request.(entities.InterfaceRequest).State)
}

func TestDesiredStateLoader_Errors(t *testing.T) {
	loader := NewDesiredStateLoader(adapters.NewRealFileSystem())

	_, err := loader.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.True(t, domainErrors.IsSystemError(err))

	_, err = loader.Load(writeDesiredState(t, "global:\n  routerid: 10.1.1.1\n"))
	assert.True(t, domainErrors.IsValidationError(err), "unknown keys are rejected")

	state, err := loader.Load(writeDesiredState(t, ""))
	require.NoError(t, err)
	entries, err := state.Entries()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDesiredState_Entries_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		state DesiredState
	}{
		{
			name:  "interface entry without interface",
			state: DesiredState{Interfaces: []entities.Params{{Area: "0.0.0.1"}}},
		},
		{
			name:  "router id inside an interface entry",
			state: DesiredState{Interfaces: []entities.Params{{Interface: "swp1", RouterID: "10.1.1.1"}}},
		},
		{
			name:  "malformed router id",
			state: DesiredState{Global: &GlobalState{RouterID: "10.1.1"}},
		},
		{
			name:  "bad state",
			state: DesiredState{Interfaces: []entities.Params{{Interface: "swp1", State: "down"}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.state.Entries()
			require.Error(t, err)
			assert.True(t, domainErrors.IsValidationError(err))
		})
	}
}
