package config

import (
	"bytes"
	goerrors "errors"
	"fmt"
	"io"

	"ospf6-agent/internal/domain/entities"
	"ospf6-agent/internal/domain/errors"
	"ospf6-agent/internal/domain/interfaces"

	"gopkg.in/yaml.v3"
)

// DesiredState is the document reconciled by the agent on every poll
type DesiredState struct {
	SaveConfig bool              `yaml:"saveconfig"`
	Global     *GlobalState      `yaml:"global,omitempty"`
	Interfaces []entities.Params `yaml:"interfaces,omitempty"`
}

// GlobalState holds the router-level settings of a desired-state document
type GlobalState struct {
	RouterID string `yaml:"router_id"`
}

// Entries returns the global request first, then the interface requests in
// file order
func (d *DesiredState) Entries() ([]entities.DesiredEntry, error) {
	var entries []entities.DesiredEntry

	if d.Global != nil && d.Global.RouterID != "" {
		req, err := entities.NewRequest(entities.Params{RouterID: d.Global.RouterID})
		if err != nil {
			return nil, fmt.Errorf("global: %w", err)
		}
		entries = append(entries, entities.DesiredEntry{Request: req, SaveConfig: d.SaveConfig})
	}

	for i, p := range d.Interfaces {
		if p.Interface == "" {
			return nil, errors.NewValidationError(fmt.Sprintf("interfaces[%d]: interface is required", i), nil)
		}
		if p.RouterID != "" {
			return nil, errors.NewValidationError(fmt.Sprintf("interfaces[%d]: router_id belongs under global", i), nil)
		}
		req, err := entities.NewRequest(p)
		if err != nil {
			return nil, fmt.Errorf("interfaces[%d]: %w", i, err)
		}
		entries = append(entries, entities.DesiredEntry{Request: req, SaveConfig: d.SaveConfig || p.SaveConfig})
	}

	return entries, nil
}

// DesiredStateLoader reads desired-state documents from disk
type DesiredStateLoader struct {
	fileSystem interfaces.FileSystem
}

// NewDesiredStateLoader creates a new DesiredStateLoader
func NewDesiredStateLoader(fs interfaces.FileSystem) *DesiredStateLoader {
	return &DesiredStateLoader{fileSystem: fs}
}

// Load parses the document at path. Unknown keys are rejected and an empty
// file yields an empty state.
func (l *DesiredStateLoader) Load(path string) (*DesiredState, error) {
	data, err := l.fileSystem.ReadFile(path)
	if err != nil {
		return nil, errors.NewSystemError("failed to read desired state "+path, err)
	}

	var state DesiredState
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&state); err != nil && !goerrors.Is(err, io.EOF) {
		return nil, errors.NewValidationError("invalid desired state "+path, err)
	}

	return &state, nil
}
