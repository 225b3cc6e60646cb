package services

import (
	"fmt"

	"ospf6-agent/internal/domain/entities"
	"ospf6-agent/internal/domain/errors"
)

const routerIDPrefix = "router-id "

// Resolve compares a request against the live configuration and returns the
// discrepancies in the order they must be corrected. It performs no I/O.
func Resolve(req entities.Request, cfg entities.RunningConfig) ([]entities.Discrepancy, error) {
	switch r := req.(type) {
	case entities.GlobalRequest:
		return resolveGlobal(r, cfg), nil
	case entities.InterfaceRequest:
		return resolveInterface(r, cfg)
	default:
		return nil, errors.NewValidationError(fmt.Sprintf("unsupported request type %T", req), nil)
	}
}

func resolveGlobal(req entities.GlobalRequest, cfg entities.RunningConfig) []entities.Discrepancy {
	if req.RouterID == "" {
		return nil
	}
	actual, _ := cfg.GlobalLine(routerIDPrefix)
	if actual == routerIDPrefix+req.RouterID {
		return nil
	}
	return []entities.Discrepancy{{
		Action:   entities.ActionSetRouterID,
		RouterID: req.RouterID,
	}}
}

// LookupInterface returns the interface configuration or the NOT_FOUND error
// reported when ospf6d does not know the interface.
func LookupInterface(name string, cfg entities.RunningConfig) (*entities.InterfaceConfig, error) {
	iface, ok := cfg.Interface(name)
	if !ok {
		return nil, errors.NewNotFoundError(fmt.Sprintf(
			"%s is not found in Quagga config. Check that %s is active in kernel", name, name))
	}
	return iface, nil
}

func resolveInterface(req entities.InterfaceRequest, cfg entities.RunningConfig) ([]entities.Discrepancy, error) {
	iface, err := LookupInterface(req.Interface, cfg)
	if err != nil {
		return nil, err
	}

	// Disabling clears the area once per interface, however many area
	// lines were found, and skips the remaining facets.
	if req.State == entities.StateAbsent {
		if !iface.HasArea {
			return nil, nil
		}
		return []entities.Discrepancy{{
			Action:    entities.ActionDisableInterface,
			Interface: req.Interface,
		}}, nil
	}

	var out []entities.Discrepancy
	if !iface.HasArea || iface.Area != req.Area {
		out = append(out, entities.Discrepancy{
			Action:    entities.ActionEnableInterface,
			Interface: req.Interface,
			Area:      req.Area,
		})
	}

	if d, ok := toggle(req.PointToPoint, iface.PointToPoint,
		entities.ActionSetPointToPoint, entities.ActionClearPointToPoint); ok {
		d.Interface = req.Interface
		out = append(out, d)
	}

	if d, ok := toggle(req.Passive, iface.Passive,
		entities.ActionSetPassive, entities.ActionClearPassive); ok {
		d.Interface = req.Interface
		out = append(out, d)
	}

	return out, nil
}

// toggle compares a tri-state declaration against a found marker. An
// undeclared facet is left alone.
func toggle(desired *bool, found bool, onAction, offAction entities.Action) (entities.Discrepancy, bool) {
	if desired == nil || *desired == found {
		return entities.Discrepancy{}, false
	}
	if *desired {
		return entities.Discrepancy{Action: onAction}, true
	}
	return entities.Discrepancy{Action: offAction}, true
}
