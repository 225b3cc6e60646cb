package services

import (
	"fmt"

	"ospf6-agent/internal/domain/entities"
)

// CommandBuilder renders discrepancies as cl-ospf6 invocations
type CommandBuilder struct {
	ospf6Path string
}

// NewCommandBuilder creates a CommandBuilder for the cl-ospf6 binary at ospf6Path
func NewCommandBuilder(ospf6Path string) *CommandBuilder {
	return &CommandBuilder{ospf6Path: ospf6Path}
}

// Build returns the single command that corrects d
func (b *CommandBuilder) Build(d entities.Discrepancy) (entities.Command, error) {
	var args []string
	switch d.Action {
	case entities.ActionSetRouterID:
		args = []string{"router-id", "set", d.RouterID}
	case entities.ActionEnableInterface:
		args = []string{"interface", "set", d.Interface, "area", d.Area}
	case entities.ActionDisableInterface:
		args = []string{"clear", d.Interface, "area"}
	case entities.ActionSetPointToPoint:
		args = []string{"interface", "set", d.Interface, "network", "point-to-point"}
	case entities.ActionClearPointToPoint:
		args = []string{"interface", "clear", d.Interface, "network"}
	case entities.ActionSetPassive:
		args = []string{"interface", "set", d.Interface, "passive"}
	case entities.ActionClearPassive:
		args = []string{"interface", "clear", d.Interface, "passive"}
	default:
		return entities.Command{}, fmt.Errorf("no command for action %s", d.Action)
	}
	return entities.Command{Name: b.ospf6Path, Args: args}, nil
}
