package entities

import (
	"fmt"
	"strings"
)

// Action is the kind of correction a Discrepancy calls for
type Action int

const (
	ActionSetRouterID Action = iota
	ActionEnableInterface
	ActionDisableInterface
	ActionSetPointToPoint
	ActionClearPointToPoint
	ActionSetPassive
	ActionClearPassive
)

var actionNames = map[Action]string{
	ActionSetRouterID:       "set_router_id",
	ActionEnableInterface:   "enable_interface",
	ActionDisableInterface:  "disable_interface",
	ActionSetPointToPoint:   "set_point2point",
	ActionClearPointToPoint: "clear_point2point",
	ActionSetPassive:        "set_passive",
	ActionClearPassive:      "clear_passive",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return fmt.Sprintf("action(%d)", int(a))
}

// Discrepancy is one difference between the live and the declared state
type Discrepancy struct {
	Action    Action
	Interface string
	Area      string
	RouterID  string
}

// Message is the change-log entry recorded once the correction is applied
func (d Discrepancy) Message() string {
	switch d.Action {
	case ActionSetRouterID:
		return "router-id updated"
	case ActionEnableInterface:
		return fmt.Sprintf("OSPFv3 now enabled on %s area %s", d.Interface, d.Area)
	case ActionDisableInterface:
		return fmt.Sprintf("OSPFv3 now disabled on %s", d.Interface)
	case ActionSetPointToPoint:
		return fmt.Sprintf("OSPFv3 point2point set on %s", d.Interface)
	case ActionClearPointToPoint:
		return fmt.Sprintf("OSPFv3 point2point removed on %s", d.Interface)
	case ActionSetPassive:
		return fmt.Sprintf("%s is now OSPFv3 passive", d.Interface)
	case ActionClearPassive:
		return fmt.Sprintf("%s is no longer OSPFv3 passive", d.Interface)
	default:
		return d.Action.String()
	}
}

// Command is one external command invocation
type Command struct {
	Name string
	Args []string
}

// String renders the command the way it would be typed in a shell
func (c Command) String() string {
	parts := make([]string, 0, len(c.Args)+1)
	parts = append(parts, c.Name)
	for _, arg := range c.Args {
		if strings.ContainsAny(arg, " \t\"'") {
			arg = fmt.Sprintf("%q", arg)
		}
		parts = append(parts, arg)
	}
	return strings.Join(parts, " ")
}
