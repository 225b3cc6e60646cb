package entities

// DefaultArea is the backbone area used when an interface is targeted without an area
const DefaultArea = "0.0.0.0"

// State is the declared presence of OSPFv3 on an interface
type State string

const (
	StatePresent State = "present"
	StateAbsent  State = "absent"
)

// Scope distinguishes the two request variants
type Scope string

const (
	ScopeGlobal    Scope = "global"
	ScopeInterface Scope = "interface"
)

// Request is the desired state of one reconciliation run. It is either a
// GlobalRequest or an InterfaceRequest, never both.
type Request interface {
	Scope() Scope
	// Target names what the request is about, for logs and run history
	Target() string
	isRequest()
}

// GlobalRequest targets router-level settings
type GlobalRequest struct {
	// RouterID is empty when no router-level change was requested
	RouterID string
}

func (GlobalRequest) Scope() Scope { return ScopeGlobal }

func (r GlobalRequest) Target() string {
	if r.RouterID == "" {
		return "router"
	}
	return "router-id " + r.RouterID
}

func (GlobalRequest) isRequest() {}

// InterfaceRequest targets one OSPFv3 interface
type InterfaceRequest struct {
	Interface string
	Area      string
	State     State

	// nil means "not declared"
	PointToPoint *bool
	Passive      *bool
}

func (InterfaceRequest) Scope() Scope { return ScopeInterface }

func (r InterfaceRequest) Target() string { return r.Interface }

func (InterfaceRequest) isRequest() {}

// DesiredEntry is one request of a desired-state document together with its
// persistence flag
type DesiredEntry struct {
	Request    Request
	SaveConfig bool
}
