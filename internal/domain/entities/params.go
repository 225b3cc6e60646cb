package entities

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"ospf6-agent/internal/domain/errors"
)

// Params are the declared parameters of one invocation, as received from the
// CLI flags or one entry of the desired-state file.
type Params struct {
	RouterID     string `yaml:"router_id,omitempty" json:"router_id,omitempty" validate:"omitempty,ipv4"`
	Interface    string `yaml:"interface,omitempty" json:"interface,omitempty" validate:"omitempty,ifname"`
	Area         string `yaml:"area,omitempty" json:"area,omitempty" validate:"omitempty,ospf_area"`
	PointToPoint *bool  `yaml:"point2point,omitempty" json:"point2point,omitempty"`
	Passive      *bool  `yaml:"passive,omitempty" json:"passive,omitempty"`
	State        string `yaml:"state,omitempty" json:"state,omitempty" validate:"omitempty,oneof=present absent"`
	SaveConfig   bool   `yaml:"saveconfig,omitempty" json:"saveconfig,omitempty"`
}

var (
	ifnameRegexp = regexp.MustCompile(`^\w{1,15}$`)
	areaRegexp   = regexp.MustCompile(`^[0-9]+(\.[0-9]+){3}$|^[0-9]+$`)
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	if err := validate.RegisterValidation("ifname", func(fl validator.FieldLevel) bool {
		return ifnameRegexp.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	if err := validate.RegisterValidation("ospf_area", validateArea); err != nil {
		panic(err)
	}
}

// validateArea accepts dotted-quad area ids and plain 32-bit decimals
func validateArea(fl validator.FieldLevel) bool {
	area := fl.Field().String()
	if !areaRegexp.MatchString(area) {
		return false
	}
	if !strings.Contains(area, ".") {
		_, err := strconv.ParseUint(area, 10, 32)
		return err == nil
	}
	for _, octet := range strings.Split(area, ".") {
		if v, err := strconv.Atoi(octet); err != nil || v > 255 {
			return false
		}
	}
	return true
}

func validationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "ipv4":
		return "must be a dotted-quad identifier (e.g. 10.1.1.1)"
	case "ifname":
		return "must be an interface name of at most 15 word characters"
	case "ospf_area":
		return "must be a dotted-quad or decimal area id"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", e.Param())
	default:
		return fmt.Sprintf("validation failed: %s", e.Tag())
	}
}

var paramNames = map[string]string{
	"RouterID":     "router_id",
	"Interface":    "interface",
	"Area":         "area",
	"PointToPoint": "point2point",
	"Passive":      "passive",
	"State":        "state",
}

// Validate checks field formats only; scope rules are enforced by NewRequest
func (p Params) Validate() error {
	err := validate.Struct(p)
	if err == nil {
		return nil
	}
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.NewValidationError("invalid parameters", err)
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fmt.Sprintf("%s %s", paramNames[fe.Field()], validationMessage(fe)))
	}
	return errors.NewValidationError("invalid parameters: "+strings.Join(msgs, "; "), nil)
}

// NewRequest turns declared parameters into exactly one request variant.
// router_id and interface are mutually exclusive, and the interface-scoped
// options are rejected when no interface is given.
func NewRequest(p Params) (Request, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	if p.Interface != "" && p.RouterID != "" {
		return nil, errors.NewValidationError("parameters are mutually exclusive: router_id|interface", nil)
	}

	if p.Interface == "" {
		if err := checkInterfaceDependencies(p); err != nil {
			return nil, err
		}
		return GlobalRequest{RouterID: p.RouterID}, nil
	}

	// ospf6d reports interface names lower-cased and areas as dotted quads
	req := InterfaceRequest{
		Interface:    strings.ToLower(p.Interface),
		Area:         normalizeArea(p.Area),
		State:        State(p.State),
		PointToPoint: p.PointToPoint,
		Passive:      p.Passive,
	}
	if req.Area == "" {
		req.Area = DefaultArea
	}
	if req.State == "" {
		req.State = StatePresent
	}
	return req, nil
}

// normalizeArea renders a validated area id as a dotted quad: a decimal id is
// read as a big-endian uint32 and leading zeros are dropped from octets.
func normalizeArea(area string) string {
	if area == "" {
		return ""
	}
	if !strings.Contains(area, ".") {
		v, _ := strconv.ParseUint(area, 10, 32)
		return fmt.Sprintf("%d.%d.%d.%d", byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
	}
	octets := strings.Split(area, ".")
	for i, octet := range octets {
		v, _ := strconv.Atoi(octet)
		octets[i] = strconv.Itoa(v)
	}
	return strings.Join(octets, ".")
}

func checkInterfaceDependencies(p Params) error {
	declared := []struct {
		name  string
		set   bool
		value string
	}{
		{"state", p.State != "", p.State},
		{"area", p.Area != "", p.Area},
		{"point2point", p.PointToPoint != nil, formatBool(p.PointToPoint)},
		{"passive", p.Passive != nil, formatBool(p.Passive)},
	}
	for _, d := range declared {
		if d.set {
			return errors.NewValidationError(fmt.Sprintf(
				"incorrect syntax. %s must have an interface option. Example 'interface=swp1 %s=%s'",
				d.name, d.name, d.value), nil)
		}
	}
	return nil
}

func formatBool(b *bool) string {
	if b == nil {
		return ""
	}
	if *b {
		return "yes"
	}
	return "no"
}
