package quagga

import (
	"context"
	"net/netip"
	"strings"

	"ospf6-agent/internal/domain/interfaces"

	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
)

// IfqueryAddressInspector looks for an IPv6 address in the ifupdown2
// description of an interface and falls back to the kernel address list when
// the description has none.
type IfqueryAddressInspector struct {
	executor    interfaces.CommandExecutor
	ifqueryPath string
	fallback    interfaces.AddressLister
	logger      *logrus.Logger
}

// NewIfqueryAddressInspector creates a new IfqueryAddressInspector
func NewIfqueryAddressInspector(
	executor interfaces.CommandExecutor,
	ifqueryPath string,
	fallback interfaces.AddressLister,
	logger *logrus.Logger,
) *IfqueryAddressInspector {
	return &IfqueryAddressInspector{
		executor:    executor,
		ifqueryPath: ifqueryPath,
		fallback:    fallback,
		logger:      logger,
	}
}

var _ interfaces.AddressInspector = (*IfqueryAddressInspector)(nil)

func (i *IfqueryAddressInspector) HasIPv6Address(ctx context.Context, ifaceName string) (bool, error) {
	if i.ifqueryPath != "" {
		addrs := i.ifqueryAddresses(ctx, ifaceName)
		if containsIPv6(addrs) {
			return true, nil
		}
	}

	addrs, err := i.fallback.ListAddresses(ctx, ifaceName)
	if err != nil {
		return false, err
	}

	i.logger.WithFields(logrus.Fields{
		"interface": ifaceName,
		"addresses": addrs,
	}).Debug("Addresses listed by fallback")

	return containsIPv6(addrs), nil
}

// ifqueryAddresses never fails: a missing tool, a non-zero exit or
// unparseable output all mean "nothing declared".
func (i *IfqueryAddressInspector) ifqueryAddresses(ctx context.Context, ifaceName string) []string {
	output, code, err := i.executor.ExecuteUnchecked(ctx, i.ifqueryPath, "--format", "json", ifaceName)
	if err != nil || code != 0 {
		i.logger.WithFields(logrus.Fields{
			"interface": ifaceName,
			"exit_code": code,
		}).WithError(err).Debug("ifquery unavailable, using fallback")
		return nil
	}

	return parseIfqueryAddresses(output)
}

// parseIfqueryAddresses extracts config.address of the first entry, which
// ifquery renders either as a string or as a list
func parseIfqueryAddresses(output []byte) []string {
	if !gjson.ValidBytes(output) {
		return nil
	}

	result := gjson.GetBytes(output, "0.config.address")
	if !result.Exists() {
		return nil
	}
	if !result.IsArray() {
		return []string{result.String()}
	}

	var addrs []string
	for _, addr := range result.Array() {
		addrs = append(addrs, addr.String())
	}
	return addrs
}

func containsIPv6(addrs []string) bool {
	for _, addr := range addrs {
		host, _, _ := strings.Cut(addr, "/")
		ip, err := netip.ParseAddr(host)
		if err == nil && ip.Is6() && !ip.Is4In6() {
			return true
		}
	}
	return false
}
