package quagga

import (
	"bufio"
	"bytes"
	"context"
	"regexp"

	"ospf6-agent/internal/domain/errors"
	"ospf6-agent/internal/domain/interfaces"
)

var inet6Line = regexp.MustCompile(`^\s+inet6\s+(\S+)`)

// IPAddressLister lists addresses by parsing "ip addr show <iface>"
type IPAddressLister struct {
	executor interfaces.CommandExecutor
	ipPath   string
}

// NewIPAddressLister creates a new IPAddressLister
func NewIPAddressLister(executor interfaces.CommandExecutor, ipPath string) *IPAddressLister {
	return &IPAddressLister{executor: executor, ipPath: ipPath}
}

var _ interfaces.AddressLister = (*IPAddressLister)(nil)

// ListAddresses returns the inet6 addresses only
func (l *IPAddressLister) ListAddresses(ctx context.Context, ifaceName string) ([]string, error) {
	output, err := l.executor.Execute(ctx, l.ipPath, "addr", "show", ifaceName)
	if err != nil {
		return nil, errors.NewSystemError("failed to list addresses of "+ifaceName, err)
	}

	var addrs []string
	scanner := bufio.NewScanner(bytes.NewReader(output))
	for scanner.Scan() {
		if m := inet6Line.FindStringSubmatch(scanner.Text()); m != nil {
			addrs = append(addrs, m[1])
		}
	}
	return addrs, nil
}
