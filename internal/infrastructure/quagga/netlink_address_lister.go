package quagga

import (
	"context"

	"ospf6-agent/internal/domain/errors"
	"ospf6-agent/internal/domain/interfaces"

	"github.com/vishvananda/netlink"
)

// NetlinkAddressLister reads IPv6 addresses straight from the kernel
type NetlinkAddressLister struct {
	linkByName func(name string) (netlink.Link, error)
	addrList   func(link netlink.Link, family int) ([]netlink.Addr, error)
}

// NewNetlinkAddressLister creates a new NetlinkAddressLister
func NewNetlinkAddressLister() *NetlinkAddressLister {
	return &NetlinkAddressLister{
		linkByName: netlink.LinkByName,
		addrList:   netlink.AddrList,
	}
}

var _ interfaces.AddressLister = (*NetlinkAddressLister)(nil)

func (l *NetlinkAddressLister) ListAddresses(ctx context.Context, ifaceName string) ([]string, error) {
	link, err := l.linkByName(ifaceName)
	if err != nil {
		if _, ok := err.(netlink.LinkNotFoundError); ok {
			return nil, errors.NewNotFoundError("interface " + ifaceName + " does not exist in kernel")
		}
		return nil, errors.NewSystemError("failed to look up link "+ifaceName, err)
	}

	addrs, err := l.addrList(link, netlink.FAMILY_V6)
	if err != nil {
		return nil, errors.NewSystemError("failed to list addresses of "+ifaceName, err)
	}

	result := make([]string, 0, len(addrs))
	for _, addr := range addrs {
		if addr.IPNet != nil {
			result = append(result, addr.IPNet.String())
		}
	}
	return result, nil
}
