//go:build linux

package veth

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/vishvananda/netlink"

	"github.com/canonical/vethctl/ip"
	"github.com/canonical/vethctl/shared/logger"
)

// NetlinkManager manages veths through rtnetlink rather than the ip command.
type NetlinkManager struct{}

var _ Interface = (*NetlinkManager)(nil)

// NewNetlinkManager returns a new NetlinkManager.
func NewNetlinkManager() (Interface, error) {
	return &NetlinkManager{}, nil
}

func (m *NetlinkManager) logger(name string) logger.Logger {
	return logger.AddContext(logger.Ctx{"driver": "netlink", "name": name})
}

// Create adds the veth pair name<->peer and brings name up.
func (m *NetlinkManager) Create(ctx context.Context, name string, peer string) error {
	v := &netlink.Veth{
		LinkAttrs: netlink.LinkAttrs{Name: name},
		PeerName:  peer,
	}

	err := netlink.LinkAdd(v)
	if err != nil {
		return fmt.Errorf("Failed to create the veth interfaces %q and %q: %w", name, peer, err)
	}

	err = netlink.LinkSetUp(v)
	if err != nil {
		return fmt.Errorf("Failed to bring up interface %q: %w", name, err)
	}

	m.logger(name).Info("Created veth pair", logger.Ctx{"peer": peer})

	return nil
}

// Remove deletes the named veth, returning false if it didn't exist.
func (m *NetlinkManager) Remove(ctx context.Context, name string) (bool, error) {
	link, err := linkByName(name)
	if err != nil {
		return false, err
	}

	if link == nil {
		return false, nil
	}

	err = netlink.LinkDel(link)
	if err != nil {
		return false, fmt.Errorf("Failed to delete interface %q: %w", name, err)
	}

	m.logger(name).Info("Removed veth")

	return true, nil
}

// Exists returns whether a link with the given name exists.
func (m *NetlinkManager) Exists(ctx context.Context, name string) (bool, error) {
	link, err := linkByName(name)
	if err != nil {
		return false, err
	}

	return link != nil, nil
}

// SetAddress changes the hardware address of the named veth.
func (m *NetlinkManager) SetAddress(ctx context.Context, name string, mac net.HardwareAddr) error {
	link, err := netlink.LinkByName(name)
	if err != nil {
		return fmt.Errorf("Failed to find interface %q: %w", name, err)
	}

	err = netlink.LinkSetHardwareAddr(link, mac)
	if err != nil {
		return fmt.Errorf("Failed to set address %q on interface %q: %w", mac.String(), name, err)
	}

	return nil
}

// List returns the veth links on the host.
func (m *NetlinkManager) List(ctx context.Context) ([]ip.LinkInfo, error) {
	links, err := netlink.LinkList()
	if err != nil {
		return nil, fmt.Errorf("Failed to list veth interfaces: %w", err)
	}

	result := []ip.LinkInfo{}
	for _, link := range links {
		v, ok := link.(*netlink.Veth)
		if !ok {
			continue
		}

		result = append(result, vethInfo(v))
	}

	return result, nil
}

// linkByName returns the named link or nil if it doesn't exist.
func linkByName(name string) (netlink.Link, error) {
	link, err := netlink.LinkByName(name)
	if err != nil {
		var notFound netlink.LinkNotFoundError
		if errors.As(err, &notFound) {
			return nil, nil
		}

		return nil, fmt.Errorf("Failed to check interface %q: %w", name, err)
	}

	return link, nil
}

func vethInfo(v *netlink.Veth) ip.LinkInfo {
	attrs := v.Attrs()

	info := ip.LinkInfo{
		Index: attrs.Index,
		Name:  attrs.Name,
		State: strings.ToUpper(attrs.OperState.String()),
		MTU:   uint32(attrs.MTU),
	}

	if attrs.HardwareAddr != nil {
		info.Address = attrs.HardwareAddr.String()
	}

	if attrs.Flags&net.FlagUp != 0 {
		info.Flags = append(info.Flags, "UP")
	}

	peerIndex, err := netlink.VethPeerIndex(v)
	if err == nil {
		peer, err := netlink.LinkByIndex(peerIndex)
		if err == nil {
			info.Peer = peer.Attrs().Name
		} else {
			// The peer lives in another namespace.
			info.Peer = fmt.Sprintf("if%d", peerIndex)
		}
	}

	return info
}
