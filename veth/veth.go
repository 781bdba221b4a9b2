// Package veth manages virtual ethernet pairs on the host.
package veth

import (
	"context"
	"net"

	"github.com/canonical/vethctl/ip"
)

// Interface is implemented by the veth management backends.
type Interface interface {
	// Create adds the veth pair name<->peer and brings name up.
	Create(ctx context.Context, name string, peer string) error

	// Remove deletes the named veth, returning false if it didn't exist.
	Remove(ctx context.Context, name string) (bool, error)

	// Exists returns whether a link with the given name exists.
	Exists(ctx context.Context, name string) (bool, error)

	// SetAddress changes the hardware address of the named veth.
	SetAddress(ctx context.Context, name string, mac net.HardwareAddr) error

	// List returns the veth links on the host.
	List(ctx context.Context) ([]ip.LinkInfo, error)
}
