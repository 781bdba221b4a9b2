// Package ip builds argument vectors for the ip command from the iproute2 tool collection.
package ip

import (
	"fmt"
)

// Link represents base arguments for link device.
type Link struct {
	Name          string
	MTU           uint32
	Address       string
	TXQueueLength uint32
}

// args generates the optional arguments shared by all link types.
func (l *Link) args() []string {
	var result []string

	if l.MTU > 0 {
		result = append(result, "mtu", fmt.Sprintf("%d", l.MTU))
	}

	if l.Address != "" {
		result = append(result, "address", l.Address)
	}

	if l.TXQueueLength > 0 {
		result = append(result, "txqueuelen", fmt.Sprintf("%d", l.TXQueueLength))
	}

	return result
}

// addArgs generates the arguments to add a link of the given type.
func (l *Link) addArgs(linkType string, additionalArgs []string) []string {
	cmd := []string{"link", "add", l.Name}
	cmd = append(cmd, l.args()...)
	cmd = append(cmd, "type", linkType)

	return append(cmd, additionalArgs...)
}

// SetUpArgs returns the arguments to bring the link up.
func (l *Link) SetUpArgs() []string {
	return []string{"link", "set", l.Name, "up"}
}

// SetDownArgs returns the arguments to bring the link down.
func (l *Link) SetDownArgs() []string {
	return []string{"link", "set", l.Name, "down"}
}

// DeleteArgs returns the arguments to delete the link.
func (l *Link) DeleteArgs() []string {
	return []string{"link", "del", l.Name}
}

// ShowArgs returns the arguments to show the link.
func (l *Link) ShowArgs() []string {
	return []string{"link", "show", l.Name}
}

// SetAddressArgs returns the arguments to change the link hardware address.
func (l *Link) SetAddressArgs(address string) []string {
	return []string{"link", "set", "dev", l.Name, "address", address}
}

// ListArgs returns the arguments to list links in one-line mode, optionally filtered by type.
func ListArgs(linkType string) []string {
	cmd := []string{"-o", "link", "show"}
	if linkType != "" {
		cmd = append(cmd, "type", linkType)
	}

	return cmd
}
