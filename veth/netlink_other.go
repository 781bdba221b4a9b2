//go:build !linux

package veth

import (
	"fmt"
)

// NewNetlinkManager is only available on Linux.
func NewNetlinkManager() (Interface, error) {
	return nil, fmt.Errorf("The netlink backend is only supported on Linux")
}
