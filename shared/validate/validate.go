package validate

import (
	"fmt"
	"net"
	"regexp"
	"strings"

	"golang.org/x/sys/unix"
)

var interfaceNameRegexp = regexp.MustCompile(`^[-_a-zA-Z0-9.]+$`)

// IsInterfaceName validates a real network interface name.
func IsInterfaceName(value string) error {
	// Validate the length.
	if len(value) < 2 {
		return fmt.Errorf("Network interface is too short (minimum 2 characters)")
	}

	// The kernel limit includes the trailing NUL byte.
	if len(value) > unix.IFNAMSIZ-1 {
		return fmt.Errorf("Network interface is too long (maximum %d characters)", unix.IFNAMSIZ-1)
	}

	// Validate the character set.
	if !interfaceNameRegexp.MatchString(value) {
		return fmt.Errorf("Network interface contains invalid characters")
	}

	if strings.HasPrefix(value, ".") {
		return fmt.Errorf("Network interface cannot start with a dot")
	}

	return nil
}

// IsNetworkMAC validates an Ethernet MAC address. e.g. "00:00:5e:00:53:01".
func IsNetworkMAC(value string) error {
	mac, err := net.ParseMAC(value)

	// Check is valid Ethernet MAC length and delimiter.
	if err != nil || len(value) != 17 || len(mac) != 6 || value[2] != ':' {
		return fmt.Errorf("Invalid MAC address, must be 6 bytes of hex separated by colons")
	}

	return nil
}
