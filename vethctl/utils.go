package main

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/syndtr/gocapability/capability"
)

// randomDevName returns a random device name with the given prefix.
// The result is truncated to 15 characters to fit in IFNAMSIZ.
func randomDevName(prefix string) string {
	randBytes := make([]byte, 4)
	_, _ = rand.Read(randBytes)

	iface := prefix + hex.EncodeToString(randBytes)
	if len(iface) > 15 {
		return iface[:15]
	}

	return iface
}

// hasNetAdmin returns whether the process holds CAP_NET_ADMIN in its effective set.
func hasNetAdmin() bool {
	caps, err := capability.NewPid2(0)
	if err != nil {
		return false
	}

	err = caps.Load()
	if err != nil {
		return false
	}

	return caps.Get(capability.EFFECTIVE, capability.CAP_NET_ADMIN)
}
