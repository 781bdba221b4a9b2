package veth

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"time"

	"github.com/canonical/vethctl/ip"
	"github.com/canonical/vethctl/shared/logger"
	"github.com/canonical/vethctl/shared/subprocess"
)

// IPCmdTimeout is the timeout applied to ip commands which change or list links.
const IPCmdTimeout = 5 * time.Second

// DefaultIPPath is the ip command resolved from PATH.
const DefaultIPPath = "ip"

// Manager manages veths by running the ip command.
type Manager struct {
	// Runner runs the ip commands.
	Runner subprocess.Runner

	// IPPath is the ip binary to run.
	IPPath string

	// Timeout bounds every command except the existence probe.
	Timeout time.Duration

	// OpenDiscard opens the sink used to silence the existence probe.
	OpenDiscard func() (io.WriteCloser, error)
}

var _ Interface = (*Manager)(nil)

// NewManager returns a Manager using runner and the default settings.
func NewManager(runner subprocess.Runner) *Manager {
	return &Manager{
		Runner:      runner,
		IPPath:      DefaultIPPath,
		Timeout:     IPCmdTimeout,
		OpenDiscard: openDevNull,
	}
}

func openDevNull() (io.WriteCloser, error) {
	return os.OpenFile(os.DevNull, os.O_WRONLY, 0)
}

func (m *Manager) logger(name string) logger.Logger {
	return logger.AddContext(logger.Ctx{"driver": "iproute2", "name": name})
}

// run runs ip with args using the manager timeout.
func (m *Manager) run(ctx context.Context, args []string, stdout io.Writer) error {
	return m.Runner.Run(ctx, subprocess.Cmd{
		Name:    m.IPPath,
		Args:    args,
		Timeout: m.Timeout,
		Stdout:  stdout,
	})
}

// Create adds the veth pair name<->peer and brings name up.
// A failure to bring the link up does not remove the pair.
func (m *Manager) Create(ctx context.Context, name string, peer string) error {
	l := m.logger(name)

	veth := &ip.Veth{
		Link: ip.Link{Name: name},
		Peer: ip.Link{Name: peer},
	}

	l.Debug("Creating veth pair", logger.Ctx{"peer": peer})
	err := m.run(ctx, veth.AddArgs(), nil)
	if err != nil {
		return fmt.Errorf("Failed to create the veth interfaces %q and %q: %w", name, peer, err)
	}

	err = m.run(ctx, veth.SetUpArgs(), nil)
	if err != nil {
		return fmt.Errorf("Failed to bring up interface %q: %w", name, err)
	}

	l.Info("Created veth pair", logger.Ctx{"peer": peer})

	return nil
}

// Remove deletes the named veth.
// It returns false without running anything else if the veth doesn't exist.
func (m *Manager) Remove(ctx context.Context, name string) (bool, error) {
	exists, err := m.Exists(ctx, name)
	if err != nil {
		return false, err
	}

	if !exists {
		m.logger(name).Debug("Veth not found, nothing to remove")
		return false, nil
	}

	link := &ip.Link{Name: name}
	err = m.run(ctx, link.DeleteArgs(), nil)
	if err != nil {
		return false, fmt.Errorf("Failed to delete interface %q: %w", name, err)
	}

	m.logger(name).Info("Removed veth")

	return true, nil
}

// Exists returns whether a link with the given name exists.
// The probe output is discarded and no timeout is applied to it.
func (m *Manager) Exists(ctx context.Context, name string) (bool, error) {
	sink, err := m.OpenDiscard()
	if err != nil {
		return false, fmt.Errorf("Failed to open %q: %w", os.DevNull, err)
	}

	defer func() { _ = sink.Close() }()

	link := &ip.Link{Name: name}
	err = m.Runner.Run(ctx, subprocess.Cmd{
		Name:   m.IPPath,
		Args:   link.ShowArgs(),
		Stdout: sink,
		Stderr: sink,
	})
	if err != nil {
		// ip exits non-zero when the device doesn't exist.
		if subprocess.IsExitError(err) {
			return false, nil
		}

		return false, fmt.Errorf("Failed to check interface %q: %w", name, err)
	}

	return true, nil
}

// SetAddress changes the hardware address of the named veth.
func (m *Manager) SetAddress(ctx context.Context, name string, mac net.HardwareAddr) error {
	link := &ip.Link{Name: name}
	err := m.run(ctx, link.SetAddressArgs(mac.String()), nil)
	if err != nil {
		return fmt.Errorf("Failed to set address %q on interface %q: %w", mac.String(), name, err)
	}

	m.logger(name).Debug("Set veth address", logger.Ctx{"address": mac.String()})

	return nil
}

// List returns the veth links on the host.
func (m *Manager) List(ctx context.Context) ([]ip.LinkInfo, error) {
	var stdout bytes.Buffer

	err := m.run(ctx, ip.ListArgs("veth"), &stdout)
	if err != nil {
		return nil, fmt.Errorf("Failed to list veth interfaces: %w", err)
	}

	return ip.ParseLinks(stdout.String()), nil
}
