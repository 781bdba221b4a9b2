package main

import (
	"fmt"
	"net"

	"github.com/spf13/cobra"

	"github.com/canonical/vethctl/shared/validate"
)

type cmdSetAddress struct {
	global *cmdGlobal
}

func (c *cmdSetAddress) Command() *cobra.Command {
	cmd := &cobra.Command{}
	cmd.Use = "set-address <name> <mac>"
	cmd.Short = "Set the hardware address of a veth"
	cmd.RunE = c.Run

	return cmd
}

func (c *cmdSetAddress) Run(cmd *cobra.Command, args []string) error {
	// Quick checks.
	exit, err := c.global.CheckArgs(cmd, args, 2, 2)
	if exit {
		return err
	}

	err = validate.IsInterfaceName(args[0])
	if err != nil {
		return fmt.Errorf("Invalid interface name %q: %w", args[0], err)
	}

	err = validate.IsNetworkMAC(args[1])
	if err != nil {
		return err
	}

	mac, err := net.ParseMAC(args[1])
	if err != nil {
		return err
	}

	c.global.checkPrivileges()

	return c.global.manager.SetAddress(cmd.Context(), args[0], mac)
}
