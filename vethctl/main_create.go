package main

import (
	"fmt"

	"github.com/spf13/cobra"

	cli "github.com/canonical/vethctl/shared/cmd"
	"github.com/canonical/vethctl/shared/validate"
)

type cmdCreate struct {
	global *cmdGlobal
}

func (c *cmdCreate) Command() *cobra.Command {
	cmd := &cobra.Command{}
	cmd.Use = "create <name> [<peer>]"
	cmd.Short = "Create a veth pair"
	cmd.Long = cli.FormatSection("Description", `Create a veth pair and bring the first interface up

When the peer name is omitted, a random "veth" name is used.`)
	cmd.RunE = c.Run

	return cmd
}

func (c *cmdCreate) Run(cmd *cobra.Command, args []string) error {
	// Quick checks.
	exit, err := c.global.CheckArgs(cmd, args, 1, 2)
	if exit {
		return err
	}

	name := args[0]
	peer := randomDevName("veth")
	if len(args) > 1 {
		peer = args[1]
	}

	for _, iface := range []string{name, peer} {
		err := validate.IsInterfaceName(iface)
		if err != nil {
			return fmt.Errorf("Invalid interface name %q: %w", iface, err)
		}
	}

	c.global.checkPrivileges()

	err = c.global.manager.Create(cmd.Context(), name, peer)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created veth pair %s <-> %s\n", name, peer)

	return nil
}
