package main

import (
	"fmt"

	"github.com/spf13/cobra"

	cli "github.com/canonical/vethctl/shared/cmd"
	"github.com/canonical/vethctl/shared/validate"
)

type cmdRemove struct {
	global *cmdGlobal
}

func (c *cmdRemove) Command() *cobra.Command {
	cmd := &cobra.Command{}
	cmd.Use = "remove <name>"
	cmd.Aliases = []string{"rm", "delete"}
	cmd.Short = "Remove a veth"
	cmd.Long = cli.FormatSection("Description", `Remove a veth, together with its peer

Removing a veth which doesn't exist is not an error.`)
	cmd.RunE = c.Run

	return cmd
}

func (c *cmdRemove) Run(cmd *cobra.Command, args []string) error {
	// Quick checks.
	exit, err := c.global.CheckArgs(cmd, args, 1, 1)
	if exit {
		return err
	}

	err = validate.IsInterfaceName(args[0])
	if err != nil {
		return fmt.Errorf("Invalid interface name %q: %w", args[0], err)
	}

	c.global.checkPrivileges()

	removed, err := c.global.manager.Remove(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if !removed {
		fmt.Fprintf(cmd.OutOrStdout(), "Veth %s doesn't exist\n", args[0])
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Removed veth %s\n", args[0])

	return nil
}
