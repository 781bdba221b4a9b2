package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	cli "github.com/canonical/vethctl/shared/cmd"
	"github.com/canonical/vethctl/shared/validate"
)

type cmdExists struct {
	global *cmdGlobal

	flagQuiet bool
}

func (c *cmdExists) Command() *cobra.Command {
	cmd := &cobra.Command{}
	cmd.Use = "exists <name>..."
	cmd.Short = "Check whether veths exist"
	cmd.Long = cli.FormatSection("Description", `Check whether veths exist

The exit status is 0 when all the interfaces exist and 1 otherwise.`)
	cmd.RunE = c.Run
	cmd.Flags().BoolVarP(&c.flagQuiet, "quiet", "q", false, "Only report through the exit status")

	return cmd
}

func (c *cmdExists) Run(cmd *cobra.Command, args []string) error {
	// Quick checks.
	exit, err := c.global.CheckArgs(cmd, args, 1, -1)
	if exit {
		return err
	}

	for _, name := range args {
		err := validate.IsInterfaceName(name)
		if err != nil {
			return fmt.Errorf("Invalid interface name %q: %w", name, err)
		}
	}

	// Probes are read-only so they can run in parallel.
	results := make([]bool, len(args))
	g, ctx := errgroup.WithContext(cmd.Context())
	for i, name := range args {
		g.Go(func() error {
			exists, err := c.global.manager.Exists(ctx, name)
			if err != nil {
				return err
			}

			results[i] = exists
			return nil
		})
	}

	err = g.Wait()
	if err != nil {
		return err
	}

	all := true
	for i, name := range args {
		all = all && results[i]

		if c.flagQuiet {
			continue
		}

		if len(args) == 1 {
			fmt.Fprintf(cmd.OutOrStdout(), "%t\n", results[i])
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %t\n", name, results[i])
		}
	}

	if !all {
		return errSilent
	}

	return nil
}
