package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fvbommel/sortorder"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	"github.com/canonical/vethctl/ip"
	cli "github.com/canonical/vethctl/shared/cmd"
)

type cmdList struct {
	global *cmdGlobal

	flagFormat string
}

func (c *cmdList) Command() *cobra.Command {
	cmd := &cobra.Command{}
	cmd.Use = "list"
	cmd.Aliases = []string{"ls"}
	cmd.Short = "List veths"
	cmd.Long = cli.FormatSection("Description", `List the veth interfaces on the host`)
	cmd.RunE = c.Run
	cmd.Flags().StringVarP(&c.flagFormat, "format", "f", "table", "Format (table|yaml)"+"``")

	return cmd
}

func (c *cmdList) Run(cmd *cobra.Command, args []string) error {
	// Quick checks.
	exit, err := c.global.CheckArgs(cmd, args, 0, 0)
	if exit {
		return err
	}

	links, err := c.global.manager.List(cmd.Context())
	if err != nil {
		return err
	}

	sort.Slice(links, func(i, j int) bool { return sortorder.NaturalLess(links[i].Name, links[j].Name) })

	switch c.flagFormat {
	case "table":
		renderTable(cmd.OutOrStdout(), links)
	case "yaml":
		out, err := yaml.Marshal(links)
		if err != nil {
			return err
		}

		fmt.Fprint(cmd.OutOrStdout(), string(out))
	default:
		return fmt.Errorf("Invalid format %q", c.flagFormat)
	}

	return nil
}

func renderTable(w io.Writer, links []ip.LinkInfo) {
	data := [][]string{}
	for _, link := range links {
		data = append(data, []string{
			link.Name,
			link.Peer,
			link.State,
			fmt.Sprintf("%d", link.MTU),
			link.Address,
			strings.Join(link.Flags, ","),
		})
	}

	cli.RenderTable(w, []string{"NAME", "PEER", "STATE", "MTU", "ADDRESS", "FLAGS"}, data)
}
