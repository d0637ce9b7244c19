package main

import (
	"github.com/spf13/cobra"

	"github.com/sortingnets/netcert/pkg/network"
	"github.com/sortingnets/netcert/pkg/network/generate"
)

func newGroupCmd(root *rootOptions) *cobra.Command {
	var (
		nf     networkFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "group",
		Short: "Split a network into layers of comparators on disjoint channels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			net, err := nf.load(cmd.InOrStdin())
			if err != nil {
				return err
			}
			groups := generate.Group(net)
			root.logger.WithField("depth", len(groups)).Debug("grouped network")
			return printValue(cmd.OutOrStdout(), layersReport{Depth: len(groups), Layers: groups}, output)
		},
	}

	nf.bind(cmd.Flags(), true)
	cmd.Flags().StringVarP(&output, "output", "o", network.FormatYAML, "output format, yaml or json")
	return cmd
}
