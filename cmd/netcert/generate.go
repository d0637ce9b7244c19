package main

import (
	"github.com/spf13/cobra"

	"github.com/sortingnets/netcert/pkg/network"
	"github.com/sortingnets/netcert/pkg/network/generate"
)

func newGenerateCmd(root *rootOptions) *cobra.Command {
	var (
		nf     networkFlags
		output string
		layers bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Print a generated comparator network",
		Long: `Print a comparator network built by one of the generator families.

        $ netcert generate --kind bitonic --size 8
        $ netcert generate --kind batcher-merge --m 3 --n 5 -o json
        `,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if nf.kind == "" {
				return network.InvalidArgument("--kind is required")
			}
			net, err := nf.load(cmd.InOrStdin())
			if err != nil {
				return err
			}
			root.logger.WithField("comparators", len(net)).Debugf("generated %s network", nf.kind)
			if layers {
				groups := generate.Group(net)
				return printValue(cmd.OutOrStdout(), layersReport{Depth: len(groups), Layers: groups}, output)
			}
			return network.Write(cmd.OutOrStdout(), net, output)
		},
	}

	nf.bind(cmd.Flags(), false)
	cmd.Flags().StringVarP(&output, "output", "o", network.FormatYAML, "output format, yaml or json")
	cmd.Flags().BoolVar(&layers, "layers", false, "print the network grouped into parallel layers")
	return cmd
}
