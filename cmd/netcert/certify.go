package main

import (
	"context"
	"io/ioutil"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/sortingnets/netcert/pkg/certify"
	"github.com/sortingnets/netcert/pkg/lib/signals"
	"github.com/sortingnets/netcert/pkg/metrics"
	"github.com/sortingnets/netcert/pkg/network"
	"github.com/sortingnets/netcert/pkg/network/generate"
	"github.com/sortingnets/netcert/pkg/solver"
)

// solverFlags configure the solver used by each certification.
type solverFlags struct {
	strategy string
	path     string
	args     []string
}

func (f *solverFlags) bind(fs *pflag.FlagSet) {
	fs.StringVar(&f.strategy, "solver", solver.StrategyGini, "solving strategy, one of "+joinStrategies())
	fs.StringVar(&f.path, "solver-path", "", "solver binary for the cadical, kissat and external strategies")
	fs.StringSliceVar(&f.args, "solver-arg", nil, "extra argument passed to the solver binary before the formula file")
}

func (f *solverFlags) options(root *rootOptions, proof bool) []solver.Option {
	tracer := metrics.SolveTracer{}
	if root.debug {
		tracer.Next = solver.LoggingTracer{Writer: root.logger.Out}
	}
	options := []solver.Option{
		solver.WithStrategy(f.strategy),
		solver.WithProof(proof),
		solver.WithLogger(root.logger),
		solver.WithTracer(tracer),
	}
	if f.path != "" {
		options = append(options, solver.WithCommand(f.path, f.args...))
	}
	return options
}

func joinStrategies() string {
	return strings.Join(solver.Strategies(), ", ")
}

func newCertifyCmd(root *rootOptions) *cobra.Command {
	var (
		nf               networkFlags
		sf               solverFlags
		merger           int
		firstDescending  bool
		secondDescending bool
		proofPath        string
		allowGaps        bool
		output           string
	)

	cmd := &cobra.Command{
		Use:   "certify",
		Short: "Prove that a network sorts, or find an input it leaves unsorted",
		Long: `Certify a comparator network with a SAT solver.

        The network sorts every input if it sorts every 0/1 input, so the
        solver searches for a 0/1 input whose output is unsorted. Without one
        the network is good, and with --proof the solver's DRAT proof is
        written to a file. The command exits with status 2 for a network
        that does not sort.

        $ netcert certify --kind bitonic --size 12
        $ netcert certify -f net.yaml --solver cadical --proof net.drat
        $ netcert certify --kind batcher-merge --m 3 --n 5
        `,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			net, err := nf.load(cmd.InOrStdin())
			if err != nil {
				return err
			}
			if merger == 0 && nf.base == 0 && generate.Kind(nf.kind) == generate.KindBatcherMerge {
				merger = nf.m
			}

			options := []certify.Option{
				certify.WithLogger(root.logger),
				certify.WithSolverOptions(sf.options(root, proofPath != "")...),
				certify.WithRunOrder(firstDescending, secondDescending),
			}
			if merger != 0 {
				options = append(options, certify.WithMerger(merger))
			}
			if allowGaps {
				options = append(options, certify.WithAllowGaps())
			}
			c, err := certify.New(options...)
			if err != nil {
				return err
			}
			instrumented := certify.NewInstrumentedCertifier(c, metrics.RegisterCertificationSuccess, metrics.RegisterCertificationFailure)

			ctx, cancel := context.WithCancel(signals.Context())
			defer cancel()
			result, err := instrumented.Certify(ctx, net)
			if err != nil {
				return err
			}
			metrics.EmitResult(string(result.Verdict), result.Clauses)

			r := newReport(result)
			if proofPath != "" && result.Verdict == certify.Good {
				if err := ioutil.WriteFile(proofPath, result.Proof, 0644); err != nil {
					return errors.Wrap(err, "writing proof")
				}
				r.Proof = proofPath
			}
			if err := printValue(cmd.OutOrStdout(), r, output); err != nil {
				return err
			}
			if result.Verdict == certify.NoGood {
				return errNoGood
			}
			return nil
		},
	}

	nf.bind(cmd.Flags(), true)
	sf.bind(cmd.Flags())
	cmd.Flags().IntVar(&merger, "merger", 0, "certify a merger of the runs before and from this channel (defaults to m for batcher-merge)")
	cmd.Flags().BoolVar(&firstDescending, "first-descending", false, "the first merger run is non-increasing")
	cmd.Flags().BoolVar(&secondDescending, "second-descending", false, "the second merger run is non-increasing")
	cmd.Flags().StringVar(&proofPath, "proof", "", "write the unsatisfiability proof to this file (cadical, kissat and external only)")
	cmd.Flags().BoolVar(&allowGaps, "allow-gaps", false, "certify networks that leave channels unused")
	cmd.Flags().StringVarP(&output, "output", "o", network.FormatYAML, "output format, yaml or json")
	return cmd
}

func newCertifyRangeCmd(root *rootOptions) *cobra.Command {
	var (
		sf     solverFlags
		kind   string
		from   int
		to     int
		jobs   int
		output string
	)

	cmd := &cobra.Command{
		Use:   "certify-range",
		Short: "Certify the sorting networks of one family over a range of sizes",
		Long: `Certify the sorting networks of one family for every size from
        --from to --to, running up to --jobs certifications at once.

        $ netcert certify-range --kind bitonic --from 2 --to 24 --jobs 4
        `,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch k := generate.Kind(kind); k {
			case generate.KindBitonicMerge, generate.KindBatcherMerge:
				return network.InvalidArgument("certify-range needs a sorting network family, got %s", k)
			}
			if from < 1 || to < from {
				return network.InvalidArgument("invalid size range [%d, %d]", from, to)
			}

			var nets []network.Network
			for size := from; size <= to; size++ {
				net, err := generate.ByName(generate.Kind(kind), generate.Params{Size: size})
				if err != nil {
					return errors.Wrapf(err, "size %d", size)
				}
				nets = append(nets, net)
			}

			ctx, cancel := context.WithCancel(signals.Context())
			defer cancel()
			results, err := certify.CertifyAll(ctx, nets, jobs,
				certify.WithLogger(root.logger),
				certify.WithSolverOptions(sf.options(root, false)...),
				certify.WithMetricsEmitters(metrics.RegisterCertificationSuccess, metrics.RegisterCertificationFailure),
			)
			if err != nil {
				return err
			}

			reports := make([]report, len(results))
			noGood := false
			for i, result := range results {
				metrics.EmitResult(string(result.Verdict), result.Clauses)
				reports[i] = newReport(result)
				reports[i].Size = from + i
				noGood = noGood || result.Verdict == certify.NoGood
			}
			if err := printValue(cmd.OutOrStdout(), reports, output); err != nil {
				return err
			}
			if noGood {
				return errNoGood
			}
			return nil
		},
	}

	sf.bind(cmd.Flags())
	cmd.Flags().StringVar(&kind, "kind", string(generate.KindBitonic), "sorting network family")
	cmd.Flags().IntVar(&from, "from", 2, "smallest size to certify")
	cmd.Flags().IntVar(&to, "to", 16, "largest size to certify")
	cmd.Flags().IntVar(&jobs, "jobs", 1, "number of concurrent certifications, 0 for no limit")
	cmd.Flags().StringVarP(&output, "output", "o", network.FormatYAML, "output format, yaml or json")
	return cmd
}
