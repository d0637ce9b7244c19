package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sortingnets/netcert/pkg/metrics"
)

const (
	exitGood   = 0
	exitError  = 1
	exitNoGood = 2
)

// errNoGood is returned by certify when the network does not sort. The
// result has already been printed.
var errNoGood = errors.New("network does not sort")

type rootOptions struct {
	debug   bool
	metrics bool

	logger   *logrus.Logger
	registry *prometheus.Registry
}

func newRootCmd(stdout, stderr io.Writer) (*cobra.Command, *rootOptions) {
	o := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "netcert",
		Short:         "Generate comparator networks and certify that they sort",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			o.logger = logrus.New()
			o.logger.SetOutput(stderr)
			if o.debug {
				o.logger.SetLevel(logrus.DebugLevel)
			}
			o.logger.Debugf("log level %s", o.logger.Level)

			if o.metrics {
				o.registry = prometheus.NewRegistry()
				if err := metrics.Register(o.registry); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	cmd.PersistentFlags().BoolVar(&o.debug, "debug", false, "use debug log level")
	cmd.PersistentFlags().BoolVar(&o.metrics, "metrics", false, "print collected metrics to stderr on exit")

	cmd.AddCommand(
		newGenerateCmd(o),
		newGroupCmd(o),
		newCertifyCmd(o),
		newCertifyRangeCmd(o),
		newVersionCmd(),
	)
	return cmd, o
}

// execute runs the command line and returns the process exit code.
func execute(args []string, stdout, stderr io.Writer) int {
	cmd, o := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()

	if o.registry != nil {
		if dumpErr := dumpMetrics(stderr, o.registry); dumpErr != nil {
			fmt.Fprintf(stderr, "Error: writing metrics: %v\n", dumpErr)
		}
	}

	switch {
	case err == nil:
		return exitGood
	case errors.Is(err, errNoGood):
		return exitNoGood
	default:
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
}

func dumpMetrics(w io.Writer, registry *prometheus.Registry) error {
	families, err := registry.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
