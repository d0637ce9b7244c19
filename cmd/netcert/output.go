package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/ghodss/yaml"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"

	"github.com/sortingnets/netcert/pkg/certify"
	"github.com/sortingnets/netcert/pkg/network"
	"github.com/sortingnets/netcert/pkg/network/generate"
)

// networkFlags select the network a command works on: either a file or a
// generator family.
type networkFlags struct {
	file       string
	kind       string
	size       int
	base       int
	descending bool
	m, n       int
	flip       int
}

func (f *networkFlags) bind(fs *pflag.FlagSet, withFile bool) {
	if withFile {
		fs.StringVarP(&f.file, "file", "f", "", "read the network from a YAML or JSON file, - for stdin")
	}
	fs.StringVar(&f.kind, "kind", "", fmt.Sprintf("generate a network of this family %v", generate.Kinds()))
	fs.IntVar(&f.size, "size", 0, "number of channels of the generated network")
	fs.IntVar(&f.base, "base", 0, "first channel of the generated network")
	fs.BoolVar(&f.descending, "descending", false, "generate a network sorting into non-increasing order")
	fs.IntVar(&f.m, "m", 0, "length of the first run of a batcher-merge network")
	fs.IntVar(&f.n, "n", 0, "length of the second run of a batcher-merge network")
	fs.IntVar(&f.flip, "flip", -1, "reverse the comparator at this index")
}

func (f *networkFlags) params() generate.Params {
	return generate.Params{Size: f.size, Base: f.base, Descending: f.descending, M: f.m, N: f.n}
}

func (f *networkFlags) load(stdin io.Reader) (network.Network, error) {
	var (
		net network.Network
		err error
	)
	switch {
	case f.file != "" && f.kind != "":
		return nil, errors.New("--file and --kind are mutually exclusive")
	case f.file == "-":
		net, err = network.Read(stdin)
	case f.file != "":
		var file *os.File
		if file, err = os.Open(f.file); err != nil {
			return nil, err
		}
		defer file.Close()
		net, err = network.Read(file)
		err = errors.Wrapf(err, "reading %s", f.file)
	case f.kind != "":
		net, err = generate.ByName(generate.Kind(f.kind), f.params())
	default:
		return nil, errors.New("one of --file or --kind is required")
	}
	if err != nil {
		return nil, err
	}
	if f.flip >= 0 {
		if f.flip >= len(net) {
			return nil, network.InvalidArgument("cannot flip comparator %d of %d", f.flip, len(net))
		}
		net = net.Reversed(f.flip)
	}
	return net, nil
}

// printValue writes v as YAML or JSON.
func printValue(w io.Writer, v interface{}, format string) error {
	var (
		data []byte
		err  error
	)
	switch format {
	case network.FormatJSON:
		data, err = json.MarshalIndent(v, "", "  ")
		data = append(data, '\n')
	case network.FormatYAML, "":
		data, err = yaml.Marshal(v)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

type layersReport struct {
	Depth  int               `json:"depth"`
	Layers []network.Network `json:"layers"`
}

type report struct {
	Size           int    `json:"size,omitempty"`
	Verdict        string `json:"verdict"`
	Counterexample string `json:"counterexample,omitempty"`
	Proof          string `json:"proof,omitempty"`
	Channels       int    `json:"channels"`
	Variables      int    `json:"variables"`
	Clauses        int    `json:"clauses"`
	Elapsed        string `json:"elapsed"`
}

func newReport(result *certify.Result) report {
	r := report{
		Verdict:   string(result.Verdict),
		Channels:  result.Channels,
		Variables: result.Variables,
		Clauses:   result.Clauses,
		Elapsed:   result.Elapsed.String(),
	}
	if result.Counterexample != nil {
		r.Counterexample = network.FormatBits(result.Counterexample)
	}
	return r
}
