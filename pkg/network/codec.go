package network

import (
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"

	"github.com/ghodss/yaml"
	"github.com/pkg/errors"
)

const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// MarshalJSON encodes the comparator as a two-element list.
func (c Comparator) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{c.Low, c.High})
}

// Decode parses a network from YAML or JSON. The document must be a list
// of two-element integer lists, e.g. [[0, 1], [2, 3]]. Shape errors are
// reported as *InvalidNetworkError; the comparators themselves are not
// validated, use Check for that.
func Decode(data []byte) (Network, error) {
	var raw [][]int
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, InvalidArgument("cannot parse network: %v", err)
	}
	n := make(Network, len(raw))
	for i, pair := range raw {
		if len(pair) != 2 {
			return nil, InvalidArgument("entry %d: expected a pair of channels, got %d value(s)", i, len(pair))
		}
		n[i] = Comparator{Low: pair[0], High: pair[1]}
	}
	return n, nil
}

// Read decodes a network from r.
func Read(r io.Reader) (Network, error) {
	data, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "reading network")
	}
	return Decode(data)
}

// Write encodes the network to w in the given format.
func Write(w io.Writer, n Network, format string) error {
	if n == nil {
		n = Network{}
	}
	var (
		data []byte
		err  error
	)
	switch format {
	case FormatJSON:
		data, err = json.Marshal(n)
		data = append(data, '\n')
	case FormatYAML, "":
		data, err = yaml.Marshal(n)
	default:
		return fmt.Errorf("unknown network format %q", format)
	}
	if err != nil {
		return errors.Wrap(err, "encoding network")
	}
	_, err = w.Write(data)
	return err
}
