package cnf

import (
	"sort"

	"github.com/pkg/errors"
	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/sortingnets/netcert/pkg/network"
)

// Decode extracts the original input from a model, given as signed
// variable identifiers, and returns it ordered by channel. Identifiers
// the pool never issued, and inputs that do not cover a contiguous range
// of channels, both mean the model does not belong to this pool and are
// reported as errors.
func Decode(model []int, pool *Pool) ([]bool, error) {
	type input struct {
		channel int
		value   bool
	}
	var inputs []input
	support := sets.New[int]()
	for _, m := range model {
		if m == 0 {
			continue
		}
		key, err := pool.Object(abs(m))
		if err != nil {
			return nil, err
		}
		if key.Role != RoleInput {
			continue
		}
		if support.Has(key.Index) {
			return nil, errors.Errorf("model assigns input channel %d more than once", key.Index)
		}
		support.Insert(key.Index)
		inputs = append(inputs, input{channel: key.Index, value: m > 0})
	}

	sort.Slice(inputs, func(i, j int) bool { return inputs[i].channel < inputs[j].channel })
	if n := len(inputs); n > 0 && inputs[n-1].channel+1 != n {
		channels := inputs[n-1].channel + 1
		return nil, errors.Wrap(&network.ChannelGapError{Channels: channels, Missing: network.Missing(support, channels)}, "inconsistent model")
	}

	bits := make([]bool, len(inputs))
	for i, in := range inputs {
		bits[i] = in.value
	}
	return bits, nil
}

// Counterexample decodes model against the encoding and checks that it
// covers every encoded channel.
func (e *Encoding) Counterexample(model []int) ([]bool, error) {
	bits, err := Decode(model, e.Pool)
	if err != nil {
		return nil, err
	}
	if len(bits) != e.Channels {
		return nil, errors.Errorf("model assigns %d of %d input channels", len(bits), e.Channels)
	}
	return bits, nil
}
