package cnf

import (
	"github.com/sortingnets/netcert/pkg/network"
)

// Encoding is the satisfiability instance for one network: the formula
// is satisfiable exactly when some 0/1 input (restricted to two sorted
// runs for a merger) is left unsorted by the network.
type Encoding struct {
	Formula  *Formula
	Pool     *Pool
	Channels int
	// Inputs[ch] is the variable holding the original value of ch.
	Inputs []int
	// Outputs[ch] is the variable holding the final value of ch.
	Outputs []int
}

type encodeConfig struct {
	merger           int
	firstDescending  bool
	secondDescending bool
}

// EncodeOption configures Encode.
type EncodeOption func(c *encodeConfig)

// WithMerger restricts inputs to two runs, channels [0, split) and
// [split, channels), each already sorted. This is how a merging network
// is certified. split must lie strictly between 0 and the channel count.
func WithMerger(split int) EncodeOption {
	return func(c *encodeConfig) {
		c.merger = split
	}
}

// WithRunOrder makes the first and/or second merger run non-increasing
// instead of non-decreasing. It has no effect without WithMerger.
func WithRunOrder(firstDescending, secondDescending bool) EncodeOption {
	return func(c *encodeConfig) {
		c.firstDescending = firstDescending
		c.secondDescending = secondDescending
	}
}

// Encode builds the formula whose models are the 0/1 counterexamples to
// net sorting the given number of channels. Comparators must fit within
// channels.
func Encode(net network.Network, channels int, options ...EncodeOption) (*Encoding, error) {
	var cfg encodeConfig
	for _, option := range options {
		option(&cfg)
	}
	for i, c := range net {
		if c.Low < 0 || c.High < 0 || c.Low >= channels || c.High >= channels {
			return nil, &network.InvalidNetworkError{Index: i, Comparator: c, Reason: "channel outside the encoded range"}
		}
		if c.Low == c.High {
			return nil, &network.InvalidNetworkError{Index: i, Comparator: c, Reason: "comparator pairs a channel with itself"}
		}
	}
	if cfg.merger != 0 && (cfg.merger < 0 || cfg.merger >= channels) {
		return nil, network.InvalidArgument("merger split must lie in (0, %d), got %d", channels, cfg.merger)
	}

	e := &Encoding{
		Formula:  &Formula{},
		Pool:     NewPool(),
		Channels: channels,
		Inputs:   make([]int, channels),
	}
	for ch := range e.Inputs {
		e.Inputs[ch] = e.Pool.ID(Key{Role: RoleInput, Index: ch})
	}

	if cfg.merger != 0 {
		e.sortedRun(RoleFirstRun, 0, cfg.merger, cfg.firstDescending)
		e.sortedRun(RoleSecondRun, cfg.merger, channels, cfg.secondDescending)
	}

	values := make([]int, channels)
	copy(values, e.Inputs)
	for i, c := range net {
		lo, hi := values[c.Low], values[c.High]
		lower := e.Pool.ID(Key{Role: RoleMin, Index: i})
		upper := e.Pool.ID(Key{Role: RoleMax, Index: i})

		// lower = lo AND hi
		e.Formula.Add(-lower, lo)
		e.Formula.Add(-lower, hi)
		e.Formula.Add(-lo, -hi, lower)

		// upper = lo OR hi
		e.Formula.Add(-upper, lo, hi)
		e.Formula.Add(-lo, upper)
		e.Formula.Add(-hi, upper)

		values[c.Low] = lower
		values[c.High] = upper
	}
	e.Outputs = values

	// At least one adjacent output pair is a 1 followed by a 0.
	var unsorted []int
	for i := 0; i+1 < channels; i++ {
		v := e.Pool.ID(Key{Role: RoleUnsorted, Index: i})
		e.violation(v, values[i], values[i+1])
		unsorted = append(unsorted, v)
	}
	e.Formula.Add(unsorted...)
	e.Formula.DeclareVars(e.Pool.Len())
	return e, nil
}

// violation defines v <=> (a AND NOT b).
func (e *Encoding) violation(v, a, b int) {
	e.Formula.Add(-v, a)
	e.Formula.Add(-v, -b)
	e.Formula.Add(v, -a, b)
}

// sortedRun forbids every adjacent out-of-order pair among the inputs of
// channels [from, to).
func (e *Encoding) sortedRun(role Role, from, to int, descending bool) {
	for i := from; i+1 < to; i++ {
		v := e.Pool.ID(Key{Role: role, Index: i})
		a, b := e.Inputs[i], e.Inputs[i+1]
		if descending {
			a, b = -a, -b
		}
		e.violation(v, a, b)
		e.Formula.Add(-v)
	}
}
