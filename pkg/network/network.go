package network

import (
	"fmt"
	"strings"

	"k8s.io/apimachinery/pkg/util/sets"
)

// Comparator is a compare-exchange between two channels. After it is
// applied, Low holds the minimum of the two values and High holds the
// maximum. Low is not required to be numerically smaller than High.
type Comparator struct {
	Low  int
	High int
}

// C is shorthand for Comparator{Low: low, High: high}.
func C(low, high int) Comparator {
	return Comparator{Low: low, High: high}
}

func (c Comparator) String() string {
	return fmt.Sprintf("(%d, %d)", c.Low, c.High)
}

// Reversed returns the comparator with its orientation flipped.
func (c Comparator) Reversed() Comparator {
	return Comparator{Low: c.High, High: c.Low}
}

// Touches reports whether the comparator reads or writes channel ch.
func (c Comparator) Touches(ch int) bool {
	return c.Low == ch || c.High == ch
}

// Network is an ordered sequence of comparators. Each comparator reads
// the values left on its channels by the comparators before it.
type Network []Comparator

func (n Network) String() string {
	s := make([]string, len(n))
	for i, c := range n {
		s[i] = c.String()
	}
	return "[" + strings.Join(s, ", ") + "]"
}

// Support returns the set of channels referenced by the network.
func (n Network) Support() sets.Set[int] {
	support := sets.New[int]()
	for _, c := range n {
		support.Insert(c.Low, c.High)
	}
	return support
}

// Channels returns 1 + the largest channel index, or 0 for an empty
// network. It does not validate the network; see Check.
func (n Network) Channels() int {
	channels := 0
	for _, c := range n {
		if c.Low >= channels {
			channels = c.Low + 1
		}
		if c.High >= channels {
			channels = c.High + 1
		}
	}
	return channels
}

// Reversed returns a copy of the network with the orientation of the
// i-th comparator flipped.
func (n Network) Reversed(i int) Network {
	out := make(Network, len(n))
	copy(out, n)
	out[i] = out[i].Reversed()
	return out
}

// Shift returns a copy of the network with every channel moved up by
// offset.
func (n Network) Shift(offset int) Network {
	out := make(Network, len(n))
	for i, c := range n {
		out[i] = Comparator{Low: c.Low + offset, High: c.High + offset}
	}
	return out
}

// Check validates the network and returns its channel count. Every
// comparator must pair two distinct non-negative channels, otherwise an
// *InvalidNetworkError naming the first offending comparator is
// returned. When the channels actually used leave a hole below the
// largest index, the channel count is returned together with a
// *ChannelGapError so callers can decide whether to go on.
func Check(n Network) (int, error) {
	for i, c := range n {
		switch {
		case c.Low < 0 || c.High < 0:
			return 0, &InvalidNetworkError{Index: i, Comparator: c, Reason: "negative channel index"}
		case c.Low == c.High:
			return 0, &InvalidNetworkError{Index: i, Comparator: c, Reason: "comparator pairs a channel with itself"}
		}
	}

	channels := n.Channels()
	support := n.Support()
	if support.Len() != channels {
		return channels, &ChannelGapError{Channels: channels, Missing: Missing(support, channels)}
	}
	return channels, nil
}

// Missing returns, in ascending order, the channels below channels that
// are absent from support.
func Missing(support sets.Set[int], channels int) []int {
	var missing []int
	for ch := 0; ch < channels; ch++ {
		if !support.Has(ch) {
			missing = append(missing, ch)
		}
	}
	return missing
}
