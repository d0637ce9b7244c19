package generate

import (
	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/sortingnets/netcert/pkg/network"
)

// Group partitions net into layers of comparators that touch disjoint
// channels. A comparator joins the current layer unless it shares a
// channel with it, in which case it opens a new one, so concatenating
// the layers gives back net. The number of layers is the parallel depth.
func Group(net network.Network) []network.Network {
	var (
		layers  []network.Network
		current network.Network
		support = sets.New[int]()
	)
	for _, c := range net {
		if support.Has(c.Low) || support.Has(c.High) {
			layers = append(layers, current)
			current = nil
			support = sets.New[int]()
		}
		current = append(current, c)
		support.Insert(c.Low, c.High)
	}
	if len(current) > 0 {
		layers = append(layers, current)
	}
	return layers
}

// Depth returns the number of layers Group produces for net.
func Depth(net network.Network) int {
	return len(Group(net))
}
