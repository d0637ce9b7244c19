package generate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sortingnets/netcert/pkg/network"
)

// Kind names a generator family usable from the command line.
type Kind string

const (
	KindBitonic          Kind = "bitonic"
	KindBitonicMerge     Kind = "bitonic-merge"
	KindBitonicIterative Kind = "bitonic-iterative"
	KindBatcher          Kind = "batcher"
	KindBatcherMerge     Kind = "batcher-merge"
)

// Params are the arguments a generator family may take. Size is the
// channel count for sorters and for the bitonic merger; M and N are the
// run lengths of the Batcher merger.
type Params struct {
	Size       int
	Base       int
	Descending bool
	M, N       int
}

type generator func(p Params) (network.Network, error)

var generators = map[Kind]generator{
	KindBitonic: func(p Params) (network.Network, error) {
		if p.Size < 1 {
			return nil, network.InvalidArgument("size must be positive, got %d", p.Size)
		}
		return BitonicSort(p.Size, p.Base, !p.Descending), nil
	},
	KindBitonicMerge: func(p Params) (network.Network, error) {
		if p.Size < 1 {
			return nil, network.InvalidArgument("size must be positive, got %d", p.Size)
		}
		return BitonicMerge(p.Base, p.Size, !p.Descending), nil
	},
	KindBitonicIterative: func(p Params) (network.Network, error) {
		n, err := BitonicPowerOfTwo(p.Size)
		if err != nil {
			return nil, err
		}
		return n.Shift(p.Base), nil
	},
	KindBatcher: func(p Params) (network.Network, error) {
		if p.Size < 1 {
			return nil, network.InvalidArgument("size must be positive, got %d", p.Size)
		}
		return BatcherSort(p.Size).Shift(p.Base), nil
	},
	KindBatcherMerge: func(p Params) (network.Network, error) {
		return BatcherMerge(p.Base, p.M, p.N)
	},
}

// Kinds returns the registered generator families in sorted order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, len(generators))
	for k := range generators {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// ByName builds a network of the given family.
func ByName(kind Kind, p Params) (network.Network, error) {
	g, ok := generators[kind]
	if !ok {
		s := make([]string, 0, len(generators))
		for _, k := range Kinds() {
			s = append(s, string(k))
		}
		return nil, fmt.Errorf("unknown network kind %q, expected one of %s", kind, strings.Join(s, ", "))
	}
	return g(p)
}
