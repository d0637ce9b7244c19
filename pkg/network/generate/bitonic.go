package generate

import (
	"github.com/sortingnets/netcert/pkg/network"
)

// GreatestPowerOfTwoBelow returns the largest power of two strictly
// below n, or 1 when n <= 2. It is where a bitonic sequence of n
// channels is split, which is lopsided when n is not a power of two.
func GreatestPowerOfTwoBelow(n int) int {
	p := 1
	for p*2 < n {
		p *= 2
	}
	return p
}

// BitonicMerge returns the comparators that sort a bitonic sequence held
// on channels [base, base+size). With ascending set the result is
// non-decreasing, otherwise non-increasing.
func BitonicMerge(base, size int, ascending bool) network.Network {
	var out network.Network
	bitonicMerge(&out, base, size, ascending)
	return out
}

func bitonicMerge(out *network.Network, base, size int, ascending bool) {
	if size <= 1 {
		return
	}
	m := GreatestPowerOfTwoBelow(size)
	for i := base; i < base+size-m; i++ {
		if ascending {
			*out = append(*out, network.C(i, i+m))
		} else {
			*out = append(*out, network.C(i+m, i))
		}
	}
	bitonicMerge(out, base, m, ascending)
	bitonicMerge(out, base+m, size-m, ascending)
}

// BitonicSort returns a sorting network for channels [base, base+size).
// The lower half is sorted against the requested direction and the upper
// half along it, which makes the whole range bitonic before the final
// merge. Works for any size, not only powers of two.
func BitonicSort(size, base int, ascending bool) network.Network {
	var out network.Network
	bitonicSort(&out, size, base, ascending)
	return out
}

func bitonicSort(out *network.Network, size, base int, ascending bool) {
	if size <= 1 {
		return
	}
	m := size / 2
	bitonicSort(out, m, base, !ascending)
	bitonicSort(out, size-m, base+m, ascending)
	bitonicMerge(out, base, size, ascending)
}

// Bitonic is BitonicSort(size, 0, true).
func Bitonic(size int) network.Network {
	return BitonicSort(size, 0, true)
}

// BitonicPowerOfTwo returns the classic iterative bitonic sorter. size
// must be a power of two.
func BitonicPowerOfTwo(size int) (network.Network, error) {
	if size < 1 || size&(size-1) != 0 {
		return nil, network.InvalidArgument("size must be a positive power of two, got %d", size)
	}
	var out network.Network
	for k := 2; k <= size; k *= 2 {
		for j := k / 2; j > 0; j /= 2 {
			for i := 0; i < size; i++ {
				l := i ^ j
				if l <= i {
					continue
				}
				if i&k == 0 {
					out = append(out, network.C(i, l))
				} else {
					out = append(out, network.C(l, i))
				}
			}
		}
	}
	return out, nil
}
