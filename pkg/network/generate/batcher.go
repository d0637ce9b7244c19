package generate

import (
	"github.com/sortingnets/netcert/pkg/network"
)

// BatcherMerge returns Batcher's odd-even (m, n) merging network. It
// merges the non-decreasing run on channels [base, base+m) with the
// non-decreasing run on [base+m, base+m+n) so that all m+n channels end
// up non-decreasing. Both run lengths must be positive.
//
// The network is the power-of-two odd-even merge over 2p positions,
// p >= max(m, n), with the first run right-aligned in the lower half and
// the second left-aligned in the upper half. The unused lower positions
// behave as -inf and the unused upper ones as +inf: a comparator touching
// them never exchanges anything, so those comparators are dropped.
func BatcherMerge(base, m, n int) (network.Network, error) {
	if m <= 0 || n <= 0 {
		return nil, network.InvalidArgument("run lengths must be positive integers, got m=%d n=%d", m, n)
	}
	if base < 0 {
		return nil, network.InvalidArgument("base channel must be non-negative, got %d", base)
	}
	var out network.Network
	batcherMerge(&out, base, m, n)
	return out, nil
}

func batcherMerge(out *network.Network, base, m, n int) {
	p := 1
	for p < m || p < n {
		p *= 2
	}
	lo, hi := p-m, p+n
	channel := func(pos int) (int, bool) {
		if pos < lo || pos >= hi {
			return 0, false
		}
		return base + pos - lo, true
	}
	emit := func(i, j int) {
		a, ok := channel(i)
		if !ok {
			return
		}
		b, ok := channel(j)
		if !ok {
			return
		}
		*out = append(*out, network.C(a, b))
	}
	oddEvenMerge(emit, 0, 2*p-1, 1)
}

// oddEvenMerge emits the comparators merging the two sorted halves of
// positions [lo, hi], looking only at every r-th position.
func oddEvenMerge(emit func(i, j int), lo, hi, r int) {
	step := r * 2
	if step >= hi-lo {
		emit(lo, lo+r)
		return
	}
	oddEvenMerge(emit, lo, hi, step)
	oddEvenMerge(emit, lo+r, hi, step)
	for i := lo + r; i < hi-r; i += step {
		emit(i, i+r)
	}
}

// BatcherSort returns Batcher's odd-even merge sort for channels
// [0, size).
func BatcherSort(size int) network.Network {
	var out network.Network
	batcherSort(&out, 0, size)
	return out
}

func batcherSort(out *network.Network, base, size int) {
	if size <= 1 {
		return
	}
	m := size / 2
	batcherSort(out, base, m)
	batcherSort(out, base+m, size-m)
	batcherMerge(out, base, m, size-m)
}
