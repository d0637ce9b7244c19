package network

// Apply runs the network over a copy of values and returns the result.
// values must have at least Channels() entries.
func (n Network) Apply(values []int) []int {
	out := make([]int, len(values))
	copy(out, values)
	for _, c := range n {
		if out[c.Low] > out[c.High] {
			out[c.Low], out[c.High] = out[c.High], out[c.Low]
		}
	}
	return out
}

// ApplyBits is Apply over a 0/1 input, with false ordered before true.
func (n Network) ApplyBits(bits []bool) []bool {
	out := make([]bool, len(bits))
	copy(out, bits)
	for _, c := range n {
		if out[c.Low] && !out[c.High] {
			out[c.Low], out[c.High] = false, true
		}
	}
	return out
}

// Sorts reports whether the network leaves bits in non-decreasing order.
func (n Network) Sorts(bits []bool) bool {
	return IsSorted(n.ApplyBits(bits))
}

// IsSorted reports whether no true precedes a false in bits.
func IsSorted(bits []bool) bool {
	for i := 0; i+1 < len(bits); i++ {
		if bits[i] && !bits[i+1] {
			return false
		}
	}
	return true
}

// FormatBits renders bits as a string of 0s and 1s.
func FormatBits(bits []bool) string {
	b := make([]byte, len(bits))
	for i, v := range bits {
		if v {
			b[i] = '1'
		} else {
			b[i] = '0'
		}
	}
	return string(b)
}
