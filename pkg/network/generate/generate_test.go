package generate

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sortingnets/netcert/pkg/network"
)

// allBits calls f with every 0/1 vector of length n.
func allBits(n int, f func(bits []bool)) {
	bits := make([]bool, n)
	for v := 0; v < 1<<n; v++ {
		for i := range bits {
			bits[i] = v&(1<<i) != 0
		}
		f(bits)
	}
}

func sortsAll(t *testing.T, net network.Network, n int) {
	t.Helper()
	allBits(n, func(bits []bool) {
		if !net.Sorts(bits) {
			t.Fatalf("%s does not sort %s", net, network.FormatBits(bits))
		}
	})
}

func TestGreatestPowerOfTwoBelow(t *testing.T) {
	for n, want := range map[int]int{0: 1, 1: 1, 2: 1, 3: 2, 4: 2, 5: 4, 8: 4, 9: 8, 1000: 512} {
		assert.Equal(t, want, GreatestPowerOfTwoBelow(n), "n=%d", n)
	}
}

func TestBitonicSortFour(t *testing.T) {
	net := Bitonic(4)
	assert.Equal(t, network.Network{
		network.C(1, 0), network.C(2, 3),
		network.C(0, 2), network.C(1, 3),
		network.C(0, 1), network.C(2, 3),
	}, net)
	assert.Equal(t, []int{0, 0, 1, 1}, net.Apply([]int{1, 0, 1, 0}))
	assert.Equal(t, 3, Depth(net))
}

func TestBitonicSort(t *testing.T) {
	assert.Empty(t, Bitonic(1))
	for n := 2; n <= 12; n++ {
		t.Run(fmt.Sprint(n), func(t *testing.T) {
			net := Bitonic(n)
			channels, err := network.Check(net)
			require.NoError(t, err)
			assert.Equal(t, n, channels)
			sortsAll(t, net, n)
		})
	}
}

func TestBitonicSortDescendingWithBase(t *testing.T) {
	net := BitonicSort(5, 2, false)
	for _, c := range net {
		assert.True(t, c.Low >= 2 && c.High >= 2 && c.Low < 7 && c.High < 7, "%s outside [2, 7)", c)
	}
	got := net.Apply([]int{9, 9, 3, 1, 4, 1, 5})
	assert.Equal(t, []int{9, 9, 5, 4, 3, 1, 1}, got)
}

func TestBitonicMerge(t *testing.T) {
	for n := 2; n <= 11; n++ {
		t.Run(fmt.Sprint(n), func(t *testing.T) {
			net := BitonicMerge(0, n, true)
			half := n / 2
			// A non-increasing run followed by a non-decreasing run is
			// bitonic, which is what the merger is built for.
			for a := 0; a <= half; a++ {
				for b := 0; b <= n-half; b++ {
					in := make([]int, n)
					for i := 0; i < a; i++ {
						in[i] = 1
					}
					for i := n - b; i < n; i++ {
						in[i] = 1
					}
					out := net.Apply(in)
					for i := 0; i+1 < n; i++ {
						require.LessOrEqual(t, out[i], out[i+1], "input %v output %v", in, out)
					}
				}
			}
		})
	}
}

func TestBitonicPowerOfTwo(t *testing.T) {
	for _, n := range []int{1, 2, 4, 8} {
		net, err := BitonicPowerOfTwo(n)
		require.NoError(t, err)
		sortsAll(t, net, n)
	}
	_, err := BitonicPowerOfTwo(6)
	assert.True(t, network.IsInvalidNetwork(err))
	_, err = BitonicPowerOfTwo(0)
	assert.True(t, network.IsInvalidNetwork(err))
}

func TestBatcherMerge(t *testing.T) {
	for m := 1; m <= 6; m++ {
		for n := 1; n <= 6; n++ {
			t.Run(fmt.Sprintf("%dx%d", m, n), func(t *testing.T) {
				net, err := BatcherMerge(0, m, n)
				require.NoError(t, err)
				channels, err := network.Check(net)
				require.NoError(t, err)
				assert.Equal(t, m+n, channels)
				for a := 0; a <= m; a++ {
					for b := 0; b <= n; b++ {
						// a ones at the top of the first run, b at the
						// top of the second.
						bits := make([]bool, m+n)
						for i := m - a; i < m; i++ {
							bits[i] = true
						}
						for i := m + n - b; i < m+n; i++ {
							bits[i] = true
						}
						require.True(t, net.Sorts(bits), "%s", network.FormatBits(bits))
					}
				}
			})
		}
	}
}

func TestBatcherMergeRejectsBadRuns(t *testing.T) {
	for _, tt := range [][3]int{{0, 0, 1}, {0, 1, 0}, {0, -2, 3}, {-1, 1, 1}} {
		net, err := BatcherMerge(tt[0], tt[1], tt[2])
		assert.Nil(t, net)
		assert.True(t, network.IsInvalidNetwork(err), "%v", tt)
	}
}

func TestBatcherMergeWithBase(t *testing.T) {
	net, err := BatcherMerge(3, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0, 0, 1, 2, 3, 4}, net.Apply([]int{0, 0, 0, 1, 3, 2, 4}))
}

func TestBatcherSort(t *testing.T) {
	for n := 1; n <= 12; n++ {
		sortsAll(t, BatcherSort(n), n)
	}
}

func TestGroup(t *testing.T) {
	for _, net := range []network.Network{
		nil,
		Bitonic(7),
		BatcherSort(9),
		{network.C(0, 1), network.C(1, 0), network.C(2, 3)},
	} {
		layers := Group(net)

		var joined network.Network
		for i, layer := range layers {
			require.NotEmpty(t, layer)
			seen := map[int]bool{}
			for _, c := range layer {
				assert.False(t, seen[c.Low] || seen[c.High], "layer %d reuses a channel of %s", i, c)
				seen[c.Low], seen[c.High] = true, true
			}
			if i > 0 {
				// Greedy: each layer starts because its first
				// comparator clashed with the layer before.
				first := layer[0]
				clash := false
				for _, c := range layers[i-1] {
					clash = clash || c.Touches(first.Low) || c.Touches(first.High)
				}
				assert.True(t, clash, "layer %d could have been merged into %d", i, i-1)
			}
			joined = append(joined, layer...)
		}
		if diff := cmp.Diff(net, joined, cmpopts.EquateEmpty()); diff != "" {
			t.Errorf("concatenated layers differ from the network (-want +got):\n%s", diff)
		}
	}
}

func TestGroupIsRestartable(t *testing.T) {
	net := Bitonic(6)
	assert.Equal(t, Group(net), Group(net))
}

func TestByName(t *testing.T) {
	net, err := ByName(KindBatcherMerge, Params{M: 2, N: 3})
	require.NoError(t, err)
	want, _ := BatcherMerge(0, 2, 3)
	assert.Equal(t, want, net)

	net, err = ByName(KindBitonic, Params{Size: 4})
	require.NoError(t, err)
	assert.Equal(t, Bitonic(4), net)

	_, err = ByName(KindBitonic, Params{})
	assert.True(t, network.IsInvalidNetwork(err))

	_, err = ByName("shell", Params{Size: 4})
	assert.Error(t, err)
	assert.Len(t, Kinds(), 5)
}
