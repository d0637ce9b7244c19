package main

import (
	"bytes"
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/ghodss/yaml"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sortingnets/netcert/pkg/network"
	"github.com/sortingnets/netcert/pkg/network/generate"
)

func run(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := execute(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func writeNetwork(t *testing.T, net network.Network) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, network.Write(&buf, net, network.FormatYAML))
	path := filepath.Join(t.TempDir(), "net.yaml")
	require.NoError(t, ioutil.WriteFile(path, buf.Bytes(), 0644))
	return path
}

func TestGenerate(t *testing.T) {
	code, stdout, _ := run("generate", "--kind", "bitonic", "--size", "4", "-o", "json")
	require.Equal(t, exitGood, code)
	assert.Equal(t, "[[1,0],[2,3],[0,2],[1,3],[0,1],[2,3]]\n", stdout)

	code, stdout, _ = run("generate", "--kind", "batcher", "--size", "6")
	require.Equal(t, exitGood, code)
	net, err := network.Decode([]byte(stdout))
	require.NoError(t, err)
	assert.Equal(t, generate.BatcherSort(6), net)

	code, stdout, _ = run("generate", "--kind", "bitonic", "--size", "4", "--layers")
	require.Equal(t, exitGood, code)
	var layers struct {
		Depth  int     `json:"depth"`
		Layers [][][]int `json:"layers"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &layers))
	assert.Equal(t, 3, layers.Depth)

	code, _, stderr := run("generate", "--kind", "shell", "--size", "4")
	assert.Equal(t, exitError, code)
	assert.Contains(t, stderr, "unknown network kind")

	code, _, _ = run("generate", "--size", "4")
	assert.Equal(t, exitError, code)
}

func TestGroup(t *testing.T) {
	path := writeNetwork(t, network.Network{network.C(0, 1), network.C(2, 3), network.C(1, 2)})
	code, stdout, _ := run("group", "-f", path)
	require.Equal(t, exitGood, code)

	var layers struct {
		Depth int `json:"depth"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &layers))
	assert.Equal(t, 2, layers.Depth)
}

func TestCertify(t *testing.T) {
	type tc struct {
		Name     string
		Args     []string
		Code     int
		Verdict  string
		Contains string
	}

	gap := writeNetwork(t, network.Network{network.C(0, 2)})

	for _, tt := range []tc{
		{
			Name:    "bitonic sorts",
			Args:    []string{"--kind", "bitonic", "--size", "7"},
			Code:    exitGood,
			Verdict: "good",
		},
		{
			Name:    "gophersat agrees",
			Args:    []string{"--kind", "batcher", "--size", "7", "--solver", "gophersat"},
			Code:    exitGood,
			Verdict: "good",
		},
		{
			Name:    "flipped comparator",
			Args:    []string{"--kind", "bitonic", "--size", "4", "--flip", "5"},
			Code:    exitNoGood,
			Verdict: "no-good",
		},
		{
			Name:    "batcher merger",
			Args:    []string{"--kind", "batcher-merge", "--m", "3", "--n", "5"},
			Code:    exitGood,
			Verdict: "good",
		},
		{
			Name:    "bitonic merger",
			Args:    []string{"--kind", "bitonic-merge", "--size", "8", "--merger", "4", "--first-descending"},
			Code:    exitGood,
			Verdict: "good",
		},
		{
			Name:     "channel gap",
			Args:     []string{"-f", gap},
			Code:     exitError,
			Contains: "channel",
		},
		{
			Name:    "channel gap allowed",
			Args:    []string{"-f", gap, "--allow-gaps"},
			Code:    exitNoGood,
			Verdict: "no-good",
		},
		{
			Name:     "proof from an in-process solver",
			Args:     []string{"--kind", "bitonic", "--size", "4", "--proof", filepath.Join(t.TempDir(), "proof.drat")},
			Code:     exitError,
			Contains: "proof",
		},
		{
			Name:     "unknown solver",
			Args:     []string{"--kind", "bitonic", "--size", "4", "--solver", "minisat"},
			Code:     exitError,
			Contains: "minisat",
		},
		{
			Name:     "flip out of range",
			Args:     []string{"--kind", "bitonic", "--size", "4", "--flip", "6"},
			Code:     exitError,
			Contains: "flip",
		},
	} {
		t.Run(tt.Name, func(t *testing.T) {
			code, stdout, stderr := run(append([]string{"certify"}, tt.Args...)...)
			assert.Equal(t, tt.Code, code, stderr)
			if tt.Contains != "" {
				assert.Contains(t, stderr, tt.Contains)
			}
			if tt.Verdict == "" {
				return
			}
			var r report
			require.NoError(t, yaml.Unmarshal([]byte(stdout), &r))
			assert.Equal(t, tt.Verdict, r.Verdict)
			if tt.Verdict == "no-good" {
				assert.Len(t, r.Counterexample, r.Channels)
			} else {
				assert.Empty(t, r.Counterexample)
			}
		})
	}
}

func TestCertifyRange(t *testing.T) {
	code, stdout, stderr := run("certify-range", "--kind", "bitonic", "--from", "2", "--to", "6", "--jobs", "2", "-o", "json")
	require.Equal(t, exitGood, code, stderr)

	var reports []report
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &reports))
	require.Len(t, reports, 5)
	for i, r := range reports {
		assert.Equal(t, i+2, r.Size)
		assert.Equal(t, i+2, r.Channels)
		assert.Equal(t, "good", r.Verdict)
	}

	code, _, _ = run("certify-range", "--kind", "batcher-merge")
	assert.Equal(t, exitError, code)

	code, _, _ = run("certify-range", "--from", "5", "--to", "3")
	assert.Equal(t, exitError, code)
}

func TestMetricsDump(t *testing.T) {
	code, _, stderr := run("--metrics", "certify", "--kind", "bitonic", "--size", "5")
	require.Equal(t, exitGood, code)

	var p expfmt.TextParser
	families, err := p.TextToMetricFamilies(bytes.NewReader(metricLines(stderr)))
	require.NoError(t, err)
	require.Contains(t, families, "netcert_certifications_total")
	require.Contains(t, families, "netcert_solves_total")

	var certifications *dto.MetricFamily = families["netcert_certifications_total"]
	assert.Equal(t, dto.MetricType_COUNTER, certifications.GetType())

	var good float64
	for _, m := range certifications.Metric {
		for _, l := range m.GetLabel() {
			if l.GetName() == "verdict" && l.GetValue() == "good" {
				good = m.GetCounter().GetValue()
			}
		}
	}
	assert.True(t, good >= 1)
}

func durationCount(t *testing.T, stderr, outcome string) uint64 {
	t.Helper()
	var p expfmt.TextParser
	families, err := p.TextToMetricFamilies(bytes.NewReader(metricLines(stderr)))
	require.NoError(t, err)
	family, ok := families["netcert_certification_duration_seconds"]
	if !ok {
		return 0
	}
	for _, m := range family.Metric {
		for _, l := range m.GetLabel() {
			if l.GetName() == "outcome" && l.GetValue() == outcome {
				return m.GetSummary().GetSampleCount()
			}
		}
	}
	return 0
}

func TestCertifyRangeRecordsDurations(t *testing.T) {
	code, _, stderr := run("--metrics", "version")
	require.Equal(t, exitGood, code)
	succeeded, failed := durationCount(t, stderr, "succeeded"), durationCount(t, stderr, "failed")

	code, _, stderr = run("--metrics", "certify-range", "--from", "2", "--to", "4")
	require.Equal(t, exitGood, code, stderr)
	assert.Equal(t, succeeded+3, durationCount(t, stderr, "succeeded"))
	assert.Equal(t, failed, durationCount(t, stderr, "failed"))

	code, _, stderr = run("--metrics", "certify-range", "--from", "2", "--to", "4", "--solver", "minisat")
	require.Equal(t, exitError, code)
	assert.Equal(t, failed+3, durationCount(t, stderr, "failed"))
}

// metricLines drops log and error lines from stderr, keeping the
// exposition text.
func metricLines(stderr string) []byte {
	var out bytes.Buffer
	for _, line := range bytes.Split([]byte(stderr), []byte("\n")) {
		if bytes.HasPrefix(line, []byte("time=")) || bytes.HasPrefix(line, []byte("Error:")) || len(line) == 0 {
			continue
		}
		out.Write(line)
		out.WriteByte('\n')
	}
	return out.Bytes()
}

func TestVersion(t *testing.T) {
	code, stdout, _ := run("version")
	require.Equal(t, exitGood, code)
	assert.Contains(t, stdout, "netcert version")
}
