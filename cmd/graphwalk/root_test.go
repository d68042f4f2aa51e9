package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wesen/graphwalk/internal/config"
	"github.com/wesen/graphwalk/internal/metrics"
	"github.com/wesen/graphwalk/pkg/generator"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"gopkg.in/yaml.v3"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cfg := filepath.Join(t.TempDir(), "missing.yaml")
	cmd.SetArgs(append(args, "--config", cfg))
	err := cmd.Execute()
	return out.String(), err
}

func TestGenerateYAML(t *testing.T) {
	out, err := run(t, "generate", "--seed", "5", "--nodes", "12", "--moat", "1", "-o", "yaml")
	require.NoError(t, err)

	var d graphDump
	require.NoError(t, yaml.Unmarshal([]byte(out), &d))
	assert.Len(t, d.Nodes, 12)
	assert.NotEqual(t, d.Source, d.Sink)
	assert.Equal(t, 0, d.Nodes[d.Source].Distance)
	for _, e := range d.Edges {
		assert.Zero(t, e.Crossings, "default crossing limit is zero")
	}
}

func TestGenerateReproducible(t *testing.T) {
	a, err := run(t, "generate", "--seed", "9", "--nodes", "20", "-o", "yaml")
	require.NoError(t, err)
	b, err := run(t, "generate", "--seed", "9", "--nodes", "20", "-o", "yaml")
	require.NoError(t, err)

	var da, db graphDump
	require.NoError(t, yaml.Unmarshal([]byte(a), &da))
	require.NoError(t, yaml.Unmarshal([]byte(b), &db))
	assert.Equal(t, da.Nodes, db.Nodes)
	assert.Equal(t, da.Edges, db.Edges)
}

func TestGenerateText(t *testing.T) {
	out, err := run(t, "generate", "--seed", "3", "--nodes", "10", "--max-degree", "inf",
		"--crossings=-1", "--radius", "100", "--paths")
	require.NoError(t, err)
	assert.Contains(t, out, "graph     10 nodes")
	assert.Contains(t, out, "source    ")
	assert.Contains(t, out, "shortest  ")
}

func TestGenerateBadFormat(t *testing.T) {
	_, err := run(t, "generate", "-o", "json")
	require.ErrorContains(t, err, "unknown format")
}

func TestStats(t *testing.T) {
	out, err := run(t, "stats", "--seed", "2", "--nodes", "15", "--rounds", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "graphwalk_graph_nodes_count 3")
	assert.Contains(t, out, "# TYPE graphwalk_edges_added_total counter")
}

func TestStatsRejectsBadRounds(t *testing.T) {
	_, err := run(t, "stats", "--rounds", "0")
	require.Error(t, err)
}

func TestFlagsOverrideConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graphwalk.yaml")
	saved := config.Default()
	saved.Params.NodeCount = 40
	saved.Params.Moat = 3
	require.NoError(t, config.Save(path, saved))

	f := &flags{configPath: path}
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().IntVar(&f.nodes, "nodes", 0, "")
	cmd.Flags().IntVar(&f.moat, "moat", 0, "")
	cmd.Flags().Var(&f.maxDegree, "max-degree", "")
	require.NoError(t, cmd.Flags().Parse([]string{"--nodes", "12", "--max-degree", "inf"}))

	cfg, err := f.loadConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Params.NodeCount, "set flag wins")
	assert.Equal(t, 3, cfg.Params.Moat, "unset flag keeps the file value")
	assert.Equal(t, generator.Degree(generator.Unlimited), cfg.Params.MaxDegree)
}

func TestFlagsValidate(t *testing.T) {
	f := &flags{configPath: filepath.Join(t.TempDir(), "none.yaml")}
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().StringVar(&f.logLevel, "log-level", "", "")
	require.NoError(t, cmd.Flags().Parse([]string{"--log-level", "loud"}))
	_, err := f.loadConfig(cmd)
	require.Error(t, err)
}

func TestLogMetrics(t *testing.T) {
	rec := metrics.New(nil)
	rec.WalkCompleted(5, 4)

	core, logs := observer.New(zap.InfoLevel)
	logMetrics(zap.New(core), rec)

	entries := logs.FilterMessage("session metrics").All()
	require.Len(t, entries, 1)
	text, ok := entries[0].ContextMap()["metrics"].(string)
	require.True(t, ok)
	assert.Contains(t, text, `graphwalk_walks_completed_total{result="longer"} 1`)
}
