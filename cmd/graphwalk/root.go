package main

import (
	"github.com/spf13/cobra"
	"github.com/wesen/graphwalk/internal/config"
	"github.com/wesen/graphwalk/internal/game"
	"github.com/wesen/graphwalk/pkg/generator"
)

// flags holds the persistent flag values. Only flags the user set
// override the loaded config.
type flags struct {
	configPath string
	seed       int64
	nodes      int
	minDegree  generator.Degree
	maxDegree  generator.Degree
	moat       int
	crossings  int
	radius     float64
	spread     float64
	directed   bool
	logLevel   string
	logFile    string
}

func newRootCmd() *cobra.Command {
	f := &flags{}
	root := &cobra.Command{
		Use:           "graphwalk",
		Short:         "Find the shortest walk through a random grid graph",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	pf := root.PersistentFlags()
	pf.StringVar(&f.configPath, "config", "graphwalk.yaml", "Path to the YAML config file")
	pf.Int64Var(&f.seed, "seed", 0, "Random seed (0 picks one from the clock)")
	pf.IntVarP(&f.nodes, "nodes", "n", 0, "Number of nodes")
	pf.Var(&f.minDegree, "min-degree", "Minimum degree: count, fraction of nodes, or inf")
	pf.Var(&f.maxDegree, "max-degree", "Maximum degree: count, fraction of nodes, or inf")
	pf.IntVar(&f.moat, "moat", 0, "Minimum Chebyshev gap between nodes")
	pf.IntVar(&f.crossings, "crossings", 0, "Maximum crossings per edge (-1 for no limit)")
	pf.Float64Var(&f.radius, "radius", 0, "Maximum edge length (0 derives it from the node count)")
	pf.Float64Var(&f.spread, "spread", 0, "Extra spacing factor for the placement square")
	pf.BoolVar(&f.directed, "directed", false, "Generate a directed graph")
	pf.StringVar(&f.logLevel, "log-level", "", "Log level: debug, info, warn or error")
	pf.StringVar(&f.logFile, "log-file", "", "Write logs to this file")

	play := newPlayCmd(f)
	root.RunE = play.RunE
	root.AddCommand(play, newGenerateCmd(f), newStatsCmd(f))
	return root
}

// loadConfig reads the config file and applies the flags the user set.
func (f *flags) loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return cfg, err
	}
	set := cmd.Flags().Changed
	if set("seed") {
		cfg.Seed = f.seed
	}
	if set("nodes") {
		cfg.Params.NodeCount = f.nodes
	}
	if set("min-degree") {
		cfg.Params.MinDegree = f.minDegree
	}
	if set("max-degree") {
		cfg.Params.MaxDegree = f.maxDegree
	}
	if set("moat") {
		cfg.Params.Moat = f.moat
	}
	if set("crossings") {
		cfg.Params.MaxCrossings = f.crossings
	}
	if set("radius") {
		cfg.Params.ConnectRadius = f.radius
	}
	if set("spread") {
		cfg.Params.Spread = f.spread
	}
	if set("directed") {
		cfg.Params.Directed = f.directed
	}
	if set("log-level") {
		cfg.Log.Level = f.logLevel
	}
	if set("log-file") {
		cfg.Log.File = f.logFile
	}
	return cfg, cfg.Validate()
}

// seedOption fixes the game's seed when the config names one.
func seedOption(cfg config.Config) []game.Option {
	if cfg.Seed == 0 {
		return nil
	}
	return []game.Option{game.WithSeed(cfg.Seed)}
}
