package main

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/wesen/graphwalk/internal/game"
	"github.com/wesen/graphwalk/internal/logging"
	"github.com/wesen/graphwalk/internal/metrics"
	"github.com/wesen/graphwalk/pkg/paths"
	"github.com/wesen/graphwalk/pkg/session"
	"go.uber.org/zap"
)

func newStatsCmd(f *flags) *cobra.Command {
	var rounds int
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Generate many rounds, walk each fastest path and print metrics",
		Long: `Generates the configured number of rounds with the current parameters.
Each round is walked along one shortest path, so the walk counters line up
with the reachable rounds. Metrics are printed in the Prometheus text
format.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("rounds") {
				cfg.Stats.Rounds = rounds
				if err := cfg.Validate(); err != nil {
					return err
				}
			}
			log, err := logging.New(cfg.Log)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			rec := metrics.New(prometheus.NewRegistry())
			g := game.New(append(seedOption(cfg), game.WithLogger(log), game.WithRecorder(rec))...)

			unreachable := 0
			for i := 0; i < cfg.Stats.Rounds; i++ {
				g.Reset()
				if _, err := g.Generate(cfg.Params); err != nil {
					return fmt.Errorf("round %d: %w", i+1, err)
				}
				ok, err := walkFastest(g)
				if err != nil {
					return fmt.Errorf("round %d: %w", i+1, err)
				}
				if !ok {
					unreachable++
				}
			}
			log.Info("stats finished", zap.Int("rounds", cfg.Stats.Rounds), zap.Int("unreachable", unreachable))
			return rec.WriteText(cmd.OutOrStdout())
		},
	}
	cmd.Flags().IntVar(&rounds, "rounds", 0, "Number of rounds (default from config)")
	return cmd
}

// walkFastest clicks along one shortest path. It reports false when the
// sink cannot be reached.
func walkFastest(g *game.Game) (bool, error) {
	path, err := g.FastestPath()
	if errors.Is(err, paths.ErrUnreachable) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	for _, id := range path[1:] {
		if !g.Click(session.NodeTarget(id), true) {
			return false, fmt.Errorf("walk rejected step to node %d", id)
		}
	}
	return g.Complete(), nil
}
