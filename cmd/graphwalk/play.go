package main

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/wesen/graphwalk/internal/game"
	"github.com/wesen/graphwalk/internal/logging"
	"github.com/wesen/graphwalk/internal/metrics"
	"github.com/wesen/graphwalk/internal/tui"
	"go.uber.org/zap"
)

func newPlayCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Play interactively in the terminal (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.loadConfig(cmd)
			if err != nil {
				return err
			}
			log, err := logging.New(cfg.Log)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			surface := tui.NewSurface()
			rec := metrics.New(prometheus.NewRegistry())
			opts := append(seedOption(cfg),
				game.WithLogger(log),
				game.WithSurface(surface),
				game.WithRecorder(rec),
			)
			g := game.New(opts...)

			model := tui.New(g, surface, cfg.Params, cfg.UI, log.Named("tui"))
			if _, err := tea.NewProgram(model).Run(); err != nil {
				log.Error("ui exited", zap.Error(err))
				return fmt.Errorf("run ui: %w", err)
			}
			log.Info("session ended", zap.String("round", g.Round().String()))
			logMetrics(log, rec)
			return nil
		},
	}
}

// logMetrics dumps the session's counters into the log in the Prometheus
// text format.
func logMetrics(log *zap.Logger, rec *metrics.Metrics) {
	var buf strings.Builder
	if err := rec.WriteText(&buf); err != nil {
		log.Warn("metrics snapshot failed", zap.Error(err))
		return
	}
	log.Info("session metrics", zap.String("metrics", buf.String()))
}
