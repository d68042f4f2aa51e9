package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/wesen/graphwalk/internal/game"
	"github.com/wesen/graphwalk/internal/logging"
	"github.com/wesen/graphwalk/pkg/graphmodel"
	"github.com/wesen/graphwalk/pkg/paths"
	"gopkg.in/yaml.v3"
)

type nodeDump struct {
	ID       int `yaml:"id"`
	X        int `yaml:"x"`
	Y        int `yaml:"y"`
	Distance int `yaml:"distance"`
}

type edgeDump struct {
	ID        int `yaml:"id"`
	Tail      int `yaml:"tail"`
	Head      int `yaml:"head"`
	Crossings int `yaml:"crossings"`
}

// graphDump is the YAML form of one generated round.
type graphDump struct {
	Round    string     `yaml:"round"`
	Directed bool       `yaml:"directed"`
	Source   int        `yaml:"source"`
	Sink     int        `yaml:"sink"`
	Shortest int        `yaml:"shortest"`
	Nodes    []nodeDump `yaml:"nodes"`
	Edges    []edgeDump `yaml:"edges"`
	Paths    [][]int    `yaml:"shortest_paths,omitempty,flow"`
}

func newGenerateCmd(f *flags) *cobra.Command {
	var (
		format    string
		showPaths bool
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate one graph and print it without the UI",
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "text" && format != "yaml" {
				return fmt.Errorf("unknown format %q (want text or yaml)", format)
			}
			cfg, err := f.loadConfig(cmd)
			if err != nil {
				return err
			}
			log, err := logging.New(cfg.Log)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			g := game.New(append(seedOption(cfg), game.WithLogger(log))...)
			graph, err := g.Generate(cfg.Params)
			if err != nil {
				return err
			}
			var all [][]int
			if showPaths {
				all, err = g.AllShortestPaths()
				if err != nil && !errors.Is(err, paths.ErrUnreachable) {
					return err
				}
			}

			out := cmd.OutOrStdout()
			if format == "yaml" {
				return writeYAML(out, g, graph, all)
			}
			return writeSummary(out, g, graph, all)
		},
	}
	cmd.Flags().StringVarP(&format, "output", "o", "text", "Output format: text or yaml")
	cmd.Flags().BoolVar(&showPaths, "paths", false, "Also list every shortest source-sink path")
	return cmd
}

func writeSummary(w io.Writer, g *game.Game, graph *graphmodel.Graph, all [][]int) error {
	src, sink := graph.Node(graph.Source()), graph.Node(graph.Sink())
	kind := "undirected"
	if graph.Directed() {
		kind = "directed"
	}
	crossed := 0
	for _, e := range graph.Edges() {
		if e.Crossings > 0 {
			crossed++
		}
	}
	fmt.Fprintf(w, "round     %s\n", g.Round())
	fmt.Fprintf(w, "graph     %d nodes, %d edges, %s\n", graph.NodeCount(), graph.EdgeCount(), kind)
	fmt.Fprintf(w, "crossed   %d edges\n", crossed)
	fmt.Fprintf(w, "source    %d at (%d,%d)\n", src.ID, src.Pos.X, src.Pos.Y)
	fmt.Fprintf(w, "sink      %d at (%d,%d)\n", sink.ID, sink.Pos.X, sink.Pos.Y)
	if d := g.ShortestDistance(); d >= 0 {
		fmt.Fprintf(w, "shortest  %d steps\n", d)
	} else {
		fmt.Fprintln(w, "shortest  unreachable")
	}
	if len(all) > 0 {
		fmt.Fprintf(w, "paths     %d\n", len(all))
		for _, p := range all {
			fmt.Fprintf(w, "  %v\n", p)
		}
	}
	return nil
}

func writeYAML(w io.Writer, g *game.Game, graph *graphmodel.Graph, all [][]int) error {
	d := graphDump{
		Round:    g.Round().String(),
		Directed: graph.Directed(),
		Source:   graph.Source(),
		Sink:     graph.Sink(),
		Shortest: g.ShortestDistance(),
		Paths:    all,
	}
	for _, n := range graph.Nodes() {
		d.Nodes = append(d.Nodes, nodeDump{ID: n.ID, X: n.Pos.X, Y: n.Pos.Y, Distance: n.Distance})
	}
	for _, e := range graph.Edges() {
		d.Edges = append(d.Edges, edgeDump{ID: e.ID, Tail: e.Tail, Head: e.Head, Crossings: e.Crossings})
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return err
	}
	return enc.Close()
}
