package cli

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/gogpu/graphview"
)

var demoPalette = []string{"#617db4", "#668f3c", "#c6583e", "#b956af", "#e0a526"}

// demoOpts controls the generated demo graph.
type demoOpts struct {
	nodes int
	edges int
	seed  uint64
}

func newDemoCmd() *cobra.Command {
	opts := defaultRenderOpts()
	opts.out = "demo.png"
	demo := demoOpts{nodes: 200, edges: 400, seed: 1}

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Render a generated random graph to PNG",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := demoGraph(demo)
			if err != nil {
				return err
			}
			return runRender(cmd.Context(), g, opts)
		},
	}
	cmd.Flags().IntVar(&demo.nodes, "nodes", demo.nodes, "number of generated nodes")
	cmd.Flags().IntVar(&demo.edges, "edges", demo.edges, "number of generated edges")
	cmd.Flags().Uint64Var(&demo.seed, "seed", demo.seed, "random seed")
	opts.bind(cmd)
	return cmd
}

// demoGraph lays nodes out on a noisy spiral and connects random pairs.
// The same options always produce the same graph.
func demoGraph(o demoOpts) (*graphview.MemoryGraph, error) {
	if o.nodes < 1 || o.edges < 0 {
		return nil, errors.Wrapf(graphview.ErrInvalidOptions, "demo graph with %d nodes and %d edges", o.nodes, o.edges)
	}
	rng := rand.New(rand.NewPCG(o.seed, o.seed^0x9e3779b97f4a7c15))
	g := graphview.NewMemoryGraph()

	for i := 0; i < o.nodes; i++ {
		a := float64(i) * 0.35
		d := 4 * math.Sqrt(float64(i)+1)
		n := &graphview.Node{
			ID:    fmt.Sprintf("n%d", i),
			Label: fmt.Sprintf("Node %d", i),
			X:     d*math.Cos(a) + rng.NormFloat64(),
			Y:     d*math.Sin(a) + rng.NormFloat64(),
			Size:  1 + 3*rng.Float64(),
			Color: demoPalette[i%len(demoPalette)],
		}
		if i%7 == 0 {
			n.Type = graphview.TypeSquare
		}
		if err := g.AddNode(n); err != nil {
			return nil, err
		}
	}

	for i := 0; i < o.edges; i++ {
		e := &graphview.Edge{
			ID:     fmt.Sprintf("e%d", i),
			Source: fmt.Sprintf("n%d", rng.IntN(o.nodes)),
			Target: fmt.Sprintf("n%d", rng.IntN(o.nodes)),
		}
		if i%3 == 0 {
			e.Type = graphview.TypeCurve
		}
		if err := g.AddEdge(e); err != nil {
			return nil, err
		}
	}
	return g, nil
}
