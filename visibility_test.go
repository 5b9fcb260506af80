package graphview

import (
	"bytes"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/gogpu/gg"
)

func TestResolveVisibility(t *testing.T) {
	g := testGraph(t)
	idx := &fakeIndex{nodes: g.Nodes()}
	f := resolveVisibility(idx, g, gg.Rect{Max: gg.Pt(100, 100)}, silent)

	if len(f.nodes) != 4 {
		t.Errorf("nodes = %d, want 4 (hidden nodes stay in the on-screen list)", len(f.nodes))
	}
	for _, id := range []string{"a", "b", "c", "h"} {
		if f.index[id] == nil {
			t.Errorf("lookup misses %s", id)
		}
	}
	if f.index["d"] != nil {
		t.Error("off-screen node in lookup")
	}
	var got []string
	for _, e := range f.edges {
		got = append(got, e.ID)
	}
	if fmt.Sprint(got) != "[ab bc cd]" {
		t.Errorf("edges = %v, want [ab bc cd]", got)
	}
}

// danglingGraph reports an edge whose endpoints are not in the graph.
type danglingGraph struct{ *MemoryGraph }

func (g danglingGraph) Edges() []*Edge {
	return append(g.MemoryGraph.Edges(), &Edge{ID: "ghost", Source: "a", Target: "nowhere"})
}

func TestResolveVisibilityMissingEndpoint(t *testing.T) {
	g := danglingGraph{testGraph(t)}
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))
	f := resolveVisibility(&fakeIndex{nodes: g.Nodes()}, g, gg.Rect{Max: gg.Pt(100, 100)}, log)
	for _, e := range f.edges {
		if e.ID == "ghost" {
			t.Fatal("edge with a missing endpoint is visible")
		}
	}
	if !strings.Contains(buf.String(), "edge=ghost") {
		t.Errorf("missing endpoint not reported to the given logger: %q", buf.String())
	}
}

// TestResolveVisibilityInvariant checks on random graphs that every visible
// edge touches an on-screen node and that nothing hidden is visible, and
// that no qualifying edge is dropped.
func TestResolveVisibilityInvariant(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for round := 0; round < 20; round++ {
		g := NewMemoryGraph()
		const nodes = 60
		for i := 0; i < nodes; i++ {
			n := &Node{
				ID:     fmt.Sprintf("n%d", i),
				X:      rng.Float64() * 300,
				Y:      rng.Float64() * 300,
				Hidden: rng.IntN(8) == 0,
			}
			if err := g.AddNode(n); err != nil {
				t.Fatal(err)
			}
		}
		for i := 0; i < 150; i++ {
			e := &Edge{
				ID:     fmt.Sprintf("e%d", i),
				Source: fmt.Sprintf("n%d", rng.IntN(nodes)),
				Target: fmt.Sprintf("n%d", rng.IntN(nodes)),
				Hidden: rng.IntN(10) == 0,
			}
			if err := g.AddEdge(e); err != nil {
				t.Fatal(err)
			}
		}

		rect := gg.Rect{Min: gg.Pt(50, 50), Max: gg.Pt(200, 200)}
		f := resolveVisibility(&fakeIndex{nodes: g.Nodes()}, g, rect, silent)

		visible := make(map[string]bool)
		for _, e := range f.edges {
			visible[e.ID] = true
			if f.index[e.Source] == nil && f.index[e.Target] == nil {
				t.Fatalf("round %d: edge %s has no on-screen endpoint", round, e.ID)
			}
			if e.Hidden || g.Node(e.Source).Hidden || g.Node(e.Target).Hidden {
				t.Fatalf("round %d: hidden edge or endpoint in %s", round, e.ID)
			}
		}
		for _, e := range g.Edges() {
			s, d := g.Node(e.Source), g.Node(e.Target)
			onScreen := rect.Contains(gg.Pt(s.X, s.Y)) || rect.Contains(gg.Pt(d.X, d.Y))
			want := onScreen && !e.Hidden && !s.Hidden && !d.Hidden
			if want != visible[e.ID] {
				t.Fatalf("round %d: edge %s visible = %v, want %v", round, e.ID, visible[e.ID], want)
			}
		}
	}
}

func TestFrameProjectCaches(t *testing.T) {
	f := &frame{screen: make(map[string]ScreenNode)}
	cam := &countingCamera{}
	n := &Node{ID: "a", X: 1, Y: 2}
	first := f.project(cam, n)
	second := f.project(cam, n)
	if cam.projections != 1 {
		t.Errorf("Project called %d times, want 1", cam.projections)
	}
	if first != second {
		t.Error("cached projection differs")
	}
}

type countingCamera struct {
	fakeCamera
	projections int
}

func (c *countingCamera) Project(n *Node) ScreenNode {
	c.projections++
	return c.fakeCamera.Project(n)
}
