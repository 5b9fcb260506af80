package graphview

import (
	"fmt"
	"testing"

	"github.com/gogpu/gg"
)

// fakeCamera projects graph space 1:1 and sees [0, width] x [0, height].
type fakeCamera struct {
	moving, animated bool
	applied          int
	width, height    float64
}

func (c *fakeCamera) Rectangle(width, height float64) gg.Rect {
	return gg.Rect{Max: gg.Pt(width, height)}
}

func (c *fakeCamera) ApplyView(width, height float64) {
	c.applied++
	c.width, c.height = width, height
}

func (c *fakeCamera) Project(n *Node) ScreenNode {
	return ScreenNode{Node: n, X: n.X, Y: n.Y, Size: n.Size}
}

func (c *fakeCamera) IsAnimated() bool { return c.animated }
func (c *fakeCamera) IsMoving() bool   { return c.moving }

// fakeIndex scans its nodes linearly.
type fakeIndex struct {
	nodes   []*Node
	queries int
}

func (idx *fakeIndex) Query(r gg.Rect) []*Node {
	idx.queries++
	var out []*Node
	for _, n := range idx.nodes {
		if r.Contains(gg.Pt(n.X, n.Y)) {
			out = append(out, n)
		}
	}
	return out
}

// recorder logs every routine call as "kind:id".
type recorder struct {
	calls []string
}

func (r *recorder) add(kind, id string) { r.calls = append(r.calls, kind+":"+id) }

func (r *recorder) options(extra ...Option) []Option {
	opts := []Option{
		WithNodeRenderer(DefaultType, NodeRendererFunc(func(_ *gg.Context, n ScreenNode, _ *Settings) {
			r.add("node", n.ID)
		})),
		WithNodeRenderer(TypeSquare, NodeRendererFunc(func(_ *gg.Context, n ScreenNode, _ *Settings) {
			r.add("square", n.ID)
		})),
		WithEdgeRenderer(DefaultType, EdgeRendererFunc(func(_ *gg.Context, e *Edge, _, _ ScreenNode, _ *Settings) {
			r.add("edge", e.ID)
		})),
		WithEdgeRenderer(TypeCurve, EdgeRendererFunc(func(_ *gg.Context, e *Edge, _, _ ScreenNode, _ *Settings) {
			r.add("curve", e.ID)
		})),
		WithLabelRenderer(DefaultType, LabelRendererFunc(func(_ *gg.Context, n ScreenNode, _ *Settings) {
			r.add("label", n.ID)
		})),
		WithEdgeLabelRenderer(DefaultType, EdgeLabelRendererFunc(func(_ *gg.Context, e *Edge, _, _ ScreenNode, _ *Settings) {
			r.add("edgelabel", e.ID)
		})),
	}
	return append(opts, extra...)
}

// count returns how many calls start with kind.
func (r *recorder) count(kind string) int {
	n := 0
	for _, c := range r.calls {
		if len(c) > len(kind) && c[:len(kind)+1] == kind+":" {
			n++
		}
	}
	return n
}

func (r *recorder) index(call string) int {
	for i, c := range r.calls {
		if c == call {
			return i
		}
	}
	return -1
}

// testGraph builds:
//
//	a, b, c (square) on screen, h hidden on screen, d off screen
//	ab, bc (curve), cd (one endpoint on screen), dd (off screen),
//	ah (hidden endpoint), ac (hidden edge)
func testGraph(t *testing.T) *MemoryGraph {
	t.Helper()
	g := NewMemoryGraph()
	nodes := []*Node{
		{ID: "a", Label: "A", X: 10, Y: 10, Size: 3},
		{ID: "b", Label: "B", X: 50, Y: 10, Size: 3},
		{ID: "c", Label: "C", X: 30, Y: 40, Size: 3, Type: TypeSquare},
		{ID: "h", Label: "H", X: 20, Y: 20, Size: 3, Hidden: true},
		{ID: "d", Label: "D", X: 500, Y: 500, Size: 3},
	}
	for _, n := range nodes {
		if err := g.AddNode(n); err != nil {
			t.Fatal(err)
		}
	}
	edges := []*Edge{
		{ID: "ab", Source: "a", Target: "b"},
		{ID: "bc", Source: "b", Target: "c", Type: TypeCurve},
		{ID: "cd", Source: "c", Target: "d"},
		{ID: "dd", Source: "d", Target: "d"},
		{ID: "ah", Source: "a", Target: "h"},
		{ID: "ac", Source: "a", Target: "c", Hidden: true},
	}
	for _, e := range edges {
		if err := g.AddEdge(e); err != nil {
			t.Fatal(err)
		}
	}
	return g
}

// chainGraph builds n on-screen nodes joined by n-1 edges e0..e(n-2).
func chainGraph(t *testing.T, n int) *MemoryGraph {
	t.Helper()
	g := NewMemoryGraph()
	for i := 0; i < n; i++ {
		node := &Node{ID: fmt.Sprintf("n%d", i), X: float64(i%90 + 5), Y: float64(i/90 + 5), Size: 1}
		if err := g.AddNode(node); err != nil {
			t.Fatal(err)
		}
	}
	for i := 0; i+1 < n; i++ {
		e := &Edge{ID: fmt.Sprintf("e%d", i), Source: fmt.Sprintf("n%d", i), Target: fmt.Sprintf("n%d", i+1)}
		if err := g.AddEdge(e); err != nil {
			t.Fatal(err)
		}
	}
	return g
}

type testEnv struct {
	graph *MemoryGraph
	cam   *fakeCamera
	index *fakeIndex
	stage *Stage
}

func newEnv(g *MemoryGraph) *testEnv {
	return &testEnv{
		graph: g,
		cam:   &fakeCamera{},
		index: &fakeIndex{nodes: g.Nodes()},
		stage: NewStage(100, 100),
	}
}

func (e *testEnv) renderer(t *testing.T, opts ...Option) *Renderer {
	t.Helper()
	r, err := New(e.graph, e.cam, e.index, e.stage, opts...)
	if err != nil {
		t.Fatalf("New() = %v", err)
	}
	t.Cleanup(func() { _ = r.Dispose() })
	return r
}

func newTestRenderer(t *testing.T, g *MemoryGraph, opts ...Option) *Renderer {
	t.Helper()
	return newEnv(g).renderer(t, opts...)
}
