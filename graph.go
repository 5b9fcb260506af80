package graphview

import (
	"github.com/cockroachdb/errors"
)

// Node is a graph vertex in graph space.
type Node struct {
	ID    string
	Label string

	// X, Y is the node position in graph space.
	X, Y float64

	// Size is the node radius in graph units before camera scaling.
	Size float64

	// Type selects the drawing routine. Empty means the configured default.
	Type string

	Hidden bool

	// Color is a hex color ("#rgb", "#rrggbb", "#rrggbbaa"). Empty means
	// Settings.DefaultNodeColor.
	Color string
}

// Edge connects two nodes by id.
type Edge struct {
	ID     string
	Source string
	Target string
	Label  string
	Type   string
	Hidden bool
	Color  string

	// Size is the stroke width in pixels. Zero means Settings.DefaultEdgeSize.
	Size float64
}

// ScreenNode is a node projected by the camera for the current frame.
// Drawing routines receive ScreenNodes; X, Y and Size are in screen pixels.
type ScreenNode struct {
	*Node
	X, Y float64
	Size float64
}

// Graph is the read-only view of the graph consumed by a Renderer.
type Graph interface {
	// Edges returns every edge of the graph.
	Edges() []*Edge

	// Node returns the node with the given id, or nil.
	Node(id string) *Node

	// Degree returns the number of edges incident to id.
	Degree(id string) int
}

// MemoryGraph is an in-memory Graph with insertion-ordered iteration.
//
// A MemoryGraph is not safe for concurrent use.
type MemoryGraph struct {
	nodes  []*Node
	edges  []*Edge
	byID   map[string]*Node
	edgeID map[string]struct{}
	degree map[string]int
}

var _ Graph = (*MemoryGraph)(nil)

// NewMemoryGraph creates an empty graph.
func NewMemoryGraph() *MemoryGraph {
	return &MemoryGraph{
		byID:   make(map[string]*Node),
		edgeID: make(map[string]struct{}),
		degree: make(map[string]int),
	}
}

// AddNode adds n to the graph. The id must be unique.
func (g *MemoryGraph) AddNode(n *Node) error {
	if n == nil {
		return errors.Wrap(ErrInvalidOptions, "add node: nil node")
	}
	if _, ok := g.byID[n.ID]; ok {
		return errors.Wrapf(ErrDuplicateNode, "add node %q", n.ID)
	}
	g.nodes = append(g.nodes, n)
	g.byID[n.ID] = n
	return nil
}

// AddEdge adds e to the graph. Both endpoints must already exist.
func (g *MemoryGraph) AddEdge(e *Edge) error {
	if e == nil {
		return errors.Wrap(ErrInvalidOptions, "add edge: nil edge")
	}
	if _, ok := g.edgeID[e.ID]; ok {
		return errors.Wrapf(ErrDuplicateEdge, "add edge %q", e.ID)
	}
	for _, id := range []string{e.Source, e.Target} {
		if _, ok := g.byID[id]; !ok {
			return errors.Wrapf(ErrUnknownNode, "add edge %q: endpoint %q", e.ID, id)
		}
	}
	g.edges = append(g.edges, e)
	g.edgeID[e.ID] = struct{}{}
	g.degree[e.Source]++
	if e.Target != e.Source {
		g.degree[e.Target]++
	}
	return nil
}

// Nodes returns the nodes in insertion order. The slice must not be modified.
func (g *MemoryGraph) Nodes() []*Node { return g.nodes }

// Edges returns the edges in insertion order. The slice must not be modified.
func (g *MemoryGraph) Edges() []*Edge { return g.edges }

// Node returns the node with the given id, or nil.
func (g *MemoryGraph) Node(id string) *Node { return g.byID[id] }

// Degree returns the number of edges incident to id. A self-loop counts once.
func (g *MemoryGraph) Degree(id string) int { return g.degree[id] }
