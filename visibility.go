package graphview

import (
	"log/slog"

	"github.com/gogpu/gg"
)

// frame is the per-render visibility state. It is rebuilt by every render
// call and must not be reused across calls.
type frame struct {
	nodes  []*Node
	index  map[string]*Node
	edges  []*Edge
	screen map[string]ScreenNode
}

// resolveVisibility queries idx with rect for the on-screen nodes and keeps
// every edge that touches one of them, unless the edge or either endpoint
// is hidden. An endpoint missing from g counts as hidden and is reported to
// log.
func resolveVisibility(idx SpatialIndex, g Graph, rect gg.Rect, log *slog.Logger) *frame {
	nodes := idx.Query(rect)
	f := &frame{
		nodes:  nodes,
		index:  make(map[string]*Node, len(nodes)),
		screen: make(map[string]ScreenNode, len(nodes)),
	}
	for _, n := range nodes {
		f.index[n.ID] = n
	}
	for _, e := range g.Edges() {
		_, src := f.index[e.Source]
		_, dst := f.index[e.Target]
		if !src && !dst || e.Hidden {
			continue
		}
		s, t := g.Node(e.Source), g.Node(e.Target)
		if s == nil || t == nil {
			log.Warn("edge endpoint missing from graph", "edge", e.ID, "source", e.Source, "target", e.Target)
			continue
		}
		if s.Hidden || t.Hidden {
			continue
		}
		f.edges = append(f.edges, e)
	}
	return f
}

// project returns n in screen space, caching the result for the frame.
func (f *frame) project(cam Camera, n *Node) ScreenNode {
	if sn, ok := f.screen[n.ID]; ok {
		return sn
	}
	sn := cam.Project(n)
	f.screen[n.ID] = sn
	return sn
}
