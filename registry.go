package graphview

import "github.com/gogpu/gg"

// NodeRenderer draws one node shape.
type NodeRenderer interface {
	RenderNode(dc *gg.Context, n ScreenNode, s *Settings)
}

// EdgeRenderer draws one edge between two projected endpoints.
type EdgeRenderer interface {
	RenderEdge(dc *gg.Context, e *Edge, source, target ScreenNode, s *Settings)
}

// LabelRenderer draws the label of one node.
type LabelRenderer interface {
	RenderLabel(dc *gg.Context, n ScreenNode, s *Settings)
}

// EdgeLabelRenderer draws the label of one edge.
type EdgeLabelRenderer interface {
	RenderEdgeLabel(dc *gg.Context, e *Edge, source, target ScreenNode, s *Settings)
}

// NodeRendererFunc adapts a function to NodeRenderer.
type NodeRendererFunc func(dc *gg.Context, n ScreenNode, s *Settings)

// RenderNode calls f.
func (f NodeRendererFunc) RenderNode(dc *gg.Context, n ScreenNode, s *Settings) { f(dc, n, s) }

// EdgeRendererFunc adapts a function to EdgeRenderer.
type EdgeRendererFunc func(dc *gg.Context, e *Edge, source, target ScreenNode, s *Settings)

// RenderEdge calls f.
func (f EdgeRendererFunc) RenderEdge(dc *gg.Context, e *Edge, source, target ScreenNode, s *Settings) {
	f(dc, e, source, target, s)
}

// LabelRendererFunc adapts a function to LabelRenderer.
type LabelRendererFunc func(dc *gg.Context, n ScreenNode, s *Settings)

// RenderLabel calls f.
func (f LabelRendererFunc) RenderLabel(dc *gg.Context, n ScreenNode, s *Settings) { f(dc, n, s) }

// EdgeLabelRendererFunc adapts a function to EdgeLabelRenderer.
type EdgeLabelRendererFunc func(dc *gg.Context, e *Edge, source, target ScreenNode, s *Settings)

// RenderEdgeLabel calls f.
func (f EdgeLabelRendererFunc) RenderEdgeLabel(dc *gg.Context, e *Edge, source, target ScreenNode, s *Settings) {
	f(dc, e, source, target, s)
}

// Registry maps type tags to drawing routines. It always holds a routine
// under DefaultType.
type Registry[T any] struct {
	routines map[string]T
}

func newRegistry[T any](def T) *Registry[T] {
	return &Registry[T]{routines: map[string]T{DefaultType: def}}
}

// Register binds typ to routine, replacing any previous binding.
func (r *Registry[T]) Register(typ string, routine T) {
	r.routines[typ] = routine
}

// Lookup returns the routine for typ. An empty typ uses fallback; a miss
// uses the DefaultType routine.
func (r *Registry[T]) Lookup(typ, fallback string) T {
	if typ == "" {
		typ = fallback
	}
	if routine, ok := r.routines[typ]; ok {
		return routine
	}
	return r.routines[DefaultType]
}

// Types returns the number of registered types, DefaultType included.
func (r *Registry[T]) Types() int { return len(r.routines) }
