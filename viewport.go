package graphview

import "github.com/gogpu/gg"

// Camera maps graph space to the renderer's screen space.
type Camera interface {
	// Rectangle returns the graph-space rectangle visible in a viewport of
	// the given size.
	Rectangle(width, height float64) gg.Rect

	// ApplyView records the viewport size used by Project.
	ApplyView(width, height float64)

	// Project returns n in screen space for the last applied view.
	Project(n *Node) ScreenNode

	IsAnimated() bool
	IsMoving() bool
}

// SpatialIndex answers rectangle queries over node positions.
// The order of the result is index-defined.
type SpatialIndex interface {
	Query(r gg.Rect) []*Node
}

// Captor is an input captor bound to the renderer's mouse layer.
type Captor interface {
	Close() error
}

// CaptorFactory creates a captor for the mouse layer of a new renderer.
type CaptorFactory func(layer *Layer, cam Camera, s Settings) Captor
