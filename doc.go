// Package graphview renders graphs onto layered 2D drawing surfaces.
//
// # Overview
//
// graphview is an immediate-mode graph renderer built on gogpu/gg. Every
// call to [Renderer.Render] draws one frame: it culls the graph against the
// camera's viewport rectangle through a spatial index, clears every layer,
// and draws edges, nodes and labels in that order. Large edge sets can be
// spread over several frames by a cooperative scheduler (see package
// schedule) so camera movement stays interactive.
//
// # Quick Start
//
//	g := graphview.NewMemoryGraph()
//	_ = g.AddNode(&graphview.Node{ID: "a", X: -50, Y: 0, Size: 6, Label: "a"})
//	_ = g.AddNode(&graphview.Node{ID: "b", X: 50, Y: 0, Size: 6, Label: "b"})
//	_ = g.AddEdge(&graphview.Edge{ID: "ab", Source: "a", Target: "b"})
//
//	stage := graphview.NewStage(800, 600)
//	r, err := graphview.New(g, camera.New(), spatial.New(g.Nodes()), stage)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Dispose()
//
//	_ = r.Render()
//	_ = stage.SavePNG("graph.png")
//
// # Layers
//
// A renderer owns a fixed stack of layers attached to its [Container]:
//   - edges: only when batched edge drawing is enabled at construction
//   - scene: nodes and labels (and edges when not batched)
//   - mouse: hover overlay, handed to input captors
//
// Layers are always cleared in full before a frame is drawn.
//
// # Drawing Routines
//
// Nodes, edges, node labels and edge labels are drawn by routines looked up
// by the element's Type tag. A miss falls back to the configured default
// type and then to the built-in "def" routine, so an unknown type never
// fails a frame.
//
// # Coordinate System
//
// Node positions are in graph space. The camera maps them into screen space
// (origin top-left, y down) for each frame; the node itself is never
// modified.
package graphview
