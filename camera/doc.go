// Package camera provides a 2D camera for graphview renderers.
//
// A Camera looks at graph space from a position (X, Y), zoomed by Ratio
// (greater values show more of the graph) and rotated by Angle radians.
// Screen space has its origin at the top-left corner of the viewport with
// the camera position mapped to the viewport center.
//
//	cam := camera.New()
//	cam.Fit(bounds, 800, 600)
//	r, err := graphview.New(g, cam, spatial.New(g.Nodes()), stage)
package camera
