// Package geom holds the planar helpers of the graph renderer: a convex hull
// over node positions and a cardinal-spline interpolation used to draw a
// smooth outline through the hull.
//
// Both work on gg.Point values in whatever coordinate space the caller
// chooses; the renderer passes screen coordinates.
package geom
