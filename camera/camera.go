package camera

import (
	"math"

	"github.com/gogpu/gg"
	"github.com/gogpu/graphview"
)

// DefaultNodesPowRatio is the exponent applied to Ratio when scaling node
// sizes. Below 1 nodes shrink slower than the graph when zooming out.
const DefaultNodesPowRatio = 0.5

// Camera is the reference graphview.Camera.
//
// The zero value is not usable; call New.
type Camera struct {
	X, Y  float64
	Ratio float64
	Angle float64

	// NodesPowRatio scales projected node sizes by 1/Ratio^NodesPowRatio.
	NodesPowRatio float64

	width, height float64
	moving        bool
	animated      bool
}

var _ graphview.Camera = (*Camera)(nil)

// New returns a camera at the origin with ratio 1 and no rotation.
func New() *Camera {
	return &Camera{Ratio: 1, NodesPowRatio: DefaultNodesPowRatio}
}

// Goto moves the camera. A non-positive ratio keeps the current one.
func (c *Camera) Goto(x, y, ratio, angle float64) {
	c.X, c.Y, c.Angle = x, y, angle
	if ratio > 0 {
		c.Ratio = ratio
	}
}

// SetMoving marks the camera as being dragged.
func (c *Camera) SetMoving(v bool) { c.moving = v }

// SetAnimated marks the camera as running an animation.
func (c *Camera) SetAnimated(v bool) { c.animated = v }

// IsMoving reports whether the camera is being dragged.
func (c *Camera) IsMoving() bool { return c.moving }

// IsAnimated reports whether the camera is animating.
func (c *Camera) IsAnimated() bool { return c.animated }

// ApplyView records the viewport size used by Project.
func (c *Camera) ApplyView(width, height float64) {
	c.width, c.height = width, height
}

// Viewport returns the size recorded by the last ApplyView.
func (c *Camera) Viewport() (width, height float64) { return c.width, c.height }

// Project maps n into the viewport recorded by ApplyView. n is not
// modified.
func (c *Camera) Project(n *graphview.Node) graphview.ScreenNode {
	p := c.CameraPosition(n.X, n.Y)
	return graphview.ScreenNode{
		Node: n,
		X:    p.X + c.width/2,
		Y:    p.Y + c.height/2,
		Size: n.Size / math.Pow(c.Ratio, c.NodesPowRatio),
	}
}

// NodeScale returns the graph-space radius of a node of size 1: Project
// divides sizes by Ratio^NodesPowRatio while positions are divided by Ratio.
func (c *Camera) NodeScale() float64 {
	return math.Pow(c.Ratio, 1-c.NodesPowRatio)
}

// CameraPosition converts a graph-space point into camera coordinates,
// relative to the viewport center.
func (c *Camera) CameraPosition(x, y float64) gg.Point {
	cos := math.Cos(c.Angle) / c.Ratio
	sin := math.Sin(c.Angle) / c.Ratio
	dx, dy := x-c.X, y-c.Y
	return gg.Pt(dx*cos+dy*sin, dy*cos-dx*sin)
}

// GraphPosition converts camera coordinates, relative to the viewport
// center, back into graph space.
func (c *Camera) GraphPosition(x, y float64) gg.Point {
	cos := math.Cos(c.Angle) * c.Ratio
	sin := math.Sin(c.Angle) * c.Ratio
	return gg.Pt(c.X+x*cos-y*sin, c.Y+y*cos+x*sin)
}

// ScreenToGraph converts a viewport pixel position into graph space.
func (c *Camera) ScreenToGraph(x, y float64) gg.Point {
	return c.GraphPosition(x-c.width/2, y-c.height/2)
}

// Rectangle returns the graph-space bounding box of a width x height
// viewport centered on the camera. With a rotated camera the box covers
// all four viewport corners.
func (c *Camera) Rectangle(width, height float64) gg.Rect {
	hw, hh := width/2, height/2
	corners := [4]gg.Point{
		c.GraphPosition(-hw, -hh),
		c.GraphPosition(hw, -hh),
		c.GraphPosition(hw, hh),
		c.GraphPosition(-hw, hh),
	}
	r := gg.Rect{Min: corners[0], Max: corners[0]}
	for _, p := range corners[1:] {
		r = r.Union(gg.Rect{Min: p, Max: p})
	}
	return r
}

// Fit centers the camera on bounds and picks the smallest ratio showing
// all of it in a width x height viewport, leaving margin viewport units
// on each side. The angle is reset.
func (c *Camera) Fit(bounds gg.Rect, width, height, margin float64) {
	c.Angle = 0
	c.X = (bounds.Min.X + bounds.Max.X) / 2
	c.Y = (bounds.Min.Y + bounds.Max.Y) / 2
	w, h := width-2*margin, height-2*margin
	if w <= 0 || h <= 0 {
		return
	}
	ratio := max(bounds.Width()/w, bounds.Height()/h)
	if ratio > 0 {
		c.Ratio = ratio
	}
}

// Bounds returns the graph-space bounding box of nodes, ignoring hidden
// ones. ok is false when no node is visible.
func Bounds(nodes []*graphview.Node) (r gg.Rect, ok bool) {
	for _, n := range nodes {
		if n.Hidden {
			continue
		}
		b := gg.Rect{
			Min: gg.Pt(n.X-n.Size, n.Y-n.Size),
			Max: gg.Pt(n.X+n.Size, n.Y+n.Size),
		}
		if !ok {
			r, ok = b, true
			continue
		}
		r = r.Union(b)
	}
	return r, ok
}
