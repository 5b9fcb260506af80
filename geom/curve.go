package geom

import "github.com/gogpu/gg"

// Curve defaults.
const (
	DefaultTension  = 0.5
	DefaultSegments = 25
)

// PathBuilder receives polyline vertices. *gg.Context satisfies it.
type PathBuilder interface {
	MoveTo(x, y float64)
	LineTo(x, y float64)
}

var _ PathBuilder = (*gg.Context)(nil)

// Curve interpolates points with DefaultTension and DefaultSegments.
func Curve(points []gg.Point, closed bool) []gg.Point {
	return InterpolateCurve(Flatten(points), DefaultTension, DefaultSegments, closed)
}

// InterpolateCurve returns a cardinal spline through the flat coordinate
// list points (x0, y0, x1, y1, ...). Each span between two input points is
// sampled segments times; segments <= 0 uses DefaultSegments. A closed
// curve also spans from the last point back to the first and ends on the
// first point; an open curve ends on the last point.
//
// Fewer than two points are returned unchanged. A trailing odd coordinate
// is ignored.
func InterpolateCurve(points []float64, tension float64, segments int, closed bool) []gg.Point {
	n := len(points) &^ 1
	if n < 4 {
		out := make([]gg.Point, 0, n/2)
		for i := 0; i+1 < n; i += 2 {
			out = append(out, gg.Pt(points[i], points[i+1]))
		}
		return out
	}
	if segments <= 0 {
		segments = DefaultSegments
	}
	h := points[:n]

	padded := make([]float64, 0, n+4)
	if closed {
		padded = append(padded, h[n-2], h[n-1])
		padded = append(padded, h...)
		padded = append(padded, h[0], h[1])
	} else {
		padded = append(padded, h[0], h[1])
		padded = append(padded, h...)
		padded = append(padded, h[n-2], h[n-1])
	}

	basis := hermiteBasis(segments)
	out := make([]gg.Point, 0, (n/2+1)*segments+1)
	out = spans(out, padded, n, basis, tension)

	if closed {
		wrap := []float64{
			h[n-4], h[n-3], h[n-2], h[n-1],
			h[0], h[1], h[2], h[3],
		}
		out = spans(out, wrap, 4, basis, tension)
		out = append(out, gg.Pt(h[0], h[1]))
	} else {
		out = append(out, gg.Pt(h[n-2], h[n-1]))
	}
	return out
}

// hermiteBasis precomputes the four cubic Hermite weights for each sample.
func hermiteBasis(segments int) [][4]float64 {
	b := make([][4]float64, segments)
	b[0] = [4]float64{1, 0, 0, 0}
	for i := 1; i < segments; i++ {
		t := float64(i) / float64(segments)
		t2 := t * t
		t3 := t2 * t
		b[i] = [4]float64{
			2*t3 - 3*t2 + 1,
			3*t2 - 2*t3,
			t3 - 2*t2 + t,
			t3 - t2,
		}
	}
	return b
}

// spans samples the spans of the padded coordinate list p, whose first and
// last point are control points only. n is the coordinate count of the
// points being passed through.
func spans(out []gg.Point, p []float64, n int, basis [][4]float64, tension float64) []gg.Point {
	for i := 2; i < n; i += 2 {
		x0, y0 := p[i], p[i+1]
		x1, y1 := p[i+2], p[i+3]
		t1x := (x1 - p[i-2]) * tension
		t1y := (y1 - p[i-1]) * tension
		t2x := (p[i+4] - x0) * tension
		t2y := (p[i+5] - y0) * tension
		for _, w := range basis {
			out = append(out, gg.Pt(
				w[0]*x0+w[1]*x1+w[2]*t1x+w[3]*t2x,
				w[0]*y0+w[1]*y1+w[2]*t1y+w[3]*t2y,
			))
		}
	}
	return out
}

// Flatten converts points to a flat coordinate list.
func Flatten(points []gg.Point) []float64 {
	out := make([]float64, 0, 2*len(points))
	for _, p := range points {
		out = append(out, p.X, p.Y)
	}
	return out
}

// AppendPath adds pts to p as one polyline. Empty input adds nothing.
func AppendPath(p PathBuilder, pts []gg.Point) {
	if len(pts) == 0 {
		return
	}
	p.MoveTo(pts[0].X, pts[0].Y)
	for _, pt := range pts[1:] {
		p.LineTo(pt.X, pt.Y)
	}
}
