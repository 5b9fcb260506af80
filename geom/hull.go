package geom

import (
	"math"
	"sort"

	"github.com/gogpu/gg"
)

const degrees = 180 / math.Pi

// ConvexHull returns the convex hull of points as a closed polygon, anchor
// first, in the order visited by a sweep around the anchor. The anchor is
// the point with the smallest Y, ties broken by the smallest X.
//
// Fewer than three points are returned as given, anchor first. Points
// lying inside the hull are dropped; points lying on a hull edge may be
// dropped too, depending on where the sweep meets them.
//
// The input slice is not modified.
func ConvexHull(points []gg.Point) []gg.Point {
	if len(points) == 0 {
		return nil
	}

	anchor := 0
	for i, p := range points[1:] {
		a := points[anchor]
		if p.Y < a.Y || (p.Y == a.Y && p.X < a.X) {
			anchor = i + 1
		}
	}
	origin := points[anchor]

	rest := make([]gg.Point, 0, len(points)-1)
	for i, p := range points {
		if i != anchor {
			rest = append(rest, p)
		}
	}

	reverse := len(rest) > 0
	for _, p := range rest {
		if p.X >= 0 || p.Y >= 0 {
			reverse = false
			break
		}
	}

	sort.SliceStable(rest, func(i, j int) bool {
		return polarAngle(origin, rest[i], reverse) < polarAngle(origin, rest[j], reverse)
	})

	if len(rest) < 3 {
		return append([]gg.Point{origin}, rest...)
	}

	hull := sweep(rest, reverse)
	if len(hull) == 0 || hull[0] != origin {
		hull = append([]gg.Point{origin}, hull...)
	}
	return hull
}

// sweep repeats elimination passes over the angularly sorted points until a
// pass removes nothing.
func sweep(points []gg.Point, reverse bool) []gg.Point {
	for len(points) >= 3 {
		out := make([]gg.Point, 0, len(points))
		out = append(out, points[0], points[1])
		for _, next := range points[2:] {
			out = append(out, next)
			n := len(out)
			if concave(out[n-3], out[n-2], out[n-1], reverse) {
				out = append(out[:n-2], out[n-1])
			}
		}
		if len(out) == len(points) {
			return out
		}
		points = out
	}
	return points
}

// concave reports whether h should be dropped from the triple o, h, r: it
// does not turn outward when walking from o to r.
func concave(o, h, r gg.Point, reverse bool) bool {
	ha := polarAngle(o, h, reverse)
	ra := polarAngle(o, r, reverse)
	switch {
	case ha > ra:
		return ha-ra <= 180
	case ra > ha:
		return ra-ha > 180
	default:
		return true
	}
}

// polarAngle returns the angle in degrees of the vector a->b, shifted into
// the range the sweep compares against. Coincident points have angle 0.
func polarAngle(a, b gg.Point, reverse bool) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	if dx == 0 && dy == 0 {
		return 0
	}
	r := math.Atan2(dy, dx) * degrees
	if reverse {
		if r <= 0 {
			r += 360
		}
	} else if r >= 0 {
		r += 360
	}
	return r
}
