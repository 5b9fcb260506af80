package spatial

import (
	"sort"

	"github.com/gogpu/gg"
	"github.com/gogpu/graphview"
	"gonum.org/v1/gonum/spatial/kdtree"
)

// Index is a kd-tree over node positions. It satisfies
// graphview.SpatialIndex.
type Index struct {
	tree    *kdtree.Tree
	len     int
	maxSize float64
	scale   Scaler
}

var _ graphview.SpatialIndex = (*Index)(nil)

// Scaler reports the graph-space radius of a node of size 1. A camera that
// shrinks node sizes less than it zooms makes that radius differ from 1.
type Scaler interface {
	NodeScale() float64
}

// Option configures an Index.
type Option func(*Index)

// WithScale grows the query padding by s.NodeScale() at query time.
func WithScale(s Scaler) Option {
	return func(idx *Index) { idx.scale = s }
}

// New indexes nodes. Nil entries are skipped. The node slice is not kept.
func New(nodes []*graphview.Node, opts ...Option) *Index {
	pts := make(entries, 0, len(nodes))
	idx := &Index{}
	for _, opt := range opts {
		opt(idx)
	}
	for _, n := range nodes {
		if n == nil {
			continue
		}
		pts = append(pts, entry{x: n.X, y: n.Y, node: n})
		idx.maxSize = max(idx.maxSize, n.Size)
	}
	idx.len = len(pts)
	if len(pts) > 0 {
		idx.tree = kdtree.New(pts, false)
	}
	return idx
}

// Len returns the number of indexed nodes.
func (idx *Index) Len() int { return idx.len }

// Query returns the nodes whose disc of radius Size may intersect r. The
// rectangle is grown by the largest node size, times the Scaler's node
// scale when one is set, so nodes centered just outside r but overlapping
// it are found too. The result is sorted by id.
func (idx *Index) Query(r gg.Rect) []*graphview.Node {
	if idx.tree == nil {
		return nil
	}
	pad := idx.maxSize
	if idx.scale != nil {
		if k := idx.scale.NodeScale(); k > 0 {
			pad *= k
		}
	}
	b := &kdtree.Bounding{
		Min: entry{x: r.Min.X - pad, y: r.Min.Y - pad},
		Max: entry{x: r.Max.X + pad, y: r.Max.Y + pad},
	}
	var out []*graphview.Node
	idx.tree.DoBounded(b, func(c kdtree.Comparable, _ *kdtree.Bounding, _ int) bool {
		out = append(out, c.(entry).node)
		return false
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// entry is a node position in the tree.
type entry struct {
	x, y float64
	node *graphview.Node
}

func (e entry) coord(d kdtree.Dim) float64 {
	if d == 0 {
		return e.x
	}
	return e.y
}

// Compare returns the signed distance of e from the plane through c
// perpendicular to dimension d.
func (e entry) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	return e.coord(d) - c.(entry).coord(d)
}

func (entry) Dims() int { return 2 }

func (e entry) Distance(c kdtree.Comparable) float64 {
	o := c.(entry)
	dx, dy := e.x-o.x, e.y-o.y
	return dx*dx + dy*dy
}

// entries is the kdtree.Interface over a slice of entries.
type entries []entry

func (p entries) Index(i int) kdtree.Comparable { return p[i] }
func (p entries) Len() int                      { return len(p) }
func (p entries) Slice(start, end int) kdtree.Interface {
	return p[start:end]
}

func (p entries) Pivot(d kdtree.Dim) int {
	return plane{Dim: d, entries: p}.pivot()
}

// plane sorts entries along one dimension for median selection.
type plane struct {
	kdtree.Dim
	entries
}

func (p plane) Less(i, j int) bool {
	return p.entries[i].coord(p.Dim) < p.entries[j].coord(p.Dim)
}

func (p plane) Swap(i, j int) { p.entries[i], p.entries[j] = p.entries[j], p.entries[i] }

func (p plane) Slice(start, end int) kdtree.SortSlicer {
	return plane{Dim: p.Dim, entries: p.entries[start:end]}
}

func (p plane) pivot() int {
	return kdtree.Partition(p, kdtree.MedianOfMedians(p))
}
