package graphview

import (
	"github.com/gogpu/gg"

	"github.com/gogpu/graphview/schedule"
)

// edgeBatch draws a fixed edge list a slice at a time, one slice per
// scheduler tick. Every edge goes behind the edges drawn before it.
type edgeBatch struct {
	r        *Renderer
	frame    *frame
	settings Settings
	edges    []*Edge
	labels   bool

	start, end, size int

	done func()
}

var _ schedule.Task = (*edgeBatch)(nil)

func newEdgeBatch(r *Renderer, f *frame, s Settings, labels bool, done func()) *edgeBatch {
	return &edgeBatch{
		r:        r,
		frame:    f,
		settings: s,
		edges:    f.edges,
		labels:   labels,
		size:     s.CanvasEdgesBatchSize,
		end:      min(len(f.edges), s.CanvasEdgesBatchSize),
		done:     done,
	}
}

// Step draws edges [start, end), each behind the previous one, and
// advances the cursor. The tick after the
// last slice draws nothing and returns Done.
func (b *edgeBatch) Step() schedule.Result {
	if b.start >= len(b.edges) {
		if b.done != nil {
			b.done()
		}
		return schedule.Done
	}

	slice := b.edges[b.start:b.end]
	edges := b.r.layers.Get(layerEdges)
	for _, e := range slice {
		edges.DrawBehind(func(dc *gg.Context) {
			b.r.drawEdge(dc, b.frame, &b.settings, e)
		})
	}

	if b.labels {
		b.r.drawEdgeLabels(b.r.layers.Get(layerLabels).Context(), b.frame, &b.settings, slice)
	}

	b.r.logger().Debug("edge batch", "job", b.r.edgeJob(), "from", b.start, "to", b.end, "total", len(b.edges))
	b.start = b.end
	b.end = min(len(b.edges), b.start+b.size)
	return schedule.Continue
}
