package graphview

import (
	"log/slog"

	"github.com/gogpu/graphview/schedule"
)

// Option configures a Renderer during creation.
// Use functional options to customize Renderer behavior.
//
// Example:
//
//	// Default settings, own scheduler
//	r, err := graphview.New(g, cam, idx, stage)
//
//	// Batched edges on a shared scheduler, custom node shape
//	r, err := graphview.New(g, cam, idx, stage,
//	    graphview.WithSettings(graphview.WithBatching(200)),
//	    graphview.WithScheduler(sched),
//	    graphview.WithNodeRenderer("star", starNode),
//	)
type Option func(*options)

// options holds optional configuration for Renderer creation.
type options struct {
	settings   []SettingOption
	nodes      map[string]NodeRenderer
	edges      map[string]EdgeRenderer
	labels     map[string]LabelRenderer
	edgeLabels map[string]EdgeLabelRenderer
	scheduler  *schedule.Scheduler
	captors    []CaptorFactory
	logger     *slog.Logger

	// invalid records the first malformed option; New fails with it.
	invalid string
}

// defaultOptions returns the default renderer options.
func defaultOptions() options {
	return options{
		nodes:      map[string]NodeRenderer{TypeSquare: SquareNode},
		edges:      map[string]EdgeRenderer{TypeCurve: CurveEdge},
		labels:     map[string]LabelRenderer{},
		edgeLabels: map[string]EdgeLabelRenderer{},
	}
}

func (o *options) reject(reason string) {
	if o.invalid == "" {
		o.invalid = reason
	}
}

// WithSettings sets instance-level settings overrides. They apply on top of
// DefaultSettings and below the overrides passed to Render.
func WithSettings(opts ...SettingOption) Option {
	return func(o *options) {
		o.settings = append(o.settings, opts...)
	}
}

// WithNodeRenderer registers a node routine for typ. Registering
// DefaultType replaces the built-in disc.
func WithNodeRenderer(typ string, r NodeRenderer) Option {
	return func(o *options) {
		if r == nil {
			o.reject("nil node renderer for type " + typ)
			return
		}
		o.nodes[typ] = r
	}
}

// WithEdgeRenderer registers an edge routine for typ.
func WithEdgeRenderer(typ string, r EdgeRenderer) Option {
	return func(o *options) {
		if r == nil {
			o.reject("nil edge renderer for type " + typ)
			return
		}
		o.edges[typ] = r
	}
}

// WithLabelRenderer registers a node label routine for typ.
func WithLabelRenderer(typ string, r LabelRenderer) Option {
	return func(o *options) {
		if r == nil {
			o.reject("nil label renderer for type " + typ)
			return
		}
		o.labels[typ] = r
	}
}

// WithEdgeLabelRenderer registers an edge label routine for typ.
func WithEdgeLabelRenderer(typ string, r EdgeLabelRenderer) Option {
	return func(o *options) {
		if r == nil {
			o.reject("nil edge label renderer for type " + typ)
			return
		}
		o.edgeLabels[typ] = r
	}
}

// WithScheduler shares s with other renderers or a frame loop owned by the
// caller. Without it every renderer creates its own scheduler.
func WithScheduler(s *schedule.Scheduler) Option {
	return func(o *options) {
		if s == nil {
			o.reject("nil scheduler")
			return
		}
		o.scheduler = s
	}
}

// WithCaptors installs input captors on the mouse layer. Dispose closes
// them.
func WithCaptors(factories ...CaptorFactory) Option {
	return func(o *options) {
		for _, f := range factories {
			if f == nil {
				o.reject("nil captor factory")
				return
			}
		}
		o.captors = append(o.captors, factories...)
	}
}

// WithLogger sets the renderer's logger. Without it the renderer logs
// through Logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}
