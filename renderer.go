package graphview

import (
	"log/slog"

	"github.com/cockroachdb/errors"
	"github.com/gogpu/gg"
	"github.com/google/uuid"

	"github.com/gogpu/graphview/geom"
	"github.com/gogpu/graphview/schedule"
)

// Layer and context names.
const (
	layerEdges  = "edges"
	layerScene  = "scene"
	layerMouse  = "mouse"
	layerNodes  = "nodes"
	layerLabels = "labels"
	layerHover  = "hover"
)

// Renderer draws a graph onto the layers of a container, one frame per
// Render call.
//
// A Renderer is not safe for concurrent use. Render, the scheduler it was
// given and every drawing routine run on the same goroutine.
type Renderer struct {
	id        string
	graph     Graph
	camera    Camera
	index     SpatialIndex
	container Container

	settings Settings

	layers *LayerManager

	nodes      *Registry[NodeRenderer]
	edges      *Registry[EdgeRenderer]
	labels     *Registry[LabelRenderer]
	edgeLabels *Registry[EdgeLabelRenderer]

	sched *schedule.Scheduler
	jobs  map[string]*edgeBatch

	captors   []Captor
	listeners []listener
	nextID    int

	width, height int
	fixedSize     bool

	frame     *frame
	rendering bool
	disposed  bool

	log *slog.Logger
}

// New creates a renderer for graph g seen through cam. The spatial index
// must index the nodes of g; the layers are attached to container.
//
// New fails without side effects on container when an argument is missing
// or an option is malformed.
func New(g Graph, cam Camera, idx SpatialIndex, container Container, opts ...Option) (*Renderer, error) {
	switch {
	case g == nil:
		return nil, ErrNoGraph
	case cam == nil:
		return nil, ErrNoCamera
	case idx == nil:
		return nil, ErrNoIndex
	case container == nil:
		return nil, errors.WithHint(ErrNoContainer, "pass a Container such as graphview.NewStage(width, height)")
	}

	o := defaultOptions()
	for _, opt := range opts {
		if opt == nil {
			return nil, errors.Wrap(ErrInvalidOptions, "nil option")
		}
		opt(&o)
	}
	if o.invalid != "" {
		return nil, errors.Wrap(ErrInvalidOptions, o.invalid)
	}
	settings := DefaultSettings().Apply(o.settings...)
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	r := &Renderer{
		id:         uuid.NewString(),
		graph:      g,
		camera:     cam,
		index:      idx,
		container:  container,
		settings:   settings,
		layers:     newLayerManager(container),
		nodes:      newRegistry(DiscNode),
		edges:      newRegistry(LineEdge),
		labels:     newRegistry(TextLabel),
		edgeLabels: newRegistry(MidpointEdgeLabel),
		jobs:       make(map[string]*edgeBatch),
		log:        o.logger,
	}
	for typ, fn := range o.nodes {
		r.nodes.Register(typ, fn)
	}
	for typ, fn := range o.edges {
		r.edges.Register(typ, fn)
	}
	for typ, fn := range o.labels {
		r.labels.Register(typ, fn)
	}
	for typ, fn := range o.edgeLabels {
		r.edgeLabels.Register(typ, fn)
	}
	r.sched = o.scheduler
	if r.sched == nil {
		r.sched = schedule.New(schedule.WithLogger(r.logger()))
	}

	if err := r.initLayers(); err != nil {
		r.layers.Dispose()
		return nil, err
	}
	for _, f := range o.captors {
		r.captors = append(r.captors, f(r.layers.Get(layerMouse), cam, settings))
	}

	r.measure(settings.PixelRatio)
	r.logger().Info("renderer created", "id", r.id, "batched", settings.BatchEdgesDrawing,
		"width", r.width, "height", r.height)
	return r, nil
}

// initLayers creates the layer stack. With batched edges the edges get a
// layer of their own below the scene so slices can be drawn behind each
// other without touching nodes.
func (r *Renderer) initLayers() error {
	if r.settings.BatchEdgesDrawing {
		if _, err := r.layers.Create(LayerSurface, layerEdges); err != nil {
			return err
		}
		if _, err := r.layers.Create(LayerSurface, layerScene); err != nil {
			return err
		}
	} else {
		if _, err := r.layers.Create(LayerSurface, layerScene); err != nil {
			return err
		}
		if err := r.layers.Alias(layerEdges, layerScene); err != nil {
			return err
		}
	}
	if err := r.layers.Alias(layerNodes, layerScene); err != nil {
		return err
	}
	if err := r.layers.Alias(layerLabels, layerScene); err != nil {
		return err
	}
	if _, err := r.layers.Create(LayerSurface, layerMouse); err != nil {
		return err
	}
	return r.layers.Alias(layerHover, layerMouse)
}

// ID returns the renderer's unique id.
func (r *Renderer) ID() string { return r.id }

// Layers returns the renderer's layer manager.
func (r *Renderer) Layers() *LayerManager { return r.layers }

// Scheduler returns the scheduler batched edge jobs are registered on.
func (r *Renderer) Scheduler() *schedule.Scheduler { return r.sched }

// Settings returns the instance settings (defaults plus WithSettings).
func (r *Renderer) Settings() Settings { return r.settings }

// Size returns the current viewport size.
func (r *Renderer) Size() (width, height int) { return r.width, r.height }

// NodesOnScreen returns the nodes found visible by the last render call.
func (r *Renderer) NodesOnScreen() []*Node {
	if r.frame == nil {
		return nil
	}
	return r.frame.nodes
}

// EdgesOnScreen returns the edges found visible by the last render call.
func (r *Renderer) EdgesOnScreen() []*Edge {
	if r.frame == nil {
		return nil
	}
	return r.frame.edges
}

// NodeRenderers returns the node routine registry.
func (r *Renderer) NodeRenderers() *Registry[NodeRenderer] { return r.nodes }

// EdgeRenderers returns the edge routine registry.
func (r *Renderer) EdgeRenderers() *Registry[EdgeRenderer] { return r.edges }

// LabelRenderers returns the node label routine registry.
func (r *Renderer) LabelRenderers() *Registry[LabelRenderer] { return r.labels }

// EdgeLabelRenderers returns the edge label routine registry.
func (r *Renderer) EdgeLabelRenderers() *Registry[EdgeLabelRenderer] { return r.edgeLabels }

// OnRender registers fn to be called at the end of every completed render
// call. The returned function unregisters it.
func (r *Renderer) OnRender(fn func()) (cancel func()) {
	id := r.nextID
	r.nextID++
	r.listeners = append(r.listeners, listener{id: id, fn: fn})
	return func() {
		for i, l := range r.listeners {
			if l.id == id {
				r.listeners = append(r.listeners[:i], r.listeners[i+1:]...)
				return
			}
		}
	}
}

type listener struct {
	id int
	fn func()
}

// Render draws one frame. The overrides apply to this call only.
//
// Phases run in order: resize, viewport sync, clear, cancellation of the
// previous call's edge job, visibility, edges, nodes, labels, hull overlay,
// render listeners. With batched edges the edges are drawn by the following
// scheduler ticks; everything else is drawn before Render returns.
//
// Render returns ErrReentrantRender when called from inside a render call
// (a drawing routine or a render listener).
func (r *Renderer) Render(overrides ...SettingOption) error {
	if r.disposed {
		return ErrDisposed
	}
	if r.rendering {
		return ErrReentrantRender
	}
	s := r.settings.Apply(overrides...)
	if err := s.Validate(); err != nil {
		return errors.Wrap(err, "render")
	}
	s.log = r.logger()
	r.rendering = true
	defer func() { r.rendering = false }()

	if !r.fixedSize {
		r.measure(s.PixelRatio)
	} else {
		r.layers.Resize(r.width, r.height, s.PixelRatio)
	}

	r.camera.ApplyView(float64(r.width), float64(r.height))
	r.layers.Clear()
	r.cancelJobs()

	f := resolveVisibility(r.index, r.graph, r.camera.Rectangle(float64(r.width), float64(r.height)), s.log)
	r.frame = f

	drawEdges := s.DrawEdges
	if s.HideEdgesOnMove && (r.camera.IsAnimated() || r.camera.IsMoving()) {
		drawEdges = false
	}
	if drawEdges {
		if s.BatchEdgesDrawing {
			r.scheduleEdges(f, s)
		} else {
			r.drawEdges(r.layers.Get(layerEdges).Context(), f, &s, f.edges)
			if s.DrawEdgeLabels {
				r.drawEdgeLabels(r.layers.Get(layerLabels).Context(), f, &s, f.edges)
			}
		}
	}

	if s.DrawNodes {
		dc := r.layers.Get(layerNodes).Context()
		for _, n := range f.nodes {
			if n.Hidden {
				continue
			}
			r.nodes.Lookup(n.Type, s.DefaultNodeType).RenderNode(dc, f.project(r.camera, n), &s)
		}
	}

	if s.DrawLabels {
		dc := r.layers.Get(layerLabels).Context()
		for _, n := range f.nodes {
			if n.Hidden {
				continue
			}
			r.labels.Lookup(n.Type, s.DefaultNodeType).RenderLabel(dc, f.project(r.camera, n), &s)
		}
	}

	if s.DrawHull {
		r.drawHull(r.layers.Get(layerNodes).Context(), f, &s)
	}

	r.logger().Debug("render", "id", r.id, "nodes", len(f.nodes), "edges", len(f.edges),
		"drawEdges", drawEdges, "batched", drawEdges && s.BatchEdgesDrawing)

	for _, l := range append([]listener(nil), r.listeners...) {
		l.fn()
	}
	return nil
}

// edgeJob returns the scheduler name of this renderer's edge job.
func (r *Renderer) edgeJob() string { return "edges_" + r.id }

func (r *Renderer) scheduleEdges(f *frame, s Settings) {
	name := r.edgeJob()
	b := newEdgeBatch(r, f, s, s.DrawEdgeLabels, func() { delete(r.jobs, name) })
	r.jobs[name] = b
	r.sched.Schedule(name, b)
}

func (r *Renderer) cancelJobs() {
	for name := range r.jobs {
		r.sched.Cancel(name)
		delete(r.jobs, name)
	}
}

func (r *Renderer) drawEdges(dc *gg.Context, f *frame, s *Settings, edges []*Edge) {
	for _, e := range edges {
		r.drawEdge(dc, f, s, e)
	}
}

func (r *Renderer) drawEdge(dc *gg.Context, f *frame, s *Settings, e *Edge) {
	src, dst := r.endpoints(f, e)
	r.edges.Lookup(e.Type, s.DefaultEdgeType).RenderEdge(dc, e, src, dst, s)
}

func (r *Renderer) drawEdgeLabels(dc *gg.Context, f *frame, s *Settings, edges []*Edge) {
	for _, e := range edges {
		if e.Hidden {
			continue
		}
		src, dst := r.endpoints(f, e)
		r.edgeLabels.Lookup(e.Type, s.DefaultEdgeType).RenderEdgeLabel(dc, e, src, dst, s)
	}
}

func (r *Renderer) endpoints(f *frame, e *Edge) (ScreenNode, ScreenNode) {
	return f.project(r.camera, r.graph.Node(e.Source)), f.project(r.camera, r.graph.Node(e.Target))
}

// drawHull outlines the visible leaves (degree <= 1) with a smoothed
// convex hull.
func (r *Renderer) drawHull(dc *gg.Context, f *frame, s *Settings) {
	var points []gg.Point
	for _, n := range f.nodes {
		if n.Hidden || r.graph.Degree(n.ID) > 1 {
			continue
		}
		sn := f.project(r.camera, n)
		points = append(points, gg.Pt(sn.X, sn.Y))
	}
	hull := geom.ConvexHull(points)
	if len(hull) < 3 {
		return
	}
	curve := geom.InterpolateCurve(geom.Flatten(hull), s.HullTension, s.HullSegments, true)
	geom.AppendPath(dc, curve)
	dc.ClosePath()
	setHexColor(dc, s.HullColor, s.DefaultNodeColor)
	if err := dc.StrokePreserve(); err != nil {
		s.Logger().Debug("hull stroke failed", "error", err)
	}
	fill(dc, s)
}

// Resize sets explicit viewport dimensions. Later render calls keep them
// instead of measuring the container, until AutoResize is called.
func (r *Renderer) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return errors.Wrapf(ErrInvalidSize, "width=%d, height=%d (both must be > 0)", width, height)
	}
	r.fixedSize = true
	r.width, r.height = width, height
	r.layers.Resize(width, height, r.settings.PixelRatio)
	return nil
}

// AutoResize drops explicit dimensions and measures the container.
func (r *Renderer) AutoResize() {
	r.fixedSize = false
	r.measure(r.settings.PixelRatio)
}

func (r *Renderer) measure(ratio float64) {
	w, h := r.container.Size()
	if r.layers.Resize(w, h, ratio) {
		r.logger().Debug("layers resized", "id", r.id, "width", w, "height", h, "ratio", ratio)
	}
	r.width, r.height = w, h
}

// Clear resets every layer to transparent.
func (r *Renderer) Clear() {
	r.layers.Clear()
}

// Dispose cancels the pending edge job, closes the captors and detaches
// every layer from the container. A disposed renderer cannot render.
func (r *Renderer) Dispose() error {
	if r.disposed {
		return ErrDisposed
	}
	r.disposed = true
	r.cancelJobs()

	var err error
	for i := len(r.captors) - 1; i >= 0; i-- {
		if c := r.captors[i]; c != nil {
			err = errors.CombineErrors(err, c.Close())
		}
	}
	r.captors = nil
	r.layers.Dispose()
	r.listeners = nil
	r.frame = nil
	r.logger().Info("renderer disposed", "id", r.id)
	return err
}

func (r *Renderer) logger() *slog.Logger {
	if r.log != nil {
		return r.log
	}
	return Logger()
}
