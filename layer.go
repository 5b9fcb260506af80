package graphview

import (
	"image"
	"math"

	"github.com/cockroachdb/errors"
	"github.com/gogpu/gg"
)

// LayerKind tells whether a layer carries pixels.
type LayerKind int

const (
	// LayerSurface is a drawing surface backed by a gg.Context.
	LayerSurface LayerKind = iota

	// LayerElement is a positioned element without pixels, sized with the
	// other layers (input overlays, HTML annotations).
	LayerElement
)

// CompositeMode is the rule combining new drawing with a surface's pixels.
type CompositeMode int

const (
	// CompositeSourceOver draws new content over existing content.
	CompositeSourceOver CompositeMode = iota

	// CompositeDestinationOver draws new content behind existing content.
	CompositeDestinationOver
)

// Layer is one named surface managed by a LayerManager.
type Layer struct {
	name string
	kind LayerKind

	dc     *gg.Context
	behind *gg.Context // scratch target while mode is CompositeDestinationOver
	mode   CompositeMode

	width, height int
	ratio         float64
}

// Name returns the layer name.
func (l *Layer) Name() string { return l.name }

// Kind returns the layer kind.
func (l *Layer) Kind() LayerKind { return l.kind }

// Size returns the layer size in layer units (before the pixel ratio).
func (l *Layer) Size() (width, height int) { return l.width, l.height }

// PixelRatio returns the device pixels per layer unit.
func (l *Layer) PixelRatio() float64 { return l.ratio }

// Context returns the drawing context routines should draw into, or nil for
// element layers. While the layer is in CompositeDestinationOver mode this
// is a scratch context that is composited behind the layer's pixels when
// the mode is switched back.
func (l *Layer) Context() *gg.Context {
	if l.mode == CompositeDestinationOver && l.behind != nil {
		return l.behind
	}
	return l.dc
}

// CompositeMode returns the current compositing mode.
func (l *Layer) CompositeMode() CompositeMode { return l.mode }

// SetCompositeMode switches the compositing mode. Leaving
// CompositeDestinationOver flushes the pending scratch content behind the
// layer's pixels.
func (l *Layer) SetCompositeMode(m CompositeMode) {
	if l.kind != LayerSurface || m == l.mode {
		return
	}
	if l.mode == CompositeDestinationOver {
		compositeBehind(l.dc.ResizeTarget(), l.behind.ResizeTarget())
	}
	l.mode = m
	if m == CompositeDestinationOver {
		w, h := l.pixelSize()
		if l.behind == nil || l.behind.Width() != w || l.behind.Height() != h {
			l.behind = newSurface(w, h, l.ratio)
		} else {
			l.behind.ClearPath()
			l.behind.Clear()
		}
	}
}

// DrawBehind runs draw with destination-over compositing: everything draw
// paints ends up behind the pixels already on the layer. The prior mode is
// restored afterwards. Successive calls stack each drawing behind the
// previous one.
func (l *Layer) DrawBehind(draw func(dc *gg.Context)) {
	if l.kind != LayerSurface {
		return
	}
	prev := l.mode
	if prev == CompositeDestinationOver {
		l.SetCompositeMode(CompositeSourceOver)
	}
	l.SetCompositeMode(CompositeDestinationOver)
	draw(l.Context())
	l.SetCompositeMode(CompositeSourceOver)
	l.SetCompositeMode(prev)
}

// Pixel returns the color of the device pixel at (x, y).
func (l *Layer) Pixel(x, y int) gg.RGBA {
	if l.dc == nil {
		return gg.Transparent
	}
	return l.dc.ResizeTarget().GetPixel(x, y)
}

// Image returns a snapshot of the layer's pixels, or nil for element layers.
func (l *Layer) Image() image.Image {
	if l.dc == nil {
		return nil
	}
	return l.dc.Image()
}

// Clear resets the whole layer to transparent.
func (l *Layer) Clear() {
	if l.dc == nil {
		return
	}
	l.dc.ClearPath()
	l.dc.Clear()
	if l.behind != nil {
		l.behind.ClearPath()
		l.behind.Clear()
	}
}

func (l *Layer) pixelSize() (int, int) {
	return pixelDim(l.width, l.ratio), pixelDim(l.height, l.ratio)
}

func (l *Layer) resize(width, height int, ratio float64) {
	l.width, l.height, l.ratio = width, height, ratio
	if l.kind != LayerSurface {
		return
	}
	w, h := l.pixelSize()
	if l.dc == nil {
		l.dc = newSurface(w, h, ratio)
	} else {
		_ = l.dc.Resize(w, h)
		l.dc.Identity()
		if ratio != 1 {
			l.dc.Scale(ratio, ratio)
		}
	}
	l.behind = nil
	l.mode = CompositeSourceOver
}

func (l *Layer) close() {
	if l.dc != nil {
		_ = l.dc.Close()
		l.dc = nil
	}
	if l.behind != nil {
		_ = l.behind.Close()
		l.behind = nil
	}
}

// pixelDim converts a layer dimension to device pixels. gg contexts need at
// least one pixel.
func pixelDim(v int, ratio float64) int {
	return max(1, int(math.Round(float64(v)*ratio)))
}

func newSurface(w, h int, ratio float64) *gg.Context {
	dc := gg.NewContext(w, h)
	if ratio != 1 {
		dc.Scale(ratio, ratio)
	}
	return dc
}

// compositeBehind draws src behind dst in place (destination-over) using
// straight alpha, the pixel format of gg.Pixmap.
func compositeBehind(dst, src *gg.Pixmap) {
	w, h := min(dst.Width(), src.Width()), min(dst.Height(), src.Height())
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			s := src.GetPixel(x, y)
			if s.A == 0 {
				continue
			}
			d := dst.GetPixel(x, y)
			if d.A >= 1 {
				continue
			}
			inv := 1 - d.A
			outA := d.A + s.A*inv
			dst.SetPixel(x, y, gg.RGBA{
				R: (d.R*d.A + s.R*s.A*inv) / outA,
				G: (d.G*d.A + s.G*s.A*inv) / outA,
				B: (d.B*d.A + s.B*s.A*inv) / outA,
				A: outA,
			})
		}
	}
}

// compositeOver draws src over dst in place (source-over).
func compositeOver(dst, src *gg.Pixmap) {
	w, h := min(dst.Width(), src.Width()), min(dst.Height(), src.Height())
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			s := src.GetPixel(x, y)
			if s.A == 0 {
				continue
			}
			if s.A >= 1 {
				dst.SetPixel(x, y, s)
				continue
			}
			d := dst.GetPixel(x, y)
			inv := 1 - s.A
			outA := s.A + d.A*inv
			dst.SetPixel(x, y, gg.RGBA{
				R: (s.R*s.A + d.R*d.A*inv) / outA,
				G: (s.G*s.A + d.G*d.A*inv) / outA,
				B: (s.B*s.A + d.B*d.A*inv) / outA,
				A: outA,
			})
		}
	}
}

// LayerManager owns the named layers of one renderer and keeps them
// attached to the container in draw order.
type LayerManager struct {
	container Container
	layers    []*Layer
	byName    map[string]*Layer
	aliases   map[string]*Layer

	width, height int
	ratio         float64
}

func newLayerManager(c Container) *LayerManager {
	return &LayerManager{
		container: c,
		byName:    make(map[string]*Layer),
		aliases:   make(map[string]*Layer),
		ratio:     1,
	}
}

// Create adds a layer on top of the existing ones and attaches it to the
// container.
func (m *LayerManager) Create(kind LayerKind, name string) (*Layer, error) {
	if _, ok := m.byName[name]; ok {
		return nil, errors.Wrapf(ErrDuplicateLayer, "create layer %q", name)
	}
	l := &Layer{name: name, kind: kind}
	l.resize(m.width, m.height, m.ratio)
	if err := m.container.Attach(l); err != nil {
		l.close()
		return nil, errors.Wrapf(err, "attach layer %q", name)
	}
	m.layers = append(m.layers, l)
	m.byName[name] = l
	return l, nil
}

// Alias binds an additional context name to an existing layer.
func (m *LayerManager) Alias(alias, name string) error {
	l, ok := m.byName[name]
	if !ok {
		return errors.Wrapf(ErrUnknownLayer, "alias %q", alias)
	}
	m.aliases[alias] = l
	return nil
}

// Get returns the layer registered under name or bound to it by Alias.
func (m *LayerManager) Get(name string) *Layer {
	if l, ok := m.byName[name]; ok {
		return l
	}
	return m.aliases[name]
}

// Layers returns the layers in draw order.
func (m *LayerManager) Layers() []*Layer { return m.layers }

// Size returns the current layer size in layer units.
func (m *LayerManager) Size() (width, height int) { return m.width, m.height }

// Resize sizes every layer to width x height layer units at the given
// pixel ratio. It reports false and leaves the layers untouched when
// nothing changed.
func (m *LayerManager) Resize(width, height int, ratio float64) bool {
	if width == m.width && height == m.height && ratio == m.ratio {
		return false
	}
	m.width, m.height, m.ratio = width, height, ratio
	for _, l := range m.layers {
		l.resize(width, height, ratio)
	}
	return true
}

// Clear resets every surface layer to transparent.
func (m *LayerManager) Clear() {
	for _, l := range m.layers {
		l.Clear()
	}
}

// Dispose detaches every layer from the container and releases its surface.
func (m *LayerManager) Dispose() {
	for i := len(m.layers) - 1; i >= 0; i-- {
		l := m.layers[i]
		m.container.Detach(l)
		l.close()
	}
	m.layers = nil
	clear(m.byName)
	clear(m.aliases)
}
