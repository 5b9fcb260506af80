package graphview

import (
	"image"

	"github.com/cockroachdb/errors"
	"github.com/gogpu/gg"
)

// Container hosts the layers of a renderer.
//
// Size is measured on every render call unless the renderer was given
// explicit dimensions. Attach is called once per layer at construction,
// Detach once per layer by Dispose.
type Container interface {
	Size() (width, height int)
	Attach(l *Layer) error
	Detach(l *Layer)
}

// Stage is an off-screen Container. It keeps attached layers in draw order
// and can flatten them into one image.
type Stage struct {
	width, height int
	layers        []*Layer
}

var _ Container = (*Stage)(nil)

// NewStage creates an empty stage of the given size.
func NewStage(width, height int) *Stage {
	return &Stage{width: width, height: height}
}

// Size returns the stage dimensions.
func (s *Stage) Size() (width, height int) { return s.width, s.height }

// SetSize changes the stage dimensions. Layers follow on the next render.
func (s *Stage) SetSize(width, height int) {
	s.width, s.height = width, height
}

// Attach appends l on top of the attached layers.
func (s *Stage) Attach(l *Layer) error {
	if l == nil {
		return errors.Wrap(ErrInvalidOptions, "attach nil layer")
	}
	for _, a := range s.layers {
		if a == l || a.Name() == l.Name() {
			return errors.Wrapf(ErrDuplicateLayer, "stage already holds %q", l.Name())
		}
	}
	s.layers = append(s.layers, l)
	return nil
}

// Detach removes l. Unknown layers are ignored.
func (s *Stage) Detach(l *Layer) {
	for i, a := range s.layers {
		if a == l {
			s.layers = append(s.layers[:i], s.layers[i+1:]...)
			return
		}
	}
}

// Layers returns the attached layers in draw order.
func (s *Stage) Layers() []*Layer { return s.layers }

// Flatten composites every attached surface layer, bottom first, onto a
// new pixmap with the given background. Element layers are skipped.
func (s *Stage) Flatten(background gg.RGBA) *gg.Pixmap {
	w, h := s.width, s.height
	for _, l := range s.layers {
		if l.Kind() == LayerSurface {
			w, h = l.pixelSize()
			break
		}
	}
	out := gg.NewPixmap(max(1, w), max(1, h))
	out.Clear(background)
	for _, l := range s.layers {
		if l.Kind() != LayerSurface || l.dc == nil {
			continue
		}
		compositeOver(out, l.dc.ResizeTarget())
	}
	return out
}

// Image flattens the stage over a transparent background.
func (s *Stage) Image() image.Image {
	return s.Flatten(gg.Transparent).ToImage()
}

// SavePNG flattens the stage over a white background and writes it as PNG.
func (s *Stage) SavePNG(path string) error {
	if err := s.Flatten(gg.White).SavePNG(path); err != nil {
		return errors.Wrapf(err, "save %s", path)
	}
	return nil
}
