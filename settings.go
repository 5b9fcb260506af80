package graphview

import (
	"io"
	"log/slog"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
)

// Settings controls what a render call draws and how.
//
// Settings are resolved per call: DefaultSettings, then the instance
// overrides given to New with WithSettings, then the per-call overrides
// passed to Render. The resolved value is a copy and does not change while
// the call runs.
type Settings struct {
	DrawEdges      bool `toml:"draw_edges"`
	DrawNodes      bool `toml:"draw_nodes"`
	DrawLabels     bool `toml:"draw_labels"`
	DrawEdgeLabels bool `toml:"draw_edge_labels"`

	// HideEdgesOnMove skips edges while the camera is animated or moving.
	HideEdgesOnMove bool `toml:"hide_edges_on_move"`

	// BatchEdgesDrawing spreads edge drawing over scheduler ticks,
	// CanvasEdgesBatchSize edges per tick.
	BatchEdgesDrawing    bool `toml:"batch_edges_drawing"`
	CanvasEdgesBatchSize int  `toml:"canvas_edges_batch_size"`

	DefaultNodeType   string  `toml:"default_node_type"`
	DefaultEdgeType   string  `toml:"default_edge_type"`
	DefaultNodeColor  string  `toml:"default_node_color"`
	DefaultEdgeColor  string  `toml:"default_edge_color"`
	DefaultLabelColor string  `toml:"default_label_color"`
	DefaultLabelSize  float64 `toml:"default_label_size"`
	DefaultEdgeSize   float64 `toml:"default_edge_size"`

	// LabelThreshold is the minimum on-screen node size for its label to
	// be drawn.
	LabelThreshold float64 `toml:"label_threshold"`

	// PixelRatio is the number of device pixels per layer unit.
	PixelRatio float64 `toml:"pixel_ratio"`

	// DrawHull strokes and fills a smoothed convex hull around the visible
	// nodes of degree at most one.
	DrawHull     bool    `toml:"draw_hull"`
	HullColor    string  `toml:"hull_color"`
	HullTension  float64 `toml:"hull_tension"`
	HullSegments int     `toml:"hull_segments"`

	// log is the logger of the renderer resolving these settings. Drawing
	// routines report through it.
	log *slog.Logger
}

// Logger returns the logger of the render call, or the package Logger
// outside of one.
func (s *Settings) Logger() *slog.Logger {
	if s.log != nil {
		return s.log
	}
	return Logger()
}

// DefaultType is the registry key of the built-in drawing routines.
const DefaultType = "def"

// DefaultSettings returns the settings used when nothing is overridden.
func DefaultSettings() Settings {
	return Settings{
		DrawEdges:            true,
		DrawNodes:            true,
		DrawLabels:           true,
		DrawEdgeLabels:       false,
		HideEdgesOnMove:      false,
		BatchEdgesDrawing:    false,
		CanvasEdgesBatchSize: 500,
		DefaultNodeType:      DefaultType,
		DefaultEdgeType:      DefaultType,
		DefaultNodeColor:     "#000000",
		DefaultEdgeColor:     "",
		DefaultLabelColor:    "#000000",
		DefaultLabelSize:     14,
		DefaultEdgeSize:      1,
		LabelThreshold:       8,
		PixelRatio:           1,
		DrawHull:             false,
		HullColor:            "#64c8ff80",
		HullTension:          0.2,
		HullSegments:         25,
	}
}

// Validate reports whether the settings can drive a render call.
func (s Settings) Validate() error {
	switch {
	case s.CanvasEdgesBatchSize < 1:
		return errors.Wrapf(ErrInvalidOptions, "canvas_edges_batch_size must be >= 1, got %d", s.CanvasEdgesBatchSize)
	case s.PixelRatio <= 0:
		return errors.Wrapf(ErrInvalidOptions, "pixel_ratio must be > 0, got %g", s.PixelRatio)
	case s.DefaultLabelSize <= 0:
		return errors.Wrapf(ErrInvalidOptions, "default_label_size must be > 0, got %g", s.DefaultLabelSize)
	case s.HullSegments < 1:
		return errors.Wrapf(ErrInvalidOptions, "hull_segments must be >= 1, got %d", s.HullSegments)
	}
	return nil
}

// SettingOption overrides part of a Settings value.
type SettingOption func(*Settings)

// Apply returns a copy of s with opts applied in order.
func (s Settings) Apply(opts ...SettingOption) Settings {
	for _, opt := range opts {
		if opt != nil {
			opt(&s)
		}
	}
	return s
}

// WithBatching enables batched edge drawing with the given batch size.
func WithBatching(size int) SettingOption {
	return func(s *Settings) {
		s.BatchEdgesDrawing = true
		s.CanvasEdgesBatchSize = size
	}
}

// WithoutEdges disables edge drawing for the call.
func WithoutEdges() SettingOption {
	return func(s *Settings) { s.DrawEdges = false }
}

// WithHull toggles the degree-one hull overlay.
func WithHull(enabled bool) SettingOption {
	return func(s *Settings) { s.DrawHull = enabled }
}

// DecodeSettings reads TOML from r over DefaultSettings. Keys missing from
// the document keep their default value.
func DecodeSettings(r io.Reader) (Settings, error) {
	s := DefaultSettings()
	md, err := toml.NewDecoder(r).Decode(&s)
	if err != nil {
		return Settings{}, errors.Wrap(err, "decode settings")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Settings{}, errors.WithHintf(
			errors.Wrapf(ErrInvalidOptions, "unknown settings key %q", undecoded[0].String()),
			"keys use snake_case, e.g. batch_edges_drawing")
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// LoadSettings reads a TOML settings file over DefaultSettings.
func LoadSettings(path string) (Settings, error) {
	f, err := os.Open(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return Settings{}, errors.Wrapf(err, "open %s", path)
	}
	defer func() {
		_ = f.Close()
	}()
	return DecodeSettings(f)
}
