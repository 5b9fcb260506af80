package graphview

import (
	"log/slog"
	"math"
	"sync"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/text/unicode/norm"
)

// Built-in routine type tags.
const (
	TypeSquare = "square"
	TypeCurve  = "curve"
	TypeImage  = "image"
)

// DiscNode draws a node as a filled disc. It is the default node routine.
var DiscNode NodeRenderer = NodeRendererFunc(func(dc *gg.Context, n ScreenNode, s *Settings) {
	setHexColor(dc, n.Color, s.DefaultNodeColor)
	dc.DrawCircle(n.X, n.Y, n.Size)
	fill(dc, s)
})

// SquareNode draws a node as a filled square of side 2*Size.
var SquareNode NodeRenderer = NodeRendererFunc(func(dc *gg.Context, n ScreenNode, s *Settings) {
	setHexColor(dc, n.Color, s.DefaultNodeColor)
	dc.DrawRectangle(n.X-n.Size, n.Y-n.Size, 2*n.Size, 2*n.Size)
	fill(dc, s)
})

// ImageNode returns a node routine drawing img centered on the node. The
// image is scaled by size*scale in both directions.
func ImageNode(img *gg.ImageBuf, scale float64) NodeRenderer {
	iw, ih := img.Bounds()
	return NodeRendererFunc(func(dc *gg.Context, n ScreenNode, _ *Settings) {
		w := n.Size * float64(iw) * scale
		h := n.Size * float64(ih) * scale
		if w <= 0 || h <= 0 {
			return
		}
		dc.DrawImageEx(img, gg.DrawImageOptions{
			X:         n.X - w/2,
			Y:         n.Y - h/2,
			DstWidth:  w,
			DstHeight: h,
		})
	})
}

// LineEdge draws an edge as a straight line. It is the default edge routine.
var LineEdge EdgeRenderer = EdgeRendererFunc(func(dc *gg.Context, e *Edge, source, target ScreenNode, s *Settings) {
	setEdgeStyle(dc, e, source, s)
	dc.MoveTo(source.X, source.Y)
	dc.LineTo(target.X, target.Y)
	stroke(dc, s)
})

// CurveEdge draws an edge as a quadratic curve bending to the right of the
// source-to-target direction.
var CurveEdge EdgeRenderer = EdgeRendererFunc(func(dc *gg.Context, e *Edge, source, target ScreenNode, s *Settings) {
	setEdgeStyle(dc, e, source, s)
	cx := (source.X+target.X)/2 + (target.Y-source.Y)/4
	cy := (source.Y+target.Y)/2 + (source.X-target.X)/4
	dc.MoveTo(source.X, source.Y)
	dc.QuadraticTo(cx, cy, target.X, target.Y)
	stroke(dc, s)
})

// TextLabel draws the node label to the right of the node. Labels of nodes
// smaller than Settings.LabelThreshold on screen are skipped. It is the
// default label routine.
var TextLabel LabelRenderer = LabelRendererFunc(func(dc *gg.Context, n ScreenNode, s *Settings) {
	if n.Label == "" || n.Size < s.LabelThreshold {
		return
	}
	face := labelFace(s.DefaultLabelSize, s.Logger())
	if face == nil {
		return
	}
	dc.SetFont(face)
	setHexColor(dc, s.DefaultLabelColor, "#000000")
	dc.DrawString(norm.NFC.String(n.Label), math.Round(n.X+n.Size+3), math.Round(n.Y+s.DefaultLabelSize/3))
})

// MidpointEdgeLabel draws the edge label centered between its endpoints.
// It is the default edge label routine.
var MidpointEdgeLabel EdgeLabelRenderer = EdgeLabelRendererFunc(func(dc *gg.Context, e *Edge, source, target ScreenNode, s *Settings) {
	if e.Label == "" {
		return
	}
	face := labelFace(s.DefaultLabelSize, s.Logger())
	if face == nil {
		return
	}
	dc.SetFont(face)
	setHexColor(dc, s.DefaultLabelColor, "#000000")
	dc.DrawStringAnchored(norm.NFC.String(e.Label), (source.X+target.X)/2, (source.Y+target.Y)/2, 0.5, 0.5)
})

func setEdgeStyle(dc *gg.Context, e *Edge, source ScreenNode, s *Settings) {
	color := e.Color
	if color == "" {
		color = s.DefaultEdgeColor
	}
	if color == "" {
		color = source.Color
	}
	setHexColor(dc, color, s.DefaultNodeColor)
	width := e.Size
	if width <= 0 {
		width = s.DefaultEdgeSize
	}
	dc.SetLineWidth(width)
}

func setHexColor(dc *gg.Context, hex, fallback string) {
	if hex == "" {
		hex = fallback
	}
	c := gg.Hex(hex)
	dc.SetRGBA(c.R, c.G, c.B, c.A)
}

func fill(dc *gg.Context, s *Settings) {
	if err := dc.Fill(); err != nil {
		s.Logger().Debug("fill failed", "error", err)
	}
}

func stroke(dc *gg.Context, s *Settings) {
	if err := dc.Stroke(); err != nil {
		s.Logger().Debug("stroke failed", "error", err)
	}
}

// labelFonts caches the label font source and one face per size.
var labelFonts struct {
	once   sync.Once
	source *text.FontSource
	mu     sync.Mutex
	faces  map[float64]text.Face
}

func labelFace(size float64, log *slog.Logger) text.Face {
	labelFonts.once.Do(func() {
		src, err := text.NewFontSource(goregular.TTF)
		if err != nil {
			log.Warn("label font unavailable", "error", err)
			return
		}
		labelFonts.source = src
		labelFonts.faces = make(map[float64]text.Face)
	})
	if labelFonts.source == nil {
		return nil
	}
	labelFonts.mu.Lock()
	defer labelFonts.mu.Unlock()
	face, ok := labelFonts.faces[size]
	if !ok {
		face = labelFonts.source.Face(size)
		labelFonts.faces[size] = face
	}
	return face
}
