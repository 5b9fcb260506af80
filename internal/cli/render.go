package cli

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/gogpu/gg"
	"github.com/spf13/cobra"

	"github.com/gogpu/graphview"
	"github.com/gogpu/graphview/camera"
	"github.com/gogpu/graphview/internal/graphfile"
	"github.com/gogpu/graphview/schedule"
	"github.com/gogpu/graphview/spatial"
)

const (
	defaultWidth  = 800 // default stage width
	defaultHeight = 600 // default stage height
	defaultFPS    = 60  // frame rate of the batched edge loop
	fitMargin     = 20  // viewport units kept free around a fitted graph
	imageScale    = 0.05
)

// renderOpts holds the flags of the render and demo commands.
type renderOpts struct {
	settings  string  // TOML settings file
	out       string  // output PNG path
	width     int     // stage width
	height    int     // stage height
	fit       bool    // center and zoom the camera on the graph
	x, y      float64 // camera position when not fitting
	ratio     float64 // camera zoom ratio when not fitting
	angle     float64 // camera rotation in radians
	moving    bool    // mark the camera as moving
	fps       float64 // frame rate for batched edges, <= 0 for unpaced
	batch     int     // edges per frame; 0 keeps the settings value
	hull      bool    // draw the hull overlay
	nodeImage string  // image drawn for nodes of type "image"
}

func defaultRenderOpts() renderOpts {
	return renderOpts{
		out:    "graph.png",
		width:  defaultWidth,
		height: defaultHeight,
		fit:    true,
		ratio:  1,
		fps:    defaultFPS,
	}
}

func (o *renderOpts) bind(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&o.settings, "settings", o.settings, "TOML settings file")
	f.StringVarP(&o.out, "out", "o", o.out, "output PNG file")
	f.IntVar(&o.width, "width", o.width, "stage width in pixels")
	f.IntVar(&o.height, "height", o.height, "stage height in pixels")
	f.BoolVar(&o.fit, "fit", o.fit, "fit the camera to the graph (overrides --x, --y, --ratio)")
	f.Float64Var(&o.x, "x", o.x, "camera x in graph space")
	f.Float64Var(&o.y, "y", o.y, "camera y in graph space")
	f.Float64Var(&o.ratio, "ratio", o.ratio, "camera zoom ratio (greater shows more)")
	f.Float64Var(&o.angle, "angle", o.angle, "camera rotation in radians")
	f.BoolVar(&o.moving, "moving", o.moving, "render as if the camera was being dragged")
	f.Float64Var(&o.fps, "fps", o.fps, "frame rate of the batched edge loop (<= 0 for unpaced)")
	f.IntVar(&o.batch, "batch", o.batch, "draw edges in batches of this size across frames")
	f.BoolVar(&o.hull, "hull", o.hull, "draw the hull overlay around leaf nodes")
	f.StringVar(&o.nodeImage, "node-image", o.nodeImage, `image file drawn for nodes of type "image"`)
}

func newRenderCmd() *cobra.Command {
	opts := defaultRenderOpts()
	var graphPath string

	cmd := &cobra.Command{
		Use:   "render [graph]",
		Short: "Render a JSON or YAML graph file to PNG",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				graphPath = args[0]
			}
			if graphPath == "" {
				return errors.WithHint(errors.New("no graph file"), "pass a file argument or --graph")
			}
			g, err := graphfile.ReadFile(graphPath)
			if err != nil {
				return err
			}
			return runRender(cmd.Context(), g, opts)
		},
	}
	cmd.Flags().StringVarP(&graphPath, "graph", "g", "", "graph file (.json, .yaml, .yml)")
	opts.bind(cmd)
	return cmd
}

// runRender renders g once, lets the scheduler finish any batched edges and
// writes the flattened stage.
func runRender(ctx context.Context, g *graphview.MemoryGraph, opts renderOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	if opts.width <= 0 || opts.height <= 0 {
		return errors.Wrapf(graphview.ErrInvalidSize, "stage %dx%d", opts.width, opts.height)
	}

	base := graphview.DefaultSettings()
	if opts.settings != "" {
		s, err := graphview.LoadSettings(opts.settings)
		if err != nil {
			return err
		}
		base = s
	}
	settingOpts := []graphview.SettingOption{func(s *graphview.Settings) { *s = base }}
	if opts.batch > 0 {
		settingOpts = append(settingOpts, graphview.WithBatching(opts.batch))
	}
	if opts.hull {
		settingOpts = append(settingOpts, graphview.WithHull(true))
	}

	rendererOpts := []graphview.Option{
		graphview.WithSettings(settingOpts...),
		graphview.WithLogger(slogFor(logger)),
	}
	if opts.nodeImage != "" {
		img, err := gg.LoadImage(opts.nodeImage)
		if err != nil {
			return errors.Wrapf(err, "load node image %s", opts.nodeImage)
		}
		rendererOpts = append(rendererOpts,
			graphview.WithNodeRenderer(graphview.TypeImage, graphview.ImageNode(img, imageScale)))
	}

	cam := newCamera(g, opts)
	stage := graphview.NewStage(opts.width, opts.height)
	r, err := graphview.New(g, cam, spatial.New(g.Nodes(), spatial.WithScale(cam)), stage, rendererOpts...)
	if err != nil {
		return err
	}
	defer func() {
		if err := r.Dispose(); err != nil {
			logger.Warn("dispose renderer", "err", err)
		}
	}()

	if err := r.Render(); err != nil {
		return err
	}

	driver := schedule.NewDriver(r.Scheduler(), opts.fps)
	driver.OnFrame = func(frame, steps int) {
		logger.Debug("frame", "n", frame, "steps", steps)
	}
	frames, err := driver.Run(ctx)
	if err != nil {
		return errors.Wrap(err, "edge frames")
	}

	if err := stage.SavePNG(opts.out); err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %d nodes and %d edges to %s in %d frames",
		len(r.NodesOnScreen()), len(r.EdgesOnScreen()), opts.out, frames+1))
	return nil
}

func newCamera(g *graphview.MemoryGraph, opts renderOpts) *camera.Camera {
	cam := camera.New()
	cam.Goto(opts.x, opts.y, opts.ratio, 0)
	if opts.fit {
		if bounds, ok := camera.Bounds(g.Nodes()); ok {
			cam.Fit(bounds, float64(opts.width), float64(opts.height), fitMargin)
		}
	}
	cam.Angle = opts.angle
	cam.SetMoving(opts.moving)
	return cam
}
