// Package render draws extracted trajectories with gonum/plot.
package render

import (
	"fmt"
	"image/color"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"trajviz/internal/plotdata"
	"trajviz/internal/trajectory"
)

// Agent pairs a plot series with the configuration it was extracted from.
type Agent struct {
	Series plotdata.PlotSeries
	Config trajectory.AgentConfig
}

// Agents extracts one Agent per trajectory.
func Agents(ts []trajectory.AgentTrajectory) []Agent {
	out := make([]Agent, 0, len(ts))
	for _, t := range ts {
		out = append(out, Agent{Series: plotdata.Extract(t), Config: t.Config})
	}
	return out
}

// Options controls what is drawn.
type Options struct {
	Title      string
	Footprints bool
	Endpoints  bool
	Width      vg.Length
	Height     vg.Length
}

// DefaultOptions draws everything on a 10x8 inch canvas.
func DefaultOptions() Options {
	return Options{
		Title:      "Agent trajectories",
		Footprints: true,
		Endpoints:  true,
		Width:      10 * vg.Inch,
		Height:     8 * vg.Inch,
	}
}

// kindStyle is the per-kind line dash and endpoint glyph.
type kindStyle struct {
	dashes []vg.Length
	glyph  draw.GlyphDrawer
}

var kindStyles = map[trajectory.MovementKind]kindStyle{
	trajectory.Idle:      {dashes: []vg.Length{vg.Points(1), vg.Points(3)}, glyph: draw.CircleGlyph{}},
	trajectory.Scheduled: {dashes: nil, glyph: draw.BoxGlyph{}},
	trajectory.Evasive:   {dashes: []vg.Length{vg.Points(6), vg.Points(3)}, glyph: draw.TriangleGlyph{}},
}

var legendGray = color.RGBA{R: 96, G: 96, B: 96, A: 255}

// Render builds a plot of every agent. Agents are drawn in ascending Order so
// higher-order agents end up on top.
func Render(agents []Agent, opts Options) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"
	p.Add(plotter.NewGrid())

	sorted := make([]Agent, len(agents))
	copy(sorted, agents)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Config.Order < sorted[j].Config.Order })

	usedKinds := map[trajectory.MovementKind]bool{}
	drawn, shapes := 0, 0
	for i, a := range sorted {
		col := plotutil.Color(i)

		if opts.Footprints {
			poly, err := footprint(a.Config, col)
			if err != nil {
				return nil, fmt.Errorf("agent %s footprint: %w", a.Config.Name, err)
			}
			if poly != nil {
				p.Add(poly)
				shapes++
			}
		}

		var thumb plot.Thumbnailer
		for _, run := range a.Series.Runs() {
			line, err := plotter.NewLine(xys(run.Points))
			if err != nil {
				return nil, fmt.Errorf("agent %s path: %w", a.Series.Name, err)
			}
			line.Color = col
			line.Width = vg.Points(1.5)
			line.Dashes = kindStyles[run.Kind].dashes
			p.Add(line)
			usedKinds[run.Kind] = true
			if thumb == nil {
				thumb = line
			}
			drawn += len(run.Points)
		}

		if opts.Endpoints {
			for _, k := range trajectory.Kinds {
				var pts plotter.XYs
				for _, e := range a.Series.Endpoints {
					if e.Kind == k {
						pts = append(pts, plotter.XY{X: e.X, Y: e.Y})
					}
				}
				if len(pts) == 0 {
					continue
				}
				sc, err := plotter.NewScatter(pts)
				if err != nil {
					return nil, fmt.Errorf("agent %s endpoints: %w", a.Series.Name, err)
				}
				sc.GlyphStyle.Color = col
				sc.GlyphStyle.Shape = kindStyles[k].glyph
				sc.GlyphStyle.Radius = vg.Points(3)
				p.Add(sc)
				usedKinds[k] = true
			}
		}

		if thumb == nil {
			// agents without points still get a legend entry
			ls := plotter.DefaultLineStyle
			ls.Color = col
			thumb = lineThumb{ls}
		}
		p.Legend.Add(a.Series.Name, thumb)
	}

	for _, k := range trajectory.Kinds {
		if !usedKinds[k] {
			continue
		}
		ls := plotter.DefaultLineStyle
		ls.Color = legendGray
		ls.Dashes = kindStyles[k].dashes
		p.Legend.Add(k.String(), lineThumb{ls}, glyphThumb{draw.GlyphStyle{Color: legendGray, Shape: kindStyles[k].glyph, Radius: vg.Points(3)}})
	}
	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10

	if drawn == 0 && shapes == 0 {
		p.X.Min, p.X.Max = 0, 1
		p.Y.Min, p.Y.Max = 0, 1
	}
	return p, nil
}

func footprint(cfg trajectory.AgentConfig, col color.Color) (*plotter.Polygon, error) {
	if len(cfg.Footprint.Exterior) == 0 {
		return nil, nil
	}
	rings := []plotter.XYer{ring(cfg.Footprint.Exterior, cfg.Position)}
	for _, in := range cfg.Footprint.Interiors {
		rings = append(rings, ring(in, cfg.Position))
	}
	poly, err := plotter.NewPolygon(rings...)
	if err != nil {
		return nil, err
	}
	r, g, b, _ := col.RGBA()
	poly.Color = color.NRGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: 48}
	poly.LineStyle.Color = col
	poly.LineStyle.Width = vg.Points(0.5)
	return poly, nil
}

// ring translates footprint vertices to the agent's initial position.
func ring(pts []trajectory.Point2D, at trajectory.Position) plotter.XYs {
	out := make(plotter.XYs, len(pts))
	for i, p := range pts {
		out[i] = plotter.XY{X: at.X + p.X, Y: at.Y + p.Y}
	}
	return out
}

func xys(pts []trajectory.SpacetimePoint) plotter.XYs {
	out := make(plotter.XYs, len(pts))
	for i, p := range pts {
		out[i] = plotter.XY{X: p.X, Y: p.Y}
	}
	return out
}

type lineThumb struct{ style draw.LineStyle }

func (t lineThumb) Thumbnail(c *draw.Canvas) {
	y := c.Center().Y
	c.StrokeLine2(t.style, c.Min.X, y, c.Max.X, y)
}

type glyphThumb struct{ style draw.GlyphStyle }

func (t glyphThumb) Thumbnail(c *draw.Canvas) {
	c.DrawGlyph(t.style, c.Center())
}

func (o Options) size() (w, h vg.Length) {
	w, h = o.Width, o.Height
	if w <= 0 {
		w = 10 * vg.Inch
	}
	if h <= 0 {
		h = 8 * vg.Inch
	}
	return w, h
}

// Save renders agents to path. The image format follows the file extension
// (png, svg, pdf, eps, jpg, tif).
func Save(path string, agents []Agent, opts Options) error {
	p, err := Render(agents, opts)
	if err != nil {
		return err
	}
	w, h := opts.size()
	if err := p.Save(w, h, path); err != nil {
		return fmt.Errorf("save plot %s: %w", filepath.Base(path), err)
	}
	return nil
}

// WriteTo renders agents to w in the given format.
func WriteTo(w io.Writer, format string, agents []Agent, opts Options) error {
	p, err := Render(agents, opts)
	if err != nil {
		return err
	}
	width, height := opts.size()
	wt, err := p.WriterTo(width, height, strings.ToLower(format))
	if err != nil {
		return fmt.Errorf("plot writer: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("write plot: %w", err)
	}
	return nil
}
