package export

import (
	"fmt"
	"io"

	"github.com/jbeda/geom"

	"github.com/san-kum/dblpend/internal/sim"
	"github.com/san-kum/dblpend/internal/trail"
)

// svgWriter emits SVG elements and keeps the first write error.
type svgWriter struct {
	w   io.Writer
	err error
}

func (s *svgWriter) printf(format string, a ...any) {
	if s.err != nil {
		return
	}
	_, s.err = fmt.Fprintf(s.w, format, a...)
}

func (s *svgWriter) start(viewBox geom.Rect, background string) {
	s.printf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" version="1.1" viewBox="%g %g %g %g">
`, viewBox.Min.X, viewBox.Min.Y, viewBox.Width(), viewBox.Height())
	s.printf("<rect x='%g' y='%g' width='%g' height='%g' fill='%s'/>\n",
		viewBox.Min.X, viewBox.Min.Y, viewBox.Width(), viewBox.Height(), background)
}

func (s *svgWriter) end() { s.printf("</svg>\n") }

func (s *svgWriter) line(p1, p2 geom.Coord, style string) {
	s.printf("<line x1='%g' y1='%g' x2='%g' y2='%g' %s/>\n", p1.X, p1.Y, p2.X, p2.Y, style)
}

func (s *svgWriter) circle(c geom.Coord, r float64, style string) {
	s.printf("<circle cx='%g' cy='%g' r='%g' %s/>\n", c.X, c.Y, r, style)
}

// flip maps y-up trail coordinates to SVG's y-down space.
func flip(p geom.Coord) geom.Coord { return geom.Coord{X: p.X, Y: -p.Y} }

// trailViewBox pads the trail bounds by a tenth of their larger side. An
// empty or degenerate trail gets a unit box.
func trailViewBox(b *trail.Buffer) geom.Rect {
	r := b.Bounds()
	r = geom.Rect{Min: flip(geom.Coord{X: r.Min.X, Y: r.Max.Y}), Max: flip(geom.Coord{X: r.Max.X, Y: r.Min.Y})}
	pad := 0.1 * max(r.Width(), r.Height())
	if pad == 0 {
		pad = 0.5
	}
	r.Min.X -= pad
	r.Min.Y -= pad
	r.Max.X += pad
	r.Max.Y += pad
	return r
}

// WriteSVG draws the trail alone, fitted to its bounds. Each segment's
// stroke-opacity is its decay weight.
func WriteSVG(w io.Writer, b *trail.Buffer, opts Options) error {
	box := trailViewBox(b)
	width := 0.005 * max(box.Width(), box.Height())

	s := &svgWriter{w: w}
	s.start(box, opts.Palette.Background)
	for seg := range b.Segments() {
		s.line(flip(seg.Newer), flip(seg.Older), fmt.Sprintf(
			"stroke='%s' stroke-width='%g' stroke-opacity='%.4f'", opts.Palette.Trail, width, seg.Weight))
	}
	s.end()
	return s.err
}

// WriteSceneSVG draws the trail, both rods and both masses in image
// coordinates of opts.Width by opts.Height.
func WriteSceneSVG(w io.Writer, p *sim.Pendulum, opts Options) error {
	if err := opts.validate(); err != nil {
		return err
	}
	vp := NewViewport(opts.Width, opts.Height, p.Constants().L)
	box := geom.Rect{Max: geom.Coord{X: float64(opts.Width), Y: float64(opts.Height)}}

	s := &svgWriter{w: w}
	s.start(box, opts.Palette.Background)

	for seg := range p.Trail().Segments() {
		s.line(vp.Project(seg.Newer), vp.Project(seg.Older), fmt.Sprintf(
			"stroke='%s' stroke-width='%g' stroke-opacity='%.4f'", opts.Palette.Trail, vp.TrailWidth(), seg.Weight))
	}

	pivot := vp.Center
	upper, lower := p.Positions()
	u, l := vp.Project(upper), vp.Project(lower)
	rod := fmt.Sprintf("stroke='%s' stroke-width='%g' stroke-linecap='round'", opts.Palette.Rod, vp.RodWidth())
	s.line(pivot, u, rod)
	s.line(u, l, rod)

	mass := fmt.Sprintf("fill='%s'", opts.Palette.Mass)
	s.circle(u, vp.MassRadius(), mass)
	s.circle(l, vp.MassRadius(), mass)

	s.end()
	return s.err
}
