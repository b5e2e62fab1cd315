package export

import (
	"io"

	"github.com/gogpu/gg"

	"github.com/san-kum/dblpend/internal/dynamo"
	"github.com/san-kum/dblpend/internal/sim"
)

// Render rasterizes the pendulum scene into a new gg context. The caller
// owns the context and must Close it.
func Render(p *sim.Pendulum, opts Options) (*gg.Context, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	dc := gg.NewContext(opts.Width, opts.Height)
	dc.ClearWithColor(gg.Hex(opts.Palette.Background))
	vp := NewViewport(opts.Width, opts.Height, p.Constants().L)

	tc := gg.Hex(opts.Palette.Trail)
	dc.SetLineCap(gg.LineCapButt)
	dc.SetLineWidth(vp.TrailWidth())
	for seg := range p.Trail().Segments() {
		a, b := vp.Project(seg.Newer), vp.Project(seg.Older)
		dc.SetRGBA(tc.R, tc.G, tc.B, seg.Weight)
		dc.DrawLine(a.X, a.Y, b.X, b.Y)
		if err := dc.Stroke(); err != nil {
			dc.Close()
			return nil, err
		}
	}

	upper, lower := p.Positions()
	u, l := vp.Project(upper), vp.Project(lower)

	rc := gg.Hex(opts.Palette.Rod)
	dc.SetRGBA(rc.R, rc.G, rc.B, 1)
	dc.SetLineCap(gg.LineCapRound)
	dc.SetLineWidth(vp.RodWidth())
	// Two separate strokes so the joint is capped on both rods.
	dc.DrawLine(vp.Center.X, vp.Center.Y, u.X, u.Y)
	if err := dc.Stroke(); err != nil {
		dc.Close()
		return nil, err
	}
	dc.DrawLine(u.X, u.Y, l.X, l.Y)
	if err := dc.Stroke(); err != nil {
		dc.Close()
		return nil, err
	}

	mc := gg.Hex(opts.Palette.Mass)
	dc.SetRGBA(mc.R, mc.G, mc.B, 1)
	dc.DrawCircle(u.X, u.Y, vp.MassRadius())
	dc.DrawCircle(l.X, l.Y, vp.MassRadius())
	if err := dc.Fill(); err != nil {
		dc.Close()
		return nil, err
	}

	return dc, nil
}

// RenderPNG writes the pendulum scene as a PNG image.
func RenderPNG(w io.Writer, p *sim.Pendulum, opts Options) error {
	dc, err := Render(p, opts)
	if err != nil {
		return err
	}
	defer dc.Close()

	dynamo.Logger().Debug("rendered png", "width", opts.Width, "height", opts.Height, "segments", max(p.Trail().Len()-1, 0))
	return dc.EncodePNG(w)
}
