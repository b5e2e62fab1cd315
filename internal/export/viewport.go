package export

import (
	"fmt"
	"math"

	"github.com/jbeda/geom"
)

// Scene proportions, as fractions of the shorter image side.
const (
	RodFraction  = 0.23
	MassFraction = 0.035
	RodWidth     = 0.04
)

// Palette holds "#rrggbb" colors for a rendered scene.
type Palette struct {
	Background string
	Trail      string
	Rod        string
	Mass       string
}

var (
	LightPalette = Palette{Background: "#ffffff", Trail: "#0000ff", Rod: "#000000", Mass: "#000000"}
	DarkPalette  = Palette{Background: "#000000", Trail: "#0088ff", Rod: "#ffffff", Mass: "#ffffff"}
)

// PaletteByName returns "light" or "dark".
func PaletteByName(name string) (Palette, error) {
	switch name {
	case "", "light":
		return LightPalette, nil
	case "dark":
		return DarkPalette, nil
	}
	return Palette{}, fmt.Errorf("unknown palette: %s", name)
}

type Options struct {
	Width, Height int
	Palette       Palette
}

func DefaultOptions() Options {
	return Options{Width: 800, Height: 800, Palette: LightPalette}
}

func (o Options) validate() error {
	if o.Width <= 0 || o.Height <= 0 {
		return fmt.Errorf("image size must be positive, got %dx%d", o.Width, o.Height)
	}
	return nil
}

// Viewport maps pendulum coordinates (pivot at the origin, y up, lengths
// in units of the rod length) to image pixels.
type Viewport struct {
	Center geom.Coord
	Scale  float64
	Short  float64
}

func NewViewport(width, height int, rodLength float64) Viewport {
	short := math.Min(float64(width), float64(height))
	return Viewport{
		Center: geom.Coord{X: float64(width) / 2, Y: float64(height) / 2},
		Scale:  short * RodFraction / rodLength,
		Short:  short,
	}
}

func (v Viewport) Project(p geom.Coord) geom.Coord {
	return geom.Coord{
		X: v.Center.X + p.X*v.Scale,
		Y: v.Center.Y - p.Y*v.Scale,
	}
}

func (v Viewport) TrailWidth() float64 { return v.Short * RodFraction / 60 }
func (v Viewport) RodWidth() float64   { return v.Short * RodWidth / 4 }
func (v Viewport) MassRadius() float64 { return v.Short * MassFraction / 2 }
