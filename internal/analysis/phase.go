package analysis

import (
	"fmt"
	"math"
	"strings"

	"github.com/jbeda/geom"

	"github.com/san-kum/dblpend/internal/physics"
)

// Axis selects one state component.
type Axis int

const (
	Angle0 Axis = iota
	Angle1
	Momentum0
	Momentum1
)

var axisNames = [...]string{"angle0", "angle1", "momentum0", "momentum1"}

func (a Axis) String() string { return axisNames[a] }

func ParseAxis(name string) (Axis, error) {
	for i, n := range axisNames {
		if n == name {
			return Axis(i), nil
		}
	}
	return 0, fmt.Errorf("unknown axis %q (want one of %v)", name, axisNames)
}

// Of returns the component of s selected by a. Angles are wrapped to
// (-π, π] so long runs stay in frame.
func (a Axis) Of(s physics.State) float64 {
	switch a {
	case Angle0:
		return wrap(s.Angle0)
	case Angle1:
		return wrap(s.Angle1)
	case Momentum0:
		return s.Momentum0
	default:
		return s.Momentum1
	}
}

func wrap(a float64) float64 {
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a <= 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}

// Portrait is a trajectory projected onto two state components.
type Portrait struct {
	X, Y   Axis
	Points []geom.Coord
}

func NewPortrait(states []physics.State, x, y Axis) *Portrait {
	p := &Portrait{X: x, Y: y, Points: make([]geom.Coord, len(states))}
	for i, s := range states {
		p.Points[i] = geom.Coord{X: x.Of(s), Y: y.Of(s)}
	}
	return p
}

// Poincare records (angle1, momentum1) each time angle0 crosses zero
// moving forward, interpolating linearly between samples.
func Poincare(states []physics.State) *Portrait {
	p := &Portrait{X: Angle1, Y: Momentum1}
	for i := 1; i < len(states); i++ {
		a, b := wrap(states[i-1].Angle0), wrap(states[i].Angle0)
		if !(a < 0 && b >= 0) || b-a > math.Pi {
			continue
		}
		f := -a / (b - a)
		s0, s1 := states[i-1], states[i]
		p.Points = append(p.Points, geom.Coord{
			X: wrap(s0.Angle1 + f*(s1.Angle1-s0.Angle1)),
			Y: s0.Momentum1 + f*(s1.Momentum1-s0.Momentum1),
		})
	}
	return p
}

// Bounds returns the smallest rectangle holding every point.
func (p *Portrait) Bounds() geom.Rect {
	if len(p.Points) == 0 {
		return geom.Rect{}
	}
	r := geom.Rect{Min: p.Points[0], Max: p.Points[0]}
	for _, pt := range p.Points[1:] {
		r.ExpandToContainCoord(pt)
	}
	return r
}

// ASCII plots the portrait on a width by height character grid with a
// tenth of padding on each side and the axes drawn where they are in view.
func (p *Portrait) ASCII(width, height int) string {
	if len(p.Points) == 0 || width < 2 || height < 2 {
		return ""
	}

	r := p.Bounds()
	rx, ry := r.Width(), r.Height()
	if rx == 0 {
		rx = 1
	}
	if ry == 0 {
		ry = 1
	}
	minX, minY := r.Min.X-rx*0.1, r.Min.Y-ry*0.1
	rx, ry = rx*1.2, ry*1.2

	grid := make([][]rune, height)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", width))
	}

	col := func(x float64) int { return int((x - minX) / rx * float64(width-1)) }
	row := func(y float64) int { return height - 1 - int((y-minY)/ry*float64(height-1)) }

	if c := col(0); minX <= 0 && 0 <= minX+rx && c >= 0 && c < width {
		for i := range grid {
			grid[i][c] = '│'
		}
	}
	if rr := row(0); minY <= 0 && 0 <= minY+ry && rr >= 0 && rr < height {
		for j := range grid[rr] {
			if grid[rr][j] == '│' {
				grid[rr][j] = '┼'
			} else {
				grid[rr][j] = '─'
			}
		}
	}

	for _, pt := range p.Points {
		c, rr := col(pt.X), row(pt.Y)
		if rr >= 0 && rr < height && c >= 0 && c < width {
			grid[rr][c] = '•'
		}
	}

	var sb strings.Builder
	for _, line := range grid {
		sb.WriteString(string(line))
		sb.WriteByte('\n')
	}
	return sb.String()
}
