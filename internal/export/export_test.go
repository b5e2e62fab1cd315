package export

import (
	"bytes"
	"image/png"
	"strings"
	"testing"

	"github.com/jbeda/geom"

	"github.com/san-kum/dblpend/internal/physics"
	"github.com/san-kum/dblpend/internal/sim"
	"github.com/san-kum/dblpend/internal/trail"
)

func testPendulum(t *testing.T, steps int) *sim.Pendulum {
	t.Helper()
	p, err := sim.NewPendulum(physics.Reference, physics.State{Angle0: 2.5, Angle1: 2.6}, 50)
	if err != nil {
		t.Fatalf("new pendulum: %v", err)
	}
	for i := 0; i < steps; i++ {
		p.Advance(0.016)
	}
	return p
}

func TestViewportProject(t *testing.T) {
	vp := NewViewport(800, 400, 1)
	got := vp.Project(geom.Coord{X: 0, Y: -1})
	want := geom.Coord{X: 400, Y: 200 + 400*RodFraction}
	if got.DistanceFrom(want) > 1e-9 {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestWriteSVG(t *testing.T) {
	b := trail.MustNew(10)
	for i := 0; i < 5; i++ {
		b.Push(trail.Point{X: float64(i), Y: float64(i * i)})
	}

	var buf bytes.Buffer
	if err := WriteSVG(&buf, b, DefaultOptions()); err != nil {
		t.Fatalf("write svg: %v", err)
	}
	out := buf.String()

	if n := strings.Count(out, "<line"); n != 4 {
		t.Errorf("expected 4 segments, got %d", n)
	}
	if !strings.Contains(out, "stroke-opacity='1.0000'") {
		t.Error("expected newest segment at full opacity")
	}
	if !strings.HasSuffix(out, "</svg>\n") {
		t.Error("expected closed svg document")
	}
}

func TestWriteSVGEmptyTrail(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSVG(&buf, trail.MustNew(4), DefaultOptions()); err != nil {
		t.Fatalf("write svg: %v", err)
	}
	if strings.Contains(buf.String(), "<line") {
		t.Error("expected no segments for an empty trail")
	}
}

func TestWriteSceneSVG(t *testing.T) {
	p := testPendulum(t, 20)

	var buf bytes.Buffer
	if err := WriteSceneSVG(&buf, p, DefaultOptions()); err != nil {
		t.Fatalf("write svg: %v", err)
	}
	out := buf.String()

	if n := strings.Count(out, "<line"); n != 19+2 {
		t.Errorf("expected 19 trail segments and 2 rods, got %d lines", n)
	}
	if n := strings.Count(out, "<circle"); n != 2 {
		t.Errorf("expected 2 masses, got %d", n)
	}
}

func TestRenderPNG(t *testing.T) {
	p := testPendulum(t, 30)
	opts := Options{Width: 200, Height: 120, Palette: LightPalette}

	var buf bytes.Buffer
	if err := RenderPNG(&buf, p, opts); err != nil {
		t.Fatalf("render: %v", err)
	}

	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 200 || b.Dy() != 120 {
		t.Errorf("expected 200x120, got %dx%d", b.Dx(), b.Dy())
	}

	r, g, bl, _ := img.At(0, 0).RGBA()
	if r>>8 != 255 || g>>8 != 255 || bl>>8 != 255 {
		t.Errorf("expected white background at corner, got %d %d %d", r>>8, g>>8, bl>>8)
	}
}

func TestRenderRejectsBadSize(t *testing.T) {
	p := testPendulum(t, 1)
	if err := RenderPNG(&bytes.Buffer{}, p, Options{Width: 0, Height: 10}); err == nil {
		t.Error("expected error for zero width")
	}
	if err := WriteSceneSVG(&bytes.Buffer{}, p, Options{Width: 10, Height: -1}); err == nil {
		t.Error("expected error for negative height")
	}
}

func TestPaletteByName(t *testing.T) {
	if p, err := PaletteByName("dark"); err != nil || p != DarkPalette {
		t.Errorf("expected dark palette, got %v, %v", p, err)
	}
	if _, err := PaletteByName("neon"); err == nil {
		t.Error("expected error for unknown palette")
	}
}
