package viz

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/jbeda/geom"
)

func TestCanvasSet(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(3, 3)
	c.Set(-1, 0)
	c.Set(4, 0)

	if !c.IsSet(0, 0) || !c.IsSet(3, 3) {
		t.Error("expected dots to be set")
	}
	if c.IsSet(1, 0) {
		t.Error("unexpected dot at (1, 0)")
	}

	got := c.String()
	want := string(rune(brailleBase+0x01)) + string(rune(brailleBase+0x80)) + "\n"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestCanvasDrawLine(t *testing.T) {
	c := NewCanvas(10, 5)
	c.DrawLine(0, 0, 19, 19)
	for i := 0; i < 20; i++ {
		if !c.IsSet(i, i) {
			t.Fatalf("expected diagonal dot at %d", i)
		}
	}

	c.Clear()
	c.DrawLine(15, 2, 3, 2)
	for x := 3; x <= 15; x++ {
		if !c.IsSet(x, 2) {
			t.Fatalf("expected horizontal dot at %d", x)
		}
	}
	if c.IsSet(2, 2) || c.IsSet(16, 2) {
		t.Error("line overshot its endpoints")
	}
}

func TestCanvasLineClipsOffscreen(t *testing.T) {
	c := NewCanvas(4, 2)
	c.Line(geom.Coord{X: -50, Y: -50}, geom.Coord{X: 50, Y: 50})
	if !c.IsSet(0, 0) || !c.IsSet(7, 7) {
		t.Error("expected the visible part of the line")
	}
}

func TestCanvasDisc(t *testing.T) {
	c := NewCanvas(10, 5)
	c.Disc(geom.Coord{X: 10, Y: 10}, 2)
	for _, p := range [][2]int{{10, 10}, {12, 10}, {8, 10}, {10, 12}, {10, 8}} {
		if !c.IsSet(p[0], p[1]) {
			t.Errorf("expected dot at %v", p)
		}
	}
	if c.IsSet(13, 10) {
		t.Error("disc too large")
	}
}

func TestCanvasStringShape(t *testing.T) {
	c := NewCanvas(7, 3)
	lines := strings.Split(strings.TrimSuffix(c.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(lines))
	}
	for _, l := range lines {
		if utf8.RuneCountInString(l) != 7 {
			t.Errorf("expected 7 cells, got %d", utf8.RuneCountInString(l))
		}
	}
}
