package viz

import (
	"errors"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"io"
	"os"

	"github.com/san-kum/dblpend/internal/export"
	"github.com/san-kum/dblpend/internal/sim"
)

const (
	recordSize  = 320
	recordEvery = 2
	// gif delays are in hundredths of a second; every other 60 Hz frame.
	recordDelay = 3
)

// Recorder collects rendered frames of a pendulum for a GIF. It keeps at
// most limit frames and drops later ones.
type Recorder struct {
	frames []*image.Paletted
	limit  int
	calls  int
	opts   export.Options
}

func NewRecorder(limit int) *Recorder {
	return &Recorder{
		limit: limit,
		opts:  export.Options{Width: recordSize, Height: recordSize, Palette: export.DarkPalette},
	}
}

func (r *Recorder) Len() int { return len(r.frames) }

// Capture renders p into a new frame on every recordEvery-th call.
func (r *Recorder) Capture(p *sim.Pendulum) error {
	r.calls++
	if (r.calls-1)%recordEvery != 0 || len(r.frames) >= r.limit {
		return nil
	}

	dc, err := export.Render(p, r.opts)
	if err != nil {
		return err
	}
	defer dc.Close()

	src := dc.Image()
	frame := image.NewPaletted(src.Bounds(), palette.Plan9)
	draw.FloydSteinberg.Draw(frame, src.Bounds(), src, image.Point{})
	r.frames = append(r.frames, frame)
	return nil
}

func (r *Recorder) Encode(w io.Writer) error {
	anim := &gif.GIF{
		Image: r.frames,
		Delay: make([]int, len(r.frames)),
	}
	for i := range anim.Delay {
		anim.Delay[i] = recordDelay
	}
	return gif.EncodeAll(w, anim)
}

// ErrNoFrames is returned by Save when nothing has been captured.
var ErrNoFrames = errors.New("viz: no frames recorded")

// Save writes the captured frames to path. It creates no file when there
// are no frames.
func (r *Recorder) Save(path string) error {
	if len(r.frames) == 0 {
		return ErrNoFrames
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := r.Encode(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
