package main

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/san-kum/dblpend/internal/config"
	"github.com/san-kum/dblpend/internal/dynamo"
	"github.com/san-kum/dblpend/internal/experiment"
	"github.com/san-kum/dblpend/internal/export"
	"github.com/san-kum/dblpend/internal/sim"
	"github.com/san-kum/dblpend/internal/viz"
)

var (
	outPath     string
	paletteName string
	trailOnly   bool
)

func newPendulum(cfg *config.Config, rng *rand.Rand) (*sim.Pendulum, error) {
	p, err := sim.NewPendulum(cfg.PhysicalConstants(), cfg.GetInitState(rng), cfg.TrailCapacity)
	if err != nil {
		return nil, err
	}
	p.MaxStep = time.Duration(cfg.MaxStepMs * float64(time.Millisecond))

	integ, err := experiment.Integrator(cfg.Integrator)
	if err != nil {
		return nil, err
	}
	p.SetIntegrator(integ)
	return p, nil
}

// liveLogger opens path for appending and returns a debug logger writing
// to it. The live view owns the terminal, so it cannot log to stderr.
func liveLogger(path string) (*slog.Logger, io.Closer, error) {
	f, err := tea.LogToFile(path, "dblpend")
	if err != nil {
		return nil, nil, err
	}
	return slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})), f, nil
}

func runLive(cmd *cobra.Command, args []string) error {
	if verbose {
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			return err
		}
		logger, closer, err := liveLogger(filepath.Join(dataDir, "live.log"))
		if err != nil {
			return err
		}
		defer closer.Close()
		dynamo.SetLogger(logger)
		defer dynamo.SetLogger(nil)
	}

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	p, err := newPendulum(cfg, rng)
	if err != nil {
		return err
	}

	m := viz.NewModel(p, rng, cfg.Render.Theme)
	prog := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := prog.Run(); err != nil {
		return err
	}
	return nil
}

func snapshot(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	pal, err := export.PaletteByName(paletteName)
	if err != nil {
		return err
	}
	opts := export.Options{Width: cfg.Render.Width, Height: cfg.Render.Height, Palette: pal}

	exp, err := experiment.New(cfg)
	if err != nil {
		return err
	}
	if _, err := exp.Run(cmd.Context()); err != nil {
		return err
	}
	p := exp.Pendulum()

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}

	switch ext := strings.ToLower(filepath.Ext(outPath)); ext {
	case ".png":
		err = export.RenderPNG(f, p, opts)
	case ".svg":
		if trailOnly {
			err = export.WriteSVG(f, p.Trail(), opts)
		} else {
			err = export.WriteSceneSVG(f, p, opts)
		}
	default:
		err = fmt.Errorf("unsupported output format %q (want .png or .svg)", ext)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}

	fmt.Printf("wrote %s (t=%.2fs, %d trail samples)\n", outPath, p.Time(), p.Trail().Len())
	return nil
}
