package main

import (
	"fmt"
	"math/rand"
	"os"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/dblpend/internal/analysis"
	"github.com/san-kum/dblpend/internal/physics"
	"github.com/san-kum/dblpend/internal/storage"
)

var (
	xAxis    string
	yAxis    string
	poincare bool

	sweepParam string
	sweepFrom  float64
	sweepTo    float64
	sweepSteps int
)

func analyzeRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	records, err := st.LoadStates(args[0])
	if err != nil {
		return err
	}
	if len(records) < 2 {
		return fmt.Errorf("no data")
	}

	fmt.Printf("analysis: %s\n\n", meta.ID)

	states := make([]physics.State, len(records))
	for i, r := range records {
		states[i] = r.State
	}

	for _, axis := range []analysis.Axis{analysis.Angle0, analysis.Angle1} {
		data := make([]float64, len(states))
		for i, s := range states {
			data[i] = axis.Of(s)
		}

		ps := analysis.PowerSpectrum(data)
		fmt.Println(asciigraph.Plot(ps[:max(len(ps)/4, 1)],
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("power spectrum (%s)", axis)),
		))

		freq := analysis.DominantFrequency(data, meta.Dt)
		fmt.Printf("\n%s dominant frequency: %.3f hz", axis, freq)
		if freq > 0 {
			fmt.Printf(" (period %.3f s)", 1/freq)
		}
		fmt.Print("\n\n")
	}

	lambda := analysis.Lyapunov(meta.Constants(), states[0], meta.Dt, meta.Duration, 1e-8)
	fmt.Printf("largest lyapunov exponent: %.4f /s\n", lambda)
	if lambda > 0.1 {
		fmt.Println("motion is chaotic")
	} else {
		fmt.Println("motion looks regular")
	}
	return nil
}

func phasePlot(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	records, err := st.LoadStates(args[0])
	if err != nil {
		return err
	}

	states := make([]physics.State, len(records))
	for i, r := range records {
		states[i] = r.State
	}

	var portrait *analysis.Portrait
	if poincare {
		portrait = analysis.Poincare(states)
		if len(portrait.Points) == 0 {
			fmt.Println("no crossings detected")
			return nil
		}
	} else {
		x, err := analysis.ParseAxis(xAxis)
		if err != nil {
			return err
		}
		y, err := analysis.ParseAxis(yAxis)
		if err != nil {
			return err
		}
		portrait = analysis.NewPortrait(states, x, y)
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("%s vs %s, %d points\n\n", portrait.Y, portrait.X, len(portrait.Points))
	fmt.Print(portrait.ASCII(80, 24))
	return nil
}

func sweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	s0 := cfg.GetInitState(rand.New(rand.NewSource(cfg.Seed)))
	points, err := analysis.Sweep(cfg.PhysicalConstants(), s0, sweepParam, sweepFrom, sweepTo, sweepSteps, cfg.Dt, cfg.Duration)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tLAMBDA\n", sweepParam)
	data := make([]float64, len(points))
	for i, pt := range points {
		fmt.Fprintf(w, "%.4f\t%.4f\n", pt.Param, pt.Exponent)
		data[i] = pt.Exponent
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("lyapunov exponent vs %s", sweepParam)),
	))
	return nil
}
