package main

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"os"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/dblpend/internal/config"
	"github.com/san-kum/dblpend/internal/experiment"
	"github.com/san-kum/dblpend/internal/integrators"
	"github.com/san-kum/dblpend/internal/physics"
	"github.com/san-kum/dblpend/internal/sim"
	"github.com/san-kum/dblpend/internal/storage"
)

var (
	numRuns        int
	saveConfigPath string
)

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if saveConfigPath != "" {
		if err := config.Save(saveConfigPath, cfg); err != nil {
			return fmt.Errorf("save config: %w", err)
		}
		fmt.Printf("config written to %s\n", saveConfigPath)
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	exp, err := experiment.New(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("running double pendulum (g=%.2f, dt=%.4f, %gs)...\n", cfg.Constants.G, cfg.Dt, cfg.Duration)
	start := time.Now()

	result, err := exp.Run(cmd.Context())
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	runID, err := st.Save(storage.RunMetadata{
		Preset:     preset,
		G:          cfg.Constants.G,
		M:          cfg.Constants.M,
		L:          cfg.Constants.L,
		Seed:       cfg.Seed,
		Dt:         cfg.Dt,
		Duration:   cfg.Duration,
		Integrator: cfg.Integrator,
	}, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	for _, e := range result.Errors {
		fmt.Printf("warning: %v\n", e)
	}
	printMetrics(result.Metrics)
	return nil
}

func printMetrics(m map[string]float64) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("\nmetrics:")
	for _, name := range names {
		fmt.Printf("  %s: %.6g\n", name, m[name])
	}
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := storage.New(dataDir).List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tG\tDURATION\tDT\tINTEG\tSTEPS\tDRIFT")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%.2f\t%.2fs\t%.4fs\t%s\t%d\t%.2e\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.G,
			run.Duration,
			run.Dt,
			run.Integrator,
			run.Steps,
			run.EnergyDrift,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	records, err := st.LoadStates(args[0])
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("samples: %d\n\n", len(records))

	series := []struct {
		caption string
		value   func(storage.Record) float64
	}{
		{"angle0 (rad)", func(r storage.Record) float64 { return r.State.Angle0 }},
		{"angle1 (rad)", func(r storage.Record) float64 { return r.State.Angle1 }},
		{"energy", func(r storage.Record) float64 { return r.Energy }},
	}
	for _, s := range series {
		data := make([]float64, len(records))
		for i, r := range records {
			data[i] = s.value(r)
		}
		fmt.Println(asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(s.caption),
		))
		fmt.Println()
	}
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	return storage.New(dataDir).ExportJSON(os.Stdout, args[0])
}

func exportCSV(cmd *cobra.Command, args []string) error {
	records, err := storage.New(dataDir).LoadStates(args[0])
	if err != nil {
		return err
	}
	return storage.WriteCSV(os.Stdout, records)
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	names := args
	if len(names) == 0 {
		names = integrators.Names()
	}

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	fmt.Printf("comparing integrators (g=%.2f, dt=%.4f, duration=%.1fs, seed=%d)\n\n", cfg.Constants.G, cfg.Dt, cfg.Duration, cfg.Seed)
	fmt.Printf("%-12s  %-12s  %-12s  %-12s\n", "integrator", "final_a0", "energy_drift", "time_ms")
	fmt.Println(strings.Repeat("-", 52))

	for _, name := range names {
		c := *cfg
		c.Integrator = name

		exp, err := experiment.New(&c)
		if err != nil {
			fmt.Printf("%-12s  error: %v\n", name, err)
			continue
		}

		start := time.Now()
		result, err := exp.Run(cmd.Context())
		elapsed := time.Since(start)
		if err != nil {
			fmt.Printf("%-12s  error: %v\n", name, err)
			continue
		}

		final := result.States[len(result.States)-1]
		fmt.Printf("%-12s  %12.6f  %12.2e  %12.2f\n", name, final.Angle0, result.EnergyDrift, float64(elapsed.Microseconds())/1000)
	}
	return nil
}

func runEnsemble(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if numRuns <= 0 {
		return fmt.Errorf("runs must be positive, got %d", numRuns)
	}

	ens := sim.NewEnsemble(cfg.PhysicalConstants(), cfg.TrailCapacity, numRuns, cfg.Seed)
	start := time.Now()
	results, err := ens.Run(cmd.Context(), sim.Config{Dt: cfg.Dt, Duration: cfg.Duration, ValidateState: true})
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEED\tSTART_A0\tSTART_A1\tFINAL_A1\tENERGY\tDRIFT")
	totalDrift := 0.0
	for i, r := range results {
		first, last := r.States[0], r.States[len(r.States)-1]
		fmt.Fprintf(w, "%d\t%.4f\t%.4f\t%.4f\t%.6f\t%.2e\n",
			cfg.Seed+int64(i), first.Angle0, first.Angle1, last.Angle1, r.Energies[0], r.EnergyDrift)
		totalDrift += r.EnergyDrift
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\n%d runs in %v, mean drift %.2e\n", len(results), elapsed, totalDrift/float64(len(results)))
	return nil
}

func bench(cmd *cobra.Command, args []string) error {
	durations := []float64{1.0, 5.0, 10.0}
	dts := []float64{0.001, 0.01, 0.016}

	fmt.Println("benchmarking double pendulum")
	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INTEG\tDURATION\tDT\tSTEPS\tTIME\tSTEPS/SEC")

	rng := rand.New(rand.NewSource(42))
	s0 := physics.NewState(rng)
	for _, name := range integrators.Names() {
		integ, err := experiment.Integrator(name)
		if err != nil {
			return err
		}
		for _, dur := range durations {
			for _, step := range dts {
				p, err := sim.NewPendulum(physics.Reference, s0, config.DefaultTrailCapacity)
				if err != nil {
					return err
				}
				p.SetIntegrator(integ)

				start := time.Now()
				result, err := sim.New().Run(context.Background(), p, sim.Config{Dt: step, Duration: dur})
				if err != nil {
					return err
				}
				elapsed := time.Since(start)

				rate := float64(result.StepsTaken) / math.Max(elapsed.Seconds(), 1e-9)
				fmt.Fprintf(w, "%s\t%.1fs\t%.4fs\t%d\t%v\t%.0f\n",
					name, dur, step, result.StepsTaken, elapsed, rate)
			}
		}
	}
	return w.Flush()
}
