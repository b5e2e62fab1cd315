package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/dblpend/internal/config"
	"github.com/san-kum/dblpend/internal/dynamo"
	"github.com/san-kum/dblpend/internal/integrators"
)

var (
	dataDir    string
	verbose    bool
	configFile string
	preset     string

	dt         float64
	duration   float64
	seed       int64
	gravity    float64
	mass       float64
	length     float64
	angle0     float64
	angle1     float64
	momentum0  float64
	momentum1  float64
	integrator string
	trailCap   int
	maxStepMs  float64
	theme      string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "dblpend",
		Short: "double pendulum simulator",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				dynamo.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
			}
		},
		RunE:         runLive,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".dblpend", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging to stderr (the live view logs to <data>/live.log)")
	addSimFlags(rootCmd)

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "animate the pendulum in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addSimFlags(liveCmd)

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a headless simulation and store it",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addSimFlags(runCmd)
	runCmd.Flags().StringVar(&saveConfigPath, "save-config", "", "write the resolved config to this yaml file")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot angles and energy of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a stored run to JSON on stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export a stored trajectory to CSV on stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "simulate headlessly and render the final frame to PNG or SVG",
		Args:  cobra.NoArgs,
		RunE:  snapshot,
	}
	addSimFlags(snapshotCmd)
	snapshotCmd.Flags().StringVarP(&outPath, "out", "o", "pendulum.png", "output file (.png or .svg)")
	snapshotCmd.Flags().StringVar(&paletteName, "palette", "light", "color palette (light, dark)")
	snapshotCmd.Flags().BoolVar(&trailOnly, "trail-only", false, "svg: draw only the trail, fitted to its bounds")

	compareCmd := &cobra.Command{
		Use:   "compare [integrator...]",
		Short: "compare energy drift across integrators",
		RunE:  compareIntegrators,
	}
	addSimFlags(compareCmd)

	ensembleCmd := &cobra.Command{
		Use:   "ensemble",
		Short: "run independent pendulums concurrently with consecutive seeds",
		Args:  cobra.NoArgs,
		RunE:  runEnsemble,
	}
	addSimFlags(ensembleCmd)
	ensembleCmd.Flags().IntVar(&numRuns, "runs", 8, "number of pendulums")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "measure integration throughput",
		Args:  cobra.NoArgs,
		RunE:  bench,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency and chaos analysis of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	phaseCmd := &cobra.Command{
		Use:   "phase [run_id]",
		Short: "phase portrait of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  phasePlot,
	}
	phaseCmd.Flags().StringVar(&xAxis, "x-axis", "angle0", "state component for the x axis")
	phaseCmd.Flags().StringVar(&yAxis, "y-axis", "momentum0", "state component for the y axis")
	phaseCmd.Flags().BoolVar(&poincare, "poincare", false, "plot the section at upward zero crossings of angle0")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "largest Lyapunov exponent over a range of one constant",
		Args:  cobra.NoArgs,
		RunE:  sweep,
	}
	addSimFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepParam, "param", "g", "constant to sweep (g, m, l)")
	sweepCmd.Flags().Float64Var(&sweepFrom, "from", 0.5, "first value")
	sweepCmd.Flags().Float64Var(&sweepTo, "to", 3.0, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 20, "number of values")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				start := "random"
				if !p.InitState.Random {
					start = fmt.Sprintf("a0=%.2f a1=%.2f", p.InitState.Angle0, p.InitState.Angle1)
				}
				fmt.Printf("  %-10s g=%.2f dt=%.4f time=%.0fs %s\n", name, p.Constants.G, p.Dt, p.Duration, start)
			}
			return nil
		},
	}

	rootCmd.AddCommand(liveCmd, runCmd, listCmd, plotCmd, exportJSONCmd, exportCSVCmd, snapshotCmd,
		compareCmd, ensembleCmd, benchCmd, analyzeCmd, phaseCmd, sweepCmd, presetsCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func addSimFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&configFile, "config", "", "config file path (yaml)")
	f.StringVar(&preset, "preset", "", "use preset configuration")
	f.Float64Var(&dt, "dt", config.DefaultDt, "timestep in seconds")
	f.Float64Var(&duration, "time", config.DefaultDuration, "duration in seconds")
	f.Int64Var(&seed, "seed", 0, "random seed (0 picks one from the clock)")
	f.Float64Var(&gravity, "g", config.DefaultG, "gravitational acceleration")
	f.Float64Var(&mass, "m", config.DefaultM, "rod mass")
	f.Float64Var(&length, "l", config.DefaultL, "rod length")
	f.Float64Var(&angle0, "angle0", 0, "upper rod angle (disables the random start)")
	f.Float64Var(&angle1, "angle1", 0, "lower rod angle (disables the random start)")
	f.Float64Var(&momentum0, "momentum0", 0, "upper rod momentum (disables the random start)")
	f.Float64Var(&momentum1, "momentum1", 0, "lower rod momentum (disables the random start)")
	f.StringVar(&integrator, "integrator", config.DefaultIntegrator, fmt.Sprintf("integrator %v", integrators.Names()))
	f.IntVar(&trailCap, "trail", config.DefaultTrailCapacity, "trail capacity in samples")
	f.Float64Var(&maxStepMs, "max-step", config.DefaultMaxStepMs, "largest simulated step per frame in ms")
	f.StringVar(&theme, "theme", config.DefaultTheme, "live view theme")
}

// resolveConfig layers defaults, preset, config file and explicitly set
// flags, in that order.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("time") {
		cfg.Duration = duration
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("g") {
		cfg.Constants.G = gravity
	}
	if flags.Changed("m") {
		cfg.Constants.M = mass
	}
	if flags.Changed("l") {
		cfg.Constants.L = length
	}
	if flags.Changed("integrator") {
		cfg.Integrator = integrator
	}
	if flags.Changed("trail") {
		cfg.TrailCapacity = trailCap
	}
	if flags.Changed("max-step") {
		cfg.MaxStepMs = maxStepMs
	}
	if flags.Changed("theme") {
		cfg.Render.Theme = theme
	}
	for name, dst := range map[string]*float64{
		"angle0":    &cfg.InitState.Angle0,
		"angle1":    &cfg.InitState.Angle1,
		"momentum0": &cfg.InitState.Momentum0,
		"momentum1": &cfg.InitState.Momentum1,
	} {
		if flags.Changed(name) {
			v, _ := flags.GetFloat64(name)
			*dst = v
			cfg.InitState.Random = false
		}
	}

	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	dynamo.Logger().Debug("config resolved",
		"g", cfg.Constants.G,
		"dt", cfg.Dt,
		"duration", cfg.Duration,
		"seed", cfg.Seed,
		"integrator", cfg.Integrator)
	return cfg, nil
}
