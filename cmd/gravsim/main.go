package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/gravsim/internal/config"
	"github.com/san-kum/gravsim/internal/experiment"
	"github.com/san-kum/gravsim/internal/export"
	"github.com/san-kum/gravsim/internal/gui"
	"github.com/san-kum/gravsim/internal/optim"
	"github.com/san-kum/gravsim/internal/sim"
	"github.com/san-kum/gravsim/internal/viz"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	configFile string
	preset     string
	seed       int64

	mode        string
	count       int
	sources     int
	ttl         int
	drag        float64
	speed       float64
	sourceSpeed float64
	gravity     float64
	pullRadius  float64
	boxSize     float64
	color       string
	noVelColor  bool

	runFrames   int
	snapFrames  int
	sweepFrames int
	benchFrames int
	benchSeed   int64
	plot        bool
	csvOut      bool
	jsonOut     bool
	svgFile     string
	width       int
	height      int
	theme       string
	sweepAxes   []string
	sweepMetric string
	maximize    bool
	metricNames []string
	frameRate   int
	logFile     string
	menu        bool
	ini         bool
)

// main registers the gravsim commands and runs the live terminal view when no
// subcommand is given. It exits with status 1 if a command fails.
func main() {
	rootCmd := &cobra.Command{
		Use:   "gravsim",
		Short: "particle gravity playground",
		RunE:  runLive,
	}
	addSceneFlags(rootCmd)
	addLiveFlags(rootCmd)

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run the scene in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addSceneFlags(liveCmd)
	addLiveFlags(liveCmd)

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "run the scene in a window",
		Args:  cobra.NoArgs,
		RunE:  runGUI,
	}
	addSceneFlags(guiCmd)
	guiCmd.Flags().BoolVar(&menu, "menu", false, "start on the preset menu")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run the scene headless and report metrics",
		Args:  cobra.NoArgs,
		RunE:  runHeadless,
	}
	addSceneFlags(runCmd)
	runCmd.Flags().IntVar(&runFrames, "frames", 600, "frames to simulate")
	runCmd.Flags().BoolVar(&plot, "plot", false, "plot metric series")
	runCmd.Flags().BoolVar(&csvOut, "csv", false, "write metric series as CSV to stdout")
	runCmd.Flags().BoolVar(&jsonOut, "json", false, "write the run report as JSON to stdout")
	runCmd.Flags().StringVar(&svgFile, "svg", "", "write the first metric series as an SVG chart")
	runCmd.Flags().StringSliceVar(&metricNames, "metrics", nil, "metrics to record, or all (default depends on mode)")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot [path]",
		Short: "simulate headless and save the last frame as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  runSnapshot,
	}
	addSceneFlags(snapshotCmd)
	snapshotCmd.Flags().IntVar(&snapFrames, "frames", 120, "frames to simulate before the snapshot")
	snapshotCmd.Flags().IntVar(&width, "width", 100, "canvas width in cells")
	snapshotCmd.Flags().IntVar(&height, "height", 40, "canvas height in cells")
	snapshotCmd.Flags().StringVar(&theme, "theme", "nebula", "color theme ("+strings.Join(viz.ThemeNames(), ", ")+")")

	sweepCmd := &cobra.Command{
		Use:     "sweep",
		Short:   "grid search tunables for the best metric value",
		Example: `  gravsim sweep --axis drag=0,0.01,0.02 --axis strength=0.5,1.5 --metric containment --max`,
		Args:    cobra.NoArgs,
		RunE:    runSweep,
	}
	addSceneFlags(sweepCmd)
	sweepCmd.Flags().IntVar(&sweepFrames, "frames", 200, "frames per grid point")
	sweepCmd.Flags().StringArrayVar(&sweepAxes, "axis", nil, "tunable and values, name=v1,v2,...")
	sweepCmd.Flags().StringVar(&sweepMetric, "metric", "containment", "metric to optimize")
	sweepCmd.Flags().BoolVar(&maximize, "max", false, "maximize instead of minimize")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "measure frames per second across scene sizes",
		Args:  cobra.NoArgs,
		RunE:  runBench,
	}
	benchCmd.Flags().IntVar(&benchFrames, "frames", 100, "frames per case")
	benchCmd.Flags().Int64Var(&benchSeed, "seed", 42, "random seed")

	menuCmd := &cobra.Command{
		Use:   "menu",
		Short: "pick a preset in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return viz.RunMenu(seed, frameRate, logFile)
		},
	}
	menuCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	addLiveFlags(menuCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tMODE\tPARTICLES\tSOURCES")
			for _, name := range config.ListPresets() {
				cfg, err := config.GetPreset(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s\t%s\t%d\t%d\n", name, cfg.Mode(), cfg.Particles.Count, cfg.Sources.Count)
			}
			return w.Flush()
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "inspect and write scene files",
	}
	dumpCmd := &cobra.Command{
		Use:   "dump",
		Short: "print the resolved scene",
		Args:  cobra.NoArgs,
		RunE:  dumpConfig,
	}
	addSceneFlags(dumpCmd)
	dumpCmd.Flags().BoolVar(&ini, "ini", false, "print gcfg instead of yaml")

	saveCmd := &cobra.Command{
		Use:   "save [path]",
		Short: "write the resolved scene to a .yaml or .gcfg file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			if err := config.Save(args[0], cfg); err != nil {
				return err
			}
			fmt.Printf("saved %s\n", args[0])
			return nil
		},
	}
	addSceneFlags(saveCmd)

	validateCmd := &cobra.Command{
		Use:   "validate [path]",
		Short: "check a scene file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(args[0])
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			fmt.Printf("%s: ok\n", args[0])
			return nil
		},
	}
	configCmd.AddCommand(dumpCmd, saveCmd, validateCmd)

	rootCmd.AddCommand(liveCmd, guiCmd, runCmd, snapshotCmd, sweepCmd, benchCmd, menuCmd, presetsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSceneFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&configFile, "config", "", "scene file (.yaml, .yml, .gcfg, .ini)")
	f.StringVar(&preset, "preset", "comet", "start from a preset")
	f.Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	f.StringVar(&mode, "mode", "static", "particle mode: static or emitted")
	f.IntVar(&count, "count", config.DefaultCount, "number of particles")
	f.IntVar(&sources, "sources", config.DefaultSources, "number of gravity sources")
	f.IntVar(&ttl, "ttl", config.DefaultTTL, "particle lifetime in frames (emitted)")
	f.Float64Var(&drag, "drag", config.DefaultDrag, "particle drag per frame")
	f.Float64Var(&speed, "speed", config.DefaultParticleSpeed, "particle speed multiplier")
	f.Float64Var(&sourceSpeed, "source-speed", config.DefaultSourceSpeed, "source speed multiplier")
	f.Float64Var(&gravity, "gravity", config.DefaultStrength, "source strength")
	f.Float64Var(&pullRadius, "pull-radius", config.DefaultPullRadius, "source pull radius")
	f.Float64Var(&boxSize, "box", config.DefaultBoxSize, "box edge length")
	f.StringVar(&color, "color", config.DefaultColor, "particle base color (hex)")
	f.BoolVar(&noVelColor, "no-velocity-color", false, "use the base color instead of velocity coloring")
}

func addLiveFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")
	cmd.Flags().StringVar(&logFile, "log", "", "write debug log to file")
}

// resolveConfig layers the preset, the scene file and any changed flags, in
// that order. It returns the config and a display name.
func resolveConfig(cmd *cobra.Command) (*config.Config, string, error) {
	changed := cmd.Flags().Changed
	var overrides []func(*config.Config)
	override := func(flag string, fn func(*config.Config)) {
		if changed(flag) {
			overrides = append(overrides, fn)
		}
	}
	override("mode", func(c *config.Config) { c.Scene.Mode = mode })
	override("count", func(c *config.Config) { c.Particles.Count = count })
	override("sources", func(c *config.Config) { c.Sources.Count = sources })
	override("ttl", func(c *config.Config) { c.Particles.TTL = ttl })
	override("drag", func(c *config.Config) { c.Particles.Drag = drag })
	override("speed", func(c *config.Config) { c.Particles.Speed = speed })
	override("source-speed", func(c *config.Config) { c.Sources.Speed = sourceSpeed })
	override("gravity", func(c *config.Config) { c.Sources.Strength = gravity })
	override("pull-radius", func(c *config.Config) { c.Sources.PullRadius = pullRadius })
	override("box", func(c *config.Config) { c.Box.Size = boxSize })
	override("color", func(c *config.Config) { c.Particles.Color = color })
	override("no-velocity-color", func(c *config.Config) { c.Particles.VelocityColor = !noVelColor })

	cfg, name, err := config.Resolve(config.Layers{
		Preset:    preset,
		PresetSet: changed("preset"),
		File:      configFile,
		Overrides: overrides,
	})
	if err != nil {
		return nil, "", err
	}
	if cfg.Scene.Seed != 0 && !changed("seed") {
		seed = cfg.Scene.Seed
	}
	return cfg, name, nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, name, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	return viz.Run(cfg, name, seed, frameRate, logFile)
}

func runGUI(cmd *cobra.Command, args []string) error {
	if menu {
		gui.RunInteractive(seed)
		return nil
	}
	cfg, name, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	gui.Run(cfg, name, seed)
	return nil
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, name, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if !cmd.Flags().Changed("frames") && cfg.Scene.Frames > 0 {
		runFrames = cfg.Scene.Frames
	}

	registry := experiment.NewRegistry()
	simCfg := cfg.Sim()
	metrics := registry.DefaultMetrics(simCfg)
	if len(metricNames) > 0 {
		metrics, err = registry.GetMetrics(metricNames)
		if err != nil {
			return fmt.Errorf("%w (available: %s)", err, strings.Join(registry.ListMetrics(), ", "))
		}
	}

	expCfg := experiment.Config{Sim: simCfg, Frames: runFrames, Seed: seed}
	exp := experiment.New(expCfg)
	if err := exp.Setup(metrics); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	quiet := csvOut || jsonOut
	if !quiet {
		fmt.Printf("running %s: %d particles, %d sources, %d frames...\n",
			name, cfg.Particles.Count, cfg.Sources.Count, runFrames)
		exp.GetSimulator().AddObserver(experiment.NewProgress(os.Stderr, runFrames))
	}
	result, err := exp.Run(ctx)
	if err != nil && result == nil {
		return err
	}

	if svgFile != "" && len(metrics) > 0 {
		chart := export.SeriesToSVG(result.Series[metrics[0].Name()], 800, 300, "#ff00ff")
		if werr := os.WriteFile(svgFile, []byte(chart), 0o644); werr != nil {
			return fmt.Errorf("failed to write chart: %w", werr)
		}
	}

	switch {
	case jsonOut:
		if werr := export.WriteJSON(os.Stdout, export.NewReport(name, expCfg, result)); werr != nil {
			return werr
		}
		return err
	case csvOut:
		if werr := export.WriteCSV(os.Stdout, result.Series); werr != nil {
			return werr
		}
		return err
	}

	fmt.Printf("completed %d frames in %v (%.1f fps)\n",
		result.Frames, result.Elapsed.Round(time.Millisecond), float64(result.Frames)/result.Elapsed.Seconds())
	fmt.Printf("seed: %d\n", seed)
	fmt.Println("\nmetrics:")
	for _, m := range metrics {
		fmt.Printf("  %s: %.6f\n", m.Name(), result.Metrics[m.Name()])
	}

	if plot {
		for _, m := range metrics {
			data := result.Series[m.Name()]
			if len(data) < 2 {
				continue
			}
			graph := asciigraph.Plot(data,
				asciigraph.Height(10),
				asciigraph.Width(80),
				asciigraph.Caption(m.Name()),
			)
			fmt.Println()
			fmt.Println(graph)
		}
	}
	if svgFile != "" {
		fmt.Printf("\nchart written to %s\n", svgFile)
	}
	return err
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	cfg, name, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	th := viz.GetTheme(theme)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	simCfg := cfg.Sim()
	s := sim.New(simCfg, seed)
	if err := s.Run(ctx, simCfg, snapFrames); err != nil {
		return err
	}

	canvas := viz.Snapshot(s.Frame(), cfg.Box.Size, th, width, height)
	svg := export.CanvasToSVG(canvas, 4, string(th.Primary))
	if err := os.WriteFile(args[0], []byte(svg), 0o644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	fmt.Printf("%s after %d frames written to %s\n", name, s.FrameIndex(), args[0])
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, name, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	axes := make([]optim.Axis, 0, len(sweepAxes))
	for _, arg := range sweepAxes {
		axis, err := optim.ParseAxis(arg)
		if err != nil {
			return err
		}
		axes = append(axes, axis)
	}
	search, err := optim.NewGridSearch(axes, maximize)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("sweeping %s: %d points, %d frames each, optimizing %s\n\n", name, search.Size(), sweepFrames, sweepMetric)
	best, trials, err := search.Search(ctx, cfg, sweepFrames, seed, sweepMetric)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, a := range axes {
		fmt.Fprintf(w, "%s\t", strings.ToUpper(a.Param))
	}
	fmt.Fprintln(w, strings.ToUpper(sweepMetric))
	for _, tr := range trials {
		for _, a := range axes {
			fmt.Fprintf(w, "%g\t", tr.Params[a.Param])
		}
		fmt.Fprintf(w, "%.6f\n", tr.Value)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\nbest %s = %.6f with", sweepMetric, best.Value)
	for _, a := range axes {
		fmt.Printf(" %s=%g", a.Param, best.Params[a.Param])
	}
	fmt.Println()
	return nil
}
