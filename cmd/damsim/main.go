package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/fluidlab/damsim/internal/config"
	"github.com/fluidlab/damsim/internal/engine"
	"github.com/fluidlab/damsim/internal/gui"
	"github.com/fluidlab/damsim/internal/model"
	"github.com/fluidlab/damsim/internal/scene"
	"github.com/fluidlab/damsim/internal/server"
	"github.com/fluidlab/damsim/internal/solver"
	"github.com/fluidlab/damsim/internal/storage"
	"github.com/fluidlab/damsim/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	duration   float64
	pauseAt    float64
	steps      int
	frameRate  int
	addr       string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "damsim",
		Short: "interactive breaking-dam particle fluid demo",
		Run: func(cmd *cobra.Command, args []string) {
			// Default to the GUI when no subcommand is given.
			cfg, err := loadConfig(cmd)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			gui.Run(buildEngine(cfg))
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".damsim", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "named preset configuration")
	rootCmd.PersistentFlags().Float64Var(&pauseAt, "pause-at", 0, "auto-pause once simulation time passes this")
	rootCmd.PersistentFlags().IntVar(&steps, "steps", 0, "solver sub-steps per frame")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run headless and record frame statistics",
		RunE:  runHeadless,
	}
	runCmd.Flags().Float64Var(&duration, "time", 2.0, "simulated duration in seconds")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "run with the interactive 3D window",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			gui.Run(buildEngine(cfg))
			return nil
		},
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run with the terminal live view",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return viz.Run(buildEngine(cfg), cfg.SceneParams(), frameRate)
		},
	}
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "stream frames over a websocket",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return server.New(buildEngine(cfg), frameRate).ListenAndServe(addr)
		},
	}
	serveCmd.Flags().StringVar(&addr, "addr", "localhost:8080", "listen address")
	serveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		RunE:  listRuns,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a recorded run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return storage.New(dataDir).ExportJSON(args[0], os.Stdout)
		},
	}

	statsCmd := &cobra.Command{
		Use:   "stats [run_id]",
		Short: "summarize a recorded run",
		Args:  cobra.ExactArgs(1),
		RunE:  runStats,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
		},
	}

	rootCmd.AddCommand(runCmd, guiCmd, liveCmd, serveCmd, listCmd, exportCmd, statsCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig resolves preset, config file and flag overrides, in that
// order of increasing precedence.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("pause-at") {
		cfg.Sim.PauseAt = pauseAt
	}
	if cmd.Flags().Changed("steps") {
		cfg.Sim.StepsPerFrame = steps
	}
	return cfg, cfg.Validate()
}

// buildEngine constructs the scenario and wires model, solver and clock.
func buildEngine(cfg *config.Config) *engine.Engine {
	m := model.New()
	scene.BuildBreakingDam(cfg.SceneParams(), m)

	eng := engine.New(m, solver.NewSPH(cfg.SolverParams()), engine.NewClock(cfg.Sim.StepSize))
	eng.StepsPerFrame = cfg.Sim.StepsPerFrame
	eng.PauseAt = cfg.Sim.PauseAt
	return eng
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	eng := buildEngine(cfg)
	rec := storage.NewRecorder(eng.Model(), cfg.Sim.StepsPerFrame)
	eng.AddObserver(rec)

	name := preset
	if name == "" {
		name = "default"
	}

	fmt.Printf("running breaking dam: %d fluid, %d boundary particles\n",
		eng.Model().Count(), eng.Model().BoundaryCount())
	start := time.Now()

	if err := eng.Run(context.Background(), duration); err != nil {
		return err
	}

	runID, err := st.Save(storage.RunMetadata{
		Preset:        name,
		StepSize:      cfg.Sim.StepSize,
		Duration:      eng.Clock().Time(),
		FluidCount:    eng.Model().Count(),
		BoundaryCount: eng.Model().BoundaryCount(),
	}, rec.Frames())
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", time.Since(start))
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("frames: %d\n", len(rec.Frames()))
	return nil
}

func runStats(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	frames, err := st.LoadFrames(args[0])
	if err != nil {
		return err
	}

	stats := storage.ComputeStats(frames, 0.05)

	fmt.Printf("run:           %s (%s)\n", meta.ID, meta.Preset)
	fmt.Printf("duration:      %.3fs over %d frames\n", meta.Duration, len(frames))
	fmt.Printf("mean kinetic:  %.4f\n", stats.MeanKinetic)
	fmt.Printf("peak kinetic:  %.4f at t=%.3fs\n", stats.PeakKinetic, stats.PeakTime)
	fmt.Printf("final max |v|: %.4f\n", stats.FinalMaxV)
	if stats.SettleTime >= 0 {
		fmt.Printf("settled at:    %.3fs\n", stats.SettleTime)
	} else {
		fmt.Println("settled at:    (still moving)")
	}
	return nil
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
	fmt.Fprintln(w, "ID\tTIME\tDURATION\tDT\tFLUID\tFRAMES")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%.2fs\t%.4fs\t%d\t%d\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.StepSize,
			run.FluidCount,
			run.Frames,
		)
	}
	return w.Flush()
}
