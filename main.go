package main

import (
	"log/slog"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/spf13/cobra"

	"github.com/pthm-cable/fieldlines/config"
	"github.com/pthm-cable/fieldlines/export"
	"github.com/pthm-cable/fieldlines/scene"
)

var (
	configPath string
	outputDir  string
	seconds    float64
	seed       int64
)

func main() {
	// JSON to stdout for structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	rootCmd := &cobra.Command{
		Use:   "fieldlines",
		Short: "stream line flow animation over vector fields",
		RunE:  runWindowed,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "line build seed override")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "open the interactive demo window",
		RunE:  runWindowed,
	}

	headlessCmd := &cobra.Command{
		Use:   "headless",
		Short: "run the flow without graphics and log stats",
		RunE:  runHeadless,
	}
	headlessCmd.Flags().Float64Var(&seconds, "seconds", 10, "how long to run")
	headlessCmd.Flags().StringVar(&outputDir, "output-dir", "", "directory for CSV output")

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "build the line set and write it as CSV",
		RunE:  runExport,
	}
	exportCmd.Flags().StringVar(&outputDir, "output-dir", "out", "directory for CSV output")

	rootCmd.AddCommand(runCmd, headlessCmd, exportCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig initializes the global config and applies CLI overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if err := config.Init(configPath); err != nil {
		return nil, err
	}
	cfg := config.Cfg()
	if cmd.Flags().Changed("seed") {
		cfg.Lines.Seed = seed
		cfg.Derived.Options.Seed = seed
	}
	return cfg, nil
}

func runWindowed(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Field Lines")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	s, err := scene.New(cfg)
	if err != nil {
		return err
	}
	defer s.Unload()

	for !rl.WindowShouldClose() {
		s.Update()
		s.Draw()
	}
	return nil
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	s, err := scene.New(cfg)
	if err != nil {
		return err
	}
	defer s.Unload()

	out, err := export.NewOutputManager(outputDir)
	if err != nil {
		return err
	}
	defer out.Close()

	if err := out.WriteConfig(cfg); err != nil {
		return err
	}
	if err := out.WriteLines(s.Set()); err != nil {
		return err
	}

	collector := export.NewCollector(cfg.Output.StatsWindow, cfg.Derived.FrameDT)

	slog.Info("starting headless run",
		"seconds", seconds,
		"dt", cfg.Derived.FrameDT,
		"stats_window", cfg.Output.StatsWindow,
	)

	ticks := int(seconds / cfg.Derived.FrameDT)
	for i := 0; i < ticks; i++ {
		s.UpdateHeadless()
		collector.Observe(s.Lines().Phases())

		if collector.ShouldFlush() {
			stats := collector.Flush(s.Lines().Phases(), s.Lines().VisibleCount())
			stats.LogStats()
			if err := out.WriteFlowStats(stats); err != nil {
				return err
			}
		}
	}

	slog.Info("headless run finished", "elapsed", s.Elapsed(), "done", s.Done())
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	set, err := scene.BuildSet(cfg)
	if err != nil {
		return err
	}

	out, err := export.NewOutputManager(outputDir)
	if err != nil {
		return err
	}
	defer out.Close()

	if err := out.WriteConfig(cfg); err != nil {
		return err
	}
	if err := out.WriteLines(set); err != nil {
		return err
	}

	slog.Info("exported line set", "dir", out.Dir(), "lines", len(set.Lines))
	return nil
}
