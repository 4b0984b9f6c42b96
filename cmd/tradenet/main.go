package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/tradenet/internal/config"
	"github.com/san-kum/tradenet/internal/export"
	"github.com/san-kum/tradenet/internal/ingest"
	"github.com/san-kum/tradenet/internal/logging"
	"github.com/san-kum/tradenet/internal/render"
	"github.com/san-kum/tradenet/internal/viz"
	"github.com/san-kum/tradenet/internal/watch"
)

var (
	configFile  string
	preset      string
	logLevel    string
	logFile     string
	resultIndex int
	pinHints    bool
	output      string
	format      string
	width       int
	height      int
	watchInput  bool
	concurrency int
	batchDir    string
	batchFormat string
	frameRate   int
	theme       string
)

var (
	warnColor = color.New(color.FgYellow)
	errColor  = color.New(color.FgRed, color.Bold)
	okColor   = color.New(color.FgGreen)
	dimColor  = color.New(color.Faint)
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "tradenet",
		Short:         "energy trading network visualizer",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml or toml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "layout preset")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&pinHints, "pin-hints", false, "pin every node with a layout hint")

	liveCmd := &cobra.Command{
		Use:   "live [input.json]",
		Short: "explore a trading network in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	liveCmd.Flags().IntVar(&resultIndex, "result", 0, "index of the result to show first")
	liveCmd.Flags().StringVar(&logFile, "log-file", "", "write logs to this file")
	liveCmd.Flags().BoolVar(&watchInput, "watch", false, "reload when the input file changes")
	liveCmd.Flags().IntVar(&frameRate, "fps", 0, "frame rate")
	liveCmd.Flags().StringVar(&theme, "theme", "", "color theme")

	layoutCmd := &cobra.Command{
		Use:   "layout [input.json]",
		Short: "run the layout headlessly and print positions as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  runLayout,
	}
	layoutCmd.Flags().IntVar(&resultIndex, "result", 0, "result index")
	layoutCmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")

	renderCmd := &cobra.Command{
		Use:   "render [input.json]",
		Short: "render one result to svg, png, html or json",
		Args:  cobra.ExactArgs(1),
		RunE:  runRender,
	}
	renderCmd.Flags().IntVar(&resultIndex, "result", 0, "result index")
	renderCmd.Flags().StringVarP(&output, "output", "o", "", "output file")
	renderCmd.Flags().StringVar(&format, "format", "", "output format (default from extension)")
	renderCmd.Flags().IntVar(&width, "width", 0, "image width in pixels")
	renderCmd.Flags().IntVar(&height, "height", 0, "image height in pixels")
	renderCmd.MarkFlagRequired("output")

	batchCmd := &cobra.Command{
		Use:   "batch [input.json]",
		Short: "render every result of a list",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}
	batchCmd.Flags().StringVarP(&batchDir, "output", "o", "out", "output directory")
	batchCmd.Flags().StringVar(&batchFormat, "format", "svg", "output format")
	batchCmd.Flags().IntVar(&width, "width", 0, "image width in pixels")
	batchCmd.Flags().IntVar(&height, "height", 0, "image height in pixels")
	batchCmd.Flags().IntVar(&concurrency, "concurrency", 4, "results rendered in parallel")

	inspectCmd := &cobra.Command{
		Use:   "inspect [input.json]",
		Short: "print warnings and layout convergence for every result",
		Args:  cobra.ExactArgs(1),
		RunE:  runInspect,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list layout presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tREPULSION\tATTRACTION\tDAMPING\tRADIUS")
			for _, name := range config.ListPresets() {
				p := config.Presets[name]
				fmt.Fprintf(w, "%s\t%.2f\t%.2f\t%.2f\t%.2f\n", name, p.Repulsion, p.Attraction, p.Damping, p.RadiusScale)
			}
			return w.Flush()
		},
	}

	initCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write the default configuration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := config.Save(args[0], cfg); err != nil {
				return err
			}
			okColor.Printf("wrote %s\n", args[0])
			return nil
		},
	}

	rootCmd.AddCommand(liveCmd, layoutCmd, renderCmd, batchCmd, inspectCmd, presetsCmd, initCmd)

	if err := rootCmd.Execute(); err != nil {
		errColor.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig layers the config file, the preset and the flags, in that
// order.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if preset != "" {
		p, err := config.GetPreset(preset)
		if err != nil {
			return nil, err
		}
		cfg.Layout = p.Layout
	}

	flags := cmd.Flags()
	if flags.Changed("pin-hints") {
		cfg.Layout.PinHints = pinHints
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if flags.Changed("width") {
		cfg.Render.Width = width
	}
	if flags.Changed("height") {
		cfg.Render.Height = height
	}
	if flags.Changed("fps") {
		cfg.Interact.FrameRate = frameRate
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) (*slog.Logger, error) {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	return logging.New(os.Stderr, level), nil
}

func exportOptions(cfg *config.Config, logger *slog.Logger) export.Options {
	return export.Options{
		Params:   cfg.LayoutParams(),
		PinHints: cfg.Layout.PinHints,
		Style:    cfg.Style(),
		Width:    float64(cfg.Render.Width),
		Height:   float64(cfg.Render.Height),
		Logger:   logger,
	}
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

// prepareOne lays out the --result entry of the input file.
func prepareOne(cmd *cobra.Command, path string) (*export.Snapshot, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return nil, err
	}
	results, err := ingest.Load(path)
	if err != nil {
		return nil, err
	}
	r, err := ingest.Select(results, resultIndex)
	if err != nil {
		return nil, err
	}
	printIssues(os.Stderr, r)

	ctx, cancel := signalContext()
	defer cancel()
	return export.Prepare(ctx, r, exportOptions(cfg, logger))
}

func runLive(cmd *cobra.Command, args []string) error {
	path := args[0]
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}

	logger := logging.Discard()
	if logFile != "" {
		l, closer, err := logging.OpenFile(logFile, level)
		if err != nil {
			return err
		}
		defer closer.Close()
		logger = l
	}

	results, err := ingest.Load(path)
	if err != nil {
		return err
	}
	if _, err := ingest.Select(results, resultIndex); err != nil && len(results) > 0 {
		return err
	}

	style := render.BrailleStyle()
	style.Labels = cfg.Render.Labels
	opts := viz.Options{
		Results:   results,
		Selected:  resultIndex,
		Params:    cfg.LayoutParams(),
		Style:     style,
		Hit:       cfg.HitParams(),
		PinHints:  cfg.Layout.PinHints,
		FrameRate: cfg.Interact.FrameRate,
		Theme:     cfg.Theme,
		Logger:    logger,
	}

	if watchInput {
		w, err := watch.New(path,
			watch.WithLogger(logger),
			watch.WithOnError(func(err error) { logger.Error("watch failed", "err", err) }),
		)
		if err != nil {
			return err
		}
		if err := w.Start(); err != nil {
			return err
		}
		defer w.Stop()
		opts.Watcher = w
		opts.Reload = func() ([]ingest.Result, error) { return ingest.Load(path) }
	}

	p := tea.NewProgram(viz.NewModel(opts), tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err = p.Run()
	return err
}

func runLayout(cmd *cobra.Command, args []string) error {
	snap, err := prepareOne(cmd, args[0])
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	if err := ingest.Encode(w, ingest.FromGraph(snap.Graph, snap.Positions)); err != nil {
		return err
	}
	dimColor.Fprintf(os.Stderr, "%d ticks, %s\n", snap.Ticks, snap.Reason)
	return nil
}

func runRender(cmd *cobra.Command, args []string) error {
	snap, err := prepareOne(cmd, args[0])
	if err != nil {
		return err
	}
	f := format
	if f == "" {
		f = export.FormatFromPath(output)
	}
	if err := export.NewRegistry().WriteFile(output, f, snap); err != nil {
		return err
	}
	okColor.Printf("wrote %s", output)
	dimColor.Printf(" (%d nodes, %d edges, %d ticks, %s)\n", snap.Graph.Len(), len(snap.Graph.Edges), snap.Ticks, snap.Reason)
	return nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	results, err := ingest.Load(args[0])
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()
	out, batchErr := export.NewRegistry().Batch(ctx, results, batchDir, batchFormat, exportOptions(cfg, logger), concurrency)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RESULT\tFILE\tSTATUS")
	for _, br := range out {
		status := okColor.Sprint("ok")
		if br.Err != nil {
			status = errColor.Sprint(br.Err.Error())
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", br.Name, filepath.Base(br.Path), status)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return batchErr
}

func runInspect(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	results, err := ingest.Load(args[0])
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()
	opts := exportOptions(cfg, logging.Discard())

	for i, r := range results {
		snap, err := export.Prepare(ctx, r, opts)
		if err != nil {
			return err
		}
		g := snap.Graph
		fmt.Printf("\n[%d] %s\n", i, r.Name)
		fmt.Printf("  nodes: %d  edges: %d  volume: %.3f\n", g.Len(), len(g.Edges), totalWeight(snap))
		fmt.Printf("  layout: %d ticks, %s, peak energy %.3e\n", snap.Ticks, snap.Reason, snap.Trace.Peak())
		if m := r.Market; m != nil {
			fmt.Printf("  market: volume %.3f, demand met %.1f%%, supply sold %.1f%%\n",
				m.TradingVolume, m.RatioFulfilledDemand*100, m.RatioSoldSupply*100)
		}
		if c := r.Cost; c != nil {
			fmt.Printf("  cost: %.2f with LEC, %.2f without\n", c.CostWithLEC, c.CostWithoutLEC)
		}
		for _, w := range snap.Warnings {
			warnColor.Printf("  warning: %s\n", w)
		}
		printIssues(os.Stdout, r)

		if samples := snap.Trace.Samples(); len(samples) > 1 {
			fmt.Println()
			fmt.Println(asciigraph.Plot(samples,
				asciigraph.Height(6),
				asciigraph.Width(60),
				asciigraph.Offset(4),
				asciigraph.Caption("kinetic energy"),
			))
		}
	}
	return nil
}

func totalWeight(s *export.Snapshot) float64 {
	total := 0.0
	for _, e := range s.Graph.Edges {
		total += e.Weight
	}
	return total
}

// printIssues reports decode issues and backend messages of r.
func printIssues(w io.Writer, r ingest.Result) {
	for _, msg := range r.Issues {
		warnColor.Fprintf(w, "  input: %s\n", msg)
	}
	for _, msg := range r.Warnings {
		warnColor.Fprintf(w, "  backend warning: %s\n", msg)
	}
	for _, msg := range r.Errors {
		errColor.Fprintf(w, "  backend error: %s\n", msg)
	}
}
