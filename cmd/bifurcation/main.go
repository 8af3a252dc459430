package main

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/bifurcation/internal/analysis"
	"github.com/san-kum/bifurcation/internal/config"
	"github.com/san-kum/bifurcation/internal/dynamo"
	"github.com/san-kum/bifurcation/internal/maps"
	"github.com/san-kum/bifurcation/internal/render"
	"github.com/san-kum/bifurcation/internal/storage"
	"github.com/san-kum/bifurcation/internal/tui"
	"github.com/san-kum/bifurcation/internal/viz"
)

const (
	previewWidth  = 100
	previewHeight = 25
)

type options struct {
	flags      *config.Config
	configFile string
	preset     string
	dataDir    string
	save       bool
	preview    bool
	verbose    bool
}

// main is the entry point for the bifurcation CLI. It exits with status 1 if
// the command returns an error.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{flags: config.DefaultConfig()}

	rootCmd := &cobra.Command{
		Use:   "bifurcation",
		Short: "create bifurcation diagrams",
		Long: `Create bifurcation diagrams of one-dimensional maps.

The map is selected with --map:
  0: logistic map  f(x) = r*x*(1-x)
  1: sine map      f(x) = r/4*sin(pi*x)
  2: tent map      f(x) = r/2*min(x, 1-x)`,
		Args: cobra.NoArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			slog.SetDefault(newLogger(cmd.ErrOrStderr(), opts.verbose))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return runSweep(cmd, opts)
		},
	}

	pf := rootCmd.PersistentFlags()
	registerSweepFlags(pf, opts.flags)
	registerRenderFlags(pf, opts.flags)
	pf.StringVar(&opts.configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&opts.preset, "preset", "", "use a preset parameter window")
	pf.StringVar(&opts.dataDir, "data", ".bifurcation", "data directory for saved runs")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging on stderr")
	rootCmd.Flags().BoolVar(&opts.save, "save", false, "store the computed points in the data directory")
	rootCmd.Flags().BoolVar(&opts.preview, "preview", false, "print a braille preview to the terminal")

	orbitCmd := &cobra.Command{
		Use:   "orbit [r]",
		Short: "plot the post-transient orbit for one parameter value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return runOrbit(cmd, opts, args[0])
		},
	}

	mapsCmd := &cobra.Command{
		Use:   "maps",
		Short: "list available maps",
		Args:  cobra.NoArgs,
		RunE:  listMaps,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listRuns(cmd, opts)
		},
	}

	renderCmd := &cobra.Command{
		Use:   "render [run_id]",
		Short: "render a saved run to an image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return renderRun(cmd, opts, args[0])
		},
	}

	exploreCmd := &cobra.Command{
		Use:   "explore",
		Short: "interactive terminal explorer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return runExplore(cmd, opts)
		},
	}

	rootCmd.AddCommand(orbitCmd, mapsCmd, presetsCmd, listCmd, renderCmd, exploreCmd)
	return rootCmd
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// resolveConfig layers defaults, preset, config file and explicitly set flags.
func resolveConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if opts.preset != "" {
		p := config.GetPreset(opts.preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", opts.preset, config.ListPresets())
		}
		cfg.Apply(p)
	}

	if opts.configFile != "" {
		loaded, err := config.Load(opts.configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	applyChangedFlags(cmd.Flags(), cfg, opts.flags)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	slog.Debug("resolved config", "config", fmt.Sprintf("%+v", *cfg))
	return cfg, nil
}

func sweepConfig(cfg *config.Config) (analysis.SweepConfig, maps.Kind, error) {
	kind, err := maps.Lookup(cfg.Map)
	if err != nil {
		return analysis.SweepConfig{}, 0, err
	}
	return analysis.SweepConfig{
		Map:     kind.Map(),
		X0:      cfg.X0,
		Skip:    cfg.Skip,
		Samples: cfg.Samples,
	}, kind, nil
}

func renderOptions(cfg *config.Config) (render.Options, error) {
	marker, err := render.ParseMarker(cfg.Render.Marker)
	if err != nil {
		return render.Options{}, err
	}
	if err := render.CheckFormat(cfg.Render.Output); err != nil {
		return render.Options{}, err
	}

	ro := render.DefaultOptions()
	ro.DPI = cfg.Render.DPI
	ro.Width = cfg.Render.Width
	ro.Height = cfg.Render.Height
	ro.MarkerSize = cfg.Render.MarkerSize
	ro.Marker = marker
	if err := ro.Validate(); err != nil {
		return render.Options{}, err
	}
	return ro, nil
}

func runSweep(cmd *cobra.Command, opts *options) error {
	cfg, err := resolveConfig(cmd, opts)
	if err != nil {
		return err
	}
	sweepCfg, kind, err := sweepConfig(cfg)
	if err != nil {
		return err
	}
	ro, err := renderOptions(cfg)
	if err != nil {
		return err
	}
	rs, err := analysis.Linspace(cfg.RMin, cfg.RMax, cfg.RPoints)
	if err != nil {
		return err
	}

	slog.Debug("starting sweep", "map", kind, "params", len(rs), "skip", cfg.Skip, "samples", cfg.Samples, "workers", cfg.Workers)
	start := time.Now()
	points, err := analysis.Sweep(cmd.Context(), sweepCfg, rs, cfg.Workers)
	if err != nil {
		return fmt.Errorf("sweep failed: %w", err)
	}
	elapsed := time.Since(start)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s  %s  %s\n",
		viz.Success.Render("computed values"),
		viz.Metric("points", len(points)),
		viz.Metric("time", elapsed.Round(time.Millisecond)),
	)

	if opts.preview {
		fmt.Fprintln(out, viz.Preview(points, previewWidth, previewHeight))
	}

	if opts.save {
		st := storage.New(opts.dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(storage.RunMetadata{
			Map:     kind.String(),
			MapID:   int(kind),
			X0:      cfg.X0,
			RMin:    cfg.RMin,
			RMax:    cfg.RMax,
			RPoints: cfg.RPoints,
			Skip:    cfg.Skip,
			Samples: cfg.Samples,
			Workers: cfg.Workers,
			Elapsed: elapsed,
		}, points)
		if err != nil {
			return fmt.Errorf("failed to save run: %w", err)
		}
		fmt.Fprintln(out, viz.Metric("saved run", runID))
	}

	return writeImage(out, points, cfg.Render.Output, ro, cfg.Render.Quality)
}

func writeImage(out io.Writer, points []dynamo.Point, path string, ro render.Options, quality int) error {
	start := time.Now()
	img, err := render.Render(points, ro)
	if err != nil {
		return err
	}
	if err := render.Save(path, img, quality); err != nil {
		return fmt.Errorf("failed to write image: %w", err)
	}

	b := img.Bounds()
	slog.Debug("image written", "path", path, "width", b.Dx(), "height", b.Dy(), "elapsed", time.Since(start))
	fmt.Fprintf(out, "%s %s\n", viz.Success.Render("wrote"), path)
	return nil
}

func runOrbit(cmd *cobra.Command, opts *options, arg string) error {
	r, err := strconv.ParseFloat(arg, 64)
	if err != nil {
		return fmt.Errorf("invalid parameter value %q: %w", arg, err)
	}
	cfg, err := resolveConfig(cmd, opts)
	if err != nil {
		return err
	}
	sweepCfg, kind, err := sweepConfig(cfg)
	if err != nil {
		return err
	}

	points := sweepCfg.Sample(r)
	data := make([]float64, 0, len(points))
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, p := range points {
		if !p.IsFinite() {
			continue
		}
		data = append(data, p.State)
		lo, hi = math.Min(lo, p.State), math.Max(hi, p.State)
	}
	if len(data) == 0 {
		return fmt.Errorf("no finite states to plot for r=%g", r)
	}

	out := cmd.OutOrStdout()
	graph := asciigraph.Plot(data,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("%s map, r=%g, x0=%g, %d skipped", kind, r, cfg.X0, cfg.Skip)),
	)
	fmt.Fprintln(out, graph)
	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s  %s  %s\n",
		viz.Metric("samples", len(points)),
		viz.Metric("min", strconv.FormatFloat(lo, 'f', 6, 64)),
		viz.Metric("max", strconv.FormatFloat(hi, 'f', 6, 64)),
	)
	if dropped := len(points) - len(data); dropped > 0 {
		fmt.Fprintln(out, viz.Subtle.Render(fmt.Sprintf("%d non-finite states not plotted", dropped)))
	}
	return nil
}

func listMaps(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tMAP")
	for _, id := range maps.IDs() {
		k, _ := maps.Lookup(id)
		fmt.Fprintf(w, "%d\t%s\t%s\n", id, k, k.Formula())
	}
	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tR-MIN\tR-MAX\tR-POINTS\tSKIP\tN")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%g\t%g\t%d\t%d\t%d\n", name, p.RMin, p.RMax, p.RPoints, p.Skip, p.Samples)
	}
	return w.Flush()
}

func listRuns(cmd *cobra.Command, opts *options) error {
	st := storage.New(opts.dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "no runs found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMAP\tTIME\tR-RANGE\tPOINTS\tWORKERS\tELAPSED")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t[%g, %g]\t%d\t%d\t%s\n",
			run.ID,
			run.Map,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.RMin, run.RMax,
			run.Points,
			run.Workers,
			run.Elapsed.Round(time.Millisecond),
		)
	}

	return w.Flush()
}

func renderRun(cmd *cobra.Command, opts *options, runID string) error {
	cfg, err := resolveConfig(cmd, opts)
	if err != nil {
		return err
	}
	ro, err := renderOptions(cfg)
	if err != nil {
		return err
	}

	st := storage.New(opts.dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	points, err := st.LoadPoints(runID)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s  %s  %s\n",
		viz.Metric("run", meta.ID),
		viz.Metric("map", meta.Map),
		viz.Metric("points", len(points)),
	)
	return writeImage(out, points, cfg.Render.Output, ro, cfg.Render.Quality)
}

func runExplore(cmd *cobra.Command, opts *options) error {
	cfg, err := resolveConfig(cmd, opts)
	if err != nil {
		return err
	}
	sweepCfg, _, err := sweepConfig(cfg)
	if err != nil {
		return err
	}
	return tui.Run(tui.NewExplorer(sweepCfg, cfg.RMin, cfg.RMax, cfg.Workers))
}
