package main

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/threebody/internal/analysis"
	"github.com/san-kum/threebody/internal/config"
	"github.com/san-kum/threebody/internal/dynamo"
	"github.com/san-kum/threebody/internal/integrators"
	"github.com/san-kum/threebody/internal/metrics"
	"github.com/san-kum/threebody/internal/render"
	"github.com/san-kum/threebody/internal/sim"
	"github.com/san-kum/threebody/internal/storage"
	"github.com/san-kum/threebody/internal/viz"
	"github.com/spf13/cobra"
)

// resolveConfig starts from the preset named in args (or the default
// scenario), replaces it with --config when given, then applies every flag
// the user set explicitly.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if len(args) > 0 {
		cfg = config.GetPreset(args[0])
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", args[0], config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	applyFlags(cmd, cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	changed := func(name string) bool {
		return flags.Lookup(name) != nil && flags.Changed(name)
	}
	if changed("dt") {
		cfg.Dt = dt
	}
	if changed("time") {
		cfg.Duration = duration
	}
	if changed("out") {
		cfg.Output = outPath
	}
	if changed("fps") {
		cfg.Render.FPS = fps
	}
	if changed("stride") {
		cfg.Render.Stride = stride
	}
	if changed("width") {
		cfg.Render.Width = width
	}
	if changed("height") {
		cfg.Render.Height = height
	}
	if changed("trail") {
		cfg.Render.Trail = trail
	}
	if changed("arrow-scale") {
		cfg.Render.ArrowScale = arrowScale
	}
	if changed("max-arrow") {
		cfg.Render.MaxArrow = maxArrow
	}
}

func newSimulator() *sim.Simulator {
	s := sim.New(integrators.NewEuler())
	for _, m := range metrics.Default() {
		s.AddMetric(m)
	}
	return s
}

func simulate(cfg *config.Config) (*sim.Result, error) {
	sys, err := cfg.Scenario().System()
	if err != nil {
		return nil, err
	}
	return newSimulator().Run(sys, sim.Config{Params: cfg.Params(), ValidateState: true})
}

func metadataFor(cfg *config.Config, res *sim.Result) storage.RunMetadata {
	meta := storage.RunMetadata{
		Name:       cfg.Name,
		Dt:         cfg.Dt,
		Duration:   cfg.Duration,
		Integrator: "euler",
		Metrics:    res.Metrics,
	}
	for i, b := range cfg.Bodies {
		meta.Masses[i] = b.Mass
		meta.Positions[i] = b.Pos
		meta.Velocities[i] = b.Vel
	}
	return meta
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "running %s simulation...\n", titleStyle.Render(cfg.Name))
	start := time.Now()

	res, err := simulate(cfg)
	var serr *dynamo.SimError
	if errors.As(err, &serr) {
		fmt.Fprintf(out, "%s state diverged at step %d (t=%.2f), keeping %d steps\n",
			errStyle.Render("warning:"), serr.Step, serr.Time, res.StepsTaken)
	} else if err != nil {
		return err
	}
	fmt.Fprintf(out, "completed in %v\n", time.Since(start))

	if !noSave {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(metadataFor(cfg, res), res.History)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s %s\n", labelStyle.Render("run id:"), runID)
	}
	fmt.Fprintf(out, "%s %d\n", labelStyle.Render("steps:"), res.History.Steps())

	if !noRender {
		frames, err := renderHistory(cfg.RenderOptions(), res.History, cfg.Output)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s %s (%d frames)\n", labelStyle.Render("gif:"), cfg.Output, frames)
	}

	printMetrics(cmd, res.Metrics)
	if serr != nil {
		return serr
	}
	return nil
}

func renderHistory(opts render.Options, h *dynamo.History, path string) (int, error) {
	rc, err := render.NewContext(opts)
	if err != nil {
		return 0, err
	}
	return render.RenderFile(rc, h, path)
}

func printMetrics(cmd *cobra.Command, m map[string]float64) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "\nmetrics:")
	for _, name := range names {
		fmt.Fprintf(out, "  %s: %.6g\n", labelStyle.Render(name), m[name])
	}
}

func renderRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)
	h, err := st.LoadHistory(runID)
	if err != nil {
		return err
	}

	cfg := config.DefaultConfig()
	cfg.Output = runID + ".gif"
	applyFlags(cmd, cfg)

	frames, err := renderHistory(cfg.RenderOptions(), h, cfg.Output)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%d frames)\n", labelStyle.Render("gif:"), cfg.Output, frames)
	return nil
}

// viewRun plays a preset (simulated on the fly) or a saved run.
func viewRun(cmd *cobra.Command, args []string) error {
	name := "triangle"
	if len(args) > 0 {
		name = args[0]
	}

	var h *dynamo.History
	cfg := config.GetPreset(name)
	if cfg != nil || configFile != "" {
		resolved, err := resolveConfig(cmd, presetArgs(cfg, name))
		if err != nil {
			return err
		}
		cfg = resolved
		res, err := simulate(cfg)
		if err != nil && !errors.As(err, new(*dynamo.SimError)) {
			return err
		}
		h = res.History
	} else {
		loaded, err := storage.New(dataDir).LoadHistory(name)
		if err != nil {
			return err
		}
		cfg = config.DefaultConfig()
		applyFlags(cmd, cfg)
		h = loaded
	}

	p, err := viz.NewPlayer(name, h, cfg.RenderOptions())
	if err != nil {
		return err
	}
	return viz.Play(p)
}

func presetArgs(cfg *config.Config, name string) []string {
	if cfg == nil {
		return nil
	}
	return []string{name}
}

func sweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	if len(sweepDts) == 0 {
		return fmt.Errorf("%w: --dts needs at least one value", dynamo.ErrInvalidParameter)
	}

	jobs := make([]sim.Job, len(sweepDts))
	for i, step := range sweepDts {
		p := dynamo.Params{Duration: cfg.Duration, Dt: step}
		if err := p.Validate(); err != nil {
			return err
		}
		sc := cfg.Scenario()
		sc.Name = fmt.Sprintf("%s@dt=%g", cfg.Name, step)
		jobs[i] = sim.Job{Scenario: sc, Config: sim.Config{Params: p}}
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	results, err := sim.NewBatch(newSimulator, workers).Run(ctx, jobs)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s over t=%g\n\n", titleStyle.Render(cfg.Name), cfg.Duration)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DT\tSTEPS\tENERGY DRIFT\tMOMENTUM DRIFT\tMIN SEPARATION")
	for i, res := range results {
		fmt.Fprintf(w, "%g\t%d\t%.4e\t%.4e\t%.4f\n",
			sweepDts[i],
			res.StepsTaken,
			res.Metrics["energy_drift"],
			res.Metrics["momentum_drift"],
			res.Metrics["min_separation"],
		)
	}
	return w.Flush()
}

func chaos(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	sys, err := cfg.Scenario().System()
	if err != nil {
		return err
	}

	d, err := analysis.LyapunovExponent(sys, integrators.NewEuler(), cfg.Dt, cfg.Duration, epsilon)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s %s\n", labelStyle.Render("scenario:"), titleStyle.Render(cfg.Name))
	fmt.Fprintf(out, "%s %.6g per unit time\n", labelStyle.Render("lyapunov exponent:"), d.Exponent)
	if d.Exponent > 0 {
		fmt.Fprintf(out, "%s %.4g\n", labelStyle.Render("e-folding time:"), 1/d.Exponent)
	}
	if len(d.LogGrowth) > 1 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, asciigraph.Plot(d.LogGrowth,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("accumulated ln(separation growth)"),
		))
	}
	return nil
}
