package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	dt         float64
	duration   float64
	outPath    string
	fps        int
	stride     int
	width      int
	height     int
	trail      int
	arrowScale float64
	maxArrow   float64
	noSave     bool
	noRender   bool
	workers    int
	sweepDts   []float64
	withForces bool
	epsilon    float64
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errStyle.Render("error:"), err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "threebody",
		Short:         "three-body gravity simulator and trajectory renderer",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".threebody", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [preset]",
		Short: "simulate, save the run and render it to a GIF",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	addScenarioFlags(runCmd)
	addRenderFlags(runCmd)
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")
	runCmd.Flags().BoolVar(&noRender, "no-render", false, "skip the GIF")

	renderCmd := &cobra.Command{
		Use:   "render [run_id]",
		Short: "render a saved run to a GIF",
		Args:  cobra.ExactArgs(1),
		RunE:  renderRun,
	}
	addRenderFlags(renderCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot coordinates and force magnitudes of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	viewCmd := &cobra.Command{
		Use:   "view [preset|run_id]",
		Short: "replay a run in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  viewRun,
	}
	addScenarioFlags(viewCmd)
	viewCmd.Flags().IntVar(&trail, "trail", 60, "trail length in steps")

	sweepCmd := &cobra.Command{
		Use:   "sweep [preset]",
		Short: "compare conservation drift across timesteps",
		Args:  cobra.MaximumNArgs(1),
		RunE:  sweep,
	}
	addScenarioFlags(sweepCmd)
	sweepCmd.Flags().Float64SliceVar(&sweepDts, "dts", []float64{2, 1, 0.5, 0.25}, "timesteps to compare")
	sweepCmd.Flags().IntVar(&workers, "workers", 4, "parallel runs")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export trajectory (or forces) to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")
	exportCSVCmd.Flags().BoolVar(&withForces, "forces", false, "export forces instead of positions")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export trajectories as an SVG drawing",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")
	exportSVGCmd.Flags().IntVar(&width, "width", 800, "image width")
	exportSVGCmd.Flags().IntVar(&height, "height", 800, "image height")

	chaosCmd := &cobra.Command{
		Use:   "chaos [preset]",
		Short: "estimate the largest Lyapunov exponent",
		Args:  cobra.MaximumNArgs(1),
		RunE:  chaos,
	}
	addScenarioFlags(chaosCmd)
	chaosCmd.Flags().Float64Var(&epsilon, "eps", 1e-6, "initial position perturbation")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in scenarios",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	rootCmd.AddCommand(runCmd, renderCmd, listCmd, plotCmd, viewCmd, sweepCmd, exportJSONCmd, exportCSVCmd, exportSVGCmd, chaosCmd, presetsCmd)
	return rootCmd
}

func addScenarioFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().Float64Var(&dt, "dt", 1.0, "timestep")
	cmd.Flags().Float64Var(&duration, "time", 500.0, "total simulated time")
}

func addRenderFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "GIF output path")
	cmd.Flags().IntVar(&fps, "fps", 30, "frames per second")
	cmd.Flags().IntVar(&stride, "stride", 1, "draw every n-th step")
	cmd.Flags().IntVar(&width, "width", 480, "image width")
	cmd.Flags().IntVar(&height, "height", 480, "image height")
	cmd.Flags().IntVar(&trail, "trail", 60, "trail length in steps, 0 disables")
	cmd.Flags().Float64Var(&arrowScale, "arrow-scale", 20, "pixels per unit of force")
	cmd.Flags().Float64Var(&maxArrow, "max-arrow", 2, "force magnitude cap for arrows")
}
