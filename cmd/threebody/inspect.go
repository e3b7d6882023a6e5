package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/threebody/internal/config"
	"github.com/san-kum/threebody/internal/dynamo"
	"github.com/san-kum/threebody/internal/export"
	"github.com/san-kum/threebody/internal/storage"
	"github.com/spf13/cobra"
)

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
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
	fmt.Fprintln(w, "ID\tNAME\tTIME\tDURATION\tDT\tSTEPS\tMIN SEP")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\t%.4f\t%d\t%.3f\n",
			run.ID,
			run.Name,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Steps,
			run.Metrics["min_separation"],
		)
	}
	return w.Flush()
}

func loadRun(runID string) (*storage.RunMetadata, *dynamo.History, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	h, err := st.LoadHistory(runID)
	if err != nil {
		return nil, nil, err
	}
	return meta, h, nil
}

var bodySeriesColors = asciigraph.SeriesColors(asciigraph.Red, asciigraph.Green, asciigraph.Blue)

func plotRun(cmd *cobra.Command, args []string) error {
	meta, h, err := loadRun(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s %s\n", labelStyle.Render("run:"), titleStyle.Render(meta.ID))
	fmt.Fprintf(out, "%s %d\n\n", labelStyle.Render("steps:"), h.Steps())

	xs := make([][]float64, dynamo.NumBodies)
	ys := make([][]float64, dynamo.NumBodies)
	for i := 0; i < dynamo.NumBodies; i++ {
		xs[i] = make([]float64, len(h.Positions[i]))
		ys[i] = make([]float64, len(h.Positions[i]))
		for k, p := range h.Positions[i] {
			xs[i][k], ys[i][k] = p.X, p.Y
		}
	}

	plots := []struct {
		caption string
		series  [][]float64
	}{
		{"x vs step (red, green, blue)", xs},
		{"y vs step (red, green, blue)", ys},
	}
	if h.Steps() > 0 {
		forces := make([][]float64, dynamo.NumBodies)
		for i := range forces {
			forces[i] = h.ForceMagnitudes(i)
		}
		plots = append(plots, struct {
			caption string
			series  [][]float64
		}{"|F| vs step (red, green, blue)", forces})
	}

	for _, p := range plots {
		graph := asciigraph.PlotMany(p.series,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(p.caption),
			bodySeriesColors,
		)
		fmt.Fprintln(out, graph)
		fmt.Fprintln(out)
	}
	return nil
}

// output returns stdout or the --out file.
func output(cmd *cobra.Command) (io.Writer, func() error, error) {
	if outPath == "" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(outPath)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

func writeOutput(cmd *cobra.Command, write func(io.Writer) error) (err error) {
	w, closeFn, err := output(cmd)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeFn(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return write(w)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, h, err := loadRun(args[0])
	if err != nil {
		return err
	}
	return writeOutput(cmd, func(w io.Writer) error {
		return export.WriteJSON(w, *meta, h)
	})
}

func exportCSV(cmd *cobra.Command, args []string) error {
	_, h, err := loadRun(args[0])
	if err != nil {
		return err
	}
	return writeOutput(cmd, func(w io.Writer) error {
		if withForces {
			return storage.WriteForcesCSV(w, h)
		}
		return storage.WriteTrajectoryCSV(w, h)
	})
}

func exportSVG(cmd *cobra.Command, args []string) error {
	_, h, err := loadRun(args[0])
	if err != nil {
		return err
	}
	svg, err := export.TrajectorySVG(h, width, height)
	if err != nil {
		return err
	}
	return writeOutput(cmd, func(w io.Writer) error {
		_, err := io.WriteString(w, svg)
		return err
	})
}

func listPresets(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tMASSES\tDURATION\tDT\tOUTPUT")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%g/%g/%g\t%g\t%g\t%s\n",
			name, p.Bodies[0].Mass, p.Bodies[1].Mass, p.Bodies[2].Mass, p.Duration, p.Dt, p.Output)
	}
	return w.Flush()
}
