package storage

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/san-kum/threebody/internal/dynamo"
	"gonum.org/v1/gonum/spatial/r2"
)

var (
	trajectoryHeader = []string{"step", "time", "x1", "y1", "x2", "y2", "x3", "y3"}
	forcesHeader     = []string{"step", "time", "fx1", "fy1", "fx2", "fy2", "fx3", "fy3"}
)

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// WriteTrajectoryCSV writes one row per snapshot, steps+1 rows in total.
func WriteTrajectoryCSV(w io.Writer, h *dynamo.History) error {
	return writeVectors(w, h, trajectoryHeader, h.Positions)
}

// WriteForcesCSV writes the force applied during each step, steps rows in total.
func WriteForcesCSV(w io.Writer, h *dynamo.History) error {
	return writeVectors(w, h, forcesHeader, h.Forces)
}

func writeVectors(w io.Writer, h *dynamo.History, header []string, cols [dynamo.NumBodies][]r2.Vec) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}

	row := make([]string, len(header))
	for k := range cols[0] {
		row[0] = strconv.Itoa(k)
		row[1] = formatFloat(h.Time(k))
		for i := 0; i < dynamo.NumBodies; i++ {
			row[2+2*i] = formatFloat(cols[i][k].X)
			row[3+2*i] = formatFloat(cols[i][k].Y)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// ReadHistoryCSV is the inverse of the two writers above.
func ReadHistoryCSV(trajectory, forces io.Reader, dt float64) (*dynamo.History, error) {
	pos, err := readVectors(trajectory, trajectoryHeader)
	if err != nil {
		return nil, fmt.Errorf("trajectory: %w", err)
	}
	frc, err := readVectors(forces, forcesHeader)
	if err != nil {
		return nil, fmt.Errorf("forces: %w", err)
	}
	if len(pos[0]) == 0 {
		return nil, dynamo.ErrEmptyHistory
	}

	h := &dynamo.History{Positions: pos, Forces: frc, Dt: dt}
	if err := h.Validate(); err != nil {
		return nil, err
	}
	return h, nil
}

func readVectors(r io.Reader, header []string) ([dynamo.NumBodies][]r2.Vec, error) {
	var out [dynamo.NumBodies][]r2.Vec

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(header)
	cr.ReuseRecord = true

	head, err := cr.Read()
	if err != nil {
		return out, fmt.Errorf("header: %w", err)
	}
	for i, name := range header {
		if head[i] != name {
			return out, fmt.Errorf("header column %d is %q, want %q", i, head[i], name)
		}
	}

	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return out, err
		}
		step, err := strconv.Atoi(rec[0])
		if err != nil || step != line-2 {
			return out, fmt.Errorf("line %d: step %q out of sequence", line, rec[0])
		}
		for i := 0; i < dynamo.NumBodies; i++ {
			x, err := strconv.ParseFloat(rec[2+2*i], 64)
			if err != nil {
				return out, fmt.Errorf("line %d: %w", line, err)
			}
			y, err := strconv.ParseFloat(rec[3+2*i], 64)
			if err != nil {
				return out, fmt.Errorf("line %d: %w", line, err)
			}
			out[i] = append(out[i], r2.Vec{X: x, Y: y})
		}
	}
	return out, nil
}
