package export

import (
	"encoding/json"
	"io"

	"github.com/san-kum/threebody/internal/dynamo"
	"github.com/san-kum/threebody/internal/storage"
)

type BodyTrack struct {
	Mass      float64      `json:"mass"`
	Positions [][2]float64 `json:"positions"`
	Forces    [][2]float64 `json:"forces"`
}

type ExportData struct {
	ID         string                      `json:"id,omitempty"`
	Name       string                      `json:"name"`
	Integrator string                      `json:"integrator"`
	Dt         float64                     `json:"dt"`
	Duration   float64                     `json:"duration"`
	Steps      int                         `json:"steps"`
	Times      []float64                   `json:"times"`
	Bodies     [dynamo.NumBodies]BodyTrack `json:"bodies"`
	Metrics    map[string]float64          `json:"metrics"`
}

// NewExportData flattens a run into plain arrays.
func NewExportData(meta storage.RunMetadata, h *dynamo.History) (*ExportData, error) {
	if h == nil {
		return nil, dynamo.ErrEmptyHistory
	}
	if err := h.Validate(); err != nil {
		return nil, err
	}

	data := &ExportData{
		ID:         meta.ID,
		Name:       meta.Name,
		Integrator: meta.Integrator,
		Dt:         h.Dt,
		Duration:   meta.Duration,
		Steps:      h.Steps(),
		Times:      make([]float64, h.Steps()+1),
		Metrics:    meta.Metrics,
	}
	for k := range data.Times {
		data.Times[k] = h.Time(k)
	}
	for i := 0; i < dynamo.NumBodies; i++ {
		track := BodyTrack{
			Mass:      meta.Masses[i],
			Positions: make([][2]float64, len(h.Positions[i])),
			Forces:    make([][2]float64, len(h.Forces[i])),
		}
		for k, p := range h.Positions[i] {
			track.Positions[k] = [2]float64{p.X, p.Y}
		}
		for k, f := range h.Forces[i] {
			track.Forces[k] = [2]float64{f.X, f.Y}
		}
		data.Bodies[i] = track
	}
	return data, nil
}

func WriteJSON(w io.Writer, meta storage.RunMetadata, h *dynamo.History) error {
	data, err := NewExportData(meta, h)
	if err != nil {
		return err
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
