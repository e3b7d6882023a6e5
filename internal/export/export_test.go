package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/san-kum/threebody/internal/dynamo"
	"github.com/san-kum/threebody/internal/storage"
	"gonum.org/v1/gonum/spatial/r2"
)

func smallHistory() *dynamo.History {
	h := dynamo.NewHistory([3]r2.Vec{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 5, Y: 8}}, 2, 0.5)
	h.Record([3]r2.Vec{{X: 0.1, Y: 0}, {X: 9.9, Y: 0.1}, {X: 5, Y: 7.9}}, [3]r2.Vec{{X: 1}, {X: -1}, {Y: -1}})
	h.Record([3]r2.Vec{{X: 0.3, Y: 0}, {X: 9.7, Y: 0.2}, {X: 5, Y: 7.7}}, [3]r2.Vec{{X: 1}, {X: -1}, {Y: -1}})
	return h
}

func TestTrajectorySVG(t *testing.T) {
	svg, err := TrajectorySVG(smallHistory(), 200, 100)
	if err != nil {
		t.Fatalf("svg failed: %v", err)
	}

	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>\n") {
		t.Error("not a complete svg document")
	}
	if n := strings.Count(svg, "<path "); n != 3 {
		t.Errorf("expected 3 paths, got %d", n)
	}
	if n := strings.Count(svg, "<circle "); n != 3 {
		t.Errorf("expected 3 start markers, got %d", n)
	}
	if !strings.Contains(svg, `stroke="#ff0000"`) {
		t.Error("body 1 should be red")
	}
	if n := strings.Count(svg, " L"); n != 6 {
		t.Errorf("expected 6 line segments, got %d", n)
	}
}

func TestTrajectorySVG_Errors(t *testing.T) {
	if _, err := TrajectorySVG(nil, 10, 10); !errors.Is(err, dynamo.ErrEmptyHistory) {
		t.Errorf("expected ErrEmptyHistory, got %v", err)
	}
	if _, err := TrajectorySVG(smallHistory(), 0, 10); !errors.Is(err, dynamo.ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter, got %v", err)
	}
}

func TestWriteJSON(t *testing.T) {
	meta := storage.RunMetadata{
		ID:         "triangle_1",
		Name:       "triangle",
		Masses:     [3]float64{10000, 300, 100},
		Duration:   1,
		Integrator: "euler",
		Metrics:    map[string]float64{"min_separation": 2},
	}

	var buf bytes.Buffer
	if err := WriteJSON(&buf, meta, smallHistory()); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	var got ExportData
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if got.Steps != 2 || len(got.Times) != 3 || got.Times[2] != 1 {
		t.Errorf("unexpected steps/times: %d %v", got.Steps, got.Times)
	}
	if len(got.Bodies[0].Positions) != 3 || len(got.Bodies[0].Forces) != 2 {
		t.Errorf("unexpected track lengths %d/%d", len(got.Bodies[0].Positions), len(got.Bodies[0].Forces))
	}
	if got.Bodies[2].Positions[2] != [2]float64{5, 7.7} || got.Bodies[1].Mass != 300 {
		t.Errorf("unexpected body data %+v", got.Bodies[2])
	}
	if got.Metrics["min_separation"] != 2 {
		t.Errorf("metrics lost: %v", got.Metrics)
	}
}
