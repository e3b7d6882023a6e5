package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/san-kum/threebody/internal/dynamo"
)

const (
	metadataFile   = "metadata.json"
	trajectoryFile = "trajectory.csv"
	forcesFile     = "forces.csv"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunMetadata describes a saved run. Masses are raw, before scaling.
type RunMetadata struct {
	ID         string                       `json:"id"`
	Name       string                       `json:"name"`
	Timestamp  time.Time                    `json:"timestamp"`
	Masses     [dynamo.NumBodies]float64    `json:"masses"`
	Positions  [dynamo.NumBodies][2]float64 `json:"positions"`
	Velocities [dynamo.NumBodies][2]float64 `json:"velocities"`
	Dt         float64                      `json:"dt"`
	Duration   float64                      `json:"duration"`
	Steps      int                          `json:"steps"`
	Integrator string                       `json:"integrator"`
	Metrics    map[string]float64           `json:"metrics"`
}

// Save writes meta and h under a fresh run directory and returns its id.
// ID, Timestamp and Steps are filled in by the store.
func (s *Store) Save(meta RunMetadata, h *dynamo.History) (string, error) {
	if h == nil {
		return "", dynamo.ErrEmptyHistory
	}
	if err := h.Validate(); err != nil {
		return "", err
	}

	now := time.Now()
	meta.ID = fmt.Sprintf("%s_%d", sanitize(meta.Name), now.UnixNano())
	meta.Timestamp = now
	meta.Steps = h.Steps()
	if meta.Metrics == nil {
		meta.Metrics = map[string]float64{}
	}

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	if err := writeFile(filepath.Join(runDir, metadataFile), func(f *os.File) error {
		enc := json.NewEncoder(f)
		enc.SetIndent("", "  ")
		return enc.Encode(meta)
	}); err != nil {
		return "", err
	}
	if err := writeFile(filepath.Join(runDir, trajectoryFile), func(f *os.File) error {
		return WriteTrajectoryCSV(f, h)
	}); err != nil {
		return "", err
	}
	if err := writeFile(filepath.Join(runDir, forcesFile), func(f *os.File) error {
		return WriteForcesCSV(f, h)
	}); err != nil {
		return "", err
	}

	return meta.ID, nil
}

func writeFile(path string, write func(*os.File) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	if err := write(f); err != nil {
		return fmt.Errorf("storage: write %s: %w", filepath.Base(path), err)
	}
	return nil
}

func sanitize(name string) string {
	if name == "" {
		return "run"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '-'
	}, name)
}

// List returns every readable run, oldest first. Directories without valid
// metadata are skipped.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		if runs[i].Timestamp.Equal(runs[j].Timestamp) {
			return runs[i].ID < runs[j].ID
		}
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	if err := checkID(runID); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, fmt.Errorf("storage: run %q: %w", runID, err)
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("storage: run %q: %w", runID, err)
	}
	return &meta, nil
}

// LoadHistory rebuilds the recorded positions and forces of a run.
func (s *Store) LoadHistory(runID string) (*dynamo.History, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}

	runDir := filepath.Join(s.baseDir, runID)
	tf, err := os.Open(filepath.Join(runDir, trajectoryFile))
	if err != nil {
		return nil, fmt.Errorf("storage: run %q: %w", runID, err)
	}
	defer tf.Close()
	ff, err := os.Open(filepath.Join(runDir, forcesFile))
	if err != nil {
		return nil, fmt.Errorf("storage: run %q: %w", runID, err)
	}
	defer ff.Close()

	h, err := ReadHistoryCSV(tf, ff, meta.Dt)
	if err != nil {
		return nil, fmt.Errorf("storage: run %q: %w", runID, err)
	}
	if h.Steps() != meta.Steps {
		return nil, fmt.Errorf("storage: run %q: %d steps on disk, metadata says %d", runID, h.Steps(), meta.Steps)
	}
	return h, nil
}

// Delete removes a run directory.
func (s *Store) Delete(runID string) error {
	if err := checkID(runID); err != nil {
		return err
	}
	dir := filepath.Join(s.baseDir, runID)
	if _, err := os.Stat(filepath.Join(dir, metadataFile)); err != nil {
		return fmt.Errorf("storage: run %q: %w", runID, err)
	}
	return os.RemoveAll(dir)
}

func checkID(runID string) error {
	if runID == "" || runID == "." || runID == ".." || strings.ContainsAny(runID, `/\`) {
		return fmt.Errorf("storage: invalid run id %q: %w", runID, errors.Join(dynamo.ErrInvalidParameter, os.ErrNotExist))
	}
	return nil
}
