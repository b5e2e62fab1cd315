package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/dblpend/internal/dynamo"
	"github.com/san-kum/dblpend/internal/physics"
	"github.com/san-kum/dblpend/internal/sim"
)

var csvHeader = []string{"time", "angle0", "angle1", "momentum0", "momentum1", "energy"}

// ErrNotFound is returned when a run id has no stored metadata.
var ErrNotFound = errors.New("run not found")

type Store struct {
	baseDir string
	now     func() time.Time
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir, now: time.Now}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID          string             `json:"id"`
	Timestamp   time.Time          `json:"timestamp"`
	Preset      string             `json:"preset,omitempty"`
	G           float64            `json:"g"`
	M           float64            `json:"m"`
	L           float64            `json:"l"`
	Seed        int64              `json:"seed"`
	Dt          float64            `json:"dt"`
	Duration    float64            `json:"duration"`
	Integrator  string             `json:"integrator"`
	Steps       int                `json:"steps"`
	EnergyDrift float64            `json:"energy_drift"`
	Metrics     map[string]float64 `json:"metrics"`
}

func (m RunMetadata) Constants() physics.Constants {
	return physics.Constants{G: m.G, M: m.M, L: m.L}
}

// Record is one row of a stored trajectory.
type Record struct {
	Time   float64       `json:"time"`
	State  physics.State `json:"state"`
	Energy float64       `json:"energy"`
}

// Save writes meta and the trajectory of result under a fresh run id.
// ID, Timestamp, Steps, EnergyDrift and Metrics are filled in from result.
// A failed save leaves no run directory behind.
func (s *Store) Save(meta RunMetadata, result *sim.Result) (id string, err error) {
	now := s.now()
	meta.ID = fmt.Sprintf("run_%d", now.UnixNano())
	meta.Timestamp = now
	meta.Steps = result.StepsTaken
	meta.EnergyDrift = result.EnergyDrift
	meta.Metrics = result.Metrics

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}
	defer func() {
		if err != nil {
			os.RemoveAll(runDir)
		}
	}()

	if err := writeJSON(filepath.Join(runDir, "metadata.json"), meta); err != nil {
		return "", fmt.Errorf("write metadata: %w", err)
	}

	csvFile, err := os.Create(filepath.Join(runDir, "states.csv"))
	if err != nil {
		return "", err
	}
	if err := WriteCSV(csvFile, RecordsFromResult(result)); err != nil {
		csvFile.Close()
		return "", err
	}
	if err := csvFile.Close(); err != nil {
		return "", err
	}

	dynamo.Logger().Debug("run saved", "id", meta.ID, "steps", meta.Steps)
	return meta.ID, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// RecordsFromResult pairs each recorded state of result with its time and
// energy.
func RecordsFromResult(result *sim.Result) []Record {
	records := make([]Record, len(result.States))
	for i, st := range result.States {
		records[i] = Record{Time: result.Times[i], State: st, Energy: result.Energies[i]}
	}
	return records
}

// WriteCSV writes records in the states.csv layout.
func WriteCSV(w io.Writer, records []Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, rec := range records {
		row := []string{
			formatFloat(rec.Time),
			formatFloat(rec.State.Angle0),
			formatFloat(rec.State.Angle1),
			formatFloat(rec.State.Momentum0),
			formatFloat(rec.State.Momentum1),
			formatFloat(rec.Energy),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// List returns every readable run, oldest first.
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
			dynamo.Logger().Warn("skipping unreadable run", "dir", entry.Name(), "err", err)
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("parse metadata for %s: %w", runID, err)
	}

	return &meta, nil
}

// LoadStates reads the stored trajectory of runID.
func (s *Store) LoadStates(runID string) ([]Record, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "states.csv"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, runID)
		}
		return nil, err
	}
	defer file.Close()

	return ReadCSV(file)
}

// ReadCSV parses rows written by WriteCSV.
func ReadCSV(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(csvHeader)

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return []Record{}, nil
	}

	records := make([]Record, 0, len(rows)-1)
	for i, row := range rows[1:] {
		var vals [6]float64
		for j := range vals {
			v, err := strconv.ParseFloat(row[j], 64)
			if err != nil {
				return nil, fmt.Errorf("row %d column %s: %w", i+1, csvHeader[j], err)
			}
			vals[j] = v
		}
		records = append(records, Record{
			Time: vals[0],
			State: physics.State{
				Angle0:    vals[1],
				Angle1:    vals[2],
				Momentum0: vals[3],
				Momentum1: vals[4],
			},
			Energy: vals[5],
		})
	}

	return records, nil
}
