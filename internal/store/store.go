// Package store persists correction runs on disk. Each run gets its own
// directory under the base dir with a metadata.json summary and the
// corrected field as field.csv.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/san-kum/flowlab/internal/corrector"
	"github.com/san-kum/flowlab/internal/field"
	"github.com/san-kum/flowlab/internal/geom"
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

type RunMetadata struct {
	ID            string        `json:"id"`
	Surrogate     string        `json:"surrogate"`
	Timestamp     time.Time     `json:"timestamp"`
	Geometry      geom.Geometry `json:"geometry"`
	Iterations    int           `json:"iterations"`
	MaxDivergence float64       `json:"max_divergence"`
	EnergyLimit   float64       `json:"energy_limit"`
	Confidence    float64       `json:"confidence"`
	Note          string        `json:"note,omitempty"`
}

// CellRecord is one grid cell in the CSV dump.
type CellRecord struct {
	I     int     `csv:"i"`
	J     int     `csv:"j"`
	K     int     `csv:"k"`
	U     float64 `csv:"u"`
	V     float64 `csv:"v"`
	W     float64 `csv:"w"`
	Speed float64 `csv:"speed"`
}

func (s *Store) Save(surrogate string, g geom.Geometry, iterations int, res *corrector.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", surrogate, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:            runID,
		Surrogate:     surrogate,
		Timestamp:     time.Now(),
		Geometry:      g,
		Iterations:    iterations,
		MaxDivergence: res.Residuals.MaxDivergence,
		EnergyLimit:   res.Residuals.EnergyLimit,
		Confidence:    res.Confidence,
		Note:          res.Residuals.Note,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	if !res.Field.HasVelocity() {
		return runID, nil
	}

	csvFile, err := os.Create(filepath.Join(runDir, "field.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := gocsv.Marshal(Records(res.Field, g), csvFile); err != nil {
		return "", fmt.Errorf("writing field.csv: %w", err)
	}

	return runID, nil
}

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
		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}
		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadField(runID string) ([]CellRecord, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "field.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	records := []CellRecord{}
	if err := gocsv.Unmarshal(file, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// Records flattens a field into per-cell CSV rows in row-major order.
// Scalar-only fields produce no rows.
func Records(f *field.Field, g geom.Geometry) []CellRecord {
	if !f.HasVelocity() {
		return nil
	}
	c := field.Flatten(f, g)
	records := make([]CellRecord, 0, c.Cells())
	for k := 0; k < c.Nz; k++ {
		for j := 0; j < c.Ny; j++ {
			for i := 0; i < c.Nx; i++ {
				m := c.Idx(i, j, k)
				u, v, w := c.U[m], c.V[m], c.W[m]
				records = append(records, CellRecord{
					I: i, J: j, K: k,
					U: u, V: v, W: w,
					Speed: speed(u, v, w),
				})
			}
		}
	}
	return records
}
