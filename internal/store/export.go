package store

import (
	"encoding/json"
	"io"
	"math"
	"os"

	"github.com/gocarina/gocsv"

	"github.com/san-kum/flowlab/internal/corrector"
	"github.com/san-kum/flowlab/internal/geom"
)

func speed(u, v, w float64) float64 {
	return math.Sqrt(u*u + v*v + w*w)
}

type ExportData struct {
	Surrogate     string        `json:"surrogate"`
	Geometry      geom.Geometry `json:"geometry"`
	Iterations    int           `json:"iterations"`
	MaxDivergence float64       `json:"max_divergence"`
	EnergyLimit   float64       `json:"energy_limit"`
	Confidence    float64       `json:"confidence"`
	Note          string        `json:"note,omitempty"`
	Cells         []CellRecord  `json:"cells,omitempty"`
}

func exportData(surrogate string, g geom.Geometry, iterations int, res *corrector.Result) ExportData {
	data := ExportData{
		Surrogate:     surrogate,
		Geometry:      g,
		Iterations:    iterations,
		MaxDivergence: res.Residuals.MaxDivergence,
		EnergyLimit:   res.Residuals.EnergyLimit,
		Confidence:    res.Confidence,
		Note:          res.Residuals.Note,
	}
	if res.Field.HasVelocity() {
		data.Cells = Records(res.Field, g)
	}
	return data
}

func ExportJSON(w io.Writer, surrogate string, g geom.Geometry, iterations int, res *corrector.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(exportData(surrogate, g, iterations, res))
}

func ExportJSONFile(path string, surrogate string, g geom.Geometry, iterations int, res *corrector.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return ExportJSON(file, surrogate, g, iterations, res)
}

func ExportCSV(w io.Writer, g geom.Geometry, res *corrector.Result) error {
	return gocsv.Marshal(Records(res.Field, g), w)
}

func ExportCSVFile(path string, g geom.Geometry, res *corrector.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return ExportCSV(file, g, res)
}
