package store

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/san-kum/flowlab/internal/corrector"
	"github.com/san-kum/flowlab/internal/field"
	"github.com/san-kum/flowlab/internal/geom"
)

func testGeometry() geom.Geometry {
	return geom.Geometry{
		Dimensions: 2,
		Resolution: geom.Resolution{Nx: 3, Ny: 2},
		Spacing:    geom.Spacing{Dx: 1, Dy: 1},
	}
}

func testResult() *corrector.Result {
	vel := [][]field.Vec3{
		{{U: 1}, {U: 2}, {U: 3}},
		{{V: 1}, {V: 2}, {U: 3, V: 4}},
	}
	return &corrector.Result{
		Field:      &field.Field{Vel2: vel},
		Residuals:  corrector.Residuals{MaxDivergence: 0.002, EnergyLimit: 75},
		Confidence: 0.8,
	}
}

func TestSaveListLoadRoundTrip(t *testing.T) {
	s := New(t.TempDir())
	if err := s.Init(); err != nil {
		t.Fatal(err)
	}

	g := testGeometry()
	runID, err := s.Save("vortex", g, 40, testResult())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(runID, "vortex_") {
		t.Errorf("runID = %q", runID)
	}

	runs, err := s.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 {
		t.Fatalf("List() returned %d runs", len(runs))
	}
	if runs[0].ID != runID || runs[0].Confidence != 0.8 {
		t.Errorf("listed metadata = %+v", runs[0])
	}

	meta, err := s.Load(runID)
	if err != nil {
		t.Fatal(err)
	}
	if meta.MaxDivergence != 0.002 || meta.Geometry.Resolution.Nx != 3 {
		t.Errorf("loaded metadata = %+v", meta)
	}

	cells, err := s.LoadField(runID)
	if err != nil {
		t.Fatal(err)
	}
	if len(cells) != 6 {
		t.Fatalf("field has %d cells", len(cells))
	}
	last := cells[5]
	if last.I != 2 || last.J != 1 || last.U != 3 || last.V != 4 {
		t.Errorf("last cell = %+v", last)
	}
	if last.Speed != 5 {
		t.Errorf("speed = %g", last.Speed)
	}
}

func TestListEmptyBaseDir(t *testing.T) {
	s := New(t.TempDir() + "/missing")
	runs, err := s.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}

func TestRecordsRowMajorOrder(t *testing.T) {
	g := testGeometry()
	records := Records(testResult().Field, g)
	if len(records) != 6 {
		t.Fatalf("got %d records", len(records))
	}
	// i varies fastest
	if records[0].I != 0 || records[1].I != 1 || records[3].J != 1 {
		t.Errorf("order wrong: %+v", records[:4])
	}
}

func TestExportJSON(t *testing.T) {
	var buf bytes.Buffer
	g := testGeometry()
	if err := ExportJSON(&buf, "vortex", g, 40, testResult()); err != nil {
		t.Fatal(err)
	}

	var data ExportData
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatal(err)
	}
	if data.Surrogate != "vortex" || data.Confidence != 0.8 {
		t.Errorf("exported = %+v", data)
	}
	if len(data.Cells) != 6 {
		t.Errorf("exported %d cells", len(data.Cells))
	}
}

func TestExportCSVHeader(t *testing.T) {
	var buf bytes.Buffer
	if err := ExportCSV(&buf, testGeometry(), testResult()); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 7 {
		t.Fatalf("csv has %d lines", len(lines))
	}
	if lines[0] != "i,j,k,u,v,w,speed" {
		t.Errorf("header = %q", lines[0])
	}
}

func TestSaveScalarOnlySkipsFieldFile(t *testing.T) {
	s := New(t.TempDir())
	res := &corrector.Result{
		Field:      &field.Field{},
		Residuals:  corrector.Residuals{Note: "no-velocity-field"},
		Confidence: 1.0,
	}
	runID, err := s.Save("none", testGeometry(), 0, res)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.LoadField(runID); err == nil {
		t.Error("expected missing field.csv for scalar-only run")
	}
	meta, err := s.Load(runID)
	if err != nil {
		t.Fatal(err)
	}
	if meta.Note != "no-velocity-field" {
		t.Errorf("note = %q", meta.Note)
	}
}
