package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/flowlab/internal/config"
	"github.com/san-kum/flowlab/internal/corrector"
	"github.com/san-kum/flowlab/internal/field"
	"github.com/san-kum/flowlab/internal/geom"
	"github.com/san-kum/flowlab/internal/metrics"
	"github.com/san-kum/flowlab/internal/solver"
	"github.com/san-kum/flowlab/internal/store"
	"github.com/san-kum/flowlab/internal/surrogate"
	"github.com/san-kum/flowlab/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir     string
	dims        int
	nx, ny, nz  int
	dx, dy, dz  float64
	iterations  int
	energyLimit float64
	parallel    bool
	configFile  string
	preset      string
	plot        bool
	save        bool
	outFile     string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "flowlab",
		Short: "divergence-free flow field correction lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".flowlab", "data directory")

	correctCmd := &cobra.Command{
		Use:   "correct [surrogate]",
		Short: "generate a field and remove its divergence",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runCorrect,
	}
	addRunFlags(correctCmd)
	correctCmd.Flags().BoolVar(&plot, "plot", false, "plot the residual curve")
	correctCmd.Flags().BoolVar(&save, "save", false, "save the run to the data directory")

	liveCmd := &cobra.Command{
		Use:   "live [surrogate]",
		Short: "run the correction with a live residual view",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addRunFlags(liveCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [surrogate]",
		Short: "run a correction and export the result as JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportJSON,
	}
	addRunFlags(exportJSONCmd)
	exportJSONCmd.Flags().StringVar(&outFile, "out", "", "output file (default stdout)")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [surrogate]",
		Short: "run a correction and export the field as CSV",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportCSV,
	}
	addRunFlags(exportCSVCmd)
	exportCSVCmd.Flags().StringVar(&outFile, "out", "", "output file (default stdout)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				cfg := config.GetPreset(name)
				fmt.Printf("  %-12s %s %s\n", name, cfg.Surrogate.Name, describe(cfg.Geometry))
			}
			return nil
		},
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "time the solver serial vs parallel across grid sizes",
		RunE:  benchSolver,
	}
	benchCmd.Flags().IntVar(&iterations, "iterations", corrector.DefaultIterations, "solver iteration budget")

	rootCmd.AddCommand(correctCmd, liveCmd, listCmd, exportJSONCmd, exportCSVCmd, presetsCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&dims, "dims", 3, "grid dimensionality (2 or 3)")
	cmd.Flags().IntVar(&nx, "nx", 32, "cells along x")
	cmd.Flags().IntVar(&ny, "ny", 32, "cells along y")
	cmd.Flags().IntVar(&nz, "nz", 16, "cells along z (3d only)")
	cmd.Flags().Float64Var(&dx, "dx", 1.0, "cell size along x")
	cmd.Flags().Float64Var(&dy, "dy", 1.0, "cell size along y")
	cmd.Flags().Float64Var(&dz, "dz", 1.0, "cell size along z (3d only)")
	cmd.Flags().IntVar(&iterations, "iterations", corrector.DefaultIterations, "solver iteration budget")
	cmd.Flags().Float64Var(&energyLimit, "energy-limit", corrector.DefaultEnergyLimit, "per-cell speed cap")
	cmd.Flags().BoolVar(&parallel, "parallel", false, "use parallel kernels on large grids")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// resolveConfig builds the effective config: preset, then config file,
// then explicit flags on top.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		*cfg = *p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		*cfg = *loaded
	}

	if len(args) > 0 {
		cfg.Surrogate.Name = args[0]
	}

	if cmd.Flags().Changed("dims") {
		cfg.Geometry.Dimensions = dims
	}
	if cmd.Flags().Changed("nx") {
		cfg.Geometry.Resolution.Nx = nx
	}
	if cmd.Flags().Changed("ny") {
		cfg.Geometry.Resolution.Ny = ny
	}
	if cmd.Flags().Changed("nz") {
		cfg.Geometry.Resolution.Nz = nz
	}
	if cmd.Flags().Changed("dx") {
		cfg.Geometry.Spacing.Dx = dx
	}
	if cmd.Flags().Changed("dy") {
		cfg.Geometry.Spacing.Dy = dy
	}
	if cmd.Flags().Changed("dz") {
		cfg.Geometry.Spacing.Dz = dz
	}
	if cfg.Geometry.Dimensions == 2 {
		cfg.Geometry.Resolution.Nz = 0
		cfg.Geometry.Spacing.Dz = 0
	}
	if cmd.Flags().Changed("iterations") {
		cfg.Corrector.Iterations = iterations
	}
	if cmd.Flags().Changed("energy-limit") {
		cfg.Corrector.EnergyLimit = energyLimit
	}
	if cmd.Flags().Changed("parallel") {
		cfg.Corrector.Parallel = parallel
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func generate(cfg *config.Config) (*field.Field, error) {
	gen, err := surrogate.NewRegistry().Get(cfg.Surrogate.Name, cfg.Surrogate.Params)
	if err != nil {
		return nil, err
	}
	return gen.Generate(cfg.Geometry), nil
}

func correctorOptions(cfg *config.Config, observers ...solver.Observer) corrector.Options {
	return corrector.Options{
		Iterations:  cfg.Corrector.Iterations,
		EnergyLimit: cfg.Corrector.EnergyLimit,
		Parallel:    cfg.Corrector.Parallel,
		Observers:   observers,
	}
}

func runCorrect(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	f, err := generate(cfg)
	if err != nil {
		return err
	}

	conv := metrics.NewConvergence()
	history := metrics.NewResidualHistory()

	fmt.Printf("correcting %s field on %s...\n", cfg.Surrogate.Name, describe(cfg.Geometry))
	start := time.Now()

	res, err := corrector.Correct(cfg.Geometry, f, correctorOptions(cfg, conv, history))
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("iterations: %d\n", conv.Iterations())
	if conv.Iterations() > 0 {
		fmt.Printf("final residual: %.3e\n", conv.Residual())
	}
	fmt.Printf("max divergence: %.3e\n", res.Residuals.MaxDivergence)
	fmt.Printf("confidence: %.3f\n", res.Confidence)
	if res.Residuals.Note != "" {
		fmt.Printf("note: %s\n", res.Residuals.Note)
	}
	if res.Field.HasVelocity() {
		c := field.Flatten(res.Field, cfg.Geometry)
		fmt.Printf("max speed: %.3f (limit %.1f)\n", metrics.MaxSpeed(c), res.Residuals.EnergyLimit)
		fmt.Printf("kinetic energy: %.3f\n", metrics.KineticEnergy(c))
	}

	if plot && len(history.History()) > 1 {
		fmt.Println()
		graph := asciigraph.Plot(history.History(),
			asciigraph.Height(10),
			asciigraph.Width(70),
			asciigraph.Caption("CG residual"),
		)
		fmt.Println(graph)
	}

	if save {
		st := store.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(cfg.Surrogate.Name, cfg.Geometry, conv.Iterations(), res)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", runID)
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	f, err := generate(cfg)
	if err != nil {
		return err
	}
	_, err = viz.RunLive(cfg.Surrogate.Name, cfg.Geometry, f, correctorOptions(cfg))
	return err
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSURROGATE\tTIME\tGRID\tITERS\tMAXDIV\tCONF")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%.2e\t%.3f\n",
			run.ID,
			run.Surrogate,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			describe(run.Geometry),
			run.Iterations,
			run.MaxDivergence,
			run.Confidence,
		)
	}
	return w.Flush()
}

func exportJSON(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	f, err := generate(cfg)
	if err != nil {
		return err
	}
	conv := metrics.NewConvergence()
	res, err := corrector.Correct(cfg.Geometry, f, correctorOptions(cfg, conv))
	if err != nil {
		return err
	}
	if outFile != "" {
		return store.ExportJSONFile(outFile, cfg.Surrogate.Name, cfg.Geometry, conv.Iterations(), res)
	}
	return store.ExportJSON(os.Stdout, cfg.Surrogate.Name, cfg.Geometry, conv.Iterations(), res)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	f, err := generate(cfg)
	if err != nil {
		return err
	}
	res, err := corrector.Correct(cfg.Geometry, f, correctorOptions(cfg))
	if err != nil {
		return err
	}
	if !res.Field.HasVelocity() {
		return fmt.Errorf("nothing to export: %s", res.Residuals.Note)
	}
	if outFile != "" {
		return store.ExportCSVFile(outFile, cfg.Geometry, res)
	}
	return store.ExportCSV(os.Stdout, cfg.Geometry, res)
}

func benchSolver(cmd *cobra.Command, args []string) error {
	sizes := []int{32, 48, 64}

	fmt.Println("benchmarking vortex correction")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "GRID\tCELLS\tSERIAL\tPARALLEL")

	for _, n := range sizes {
		g := geom.Geometry{
			Dimensions: 3,
			Resolution: geom.Resolution{Nx: n, Ny: n, Nz: n},
			Spacing:    geom.Spacing{Dx: 1, Dy: 1, Dz: 1},
		}
		f := surrogate.NewVortex(map[string]float64{"axial": 0.4}).Generate(g)

		serial := timeCorrection(g, f, corrector.Options{Iterations: iterations})
		par := timeCorrection(g, f, corrector.Options{Iterations: iterations, Parallel: true})

		fmt.Fprintf(w, "%s\t%d\t%v\t%v\n", describe(g), g.Cells(), serial, par)
	}
	return w.Flush()
}

func timeCorrection(g geom.Geometry, f *field.Field, opts corrector.Options) time.Duration {
	start := time.Now()
	if _, err := corrector.Correct(g, f, opts); err != nil {
		return 0
	}
	return time.Since(start)
}

func describe(g geom.Geometry) string {
	if g.Is3D() {
		return fmt.Sprintf("%dx%dx%d", g.Resolution.Nx, g.Resolution.Ny, g.Resolution.Nz)
	}
	return fmt.Sprintf("%dx%d", g.Resolution.Nx, g.Resolution.Ny)
}
