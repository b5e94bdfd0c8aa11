package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/phaseflow/internal/config"
	"github.com/san-kum/phaseflow/internal/eval"
	"github.com/san-kum/phaseflow/internal/fields"
	"github.com/san-kum/phaseflow/internal/norm"
	"github.com/san-kum/phaseflow/internal/phase"
	"github.com/san-kum/phaseflow/internal/render"
	"github.com/san-kum/phaseflow/internal/tui"
	"github.com/san-kum/phaseflow/internal/viz"
)

var (
	qMin, qMax float64
	pMin, pMax float64
	qSamples   int
	pSamples   int
	// Field parameters and extra args
	paramFlags []string
	argFlags   []float64
	// Render configuration
	mode     string
	colormap string
	clipLo   float64
	clipHi   float64
	widthIn  float64
	heightIn float64
	dark     bool
	outPath  string
	// Config file and preset
	configFile string
	preset     string
	// Export format
	format string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "phaseflow",
		Short: "Hamiltonian phase portrait renderer",
	}

	plotCmd := &cobra.Command{
		Use:   "plot [field]",
		Short: "render a phase portrait to an image file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runPlot,
	}
	addGridFlags(plotCmd)
	plotCmd.Flags().StringVar(&mode, "mode", "both", "glyph mode: arrows, lines, both")
	plotCmd.Flags().StringVar(&colormap, "cmap", "blackbody", "colormap: blackbody, kindlmann, bluered, hsl")
	plotCmd.Flags().Float64Var(&clipLo, "clip-lo", config.DefaultClipLo, "lower magnitude clip percentile")
	plotCmd.Flags().Float64Var(&clipHi, "clip-hi", config.DefaultClipHi, "upper magnitude clip percentile")
	plotCmd.Flags().Float64Var(&widthIn, "width", config.DefaultWidthIn, "image width (inches)")
	plotCmd.Flags().Float64Var(&heightIn, "height", config.DefaultWidthIn, "image height (inches)")
	plotCmd.Flags().BoolVar(&dark, "dark", true, "black background, axes hidden")
	plotCmd.Flags().StringVar(&outPath, "out", "phase_portrait.png", "output file (png, svg, pdf)")
	plotCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	plotCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	previewCmd := &cobra.Command{
		Use:   "preview [field]",
		Short: "interactive terminal preview",
		Args:  cobra.ExactArgs(1),
		RunE:  runPreview,
	}
	addGridFlags(previewCmd)

	inspectCmd := &cobra.Command{
		Use:   "inspect [field]",
		Short: "print field summary, ASCII portrait, and magnitude profile",
		Args:  cobra.ExactArgs(1),
		RunE:  runInspect,
	}
	addGridFlags(inspectCmd)
	inspectCmd.Flags().Float64Var(&clipLo, "clip-lo", config.DefaultClipLo, "lower magnitude clip percentile")
	inspectCmd.Flags().Float64Var(&clipHi, "clip-hi", config.DefaultClipHi, "upper magnitude clip percentile")

	fieldsCmd := &cobra.Command{
		Use:   "fields",
		Short: "list built-in fields and presets",
		RunE:  listFields,
	}

	exportCmd := &cobra.Command{
		Use:   "export [field]",
		Short: "dump sampled field values",
		Args:  cobra.ExactArgs(1),
		RunE:  runExport,
	}
	addGridFlags(exportCmd)
	exportCmd.Flags().StringVar(&format, "format", "csv", "output format: csv, json")
	exportCmd.Flags().StringVar(&outPath, "out", "", "output file (default stdout)")

	rootCmd.AddCommand(plotCmd, previewCmd, inspectCmd, fieldsCmd, exportCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func addGridFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&qMin, "qmin", -config.DefaultSpan, "position window minimum")
	cmd.Flags().Float64Var(&qMax, "qmax", config.DefaultSpan, "position window maximum")
	cmd.Flags().IntVar(&qSamples, "qn", config.DefaultSamples, "position samples")
	cmd.Flags().Float64Var(&pMin, "pmin", -config.DefaultSpan, "momentum window minimum")
	cmd.Flags().Float64Var(&pMax, "pmax", config.DefaultSpan, "momentum window maximum")
	cmd.Flags().IntVar(&pSamples, "pn", config.DefaultSamples, "momentum samples")
	cmd.Flags().StringSliceVar(&paramFlags, "param", nil, "field parameter override, name=value (repeatable)")
	cmd.Flags().Float64SliceVar(&argFlags, "args", nil, "extra arguments passed to every field evaluation")
}

// buildConfig assembles the effective config from file, preset, and flags,
// in that precedence order (later wins).
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	if len(args) > 0 {
		cfg.Field = args[0]
	}

	if preset != "" {
		resolved := config.ResolvePreset(cfg.Field, preset)
		if resolved == nil {
			return nil, fmt.Errorf("unknown preset %q for field %q", preset, cfg.Field)
		}
		cfg = resolved
	}

	// Explicit grid flags win over preset and config file values. The flag
	// defaults match DefaultConfig, so untouched flags change nothing.
	flagSet := cmd.Flags()
	if flagSet.Changed("qmin") {
		cfg.Grid.QMin = qMin
	}
	if flagSet.Changed("qmax") {
		cfg.Grid.QMax = qMax
	}
	if flagSet.Changed("qn") {
		cfg.Grid.QN = qSamples
	}
	if flagSet.Changed("pmin") {
		cfg.Grid.PMin = pMin
	}
	if flagSet.Changed("pmax") {
		cfg.Grid.PMax = pMax
	}
	if flagSet.Changed("pn") {
		cfg.Grid.PN = pSamples
	}

	params, err := parseParams(paramFlags)
	if err != nil {
		return nil, err
	}
	if cfg.Params == nil {
		cfg.Params = params
	} else {
		for k, v := range params {
			cfg.Params[k] = v
		}
	}
	if len(argFlags) > 0 {
		cfg.Args = argFlags
	}

	return cfg, nil
}

func parseParams(pairs []string) (map[string]float64, error) {
	params := make(map[string]float64, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("bad --param %q, want name=value", pair)
		}
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("bad --param %q: %w", pair, err)
		}
		params[name] = v
	}
	return params, nil
}

// pipeline runs grid construction, evaluation, and normalization.
func pipeline(cfg *config.Config) (*norm.Field, error) {
	registry := fields.NewRegistry()
	sys, err := registry.Get(cfg.Field, cfg.Params)
	if err != nil {
		return nil, err
	}

	g, err := phase.NewGrid(
		phase.Linspace(cfg.Grid.QMin, cfg.Grid.QMax, cfg.Grid.QN),
		phase.Linspace(cfg.Grid.PMin, cfg.Grid.PMax, cfg.Grid.PN),
	)
	if err != nil {
		return nil, err
	}

	s, err := eval.Evaluate(g, sys, cfg.Args)
	if err != nil {
		return nil, err
	}

	f := norm.Normalize(s, norm.Options{ClipLo: cfg.Render.ClipLo, ClipHi: cfg.Render.ClipHi})
	return f, nil
}

func runPlot(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("clip-lo") {
		cfg.Render.ClipLo = clipLo
	}
	if cmd.Flags().Changed("clip-hi") {
		cfg.Render.ClipHi = clipHi
	}

	f, err := pipeline(cfg)
	if err != nil {
		return err
	}

	renderMode, err := render.ParseMode(valueOr(cmd, "mode", mode, cfg.Render.Mode))
	if err != nil {
		return err
	}
	spec := render.Spec{
		Mode:     renderMode,
		Colormap: valueOr(cmd, "cmap", colormap, cfg.Render.Colormap),
		Dark:     dark,
		Title:    cfg.Field,
	}
	if configFile != "" && !cmd.Flags().Changed("dark") {
		spec.Dark = cfg.Render.Dark
	}

	p, err := render.Portrait(f, spec)
	if err != nil {
		return err
	}

	out := valueOr(cmd, "out", outPath, cfg.Render.Out)
	w := valueOrFloat(cmd, "width", widthIn, cfg.Render.WidthIn)
	h := valueOrFloat(cmd, "height", heightIn, cfg.Render.HeightIn)
	if err := render.Save(p, w, h, out); err != nil {
		return err
	}

	fmt.Printf("saved %s (%dx%d nodes, |v| in [%.3g, %.3g])\n",
		out, f.Sample.Grid.Cols(), f.Sample.Grid.Rows(), f.MagMin, f.MagMax)
	return nil
}

// valueOr prefers an explicitly set flag over the config file value.
func valueOr(cmd *cobra.Command, flag, flagValue, cfgValue string) string {
	if cmd.Flags().Changed(flag) || cfgValue == "" {
		return flagValue
	}
	return cfgValue
}

func valueOrFloat(cmd *cobra.Command, flag string, flagValue, cfgValue float64) float64 {
	if cmd.Flags().Changed(flag) || cfgValue == 0 {
		return flagValue
	}
	return cfgValue
}

func runPreview(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	registry := fields.NewRegistry()
	sys, err := registry.Get(cfg.Field, cfg.Params)
	if err != nil {
		return err
	}

	model := tui.NewModel(sys, cfg.Field, cfg.Args,
		cfg.Grid.QMin, cfg.Grid.QMax, cfg.Grid.PMin, cfg.Grid.PMax)
	_, err = tea.NewProgram(model).Run()
	return err
}

func runInspect(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("clip-lo") {
		cfg.Render.ClipLo = clipLo
	}
	if cmd.Flags().Changed("clip-hi") {
		cfg.Render.ClipHi = clipHi
	}

	f, err := pipeline(cfg)
	if err != nil {
		return err
	}
	g := f.Sample.Grid

	fmt.Printf("field: %s   grid: %dx%d over q[%.3g,%.3g] p[%.3g,%.3g]\n\n",
		cfg.Field, g.Cols(), g.Rows(), cfg.Grid.QMin, cfg.Grid.QMax, cfg.Grid.PMin, cfg.Grid.PMax)
	fmt.Println(viz.FieldToASCII(f, 72, 22))

	equilibria, singular := 0, 0
	for row := 0; row < g.Rows(); row++ {
		for col := 0; col < g.Cols(); col++ {
			switch {
			case f.IsSingular(row, col):
				singular++
			case f.IsEquilibrium(row, col):
				equilibria++
			}
		}
	}
	fmt.Printf("|v| color bounds: [%.4g, %.4g]   equilibria: %d   singular nodes: %d\n\n",
		f.MagMin, f.MagMax, equilibria, singular)

	midRow := g.Rows() / 2
	profile := viz.MagnitudeProfile(f, midRow)
	if len(profile) > 1 {
		caption := fmt.Sprintf("|v| along p=%.3g", f.Sample.Grid.P[midRow])
		graph := asciigraph.Plot(profile,
			asciigraph.Height(10),
			asciigraph.Width(70),
			asciigraph.Caption(caption))
		fmt.Println(graph)
	}
	return nil
}

func listFields(cmd *cobra.Command, args []string) error {
	registry := fields.NewRegistry()

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "FIELD\tPARAMS\tPRESETS")
	for _, name := range registry.List() {
		sys, err := registry.Get(name, nil)
		if err != nil {
			return err
		}
		params := make([]string, 0, len(sys.GetParams()))
		for k, v := range sys.GetParams() {
			params = append(params, fmt.Sprintf("%s=%.4g", k, v))
		}
		sort.Strings(params)
		fmt.Fprintf(w, "%s\t%s\t%s\n", name,
			strings.Join(params, " "),
			strings.Join(config.ListPresets(name), " "))
	}
	return w.Flush()
}

type exportNode struct {
	Q    float64 `json:"q"`
	P    float64 `json:"p"`
	Qdot float64 `json:"qdot"`
	Pdot float64 `json:"pdot"`
	Mag  float64 `json:"mag"`
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	f, err := pipeline(cfg)
	if err != nil {
		return err
	}
	g := f.Sample.Grid

	out := os.Stdout
	if outPath != "" {
		file, err := os.Create(outPath)
		if err != nil {
			return err
		}
		defer file.Close()
		out = file
	}

	nodes := make([]exportNode, 0, g.Len())
	for row := 0; row < g.Rows(); row++ {
		for col := 0; col < g.Cols(); col++ {
			i := g.Index(row, col)
			q, p := g.At(row, col)
			nodes = append(nodes, exportNode{
				Q: q, P: p,
				Qdot: f.Sample.Qdot[i],
				Pdot: f.Sample.Pdot[i],
				Mag:  f.Mag[i],
			})
		}
	}

	switch format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(nodes)
	case "csv":
		w := csv.NewWriter(out)
		if err := w.Write([]string{"q", "p", "qdot", "pdot", "mag"}); err != nil {
			return err
		}
		for _, n := range nodes {
			rec := []string{
				strconv.FormatFloat(n.Q, 'g', -1, 64),
				strconv.FormatFloat(n.P, 'g', -1, 64),
				strconv.FormatFloat(n.Qdot, 'g', -1, 64),
				strconv.FormatFloat(n.Pdot, 'g', -1, 64),
				strconv.FormatFloat(n.Mag, 'g', -1, 64),
			}
			if err := w.Write(rec); err != nil {
				return err
			}
		}
		w.Flush()
		return w.Error()
	}
	return fmt.Errorf("unknown format %q (have csv, json)", format)
}
