// render-timings scatters per-run durations against test number with dashed mean, median and
// reference lines, and prints the mean and median.
//
// Durations come from positional arguments, --file (one or more values per line, "-" for stdin),
// or stdin when neither is given.
//
//	render-timings --unit-factor 0.001 --reference 5 814 603 8968
//	render-timings --file testdata/timings.txt --out timings.png
package main

import (
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/iafilius/measureviz/src/charts"
	"github.com/iafilius/measureviz/src/cli"
	"github.com/iafilius/measureviz/src/config"
	"github.com/iafilius/measureviz/src/logging"
	"github.com/iafilius/measureviz/src/samples"
	"github.com/iafilius/measureviz/src/stats"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	logging.SetTool("render-timings")
	fs := flag.NewFlagSet("render-timings", flag.ContinueOnError)
	fs.SetOutput(stderr)
	factor := fs.Float64("unit-factor", config.DefaultUnitFactor, "Multiplier from input unit to display unit (0.001 = ms to s)")
	unit := fs.String("unit", config.DefaultUnit, "Display unit name for the Y axis")
	reference := fs.Float64("reference", config.DefaultReference, "Reference line in display units (0 hides it)")
	refLabel := fs.String("reference-label", "", "Legend label of the reference line (default \"<reference> <unit>\")")
	file := fs.String("file", "", "Read durations from this file (\"-\" for stdin)")
	out := fs.String("out", "", "Write the chart to this .png or .svg file instead of opening a window")
	summary := fs.Bool("summary", false, "Also print min/max/stddev/p25/p75/p90/p95 to stderr")
	width := fs.Int("width", 0, "Chart width in pixels (0 = default)")
	height := fs.Int("height", 0, "Chart height in pixels (0 = derived from width)")
	title := fs.String("title", "", "Chart title")
	cfgPath := fs.String("config", "", "Optional defaults file (.toml, .yaml)")
	logLevel := fs.String("log-level", config.DefaultLogLevel, "Log level (debug|info|warn|error)")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: render-timings [flags] [duration...]")
		fs.PrintDefaults()
	}

	pos, err := cli.ParseInterspersed(fs, args)
	if err == flag.ErrHelp {
		return cli.ExitOK
	}
	if err != nil {
		return cli.ExitUsage
	}
	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return cli.Fail(stderr, cli.Usagef("%v", err))
	}
	set := cli.SetFlags(fs)
	if !set["unit-factor"] {
		*factor = cfg.Timings.UnitFactor
	}
	if !set["unit"] {
		*unit = cfg.Timings.Unit
	}
	if !set["reference"] {
		*reference = cfg.Timings.Reference
	}
	if !set["reference-label"] {
		*refLabel = cfg.Timings.ReferenceLabel
	}
	if !set["title"] {
		*title = cfg.Timings.Title
	}
	if !set["width"] {
		*width = cfg.Chart.Width
	}
	if !set["height"] {
		*height = cfg.Chart.Height
	}
	if !set["log-level"] {
		*logLevel = cfg.LogLevel
	}
	if !logging.SetLogLevel(*logLevel) {
		return cli.Fail(stderr, cli.Usagef("unknown --log-level %q", *logLevel))
	}
	if *factor <= 0 || math.IsNaN(*factor) || math.IsInf(*factor, 0) {
		return cli.Fail(stderr, cli.Usagef("--unit-factor must be a positive number, got %v", *factor))
	}
	if *reference < 0 || math.IsNaN(*reference) || math.IsInf(*reference, 0) {
		return cli.Fail(stderr, cli.Usagef("--reference must be >= 0, got %v", *reference))
	}
	if *file != "" && len(pos) > 0 {
		return cli.Fail(stderr, cli.Usagef("give durations either as arguments or via --file, not both"))
	}
	if err := cli.CheckOut(*out); err != nil {
		return cli.Fail(stderr, err)
	}

	var raw []float64
	switch {
	case *file == "-":
		raw, err = samples.Parse(stdin, "stdin")
	case *file != "":
		raw, err = samples.ParseFile(*file)
	case len(pos) > 0:
		raw, err = samples.ParseArgs(pos)
	default:
		raw, err = samples.Parse(stdin, "stdin")
	}
	if err != nil {
		return cli.Fail(stderr, err)
	}

	values := stats.Scale(raw, *factor)
	sum, err := stats.Summarize(values)
	if err != nil {
		return cli.Fail(stderr, err)
	}
	logging.Infof("durations=%d factor=%v unit=%s", sum.Count, *factor, *unit)
	fmt.Fprintf(stdout, "mean: %v\n", sum.Mean)
	fmt.Fprintf(stdout, "median: %v\n", sum.Median)
	if *summary {
		printSummary(stderr, sum, *unit)
	}

	caption := fmt.Sprintf("n=%d  mean=%.3f %s  median=%.3f %s", sum.Count, sum.Mean, *unit, sum.Median, *unit)
	ch, err := charts.TimingChart(values, sum, charts.TimingOptions{
		Unit:           *unit,
		Reference:      *reference,
		ReferenceLabel: *refLabel,
		Title:          *title,
		Caption:        caption,
		Width:          *width,
		Height:         *height,
	})
	if err != nil {
		return cli.Fail(stderr, err)
	}
	if err := cli.Deliver(ch, *out, caption, "timings.png"); err != nil {
		return cli.Fail(stderr, err)
	}
	return cli.ExitOK
}

func printSummary(w io.Writer, s stats.Summary, unit string) {
	head := color.New(color.FgCyan, color.Bold)
	head.Fprintf(w, "%d runs (%s)\n", s.Count, unit)
	var b strings.Builder
	row := func(name string, v float64) { fmt.Fprintf(&b, "  %-6s %.3f\n", name, v) }
	row("min", s.Min)
	row("p25", s.P25)
	row("median", s.Median)
	row("mean", s.Mean)
	row("p75", s.P75)
	row("p90", s.P90)
	row("p95", s.P95)
	row("max", s.Max)
	row("stddev", s.StdDev)
	fmt.Fprint(w, b.String())
}
