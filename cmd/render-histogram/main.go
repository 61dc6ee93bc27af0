// render-histogram draws the pixel-intensity histogram of one image with a vertical threshold
// marker, then shows it in a window or writes it to --out.
//
//	render-histogram <image-path> [--threshold N | --otsu [--otsu-offset D]] [--out chart.png]
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/iafilius/measureviz/src/charts"
	"github.com/iafilius/measureviz/src/cli"
	"github.com/iafilius/measureviz/src/config"
	"github.com/iafilius/measureviz/src/logging"
	"github.com/iafilius/measureviz/src/pixels"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	logging.SetTool("render-histogram")
	fs := flag.NewFlagSet("render-histogram", flag.ContinueOnError)
	fs.SetOutput(stderr)
	threshold := fs.Int("threshold", config.DefaultThreshold, "Threshold marker position (0-255)")
	otsu := fs.Bool("otsu", false, "Compute the marker with Otsu's method on the smoothed image luminance instead of --threshold")
	otsuOffset := fs.Int("otsu-offset", config.DefaultOtsuOffset, "Offset added to the Otsu threshold (result clamped to 0-255)")
	out := fs.String("out", "", "Write the chart to this .png or .svg file instead of opening a window")
	width := fs.Int("width", 0, "Chart width in pixels (0 = default)")
	height := fs.Int("height", 0, "Chart height in pixels (0 = derived from width)")
	title := fs.String("title", "", "Chart title")
	cfgPath := fs.String("config", "", "Optional defaults file (.toml, .yaml)")
	logLevel := fs.String("log-level", config.DefaultLogLevel, "Log level (debug|info|warn|error)")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: render-histogram <image-path> [flags]")
		fs.PrintDefaults()
	}

	pos, err := cli.ParseInterspersed(fs, args)
	if err == flag.ErrHelp {
		return cli.ExitOK
	}
	if err != nil {
		return cli.ExitUsage
	}
	if len(pos) != 1 {
		fs.Usage()
		return cli.Fail(stderr, cli.Usagef("expected exactly one image path, got %d arguments", len(pos)))
	}
	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return cli.Fail(stderr, cli.Usagef("%v", err))
	}
	set := cli.SetFlags(fs)
	if !set["threshold"] {
		*threshold = cfg.Histogram.Threshold
	}
	if !set["otsu"] {
		*otsu = cfg.Histogram.Otsu
	}
	if !set["otsu-offset"] {
		*otsuOffset = cfg.Histogram.OtsuOffset
	}
	if !set["width"] {
		*width = cfg.Chart.Width
	}
	if !set["height"] {
		*height = cfg.Chart.Height
	}
	if !set["title"] {
		*title = cfg.Histogram.Title
	}
	if !set["log-level"] {
		*logLevel = cfg.LogLevel
	}
	if !logging.SetLogLevel(*logLevel) {
		return cli.Fail(stderr, cli.Usagef("unknown --log-level %q", *logLevel))
	}
	if *threshold < 0 || *threshold > 255 {
		return cli.Fail(stderr, cli.Usagef("--threshold %d out of range [0,255]", *threshold))
	}
	if err := cli.CheckOut(*out); err != nil {
		return cli.Fail(stderr, err)
	}

	path := pos[0]
	start := time.Now()
	img, format, err := pixels.Decode(path)
	if err != nil {
		return cli.Fail(stderr, err)
	}
	logging.Phase(start, "decode")
	samples := pixels.Flatten(img)
	hist, err := pixels.NewHistogram(samples)
	if err != nil {
		return cli.Fail(stderr, fmt.Errorf("%s: %w", path, err))
	}
	logging.Infof("decoded %s (%s %dx%d) samples=%d", path, format, img.Bounds().Dx(), img.Bounds().Dy(), len(samples))

	marker := *threshold
	if *otsu {
		lum, err := pixels.NewHistogram(pixels.SmoothedLuminance(img))
		if err != nil {
			return cli.Fail(stderr, fmt.Errorf("%s: %w", path, err))
		}
		raw := pixels.OtsuThreshold(lum)
		marker = pixels.ClampThreshold(raw, *otsuOffset)
		logging.Infof("otsu threshold=%d offset=%d marker=%d", raw, *otsuOffset, marker)
		fmt.Fprintf(stdout, "threshold: %d\n", marker)
	}

	ch, err := charts.HistogramChart(hist, charts.HistogramOptions{
		Threshold: marker,
		Title:     *title,
		Width:     *width,
		Height:    *height,
	})
	if err != nil {
		return cli.Fail(stderr, err)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)) + "_histogram.png"
	if err := cli.Deliver(ch, *out, "", name); err != nil {
		return cli.Fail(stderr, err)
	}
	return cli.ExitOK
}
