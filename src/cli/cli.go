// Package cli holds the plumbing shared by the render commands: flag parsing that allows flags
// after positional arguments, exit-code mapping, coloured diagnostics and chart delivery.
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/fatih/color"
	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/iafilius/measureviz/src/charts"
	"github.com/iafilius/measureviz/src/logging"
	"github.com/iafilius/measureviz/src/viewer"
)

// Exit codes.
const (
	ExitOK    = 0
	ExitError = 1 // unreadable or invalid input
	ExitUsage = 2 // bad flags or arguments
)

// UsageError marks an invocation problem (exit 2) as opposed to an input problem (exit 1).
type UsageError struct{ Msg string }

func (e *UsageError) Error() string { return e.Msg }

// Usagef builds a UsageError.
func Usagef(format string, a ...interface{}) error {
	return &UsageError{Msg: fmt.Sprintf(format, a...)}
}

// ExitCode maps an error to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var ue *UsageError
	if errors.As(err, &ue) {
		return ExitUsage
	}
	return ExitError
}

// ParseInterspersed parses fs from args, allowing flags before and after positional arguments.
// Everything after a literal "--" is positional.
func ParseInterspersed(fs *flag.FlagSet, args []string) ([]string, error) {
	var tail []string
	for i, a := range args {
		if a == "--" {
			tail = append(tail, args[i+1:]...)
			args = args[:i]
			break
		}
	}
	var pos []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		args = fs.Args()
		if len(args) == 0 {
			break
		}
		pos = append(pos, args[0])
		args = args[1:]
	}
	return append(pos, tail...), nil
}

// SetFlags returns the names of flags given explicitly on the command line.
func SetFlags(fs *flag.FlagSet) map[string]bool {
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}

// Fail prints err to w with a coloured prefix, logs it, and returns the matching exit code.
func Fail(w io.Writer, err error) int {
	code := ExitCode(err)
	logging.Errorf("%v", err)
	color.New(color.FgRed, color.Bold).Fprint(w, "error: ")
	fmt.Fprintln(w, err)
	return code
}

// CheckOut validates an --out path before any work is done.
func CheckOut(out string) error {
	if out == "" {
		return nil
	}
	if _, err := charts.FormatFromPath(out); err != nil {
		return Usagef("--out: %v", err)
	}
	return nil
}

// Deliver renders ch and either writes it to out (PNG or SVG by extension) or, when out is empty,
// shows it in a window. caption is stamped onto raster output only.
func Deliver(ch chart.Chart, out, caption, defaultName string) error {
	if out == "" {
		img, err := charts.RenderImage(ch)
		if err != nil {
			return err
		}
		viewer.Show(ch.Title, charts.Annotate(img, caption), defaultName)
		return nil
	}
	f, err := charts.FormatFromPath(out)
	if err != nil {
		return Usagef("--out: %v", err)
	}
	return viewer.Save(out, func(w io.Writer) error {
		if f == charts.SVG {
			return charts.Render(ch, charts.SVG, w)
		}
		img, err := charts.RenderImage(ch)
		if err != nil {
			return err
		}
		return charts.EncodePNG(charts.Annotate(img, caption), w)
	})
}
