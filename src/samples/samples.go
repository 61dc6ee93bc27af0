// Package samples reads raw timing measurements from command-line arguments, files or stdin.
//
// Accepted input is one or more numbers per line separated by commas or whitespace. Blank lines
// and '#' comments are skipped and list brackets are ignored, so a pasted list literal such as
// "[814.000000, 603.000000,\n 8968.000000]" parses as three samples.
package samples

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/iafilius/measureviz/src/stats"
)

// maxLineBytes bounds a single input line; pasted list literals arrive as one long line.
const maxLineBytes = 16 << 20

// InvalidValueError reports a sample that is not a positive finite number.
type InvalidValueError struct {
	Source string // file name, "stdin" or "args"
	Pos    int    // 1-based line number (files) or argument index (args)
	Text   string
	Reason string
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("%s:%d: invalid duration %q: %s (expected a positive number)", e.Source, e.Pos, e.Text, e.Reason)
}

// ParseArgs parses one value per argument; each argument may itself hold comma-separated values.
func ParseArgs(args []string) ([]float64, error) {
	var out []float64
	for i, a := range args {
		vals, err := parseFields(a, "args", i+1)
		if err != nil {
			return nil, err
		}
		out = append(out, vals...)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("args: %w", stats.ErrEmptyInput)
	}
	return out, nil
}

// Parse reads every sample from r. source names r in error messages.
func Parse(r io.Reader, source string) ([]float64, error) {
	var out []float64
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		vals, err := parseFields(text, source, line)
		if err != nil {
			return nil, err
		}
		out = append(out, vals...)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", source, err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%s: %w", source, stats.ErrEmptyInput)
	}
	return out, nil
}

// ParseFile reads samples from path; "-" means stdin.
func ParseFile(path string) ([]float64, error) {
	if path == "-" {
		return Parse(os.Stdin, "stdin")
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open durations file: %w", err)
	}
	defer f.Close()
	return Parse(f, path)
}

func parseFields(text, source string, pos int) ([]float64, error) {
	text = strings.NewReplacer("[", " ", "]", " ", ",", " ", ";", " ").Replace(text)
	var out []float64
	for _, tok := range strings.Fields(text) {
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, &InvalidValueError{Source: source, Pos: pos, Text: tok, Reason: "not a number"}
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, &InvalidValueError{Source: source, Pos: pos, Text: tok, Reason: "not finite"}
		}
		if v <= 0 {
			return nil, &InvalidValueError{Source: source, Pos: pos, Text: tok, Reason: "must be > 0"}
		}
		out = append(out, v)
	}
	return out, nil
}
