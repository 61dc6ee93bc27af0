package samples

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iafilius/measureviz/src/stats"
)

func TestParse_OnePerLineWithComments(t *testing.T) {
	in := "# run 2024-03-01\n814\n\n603.5  # warm cache\n8968\n"
	vals, err := Parse(strings.NewReader(in), "test")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := []float64{814, 603.5, 8968}
	if len(vals) != len(want) {
		t.Fatalf("got %v want %v", vals, want)
	}
	for i := range want {
		if vals[i] != want[i] {
			t.Fatalf("vals[%d]=%v want %v", i, vals[i], want[i])
		}
	}
}

func TestParse_PastedListLiteral(t *testing.T) {
	in := "[\n  814.000000,\n  603.000000,\n  8968.000000\n]\n"
	vals, err := Parse(strings.NewReader(in), "test")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(vals) != 3 || vals[2] != 8968 {
		t.Fatalf("unexpected values: %v", vals)
	}
}

func TestParse_LongSingleLineList(t *testing.T) {
	const n = 8000
	lit := "[" + strings.Repeat("814.000000, ", n) + "]"
	got, err := Parse(strings.NewReader(lit), "stdin")
	if err != nil {
		t.Fatalf("parse %d-value line: %v", n, err)
	}
	if len(got) != n || got[0] != 814 || got[n-1] != 814 {
		t.Fatalf("len=%d first=%v last=%v", len(got), got[0], got[len(got)-1])
	}
}

func TestParse_InvalidValueNamesLine(t *testing.T) {
	_, err := Parse(strings.NewReader("814\nabc\n"), "runs.txt")
	var ive *InvalidValueError
	if !errors.As(err, &ive) {
		t.Fatalf("expected InvalidValueError, got %v", err)
	}
	if ive.Pos != 2 || ive.Text != "abc" || ive.Source != "runs.txt" {
		t.Fatalf("unexpected error detail: %+v", ive)
	}
	if !strings.Contains(err.Error(), "runs.txt:2") {
		t.Fatalf("message should name input position: %s", err)
	}
}

func TestParse_RejectsNonPositiveAndNonFinite(t *testing.T) {
	for _, in := range []string{"0", "-5", "NaN", "+Inf"} {
		_, err := Parse(strings.NewReader(in), "t")
		var ive *InvalidValueError
		if !errors.As(err, &ive) {
			t.Errorf("%q: expected InvalidValueError, got %v", in, err)
		}
	}
}

func TestParse_EmptyInput(t *testing.T) {
	_, err := Parse(strings.NewReader("# nothing here\n\n"), "stdin")
	if !errors.Is(err, stats.ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}
}

func TestParseArgs(t *testing.T) {
	vals, err := ParseArgs([]string{"814", "603,8968"})
	if err != nil {
		t.Fatalf("parse args: %v", err)
	}
	if len(vals) != 3 {
		t.Fatalf("got %v", vals)
	}
	if _, err := ParseArgs(nil); !errors.Is(err, stats.ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}
	_, err = ParseArgs([]string{"1", "x"})
	var ive *InvalidValueError
	if !errors.As(err, &ive) || ive.Pos != 2 {
		t.Fatalf("expected InvalidValueError at arg 2, got %v", err)
	}
}

func TestParseFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "timings.txt")
	if err := os.WriteFile(p, []byte("1000\n2000\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	vals, err := ParseFile(p)
	if err != nil {
		t.Fatalf("parse file: %v", err)
	}
	if len(vals) != 2 {
		t.Fatalf("got %v", vals)
	}
	if _, err := ParseFile(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestParseFile_BundledDataset(t *testing.T) {
	vals, err := ParseFile(filepath.Join("..", "..", "testdata", "timings.txt"))
	if err != nil {
		t.Fatalf("parse bundled dataset: %v", err)
	}
	if len(vals) != 33 || vals[0] != 814 || vals[32] != 11658 {
		t.Fatalf("unexpected bundled dataset: n=%d first=%v last=%v", len(vals), vals[0], vals[len(vals)-1])
	}
}
