// Package viewer delivers a rendered chart: either written to a file or shown in a window.
package viewer

import (
	"bufio"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"

	fyne "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/iafilius/measureviz/src/logging"
)

// Save creates path (and its parent directory) and streams the chart into it via write.
func Save(path string, write func(io.Writer) error) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create out dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	// a failed render must not leave a partial chart behind
	discard := func(err error) error {
		f.Close()
		os.Remove(path)
		return err
	}
	bw := bufio.NewWriter(f)
	if err := write(bw); err != nil {
		return discard(err)
	}
	if err := bw.Flush(); err != nil {
		return discard(fmt.Errorf("write %s: %w", path, err))
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("close %s: %w", path, err)
	}
	logging.Infof("wrote %s", path)
	return nil
}

// Show opens a window displaying img and blocks until the window is closed. The window offers a
// "Save PNG…" action so an interactive run can still export the chart.
func Show(title string, img image.Image, defaultName string) {
	a := app.NewWithID("io.measureviz.viewer")
	w := a.NewWindow(title)

	b := img.Bounds()
	ci := canvas.NewImageFromImage(img)
	ci.FillMode = canvas.ImageFillContain
	ci.SetMinSize(fyne.NewSize(float32(b.Dx()), float32(b.Dy())))

	save := widget.NewButton("Save PNG…", func() { exportPNG(w, img, defaultName) })
	closeBtn := widget.NewButton("Close", func() { w.Close() })
	bar := container.NewHBox(save, closeBtn)

	w.SetContent(container.NewBorder(nil, bar, nil, nil, ci))
	w.Resize(fyne.NewSize(float32(b.Dx())+16, float32(b.Dy())+56))
	logging.Debugf("showing %q (%dx%d)", title, b.Dx(), b.Dy())
	w.ShowAndRun()
}

func exportPNG(w fyne.Window, img image.Image, defaultName string) {
	fs := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil || wc == nil {
			return
		}
		defer wc.Close()
		if err := png.Encode(wc, img); err != nil {
			dialog.ShowError(err, w)
			return
		}
		logging.Infof("exported %s", wc.URI().Path())
	}, w)
	fs.SetFileName(defaultName)
	fs.Show()
}
