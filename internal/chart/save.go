package chart

import (
	"errors"
	"fmt"
	"image/color"
	"os"

	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// ErrNoData is returned when a chart has nothing to draw.
var ErrNoData = errors.New("no data to plot")

// Drawer is anything that can paint itself onto a canvas: a *plot.Plot or a
// composite figure.
type Drawer interface {
	Draw(c draw.Canvas)
}

// Save renders d as a PNG at the theme's size and DPI on a white background.
func Save(d Drawer, th Theme, path string) error {
	img := vgimg.NewWith(
		vgimg.UseWH(th.Width, th.Height),
		vgimg.UseDPI(th.DPI),
		vgimg.UseBackgroundColor(color.White),
	)
	d.Draw(draw.New(img))

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
