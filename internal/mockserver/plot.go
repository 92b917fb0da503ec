package mockserver

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"github.com/exodash/exodash/internal/exoplanet"
)

const (
	plotWidth   = 900
	panelHeight = 210
	plotMargin  = 20
)

var (
	plotBackground = color.RGBA{255, 255, 255, 255}
	plotAxis       = color.RGBA{160, 160, 160, 255}
	rawSeries      = color.RGBA{31, 119, 180, 255}
	flatSeries     = color.RGBA{255, 127, 14, 255}
)

// renderPlotPNG draws the raw and flattened series as two stacked panels and
// encodes the result as PNG.
func renderPlotPNG(lc exoplanet.LightCurve) ([]byte, error) {
	height := 2*panelHeight + 3*plotMargin
	img := image.NewRGBA(image.Rect(0, 0, plotWidth, height))

	for y := 0; y < height; y++ {
		for x := 0; x < plotWidth; x++ {
			img.Set(x, y, plotBackground)
		}
	}

	drawPanel(img, lc.Time, lc.Flux, plotMargin, rawSeries)
	drawPanel(img, lc.FlatTime, lc.FlatFlux, 2*plotMargin+panelHeight, flatSeries)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode plot: %w", err)
	}
	return buf.Bytes(), nil
}

// drawPanel scatters one series into a horizontal band of the image.
func drawPanel(img *image.RGBA, xs, ys []float64, top int, c color.RGBA) {
	if len(xs) == 0 || len(xs) != len(ys) {
		return
	}

	minX, maxX := xs[0], xs[0]
	minY, maxY := ys[0], ys[0]
	for i := range xs {
		minX = min(minX, xs[i])
		maxX = max(maxX, xs[i])
		minY = min(minY, ys[i])
		maxY = max(maxY, ys[i])
	}
	if maxX == minX {
		maxX = minX + 1
	}
	if maxY == minY {
		maxY = minY + 1
	}

	// Panel frame
	innerW := plotWidth - 2*plotMargin
	for x := plotMargin; x < plotMargin+innerW; x++ {
		img.Set(x, top, plotAxis)
		img.Set(x, top+panelHeight-1, plotAxis)
	}
	for y := top; y < top+panelHeight; y++ {
		img.Set(plotMargin, y, plotAxis)
		img.Set(plotMargin+innerW-1, y, plotAxis)
	}

	for i := range xs {
		px := plotMargin + int(float64(innerW-1)*(xs[i]-minX)/(maxX-minX))
		py := top + panelHeight - 1 - int(float64(panelHeight-1)*(ys[i]-minY)/(maxY-minY))
		img.Set(px, py, c)
		img.Set(px, py-1, c)
	}
}
