// Package mockserver serves a local stand-in for the exoplanet backend:
// synthetic light curves, a rendered plot, and a toy scoring endpoint.
// It exists so the dashboard can be developed and demoed offline.
package mockserver

import (
	"math"
	"math/rand"

	"github.com/exodash/exodash/internal/exoplanet"
	"gonum.org/v1/gonum/stat"
)

// Generation defaults matching the historical mock service.
const (
	defaultPeriod   = 3.0    // days between transits
	defaultDepthPPM = 1500.0 // transit depth in parts per million
	transitDuration = 0.15   // days
	timeSpan        = 27.0   // days
	cadence         = 0.02   // days per sample (~30 min)
	noiseJitter     = 0.0008
	trendAmplitude  = 0.0015
	randomSeed      = 42
)

// syntheticTransit builds a toy light curve: baseline near 1.0 with a slow
// sinusoidal trend, white noise, and a gaussian-shaped dip every period.
// The fixed seed keeps output identical across calls.
func syntheticTransit(period, depth float64) (time, flux []float64) {
	rng := rand.New(rand.NewSource(randomSeed))

	n := int(timeSpan / cadence)
	time = make([]float64, n)
	flux = make([]float64, n)

	for i := range time {
		time[i] = float64(i) * cadence
		trend := trendAmplitude * math.Sin(2*math.Pi*time[i]/(timeSpan/2))
		flux[i] = 1.0 + trend + rng.NormFloat64()*noiseJitter
	}

	width := transitDuration / 5.0
	for k := 0; k <= int(timeSpan/period)+1; k++ {
		center := float64(k)*period + period*0.3
		for i := range flux {
			d := (time[i] - center) / width
			flux[i] -= depth * math.Exp(-0.5*d*d)
		}
	}

	return time, flux
}

// flatten removes slow trends with a moving-average filter of the given
// window length, normalizing the series around 1.0. The window is forced odd
// and bounded by the series length.
func flatten(flux []float64, windowLength int) []float64 {
	wl := windowLength
	if wl%2 == 0 {
		wl++
	}
	if wl < 3 {
		wl = 3
	}
	if wl > len(flux) {
		wl = len(flux)
		if wl%2 == 0 {
			wl--
		}
	}

	pad := wl / 2
	padded := make([]float64, 0, len(flux)+2*pad)
	for i := 0; i < pad; i++ {
		padded = append(padded, flux[0])
	}
	padded = append(padded, flux...)
	for i := 0; i < pad; i++ {
		padded = append(padded, flux[len(flux)-1])
	}

	flat := make([]float64, len(flux))
	for i := range flux {
		baseline := stat.Mean(padded[i:i+wl], nil)
		flat[i] = flux[i] / baseline
	}
	return flat
}

// generateLightCurve produces the full synthetic curve for a request.
func generateLightCurve(period, depthPPM float64, windowLength int) exoplanet.LightCurve {
	t, f := syntheticTransit(period, depthPPM/1e6)
	return exoplanet.LightCurve{
		Time:     t,
		Flux:     f,
		FlatTime: t,
		FlatFlux: flatten(f, windowLength),
	}
}
