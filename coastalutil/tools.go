/*
Copyright © 2026 the coastal authors.
This file is part of coastal.

coastal is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

coastal is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with coastal.  If not, see <http://www.gnu.org/licenses/>.
*/

package coastalutil

import (
	"math"

	"github.com/ctessum/unit"
	"github.com/spatialmodel/coastal"
	"github.com/spatialmodel/coastal/science/linearwave"
	"github.com/spf13/cobra"
)

// WaveProperties are the linear wave properties calculated by Tools.
type WaveProperties struct {
	Wavelength, DeepWaterWavelength *unit.Unit
	WaveNumber                      *unit.Unit
	Celerity                        *unit.Unit

	// Iribarren is the surf similarity parameter and Breaker the
	// corresponding breaker type.
	Iribarren float64
	Breaker   linearwave.BreakerType

	// Ursell is the Ursell number. Linear is true if it is small enough
	// for linear theory to apply.
	Ursell float64
	Linear bool

	// Setup is the maximum setup at the shoreline.
	Setup *unit.Unit

	// HuntRunup and StockdonRunup are run-up estimates on the beach,
	// StockdonRunup being the 2% exceedance value.
	HuntRunup, StockdonRunup *unit.Unit
}

// LinearWave calculates the linear wave properties for the wave and
// beach described by t.
func LinearWave(t ToolsConfig) (*WaveProperties, error) {
	positive := []struct {
		name string
		v    float64
	}{
		{"Tools.Period", t.Period},
		{"Tools.Depth", t.Depth},
		{"Tools.Height", t.Height},
		{"Tools.Slope", t.Slope},
		{"Tools.BreakerIndex", t.BreakerIndex},
	}
	for _, p := range positive {
		if !(p.v > 0) || math.IsInf(p.v, 0) {
			return nil, &coastal.ConfigurationError{Param: p.name, Value: p.v, Reason: "should be >0"}
		}
	}
	l, err := linearwave.Wavelength(t.Period, t.Depth)
	if err != nil {
		return nil, err
	}
	u, err := linearwave.Ursell(t.Height, t.Period, t.Depth)
	if err != nil {
		return nil, err
	}
	wl := unit.New(l, unit.Meter)
	period := unit.New(t.Period, unit.Second)
	alpha := math.Atan(t.Slope)
	xi := linearwave.SurfSimilarity(alpha, t.Height, t.Period)
	return &WaveProperties{
		Wavelength:          wl,
		DeepWaterWavelength: unit.New(linearwave.DeepWaterWavelength(t.Period), unit.Meter),
		WaveNumber:          unit.New(2*math.Pi/l, unit.Dimensions{unit.LengthDim: -1}),
		Celerity:            unit.Div(wl, period),
		Iribarren:           xi,
		Breaker:             linearwave.Breaker(xi),
		Ursell:              u,
		Linear:              u < linearwave.UrsellLinearLimit,
		Setup:               unit.New(linearwave.WaveSetup(t.Height, t.BreakerIndex), unit.Meter),
		HuntRunup:           unit.New(linearwave.HuntRunup(alpha, t.Height, t.Period), unit.Meter),
		StockdonRunup:       unit.New(linearwave.StockdonRunup(alpha, t.Height, t.Period), unit.Meter),
	}, nil
}

// Tools prints the linear wave properties for t to the output of cmd.
func Tools(cmd *cobra.Command, t ToolsConfig) error {
	p, err := LinearWave(t)
	if err != nil {
		return err
	}
	theory := "nonlinear"
	if p.Linear {
		theory = "linear"
	}
	cmd.Printf("Wave period:             %.4g\n", unit.New(t.Period, unit.Second))
	cmd.Printf("Water depth:             %.4g\n", unit.New(t.Depth, unit.Meter))
	cmd.Printf("Wavelength:              %.4g\n", p.Wavelength)
	cmd.Printf("Deep water wavelength:   %.4g\n", p.DeepWaterWavelength)
	cmd.Printf("Wave number:             %.4g\n", p.WaveNumber)
	cmd.Printf("Celerity:                %.4g\n", p.Celerity)
	cmd.Printf("Iribarren number:        %.4g (%s breaker)\n", p.Iribarren, p.Breaker)
	cmd.Printf("Ursell number:           %.4g (%s)\n", p.Ursell, theory)
	cmd.Printf("Wave setup:              %.4g\n", p.Setup)
	cmd.Printf("Run-up (Hunt):           %.4g\n", p.HuntRunup)
	cmd.Printf("Run-up 2%% (Stockdon):    %.4g\n", p.StockdonRunup)
	return nil
}
