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

package linearwave

import "math"

// HuntRunup returns Hunt's (1959) estimate of the vertical run-up
// H·ξ [m] of a wave of height h [m] and period t [s] on a beach of slope
// alpha [rad], where ξ is the surf similarity parameter.
func HuntRunup(alpha, h, t float64) float64 {
	return h * SurfSimilarity(alpha, h, t)
}

// StockdonRunup returns the run-up exceeded by 2% of waves [m] from
// Stockdon et al. (2006) for a wave of height h [m] and period t [s] on
// a beach of slope alpha [rad]. It is the sum of the setup 0.35·H·ξ and
// half the swash, which combines an incident band 0.75·H·ξ and an
// infragravity band 0.06·sqrt(H·L0).
func StockdonRunup(alpha, h, t float64) float64 {
	xi := SurfSimilarity(alpha, h, t)
	setup := 0.35 * h * xi
	incident := 0.75 * h * xi
	infragravity := 0.06 * math.Sqrt(h*DeepWaterWavelength(t))
	return 1.1 * (setup + math.Hypot(incident, infragravity)/2)
}
