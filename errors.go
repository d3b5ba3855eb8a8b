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

package coastal

import "fmt"

// ConfigurationError is returned when a grid, simulation, or spectral
// generator is constructed from invalid parameters.
type ConfigurationError struct {
	Param  string      // name of the offending parameter
	Value  interface{} // value that was supplied
	Reason string      // what the value should have been
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("coastal: invalid configuration: %s=%v but %s", e.Param, e.Value, e.Reason)
}

// StabilityError is returned when the configured time step violates the
// Courant-Friedrichs-Lewy bound of the explicit scheme.
type StabilityError struct {
	Courant float64 // Courant number implied by the configuration
	Dt      float64 // configured time step [s]
	MaxDt   float64 // largest stable time step [s]
}

func (e *StabilityError) Error() string {
	return fmt.Sprintf("coastal: unstable time step: Δt=%g s gives Courant number %.4g > 1 (maximum stable Δt is %g s)",
		e.Dt, e.Courant, e.MaxDt)
}

// NumericalAnomaly is returned when a non-finite value appears in the
// field after a time step.
type NumericalAnomaly struct {
	Step  int     // step after which the anomaly was found
	Time  float64 // simulation time of that step [s]
	I, J  int     // grid indices of the first bad value
	Value float64
}

func (e *NumericalAnomaly) Error() string {
	return fmt.Sprintf("coastal: non-finite value %v at grid point (%d, %d) after step %d (t=%g s)",
		e.Value, e.I, e.J, e.Step, e.Time)
}

func configErr(param string, value interface{}, reason string) error {
	return &ConfigurationError{Param: param, Value: value, Reason: reason}
}
