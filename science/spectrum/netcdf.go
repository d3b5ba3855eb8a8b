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

package spectrum

import (
	"fmt"
	"sort"

	"github.com/ctessum/cdf"
)

// WriteNetCDF writes the record and its components to w. attrs are added
// as global attributes.
func (s *Series) WriteNetCDF(w cdf.ReaderWriterAt, attrs map[string]string) error {
	if len(s.Eta) == 0 || len(s.Frequencies) == 0 {
		return fmt.Errorf("spectrum: cannot write an empty series")
	}
	h := cdf.NewHeader([]string{"time", "frequency"}, []int{len(s.Eta), len(s.Frequencies)})
	h.AddAttribute("", "comment", "coastal irregular wave record")
	h.AddAttribute("", "kind", s.Config.Kind.String())
	h.AddAttribute("", "Hs", []float64{s.Config.Hs})
	h.AddAttribute("", "Tp", []float64{s.Config.Tp})
	if s.Config.Kind == JONSWAP {
		h.AddAttribute("", "gamma", []float64{s.Config.Gamma})
	}
	h.AddAttribute("", "df", []float64{s.DF})
	h.AddAttribute("", "dt", []float64{s.Dt})
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		h.AddAttribute("", k, attrs[k])
	}

	vars := []struct {
		name, dim, description, units string
		data                          []float64
	}{
		{"time", "time", "Sample time", "s", s.Times},
		{"eta", "time", "Surface elevation", "m", s.Eta},
		{"frequency", "frequency", "Component frequency", "Hz", s.Frequencies},
		{"density", "frequency", "Spectral density", "m2 s", s.Density},
		{"amplitude", "frequency", "Component amplitude", "m", s.Amplitudes},
		{"phase", "frequency", "Component phase", "rad", s.Phases},
	}
	for _, v := range vars {
		h.AddVariable(v.name, []string{v.dim}, []float64{0})
		h.AddAttribute(v.name, "description", v.description)
		h.AddAttribute(v.name, "units", v.units)
	}
	h.Define()
	for _, err := range h.Check() {
		return fmt.Errorf("spectrum: creating netcdf file: %v", err)
	}
	f, err := cdf.Create(w, h)
	if err != nil {
		return fmt.Errorf("spectrum: creating netcdf file: %v", err)
	}
	for _, v := range vars {
		if _, err := f.Writer(v.name, nil, nil).Write(v.data); err != nil {
			return fmt.Errorf("spectrum: writing variable %s to netcdf file: %v", v.name, err)
		}
	}
	return nil
}
