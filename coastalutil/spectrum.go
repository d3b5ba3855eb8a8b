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
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/coastal/internal/hash"
	"github.com/spatialmodel/coastal/science/spectrum"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"
)

// Spectrum generates the irregular wave record specified by
// c.Spectrum, logs how well its significant wave height matches the
// target, and writes the record and its spectrum to
// c.Spectrum.OutputFile. Plots are saved to c.PlotDir if it is set.
func Spectrum(cmd *cobra.Command, c *Config) error {
	outputFile, err := checkOutputFile(c.Spectrum.OutputFile)
	if err != nil {
		return err
	}
	logger, closeLog, err := openLog(cmd, checkLogFile(c.LogFile, outputFile))
	if err != nil {
		return err
	}
	defer closeLog()
	runID := uuid.New().String()
	log := logger.WithField("run", runID)

	sc, err := c.Spectrum.config()
	if err != nil {
		return err
	}
	s, err := spectrum.Generate(sc, c.Spectrum.rand())
	if err != nil {
		return err
	}
	f, p, err := spectrum.Periodogram(s.Eta, s.Dt)
	if err != nil {
		return err
	}
	mean, std, hs := s.Statistics()
	log.WithFields(logrus.Fields{
		"kind":           sc.Kind,
		"seed":           c.Spectrum.Seed,
		"components":     len(s.Frequencies),
		"df":             s.DF,
		"samples":        s.Len(),
		"targetHs":       sc.Hs,
		"spectrumHm0":    s.SignificantHeight(),
		"periodogramHm0": spectrum.Hm0(f, p),
		"recordHs":       hs,
		"mean":           mean,
		"std":            std,
		"peakFrequency":  f[floats.MaxIdx(p)],
		"targetPeak":     1 / sc.Tp,
	}).Info("coastal: generated irregular wave record")

	w, err := os.Create(outputFile)
	if err != nil {
		return fmt.Errorf("coastal: creating spectrum output file: %v", err)
	}
	defer w.Close()
	if err := s.WriteNetCDF(w, map[string]string{
		"run_id":      runID,
		"config_hash": hash.Hash(c.Spectrum),
	}); err != nil {
		return err
	}

	if c.PlotDir != "" {
		r, err := newRenderer(c.PlotDir)
		if err != nil {
			return err
		}
		if err := r.series("record.png", fmt.Sprintf("Irregular wave record (%s)", sc.Kind),
			"Time (s)", "Surface elevation (m)", s.Times, s.Eta); err != nil {
			return err
		}
		if err := r.spectrum("spectrum.png", s, f, p); err != nil {
			return err
		}
	}
	return nil
}
