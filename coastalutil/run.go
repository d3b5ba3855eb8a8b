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
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/coastal"
	"github.com/spatialmodel/coastal/internal/hash"
	"github.com/spf13/cobra"
)

// newLogger returns a logger that writes text records to w.
func newLogger(w io.Writer) *logrus.Logger {
	l := logrus.New()
	l.Out = w
	l.Formatter = &logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339Nano,
		DisableSorting:  true,
	}
	return l
}

// openLog creates logFile and returns a logger that writes to it and to
// the output of cmd. The returned function closes the log file.
func openLog(cmd *cobra.Command, logFile string) (*logrus.Logger, func() error, error) {
	f, err := os.Create(logFile)
	if err != nil {
		return nil, nil, fmt.Errorf("coastal: problem creating log file: %v", err)
	}
	return newLogger(io.MultiWriter(cmd.OutOrStdout(), f)), f.Close, nil
}

// Run runs the simulation specified by c. Output frames and observation
// series are written to c.OutputFile, log messages to c.LogFile and the
// output of cmd, and plots, if c.PlotDir is set, to c.PlotDir.
// The configuration is saved next to the output file so the run can be
// repeated.
func Run(cmd *cobra.Command, c *Config) error {
	startTime := time.Now()

	outputFile, err := checkOutputFile(c.OutputFile)
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

	m, err := c.Build(nil)
	if err != nil {
		return err
	}
	// Build may have drawn the spectrum seed.
	configHash := hash.Hash(c)
	if m.Record != nil {
		mean, std, hs := m.Record.Statistics()
		log.WithFields(logrus.Fields{
			"kind":       m.Record.Config.Kind,
			"seed":       c.Spectrum.Seed,
			"components": len(m.Record.Frequencies),
			"samples":    m.Record.Len(),
			"mean":       mean,
			"std":        std,
			"Hs":         hs,
		}).Info("coastal: generated irregular wave record")
	}

	sim, err := coastal.NewSimulation(m.Sim)
	if err != nil {
		return err
	}
	boundaries := sim.Boundaries()
	bcFields := logrus.Fields{}
	for _, e := range sim.Grid().Edges() {
		bcFields[strings.ToLower(e.String())] = fmt.Sprint(boundaries[e])
	}
	log.WithFields(logrus.Fields{
		"grid":      sim.Grid().String(),
		"c":         sim.WaveSpeed(),
		"dt":        sim.Dt(),
		"courant":   sim.Courant(),
		"steps":     m.Steps,
		"configSHA": configHash,
	}).WithFields(bcFields).Info("coastal: starting simulation")

	o, err := coastal.NewOutputter(c.OutputVariables, nil)
	if err != nil {
		return err
	}
	f, err := os.Create(outputFile)
	if err != nil {
		return fmt.Errorf("coastal: creating output file: %v", err)
	}
	defer f.Close()
	w, err := coastal.NewNetCDFWriter(f, sim, o, m.Steps, c.OutputEvery, map[string]string{
		"run_id":      runID,
		"config_hash": configHash,
	})
	if err != nil {
		return err
	}

	var r *renderer
	if c.PlotDir != "" {
		if r, err = newRenderer(c.PlotDir); err != nil {
			return err
		}
		if err := r.frame(sim.Grid(), sim.Snapshot()); err != nil {
			return err
		}
	}

	sim.RunFuncs = append(sim.RunFuncs, coastal.Log(log, c.OutputEvery))
	it := sim.Advance(m.Steps)
	for it.Next() {
		snap := it.Snapshot()
		if err := w.WriteSnapshot(snap); err != nil {
			return err
		}
		if r != nil && snap.Step%c.OutputEvery == 0 {
			if err := r.frame(sim.Grid(), snap); err != nil {
				return err
			}
		}
	}
	if err := it.Err(); err != nil {
		log.WithError(err).Error("coastal: simulation failed")
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	if r != nil {
		for _, series := range sim.Observations() {
			err := r.series(fmt.Sprintf("obs_%s.png", fileLabel(series.Label())), "Observation "+series.Label(),
				"Time (s)", "Surface elevation (m)", series.Times(), series.Values())
			if err != nil {
				return err
			}
		}
		if m.Record != nil {
			if err := r.series("forcing.png", "Irregular boundary forcing", "Time (s)", "Surface elevation (m)",
				m.Record.Times, m.Record.Eta); err != nil {
				return err
			}
		}
	}

	if err := saveConfig(strings.TrimSuffix(outputFile, filepath.Ext(outputFile))+".config.toml", c); err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"steps":    sim.StepNumber(),
		"time":     sim.Time(),
		"maxAbs":   sim.MaxAbs(),
		"walltime": time.Since(startTime).Seconds(),
	}).Info("coastal: simulation complete")
	return nil
}

// saveConfig writes c to file in TOML format.
func saveConfig(file string, c *Config) error {
	f, err := os.Create(file)
	if err != nil {
		return fmt.Errorf("coastal: saving configuration: %v", err)
	}
	if err := toml.NewEncoder(f).Encode(c); err != nil {
		f.Close()
		return fmt.Errorf("coastal: saving configuration: %v", err)
	}
	return f.Close()
}

// fileLabel replaces characters in an observation label that do not
// belong in a file name.
func fileLabel(l string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '(', ')', ' ':
			return -1
		case ',', '/', '\\':
			return '_'
		}
		return r
	}, l)
}
