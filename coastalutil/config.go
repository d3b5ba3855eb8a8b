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
	"bytes"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/lnashier/viper"
	"github.com/spatialmodel/coastal"
	"github.com/spatialmodel/coastal/science/linearwave"
	"github.com/spatialmodel/coastal/science/spectrum"
	"github.com/spf13/cast"
)

// Config holds the configuration of a coastal run as read from the
// command line, configuration file and environment.
type Config struct {
	Grid     GridConfig
	Physics  PhysicsConfig
	Time     TimeConfig
	Initial  InitialConfig
	Boundary BoundaryConfig
	Forcing  ForcingConfig
	Spectrum SpectrumConfig
	Tools    ToolsConfig

	// Observations maps observation point labels to "i,j" grid indices.
	Observations map[string]string

	// OutputVariables maps output variable names to expressions.
	OutputVariables map[string]string

	OutputFile  string
	OutputEvery int
	LogFile     string
	PlotDir     string
}

// GridConfig specifies the simulation grid.
type GridConfig struct {
	Dims   int
	Lx, Ly float64
	Nx, Ny int
}

// PhysicsConfig specifies the wave speed, either directly or from the
// water depth.
type PhysicsConfig struct {
	WaveSpeed, Depth, Gravity float64
}

// TimeConfig specifies the time step and the length of the run.
type TimeConfig struct {
	Dt, CFL  float64
	Steps    int
	Duration float64
}

// InitialConfig specifies the initial Gaussian hump.
type InitialConfig struct {
	Amplitude, Width float64
	Centered         bool
	X0, Y0           float64
}

// BoundaryConfig holds the boundary condition specification for each
// edge.
type BoundaryConfig struct {
	West, East, South, North string
}

// ForcingConfig specifies the monochromatic boundary forcing.
type ForcingConfig struct {
	Amplitude, Period float64
}

// SpectrumConfig specifies an irregular wave record.
type SpectrumConfig struct {
	Kind                     string
	Hs, Tp, Gamma            float64
	FMin, FMax               float64
	Components               int
	Duration, SampleInterval float64
	Seed                     int64
	Normalize                bool
	OutputFile               string
}

// ToolsConfig specifies the wave and beach for the linear wave tools.
type ToolsConfig struct {
	Period, Depth, Height, Slope, BreakerIndex float64
}

// ReadConfig reads the configuration from cfg. Values are checked
// later, when they are used.
func ReadConfig(cfg *viper.Viper) (*Config, error) {
	observations, err := GetStringMapString("Observations", cfg)
	if err != nil {
		return nil, err
	}
	outputVars, err := GetStringMapString("OutputVariables", cfg)
	if err != nil {
		return nil, err
	}
	c := &Config{
		Grid: GridConfig{
			Dims: cfg.GetInt("Grid.Dims"),
			Lx:   cfg.GetFloat64("Grid.Lx"),
			Ly:   cfg.GetFloat64("Grid.Ly"),
			Nx:   cfg.GetInt("Grid.Nx"),
			Ny:   cfg.GetInt("Grid.Ny"),
		},
		Physics: PhysicsConfig{
			WaveSpeed: cfg.GetFloat64("Physics.WaveSpeed"),
			Depth:     cfg.GetFloat64("Physics.Depth"),
			Gravity:   cfg.GetFloat64("Physics.Gravity"),
		},
		Time: TimeConfig{
			Dt:       cfg.GetFloat64("Time.Dt"),
			CFL:      cfg.GetFloat64("Time.CFL"),
			Steps:    cfg.GetInt("Time.Steps"),
			Duration: cfg.GetFloat64("Time.Duration"),
		},
		Initial: InitialConfig{
			Amplitude: cfg.GetFloat64("Initial.Amplitude"),
			Width:     cfg.GetFloat64("Initial.Width"),
			Centered:  cfg.GetBool("Initial.Centered"),
			X0:        cfg.GetFloat64("Initial.X0"),
			Y0:        cfg.GetFloat64("Initial.Y0"),
		},
		Boundary: BoundaryConfig{
			West:  os.ExpandEnv(cfg.GetString("Boundary.West")),
			East:  os.ExpandEnv(cfg.GetString("Boundary.East")),
			South: os.ExpandEnv(cfg.GetString("Boundary.South")),
			North: os.ExpandEnv(cfg.GetString("Boundary.North")),
		},
		Forcing: ForcingConfig{
			Amplitude: cfg.GetFloat64("Forcing.Amplitude"),
			Period:    cfg.GetFloat64("Forcing.Period"),
		},
		Spectrum: SpectrumConfig{
			Kind:           os.ExpandEnv(cfg.GetString("Spectrum.Kind")),
			Hs:             cfg.GetFloat64("Spectrum.Hs"),
			Tp:             cfg.GetFloat64("Spectrum.Tp"),
			Gamma:          cfg.GetFloat64("Spectrum.Gamma"),
			FMin:           cfg.GetFloat64("Spectrum.FMin"),
			FMax:           cfg.GetFloat64("Spectrum.FMax"),
			Components:     cfg.GetInt("Spectrum.Components"),
			Duration:       cfg.GetFloat64("Spectrum.Duration"),
			SampleInterval: cfg.GetFloat64("Spectrum.SampleInterval"),
			Seed:           cast.ToInt64(cfg.Get("Spectrum.Seed")),
			Normalize:      cfg.GetBool("Spectrum.Normalize"),
			OutputFile:     os.ExpandEnv(cfg.GetString("Spectrum.OutputFile")),
		},
		Tools: ToolsConfig{
			Period:       cfg.GetFloat64("Tools.Period"),
			Depth:        cfg.GetFloat64("Tools.Depth"),
			Height:       cfg.GetFloat64("Tools.Height"),
			Slope:        cfg.GetFloat64("Tools.Slope"),
			BreakerIndex: cfg.GetFloat64("Tools.BreakerIndex"),
		},
		Observations:    observations,
		OutputVariables: outputVars,
		OutputFile:      os.ExpandEnv(cfg.GetString("OutputFile")),
		OutputEvery:     cfg.GetInt("OutputEvery"),
		LogFile:         os.ExpandEnv(cfg.GetString("LogFile")),
		PlotDir:         os.ExpandEnv(cfg.GetString("PlotDir")),
	}
	return c, nil
}

// GetStringMapString returns a map[string]string from a viper configuration,
// accounting for the fact that it might be a JSON object if it was set
// from a command line argument. Environment variables in keys and
// values are expanded.
func GetStringMapString(varName string, cfg *viper.Viper) (map[string]string, error) {
	var o map[string]string
	switch i := cfg.Get(varName).(type) {
	case nil:
		o = make(map[string]string)
	case map[string]string:
		o = i
	case map[string]interface{}:
		o = cast.ToStringMapString(i)
	case string:
		o = make(map[string]string)
		if strings.TrimSpace(i) != "" {
			d := json.NewDecoder(bytes.NewBufferString(i))
			if err := d.Decode(&o); err != nil {
				return nil, fmt.Errorf("coastal: parsing %s: %v", varName, err)
			}
		}
	default:
		return nil, fmt.Errorf("coastal: invalid type for %s: %#v", varName, i)
	}
	out := make(map[string]string, len(o))
	for k, v := range o {
		out[os.ExpandEnv(k)] = os.ExpandEnv(v)
	}
	return out, nil
}

func checkOutputFile(f string) (string, error) {
	if f == "" {
		return "", fmt.Errorf(`coastal: you need to specify an output file configuration variable (for example: OutputFile="coastal.ncf")`)
	}
	outdir := filepath.Dir(f)
	if _, err := os.Stat(outdir); err != nil {
		return f, fmt.Errorf("coastal: the OutputFile directory doesn't exist: %v", err)
	}
	return f, nil
}

func checkLogFile(logFile, outputFile string) string {
	if logFile == "" {
		logFile = strings.TrimSuffix(outputFile, filepath.Ext(outputFile)) + ".log"
	}
	return logFile
}

// Model is a runnable simulation setup derived from a Config.
type Model struct {
	Sim coastal.SimulationConfig

	// Steps is the number of time steps to run.
	Steps int

	// Record is the irregular wave record driving 'irregular'
	// boundaries, or nil if there are none.
	Record *spectrum.Series
}

// Build checks c and turns it into a simulation setup. rng is used to
// draw the phases of the irregular wave record; if it is nil, the
// record is seeded from Spectrum.Seed, which is set first if it is 0.
func (c *Config) Build(rng *rand.Rand) (*Model, error) {
	g, err := c.grid()
	if err != nil {
		return nil, err
	}
	m := new(Model)
	m.Sim.Grid = g

	m.Sim.WaveSpeed = c.Physics.WaveSpeed
	if m.Sim.WaveSpeed == 0 {
		if !(c.Physics.Depth > 0) {
			return nil, &coastal.ConfigurationError{Param: "Physics.Depth", Value: c.Physics.Depth,
				Reason: "should be >0 when Physics.WaveSpeed is 0"}
		}
		if !(c.Physics.Gravity > 0) {
			return nil, &coastal.ConfigurationError{Param: "Physics.Gravity", Value: c.Physics.Gravity, Reason: "should be >0"}
		}
		m.Sim.WaveSpeed = linearwave.ShallowWaterCelerity(c.Physics.Gravity, c.Physics.Depth)
	}
	if !(m.Sim.WaveSpeed > 0) {
		return nil, &coastal.ConfigurationError{Param: "Physics.WaveSpeed", Value: c.Physics.WaveSpeed, Reason: "should be >0"}
	}

	m.Sim.Dt = c.Time.Dt
	if m.Sim.Dt == 0 {
		if !(c.Time.CFL > 0 && c.Time.CFL <= 1) {
			return nil, &coastal.ConfigurationError{Param: "Time.CFL", Value: c.Time.CFL, Reason: "should be in (0, 1]"}
		}
		m.Sim.Dt = c.Time.CFL * coastal.MaxStableDt(g, m.Sim.WaveSpeed)
	}

	switch {
	case c.Time.Duration > 0:
		m.Steps = coastal.StepsFor(c.Time.Duration, m.Sim.Dt)
	case c.Time.Steps >= 0:
		m.Steps = c.Time.Steps
	default:
		return nil, &coastal.ConfigurationError{Param: "Time.Steps", Value: c.Time.Steps, Reason: "should be >= 0"}
	}
	if c.OutputEvery < 1 {
		return nil, &coastal.ConfigurationError{Param: "OutputEvery", Value: c.OutputEvery, Reason: "should be >= 1"}
	}

	if c.Initial.Amplitude != 0 {
		h := coastal.GaussianHump{
			Amplitude: c.Initial.Amplitude,
			X0:        c.Initial.X0,
			Y0:        c.Initial.Y0,
			Width:     c.Initial.Width,
		}
		if c.Initial.Centered {
			h = coastal.CenteredHump(g, c.Initial.Amplitude, c.Initial.Width)
		}
		m.Sim.Initial = h
	}

	specs := map[coastal.Edge]string{
		coastal.West:  c.Boundary.West,
		coastal.East:  c.Boundary.East,
		coastal.South: c.Boundary.South,
		coastal.North: c.Boundary.North,
	}
	m.Sim.Boundaries = make(coastal.Boundaries)
	for _, e := range g.Edges() {
		bc, err := c.parseBoundary(e, specs[e], m, rng)
		if err != nil {
			return nil, err
		}
		m.Sim.Boundaries[e] = bc
	}

	m.Sim.Observations, err = parseObservations(c.Observations)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (c *Config) grid() (*coastal.Grid, error) {
	switch c.Grid.Dims {
	case 1:
		return coastal.NewGrid1D(c.Grid.Lx, c.Grid.Nx)
	case 2:
		return coastal.NewGrid2D(c.Grid.Lx, c.Grid.Ly, c.Grid.Nx, c.Grid.Ny)
	default:
		return nil, &coastal.ConfigurationError{Param: "Grid.Dims", Value: c.Grid.Dims, Reason: "should be 1 or 2"}
	}
}

// parseBoundary parses a boundary specification of the form
// kind[:value]. The irregular wave record is generated the first time
// an edge asks for it and shared by all 'irregular' edges.
func (c *Config) parseBoundary(e coastal.Edge, spec string, m *Model, rng *rand.Rand) (coastal.BoundaryCondition, error) {
	param := "Boundary." + e.String()
	kind, arg := strings.TrimSpace(strings.ToLower(spec)), ""
	if i := strings.Index(kind, ":"); i >= 0 {
		kind, arg = strings.TrimSpace(kind[:i]), strings.TrimSpace(kind[i+1:])
	}
	value := func() (float64, error) {
		if arg == "" {
			return 0, nil
		}
		v, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return 0, &coastal.ConfigurationError{Param: param, Value: spec, Reason: "should have a numeric value after ':'"}
		}
		return v, nil
	}
	noArg := func() error {
		if arg != "" {
			return &coastal.ConfigurationError{Param: param, Value: spec, Reason: fmt.Sprintf("'%s' does not take a value", kind)}
		}
		return nil
	}

	switch kind {
	case "", "dirichlet":
		v, err := value()
		return coastal.Dirichlet{Value: v}, err
	case "neumann":
		v, err := value()
		return coastal.Neumann{Gradient: v}, err
	case "freeslip":
		return coastal.FreeSlip(), noArg()
	case "absorbing":
		v, err := value()
		return coastal.Absorbing{Coefficient: v}, err
	case "sinusoid":
		return coastal.Forcing{Signal: coastal.Sinusoid{
			Amplitude: c.Forcing.Amplitude,
			Period:    c.Forcing.Period,
		}}, noArg()
	case "irregular":
		if err := noArg(); err != nil {
			return nil, err
		}
		if m.Record == nil {
			sc, err := c.Spectrum.config()
			if err != nil {
				return nil, err
			}
			if rng == nil {
				rng = c.Spectrum.rand()
			}
			if m.Record, err = spectrum.Generate(sc, rng); err != nil {
				return nil, err
			}
		}
		return coastal.Forcing{Signal: m.Record}, nil
	default:
		return nil, &coastal.ConfigurationError{Param: param, Value: spec,
			Reason: "should be one of dirichlet[:value], freeslip, neumann[:gradient], absorbing[:coefficient], sinusoid, irregular"}
	}
}

// config converts c into a spectrum configuration.
func (c SpectrumConfig) config() (spectrum.Config, error) {
	kind, err := spectrum.ParseKind(c.Kind)
	if err != nil {
		return spectrum.Config{}, err
	}
	sc := spectrum.Config{
		Kind:           kind,
		Hs:             c.Hs,
		Tp:             c.Tp,
		Gamma:          c.Gamma,
		FMin:           c.FMin,
		FMax:           c.FMax,
		Components:     c.Components,
		Duration:       c.Duration,
		SampleInterval: c.SampleInterval,
		Normalize:      c.Normalize,
	}
	return sc, sc.Validate()
}

// rand returns a random source seeded with c.Seed. If c.Seed is 0, a
// time-based seed is drawn and stored in c.Seed so that a saved
// configuration reproduces the record.
func (c *SpectrumConfig) rand() *rand.Rand {
	for c.Seed == 0 {
		c.Seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(c.Seed))
}

// parseObservations parses label = "i,j" pairs, sorted by label.
func parseObservations(obs map[string]string) ([]coastal.ObservationPoint, error) {
	labels := make([]string, 0, len(obs))
	for l := range obs {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	var o []coastal.ObservationPoint
	for _, l := range labels {
		parts := strings.Split(obs[l], ",")
		bad := &coastal.ConfigurationError{Param: "Observations." + l, Value: obs[l], Reason: `should be grid indices "i,j"`}
		if len(parts) != 2 {
			return nil, bad
		}
		i, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil {
			return nil, bad
		}
		j, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return nil, bad
		}
		o = append(o, coastal.ObservationPoint{Label: l, I: i, J: j})
	}
	return o, nil
}
