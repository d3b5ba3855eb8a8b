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
	"strings"

	"github.com/lnashier/viper"
	"github.com/spatialmodel/coastal"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	// Options are the configuration options available to coastal.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Grid.Dims",
			usage: `
              Grid.Dims is the number of spatial dimensions of the
              simulation, either 1 or 2.`,
			defaultVal: 2,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Grid.Lx",
			usage: `
              Grid.Lx is the length of the domain in the x direction [m].`,
			defaultVal: 10.0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Grid.Ly",
			usage: `
              Grid.Ly is the length of the domain in the y direction [m].
              It is ignored for one-dimensional simulations.`,
			defaultVal: 10.0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Grid.Nx",
			usage: `
              Grid.Nx is the number of grid points in the x direction,
              including the two boundary points.`,
			defaultVal: 101,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Grid.Ny",
			usage: `
              Grid.Ny is the number of grid points in the y direction.
              It is ignored for one-dimensional simulations.`,
			defaultVal: 101,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Physics.WaveSpeed",
			usage: `
              Physics.WaveSpeed is the wave celerity [m/s]. If it is 0,
              the shallow water celerity sqrt(Physics.Gravity * Physics.Depth)
              is used instead.`,
			defaultVal: 1.0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Physics.Depth",
			usage: `
              Physics.Depth is the still water depth [m], used to calculate
              the wave speed when Physics.WaveSpeed is 0.`,
			defaultVal: 0.0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Physics.Gravity",
			usage: `
              Physics.Gravity is the gravitational acceleration [m/s²].`,
			defaultVal: 9.81,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Time.Dt",
			usage: `
              Time.Dt is the time step [s]. If it is 0, the time step is
              Time.CFL times the largest stable time step. A time step
              larger than the largest stable one is an error.`,
			defaultVal: 0.0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Time.CFL",
			usage: `
              Time.CFL is the Courant number used to choose the time step
              when Time.Dt is 0. It should be in (0, 1].`,
			defaultVal: 0.9,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Time.Steps",
			usage: `
              Time.Steps is the number of time steps to run.`,
			shorthand:  "n",
			defaultVal: 200,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Time.Duration",
			usage: `
              Time.Duration is the simulated time [s]. If it is >0 it
              overrides Time.Steps.`,
			defaultVal: 0.0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Initial.Amplitude",
			usage: `
              Initial.Amplitude is the height [m] of the Gaussian hump that
              makes up the initial surface elevation. If it is 0, the
              surface starts flat.`,
			defaultVal: 1.0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Initial.Width",
			usage: `
              Initial.Width is the standard deviation [m] of the initial
              Gaussian hump.`,
			defaultVal: 0.5,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Initial.Centered",
			usage: `
              Initial.Centered specifies whether the initial hump is placed
              in the middle of the domain. If false, it is placed at
              (Initial.X0, Initial.Y0).`,
			defaultVal: true,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Initial.X0",
			usage: `
              Initial.X0 is the x coordinate [m] of the initial hump.`,
			defaultVal: 0.0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Initial.Y0",
			usage: `
              Initial.Y0 is the y coordinate [m] of the initial hump.`,
			defaultVal: 0.0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Boundary.West",
			usage: `
              Boundary.West is the condition at x = 0. It can be
              'dirichlet[:value]', 'freeslip', 'neumann[:gradient]',
              'absorbing[:coefficient]', 'sinusoid' or 'irregular'.`,
			defaultVal: "dirichlet",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Boundary.East",
			usage: `
              Boundary.East is the condition at x = Grid.Lx. See
              Boundary.West for the options.`,
			defaultVal: "dirichlet",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Boundary.South",
			usage: `
              Boundary.South is the condition at y = 0. See Boundary.West
              for the options. It is ignored for one-dimensional simulations.`,
			defaultVal: "dirichlet",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Boundary.North",
			usage: `
              Boundary.North is the condition at y = Grid.Ly. See
              Boundary.West for the options. It is ignored for
              one-dimensional simulations.`,
			defaultVal: "dirichlet",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Forcing.Amplitude",
			usage: `
              Forcing.Amplitude is the amplitude [m] of 'sinusoid' boundaries.`,
			defaultVal: 0.2,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Forcing.Period",
			usage: `
              Forcing.Period is the period [s] of 'sinusoid' boundaries.`,
			defaultVal: 2.3,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Spectrum.Kind",
			usage: `
              Spectrum.Kind is the wave spectrum used for irregular waves,
              either 'pm' (Pierson-Moskowitz) or 'jonswap'.`,
			defaultVal: "pm",
			flagsets:   []*pflag.FlagSet{spectrumCmd.Flags(), runCmd.Flags()},
		},
		{
			name: "Spectrum.Hs",
			usage: `
              Spectrum.Hs is the significant wave height [m].`,
			defaultVal: 0.5,
			flagsets:   []*pflag.FlagSet{spectrumCmd.Flags(), runCmd.Flags()},
		},
		{
			name: "Spectrum.Tp",
			usage: `
              Spectrum.Tp is the peak period [s].`,
			defaultVal: 3.0,
			flagsets:   []*pflag.FlagSet{spectrumCmd.Flags(), runCmd.Flags()},
		},
		{
			name: "Spectrum.Gamma",
			usage: `
              Spectrum.Gamma is the JONSWAP peak enhancement factor.`,
			defaultVal: 3.3,
			flagsets:   []*pflag.FlagSet{spectrumCmd.Flags(), runCmd.Flags()},
		},
		{
			name: "Spectrum.FMin",
			usage: `
              Spectrum.FMin is the lower edge of the frequency band [Hz].
              If Spectrum.FMin, Spectrum.FMax and Spectrum.Components are
              all 0, the band is derived from the record length and
              sample interval.`,
			defaultVal: 0.0,
			flagsets:   []*pflag.FlagSet{spectrumCmd.Flags(), runCmd.Flags()},
		},
		{
			name: "Spectrum.FMax",
			usage: `
              Spectrum.FMax is the upper edge of the frequency band [Hz].`,
			defaultVal: 0.0,
			flagsets:   []*pflag.FlagSet{spectrumCmd.Flags(), runCmd.Flags()},
		},
		{
			name: "Spectrum.Components",
			usage: `
              Spectrum.Components is the number of wave components.`,
			defaultVal: 0,
			flagsets:   []*pflag.FlagSet{spectrumCmd.Flags(), runCmd.Flags()},
		},
		{
			name: "Spectrum.Duration",
			usage: `
              Spectrum.Duration is the length of the irregular wave
              record [s]. Boundaries forced by the record stay at 0 after
              it ends.`,
			defaultVal: 60.0,
			flagsets:   []*pflag.FlagSet{spectrumCmd.Flags(), runCmd.Flags()},
		},
		{
			name: "Spectrum.SampleInterval",
			usage: `
              Spectrum.SampleInterval is the time between samples of the
              irregular wave record [s].`,
			defaultVal: 0.1,
			flagsets:   []*pflag.FlagSet{spectrumCmd.Flags(), runCmd.Flags()},
		},
		{
			name: "Spectrum.Seed",
			usage: `
              Spectrum.Seed seeds the random phases of the wave components.
              The same seed always gives the same record. If it is 0, a
              different record is generated every time.`,
			defaultVal: 0,
			flagsets:   []*pflag.FlagSet{spectrumCmd.Flags(), runCmd.Flags()},
		},
		{
			name: "Spectrum.Normalize",
			usage: `
              Spectrum.Normalize specifies whether the discrete spectrum is
              rescaled so that its variance is exactly Spectrum.Hs²/16.`,
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{spectrumCmd.Flags(), runCmd.Flags()},
		},
		{
			name: "Spectrum.OutputFile",
			usage: `
              Spectrum.OutputFile is the NetCDF file where the irregular
              wave record and its spectrum are written.`,
			defaultVal: "spectrum.ncf",
			flagsets:   []*pflag.FlagSet{spectrumCmd.Flags()},
		},
		{
			name: "Observations",
			usage: `
              Observations gives the grid points where the surface elevation
              is recorded at every time step, as label = "i,j" pairs. On the
              command line they should be given as a JSON object,
              e.g. {"gauge":"50,10"}.`,
			defaultVal: map[string]string{},
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "OutputVariables",
			usage: `
              OutputVariables specifies which variables to write to the
              output file, as name = expression pairs. Expressions can use
              Eta, EtaPrev, Lap, GradX, GradY, X, Y, T, Dt and C, the
              functions exp, sqrt, abs, max and min, and other output
              variables.`,
			defaultVal: map[string]string{"Eta": "Eta"},
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "OutputFile",
			usage: `
              OutputFile is the path to the NetCDF file where the simulation
              output is written. Environment variables are expanded.`,
			shorthand:  "o",
			defaultVal: "coastal.ncf",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "OutputEvery",
			usage: `
              OutputEvery is the number of time steps between output frames.`,
			defaultVal: 10,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "LogFile",
			usage: `
              LogFile is the path to the desired logfile location. It can
              include environment variables. If LogFile is left blank, the
              logfile is saved in the same location as the OutputFile.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), spectrumCmd.Flags()},
		},
		{
			name: "PlotDir",
			usage: `
              PlotDir is the directory where PNG plots of the output frames,
              observations and wave records are saved. If it is blank, no
              plots are made.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), spectrumCmd.Flags()},
		},
		{
			name: "Tools.Period",
			usage: `
              Tools.Period is the wave period [s].`,
			defaultVal: 8.0,
			flagsets:   []*pflag.FlagSet{toolsCmd.Flags()},
		},
		{
			name: "Tools.Depth",
			usage: `
              Tools.Depth is the still water depth [m].`,
			defaultVal: 5.0,
			flagsets:   []*pflag.FlagSet{toolsCmd.Flags()},
		},
		{
			name: "Tools.Height",
			usage: `
              Tools.Height is the wave height [m].`,
			defaultVal: 1.0,
			flagsets:   []*pflag.FlagSet{toolsCmd.Flags()},
		},
		{
			name: "Tools.Slope",
			usage: `
              Tools.Slope is the beach slope, given as rise over run.`,
			defaultVal: 0.02,
			flagsets:   []*pflag.FlagSet{toolsCmd.Flags()},
		},
		{
			name: "Tools.BreakerIndex",
			usage: `
              Tools.BreakerIndex is the ratio of breaking wave height to
              water depth, used to calculate the wave setup.`,
			defaultVal: 0.8,
			flagsets:   []*pflag.FlagSet{toolsCmd.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("COASTAL")
	Cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	Cfg.AutomaticEnv()

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch v := option.defaultVal.(type) {
			case string:
				set.StringP(option.name, option.shorthand, v, option.usage)
			case bool:
				set.BoolP(option.name, option.shorthand, v, option.usage)
			case int:
				set.IntP(option.name, option.shorthand, v, option.usage)
			case float64:
				set.Float64P(option.name, option.shorthand, v, option.usage)
			case map[string]string:
				b := bytes.NewBuffer(nil)
				e := json.NewEncoder(b)
				e.Encode(v)
				set.StringP(option.name, option.shorthand, b.String(), option.usage)
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(runCmd)
	Root.AddCommand(spectrumCmd)
	Root.AddCommand(toolsCmd)
}

// setConfig finds and reads in the configuration file, if there is one.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("coastal: problem reading configuration file: %v", err)
		}
	}
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "coastal",
	Short: "A coastal wave simulator.",
	Long: `coastal simulates the propagation of surface waves over a one- or
two-dimensional domain with the linear wave equation, and generates and
analyzes irregular wave records.
Use the subcommands specified below to access the model functionality.

Refer to the subcommand documentation for configuration options and default settings.
Configuration can be changed by using a configuration file (and providing the
path to the file using the --config flag), by using command-line arguments,
or by setting environment variables in the format 'COASTAL_var' where 'var' is the
name of the variable to be set. Many configuration variables are additionally
allowed to contain environment variables within them.
Refer to https://github.com/spf13/viper for additional configuration information.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of coastal.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("coastal v%s\n", coastal.Version)
	},
	DisableAutoGenTag: true,
}

// runCmd runs a wave field simulation.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a wave field simulation.",
	Long: `run simulates the surface elevation of a wave field starting from
a Gaussian hump, subject to the configured boundary conditions, and writes
the output variables and observation series to a NetCDF file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := ReadConfig(Cfg)
		if err != nil {
			return err
		}
		return Run(cmd, c)
	},
	DisableAutoGenTag: true,
}

// spectrumCmd generates an irregular wave record.
var spectrumCmd = &cobra.Command{
	Use:   "spectrum",
	Short: "Generate an irregular wave record.",
	Long: `spectrum generates one realization of an irregular wave record from
a Pierson-Moskowitz or JONSWAP spectrum, compares the significant wave height
of the record with the target, and writes the record and its spectrum to
a NetCDF file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := ReadConfig(Cfg)
		if err != nil {
			return err
		}
		return Spectrum(cmd, c)
	},
	DisableAutoGenTag: true,
}

// toolsCmd prints linear wave properties.
var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "Calculate linear wave properties.",
	Long: `tools calculates the wavelength, wave number and celerity of a wave
from linear theory, together with its breaker type on a sloping beach,
its Ursell number and the wave setup at the shoreline.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := ReadConfig(Cfg)
		if err != nil {
			return err
		}
		return Tools(cmd, c.Tools)
	},
	DisableAutoGenTag: true,
}
