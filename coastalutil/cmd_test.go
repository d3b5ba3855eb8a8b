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
	"errors"
	"io/ioutil"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/ctessum/cdf"
	"github.com/ctessum/unit"
	"github.com/spatialmodel/coastal"
	"github.com/spatialmodel/coastal/science/linearwave"
)

// execute runs the root command with args and returns its output.
func execute(t *testing.T, args ...string) (string, error) {
	buf := new(bytes.Buffer)
	Root.SetOutput(buf)
	defer Root.SetOutput(nil)
	Root.SetArgs(args)
	err := Root.Execute()
	return buf.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatal(err)
	}
	if want := "coastal v" + coastal.Version; !strings.Contains(out, want) {
		t.Errorf("output %q should contain %q", out, want)
	}
}

func TestRunCommand(t *testing.T) {
	dir, err := ioutil.TempDir("", "coastal")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)
	outputFile := filepath.Join(dir, "run.ncf")
	plotDir := filepath.Join(dir, "plots")

	out, err := execute(t, "run",
		"--Grid.Dims=1", "--Grid.Lx=5", "--Grid.Nx=51",
		"--Time.Dt=0", "--Time.Steps=20", "--OutputEvery=5",
		"--Boundary.West=absorbing", "--Boundary.East=freeslip",
		`--Observations={"gauge":"25,0"}`,
		`--OutputVariables={"Eta":"Eta","Tendency":"(Eta - EtaPrev) / Dt"}`,
		"--OutputFile="+outputFile,
		"--PlotDir="+plotDir,
	)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "simulation complete") {
		t.Errorf("missing completion message in output:\n%s", out)
	}

	ff, err := os.Open(outputFile)
	if err != nil {
		t.Fatal(err)
	}
	defer ff.Close()
	f, err := cdf.Open(ff)
	if err != nil {
		t.Fatal(err)
	}
	if l := f.Header.Lengths("Tendency"); len(l) != 3 || l[0] != 5 || l[1] != 1 || l[2] != 51 {
		t.Errorf("Tendency dimensions = %v", l)
	}
	if l := f.Header.Lengths("Obs"); len(l) != 2 || l[0] != 1 || l[1] != 21 {
		t.Errorf("Obs dimensions = %v", l)
	}
	if id, ok := f.Header.GetAttribute("", "run_id").(string); !ok || len(id) != 36 {
		t.Errorf("run_id = %v", f.Header.GetAttribute("", "run_id"))
	}

	log, err := ioutil.ReadFile(filepath.Join(dir, "run.log"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(log), "starting simulation") {
		t.Errorf("log file is missing the start message:\n%s", log)
	}

	var saved Config
	if _, err := toml.DecodeFile(filepath.Join(dir, "run.config.toml"), &saved); err != nil {
		t.Fatal(err)
	}
	if saved.Grid.Nx != 51 || saved.Boundary.West != "absorbing" || saved.Observations["gauge"] != "25,0" {
		t.Errorf("saved configuration doesn't match: %+v", saved)
	}

	for _, name := range []string{"eta_000000.png", "eta_000010.png", "eta_000020.png", "obs_gauge.png"} {
		if _, err := os.Stat(filepath.Join(plotDir, name)); err != nil {
			t.Error(err)
		}
	}
}

func TestRunCommandUnstable(t *testing.T) {
	dir, err := ioutil.TempDir("", "coastal")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	_, err = execute(t, "run",
		"--Grid.Dims=1", "--Grid.Lx=5", "--Grid.Nx=51",
		"--Time.Dt=0.2", "--Time.Steps=5",
		"--OutputFile="+filepath.Join(dir, "unstable.ncf"),
		"--PlotDir=",
	)
	var se *coastal.StabilityError
	if !errors.As(err, &se) {
		t.Fatalf("expected a stability error, got %v", err)
	}
	if math.Abs(se.Courant-2) > 1e-9 {
		t.Errorf("Courant number = %g, want 2", se.Courant)
	}
}

func TestSpectrumCommand(t *testing.T) {
	dir, err := ioutil.TempDir("", "coastal")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)
	outputFile := filepath.Join(dir, "spectrum.ncf")

	out, err := execute(t, "spectrum",
		"--Spectrum.Kind=jonswap", "--Spectrum.Seed=3",
		"--Spectrum.Duration=30", "--Spectrum.SampleInterval=0.1",
		"--Spectrum.OutputFile="+outputFile,
		"--PlotDir="+dir,
	)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "periodogramHm0") {
		t.Errorf("output should report the periodogram Hm0:\n%s", out)
	}

	ff, err := os.Open(outputFile)
	if err != nil {
		t.Fatal(err)
	}
	defer ff.Close()
	f, err := cdf.Open(ff)
	if err != nil {
		t.Fatal(err)
	}
	if l := f.Header.Lengths("eta"); len(l) != 1 || l[0] != 300 {
		t.Errorf("eta dimensions = %v", l)
	}
	if kind, _ := f.Header.GetAttribute("", "kind").(string); kind != "jonswap" {
		t.Errorf("kind = %q", kind)
	}
	for _, name := range []string{"record.png", "spectrum.png", "spectrum.log"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Error(err)
		}
	}
}

func TestToolsCommand(t *testing.T) {
	out, err := execute(t, "tools", "--Tools.Period=8", "--Tools.Depth=5", "--Tools.Height=1", "--Tools.Slope=0.02")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Wavelength:", "Celerity:", "m s^-1", "spilling breaker", "Wave setup:", "Run-up (Hunt):", "Run-up 2% (Stockdon):"} {
		if !strings.Contains(out, want) {
			t.Errorf("output should contain %q:\n%s", want, out)
		}
	}
}

func TestLinearWave(t *testing.T) {
	tc := ToolsConfig{Period: 8, Depth: 5, Height: 1, Slope: 0.02, BreakerIndex: 0.8}
	p, err := LinearWave(tc)
	if err != nil {
		t.Fatal(err)
	}
	l, err := linearwave.Wavelength(8, 5)
	if err != nil {
		t.Fatal(err)
	}
	if p.Wavelength.Value() != l {
		t.Errorf("wavelength = %g, want %g", p.Wavelength.Value(), l)
	}
	c, err := linearwave.Celerity(8, 5)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(p.Celerity.Value()-c) > 1e-12*c {
		t.Errorf("celerity = %g, want %g", p.Celerity.Value(), c)
	}
	if err := p.Celerity.Check(unit.MeterPerSecond); err != nil {
		t.Error(err)
	}
	if math.Abs(p.WaveNumber.Value()*l-2*math.Pi) > 1e-12 {
		t.Errorf("wave number = %g", p.WaveNumber.Value())
	}
	if p.Breaker != linearwave.Spilling {
		t.Errorf("breaker = %v, Iribarren number = %g", p.Breaker, p.Iribarren)
	}
	if have, want := p.StockdonRunup.Value(), linearwave.StockdonRunup(math.Atan(0.02), 1, 8); have != want {
		t.Errorf("Stockdon run-up = %g, want %g", have, want)
	}
	if err := p.HuntRunup.Check(unit.Meter); err != nil {
		t.Error(err)
	}
	if p.Linear != (p.Ursell < linearwave.UrsellLinearLimit) {
		t.Errorf("Ursell number %g and linearity %v disagree", p.Ursell, p.Linear)
	}
	if math.Abs(p.Setup.Value()-0.25) > 1e-12 {
		t.Errorf("setup = %g, want 0.25", p.Setup.Value())
	}

	tc.Slope = 0
	var ce *coastal.ConfigurationError
	if _, err := LinearWave(tc); !errors.As(err, &ce) || ce.Param != "Tools.Slope" {
		t.Errorf("expected a Tools.Slope configuration error, got %v", err)
	}
}
