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

// Package coastal simulates linear wave propagation on structured one-
// and two-dimensional grids with an explicit leapfrog scheme, per-edge
// boundary conditions and optional boundary forcing.
package coastal

import (
	"fmt"
	"math"

	"github.com/ctessum/sparse"
)

// Version gives the version number.
const Version = "0.3.0"

// DomainManipulator is a function that operates on a simulation, for
// example to log progress or to decide when it is finished.
type DomainManipulator func(s *Simulation) error

// SimulationConfig holds everything needed to set up a Simulation.
type SimulationConfig struct {
	Grid *Grid

	// WaveSpeed is the wave celerity c [m/s].
	WaveSpeed float64

	// Dt is the time step [s].
	Dt float64

	// Boundaries gives the boundary condition on each edge.
	Boundaries Boundaries

	// Initial is the initial surface elevation. Nil gives a flat surface.
	Initial InitialCondition

	// Observations are the grid points whose values are recorded at
	// every step.
	Observations []ObservationPoint

	// Operator and Integrator default to NewLaplacian(Grid) and
	// NewLeapfrog(Grid, WaveSpeed, Dt).
	Operator   SpatialOperator
	Integrator TimeIntegrator

	// RunFuncs are run after every step.
	RunFuncs []DomainManipulator
}

// Simulation holds the state of a wave field simulation. Its field
// buffers are owned exclusively by the simulation; callers see copies.
type Simulation struct {
	grid  *Grid
	c, dt float64
	bcs   Boundaries
	op    SpatialOperator
	integ TimeIntegrator

	// ring of three time levels plus scratch space for the operator.
	prev, cur, next, lap *sparse.DenseArray

	step int
	time float64

	obs []*ObservationSeries

	// RunFuncs are run after every step.
	RunFuncs []DomainManipulator

	// Done is set by a DomainManipulator to end Run.
	Done bool

	err error
}

// NewSimulation validates cfg and sets up a simulation at t = 0 with
// prev = cur = the initial condition, which starts the water from rest.
func NewSimulation(cfg SimulationConfig) (*Simulation, error) {
	if cfg.Grid == nil {
		return nil, configErr("Grid", nil, "should be set")
	}
	g := cfg.Grid
	bcs := cfg.Boundaries.resolve(g)
	if err := bcs.validate(g); err != nil {
		return nil, err
	}
	if v, ok := cfg.Initial.(interface {
		Validate() error
	}); ok {
		if err := v.Validate(); err != nil {
			return nil, err
		}
	}
	s := &Simulation{
		grid:     g,
		c:        cfg.WaveSpeed,
		dt:       cfg.Dt,
		bcs:      bcs,
		op:       cfg.Operator,
		integ:    cfg.Integrator,
		RunFuncs: cfg.RunFuncs,
	}
	// The clock, forcing and absorbing edges run on cfg.Dt whichever
	// integrator is used, so the stability limit always applies to it.
	lf, err := NewLeapfrog(g, cfg.WaveSpeed, cfg.Dt)
	if err != nil {
		return nil, err
	}
	switch integ := s.integ.(type) {
	case nil:
		s.integ = lf
	case interface {
		Dt() float64
		WaveSpeed() float64
	}:
		if integ.Dt() != cfg.Dt || integ.WaveSpeed() != cfg.WaveSpeed {
			return nil, configErr("Integrator", [2]float64{integ.WaveSpeed(), integ.Dt()},
				fmt.Sprintf("wave speed and time step should match the simulation (%g, %g)", cfg.WaveSpeed, cfg.Dt))
		}
	}
	if s.op == nil {
		s.op = NewLaplacian(g)
	}

	seen := make(map[string]bool)
	for _, p := range cfg.Observations {
		if !g.Contains(p.I, p.J) {
			return nil, configErr("observation point "+p.label(), [2]int{p.I, p.J}, "should be inside the grid")
		}
		if seen[p.label()] {
			return nil, configErr("observation point", p.label(), "is defined more than once")
		}
		seen[p.label()] = true
		s.obs = append(s.obs, &ObservationSeries{Point: p})
	}

	s.cur = fill(g, cfg.Initial)
	s.lap = g.NewField()
	s.next = g.NewField()

	// Make the initial state conform to the boundary conditions.
	start := s.cur.Copy()
	s.bcs.apply(&TimeLevels{Grid: g, Prev: start, Cur: start, Next: s.cur, Dt: s.dt, C: s.c})
	s.prev = s.cur.Copy()
	if err := s.checkFinite(s.cur); err != nil {
		return nil, err
	}
	s.observe()
	return s, nil
}

// Step advances the simulation by one time step: it evaluates the
// spatial operator on the current level, integrates the interior of the
// next level, applies the boundary conditions, rotates the time levels,
// records observations and runs s.RunFuncs. Once Step has failed it
// keeps returning the same error.
func (s *Simulation) Step() error {
	if s.err != nil {
		return s.err
	}
	s.op.Operate(s.lap, s.cur)
	s.integ.Integrate(s.next, s.cur, s.prev, s.lap)
	s.bcs.apply(&TimeLevels{
		Grid: s.grid,
		Prev: s.prev, Cur: s.cur, Next: s.next,
		Time: float64(s.step+1) * s.dt,
		Dt:   s.dt, C: s.c,
	})
	s.step++
	s.time = float64(s.step) * s.dt
	if err := s.checkFinite(s.next); err != nil {
		s.err = err
		return err
	}
	s.prev, s.cur, s.next = s.cur, s.next, s.prev
	s.observe()

	for _, f := range s.RunFuncs {
		if err := f(s); err != nil {
			s.err = err
			return err
		}
	}
	return nil
}

// Run steps the simulation until a DomainManipulator sets Done.
func (s *Simulation) Run() error {
	if len(s.RunFuncs) == 0 {
		return fmt.Errorf("coastal: Run needs a RunFunc that ends the simulation, such as StepLimit")
	}
	for !s.Done {
		if err := s.Step(); err != nil {
			return err
		}
	}
	return nil
}

// checkFinite returns a *NumericalAnomaly for the first NaN or Inf in f.
func (s *Simulation) checkFinite(f *sparse.DenseArray) error {
	for k, v := range f.Elements {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return &NumericalAnomaly{
				Step:  s.step,
				Time:  s.time,
				I:     k % s.grid.nx,
				J:     k / s.grid.nx,
				Value: v,
			}
		}
	}
	return nil
}

// Grid returns the simulation grid.
func (s *Simulation) Grid() *Grid { return s.grid }

// Dt returns the time step [s].
func (s *Simulation) Dt() float64 { return s.dt }

// WaveSpeed returns the wave speed [m/s].
func (s *Simulation) WaveSpeed() float64 { return s.c }

// StepNumber returns the number of steps taken so far.
func (s *Simulation) StepNumber() int { return s.step }

// Time returns the current simulation time [s].
func (s *Simulation) Time() float64 { return s.time }

// Courant returns the Courant number of the simulation.
func (s *Simulation) Courant() float64 { return Courant(s.grid, s.c, s.dt) }

// Boundaries returns the boundary condition used on each edge.
func (s *Simulation) Boundaries() map[Edge]BoundaryCondition {
	o := make(map[Edge]BoundaryCondition)
	for _, e := range s.grid.Edges() {
		o[e] = s.bcs.For(e)
	}
	return o
}

// MaxAbs returns the largest absolute surface elevation at the current
// time level.
func (s *Simulation) MaxAbs() float64 { return MaxAbs(s.cur) }

// At returns the current elevation at point (i, j).
func (s *Simulation) At(i, j int) float64 { return s.cur.Get(j, i) }

// Snapshot returns a copy of the current state.
func (s *Simulation) Snapshot() Snapshot {
	return Snapshot{
		Step:    s.step,
		Time:    s.time,
		Eta:     s.cur.Copy(),
		EtaPrev: s.prev.Copy(),
	}
}

// Advance returns an iterator that steps the simulation each time a
// snapshot is requested, for at most n steps. Nothing is computed until
// Next is called. The iterator stops early if a step fails or a
// DomainManipulator sets Done. A simulation cannot be rewound: to start
// over, create a new one.
func (s *Simulation) Advance(n int) *Snapshots {
	return &Snapshots{s: s, remaining: n}
}

// Snapshot is the state of a simulation after a step.
type Snapshot struct {
	Step int
	Time float64 // [s]

	// Eta is the surface elevation, indexed as (j, i). EtaPrev is the
	// elevation one step earlier.
	Eta, EtaPrev *sparse.DenseArray
}

// Snapshots is a finite, pull-based sequence of simulation snapshots.
//
//	it := sim.Advance(100)
//	for it.Next() {
//		snap := it.Snapshot()
//		...
//	}
//	if err := it.Err(); err != nil {
//		...
//	}
type Snapshots struct {
	s         *Simulation
	remaining int
	cur       Snapshot
	err       error
}

// Next advances the simulation by one step and reports whether a new
// snapshot is available.
func (it *Snapshots) Next() bool {
	if it.err != nil || it.remaining <= 0 || it.s.Done {
		return false
	}
	if err := it.s.Step(); err != nil {
		it.err = err
		return false
	}
	it.remaining--
	it.cur = it.s.Snapshot()
	return true
}

// Snapshot returns the snapshot produced by the last call to Next.
func (it *Snapshots) Snapshot() Snapshot { return it.cur }

// Err returns the error, if any, that stopped the iteration.
func (it *Snapshots) Err() error { return it.err }
