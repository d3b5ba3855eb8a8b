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

import (
	"fmt"
	"math"
	"regexp"
	"sort"

	"github.com/Knetic/govaluate"
	"github.com/ctessum/sparse"
)

// ModelVariable describes a variable that output expressions can use.
type ModelVariable struct {
	Description, Units string
}

// ModelVariables are the variables available to output expressions.
// Field variables are evaluated point by point; T, Dt and C are scalars.
var ModelVariables = map[string]ModelVariable{
	"Eta":     {"Surface elevation", "m"},
	"EtaPrev": {"Surface elevation one time step earlier", "m"},
	"Lap":     {"Laplacian of the surface elevation", "m-1"},
	"GradX":   {"Surface slope in the x direction", "m m-1"},
	"GradY":   {"Surface slope in the y direction", "m m-1"},
	"X":       {"x coordinate", "m"},
	"Y":       {"y coordinate", "m"},
	"T":       {"Simulation time", "s"},
	"Dt":      {"Time step", "s"},
	"C":       {"Wave speed", "m s-1"},
}

// Outputter calculates output variables from simulation snapshots.
// Each output variable is defined by an expression that can use
// ModelVariables, other output variables, and output functions.
type Outputter struct {
	outputVariables map[string]string
	outputFunctions map[string]govaluate.ExpressionFunction

	expressions map[string]*govaluate.EvaluableExpression

	// order is the evaluation order, with each variable after the
	// output variables it depends on.
	order []string

	// modelVariables are the model variables needed to calculate
	// the outputs.
	modelVariables map[string]bool
}

// NewOutputter initializes a new Outputter and adds a set of default
// output functions:
//
// 'exp(x)', 'sqrt(x)' and 'abs(x)', which apply the corresponding
// functions from the math package, and 'max(x, y)' and 'min(x, y)'.
func NewOutputter(outputVariables map[string]string, outputFunctions map[string]govaluate.ExpressionFunction) (*Outputter, error) {
	if len(outputVariables) == 0 {
		return nil, fmt.Errorf("coastal: no output variables specified")
	}
	funcs := map[string]govaluate.ExpressionFunction{
		"exp":  unaryFunc("exp", math.Exp),
		"sqrt": unaryFunc("sqrt", math.Sqrt),
		"abs":  unaryFunc("abs", math.Abs),
		"max":  binaryFunc("max", math.Max),
		"min":  binaryFunc("min", math.Min),
	}
	for k, v := range outputFunctions {
		funcs[k] = v
	}

	o := &Outputter{
		outputVariables: make(map[string]string),
		outputFunctions: funcs,
		expressions:     make(map[string]*govaluate.EvaluableExpression),
		modelVariables:  make(map[string]bool),
	}
	for name, expr := range outputVariables {
		if err := checkOutputName(name); err != nil {
			return nil, err
		}
		e, err := govaluate.NewEvaluableExpressionWithFunctions(expr, funcs)
		if err != nil {
			return nil, fmt.Errorf("coastal: output variable %s: %v", name, err)
		}
		o.outputVariables[name] = expr
		o.expressions[name] = e
	}
	if err := o.sortDependencies(); err != nil {
		return nil, err
	}
	return o, nil
}

func unaryFunc(name string, f func(float64) float64) govaluate.ExpressionFunction {
	return func(args ...interface{}) (interface{}, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("coastal: got %d arguments for function '%s', but needs 1", len(args), name)
		}
		x, ok := args[0].(float64)
		if !ok {
			return nil, fmt.Errorf("coastal: argument to '%s' is not a number", name)
		}
		return f(x), nil
	}
}

func binaryFunc(name string, f func(float64, float64) float64) govaluate.ExpressionFunction {
	return func(args ...interface{}) (interface{}, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("coastal: got %d arguments for function '%s', but needs 2", len(args), name)
		}
		x, ok1 := args[0].(float64)
		y, ok2 := args[1].(float64)
		if !ok1 || !ok2 {
			return nil, fmt.Errorf("coastal: arguments to '%s' are not numbers", name)
		}
		return f(x, y), nil
	}
}

var outputNameRegexp = regexp.MustCompile(`^[A-Za-z]\w*$`)

// checkOutputName makes sure an output variable name can be used as
// a NetCDF variable name.
func checkOutputName(name string) error {
	if !outputNameRegexp.MatchString(name) {
		return fmt.Errorf("coastal: output variable name '%s' includes unsupported characters", name)
	}
	return nil
}

// sortDependencies orders the output variables so that each one is
// evaluated after the output variables its expression refers to, and
// collects the model variables that are needed.
func (o *Outputter) sortDependencies() error {
	names := make([]string, 0, len(o.expressions))
	for n := range o.expressions {
		names = append(names, n)
	}
	sort.Strings(names)

	const (
		unvisited = iota
		visiting
		visited
	)
	state := make(map[string]int)
	var visit func(name string) error
	visit = func(name string) error {
		switch state[name] {
		case visiting:
			return fmt.Errorf("coastal: output variable %s is defined in terms of itself", name)
		case visited:
			return nil
		}
		state[name] = visiting
		for _, v := range o.expressions[name].Vars() {
			if _, ok := o.expressions[v]; ok && v != name {
				if err := visit(v); err != nil {
					return err
				}
				continue
			}
			if _, ok := ModelVariables[v]; ok {
				o.modelVariables[v] = true
				continue
			}
			return fmt.Errorf("coastal: undefined variable name '%s' in output variable %s", v, name)
		}
		state[name] = visited
		o.order = append(o.order, name)
		return nil
	}
	for _, n := range names {
		if err := visit(n); err != nil {
			return err
		}
	}
	return nil
}

// Names returns the sorted names of the output variables.
func (o *Outputter) Names() []string {
	names := make([]string, 0, len(o.outputVariables))
	for n := range o.outputVariables {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Expression returns the expression that defines output variable name.
func (o *Outputter) Expression(name string) string { return o.outputVariables[name] }

// Results calculates the output variables for snapshot snap of
// simulation s.
func (o *Outputter) Results(s *Simulation, snap Snapshot) (map[string]*sparse.DenseArray, error) {
	g := s.grid
	fields := map[string]*sparse.DenseArray{
		"Eta":     snap.Eta,
		"EtaPrev": snap.EtaPrev,
	}
	if o.modelVariables["Lap"] {
		fields["Lap"] = Evaluate(g, s.op, snap.Eta)
	}
	if o.modelVariables["GradX"] || o.modelVariables["GradY"] {
		fields["GradX"], fields["GradY"] = Gradient(g, snap.Eta)
	}
	params := map[string]interface{}{
		"T":  snap.Time,
		"Dt": s.dt,
		"C":  s.c,
	}

	out := make(map[string]*sparse.DenseArray, len(o.order))
	for _, name := range o.order {
		out[name] = g.NewField()
	}
	for j, y := range g.y {
		for i, x := range g.x {
			k := g.Index(i, j)
			params["X"] = x
			params["Y"] = y
			for v, f := range fields {
				params[v] = f.Elements[k]
			}
			for _, name := range o.order {
				expr := o.expressions[name]
				// An expression that is just a variable name needs no
				// evaluation.
				if v, ok := params[o.outputVariables[name]]; ok {
					out[name].Elements[k] = v.(float64)
					params[name] = v
					continue
				}
				r, err := expr.Evaluate(params)
				if err != nil {
					return nil, fmt.Errorf("coastal: calculating output variable %s: %v", name, err)
				}
				val, ok := r.(float64)
				if !ok {
					return nil, fmt.Errorf("coastal: output variable %s evaluates to %T, not a number", name, r)
				}
				out[name].Elements[k] = val
				params[name] = val
			}
		}
	}
	return out, nil
}
