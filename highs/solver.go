// Copyright 2025 The cartopt Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package highs solves cartopt models with the HiGHS mixed-integer backend.
package highs

import (
	"fmt"
	"time"

	"github.com/nextmv-io/sdk/mip"

	"github.com/cartopt/cartopt"
)

// DefaultMaxDuration bounds a solve when no limit is configured.
const DefaultMaxDuration = 30 * time.Second

// Solver implements cartopt.Solver on HiGHS. The zero value is usable.
type Solver struct {
	// MaxDuration limits one solve; zero means DefaultMaxDuration.
	MaxDuration time.Duration
	Verbose     bool
}

// Solve translates the model, runs HiGHS at 0% relative gap, and maps the
// outcome. Only a proven optimum is reported as such: an incumbent left
// unproven when the duration limit strikes is a failure, never a result.
func (s *Solver) Solve(m *cartopt.Model) (*cartopt.Solution, error) {
	model := mip.NewModel()
	model.Objective().SetMinimize()

	vars := make([]mip.Var, len(m.Vars))
	for i, v := range m.Vars {
		if v.Kind == cartopt.VarBool {
			vars[i] = model.NewBool()
		} else {
			vars[i] = model.NewInt(0, v.Upper)
		}
	}

	for _, t := range m.Objective {
		model.Objective().NewTerm(float64(t.Coef), vars[t.Var])
	}

	for _, c := range m.Constraints {
		constr := model.NewConstraint(sense(c.Rel), float64(c.RHS))
		for _, t := range c.Terms {
			constr.NewTerm(float64(t.Coef), vars[t.Var])
		}
	}

	solver, err := mip.NewSolver("highs", model)
	if err != nil {
		return nil, err
	}

	opts := mip.NewSolveOptions()
	limit := s.MaxDuration
	if limit <= 0 {
		limit = DefaultMaxDuration
	}
	if err := opts.SetMaximumDuration(limit); err != nil {
		return nil, err
	}
	if err := opts.SetMIPGapRelative(0); err != nil {
		return nil, err
	}
	verbosity := mip.Off
	if s.Verbose {
		verbosity = mip.Low
	}
	opts.SetVerbosity(verbosity)

	solution, err := solver.Solve(opts)
	if err != nil {
		return nil, err
	}

	if solution == nil || !solution.HasValues() {
		return &cartopt.Solution{Status: cartopt.StatusInfeasible}, nil
	}
	if !solution.IsOptimal() {
		return nil, fmt.Errorf("highs: stopped after %v without proving optimality", solution.RunTime())
	}

	out := &cartopt.Solution{
		Status:    cartopt.StatusOptimal,
		Values:    make([]float64, len(vars)),
		Objective: solution.ObjectiveValue(),
	}
	for i, v := range vars {
		out.Values[i] = solution.Value(v)
	}
	return out, nil
}

func sense(r cartopt.Relation) mip.Sense {
	switch r {
	case cartopt.AtMost:
		return mip.LessThanOrEqual
	case cartopt.AtLeast:
		return mip.GreaterThanOrEqual
	default:
		return mip.Equal
	}
}
