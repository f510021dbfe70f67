// Copyright 2025 The cartopt Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cartopt

// Plan computes the cheapest purchase plan that fulfills every item of the
// catalog under the given fee schedule. Single synchronous pass: stock
// precheck, model construction, one solver invocation, extraction. Any
// failure is terminal for the run; there are no retries and no partial
// plans.
func Plan(c *Catalog, tiers TierTable, solver Solver) (*PurchasePlan, error) {
	if err := c.CheckStock(); err != nil {
		return nil, err
	}

	m, err := BuildModel(c, tiers)
	if err != nil {
		return nil, err
	}

	sol, err := solver.Solve(m)
	if err != nil {
		return nil, &SolverError{Reason: "solve aborted", Err: err}
	}

	switch sol.Status {
	case StatusOptimal:
		return ExtractPlan(c, m, sol, tiers)
	case StatusInfeasible:
		// Stock sufficiency was already proven, so this is an encoding
		// defect, not an input problem.
		return nil, ErrInfeasible
	default:
		return nil, &SolverError{Reason: "no proven optimum reported"}
	}
}
