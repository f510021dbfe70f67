// Copyright 2025 The cartopt Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cartopt

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInfeasible reports that the solver proved infeasibility even though
// the stock precheck passed. That combination indicates a defect in the
// model encoding, not in the input.
var ErrInfeasible = errors.New("cartopt: no feasible purchase plan despite sufficient stock")

// ErrInconsistent reports that a solver assignment violates an invariant
// the model guarantees (demand equality, stock caps, tier membership).
var ErrInconsistent = errors.New("cartopt: solution violates model invariants")

// Shortage describes one under-stocked item.
type Shortage struct {
	ItemID    string
	URL       string
	Required  int64
	Available int64
}

// StockError reports every item whose aggregate availability is below the
// required amount. The run terminates without invoking the solver.
type StockError struct {
	Shortages []Shortage
}

func (e *StockError) Error() string {
	var b strings.Builder
	b.WriteString("cartopt: insufficient stock:")
	for _, s := range e.Shortages {
		fmt.Fprintf(&b, " %s needs %d, only %d available;", s.ItemID, s.Required, s.Available)
	}
	return strings.TrimSuffix(b.String(), ";")
}

// SolverError reports that the external solver could not complete the run
// or produced values unusable as integer quantities. Terminal, no retry.
type SolverError struct {
	Reason string
	Err    error
}

func (e *SolverError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cartopt: solver failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("cartopt: solver failed: %s", e.Reason)
}

func (e *SolverError) Unwrap() error { return e.Err }

// CostMismatchError reports that the independently recomputed total
// disagrees with the solver's objective beyond tolerance. A persistent
// mismatch signals a modeling bug and is never silently accepted.
type CostMismatchError struct {
	Recomputed int64
	Reported   float64
}

func (e *CostMismatchError) Error() string {
	return fmt.Sprintf("cartopt: recomputed cost %d disagrees with solver objective %g", e.Recomputed, e.Reported)
}
