// Copyright 2025 The cartopt Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cartopt

import (
	"errors"
	"fmt"
)

// VarID indexes a variable within a Model.
type VarID int

// VarKind is the domain of a model variable.
type VarKind int

const (
	// VarInt is a non-negative integer variable with an inclusive upper bound.
	VarInt VarKind = iota
	// VarBool is a 0/1 variable.
	VarBool
)

// Variable declares one decision variable. The lower bound is always zero.
type Variable struct {
	Name  string
	Kind  VarKind
	Upper int64
}

// Relation is the comparison of a linear constraint.
type Relation int

const (
	Equal Relation = iota
	AtMost
	AtLeast
)

// Term is one coefficient-variable product of a linear expression.
// Coefficients are integers throughout; monetary values never leave the
// minor currency unit inside the model.
type Term struct {
	Coef int64
	Var  VarID
}

// Constraint is a linear constraint: sum(Terms) Rel RHS.
type Constraint struct {
	Name  string
	Terms []Term
	Rel   Relation
	RHS   int64
}

// SellerVars records the variable IDs of one seller, in the order the
// sellers appear in Catalog.Sellers.
type SellerVars struct {
	Seller string
	Use    VarID // 1 iff anything is bought from the seller
	Qty    VarID // total units bought from the seller
	Small  VarID
	Medium VarID
	Large  VarID
}

// Model is the mixed-integer program of a run: a neutral value translated
// by solver adapters. Buys is aligned with Catalog.Offers, Sellers with
// Catalog.Sellers. The objective is minimized.
type Model struct {
	Vars        []Variable
	Objective   []Term
	Constraints []Constraint

	Buys    []VarID
	Sellers []SellerVars
	BigM    int64
}

func (m *Model) newVar(name string, kind VarKind, upper int64) VarID {
	if kind == VarBool {
		upper = 1
	}
	m.Vars = append(m.Vars, Variable{Name: name, Kind: kind, Upper: upper})
	return VarID(len(m.Vars) - 1)
}

func (m *Model) addConstraint(name string, terms []Term, rel Relation, rhs int64) {
	m.Constraints = append(m.Constraints, Constraint{Name: name, Terms: terms, Rel: rel, RHS: rhs})
}

// Validate rejects fee schedules the model cannot encode.
func (t TierTable) Validate() error {
	if t.SmallFee < 0 || t.MediumFee < 0 || t.LargeFee < 0 {
		return errors.New("cartopt: tier fees must not be negative")
	}
	if t.SmallMax < 1 {
		return fmt.Errorf("cartopt: small tier must cover at least one unit, got max %d", t.SmallMax)
	}
	if t.MediumMax <= t.SmallMax {
		return fmt.Errorf("cartopt: medium tier max %d must exceed small tier max %d", t.MediumMax, t.SmallMax)
	}
	return nil
}

// BuildModel constructs the mixed-integer program for the catalog under the
// given fee schedule. Pure function of its inputs: building twice yields an
// equivalent model.
//
// Variables per offer o: buy[o] (integer, bounded by availability, which is
// the stock cap). Variables per seller s: use[s] (binary), qty[s] (integer),
// and three mutually exclusive tier indicators. Constraints: exact demand
// satisfaction per item, activation linkage buy[o] <= available[o]*use[s],
// qty aggregation, exactly one tier selected iff the seller is used, and
// big-M relaxed tier bounds. The relaxation constant is the total demand of
// the catalog, which provably exceeds any feasible qty[s].
func BuildModel(c *Catalog, tiers TierTable) (*Model, error) {
	if c == nil || len(c.Items) == 0 {
		return nil, errors.New("cartopt: cannot build model from empty catalog")
	}
	if len(c.Offers) == 0 {
		return nil, errors.New("cartopt: catalog has no available offers")
	}
	if err := tiers.Validate(); err != nil {
		return nil, err
	}

	m := &Model{BigM: c.TotalDemand()}

	m.Buys = make([]VarID, len(c.Offers))
	for i, o := range c.Offers {
		m.Buys[i] = m.newVar("buy_"+o.ID, VarInt, o.Available)
		m.Objective = append(m.Objective, Term{Coef: o.Cost, Var: m.Buys[i]})
	}

	sellers := c.Sellers()
	m.Sellers = make([]SellerVars, len(sellers))
	for si, s := range sellers {
		sv := SellerVars{
			Seller: s,
			Use:    m.newVar("use_"+s, VarBool, 1),
			Qty:    m.newVar("qty_"+s, VarInt, m.BigM),
			Small:  m.newVar("tier_small_"+s, VarBool, 1),
			Medium: m.newVar("tier_medium_"+s, VarBool, 1),
			Large:  m.newVar("tier_large_"+s, VarBool, 1),
		}
		m.Sellers[si] = sv
		m.Objective = append(m.Objective,
			Term{Coef: tiers.SmallFee, Var: sv.Small},
			Term{Coef: tiers.MediumFee, Var: sv.Medium},
			Term{Coef: tiers.LargeFee, Var: sv.Large},
		)
	}

	// Demand satisfaction: exact, never over- or under-fulfilled.
	for _, item := range c.Items {
		terms := make([]Term, 0, len(c.OffersOfItem(item.ID)))
		for _, idx := range c.OffersOfItem(item.ID) {
			terms = append(terms, Term{Coef: 1, Var: m.Buys[idx]})
		}
		m.addConstraint("demand_"+item.ID, terms, Equal, item.Amount)
	}

	for si, s := range sellers {
		sv := m.Sellers[si]

		// Activation linkage. The offer's own availability is the exact
		// upper bound of buy[o], so no separate big constant is needed.
		for _, idx := range c.OffersOfSeller(s) {
			o := c.Offers[idx]
			m.addConstraint("link_"+o.ID,
				[]Term{{Coef: 1, Var: m.Buys[idx]}, {Coef: -o.Available, Var: sv.Use}},
				AtMost, 0)
		}

		// qty[s] = sum of buys from s.
		terms := []Term{{Coef: -1, Var: sv.Qty}}
		for _, idx := range c.OffersOfSeller(s) {
			terms = append(terms, Term{Coef: 1, Var: m.Buys[idx]})
		}
		m.addConstraint("qty_"+s, terms, Equal, 0)

		// Exactly one tier iff the seller is used.
		m.addConstraint("tier_pick_"+s,
			[]Term{
				{Coef: 1, Var: sv.Small},
				{Coef: 1, Var: sv.Medium},
				{Coef: 1, Var: sv.Large},
				{Coef: -1, Var: sv.Use},
			},
			Equal, 0)

		// Tier bounds, relaxed by BigM when the indicator is off:
		//   qty <= SmallMax + M*(1-small)   rewritten  qty + M*small <= SmallMax + M
		//   qty >= (SmallMax+1)*medium
		//   qty <= MediumMax + M*(1-medium)
		//   qty >= (MediumMax+1)*large
		m.addConstraint("tier_small_hi_"+s,
			[]Term{{Coef: 1, Var: sv.Qty}, {Coef: m.BigM, Var: sv.Small}},
			AtMost, tiers.SmallMax+m.BigM)
		m.addConstraint("tier_medium_lo_"+s,
			[]Term{{Coef: 1, Var: sv.Qty}, {Coef: -(tiers.SmallMax + 1), Var: sv.Medium}},
			AtLeast, 0)
		m.addConstraint("tier_medium_hi_"+s,
			[]Term{{Coef: 1, Var: sv.Qty}, {Coef: m.BigM, Var: sv.Medium}},
			AtMost, tiers.MediumMax+m.BigM)
		m.addConstraint("tier_large_lo_"+s,
			[]Term{{Coef: 1, Var: sv.Qty}, {Coef: -(tiers.MediumMax + 1), Var: sv.Large}},
			AtLeast, 0)
	}

	return m, nil
}
