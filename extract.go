// Copyright 2025 The cartopt Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cartopt

import (
	"fmt"
	"math"
	"sort"
)

const (
	// intTolerance is the largest drift tolerated between a solver value
	// and the nearest integer before the value is rejected.
	intTolerance = 1e-4
	// costTolerance bounds the reconciliation gap between the recomputed
	// total and the solver objective. Every coefficient is an integer, so
	// any genuine mismatch is at least one minor unit.
	costTolerance = 0.5
)

// ExtractPlan decodes an optimal variable assignment into a seller-grouped
// purchase plan. The total cost is recomputed from the purchased lines and
// tier fees, then reconciled against the solver objective; the recomputed
// figure is the one returned. Demand equality, stock caps and tier
// membership are re-verified on the way out.
func ExtractPlan(c *Catalog, m *Model, sol *Solution, tiers TierTable) (*PurchasePlan, error) {
	if sol.Status != StatusOptimal {
		return nil, &SolverError{Reason: "extraction requires an optimal solution"}
	}
	if len(sol.Values) != len(m.Vars) {
		return nil, &SolverError{Reason: fmt.Sprintf("got %d variable values, want %d", len(sol.Values), len(m.Vars))}
	}

	round := func(id VarID) (int64, error) {
		v := sol.Values[id]
		r := math.Round(v)
		if math.Abs(v-r) > intTolerance {
			return 0, &SolverError{Reason: fmt.Sprintf("non-integral value %v for %s", v, m.Vars[id].Name)}
		}
		return int64(r), nil
	}

	itemURL := make(map[string]string, len(c.Items))
	for _, item := range c.Items {
		itemURL[item.ID] = item.URL
	}

	bySeller := make(map[string]*SellerOrder)
	perItem := make(map[string]int64, len(c.Items))

	for i, o := range c.Offers {
		qty, err := round(m.Buys[i])
		if err != nil {
			return nil, err
		}
		if qty == 0 {
			continue
		}
		if qty < 0 || qty > o.Available {
			return nil, fmt.Errorf("cartopt: offer %s bought %d of %d available: %w", o.ID, qty, o.Available, ErrInconsistent)
		}
		order := bySeller[o.Seller]
		if order == nil {
			order = &SellerOrder{Seller: o.Seller}
			bySeller[o.Seller] = order
		}
		order.Lines = append(order.Lines, OrderLine{
			ItemID:   o.ItemID,
			URL:      itemURL[o.ItemID],
			OfferID:  o.ID,
			UnitCost: o.Cost,
			Quantity: qty,
		})
		order.Units += qty
		order.ItemsCost += qty * o.Cost
		perItem[o.ItemID] += qty
	}

	for _, item := range c.Items {
		if perItem[item.ID] != item.Amount {
			return nil, fmt.Errorf("cartopt: item %s bought %d of %d required: %w", item.ID, perItem[item.ID], item.Amount, ErrInconsistent)
		}
	}

	for si, s := range c.Sellers() {
		sv := m.Sellers[si]
		order := bySeller[s]
		if order == nil {
			// Not used: no active tier, no shipping cost.
			continue
		}
		small, err := round(sv.Small)
		if err != nil {
			return nil, err
		}
		medium, err := round(sv.Medium)
		if err != nil {
			return nil, err
		}
		large, err := round(sv.Large)
		if err != nil {
			return nil, err
		}
		if small+medium+large != 1 {
			return nil, fmt.Errorf("cartopt: seller %s has %d active tiers: %w", s, small+medium+large, ErrInconsistent)
		}
		var fee int64
		var inBand bool
		switch {
		case small == 1:
			fee, inBand = tiers.SmallFee, order.Units >= 1 && order.Units <= tiers.SmallMax
		case medium == 1:
			fee, inBand = tiers.MediumFee, order.Units > tiers.SmallMax && order.Units <= tiers.MediumMax
		default:
			fee, inBand = tiers.LargeFee, order.Units > tiers.MediumMax
		}
		if !inBand {
			return nil, fmt.Errorf("cartopt: seller %s bought %d units outside the selected tier: %w", s, order.Units, ErrInconsistent)
		}
		order.ShippingFee = fee
	}

	plan := &PurchasePlan{}
	for _, order := range bySeller {
		plan.Sellers = append(plan.Sellers, *order)
		plan.ShippingCost += order.ShippingFee
		plan.TotalCost += order.ItemsCost + order.ShippingFee
	}
	sort.Slice(plan.Sellers, func(i, j int) bool {
		return plan.Sellers[i].Seller < plan.Sellers[j].Seller
	})

	if diff := math.Abs(float64(plan.TotalCost) - sol.Objective); diff > costTolerance {
		return nil, &CostMismatchError{Recomputed: plan.TotalCost, Reported: sol.Objective}
	}

	return plan, nil
}
