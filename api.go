// Copyright 2025 The cartopt Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cartopt plans the cheapest way to fulfill a multi-item shopping
// list when every item can be bought from several sellers at different unit
// prices and limited stock, and every seller charges a flat delivery fee
// keyed to the total units bought from it.
//
// All monetary amounts are integer minor currency units (cents). Conversion
// to major units happens at presentation time only.
package cartopt

// ItemRecord is one entry of the input shopping list.
type ItemRecord struct {
	Amount  int64         `json:"amount"`
	URL     string        `json:"url"`
	Sellers []OfferRecord `json:"sellers"`
}

// OfferRecord is one seller's offer for the surrounding item.
type OfferRecord struct {
	Name      string `json:"name"`
	Cost      int64  `json:"cost"` // per unit
	Available int64  `json:"available"`
}

// Item is one distinct product line of the cart.
type Item struct {
	ID     string `json:"id"`
	URL    string `json:"url"`
	Amount int64  `json:"amount"` // required quantity
}

// Offer is a sellable quantity of one Item from one Seller at a fixed
// unit price. Offers with no availability are never materialized.
type Offer struct {
	ID        string `json:"id"`
	Seller    string `json:"seller"`
	ItemID    string `json:"item"`
	Cost      int64  `json:"cost"`
	Available int64  `json:"available"`
}

// Default delivery fee schedule.
const (
	DefaultSmallFee  = 132
	DefaultMediumFee = 237
	DefaultLargeFee  = 2000
	DefaultSmallMax  = 4
	DefaultMediumMax = 20
)

// TierTable is the delivery fee schedule of a run: three contiguous bands
// keyed to the total units bought from a seller. The small band covers
// 1..SmallMax units, the medium band SmallMax+1..MediumMax, the large band
// everything above. Bands cannot overlap or leave gaps by construction.
type TierTable struct {
	SmallFee  int64 `json:"small_fee"`
	MediumFee int64 `json:"medium_fee"`
	LargeFee  int64 `json:"large_fee"`
	SmallMax  int64 `json:"small_max"`
	MediumMax int64 `json:"medium_max"`
}

// DefaultTierTable returns the production delivery fee schedule.
func DefaultTierTable() TierTable {
	return TierTable{
		SmallFee:  DefaultSmallFee,
		MediumFee: DefaultMediumFee,
		LargeFee:  DefaultLargeFee,
		SmallMax:  DefaultSmallMax,
		MediumMax: DefaultMediumMax,
	}
}

// SolveStatus is the outcome class reported by a Solver.
type SolveStatus int

const (
	// StatusOptimal means the solver proved optimality and reports a value
	// for every declared variable.
	StatusOptimal SolveStatus = iota
	// StatusInfeasible means the solver proved no feasible assignment exists.
	StatusInfeasible
	// StatusFailure means the solver could not complete (time limit,
	// numerical failure) or stopped with an unproven incumbent.
	StatusFailure
)

// Solution is the raw outcome of a solve. Values is indexed by VarID and is
// only populated when Status is StatusOptimal. Values of integer variables
// are numerically approximate and must be rounded before use.
type Solution struct {
	Status    SolveStatus
	Values    []float64
	Objective float64
}

// Solver solves a mixed-integer model. Implementations must honor integer
// and binary variable domains exactly and must not report partial results.
type Solver interface {
	Solve(m *Model) (*Solution, error)
}

// OrderLine is one purchased (item, offer, quantity) triple.
type OrderLine struct {
	ItemID   string `json:"item"`
	URL      string `json:"url"`
	OfferID  string `json:"offer"`
	UnitCost int64  `json:"unit_cost"`
	Quantity int64  `json:"qty"`
}

// SellerOrder groups everything bought from one seller.
type SellerOrder struct {
	Seller      string      `json:"seller"`
	Lines       []OrderLine `json:"lines"`
	Units       int64       `json:"units"`
	ItemsCost   int64       `json:"items_cost"`
	ShippingFee int64       `json:"shipping_fee"`
}

// PurchasePlan is the decoded, seller-grouped output of a successful solve.
// Sellers are sorted by name; TotalCost is recomputed from the lines and
// fees, never copied from the solver.
type PurchasePlan struct {
	Sellers      []SellerOrder `json:"sellers"`
	ShippingCost int64         `json:"shipping_cost"`
	TotalCost    int64         `json:"total_cost"`
}

// Summary condenses a plan for logging.
type Summary struct {
	SellersUsed  int   `json:"sellers"`
	Lines        int   `json:"lines"`
	Units        int64 `json:"units"`
	ItemsCost    int64 `json:"items_cost"`
	ShippingCost int64 `json:"shipping_cost"`
	TotalCost    int64 `json:"total_cost"`
}

// Summary returns the condensed view of the plan.
func (p *PurchasePlan) Summary() Summary {
	var s Summary
	s.SellersUsed = len(p.Sellers)
	for _, order := range p.Sellers {
		s.Lines += len(order.Lines)
		s.Units += order.Units
		s.ItemsCost += order.ItemsCost
	}
	s.ShippingCost = p.ShippingCost
	s.TotalCost = p.TotalCost
	return s
}
