// Copyright 2025 The cartopt Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cartopt

import (
	"errors"
	"fmt"
	"sort"
)

// Catalog is the closed set of items and surviving offers of a single run.
// It is built once from the input records and read-only afterwards; every
// offer references an item of the same catalog and has Available > 0.
type Catalog struct {
	Items  []Item
	Offers []Offer

	sellers      []string
	itemOffers   map[string][]int // item ID -> Offers indexes
	sellerOffers map[string][]int // seller name -> Offers indexes
}

// NewCatalog assembles a catalog from the input shopping list. Item IDs are
// positional (item_0, item_1, ...), offer IDs combine the seller name with
// the item and offer positions. Offers without availability are dropped
// here and never materialized.
func NewCatalog(records []ItemRecord) (*Catalog, error) {
	if len(records) == 0 {
		return nil, errors.New("cartopt: empty shopping list")
	}

	c := &Catalog{
		itemOffers:   make(map[string][]int, len(records)),
		sellerOffers: make(map[string][]int),
	}

	for i, rec := range records {
		if rec.Amount <= 0 {
			return nil, fmt.Errorf("cartopt: item %d: amount must be positive, got %d", i, rec.Amount)
		}
		item := Item{
			ID:     fmt.Sprintf("item_%d", i),
			URL:    rec.URL,
			Amount: rec.Amount,
		}
		c.Items = append(c.Items, item)
		c.itemOffers[item.ID] = nil

		for j, off := range rec.Sellers {
			if off.Name == "" {
				return nil, fmt.Errorf("cartopt: item %d: offer %d has no seller name", i, j)
			}
			if off.Cost < 0 {
				return nil, fmt.Errorf("cartopt: item %d: offer %d has negative cost %d", i, j, off.Cost)
			}
			if off.Available <= 0 {
				continue
			}
			o := Offer{
				ID:        fmt.Sprintf("%s_%d_%d", off.Name, i, j),
				Seller:    off.Name,
				ItemID:    item.ID,
				Cost:      off.Cost,
				Available: off.Available,
			}
			idx := len(c.Offers)
			c.Offers = append(c.Offers, o)
			c.itemOffers[item.ID] = append(c.itemOffers[item.ID], idx)
			c.sellerOffers[o.Seller] = append(c.sellerOffers[o.Seller], idx)
		}
	}

	c.sellers = make([]string, 0, len(c.sellerOffers))
	for s := range c.sellerOffers {
		c.sellers = append(c.sellers, s)
	}
	sort.Strings(c.sellers)

	return c, nil
}

// Sellers returns the seller names in stable sorted order.
func (c *Catalog) Sellers() []string { return c.sellers }

// OffersOfItem returns the Offers indexes of the given item.
func (c *Catalog) OffersOfItem(itemID string) []int { return c.itemOffers[itemID] }

// OffersOfSeller returns the Offers indexes of the given seller.
func (c *Catalog) OffersOfSeller(name string) []int { return c.sellerOffers[name] }

// TotalDemand is the sum of required quantities over all items. It bounds
// every per-seller purchase quantity of a feasible assignment.
func (c *Catalog) TotalDemand() int64 {
	var total int64
	for _, item := range c.Items {
		total += item.Amount
	}
	return total
}

// CheckStock verifies that every item's required amount can be covered by
// the aggregate availability of its offers. It returns a *StockError
// listing every shortage, or nil. The check runs before model construction
// so that an under-stocked cart never reaches the solver.
func (c *Catalog) CheckStock() error {
	var shortages []Shortage
	for _, item := range c.Items {
		var available int64
		for _, idx := range c.itemOffers[item.ID] {
			available += c.Offers[idx].Available
		}
		if available < item.Amount {
			shortages = append(shortages, Shortage{
				ItemID:    item.ID,
				URL:       item.URL,
				Required:  item.Amount,
				Available: available,
			})
		}
	}
	if len(shortages) > 0 {
		return &StockError{Shortages: shortages}
	}
	return nil
}
