// Copyright 2025 The cartopt Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cartopt

import (
	"errors"
	"testing"
)

func makeRecord(amount int64, url string, offers ...OfferRecord) ItemRecord {
	return ItemRecord{Amount: amount, URL: url, Sellers: offers}
}

func TestNewCatalog(t *testing.T) {
	t.Run("Basic", func(t *testing.T) {
		c, err := NewCatalog([]ItemRecord{
			makeRecord(2, "http://shop/a",
				OfferRecord{Name: "x", Cost: 10, Available: 5},
				OfferRecord{Name: "y", Cost: 12, Available: 3}),
			makeRecord(1, "http://shop/b",
				OfferRecord{Name: "x", Cost: 7, Available: 1}),
		})
		if err != nil {
			t.Fatalf("NewCatalog: %v", err)
		}
		if len(c.Items) != 2 {
			t.Errorf("Expected 2 items, got %d", len(c.Items))
		}
		if len(c.Offers) != 3 {
			t.Errorf("Expected 3 offers, got %d", len(c.Offers))
		}
		if c.Items[0].ID != "item_0" || c.Items[1].ID != "item_1" {
			t.Errorf("Unexpected item IDs: %v %v", c.Items[0].ID, c.Items[1].ID)
		}
		if c.Offers[0].ID != "x_0_0" {
			t.Errorf("Unexpected offer ID: %v", c.Offers[0].ID)
		}
	})

	t.Run("DropsUnavailableOffers", func(t *testing.T) {
		c, err := NewCatalog([]ItemRecord{
			makeRecord(1, "http://shop/a",
				OfferRecord{Name: "x", Cost: 10, Available: 0},
				OfferRecord{Name: "y", Cost: 12, Available: -3},
				OfferRecord{Name: "z", Cost: 15, Available: 2}),
		})
		if err != nil {
			t.Fatalf("NewCatalog: %v", err)
		}
		if len(c.Offers) != 1 {
			t.Fatalf("Expected 1 surviving offer, got %d", len(c.Offers))
		}
		if c.Offers[0].Seller != "z" {
			t.Errorf("Expected offer from z, got %s", c.Offers[0].Seller)
		}
		if len(c.Sellers()) != 1 {
			t.Errorf("Expected 1 seller, got %d", len(c.Sellers()))
		}
	})

	t.Run("SellersSorted", func(t *testing.T) {
		c, err := NewCatalog([]ItemRecord{
			makeRecord(1, "http://shop/a",
				OfferRecord{Name: "zeta", Cost: 1, Available: 1},
				OfferRecord{Name: "alpha", Cost: 1, Available: 1},
				OfferRecord{Name: "mid", Cost: 1, Available: 1}),
		})
		if err != nil {
			t.Fatalf("NewCatalog: %v", err)
		}
		sellers := c.Sellers()
		if sellers[0] != "alpha" || sellers[1] != "mid" || sellers[2] != "zeta" {
			t.Errorf("Sellers not sorted: %v", sellers)
		}
	})

	t.Run("Grouping", func(t *testing.T) {
		c, err := NewCatalog([]ItemRecord{
			makeRecord(2, "http://shop/a",
				OfferRecord{Name: "x", Cost: 10, Available: 5},
				OfferRecord{Name: "y", Cost: 12, Available: 3}),
			makeRecord(1, "http://shop/b",
				OfferRecord{Name: "x", Cost: 7, Available: 1}),
		})
		if err != nil {
			t.Fatalf("NewCatalog: %v", err)
		}
		if got := c.OffersOfItem("item_0"); len(got) != 2 {
			t.Errorf("Expected 2 offers for item_0, got %v", got)
		}
		if got := c.OffersOfSeller("x"); len(got) != 2 {
			t.Errorf("Expected 2 offers for x, got %v", got)
		}
		for _, idx := range c.OffersOfSeller("x") {
			if c.Offers[idx].Seller != "x" {
				t.Errorf("Seller index points at %s", c.Offers[idx].Seller)
			}
		}
	})

	t.Run("EmptyList", func(t *testing.T) {
		if _, err := NewCatalog(nil); err == nil {
			t.Error("Expected error for empty shopping list")
		}
	})

	t.Run("NonPositiveAmount", func(t *testing.T) {
		_, err := NewCatalog([]ItemRecord{makeRecord(0, "http://shop/a")})
		if err == nil {
			t.Error("Expected error for zero amount")
		}
	})

	t.Run("MissingSellerName", func(t *testing.T) {
		_, err := NewCatalog([]ItemRecord{
			makeRecord(1, "http://shop/a", OfferRecord{Cost: 10, Available: 5}),
		})
		if err == nil {
			t.Error("Expected error for unnamed seller")
		}
	})
}

func TestTotalDemand(t *testing.T) {
	c, err := NewCatalog([]ItemRecord{
		makeRecord(3, "a", OfferRecord{Name: "x", Cost: 1, Available: 9}),
		makeRecord(4, "b", OfferRecord{Name: "x", Cost: 1, Available: 9}),
	})
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	if got := c.TotalDemand(); got != 7 {
		t.Errorf("Expected total demand 7, got %d", got)
	}
}

func TestCheckStock(t *testing.T) {
	t.Run("Sufficient", func(t *testing.T) {
		c, err := NewCatalog([]ItemRecord{
			makeRecord(5, "http://shop/a",
				OfferRecord{Name: "x", Cost: 10, Available: 3},
				OfferRecord{Name: "y", Cost: 12, Available: 2}),
		})
		if err != nil {
			t.Fatalf("NewCatalog: %v", err)
		}
		if err := c.CheckStock(); err != nil {
			t.Errorf("Expected sufficient stock, got %v", err)
		}
	})

	t.Run("Shortage", func(t *testing.T) {
		c, err := NewCatalog([]ItemRecord{
			makeRecord(5, "http://shop/a",
				OfferRecord{Name: "x", Cost: 10, Available: 3}),
		})
		if err != nil {
			t.Fatalf("NewCatalog: %v", err)
		}
		err = c.CheckStock()
		var stockErr *StockError
		if !errors.As(err, &stockErr) {
			t.Fatalf("Expected StockError, got %v", err)
		}
		if len(stockErr.Shortages) != 1 {
			t.Fatalf("Expected 1 shortage, got %d", len(stockErr.Shortages))
		}
		s := stockErr.Shortages[0]
		if s.ItemID != "item_0" || s.Required != 5 || s.Available != 3 {
			t.Errorf("Unexpected shortage: %+v", s)
		}
	})

	t.Run("ItemWithoutOffers", func(t *testing.T) {
		c, err := NewCatalog([]ItemRecord{
			makeRecord(1, "http://shop/a",
				OfferRecord{Name: "x", Cost: 10, Available: 0}),
			makeRecord(1, "http://shop/b",
				OfferRecord{Name: "x", Cost: 10, Available: 1}),
		})
		if err != nil {
			t.Fatalf("NewCatalog: %v", err)
		}
		err = c.CheckStock()
		var stockErr *StockError
		if !errors.As(err, &stockErr) {
			t.Fatalf("Expected StockError, got %v", err)
		}
		if stockErr.Shortages[0].ItemID != "item_0" {
			t.Errorf("Expected shortage on item_0, got %+v", stockErr.Shortages)
		}
	})

	t.Run("MultipleShortages", func(t *testing.T) {
		c, err := NewCatalog([]ItemRecord{
			makeRecord(5, "a", OfferRecord{Name: "x", Cost: 1, Available: 1}),
			makeRecord(2, "b", OfferRecord{Name: "x", Cost: 1, Available: 9}),
			makeRecord(4, "c", OfferRecord{Name: "y", Cost: 1, Available: 2}),
		})
		if err != nil {
			t.Fatalf("NewCatalog: %v", err)
		}
		err = c.CheckStock()
		var stockErr *StockError
		if !errors.As(err, &stockErr) {
			t.Fatalf("Expected StockError, got %v", err)
		}
		if len(stockErr.Shortages) != 2 {
			t.Errorf("Expected 2 shortages, got %+v", stockErr.Shortages)
		}
	})
}
