// Copyright 2025 The cartopt Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cartopt/cartopt"
	"github.com/cartopt/cartopt/highs"
)

func doPlan(ctx context.Context, cartFile, outFile string,
	tiers cartopt.TierTable, limit time.Duration, verbose bool) error {

	records, err := loadCart(cartFile)
	if err != nil {
		return fmt.Errorf("load cart file failed: %w", err)
	}

	catalog, err := cartopt.NewCatalog(records)
	if err != nil {
		return err
	}

	if verbose {
		printAvailability(catalog)
	}

	solver := &highs.Solver{MaxDuration: limit, Verbose: verbose}

	plan, err := cartopt.Plan(catalog, tiers, solver)
	if err != nil {
		return err
	}

	printPlan(plan)
	fmt.Printf("%+v\n", plan.Summary())

	if outFile != "" {
		if err := writePlan(outFile, plan); err != nil {
			return fmt.Errorf("write plan file failed: %w", err)
		}
	}

	return nil
}

func loadCart(file string) ([]cartopt.ItemRecord, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}

	var records []cartopt.ItemRecord

	decoder := json.NewDecoder(bytes.NewReader(data))
	if err := decoder.Decode(&records); err != nil {
		return nil, err
	}

	return records, nil
}

func printAvailability(c *cartopt.Catalog) {
	fmt.Println("Checking availability:")
	for _, item := range c.Items {
		available := int64(0)
		for _, idx := range c.OffersOfItem(item.ID) {
			available += c.Offers[idx].Available
		}
		fmt.Printf("  - %s: need %d, available %d\n", item.URL, item.Amount, available)
	}
	fmt.Println()
}

func printPlan(p *cartopt.PurchasePlan) {
	fmt.Println()
	fmt.Println("Optimal cart:")
	fmt.Println()
	for _, order := range p.Sellers {
		fmt.Printf("Seller: %s\n", order.Seller)
		for _, line := range order.Lines {
			fmt.Printf(" x%d €%s %s\n", line.Quantity, euros(line.UnitCost), line.URL)
		}
		fmt.Printf("Total Items: %d\n", order.Units)
		fmt.Printf("Items Total: €%s\n", euros(order.ItemsCost))
		fmt.Printf("Delivery Cost: €%s\n\n", euros(order.ShippingFee))
	}
	fmt.Printf("Delivery Cost: €%s\n", euros(p.ShippingCost))
	fmt.Printf("Total Cost (including delivery): €%s\n", euros(p.TotalCost))
}

// euros renders minor currency units as a major unit string. The shift to
// major units happens here and nowhere else.
func euros(minor int64) string {
	return decimal.New(minor, -2).StringFixed(2)
}

func writePlan(file string, p *cartopt.PurchasePlan) error {
	var buf bytes.Buffer

	encoder := json.NewEncoder(&buf)
	encoder.SetIndent("", "   ")
	if err := encoder.Encode(p); err != nil {
		return err
	}

	return os.WriteFile(file, buf.Bytes(), 0644)
}
