package models

import "math"

// Totals is the money breakdown of a cart or a receipt.
type Totals struct {
	Subtotal  float64 `json:"subtotal"`
	TaxAmount float64 `json:"taxAmount"`
	Total     float64 `json:"total"`
}

// ComputeCheckout prices a cart at the given tax rate (a percentage).
// The result is not rounded; Total is what gets stored on the order.
func ComputeCheckout(items []OrderItem, taxRate float64) Totals {
	subtotal := 0.0
	for _, item := range items {
		subtotal += item.LineTotal()
	}
	tax := subtotal * taxRate / 100
	return Totals{
		Subtotal:  subtotal,
		TaxAmount: tax,
		Total:     subtotal + tax,
	}
}

// ReverseReceipt splits a stored tax-inclusive total back into subtotal and tax
// using taxRate, which is whatever rate is configured now. Orders placed under a
// different rate will not reproduce their original subtotal.
func ReverseReceipt(total, taxRate float64) Totals {
	subtotal := total / (1 + taxRate/100)
	return Totals{
		Subtotal:  RoundCents(subtotal),
		TaxAmount: RoundCents(total - subtotal),
		Total:     RoundCents(total),
	}
}

// RoundCents rounds half away from zero to two decimals.
func RoundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
