package generator

import (
	"math"

	"github.com/hyperterse/seeder/core/domain"
)

// round2 rounds to cents.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Totals holds the computed money fields of an order.
type Totals struct {
	Subtotal float64
	Tax      float64
	Shipping float64
	Total    float64
}

// ComputeTotals derives subtotal, tax, shipping and total from line items.
func ComputeTotals(items []domain.LineItem) Totals {
	var sum float64
	for _, item := range items {
		sum += item.Total
	}
	subtotal := round2(sum)
	tax := round2(subtotal * domain.TaxRate)
	shipping := domain.ShippingFee
	if subtotal > domain.FreeShippingThreshold {
		shipping = 0
	}
	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Shipping: shipping,
		Total:    round2(subtotal + tax + shipping),
	}
}
