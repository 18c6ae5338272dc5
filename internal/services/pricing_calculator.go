package services

import (
	"math"

	"hanout/internal/models"
)

// PricingBreakdown is the result of a quote. All amounts are in MAD,
// rounded to the centime.
type PricingBreakdown struct {
	TotalAmount    float64 `json:"total_amount"`
	DeliveryFee    float64 `json:"delivery_fee"`
	TaxAmount      float64 `json:"tax_amount"`
	DiscountAmount float64 `json:"discount_amount"`
	FinalAmount    float64 `json:"final_amount"`
}

// PricingCalculator derives order amounts from line items and a delivery
// zone. It is a pure function of its inputs: identical items, zone, rate
// and discount always yield the identical breakdown, so any order's
// amounts can be re-derived for audit.
type PricingCalculator struct {
	TaxRate float64 // locale-configured rate, e.g. 0.20 for standard TVA
}

// NewPricingCalculator creates a new PricingCalculator.
func NewPricingCalculator(taxRate float64) *PricingCalculator {
	return &PricingCalculator{
		TaxRate: taxRate,
	}
}

// Quote computes the amounts for an order. The delivery fee comes from the
// zone, or drops to zero when the zone offers free delivery above a
// threshold and the subtotal qualifies. Items must already carry their
// snapshotted unit prices. The discount is clamped to the billable amount:
// a quote can reach zero but every monetary field stays non-negative.
func (p *PricingCalculator) Quote(items []models.OrderItem, zone *models.DeliveryZone, discount float64) PricingBreakdown {
	var subtotal float64
	for _, item := range items {
		subtotal += item.UnitPrice * float64(item.Quantity)
	}
	subtotal = roundMAD(subtotal)

	fee := zone.DeliveryFee
	if zone.FreeDeliveryAbove > 0 && subtotal >= zone.FreeDeliveryAbove {
		fee = 0
	}

	tax := roundMAD(subtotal * p.TaxRate)

	discount = roundMAD(discount)
	if discount < 0 {
		discount = 0
	}
	if billable := roundMAD(subtotal + fee + tax); discount > billable {
		discount = billable
	}

	return PricingBreakdown{
		TotalAmount:    subtotal,
		DeliveryFee:    fee,
		TaxAmount:      tax,
		DiscountAmount: discount,
		FinalAmount:    roundMAD(subtotal + fee + tax - discount),
	}
}

// roundMAD rounds to the centime, half away from zero.
func roundMAD(amount float64) float64 {
	return math.Round(amount*100) / 100
}
