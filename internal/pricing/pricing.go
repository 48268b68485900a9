// Package pricing centralizes the money arithmetic shared by the POS checkout
// and the order editor. All intermediate math runs on decimals and results are
// rounded to cents before they are persisted or returned.
package pricing

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Round2 rounds a monetary amount to cents.
func Round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// CartItem is one POS cart entry.
type CartItem struct {
	UnitPrice float64
	Quantity  int
}

// Subtotal is the pre-discount sum of a cart.
func Subtotal(items []CartItem) float64 {
	total := decimal.Zero
	for _, it := range items {
		line := decimal.NewFromFloat(it.UnitPrice).Mul(decimal.NewFromInt(int64(it.Quantity)))
		total = total.Add(line)
	}
	return total.Round(2).InexactFloat64()
}

// PercentFromValue derives the discount percent equivalent to an absolute
// discount against the subtotal. Returns 0 for a zero subtotal.
func PercentFromValue(subtotal, value float64) float64 {
	if subtotal <= 0 {
		return 0
	}
	return decimal.NewFromFloat(value).Mul(hundred).
		Div(decimal.NewFromFloat(subtotal)).Round(2).InexactFloat64()
}

// ValueFromPercent derives the absolute discount equivalent to a percent
// discount against the subtotal.
func ValueFromPercent(subtotal, percent float64) float64 {
	return decimal.NewFromFloat(subtotal).Mul(decimal.NewFromFloat(percent)).
		Div(hundred).Round(2).InexactFloat64()
}

// CheckoutTotals is the computed result of a POS checkout.
type CheckoutTotals struct {
	Subtotal        float64 `json:"subtotal"`
	DiscountValue   float64 `json:"discount_value"`
	DiscountPercent float64 `json:"discount_percent"`
	FinalTotal      float64 `json:"final_total"`
	Installments    int     `json:"installments"`
	PerInstallment  float64 `json:"per_installment"`
}

// Checkout computes the POS totals: the discounted amount floors at zero,
// credit interest applies only when there is more than one installment and a
// positive rate, and the per-installment figure divides the final total.
func Checkout(subtotal, discountValue float64, installments int, interestRate float64) CheckoutTotals {
	if installments < 1 {
		installments = 1
	}
	sub := decimal.NewFromFloat(subtotal)
	discounted := sub.Sub(decimal.NewFromFloat(discountValue))
	if discounted.IsNegative() {
		discounted = decimal.Zero
	}

	final := discounted
	if installments > 1 && interestRate > 0 {
		factor := decimal.NewFromInt(1).Add(decimal.NewFromFloat(interestRate).Div(hundred))
		final = discounted.Mul(factor)
	}
	final = final.Round(2)

	per := final.Div(decimal.NewFromInt(int64(installments))).Round(2)

	return CheckoutTotals{
		Subtotal:        sub.Round(2).InexactFloat64(),
		DiscountValue:   Round2(discountValue),
		DiscountPercent: PercentFromValue(subtotal, discountValue),
		FinalTotal:      final.InexactFloat64(),
		Installments:    installments,
		PerInstallment:  per.InexactFloat64(),
	}
}

// OrderItem is one order line as the totals computation sees it.
type OrderItem struct {
	UnitPrice    float64
	Quantity     int
	LineDiscount float64 // percent
}

// OrderTotals computes an order's stored subtotal and final value:
// each line is discounted individually, the global discount applies to the
// line subtotal, and freight is added on top.
func OrderTotals(items []OrderItem, globalDiscount, freight float64) (subtotal, final float64) {
	sub := decimal.Zero
	for _, it := range items {
		line := decimal.NewFromFloat(it.UnitPrice).
			Mul(decimal.NewFromInt(int64(it.Quantity)))
		disc := line.Mul(decimal.NewFromFloat(it.LineDiscount)).Div(hundred)
		sub = sub.Add(line.Sub(disc))
	}
	sub = sub.Round(2)

	globalOff := sub.Mul(decimal.NewFromFloat(globalDiscount)).Div(hundred)
	fin := sub.Sub(globalOff).Add(decimal.NewFromFloat(freight)).Round(2)

	return sub.InexactFloat64(), fin.InexactFloat64()
}
