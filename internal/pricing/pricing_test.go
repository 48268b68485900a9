package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubtotal(t *testing.T) {
	items := []CartItem{
		{UnitPrice: 100, Quantity: 2},
	}
	assert.Equal(t, 200.0, Subtotal(items))

	items = append(items, CartItem{UnitPrice: 49.90, Quantity: 3})
	assert.Equal(t, 349.70, Subtotal(items))

	assert.Equal(t, 0.0, Subtotal(nil))
}

func TestDiscountConversion(t *testing.T) {
	// R$50 off a R$200 cart is 25%
	assert.Equal(t, 25.0, PercentFromValue(200, 50))
	assert.Equal(t, 50.0, ValueFromPercent(200, 25))

	// zero subtotal never divides
	assert.Equal(t, 0.0, PercentFromValue(0, 50))
}

func TestDiscountRoundTrip(t *testing.T) {
	subtotal := 349.70
	percent := 12.5

	value := ValueFromPercent(subtotal, percent)
	back := PercentFromValue(subtotal, value)

	assert.InDelta(t, percent, back, 0.01)
}

func TestCheckout(t *testing.T) {
	t.Run("plain discount", func(t *testing.T) {
		totals := Checkout(200, 50, 1, 0)
		assert.Equal(t, 200.0, totals.Subtotal)
		assert.Equal(t, 50.0, totals.DiscountValue)
		assert.Equal(t, 25.0, totals.DiscountPercent)
		assert.Equal(t, 150.0, totals.FinalTotal)
		assert.Equal(t, 1, totals.Installments)
		assert.Equal(t, 150.0, totals.PerInstallment)
	})

	t.Run("credit with interest", func(t *testing.T) {
		totals := Checkout(100, 0, 3, 5)
		assert.Equal(t, 105.0, totals.FinalTotal)
		assert.Equal(t, 35.0, totals.PerInstallment)
	})

	t.Run("single installment skips interest", func(t *testing.T) {
		totals := Checkout(100, 0, 1, 5)
		assert.Equal(t, 100.0, totals.FinalTotal)
	})

	t.Run("zero rate skips interest", func(t *testing.T) {
		totals := Checkout(100, 0, 3, 0)
		assert.Equal(t, 100.0, totals.FinalTotal)
		assert.InDelta(t, 33.33, totals.PerInstallment, 0.01)
	})

	t.Run("discount larger than subtotal floors at zero", func(t *testing.T) {
		totals := Checkout(80, 100, 1, 0)
		assert.Equal(t, 0.0, totals.FinalTotal)
	})

	t.Run("installments below one are normalized", func(t *testing.T) {
		totals := Checkout(100, 0, 0, 0)
		assert.Equal(t, 1, totals.Installments)
		assert.Equal(t, 100.0, totals.PerInstallment)
	})
}

func TestOrderTotals(t *testing.T) {
	t.Run("global discount and freight", func(t *testing.T) {
		items := []OrderItem{
			{UnitPrice: 95, Quantity: 2},
		}
		subtotal, final := OrderTotals(items, 5, 20)
		assert.Equal(t, 190.0, subtotal)
		assert.Equal(t, 200.50, final)
	})

	t.Run("line discounts apply before the global one", func(t *testing.T) {
		items := []OrderItem{
			{UnitPrice: 100, Quantity: 1, LineDiscount: 10}, // 90
			{UnitPrice: 50, Quantity: 2},                    // 100
		}
		subtotal, final := OrderTotals(items, 10, 0)
		assert.Equal(t, 190.0, subtotal)
		assert.Equal(t, 171.0, final)
	})

	t.Run("empty order", func(t *testing.T) {
		subtotal, final := OrderTotals(nil, 0, 15)
		assert.Equal(t, 0.0, subtotal)
		assert.Equal(t, 15.0, final)
	})
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 10.56, Round2(10.555))
	assert.Equal(t, 0.1, Round2(0.1))
}
