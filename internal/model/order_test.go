package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusTransitions(t *testing.T) {
	t.Run("forward chain", func(t *testing.T) {
		assert.True(t, StatusQuote.CanTransition(StatusApproved))
		assert.True(t, StatusApproved.CanTransition(StatusProduction))
		assert.True(t, StatusProduction.CanTransition(StatusShipped))
		assert.True(t, StatusShipped.CanTransition(StatusInvoiced))
	})

	t.Run("invoice shortcut from approved", func(t *testing.T) {
		assert.True(t, StatusApproved.CanTransition(StatusInvoiced))
	})

	t.Run("no skipping forward", func(t *testing.T) {
		assert.False(t, StatusQuote.CanTransition(StatusProduction))
		assert.False(t, StatusQuote.CanTransition(StatusShipped))
		assert.False(t, StatusQuote.CanTransition(StatusInvoiced))
		assert.False(t, StatusProduction.CanTransition(StatusInvoiced))
	})

	t.Run("no going backward", func(t *testing.T) {
		assert.False(t, StatusApproved.CanTransition(StatusQuote))
		assert.False(t, StatusShipped.CanTransition(StatusProduction))
	})

	t.Run("cancel from any non-terminal state", func(t *testing.T) {
		for _, s := range []OrderStatus{StatusQuote, StatusApproved, StatusProduction, StatusShipped} {
			assert.True(t, s.CanTransition(StatusCancelled), "from %s", s)
		}
	})

	t.Run("terminal states allow nothing", func(t *testing.T) {
		for _, next := range []OrderStatus{StatusQuote, StatusApproved, StatusProduction, StatusShipped, StatusInvoiced, StatusCancelled} {
			assert.False(t, StatusInvoiced.CanTransition(next), "FATURADO -> %s", next)
			assert.False(t, StatusCancelled.CanTransition(next), "CANCELADO -> %s", next)
		}
	})

	t.Run("no self transition", func(t *testing.T) {
		assert.False(t, StatusQuote.CanTransition(StatusQuote))
	})
}

func TestStatusValid(t *testing.T) {
	assert.True(t, StatusQuote.Valid())
	assert.True(t, StatusCancelled.Valid())
	assert.False(t, OrderStatus("PENDENTE").Valid())
	assert.False(t, OrderStatus("").Valid())
}

func TestStatusTerminal(t *testing.T) {
	assert.True(t, StatusInvoiced.Terminal())
	assert.True(t, StatusCancelled.Terminal())
	assert.False(t, StatusQuote.Terminal())
	assert.False(t, StatusShipped.Terminal())
}

func TestEffectiveUnitPrice(t *testing.T) {
	line := OrderLine{UnitPrice: 100, LineDiscount: 10}
	assert.InDelta(t, 90.0, line.EffectiveUnitPrice(), 0.001)

	line = OrderLine{UnitPrice: 100}
	assert.Equal(t, 100.0, line.EffectiveUnitPrice())

	line = OrderLine{UnitPrice: 100, LineDiscount: 100}
	assert.InDelta(t, 0.0, line.EffectiveUnitPrice(), 0.001)
}
