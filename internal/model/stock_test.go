package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampQuantity(t *testing.T) {
	assert.Equal(t, 15, ClampQuantity(10, 5))
	assert.Equal(t, 5, ClampQuantity(10, -5))
	assert.Equal(t, 0, ClampQuantity(10, -10))

	// a delta below the balance floors at zero instead of going negative
	assert.Equal(t, 0, ClampQuantity(3, -10))
	assert.Equal(t, 0, ClampQuantity(0, -1))

	assert.Equal(t, 7, ClampQuantity(0, 7))
}
