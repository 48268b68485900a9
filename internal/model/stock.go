package model

import "github.com/google/uuid"

// StockLocation is a physical place stock sits in. A default location is seeded
// at boot and used whenever a balance row has to be created implicitly.
type StockLocation struct {
	BaseModel
	Name      string `gorm:"type:varchar(100);uniqueIndex;not null" json:"name" validate:"required"`
	IsDefault bool   `gorm:"default:false" json:"is_default"`
}

// DefaultLocationName for the seeded location.
const DefaultLocationName = "Estoque Principal"

// StockBalance is the on-hand quantity of a product at a location. Quantity is
// never allowed below zero; sale decrements are conditional updates and manual
// adjustments clamp at zero.
type StockBalance struct {
	BaseModel
	ProductID  uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_balance_product_location" json:"product_id" validate:"uuid_required"`
	Product    *Product       `gorm:"foreignKey:ProductID" json:"product,omitempty" validate:"-"`
	LocationID uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_balance_product_location" json:"location_id"`
	Location   *StockLocation `gorm:"foreignKey:LocationID" json:"location,omitempty" validate:"-"`
	Quantity   int            `gorm:"not null;default:0" json:"quantity"`
}

// MovementType classifies what caused a stock change.
type MovementType string

const (
	MovementManual  MovementType = "MANUAL"
	MovementSale    MovementType = "SALE"
	MovementInvoice MovementType = "ORDER_INVOICE"
)

// StockMovement is an append-only log row written alongside every balance
// change, keeping the previous and resulting quantity for auditing.
type StockMovement struct {
	BaseModel
	ProductID   uuid.UUID    `gorm:"type:uuid;not null;index" json:"product_id"`
	Product     *Product     `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	LocationID  uuid.UUID    `gorm:"type:uuid;not null" json:"location_id"`
	Type        MovementType `gorm:"type:varchar(20);not null" json:"type"`
	Delta       int          `gorm:"not null" json:"delta"` // positive = in, negative = out
	OldQuantity int          `gorm:"not null" json:"old_quantity"`
	NewQuantity int          `gorm:"not null" json:"new_quantity"`
	ReferenceID *uuid.UUID   `gorm:"type:uuid" json:"reference_id,omitempty"` // sale or order id
	Note        string       `json:"note"`
}

// ClampQuantity applies a signed delta to a balance, flooring the result at
// zero (manual adjustments must never drive a balance negative).
func ClampQuantity(current, delta int) int {
	next := current + delta
	if next < 0 {
		return 0
	}
	return next
}
