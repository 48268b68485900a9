package model

import "github.com/google/uuid"

// Category groups products for the catalog screens.
type Category struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"type:varchar(100);uniqueIndex;not null" json:"name" validate:"required"`
}

// Product is a finished good. CostPrice starts at zero and is recomputed from the
// bill of materials whenever the BOM changes; SalePrice is what the POS and order
// editor copy into line items.
type Product struct {
	BaseModel
	SKU        string         `gorm:"type:varchar(50);uniqueIndex;not null" json:"sku" validate:"required"`
	Name       string         `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	CategoryID *uint          `gorm:"index" json:"category_id"`
	Category   *Category      `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	CostPrice  float64        `gorm:"type:decimal(12,2);default:0" json:"cost_price"`
	SalePrice  float64        `gorm:"type:decimal(12,2);not null" json:"sale_price" validate:"gte=0"`
	BOM        []BOMLine      `gorm:"foreignKey:ProductID" json:"bom,omitempty"`
	Balances   []StockBalance `gorm:"foreignKey:ProductID" json:"balances,omitempty"`
}

// OnHand sums the product's stock balances across locations.
func (p *Product) OnHand() int {
	total := 0
	for _, b := range p.Balances {
		total += b.Quantity
	}
	return total
}

// MaterialUnit values accepted for raw materials.
const (
	UnitPiece = "un"
	UnitMeter = "m"
	UnitSqM   = "m2"
	UnitKilo  = "kg"
	UnitLitre = "l"
)

// RawMaterial (insumo) is purchased, not sold. Stock is fractional (meters of
// leather, kilos of hardware) and tracked directly on the row.
type RawMaterial struct {
	BaseModel
	Name         string  `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Unit         string  `gorm:"type:varchar(10);not null;default:'un'" json:"unit" validate:"required,oneof=un m m2 kg l"`
	CurrentStock float64 `gorm:"type:decimal(12,4);default:0" json:"current_stock"`
	MinimumStock float64 `gorm:"type:decimal(12,4);default:0" json:"minimum_stock"`
	AverageCost  float64 `gorm:"type:decimal(12,4);default:0" json:"average_cost"`
}

// BelowMinimum reports whether the material needs restocking.
func (m *RawMaterial) BelowMinimum() bool {
	return m.CurrentStock <= m.MinimumStock
}

// BOMLine is one entry of a product's ficha técnica: the quantity of a raw
// material needed to produce a single unit.
type BOMLine struct {
	BaseModel
	ProductID  uuid.UUID    `gorm:"type:uuid;not null;index" json:"product_id" validate:"uuid_required"`
	MaterialID uuid.UUID    `gorm:"type:uuid;not null;index" json:"material_id" validate:"uuid_required"`
	Material   *RawMaterial `gorm:"foreignKey:MaterialID" json:"material,omitempty"`
	Quantity   float64      `gorm:"type:decimal(12,4);not null" json:"quantity" validate:"required,gt=0"`
}

// Cost is the material cost contributed by this line per produced unit.
func (l *BOMLine) Cost() float64 {
	if l.Material == nil {
		return 0
	}
	return l.Quantity * l.Material.AverageCost
}

func (BOMLine) TableName() string {
	return "bom_lines"
}
