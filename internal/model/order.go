package model

import "github.com/google/uuid"

// OrderStatus is the lifecycle of a B2B quote/order.
type OrderStatus string

const (
	StatusQuote      OrderStatus = "ORCAMENTO"
	StatusApproved   OrderStatus = "APROVADO"
	StatusProduction OrderStatus = "PRODUCAO"
	StatusShipped    OrderStatus = "ENVIADO"
	StatusInvoiced   OrderStatus = "FATURADO"
	StatusCancelled  OrderStatus = "CANCELADO"
)

// allowedTransitions encodes the forward chain plus the invoice shortcut
// (an approved order can be invoiced without passing through production and
// shipping). CANCELADO is reachable from every non-terminal state; FATURADO
// and CANCELADO are terminal.
var allowedTransitions = map[OrderStatus][]OrderStatus{
	StatusQuote:      {StatusApproved, StatusCancelled},
	StatusApproved:   {StatusProduction, StatusInvoiced, StatusCancelled},
	StatusProduction: {StatusShipped, StatusCancelled},
	StatusShipped:    {StatusInvoiced, StatusCancelled},
	StatusInvoiced:   {},
	StatusCancelled:  {},
}

// Valid reports whether s is a known status value.
func (s OrderStatus) Valid() bool {
	_, ok := allowedTransitions[s]
	return ok
}

// Terminal reports whether no transition leaves s.
func (s OrderStatus) Terminal() bool {
	return s == StatusInvoiced || s == StatusCancelled
}

// CanTransition reports whether moving from s to next is allowed.
func (s OrderStatus) CanTransition(next OrderStatus) bool {
	for _, t := range allowedTransitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// Order is a B2B quote that may progress to an invoiced sale. Subtotal and
// FinalValue are computed server-side on every save and stored.
type Order struct {
	BaseModel
	CustomerID     uuid.UUID   `gorm:"type:uuid;not null;index" json:"customer_id" validate:"uuid_required"`
	Customer       *Customer   `gorm:"foreignKey:CustomerID" json:"customer,omitempty" validate:"-"`
	Status         OrderStatus `gorm:"type:varchar(20);not null;default:'ORCAMENTO'" json:"status"`
	FreightValue   float64     `gorm:"type:decimal(12,2);default:0" json:"freight_value" validate:"gte=0"`
	GlobalDiscount float64     `gorm:"type:decimal(5,2);default:0" json:"global_discount" validate:"gte=0,lte=100"` // percent
	ValidityDays   int         `gorm:"default:30" json:"validity_days"`
	Observations   string      `gorm:"type:text" json:"observations"`
	Subtotal       float64     `gorm:"type:decimal(12,2);default:0" json:"subtotal"`
	FinalValue     float64     `gorm:"type:decimal(12,2);default:0" json:"final_value"`

	Lines []OrderLine `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"lines,omitempty"`
}

// OrderLine is one product entry of an order. UnitPrice is copied from the
// product at add time and never re-linked; lines have no identity across
// edits, the whole set is replaced on every save.
type OrderLine struct {
	BaseModel
	OrderID      uuid.UUID `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID    uuid.UUID `gorm:"type:uuid;not null" json:"product_id" validate:"uuid_required"`
	Product      *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty" validate:"-"`
	Quantity     int       `gorm:"not null" json:"quantity" validate:"required,gt=0"`
	UnitPrice    float64   `gorm:"type:decimal(12,2);not null" json:"unit_price" validate:"gte=0"`
	LineDiscount float64   `gorm:"type:decimal(5,2);default:0" json:"line_discount" validate:"gte=0,lte=100"` // percent
}

// EffectiveUnitPrice is the unit price after the per-line discount, the figure
// a sale line is created at when the order is invoiced.
func (l *OrderLine) EffectiveUnitPrice() float64 {
	return l.UnitPrice * (1 - l.LineDiscount/100)
}
