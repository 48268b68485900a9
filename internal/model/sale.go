package model

import "github.com/google/uuid"

// PaymentMethod values accepted at checkout. PaymentB2BInvoice is reserved for
// sales generated by invoicing an order, never entered at the POS.
type PaymentMethod string

const (
	PaymentCash       PaymentMethod = "DINHEIRO"
	PaymentPix        PaymentMethod = "PIX"
	PaymentCredit     PaymentMethod = "CARTAO_CREDITO"
	PaymentDebit      PaymentMethod = "CARTAO_DEBITO"
	PaymentB2BInvoice PaymentMethod = "FATURADO_B2B"
)

// Sale is a committed sale, created by POS checkout or by invoicing an order.
// TotalValue is the amount actually charged (after discount and, for credit
// sales, interest); the discount and installment inputs are not persisted.
type Sale struct {
	BaseModel
	TotalValue    float64       `gorm:"type:decimal(12,2);not null" json:"total_value"`
	PaymentMethod PaymentMethod `gorm:"type:varchar(20);not null" json:"payment_method"`
	CustomerName  string        `gorm:"type:varchar(255)" json:"customer_name,omitempty"`
	OrderID       *uuid.UUID    `gorm:"type:uuid;index" json:"order_id,omitempty"` // set when generated by invoicing

	Lines []SaleLine `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE" json:"lines,omitempty"`
}

// SaleLine records the quantity and the unit price actually charged
// (post-discount) for one product of a sale.
type SaleLine struct {
	BaseModel
	SaleID    uuid.UUID `gorm:"type:uuid;not null;index" json:"sale_id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null" json:"product_id"`
	Product   *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	UnitPrice float64   `gorm:"type:decimal(12,2);not null" json:"unit_price"`
}
