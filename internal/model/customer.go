package model

// Customer is a B2B client (cliente). CompanyName is what orders and POS sales
// reference; the rest is contact detail for the customer card.
type Customer struct {
	BaseModel
	CompanyName string `gorm:"type:varchar(255);not null" json:"company_name" validate:"required"`
	ContactName string `gorm:"type:varchar(255)" json:"contact_name"`
	Phone       string `gorm:"type:varchar(30)" json:"phone"`
	Email       string `gorm:"type:varchar(255)" json:"email" validate:"omitempty,email"`
	TaxID       string `gorm:"type:varchar(20)" json:"tax_id"` // CNPJ or CPF
	Address     string `gorm:"type:varchar(255)" json:"address"`
	City        string `gorm:"type:varchar(100)" json:"city"`
	State       string `gorm:"type:varchar(2)" json:"state"`

	Orders []Order `gorm:"foreignKey:CustomerID" json:"orders,omitempty"`
}
