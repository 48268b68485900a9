package model

// CompanySettings is a single-row table with the business identity printed on
// quotes and PDFs. A default row is seeded at boot; only updates are allowed
// afterwards.
type CompanySettings struct {
	BaseModel
	Name    string `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Slogan  string `gorm:"type:varchar(255)" json:"slogan"`
	TaxID   string `gorm:"type:varchar(20)" json:"tax_id"`
	Address string `gorm:"type:varchar(255)" json:"address"`
	Phone   string `gorm:"type:varchar(30)" json:"phone"`
	Email   string `gorm:"type:varchar(255)" json:"email" validate:"omitempty,email"`
}

func (CompanySettings) TableName() string {
	return "company_settings"
}
