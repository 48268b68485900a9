package repository

import (
	"go-atelier-erp/internal/model"

	"gorm.io/gorm"
)

type CompanyRepository interface {
	Get() (*model.CompanySettings, error)
	Update(settings *model.CompanySettings) error
	SeedDefault() error
}

type companyRepo struct {
	db *gorm.DB
}

func NewCompanyRepo(db *gorm.DB) CompanyRepository {
	return &companyRepo{db}
}

func (r *companyRepo) Get() (*model.CompanySettings, error) {
	var settings model.CompanySettings
	if err := r.db.First(&settings).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *companyRepo) Update(settings *model.CompanySettings) error {
	return r.db.Save(settings).Error
}

// SeedDefault creates the single settings row when the table is empty.
func (r *companyRepo) SeedDefault() error {
	var count int64
	if err := r.db.Model(&model.CompanySettings{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	settings := model.CompanySettings{Name: "Minha Empresa"}
	settings.CreatedBy = "system"
	settings.UpdatedBy = "system"
	return r.db.Create(&settings).Error
}
