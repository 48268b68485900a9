package service

import (
	"fmt"

	"go-atelier-erp/internal/model"
	"go-atelier-erp/internal/repository"
	"go-atelier-erp/pkg/validator"
)

// CompanyService reads and updates the single company settings row.
type CompanyService interface {
	GetSettings() (*model.CompanySettings, error)
	UpdateSettings(req *CompanySettingsRequest, actorID string) (*model.CompanySettings, error)
}

type CompanySettingsRequest struct {
	Name    string `json:"name" validate:"required"`
	Slogan  string `json:"slogan"`
	TaxID   string `json:"tax_id"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email" validate:"omitempty,email"`
}

type companyService struct {
	companyRepo repository.CompanyRepository
}

func NewCompanyService(companyRepo repository.CompanyRepository) CompanyService {
	return &companyService{companyRepo: companyRepo}
}

func (s *companyService) GetSettings() (*model.CompanySettings, error) {
	return s.companyRepo.Get()
}

func (s *companyService) UpdateSettings(req *CompanySettingsRequest, actorID string) (*model.CompanySettings, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	settings, err := s.companyRepo.Get()
	if err != nil {
		return nil, err
	}

	settings.Name = req.Name
	settings.Slogan = req.Slogan
	settings.TaxID = req.TaxID
	settings.Address = req.Address
	settings.Phone = req.Phone
	settings.Email = req.Email
	settings.UpdatedBy = actorID

	if err := s.companyRepo.Update(settings); err != nil {
		return nil, err
	}
	return settings, nil
}
