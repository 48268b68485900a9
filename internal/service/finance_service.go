package service

import (
	"errors"
	"fmt"
	"time"

	"go-atelier-erp/internal/model"
	"go-atelier-erp/internal/pricing"
	"go-atelier-erp/internal/repository"
	"go-atelier-erp/pkg/validator"

	"github.com/google/uuid"
)

var (
	ErrEntryNotFound = errors.New("finance entry not found")
	ErrBadEntryType  = errors.New("unknown entry type")
)

// FinanceService manages the accounts-payable and accounts-receivable ledger.
type FinanceService interface {
	CreateEntry(req *FinanceEntryRequest, actorID string) (*model.FinanceEntry, error)
	UpdateEntry(id uuid.UUID, req *FinanceEntryRequest, actorID string) (*model.FinanceEntry, error)
	ToggleStatus(id uuid.UUID, actorID string) (*model.FinanceEntry, error)
	DeleteEntry(id uuid.UUID) error
	GetEntries(entryType model.EntryType) ([]model.FinanceEntry, error)
}

type FinanceEntryRequest struct {
	Description string  `json:"description" validate:"required"`
	Value       float64 `json:"value" validate:"required,gt=0"`
	DueDate     string  `json:"due_date" validate:"required"` // YYYY-MM-DD
	Type        string  `json:"type" validate:"required,oneof=SAIDA ENTRADA"`
}

type financeService struct {
	financeRepo repository.FinanceRepository
}

func NewFinanceService(financeRepo repository.FinanceRepository) FinanceService {
	return &financeService{financeRepo: financeRepo}
}

func parseDueDate(raw string) (time.Time, error) {
	due, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, errors.New("due_date must be formatted YYYY-MM-DD")
	}
	return due, nil
}

func (s *financeService) CreateEntry(req *FinanceEntryRequest, actorID string) (*model.FinanceEntry, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	due, err := parseDueDate(req.DueDate)
	if err != nil {
		return nil, err
	}

	entry := &model.FinanceEntry{
		Description: req.Description,
		Value:       pricing.Round2(req.Value),
		DueDate:     due,
		Type:        model.EntryType(req.Type),
		Status:      model.EntryPending,
	}
	entry.CreatedBy = actorID
	entry.UpdatedBy = actorID

	if err := s.financeRepo.Create(entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *financeService) UpdateEntry(id uuid.UUID, req *FinanceEntryRequest, actorID string) (*model.FinanceEntry, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	entry, err := s.financeRepo.FindByID(id)
	if err != nil {
		return nil, ErrEntryNotFound
	}

	due, err := parseDueDate(req.DueDate)
	if err != nil {
		return nil, err
	}

	entry.Description = req.Description
	entry.Value = pricing.Round2(req.Value)
	entry.DueDate = due
	entry.Type = model.EntryType(req.Type)
	entry.UpdatedBy = actorID

	if err := s.financeRepo.Update(entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *financeService) ToggleStatus(id uuid.UUID, actorID string) (*model.FinanceEntry, error) {
	entry, err := s.financeRepo.FindByID(id)
	if err != nil {
		return nil, ErrEntryNotFound
	}

	entry.Toggle()
	entry.UpdatedBy = actorID

	if err := s.financeRepo.Update(entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *financeService) DeleteEntry(id uuid.UUID) error {
	if _, err := s.financeRepo.FindByID(id); err != nil {
		return ErrEntryNotFound
	}
	return s.financeRepo.Delete(id)
}

func (s *financeService) GetEntries(entryType model.EntryType) ([]model.FinanceEntry, error) {
	if entryType != model.EntryOutflow && entryType != model.EntryInflow {
		return nil, ErrBadEntryType
	}
	return s.financeRepo.FindByType(entryType)
}
