package service

import (
	"fmt"

	"go-atelier-erp/internal/model"
	"go-atelier-erp/internal/pricing"
	"go-atelier-erp/internal/repository"
	"go-atelier-erp/pkg/validator"

	"github.com/google/uuid"
)

// CustomerService manages the B2B client registry and the customer detail
// card that merges the client's orders with its POS sale history.
type CustomerService interface {
	CreateCustomer(req *CustomerRequest, actorID string) (*model.Customer, error)
	UpdateCustomer(id uuid.UUID, req *CustomerRequest, actorID string) (*model.Customer, error)
	DeleteCustomer(id uuid.UUID) error
	GetCustomers() ([]model.Customer, error)
	GetCustomerDetail(id uuid.UUID) (*CustomerDetail, error)
}

type CustomerRequest struct {
	CompanyName string `json:"company_name" validate:"required"`
	ContactName string `json:"contact_name"`
	Phone       string `json:"phone"`
	Email       string `json:"email" validate:"omitempty,email"`
	TaxID       string `json:"tax_id"`
	Address     string `json:"address"`
	City        string `json:"city"`
	State       string `json:"state" validate:"omitempty,len=2"`
}

// CustomerDetail is the customer card: registry data, order history, the POS
// sales recorded under the company name, and the total already invoiced.
type CustomerDetail struct {
	Customer      *model.Customer `json:"customer"`
	Orders        []model.Order   `json:"orders"`
	Sales         []model.Sale    `json:"sales"`
	TotalInvoiced float64         `json:"total_invoiced"`
}

type customerService struct {
	customerRepo repository.CustomerRepository
}

func NewCustomerService(customerRepo repository.CustomerRepository) CustomerService {
	return &customerService{customerRepo: customerRepo}
}

func (s *customerService) CreateCustomer(req *CustomerRequest, actorID string) (*model.Customer, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	customer := &model.Customer{
		CompanyName: req.CompanyName,
		ContactName: req.ContactName,
		Phone:       req.Phone,
		Email:       req.Email,
		TaxID:       req.TaxID,
		Address:     req.Address,
		City:        req.City,
		State:       req.State,
	}
	customer.CreatedBy = actorID
	customer.UpdatedBy = actorID

	if err := s.customerRepo.Create(customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *customerService) UpdateCustomer(id uuid.UUID, req *CustomerRequest, actorID string) (*model.Customer, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	customer, err := s.customerRepo.FindByID(id)
	if err != nil {
		return nil, ErrCustomerNotFound
	}

	customer.CompanyName = req.CompanyName
	customer.ContactName = req.ContactName
	customer.Phone = req.Phone
	customer.Email = req.Email
	customer.TaxID = req.TaxID
	customer.Address = req.Address
	customer.City = req.City
	customer.State = req.State
	customer.UpdatedBy = actorID

	if err := s.customerRepo.Update(customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// DeleteCustomer removes the customer and all of its orders.
func (s *customerService) DeleteCustomer(id uuid.UUID) error {
	if _, err := s.customerRepo.FindByID(id); err != nil {
		return ErrCustomerNotFound
	}
	return s.customerRepo.Delete(id)
}

func (s *customerService) GetCustomers() ([]model.Customer, error) {
	return s.customerRepo.FindAll()
}

func (s *customerService) GetCustomerDetail(id uuid.UUID) (*CustomerDetail, error) {
	customer, err := s.customerRepo.FindByID(id)
	if err != nil {
		return nil, ErrCustomerNotFound
	}

	orders, err := s.customerRepo.FindOrders(id)
	if err != nil {
		return nil, err
	}

	sales, err := s.customerRepo.FindSalesByName(customer.CompanyName)
	if err != nil {
		return nil, err
	}

	total := 0.0
	for _, o := range orders {
		if o.Status == model.StatusInvoiced {
			total += o.FinalValue
		}
	}

	return &CustomerDetail{
		Customer:      customer,
		Orders:        orders,
		Sales:         sales,
		TotalInvoiced: pricing.Round2(total),
	}, nil
}
