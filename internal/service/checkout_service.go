package service

import (
	"errors"
	"fmt"

	"go-atelier-erp/internal/model"
	"go-atelier-erp/internal/pricing"
	"go-atelier-erp/internal/repository"
	"go-atelier-erp/internal/ws"
	"go-atelier-erp/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrEmptyCart        = errors.New("cart is empty")
	ErrInvalidPayment   = errors.New("payment method not accepted at the pos")
	ErrInsufficientCash = errors.New("cash received is less than the total")
)

// posPayments are the methods a cashier can pick. FATURADO_B2B is created only
// by invoicing an order.
var posPayments = map[model.PaymentMethod]bool{
	model.PaymentCash:   true,
	model.PaymentPix:    true,
	model.PaymentCredit: true,
	model.PaymentDebit:  true,
}

// CheckoutService is the POS: quoting a cart (pure math, nothing persisted)
// and committing it as a sale with the matching stock decrements.
type CheckoutService interface {
	Quote(req *CheckoutRequest) (*CheckoutQuote, error)
	Checkout(req *CheckoutRequest, actorID string) (*CheckoutResult, error)
	History(limit int) ([]model.Sale, error)
}

type CheckoutItemRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"uuid_required"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
}

type CheckoutRequest struct {
	Items           []CheckoutItemRequest `json:"items" validate:"required,min=1,dive"`
	DiscountValue   *float64              `json:"discount_value,omitempty" validate:"omitempty,gte=0"`
	DiscountPercent *float64              `json:"discount_percent,omitempty" validate:"omitempty,gte=0,lte=100"`
	PaymentMethod   model.PaymentMethod   `json:"payment_method" validate:"required"`
	Installments    int                   `json:"installments" validate:"gte=0"`
	InterestRate    float64               `json:"interest_rate" validate:"gte=0"`
	CashReceived    *float64              `json:"cash_received,omitempty" validate:"omitempty,gte=0"`
	CustomerName    string                `json:"customer_name"`
}

// CheckoutQuote echoes the computed totals before anything is committed.
type CheckoutQuote struct {
	pricing.CheckoutTotals
	Change float64 `json:"change"`
}

// CheckoutResult is the committed sale plus the figures the receipt needs.
type CheckoutResult struct {
	Sale *model.Sale `json:"sale"`
	CheckoutQuote
}

type checkoutService struct {
	db          *gorm.DB
	productRepo repository.ProductRepository
	stockRepo   repository.StockRepository
	saleRepo    repository.SaleRepository
	hub         *ws.Hub
}

func NewCheckoutService(
	db *gorm.DB,
	productRepo repository.ProductRepository,
	stockRepo repository.StockRepository,
	saleRepo repository.SaleRepository,
	hub *ws.Hub,
) CheckoutService {
	return &checkoutService{
		db:          db,
		productRepo: productRepo,
		stockRepo:   stockRepo,
		saleRepo:    saleRepo,
		hub:         hub,
	}
}

type pricedItem struct {
	product   *model.Product
	quantity  int
	unitPrice float64
}

func (s *checkoutService) price(req *CheckoutRequest) ([]pricedItem, *CheckoutQuote, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}
	if len(req.Items) == 0 {
		return nil, nil, ErrEmptyCart
	}
	if !posPayments[req.PaymentMethod] {
		return nil, nil, ErrInvalidPayment
	}

	items := make([]pricedItem, 0, len(req.Items))
	cart := make([]pricing.CartItem, 0, len(req.Items))
	for _, ri := range req.Items {
		product, err := s.productRepo.FindByID(ri.ProductID)
		if err != nil {
			return nil, nil, ErrProductNotFound
		}
		items = append(items, pricedItem{product: product, quantity: ri.Quantity, unitPrice: product.SalePrice})
		cart = append(cart, pricing.CartItem{UnitPrice: product.SalePrice, Quantity: ri.Quantity})
	}

	subtotal := pricing.Subtotal(cart)

	// The cashier enters either an absolute discount or a percent; whichever
	// arrives is converted so both figures come back.
	discountValue := 0.0
	switch {
	case req.DiscountValue != nil:
		discountValue = *req.DiscountValue
	case req.DiscountPercent != nil:
		discountValue = pricing.ValueFromPercent(subtotal, *req.DiscountPercent)
	}

	installments := req.Installments
	interest := req.InterestRate
	if req.PaymentMethod != model.PaymentCredit {
		installments = 1
		interest = 0
	}

	totals := pricing.Checkout(subtotal, discountValue, installments, interest)

	quote := &CheckoutQuote{CheckoutTotals: totals}
	if req.PaymentMethod == model.PaymentCash && req.CashReceived != nil {
		if *req.CashReceived < totals.FinalTotal {
			return nil, nil, ErrInsufficientCash
		}
		quote.Change = pricing.Round2(*req.CashReceived - totals.FinalTotal)
	}

	return items, quote, nil
}

func (s *checkoutService) Quote(req *CheckoutRequest) (*CheckoutQuote, error) {
	_, quote, err := s.price(req)
	return quote, err
}

// Checkout commits the cart: sale, sale lines at post-discount unit prices and
// one conditional decrement plus movement per product, all in one transaction.
func (s *checkoutService) Checkout(req *CheckoutRequest, actorID string) (*CheckoutResult, error) {
	items, quote, err := s.price(req)
	if err != nil {
		return nil, err
	}

	sale := &model.Sale{
		TotalValue:    quote.FinalTotal,
		PaymentMethod: req.PaymentMethod,
		CustomerName:  req.CustomerName,
	}
	sale.CreatedBy = actorID
	sale.UpdatedBy = actorID

	for _, it := range items {
		linePrice := it.unitPrice
		if quote.DiscountPercent > 0 {
			linePrice = pricing.Round2(it.unitPrice * (1 - quote.DiscountPercent/100))
		}
		line := model.SaleLine{
			ProductID: it.product.ID,
			Quantity:  it.quantity,
			UnitPrice: linePrice,
		}
		line.CreatedBy = actorID
		line.UpdatedBy = actorID
		sale.Lines = append(sale.Lines, line)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		return s.commit(tx, sale, items, actorID)
	})
	if err != nil {
		return nil, err
	}

	s.hub.BroadcastEvent("sale_created", map[string]interface{}{
		"sale_id": sale.ID.String(),
		"total":   sale.TotalValue,
	})

	return &CheckoutResult{Sale: sale, CheckoutQuote: *quote}, nil
}

// commit persists the sale and applies one conditional decrement plus one
// movement per product. A stock shortage aborts the surrounding transaction.
func (s *checkoutService) commit(tx *gorm.DB, sale *model.Sale, items []pricedItem, actorID string) error {
	if err := s.saleRepo.Create(tx, sale); err != nil {
		return err
	}

	for _, it := range items {
		balance, err := s.stockRepo.DecrementConditional(tx, it.product.ID, it.quantity)
		if err != nil {
			return err
		}

		movement := &model.StockMovement{
			ProductID:   it.product.ID,
			LocationID:  balance.LocationID,
			Type:        model.MovementSale,
			Delta:       -it.quantity,
			OldQuantity: balance.Quantity + it.quantity,
			NewQuantity: balance.Quantity,
			ReferenceID: &sale.ID,
		}
		movement.CreatedBy = actorID
		movement.UpdatedBy = actorID
		if err := s.stockRepo.CreateMovement(tx, movement); err != nil {
			return err
		}
	}
	return nil
}

func (s *checkoutService) History(limit int) ([]model.Sale, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.saleRepo.FindRecent(limit)
}
