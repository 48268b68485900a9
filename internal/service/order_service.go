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
	ErrOrderNotFound     = errors.New("order not found")
	ErrOrderTerminal     = errors.New("order is in a terminal status and cannot be edited")
	ErrInvalidTransition = errors.New("status transition not allowed")
	ErrCustomerNotFound  = errors.New("customer not found")
	ErrOrderHasNoLines   = errors.New("order must have at least one line")
	ErrOrderNotDeletable = errors.New("only quotes and cancelled orders can be deleted")
	ErrInsufficientStock = repository.ErrInsufficientStock
)

// OrderService drives the B2B order workflow: quote editing, the status
// machine and the invoicing side effects (sale creation plus conditional
// stock decrement, all inside one transaction).
type OrderService interface {
	CreateOrder(req *OrderRequest, actorID string) (*model.Order, error)
	UpdateOrder(id uuid.UUID, req *OrderRequest, actorID string) (*model.Order, error)
	ChangeStatus(id uuid.UUID, next model.OrderStatus, actorID string) (*model.Order, error)
	GetOrders() ([]model.Order, error)
	GetOrderByID(id uuid.UUID) (*model.Order, error)
	DeleteOrder(id uuid.UUID) error
}

type OrderLineRequest struct {
	ProductID    uuid.UUID `json:"product_id" validate:"uuid_required"`
	Quantity     int       `json:"quantity" validate:"required,gt=0"`
	UnitPrice    *float64  `json:"unit_price,omitempty" validate:"omitempty,gte=0"`
	LineDiscount float64   `json:"line_discount" validate:"gte=0,lte=100"`
}

type OrderRequest struct {
	CustomerID     uuid.UUID          `json:"customer_id" validate:"uuid_required"`
	FreightValue   float64            `json:"freight_value" validate:"gte=0"`
	GlobalDiscount float64            `json:"global_discount" validate:"gte=0,lte=100"`
	ValidityDays   int                `json:"validity_days" validate:"gte=0"`
	Observations   string             `json:"observations"`
	Lines          []OrderLineRequest `json:"lines" validate:"required,min=1,dive"`
}

type orderService struct {
	db           *gorm.DB
	orderRepo    repository.OrderRepository
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
	stockRepo    repository.StockRepository
	saleRepo     repository.SaleRepository
	hub          *ws.Hub
}

func NewOrderService(
	db *gorm.DB,
	orderRepo repository.OrderRepository,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	stockRepo repository.StockRepository,
	saleRepo repository.SaleRepository,
	hub *ws.Hub,
) OrderService {
	return &orderService{
		db:           db,
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		stockRepo:    stockRepo,
		saleRepo:     saleRepo,
		hub:          hub,
	}
}

// buildLines materializes request lines, copying the product sale price when
// the request does not pin a unit price.
func (s *orderService) buildLines(reqLines []OrderLineRequest, actorID string) ([]model.OrderLine, error) {
	lines := make([]model.OrderLine, 0, len(reqLines))
	for _, rl := range reqLines {
		product, err := s.productRepo.FindByID(rl.ProductID)
		if err != nil {
			return nil, ErrProductNotFound
		}
		unitPrice := product.SalePrice
		if rl.UnitPrice != nil {
			unitPrice = *rl.UnitPrice
		}
		line := model.OrderLine{
			ProductID:    rl.ProductID,
			Quantity:     rl.Quantity,
			UnitPrice:    pricing.Round2(unitPrice),
			LineDiscount: rl.LineDiscount,
		}
		line.CreatedBy = actorID
		line.UpdatedBy = actorID
		lines = append(lines, line)
	}
	return lines, nil
}

func orderItems(lines []model.OrderLine) []pricing.OrderItem {
	items := make([]pricing.OrderItem, len(lines))
	for i, l := range lines {
		items[i] = pricing.OrderItem{
			UnitPrice:    l.UnitPrice,
			Quantity:     l.Quantity,
			LineDiscount: l.LineDiscount,
		}
	}
	return items
}

func (s *orderService) CreateOrder(req *OrderRequest, actorID string) (*model.Order, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	if _, err := s.customerRepo.FindByID(req.CustomerID); err != nil {
		return nil, ErrCustomerNotFound
	}

	lines, err := s.buildLines(req.Lines, actorID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrOrderHasNoLines
	}

	subtotal, final := pricing.OrderTotals(orderItems(lines), req.GlobalDiscount, req.FreightValue)

	validity := req.ValidityDays
	if validity == 0 {
		validity = 30
	}

	order := &model.Order{
		CustomerID:     req.CustomerID,
		Status:         model.StatusQuote,
		FreightValue:   pricing.Round2(req.FreightValue),
		GlobalDiscount: req.GlobalDiscount,
		ValidityDays:   validity,
		Observations:   req.Observations,
		Subtotal:       subtotal,
		FinalValue:     final,
	}
	order.CreatedBy = actorID
	order.UpdatedBy = actorID

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.orderRepo.Create(tx, order); err != nil {
			return err
		}
		return s.orderRepo.ReplaceLines(tx, order.ID, lines)
	})
	if err != nil {
		return nil, err
	}

	return s.orderRepo.FindByID(order.ID)
}

func (s *orderService) UpdateOrder(id uuid.UUID, req *OrderRequest, actorID string) (*model.Order, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	if _, err := s.customerRepo.FindByID(req.CustomerID); err != nil {
		return nil, ErrCustomerNotFound
	}

	lines, err := s.buildLines(req.Lines, actorID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrOrderHasNoLines
	}

	subtotal, final := pricing.OrderTotals(orderItems(lines), req.GlobalDiscount, req.FreightValue)

	err = s.db.Transaction(func(tx *gorm.DB) error {
		order, err := s.orderRepo.LockByID(tx, id)
		if err != nil {
			return ErrOrderNotFound
		}
		if order.Status.Terminal() {
			return ErrOrderTerminal
		}

		order.CustomerID = req.CustomerID
		order.FreightValue = pricing.Round2(req.FreightValue)
		order.GlobalDiscount = req.GlobalDiscount
		if req.ValidityDays > 0 {
			order.ValidityDays = req.ValidityDays
		}
		order.Observations = req.Observations
		order.Subtotal = subtotal
		order.FinalValue = final
		order.UpdatedBy = actorID

		if err := s.orderRepo.Save(tx, order); err != nil {
			return err
		}
		return s.orderRepo.ReplaceLines(tx, id, lines)
	})
	if err != nil {
		return nil, err
	}

	return s.orderRepo.FindByID(id)
}

// ChangeStatus moves an order through the status machine. The transition to
// FATURADO additionally creates the B2B sale and decrements stock; everything
// runs in one transaction so a stock shortage rolls the whole move back.
func (s *orderService) ChangeStatus(id uuid.UUID, next model.OrderStatus, actorID string) (*model.Order, error) {
	if !next.Valid() {
		return nil, ErrInvalidTransition
	}

	var invoiced bool

	err := s.db.Transaction(func(tx *gorm.DB) error {
		order, err := s.orderRepo.LockByID(tx, id)
		if err != nil {
			return ErrOrderNotFound
		}
		if !order.Status.CanTransition(next) {
			return ErrInvalidTransition
		}

		if next == model.StatusInvoiced {
			if err := s.invoice(tx, order, actorID); err != nil {
				return err
			}
			invoiced = true
		}

		return s.orderRepo.UpdateStatus(tx, id, next, actorID)
	})
	if err != nil {
		return nil, err
	}

	s.hub.BroadcastEvent("order_status_changed", map[string]interface{}{
		"order_id": id.String(),
		"status":   string(next),
	})
	if invoiced {
		s.hub.BroadcastEvent("sale_created", map[string]interface{}{
			"order_id": id.String(),
		})
	}

	return s.orderRepo.FindByID(id)
}

// invoice creates the FATURADO_B2B sale for the order and decrements stock for
// every line. Lines must already be loaded on the order.
func (s *orderService) invoice(tx *gorm.DB, order *model.Order, actorID string) error {
	if len(order.Lines) == 0 {
		return ErrOrderHasNoLines
	}

	customerName := ""
	if order.Customer != nil {
		customerName = order.Customer.CompanyName
	}

	sale := &model.Sale{
		TotalValue:    order.FinalValue,
		PaymentMethod: model.PaymentB2BInvoice,
		CustomerName:  customerName,
		OrderID:       &order.ID,
	}
	sale.CreatedBy = actorID
	sale.UpdatedBy = actorID

	for _, line := range order.Lines {
		saleLine := model.SaleLine{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: pricing.Round2(line.EffectiveUnitPrice()),
		}
		saleLine.CreatedBy = actorID
		saleLine.UpdatedBy = actorID
		sale.Lines = append(sale.Lines, saleLine)
	}

	if err := s.saleRepo.Create(tx, sale); err != nil {
		return err
	}

	for _, line := range order.Lines {
		balance, err := s.stockRepo.DecrementConditional(tx, line.ProductID, line.Quantity)
		if err != nil {
			return err
		}

		movement := &model.StockMovement{
			ProductID:   line.ProductID,
			LocationID:  balance.LocationID,
			Type:        model.MovementInvoice,
			Delta:       -line.Quantity,
			OldQuantity: balance.Quantity + line.Quantity,
			NewQuantity: balance.Quantity,
			ReferenceID: &order.ID,
		}
		movement.CreatedBy = actorID
		movement.UpdatedBy = actorID
		if err := s.stockRepo.CreateMovement(tx, movement); err != nil {
			return err
		}
	}

	return nil
}

func (s *orderService) GetOrders() ([]model.Order, error) {
	return s.orderRepo.FindAll()
}

func (s *orderService) GetOrderByID(id uuid.UUID) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(id)
	if err != nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

func (s *orderService) DeleteOrder(id uuid.UUID) error {
	order, err := s.orderRepo.FindByID(id)
	if err != nil {
		return ErrOrderNotFound
	}
	if order.Status != model.StatusQuote && order.Status != model.StatusCancelled {
		return ErrOrderNotDeletable
	}
	return s.orderRepo.Delete(id)
}
