package service

import (
	"testing"
	"time"

	"go-atelier-erp/internal/model"
	"go-atelier-erp/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// recordingSaleRepo captures created sales so tests can inspect them.
type recordingSaleRepo struct {
	created []*model.Sale
}

func (r *recordingSaleRepo) Create(tx *gorm.DB, sale *model.Sale) error {
	r.created = append(r.created, sale)
	return nil
}

func (r *recordingSaleRepo) FindRecent(limit int) ([]model.Sale, error) { return nil, nil }

func (r *recordingSaleRepo) RevenueBetween(start, end time.Time) (float64, int64, error) {
	return 0, 0, nil
}

func (r *recordingSaleRepo) CostOfGoodsBetween(start, end time.Time) (float64, error) {
	return 0, nil
}

func (r *recordingSaleRepo) DailyRevenue(start, end time.Time) ([]repository.DailyRevenuePoint, error) {
	return nil, nil
}

// recordingStockRepo keeps balances in memory and mimics the conditional
// decrement: not enough on hand fails without mutating anything.
type recordingStockRepo struct {
	locationID uuid.UUID
	balances   map[uuid.UUID]int
	movements  []*model.StockMovement
}

func newRecordingStockRepo() *recordingStockRepo {
	return &recordingStockRepo{
		locationID: uuid.New(),
		balances:   map[uuid.UUID]int{},
	}
}

func (r *recordingStockRepo) DefaultLocation() (*model.StockLocation, error) { return nil, nil }

func (r *recordingStockRepo) SeedDefaultLocation() error { return nil }

func (r *recordingStockRepo) FindAllBalances() ([]model.StockBalance, error) { return nil, nil }

func (r *recordingStockRepo) LockBalance(tx *gorm.DB, productID uuid.UUID) (*model.StockBalance, bool, error) {
	qty, ok := r.balances[productID]
	if !ok {
		return nil, false, nil
	}
	return &model.StockBalance{ProductID: productID, LocationID: r.locationID, Quantity: qty}, true, nil
}

func (r *recordingStockRepo) CreateBalance(tx *gorm.DB, balance *model.StockBalance) error {
	r.balances[balance.ProductID] = balance.Quantity
	return nil
}

func (r *recordingStockRepo) SetQuantity(tx *gorm.DB, balanceID uuid.UUID, quantity int, updatedBy string) error {
	return nil
}

func (r *recordingStockRepo) DecrementConditional(tx *gorm.DB, productID uuid.UUID, qty int) (*model.StockBalance, error) {
	current, ok := r.balances[productID]
	if !ok || current < qty {
		return nil, repository.ErrInsufficientStock
	}
	r.balances[productID] = current - qty
	return &model.StockBalance{ProductID: productID, LocationID: r.locationID, Quantity: current - qty}, nil
}

func (r *recordingStockRepo) CreateMovement(tx *gorm.DB, movement *model.StockMovement) error {
	r.movements = append(r.movements, movement)
	return nil
}

func (r *recordingStockRepo) FindMovements(productID *uuid.UUID, limit int) ([]model.StockMovement, error) {
	return nil, nil
}

func approvedOrder(productID uuid.UUID, quantity int) *model.Order {
	order := &model.Order{
		Status:     model.StatusApproved,
		FinalValue: 570,
		Customer:   &model.Customer{CompanyName: "Couro & Cia"},
		Lines: []model.OrderLine{
			{ProductID: productID, Quantity: quantity, UnitPrice: 200, LineDiscount: 5},
		},
	}
	order.ID = uuid.New()
	return order
}

func TestInvoiceOrder(t *testing.T) {
	t.Run("creates one sale and decrements each line", func(t *testing.T) {
		sales := &recordingSaleRepo{}
		stock := newRecordingStockRepo()
		productID := uuid.New()
		stock.balances[productID] = 10

		svc := &orderService{saleRepo: sales, stockRepo: stock}
		order := approvedOrder(productID, 3)

		err := svc.invoice(nil, order, "tester")
		assert.NoError(t, err)

		assert.Equal(t, 7, stock.balances[productID])

		assert.Len(t, sales.created, 1)
		sale := sales.created[0]
		assert.Equal(t, model.PaymentB2BInvoice, sale.PaymentMethod)
		assert.Equal(t, 570.0, sale.TotalValue)
		assert.Equal(t, "Couro & Cia", sale.CustomerName)
		assert.Equal(t, order.ID, *sale.OrderID)
		assert.Len(t, sale.Lines, 1)
		assert.Equal(t, 3, sale.Lines[0].Quantity)
		assert.Equal(t, 190.0, sale.Lines[0].UnitPrice) // 200 minus the 5% line discount

		assert.Len(t, stock.movements, 1)
		mv := stock.movements[0]
		assert.Equal(t, model.MovementInvoice, mv.Type)
		assert.Equal(t, -3, mv.Delta)
		assert.Equal(t, 10, mv.OldQuantity)
		assert.Equal(t, 7, mv.NewQuantity)
		assert.Equal(t, order.ID, *mv.ReferenceID)
	})

	t.Run("stock shortage fails and leaves the balance alone", func(t *testing.T) {
		sales := &recordingSaleRepo{}
		stock := newRecordingStockRepo()
		productID := uuid.New()
		stock.balances[productID] = 2

		svc := &orderService{saleRepo: sales, stockRepo: stock}

		err := svc.invoice(nil, approvedOrder(productID, 3), "tester")
		assert.ErrorIs(t, err, ErrInsufficientStock)
		assert.Equal(t, 2, stock.balances[productID])
		assert.Empty(t, stock.movements)
	})

	t.Run("order without lines is rejected", func(t *testing.T) {
		svc := &orderService{saleRepo: &recordingSaleRepo{}, stockRepo: newRecordingStockRepo()}
		order := &model.Order{Status: model.StatusApproved}
		order.ID = uuid.New()

		err := svc.invoice(nil, order, "tester")
		assert.ErrorIs(t, err, ErrOrderHasNoLines)
	})
}
