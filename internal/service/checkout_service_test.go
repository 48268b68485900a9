package service

import (
	"testing"

	"go-atelier-erp/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type stubProductRepo struct {
	products map[uuid.UUID]*model.Product
}

func (r *stubProductRepo) Create(product *model.Product) error { return nil }

func (r *stubProductRepo) FindAll(search string) ([]model.Product, error) { return nil, nil }

func (r *stubProductRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	return p, nil
}

func (r *stubProductRepo) FindBySKU(sku string) (*model.Product, error) { return nil, nil }

func (r *stubProductRepo) Update(product *model.Product) error { return nil }

func (r *stubProductRepo) Delete(id uuid.UUID) error { return nil }

func (r *stubProductRepo) UpdateCostPrice(id uuid.UUID, cost float64) error { return nil }

func (r *stubProductRepo) FindLowStock(threshold int) ([]model.Product, error) { return nil, nil }

func newQuoteService(products ...*model.Product) (CheckoutService, []uuid.UUID) {
	repo := &stubProductRepo{products: map[uuid.UUID]*model.Product{}}
	ids := make([]uuid.UUID, len(products))
	for i, p := range products {
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
		repo.products[p.ID] = p
		ids[i] = p.ID
	}
	return NewCheckoutService(nil, repo, nil, nil, nil), ids
}

func product(price float64) *model.Product {
	return &model.Product{SalePrice: price}
}

func floatp(v float64) *float64 { return &v }

func TestQuote(t *testing.T) {
	t.Run("absolute discount", func(t *testing.T) {
		svc, ids := newQuoteService(product(100))
		quote, err := svc.Quote(&CheckoutRequest{
			Items:         []CheckoutItemRequest{{ProductID: ids[0], Quantity: 2}},
			DiscountValue: floatp(50),
			PaymentMethod: model.PaymentPix,
		})
		assert.NoError(t, err)
		assert.Equal(t, 200.0, quote.Subtotal)
		assert.Equal(t, 25.0, quote.DiscountPercent)
		assert.Equal(t, 150.0, quote.FinalTotal)
	})

	t.Run("percent discount converts to value", func(t *testing.T) {
		svc, ids := newQuoteService(product(100))
		quote, err := svc.Quote(&CheckoutRequest{
			Items:           []CheckoutItemRequest{{ProductID: ids[0], Quantity: 2}},
			DiscountPercent: floatp(25),
			PaymentMethod:   model.PaymentDebit,
		})
		assert.NoError(t, err)
		assert.Equal(t, 50.0, quote.DiscountValue)
		assert.Equal(t, 150.0, quote.FinalTotal)
	})

	t.Run("credit interest", func(t *testing.T) {
		svc, ids := newQuoteService(product(100))
		quote, err := svc.Quote(&CheckoutRequest{
			Items:         []CheckoutItemRequest{{ProductID: ids[0], Quantity: 1}},
			PaymentMethod: model.PaymentCredit,
			Installments:  3,
			InterestRate:  5,
		})
		assert.NoError(t, err)
		assert.Equal(t, 105.0, quote.FinalTotal)
		assert.Equal(t, 35.0, quote.PerInstallment)
	})

	t.Run("interest ignored for non-credit payment", func(t *testing.T) {
		svc, ids := newQuoteService(product(100))
		quote, err := svc.Quote(&CheckoutRequest{
			Items:         []CheckoutItemRequest{{ProductID: ids[0], Quantity: 1}},
			PaymentMethod: model.PaymentPix,
			Installments:  3,
			InterestRate:  5,
		})
		assert.NoError(t, err)
		assert.Equal(t, 100.0, quote.FinalTotal)
		assert.Equal(t, 1, quote.Installments)
	})

	t.Run("cash change", func(t *testing.T) {
		svc, ids := newQuoteService(product(35.50))
		quote, err := svc.Quote(&CheckoutRequest{
			Items:         []CheckoutItemRequest{{ProductID: ids[0], Quantity: 2}},
			PaymentMethod: model.PaymentCash,
			CashReceived:  floatp(100),
		})
		assert.NoError(t, err)
		assert.Equal(t, 71.0, quote.FinalTotal)
		assert.Equal(t, 29.0, quote.Change)
	})

	t.Run("cash short of the total", func(t *testing.T) {
		svc, ids := newQuoteService(product(100))
		_, err := svc.Quote(&CheckoutRequest{
			Items:         []CheckoutItemRequest{{ProductID: ids[0], Quantity: 1}},
			PaymentMethod: model.PaymentCash,
			CashReceived:  floatp(50),
		})
		assert.ErrorIs(t, err, ErrInsufficientCash)
	})

	t.Run("b2b payment rejected at the pos", func(t *testing.T) {
		svc, ids := newQuoteService(product(100))
		_, err := svc.Quote(&CheckoutRequest{
			Items:         []CheckoutItemRequest{{ProductID: ids[0], Quantity: 1}},
			PaymentMethod: model.PaymentB2BInvoice,
		})
		assert.ErrorIs(t, err, ErrInvalidPayment)
	})

	t.Run("unknown product", func(t *testing.T) {
		svc, _ := newQuoteService(product(100))
		_, err := svc.Quote(&CheckoutRequest{
			Items:         []CheckoutItemRequest{{ProductID: uuid.New(), Quantity: 1}},
			PaymentMethod: model.PaymentPix,
		})
		assert.ErrorIs(t, err, ErrProductNotFound)
	})
}

func TestCheckoutCommit(t *testing.T) {
	t.Run("persists the sale and decrements per item", func(t *testing.T) {
		sales := &recordingSaleRepo{}
		stock := newRecordingStockRepo()
		p := product(35.50)
		p.ID = uuid.New()
		stock.balances[p.ID] = 10

		svc := &checkoutService{saleRepo: sales, stockRepo: stock}
		sale := &model.Sale{
			TotalValue:    71,
			PaymentMethod: model.PaymentCash,
			Lines:         []model.SaleLine{{ProductID: p.ID, Quantity: 2, UnitPrice: 35.50}},
		}
		sale.ID = uuid.New()

		err := svc.commit(nil, sale, []pricedItem{{product: p, quantity: 2, unitPrice: 35.50}}, "tester")
		assert.NoError(t, err)

		assert.Equal(t, 8, stock.balances[p.ID])
		assert.Len(t, sales.created, 1)
		assert.Same(t, sale, sales.created[0])

		assert.Len(t, stock.movements, 1)
		mv := stock.movements[0]
		assert.Equal(t, model.MovementSale, mv.Type)
		assert.Equal(t, -2, mv.Delta)
		assert.Equal(t, 10, mv.OldQuantity)
		assert.Equal(t, 8, mv.NewQuantity)
		assert.Equal(t, stock.locationID, mv.LocationID)
		assert.Equal(t, sale.ID, *mv.ReferenceID)
	})

	t.Run("stock shortage aborts the commit", func(t *testing.T) {
		sales := &recordingSaleRepo{}
		stock := newRecordingStockRepo()
		p := product(10)
		p.ID = uuid.New()
		stock.balances[p.ID] = 1

		svc := &checkoutService{saleRepo: sales, stockRepo: stock}
		sale := &model.Sale{TotalValue: 20, PaymentMethod: model.PaymentPix}
		sale.ID = uuid.New()

		err := svc.commit(nil, sale, []pricedItem{{product: p, quantity: 2, unitPrice: 10}}, "tester")
		assert.ErrorIs(t, err, ErrInsufficientStock)
		assert.Equal(t, 1, stock.balances[p.ID])
		assert.Empty(t, stock.movements)
	})
}
