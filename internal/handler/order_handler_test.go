package handler

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"go-atelier-erp/internal/model"
	"go-atelier-erp/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type stubOrderService struct {
	order     *model.Order
	statusErr error
	gotStatus model.OrderStatus
}

func (s *stubOrderService) CreateOrder(req *service.OrderRequest, actorID string) (*model.Order, error) {
	return s.order, nil
}

func (s *stubOrderService) UpdateOrder(id uuid.UUID, req *service.OrderRequest, actorID string) (*model.Order, error) {
	return s.order, nil
}

func (s *stubOrderService) ChangeStatus(id uuid.UUID, next model.OrderStatus, actorID string) (*model.Order, error) {
	s.gotStatus = next
	if s.statusErr != nil {
		return nil, s.statusErr
	}
	s.order.Status = next
	return s.order, nil
}

func (s *stubOrderService) GetOrders() ([]model.Order, error) {
	return []model.Order{*s.order}, nil
}

func (s *stubOrderService) GetOrderByID(id uuid.UUID) (*model.Order, error) {
	if id != s.order.ID {
		return nil, service.ErrOrderNotFound
	}
	return s.order, nil
}

func (s *stubOrderService) DeleteOrder(id uuid.UUID) error {
	return nil
}

func newOrderApp(svc service.OrderService) *fiber.App {
	h := NewOrderHandler(svc)
	app := fiber.New()
	app.Get("/orders/:id", h.GetOrder)
	app.Patch("/orders/:id/status", h.ChangeStatus)
	return app
}

func testOrder() *model.Order {
	order := &model.Order{
		CustomerID: uuid.New(),
		Status:     model.StatusQuote,
		Subtotal:   190,
		FinalValue: 200.50,
	}
	order.ID = uuid.New()
	return order
}

func TestChangeStatus(t *testing.T) {
	t.Run("valid transition", func(t *testing.T) {
		stub := &stubOrderService{order: testOrder()}
		app := newOrderApp(stub)

		body, _ := json.Marshal(fiber.Map{"status": "APROVADO"})
		req := httptest.NewRequest("PATCH", "/orders/"+stub.order.ID.String()+"/status", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
		assert.Equal(t, model.StatusApproved, stub.gotStatus)

		var got model.Order
		json.NewDecoder(resp.Body).Decode(&got)
		assert.Equal(t, model.StatusApproved, got.Status)
	})

	t.Run("rejected transition maps to 409", func(t *testing.T) {
		stub := &stubOrderService{order: testOrder(), statusErr: service.ErrInvalidTransition}
		app := newOrderApp(stub)

		body, _ := json.Marshal(fiber.Map{"status": "ENVIADO"})
		req := httptest.NewRequest("PATCH", "/orders/"+stub.order.ID.String()+"/status", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, 409, resp.StatusCode)
	})

	t.Run("stock shortage maps to 409", func(t *testing.T) {
		stub := &stubOrderService{order: testOrder(), statusErr: service.ErrInsufficientStock}
		app := newOrderApp(stub)

		body, _ := json.Marshal(fiber.Map{"status": "FATURADO"})
		req := httptest.NewRequest("PATCH", "/orders/"+stub.order.ID.String()+"/status", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, 409, resp.StatusCode)
	})

	t.Run("bad order id", func(t *testing.T) {
		stub := &stubOrderService{order: testOrder()}
		app := newOrderApp(stub)

		body, _ := json.Marshal(fiber.Map{"status": "APROVADO"})
		req := httptest.NewRequest("PATCH", "/orders/not-a-uuid/status", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, 400, resp.StatusCode)
	})
}

func TestGetOrder(t *testing.T) {
	stub := &stubOrderService{order: testOrder()}
	app := newOrderApp(stub)

	t.Run("found", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/orders/"+stub.order.ID.String(), nil)
		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("unknown id maps to 404", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/orders/"+uuid.NewString(), nil)
		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, 404, resp.StatusCode)
	})
}
