package service

import (
	"errors"
	"fmt"

	"go-atelier-erp/internal/model"
	"go-atelier-erp/internal/repository"
	"go-atelier-erp/internal/ws"
	"go-atelier-erp/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrNoDefaultLocation = errors.New("no default stock location configured")

// StockService covers the stock screens: the balance listing, the manual
// adjustment flow and the movement history. Sale and invoice decrements live
// in the checkout and order services but share the same repository.
type StockService interface {
	GetBalances() ([]model.StockBalance, error)
	AdjustStock(req *AdjustStockRequest, actorID string) (*model.StockBalance, error)
	GetMovements(productID *uuid.UUID, limit int) ([]model.StockMovement, error)
}

type AdjustStockRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"uuid_required"`
	Delta     int       `json:"delta" validate:"required"`
	Note      string    `json:"note"`
}

type stockService struct {
	db          *gorm.DB
	stockRepo   repository.StockRepository
	productRepo repository.ProductRepository
	hub         *ws.Hub
}

func NewStockService(db *gorm.DB, stockRepo repository.StockRepository, productRepo repository.ProductRepository, hub *ws.Hub) StockService {
	return &stockService{
		db:          db,
		stockRepo:   stockRepo,
		productRepo: productRepo,
		hub:         hub,
	}
}

func (s *stockService) GetBalances() ([]model.StockBalance, error) {
	return s.stockRepo.FindAllBalances()
}

// AdjustStock applies a signed manual delta inside one transaction. The balance
// row is locked (or created at the default location when missing), the new
// quantity clamps at zero, and a MANUAL movement records what happened.
func (s *stockService) AdjustStock(req *AdjustStockRequest, actorID string) (*model.StockBalance, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	if _, err := s.productRepo.FindByID(req.ProductID); err != nil {
		return nil, ErrProductNotFound
	}

	var result *model.StockBalance

	err := s.db.Transaction(func(tx *gorm.DB) error {
		balance, ok, err := s.stockRepo.LockBalance(tx, req.ProductID)
		if err != nil {
			return err
		}

		if !ok {
			loc, err := s.stockRepo.DefaultLocation()
			if err != nil {
				return ErrNoDefaultLocation
			}
			balance = &model.StockBalance{
				ProductID:  req.ProductID,
				LocationID: loc.ID,
				Quantity:   0,
			}
			balance.CreatedBy = actorID
			balance.UpdatedBy = actorID
			if err := s.stockRepo.CreateBalance(tx, balance); err != nil {
				return err
			}
		}

		oldQty := balance.Quantity
		newQty := model.ClampQuantity(oldQty, req.Delta)

		if err := s.stockRepo.SetQuantity(tx, balance.ID, newQty, actorID); err != nil {
			return err
		}

		movement := &model.StockMovement{
			ProductID:   req.ProductID,
			LocationID:  balance.LocationID,
			Type:        model.MovementManual,
			Delta:       req.Delta,
			OldQuantity: oldQty,
			NewQuantity: newQty,
			Note:        req.Note,
		}
		movement.CreatedBy = actorID
		movement.UpdatedBy = actorID
		if err := s.stockRepo.CreateMovement(tx, movement); err != nil {
			return err
		}

		balance.Quantity = newQty
		result = balance
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.hub.BroadcastEvent("stock_update", map[string]interface{}{
		"product_id": req.ProductID.String(),
		"quantity":   result.Quantity,
	})

	return result, nil
}

func (s *stockService) GetMovements(productID *uuid.UUID, limit int) ([]model.StockMovement, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.stockRepo.FindMovements(productID, limit)
}
