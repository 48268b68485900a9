package repository

import (
	"go-atelier-erp/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderRepository interface {
	Create(tx *gorm.DB, order *model.Order) error
	Save(tx *gorm.DB, order *model.Order) error
	FindAll() ([]model.Order, error)
	FindByID(id uuid.UUID) (*model.Order, error)
	// LockByID reads the order with FOR UPDATE inside a transaction, so a
	// status transition cannot race another.
	LockByID(tx *gorm.DB, id uuid.UUID) (*model.Order, error)
	// ReplaceLines drops and re-inserts the order's line set (lines carry no
	// identity across edits).
	ReplaceLines(tx *gorm.DB, orderID uuid.UUID, lines []model.OrderLine) error
	UpdateStatus(tx *gorm.DB, id uuid.UUID, status model.OrderStatus, updatedBy string) error
	Delete(id uuid.UUID) error
	CountOpen() (int64, error)
}

type orderRepo struct {
	db *gorm.DB
}

func NewOrderRepo(db *gorm.DB) OrderRepository {
	return &orderRepo{db}
}

func (r *orderRepo) Create(tx *gorm.DB, order *model.Order) error {
	return tx.Omit("Lines").Create(order).Error
}

func (r *orderRepo) Save(tx *gorm.DB, order *model.Order) error {
	return tx.Omit("Lines").Save(order).Error
}

func (r *orderRepo) FindAll() ([]model.Order, error) {
	var orders []model.Order
	err := r.db.Preload("Customer").Order("created_at DESC").Find(&orders).Error
	return orders, err
}

func (r *orderRepo) FindByID(id uuid.UUID) (*model.Order, error) {
	var order model.Order
	err := r.db.Preload("Customer").Preload("Lines").Preload("Lines.Product").
		First(&order, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepo) LockByID(tx *gorm.DB, id uuid.UUID) (*model.Order, error) {
	var order model.Order
	err := tx.Set("gorm:query_option", "FOR UPDATE").
		Preload("Customer").Preload("Lines").
		First(&order, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepo) ReplaceLines(tx *gorm.DB, orderID uuid.UUID, lines []model.OrderLine) error {
	if err := tx.Unscoped().Where("order_id = ?", orderID).Delete(&model.OrderLine{}).Error; err != nil {
		return err
	}
	for i := range lines {
		lines[i].OrderID = orderID
	}
	if len(lines) == 0 {
		return nil
	}
	return tx.Create(&lines).Error
}

func (r *orderRepo) UpdateStatus(tx *gorm.DB, id uuid.UUID, status model.OrderStatus, updatedBy string) error {
	return tx.Model(&model.Order{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_by": updatedBy,
		}).Error
}

func (r *orderRepo) Delete(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&model.OrderLine{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Order{}, "id = ?", id).Error
	})
}

// CountOpen counts orders still in flight (not invoiced, not cancelled).
func (r *orderRepo) CountOpen() (int64, error) {
	var count int64
	err := r.db.Model(&model.Order{}).
		Where("status NOT IN ?", []model.OrderStatus{model.StatusInvoiced, model.StatusCancelled}).
		Count(&count).Error
	return count, err
}
