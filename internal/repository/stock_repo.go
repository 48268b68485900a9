package repository

import (
	"errors"

	"go-atelier-erp/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrInsufficientStock = errors.New("insufficient stock remaining")

type StockRepository interface {
	DefaultLocation() (*model.StockLocation, error)
	SeedDefaultLocation() error
	FindAllBalances() ([]model.StockBalance, error)

	// LockBalance reads the balance row for a product at the default location
	// with FOR UPDATE; ok=false means no row exists yet.
	LockBalance(tx *gorm.DB, productID uuid.UUID) (*model.StockBalance, bool, error)
	CreateBalance(tx *gorm.DB, balance *model.StockBalance) error
	SetQuantity(tx *gorm.DB, balanceID uuid.UUID, quantity int, updatedBy string) error

	// DecrementConditional atomically subtracts qty from the product's balance
	// at the default location and fails with ErrInsufficientStock when not
	// enough is on hand.
	DecrementConditional(tx *gorm.DB, productID uuid.UUID, qty int) (*model.StockBalance, error)

	CreateMovement(tx *gorm.DB, movement *model.StockMovement) error
	FindMovements(productID *uuid.UUID, limit int) ([]model.StockMovement, error)
}

type stockRepo struct {
	db *gorm.DB
}

func NewStockRepo(db *gorm.DB) StockRepository {
	return &stockRepo{db}
}

func (r *stockRepo) DefaultLocation() (*model.StockLocation, error) {
	var loc model.StockLocation
	if err := r.db.Where("is_default = ?", true).First(&loc).Error; err != nil {
		return nil, err
	}
	return &loc, nil
}

func (r *stockRepo) SeedDefaultLocation() error {
	var existing model.StockLocation
	err := r.db.Where("is_default = ?", true).First(&existing).Error
	if err == gorm.ErrRecordNotFound {
		loc := model.StockLocation{Name: model.DefaultLocationName, IsDefault: true}
		loc.CreatedBy = "system"
		loc.UpdatedBy = "system"
		return r.db.Create(&loc).Error
	}
	return err
}

func (r *stockRepo) FindAllBalances() ([]model.StockBalance, error) {
	var balances []model.StockBalance
	err := r.db.Preload("Product").Preload("Location").
		Joins("JOIN products ON products.id = stock_balances.product_id").
		Order("products.name ASC").
		Find(&balances).Error
	return balances, err
}

// defaultLocationID is the subquery used to scope balance rows to the
// default location, so a product stocked at several locations only ever has
// its default row touched.
func defaultLocationID(tx *gorm.DB) *gorm.DB {
	return tx.Session(&gorm.Session{NewDB: true}).
		Model(&model.StockLocation{}).
		Select("id").
		Where("is_default = ?", true)
}

func (r *stockRepo) LockBalance(tx *gorm.DB, productID uuid.UUID) (*model.StockBalance, bool, error) {
	var balance model.StockBalance
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("product_id = ? AND location_id = (?)", productID, defaultLocationID(tx)).
		First(&balance).Error
	if err == gorm.ErrRecordNotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return &balance, true, nil
}

func (r *stockRepo) CreateBalance(tx *gorm.DB, balance *model.StockBalance) error {
	return tx.Create(balance).Error
}

func (r *stockRepo) SetQuantity(tx *gorm.DB, balanceID uuid.UUID, quantity int, updatedBy string) error {
	return tx.Model(&model.StockBalance{}).
		Where("id = ?", balanceID).
		Updates(map[string]interface{}{
			"quantity":   quantity,
			"updated_by": updatedBy,
		}).Error
}

func (r *stockRepo) DecrementConditional(tx *gorm.DB, productID uuid.UUID, qty int) (*model.StockBalance, error) {
	res := tx.Model(&model.StockBalance{}).
		Where("product_id = ? AND location_id = (?) AND quantity >= ?", productID, defaultLocationID(tx), qty).
		Update("quantity", gorm.Expr("quantity - ?", qty))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrInsufficientStock
	}

	var balance model.StockBalance
	if err := tx.Where("product_id = ? AND location_id = (?)", productID, defaultLocationID(tx)).First(&balance).Error; err != nil {
		return nil, err
	}
	return &balance, nil
}

func (r *stockRepo) CreateMovement(tx *gorm.DB, movement *model.StockMovement) error {
	return tx.Create(movement).Error
}

func (r *stockRepo) FindMovements(productID *uuid.UUID, limit int) ([]model.StockMovement, error) {
	var movements []model.StockMovement
	q := r.db.Preload("Product").Order("created_at DESC").Limit(limit)
	if productID != nil {
		q = q.Where("product_id = ?", *productID)
	}
	err := q.Find(&movements).Error
	return movements, err
}
