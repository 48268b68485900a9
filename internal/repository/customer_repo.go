package repository

import (
	"go-atelier-erp/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CustomerRepository interface {
	Create(customer *model.Customer) error
	FindAll() ([]model.Customer, error)
	FindByID(id uuid.UUID) (*model.Customer, error)
	Update(customer *model.Customer) error
	Delete(id uuid.UUID) error
	FindOrders(customerID uuid.UUID) ([]model.Order, error)
	FindSalesByName(companyName string) ([]model.Sale, error)
}

type customerRepo struct {
	db *gorm.DB
}

func NewCustomerRepo(db *gorm.DB) CustomerRepository {
	return &customerRepo{db}
}

func (r *customerRepo) Create(customer *model.Customer) error {
	return r.db.Create(customer).Error
}

func (r *customerRepo) FindAll() ([]model.Customer, error) {
	var customers []model.Customer
	err := r.db.Order("company_name ASC").Find(&customers).Error
	return customers, err
}

func (r *customerRepo) FindByID(id uuid.UUID) (*model.Customer, error) {
	var customer model.Customer
	if err := r.db.First(&customer, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepo) Update(customer *model.Customer) error {
	return r.db.Save(customer).Error
}

// Delete removes the customer and cascades to their orders and order lines.
func (r *customerRepo) Delete(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var orderIDs []uuid.UUID
		if err := tx.Model(&model.Order{}).Where("customer_id = ?", id).Pluck("id", &orderIDs).Error; err != nil {
			return err
		}
		if len(orderIDs) > 0 {
			if err := tx.Where("order_id IN ?", orderIDs).Delete(&model.OrderLine{}).Error; err != nil {
				return err
			}
			if err := tx.Where("customer_id = ?", id).Delete(&model.Order{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&model.Customer{}, "id = ?", id).Error
	})
}

func (r *customerRepo) FindOrders(customerID uuid.UUID) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.Where("customer_id = ?", customerID).Order("created_at DESC").Find(&orders).Error
	return orders, err
}

// FindSalesByName matches POS sales recorded against the customer's company
// name (POS sales carry only a name snapshot, not a customer reference).
func (r *customerRepo) FindSalesByName(companyName string) ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.Where("customer_name ILIKE ?", "%"+companyName+"%").
		Order("created_at DESC").
		Find(&sales).Error
	return sales, err
}
