package repository

import (
	"go-atelier-erp/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ShipmentRepository interface {
	Create(shipment *model.Shipment) error
	FindAll() ([]model.Shipment, error)
	FindByID(id uuid.UUID) (*model.Shipment, error)
	Update(shipment *model.Shipment) error
}

type shipmentRepo struct {
	db *gorm.DB
}

func NewShipmentRepo(db *gorm.DB) ShipmentRepository {
	return &shipmentRepo{db}
}

func (r *shipmentRepo) Create(shipment *model.Shipment) error {
	return r.db.Create(shipment).Error
}

func (r *shipmentRepo) FindAll() ([]model.Shipment, error) {
	var shipments []model.Shipment
	err := r.db.Order("created_at DESC").Find(&shipments).Error
	return shipments, err
}

func (r *shipmentRepo) FindByID(id uuid.UUID) (*model.Shipment, error) {
	var shipment model.Shipment
	if err := r.db.First(&shipment, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &shipment, nil
}

func (r *shipmentRepo) Update(shipment *model.Shipment) error {
	return r.db.Save(shipment).Error
}
