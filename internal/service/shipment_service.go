package service

import (
	"errors"
	"fmt"

	"go-atelier-erp/internal/model"
	"go-atelier-erp/internal/repository"
	"go-atelier-erp/pkg/validator"

	"github.com/google/uuid"
)

var (
	ErrShipmentNotFound = errors.New("shipment not found")
	ErrShipmentSent     = errors.New("shipment already marked as sent")
)

// ShipmentService tracks outgoing online-sale packages.
type ShipmentService interface {
	CreateShipment(req *ShipmentRequest, actorID string) (*model.Shipment, error)
	UpdateShipment(id uuid.UUID, req *ShipmentRequest, actorID string) (*model.Shipment, error)
	MarkSent(id uuid.UUID, actorID string) (*model.Shipment, error)
	GetShipments() ([]model.Shipment, error)
}

type ShipmentRequest struct {
	CustomerName string `json:"customer_name" validate:"required"`
	TrackingCode string `json:"tracking_code"`
	Contents     string `json:"contents"`
}

type shipmentService struct {
	shipmentRepo repository.ShipmentRepository
}

func NewShipmentService(shipmentRepo repository.ShipmentRepository) ShipmentService {
	return &shipmentService{shipmentRepo: shipmentRepo}
}

func (s *shipmentService) CreateShipment(req *ShipmentRequest, actorID string) (*model.Shipment, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	shipment := &model.Shipment{
		CustomerName: req.CustomerName,
		TrackingCode: req.TrackingCode,
		Contents:     req.Contents,
		Status:       model.ShipmentPending,
	}
	shipment.CreatedBy = actorID
	shipment.UpdatedBy = actorID

	if err := s.shipmentRepo.Create(shipment); err != nil {
		return nil, err
	}
	return shipment, nil
}

func (s *shipmentService) UpdateShipment(id uuid.UUID, req *ShipmentRequest, actorID string) (*model.Shipment, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	shipment, err := s.shipmentRepo.FindByID(id)
	if err != nil {
		return nil, ErrShipmentNotFound
	}

	shipment.CustomerName = req.CustomerName
	shipment.TrackingCode = req.TrackingCode
	shipment.Contents = req.Contents
	shipment.UpdatedBy = actorID

	if err := s.shipmentRepo.Update(shipment); err != nil {
		return nil, err
	}
	return shipment, nil
}

func (s *shipmentService) MarkSent(id uuid.UUID, actorID string) (*model.Shipment, error) {
	shipment, err := s.shipmentRepo.FindByID(id)
	if err != nil {
		return nil, ErrShipmentNotFound
	}
	if shipment.Status == model.ShipmentSent {
		return nil, ErrShipmentSent
	}

	shipment.Status = model.ShipmentSent
	shipment.UpdatedBy = actorID

	if err := s.shipmentRepo.Update(shipment); err != nil {
		return nil, err
	}
	return shipment, nil
}

func (s *shipmentService) GetShipments() ([]model.Shipment, error) {
	return s.shipmentRepo.FindAll()
}
