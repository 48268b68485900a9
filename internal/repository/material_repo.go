package repository

import (
	"go-atelier-erp/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MaterialRepository interface {
	Create(material *model.RawMaterial) error
	FindAll() ([]model.RawMaterial, error)
	FindByID(id uuid.UUID) (*model.RawMaterial, error)
	Update(material *model.RawMaterial) error
	Delete(id uuid.UUID) error
	InUse(id uuid.UUID) (bool, error)
	FindBelowMinimum() ([]model.RawMaterial, error)
}

type materialRepo struct {
	db *gorm.DB
}

func NewMaterialRepo(db *gorm.DB) MaterialRepository {
	return &materialRepo{db}
}

func (r *materialRepo) Create(material *model.RawMaterial) error {
	return r.db.Create(material).Error
}

func (r *materialRepo) FindAll() ([]model.RawMaterial, error) {
	var materials []model.RawMaterial
	err := r.db.Order("name ASC").Find(&materials).Error
	return materials, err
}

func (r *materialRepo) FindByID(id uuid.UUID) (*model.RawMaterial, error) {
	var material model.RawMaterial
	if err := r.db.First(&material, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &material, nil
}

func (r *materialRepo) Update(material *model.RawMaterial) error {
	return r.db.Save(material).Error
}

func (r *materialRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.RawMaterial{}, "id = ?", id).Error
}

// InUse reports whether any bill of materials still references the material.
func (r *materialRepo) InUse(id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&model.BOMLine{}).Where("material_id = ?", id).Count(&count).Error
	return count > 0, err
}

// FindBelowMinimum returns materials at or under their minimum stock, the
// input for the purchase suggestion report.
func (r *materialRepo) FindBelowMinimum() ([]model.RawMaterial, error) {
	var materials []model.RawMaterial
	err := r.db.Where("current_stock <= minimum_stock").Order("name ASC").Find(&materials).Error
	return materials, err
}

type BOMRepository interface {
	FindByProduct(productID uuid.UUID) ([]model.BOMLine, error)
	Create(line *model.BOMLine) error
	Delete(id uuid.UUID) error
	FindByID(id uuid.UUID) (*model.BOMLine, error)
}

type bomRepo struct {
	db *gorm.DB
}

func NewBOMRepo(db *gorm.DB) BOMRepository {
	return &bomRepo{db}
}

func (r *bomRepo) FindByProduct(productID uuid.UUID) ([]model.BOMLine, error) {
	var lines []model.BOMLine
	err := r.db.Preload("Material").Where("product_id = ?", productID).Order("created_at ASC").Find(&lines).Error
	return lines, err
}

func (r *bomRepo) Create(line *model.BOMLine) error {
	return r.db.Create(line).Error
}

func (r *bomRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.BOMLine{}, "id = ?", id).Error
}

func (r *bomRepo) FindByID(id uuid.UUID) (*model.BOMLine, error) {
	var line model.BOMLine
	if err := r.db.First(&line, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &line, nil
}
