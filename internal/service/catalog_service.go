package service

import (
	"errors"
	"fmt"
	"strings"

	"go-atelier-erp/internal/model"
	"go-atelier-erp/internal/pricing"
	"go-atelier-erp/internal/repository"
	"go-atelier-erp/pkg/validator"

	"github.com/google/uuid"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrSKUExists        = errors.New("sku already exists")
	ErrMaterialNotFound = errors.New("material not found")
	ErrMaterialInUse    = errors.New("material is referenced by a bill of materials")
	ErrBOMLineNotFound  = errors.New("bom line not found")
)

// CatalogService manages products, categories, raw materials and each
// product's bill of materials. Changing a BOM recomputes the product's
// cost price from the summed material costs.
type CatalogService interface {
	CreateProduct(req *ProductRequest, actorID string) (*model.Product, error)
	UpdateProduct(id uuid.UUID, req *ProductRequest, actorID string) (*model.Product, error)
	DeleteProduct(id uuid.UUID) error
	GetProducts(search string) ([]model.Product, error)
	GetProductByID(id uuid.UUID) (*model.Product, error)

	GetCategories() ([]model.Category, error)
	CreateCategory(name string) (*model.Category, error)
	DeleteCategory(id uint) error

	CreateMaterial(req *MaterialRequest, actorID string) (*model.RawMaterial, error)
	UpdateMaterial(id uuid.UUID, req *MaterialRequest, actorID string) (*model.RawMaterial, error)
	DeleteMaterial(id uuid.UUID) error
	GetMaterials() ([]model.RawMaterial, error)

	GetBOM(productID uuid.UUID) ([]model.BOMLine, error)
	AddBOMLine(req *BOMLineRequest, actorID string) (*model.BOMLine, error)
	RemoveBOMLine(lineID uuid.UUID) error
}

type ProductRequest struct {
	SKU        string  `json:"sku" validate:"required"`
	Name       string  `json:"name" validate:"required"`
	CategoryID *uint   `json:"category_id"`
	SalePrice  float64 `json:"sale_price" validate:"gte=0"`
}

type MaterialRequest struct {
	Name         string  `json:"name" validate:"required"`
	Unit         string  `json:"unit" validate:"required,oneof=un m m2 kg l"`
	CurrentStock float64 `json:"current_stock" validate:"gte=0"`
	MinimumStock float64 `json:"minimum_stock" validate:"gte=0"`
	AverageCost  float64 `json:"average_cost" validate:"gte=0"`
}

type BOMLineRequest struct {
	ProductID  uuid.UUID `json:"product_id" validate:"uuid_required"`
	MaterialID uuid.UUID `json:"material_id" validate:"uuid_required"`
	Quantity   float64   `json:"quantity" validate:"required,gt=0"`
}

type catalogService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	materialRepo repository.MaterialRepository
	bomRepo      repository.BOMRepository
}

func NewCatalogService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	materialRepo repository.MaterialRepository,
	bomRepo repository.BOMRepository,
) CatalogService {
	return &catalogService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		materialRepo: materialRepo,
		bomRepo:      bomRepo,
	}
}

func (s *catalogService) CreateProduct(req *ProductRequest, actorID string) (*model.Product, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	// SKUs are stored uppercased so the uniqueness check cannot be dodged
	// by casing.
	sku := strings.ToUpper(req.SKU)
	if existing, _ := s.productRepo.FindBySKU(sku); existing != nil {
		return nil, ErrSKUExists
	}

	product := &model.Product{
		SKU:        sku,
		Name:       req.Name,
		CategoryID: req.CategoryID,
		SalePrice:  pricing.Round2(req.SalePrice),
	}
	product.CreatedBy = actorID
	product.UpdatedBy = actorID

	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}
	return s.productRepo.FindByID(product.ID)
}

func (s *catalogService) UpdateProduct(id uuid.UUID, req *ProductRequest, actorID string) (*model.Product, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	product, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, ErrProductNotFound
	}

	sku := strings.ToUpper(req.SKU)
	if sku != product.SKU {
		if existing, _ := s.productRepo.FindBySKU(sku); existing != nil {
			return nil, ErrSKUExists
		}
	}

	product.SKU = sku
	product.Name = req.Name
	product.CategoryID = req.CategoryID
	product.SalePrice = pricing.Round2(req.SalePrice)
	product.UpdatedBy = actorID

	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	return s.productRepo.FindByID(id)
}

func (s *catalogService) DeleteProduct(id uuid.UUID) error {
	if _, err := s.productRepo.FindByID(id); err != nil {
		return ErrProductNotFound
	}
	return s.productRepo.Delete(id)
}

func (s *catalogService) GetProducts(search string) ([]model.Product, error) {
	return s.productRepo.FindAll(search)
}

func (s *catalogService) GetProductByID(id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

func (s *catalogService) GetCategories() ([]model.Category, error) {
	return s.categoryRepo.FindAll()
}

func (s *catalogService) CreateCategory(name string) (*model.Category, error) {
	if name == "" {
		return nil, errors.New("category name is required")
	}
	category := &model.Category{Name: name}
	if err := s.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *catalogService) DeleteCategory(id uint) error {
	return s.categoryRepo.Delete(id)
}

func (s *catalogService) CreateMaterial(req *MaterialRequest, actorID string) (*model.RawMaterial, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	material := &model.RawMaterial{
		Name:         req.Name,
		Unit:         req.Unit,
		CurrentStock: req.CurrentStock,
		MinimumStock: req.MinimumStock,
		AverageCost:  req.AverageCost,
	}
	material.CreatedBy = actorID
	material.UpdatedBy = actorID

	if err := s.materialRepo.Create(material); err != nil {
		return nil, err
	}
	return material, nil
}

func (s *catalogService) UpdateMaterial(id uuid.UUID, req *MaterialRequest, actorID string) (*model.RawMaterial, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	material, err := s.materialRepo.FindByID(id)
	if err != nil {
		return nil, ErrMaterialNotFound
	}

	costChanged := material.AverageCost != req.AverageCost

	material.Name = req.Name
	material.Unit = req.Unit
	material.CurrentStock = req.CurrentStock
	material.MinimumStock = req.MinimumStock
	material.AverageCost = req.AverageCost
	material.UpdatedBy = actorID

	if err := s.materialRepo.Update(material); err != nil {
		return nil, err
	}

	// A new average cost changes every product that uses this material.
	if costChanged {
		if err := s.recomputeCostsForMaterial(id); err != nil {
			return nil, err
		}
	}

	return material, nil
}

func (s *catalogService) DeleteMaterial(id uuid.UUID) error {
	if _, err := s.materialRepo.FindByID(id); err != nil {
		return ErrMaterialNotFound
	}
	inUse, err := s.materialRepo.InUse(id)
	if err != nil {
		return err
	}
	if inUse {
		return ErrMaterialInUse
	}
	return s.materialRepo.Delete(id)
}

func (s *catalogService) GetMaterials() ([]model.RawMaterial, error) {
	return s.materialRepo.FindAll()
}

func (s *catalogService) GetBOM(productID uuid.UUID) ([]model.BOMLine, error) {
	if _, err := s.productRepo.FindByID(productID); err != nil {
		return nil, ErrProductNotFound
	}
	return s.bomRepo.FindByProduct(productID)
}

func (s *catalogService) AddBOMLine(req *BOMLineRequest, actorID string) (*model.BOMLine, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	if _, err := s.productRepo.FindByID(req.ProductID); err != nil {
		return nil, ErrProductNotFound
	}
	if _, err := s.materialRepo.FindByID(req.MaterialID); err != nil {
		return nil, ErrMaterialNotFound
	}

	line := &model.BOMLine{
		ProductID:  req.ProductID,
		MaterialID: req.MaterialID,
		Quantity:   req.Quantity,
	}
	line.CreatedBy = actorID
	line.UpdatedBy = actorID

	if err := s.bomRepo.Create(line); err != nil {
		return nil, err
	}

	if err := s.recomputeCost(req.ProductID); err != nil {
		return nil, err
	}

	lines, err := s.bomRepo.FindByProduct(req.ProductID)
	if err != nil {
		return line, nil
	}
	for i := range lines {
		if lines[i].ID == line.ID {
			return &lines[i], nil
		}
	}
	return line, nil
}

func (s *catalogService) RemoveBOMLine(lineID uuid.UUID) error {
	line, err := s.bomRepo.FindByID(lineID)
	if err != nil {
		return ErrBOMLineNotFound
	}
	if err := s.bomRepo.Delete(lineID); err != nil {
		return err
	}
	return s.recomputeCost(line.ProductID)
}

// recomputeCost rolls the bill of materials up into the product's cost price.
func (s *catalogService) recomputeCost(productID uuid.UUID) error {
	lines, err := s.bomRepo.FindByProduct(productID)
	if err != nil {
		return err
	}
	cost := 0.0
	for i := range lines {
		cost += lines[i].Cost()
	}
	return s.productRepo.UpdateCostPrice(productID, pricing.Round2(cost))
}

// recomputeCostsForMaterial refreshes every product whose BOM references the
// material, used after an average cost change.
func (s *catalogService) recomputeCostsForMaterial(materialID uuid.UUID) error {
	products, err := s.productRepo.FindAll("")
	if err != nil {
		return err
	}
	for i := range products {
		lines, err := s.bomRepo.FindByProduct(products[i].ID)
		if err != nil {
			return err
		}
		touched := false
		cost := 0.0
		for j := range lines {
			cost += lines[j].Cost()
			if lines[j].MaterialID == materialID {
				touched = true
			}
		}
		if touched {
			if err := s.productRepo.UpdateCostPrice(products[i].ID, pricing.Round2(cost)); err != nil {
				return err
			}
		}
	}
	return nil
}
