package service

import (
	"testing"

	"go-atelier-erp/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// catalogProductRepo keeps products in memory, keyed by id and by SKU.
type catalogProductRepo struct {
	byID  map[uuid.UUID]*model.Product
	bySKU map[string]*model.Product
}

func newCatalogProductRepo(existing ...*model.Product) *catalogProductRepo {
	r := &catalogProductRepo{
		byID:  map[uuid.UUID]*model.Product{},
		bySKU: map[string]*model.Product{},
	}
	for _, p := range existing {
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
		r.byID[p.ID] = p
		r.bySKU[p.SKU] = p
	}
	return r
}

func (r *catalogProductRepo) Create(product *model.Product) error {
	product.ID = uuid.New()
	r.byID[product.ID] = product
	r.bySKU[product.SKU] = product
	return nil
}

func (r *catalogProductRepo) FindAll(search string) ([]model.Product, error) { return nil, nil }

func (r *catalogProductRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	return p, nil
}

func (r *catalogProductRepo) FindBySKU(sku string) (*model.Product, error) {
	p, ok := r.bySKU[sku]
	if !ok {
		return nil, ErrProductNotFound
	}
	return p, nil
}

func (r *catalogProductRepo) Update(product *model.Product) error {
	r.byID[product.ID] = product
	r.bySKU[product.SKU] = product
	return nil
}

func (r *catalogProductRepo) Delete(id uuid.UUID) error { return nil }

func (r *catalogProductRepo) UpdateCostPrice(id uuid.UUID, cost float64) error { return nil }

func (r *catalogProductRepo) FindLowStock(threshold int) ([]model.Product, error) { return nil, nil }

func TestProductSKU(t *testing.T) {
	t.Run("create stores the sku uppercased", func(t *testing.T) {
		repo := newCatalogProductRepo()
		svc := NewCatalogService(repo, nil, nil, nil)

		created, err := svc.CreateProduct(&ProductRequest{SKU: "bolsa-01", Name: "Bolsa Tote", SalePrice: 250}, "tester")
		assert.NoError(t, err)
		assert.Equal(t, "BOLSA-01", created.SKU)
	})

	t.Run("duplicate check ignores casing", func(t *testing.T) {
		existing := &model.Product{SKU: "BOLSA-01", Name: "Bolsa Tote"}
		repo := newCatalogProductRepo(existing)
		svc := NewCatalogService(repo, nil, nil, nil)

		_, err := svc.CreateProduct(&ProductRequest{SKU: "bolsa-01", Name: "Outra Bolsa", SalePrice: 100}, "tester")
		assert.ErrorIs(t, err, ErrSKUExists)
	})

	t.Run("update uppercases a changed sku", func(t *testing.T) {
		existing := &model.Product{SKU: "CINTO-01", Name: "Cinto"}
		repo := newCatalogProductRepo(existing)
		svc := NewCatalogService(repo, nil, nil, nil)

		updated, err := svc.UpdateProduct(existing.ID, &ProductRequest{SKU: "cinto-02", Name: "Cinto", SalePrice: 80}, "tester")
		assert.NoError(t, err)
		assert.Equal(t, "CINTO-02", updated.SKU)
	})
}
