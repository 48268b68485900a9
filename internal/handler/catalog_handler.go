package handler

import (
	"strconv"

	"go-atelier-erp/internal/service"

	"github.com/gofiber/fiber/v2"
)

type CatalogHandler struct {
	catalogService service.CatalogService
}

func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// GetProducts lists products, optionally filtered by name or SKU
// GET /api/v1/products?search=
func (h *CatalogHandler) GetProducts(c *fiber.Ctx) error {
	products, err := h.catalogService.GetProducts(c.Query("search"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch products"})
	}
	return c.JSON(products)
}

// GetProduct returns one product with category and balances
// GET /api/v1/products/:id
func (h *CatalogHandler) GetProduct(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	product, err := h.catalogService.GetProductByID(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(product)
}

// CreateProduct creates a product
// POST /api/v1/products
func (h *CatalogHandler) CreateProduct(c *fiber.Ctx) error {
	var req service.ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	product, err := h.catalogService.CreateProduct(&req, actorID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(product)
}

// UpdateProduct updates a product
// PUT /api/v1/products/:id
func (h *CatalogHandler) UpdateProduct(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	var req service.ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	product, err := h.catalogService.UpdateProduct(id, &req, actorID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(product)
}

// DeleteProduct removes a product
// DELETE /api/v1/products/:id
func (h *CatalogHandler) DeleteProduct(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	if err := h.catalogService.DeleteProduct(id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Product deleted successfully"})
}

// GetCategories lists categories
// GET /api/v1/categories
func (h *CatalogHandler) GetCategories(c *fiber.Ctx) error {
	categories, err := h.catalogService.GetCategories()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch categories"})
	}
	return c.JSON(categories)
}

// CreateCategory creates a category
// POST /api/v1/categories
func (h *CatalogHandler) CreateCategory(c *fiber.Ctx) error {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	category, err := h.catalogService.CreateCategory(req.Name)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(category)
}

// DeleteCategory removes a category
// DELETE /api/v1/categories/:id
func (h *CatalogHandler) DeleteCategory(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid category ID"})
	}

	if err := h.catalogService.DeleteCategory(uint(id)); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Category deleted successfully"})
}

// GetMaterials lists raw materials
// GET /api/v1/materials
func (h *CatalogHandler) GetMaterials(c *fiber.Ctx) error {
	materials, err := h.catalogService.GetMaterials()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch materials"})
	}
	return c.JSON(materials)
}

// CreateMaterial creates a raw material
// POST /api/v1/materials
func (h *CatalogHandler) CreateMaterial(c *fiber.Ctx) error {
	var req service.MaterialRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	material, err := h.catalogService.CreateMaterial(&req, actorID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(material)
}

// UpdateMaterial updates a raw material; a new average cost re-rolls the cost
// price of every product whose BOM uses it
// PUT /api/v1/materials/:id
func (h *CatalogHandler) UpdateMaterial(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid material ID"})
	}

	var req service.MaterialRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	material, err := h.catalogService.UpdateMaterial(id, &req, actorID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(material)
}

// DeleteMaterial removes a material unless a BOM still references it
// DELETE /api/v1/materials/:id
func (h *CatalogHandler) DeleteMaterial(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid material ID"})
	}

	if err := h.catalogService.DeleteMaterial(id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Material deleted successfully"})
}

// GetBOM lists a product's bill of materials
// GET /api/v1/products/:id/bom
func (h *CatalogHandler) GetBOM(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	lines, err := h.catalogService.GetBOM(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(lines)
}

// AddBOMLine appends a line to a product's bill of materials
// POST /api/v1/bom
func (h *CatalogHandler) AddBOMLine(c *fiber.Ctx) error {
	var req service.BOMLineRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	line, err := h.catalogService.AddBOMLine(&req, actorID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(line)
}

// RemoveBOMLine deletes a line from a bill of materials
// DELETE /api/v1/bom/:id
func (h *CatalogHandler) RemoveBOMLine(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid BOM line ID"})
	}

	if err := h.catalogService.RemoveBOMLine(id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "BOM line removed successfully"})
}
