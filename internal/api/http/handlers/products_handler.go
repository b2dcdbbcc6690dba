package handlers

import (
	"context"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/inventory-service/internal/api/dto"
	"github.com/spec-kit/inventory-service/internal/auth"
	"github.com/spec-kit/inventory-service/internal/domain"
	"github.com/spec-kit/inventory-service/internal/service"
)

// ProductManager is the product service as seen by the handler.
type ProductManager interface {
	List(ctx context.Context) ([]domain.Product, error)
	ListByStore(ctx context.Context, storeID string) ([]domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, actor *domain.Identity, input service.ProductCreateInput) (*domain.Product, error)
	Update(ctx context.Context, actor *domain.Identity, id string, input service.ProductUpdateInput) (*domain.Product, error)
	Delete(ctx context.Context, actor *domain.Identity, id string) error
}

// ProductsHandler exposes product endpoints.
type ProductsHandler struct {
	products ProductManager
}

// NewProductsHandler constructs handler.
func NewProductsHandler(products ProductManager) *ProductsHandler {
	return &ProductsHandler{products: products}
}

// List handles GET /products.
func (h *ProductsHandler) List(c *fiber.Ctx) error {
	products, err := h.products.List(c.UserContext())
	if err != nil {
		return err
	}
	return respondOK(c, dto.NewProductListResponse(products))
}

// ListByStore handles GET /products/store/:storeId.
func (h *ProductsHandler) ListByStore(c *fiber.Ctx) error {
	storeID, err := pathID(c, "storeId", "store")
	if err != nil {
		return err
	}
	products, err := h.products.ListByStore(c.UserContext(), storeID)
	if err != nil {
		return err
	}
	return respondOK(c, dto.NewProductListResponse(products))
}

// Get handles GET /products/:id.
func (h *ProductsHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c, "id", "product")
	if err != nil {
		return err
	}
	product, err := h.products.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return respondOK(c, dto.NewProductResponse(product))
}

// Create handles POST /products.
func (h *ProductsHandler) Create(c *fiber.Ctx) error {
	var req dto.ProductCreateRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	identity, _ := auth.IdentityFromContext(c)

	input := service.ProductCreateInput{
		StoreID: req.StoreID,
		Name:    req.Name,
		Price:   *req.Price,
	}
	if req.Stock != nil {
		input.Stock = *req.Stock
	}

	product, err := h.products.Create(c.UserContext(), identity, input)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, dto.NewProductResponse(product))
}

// Update handles PUT /products/:id.
func (h *ProductsHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c, "id", "product")
	if err != nil {
		return err
	}
	var req dto.ProductUpdateRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	identity, _ := auth.IdentityFromContext(c)

	product, err := h.products.Update(c.UserContext(), identity, id, service.ProductUpdateInput{
		StoreID: req.StoreID,
		Name:    req.Name,
		Price:   req.Price,
		Stock:   req.Stock,
	})
	if err != nil {
		return err
	}
	return respondOK(c, dto.NewProductResponse(product))
}

// Delete handles DELETE /products/:id.
func (h *ProductsHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c, "id", "product")
	if err != nil {
		return err
	}
	identity, _ := auth.IdentityFromContext(c)

	if err := h.products.Delete(c.UserContext(), identity, id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
