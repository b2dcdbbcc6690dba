package handlers

import (
	"context"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/spec-kit/inventory-service/internal/api/dto"
	"github.com/spec-kit/inventory-service/internal/auth"
	"github.com/spec-kit/inventory-service/internal/domain"
	"github.com/spec-kit/inventory-service/internal/service"
	apperrors "github.com/spec-kit/inventory-service/pkg/util"
)

// StoreManager is the store service as seen by the handler.
type StoreManager interface {
	List(ctx context.Context, ownerID string) ([]domain.Store, error)
	Get(ctx context.Context, id string) (*domain.Store, error)
	Create(ctx context.Context, actor *domain.Identity, input service.StoreCreateInput) (*domain.Store, error)
	Update(ctx context.Context, actor *domain.Identity, id string, input service.StoreUpdateInput) (*domain.Store, error)
	Delete(ctx context.Context, actor *domain.Identity, id string) error
}

// StoresHandler exposes store endpoints.
type StoresHandler struct {
	stores StoreManager
}

// NewStoresHandler constructs handler.
func NewStoresHandler(stores StoreManager) *StoresHandler {
	return &StoresHandler{stores: stores}
}

// List handles GET /stores?owner_id=.
func (h *StoresHandler) List(c *fiber.Ctx) error {
	ownerID := c.Query("owner_id")
	if ownerID != "" {
		parsed, err := uuid.Parse(ownerID)
		if err != nil {
			return apperrors.NewValidationError("validation failed", map[string]any{"owner_id": "must be a valid UUID"})
		}
		ownerID = parsed.String()
	}

	stores, err := h.stores.List(c.UserContext(), ownerID)
	if err != nil {
		return err
	}
	return respondOK(c, dto.NewStoreListResponse(stores))
}

// Get handles GET /stores/:id.
func (h *StoresHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c, "id", "store")
	if err != nil {
		return err
	}
	store, err := h.stores.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return respondOK(c, dto.NewStoreResponse(store))
}

// Create handles POST /stores.
func (h *StoresHandler) Create(c *fiber.Ctx) error {
	var req dto.StoreCreateRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	identity, _ := auth.IdentityFromContext(c)

	store, err := h.stores.Create(c.UserContext(), identity, service.StoreCreateInput{
		Name:      req.Name,
		Address:   req.Address,
		OwnerID:   req.OwnerID,
		ManagerID: req.ManagerID,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, dto.NewStoreResponse(store))
}

// Update handles PUT /stores/:id.
func (h *StoresHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c, "id", "store")
	if err != nil {
		return err
	}
	var req dto.StoreUpdateRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	identity, _ := auth.IdentityFromContext(c)

	store, err := h.stores.Update(c.UserContext(), identity, id, service.StoreUpdateInput{
		Name:         req.Name,
		Address:      req.Address,
		ManagerID:    req.ManagerID,
		ClearManager: req.ClearManager,
	})
	if err != nil {
		return err
	}
	return respondOK(c, dto.NewStoreResponse(store))
}

// Delete handles DELETE /stores/:id.
func (h *StoresHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c, "id", "store")
	if err != nil {
		return err
	}
	identity, _ := auth.IdentityFromContext(c)

	if err := h.stores.Delete(c.UserContext(), identity, id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
