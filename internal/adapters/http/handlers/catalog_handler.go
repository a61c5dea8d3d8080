package handlers

import (
	"driveline/internal/core/services"
	"driveline/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// CatalogHandler handles make and model reference data endpoints
type CatalogHandler struct {
	catalogService *services.CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

type nameInput struct {
	Name string `json:"name"`
}

// ListMakes handles GET /api/makes
func (h *CatalogHandler) ListMakes(c *fiber.Ctx) error {
	makes, err := h.catalogService.ListMakes(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return response.Success(c, "", makes)
}

// GetMake handles GET /api/makes/:id
func (h *CatalogHandler) GetMake(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	m, err := h.catalogService.GetMake(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return response.Success(c, "", m)
}

// CreateMake handles POST /api/admin/makes
func (h *CatalogHandler) CreateMake(c *fiber.Ctx) error {
	var input nameInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	m, err := h.catalogService.CreateMake(c.UserContext(), input.Name)
	if err != nil {
		return respondError(c, err)
	}
	return response.Created(c, "Make created", m)
}

// UpdateMake handles PUT /api/admin/makes/:id
func (h *CatalogHandler) UpdateMake(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var input nameInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	m, err := h.catalogService.UpdateMake(c.UserContext(), id, input.Name)
	if err != nil {
		return respondError(c, err)
	}
	return response.Success(c, "Make updated", m)
}

// DeleteMake handles DELETE /api/admin/makes/:id
func (h *CatalogHandler) DeleteMake(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.catalogService.DeleteMake(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return response.Success(c, "Make deleted", nil)
}

// ListCarModels handles GET /api/models
func (h *CatalogHandler) ListCarModels(c *fiber.Ctx) error {
	carModels, err := h.catalogService.ListCarModels(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return response.Success(c, "", carModels)
}

// GetCarModel handles GET /api/models/:id
func (h *CatalogHandler) GetCarModel(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	m, err := h.catalogService.GetCarModel(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return response.Success(c, "", m)
}

// CreateCarModel handles POST /api/admin/models
func (h *CatalogHandler) CreateCarModel(c *fiber.Ctx) error {
	var input nameInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	m, err := h.catalogService.CreateCarModel(c.UserContext(), input.Name)
	if err != nil {
		return respondError(c, err)
	}
	return response.Created(c, "Model created", m)
}

// UpdateCarModel handles PUT /api/admin/models/:id
func (h *CatalogHandler) UpdateCarModel(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var input nameInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	m, err := h.catalogService.UpdateCarModel(c.UserContext(), id, input.Name)
	if err != nil {
		return respondError(c, err)
	}
	return response.Success(c, "Model updated", m)
}

// DeleteCarModel handles DELETE /api/admin/models/:id
func (h *CatalogHandler) DeleteCarModel(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.catalogService.DeleteCarModel(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return response.Success(c, "Model deleted", nil)
}
