package handlers

import (
	"driveline/internal/adapters/http/middleware"
	"driveline/internal/adapters/persistence/models"
	"driveline/internal/core/services"
	"driveline/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// VehicleHandler handles inventory endpoints
type VehicleHandler struct {
	listingService *services.ListingService
}

// NewVehicleHandler creates a new vehicle handler
func NewVehicleHandler(listingService *services.ListingService) *VehicleHandler {
	return &VehicleHandler{listingService: listingService}
}

// ListAvailable handles GET /api/vehicles
func (h *VehicleHandler) ListAvailable(c *fiber.Ctx) error {
	vehicles, err := h.listingService.ListAvailableVehicles(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}

	return response.Success(c, "", vehicleResponses(vehicles))
}

// Get handles GET /api/vehicles/:id
func (h *VehicleHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	vehicle, err := h.listingService.GetVehicle(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}

	return response.Success(c, "", vehicle.ToResponse())
}

// Purchase handles POST /api/vehicles/:id/purchase
func (h *VehicleHandler) Purchase(c *fiber.Ctx) error {
	principal := middleware.GetPrincipal(c)

	id, err := parseID(c)
	if err != nil {
		return err
	}

	purchase, err := h.listingService.PurchaseVehicle(c.UserContext(), principal.User.ID, id)
	if err != nil {
		return respondError(c, err)
	}

	return response.Created(c, "Purchase completed", purchase)
}

// ListMyPurchases handles GET /api/purchases
func (h *VehicleHandler) ListMyPurchases(c *fiber.Ctx) error {
	principal := middleware.GetPrincipal(c)

	purchases, err := h.listingService.ListMyPurchases(c.UserContext(), principal.User.ID)
	if err != nil {
		return respondError(c, err)
	}

	return response.Success(c, "", purchases)
}

// ListAll handles GET /api/admin/vehicles
func (h *VehicleHandler) ListAll(c *fiber.Ctx) error {
	vehicles, err := h.listingService.ListAllVehicles(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}

	return response.Success(c, "", vehicleResponses(vehicles))
}

// Add handles POST /api/admin/vehicles
func (h *VehicleHandler) Add(c *fiber.Ctx) error {
	var input services.VehicleInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	vehicle, err := h.listingService.AddVehicle(c.UserContext(), &input)
	if err != nil {
		return respondError(c, err)
	}

	return response.Created(c, "Vehicle added", vehicle.ToResponse())
}

// Update handles PATCH /api/admin/vehicles/:id
func (h *VehicleHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var patch services.VehiclePatch
	if err := c.BodyParser(&patch); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	vehicle, err := h.listingService.UpdateVehicle(c.UserContext(), id, &patch)
	if err != nil {
		return respondError(c, err)
	}

	return response.Success(c, "Vehicle updated", vehicle.ToResponse())
}

// Delete handles DELETE /api/admin/vehicles/:id
func (h *VehicleHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.listingService.DeleteVehicle(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}

	return response.Success(c, "Vehicle deleted", nil)
}

func vehicleResponses(vehicles []models.Vehicle) []*models.VehicleResponse {
	responses := make([]*models.VehicleResponse, 0, len(vehicles))
	for i := range vehicles {
		responses = append(responses, vehicles[i].ToResponse())
	}
	return responses
}
