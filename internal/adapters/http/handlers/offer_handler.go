package handlers

import (
	"driveline/internal/adapters/http/middleware"
	"driveline/internal/adapters/persistence/models"
	"driveline/internal/core/services"
	"driveline/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// OfferHandler handles seller offer endpoints
type OfferHandler struct {
	listingService *services.ListingService
}

// NewOfferHandler creates a new offer handler
func NewOfferHandler(listingService *services.ListingService) *OfferHandler {
	return &OfferHandler{listingService: listingService}
}

// Submit handles POST /api/offers
func (h *OfferHandler) Submit(c *fiber.Ctx) error {
	principal := middleware.GetPrincipal(c)

	var input services.OfferInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	offer, err := h.listingService.SubmitOffer(c.UserContext(), principal.User.ID, &input)
	if err != nil {
		return respondError(c, err)
	}

	return response.Created(c, "Offer submitted", offer.ToResponse())
}

// ListMine handles GET /api/offers
func (h *OfferHandler) ListMine(c *fiber.Ctx) error {
	principal := middleware.GetPrincipal(c)

	offers, err := h.listingService.ListMyOffers(c.UserContext(), principal.User.ID)
	if err != nil {
		return respondError(c, err)
	}

	return response.Success(c, "", offerResponses(offers))
}

// ListAll handles GET /api/admin/offers
func (h *OfferHandler) ListAll(c *fiber.Ctx) error {
	offers, err := h.listingService.ListAllOffers(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}

	return response.Success(c, "", offerResponses(offers))
}

// Update handles PATCH /api/offers/:id
func (h *OfferHandler) Update(c *fiber.Ctx) error {
	principal := middleware.GetPrincipal(c)

	id, err := parseID(c)
	if err != nil {
		return err
	}

	var patch services.OfferPatch
	if err := c.BodyParser(&patch); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	offer, err := h.listingService.UpdateOffer(c.UserContext(), principal.User.ID, id, &patch)
	if err != nil {
		return respondError(c, err)
	}

	return response.Success(c, "Offer updated", offer.ToResponse())
}

// Delete handles DELETE /api/offers/:id
func (h *OfferHandler) Delete(c *fiber.Ctx) error {
	principal := middleware.GetPrincipal(c)

	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.listingService.DeleteOffer(c.UserContext(), principal.User.ID, id); err != nil {
		return respondError(c, err)
	}

	return response.Success(c, "Offer deleted", nil)
}

// Accept handles POST /api/admin/offers/:id/accept
func (h *OfferHandler) Accept(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	vehicle, err := h.listingService.AcceptOffer(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}

	return response.Created(c, "Offer accepted", vehicle.ToResponse())
}

func offerResponses(offers []models.Offer) []*models.OfferResponse {
	responses := make([]*models.OfferResponse, 0, len(offers))
	for i := range offers {
		responses = append(responses, offers[i].ToResponse())
	}
	return responses
}
