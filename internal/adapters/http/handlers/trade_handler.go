package handlers

import (
	"driveline/internal/core/services"
	"driveline/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// TradeHandler handles trade ledger administration endpoints
type TradeHandler struct {
	listingService *services.ListingService
}

// NewTradeHandler creates a new trade handler
func NewTradeHandler(listingService *services.ListingService) *TradeHandler {
	return &TradeHandler{listingService: listingService}
}

// ListPurchases handles GET /api/admin/purchases
func (h *TradeHandler) ListPurchases(c *fiber.Ctx) error {
	purchases, err := h.listingService.ListPurchases(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}

	return response.Success(c, "", purchases)
}

// CreatePurchase handles POST /api/admin/purchases
func (h *TradeHandler) CreatePurchase(c *fiber.Ctx) error {
	var input services.LedgerInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	purchase, err := h.listingService.CreatePurchase(c.UserContext(), &input)
	if err != nil {
		return respondError(c, err)
	}

	return response.Created(c, "Purchase record created", purchase)
}

// DeletePurchase handles DELETE /api/admin/purchases/:id
func (h *TradeHandler) DeletePurchase(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.listingService.DeletePurchase(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}

	return response.Success(c, "Purchase record deleted", nil)
}

// ListSales handles GET /api/admin/sales
func (h *TradeHandler) ListSales(c *fiber.Ctx) error {
	sales, err := h.listingService.ListSales(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}

	return response.Success(c, "", sales)
}

// CreateSale handles POST /api/admin/sales
func (h *TradeHandler) CreateSale(c *fiber.Ctx) error {
	var input services.LedgerInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	sale, err := h.listingService.CreateSale(c.UserContext(), &input)
	if err != nil {
		return respondError(c, err)
	}

	return response.Created(c, "Sale record created", sale)
}

// DeleteSale handles DELETE /api/admin/sales/:id
func (h *TradeHandler) DeleteSale(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.listingService.DeleteSale(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}

	return response.Success(c, "Sale record deleted", nil)
}
