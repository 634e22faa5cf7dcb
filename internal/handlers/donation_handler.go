package handlers

import (
	"donation-api/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// DonationHandler handles HTTP requests for donations.
type DonationHandler struct {
	service *services.DonationService
}

// NewDonationHandler creates a new DonationHandler.
func NewDonationHandler(service *services.DonationService) *DonationHandler {
	return &DonationHandler{
		service: service,
	}
}

// RegisterRoutes registers the donation routes behind auth.
func (h *DonationHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	router.Post("/campaigns/:id/donations", auth, h.HandleCreateDonation)
}

// DonationRequest represents the request body for a donation.
type DonationRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// HandleCreateDonation records a donation by the caller.
func (h *DonationHandler) HandleCreateDonation(c *fiber.Ctx) error {
	caller, err := principal(c)
	if err != nil {
		return respondError(c, err)
	}
	campaignID, ok := paramID(c)
	if !ok {
		return badRequest(c, "Invalid campaign ID", nil)
	}

	var req DonationRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body", err)
	}

	donation, err := h.service.CreateDonation(c.UserContext(), caller, campaignID, req.Amount)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(donation)
}
