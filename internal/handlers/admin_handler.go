package handlers

import (
	"fmt"

	"donation-api/internal/middleware"
	"donation-api/internal/services"

	"github.com/gofiber/fiber/v2"
)

// AdminHandler handles privileged HTTP requests.
type AdminHandler struct {
	service *services.AdminService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(service *services.AdminService) *AdminHandler {
	return &AdminHandler{
		service: service,
	}
}

// RegisterRoutes registers the admin routes behind auth and the admin role check.
func (h *AdminHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	adminRoutes := router.Group("/admin", auth, middleware.AdminOnly())
	adminRoutes.Get("/users", h.HandleListUsers)
	adminRoutes.Delete("/users/:id", h.HandleDeactivateUser)
	adminRoutes.Get("/campaigns", h.HandleListCampaigns)
	adminRoutes.Delete("/campaigns/:id", h.HandleDeactivateCampaign)
}

// HandleListUsers returns every user.
func (h *AdminHandler) HandleListUsers(c *fiber.Ctx) error {
	caller, err := principal(c)
	if err != nil {
		return respondError(c, err)
	}
	users, err := h.service.ListUsers(c.UserContext(), caller)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(users)
}

// HandleDeactivateUser deactivates a user and their campaigns.
func (h *AdminHandler) HandleDeactivateUser(c *fiber.Ctx) error {
	caller, err := principal(c)
	if err != nil {
		return respondError(c, err)
	}
	id, ok := paramID(c)
	if !ok {
		return badRequest(c, "Invalid user ID", nil)
	}
	if err := h.service.DeactivateUser(c.UserContext(), caller, id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleListCampaigns returns every campaign with its creator.
func (h *AdminHandler) HandleListCampaigns(c *fiber.Ctx) error {
	caller, err := principal(c)
	if err != nil {
		return respondError(c, err)
	}
	campaigns, err := h.service.ListAllCampaigns(c.UserContext(), caller)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(campaigns)
}

// HandleDeactivateCampaign deactivates any campaign.
func (h *AdminHandler) HandleDeactivateCampaign(c *fiber.Ctx) error {
	caller, err := principal(c)
	if err != nil {
		return respondError(c, err)
	}
	id, ok := paramID(c)
	if !ok {
		return badRequest(c, "Invalid campaign ID", nil)
	}
	if err := h.service.DeactivateCampaign(c.UserContext(), caller, id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Campaign %d deactivated by administrator", id),
	})
}
