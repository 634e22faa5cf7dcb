package handlers

import (
	"donation-api/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AccountHandler handles the caller's own account settings.
type AccountHandler struct {
	service  *services.AccountService
	validate *validator.Validate
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(service *services.AccountService) *AccountHandler {
	return &AccountHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the account routes behind auth.
func (h *AccountHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	accountRoutes := router.Group("/account", auth)
	accountRoutes.Post("/change-password", h.HandleChangePassword)
	accountRoutes.Put("/update-profile", h.HandleUpdateProfile)
	accountRoutes.Post("/delete-account", h.HandleDeleteAccount)
}

// ChangePasswordRequest represents the request body for a password change.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6,max=72"`
}

// HandleChangePassword rotates the caller's password.
func (h *AccountHandler) HandleChangePassword(c *fiber.Ctx) error {
	caller, err := principal(c)
	if err != nil {
		return respondError(c, err)
	}
	var req ChangePasswordRequest
	if ok, err := parseAndValidate(c, h.validate, &req); !ok {
		return err
	}

	if err := h.service.ChangePassword(c.UserContext(), caller, req.CurrentPassword, req.NewPassword); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Password changed successfully"})
}

// UpdateProfileRequest represents the request body for an email change.
type UpdateProfileRequest struct {
	NewEmail        string `json:"new_email" validate:"required,email,max=255"`
	CurrentPassword string `json:"current_password" validate:"required"`
}

// HandleUpdateProfile changes the caller's email.
func (h *AccountHandler) HandleUpdateProfile(c *fiber.Ctx) error {
	caller, err := principal(c)
	if err != nil {
		return respondError(c, err)
	}
	var req UpdateProfileRequest
	if ok, err := parseAndValidate(c, h.validate, &req); !ok {
		return err
	}

	if err := h.service.UpdateEmail(c.UserContext(), caller, req.NewEmail, req.CurrentPassword); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Profile updated successfully"})
}

// DeleteAccountRequest represents the request body for account deactivation.
type DeleteAccountRequest struct {
	Password string `json:"password" validate:"required"`
}

// HandleDeleteAccount deactivates the caller's account and their campaigns.
func (h *AccountHandler) HandleDeleteAccount(c *fiber.Ctx) error {
	caller, err := principal(c)
	if err != nil {
		return respondError(c, err)
	}
	var req DeleteAccountRequest
	if ok, err := parseAndValidate(c, h.validate, &req); !ok {
		return err
	}

	if err := h.service.DeactivateAccount(c.UserContext(), caller, req.Password); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Your account and all of your campaigns have been deactivated"})
}
