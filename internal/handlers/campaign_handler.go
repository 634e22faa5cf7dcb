package handlers

import (
	"fmt"
	"io"
	"strings"
	"time"

	"donation-api/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// CampaignHandler handles HTTP requests for campaigns.
type CampaignHandler struct {
	service        *services.CampaignService
	validate       *validator.Validate
	maxUploadBytes int64
}

// NewCampaignHandler creates a new CampaignHandler. Images larger than
// maxUploadBytes are rejected.
func NewCampaignHandler(service *services.CampaignService, maxUploadBytes int64) *CampaignHandler {
	return &CampaignHandler{
		service:        service,
		validate:       validator.New(),
		maxUploadBytes: maxUploadBytes,
	}
}

// RegisterRoutes registers the campaign routes. Listing and detail are
// public; everything else runs behind auth.
func (h *CampaignHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	campaignRoutes := router.Group("/campaigns")
	campaignRoutes.Get("/", h.HandleListCampaigns)
	campaignRoutes.Get("/my-campaigns", auth, h.HandleListMyCampaigns)
	campaignRoutes.Get("/:id", h.HandleGetCampaign)
	campaignRoutes.Post("/", auth, h.HandleCreateCampaign)
	campaignRoutes.Put("/:id", auth, h.HandleUpdateCampaign)
	campaignRoutes.Delete("/:id", auth, h.HandleDeactivateCampaign)
}

// HandleListCampaigns returns a page of active campaigns.
// Query: page_number (default 1), page_size (default 6), search.
func (h *CampaignHandler) HandleListCampaigns(c *fiber.Ctx) error {
	page, err := h.service.ListCampaigns(
		c.UserContext(),
		c.QueryInt("page_number", services.DefaultPageNumber),
		c.QueryInt("page_size", services.DefaultPageSize),
		c.Query("search"),
	)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(page)
}

// HandleListMyCampaigns returns the caller's active campaigns.
func (h *CampaignHandler) HandleListMyCampaigns(c *fiber.Ctx) error {
	caller, err := principal(c)
	if err != nil {
		return respondError(c, err)
	}
	campaigns, err := h.service.ListMyCampaigns(c.UserContext(), caller)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(campaigns)
}

// HandleGetCampaign returns one active campaign with its donations.
func (h *CampaignHandler) HandleGetCampaign(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return badRequest(c, "Invalid campaign ID", nil)
	}
	campaign, err := h.service.GetCampaign(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(campaign)
}

// CampaignRequest is the JSON body for creating a campaign. Multipart
// requests carry the same fields as form values plus an "image" file.
type CampaignRequest struct {
	Title       string          `json:"title" validate:"required,max=100"`
	Description string          `json:"description" validate:"max=5000"`
	Goal        decimal.Decimal `json:"goal"`
	StartDate   time.Time       `json:"start_date"`
	EndDate     *time.Time      `json:"end_date"`
}

// HandleCreateCampaign creates a campaign owned by the caller.
func (h *CampaignHandler) HandleCreateCampaign(c *fiber.Ctx) error {
	caller, err := principal(c)
	if err != nil {
		return respondError(c, err)
	}

	var (
		req   CampaignRequest
		image *services.ImageUpload
	)
	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		if req, err = campaignFromForm(c); err != nil {
			return badRequest(c, "Invalid form data", err)
		}
		if image, err = h.readImage(c); err != nil {
			return badRequest(c, "Invalid image", err)
		}
		if ok, err := validateStruct(c, h.validate, &req); !ok {
			return err
		}
	} else if ok, err := parseAndValidate(c, h.validate, &req); !ok {
		return err
	}

	campaign, err := h.service.CreateCampaign(c.UserContext(), caller, services.CampaignInput{
		Title:       req.Title,
		Description: req.Description,
		Goal:        req.Goal,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	}, image)
	if err != nil {
		return respondError(c, err)
	}

	c.Location(fmt.Sprintf("/api/campaigns/%d", campaign.ID))
	return c.Status(fiber.StatusCreated).JSON(campaign)
}

// CampaignUpdateRequest is the body for updating a campaign.
type CampaignUpdateRequest struct {
	Title       string          `json:"title" validate:"required,max=100"`
	Description string          `json:"description" validate:"max=5000"`
	EndDate     *time.Time      `json:"end_date"`
	Goal        decimal.Decimal `json:"goal"`
}

// HandleUpdateCampaign replaces the mutable fields of the caller's campaign.
func (h *CampaignHandler) HandleUpdateCampaign(c *fiber.Ctx) error {
	caller, err := principal(c)
	if err != nil {
		return respondError(c, err)
	}
	id, ok := paramID(c)
	if !ok {
		return badRequest(c, "Invalid campaign ID", nil)
	}
	var req CampaignUpdateRequest
	if ok, err := parseAndValidate(c, h.validate, &req); !ok {
		return err
	}

	campaign, err := h.service.UpdateCampaign(c.UserContext(), caller, id, services.CampaignUpdate{
		Title:       req.Title,
		Description: req.Description,
		EndDate:     req.EndDate,
		Goal:        req.Goal,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(campaign)
}

// HandleDeactivateCampaign soft-deletes the caller's campaign.
func (h *CampaignHandler) HandleDeactivateCampaign(c *fiber.Ctx) error {
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
		"message": fmt.Sprintf("Campaign %d deactivated successfully", id),
	})
}

func campaignFromForm(c *fiber.Ctx) (CampaignRequest, error) {
	req := CampaignRequest{
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
	}

	if raw := strings.TrimSpace(c.FormValue("goal")); raw != "" {
		goal, err := decimal.NewFromString(raw)
		if err != nil {
			return req, fmt.Errorf("goal: %w", err)
		}
		req.Goal = goal
	}

	if raw := strings.TrimSpace(c.FormValue("start_date")); raw != "" {
		start, err := parseDate(raw)
		if err != nil {
			return req, fmt.Errorf("start_date: %w", err)
		}
		req.StartDate = start
	}

	if raw := strings.TrimSpace(c.FormValue("end_date")); raw != "" {
		end, err := parseDate(raw)
		if err != nil {
			return req, fmt.Errorf("end_date: %w", err)
		}
		req.EndDate = &end
	}
	return req, nil
}

// parseDate accepts RFC 3339 timestamps and plain dates.
func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}

// readImage returns the optional "image" file of a multipart request.
func (h *CampaignHandler) readImage(c *fiber.Ctx) (*services.ImageUpload, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, err
	}
	files := form.File["image"]
	if len(files) == 0 {
		return nil, nil
	}

	fh := files[0]
	if h.maxUploadBytes > 0 && fh.Size > h.maxUploadBytes {
		return nil, fmt.Errorf("image exceeds %d bytes", h.maxUploadBytes)
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	return &services.ImageUpload{Filename: fh.Filename, Data: data}, nil
}
