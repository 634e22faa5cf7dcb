package services

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"donation-api/internal/models"
	"donation-api/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Listing defaults.
const (
	DefaultPageNumber = 1
	DefaultPageSize   = 6
	MaxPageSize       = 100
)

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// ImageStore persists campaign images and returns their public URL.
type ImageStore interface {
	Save(ctx context.Context, key string, data []byte) (string, error)
}

// CampaignInput carries the caller-supplied fields of a new campaign.
type CampaignInput struct {
	Title       string
	Description string
	Goal        decimal.Decimal
	StartDate   time.Time
	EndDate     *time.Time
}

// CampaignUpdate carries the fields a creator may change.
type CampaignUpdate struct {
	Title       string
	Description string
	EndDate     *time.Time
	Goal        decimal.Decimal
}

// ImageUpload is an uploaded campaign image.
type ImageUpload struct {
	Filename string
	Data     []byte
}

// CampaignService handles business logic related to campaigns.
type CampaignService struct {
	repo   repositories.CampaignRepository
	images ImageStore
	events EventPublisher
}

// NewCampaignService creates a new CampaignService.
func NewCampaignService(repo repositories.CampaignRepository, images ImageStore, events EventPublisher) *CampaignService {
	return &CampaignService{
		repo:   repo,
		images: images,
		events: events,
	}
}

// ListCampaigns returns one page of active campaigns, optionally filtered by
// a case-insensitive title substring.
func (s *CampaignService) ListCampaigns(ctx context.Context, pageNumber, pageSize int, search string) (*models.CampaignPage, error) {
	if pageNumber < 1 {
		pageNumber = DefaultPageNumber
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	items, total, err := s.repo.ListActive(ctx, repositories.CampaignQuery{
		PageNumber: pageNumber,
		PageSize:   pageSize,
		Search:     search,
	})
	if err != nil {
		return nil, err
	}

	return &models.CampaignPage{
		Items:      items,
		TotalCount: total,
		PageNumber: pageNumber,
		PageSize:   pageSize,
		TotalPages: int((total + int64(pageSize) - 1) / int64(pageSize)),
	}, nil
}

// ListMyCampaigns returns every active campaign created by the caller.
func (s *CampaignService) ListMyCampaigns(ctx context.Context, caller models.Principal) ([]models.Campaign, error) {
	return s.repo.ListActiveByCreator(ctx, caller.UserID)
}

// GetCampaign returns an active campaign with its donation history.
func (s *CampaignService) GetCampaign(ctx context.Context, id uint) (*models.Campaign, error) {
	campaign, err := s.repo.GetActiveWithDonations(ctx, id)
	if err != nil {
		return nil, notFoundCampaign(id, err)
	}
	return campaign, nil
}

// CreateCampaign creates a campaign owned by the caller. The optional image
// is stored under a freshly generated name.
func (s *CampaignService) CreateCampaign(ctx context.Context, caller models.Principal, input CampaignInput, image *ImageUpload) (*models.Campaign, error) {
	if err := validateCampaignFields(input.Title, input.Goal, input.StartDate, input.EndDate); err != nil {
		return nil, err
	}

	campaign := &models.Campaign{
		Title:        strings.TrimSpace(input.Title),
		Description:  input.Description,
		StartDate:    input.StartDate.UTC(),
		EndDate:      utcPtr(input.EndDate),
		Goal:         models.NewMoney(input.Goal),
		RaisedAmount: models.ZeroMoney(),
		CreatorID:    caller.UserID,
	}

	if image != nil && len(image.Data) > 0 {
		url, err := s.saveImage(ctx, image)
		if err != nil {
			return nil, err
		}
		campaign.ImageURL = &url
	}

	if err := s.repo.Create(ctx, campaign); err != nil {
		return nil, err
	}

	publish(s.events, EventCampaignCreated, map[string]interface{}{
		"campaign_id": campaign.ID,
		"creator_id":  campaign.CreatorID,
		"goal":        campaign.Goal.String(),
	})
	return campaign, nil
}

// UpdateCampaign replaces the mutable fields of a campaign the caller created.
// A campaign owned by someone else is reported exactly like a missing one.
func (s *CampaignService) UpdateCampaign(ctx context.Context, caller models.Principal, id uint, update CampaignUpdate) (*models.Campaign, error) {
	current, err := s.ownedCampaign(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	if err := validateCampaignFields(update.Title, update.Goal, current.StartDate, update.EndDate); err != nil {
		return nil, err
	}

	err = s.repo.UpdateOwned(ctx, id, caller.UserID, repositories.CampaignChanges{
		Title:       strings.TrimSpace(update.Title),
		Description: update.Description,
		EndDate:     utcPtr(update.EndDate),
		Goal:        models.NewMoney(update.Goal),
	})
	if err != nil {
		return nil, notFoundCampaign(id, err)
	}

	updated, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundCampaign(id, err)
	}
	return updated, nil
}

// DeactivateCampaign soft-deletes a campaign the caller created. Recorded
// donations are kept.
func (s *CampaignService) DeactivateCampaign(ctx context.Context, caller models.Principal, id uint) error {
	if err := s.repo.DeactivateOwned(ctx, id, caller.UserID); err != nil {
		return notFoundCampaign(id, err)
	}
	publish(s.events, EventCampaignDeactivated, map[string]interface{}{
		"campaign_id": id,
		"actor_id":    caller.UserID,
	})
	return nil
}

func (s *CampaignService) ownedCampaign(ctx context.Context, caller models.Principal, id uint) (*models.Campaign, error) {
	campaign, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundCampaign(id, err)
	}
	if campaign.IsDeleted || campaign.CreatorID != caller.UserID {
		return nil, notFoundCampaign(id, repositories.ErrRecordNotFound)
	}
	return campaign, nil
}

func (s *CampaignService) saveImage(ctx context.Context, image *ImageUpload) (string, error) {
	ext := strings.ToLower(path.Ext(image.Filename))
	if !allowedImageExts[ext] {
		return "", fmt.Errorf("%w: unsupported image type '%s'", ErrBadRequest, ext)
	}
	if s.images == nil {
		return "", errors.New("image storage is not configured")
	}
	url, err := s.images.Save(ctx, "campaigns/"+uuid.New().String()+ext, image.Data)
	if err != nil {
		return "", fmt.Errorf("failed to store campaign image: %w", err)
	}
	return url, nil
}

func validateCampaignFields(title string, goal decimal.Decimal, start time.Time, end *time.Time) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("%w: title is required", ErrBadRequest)
	}
	if err := checkAmount("goal", goal); err != nil {
		return err
	}
	if start.IsZero() {
		return fmt.Errorf("%w: start date is required", ErrBadRequest)
	}
	if end != nil && end.Before(start) {
		return fmt.Errorf("%w: end date must not be before start date", ErrBadRequest)
	}
	return nil
}

// notFoundCampaign converts a storage miss into ErrNotFound with one fixed
// message, so "not yours" and "does not exist" look the same to the caller.
func notFoundCampaign(id uint, err error) error {
	if errors.Is(err, repositories.ErrRecordNotFound) {
		return fmt.Errorf("%w: campaign %d not found", ErrNotFound, id)
	}
	return err
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
