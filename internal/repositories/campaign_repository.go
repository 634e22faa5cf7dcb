package repositories

import (
	"context"
	"time"

	"donation-api/internal/models"
)

// CampaignQuery filters and pages the public campaign listing.
type CampaignQuery struct {
	PageNumber int
	PageSize   int
	Search     string
}

// CampaignChanges holds the fields a creator may change on a campaign.
type CampaignChanges struct {
	Title       string
	Description string
	EndDate     *time.Time
	Goal        models.Money
}

// CampaignRepository defines the interface for campaign data access.
type CampaignRepository interface {
	Create(ctx context.Context, campaign *models.Campaign) error
	GetByID(ctx context.Context, id uint) (*models.Campaign, error)
	GetActiveWithDonations(ctx context.Context, id uint) (*models.Campaign, error)
	ListActive(ctx context.Context, query CampaignQuery) ([]models.Campaign, int64, error)
	ListActiveByCreator(ctx context.Context, creatorID uint) ([]models.Campaign, error)
	ListAll(ctx context.Context) ([]models.Campaign, error)
	// UpdateOwned and DeactivateOwned only touch an active campaign created by
	// ownerID and return ErrRecordNotFound otherwise.
	UpdateOwned(ctx context.Context, id, ownerID uint, changes CampaignChanges) error
	DeactivateOwned(ctx context.Context, id, ownerID uint) error
	Deactivate(ctx context.Context, id uint) error
}
