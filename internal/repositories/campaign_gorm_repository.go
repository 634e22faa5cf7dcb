package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"donation-api/internal/models"

	"gorm.io/gorm"
)

// GORMCampaignRepository is a GORM implementation of CampaignRepository.
type GORMCampaignRepository struct {
	db *gorm.DB
}

// NewGORMCampaignRepository creates a new instance of GORMCampaignRepository.
func NewGORMCampaignRepository(db *gorm.DB) *GORMCampaignRepository {
	return &GORMCampaignRepository{
		db: db,
	}
}

// Create inserts a new campaign.
func (r *GORMCampaignRepository) Create(ctx context.Context, campaign *models.Campaign) error {
	if err := r.db.WithContext(ctx).Omit("Creator", "Donations").Create(campaign).Error; err != nil {
		return fmt.Errorf("failed to create campaign: %w", err)
	}
	return nil
}

// GetByID retrieves a campaign regardless of deletion state.
func (r *GORMCampaignRepository) GetByID(ctx context.Context, id uint) (*models.Campaign, error) {
	var campaign models.Campaign
	if err := r.db.WithContext(ctx).First(&campaign, "id = ?", id).Error; err != nil {
		return nil, wrapCampaignErr(id, err)
	}
	return &campaign, nil
}

// GetActiveWithDonations retrieves an active campaign together with its
// creator and its donation history, each donation carrying its donor.
func (r *GORMCampaignRepository) GetActiveWithDonations(ctx context.Context, id uint) (*models.Campaign, error) {
	var campaign models.Campaign
	err := r.db.WithContext(ctx).
		Preload("Creator").
		Preload("Donations", func(db *gorm.DB) *gorm.DB {
			return db.Order("donated_at ASC, id ASC")
		}).
		Preload("Donations.Donor").
		Where("id = ? AND is_deleted = ?", id, false).
		First(&campaign).Error
	if err != nil {
		return nil, wrapCampaignErr(id, err)
	}
	return &campaign, nil
}

// ListActive returns one page of active campaigns, newest start date first,
// and the total number of campaigns matching the query.
func (r *GORMCampaignRepository) ListActive(ctx context.Context, query CampaignQuery) ([]models.Campaign, int64, error) {
	filtered := func() *gorm.DB {
		tx := r.db.WithContext(ctx).Model(&models.Campaign{}).Where("is_deleted = ?", false)
		if search := strings.TrimSpace(query.Search); search != "" {
			tx = tx.Where(`LOWER(title) LIKE ? ESCAPE '\'`, "%"+escapeLike(strings.ToLower(search))+"%")
		}
		return tx
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count campaigns: %w", err)
	}

	campaigns := make([]models.Campaign, 0, query.PageSize)
	err := filtered().
		Order("start_date DESC").
		Order("id DESC").
		Offset((query.PageNumber - 1) * query.PageSize).
		Limit(query.PageSize).
		Find(&campaigns).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list campaigns: %w", err)
	}
	return campaigns, total, nil
}

// ListActiveByCreator returns all active campaigns created by creatorID.
func (r *GORMCampaignRepository) ListActiveByCreator(ctx context.Context, creatorID uint) ([]models.Campaign, error) {
	campaigns := []models.Campaign{}
	err := r.db.WithContext(ctx).
		Where("creator_id = ? AND is_deleted = ?", creatorID, false).
		Order("start_date DESC").
		Order("id DESC").
		Find(&campaigns).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list campaigns of user %d: %w", creatorID, err)
	}
	return campaigns, nil
}

// ListAll returns every campaign, deactivated ones included, with its creator.
func (r *GORMCampaignRepository) ListAll(ctx context.Context) ([]models.Campaign, error) {
	campaigns := []models.Campaign{}
	if err := r.db.WithContext(ctx).Preload("Creator").Order("id").Find(&campaigns).Error; err != nil {
		return nil, fmt.Errorf("failed to list all campaigns: %w", err)
	}
	return campaigns, nil
}

// UpdateOwned replaces the mutable fields of an active campaign owned by ownerID.
func (r *GORMCampaignRepository) UpdateOwned(ctx context.Context, id, ownerID uint, changes CampaignChanges) error {
	res := r.db.WithContext(ctx).Model(&models.Campaign{}).
		Where("id = ? AND creator_id = ? AND is_deleted = ?", id, ownerID, false).
		Updates(map[string]interface{}{
			"title":       changes.Title,
			"description": changes.Description,
			"end_date":    changes.EndDate,
			"goal":        changes.Goal,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to update campaign: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("campaign %d %w", id, ErrRecordNotFound)
	}
	return nil
}

// DeactivateOwned soft-deletes an active campaign owned by ownerID.
func (r *GORMCampaignRepository) DeactivateOwned(ctx context.Context, id, ownerID uint) error {
	res := r.db.WithContext(ctx).Model(&models.Campaign{}).
		Where("id = ? AND creator_id = ? AND is_deleted = ?", id, ownerID, false).
		Update("is_deleted", true)
	if res.Error != nil {
		return fmt.Errorf("failed to deactivate campaign: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("campaign %d %w", id, ErrRecordNotFound)
	}
	return nil
}

// Deactivate soft-deletes a campaign regardless of its owner.
func (r *GORMCampaignRepository) Deactivate(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Model(&models.Campaign{}).Where("id = ?", id).Update("is_deleted", true)
	if res.Error != nil {
		return fmt.Errorf("failed to deactivate campaign: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("campaign %d %w", id, ErrRecordNotFound)
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes s match literally inside a LIKE pattern with ESCAPE '\'.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func wrapCampaignErr(id uint, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("campaign %d %w", id, ErrRecordNotFound)
	}
	return fmt.Errorf("failed to get campaign %d: %w", id, err)
}
