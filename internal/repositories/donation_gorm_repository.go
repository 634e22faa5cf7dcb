package repositories

import (
	"context"
	"fmt"
	"time"

	"donation-api/internal/models"

	"gorm.io/gorm"
)

// GORMDonationRepository is a GORM implementation of DonationRepository.
type GORMDonationRepository struct {
	db *gorm.DB
}

// NewGORMDonationRepository creates a new instance of GORMDonationRepository.
func NewGORMDonationRepository(db *gorm.DB) *GORMDonationRepository {
	return &GORMDonationRepository{
		db: db,
	}
}

// CreateAndIncrement records a donation and adds its amount to the
// campaign's raised amount. The sum is computed with decimal arithmetic in Go
// rather than in SQL, so SQLite's float affinity never touches it.
func (r *GORMDonationRepository) CreateAndIncrement(ctx context.Context, donation *models.Donation) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Claim the row first: Postgres holds the row lock and SQLite the
		// write lock until commit, so the read below cannot go stale.
		res := tx.Model(&models.Campaign{}).
			Where("id = ? AND is_deleted = ?", donation.CampaignID, false).
			UpdateColumn("updated_at", time.Now().UTC())
		if res.Error != nil {
			return fmt.Errorf("failed to lock campaign %d: %w", donation.CampaignID, res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("campaign %d %w", donation.CampaignID, ErrRecordNotFound)
		}

		var campaign models.Campaign
		if err := tx.Select("id", "raised_amount").First(&campaign, donation.CampaignID).Error; err != nil {
			return fmt.Errorf("failed to read raised amount: %w", err)
		}

		raised := campaign.RaisedAmount.Add(donation.Amount)
		if raised.GreaterThanOrEqual(models.MaxMoney) {
			return fmt.Errorf("campaign %d: %w", donation.CampaignID, ErrAmountOverflow)
		}
		err := tx.Model(&models.Campaign{}).
			Where("id = ?", donation.CampaignID).
			UpdateColumn("raised_amount", raised).Error
		if err != nil {
			return fmt.Errorf("failed to update raised amount: %w", err)
		}

		if err := tx.Omit("Donor").Create(donation).Error; err != nil {
			return fmt.Errorf("failed to create donation: %w", err)
		}
		return nil
	})
}
