package repositories

import (
	"context"

	"donation-api/internal/models"
)

// DonationRepository defines the interface for donation data access.
// Donations are append-only.
type DonationRepository interface {
	// CreateAndIncrement inserts the donation and adds its amount to the
	// campaign's raised amount in one transaction. It returns
	// ErrRecordNotFound when the campaign is missing or deactivated and
	// ErrAmountOverflow when the new total would not fit the column.
	CreateAndIncrement(ctx context.Context, donation *models.Donation) error
}
