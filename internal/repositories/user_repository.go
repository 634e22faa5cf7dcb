package repositories

import (
	"context"
	"errors"

	"donation-api/internal/models"
)

var (
	// ErrRecordNotFound is returned when a lookup or a scoped write matches no row.
	ErrRecordNotFound = errors.New("record not found")
	// ErrDuplicateKey is returned when a write violates a unique index.
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrAmountOverflow is returned when a running total outgrows its column.
	ErrAmountOverflow = errors.New("amount exceeds storage limit")
)

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetActiveByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetActiveByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	UpdatePassword(ctx context.Context, id uint, passwordHash string) error
	UpdateEmail(ctx context.Context, id uint, email string) error
	// DeactivateWithCampaigns soft-deletes the user and every active campaign
	// they created in one transaction. It returns the number of campaigns
	// that were deactivated.
	DeactivateWithCampaigns(ctx context.Context, id uint) (int64, error)
}
