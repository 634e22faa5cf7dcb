package repositories

import (
	"context"
	"errors"
	"fmt"

	"donation-api/internal/models"

	"gorm.io/gorm"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{
		db: db,
	}
}

// Create creates a new user in the database.
func (r *GORMUserRepository) Create(ctx context.Context, user *models.User) error {
	if user.Role == "" {
		user.Role = models.RoleOrdinary
	}
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("user email %w", ErrDuplicateKey)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByID retrieves a user by ID regardless of deletion state.
func (r *GORMUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return r.first(ctx, "id = ?", id)
}

// GetActiveByID retrieves a non-deleted user by ID.
func (r *GORMUserRepository) GetActiveByID(ctx context.Context, id uint) (*models.User, error) {
	return r.first(ctx, "id = ? AND is_deleted = ?", id, false)
}

// GetByEmail retrieves a user by email regardless of deletion state.
func (r *GORMUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.first(ctx, "email = ?", email)
}

// GetActiveByEmail retrieves a non-deleted user by email.
func (r *GORMUserRepository) GetActiveByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.first(ctx, "email = ? AND is_deleted = ?", email, false)
}

func (r *GORMUserRepository) first(ctx context.Context, query string, args ...interface{}) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where(query, args...).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %w", ErrRecordNotFound)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// List returns every user, deactivated ones included.
func (r *GORMUserRepository) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).Order("id").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// UpdatePassword replaces the stored password hash.
func (r *GORMUserRepository) UpdatePassword(ctx context.Context, id uint, passwordHash string) error {
	return r.updateColumn(ctx, id, "password", passwordHash)
}

// UpdateEmail replaces the user's email.
func (r *GORMUserRepository) UpdateEmail(ctx context.Context, id uint, email string) error {
	return r.updateColumn(ctx, id, "email", email)
}

func (r *GORMUserRepository) updateColumn(ctx context.Context, id uint, column string, value interface{}) error {
	res := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update(column, value)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("user %s %w", column, ErrDuplicateKey)
		}
		return fmt.Errorf("failed to update user %s: %w", column, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("user %d %w", id, ErrRecordNotFound)
	}
	return nil
}

// DeactivateWithCampaigns soft-deletes a user and cascades the flag to the
// user's active campaigns. Both writes commit together or not at all.
func (r *GORMUserRepository) DeactivateWithCampaigns(ctx context.Context, id uint) (int64, error) {
	var cascaded int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.User{}).Where("id = ?", id).Update("is_deleted", true)
		if res.Error != nil {
			return fmt.Errorf("failed to deactivate user: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("user %d %w", id, ErrRecordNotFound)
		}

		res = tx.Model(&models.Campaign{}).
			Where("creator_id = ? AND is_deleted = ?", id, false).
			Update("is_deleted", true)
		if res.Error != nil {
			return fmt.Errorf("failed to deactivate campaigns of user %d: %w", id, res.Error)
		}
		cascaded = res.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}
	return cascaded, nil
}
