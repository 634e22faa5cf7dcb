package services

import (
	"context"
	"errors"
	"fmt"

	"donation-api/internal/models"
	"donation-api/internal/repositories"
)

// AccountService handles self-service changes to the caller's own account.
type AccountService struct {
	userRepo repositories.UserRepository
	events   EventPublisher
}

// NewAccountService creates a new AccountService.
func NewAccountService(userRepo repositories.UserRepository, events EventPublisher) *AccountService {
	return &AccountService{
		userRepo: userRepo,
		events:   events,
	}
}

// ChangePassword replaces the caller's password after confirming the current one.
func (s *AccountService) ChangePassword(ctx context.Context, caller models.Principal, currentPassword, newPassword string) error {
	user, err := s.activeUser(ctx, caller)
	if err != nil {
		return err
	}

	if !passwordMatches(user.Password, currentPassword) {
		return fmt.Errorf("%w: current password is incorrect", ErrBadRequest)
	}

	hashed, err := hashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.userRepo.UpdatePassword(ctx, user.ID, hashed)
}

// UpdateEmail changes the caller's email after confirming their password.
// The new email must not belong to any other user.
func (s *AccountService) UpdateEmail(ctx context.Context, caller models.Principal, newEmail, currentPassword string) error {
	user, err := s.activeUser(ctx, caller)
	if err != nil {
		return err
	}

	if !passwordMatches(user.Password, currentPassword) {
		return fmt.Errorf("%w: current password is incorrect", ErrBadRequest)
	}

	newEmail = normalizeEmail(newEmail)
	other, err := s.userRepo.GetByEmail(ctx, newEmail)
	if err != nil && !errors.Is(err, repositories.ErrRecordNotFound) {
		return err
	}
	if other != nil && other.ID != user.ID {
		return fmt.Errorf("%w: email '%s' is already used by another account", ErrBadRequest, newEmail)
	}

	if err := s.userRepo.UpdateEmail(ctx, user.ID, newEmail); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return fmt.Errorf("%w: email '%s' is already used by another account", ErrBadRequest, newEmail)
		}
		return err
	}
	return nil
}

// DeactivateAccount soft-deletes the caller's account and all of their
// active campaigns after confirming their password.
func (s *AccountService) DeactivateAccount(ctx context.Context, caller models.Principal, password string) error {
	user, err := s.userRepo.GetByID(ctx, caller.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return fmt.Errorf("%w: user %d not found", ErrNotFound, caller.UserID)
		}
		return err
	}
	if user.IsDeleted {
		return fmt.Errorf("%w: account is already deactivated", ErrBadRequest)
	}
	if !passwordMatches(user.Password, password) {
		return fmt.Errorf("%w: incorrect password, account was not deactivated", ErrBadRequest)
	}

	return deactivateUser(ctx, s.userRepo, s.events, user.ID, caller.UserID)
}

func (s *AccountService) activeUser(ctx context.Context, caller models.Principal) (*models.User, error) {
	user, err := s.userRepo.GetActiveByID(ctx, caller.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %d not found", ErrNotFound, caller.UserID)
		}
		return nil, err
	}
	return user, nil
}
