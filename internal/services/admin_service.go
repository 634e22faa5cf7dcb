package services

import (
	"context"
	"fmt"

	"donation-api/internal/models"
	"donation-api/internal/repositories"
)

// AdminService exposes privileged operations over every user and campaign.
// Every method requires an admin caller.
type AdminService struct {
	userRepo     repositories.UserRepository
	campaignRepo repositories.CampaignRepository
	events       EventPublisher
}

// NewAdminService creates a new AdminService.
func NewAdminService(userRepo repositories.UserRepository, campaignRepo repositories.CampaignRepository, events EventPublisher) *AdminService {
	return &AdminService{
		userRepo:     userRepo,
		campaignRepo: campaignRepo,
		events:       events,
	}
}

// ListUsers returns all users, deactivated ones included.
func (s *AdminService) ListUsers(ctx context.Context, caller models.Principal) ([]models.User, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	return s.userRepo.List(ctx)
}

// DeactivateUser soft-deletes any user and cascades to their active campaigns.
func (s *AdminService) DeactivateUser(ctx context.Context, caller models.Principal, id uint) error {
	if err := requireAdmin(caller); err != nil {
		return err
	}
	return deactivateUser(ctx, s.userRepo, s.events, id, caller.UserID)
}

// ListAllCampaigns returns all campaigns, deactivated ones included.
func (s *AdminService) ListAllCampaigns(ctx context.Context, caller models.Principal) ([]models.Campaign, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	return s.campaignRepo.ListAll(ctx)
}

// DeactivateCampaign soft-deletes any campaign regardless of its owner.
func (s *AdminService) DeactivateCampaign(ctx context.Context, caller models.Principal, id uint) error {
	if err := requireAdmin(caller); err != nil {
		return err
	}
	if err := s.campaignRepo.Deactivate(ctx, id); err != nil {
		return notFoundCampaign(id, err)
	}
	publish(s.events, EventCampaignDeactivated, map[string]interface{}{
		"campaign_id": id,
		"actor_id":    caller.UserID,
	})
	return nil
}

func requireAdmin(caller models.Principal) error {
	if !caller.IsAdmin() {
		return fmt.Errorf("%w: admin role required", ErrForbidden)
	}
	return nil
}
