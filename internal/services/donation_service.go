package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"donation-api/internal/models"
	"donation-api/internal/repositories"

	"github.com/shopspring/decimal"
)

// DonationService records donations against campaigns.
type DonationService struct {
	repo   repositories.DonationRepository
	events EventPublisher
	now    func() time.Time
}

// NewDonationService creates a new DonationService.
func NewDonationService(repo repositories.DonationRepository, events EventPublisher) *DonationService {
	return &DonationService{
		repo:   repo,
		events: events,
		now:    time.Now,
	}
}

// CreateDonation records a donation by the caller and adds its amount to the
// campaign's raised amount in the same transaction.
func (s *DonationService) CreateDonation(ctx context.Context, caller models.Principal, campaignID uint, amount decimal.Decimal) (*models.Donation, error) {
	if err := checkAmount("amount", amount); err != nil {
		return nil, err
	}

	donation := &models.Donation{
		Amount:     models.NewMoney(amount),
		DonatedAt:  s.now().UTC(),
		DonorID:    caller.UserID,
		CampaignID: campaignID,
	}
	if err := s.repo.CreateAndIncrement(ctx, donation); err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: campaign %d not found", ErrNotFound, campaignID)
		}
		if errors.Is(err, repositories.ErrAmountOverflow) {
			return nil, fmt.Errorf("%w: campaign %d cannot accept this amount", ErrBadRequest, campaignID)
		}
		return nil, err
	}

	publish(s.events, EventDonationRecorded, map[string]interface{}{
		"donation_id": donation.ID,
		"campaign_id": donation.CampaignID,
		"donor_id":    donation.DonorID,
		"amount":      donation.Amount.String(),
	})
	return donation, nil
}
