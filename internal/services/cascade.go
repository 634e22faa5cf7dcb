package services

import (
	"context"
	"errors"
	"fmt"

	"donation-api/internal/repositories"

	"github.com/rs/zerolog/log"
)

// deactivateUser is the single implementation of "deactivate a user and all of
// their active campaigns". Self-service and admin deactivation both go
// through it.
func deactivateUser(ctx context.Context, users repositories.UserRepository, events EventPublisher, userID, actorID uint) error {
	cascaded, err := users.DeactivateWithCampaigns(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return fmt.Errorf("%w: user %d not found", ErrNotFound, userID)
		}
		return err
	}

	log.Info().
		Uint("user_id", userID).
		Uint("actor_id", actorID).
		Int64("campaigns_deactivated", cascaded).
		Msg("user deactivated")

	publish(events, EventUserDeactivated, map[string]interface{}{
		"user_id":               userID,
		"actor_id":              actorID,
		"campaigns_deactivated": cascaded,
	})
	return nil
}
