package services

import (
	"github.com/rs/zerolog/log"
)

// Event types published on campaign lifecycle changes.
const (
	EventCampaignCreated     = "campaign.created"
	EventCampaignDeactivated = "campaign.deactivated"
	EventDonationRecorded    = "donation.recorded"
	EventUserDeactivated     = "user.deactivated"
)

// EventPublisher delivers domain events to interested consumers.
type EventPublisher interface {
	PublishEvent(eventType string, payload map[string]interface{}) error
}

// publish is best effort: a failed publish never fails the operation that
// produced the event.
func publish(events EventPublisher, eventType string, payload map[string]interface{}) {
	if events == nil {
		log.Debug().Str("event", eventType).Msg("event publisher not configured, skipping")
		return
	}
	if err := events.PublishEvent(eventType, payload); err != nil {
		log.Warn().Err(err).Str("event", eventType).Msg("failed to publish event")
	}
}
