package services

import (
	"time"

	"weatherapi/internal/models"

	"github.com/rs/zerolog/log"
)

// EventPublisher delivers user lifecycle events to a message broker.
type EventPublisher interface {
	PublishUserEvent(event models.UserEvent) error
}

// publishUserEvent is best-effort: a broker failure never fails the user operation.
func publishUserEvent(publisher EventPublisher, eventType models.UserEventType, user *models.User) {
	if publisher == nil {
		return
	}
	event := models.UserEvent{
		Type:       eventType,
		UserID:     user.ID,
		Email:      user.Email,
		OccurredAt: time.Now().UTC(),
	}
	if err := publisher.PublishUserEvent(event); err != nil {
		log.Warn().Err(err).Str("event", string(eventType)).Str("user_id", user.ID).Msg("Failed to publish user event")
		return
	}
	log.Debug().Str("event", string(eventType)).Str("user_id", user.ID).Msg("Published user event")
}
