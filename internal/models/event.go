package models

import "time"

// UserEventType names a user lifecycle transition.
type UserEventType string

const (
	UserRegistered UserEventType = "user.registered"
	UserCreated    UserEventType = "user.created"
	UserUpdated    UserEventType = "user.updated"
	UserDeleted    UserEventType = "user.deleted"
)

// UserEvent is published to the message broker after a successful user mutation.
type UserEvent struct {
	Type       UserEventType `json:"type"`
	UserID     string        `json:"user_id"`
	Email      string        `json:"email"`
	OccurredAt time.Time     `json:"occurred_at"`
}
