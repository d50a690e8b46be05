// Package queue defines message payloads exchanged over the message broker.
package queue

import (
	"time"

	"github.com/google/uuid"

	"github.com/kunstewi/account-service/internal/model"
)

// Event types published on the account.events queue.
const (
	EventUserRegistered = "user.registered"
	EventUserDeleted    = "user.deleted"
)

// AccountEvent is published when an account is created or deleted.  It
// carries enough information for downstream consumers to log, notify, or
// trigger analytics without querying the primary database.  Credential
// fields are never included.
type AccountEvent struct {
	EventID    string `json:"event_id"`
	Type       string `json:"type"`
	UserID     uint64 `json:"user_id"`
	Email      string `json:"email"`
	Username   string `json:"username"`
	OccurredAt string `json:"occurred_at"`
}

// NewAccountEvent builds an event of the given type for a user, stamped
// with a fresh uuid and the current UTC time.
func NewAccountEvent(eventType string, u model.User) AccountEvent {
	return AccountEvent{
		EventID:    uuid.NewString(),
		Type:       eventType,
		UserID:     u.ID,
		Email:      u.Email,
		Username:   u.Username,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}
}
