package model

import "time"

type EventType string

const (
	EventSeedCollectionNotification EventType = "seed_collection_notification"
	EventSeedVerification           EventType = "seed_verification"
)

// VerificationEvent is one immutable entry of the audit log. Every issued
// notification and every completed verification appends exactly one entry.
type VerificationEvent struct {
	ID        int64     `json:"id,omitempty"`
	Type      EventType `json:"type"`
	UserID    string    `json:"user_id"`
	CasinoID  string    `json:"casino_id"`
	SessionID string    `json:"session_id"`
	// RefID is the VerificationID or NotificationID the entry refers to.
	RefID     string    `json:"ref_id"`
	Payload   string    `json:"payload,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
