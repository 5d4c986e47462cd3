// internal/domain/models/pending.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PendingRegistration is the ephemeral record created at signup and
// destroyed when the one-time code is confirmed. Email is unique across
// the collection; a repeat signup replaces the existing record.
type PendingRegistration struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password_hash"`
	Code         string             `bson:"code"` // 6 ASCII digits, zero-padded

	CreatedAt time.Time `bson:"created_at"`

	// ExpiresAt is set only when a pending-registration expiry is
	// configured; the TTL index keys on it.
	ExpiresAt *time.Time `bson:"expires_at,omitempty"`
}
