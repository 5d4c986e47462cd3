// internal/app/store/pending/store.go
package pendingstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/potluckhq/potluck/internal/app/system/normalize"
	"github.com/potluckhq/potluck/internal/app/system/otp"
	"github.com/potluckhq/potluck/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrNotFound is returned when no pending registration exists for
	// the email.
	ErrNotFound = errors.New("no pending registration for this email")
	// ErrInvalidCode is returned when the supplied code does not match.
	// The pending record is left unchanged.
	ErrInvalidCode = errors.New("invalid confirmation code")
)

// Store manages the pending_registrations collection.
type Store struct {
	c      *mongo.Collection
	expiry time.Duration
}

// New creates a Store. An expiry of 0 disables pending-record
// expiration (no expires_at is written and no TTL index applies).
func New(db *mongo.Database, expiry time.Duration) *Store {
	return &Store{
		c:      db.Collection("pending_registrations"),
		expiry: expiry,
	}
}

// Expiry returns the configured pending-record lifetime (0 = none).
func (s *Store) Expiry() time.Duration {
	return s.expiry
}

// Upsert creates or replaces the pending registration for email and
// returns the generated one-time code. A repeat signup for the same
// email gets a fresh code and password hash; the upsert on the unique
// email index keeps concurrent signups down to a single record.
func (s *Store) Upsert(ctx context.Context, name, email, passwordHash string) (string, error) {
	email = normalize.Email(email)
	name = normalize.Name(name)
	if name == "" {
		name = normalize.NameFromEmail(email)
	}

	code := otp.GenerateCode()
	now := time.Now()

	p := models.PendingRegistration{
		ID:           primitive.NewObjectID(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Code:         code,
		CreatedAt:    now,
	}
	if s.expiry > 0 {
		exp := now.Add(s.expiry)
		p.ExpiresAt = &exp
	}

	_, err := s.c.ReplaceOne(ctx,
		bson.M{"email": email},
		p,
		options.Replace().SetUpsert(true))
	if err != nil {
		return "", fmt.Errorf("upsert pending registration: %w", err)
	}
	return code, nil
}

// ConfirmAndDelete atomically deletes the pending registration matching
// both email and code, returning the deleted record. The single
// FindOneAndDelete means two concurrent confirms cannot both succeed.
// Returns ErrInvalidCode when a record exists but the code is wrong,
// and ErrNotFound when there is no record for the email.
func (s *Store) ConfirmAndDelete(ctx context.Context, email, code string) (*models.PendingRegistration, error) {
	email = normalize.Email(email)

	var p models.PendingRegistration
	err := s.c.FindOneAndDelete(ctx, bson.M{"email": email, "code": code}).Decode(&p)
	if err == nil {
		return &p, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	// Distinguish wrong code from no record at all.
	if cnt, cntErr := s.c.CountDocuments(ctx, bson.M{"email": email}); cntErr == nil && cnt > 0 {
		return nil, ErrInvalidCode
	}
	return nil, ErrNotFound
}

// GetByEmail loads the pending registration for an email.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.PendingRegistration, error) {
	var p models.PendingRegistration
	err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// DeleteByEmail removes any pending registration for the email.
func (s *Store) DeleteByEmail(ctx context.Context, email string) error {
	_, err := s.c.DeleteMany(ctx, bson.M{"email": normalize.Email(email)})
	return err
}
