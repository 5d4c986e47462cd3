// internal/app/system/token/token.go

// Package token manages access- and refresh-token issuance and
// verification. Tokens are HS256-signed JWTs; validity is purely a
// function of signature and expiry, nothing is persisted server-side.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Default token lifetimes.
const (
	DefaultAccessTTL  = 15 * time.Minute
	DefaultRefreshTTL = 7 * 24 * time.Hour
)

// ErrInvalidToken is returned for tokens that fail signature, expiry, or
// claim validation.
var ErrInvalidToken = errors.New("invalid or expired token")

// Config holds the process-wide signing configuration, loaded once at
// startup.
type Config struct {
	Secret     []byte        // HS256 signing key
	Issuer     string        // iss claim on every token
	AccessTTL  time.Duration // defaults to DefaultAccessTTL
	RefreshTTL time.Duration // defaults to DefaultRefreshTTL
}

// Claims are the signed claims on both token kinds. Subject is the
// account email; Role is set on access tokens only.
type Claims struct {
	Role string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Manager issues and verifies tokens. Safe for concurrent use.
type Manager struct {
	cfg Config
}

// NewManager validates cfg and returns a Manager.
func NewManager(cfg Config) (*Manager, error) {
	if len(cfg.Secret) < 32 {
		return nil, errors.New("token secret must be at least 32 bytes")
	}
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = DefaultAccessTTL
	}
	if cfg.RefreshTTL <= 0 {
		cfg.RefreshTTL = DefaultRefreshTTL
	}
	return &Manager{cfg: cfg}, nil
}

// AccessTTL returns the configured access-token lifetime.
func (m *Manager) AccessTTL() time.Duration { return m.cfg.AccessTTL }

// RefreshTTL returns the configured refresh-token lifetime.
func (m *Manager) RefreshTTL() time.Duration { return m.cfg.RefreshTTL }

// IssueAccess signs a short-lived access token carrying the account's
// email as subject and its role as a claim.
func (m *Manager) IssueAccess(email, role string) (string, error) {
	return m.sign(email, role, m.cfg.AccessTTL)
}

// IssueRefresh signs a longer-lived refresh token with subject only.
func (m *Manager) IssueRefresh(email string) (string, error) {
	return m.sign(email, "", m.cfg.RefreshTTL)
}

func (m *Manager) sign(email, role string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			Issuer:    m.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(m.cfg.Secret)
}

// Parse verifies signature, expiry, and issuer, returning the claims.
// All failures map to ErrInvalidToken; the underlying cause is not
// exposed to callers.
func (m *Manager) Parse(raw string) (*Claims, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.cfg.Secret, nil
	}, jwt.WithIssuer(m.cfg.Issuer), jwt.WithExpirationRequired())
	if err != nil || !tok.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Subject extracts the subject (account email) from a token, or "" if
// the token is malformed, expired, or improperly signed.
func (m *Manager) Subject(raw string) string {
	claims, err := m.Parse(raw)
	if err != nil {
		return ""
	}
	return claims.Subject
}

// Verify reports whether raw is a valid token whose subject matches the
// presented account email.
func (m *Manager) Verify(raw, email string) bool {
	claims, err := m.Parse(raw)
	return err == nil && claims.Subject == email
}
