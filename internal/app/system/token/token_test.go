package token

import (
	"strings"
	"testing"
	"time"
)

func testManager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager(Config{
		Secret:     []byte("0123456789abcdef0123456789abcdef"),
		Issuer:     "potluck-test",
		AccessTTL:  5 * time.Minute,
		RefreshTTL: time.Hour,
	})
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	return m
}

func TestNewManager_RejectsShortSecret(t *testing.T) {
	if _, err := NewManager(Config{Secret: []byte("short")}); err == nil {
		t.Error("expected error for short secret")
	}
}

func TestNewManager_DefaultTTLs(t *testing.T) {
	m, err := NewManager(Config{Secret: []byte("0123456789abcdef0123456789abcdef")})
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	if m.AccessTTL() != DefaultAccessTTL {
		t.Errorf("AccessTTL = %v, want %v", m.AccessTTL(), DefaultAccessTTL)
	}
	if m.RefreshTTL() != DefaultRefreshTTL {
		t.Errorf("RefreshTTL = %v, want %v", m.RefreshTTL(), DefaultRefreshTTL)
	}
}

func TestIssueAccess_RoundTrip(t *testing.T) {
	m := testManager(t)

	raw, err := m.IssueAccess("alice@example.com", "user")
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}

	claims, err := m.Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if claims.Subject != "alice@example.com" {
		t.Errorf("subject = %q, want alice@example.com", claims.Subject)
	}
	if claims.Role != "user" {
		t.Errorf("role = %q, want user", claims.Role)
	}
	if claims.ID == "" {
		t.Error("expected a jti claim")
	}
}

func TestIssueRefresh_NoRoleClaim(t *testing.T) {
	m := testManager(t)

	raw, err := m.IssueRefresh("alice@example.com")
	if err != nil {
		t.Fatalf("IssueRefresh: %v", err)
	}
	claims, err := m.Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if claims.Role != "" {
		t.Errorf("refresh token carries role %q, want none", claims.Role)
	}
}

func TestSubject(t *testing.T) {
	m := testManager(t)

	raw, err := m.IssueAccess("bob@example.com", "admin")
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}
	if got := m.Subject(raw); got != "bob@example.com" {
		t.Errorf("Subject = %q, want bob@example.com", got)
	}
	if got := m.Subject("not.a.jwt"); got != "" {
		t.Errorf("Subject of garbage = %q, want empty", got)
	}
}

func TestVerify(t *testing.T) {
	m := testManager(t)

	raw, err := m.IssueRefresh("carol@example.com")
	if err != nil {
		t.Fatalf("IssueRefresh: %v", err)
	}
	if !m.Verify(raw, "carol@example.com") {
		t.Error("Verify failed for matching subject")
	}
	if m.Verify(raw, "other@example.com") {
		t.Error("Verify passed for mismatched subject")
	}
}

func TestParse_RejectsTamperedToken(t *testing.T) {
	m := testManager(t)

	raw, err := m.IssueAccess("alice@example.com", "user")
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}
	parts := strings.Split(raw, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %q", raw)
	}
	tampered := parts[0] + "." + parts[1] + ".AAAA" + parts[2][4:]
	if _, err := m.Parse(tampered); err == nil {
		t.Error("expected tampered token to be rejected")
	}
}

func TestParse_RejectsExpiredToken(t *testing.T) {
	m := testManager(t)
	signer, err := NewManager(Config{
		Secret:     []byte("0123456789abcdef0123456789abcdef"),
		Issuer:     "potluck-test",
		RefreshTTL: time.Nanosecond,
	})
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	raw, err := signer.IssueRefresh("alice@example.com")
	if err != nil {
		t.Fatalf("IssueRefresh: %v", err)
	}
	time.Sleep(10 * time.Millisecond)
	if _, err := m.Parse(raw); err == nil {
		t.Error("expected expired token to be rejected")
	}
}

func TestParse_RejectsWrongIssuer(t *testing.T) {
	m := testManager(t)
	other, err := NewManager(Config{
		Secret: []byte("0123456789abcdef0123456789abcdef"),
		Issuer: "someone-else",
	})
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	raw, err := other.IssueAccess("alice@example.com", "user")
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}
	if _, err := m.Parse(raw); err == nil {
		t.Error("expected token with wrong issuer to be rejected")
	}
}

func TestIssueAccess_DistinctTokens(t *testing.T) {
	m := testManager(t)

	a, err := m.IssueAccess("alice@example.com", "user")
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}
	b, err := m.IssueAccess("alice@example.com", "user")
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}
	if a == b {
		t.Error("two issued access tokens are identical; expected distinct jti")
	}
}
