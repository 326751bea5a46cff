package auth

import (
	"errors"
	"testing"
	"time"
)

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("password_admin")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "password_admin" {
		t.Fatalf("hash equals plain text")
	}
	if !VerifyPassword("password_admin", hash) {
		t.Fatalf("VerifyPassword: expected match")
	}
	if VerifyPassword("wrong", hash) {
		t.Fatalf("VerifyPassword: expected mismatch")
	}
}

func TestTokenIssueAndParse(t *testing.T) {
	ti := NewTokenIssuer("test-secret", 30*time.Minute)
	token, err := ti.Issue(7, "alice")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	claims, err := ti.Parse(token)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if claims.Subject != "alice" || claims.AccountID != 7 {
		t.Fatalf("claims mismatch: sub=%q id=%d", claims.Subject, claims.AccountID)
	}
}

func TestTokenRejectsWrongSecret(t *testing.T) {
	token, err := NewTokenIssuer("secret-a", time.Minute).Issue(1, "alice")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := NewTokenIssuer("secret-b", time.Minute).Parse(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("Parse: want ErrInvalidToken, got %v", err)
	}
}

func TestTokenRejectsExpired(t *testing.T) {
	ti := NewTokenIssuer("test-secret", time.Minute)
	issuedAt := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	ti.now = func() time.Time { return issuedAt }

	token, err := ti.Issue(1, "alice")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	ti.now = func() time.Time { return issuedAt.Add(2 * time.Minute) }
	if _, err := ti.Parse(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("Parse: want ErrInvalidToken for expired token, got %v", err)
	}
}

func TestTokenRejectsGarbage(t *testing.T) {
	ti := NewTokenIssuer("test-secret", time.Minute)
	if _, err := ti.Parse("not-a-jwt"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("Parse: want ErrInvalidToken, got %v", err)
	}
}
