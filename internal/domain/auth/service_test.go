package auth

import (
	"context"
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := NewService(Config{Secret: "unit-secret", TokenTTL: time.Hour})
	ctx := context.Background()

	token, err := svc.IssueToken(ctx, 42, "dev@example.com")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	claims, err := svc.ValidateToken(ctx, token)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if claims.UserID != 42 || claims.Email != "dev@example.com" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if !claims.ExpiresAt.After(time.Now()) {
		t.Fatal("expiry must be in the future")
	}
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	issuer := NewService(Config{Secret: "secret-a", TokenTTL: time.Hour})
	verifier := NewService(Config{Secret: "secret-b", TokenTTL: time.Hour})
	ctx := context.Background()

	token, err := issuer.IssueToken(ctx, 1, "")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if _, err := verifier.ValidateToken(ctx, token); err == nil {
		t.Fatal("expected validation failure for wrong secret")
	}
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	svc := NewService(Config{Secret: "unit-secret", TokenTTL: -time.Minute})
	ctx := context.Background()

	token, err := svc.IssueToken(ctx, 1, "")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if _, err := svc.ValidateToken(ctx, token); err == nil {
		t.Fatal("expected validation failure for expired token")
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc := NewService(Config{Secret: "unit-secret"})
	if _, err := svc.ValidateToken(context.Background(), "  "); err == nil {
		t.Fatal("expected failure for blank token")
	}
	if _, err := svc.ValidateToken(context.Background(), "not.a.jwt"); err == nil {
		t.Fatal("expected failure for malformed token")
	}
}
