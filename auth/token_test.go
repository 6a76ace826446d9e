package auth

import (
	"testing"
	"time"

	"github.com/user/resourcebox-go/config"
)

func newTestTokenService(secret string, ttl time.Duration) *TokenService {
	return NewTokenService(config.AuthConfig{JWTSecret: secret, TokenDuration: ttl})
}

func TestIssueAndVerify_Success(t *testing.T) {
	t.Parallel()

	svc := newTestTokenService("super-secret", 48*time.Hour)

	tok, err := svc.Issue("alice")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	claims, err := svc.Verify(tok)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if claims.Username != "alice" {
		t.Fatalf("username mismatch: got %q want %q", claims.Username, "alice")
	}
}

func TestVerify_BearerPrefixStripped(t *testing.T) {
	t.Parallel()

	svc := newTestTokenService("super-secret", time.Hour)

	tok, err := svc.Issue("bob")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	claims, err := svc.Verify("Bearer " + tok)
	if err != nil {
		t.Fatalf("Verify with Bearer prefix error: %v", err)
	}
	if claims.Username != "bob" {
		t.Fatalf("username mismatch: got %q want %q", claims.Username, "bob")
	}
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()

	svc := newTestTokenService("secret", -1*time.Second)

	tok, err := svc.Issue("alice")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	if _, err := svc.Verify(tok); err == nil {
		t.Fatalf("expected error for expired token, got nil")
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := newTestTokenService("right-secret", time.Hour).Issue("alice")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	if _, err := newTestTokenService("wrong-secret", time.Hour).Verify(tok); err == nil {
		t.Fatalf("expected error for invalid signature, got nil")
	}
}

func TestVerify_MalformedString(t *testing.T) {
	t.Parallel()

	if _, err := newTestTokenService("k", time.Hour).Verify("not.a.jwt"); err == nil {
		t.Fatalf("expected error for malformed token, got nil")
	}
}
