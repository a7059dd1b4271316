package auth

import (
	"errors"
	"testing"
	"time"
)

func newTestJWTer(t *testing.T, ttl time.Duration) *JWTer {
	t.Helper()
	j, err := NewJWTer("test-secret", "go-blog-api", ttl)
	if err != nil {
		t.Fatalf("NewJWTer error: %v", err)
	}
	return j
}

func TestIssueAndParse_RoundTrip(t *testing.T) {
	t.Parallel()

	j := newTestJWTer(t, time.Hour)

	tok, err := j.Issue("u1", "a@b.com", "user")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	claims, err := j.Parse(tok)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if claims.UID != "u1" || claims.Email != "a@b.com" || claims.Role != "user" {
		t.Fatalf("claims mismatch: %+v", claims)
	}
}

func TestParse_Expired(t *testing.T) {
	t.Parallel()

	j := newTestJWTer(t, -time.Minute)

	tok, err := j.Issue("u1", "a@b.com", "user")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	_, err = j.Parse(tok)
	if !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestParse_WrongSecret(t *testing.T) {
	t.Parallel()

	j := newTestJWTer(t, time.Hour)
	other, _ := NewJWTer("another-secret", "go-blog-api", time.Hour)

	tok, err := other.Issue("u2", "x@y.com", "user")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	_, err = j.Parse(tok)
	if !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestParse_Malformed(t *testing.T) {
	t.Parallel()

	j := newTestJWTer(t, time.Hour)

	_, err := j.Parse("not.a.jwt")
	if !errors.Is(err, ErrTokenMalformed) {
		t.Fatalf("expected ErrTokenMalformed, got %v", err)
	}
}

func TestParse_WrongIssuer(t *testing.T) {
	t.Parallel()

	j := newTestJWTer(t, time.Hour)
	other, _ := NewJWTer("test-secret", "someone-else", time.Hour)

	tok, err := other.Issue("u3", "c@d.com", "admin")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	if _, err := j.Parse(tok); err == nil {
		t.Fatal("expected error for wrong issuer, got nil")
	}
}

func TestNewJWTer_EmptySecret(t *testing.T) {
	t.Parallel()

	if _, err := NewJWTer("", "go-blog-api", time.Hour); err == nil {
		t.Fatal("expected error for empty secret, got nil")
	}
}
