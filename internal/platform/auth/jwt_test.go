package auth

import (
	"strings"
	"testing"
	"time"
)

const testSecret = "test-secret"

func TestTokenRoundTrip(t *testing.T) {
	token, err := NewAccessToken("a@x.com", "Ana", testSecret, 3*time.Hour)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}

	claims, err := Parse(token, testSecret)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if claims.Email != "a@x.com" {
		t.Errorf("email = %q, want a@x.com", claims.Email)
	}
	if claims.Name != "Ana" {
		t.Errorf("name = %q, want Ana", claims.Name)
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl < 2*time.Hour+59*time.Minute || ttl > 3*time.Hour {
		t.Errorf("expiry %v out of the 3h window", ttl)
	}
}

func TestParseExpiredToken(t *testing.T) {
	token, err := NewAccessToken("a@x.com", "", testSecret, -time.Minute)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	if _, err := Parse(token, testSecret); err == nil {
		t.Error("expected error for expired token")
	}
}

func TestParseWrongSecret(t *testing.T) {
	token, err := NewAccessToken("a@x.com", "", testSecret, time.Hour)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	if _, err := Parse(token, "other-secret"); err == nil {
		t.Error("expected error for wrong secret")
	}
}

func TestParseTamperedToken(t *testing.T) {
	token, err := NewAccessToken("a@x.com", "", testSecret, time.Hour)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %d parts", len(parts))
	}
	tampered := parts[0] + "." + parts[1] + "x." + parts[2]
	if _, err := Parse(tampered, testSecret); err == nil {
		t.Error("expected error for tampered payload")
	}
}

func TestParseGarbage(t *testing.T) {
	if _, err := Parse("not-a-token", testSecret); err == nil {
		t.Error("expected error for malformed token")
	}
}
