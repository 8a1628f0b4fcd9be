package auth

import (
	"strings"
	"testing"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-password")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "s3cret-password" {
		t.Fatal("hash must not equal the plaintext password")
	}

	if !VerifyPassword("s3cret-password", hash) {
		t.Error("expected correct password to verify")
	}
	if VerifyPassword("wrong-password", hash) {
		t.Error("expected wrong password to fail verification")
	}
}

func TestGenerateAndParseToken(t *testing.T) {
	SetSecret("unit-test-secret")

	token, err := GenerateToken(42, "alice")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	claims, err := ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.UserID != 42 || claims.Username != "alice" {
		t.Errorf("unexpected claims: %+v", claims)
	}
	if claims.Issuer != "emojifm" {
		t.Errorf("unexpected issuer %q", claims.Issuer)
	}
}

func TestParseTamperedToken(t *testing.T) {
	SetSecret("unit-test-secret")

	token, err := GenerateToken(1, "bob")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("expected 3 token segments, got %d", len(parts))
	}
	// Altering the payload invalidates the signature.
	tampered := parts[0] + "." + parts[1] + "AAAA." + parts[2]

	if _, err := ParseToken(tampered); err == nil {
		t.Error("expected tampered token to be rejected")
	}
}

func TestGenerateTokenWithoutSecret(t *testing.T) {
	SetSecret("")
	defer SetSecret("unit-test-secret")

	if _, err := GenerateToken(1, "carol"); err == nil {
		t.Error("expected error when signing key is not configured")
	}
}
