package auth

import (
	"testing"
	"time"
)

// TestSessionTokenRoundTrip проверяет выдачу и разбор сессионного токена.
func TestSessionTokenRoundTrip(t *testing.T) {
	manager := NewSessionManager("test-secret", "finance-tracker", 24*time.Hour)

	token, expiresAt, err := manager.NewSessionToken()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if time.Until(expiresAt) < 23*time.Hour {
		t.Fatalf("expected ~24h expiry, got %v", time.Until(expiresAt))
	}

	claims, err := manager.ParseSessionToken(token)
	if err != nil {
		t.Fatalf("expected valid token, got %v", err)
	}
	if claims.Issuer != "finance-tracker" {
		t.Fatalf("unexpected issuer: %s", claims.Issuer)
	}
}

// TestSessionTokenExpired проверяет отклонение просроченного токена.
func TestSessionTokenExpired(t *testing.T) {
	manager := NewSessionManager("test-secret", "finance-tracker", -time.Minute)

	token, _, err := manager.NewSessionToken()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if _, err := manager.ParseSessionToken(token); err == nil {
		t.Fatal("expected error for expired token")
	}
}

// TestSessionTokenWrongSecret проверяет отклонение чужой подписи.
func TestSessionTokenWrongSecret(t *testing.T) {
	manager := NewSessionManager("test-secret", "finance-tracker", time.Hour)
	other := NewSessionManager("other-secret", "finance-tracker", time.Hour)

	token, _, err := manager.NewSessionToken()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if _, err := other.ParseSessionToken(token); err == nil {
		t.Fatal("expected error for wrong secret")
	}
}

// TestVerifyPIN проверяет сравнение PIN в обоих режимах.
func TestVerifyPIN(t *testing.T) {
	if !VerifyPIN("8981", "8981", "") {
		t.Fatal("expected plain PIN to match")
	}
	if VerifyPIN("0000", "8981", "") {
		t.Fatal("expected wrong PIN to fail")
	}
	if VerifyPIN("8981", "", "") {
		t.Fatal("expected empty configuration to fail")
	}

	hash, err := HashPIN("8981")
	if err != nil {
		t.Fatalf("hash pin: %v", err)
	}
	if !VerifyPIN("8981", "", hash) {
		t.Fatal("expected hashed PIN to match")
	}
	if VerifyPIN("0000", "", hash) {
		t.Fatal("expected wrong PIN to fail against hash")
	}
}
