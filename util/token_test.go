package util

import (
	"testing"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := newTokenManager("test-secret", 1, 2)

	msg := &JWTMessage{UserID: 42, Username: "alice", CompanyID: 3, IsAdmin: true}
	access, refresh, err := tm.CreateTokens(msg)
	if err != nil {
		t.Fatalf("CreateTokens() error: %v", err)
	}
	if access == "" || refresh == "" {
		t.Fatal("CreateTokens() returned empty token")
	}

	got, err := tm.CheckToken(access)
	if err != nil {
		t.Fatalf("CheckToken() error: %v", err)
	}
	if got != *msg {
		t.Errorf("CheckToken() = %+v, want %+v", got, *msg)
	}
}

func TestCheckTokenWrongSecret(t *testing.T) {
	tm := newTokenManager("secret-a", 1, 2)
	access, _, err := tm.CreateTokens(&JWTMessage{UserID: 1, Username: "bob"})
	if err != nil {
		t.Fatalf("CreateTokens() error: %v", err)
	}

	other := newTokenManager("secret-b", 1, 2)
	if _, err := other.CheckToken(access); err == nil {
		t.Error("expected verification failure with a different secret")
	}
}

func TestCheckTokenExpired(t *testing.T) {
	tm := newTokenManager("test-secret", -1, -1)
	access, _, err := tm.CreateTokens(&JWTMessage{UserID: 1, Username: "bob"})
	if err != nil {
		t.Fatalf("CreateTokens() error: %v", err)
	}
	if _, err := tm.CheckToken(access); err == nil {
		t.Error("expected expired token to fail verification")
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter2")
	if err != nil {
		t.Fatalf("HashPassword() error: %v", err)
	}
	if !CheckPassword(hash, "hunter2") {
		t.Error("CheckPassword() rejected the original password")
	}
	if CheckPassword(hash, "hunter3") {
		t.Error("CheckPassword() accepted a wrong password")
	}
}

func TestGeneratePassword(t *testing.T) {
	a := GeneratePassword()
	b := GeneratePassword()
	if len(a) != 8 || len(b) != 8 {
		t.Errorf("GeneratePassword() lengths = %d, %d, want 8", len(a), len(b))
	}
	if a == b {
		t.Error("GeneratePassword() returned the same value twice")
	}
}
