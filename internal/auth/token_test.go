package auth

import (
	"errors"
	"testing"
	"time"
)

var testSecret = []byte("test-secret-key-for-jwt-signing")

func TestTokenService_IssueAndVerify(t *testing.T) {
	svc := NewTokenService(testSecret, time.Hour)

	token, err := svc.Issue(42, "alice")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	principal, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if principal.UserID != 42 {
		t.Errorf("UserID = %d, want 42", principal.UserID)
	}
	if principal.Username != "alice" {
		t.Errorf("Username = %q, want %q", principal.Username, "alice")
	}
}

func TestTokenService_NoExpiryWhenTTLZero(t *testing.T) {
	svc := NewTokenService(testSecret, 0)

	token, err := svc.Issue(1, "alice")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if _, err := svc.Verify(token); err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
}

func TestTokenService_InvalidToken(t *testing.T) {
	svc := NewTokenService(testSecret, time.Hour)

	tests := []struct {
		name  string
		token string
	}{
		{
			name:  "empty token",
			token: "",
		},
		{
			name:  "garbage token",
			token: "not-a-jwt-token",
		},
		{
			name:  "malformed JWT",
			token: "header.payload.signature",
		},
		{
			name: "wrong secret",
			token: func() string {
				other := NewTokenService([]byte("different-secret"), time.Hour)
				token, _ := other.Issue(42, "alice")
				return token
			}(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Verify(tt.token)
			if err == nil {
				t.Fatal("Verify() should have returned an error")
			}
			if !errors.Is(err, ErrInvalidToken) {
				t.Errorf("error = %v, want ErrInvalidToken", err)
			}
		})
	}
}

func TestTokenService_ExpiredToken(t *testing.T) {
	svc := NewTokenService(testSecret, -time.Minute)

	token, err := svc.Issue(42, "alice")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	if _, err := svc.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Verify() error = %v, want ErrInvalidToken", err)
	}
}
