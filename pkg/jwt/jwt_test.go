package jwt

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	m := NewManager("secret", time.Minute, "transcript-search")
	userID := uuid.New()

	token, err := m.GenerateAccessToken(userID, "ana@example.com", "member")
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}

	claims, err := m.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("ValidateAccessToken() error = %v", err)
	}
	if claims.UserID != userID || claims.Email != "ana@example.com" || claims.Role != "member" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestValidateAccessTokenRejects(t *testing.T) {
	m := NewManager("secret", time.Minute, "transcript-search")
	token, err := m.GenerateAccessToken(uuid.New(), "", "member")
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}

	tests := []struct {
		name  string
		m     *Manager
		token string
	}{
		{"wrong secret", NewManager("other", time.Minute, "transcript-search"), token},
		{"wrong issuer", NewManager("secret", time.Minute, "someone-else"), token},
		{"garbage", m, "not.a.token"},
		{"empty", m, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.m.ValidateAccessToken(tt.token); err == nil {
				t.Error("ValidateAccessToken() expected error")
			}
		})
	}
}

func TestValidateAccessTokenExpired(t *testing.T) {
	m := NewManager("secret", -time.Minute, "transcript-search")
	token, err := m.GenerateAccessToken(uuid.New(), "", "member")
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}
	if _, err := m.ValidateAccessToken(token); !errors.Is(err, ErrExpired) {
		t.Errorf("ValidateAccessToken() error = %v, want ErrExpired", err)
	}
}
