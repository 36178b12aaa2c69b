package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestGenerateAndParse(t *testing.T) {
	secret := []byte("test-secret")
	userID := uuid.New()

	token, err := Generate(userID, KindAccess, secret, time.Minute)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	got, err := Parse(token, KindAccess, secret)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if got != userID {
		t.Errorf("UserID = %v, want %v", got, userID)
	}
}

func TestParse_Failures(t *testing.T) {
	secret := []byte("test-secret")
	userID := uuid.New()

	expired, err := Generate(userID, KindAccess, secret, -time.Minute)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	valid, err := Generate(userID, KindAccess, secret, time.Minute)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	tests := []struct {
		name   string
		token  string
		secret []byte
	}{
		{
			name:   "expired token",
			token:  expired,
			secret: secret,
		},
		{
			name:   "wrong secret",
			token:  valid,
			secret: []byte("other-secret"),
		},
		{
			name:   "malformed token",
			token:  "not.a.jwt",
			secret: secret,
		},
		{
			name:   "empty token",
			token:  "",
			secret: secret,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.token, KindAccess, tt.secret)
			if !errors.Is(err, ErrInvalidToken) {
				t.Fatalf("expected ErrInvalidToken, got %v", err)
			}
			if got != uuid.Nil {
				t.Errorf("expected uuid.Nil on failure, got %v", got)
			}
		})
	}
}

func TestParse_DistinctSecretsPerTokenKind(t *testing.T) {
	// An access token must not validate against the refresh secret and
	// vice versa.
	accessSecret := []byte("access-secret")
	refreshSecret := []byte("refresh-secret")
	userID := uuid.New()

	access, err := Generate(userID, KindAccess, accessSecret, time.Minute)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if _, err := Parse(access, KindRefresh, refreshSecret); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestParse_KindClaimRejected(t *testing.T) {
	// Kind separation must hold on the claim alone, even when both kinds
	// happen to share a signing secret.
	secret := []byte("shared-secret")
	userID := uuid.New()

	access, err := Generate(userID, KindAccess, secret, time.Minute)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	refresh, err := Generate(userID, KindRefresh, secret, time.Minute)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if _, err := Parse(access, KindRefresh, secret); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("access token parsed as refresh: %v", err)
	}
	if _, err := Parse(refresh, KindAccess, secret); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("refresh token parsed as access: %v", err)
	}
}
