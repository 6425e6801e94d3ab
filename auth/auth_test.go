// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"strings"
	"testing"
)

func TestGenerateAdminKey(t *testing.T) {
	tests := []struct {
		name       string
		movementID string
		salt       string
	}{
		{"standard", "movement123", "secret-salt"},
		{"empty movement id", "", "salt"},
		{"empty salt", "movement456", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := GenerateAdminKey(tt.movementID, tt.salt)

			if key == "" {
				t.Error("GenerateAdminKey() returned empty string")
			}

			// Should be deterministic
			if key2 := GenerateAdminKey(tt.movementID, tt.salt); key != key2 {
				t.Error("GenerateAdminKey() is not deterministic")
			}

			if tt.movementID != "" && tt.salt != "" {
				differentKey := GenerateAdminKey(tt.movementID+"x", tt.salt)
				if key == differentKey {
					t.Error("GenerateAdminKey() produced same key for different movement IDs")
				}
			}

			if strings.Contains(key, "=") {
				t.Error("GenerateAdminKey() contains padding characters")
			}
		})
	}
}

func TestValidateAdminKey(t *testing.T) {
	movementID := "test-movement-123"
	salt := "test-salt"
	validKey := GenerateAdminKey(movementID, salt)

	tests := []struct {
		name       string
		movementID string
		adminKey   string
		salt       string
		wantErr    bool
	}{
		{"valid key", movementID, validKey, salt, false},
		{"wrong key", movementID, "wrong-key", salt, true},
		{"wrong movement id", "different-movement", validKey, salt, true},
		{"wrong salt", movementID, validKey, "different-salt", true},
		{"empty key", movementID, "", salt, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAdminKey(tt.movementID, tt.adminKey, tt.salt)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateAdminKey() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && err != ErrInvalidAdminKey {
				t.Errorf("ValidateAdminKey() error = %v, want %v", err, ErrInvalidAdminKey)
			}
		})
	}
}

func TestValidateUserToken(t *testing.T) {
	userID := "user-1"
	salt := "token-salt"
	validToken := GenerateUserToken(userID, salt)

	tests := []struct {
		name    string
		userID  string
		token   string
		salt    string
		wantErr bool
	}{
		{"valid token", userID, validToken, salt, false},
		{"wrong token", userID, "nope", salt, true},
		{"other user", "user-2", validToken, salt, true},
		{"wrong salt", userID, validToken, "other-salt", true},
		{"empty user id", "", GenerateUserToken("", salt), salt, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUserToken(tt.userID, tt.token, tt.salt)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateUserToken() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && err != ErrInvalidUserToken {
				t.Errorf("ValidateUserToken() error = %v, want %v", err, ErrInvalidUserToken)
			}
		})
	}
}

func TestScopesDoNotCollide(t *testing.T) {
	id := "shared-id"
	salt := "same-salt"

	if GenerateAdminKey(id, salt) == GenerateUserToken(id, salt) {
		t.Fatal("admin key and user token are identical for the same id and salt")
	}
	if err := ValidateUserToken(id, GenerateAdminKey(id, salt), salt); err == nil {
		t.Error("admin key accepted as user token")
	}
	if err := ValidateAdminKey(id, GenerateUserToken(id, salt), salt); err == nil {
		t.Error("user token accepted as admin key")
	}
}
