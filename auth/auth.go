// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strings"
)

var (
	ErrInvalidAdminKey  = errors.New("invalid admin key")
	ErrInvalidUserToken = errors.New("invalid user token")
)

// sign returns the URL-safe, unpadded HMAC-SHA256 of scope and id.
// The scope keeps admin keys and user tokens apart under a shared salt.
func sign(scope, id, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(scope))
	h.Write([]byte{0})
	h.Write([]byte(id))
	return strings.TrimRight(base64.URLEncoding.EncodeToString(h.Sum(nil)), "=")
}

// GenerateAdminKey creates the admin key for a movement.
// This is deterministic and verifiable
func GenerateAdminKey(movementID, salt string) string {
	return sign("movement", movementID, salt)
}

// ValidateAdminKey checks if the provided admin key is valid for the movement
func ValidateAdminKey(movementID, adminKey, salt string) error {
	expected := GenerateAdminKey(movementID, salt)
	if !hmac.Equal([]byte(adminKey), []byte(expected)) {
		return ErrInvalidAdminKey
	}
	return nil
}

// GenerateUserToken creates the bearer token identifying a user
func GenerateUserToken(userID, salt string) string {
	return sign("user", userID, salt)
}

// ValidateUserToken checks the token presented for userID
func ValidateUserToken(userID, token, salt string) error {
	if userID == "" {
		return ErrInvalidUserToken
	}
	expected := GenerateUserToken(userID, salt)
	if !hmac.Equal([]byte(token), []byte(expected)) {
		return ErrInvalidUserToken
	}
	return nil
}
