// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidToken    = errors.New("invalid token format")
	ErrInvalidPassword = errors.New("invalid password")
)

// HashPassword returns a bcrypt hash of the password
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword compares a password with a hash from HashPassword
func CheckPassword(hash, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrInvalidPassword
	}
	if err != nil {
		return fmt.Errorf("failed to check password: %w", err)
	}
	return nil
}

// GenerateSessionToken creates an HMAC-signed token for a user.
// Format: <username>.<signature>. Deterministic and verifiable without
// storing the token.
func GenerateSessionToken(username, salt string) string {
	return username + "." + sign(username, salt)
}

// ValidateSessionToken checks the token signature and returns the username
func ValidateSessionToken(token, salt string) (string, error) {
	i := strings.LastIndex(token, ".")
	if i <= 0 || i == len(token)-1 {
		return "", ErrInvalidToken
	}

	username, sig := token[:i], token[i+1:]
	if !hmac.Equal([]byte(sig), []byte(sign(username, salt))) {
		return "", ErrInvalidToken
	}
	return username, nil
}

func sign(value, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(value))
	sum := h.Sum(nil)
	// Use URL-safe base64 and trim padding for cleaner tokens
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}
