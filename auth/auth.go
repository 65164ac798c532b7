// Copyright (c) 2025 FESC Electoral Systems.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
)

var ErrInvalidAdminToken = errors.New("invalid admin token")

// GenerateID creates a random hex ID of the specified byte length
func GenerateID(byteLen int) (string, error) {
	b := make([]byte, byteLen)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate random ID: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// ValidateAdminToken checks the provided token against the configured one
// in constant time. An empty configured token rejects everything, so a
// misconfigured deployment never exposes the admin surface.
func ValidateAdminToken(provided, configured string) error {
	if configured == "" {
		return ErrInvalidAdminToken
	}
	if !hmac.Equal([]byte(provided), []byte(configured)) {
		return ErrInvalidAdminToken
	}
	return nil
}
