// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// MaxPasswordLength is the number of characters of a password that take part
// in hashing. Longer passwords are truncated, so any two passwords sharing
// the same first MaxPasswordLength characters are equivalent.
const MaxPasswordLength = 50

const (
	saltBytes     = 8
	hashSeparator = ":"
)

// HashPassword derives the stored credential for password.
//
// The result has the form "<salt>:<hex sha256(password+salt)>" where salt is
// 8 random bytes encoded as 16 hex characters.
func HashPassword(password string) (string, error) {
	buf := make([]byte, saltBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("error generating password salt: %w", err)
	}

	salt := hex.EncodeToString(buf)
	return salt + hashSeparator + saltedDigest(password, salt), nil
}

// CheckPassword reports whether password matches the stored credential.
// A malformed stored value never matches.
func CheckPassword(password, stored string) bool {
	salt, digest, ok := strings.Cut(stored, hashSeparator)
	if !ok || salt == "" || digest == "" {
		return false
	}

	return saltedDigest(password, salt) == digest
}

func saltedDigest(password, salt string) string {
	sum := sha256.Sum256([]byte(truncatePassword(password) + salt))
	return hex.EncodeToString(sum[:])
}

func truncatePassword(password string) string {
	runes := []rune(password)
	if len(runes) <= MaxPasswordLength {
		return password
	}
	return string(runes[:MaxPasswordLength])
}
