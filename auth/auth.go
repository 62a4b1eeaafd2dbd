// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"
)

// APIKeyPrefix marks every token issued by GenerateAPIKey
const APIKeyPrefix = "sk_"

// displayLen is how many token characters the list page shows
const displayLen = len(APIKeyPrefix) + 6

// GenerateAPIKey creates a random API key token.
// 24 random bytes are encoded as three base62 chunks.
func GenerateAPIKey() (string, error) {
	b := make([]byte, 24)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate api key: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(APIKeyPrefix)
	for i := 0; i < len(b); i += 8 {
		sb.WriteString(base62Encode(b[i : i+8]))
	}
	return sb.String(), nil
}

// DisplayPrefix returns the non-secret part of a token shown in lists
func DisplayPrefix(token string) string {
	if len(token) <= displayLen {
		return token
	}
	return token[:displayLen]
}

// GenerateSecret creates a random OAuth client secret
func GenerateSecret() (string, error) {
	b := make([]byte, 32)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate client secret: %w", err)
	}
	// URL-safe base64 without padding
	return strings.TrimRight(base64.URLEncoding.EncodeToString(b), "="), nil
}

// HashToken creates the salted one-way hash stored in place of a secret
func HashToken(token, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(token))
	return hex.EncodeToString(h.Sum(nil))
}

// base62Encode converts up to 8 bytes to base62 (0-9, a-z, A-Z)
func base62Encode(data []byte) string {
	const base62Chars = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

	var num uint64
	for i := 0; i < len(data) && i < 8; i++ {
		num = num<<8 | uint64(data[i])
	}

	if num == 0 {
		return "0"
	}

	result := make([]byte, 0, 11) // max length for uint64
	for num > 0 {
		result = append(result, base62Chars[num%62])
		num /= 62
	}

	for i, j := 0, len(result)-1; i < j; i, j = i+1, j-1 {
		result[i], result[j] = result[j], result[i]
	}

	return string(result)
}
