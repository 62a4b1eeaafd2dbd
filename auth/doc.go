// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth generates the secrets handed out by the admin dashboard.

# API Keys

GenerateAPIKey returns a random "sk_" token made of base62 chunks:

	token, err := auth.GenerateAPIKey()

The token is shown to the operator exactly once. Only its salted hash and a
short display prefix are stored:

	hash := auth.HashToken(token, cfg.TokenSalt)
	prefix := auth.DisplayPrefix(token)

# OAuth Client Secrets

GenerateSecret returns 32 random bytes as URL-safe base64 without padding.
Secrets are hashed with HashToken before they reach the database.
*/
package auth
