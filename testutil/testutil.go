// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/shopdesk/auth"
	"github.com/danielhkuo/shopdesk/cliparse"
	"github.com/danielhkuo/shopdesk/db"
)

// SetupTestDB creates a fresh in-memory SQLite database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(db.TypeSQLite, ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3318,
		DatabaseURL:  ":memory:",
		DatabaseType: "sqlite",
		TokenSalt:    "test-token-salt",
		PageSize:     10,
	}
}

// CreateTestItem inserts an inventory item and returns its ID.
// created_at is offset by age so ordering is deterministic.
func CreateTestItem(t *testing.T, conn *sql.DB, sku, name string, quantity int, status string, age time.Duration) string {
	t.Helper()

	id := uuid.NewString()
	created := time.Now().UTC().Add(-age)
	_, err := conn.Exec(`
		INSERT INTO inventory_item (id, sku, name, quantity, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, id, sku, name, quantity, status, created, created)
	if err != nil {
		t.Fatalf("Failed to create test item: %v", err)
	}

	return id
}

// CreateTestAPIKey inserts an API key and returns its ID and plaintext token
func CreateTestAPIKey(t *testing.T, conn *sql.DB, cfg cliparse.Config, name, status string) (keyID, token string) {
	t.Helper()

	token, err := auth.GenerateAPIKey()
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}
	keyID = uuid.NewString()

	var revokedAt *time.Time
	if status == "revoked" {
		now := time.Now().UTC()
		revokedAt = &now
	}

	_, err = conn.Exec(`
		INSERT INTO api_key (id, name, prefix, token_hash, status, created_at, revoked_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, keyID, name, auth.DisplayPrefix(token), auth.HashToken(token, cfg.TokenSalt), status, time.Now().UTC(), revokedAt)
	if err != nil {
		t.Fatalf("Failed to create test api key: %v", err)
	}

	return keyID, token
}

// CreateTestApp inserts an OAuth app and returns its ID
func CreateTestApp(t *testing.T, conn *sql.DB, name, status string) string {
	t.Helper()

	id := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO oauth_app (id, name, client_id, secret_hash, redirect_uri, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, id, name, uuid.NewString(), "hash", "https://example.com/callback", status, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test app: %v", err)
	}

	return id
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
