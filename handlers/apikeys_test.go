// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/shopdesk/auth"
	"github.com/danielhkuo/shopdesk/models"
	"github.com/danielhkuo/shopdesk/testutil"
)

func TestCreateKey(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewAPIKeyHandler(db, cfg)

	req := testutil.MakeRequest("POST", "/api-keys", models.CreateAPIKeyRequest{Name: "  deploy bot "}, nil)
	w := httptest.NewRecorder()

	handler.CreateKey(w, req)

	testutil.AssertStatus(t, w, http.StatusCreated)
	var resp models.CreateAPIKeyResponse
	testutil.AssertJSON(t, w, &resp)

	assert.True(t, strings.HasPrefix(resp.Token, auth.APIKeyPrefix))
	assert.Equal(t, auth.DisplayPrefix(resp.Token), resp.Prefix)

	var name, hash, status string
	err := db.QueryRow("SELECT name, token_hash, status FROM api_key WHERE id = $1", resp.KeyID).Scan(&name, &hash, &status)
	require.NoError(t, err)
	assert.Equal(t, "deploy bot", name)
	assert.Equal(t, models.KeyActive, status)
	assert.Equal(t, auth.HashToken(resp.Token, cfg.TokenSalt), hash)
	assert.NotContains(t, hash, resp.Token)
}

func TestCreateKey_Validation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewAPIKeyHandler(db, testutil.GetTestConfig())

	for name, body := range map[string]string{
		"missing name": `{}`,
		"blank name":   `{"name":"  "}`,
		"invalid JSON": `{name`,
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/api-keys", strings.NewReader(body))
			w := httptest.NewRecorder()

			handler.CreateKey(w, req)

			testutil.AssertStatus(t, w, http.StatusBadRequest)
		})
	}
}

func TestRevokeKey(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	keyID, _ := testutil.CreateTestAPIKey(t, db, cfg, "ci", models.KeyActive)
	handler := NewAPIKeyHandler(db, cfg)

	revoke := func(id string) *httptest.ResponseRecorder {
		req := httptest.NewRequest("POST", "/api-keys/"+id+"/revoke", nil)
		req.SetPathValue("id", id)
		w := httptest.NewRecorder()
		handler.RevokeKey(w, req)
		return w
	}

	w := revoke(keyID)
	testutil.AssertStatus(t, w, http.StatusOK)

	var status string
	var revokedAt sql.NullTime
	err := db.QueryRow("SELECT status, revoked_at FROM api_key WHERE id = $1", keyID).Scan(&status, &revokedAt)
	require.NoError(t, err)
	assert.Equal(t, models.KeyRevoked, status)
	assert.True(t, revokedAt.Valid)

	testutil.AssertStatus(t, revoke(keyID), http.StatusConflict)
	testutil.AssertStatus(t, revoke("missing"), http.StatusNotFound)
}
