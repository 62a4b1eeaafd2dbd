// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/shopdesk/auth"
	"github.com/danielhkuo/shopdesk/cliparse"
	"github.com/danielhkuo/shopdesk/middleware"
	"github.com/danielhkuo/shopdesk/models"
)

type APIKeyHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewAPIKeyHandler(db *sql.DB, cfg cliparse.Config) *APIKeyHandler {
	return &APIKeyHandler{db: db, cfg: cfg}
}

// CreateKey handles POST /api-keys
// The plaintext token is only returned in this response
func (h *APIKeyHandler) CreateKey(w http.ResponseWriter, r *http.Request) {
	var req models.CreateAPIKeyRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}

	token, err := auth.GenerateAPIKey()
	if err != nil {
		slog.Error("failed to generate api key", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create API key")
		return
	}

	keyID := uuid.NewString()
	prefix := auth.DisplayPrefix(token)

	_, err = h.db.Exec(`
		INSERT INTO api_key (id, name, prefix, token_hash, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, keyID, req.Name, prefix, auth.HashToken(token, h.cfg.TokenSalt), models.KeyActive, time.Now().UTC())

	if err != nil {
		slog.Error("failed to insert api key", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create API key")
		return
	}

	slog.Info("api key created", "key_id", keyID, "prefix", prefix)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateAPIKeyResponse{
		KeyID:  keyID,
		Token:  token,
		Prefix: prefix,
	})
}

// RevokeKey handles POST /api-keys/{id}/revoke
func (h *APIKeyHandler) RevokeKey(w http.ResponseWriter, r *http.Request) {
	keyID := r.PathValue("id")
	if keyID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "key_id is required")
		return
	}

	var status string
	err := h.db.QueryRow("SELECT status FROM api_key WHERE id = $1", keyID).Scan(&status)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "API key not found")
		return
	}
	if err != nil {
		slog.Error("failed to query api key", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if status == models.KeyRevoked {
		middleware.ErrorResponse(w, http.StatusConflict, "API key is already revoked")
		return
	}

	_, err = h.db.Exec(`
		UPDATE api_key
		SET status = $1, revoked_at = $2
		WHERE id = $3
	`, models.KeyRevoked, time.Now().UTC(), keyID)
	if err != nil {
		slog.Error("failed to revoke api key", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to revoke API key")
		return
	}

	slog.Info("api key revoked", "key_id", keyID)

	middleware.JSONResponse(w, http.StatusOK, models.StatusResponse{
		ID:     keyID,
		Status: models.KeyRevoked,
	})
}
