// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/shopdesk/auth"
	"github.com/danielhkuo/shopdesk/cliparse"
	"github.com/danielhkuo/shopdesk/middleware"
	"github.com/danielhkuo/shopdesk/models"
	"github.com/danielhkuo/shopdesk/store"
)

type AppHandler struct {
	db    *sql.DB
	store *store.Store
	cfg   cliparse.Config
}

func NewAppHandler(db *sql.DB, cfg cliparse.Config) *AppHandler {
	return &AppHandler{db: db, store: store.New(db), cfg: cfg}
}

// CreateApp handles POST /apps
// New apps start inactive; the client secret is only returned here
func (h *AppHandler) CreateApp(w http.ResponseWriter, r *http.Request) {
	var req models.CreateAppRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}
	if !isValidRedirectURI(req.RedirectURI) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "redirect_uri must be an absolute http(s) URL")
		return
	}

	secret, err := auth.GenerateSecret()
	if err != nil {
		slog.Error("failed to generate client secret", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create app")
		return
	}

	appID := uuid.NewString()
	clientID := uuid.NewString()

	_, err = h.db.Exec(`
		INSERT INTO oauth_app (id, name, client_id, secret_hash, redirect_uri, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, appID, req.Name, clientID, auth.HashToken(secret, h.cfg.TokenSalt), req.RedirectURI, models.AppInactive, time.Now().UTC())

	if err != nil {
		slog.Error("failed to insert oauth app", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create app")
		return
	}

	slog.Info("oauth app created", "app_id", appID, "client_id", clientID)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateAppResponse{
		AppID:        appID,
		ClientID:     clientID,
		ClientSecret: secret,
	})
}

// Activate handles POST /apps/{id}/activate
func (h *AppHandler) Activate(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, models.AppActive)
}

// Deactivate handles POST /apps/{id}/deactivate
func (h *AppHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, models.AppInactive)
}

func (h *AppHandler) setStatus(w http.ResponseWriter, r *http.Request, status string) {
	appID := r.PathValue("id")
	if appID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "app_id is required")
		return
	}

	err := h.store.SetStatus(r.Context(), store.AppTable.Name, appID, status)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "App not found")
		return
	}
	if err != nil {
		slog.Error("failed to update oauth app status", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update app")
		return
	}

	slog.Info("oauth app status updated", "app_id", appID, "status", status)

	middleware.JSONResponse(w, http.StatusOK, models.StatusResponse{
		ID:     appID,
		Status: status,
	})
}

func isValidRedirectURI(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "https" || u.Scheme == "http") && u.Host != ""
}
