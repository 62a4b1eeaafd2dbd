// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"fmt"
	"net/http"

	"github.com/danielhkuo/shopdesk/cliparse"
	"github.com/danielhkuo/shopdesk/handlers"
	"github.com/danielhkuo/shopdesk/listpage"
	"github.com/danielhkuo/shopdesk/metrics"
	"github.com/danielhkuo/shopdesk/middleware"
	"github.com/danielhkuo/shopdesk/store"
	"github.com/danielhkuo/shopdesk/views"
)

// DefaultList is where the root path sends browsers
const DefaultList = "/admin/inventory"

func NewRouter(db *sql.DB, cfg cliparse.Config) (*http.ServeMux, error) {
	registry, err := listpage.NewRegistry(handlers.DefaultLists(cfg.PageSize)...)
	if err != nil {
		return nil, fmt.Errorf("failed to build list registry: %w", err)
	}
	renderer, err := views.New()
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	mux := http.NewServeMux()

	// Initialize handlers
	listHandler := handlers.NewListHandler(store.New(db), registry, renderer)
	inventoryHandler := handlers.NewInventoryHandler(db)
	apiKeyHandler := handlers.NewAPIKeyHandler(db, cfg)
	appHandler := handlers.NewAppHandler(db, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	mux.Handle("GET /metrics", metrics.Handler())

	// Admin list pages (HTML, or JSON with Accept: application/json)
	mux.HandleFunc("GET /admin/{list}", middleware.WithLogging(listHandler.ServeList))

	// Inventory
	mux.HandleFunc("POST /inventory", middleware.WithLogging(inventoryHandler.CreateItem))
	mux.HandleFunc("POST /inventory/{id}/status", middleware.WithLogging(inventoryHandler.UpdateStatus))
	mux.HandleFunc("DELETE /inventory/{id}", middleware.WithLogging(inventoryHandler.DeleteItem))

	// API keys
	mux.HandleFunc("POST /api-keys", middleware.WithLogging(apiKeyHandler.CreateKey))
	mux.HandleFunc("POST /api-keys/{id}/revoke", middleware.WithLogging(apiKeyHandler.RevokeKey))

	// OAuth apps
	mux.HandleFunc("POST /apps", middleware.WithLogging(appHandler.CreateApp))
	mux.HandleFunc("POST /apps/{id}/activate", middleware.WithLogging(appHandler.Activate))
	mux.HandleFunc("POST /apps/{id}/deactivate", middleware.WithLogging(appHandler.Deactivate))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, DefaultList, http.StatusFound)
	})

	return mux, nil
}
