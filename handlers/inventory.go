// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/shopdesk/middleware"
	"github.com/danielhkuo/shopdesk/models"
	"github.com/danielhkuo/shopdesk/store"
)

type InventoryHandler struct {
	db    *sql.DB
	store *store.Store
}

func NewInventoryHandler(db *sql.DB) *InventoryHandler {
	return &InventoryHandler{db: db, store: store.New(db)}
}

func isValidStockStatus(status string) bool {
	switch status {
	case models.StockIn, models.StockLow, models.StockOut, models.StockBackordered:
		return true
	}
	return false
}

// CreateItem handles POST /inventory
func (h *InventoryHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var req models.CreateItemRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	req.SKU = strings.TrimSpace(req.SKU)
	req.Name = strings.TrimSpace(req.Name)

	// Validate input
	if req.SKU == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "sku is required")
		return
	}
	if req.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}
	if req.Quantity < 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "quantity must not be negative")
		return
	}
	if req.Status == "" {
		req.Status = models.DeriveStockStatus(req.Quantity)
	}
	if !isValidStockStatus(req.Status) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "status must be one of: in_stock, low_stock, out_of_stock, backordered")
		return
	}

	// SKUs are unique
	var exists int
	err := h.db.QueryRow("SELECT COUNT(*) FROM inventory_item WHERE sku = $1", req.SKU).Scan(&exists)
	if err != nil {
		slog.Error("failed to query inventory item", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if exists > 0 {
		middleware.ErrorResponse(w, http.StatusConflict, "sku already exists")
		return
	}

	itemID := uuid.NewString()
	now := time.Now().UTC()
	_, err = h.db.Exec(`
		INSERT INTO inventory_item (id, sku, name, quantity, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, itemID, req.SKU, req.Name, req.Quantity, req.Status, now, now)

	if err != nil {
		slog.Error("failed to insert inventory item", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create item")
		return
	}

	slog.Info("inventory item created", "item_id", itemID, "sku", req.SKU, "status", req.Status)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateItemResponse{
		ItemID: itemID,
		Status: req.Status,
	})
}

// UpdateStatus handles POST /inventory/{id}/status
func (h *InventoryHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	itemID := r.PathValue("id")
	if itemID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "item_id is required")
		return
	}

	var req models.UpdateStatusRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if !isValidStockStatus(req.Status) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "status must be one of: in_stock, low_stock, out_of_stock, backordered")
		return
	}

	err := h.store.SetStatus(r.Context(), store.InventoryTable.Name, itemID, req.Status)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Item not found")
		return
	}
	if err != nil {
		slog.Error("failed to update inventory status", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update item")
		return
	}

	slog.Info("inventory status updated", "item_id", itemID, "status", req.Status)

	middleware.JSONResponse(w, http.StatusOK, models.StatusResponse{
		ID:     itemID,
		Status: req.Status,
	})
}

// DeleteItem handles DELETE /inventory/{id}
func (h *InventoryHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	itemID := r.PathValue("id")
	if itemID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "item_id is required")
		return
	}

	res, err := h.db.Exec("DELETE FROM inventory_item WHERE id = $1", itemID)
	if err != nil {
		slog.Error("failed to delete inventory item", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete item")
		return
	}
	n, err := res.RowsAffected()
	if err != nil {
		slog.Error("failed to delete inventory item", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete item")
		return
	}
	if n == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Item not found")
		return
	}

	slog.Info("inventory item deleted", "item_id", itemID)

	w.WriteHeader(http.StatusNoContent)
}
