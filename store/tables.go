// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"database/sql"
	"strconv"

	"github.com/danielhkuo/shopdesk/models"
)

var InventoryTable = Table{
	Name:          "inventory_item",
	Columns:       "id, sku, name, quantity, status, created_at",
	SearchColumns: []string{"sku", "name"},
	OrderBy:       "created_at DESC, id",
	UpdatedColumn: "updated_at",
	scan: func(rows *sql.Rows) (models.Row, error) {
		var r models.Row
		var quantity int
		err := rows.Scan(&r.ID, &r.Subtitle, &r.Title, &quantity, &r.Status, &r.CreatedAt)
		r.Detail = strconv.Itoa(quantity) + " units"
		return r, err
	},
}

var APIKeyTable = Table{
	Name:          "api_key",
	Columns:       "id, name, prefix, status, created_at",
	SearchColumns: []string{"name", "prefix"},
	OrderBy:       "created_at DESC, id",
	scan: func(rows *sql.Rows) (models.Row, error) {
		var r models.Row
		var prefix string
		err := rows.Scan(&r.ID, &r.Title, &prefix, &r.Status, &r.CreatedAt)
		r.Subtitle = prefix + "…"
		return r, err
	},
}

var AppTable = Table{
	Name:          "oauth_app",
	Columns:       "id, name, client_id, redirect_uri, status, created_at",
	SearchColumns: []string{"name", "client_id"},
	OrderBy:       "created_at DESC, id",
	scan: func(rows *sql.Rows) (models.Row, error) {
		var r models.Row
		err := rows.Scan(&r.ID, &r.Title, &r.Subtitle, &r.Detail, &r.Status, &r.CreatedAt)
		return r, err
	},
}
