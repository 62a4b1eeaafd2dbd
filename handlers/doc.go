// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the shopdesk admin dashboard.

# Handler Types

  - ListHandler: status-filtered list pages (HTML or JSON)
  - InventoryHandler: inventory items and their stock status
  - APIKeyHandler: API key issue and revoke
  - AppHandler: OAuth app registration and activation

Mutation handlers take *sql.DB and Config:

	inventoryHandler := handlers.NewInventoryHandler(db)

ListHandler takes the data boundary, the list registry and the renderer:

	lists := handlers.NewListHandler(store.New(db), registry, renderer)

# List Pages

	GET /admin/{list}?search=...&page=2&!status_matches=["low_stock"]

The URL is the only list state. The status filter is a JSON array in the
!status_matches parameter; anything malformed reads as "all". Every request
resolves exactly one render state: error, never_populated, no_results or
items. Unknown list names get a blocking 404 panel instead.

Send Accept: application/json to get models.ListPageResponse.

# Secrets

API key tokens and OAuth client secrets are returned once at creation.
Only HMAC hashes (see auth.HashToken) are stored.
*/
package handlers
