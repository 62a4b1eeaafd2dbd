// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

  - CreateItemRequest: sku, name, quantity, status (optional)
  - UpdateStatusRequest: status
  - CreateAPIKeyRequest: name
  - CreateAppRequest: name, redirect_uri

# Response Types

  - CreateItemResponse: item_id, status
  - CreateAPIKeyResponse: key_id, token, prefix
  - CreateAppResponse: app_id, client_id, client_secret
  - StatusResponse: id, status
  - ListPageResponse: JSON form of a list page
  - ErrorResponse: error, message

# Domain Types

  - InventoryItem, APIKey, OAuthApp: stored records
  - Row: the generic row every list page renders

# Constants

Inventory: StockIn, StockLow, StockOut, StockBackordered.
API keys: KeyActive, KeyRevoked. OAuth apps: AppActive, AppInactive.

DeriveStockStatus picks an inventory status from quantity when a create
request leaves it empty.
*/
package models
