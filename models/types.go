package models

import (
	"time"

	"github.com/danielhkuo/shopdesk/listpage"
	"github.com/danielhkuo/shopdesk/tabs"
)

// Inventory status constants
const (
	StockIn          = "in_stock"
	StockLow         = "low_stock"
	StockOut         = "out_of_stock"
	StockBackordered = "backordered"
)

// API key status constants
const (
	KeyActive  = "active"
	KeyRevoked = "revoked"
)

// OAuth app status constants
const (
	AppActive   = "active"
	AppInactive = "inactive"
)

// LowStockThreshold is the quantity below which an item counts as low stock
const LowStockThreshold = 5

// DeriveStockStatus picks a status from quantity when none was given
func DeriveStockStatus(quantity int) string {
	switch {
	case quantity <= 0:
		return StockOut
	case quantity < LowStockThreshold:
		return StockLow
	default:
		return StockIn
	}
}

// Request types

type CreateItemRequest struct {
	SKU      string `json:"sku"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Status   string `json:"status,omitempty"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type CreateAPIKeyRequest struct {
	Name string `json:"name"`
}

type CreateAppRequest struct {
	Name        string `json:"name"`
	RedirectURI string `json:"redirect_uri"`
}

// Response types

type CreateItemResponse struct {
	ItemID string `json:"item_id"`
	Status string `json:"status"`
}

// Token is only ever returned here; the database keeps a hash
type CreateAPIKeyResponse struct {
	KeyID  string `json:"key_id"`
	Token  string `json:"token"`
	Prefix string `json:"prefix"`
}

type CreateAppResponse struct {
	AppID        string `json:"app_id"`
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
}

type StatusResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// Domain types

type InventoryItem struct {
	ID        string    `json:"id"`
	SKU       string    `json:"sku"`
	Name      string    `json:"name"`
	Quantity  int       `json:"quantity"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type APIKey struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Prefix    string     `json:"prefix"`
	TokenHash string     `json:"-"` // Never expose in JSON
	Status    string     `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	RevokedAt *time.Time `json:"revoked_at,omitempty"`
}

type OAuthApp struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	ClientID    string    `json:"client_id"`
	SecretHash  string    `json:"-"` // Never expose in JSON
	RedirectURI string    `json:"redirect_uri"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// Row is the generic shape every list page renders
type Row struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Subtitle  string    `json:"subtitle,omitempty"`
	Detail    string    `json:"detail,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// ListPageResponse is the JSON form of a list page
type ListPageResponse struct {
	List        string               `json:"list"`
	Title       string               `json:"title"`
	Search      string               `json:"search,omitempty"`
	Status      string               `json:"status"`
	Page        int                  `json:"page"`
	PageSize    int                  `json:"page_size"`
	Tabs        []tabs.Tab           `json:"tabs"`
	ActiveIndex int                  `json:"active_index"`
	RenderState listpage.RenderState `json:"render_state"`
	Items       []Row                `json:"items"`
	Count       int                  `json:"count"`
	Error       string               `json:"error,omitempty"`
	ResetURL    string               `json:"reset_url"`
	Pagination  listpage.Pagination  `json:"pagination"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
