package domain

import "time"

// RoleAdmin is the caller role allowed to change list prices
const RoleAdmin = "admin"

// Caller identifies the authenticated user behind a request
type Caller struct {
	UserID string
	Email  string
	Role   string
}

// IsAdmin reports whether the caller holds the admin role
func (c *Caller) IsAdmin() bool {
	return c != nil && c.Role == RoleAdmin
}

// PriceChange is one requested list price update
type PriceChange struct {
	SKU      string  `json:"sku"`
	OldPrice float64 `json:"oldPrice"`
	NewPrice float64 `json:"newPrice"`
}

// PriceListEntry is a product's current list price
type PriceListEntry struct {
	SKU         string
	Description string
	Price       float64
	UpdatedAt   time.Time
}

// PriceHistoryEntry records one applied price change
type PriceHistoryEntry struct {
	ID        string    `json:"id"`
	SKU       string    `json:"sku"`
	OldPrice  float64   `json:"oldPrice"`
	NewPrice  float64   `json:"newPrice"`
	ChangedBy string    `json:"changedBy"`
	ChangedAt time.Time `json:"changedAt"`
}

// PriceUpdateResult aggregates the outcome of a price change batch
type PriceUpdateResult struct {
	Updated int      `json:"updated"`
	Failed  int      `json:"failed"`
	Errors  []string `json:"errors"`
}
