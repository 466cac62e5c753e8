package enum

import "strings"

// ── Order statuses (canonical set; CHECK constrained in DB) ──

const (
	OrderStatusPending        = "PENDING"
	OrderStatusPreparing      = "PREPARING"
	OrderStatusOutForDelivery = "OUT_FOR_DELIVERY"
	OrderStatusDelivered      = "DELIVERED"
	OrderStatusCancelled      = "CANCELLED"
)

// OrderStatuses lists the canonical statuses in lifecycle order.
var OrderStatuses = []string{
	OrderStatusPending,
	OrderStatusPreparing,
	OrderStatusOutForDelivery,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// IsValidOrderStatus reports whether s is a canonical order status.
func IsValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusPreparing, OrderStatusOutForDelivery,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// NormalizeOrderStatus maps legacy status spellings onto the canonical set.
// Earlier data revisions stored statuses like "Out for Delivery" and
// "out-for-delivery"; all of them collapse to one canonical value.
// Returns ("", false) for anything unrecognized.
func NormalizeOrderStatus(s string) (string, bool) {
	key := strings.ToUpper(strings.TrimSpace(s))
	key = strings.ReplaceAll(key, "-", "_")
	key = strings.ReplaceAll(key, " ", "_")
	if IsValidOrderStatus(key) {
		return key, true
	}
	return "", false
}

// ── Fulfillment types (seeded row IDs in order_types) ──

const (
	OrderTypeDelivery = "delivery"
	OrderTypePickup   = "pickup"
	OrderTypeDineIn   = "dine-in"
)

// ── Store status (manual override on store_settings) ──

const (
	StoreStatusAuto   = "auto"
	StoreStatusOpen   = "open"
	StoreStatusClosed = "closed"
)

func IsValidStoreStatus(s string) bool {
	switch s {
	case StoreStatusAuto, StoreStatusOpen, StoreStatusClosed:
		return true
	}
	return false
}
