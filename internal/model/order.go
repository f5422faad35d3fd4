package model

import "time"

// Order statuses. Any admin may set any of the five values at any time;
// there is no predecessor/successor state machine.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusShipped    = "shipped"
	StatusDelivered  = "delivered"
	StatusCancelled  = "cancelled"
)

var orderStatuses = map[string]bool{
	StatusPending:    true,
	StatusProcessing: true,
	StatusShipped:    true,
	StatusDelivered:  true,
	StatusCancelled:  true,
}

// ValidStatus reports whether s is one of the five order statuses.
func ValidStatus(s string) bool { return orderStatuses[s] }

// Order is a placed purchase. Total is the client-submitted cart total,
// stored as given. Items always carry the price snapshot taken at order
// time, so later product price edits never change order history.
type Order struct {
	ID        uint64       `json:"id"`
	UserID    uint64       `json:"userId"`
	Total     float64      `json:"total"`
	Status    string       `json:"status"`
	CreatedAt time.Time    `json:"createdAt"`
	User      *UserSummary `json:"user,omitempty"`
	Items     []OrderItem  `json:"orderItems"`
}

// OrderItem is one cart line inside an order. Price is the snapshot, not a
// reference to the live product price. Product is populated on reads when
// the product still exists; deleted products leave it nil without
// invalidating the item.
type OrderItem struct {
	ID        uint64   `json:"id"`
	OrderID   uint64   `json:"orderId"`
	ProductID uint64   `json:"productId"`
	Quantity  uint32   `json:"quantity"`
	Price     float64  `json:"price"`
	Product   *Product `json:"product,omitempty"`
}
