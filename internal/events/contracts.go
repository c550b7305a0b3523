package events

import "time"

type OrderItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// OrderPlaced is emitted when an order row is persisted, for both COD
// and online payment types.
type OrderPlaced struct {
	EventType   string      `json:"eventType"`
	OrderID     string      `json:"orderId"`
	UserID      string      `json:"userId"`
	Items       []OrderItem `json:"items"`
	Amount      int64       `json:"amount"`
	PaymentType string      `json:"paymentType"`
	Timestamp   time.Time   `json:"timestamp"`
}

// OrderPaid is emitted when webhook reconciliation confirms an online
// payment.
type OrderPaid struct {
	EventType string    `json:"eventType"`
	OrderID   string    `json:"orderId"`
	UserID    string    `json:"userId"`
	Timestamp time.Time `json:"timestamp"`
}
