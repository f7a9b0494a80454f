package main

// Eventos publicados por Checkout
const (
	RKOrderPlaced = "checkout.order.placed"
)

type OrderPlacedPayload struct {
	OrderID    string         `json:"order_id"`
	SessionID  string         `json:"session_id"`
	Items      []OrderItemEvt `json:"items"`
	TotalCents int64          `json:"total_cents"`
}

type OrderItemEvt struct {
	BookID    string `json:"book_id"`
	Title     string `json:"title"`
	Qty       int32  `json:"qty"`
	UnitCents int64  `json:"unit_cents"`
	LineCents int64  `json:"line_cents"`
}
