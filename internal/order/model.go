package order

import "time"

type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

// Item is one ordered line, snapshotted from the cart at placement.
type Item struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Size      string  `json:"size"`
	Price     float64 `json:"price"`
}

// ShippingAddress mirrors the backend's order payload field names.
type ShippingAddress struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	Pincode   string `json:"pincode"`
	Country   string `json:"country"`
}

// Order is independent of the cart once constructed: clearing or
// mutating the cart afterwards does not touch it.
type Order struct {
	ID              string          `json:"orderId"`
	Items           []Item          `json:"items"`
	ShippingAddress ShippingAddress `json:"shipping_address"`
	PaymentMethod   string          `json:"payment_method"`
	Total           float64         `json:"total"`
	Status          Status          `json:"status"`
	CreatedAt       time.Time       `json:"createdAt"`
}
