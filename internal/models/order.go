package models

import "time"

// OrderLine is a snapshot of one purchased product at order time.
// Unit is the price actually charged (post-discount for "deal" items),
// Line is Unit times Qty rounded to 2 decimals.
type OrderLine struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Brand     string  `json:"brand"`
	Image     string  `json:"image,omitempty"`
	Tag       string  `json:"tag,omitempty"`
	Qty       int     `json:"qty"`
	Unit      float64 `json:"unit"`
	Line      float64 `json:"line"`
}

// Address is the shipping and contact block attached to an order.
type Address struct {
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
	Line1   string `json:"line1,omitempty"`
	City    string `json:"city,omitempty"`
	Country string `json:"country,omitempty"`
}

// Discount is an applied discount code and its flat amount.
type Discount struct {
	Code   string  `json:"code"`
	Amount float64 `json:"amount"`
}

// Order represents a persisted customer order. Status is the only
// field that changes after creation, and only through the admin API.
type Order struct {
	ID        string      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID    string      `json:"userId" gorm:"index;type:varchar(36)"`
	Items     []OrderLine `json:"items" gorm:"serializer:json"`
	Total     float64     `json:"total"`
	Address   *Address    `json:"address" gorm:"serializer:json"`
	Discount  *Discount   `json:"discount" gorm:"serializer:json"`
	Shipping  float64     `json:"shipping"`
	Status    string      `json:"status"`
	CreatedAt time.Time   `json:"createdAt"`
}
