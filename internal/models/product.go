package models

// TagDeal marks a product whose unit price is cut 25% at checkout.
const TagDeal = "deal"

// Product represents one entry of the static catalog. The catalog is
// loaded once at startup and never mutated; orders snapshot the fields
// they need so later catalog changes cannot affect them.
type Product struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Brand    string  `json:"brand"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	Tag      string  `json:"tag,omitempty"`
	Image    string  `json:"image,omitempty"`
}

// Category groups catalog products for storefront navigation.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
