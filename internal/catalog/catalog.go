// Package catalog holds the static storefront data. It is compiled in
// and read-only; there is no catalog management API.
package catalog

import "adventureworks/internal/models"

// Categories is the storefront category list.
var Categories = []models.Category{
	{ID: "road", Name: "Road Bikes"},
	{ID: "mountain", Name: "Mountain Bikes"},
	{ID: "helmets", Name: "Helmets"},
	{ID: "accessories", Name: "Accessories"},
}

// Products is the catalog served by the API. Prices are USD.
var Products = []models.Product{
	{ID: "rb-750", Name: "Roadster 750", Brand: "Adventure Works", Category: "road", Price: 1499.00, Image: "/img/rb-750.jpg"},
	{ID: "rb-550", Name: "Roadster 550", Brand: "Adventure Works", Category: "road", Price: 999.00, Tag: models.TagDeal, Image: "/img/rb-550.jpg"},
	{ID: "rb-tour", Name: "Touring Pro", Brand: "Cascade", Category: "road", Price: 1899.00, Image: "/img/rb-tour.jpg"},
	{ID: "mb-400", Name: "Trailblazer 400", Brand: "Adventure Works", Category: "mountain", Price: 1199.00, Image: "/img/mb-400.jpg"},
	{ID: "mb-600", Name: "Trailblazer 600", Brand: "Adventure Works", Category: "mountain", Price: 1649.00, Tag: models.TagDeal, Image: "/img/mb-600.jpg"},
	{ID: "mb-kids", Name: "Junior Trail", Brand: "Cascade", Category: "mountain", Price: 449.00, Image: "/img/mb-kids.jpg"},
	{ID: "hl-sport", Name: "Sport Helmet", Brand: "SafeRide", Category: "helmets", Price: 89.99, Image: "/img/hl-sport.jpg"},
	{ID: "hl-road", Name: "Road Helmet", Brand: "SafeRide", Category: "helmets", Price: 129.99, Tag: models.TagDeal, Image: "/img/hl-road.jpg"},
	{ID: "hl-mtb", Name: "Mountain Helmet", Brand: "Cascade", Category: "helmets", Price: 119.00, Image: "/img/hl-mtb.jpg"},
	{ID: "ac-bottle", Name: "Water Bottle", Brand: "Adventure Works", Category: "accessories", Price: 12.50, Image: "/img/ac-bottle.jpg"},
	{ID: "ac-light", Name: "LED Light Set", Brand: "Lumen", Category: "accessories", Price: 34.99, Tag: models.TagDeal, Image: "/img/ac-light.jpg"},
	{ID: "ac-lock", Name: "U-Lock", Brand: "Guardian", Category: "accessories", Price: 49.00, Image: "/img/ac-lock.jpg"},
	{ID: "ac-pump", Name: "Floor Pump", Brand: "Lumen", Category: "accessories", Price: 59.99, Image: "/img/ac-pump.jpg"},
}
