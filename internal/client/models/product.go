package models

// Product is a store item from GET /product. Price is the point cost.
type Product struct {
	ID       string `json:"_id"`
	Name     string `json:"name"`
	Price    int    `json:"price"`
	Img      string `json:"img"`
	IsActive bool   `json:"isActive"`
	Stock    int    `json:"stock"`
}

// RedeemedProduct is a product inside the profile's redeemed list, with the
// collection status flag.
type RedeemedProduct struct {
	Product
	Redeemed       bool   `json:"redeemed"`
	RedemptionDate string `json:"redemptionDate,omitempty"`
}
