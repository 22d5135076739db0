package models

import "time"

// CartLine is one {product, quantity} entry in a user's cart.
type CartLine struct {
	ProductID string `json:"productId" bson:"productid"`
	Quantity  int    `json:"quantity" bson:"quantity"`
}

// Cart is the single mutable cart document per user, created lazily on
// first add and emptied after a verified payment.
type Cart struct {
	UserID    string     `json:"userid" bson:"userid"`
	Items     []CartLine `json:"items" bson:"items"`
	UpdatedAt time.Time  `json:"updated_at" bson:"updated_at"`
}

// ResolvedCartLine pairs a cart line with its catalog product. Product is
// nil when the product no longer exists.
type ResolvedCartLine struct {
	Product  *Product `json:"product"`
	Quantity int      `json:"quantity"`
}
