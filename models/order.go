package models

import "time"

// Fulfillment status values, distinct from the paid flag.
const (
	StatusPlaced    = "Order Placed"
	StatusPacked    = "Packed"
	StatusShipped   = "Shipped"
	StatusOutForDel = "Out for Delivery"
	StatusDelivered = "Delivered"
)

var OrderStatuses = []string{
	StatusPlaced,
	StatusPacked,
	StatusShipped,
	StatusOutForDel,
	StatusDelivered,
}

// ValidStatus reports whether s is one of the five fulfillment statuses.
func ValidStatus(s string) bool {
	for _, v := range OrderStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// Order is one cart line at checkout time. A single checkout produces one
// Order document per cart line, all sharing the same RazorpayOrderID so a
// payment callback can settle them together. Name, unit price and address
// are snapshots; catalog edits and deletions do not rewrite them.
type Order struct {
	OrderID           string    `json:"orderid" bson:"orderid"`
	UserID            string    `json:"userid" bson:"userid"`
	ProductID         string    `json:"productid" bson:"productid"`
	ProductName       string    `json:"productName" bson:"productname"`
	UnitPrice         float64   `json:"unitPrice" bson:"unitprice"`
	Quantity          int       `json:"quantity" bson:"quantity"`
	TotalPrice        float64   `json:"totalPrice" bson:"totalprice"`
	Address           Address   `json:"address" bson:"address"`
	Paid              bool      `json:"paid" bson:"paid"`
	Status            string    `json:"status" bson:"status"`
	RazorpayOrderID   string    `json:"razorpayOrderId" bson:"razorpayorderid"`
	RazorpayPaymentID string    `json:"razorpayPaymentId,omitempty" bson:"razorpaypaymentid,omitempty"`
	CreatedAt         time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt         time.Time `json:"updated_at" bson:"updated_at"`
}
