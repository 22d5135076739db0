package models

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Address is embedded in the user document and copied into orders at
// checkout so that later edits never rewrite history.
type Address struct {
	AddressID string `json:"id" bson:"addressid"`
	Street    string `json:"street" bson:"street"`
	City      string `json:"city" bson:"city"`
	State     string `json:"state" bson:"state"`
	Pincode   string `json:"pincode" bson:"pincode"`
	Phone     string `json:"phone" bson:"phone"`
}

type User struct {
	UserID    string    `json:"userid" bson:"userid"`
	Name      string    `json:"name" bson:"name"`
	Email     string    `json:"email" bson:"email"`
	Password  string    `json:"-" bson:"password"`
	Role      string    `json:"role" bson:"role"`
	Addresses []Address `json:"addresses" bson:"addresses"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}
