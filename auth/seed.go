package auth

import (
	"context"
	"log"
	"os"
	"time"

	"dotshop/db"
	"dotshop/models"
	"dotshop/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// EnsureDefaultAdmin creates the back-office admin account from ADMIN_NAME,
// ADMIN_EMAIL and ADMIN_PASSWORD when no admin with that email exists yet.
func EnsureDefaultAdmin(ctx context.Context) {
	name := os.Getenv("ADMIN_NAME")
	email := utils.NormalizeEmail(os.Getenv("ADMIN_EMAIL"))
	password := os.Getenv("ADMIN_PASSWORD")

	if name == "" || email == "" || password == "" {
		log.Println("ADMIN_NAME, ADMIN_EMAIL or ADMIN_PASSWORD not set; skipping admin seed")
		return
	}

	err := db.UserCollection.FindOne(ctx, bson.M{"email": email, "role": models.RoleAdmin}).Err()
	if err == nil {
		return
	}
	if err != mongo.ErrNoDocuments {
		log.Printf("Admin seed lookup failed: %v", err)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Admin seed hash failed: %v", err)
		return
	}

	admin := models.User{
		UserID:    "u" + utils.GenerateName(10),
		Name:      name,
		Email:     email,
		Password:  string(hashed),
		Role:      models.RoleAdmin,
		Addresses: []models.Address{},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if _, err := db.UserCollection.InsertOne(ctx, admin); err != nil {
		log.Printf("Admin seed insert failed: %v", err)
		return
	}
	log.Printf("Default admin created: %s", email)
}
