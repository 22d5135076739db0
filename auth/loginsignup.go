package auth

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"dotshop/db"
	"dotshop/globals"
	"dotshop/middleware"
	"dotshop/models"
	"dotshop/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 24 * time.Hour

// Signup creates a new account. Role defaults to "user"; plaintext
// passwords are never stored.
func Signup(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var input struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if input.Name == "" || input.Email == "" || input.Password == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Name, email and password are required")
		return
	}

	email := utils.NormalizeEmail(input.Email)

	err := db.UserCollection.FindOne(ctx, bson.M{"email": email}).Err()
	if err == nil {
		utils.RespondWithError(w, http.StatusConflict, "Email already exists")
		return
	} else if err != mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Signup: hash error for %s: %v", email, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to process password")
		return
	}

	role := input.Role
	if role == "" {
		role = models.RoleUser
	}

	user := models.User{
		UserID:    "u" + utils.GenerateName(10),
		Name:      input.Name,
		Email:     email,
		Password:  string(hashedPassword),
		Role:      role,
		Addresses: []models.Address{},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if _, err := db.UserCollection.InsertOne(ctx, user); err != nil {
		log.Printf("Signup: insert error for %s: %v", email, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to register user")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"message": "Signup successful",
		"user": utils.M{
			"userId": user.UserID,
			"name":   user.Name,
			"email":  user.Email,
			"role":   user.Role,
		},
	})
}

// Login checks credentials and issues a signed bearer token. When a role is
// supplied it is part of the lookup, so a wrong role fails even on a
// matching email.
func Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	filter := bson.M{"email": utils.NormalizeEmail(input.Email)}
	if input.Role != "" {
		filter["role"] = input.Role
	}

	var storedUser models.User
	if err := db.UserCollection.FindOne(ctx, filter).Decode(&storedUser); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "User not found or role mismatch")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(storedUser.Password), []byte(input.Password)); err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	tokenString, err := GenerateToken(storedUser)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"message": "Login successful",
		"token":   tokenString,
		"user": utils.M{
			"userId": storedUser.UserID,
			"name":   storedUser.Name,
			"email":  storedUser.Email,
			"role":   storedUser.Role,
		},
	})
}

// GenerateToken signs an HS256 bearer token carrying user id, email and role.
func GenerateToken(user models.User) (string, error) {
	claims := &middleware.Claims{
		UserID: user.UserID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(globals.JwtSecret)
}
