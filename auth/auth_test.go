package auth

import (
	"testing"

	"dotshop/middleware"
	"dotshop/models"

	"golang.org/x/crypto/bcrypt"
)

func TestPasswordsAreHashed(t *testing.T) {
	plaintext := "s3cret-pass"
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	if string(hashed) == plaintext {
		t.Fatal("hash must not equal the plaintext password")
	}
	if err := bcrypt.CompareHashAndPassword(hashed, []byte(plaintext)); err != nil {
		t.Fatalf("correct password should compare: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword(hashed, []byte("wrong-pass")); err == nil {
		t.Fatal("wrong password must not compare")
	}
}

func TestGenerateTokenRoundTrip(t *testing.T) {
	user := models.User{
		UserID: "u1234567890",
		Email:  "admin@example.com",
		Role:   models.RoleAdmin,
	}

	tokenString, err := GenerateToken(user)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := middleware.ValidateRawToken(tokenString)
	if err != nil {
		t.Fatalf("ValidateRawToken: %v", err)
	}
	if claims.UserID != user.UserID {
		t.Errorf("expected userId %s, got %s", user.UserID, claims.UserID)
	}
	if claims.Email != user.Email {
		t.Errorf("expected email %s, got %s", user.Email, claims.Email)
	}
	if claims.Role != models.RoleAdmin {
		t.Errorf("expected role admin, got %s", claims.Role)
	}
}

func TestValidateRawTokenRejectsGarbage(t *testing.T) {
	if _, err := middleware.ValidateRawToken(""); err == nil {
		t.Fatal("empty token must be rejected")
	}
	if _, err := middleware.ValidateRawToken("not.a.token"); err == nil {
		t.Fatal("malformed token must be rejected")
	}
}
