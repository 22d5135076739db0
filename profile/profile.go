package profile

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"dotshop/db"
	"dotshop/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// UpdateProfile changes the caller's display name and email.
func UpdateProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var input struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if input.Name == "" || input.Email == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Name and email are required")
		return
	}

	userID := utils.GetUserIDFromRequest(r)
	email := utils.NormalizeEmail(input.Email)

	res, err := db.UserCollection.UpdateOne(ctx,
		bson.M{"userid": userID},
		bson.M{"$set": bson.M{"name": input.Name, "email": email, "updated_at": time.Now()}},
	)
	if err != nil {
		log.Println("UpdateProfile error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error updating profile")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"message": "Profile updated successfully",
		"user":    utils.M{"name": input.Name, "email": email},
	})
}
