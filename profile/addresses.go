package profile

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"regexp"
	"time"

	"dotshop/db"
	"dotshop/models"
	"dotshop/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// Delivery is limited to the Coimbatore region, hence the pincode prefix.
var (
	pincodeRe = regexp.MustCompile(`^641\d{3}$`)
	phoneRe   = regexp.MustCompile(`^\d{10}$`)
)

type addressInput struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
	Phone   string `json:"phone"`
}

func validateAddress(in addressInput) string {
	if !pincodeRe.MatchString(in.Pincode) {
		return "Only Coimbatore pincodes allowed"
	}
	if !phoneRe.MatchString(in.Phone) {
		return "Phone must be 10 digits"
	}
	return ""
}

func fetchUser(ctx context.Context, userID string) (*models.User, error) {
	var user models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

func saveAddresses(ctx context.Context, userID string, addresses []models.Address) error {
	_, err := db.UserCollection.UpdateOne(ctx,
		bson.M{"userid": userID},
		bson.M{"$set": bson.M{"addresses": addresses, "updated_at": time.Now()}},
	)
	return err
}

// GetAddresses lists the caller's saved addresses.
func GetAddresses(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	user, err := fetchUser(ctx, utils.GetUserIDFromRequest(r))
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"addresses": user.Addresses})
}

func AddAddress(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var input addressInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if msg := validateAddress(input); msg != "" {
		utils.RespondWithError(w, http.StatusBadRequest, msg)
		return
	}

	user, err := fetchUser(ctx, utils.GetUserIDFromRequest(r))
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	user.Addresses = append(user.Addresses, models.Address{
		AddressID: "a" + utils.GenerateName(10),
		Street:    input.Street,
		City:      input.City,
		State:     input.State,
		Pincode:   input.Pincode,
		Phone:     input.Phone,
	})

	if err := saveAddresses(ctx, user.UserID, user.Addresses); err != nil {
		log.Println("AddAddress save error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error saving address")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"addresses": user.Addresses})
}

func UpdateAddress(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var input addressInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if msg := validateAddress(input); msg != "" {
		utils.RespondWithError(w, http.StatusBadRequest, msg)
		return
	}

	user, err := fetchUser(ctx, utils.GetUserIDFromRequest(r))
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	addressID := ps.ByName("id")
	found := false
	for i := range user.Addresses {
		if user.Addresses[i].AddressID == addressID {
			user.Addresses[i].Street = input.Street
			user.Addresses[i].City = input.City
			user.Addresses[i].State = input.State
			user.Addresses[i].Pincode = input.Pincode
			user.Addresses[i].Phone = input.Phone
			found = true
			break
		}
	}
	if !found {
		utils.RespondWithError(w, http.StatusNotFound, "Address not found")
		return
	}

	if err := saveAddresses(ctx, user.UserID, user.Addresses); err != nil {
		log.Println("UpdateAddress save error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error saving address")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"addresses": user.Addresses})
}

func DeleteAddress(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	user, err := fetchUser(ctx, utils.GetUserIDFromRequest(r))
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	addressID := ps.ByName("id")
	kept := user.Addresses[:0]
	for _, a := range user.Addresses {
		if a.AddressID != addressID {
			kept = append(kept, a)
		}
	}
	user.Addresses = kept

	if err := saveAddresses(ctx, user.UserID, user.Addresses); err != nil {
		log.Println("DeleteAddress save error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error deleting address")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"addresses": user.Addresses})
}
