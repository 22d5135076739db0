package cart

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"dotshop/db"
	"dotshop/models"
	"dotshop/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// addLine increments the quantity of an existing line or appends a new one.
func addLine(items []models.CartLine, productID string, quantity int) []models.CartLine {
	for i := range items {
		if items[i].ProductID == productID {
			items[i].Quantity += quantity
			return items
		}
	}
	return append(items, models.CartLine{ProductID: productID, Quantity: quantity})
}

// setQuantity overwrites the quantity of a line. Reports whether the line
// was found.
func setQuantity(items []models.CartLine, productID string, quantity int) ([]models.CartLine, bool) {
	for i := range items {
		if items[i].ProductID == productID {
			items[i].Quantity = quantity
			return items, true
		}
	}
	return items, false
}

// removeLine drops a line from the cart.
func removeLine(items []models.CartLine, productID string) []models.CartLine {
	out := items[:0]
	for _, it := range items {
		if it.ProductID != productID {
			out = append(out, it)
		}
	}
	return out
}

// resolveLines joins cart lines against the catalog. A missing product
// resolves to a nil line product, mirroring how the original populate
// behaved for deleted catalog entries.
func resolveLines(ctx context.Context, items []models.CartLine) ([]models.ResolvedCartLine, error) {
	resolved := make([]models.ResolvedCartLine, 0, len(items))
	for _, it := range items {
		line := models.ResolvedCartLine{Quantity: it.Quantity}
		var product models.Product
		err := db.ProductCollection.FindOne(ctx, bson.M{"productid": it.ProductID}).Decode(&product)
		if err == nil {
			line.Product = &product
		} else if err != mongo.ErrNoDocuments {
			return nil, err
		}
		resolved = append(resolved, line)
	}
	return resolved, nil
}

func respondWithCart(w http.ResponseWriter, ctx context.Context, c models.Cart) {
	resolved, err := resolveLines(ctx, c.Items)
	if err != nil {
		log.Println("cart resolve error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error reading cart")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"userid": c.UserID,
		"items":  resolved,
	})
}

// GetCart returns the caller's cart with lines resolved against the catalog.
func GetCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)

	var c models.Cart
	err := db.CartCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&c)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"userid": userID, "items": []models.ResolvedCartLine{}})
		return
	} else if err != nil {
		log.Println("GetCart error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching cart")
		return
	}

	respondWithCart(w, ctx, c)
}

// AddToCart adds a line or bumps the quantity of an existing one. The cart
// document is created lazily on first add.
func AddToCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var input struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if input.ProductID == "" || input.Quantity < 1 {
		utils.RespondWithError(w, http.StatusBadRequest, "productId and a quantity of at least 1 are required")
		return
	}

	// The product must exist at time of add.
	err := db.ProductCollection.FindOne(ctx, bson.M{"productid": input.ProductID}).Err()
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusBadRequest, "Product not found")
		return
	} else if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error checking product")
		return
	}

	userID := utils.GetUserIDFromRequest(r)

	var c models.Cart
	err = db.CartCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&c)
	if err == mongo.ErrNoDocuments {
		c = models.Cart{UserID: userID, Items: []models.CartLine{}}
	} else if err != nil {
		log.Println("AddToCart fetch error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching cart")
		return
	}

	c.Items = addLine(c.Items, input.ProductID, input.Quantity)
	c.UpdatedAt = time.Now()

	if err := saveCart(ctx, c); err != nil {
		log.Println("AddToCart save error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error adding to cart")
		return
	}

	respondWithCart(w, ctx, c)
}

// UpdateCartItem sets the quantity of an existing line.
func UpdateCartItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var input struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if input.Quantity < 1 {
		utils.RespondWithError(w, http.StatusBadRequest, "Quantity must be at least 1")
		return
	}

	userID := utils.GetUserIDFromRequest(r)

	var c models.Cart
	err := db.CartCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&c)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Cart not found")
		return
	} else if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching cart")
		return
	}

	items, found := setQuantity(c.Items, ps.ByName("productId"), input.Quantity)
	if !found {
		utils.RespondWithError(w, http.StatusNotFound, "Item not in cart")
		return
	}
	c.Items = items
	c.UpdatedAt = time.Now()

	if err := saveCart(ctx, c); err != nil {
		log.Println("UpdateCartItem save error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error updating cart")
		return
	}

	respondWithCart(w, ctx, c)
}

// RemoveFromCart deletes a line from the cart.
func RemoveFromCart(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)

	var c models.Cart
	err := db.CartCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&c)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Cart not found")
		return
	} else if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching cart")
		return
	}

	c.Items = removeLine(c.Items, ps.ByName("productId"))
	c.UpdatedAt = time.Now()

	if err := saveCart(ctx, c); err != nil {
		log.Println("RemoveFromCart save error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error removing from cart")
		return
	}

	respondWithCart(w, ctx, c)
}

// saveCart is a plain read-modify-write upsert; concurrent mutations for the
// same user are last-write-wins.
func saveCart(ctx context.Context, c models.Cart) error {
	_, err := db.CartCollection.UpdateOne(ctx,
		bson.M{"userid": c.UserID},
		bson.M{"$set": bson.M{"items": c.Items, "updated_at": c.UpdatedAt}},
		options.Update().SetUpsert(true),
	)
	return err
}
