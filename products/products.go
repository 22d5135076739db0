package products

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"math"
	"net/http"
	"strconv"
	"time"

	"dotshop/db"
	"dotshop/filemgr"
	"dotshop/models"
	"dotshop/rdx"
	"dotshop/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	productListCacheKey = "products:all"
	productListCacheTTL = 60 * time.Second
)

// parsePrice parses a price and rejects NaN, infinities and non-positive
// values. ParseFloat happily accepts "NaN", which would slip past a plain
// <= 0 check.
func parsePrice(s string) (float64, error) {
	price, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(price) || math.IsInf(price, 0) || price <= 0 {
		return 0, errors.New("price must be a positive number")
	}
	return price, nil
}

// GetProducts lists the catalog, newest first. The list is cached in redis
// and invalidated on every catalog mutation.
func GetProducts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if cached, err := rdx.RdxGet(productListCacheKey); err == nil && cached != "" {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(cached))
		return
	}

	cursor, err := db.ProductCollection.Find(ctx, bson.M{},
		options.Find().SetSort(bson.M{"created_at": -1}))
	if err != nil {
		log.Println("GetProducts Find error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching products")
		return
	}
	defer cursor.Close(ctx)

	var items []models.Product
	if err := cursor.All(ctx, &items); err != nil {
		log.Println("GetProducts decode error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error reading products")
		return
	}
	if items == nil {
		items = []models.Product{}
	}

	if data, err := json.Marshal(items); err == nil {
		if err := rdx.RdxSetWithExpiry(productListCacheKey, string(data), productListCacheTTL); err != nil {
			log.Println("GetProducts cache set failed:", err)
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, items)
}

func GetProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var product models.Product
	err := db.ProductCollection.FindOne(ctx, bson.M{"productid": ps.ByName("id")}).Decode(&product)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	} else if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching product")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, product)
}

// CreateProduct accepts multipart form data with name, price, description
// and an optional image file.
func CreateProduct(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	name := r.FormValue("name")
	price, err := parsePrice(r.FormValue("price"))
	if name == "" || err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Name and a positive price are required")
		return
	}

	product := models.Product{
		ProductID:   "p" + utils.GenerateName(10),
		Name:        name,
		Price:       price,
		Description: r.FormValue("description"),
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if file, header, err := r.FormFile("image"); err == nil {
		defer file.Close()
		imageName, thumbName, err := filemgr.SaveProductImage(file, header)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid image: "+err.Error())
			return
		}
		product.Image = imageName
		product.Thumb = thumbName
	}

	if _, err := db.ProductCollection.InsertOne(ctx, product); err != nil {
		log.Println("CreateProduct insert error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error creating product")
		return
	}

	invalidateListCache()
	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"message": "Product created successfully",
		"product": product,
	})
}

func UpdateProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	update := bson.M{"updated_at": time.Now()}
	if name := r.FormValue("name"); name != "" {
		update["name"] = name
	}
	if desc := r.FormValue("description"); desc != "" {
		update["description"] = desc
	}
	if priceStr := r.FormValue("price"); priceStr != "" {
		price, err := parsePrice(priceStr)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Price must be a positive number")
			return
		}
		update["price"] = price
	}

	if file, header, err := r.FormFile("image"); err == nil {
		defer file.Close()
		imageName, thumbName, err := filemgr.SaveProductImage(file, header)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid image: "+err.Error())
			return
		}
		update["image"] = imageName
		update["thumb"] = thumbName
	}

	var updated models.Product
	err := db.ProductCollection.FindOneAndUpdate(ctx,
		bson.M{"productid": ps.ByName("id")},
		bson.M{"$set": update},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	} else if err != nil {
		log.Println("UpdateProduct error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error updating product")
		return
	}

	invalidateListCache()
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"message": "Product updated successfully",
		"product": updated,
	})
}

// DeleteProduct removes a catalog entry. Historical orders keep their own
// name and price snapshots, so nothing cascades. Image cleanup is
// best-effort.
func DeleteProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var product models.Product
	err := db.ProductCollection.FindOneAndDelete(ctx, bson.M{"productid": ps.ByName("id")}).Decode(&product)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	} else if err != nil {
		log.Println("DeleteProduct error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error deleting product")
		return
	}

	if err := filemgr.RemoveProductImage(product.Image, product.Thumb); err != nil {
		log.Printf("DeleteProduct: image cleanup failed for %s: %v", product.ProductID, err)
	}

	invalidateListCache()
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Product deleted successfully"})
}

func invalidateListCache() {
	if _, err := rdx.RdxDel(productListCacheKey); err != nil {
		log.Println("product cache invalidation failed:", err)
	}
}
