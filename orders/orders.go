package orders

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"net/http"
	"time"

	"dotshop/db"
	"dotshop/models"
	"dotshop/orderfeed"
	"dotshop/razorpay"
	"dotshop/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Gateway is the payment gateway client. Package-level so tests can swap in
// a client pointed at a fake server.
var Gateway = razorpay.NewClientFromEnv()

// checkoutLine is a cart line whose product resolved at checkout time.
type checkoutLine struct {
	Product  models.Product
	Quantity int
}

// checkoutTotal sums unit price × quantity over resolved lines.
func checkoutTotal(lines []checkoutLine) float64 {
	var total float64
	for _, l := range lines {
		total += l.Product.Price * float64(l.Quantity)
	}
	return total
}

// toPaise converts a rupee amount to minor currency units.
func toPaise(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// resolveCheckout joins cart lines against the catalog, skipping lines
// whose product no longer exists, mirroring the original checkout.
func resolveCheckout(ctx context.Context, items []models.CartLine) ([]checkoutLine, error) {
	lines := make([]checkoutLine, 0, len(items))
	for _, it := range items {
		var product models.Product
		err := db.ProductCollection.FindOne(ctx, bson.M{"productid": it.ProductID}).Decode(&product)
		if err == mongo.ErrNoDocuments {
			continue
		} else if err != nil {
			return nil, err
		}
		lines = append(lines, checkoutLine{Product: product, Quantity: it.Quantity})
	}
	return lines, nil
}

// CreateOrder turns the caller's cart plus a chosen address into one remote
// payment-order and one local order document per cart line, all sharing the
// gateway order id. The gateway call happens before any local write, so a
// gateway failure persists nothing. The cart is cleared only on verified
// payment, not here.
func CreateOrder(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	var input struct {
		AddressID string `json:"addressId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	userID := utils.GetUserIDFromRequest(r)

	var user models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&user); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	var c models.Cart
	err := db.CartCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&c)
	if err == mongo.ErrNoDocuments || (err == nil && len(c.Items) == 0) {
		utils.RespondWithError(w, http.StatusBadRequest, "Cart is empty")
		return
	} else if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching cart")
		return
	}

	var address *models.Address
	for i := range user.Addresses {
		if user.Addresses[i].AddressID == input.AddressID {
			address = &user.Addresses[i]
			break
		}
	}
	if address == nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Address not found")
		return
	}

	lines, err := resolveCheckout(ctx, c.Items)
	if err != nil {
		log.Println("CreateOrder resolve error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error resolving cart")
		return
	}

	total := checkoutTotal(lines)
	if total <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid cart total")
		return
	}

	receipt := fmt.Sprintf("receipt_%d", time.Now().UnixMilli())
	gatewayOrder, err := Gateway.CreateOrder(ctx, toPaise(total), "INR", receipt)
	if err != nil {
		log.Println("CreateOrder gateway error:", err)
		utils.RespondWithError(w, http.StatusBadGateway, "Error creating order")
		return
	}

	// One order document per cart line, all stamped with the shared
	// gateway order id so the callback can settle them together.
	now := time.Now()
	docs := make([]interface{}, 0, len(lines))
	orderIDs := make([]string, 0, len(lines))
	for _, l := range lines {
		order := models.Order{
			OrderID:         "o" + utils.GenerateName(10),
			UserID:          userID,
			ProductID:       l.Product.ProductID,
			ProductName:     l.Product.Name,
			UnitPrice:       l.Product.Price,
			Quantity:        l.Quantity,
			TotalPrice:      l.Product.Price * float64(l.Quantity),
			Address:         *address,
			Paid:            false,
			Status:          models.StatusPlaced,
			RazorpayOrderID: gatewayOrder.ID,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		docs = append(docs, order)
		orderIDs = append(orderIDs, order.OrderID)
	}

	if _, err := db.OrderCollection.InsertMany(ctx, docs); err != nil {
		log.Println("CreateOrder insert error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error creating order")
		return
	}

	orderfeed.Publish(orderfeed.Event{
		Type:            orderfeed.EventCreated,
		UserID:          userID,
		RazorpayOrderID: gatewayOrder.ID,
		OrderIDs:        orderIDs,
	})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"id":       gatewayOrder.ID,
		"amount":   gatewayOrder.Amount,
		"currency": gatewayOrder.Currency,
		"orderIds": orderIDs,
	})
}

// VerifyPayment reconciles the gateway's payment callback. The signature is
// an HMAC over "orderId|paymentId"; on a match every order sharing the
// gateway order id flips to paid and the caller's cart is emptied. Replayed
// valid callbacks re-apply the same effect and are accepted.
func VerifyPayment(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var input struct {
		OrderID   string `json:"razorpay_order_id"`
		PaymentID string `json:"razorpay_payment_id"`
		Signature string `json:"razorpay_signature"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	if !Gateway.VerifySignature(input.OrderID, input.PaymentID, input.Signature) {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid signature")
		return
	}

	count, err := db.OrderCollection.CountDocuments(ctx, bson.M{"razorpayorderid": input.OrderID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error looking up orders")
		return
	}
	if count == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "No orders found for this payment")
		return
	}

	_, err = db.OrderCollection.UpdateMany(ctx,
		bson.M{"razorpayorderid": input.OrderID},
		bson.M{"$set": bson.M{
			"paid":              true,
			"razorpaypaymentid": input.PaymentID,
			"updated_at":        time.Now(),
		}},
	)
	if err != nil {
		log.Println("VerifyPayment update error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Payment verification failed")
		return
	}

	userID := utils.GetUserIDFromRequest(r)
	if _, err := db.CartCollection.UpdateOne(ctx,
		bson.M{"userid": userID},
		bson.M{"$set": bson.M{"items": []models.CartLine{}, "updated_at": time.Now()}},
	); err != nil {
		log.Println("VerifyPayment cart clear error:", err)
	}

	orderfeed.Publish(orderfeed.Event{
		Type:            orderfeed.EventPaid,
		UserID:          userID,
		RazorpayOrderID: input.OrderID,
	})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Payment successful, order placed!"})
}

// GetOrders returns the caller's orders, newest first.
func GetOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	listOrders(w, ctx, bson.M{"userid": utils.GetUserIDFromRequest(r)})
}

// GetAllOrders returns every order, newest first. Admin only.
func GetAllOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	listOrders(w, ctx, bson.M{})
}

func listOrders(w http.ResponseWriter, ctx context.Context, filter bson.M) {
	cursor, err := db.OrderCollection.Find(ctx, filter,
		options.Find().SetSort(bson.M{"created_at": -1}))
	if err != nil {
		log.Println("listOrders Find error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching orders")
		return
	}
	defer cursor.Close(ctx)

	var items []models.Order
	if err := cursor.All(ctx, &items); err != nil {
		log.Println("listOrders decode error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error reading orders")
		return
	}
	if items == nil {
		items = []models.Order{}
	}

	utils.RespondWithJSON(w, http.StatusOK, items)
}

// UpdateOrderStatus sets the fulfillment status. The target value must be a
// member of the five-value enum; transitions are otherwise unconstrained.
func UpdateOrderStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var input struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if !models.ValidStatus(input.Status) {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid status")
		return
	}

	var updated models.Order
	err := db.OrderCollection.FindOneAndUpdate(ctx,
		bson.M{"orderid": ps.ByName("orderId")},
		bson.M{"$set": bson.M{"status": input.Status, "updated_at": time.Now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	} else if err != nil {
		log.Println("UpdateOrderStatus error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Error updating status")
		return
	}

	orderfeed.Publish(orderfeed.Event{
		Type:     orderfeed.EventStatus,
		UserID:   updated.UserID,
		OrderIDs: []string{updated.OrderID},
		Status:   updated.Status,
	})

	utils.RespondWithJSON(w, http.StatusOK, updated)
}
