package routes

import (
	"net/http"

	"dotshop/auth"
	"dotshop/cart"
	"dotshop/middleware"
	"dotshop/orderfeed"
	"dotshop/orders"
	"dotshop/products"
	"dotshop/profile"
	"dotshop/ratelim"

	"github.com/julienschmidt/httprouter"
)

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/productpic/*filepath", http.Dir("static/productpic"))
}

func AddAuthRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/auth/signup", rl.Limit(auth.Signup))
	router.POST("/api/auth/login", rl.Limit(auth.Login))
}

func AddProductRoutes(router *httprouter.Router) {
	router.GET("/api/products", products.GetProducts)
	router.GET("/api/products/:id", products.GetProduct)
	router.POST("/api/products", middleware.Authenticate(middleware.RequireAdmin(products.CreateProduct)))
	router.PUT("/api/products/:id", middleware.Authenticate(middleware.RequireAdmin(products.UpdateProduct)))
	router.DELETE("/api/products/:id", middleware.Authenticate(middleware.RequireAdmin(products.DeleteProduct)))
}

func AddCartRoutes(router *httprouter.Router) {
	router.GET("/api/cart", middleware.Authenticate(cart.GetCart))
	router.POST("/api/cart", middleware.Authenticate(cart.AddToCart))
	router.PUT("/api/cart/:productId", middleware.Authenticate(cart.UpdateCartItem))
	router.DELETE("/api/cart/:productId", middleware.Authenticate(cart.RemoveFromCart))
}

func AddOrderRoutes(router *httprouter.Router, hub *orderfeed.Hub) {
	router.POST("/api/orders/create-order", middleware.Authenticate(orders.CreateOrder))
	router.POST("/api/orders/verify-payment", middleware.Authenticate(orders.VerifyPayment))
	router.GET("/api/orders", middleware.Authenticate(orders.GetOrders))
	router.GET("/api/orders/all", middleware.Authenticate(middleware.RequireAdmin(orders.GetAllOrders)))
	router.PATCH("/api/orders/update-status/:orderId", middleware.Authenticate(middleware.RequireAdmin(orders.UpdateOrderStatus)))
	router.GET("/api/orders/invoice/:orderId", middleware.Authenticate(orders.GetInvoice))

	router.GET("/api/orders/stream", orderfeed.StreamOrders(hub))
}

func AddProfileRoutes(router *httprouter.Router) {
	router.GET("/api/profile/addresses", middleware.Authenticate(profile.GetAddresses))
	router.POST("/api/profile/addresses", middleware.Authenticate(profile.AddAddress))
	router.PUT("/api/profile/addresses/:id", middleware.Authenticate(profile.UpdateAddress))
	router.DELETE("/api/profile/addresses/:id", middleware.Authenticate(profile.DeleteAddress))
	router.PUT("/api/profile", middleware.Authenticate(profile.UpdateProfile))
}
