package routes

import (
	"catashop/admin"
	"catashop/auth"
	"catashop/cart"
	"catashop/catalog"
	"catashop/checkout"
	"catashop/middleware"
	"catashop/orderfeed"
	"catashop/orders"
	"catashop/ratelim"
	"catashop/seo"
	"net/http"

	"github.com/julienschmidt/httprouter"
)

// RoutesWrapper registers every route group on the router.
func RoutesWrapper(router *httprouter.Router, rateLimiter *ratelim.RateLimiter, carts *cart.Handlers, checkouts *checkout.Handlers, hub *orderfeed.Hub) {
	AddAuthRoutes(router, rateLimiter)
	AddCatalogRoutes(router)
	AddCartRoutes(router, carts)
	AddCheckoutRoutes(router, rateLimiter, checkouts)
	AddAdminRoutes(router, rateLimiter)
	AddOrderFeedRoutes(router, hub)
	AddSeoRoutes(router)
	AddStaticRoutes(router)
}

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/uploads/*filepath", http.Dir("static/uploads"))
}

func AddAuthRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	router.POST("/api/auth/login", rateLimiter.Limit(auth.Login))
	router.POST("/api/auth/logout", middleware.Authenticate(auth.Logout))
	router.POST("/api/auth/token/refresh", rateLimiter.Limit(middleware.Authenticate(auth.RefreshToken)))
}

func AddCatalogRoutes(router *httprouter.Router) {
	router.GET("/api/products", catalog.GetProducts)
	router.GET("/api/products/:productid", catalog.GetProduct)
}

func AddCartRoutes(router *httprouter.Router, h *cart.Handlers) {
	router.GET("/api/cart", h.GetCart)
	router.POST("/api/cart/items", h.AddItem)
	router.PUT("/api/cart/items/:productid", h.UpdateQuantity)
	router.DELETE("/api/cart/items/:productid", h.RemoveItem)
	router.DELETE("/api/cart", h.Clear)
}

func AddCheckoutRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter, h *checkout.Handlers) {
	router.GET("/api/checkout/agencies", h.GetAgencies)
	router.POST("/api/checkout", rateLimiter.Limit(h.Submit))
}

func AddAdminRoutes(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	router.POST("/api/admin/products", rateLimiter.Limit(middleware.Authenticate(admin.CreateProduct)))
	router.PUT("/api/admin/products/:productid", rateLimiter.Limit(middleware.Authenticate(admin.UpdateProduct)))
	router.DELETE("/api/admin/products/:productid", middleware.Authenticate(admin.DeleteProduct))

	router.GET("/api/admin/orders", middleware.Authenticate(orders.GetOrders))
	router.POST("/api/admin/orders/:orderid/sold", middleware.Authenticate(orders.MarkSold))
	router.DELETE("/api/admin/orders", middleware.Authenticate(orders.DeleteOrders))
	router.DELETE("/api/admin/orders/:orderid", middleware.Authenticate(orders.DeleteOrder))

	router.GET("/api/admin/orders/:orderid/receipt", middleware.Authenticate(orders.PrintReceipt))
	router.GET("/api/admin/orders/:orderid/qr", middleware.Authenticate(orders.WhatsAppQR))
}

func AddOrderFeedRoutes(router *httprouter.Router, hub *orderfeed.Hub) {
	router.GET("/ws/orders", orderfeed.WebSocketHandler(hub))
}

func AddSeoRoutes(router *httprouter.Router) {
	router.GET("/robots.txt", seo.Robots)
	router.GET("/sitemap.xml", seo.Sitemap)
}
