// Package routes wires the HTTP surface onto the controllers.
package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-backend/controllers"
)

// Controllers bundles everything the router mounts.
type Controllers struct {
	Catalog   *controllers.CatalogController
	Cart      *controllers.CartController
	POSCart   *controllers.CartController
	Auth      *controllers.AuthController
	Users     *controllers.UserController
	Purchases *controllers.PurchaseController
	Reports   *controllers.ReportController
}

// Register mounts all application routes.
func Register(r *gin.Engine, c Controllers) {
	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	productRoutes := r.Group("/products")
	{
		productRoutes.GET("", c.Catalog.GetProducts)
		productRoutes.GET("/:id", c.Catalog.GetProduct)
		productRoutes.POST("", c.Catalog.CreateProduct)
		productRoutes.PUT("/:id", c.Catalog.UpdateProduct)
		productRoutes.DELETE("/:id", c.Catalog.DeleteProduct)
		productRoutes.POST("/images", c.Catalog.UploadImage)
	}

	registerCart(r.Group("/cart"), c.Cart)
	registerCart(r.Group("/pos/cart"), c.POSCart)

	authRoutes := r.Group("/auth")
	{
		authRoutes.POST("/login", c.Auth.Login)
		authRoutes.POST("/register", c.Auth.Register)
		authRoutes.POST("/logout", c.Auth.Logout)
		authRoutes.GET("/me", c.Auth.Me)
		authRoutes.POST("/recovery", c.Auth.BeginRecovery)
		authRoutes.POST("/recovery/complete", c.Auth.CompleteRecovery)
	}

	userRoutes := r.Group("/users")
	{
		userRoutes.GET("", c.Users.GetUsers)
		userRoutes.POST("", c.Users.CreateUser)
		userRoutes.PUT("/:id", c.Users.UpdateUser)
		userRoutes.DELETE("/:id", c.Users.DeleteUser)
	}
	r.POST("/wishlist/:productId", c.Users.ToggleWishlist)

	purchaseRoutes := r.Group("/purchases")
	{
		purchaseRoutes.GET("", c.Purchases.GetPurchases)
		purchaseRoutes.GET("/pending", c.Purchases.GetPending)
		purchaseRoutes.POST("/pending", c.Purchases.AddLine)
		purchaseRoutes.DELETE("/pending/:index", c.Purchases.RemoveLine)
		purchaseRoutes.DELETE("/pending", c.Purchases.ClearPending)
		purchaseRoutes.POST("", c.Purchases.Submit)
	}

	reportRoutes := r.Group("/reports")
	{
		reportRoutes.GET("/summary", c.Reports.GetSummary)
		reportRoutes.GET("/revenue-by-day", c.Reports.GetRevenueByDay)
		reportRoutes.GET("/sales-by-method", c.Reports.GetSalesByMethod)
		reportRoutes.GET("/top-products", c.Reports.GetTopProducts)
		reportRoutes.GET("/inventory", c.Reports.GetInventoryStatus)
	}

	salesRoutes := r.Group("/sales")
	{
		salesRoutes.GET("", c.Reports.GetSales)
		salesRoutes.GET("/export", c.Reports.ExportSales)
	}
}

func registerCart(g *gin.RouterGroup, cart *controllers.CartController) {
	g.GET("", cart.GetCart)
	g.POST("/items", cart.AddItem)
	g.PUT("/items/:id", cart.UpdateQuantity)
	g.DELETE("/items/:id", cart.RemoveItem)
	g.DELETE("", cart.ClearCart)
	g.POST("/checkout", cart.Checkout)
}
