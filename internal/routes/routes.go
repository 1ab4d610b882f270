package routes

import (
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"pixelpanda_back_end/internal/handlers"
	"pixelpanda_back_end/internal/middleware"
)

func RegisterRoutes(r *gin.Engine) {
	origins := []string{"http://localhost:3000"}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		origins = strings.Split(env, ",")
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")

	// Auth
	auth := api.Group("/auth")
	auth.POST("/signup", middleware.SignupRateLimit(), handlers.Signup)
	auth.POST("/login", middleware.LoginRateLimit(), handlers.Login)
	auth.POST("/logout", handlers.Logout)
	auth.GET("/me", middleware.AuthRequired(), handlers.Me)
	auth.GET("/:provider", handlers.BeginAuth)
	auth.GET("/:provider/callback", handlers.CallbackAuth)

	// User
	api.PUT("/user/password", middleware.AuthRequired(), handlers.ChangePassword)

	// Catalog (public)
	api.GET("/products", handlers.GetProducts)
	api.GET("/products/:id", handlers.GetProduct)

	// Cart (session-scoped)
	api.GET("/cart", handlers.GetCart)
	api.POST("/cart/add", handlers.AddToCart)
	api.PUT("/cart/quantity", handlers.UpdateCartQuantity)
	api.DELETE("/cart/item/:id", handlers.RemoveFromCart)
	api.DELETE("/cart", handlers.ClearCart)

	// Contact
	api.POST("/contact", handlers.Contact)

	// Admin
	admin := api.Group("", middleware.AuthRequired(), middleware.RequireAdmin)
	admin.POST("/products", handlers.CreateProduct)
	admin.PUT("/products/:id", handlers.UpdateProduct)
	admin.DELETE("/products/:id", handlers.DeleteProduct)
	admin.POST("/upload", handlers.Upload)
	admin.GET("/admin/products", handlers.AdminListProducts)
	admin.GET("/admin/stats", handlers.AdminStats)
	admin.GET("/admin/users", handlers.AdminListUsers)
}
