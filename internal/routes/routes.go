package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/azir-ecommerce/azir-golang/internal/handlers"
	"github.com/azir-ecommerce/azir-golang/internal/middleware"
	"github.com/azir-ecommerce/azir-golang/internal/models"
)

// CORSMiddleware tells the browser which frontend origin may talk to us.
// Credentials must stay allowed because the session travels in a cookie.
func CORSMiddleware(origin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		// Preflight requests get an empty 204.
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func SetupRouter(h *handlers.Handlers) *gin.Engine {
	router := gin.Default()

	router.Use(CORSMiddleware("http://localhost:5173"))

	// Uploaded profile images are served straight from disk.
	router.Static("/uploads", "./uploads")

	protect := middleware.Protect(h.DB, h.Config)
	adminOnly := middleware.AllowedTo(models.RoleAdmin)

	api := router.Group("/api/v1")
	{
		// --- Ping Route (Public) ---
		api.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "pong!"})
		})

		// --- Auth Routes (Public) ---
		auth := api.Group("/auth")
		{
			auth.POST("/signup", h.Signup)
			auth.POST("/login", h.Login)
			auth.GET("/logout", h.Logout)
			auth.POST("/forgotPassword", h.ForgotPassword)
			auth.POST("/verifyResetCode", h.VerifyResetCode)
			auth.PUT("/resetPassword", h.ResetPassword)
		}

		// --- Category Routes (Public read, Admin write) ---
		categories := api.Group("/categories")
		{
			categories.GET("", h.GetCategories)
			categories.GET("/:id", h.GetCategory)
			categories.POST("", protect, adminOnly, h.CreateCategory)
			categories.PUT("/:id", protect, adminOnly, h.UpdateCategory)
			categories.DELETE("/:id", protect, adminOnly, h.DeleteCategory)
		}

		// --- SubCategory Routes (Public read, Admin write) ---
		subcategories := api.Group("/subcategories")
		{
			subcategories.GET("", h.GetSubCategories)
			subcategories.GET("/:id", h.GetSubCategory)
			subcategories.POST("", protect, adminOnly, h.CreateSubCategory)
			subcategories.PUT("/:id", protect, adminOnly, h.UpdateSubCategory)
			subcategories.DELETE("/:id", protect, adminOnly, h.DeleteSubCategory)
		}

		// --- User Routes (Login required) ---
		users := api.Group("/users")
		users.Use(protect)
		{
			users.GET("/getMe", h.GetMe)
			users.PUT("/updateMe", h.UpdateMe)
			users.PUT("/changePassword/:id", h.ChangePassword)

			// Admin-only user management
			users.GET("", adminOnly, h.GetUsers)
			users.GET("/:id", adminOnly, h.GetUser)
			users.PUT("/:id", adminOnly, h.UpdateUser)
			users.DELETE("/:id", adminOnly, h.DeleteUser)
		}

		// --- Upload (Login required) ---
		api.POST("/upload", protect, h.UploadProfileImage)
	}

	return router
}
