package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/qonnected/qonnected-backend/internal/config"
	"github.com/qonnected/qonnected-backend/internal/handlers"
	"github.com/qonnected/qonnected-backend/internal/middleware"
)

// HandlerDependencies groups the handlers the router wires up
type HandlerDependencies struct {
	AuthHandler         *handlers.AuthHandler
	PaymentHandler      *handlers.PaymentHandler
	ReviewHandler       *handlers.ReviewHandler
	DashboardHandler    *handlers.DashboardHandler
	UserHandler         *handlers.UserHandler
	NotificationHandler *handlers.NotificationHandler
}

// SetupRouter sets up the router
func SetupRouter(cfg *config.Config, deps HandlerDependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		AllowCredentials: true,
	}))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware())

	// Public routes
	public := router.Group("/api/v1")
	{
		public.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{"status": "ok"})
		})

		auth := public.Group("/auth")
		{
			auth.POST("/register", deps.AuthHandler.Register)
			auth.POST("/login", deps.AuthHandler.Login)
		}
	}

	// Authenticated routes
	protected := router.Group("/api/v1")
	protected.Use(middleware.JWTAuthMiddleware(cfg))
	{
		protected.GET("/auth/me", deps.AuthHandler.Me)

		payments := protected.Group("/payments")
		{
			payments.POST("", deps.PaymentHandler.SubmitPayment)
			payments.GET("/:reference/proof", deps.PaymentHandler.GetProof)
		}
	}

	// Admin routes
	admin := router.Group("/api/v1/admin")
	admin.Use(middleware.JWTAuthMiddleware(cfg), middleware.AdminRequired())
	{
		payments := admin.Group("/payments")
		{
			payments.GET("", deps.ReviewHandler.ListPayments)
			payments.GET("/export", deps.ReviewHandler.ExportPayments)
			payments.POST("/:reference/action", deps.ReviewHandler.ActionPayment)
		}

		admin.GET("/dashboard", deps.DashboardHandler.GetDashboard)

		users := admin.Group("/users")
		{
			users.GET("", deps.UserHandler.GetAllUsers)
			users.GET("/count", deps.UserHandler.GetUserCount)
			users.PUT("/:id/status", deps.UserHandler.UpdateUserStatus)
		}

		notifications := admin.Group("/notifications")
		{
			notifications.GET("", deps.NotificationHandler.GetNotifications)
			notifications.GET("/count", deps.NotificationHandler.GetNotificationCount)
		}
	}

	return router
}
