package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	userRepo "mentorly/database/repository/user"
	"mentorly/handlers"
	"mentorly/middleware"
)

// RegisterBookingRoutes sets up the endpoints for the booking engine.
func RegisterBookingRoutes(r *gin.Engine, users userRepo.UserRepository) {
	bookings := r.Group("/api/bookings")
	{
		bookings.Use(middleware.JWTAuthMiddleware(users))
		bookings.POST("", handlers.CreateBooking)
		bookings.GET("", handlers.ListBookings)
		bookings.GET("/:id", handlers.GetBooking)
		bookings.POST("/:id/payment", handlers.CompletePayment)
		bookings.PATCH("/:id/status", handlers.UpdateBookingStatus)
	}
}

// RegisterProviderRoutes sets up the availability endpoints.
func RegisterProviderRoutes(r *gin.Engine, users userRepo.UserRepository) {
	providers := r.Group("/api/providers")
	{
		providers.Use(middleware.JWTAuthMiddleware(users))
		providers.PUT("/availability", handlers.SetWeeklySchedule)
		providers.GET("/:id/availability/:day", handlers.GetDayAvailability)
	}
}

// RegisterSessionRoutes sets up the offering endpoints.
func RegisterSessionRoutes(r *gin.Engine, users userRepo.UserRepository) {
	sessions := r.Group("/api/sessions")
	{
		sessions.Use(middleware.JWTAuthMiddleware(users))
		sessions.POST("", handlers.CreateSession)
		sessions.GET("/:id", handlers.GetSession)
		sessions.PATCH("/:id/status", handlers.UpdateSessionStatus)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Mentorly"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, users userRepo.UserRepository) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware())

	RegisterHealthRoute(r)
	RegisterBookingRoutes(r, users)
	RegisterProviderRoutes(r, users)
	RegisterSessionRoutes(r, users)
}
