package server

import (
	"fmt"
	"os"

	"github.com/Morphin20th/airport-api/config"
	"github.com/Morphin20th/airport-api/internal/cache"
	"github.com/Morphin20th/airport-api/internal/handlers"
	"github.com/Morphin20th/airport-api/internal/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Start() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %v", err)
	}

	db, err := config.InitDatabase(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %v", err)
	}

	flightCache := config.InitFlightCache(cfg)

	r := gin.Default()

	SetupRoutes(r, db, flightCache)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	return r.Run(":" + port)
}

func SetupRoutes(r *gin.Engine, db *gorm.DB, flightCache *cache.FlightCache) {
	r.Use(middleware.DatabaseMiddleware(db))
	r.Use(middleware.CacheMiddleware(flightCache))

	public := r.Group("/v1")
	{
		public.POST("/register", handlers.Register)
		public.POST("/login", handlers.Login)
	}

	protected := r.Group("/v1")
	protected.Use(middleware.JWTAuthMiddleware())
	{
		protected.GET("/me", handlers.GetProfile)

		protected.GET("/airports", handlers.ListAirports)
		protected.GET("/airports/:id", handlers.GetAirport)

		protected.GET("/airplane-types", handlers.ListAirplaneTypes)
		protected.GET("/airplane-types/:id", handlers.GetAirplaneType)

		protected.GET("/airplanes", handlers.ListAirplanes)
		protected.GET("/airplanes/:id", handlers.GetAirplane)

		protected.GET("/routes", handlers.ListRoutes)
		protected.GET("/routes/:id", handlers.GetRoute)

		protected.GET("/crew", handlers.ListCrew)
		protected.GET("/crew/:id", handlers.GetCrew)

		protected.GET("/flights", handlers.ListFlights)
		protected.GET("/flights/:id", handlers.GetFlight)

		orders := protected.Group("/orders")
		{
			orders.POST("", handlers.CreateOrder)
			orders.GET("", handlers.ListOrders)
			orders.GET("/:id", handlers.GetOrder)
			orders.DELETE("/:id", handlers.DeleteOrder)
			orders.GET("/:id/tickets/:ticketId/qr", handlers.GenerateTicketQR)
		}
	}

	staff := r.Group("/v1")
	staff.Use(middleware.JWTAuthMiddleware(), middleware.StaffRequired())
	{
		staff.POST("/airports", handlers.CreateAirport)
		staff.PUT("/airports/:id", handlers.UpdateAirport)
		staff.DELETE("/airports/:id", handlers.DeleteAirport)

		staff.POST("/airplane-types", handlers.CreateAirplaneType)
		staff.PUT("/airplane-types/:id", handlers.UpdateAirplaneType)
		staff.DELETE("/airplane-types/:id", handlers.DeleteAirplaneType)

		staff.POST("/airplanes", handlers.CreateAirplane)
		staff.PUT("/airplanes/:id", handlers.UpdateAirplane)
		staff.DELETE("/airplanes/:id", handlers.DeleteAirplane)
		staff.POST("/airplanes/:id/upload-image", handlers.UploadAirplaneImage)

		staff.POST("/routes", handlers.CreateRoute)
		staff.PUT("/routes/:id", handlers.UpdateRoute)
		staff.DELETE("/routes/:id", handlers.DeleteRoute)

		staff.POST("/crew", handlers.CreateCrew)
		staff.PUT("/crew/:id", handlers.UpdateCrew)
		staff.DELETE("/crew/:id", handlers.DeleteCrew)

		staff.POST("/flights", handlers.CreateFlight)
		staff.PUT("/flights/:id", handlers.UpdateFlight)
		staff.DELETE("/flights/:id", handlers.DeleteFlight)
	}
}
