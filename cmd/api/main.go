package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pmihealth/cardiology-api/internal/config"
	"github.com/pmihealth/cardiology-api/internal/handlers"
	"github.com/pmihealth/cardiology-api/internal/logger"
	"github.com/pmihealth/cardiology-api/internal/middleware"
	"github.com/pmihealth/cardiology-api/internal/repository"
	"github.com/pmihealth/cardiology-api/internal/services"
	"github.com/pmihealth/cardiology-api/internal/utils"
	"github.com/pmihealth/cardiology-api/internal/validation"
)

func main() {
	cfg := config.Load()

	sugar, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer sugar.Sync()

	if cfg.MongoURI == "" {
		sugar.Fatal("MONGODB_URI environment variable is not set")
	}
	if cfg.JWTSecret == "" {
		sugar.Warn("JWT_SECRET is not set; token generation will fail")
	}

	// --- Database Connection ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		sugar.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(context.Background())
	if err := client.Ping(ctx, nil); err != nil {
		sugar.Fatalf("MongoDB ping failed: %v", err)
	}
	db := client.Database(cfg.MongoDatabase)
	sugar.Infow("Connected to MongoDB", "database", cfg.MongoDatabase)

	// --- Repositories ---
	users := repository.NewMongoUserRepo(db)
	appointments := repository.NewMongoAppointmentRepo(db)
	offers := repository.NewMongoOfferRepo(db)
	slider := repository.NewMongoSliderRepo(db)

	// --- Services ---
	tokens := utils.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiry)
	notifications := services.NewNotificationService(cfg.TextbeltAPIKey, sugar)

	h := handlers.NewHandler(users, appointments, offers, slider, tokens, notifications, cfg, sugar)

	// --- Gin Router ---
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	validation.Setup()
	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	if cfg.FrontendURL != "" {
		allowedOrigins = append(allowedOrigins, cfg.FrontendURL)
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Requested-With"},
		AllowCredentials: true,
	}))

	requireAdmin := middleware.RequireAdmin(users, tokens)

	// --- Routes ---
	api := r.Group("/api")
	{
		api.GET("/health", h.Health)

		auth := api.Group("/auth")
		{
			auth.POST("/login", h.Login)
			auth.POST("/signup", h.Signup)
			auth.GET("/verify", h.Verify)
		}

		userRoutes := api.Group("/users", requireAdmin)
		{
			userRoutes.GET("", h.GetUsers)
			userRoutes.GET("/stats", h.GetUserStats)
			userRoutes.PATCH("/:id/status", h.UpdateUserStatus)
			userRoutes.DELETE("/:id", h.DeleteUser)
		}

		aptRoutes := api.Group("/appointments")
		{
			aptRoutes.POST("", h.BookAppointment) // public booking
			aptRoutes.GET("", requireAdmin, h.GetAppointments)
			aptRoutes.GET("/stats/overview", requireAdmin, h.GetAppointmentStats)
			aptRoutes.GET("/:id", requireAdmin, h.GetAppointment)
			aptRoutes.PATCH("/:id/status", requireAdmin, h.UpdateAppointmentStatus)
			aptRoutes.DELETE("/:id", requireAdmin, h.DeleteAppointment)
		}

		offerRoutes := api.Group("/offers")
		{
			offerRoutes.GET("", h.GetOffers) // public, active only
			offerRoutes.GET("/all", requireAdmin, h.GetAllOffers)
			offerRoutes.POST("", requireAdmin, h.CreateOffer)
			offerRoutes.PUT("/:id", requireAdmin, h.UpdateOffer)
			offerRoutes.DELETE("/:id", requireAdmin, h.DeleteOffer)
		}

		sliderRoutes := api.Group("/slider")
		{
			sliderRoutes.GET("", h.GetSliderImages) // public, active only
			sliderRoutes.GET("/all", requireAdmin, h.GetAllSliderImages)
			sliderRoutes.POST("", requireAdmin, h.CreateSliderImage)
			sliderRoutes.PUT("/:id", requireAdmin, h.UpdateSliderImage)
			sliderRoutes.DELETE("/:id", requireAdmin, h.DeleteSliderImage)
		}
	}

	r.NoRoute(h.NotFound)

	sugar.Infow("Starting server", "port", cfg.Port, "env", cfg.Env)
	if err := r.Run(":" + cfg.Port); err != nil {
		sugar.Fatalf("Server stopped: %v", err)
	}
}
