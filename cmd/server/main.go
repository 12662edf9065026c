package main

import (
	"context" // context package is needed for Redis operations
	"log"     // log package is needed for logging
	"time"    // CORS max-age duration

	"zenithx_backend/internal/api"        // Custom package for API handlers
	"zenithx_backend/internal/config"     // Custom package for configuration
	"zenithx_backend/internal/middleware" // Custom package for middleware

	"github.com/gin-contrib/cors"  // CORS middleware
	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
	"gorm.io/driver/mysql"         // MySQL driver for GORM
	"gorm.io/gorm"                 // GORM ORM library
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Setup Data Source Name (DSN) and connect to the database
	dsn := cfg.DBUser + ":" + cfg.DBPassword + "@tcp(" + cfg.DBHost + ":" + cfg.DBPort + ")/" + cfg.DBName + "?parseTime=true"
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}

	// Setup Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})

	// Test Redis connection
	_, err = redisClient.Ping(context.Background()).Result()
	if err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin
	r := gin.Default() // Gin router instance

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	// CORS allow-list from configuration
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,                                    // Allowed frontend origins
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}, // Allowed methods
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},   // Allowed headers
		AllowCredentials: true,                                                  // Cookies and auth headers
		MaxAge:           12 * time.Hour,                                        // Preflight cache duration
	}))

	// Liveness route
	r.GET("/", func(c *gin.Context) {
		c.String(200, "ZenithX Server is Running")
	})

	// Token mint for the admin boundary
	r.POST("/jwt", api.TokenHandler(cfg.JWTSecret))

	// User routes
	r.POST("/users", api.RegisterHandler(db, redisClient))                  // Registration endpoint
	r.GET("/user/:email", api.GetUserHandler(db))                           // Fetch user endpoint
	r.PATCH("/user/update/:email", api.UpdateProfileHandler(db, redisClient)) // Profile overwrite endpoint

	// Payment routes
	r.POST("/payments", api.SubmitPaymentHandler(db, redisClient))    // Payment submission endpoint
	r.GET("/my-payments/:email", api.MyPaymentsHandler(db, redisClient)) // Per-user payment history endpoint

	// Seller routes
	r.POST("/seller-requests", api.ApplySellerHandler(db, redisClient))    // Seller application endpoint
	r.GET("/sellers/approved", api.ApprovedSellersHandler(db, redisClient)) // Approved seller listing endpoint

	// Admin routes (protected, admin only)
	adminGroup := r.Group("/admin")
	// Protect admin routes with JWT and AdminOnly middleware
	adminGroup.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret), middleware.AdminOnlyMiddleware(db))
	adminGroup.GET("/users", api.ListUsersHandler(db, redisClient))                      // List users endpoint
	adminGroup.PATCH("/users/role/:id", api.UpdateRoleHandler(db, redisClient))          // Role overwrite endpoint
	adminGroup.DELETE("/users/:id", api.DeleteUserHandler(db, redisClient))              // User deletion endpoint
	adminGroup.GET("/payments", api.ListPaymentsHandler(db, redisClient))                // List payments endpoint
	adminGroup.PATCH("/approve-payment/:id", api.ApprovePaymentHandler(db, redisClient)) // Payment approval endpoint
	adminGroup.PATCH("/reject-payment/:id", api.RejectPaymentHandler(db, redisClient))   // Payment rejection endpoint
	adminGroup.GET("/seller-requests", api.ListSellerRequestsHandler(db, redisClient))   // List seller requests endpoint
	adminGroup.PATCH("/approve-seller/:id", api.ApproveSellerHandler(db, redisClient))   // Seller approval endpoint
	adminGroup.DELETE("/reject-seller/:id", api.RejectSellerHandler(db, redisClient))    // Seller rejection endpoint

	log.Println("Server running on " + cfg.AppPort) // Log server start
	r.Run(":" + cfg.AppPort)                        // Start the server on port cfg.AppPort
}
