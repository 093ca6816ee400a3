package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/Prayc/angaza-real-estate/internal/auth"
	"github.com/Prayc/angaza-real-estate/internal/config"
	"github.com/Prayc/angaza-real-estate/internal/database"
	"github.com/Prayc/angaza-real-estate/internal/handlers"
	"github.com/Prayc/angaza-real-estate/internal/middleware"
	"github.com/Prayc/angaza-real-estate/internal/models"
	"github.com/Prayc/angaza-real-estate/internal/ratelimit"
	"github.com/Prayc/angaza-real-estate/internal/scheduler"
	"github.com/Prayc/angaza-real-estate/internal/search"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file loaded")
	}

	// Load configuration
	configPath := getEnv("CONFIG_PATH", "config/config.yaml")
	appConfig, err := config.LoadConfig(configPath)
	if err != nil {
		log.Printf("Warning: Failed to load config from %s: %v. Using defaults.", configPath, err)
		appConfig = config.DefaultConfig()
	} else {
		log.Printf("Loaded configuration from %s", configPath)
	}
	applyEnvOverrides(appConfig)

	// Connect to the database
	store, err := database.NewGormDB(appConfig.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer store.Close()

	if err := store.InitSchema(); err != nil {
		log.Fatalf("Failed to initialize schema: %v", err)
	}

	// Initialize search index when enabled
	var searchClient *search.Client
	if appConfig.Search.Enabled {
		searchClient = search.NewClient(
			appConfig.Search.Meilisearch.Host,
			appConfig.Search.Meilisearch.APIKey,
		)
		if err := searchClient.InitIndex(); err != nil {
			log.Printf("Warning: Failed to initialize search index: %v", err)
		}
	}

	// Start the lease-expiry scheduler
	appScheduler := scheduler.NewScheduler(store, appConfig)
	if err := appScheduler.Start(); err != nil {
		log.Printf("Warning: Failed to start scheduler: %v", err)
	}
	defer appScheduler.Stop()

	tokens := auth.NewJWT(appConfig.JWT)
	h := handlers.New(store, appConfig, tokens, searchClient)

	// Setup Gin router
	if !appConfig.Server.Debug() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     appConfig.Server.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now()})
	})

	api := r.Group("/api")

	loginLimiter := ratelimit.NewLimiter(10, time.Minute, true)

	authRoutes := api.Group("/auth")
	authRoutes.Use(loginLimiter.Middleware())
	{
		authRoutes.POST("/register", h.Register)
		authRoutes.POST("/login", h.Login)
	}

	authed := api.Group("")
	authed.Use(middleware.Authenticate(store.DB(), tokens))
	{
		authed.GET("/auth/me", h.Me)
		authed.GET("/dashboard/stats", h.GetDashboardStats)

		properties := authed.Group("/properties")
		{
			properties.GET("", h.ListProperties)
			properties.GET("/search",
				middleware.RequireRoles(models.RoleAdmin, models.RolePropertyManager),
				h.SearchProperties)
			properties.GET("/landlords/list",
				middleware.RequireRoles(models.RoleAdmin),
				h.ListLandlords)
			properties.GET("/:id", h.GetProperty)
			properties.POST("",
				middleware.RequireRoles(models.RoleAdmin, models.RoleLandlord),
				h.CreateProperty)
			properties.PUT("/:id",
				middleware.RequireRoles(models.RoleAdmin, models.RoleLandlord),
				h.UpdateProperty)
			properties.DELETE("/:id",
				middleware.RequireRoles(models.RoleAdmin, models.RoleLandlord),
				h.DeleteProperty)
		}

		units := authed.Group("/units")
		{
			units.GET("", h.ListUnits)
			units.GET("/:id", h.GetUnit)
			units.POST("",
				middleware.RequireRoles(models.RoleAdmin, models.RolePropertyManager, models.RoleLandlord),
				h.CreateUnit)
			units.PUT("/:id",
				middleware.RequireRoles(models.RoleAdmin, models.RolePropertyManager, models.RoleLandlord),
				h.UpdateUnit)
			units.DELETE("/:id",
				middleware.RequireRoles(models.RoleAdmin, models.RolePropertyManager, models.RoleLandlord),
				h.DeleteUnit)
		}

		leases := authed.Group("/leases")
		{
			leases.GET("", h.ListLeases)
			leases.GET("/:id", h.GetLease)
			leases.POST("",
				middleware.RequireRoles(models.RoleAdmin, models.RolePropertyManager, models.RoleLandlord),
				h.CreateLease)
			leases.PUT("/:id",
				middleware.RequireRoles(models.RoleAdmin, models.RolePropertyManager, models.RoleLandlord),
				h.UpdateLease)
		}

		maintenance := authed.Group("/maintenance")
		{
			maintenance.GET("", h.ListMaintenance)
			maintenance.GET("/:id", h.GetMaintenance)
			maintenance.POST("", h.CreateMaintenance)
			maintenance.PUT("/:id", h.UpdateMaintenance)
		}

		payments := authed.Group("/payments")
		{
			payments.GET("", h.ListPayments)
			payments.GET("/:id", h.GetPayment)
			payments.POST("", h.CreatePayment)
			payments.PUT("/:id",
				middleware.RequireRoles(models.RoleAdmin, models.RolePropertyManager),
				h.UpdatePayment)
		}

		tenants := authed.Group("/tenants")
		{
			tenants.GET("",
				middleware.RequireRoles(models.RoleAdmin, models.RoleLandlord, models.RolePropertyManager),
				h.ListTenants)
			tenants.GET("/:id",
				middleware.RequireRoles(models.RoleAdmin, models.RolePropertyManager, models.RoleLandlord),
				h.GetTenant)
			tenants.POST("",
				middleware.RequireRoles(models.RoleAdmin, models.RoleLandlord, models.RolePropertyManager),
				h.CreateTenant)
			tenants.PUT("/:id",
				middleware.RequireRoles(models.RoleAdmin, models.RoleLandlord, models.RolePropertyManager),
				h.UpdateTenant)
			tenants.DELETE("/:id",
				middleware.RequireRoles(models.RoleAdmin, models.RoleLandlord),
				h.DeleteTenant)
		}

		users := authed.Group("/users")
		users.Use(middleware.RequireRoles(models.RoleAdmin))
		{
			users.GET("", h.ListUsers)
			users.GET("/:id", h.GetUser)
		}

		// Manual trigger for the lease-expiry sweep
		authed.POST("/scheduler/run",
			middleware.RequireRoles(models.RoleAdmin),
			func(c *gin.Context) {
				if err := appScheduler.RunExpirySweep(); err != nil {
					c.JSON(http.StatusInternalServerError, gin.H{"message": "Sweep failed"})
					return
				}
				c.JSON(http.StatusOK, gin.H{"message": "Lease expiry sweep completed"})
			})
	}

	port := getEnv("PORT", appConfig.Server.Port)
	log.Printf("Server starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// applyEnvOverrides lets deployment environment variables win over the
// config file.
func applyEnvOverrides(cfg *config.Config) {
	if v := os.Getenv("DB_TYPE"); v != "" {
		cfg.Database.Type = v
	}
	if v := os.Getenv("DB_HOST"); v != "" {
		cfg.Database.MySQL.Host = v
		cfg.Database.Postgres.Host = v
	}
	if v := os.Getenv("DB_USER"); v != "" {
		cfg.Database.MySQL.User = v
		cfg.Database.Postgres.User = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		cfg.Database.MySQL.Password = v
		cfg.Database.Postgres.Password = v
	}
	if v := os.Getenv("DB_NAME"); v != "" {
		cfg.Database.MySQL.Database = v
		cfg.Database.Postgres.Database = v
	}
	if v := os.Getenv("MEILISEARCH_HOST"); v != "" {
		cfg.Search.Meilisearch.Host = v
	}
	if v := os.Getenv("MEILISEARCH_KEY"); v != "" {
		cfg.Search.Meilisearch.APIKey = v
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
