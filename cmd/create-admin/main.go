package main

import (
	"fmt"
	"log"
	"os"

	"github.com/Prayc/angaza-real-estate/internal/auth"
	"github.com/Prayc/angaza-real-estate/internal/config"
	"github.com/Prayc/angaza-real-estate/internal/database"
	"github.com/Prayc/angaza-real-estate/internal/models"

	"github.com/joho/godotenv"
)

// Seeds the first admin account. Credentials come from ADMIN_EMAIL and
// ADMIN_PASSWORD, with development defaults.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file loaded")
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	appConfig, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	store, err := database.NewGormDB(appConfig.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer store.Close()

	if err := store.InitSchema(); err != nil {
		log.Fatalf("Failed to initialize schema: %v", err)
	}

	email := getEnv("ADMIN_EMAIL", "admin@angaza.local")
	password := getEnv("ADMIN_PASSWORD", "ChangeMe2024!")
	name := getEnv("ADMIN_NAME", "Administrator")

	var existing models.User
	if err := store.DB().Where("email = ?", email).First(&existing).Error; err == nil {
		log.Fatalf("A user with email %s already exists (id %d)", email, existing.ID)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	admin := models.User{
		Name:     name,
		Email:    email,
		Password: hash,
		Role:     models.RoleAdmin,
		IsActive: true,
	}
	if err := store.DB().Create(&admin).Error; err != nil {
		log.Fatalf("Failed to create admin: %v", err)
	}

	fmt.Println("Admin account created")
	fmt.Printf("  Email:    %s\n", email)
	fmt.Printf("  Password: %s\n", password)
	fmt.Printf("  ID:       %d\n", admin.ID)
	fmt.Println("\nChange the password after first login.")
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
