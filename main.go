package main

import (
	"log"

	"github.com/tee-elite/circle-wallet/config"
	"github.com/tee-elite/circle-wallet/controllers"
	"github.com/tee-elite/circle-wallet/routes"
	"github.com/tee-elite/circle-wallet/utils"
)

func main() {
	// Initialize logger
	if err := utils.InitLogger(); err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}

	// Load environment variables
	cfg, err := config.LoadConfig()
	if err != nil {
		utils.LogError("Error loading config: %v", err)
		log.Fatal("Error loading config:", err)
	}

	// Initialize database
	config.InitDB()

	// Activation window for the whole member base
	utils.InitActivation(cfg.ActivationDate, cfg.ExpiryDays)

	// Seed the reward catalog if empty
	if err := controllers.CreateDefaultWalletItems(); err != nil {
		utils.LogError("Failed to seed wallet items: %v", err)
		log.Fatal("Failed to seed wallet items:", err)
	}

	// Set up router and middleware
	router := routes.SetupRouter()

	port := cfg.Port
	if port == "" {
		port = utils.DefaultPort
	}

	utils.LogInfo("%s starting on port %s", utils.AppName, port)
	// Start server
	if err := router.Run(":" + port); err != nil {
		utils.LogError("Error starting server: %v", err)
		log.Fatal("Error starting server:", err)
	}
}
