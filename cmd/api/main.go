package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/azir-ecommerce/azir-golang/internal/config"
	"github.com/azir-ecommerce/azir-golang/internal/database"
	"github.com/azir-ecommerce/azir-golang/internal/email"
	"github.com/azir-ecommerce/azir-golang/internal/handlers"
	"github.com/azir-ecommerce/azir-golang/internal/routes"
)

func main() {
	// --- Load Environment Variables (.env) ---
	if err := godotenv.Load(); err != nil {
		log.Println("WARNING: Could not find or load .env file. Relying on system environment variables.")
	}

	// --- Configuration ---
	// Everything the app reads from the environment is read here, once.
	// A missing signing secret aborts startup.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// --- Database Connection ---
	db, err := database.Open(cfg.DB.DSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// --- Application Setup ---
	// Inject all dependencies into the Handlers struct.
	app := &handlers.Handlers{
		DB:     db,
		Config: cfg,
		Mailer: email.NewMailer(cfg),
	}

	// --- Router Setup ---
	router := routes.SetupRouter(app)

	// --- Start Server ---
	log.Printf("Starting Azir E-commerce API server on port %s...", cfg.Server.Port)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
