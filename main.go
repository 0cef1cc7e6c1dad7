package main

import (
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/streadway/amqp"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"mindcare/internal/config"
	"mindcare/internal/handlers"
	"mindcare/internal/middleware"
	"mindcare/internal/models"
	"mindcare/internal/repositories"
	"mindcare/internal/services"
	"mindcare/pkg/mailer"
	"mindcare/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	cfg := config.Load()

	// --- Database ---
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Journal{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// --- Initialize RabbitMQ Client ---
	mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
	if err != nil {
		log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
	}
	defer mqClient.Close() // Ensure the connection is closed on exit

	// --- Initialize Repositories ---
	userRepo := repositories.NewGORMUserRepository(db)
	journalRepo := repositories.NewGORMJournalRepository(db)

	// Ensure the out-of-band admin account exists.
	seedAdmin(userRepo, cfg)

	// --- Initialize Services ---
	otpMailer := mailer.NewSMTPMailer(mailer.Config{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.EmailUser,
		Password: cfg.EmailPass,
	})
	authService := services.NewAuthService(userRepo, otpMailer, mqClient, cfg.JWTSecret)
	journalService := services.NewJournalService(journalRepo, mqClient)

	// --- Initialize Handlers ---
	authHandler := handlers.NewAuthHandler(authService)
	journalHandler := handlers.NewJournalHandler(journalService)
	adminHandler := handlers.NewAdminHandler(authService, journalService)

	// --- Initialize Fiber App ---
	app := fiber.New()

	// --- Middleware ---
	app.Use(logger.New()) // Request logger
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigin,
		AllowCredentials: true,
	}))

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- API Routes ---
	// The auth middleware is scoped to each handler's route prefix; nothing
	// is registered app-wide, so /health and unmatched paths stay public.
	authRequired := middleware.AuthRequired(authService)

	authHandler.RegisterRoutes(app, authRequired)
	journalHandler.RegisterRoutes(app, authRequired)
	adminHandler.RegisterRoutes(app, authRequired, middleware.AdminRequired())

	// --- Start RabbitMQ Consumer in a Goroutine ---
	// The in-process consumer just logs domain events for now; downstream
	// workers (digest mail, analytics) would hang off the same queue.
	go func() {
		log.Println("Starting RabbitMQ consumer for domain events...")
		messageHandler := func(msg amqp.Delivery) error {
			log.Printf("Received domain event %s (Tag: %d): %s", msg.RoutingKey, msg.DeliveryTag, string(msg.Body))
			return nil // Return nil to acknowledge
		}
		if consumerErr := mqClient.ConsumeEvents(messageHandler); consumerErr != nil {
			log.Printf("Failed to start RabbitMQ consumer: %v", consumerErr)
		}
	}()

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", cfg.AppPort)

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.AppPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	log.Println("Server gracefully stopped")
}

// seedAdmin ensures a verified admin account exists when admin credentials
// are configured. Admin status is only ever granted here, never through a
// public endpoint.
func seedAdmin(repo repositories.UserRepository, cfg config.Config) {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return
	}

	if _, err := repo.GetByEmail(cfg.AdminEmail); err == nil {
		return // already provisioned
	} else if !errors.Is(err, repositories.ErrNotFound) {
		log.Printf("Error checking for admin user: %v", err)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Error hashing admin password: %v", err)
		return
	}

	admin := &models.User{
		Name:       "Admin User",
		Email:      cfg.AdminEmail,
		Password:   string(hashed),
		IsVerified: true,
		IsAdmin:    true,
	}
	if err := repo.Create(admin); err != nil {
		log.Printf("Error seeding admin user: %v", err)
		return
	}
	log.Printf("Seeded admin user: %s (ID: %d)", admin.Email, admin.ID)
}
