package main

import (
	"database/sql"
	"fmt"
	"net/http"
	"os"

	_ "github.com/lib/pq"

	"eventticketing/config"
	"eventticketing/internal/adapters/auth"
	"eventticketing/internal/adapters/email"
	"eventticketing/internal/adapters/upload"
	httpdelivery "eventticketing/internal/delivery/http"
	"eventticketing/internal/delivery/http/controllers"
	"eventticketing/internal/delivery/http/middleware"
	"eventticketing/internal/repository/postgres"
	"eventticketing/internal/services"

	"golang.org/x/crypto/bcrypt"
)

// @title Event Ticketing API
// @version 1.0
// @description Backend for an event ticketing platform: user accounts, an event catalog, and ticket purchases against finite inventory.
// @BasePath /
// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name token
func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "server exited: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logger := config.NewLogger()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}

	// Adapters
	hasher := auth.NewBcryptHasher(bcrypt.DefaultCost)
	tokens := auth.NewJWT(cfg.JWTSecret)
	mailer := email.NewMailer(cfg.Email, logger)
	renderer := email.NewTemplateRenderer()
	files, err := upload.NewDiskStore(cfg.UploadDir)
	if err != nil {
		return fmt.Errorf("preparing upload dir: %w", err)
	}

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	eventRepo := postgres.NewEventRepository(db)
	ticketRepo := postgres.NewTicketRepository(db)

	// Services
	emailService := services.NewEmailService(mailer, renderer)
	authService := services.NewAuthService(userRepo, hasher, tokens, cfg.TokenExpiry, emailService)
	userService := services.NewUserService(userRepo)
	eventService := services.NewEventService(eventRepo, ticketRepo)
	ticketService := services.NewTicketService(ticketRepo, eventRepo, userRepo, emailService)

	// Controllers
	cookieSecure := cfg.Environment == "production"
	authController := controllers.NewAuthController(logger, authService, userService, cookieSecure, cfg.TokenExpiry)
	userController := controllers.NewUserController(logger, userService)
	eventController := controllers.NewEventController(logger, eventService, files)
	ticketController := controllers.NewTicketController(logger, ticketService)

	mux := httpdelivery.NewRouter(authController, userController, eventController, ticketController, tokens, files.Dir())

	handler := middleware.CORS([]string{cfg.ClientURL}, mux)
	handler = middleware.LoggingMiddleware(logger, handler)

	addr := ":" + cfg.Port
	logger.Info("server listening", "addr", addr, "env", cfg.Environment)
	return http.ListenAndServe(addr, handler)
}
