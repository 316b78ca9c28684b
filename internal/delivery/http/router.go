package http

import (
	"net/http"
	"time"

	httpSwagger "github.com/swaggo/http-swagger"

	"eventticketing/internal/delivery/http/controllers"
	"eventticketing/internal/delivery/http/helpers"
	"eventticketing/internal/delivery/http/middleware"
	"eventticketing/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes.
// uploadDir is the local directory served under /uploads/.
func NewRouter(
	authController *controllers.AuthController,
	userController *controllers.UserController,
	eventController *controllers.EventController,
	ticketController *controllers.TicketController,
	verifier domain.TokenVerifier,
	uploadDir string,
) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier)

	// Auth
	mux.HandleFunc("POST /register", authController.Register)
	mux.HandleFunc("POST /login", authController.Login)
	mux.HandleFunc("POST /logout", authController.Logout)
	mux.HandleFunc("GET /profile", auth(authController.Profile))

	// Users
	mux.HandleFunc("PUT /users/{userID}", auth(userController.Update))

	// Events
	mux.HandleFunc("POST /createEvent", auth(eventController.Create))
	mux.HandleFunc("GET /events", eventController.List)
	mux.HandleFunc("GET /events/{eventID}", eventController.Get)
	mux.HandleFunc("PUT /events/{eventID}", auth(eventController.Update))
	mux.HandleFunc("DELETE /events/{eventID}", auth(eventController.Delete))
	mux.HandleFunc("GET /my-events", auth(eventController.MyEvents))
	mux.HandleFunc("GET /events/{eventID}/registrations", auth(eventController.Registrations))

	// Tickets
	mux.HandleFunc("POST /tickets", auth(ticketController.Purchase))
	mux.HandleFunc("DELETE /tickets/{ticketID}", auth(ticketController.Cancel))
	mux.HandleFunc("GET /tickets/user/{userID}", auth(ticketController.ListForUser))

	// Static event images
	mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadDir))))

	// Health
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{
			"status":    "healthy",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
