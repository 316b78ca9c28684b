package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"eventticketing/internal/delivery/http/helpers"
	"eventticketing/internal/delivery/http/middleware"
	"eventticketing/internal/domain"
)

// PurchaseTicketRequest is the request body for POST /tickets.
type PurchaseTicketRequest struct {
	EventID  string `json:"event_id"`
	Quantity int    `json:"quantity"`
}

// Validate implements Validator.
func (p PurchaseTicketRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(p.EventID) == "" {
		errs = append(errs, "event_id is required")
	}
	if p.Quantity < 1 {
		errs = append(errs, "quantity must be at least 1")
	}
	return errs
}

// TicketController handles ticket purchase, cancellation, and listing.
type TicketController struct {
	Logger  *slog.Logger
	Tickets domain.TicketService
}

func NewTicketController(logger *slog.Logger, tickets domain.TicketService) *TicketController {
	return &TicketController{Logger: logger, Tickets: tickets}
}

// Purchase godoc
// @Summary Purchase tickets
// @Description Buy a quantity of tickets for an event. The inventory decrement and the ticket insert run in one transaction, so availability can never go negative under concurrent purchases.
// @Tags tickets
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param body body PurchaseTicketRequest true "Event and quantity"
// @Success 201 {object} helpers.APIResponse "data contains the ticket"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request or insufficient_tickets"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /tickets [post]
func (c *TicketController) Purchase(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req PurchaseTicketRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	ticket, err := c.Tickets.Purchase(r.Context(), req.EventID, userID, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInsufficientTickets):
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeInsufficientTickets, "not enough tickets available")
		case errors.Is(err, domain.ErrNotFound):
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
		case errors.Is(err, domain.ErrInvalidInput):
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "failed to purchase tickets")
		}
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, ticket)
}

// Cancel godoc
// @Summary Cancel a ticket
// @Description Delete an owned ticket and restore its quantity to the event's availability.
// @Tags tickets
// @Produce json
// @Security CookieAuth
// @Param ticketID path string true "Ticket ID"
// @Success 200 {object} helpers.APIResponse "data contains status"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /tickets/{ticketID} [delete]
func (c *TicketController) Cancel(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	err := c.Tickets.Cancel(r.Context(), r.PathValue("ticketID"), userID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "ticket not found")
		case errors.Is(err, domain.ErrForbidden):
			helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "only the ticket owner can cancel it")
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "failed to cancel ticket")
		}
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "cancelled"})
}

// ListForUser godoc
// @Summary List a user's tickets
// @Description Tickets owned by the given user, newest first. Snapshot fields carry the event summary as it was at purchase time.
// @Tags tickets
// @Produce json
// @Security CookieAuth
// @Param userID path string true "User ID"
// @Success 200 {object} helpers.APIResponse "data contains the ticket list"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /tickets/user/{userID} [get]
func (c *TicketController) ListForUser(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.UserIDFromContext(r.Context()); !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	tickets, err := c.Tickets.ListForUser(r.Context(), r.PathValue("userID"))
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "failed to list tickets")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, tickets)
}
