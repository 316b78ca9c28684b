package controllers

import (
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"eventticketing/internal/delivery/http/helpers"
	"eventticketing/internal/delivery/http/middleware"
	"eventticketing/internal/domain"
)

// FileStore stores an uploaded file and returns the public path it is served
// under.
type FileStore interface {
	Save(file multipart.File, header *multipart.FileHeader) (string, error)
}

const maxUploadMemory = 6 << 20

// CreateEventRequest is the JSON request body for POST /createEvent.
// Multipart submissions carry the same fields as form values plus an optional
// "image" file part.
type CreateEventRequest struct {
	Title            string  `json:"title"`
	Description      string  `json:"description"`
	OrganizedBy      string  `json:"organized_by"`
	EventDate        string  `json:"event_date"`
	EventTime        string  `json:"event_time"`
	Location         string  `json:"location"`
	MaxParticipants  int     `json:"max_participants"`
	TicketPrice      float64 `json:"ticket_price"`
	AvailableTickets int     `json:"available_tickets"`
}

// Validate implements Validator.
func (c CreateEventRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.Title) == "" {
		errs = append(errs, "title is required")
	}
	if strings.TrimSpace(c.Description) == "" {
		errs = append(errs, "description is required")
	}
	if strings.TrimSpace(c.OrganizedBy) == "" {
		errs = append(errs, "organized_by is required")
	}
	if strings.TrimSpace(c.EventDate) == "" {
		errs = append(errs, "event_date is required")
	} else if _, err := parseEventDate(c.EventDate); err != nil {
		errs = append(errs, "event_date must be YYYY-MM-DD")
	}
	if strings.TrimSpace(c.EventTime) == "" {
		errs = append(errs, "event_time is required")
	}
	if strings.TrimSpace(c.Location) == "" {
		errs = append(errs, "location is required")
	}
	if c.MaxParticipants <= 0 {
		errs = append(errs, "max_participants must be positive")
	}
	if c.TicketPrice < 0 {
		errs = append(errs, "ticket_price cannot be negative")
	}
	if c.AvailableTickets < 0 {
		errs = append(errs, "available_tickets cannot be negative")
	}
	return errs
}

// UpdateEventRequest is the JSON request body for PUT /events/{eventID}.
// Absent fields are left unchanged.
type UpdateEventRequest struct {
	Title            *string  `json:"title"`
	Description      *string  `json:"description"`
	OrganizedBy      *string  `json:"organized_by"`
	EventDate        *string  `json:"event_date"`
	EventTime        *string  `json:"event_time"`
	Location         *string  `json:"location"`
	MaxParticipants  *int     `json:"max_participants"`
	TicketPrice      *float64 `json:"ticket_price"`
	AvailableTickets *int     `json:"available_tickets"`
}

// Validate implements Validator.
func (u UpdateEventRequest) Validate() []string {
	var errs []string
	if u.Title != nil && strings.TrimSpace(*u.Title) == "" {
		errs = append(errs, "title cannot be empty")
	}
	if u.EventDate != nil {
		if _, err := parseEventDate(*u.EventDate); err != nil {
			errs = append(errs, "event_date must be YYYY-MM-DD")
		}
	}
	if u.MaxParticipants != nil && *u.MaxParticipants <= 0 {
		errs = append(errs, "max_participants must be positive")
	}
	if u.TicketPrice != nil && *u.TicketPrice < 0 {
		errs = append(errs, "ticket_price cannot be negative")
	}
	if u.AvailableTickets != nil && *u.AvailableTickets < 0 {
		errs = append(errs, "available_tickets cannot be negative")
	}
	return errs
}

func parseEventDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

func isMultipart(r *http.Request) bool {
	ct := r.Header.Get("Content-Type")
	mediaType, _, err := mime.ParseMediaType(ct)
	return err == nil && mediaType == "multipart/form-data"
}

// EventController handles the event catalog endpoints.
type EventController struct {
	Logger *slog.Logger
	Events domain.EventService
	Files  FileStore
}

func NewEventController(logger *slog.Logger, events domain.EventService, files FileStore) *EventController {
	return &EventController{Logger: logger, Events: events, Files: files}
}

// Create godoc
// @Summary Create an event
// @Description Create a new event owned by the authenticated user. Accepts JSON or multipart/form-data; multipart may include an "image" file.
// @Tags events
// @Accept json
// @Accept multipart/form-data
// @Produce json
// @Security CookieAuth
// @Param body body CreateEventRequest true "Event fields"
// @Success 201 {object} helpers.APIResponse "data contains the created event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /createEvent [post]
func (c *EventController) Create(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	var req CreateEventRequest
	var image *string
	if isMultipart(r) {
		var ok bool
		req, image, ok = c.decodeMultipartCreate(w, r)
		if !ok {
			return
		}
	} else if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	date, err := parseEventDate(req.EventDate)
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "event_date must be YYYY-MM-DD")
		return
	}

	event := &domain.Event{
		OwnerID:          ownerID,
		Title:            strings.TrimSpace(req.Title),
		Description:      strings.TrimSpace(req.Description),
		OrganizedBy:      strings.TrimSpace(req.OrganizedBy),
		EventDate:        date,
		EventTime:        strings.TrimSpace(req.EventTime),
		Location:         strings.TrimSpace(req.Location),
		MaxParticipants:  req.MaxParticipants,
		TicketPrice:      req.TicketPrice,
		AvailableTickets: req.AvailableTickets,
		Image:            image,
	}
	if err := c.Events.CreateEvent(r.Context(), event); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "failed to create event")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, event)
}

// decodeMultipartCreate reads the create-event form fields and stores the
// optional image part. It writes the error response itself on failure.
func (c *EventController) decodeMultipartCreate(w http.ResponseWriter, r *http.Request) (CreateEventRequest, *string, bool) {
	var req CreateEventRequest
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid multipart form")
		return req, nil, false
	}
	req.Title = r.FormValue("title")
	req.Description = r.FormValue("description")
	req.OrganizedBy = r.FormValue("organized_by")
	req.EventDate = r.FormValue("event_date")
	req.EventTime = r.FormValue("event_time")
	req.Location = r.FormValue("location")

	var errs []string
	var err error
	if req.MaxParticipants, err = strconv.Atoi(r.FormValue("max_participants")); err != nil {
		errs = append(errs, "max_participants must be an integer")
	}
	if req.TicketPrice, err = strconv.ParseFloat(r.FormValue("ticket_price"), 64); err != nil {
		errs = append(errs, "ticket_price must be a number")
	}
	if req.AvailableTickets, err = strconv.Atoi(r.FormValue("available_tickets")); err != nil {
		errs = append(errs, "available_tickets must be an integer")
	}
	errs = append(errs, req.Validate()...)
	if len(errs) > 0 {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, strings.Join(errs, "; "))
		return req, nil, false
	}

	image, ok := c.saveImagePart(w, r)
	if !ok {
		return req, nil, false
	}
	return req, image, true
}

// saveImagePart stores the "image" file part if present. A missing part is not
// an error.
func (c *EventController) saveImagePart(w http.ResponseWriter, r *http.Request) (*string, bool) {
	file, header, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, true
	}
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid image upload")
		return nil, false
	}
	defer file.Close()
	path, err := c.Files.Save(file, header)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return nil, false
		}
		c.Logger.ErrorContext(r.Context(), "image upload failed", "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "failed to store image")
		return nil, false
	}
	return &path, true
}

// List godoc
// @Summary List events
// @Description All events with owner name and email, newest first.
// @Tags events
// @Produce json
// @Success 200 {object} helpers.APIResponse "data contains the event list"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [get]
func (c *EventController) List(w http.ResponseWriter, r *http.Request) {
	events, err := c.Events.ListEvents(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "failed to list events")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}

// Get godoc
// @Summary Get an event
// @Tags events
// @Produce json
// @Param eventID path string true "Event ID"
// @Success 200 {object} helpers.APIResponse "data contains the event with owner"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [get]
func (c *EventController) Get(w http.ResponseWriter, r *http.Request) {
	event, err := c.Events.GetEvent(r.Context(), r.PathValue("eventID"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "failed to load event")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// Update godoc
// @Summary Update an event
// @Description Partial update of an owned event. Accepts JSON or multipart/form-data; only supplied fields change, and the image is replaced only when a new file is uploaded.
// @Tags events
// @Accept json
// @Accept multipart/form-data
// @Produce json
// @Security CookieAuth
// @Param eventID path string true "Event ID"
// @Param body body UpdateEventRequest true "Fields to update"
// @Success 200 {object} helpers.APIResponse "data contains the updated event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [put]
func (c *EventController) Update(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	var req UpdateEventRequest
	var image *string
	if isMultipart(r) {
		var ok bool
		req, image, ok = c.decodeMultipartUpdate(w, r)
		if !ok {
			return
		}
	} else if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	upd := domain.EventUpdate{
		Title:            req.Title,
		Description:      req.Description,
		OrganizedBy:      req.OrganizedBy,
		EventTime:        req.EventTime,
		Location:         req.Location,
		MaxParticipants:  req.MaxParticipants,
		TicketPrice:      req.TicketPrice,
		AvailableTickets: req.AvailableTickets,
		Image:            image,
	}
	if req.EventDate != nil {
		date, err := parseEventDate(*req.EventDate)
		if err != nil {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "event_date must be YYYY-MM-DD")
			return
		}
		upd.EventDate = &date
	}

	event, err := c.Events.UpdateEvent(r.Context(), r.PathValue("eventID"), ownerID, upd)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
		case errors.Is(err, domain.ErrForbidden):
			helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "only the event owner can update it")
		case errors.Is(err, domain.ErrInvalidInput):
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "failed to update event")
		}
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

func (c *EventController) decodeMultipartUpdate(w http.ResponseWriter, r *http.Request) (UpdateEventRequest, *string, bool) {
	var req UpdateEventRequest
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid multipart form")
		return req, nil, false
	}

	formString := func(key string) *string {
		if vs, ok := r.MultipartForm.Value[key]; ok && len(vs) > 0 {
			v := vs[0]
			return &v
		}
		return nil
	}
	var errs []string
	formInt := func(key string) *int {
		s := formString(key)
		if s == nil {
			return nil
		}
		n, err := strconv.Atoi(*s)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s must be an integer", key))
			return nil
		}
		return &n
	}

	req.Title = formString("title")
	req.Description = formString("description")
	req.OrganizedBy = formString("organized_by")
	req.EventDate = formString("event_date")
	req.EventTime = formString("event_time")
	req.Location = formString("location")
	req.MaxParticipants = formInt("max_participants")
	req.AvailableTickets = formInt("available_tickets")
	if s := formString("ticket_price"); s != nil {
		price, err := strconv.ParseFloat(*s, 64)
		if err != nil {
			errs = append(errs, "ticket_price must be a number")
		} else {
			req.TicketPrice = &price
		}
	}
	errs = append(errs, req.Validate()...)
	if len(errs) > 0 {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, strings.Join(errs, "; "))
		return req, nil, false
	}

	image, ok := c.saveImagePart(w, r)
	if !ok {
		return req, nil, false
	}
	return req, image, true
}

// Delete godoc
// @Summary Delete an event
// @Description Deletes an owned event and every ticket sold for it in one transaction.
// @Tags events
// @Produce json
// @Security CookieAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} helpers.APIResponse "data contains status"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [delete]
func (c *EventController) Delete(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	err := c.Events.DeleteEvent(r.Context(), r.PathValue("eventID"), ownerID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
		case errors.Is(err, domain.ErrForbidden):
			helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "only the event owner can delete it")
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "failed to delete event")
		}
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// MyEvents godoc
// @Summary List the caller's events
// @Tags events
// @Produce json
// @Security CookieAuth
// @Success 200 {object} helpers.APIResponse "data contains the event list"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /my-events [get]
func (c *EventController) MyEvents(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	events, err := c.Events.ListMyEvents(r.Context(), ownerID)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "failed to list events")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}

// Registrations godoc
// @Summary List registrations for an owned event
// @Description Tickets sold for the event with buyer name and email. Owner only.
// @Tags events
// @Produce json
// @Security CookieAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} helpers.APIResponse "data contains the ticket list"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/registrations [get]
func (c *EventController) Registrations(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	tickets, err := c.Events.ListRegistrations(r.Context(), r.PathValue("eventID"), ownerID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
		case errors.Is(err, domain.ErrForbidden):
			helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "only the event owner can view registrations")
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "failed to list registrations")
		}
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, tickets)
}
