package controllers

import (
	"context"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"

	"eventticketing/internal/delivery/http/middleware"
	"eventticketing/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

// withUser attaches an authenticated user ID to the request context the way
// the auth middleware does.
func withUser(r *http.Request, userID string) *http.Request {
	if userID == "" {
		return r
	}
	return r.WithContext(middleware.SetUserID(r.Context(), userID))
}

func doRequest(handler http.HandlerFunc, r *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	handler(rec, r)
	return rec
}

// fakeAuthService implements domain.AuthService.
type fakeAuthService struct {
	registerUser *domain.User
	registerErr  error
	loginToken   string
	loginUser    *domain.User
	loginErr     error
}

func (f *fakeAuthService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	return f.registerUser, nil
}

func (f *fakeAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if f.loginErr != nil {
		return "", nil, f.loginErr
	}
	return f.loginToken, f.loginUser, nil
}

// fakeUserService implements domain.UserService.
type fakeUserService struct {
	getUser   *domain.User
	getErr    error
	updated   *domain.User
	updateErr error

	lastUserID   string
	lastCallerID string
}

func (f *fakeUserService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getUser, nil
}

func (f *fakeUserService) UpdateProfile(ctx context.Context, userID, callerID, name, email string) (*domain.User, error) {
	f.lastUserID = userID
	f.lastCallerID = callerID
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return f.updated, nil
}

// fakeEventService implements domain.EventService.
type fakeEventService struct {
	createErr error
	created   *domain.Event

	listEvents []*domain.EventWithOwner
	listErr    error

	getEvent *domain.EventWithOwner
	getErr   error

	updatedEvent *domain.Event
	updateErr    error
	lastUpdate   domain.EventUpdate

	deleteErr error

	registrations []*domain.TicketWithBuyer
	regErr        error
}

func (f *fakeEventService) CreateEvent(ctx context.Context, event *domain.Event) error {
	if f.createErr != nil {
		return f.createErr
	}
	event.ID = "ev-new"
	f.created = event
	return nil
}

func (f *fakeEventService) ListEvents(ctx context.Context) ([]*domain.EventWithOwner, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listEvents, nil
}

func (f *fakeEventService) GetEvent(ctx context.Context, id string) (*domain.EventWithOwner, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getEvent, nil
}

func (f *fakeEventService) ListMyEvents(ctx context.Context, ownerID string) ([]*domain.EventWithOwner, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listEvents, nil
}

func (f *fakeEventService) UpdateEvent(ctx context.Context, eventID, ownerID string, upd domain.EventUpdate) (*domain.Event, error) {
	f.lastUpdate = upd
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return f.updatedEvent, nil
}

func (f *fakeEventService) DeleteEvent(ctx context.Context, eventID, ownerID string) error {
	return f.deleteErr
}

func (f *fakeEventService) ListRegistrations(ctx context.Context, eventID, ownerID string) ([]*domain.TicketWithBuyer, error) {
	if f.regErr != nil {
		return nil, f.regErr
	}
	return f.registrations, nil
}

// fakeTicketService implements domain.TicketService.
type fakeTicketService struct {
	ticket      *domain.Ticket
	purchaseErr error
	cancelErr   error
	tickets     []*domain.Ticket
	listErr     error

	lastEventID  string
	lastUserID   string
	lastQuantity int
}

func (f *fakeTicketService) Purchase(ctx context.Context, eventID, userID string, quantity int) (*domain.Ticket, error) {
	f.lastEventID = eventID
	f.lastUserID = userID
	f.lastQuantity = quantity
	if f.purchaseErr != nil {
		return nil, f.purchaseErr
	}
	return f.ticket, nil
}

func (f *fakeTicketService) Cancel(ctx context.Context, ticketID, userID string) error {
	return f.cancelErr
}

func (f *fakeTicketService) ListForUser(ctx context.Context, userID string) ([]*domain.Ticket, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.tickets, nil
}

// fakeFileStore implements FileStore.
type fakeFileStore struct {
	path string
	err  error
}

func (f *fakeFileStore) Save(file multipart.File, header *multipart.FileHeader) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.path, nil
}
