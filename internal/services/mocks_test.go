package services

import (
	"context"
	"time"

	"eventticketing/internal/domain"
)

type mockUserRepository struct {
	users     map[string]*domain.User
	byEmail   map[string]*domain.User
	createErr error
	updateErr error
	created   []*domain.User
	updated   []*domain.User
}

func (m *mockUserRepository) Create(ctx context.Context, u *domain.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	u.ID = "user-new"
	m.created = append(m.created, u)
	return nil
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if u, ok := m.byEmail[email]; ok {
		return u, nil
	}
	return nil, domain.ErrNotFound
}

func (m *mockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, domain.ErrNotFound
}

func (m *mockUserRepository) Update(ctx context.Context, u *domain.User) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.updated = append(m.updated, u)
	return nil
}

type mockEventRepository struct {
	events    map[string]*domain.Event
	withOwner map[string]*domain.EventWithOwner
	listed    []*domain.EventWithOwner
	createErr error
	updateErr error
	deleteErr error
	deleted   []string
	updates   []domain.EventUpdate
}

func (m *mockEventRepository) Create(ctx context.Context, e *domain.Event) error {
	if m.createErr != nil {
		return m.createErr
	}
	e.ID = "ev-new"
	return nil
}

func (m *mockEventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if e, ok := m.events[id]; ok {
		return e, nil
	}
	return nil, domain.ErrNotFound
}

func (m *mockEventRepository) GetWithOwner(ctx context.Context, id string) (*domain.EventWithOwner, error) {
	if e, ok := m.withOwner[id]; ok {
		return e, nil
	}
	return nil, domain.ErrNotFound
}

func (m *mockEventRepository) List(ctx context.Context) ([]*domain.EventWithOwner, error) {
	return m.listed, nil
}

func (m *mockEventRepository) ListByOwnerID(ctx context.Context, ownerID string) ([]*domain.EventWithOwner, error) {
	var out []*domain.EventWithOwner
	for _, e := range m.listed {
		if e.OwnerID == ownerID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *mockEventRepository) Update(ctx context.Context, id string, upd domain.EventUpdate) (*domain.Event, error) {
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	e, ok := m.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	m.updates = append(m.updates, upd)
	if upd.Title != nil {
		e.Title = *upd.Title
	}
	if upd.AvailableTickets != nil {
		e.AvailableTickets = *upd.AvailableTickets
	}
	return e, nil
}

func (m *mockEventRepository) DeleteWithTickets(ctx context.Context, id string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	if _, ok := m.events[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.events, id)
	m.deleted = append(m.deleted, id)
	return nil
}

type mockTicketRepository struct {
	tickets     map[string]*domain.Ticket
	byEvent     map[string][]*domain.TicketWithBuyer
	byUser      map[string][]*domain.Ticket
	purchaseErr error
	deleteErr   error
	purchased   []*domain.Ticket
	restored    []*domain.Ticket
}

func (m *mockTicketRepository) Purchase(ctx context.Context, t *domain.Ticket) error {
	if m.purchaseErr != nil {
		return m.purchaseErr
	}
	t.ID = "ticket-new"
	m.purchased = append(m.purchased, t)
	return nil
}

func (m *mockTicketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	if t, ok := m.tickets[id]; ok {
		return t, nil
	}
	return nil, domain.ErrNotFound
}

func (m *mockTicketRepository) DeleteAndRestore(ctx context.Context, t *domain.Ticket) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.restored = append(m.restored, t)
	return nil
}

func (m *mockTicketRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Ticket, error) {
	return m.byUser[userID], nil
}

func (m *mockTicketRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.TicketWithBuyer, error) {
	return m.byEvent[eventID], nil
}

type mockHasher struct {
	saltErr error
	hashErr error
}

func (m *mockHasher) GenerateSalt() (string, error) {
	if m.saltErr != nil {
		return "", m.saltErr
	}
	return "mock-salt", nil
}

func (m *mockHasher) Hash(salt, password string) (string, error) {
	if m.hashErr != nil {
		return "", m.hashErr
	}
	return "hashed:" + salt + ":" + password, nil
}

func (m *mockHasher) Compare(hash, salt, password string) error {
	if hash == "hashed:"+salt+":"+password {
		return nil
	}
	return domain.ErrInvalidCredentials
}

type mockTokenIssuer struct {
	err error
}

func (m *mockTokenIssuer) Issue(userID, email string, expiry time.Duration) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return "token-" + userID, nil
}

type mockEmailService struct {
	err           error
	welcomes      []*domain.WelcomeEmailData
	confirmations []*domain.TicketConfirmationEmailData
}

func (m *mockEmailService) SendWelcome(ctx context.Context, data *domain.WelcomeEmailData) error {
	if m.err != nil {
		return m.err
	}
	m.welcomes = append(m.welcomes, data)
	return nil
}

func (m *mockEmailService) SendTicketConfirmation(ctx context.Context, data *domain.TicketConfirmationEmailData) error {
	if m.err != nil {
		return m.err
	}
	m.confirmations = append(m.confirmations, data)
	return nil
}
