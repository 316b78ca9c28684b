package domain

import (
	"context"
	"time"
)

// Event represents a ticketed event with finite inventory.
// AvailableTickets is caller-supplied at creation and tracked independently of
// MaxParticipants; the two are not reconciled against each other.
// swagger:model Event
type Event struct {
	ID                  string    `json:"id"`
	OwnerID             string    `json:"owner_id"`
	Title               string    `json:"title"`
	Description         string    `json:"description"`
	OrganizedBy         string    `json:"organized_by"`
	EventDate           time.Time `json:"event_date"`
	EventTime           string    `json:"event_time"`
	Location            string    `json:"location"`
	MaxParticipants     int       `json:"max_participants"`
	CurrentParticipants int       `json:"current_participants"`
	TicketPrice         float64   `json:"ticket_price"`
	AvailableTickets    int       `json:"available_tickets"`
	Image               *string   `json:"image"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// EventWithOwner bundles an event with its owner's public identity for list
// and detail responses.
// swagger:model EventWithOwner
type EventWithOwner struct {
	*Event
	OwnerName  string `json:"owner_name"`
	OwnerEmail string `json:"owner_email"`
}

// EventUpdate carries the optional fields of a partial event update. Nil
// fields are left unchanged; Image is only set when a new file was uploaded.
type EventUpdate struct {
	Title            *string
	Description      *string
	OrganizedBy      *string
	EventDate        *time.Time
	EventTime        *string
	Location         *string
	MaxParticipants  *int
	TicketPrice      *float64
	AvailableTickets *int
	Image            *string
}

// EventRepository defines the interface for event storage.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	GetWithOwner(ctx context.Context, id string) (*EventWithOwner, error)
	List(ctx context.Context) ([]*EventWithOwner, error)
	ListByOwnerID(ctx context.Context, ownerID string) ([]*EventWithOwner, error)
	Update(ctx context.Context, id string, upd EventUpdate) (*Event, error)
	// DeleteWithTickets removes the event and every ticket referencing it in
	// one transaction.
	DeleteWithTickets(ctx context.Context, id string) error
}

// EventService defines the business logic for the event catalog.
type EventService interface {
	CreateEvent(ctx context.Context, event *Event) error
	ListEvents(ctx context.Context) ([]*EventWithOwner, error)
	GetEvent(ctx context.Context, id string) (*EventWithOwner, error)
	ListMyEvents(ctx context.Context, ownerID string) ([]*EventWithOwner, error)
	UpdateEvent(ctx context.Context, eventID, ownerID string, upd EventUpdate) (*Event, error)
	DeleteEvent(ctx context.Context, eventID, ownerID string) error
	ListRegistrations(ctx context.Context, eventID, ownerID string) ([]*TicketWithBuyer, error)
}
