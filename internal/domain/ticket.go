package domain

import (
	"context"
	"time"
)

// Ticket represents a purchased claim on a quantity of an event's inventory.
// The holder and event fields are a denormalized snapshot captured at purchase
// time so the ticket stays meaningful after the event is edited or deleted.
// swagger:model Ticket
type Ticket struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	EventID     string    `json:"event_id"`
	Quantity    int       `json:"quantity"`
	HolderName  string    `json:"holder_name"`
	HolderEmail string    `json:"holder_email"`
	EventTitle  string    `json:"event_title"`
	EventDate   time.Time `json:"event_date"`
	EventTime   string    `json:"event_time"`
	TicketPrice float64   `json:"ticket_price"`
	Location    string    `json:"location"`
	CreatedAt   time.Time `json:"created_at"`
}

// TicketWithBuyer bundles a ticket with the buyer's current name and email,
// used when an event owner lists registrations.
// swagger:model TicketWithBuyer
type TicketWithBuyer struct {
	*Ticket
	BuyerName  string `json:"buyer_name"`
	BuyerEmail string `json:"buyer_email"`
}

// TicketRepository defines the interface for ticket storage. Purchase and
// DeleteAndRestore each run as a single transaction so the ticket row and the
// event's inventory counters can never diverge.
type TicketRepository interface {
	// Purchase decrements the event's available_tickets and increments
	// current_participants by the ticket quantity, then inserts the ticket.
	// The decrement is conditional on available_tickets >= quantity; a
	// shortfall returns ErrInsufficientTickets and a missing event returns
	// ErrNotFound, with nothing persisted in either case.
	Purchase(ctx context.Context, ticket *Ticket) error
	GetByID(ctx context.Context, id string) (*Ticket, error)
	// DeleteAndRestore returns the ticket's quantity to the event's counters
	// and deletes the ticket. If the event no longer exists the restore is a
	// no-op and the ticket is still deleted.
	DeleteAndRestore(ctx context.Context, ticket *Ticket) error
	ListByUserID(ctx context.Context, userID string) ([]*Ticket, error)
	ListByEventID(ctx context.Context, eventID string) ([]*TicketWithBuyer, error)
}

// TicketService defines the ticket ledger operations.
type TicketService interface {
	// Purchase buys quantity tickets for the event on behalf of userID,
	// snapshotting event and buyer details into the ticket.
	Purchase(ctx context.Context, eventID, userID string, quantity int) (*Ticket, error)
	// Cancel deletes the ticket and restores its quantity to the event.
	// Only the ticket owner may cancel.
	Cancel(ctx context.Context, ticketID, userID string) error
	ListForUser(ctx context.Context, userID string) ([]*Ticket, error)
}
