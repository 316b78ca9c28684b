package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"eventticketing/internal/domain"
)

type ticketService struct {
	ticketRepo   domain.TicketRepository
	eventRepo    domain.EventRepository
	userRepo     domain.UserRepository
	emailService domain.EmailService
}

// NewTicketService creates a TicketService with the given repositories.
func NewTicketService(
	ticketRepo domain.TicketRepository,
	eventRepo domain.EventRepository,
	userRepo domain.UserRepository,
	emailService domain.EmailService,
) domain.TicketService {
	return &ticketService{
		ticketRepo:   ticketRepo,
		eventRepo:    eventRepo,
		userRepo:     userRepo,
		emailService: emailService,
	}
}

func (s *ticketService) Purchase(ctx context.Context, eventID, userID string, quantity int) (*domain.Ticket, error) {
	if eventID == "" || quantity < 1 {
		return nil, fmt.Errorf("%w: event id and a positive quantity are required", domain.ErrInvalidInput)
	}

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	// Snapshot event and buyer details into the ticket so it outlives later
	// event edits. The repository applies the inventory decrement and the
	// insert atomically; the availability re-check happens there, not here.
	ticket := &domain.Ticket{
		UserID:      user.ID,
		EventID:     event.ID,
		Quantity:    quantity,
		HolderName:  user.Name,
		HolderEmail: user.Email,
		EventTitle:  event.Title,
		EventDate:   event.EventDate,
		EventTime:   event.EventTime,
		TicketPrice: event.TicketPrice,
		Location:    event.Location,
		CreatedAt:   time.Now(),
	}
	if err := s.ticketRepo.Purchase(ctx, ticket); err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrInsufficientTickets) {
			return nil, err
		}
		return nil, fmt.Errorf("purchase ticket: %w", err)
	}

	// Best effort; the purchase stands even when the mail provider is down.
	if err := s.emailService.SendTicketConfirmation(ctx, &domain.TicketConfirmationEmailData{
		Email:      user.Email,
		Name:       user.Name,
		EventTitle: event.Title,
		EventDate:  event.EventDate.Format("2006-01-02"),
		EventTime:  event.EventTime,
		Location:   event.Location,
		Quantity:   quantity,
		TotalPrice: float64(quantity) * event.TicketPrice,
	}); err != nil {
		log.Printf("[TICKET] failed to send confirmation email to %s: %v", user.Email, err)
	}

	return ticket, nil
}

func (s *ticketService) Cancel(ctx context.Context, ticketID, userID string) error {
	ticket, err := s.ticketRepo.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get ticket: %w", err)
	}
	if ticket.UserID != userID {
		return domain.ErrForbidden
	}
	if err := s.ticketRepo.DeleteAndRestore(ctx, ticket); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("cancel ticket: %w", err)
	}
	return nil
}

func (s *ticketService) ListForUser(ctx context.Context, userID string) ([]*domain.Ticket, error) {
	tickets, err := s.ticketRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	return tickets, nil
}
