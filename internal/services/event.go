package services

import (
	"context"
	"errors"
	"fmt"

	"eventticketing/internal/domain"
)

type eventService struct {
	eventRepo  domain.EventRepository
	ticketRepo domain.TicketRepository
}

// NewEventService creates an EventService with the given repositories.
func NewEventService(eventRepo domain.EventRepository, ticketRepo domain.TicketRepository) domain.EventService {
	return &eventService{
		eventRepo:  eventRepo,
		ticketRepo: ticketRepo,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, event *domain.Event) error {
	if event.MaxParticipants < 0 || event.AvailableTickets < 0 || event.TicketPrice < 0 {
		return fmt.Errorf("%w: capacity and price must be non-negative", domain.ErrInvalidInput)
	}
	// available_tickets is taken as supplied; it is not derived from
	// max_participants and the two may disagree.
	event.CurrentParticipants = 0
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

func (s *eventService) ListEvents(ctx context.Context) ([]*domain.EventWithOwner, error) {
	events, err := s.eventRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

func (s *eventService) GetEvent(ctx context.Context, id string) (*domain.EventWithOwner, error) {
	event, err := s.eventRepo.GetWithOwner(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func (s *eventService) ListMyEvents(ctx context.Context, ownerID string) ([]*domain.EventWithOwner, error) {
	events, err := s.eventRepo.ListByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list events by owner: %w", err)
	}
	return events, nil
}

func (s *eventService) UpdateEvent(ctx context.Context, eventID, ownerID string, upd domain.EventUpdate) (*domain.Event, error) {
	if err := s.requireOwner(ctx, eventID, ownerID); err != nil {
		return nil, err
	}
	event, err := s.eventRepo.Update(ctx, eventID, upd)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	return event, nil
}

func (s *eventService) DeleteEvent(ctx context.Context, eventID, ownerID string) error {
	if err := s.requireOwner(ctx, eventID, ownerID); err != nil {
		return err
	}
	if err := s.eventRepo.DeleteWithTickets(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}

func (s *eventService) ListRegistrations(ctx context.Context, eventID, ownerID string) ([]*domain.TicketWithBuyer, error) {
	if err := s.requireOwner(ctx, eventID, ownerID); err != nil {
		return nil, err
	}
	tickets, err := s.ticketRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	return tickets, nil
}

// requireOwner resolves the event and checks that ownerID owns it.
func (s *eventService) requireOwner(ctx context.Context, eventID, ownerID string) error {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get event: %w", err)
	}
	if event.OwnerID != ownerID {
		return domain.ErrForbidden
	}
	return nil
}
