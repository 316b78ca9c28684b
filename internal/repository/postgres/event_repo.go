package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"eventticketing/internal/domain"
)

const eventColumns = `id, owner_id, title, description, organized_by, event_date, event_time,
		location, max_participants, current_participants, ticket_price, available_tickets,
		image, created_at, updated_at`

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{DB: db}
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (owner_id, title, description, organized_by, event_date, event_time,
			location, max_participants, current_participants, ticket_price, available_tickets,
			image, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id
	`
	var image sql.NullString
	if e.Image != nil {
		image = sql.NullString{String: *e.Image, Valid: true}
	}
	return r.DB.QueryRowContext(ctx, query,
		e.OwnerID, e.Title, e.Description, e.OrganizedBy, e.EventDate, e.EventTime,
		e.Location, e.MaxParticipants, e.CurrentParticipants, e.TicketPrice, e.AvailableTickets,
		image, e.CreatedAt, e.UpdatedAt,
	).Scan(&e.ID)
}

func scanEvent(row interface{ Scan(...any) error }) (*domain.Event, error) {
	e := &domain.Event{}
	var image sql.NullString
	err := row.Scan(
		&e.ID, &e.OwnerID, &e.Title, &e.Description, &e.OrganizedBy, &e.EventDate, &e.EventTime,
		&e.Location, &e.MaxParticipants, &e.CurrentParticipants, &e.TicketPrice, &e.AvailableTickets,
		&image, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if image.Valid {
		e.Image = &image.String
	}
	return e, nil
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) GetWithOwner(ctx context.Context, id string) (*domain.EventWithOwner, error) {
	query := `
		SELECT e.id, e.owner_id, e.title, e.description, e.organized_by, e.event_date, e.event_time,
			e.location, e.max_participants, e.current_participants, e.ticket_price, e.available_tickets,
			e.image, e.created_at, e.updated_at, u.name, u.email
		FROM events e
		JOIN users u ON u.id = e.owner_id
		WHERE e.id = $1
	`
	e := &domain.Event{}
	var image sql.NullString
	var ownerName, ownerEmail string
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&e.ID, &e.OwnerID, &e.Title, &e.Description, &e.OrganizedBy, &e.EventDate, &e.EventTime,
		&e.Location, &e.MaxParticipants, &e.CurrentParticipants, &e.TicketPrice, &e.AvailableTickets,
		&image, &e.CreatedAt, &e.UpdatedAt, &ownerName, &ownerEmail,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if image.Valid {
		e.Image = &image.String
	}
	return &domain.EventWithOwner{Event: e, OwnerName: ownerName, OwnerEmail: ownerEmail}, nil
}

func (r *eventRepository) List(ctx context.Context) ([]*domain.EventWithOwner, error) {
	return r.listWithOwner(ctx, "", nil)
}

func (r *eventRepository) ListByOwnerID(ctx context.Context, ownerID string) ([]*domain.EventWithOwner, error) {
	return r.listWithOwner(ctx, "WHERE e.owner_id = $1", []any{ownerID})
}

func (r *eventRepository) listWithOwner(ctx context.Context, where string, args []any) ([]*domain.EventWithOwner, error) {
	query := fmt.Sprintf(`
		SELECT e.id, e.owner_id, e.title, e.description, e.organized_by, e.event_date, e.event_time,
			e.location, e.max_participants, e.current_participants, e.ticket_price, e.available_tickets,
			e.image, e.created_at, e.updated_at, u.name, u.email
		FROM events e
		JOIN users u ON u.id = e.owner_id
		%s
		ORDER BY e.created_at DESC
	`, where)
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*domain.EventWithOwner, 0)
	for rows.Next() {
		e := &domain.Event{}
		var image sql.NullString
		var ownerName, ownerEmail string
		if err := rows.Scan(
			&e.ID, &e.OwnerID, &e.Title, &e.Description, &e.OrganizedBy, &e.EventDate, &e.EventTime,
			&e.Location, &e.MaxParticipants, &e.CurrentParticipants, &e.TicketPrice, &e.AvailableTickets,
			&image, &e.CreatedAt, &e.UpdatedAt, &ownerName, &ownerEmail,
		); err != nil {
			return nil, err
		}
		if image.Valid {
			e.Image = &image.String
		}
		events = append(events, &domain.EventWithOwner{Event: e, OwnerName: ownerName, OwnerEmail: ownerEmail})
	}
	return events, rows.Err()
}

func (r *eventRepository) Update(ctx context.Context, id string, upd domain.EventUpdate) (*domain.Event, error) {
	setClauses := []string{"updated_at = NOW()"}
	args := []any{}
	n := 1

	addSet := func(column string, value any) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, n))
		args = append(args, value)
		n++
	}
	if upd.Title != nil {
		addSet("title", *upd.Title)
	}
	if upd.Description != nil {
		addSet("description", *upd.Description)
	}
	if upd.OrganizedBy != nil {
		addSet("organized_by", *upd.OrganizedBy)
	}
	if upd.EventDate != nil {
		addSet("event_date", *upd.EventDate)
	}
	if upd.EventTime != nil {
		addSet("event_time", *upd.EventTime)
	}
	if upd.Location != nil {
		addSet("location", *upd.Location)
	}
	if upd.MaxParticipants != nil {
		addSet("max_participants", *upd.MaxParticipants)
	}
	if upd.TicketPrice != nil {
		addSet("ticket_price", *upd.TicketPrice)
	}
	if upd.AvailableTickets != nil {
		addSet("available_tickets", *upd.AvailableTickets)
	}
	if upd.Image != nil {
		addSet("image", *upd.Image)
	}
	if n == 1 {
		// No fields to update; just fetch the current row.
		return r.GetByID(ctx, id)
	}

	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE events SET %s
		WHERE id = $%d
		RETURNING `+eventColumns+`
	`, strings.Join(setClauses, ", "), n)
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

// DeleteWithTickets removes every ticket for the event, then the event itself,
// inside one transaction.
func (r *eventRepository) DeleteWithTickets(ctx context.Context, id string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM tickets WHERE event_id = $1`, id); err != nil {
		return err
	}
	result, err := tx.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return tx.Commit()
}
